// Package audio 根据核心通知播放合成提示音
//
// 提示音是"发出即忘"的反馈：核心只发出通知，从不等待或读取音频状态。
package audio

import (
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/decker502/wavewizard/pkg/event"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	// defaultVolume 主音量（线性）
	defaultVolume = 0.35
)

// subscribedEvents 需要提示音的通知类型
var subscribedEvents = []event.EventType{
	event.StateChanged,
	event.SpellCast,
	event.EnemyKilled,
	event.CoinCollected,
	event.LevelUp,
	event.HealthChanged,
	event.Victory,
	event.GameOver,
}

// CuePlayer 提示音播放器
// 未初始化或静音时仍会记录最近的提示音，但不输出声音
type CuePlayer struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	ctrl        *beep.Ctrl
	initialized bool
	muted       bool
	volume      float64

	lastHealth float64
	lastCue    Cue
	played     int

	dispatcher *event.Dispatcher
	subs       []event.Subscription
}

// NewCuePlayer 创建播放器（不打开音频设备）
func NewCuePlayer(muted bool) *CuePlayer {
	mixer := &beep.Mixer{}
	return &CuePlayer{
		mixer:      mixer,
		ctrl:       &beep.Ctrl{Streamer: mixer},
		muted:      muted,
		volume:     defaultVolume,
		lastHealth: math.NaN(),
	}
}

// Init 打开音频设备
// 静音模式下不打开设备；失败时返回错误，调用方可以继续以无声模式运行
func (p *CuePlayer) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || p.muted {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}
	speaker.Play(p.ctrl)
	p.initialized = true
	log.Printf("[CuePlayer] Speaker initialized at %d Hz", sampleRate)
	return nil
}

// Attach 订阅通知
func (p *CuePlayer) Attach(d *event.Dispatcher) {
	p.Detach()
	p.dispatcher = d
	for _, t := range subscribedEvents {
		p.subs = append(p.subs, d.Subscribe(t, p))
	}
}

// Detach 取消所有订阅
func (p *CuePlayer) Detach() {
	if p.dispatcher == nil {
		return
	}
	for _, sub := range p.subs {
		p.dispatcher.Unsubscribe(sub)
	}
	p.subs = nil
	p.dispatcher = nil
	p.lastHealth = math.NaN()
}

// OnEvent 实现 event.Listener
func (p *CuePlayer) OnEvent(e event.Event) {
	cue := CueFor(e, p.lastHealth)
	if data, ok := e.Data.(event.HealthChangedData); ok {
		p.lastHealth = data.Current
	}
	if cue != CueNone {
		p.Play(cue)
	}
}

// Play 播放提示音
func (p *CuePlayer) Play(cue Cue) {
	notes := cue.Notes()
	if len(notes) == 0 {
		return
	}

	p.mu.Lock()
	p.lastCue = cue
	p.played++
	active := p.initialized && !p.muted
	volume := p.volume
	p.mu.Unlock()

	if !active {
		return
	}
	streamer := renderNotes(notes, sampleRate, volume)
	speaker.Lock()
	p.mixer.Add(streamer)
	speaker.Unlock()
}

// SetMuted 切换静音
func (p *CuePlayer) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
	if p.initialized {
		speaker.Lock()
		p.ctrl.Paused = muted
		speaker.Unlock()
	}
}

// Muted 是否静音
func (p *CuePlayer) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// LastCue 最近一次触发的提示音与累计次数
func (p *CuePlayer) LastCue() (Cue, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastCue, p.played
}

// Close 停止播放并取消订阅
func (p *CuePlayer) Close() {
	p.Detach()

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}
