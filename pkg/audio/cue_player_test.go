package audio

import (
	"testing"
	"time"

	"github.com/decker502/wavewizard/pkg/event"
	"github.com/gopxl/beep"
)

func TestCueForEvents(t *testing.T) {
	tests := []struct {
		name       string
		ev         event.Event
		lastHealth float64
		want       Cue
	}{
		{"波次开始", event.Event{Type: event.StateChanged, Data: event.StateChangedData{To: "WaveInProgress"}}, 0, CueWaveStart},
		{"Boss 战", event.Event{Type: event.StateChanged, Data: event.StateChangedData{To: "BossFight"}}, 0, CueBossIncoming},
		{"休整无提示音", event.Event{Type: event.StateChanged, Data: event.StateChangedData{To: "PreparationBuffer"}}, 0, CueNone},
		{"错误的数据类型", event.Event{Type: event.StateChanged, Data: "oops"}, 0, CueNone},
		{"击杀", event.Event{Type: event.EnemyKilled}, 0, CueEnemyKilled},
		{"受伤", event.Event{Type: event.HealthChanged, Data: event.HealthChangedData{Current: 80, Max: 100}}, 100, CueHurt},
		{"回血不提示", event.Event{Type: event.HealthChanged, Data: event.HealthChangedData{Current: 110, Max: 110}}, 100, CueNone},
		{"胜利", event.Event{Type: event.Victory}, 0, CueVictory},
		{"纯文本消息", event.Event{Type: event.Message, Data: "hello"}, 0, CueNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CueFor(tt.ev, tt.lastHealth); got != tt.want {
				t.Errorf("CueFor() = %s, want %s", got, tt.want)
			}
		})
	}
}

// 未打开设备时仍然记录提示音，不会 panic
func TestCuePlayerWithoutDevice(t *testing.T) {
	d := event.NewDispatcher()
	p := NewCuePlayer(true)
	p.Attach(d)

	d.Emit(event.HealthChanged, event.HealthChangedData{Current: 100, Max: 100})
	d.Emit(event.HealthChanged, event.HealthChangedData{Current: 90, Max: 100})
	if cue, n := p.LastCue(); cue != CueHurt || n != 1 {
		t.Errorf("last cue = %s (%d played), want hurt once", cue, n)
	}

	d.Emit(event.Victory, "test")
	if cue, n := p.LastCue(); cue != CueVictory || n != 2 {
		t.Errorf("last cue = %s (%d played), want victory", cue, n)
	}

	p.Close()
	d.Emit(event.GameOver, "test")
	if _, n := p.LastCue(); n != 2 {
		t.Error("detached player should not react to events")
	}
}

func TestEveryCueHasNotes(t *testing.T) {
	for c := CueWaveStart; c <= CueGameOver; c++ {
		if len(c.Notes()) == 0 {
			t.Errorf("cue %s has no notes", c)
		}
	}
}

func TestOscillatorStopsAfterDuration(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(100, 50*time.Millisecond, WaveSine, rate)

	buf := make([][2]float64, 40)
	total := 0
	for {
		n, ok := osc.Stream(buf)
		total += n
		for i := 0; i < n; i++ {
			if buf[i][0] < -1 || buf[i][0] > 1 {
				t.Fatalf("sample out of range: %f", buf[i][0])
			}
		}
		if !ok {
			break
		}
	}
	if total != 50 {
		t.Errorf("streamed %d samples, want 50", total)
	}
}

func TestRenderNotesLength(t *testing.T) {
	rate := beep.SampleRate(1000)
	s := renderNotes([]Note{{440, 20 * time.Millisecond, WaveSquare}, {0, 30 * time.Millisecond, WaveNoise}}, rate, 0.5)

	buf := make([][2]float64, 16)
	total := 0
	for i := 0; i < 100; i++ {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	if total != 50 {
		t.Errorf("rendered %d samples, want 50", total)
	}
}
