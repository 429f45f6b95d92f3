package run

import (
	"github.com/decker502/wavewizard/pkg/event"
	"github.com/decker502/wavewizard/pkg/utils"
)

// 消息显示参数
const (
	messageLogCapacity = 5
	messageLifetime    = 4.0 // 秒
)

// MessageLine 一条屏幕消息
type MessageLine struct {
	Text string
	Age  float64
}

// Alpha 显示不透明度（0~1）
func (m MessageLine) Alpha() float64 {
	return utils.FadeOut(m.Age, messageLifetime)
}

// MessageLog 收集核心发出的文字消息，供宿主显示
// 超过容量时丢弃最旧的一条；显示超过 messageLifetime 秒后淡出
type MessageLog struct {
	lines []MessageLine
	sub   event.Subscription
	d     *event.Dispatcher
}

// NewMessageLog 订阅分发器上的 Message 通知
func NewMessageLog(d *event.Dispatcher) *MessageLog {
	l := &MessageLog{d: d}
	l.sub = d.SubscribeFunc(event.Message, func(e event.Event) {
		text, ok := e.Data.(string)
		if !ok || text == "" {
			return
		}
		l.Push(text)
	})
	return l
}

// Push 追加一条消息
func (l *MessageLog) Push(text string) {
	l.lines = append(l.lines, MessageLine{Text: text})
	if len(l.lines) > messageLogCapacity {
		l.lines = l.lines[len(l.lines)-messageLogCapacity:]
	}
}

// Update 推进消息年龄并移除过期消息
func (l *MessageLog) Update(deltaTime float64) {
	kept := l.lines[:0]
	for _, line := range l.lines {
		line.Age += deltaTime
		if line.Age < messageLifetime {
			kept = append(kept, line)
		}
	}
	l.lines = kept
}

// Lines 当前可见的消息（旧的在前）
func (l *MessageLog) Lines() []MessageLine {
	return l.lines
}

// Clear 清空消息
func (l *MessageLog) Clear() {
	l.lines = l.lines[:0]
}

// Close 取消订阅
func (l *MessageLog) Close() {
	l.d.Unsubscribe(l.sub)
}
