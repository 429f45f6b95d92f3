package event

import "testing"

type recordingListener struct {
	events []Event
}

func (r *recordingListener) OnEvent(e Event) {
	r.events = append(r.events, e)
}

func TestDispatchToSubscribers(t *testing.T) {
	d := NewDispatcher()
	rec := &recordingListener{}
	d.Subscribe(ScoreChanged, rec)

	var seen []int
	d.SubscribeFunc(ScoreChanged, func(e Event) {
		seen = append(seen, e.Data.(int))
	})

	d.Emit(ScoreChanged, 10)
	d.Emit(KillsChanged, 1) // 无人订阅

	if len(rec.events) != 1 || rec.events[0].Data.(int) != 10 {
		t.Errorf("listener got %+v", rec.events)
	}
	if len(seen) != 1 || seen[0] != 10 {
		t.Errorf("func listener got %v", seen)
	}
}

func TestUnsubscribe(t *testing.T) {
	d := NewDispatcher()
	calls := 0
	sub := d.SubscribeFunc(Victory, func(Event) { calls++ })
	other := d.SubscribeFunc(Victory, func(Event) {})

	d.Unsubscribe(sub)
	d.Unsubscribe(sub) // 重复取消无副作用
	d.Emit(Victory, "test")

	if calls != 0 {
		t.Errorf("unsubscribed listener was called %d times", calls)
	}
	if d.Count(Victory) != 1 {
		t.Errorf("expected 1 remaining subscriber, got %d", d.Count(Victory))
	}
	d.Unsubscribe(other)
	if d.Count(Victory) != 0 {
		t.Errorf("expected no subscribers, got %d", d.Count(Victory))
	}
}

func TestSubscribeDuringDispatch(t *testing.T) {
	d := NewDispatcher()
	late := 0
	d.SubscribeFunc(Message, func(Event) {
		d.SubscribeFunc(Message, func(Event) { late++ })
	})

	d.Emit(Message, "first")
	if late != 0 {
		t.Errorf("listener added during dispatch should not see the current event")
	}
	d.Emit(Message, "second")
	if late != 1 {
		t.Errorf("expected late listener to see the second event once, got %d", late)
	}
}

func TestNilDispatcher(t *testing.T) {
	var d *Dispatcher
	d.Dispatch(Event{Type: GameOver}) // 不应 panic
}
