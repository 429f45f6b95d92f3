package game

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/decker502/wavewizard/pkg/ecs"
)

func TestPopulationTrackerBasics(t *testing.T) {
	p := NewPopulationTracker()
	if p.Count() != 0 || p.EverSpawned() {
		t.Fatal("new tracker should be empty")
	}

	p.Add(1)
	p.Add(2)
	p.Add(3)
	p.Add(2) // 重复添加

	if p.Count() != 3 {
		t.Errorf("count = %d, want 3", p.Count())
	}
	if !p.Remove(2) {
		t.Error("Remove(2) should succeed")
	}
	if p.Remove(2) {
		t.Error("second Remove(2) should report false")
	}
	if p.Remove(99) {
		t.Error("removing an untracked entity should report false")
	}

	if got := p.Entities(); !reflect.DeepEqual(got, []ecs.EntityID{1, 3}) {
		t.Errorf("entities = %v, want [1 3]", got)
	}
	if !p.Contains(3) || p.Contains(2) {
		t.Error("Contains mismatch")
	}
	if !p.EverSpawned() || p.TotalAdded() != 3 {
		t.Errorf("everSpawned=%v totalAdded=%d", p.EverSpawned(), p.TotalAdded())
	}
}

// 任意 Add/Remove 序列后，数量等于当前被追踪实体的数量且不为负
func TestPopulationTrackerCountMatchesModel(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := NewPopulationTracker()
	model := map[ecs.EntityID]bool{}

	for i := 0; i < 2000; i++ {
		id := ecs.EntityID(rng.Intn(30) + 1)
		if rng.Intn(2) == 0 {
			p.Add(id)
			model[id] = true
		} else {
			p.Remove(id)
			delete(model, id)
		}
		if p.Count() != len(model) {
			t.Fatalf("step %d: count %d != model %d", i, p.Count(), len(model))
		}
	}

	for _, id := range p.Entities() {
		if !model[id] {
			t.Errorf("tracker contains %d which the model does not", id)
		}
	}
}

func TestPopulationTrackerClear(t *testing.T) {
	p := NewPopulationTracker()
	p.Add(5)
	p.Clear()
	if p.Count() != 0 || p.EverSpawned() || p.Contains(5) {
		t.Error("Clear should reset all state")
	}
	p.Add(5)
	if p.Count() != 1 {
		t.Error("tracker should be usable after Clear")
	}
}
