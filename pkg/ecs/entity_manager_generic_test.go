package ecs

import "testing"

type genericHealth struct {
	Current, Max float64
}

type genericFaction struct {
	Hostile bool
}

func TestGenericAPI(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &genericHealth{Current: 10, Max: 10})

	t.Run("GetComponent", func(t *testing.T) {
		hp, ok := GetComponent[*genericHealth](em, id)
		if !ok {
			t.Fatal("GetComponent 失败：组件不存在")
		}
		if hp.Current != 10 {
			t.Errorf("Current: got %v, want 10", hp.Current)
		}
	})

	t.Run("MissingComponent", func(t *testing.T) {
		if _, ok := GetComponent[*genericFaction](em, id); ok {
			t.Error("expected missing component")
		}
		if HasComponent[*genericFaction](em, id) {
			t.Error("HasComponent should be false")
		}
	})

	t.Run("ValueVsPointerTypesAreDistinct", func(t *testing.T) {
		if _, ok := GetComponent[genericHealth](em, id); ok {
			t.Error("value type lookup must not match pointer component")
		}
	})

	t.Run("Query", func(t *testing.T) {
		other := em.CreateEntity()
		AddComponent(em, other, &genericHealth{Current: 5, Max: 5})
		AddComponent(em, other, &genericFaction{Hostile: true})

		if got := len(GetEntitiesWith1[*genericHealth](em)); got != 2 {
			t.Errorf("GetEntitiesWith1: got %d, want 2", got)
		}
		both := GetEntitiesWith2[*genericHealth, *genericFaction](em)
		if len(both) != 1 || both[0] != other {
			t.Errorf("GetEntitiesWith2: got %v, want [%d]", both, other)
		}
	})

	t.Run("RemoveComponent", func(t *testing.T) {
		RemoveComponent[*genericHealth](em, id)
		if HasComponent[*genericHealth](em, id) {
			t.Error("component should be removed")
		}
	})
}
