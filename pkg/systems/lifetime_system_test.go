package systems

import (
	"testing"

	"github.com/decker502/wavewizard/pkg/components"
	"github.com/decker502/wavewizard/pkg/ecs"
)

func TestLifetimeUpdate(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.LifetimeComponent{MaxLifetime: 2.0})

	system.Update(1.5)

	lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](em, id)
	if lifetime.CurrentLifetime != 1.5 {
		t.Errorf("Expected CurrentLifetime=1.5, got %f", lifetime.CurrentLifetime)
	}
	if lifetime.IsExpired || em.IsPendingDestroy(id) {
		t.Error("Entity should not be expired yet")
	}
}

func TestLifetimeExpiration(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.LifetimeComponent{MaxLifetime: 2.0})

	system.Update(2.5)

	lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](em, id)
	if !lifetime.IsExpired {
		t.Error("Entity should be expired")
	}
	if !em.IsPendingDestroy(id) {
		t.Error("Expired entity should be marked for removal")
	}

	em.RemoveMarkedEntities()
	if em.Exists(id) {
		t.Error("Entity should be removed")
	}
}

// 尸体在死亡延迟后移除，存活追踪早已清空
func TestCorpseRemovedAfterDeathDelay(t *testing.T) {
	w := newTestWorld(t, testProfile(), nil)
	lifetime := NewLifetimeSystem(w.em)
	target := newHostileAt(w, 25, 20, 10)

	w.combat.ApplyDamage(w.player, target, 50, false)
	if w.tracker.Count() != 0 {
		t.Fatal("tracker should drop the hostile at death confirmation")
	}
	if !w.em.Exists(target) {
		t.Fatal("corpse should linger until the death delay elapses")
	}

	lifetime.Update(w.balance.Combat.DeathDelay + 0.01)
	w.em.RemoveMarkedEntities()
	if w.em.Exists(target) {
		t.Error("corpse should be removed after the death delay")
	}
}
