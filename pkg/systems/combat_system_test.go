package systems

import (
	"math"
	"testing"

	"github.com/decker502/wavewizard/pkg/components"
	"github.com/decker502/wavewizard/pkg/config"
	"github.com/decker502/wavewizard/pkg/ecs"
	"github.com/decker502/wavewizard/pkg/event"
)

func TestAreaDamageSecondaryMultiplier(t *testing.T) {
	w := newTestWorld(t, testProfile(), nil)
	w.combat.balance.SecondaryMultiplier = 0.5
	w.combat.balance.AreaRadius = 2.5

	primary := newHostileAt(w, 25, 20, 100)
	second := newHostileAt(w, 26, 20, 100)
	third := newHostileAt(w, 25, 21.5, 100)
	outside := newHostileAt(w, 30, 20, 100)

	results := w.combat.ApplyDamage(w.player, primary, 10, true)
	if len(results) != 3 {
		t.Fatalf("expected 3 damaged targets, got %d", len(results))
	}

	tests := []struct {
		name string
		id   ecs.EntityID
		want float64
	}{
		{"主目标全额", primary, 90},
		{"次要目标一半", second, 95},
		{"次要目标一半（另一方向）", third, 95},
		{"范围外不受伤", outside, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := healthOf(t, w.em, tt.id).CurrentHealth; got != tt.want {
				t.Errorf("health = %.1f, want %.1f", got, tt.want)
			}
		})
	}
}

func TestAreaDamageIgnoresAttackerFaction(t *testing.T) {
	w := newTestWorld(t, testProfile(), nil)
	// 玩家站在主目标旁边，不会被自己的法术波及
	target := newHostileAt(w, w.arena.StartX+1, w.arena.StartY, 100)
	w.combat.ApplyDamage(w.player, target, 10, true)

	if h := healthOf(t, w.em, w.player); h.CurrentHealth != h.MaxHealth {
		t.Errorf("player took splash damage: %.1f", h.CurrentHealth)
	}
}

// 伤害序列中生命值不低于 0，死亡只确认一次
func TestLethalDamageConfirmsDeathOnce(t *testing.T) {
	w := newTestWorld(t, testProfile(), nil)
	kills := countEvents(w.dispatcher, event.EnemyKilled)
	target := newHostileAt(w, 25, 20, 30)

	damage := []float64{12, 12, 12, 12}
	killedCount := 0
	for _, d := range damage {
		for _, r := range w.combat.ApplyDamage(w.player, target, d, false) {
			if r.Killed {
				killedCount++
			}
		}
		if h := healthOf(t, w.em, target); h.CurrentHealth < 0 {
			t.Fatalf("health went negative: %.1f", h.CurrentHealth)
		}
	}

	h := healthOf(t, w.em, target)
	if !h.IsDead || h.CurrentHealth != 0 {
		t.Errorf("dead=%v health=%.1f, want dead at 0", h.IsDead, h.CurrentHealth)
	}
	if killedCount != 1 || *kills != 1 {
		t.Errorf("killed reported %d times, %d events; want 1", killedCount, *kills)
	}
	if w.tracker.Contains(target) {
		t.Error("dead hostile should be removed from the tracker synchronously")
	}

	prog, _ := ecs.GetComponent[*components.ProgressionComponent](w.em, w.player)
	if prog.Kills != 1 || prog.Score != config.DefaultEnemyTemplate().Score {
		t.Errorf("kills=%d score=%d, want a single reward", prog.Kills, prog.Score)
	}
}

func TestDeathHaltsPursuitAndSchedulesRemoval(t *testing.T) {
	w := newTestWorld(t, testProfile(), nil)
	target := newHostileAt(w, 25, 20, 10)
	w.combat.ApplyDamage(w.player, target, 50, false)

	hostile, _ := ecs.GetComponent[*components.HostileComponent](w.em, target)
	if hostile.PursuitActive {
		t.Error("pursuit should stop on death")
	}
	lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](w.em, target)
	if !ok || lifetime.MaxLifetime != w.balance.Combat.DeathDelay {
		t.Fatalf("corpse lifetime missing or wrong: %+v", lifetime)
	}

	coins := ecs.GetEntitiesWith1[*components.CoinComponent](w.em)
	if len(coins) != config.DefaultEnemyTemplate().RewardCoins {
		t.Errorf("dropped %d coins, want %d", len(coins), config.DefaultEnemyTemplate().RewardCoins)
	}
	for _, id := range coins {
		x, y, _ := entityPosition(w.em, id)
		if d := distance(x, y, 25, 20); d > w.balance.Combat.DropRadius+1e-9 {
			t.Errorf("coin dropped %.2f away, outside drop radius", d)
		}
	}
}

func TestDamageOnDeadPrimaryIsNoop(t *testing.T) {
	w := newTestWorld(t, testProfile(), nil)
	primary := newHostileAt(w, 25, 20, 10)
	nearby := newHostileAt(w, 26, 20, 100)

	w.combat.ApplyDamage(w.player, primary, 50, false)
	results := w.combat.ApplyDamage(w.player, primary, 50, true)

	if len(results) != 0 {
		t.Errorf("expected no results, got %+v", results)
	}
	if h := healthOf(t, w.em, nearby); h.CurrentHealth != 100 {
		t.Errorf("splash applied from a dead primary: %.1f", h.CurrentHealth)
	}
}

func TestHostileKillsGrantNoReward(t *testing.T) {
	w := newTestWorld(t, testProfile(), nil)
	a := newHostileAt(w, 25, 20, 100)
	b := newHostileAt(w, 26, 20, 10)

	w.combat.ApplyDamage(a, b, 50, false)

	prog, _ := ecs.GetComponent[*components.ProgressionComponent](w.em, w.player)
	if prog.Kills != 0 || prog.Score != 0 || prog.Experience != 0 {
		t.Errorf("non-player kill granted rewards: %+v", prog)
	}
}

func TestDamageMultiplierScalesAttack(t *testing.T) {
	w := newTestWorld(t, testProfile(), nil)
	attacker := newHostileAt(w, 25, 20, 100)
	attack, _ := ecs.GetComponent[*components.AttackComponent](w.em, attacker)
	attack.DamageMultiplier = 1.5

	w.combat.ApplyDamage(attacker, w.player, 10, false)
	h := healthOf(t, w.em, w.player)
	if math.Abs(h.CurrentHealth-(h.MaxHealth-15)) > 1e-9 {
		t.Errorf("player health = %.1f, want %.1f", h.CurrentHealth, h.MaxHealth-15)
	}
}

func TestDifficultyScalingAppliedOnce(t *testing.T) {
	w := newTestWorld(t, testProfile(), nil)
	id := newHostileAt(w, 25, 20, 40)
	profile := testProfile()
	profile.EnemyHealthMultiplier = 1.5
	profile.EnemyDamageMultiplier = 2

	if !w.combat.ApplyDifficultyScaling(id, profile) {
		t.Fatal("first scaling should apply")
	}
	if w.combat.ApplyDifficultyScaling(id, profile) {
		t.Error("second scaling should be a no-op")
	}

	h := healthOf(t, w.em, id)
	if h.MaxHealth != 60 || h.CurrentHealth != 60 {
		t.Errorf("health = %.1f/%.1f, want 60/60", h.CurrentHealth, h.MaxHealth)
	}
	attack, _ := ecs.GetComponent[*components.AttackComponent](w.em, id)
	if attack.DamageMultiplier != 2 {
		t.Errorf("damage multiplier = %.1f, want 2", attack.DamageMultiplier)
	}

	if w.combat.ApplyDifficultyScaling(w.player, profile) {
		t.Error("scaling should only apply to hostiles")
	}
}
