package systems

import (
	"math/rand"
	"testing"

	"github.com/decker502/wavewizard/pkg/components"
	"github.com/decker502/wavewizard/pkg/config"
	"github.com/decker502/wavewizard/pkg/ecs"
	"github.com/decker502/wavewizard/pkg/event"
)

func TestSpawnOneEnemyInsideAnnulus(t *testing.T) {
	p := testProfile()
	p.EnemyHealthMultiplier = 2
	w := newTestWorld(t, p, nil)
	spawned := countEvents(w.dispatcher, event.EnemySpawned)

	for i := 0; i < 20; i++ {
		id, ok := w.director.SpawnOneEnemy(config.HostileWeak, -1)
		if !ok {
			t.Fatalf("spawn %d failed on an open arena", i)
		}
		x, y, _ := entityPosition(w.em, id)
		d := distance(x, y, w.arena.StartX, w.arena.StartY)
		if d < w.balance.Spawn.MinRadius-1e-9 || d > w.balance.Spawn.MaxRadius+1e-9 {
			t.Errorf("spawn at distance %.2f outside [%.0f, %.0f]", d, w.balance.Spawn.MinRadius, w.balance.Spawn.MaxRadius)
		}
		hostile, _ := ecs.GetComponent[*components.HostileComponent](w.em, id)
		if !hostile.ScalingApplied {
			t.Error("difficulty scaling not applied at spawn")
		}
		if h := healthOf(t, w.em, id); h.MaxHealth != config.DefaultEnemyTemplate().MaxHealth*2 {
			t.Errorf("max health = %.1f, want doubled", h.MaxHealth)
		}
	}
	if w.tracker.Count() != 20 || *spawned != 20 {
		t.Errorf("tracker=%d events=%d, want 20", w.tracker.Count(), *spawned)
	}
}

// 圆环被完全阻挡时放弃生成，不报错，状态机继续运行
func TestSpawnBlockedAnnulusSkipsSilently(t *testing.T) {
	blocked := config.DefaultMap()
	blocked.Obstacles = []config.ObstacleConfig{
		{RectConfig: config.RectConfig{X: 0, Y: 0, W: 40, H: 40}, Category: "solid"},
	}
	w := newTestWorldOnMap(t, twoWaveProfile(), singleWaveScript(3), blocked)

	if _, ok := w.director.SpawnOneEnemy(config.HostileWeak, 0); ok {
		t.Fatal("spawn should fail when every candidate is blocked")
	}
	if w.tracker.Count() != 0 {
		t.Errorf("population changed: %d", w.tracker.Count())
	}

	w.waves.Start()
	w.tick(testFrame)
	if w.waves.State() != components.WaveStatePreparationBuffer {
		t.Errorf("empty wave should clear, state = %s", w.waves.State())
	}
}

func TestSpawnWithoutPlayerRetriesThenDisables(t *testing.T) {
	w := newTestWorld(t, testProfile(), nil)
	w.em.DestroyEntity(w.player)
	w.em.RemoveMarkedEntities()

	if _, ok := w.director.SpawnOneEnemy(config.HostileWeak, 0); ok {
		t.Fatal("spawn without a player should fail")
	}
	if w.locator.Disabled() {
		t.Fatal("locator should retry before disabling")
	}

	w.scheduler.Update(PlayerLookupRetryDelay + 0.01)
	if !w.locator.Disabled() {
		t.Error("locator should disable itself after the retry fails")
	}
	if _, ok := w.director.SpawnOneEnemy(config.HostileWeak, 0); ok {
		t.Error("disabled locator should keep spawning off")
	}
}

func TestSpawnFallsBackForMissingPool(t *testing.T) {
	w := newTestWorld(t, testProfile(), nil)
	w.director.pools = &config.EnemyPools{Tiers: map[config.HostileTier][]config.EnemyTemplate{
		config.HostileWeak: {config.DefaultEnemyTemplate()},
	}}

	id, ok := w.director.SpawnOneEnemy(config.HostileBoss, 0)
	if !ok {
		t.Fatal("missing pool should fall back to the default template")
	}
	if got := hostileTemplateID(w.em, id); got != config.DefaultEnemyTemplate().ID {
		t.Errorf("template = %q, want fallback", got)
	}

	// 越界的 variant 改为随机选择
	if _, ok := w.director.SpawnOneEnemy(config.HostileWeak, 9); !ok {
		t.Error("out-of-range variant should still spawn")
	}
}

func TestRunSequenceRespectsGroupDelays(t *testing.T) {
	w := newTestWorld(t, testProfile(), nil)
	groups := []config.SpawnGroup{
		{Count: 2, Tier: config.HostileWeak, DelayAfter: 2},
		{Count: 1, Tier: config.HostileMedium, DelayAfter: 5},
	}
	done := false
	w.director.RunSequence(1, groups, func() { done = true })

	if w.tracker.Count() != 2 || done {
		t.Fatalf("after start: count=%d done=%v", w.tracker.Count(), done)
	}
	w.scheduler.Update(1.5)
	if w.tracker.Count() != 2 {
		t.Fatalf("group 2 started early: count=%d", w.tracker.Count())
	}
	w.scheduler.Update(0.5)
	if w.tracker.Count() != 3 {
		t.Errorf("count = %d, want 3", w.tracker.Count())
	}
	if !done {
		t.Error("sequence should finish right after the last group")
	}
}

func TestPickWeighted(t *testing.T) {
	tiers := []config.HostileTier{config.HostileWeak, config.HostileMedium, config.HostileStrong}
	rng := rand.New(rand.NewSource(3))

	t.Run("零权重永不选中", func(t *testing.T) {
		for i := 0; i < 500; i++ {
			got, ok := pickWeighted(rng, tiers, []float64{0, 1, 0})
			if !ok || got != config.HostileMedium {
				t.Fatalf("got %s ok=%v, want medium", got, ok)
			}
		}
	})

	t.Run("全部为零", func(t *testing.T) {
		if _, ok := pickWeighted(rng, tiers, []float64{0, 0, 0}); ok {
			t.Error("all-zero weights should report no pick")
		}
		if _, ok := pickWeighted(rng, tiers, nil); ok {
			t.Error("missing weights should report no pick")
		}
	})

	t.Run("按权重分布", func(t *testing.T) {
		counts := map[config.HostileTier]int{}
		const n = 8000
		for i := 0; i < n; i++ {
			got, _ := pickWeighted(rng, tiers, []float64{1, 3, 0})
			counts[got]++
		}
		if counts[config.HostileStrong] != 0 {
			t.Errorf("strong picked %d times with zero weight", counts[config.HostileStrong])
		}
		share := float64(counts[config.HostileMedium]) / n
		if share < 0.7 || share > 0.8 {
			t.Errorf("medium share = %.3f, want about 0.75", share)
		}
	})
}

func TestSpawnMixedFallsBackToWeak(t *testing.T) {
	w := newTestWorld(t, testProfile(), nil)
	id, ok := w.director.SpawnMixed(nil, nil)
	if !ok {
		t.Fatal("mixed spawn should fall back instead of failing")
	}
	hostile, _ := ecs.GetComponent[*components.HostileComponent](w.em, id)
	if hostile.Tier != config.HostileWeak {
		t.Errorf("tier = %s, want weak", hostile.Tier)
	}
}
