package systems

import (
	"math/rand"
	"testing"

	"github.com/decker502/wavewizard/pkg/components"
	"github.com/decker502/wavewizard/pkg/config"
	"github.com/decker502/wavewizard/pkg/ecs"
	"github.com/decker502/wavewizard/pkg/entities"
	"github.com/decker502/wavewizard/pkg/event"
	"github.com/decker502/wavewizard/pkg/game"
	"github.com/decker502/wavewizard/pkg/world"
)

// testFrame 测试用的固定帧长
const testFrame = 0.05

// testWorld 组装好的一局游戏（不含宿主）
type testWorld struct {
	em          *ecs.EntityManager
	scheduler   *game.Scheduler
	dispatcher  *event.Dispatcher
	tracker     *game.PopulationTracker
	arena       *world.Arena
	locator     *PlayerLocator
	progression *ProgressionSystem
	combat      *CombatSystem
	director    *SpawnDirector
	waves       *WaveStateSystem
	victory     *VictorySystem
	balance     *config.BalanceConfig
	player      ecs.EntityID

	states []components.WaveState
}

// testProfile 无开场旁白、参数可控的难度档位
func testProfile() config.DifficultyProfile {
	p := config.DefaultProfile()
	p.IntroLines = nil
	return p
}

func newTestWorld(t *testing.T, profile config.DifficultyProfile, script *config.SpawnScript) *testWorld {
	return newTestWorldOnMap(t, profile, script, config.DefaultMap())
}

func newTestWorldOnMap(t *testing.T, profile config.DifficultyProfile, script *config.SpawnScript, mapCfg config.MapConfig) *testWorld {
	t.Helper()

	w := &testWorld{
		em:         ecs.NewEntityManager(),
		scheduler:  game.NewScheduler(),
		dispatcher: event.NewDispatcher(),
		tracker:    game.NewPopulationTracker(),
		arena:      world.NewArena(mapCfg),
		balance:    config.DefaultBalanceConfig(),
	}
	rng := rand.New(rand.NewSource(7))

	w.locator = NewPlayerLocator(w.em, w.scheduler)
	w.progression = NewProgressionSystem(w.em, w.dispatcher, w.balance.Progression)
	w.combat = NewCombatSystem(w.em, w.tracker, w.arena, w.dispatcher, w.progression, w.balance.Combat, rng)
	w.director = NewSpawnDirector(w.em, w.tracker, w.arena, w.scheduler, w.dispatcher, w.combat, w.locator,
		config.DefaultEnemyPools(), script, w.balance.Spawn, profile, rng)
	w.waves = NewWaveStateSystem(w.em, w.scheduler, w.dispatcher, w.tracker, w.director, profile, w.balance, rng)
	w.victory = NewVictorySystem(w.em, w.waves, w.tracker, w.locator, w.balance.Victory, profile)
	w.combat.SetPlayerDeathHandler(func(reason string) { w.waves.TriggerGameOver(reason) })

	w.player = entities.NewPlayerEntity(w.em, w.balance, w.arena.StartX, w.arena.StartY)

	w.dispatcher.SubscribeFunc(event.StateChanged, func(e event.Event) {
		w.states = append(w.states, w.waves.State())
	})
	return w
}

// tick 按宿主的顺序推进一帧（不含移动和攻击）
func (w *testWorld) tick(dt float64) {
	w.scheduler.Update(dt)
	w.waves.Update(dt)
	w.victory.Update(dt)
	w.em.RemoveMarkedEntities()
}

// advance 以固定帧长推进若干秒
func (w *testWorld) advance(seconds float64) {
	for elapsed := 0.0; elapsed < seconds-1e-9; elapsed += testFrame {
		w.tick(testFrame)
	}
}

// killAllHostiles 由玩家击杀所有存活敌人
func (w *testWorld) killAllHostiles() {
	for _, id := range w.tracker.Entities() {
		w.combat.ApplyDamage(w.player, id, 1e6, false)
	}
}

// countEvents 订阅并统计某类事件
func countEvents(d *event.Dispatcher, eventType event.EventType) *int {
	n := new(int)
	d.SubscribeFunc(eventType, func(event.Event) { *n++ })
	return n
}

// singleWaveScript 第 1~4 波各一组、Boss 波为 lich 的简单脚本
func singleWaveScript(count int) *config.SpawnScript {
	zero := 0
	waves := map[int][]config.SpawnGroup{}
	for n := 1; n <= 4; n++ {
		waves[n] = []config.SpawnGroup{{Count: count, Tier: config.HostileWeak}}
	}
	return &config.SpawnScript{
		BossWave: 5,
		Waves:    waves,
		Boss:     []config.SpawnGroup{{Count: 1, Tier: config.HostileBoss, Variant: &zero}},
	}
}

// newHostileAt 直接创建一个敌人（不经过生成导演）
func newHostileAt(w *testWorld, x, y, maxHealth float64) ecs.EntityID {
	tpl := config.DefaultEnemyTemplate()
	tpl.MaxHealth = maxHealth
	id := entities.NewHostileEntity(w.em, config.HostileWeak, 0, tpl, x, y)
	w.tracker.Add(id)
	return id
}

func healthOf(t *testing.T, em *ecs.EntityManager, id ecs.EntityID) *components.HealthComponent {
	t.Helper()
	h, ok := ecs.GetComponent[*components.HealthComponent](em, id)
	if !ok {
		t.Fatalf("entity %d has no health", id)
	}
	return h
}
