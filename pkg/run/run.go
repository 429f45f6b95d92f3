// Package run 把一局游戏的全部系统组装在一起
//
// 宿主（桌面、终端、无界面校验工具）只需要：
//   - 每帧调用 Update(deltaTime)
//   - 通过 SetPlayerInput 写入移动方向
//   - 订阅 Dispatcher() 的通知，或读取 Status() 渲染
//
// 一局内的实体管理器、调度器、存活追踪、波次状态都只有一份，随 Run 创建与重建。
package run

import (
	"log"
	"math/rand"
	"time"

	"github.com/decker502/wavewizard/pkg/components"
	"github.com/decker502/wavewizard/pkg/config"
	"github.com/decker502/wavewizard/pkg/ecs"
	"github.com/decker502/wavewizard/pkg/entities"
	"github.com/decker502/wavewizard/pkg/event"
	"github.com/decker502/wavewizard/pkg/game"
	"github.com/decker502/wavewizard/pkg/systems"
	"github.com/decker502/wavewizard/pkg/world"
)

// Options 开局参数
type Options struct {
	Tier     config.DifficultyTier
	MapIndex int
	// Seed 随机种子，0 表示使用当前时间
	Seed    int64
	Verbose bool
}

// Config 一局游戏用到的全部静态配置
type Config struct {
	Difficulty *config.DifficultyTable
	Script     *config.SpawnScript
	Pools      *config.EnemyPools
	Balance    *config.BalanceConfig
	Maps       *config.MapCatalog
}

// LoadConfig 从嵌入数据加载配置，任何一项缺失都回退到内置默认值
func LoadConfig() Config {
	return Config{
		Difficulty: config.LoadDifficultyTableOrDefault(config.DifficultyConfigPath),
		Script:     config.LoadSpawnScriptOrDefault(config.SpawnScriptPath),
		Pools:      config.LoadEnemyPoolsOrDefault(config.EnemyConfigPath),
		Balance:    config.LoadBalanceConfigOrDefault(config.BalanceConfigPath),
		Maps:       config.LoadMapCatalogOrDefault(config.MapConfigPath),
	}
}

// Status 供 UI 渲染的只读快照
type Status struct {
	State        components.WaveState
	Description  string
	Wave         int // 本局第几波
	AbsoluteWave int // 绝对波次编号
	TotalWaves   int
	StateTimer   float64
	GlobalTimer  float64
	Overtime     bool
	Alive        int

	Health, MaxHealth            float64
	Level, Experience, NextLevel int
	Coins, CoinsRequired         int
	Score, Kills                 int
	Elapsed                      float64
}

// Run 一局游戏
type Run struct {
	opts    Options
	cfg     Config
	profile config.DifficultyProfile
	mapCfg  config.MapConfig

	entityManager *ecs.EntityManager
	scheduler     *game.Scheduler
	dispatcher    *event.Dispatcher
	tracker       *game.PopulationTracker
	arena         *world.Arena
	rng           *rand.Rand

	locator     *systems.PlayerLocator
	progression *systems.ProgressionSystem
	combat      *systems.CombatSystem
	director    *systems.SpawnDirector
	waves       *systems.WaveStateSystem
	victory     *systems.VictorySystem
	physics     *systems.PhysicsSystem
	attacks     *systems.AttackSystem
	lifetime    *systems.LifetimeSystem
	pickup      *systems.PickupSystem

	player  ecs.EntityID
	started bool
}

// New 使用嵌入配置创建一局游戏
func New(opts Options) *Run {
	return NewWithConfig(LoadConfig(), opts)
}

// NewWithConfig 使用给定配置创建一局游戏
func NewWithConfig(cfg Config, opts Options) *Run {
	if cfg.Balance == nil {
		cfg.Balance = config.DefaultBalanceConfig()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	r := &Run{
		opts:          opts,
		cfg:           cfg,
		profile:       cfg.Difficulty.Profile(opts.Tier),
		mapCfg:        cfg.Maps.Map(opts.MapIndex),
		entityManager: ecs.NewEntityManager(),
		scheduler:     game.NewScheduler(),
		dispatcher:    event.NewDispatcher(),
		tracker:       game.NewPopulationTracker(),
		rng:           rand.New(rand.NewSource(seed)),
	}
	r.arena = world.NewArena(r.mapCfg)

	balance := cfg.Balance
	r.locator = systems.NewPlayerLocator(r.entityManager, r.scheduler)
	r.progression = systems.NewProgressionSystem(r.entityManager, r.dispatcher, balance.Progression)
	r.combat = systems.NewCombatSystem(r.entityManager, r.tracker, r.arena, r.dispatcher, r.progression, balance.Combat, r.rng)
	r.director = systems.NewSpawnDirector(r.entityManager, r.tracker, r.arena, r.scheduler, r.dispatcher,
		r.combat, r.locator, cfg.Pools, cfg.Script, balance.Spawn, r.profile, r.rng)
	r.waves = systems.NewWaveStateSystem(r.entityManager, r.scheduler, r.dispatcher, r.tracker, r.director, r.profile, balance, r.rng)
	r.victory = systems.NewVictorySystem(r.entityManager, r.waves, r.tracker, r.locator, balance.Victory, r.profile)
	r.physics = systems.NewPhysicsSystem(r.entityManager, r.arena, r.locator)
	r.attacks = systems.NewAttackSystem(r.entityManager, r.combat, r.locator, r.dispatcher)
	r.lifetime = systems.NewLifetimeSystem(r.entityManager)
	r.pickup = systems.NewPickupSystem(r.entityManager, r.locator, r.progression, r.dispatcher)

	r.combat.SetPlayerDeathHandler(func(reason string) {
		r.waves.TriggerGameOver(reason)
	})

	r.director.SetVerbose(opts.Verbose)
	r.waves.SetVerbose(opts.Verbose)
	r.lifetime.SetVerbose(opts.Verbose)

	r.player = entities.NewPlayerEntity(r.entityManager, balance, r.arena.StartX, r.arena.StartY)

	log.Printf("[Run] New run: tier=%s map=%s seed=%d", r.profile.Tier, r.arena.ID, seed)
	return r
}

// Start 开始播放开场（重复调用无效）
func (r *Run) Start() {
	if r.started {
		return
	}
	r.started = true
	r.waves.Start()
}

// Update 推进一帧
//
// 顺序：
//  1. 调度器（延迟链、生成序列）
//  2. 移动与攻击（终局后停止）
//  3. 尸体移除、金币拾取
//  4. 波次状态机，然后胜利判定：本帧的死亡已经同步反映在存活追踪里
//  5. 清理标记删除的实体
func (r *Run) Update(deltaTime float64) {
	if !r.started {
		return
	}
	r.scheduler.Update(deltaTime)

	if !r.waves.State().IsTerminal() {
		r.physics.Update(deltaTime)
		r.attacks.Update(deltaTime)
		r.pickup.Update(deltaTime)
	}
	r.lifetime.Update(deltaTime)

	r.waves.Update(deltaTime)
	r.victory.Update(deltaTime)

	r.entityManager.RemoveMarkedEntities()
}

// Restart 作废所有延迟链并重新开局（同一难度与地图）
func (r *Run) Restart() {
	log.Printf("[Run] Restarting run")
	r.scheduler.Reset()
	r.entityManager.Clear()
	r.tracker.Clear()
	r.locator.Reset()
	r.waves.Reset()
	r.victory.Reset()

	r.player = entities.NewPlayerEntity(r.entityManager, r.cfg.Balance, r.arena.StartX, r.arena.StartY)
	r.started = false
	r.Start()
}

// SetPlayerInput 写入玩家移动方向（长度超过 1 时会被归一化）
func (r *Run) SetPlayerInput(x, y float64) {
	pc, ok := ecs.GetComponent[*components.PlayerComponent](r.entityManager, r.player)
	if !ok {
		return
	}
	pc.InputX, pc.InputY = x, y
}

// Status 当前状态快照
func (r *Run) Status() Status {
	snap := r.waves.Snapshot()
	st := Status{
		State:         snap.State,
		Description:   snap.Description,
		Wave:          snap.CurrentWaveNumber,
		AbsoluteWave:  r.waves.CurrentAbsoluteWaveIndex(),
		TotalWaves:    r.profile.TotalWaves,
		StateTimer:    snap.StateTimer,
		GlobalTimer:   snap.GlobalTimer,
		Overtime:      snap.OvertimeStarted,
		Alive:         r.tracker.Count(),
		CoinsRequired: r.profile.CoinsRequired,
		Elapsed:       snap.Elapsed,
	}
	if h, ok := ecs.GetComponent[*components.HealthComponent](r.entityManager, r.player); ok {
		st.Health, st.MaxHealth = h.CurrentHealth, h.MaxHealth
	}
	if p, ok := ecs.GetComponent[*components.ProgressionComponent](r.entityManager, r.player); ok {
		st.Level, st.Experience, st.NextLevel = p.Level, p.Experience, p.ExperienceToNext
		st.Coins, st.Score, st.Kills = p.Coins, p.Score, p.Kills
	}
	return st
}

// Finished 终局演出是否已经结束
func (r *Run) Finished() bool {
	return r.waves.State().IsTerminal() && r.waves.OutcomeReady()
}

// Result 结算数据（用于战绩记录）
func (r *Run) Result() game.RunResult {
	st := r.Status()
	return game.RunResult{
		Tier:     r.profile.Tier.String(),
		MapID:    r.arena.ID,
		Victory:  st.State == components.WaveStateVictory,
		Score:    st.Score,
		Kills:    st.Kills,
		Level:    st.Level,
		Duration: st.Elapsed,
	}
}

// Dispatcher 通知分发器
func (r *Run) Dispatcher() *event.Dispatcher {
	return r.dispatcher
}

// EntityManager 实体管理器（宿主渲染用，只读）
func (r *Run) EntityManager() *ecs.EntityManager {
	return r.entityManager
}

// Arena 竞技场
func (r *Run) Arena() *world.Arena {
	return r.arena
}

// Profile 本局难度参数
func (r *Run) Profile() config.DifficultyProfile {
	return r.profile
}

// Player 玩家实体
func (r *Run) Player() ecs.EntityID {
	return r.player
}

// Combat 伤害结算（调试和测试用）
func (r *Run) Combat() *systems.CombatSystem {
	return r.combat
}

// Tracker 存活追踪
func (r *Run) Tracker() *game.PopulationTracker {
	return r.tracker
}

// Outcome 胜负来源（未结束时为空）
func (r *Run) Outcome() string {
	return r.waves.OutcomeSource()
}
