package systems

import (
	"log"
	"math/rand"

	"github.com/decker502/wavewizard/pkg/components"
	"github.com/decker502/wavewizard/pkg/config"
	"github.com/decker502/wavewizard/pkg/ecs"
	"github.com/decker502/wavewizard/pkg/entities"
	"github.com/decker502/wavewizard/pkg/event"
	"github.com/decker502/wavewizard/pkg/game"
	"github.com/decker502/wavewizard/pkg/world"
)

// SpawnDirector 把波次脚本变成按序执行的生成指令
//
// 职责：
//   - 按组顺序生成敌人，组间延迟由调度器执行（第 N+1 组一定在第 N 组延迟结束后开始）
//   - 在玩家周围的圆环内采样生成位置，有限次重试后放弃（不报错）
//   - 加时阶段按权重混合生成
//   - 每个新敌人应用一次难度倍率并加入存活追踪
type SpawnDirector struct {
	entityManager *ecs.EntityManager
	tracker       *game.PopulationTracker
	arena         *world.Arena
	scheduler     *game.Scheduler
	dispatcher    *event.Dispatcher
	combat        *CombatSystem
	locator       *PlayerLocator
	pools         *config.EnemyPools
	script        *config.SpawnScript
	spawn         config.SpawnBalance
	profile       config.DifficultyProfile
	rng           *rand.Rand

	verbose bool
}

// NewSpawnDirector 创建生成导演
func NewSpawnDirector(
	em *ecs.EntityManager,
	tracker *game.PopulationTracker,
	arena *world.Arena,
	scheduler *game.Scheduler,
	dispatcher *event.Dispatcher,
	combat *CombatSystem,
	locator *PlayerLocator,
	pools *config.EnemyPools,
	script *config.SpawnScript,
	spawn config.SpawnBalance,
	profile config.DifficultyProfile,
	rng *rand.Rand,
) *SpawnDirector {
	if pools == nil {
		log.Printf("[SpawnDirector] Warning: no enemy pools configured, using built-in pools")
		pools = config.DefaultEnemyPools()
	}
	if script == nil {
		log.Printf("[SpawnDirector] Warning: no spawn script configured, using built-in script")
		script = config.DefaultSpawnScript()
	}
	return &SpawnDirector{
		entityManager: em,
		tracker:       tracker,
		arena:         arena,
		scheduler:     scheduler,
		dispatcher:    dispatcher,
		combat:        combat,
		locator:       locator,
		pools:         pools,
		script:        script,
		spawn:         spawn,
		profile:       profile,
		rng:           rng,
	}
}

// SetVerbose 设置是否输出详细日志（生成失败等逐帧信息）
func (d *SpawnDirector) SetVerbose(verbose bool) {
	d.verbose = verbose
}

// BossWave Boss 战对应的绝对波次编号
func (d *SpawnDirector) BossWave() int {
	return d.script.BossWave
}

// GroupsForWave 绝对波次对应的生成组
func (d *SpawnDirector) GroupsForWave(wave int) []config.SpawnGroup {
	return d.script.GroupsForWave(wave)
}

// BossGroups Boss 战的生成组
func (d *SpawnDirector) BossGroups() []config.SpawnGroup {
	return d.script.Boss
}

// RunSequence 按顺序执行生成组
// 每组生成后等待该组的 DelayAfter 再进入下一组；最后一组生成后立即调用 onDone。
// 返回的句柄取消后，剩余的组不再生成
func (d *SpawnDirector) RunSequence(wave int, groups []config.SpawnGroup, onDone func()) *game.ChainHandle {
	steps := make([]game.ChainStep, len(groups))
	for i, g := range groups {
		group := g
		index := i
		delay := group.DelayAfter
		if i == len(groups)-1 {
			delay = 0
		}
		steps[i] = game.ChainStep{
			Do: func() {
				n := d.SpawnGroup(group)
				log.Printf("[SpawnDirector] Wave %d group %d/%d: spawned %d/%d %s",
					wave, index+1, len(groups), n, group.Count, group.Tier)
			},
			Delay: delay,
		}
	}
	return d.scheduler.RunChain(steps, onDone)
}

// SpawnGroup 生成一组敌人，返回实际生成的数量
func (d *SpawnDirector) SpawnGroup(group config.SpawnGroup) int {
	spawned := 0
	for i := 0; i < group.Count; i++ {
		if _, ok := d.SpawnOneEnemy(group.Tier, group.VariantIndex()); ok {
			spawned++
		}
	}
	return spawned
}

// templatePool 取阶池，缺失时回退到内置兜底模板
func (d *SpawnDirector) templatePool(tier config.HostileTier) []config.EnemyTemplate {
	pool, err := d.pools.Pool(tier)
	if err != nil {
		log.Printf("[SpawnDirector] Warning: %v, using fallback template", err)
		return []config.EnemyTemplate{config.DefaultEnemyTemplate()}
	}
	return pool
}

// SpawnOneEnemy 在玩家周围生成一个敌人
// variant < 0 表示随机选择；找不到合法位置或找不到玩家时返回 ok=false
func (d *SpawnDirector) SpawnOneEnemy(tier config.HostileTier, variant int) (ecs.EntityID, bool) {
	pool := d.templatePool(tier)
	if variant >= len(pool) {
		log.Printf("[SpawnDirector] Warning: variant %d out of range for tier %s, picking randomly", variant, tier)
		variant = -1
	}
	if variant < 0 {
		variant = d.rng.Intn(len(pool))
	}
	tpl := pool[variant]

	player, ok := d.locator.Player()
	if !ok {
		if d.verbose {
			log.Printf("[SpawnDirector] No player to spawn around, skipping %s", tpl.ID)
		}
		return 0, false
	}
	px, py, ok := entityPosition(d.entityManager, player)
	if !ok {
		return 0, false
	}

	x, y, ok := d.arena.SampleAnnulus(d.rng, px, py, d.spawn.MinRadius, d.spawn.MaxRadius, tpl.Radius, d.spawn.MaxAttempts)
	if !ok {
		if d.verbose {
			log.Printf("[SpawnDirector] No valid spawn point for %s after %d attempts, skipped", tpl.ID, d.spawn.MaxAttempts)
		}
		return 0, false
	}

	id := entities.NewHostileEntity(d.entityManager, tier, variant, tpl, x, y)
	d.combat.ApplyDifficultyScaling(id, d.profile)
	d.tracker.Add(id)

	d.dispatcher.Emit(event.EnemySpawned, event.EnemyData{
		Entity:     uint64(id),
		TemplateID: tpl.ID,
		Tier:       string(tier),
	})
	return id, true
}

// PickWeightedTier 按权重随机选择一个阶
//
// 在 [0, 总权重) 内抽取 r，返回累计权重首次超过 r 的阶；
// 权重为 0 的阶永远不会被选中。总权重不为正时返回 ok=false。
func (d *SpawnDirector) PickWeightedTier(tiers []config.HostileTier, weights []float64) (config.HostileTier, bool) {
	return pickWeighted(d.rng, tiers, weights)
}

func pickWeighted(rng *rand.Rand, tiers []config.HostileTier, weights []float64) (config.HostileTier, bool) {
	n := len(tiers)
	if len(weights) < n {
		n = len(weights)
	}

	total := 0.0
	last := -1
	for i := 0; i < n; i++ {
		if weights[i] > 0 {
			total += weights[i]
			last = i
		}
	}
	if last < 0 {
		return "", false
	}

	r := rng.Float64() * total
	cumulative := 0.0
	for i := 0; i < n; i++ {
		if weights[i] <= 0 {
			continue
		}
		cumulative += weights[i]
		if cumulative > r {
			return tiers[i], true
		}
	}
	// 浮点误差导致 r 没有落入任何区间时，取最后一个有效阶
	return tiers[last], true
}

// SpawnMixed 按权重选阶并生成一个敌人
func (d *SpawnDirector) SpawnMixed(tiers []config.HostileTier, weights []float64) (ecs.EntityID, bool) {
	tier, ok := d.PickWeightedTier(tiers, weights)
	if !ok {
		log.Printf("[SpawnDirector] Warning: mixed spawn has no positive weights, falling back to %s", config.HostileWeak)
		tier = config.HostileWeak
	}
	return d.SpawnOneEnemy(tier, -1)
}

// hostileTemplateID 读取敌人的模板 ID（日志用）
func hostileTemplateID(em *ecs.EntityManager, id ecs.EntityID) string {
	if h, ok := ecs.GetComponent[*components.HostileComponent](em, id); ok {
		return h.TemplateID
	}
	return "?"
}
