package systems

import (
	"math"

	"github.com/decker502/wavewizard/pkg/components"
	"github.com/decker502/wavewizard/pkg/ecs"
	"github.com/decker502/wavewizard/pkg/world"
)

// pursuitStopFactor 敌人追到攻击距离的这个比例以内就停下
const pursuitStopFactor = 0.9

// PhysicsSystem 处理实体移动与竞技场碰撞
//
// 职责：
//   - 玩家：输入方向归一化后乘以移动速度
//   - 敌人：PursuitActive 时直线追击玩家，进入攻击距离后停下
//   - 按速度积分位置；被实心障碍阻挡时沿轴滑动，并限制在竞技场边界内
type PhysicsSystem struct {
	em      *ecs.EntityManager
	arena   *world.Arena
	locator *PlayerLocator
}

// NewPhysicsSystem 创建物理系统
//
// 参数:
//   - em: 实体管理器
//   - arena: 竞技场（碰撞与边界查询）
//   - locator: 玩家定位器（敌人追击目标）
func NewPhysicsSystem(em *ecs.EntityManager, arena *world.Arena, locator *PlayerLocator) *PhysicsSystem {
	return &PhysicsSystem{
		em:      em,
		arena:   arena,
		locator: locator,
	}
}

// Update 更新速度并积分位置
func (ps *PhysicsSystem) Update(deltaTime float64) {
	ps.steerPlayer()
	ps.steerHostiles()
	ps.integrate(deltaTime)
}

// steerPlayer 根据输入设置玩家速度
func (ps *PhysicsSystem) steerPlayer() {
	for _, id := range ecs.GetEntitiesWith2[*components.PlayerComponent, *components.VelocityComponent](ps.em) {
		player, _ := ecs.GetComponent[*components.PlayerComponent](ps.em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](ps.em, id)

		if !isAlive(ps.em, id) {
			vel.VX, vel.VY = 0, 0
			continue
		}

		length := math.Hypot(player.InputX, player.InputY)
		if length == 0 {
			vel.VX, vel.VY = 0, 0
			continue
		}
		// 斜向输入不会更快
		if length < 1 {
			length = 1
		}
		vel.VX = player.InputX / length * player.MoveSpeed
		vel.VY = player.InputY / length * player.MoveSpeed
	}
}

// steerHostiles 敌人朝玩家直线追击
func (ps *PhysicsSystem) steerHostiles() {
	player, ok := ps.locator.Player()
	var px, py float64
	if ok {
		px, py, ok = entityPosition(ps.em, player)
	}
	playerAlive := ok && isAlive(ps.em, player)

	for _, id := range ecs.GetEntitiesWith3[*components.HostileComponent, *components.PositionComponent, *components.VelocityComponent](ps.em) {
		hostile, _ := ecs.GetComponent[*components.HostileComponent](ps.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](ps.em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](ps.em, id)

		if !hostile.PursuitActive || !playerAlive {
			vel.VX, vel.VY = 0, 0
			continue
		}

		stop := 0.0
		if attack, ok := ecs.GetComponent[*components.AttackComponent](ps.em, id); ok {
			stop = attack.Range * pursuitStopFactor
		}
		dx, dy := px-pos.X, py-pos.Y
		dist := math.Hypot(dx, dy)
		if dist <= stop || dist == 0 {
			vel.VX, vel.VY = 0, 0
			continue
		}
		vel.VX = dx / dist * hostile.Speed
		vel.VY = dy / dist * hostile.Speed
	}
}

// integrate 按速度移动实体
// 先尝试完整位移，失败时分别尝试 X、Y 轴（沿障碍滑动）
func (ps *PhysicsSystem) integrate(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith2[*components.PositionComponent, *components.VelocityComponent](ps.em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](ps.em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](ps.em, id)
		if vel.VX == 0 && vel.VY == 0 {
			continue
		}

		radius := 0.0
		if col, ok := ecs.GetComponent[*components.CollisionComponent](ps.em, id); ok {
			radius = col.Radius
		}

		nx, ny := pos.X+vel.VX*deltaTime, pos.Y+vel.VY*deltaTime
		switch {
		case ps.arena.CanOccupy(nx, ny, radius):
			pos.X, pos.Y = nx, ny
		case ps.arena.CanOccupy(nx, pos.Y, radius):
			pos.X = nx
		case ps.arena.CanOccupy(pos.X, ny, radius):
			pos.Y = ny
		}
		pos.X, pos.Y = ps.arena.Clamp(pos.X, pos.Y, radius)
	}
}
