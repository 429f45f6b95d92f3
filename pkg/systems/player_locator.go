package systems

import (
	"log"

	"github.com/decker502/wavewizard/pkg/components"
	"github.com/decker502/wavewizard/pkg/ecs"
	"github.com/decker502/wavewizard/pkg/game"
)

// PlayerLookupRetryDelay 找不到玩家时的重试延迟（秒）
const PlayerLookupRetryDelay = 0.5

// PlayerLocator 查找玩家实体
//
// 找不到玩家时只在 PlayerLookupRetryDelay 秒后重试一次；
// 重试仍失败则自我禁用，依赖它的系统随之停止工作，而不是报错。
type PlayerLocator struct {
	entityManager *ecs.EntityManager
	scheduler     *game.Scheduler

	playerID     ecs.EntityID
	found        bool
	retryPending bool
	disabled     bool
}

// NewPlayerLocator 创建玩家定位器
func NewPlayerLocator(em *ecs.EntityManager, scheduler *game.Scheduler) *PlayerLocator {
	return &PlayerLocator{
		entityManager: em,
		scheduler:     scheduler,
	}
}

// Player 返回玩家实体 ID
// 玩家实体死亡后仍会返回，调用方自行检查生命值
func (l *PlayerLocator) Player() (ecs.EntityID, bool) {
	if l.disabled {
		return 0, false
	}
	if l.found && ecs.HasComponent[*components.PlayerComponent](l.entityManager, l.playerID) {
		return l.playerID, true
	}

	l.found = false
	if l.lookup() {
		return l.playerID, true
	}

	if !l.retryPending {
		l.retryPending = true
		log.Printf("[PlayerLocator] Warning: player not found, retrying in %.1fs", PlayerLookupRetryDelay)
		l.scheduler.After(PlayerLookupRetryDelay, func() {
			l.retryPending = false
			if !l.lookup() {
				l.disabled = true
				log.Printf("[PlayerLocator] Warning: player still missing, dependent systems disabled")
			}
		})
	}
	return 0, false
}

// lookup 在实体管理器中查找玩家
func (l *PlayerLocator) lookup() bool {
	players := ecs.GetEntitiesWith1[*components.PlayerComponent](l.entityManager)
	if len(players) == 0 {
		return false
	}
	l.playerID = players[0]
	l.found = true
	return true
}

// Disabled 是否已自我禁用
func (l *PlayerLocator) Disabled() bool {
	return l.disabled
}

// Reset 重新开局时清除缓存与禁用状态
func (l *PlayerLocator) Reset() {
	l.playerID = 0
	l.found = false
	l.retryPending = false
	l.disabled = false
}
