package components

import "github.com/decker502/wavewizard/pkg/config"

// HostileComponent 敌人专属数据
type HostileComponent struct {
	Tier       config.HostileTier // 强度阶
	Variant    int                // 阶池中的下标
	TemplateID string             // 模板 ID（skeleton、lich ...）
	Speed      float64            // 追击速度（世界单位/秒）

	// PursuitActive 是否仍在追击/攻击玩家
	// 死亡时置为 false，之后移动和攻击系统都会跳过该实体
	PursuitActive bool

	// ScalingApplied 难度倍率是否已应用
	// 保证生命值和伤害倍率只乘一次
	ScalingApplied bool
}

// RewardComponent 击杀奖励
type RewardComponent struct {
	Coins      int // 掉落金币数量
	Experience int // 经验
	Score      int // 分数
}
