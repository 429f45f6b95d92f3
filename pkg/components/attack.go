package components

// AttackComponent 实体的攻击能力
//
// 实际伤害 = 基础伤害 * DamageMultiplier
// 敌人的 DamageMultiplier 在生成时由难度倍率设置（只设置一次）
type AttackComponent struct {
	Damage           float64 // 基础伤害
	DamageMultiplier float64 // 伤害倍率
	Range            float64 // 攻击距离（世界单位）
	Cooldown         float64 // 攻击间隔（秒）
	CooldownTimer    float64 // 距离下次可攻击的剩余时间（秒）
	IsAreaEffect     bool    // 是否为范围伤害
}
