package components

// HealthComponent 存储实体的生命值信息
// 用于玩家和敌人
//
// 不变量：0 <= CurrentHealth <= MaxHealth
// IsDead 只在生命值首次降到 0 时置为 true，之后不再改变
type HealthComponent struct {
	CurrentHealth float64 // 当前生命值
	MaxHealth     float64 // 最大生命值
	IsDead        bool    // 是否已确认死亡
}
