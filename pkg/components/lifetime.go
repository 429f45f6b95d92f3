package components

// LifetimeComponent 管理实体的剩余存在时间
// 用于尸体延迟移除（死亡确认后 DeathDelay 秒销毁）
type LifetimeComponent struct {
	MaxLifetime     float64 // 最大生命周期(秒)
	CurrentLifetime float64 // 当前已存在时间(秒)
	IsExpired       bool    // 是否已过期
}
