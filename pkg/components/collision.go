package components

// CollisionComponent 圆形碰撞体
// 用于生成位置检测、范围伤害与拾取判定
type CollisionComponent struct {
	Radius float64 // 半径（世界单位）
}
