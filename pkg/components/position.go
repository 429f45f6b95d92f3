package components

// PositionComponent 实体在竞技场中的位置（世界单位）
type PositionComponent struct {
	X float64
	Y float64
}

// VelocityComponent 实体速度（世界单位/秒）
type VelocityComponent struct {
	VX float64
	VY float64
}
