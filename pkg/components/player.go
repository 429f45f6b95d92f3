package components

// PlayerComponent 巫师（玩家）专属数据
type PlayerComponent struct {
	MoveSpeed float64 // 移动速度（世界单位/秒）

	// 输入方向（由宿主写入，长度会被归一化）
	InputX float64
	InputY float64

	PickupRadius float64 // 金币拾取半径
	MagnetRadius float64 // 金币吸附半径
	MagnetSpeed  float64 // 金币吸附速度
}

// ProgressionComponent 玩家成长数据
//
// 经验溢出时一次更新内可以连续升多级，等级不超过上限
type ProgressionComponent struct {
	Level            int
	Experience       int // 当前等级内累积的经验
	ExperienceToNext int // 升到下一级所需经验
	Coins            int
	Score            int
	Kills            int
}

// CoinComponent 可拾取的金币
type CoinComponent struct {
	Value      int  // 面值
	Magnetized bool // 是否已被吸附（一旦吸附持续飞向玩家）
}
