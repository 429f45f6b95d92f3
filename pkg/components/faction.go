package components

// Faction 实体阵营
// 在创建时标记，所有"是否为敌人/障碍"的判断都基于此标记
type Faction int

const (
	FactionNeutral Faction = iota
	FactionPlayer
	FactionHostile
)

// String 返回阵营名称
func (f Faction) String() string {
	switch f {
	case FactionPlayer:
		return "player"
	case FactionHostile:
		return "hostile"
	default:
		return "neutral"
	}
}

// FactionComponent 阵营标签组件
type FactionComponent struct {
	Faction Faction
}
