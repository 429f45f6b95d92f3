// Package world 描述竞技场的静态几何：边界、障碍物与无地面的坑洞。
// 坐标单位为世界单位，原点在左上角，Y 轴向下。
package world

import (
	"math"
	"math/rand"

	"github.com/decker502/wavewizard/pkg/config"
)

// Category 障碍物类别
type Category int

const (
	// CategorySolid 实体障碍，阻挡移动与生成
	CategorySolid Category = iota
	// CategoryHazard 危险区域，可穿行但不允许生成敌人或掉落物
	CategoryHazard
)

// String 返回类别名称
func (c Category) String() string {
	switch c {
	case CategorySolid:
		return "solid"
	case CategoryHazard:
		return "hazard"
	}
	return "unknown"
}

// Rect 轴对齐矩形
type Rect struct {
	X, Y, W, H float64
}

// Contains 点是否在矩形内（含边界）
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// IntersectsCircle 矩形与圆是否相交
func (r Rect) IntersectsCircle(cx, cy, radius float64) bool {
	nx := math.Max(r.X, math.Min(cx, r.X+r.W))
	ny := math.Max(r.Y, math.Min(cy, r.Y+r.H))
	dx, dy := cx-nx, cy-ny
	return dx*dx+dy*dy <= radius*radius
}

// Obstacle 带类别标记的障碍物
type Obstacle struct {
	Rect
	Category Category
}

// Arena 一张竞技场地图
type Arena struct {
	ID     string
	Name   string
	Width  float64
	Height float64
	StartX float64
	StartY float64

	obstacles []Obstacle
	pits      []Rect
}

// snapStep / snapMaxRings 控制 SnapToWalkable 的环形搜索
const (
	snapStep     = 0.25
	snapMaxRings = 24
	snapSamples  = 16
)

// NewArena 根据地图配置构建竞技场
func NewArena(cfg config.MapConfig) *Arena {
	a := &Arena{
		ID:     cfg.ID,
		Name:   cfg.Name,
		Width:  cfg.Width,
		Height: cfg.Height,
		StartX: cfg.PlayerStart.X,
		StartY: cfg.PlayerStart.Y,
	}
	for _, o := range cfg.Obstacles {
		cat := CategorySolid
		if o.Category == "hazard" {
			cat = CategoryHazard
		}
		a.obstacles = append(a.obstacles, Obstacle{
			Rect:     Rect{X: o.X, Y: o.Y, W: o.W, H: o.H},
			Category: cat,
		})
	}
	for _, p := range cfg.Pits {
		a.pits = append(a.pits, Rect{X: p.X, Y: p.Y, W: p.W, H: p.H})
	}
	return a
}

// Obstacles 返回障碍物列表（只读）
func (a *Arena) Obstacles() []Obstacle {
	return a.obstacles
}

// Pits 返回坑洞列表（只读）
func (a *Arena) Pits() []Rect {
	return a.pits
}

// InBounds 半径为 radius 的圆是否完全位于竞技场内
func (a *Arena) InBounds(x, y, radius float64) bool {
	return x-radius >= 0 && y-radius >= 0 && x+radius <= a.Width && y+radius <= a.Height
}

// HasGround 点下方是否有可站立的地面
func (a *Arena) HasGround(x, y float64) bool {
	if x < 0 || y < 0 || x > a.Width || y > a.Height {
		return false
	}
	for _, p := range a.pits {
		if p.Contains(x, y) {
			return false
		}
	}
	return true
}

// Overlaps 圆是否与任意指定类别的障碍物相交
// categories 为空时检查所有类别
func (a *Arena) Overlaps(x, y, radius float64, categories ...Category) bool {
	for _, o := range a.obstacles {
		if len(categories) > 0 && !containsCategory(categories, o.Category) {
			continue
		}
		if o.IntersectsCircle(x, y, radius) {
			return true
		}
	}
	return false
}

func containsCategory(list []Category, c Category) bool {
	for _, v := range list {
		if v == c {
			return true
		}
	}
	return false
}

// IsWalkable 位置是否可以放置实体（生成敌人、掉落金币）
// 要求：在边界内、脚下有地面、不与任何障碍物相交
func (a *Arena) IsWalkable(x, y, radius float64) bool {
	return a.InBounds(x, y, radius) && a.HasGround(x, y) && !a.Overlaps(x, y, radius)
}

// CanOccupy 移动中的实体是否可以停留在该位置
// 危险区域可以穿行，只有实体障碍与坑洞阻挡
func (a *Arena) CanOccupy(x, y, radius float64) bool {
	return a.InBounds(x, y, radius) && a.HasGround(x, y) && !a.Overlaps(x, y, radius, CategorySolid)
}

// Clamp 将圆心限制在竞技场边界内
func (a *Arena) Clamp(x, y, radius float64) (float64, float64) {
	x = math.Max(radius, math.Min(a.Width-radius, x))
	y = math.Max(radius, math.Min(a.Height-radius, y))
	return x, y
}

// SampleAnnulus 在 (cx, cy) 周围的圆环 [minR, maxR] 内随机采样可放置的位置
// 最多尝试 attempts 次，全部失败返回 ok=false
func (a *Arena) SampleAnnulus(rng *rand.Rand, cx, cy, minR, maxR, radius float64, attempts int) (x, y float64, ok bool) {
	if maxR < minR {
		minR, maxR = maxR, minR
	}
	for i := 0; i < attempts; i++ {
		angle := rng.Float64() * 2 * math.Pi
		// 按面积均匀采样半径
		r := math.Sqrt(minR*minR + rng.Float64()*(maxR*maxR-minR*minR))
		x = cx + math.Cos(angle)*r
		y = cy + math.Sin(angle)*r
		if a.IsWalkable(x, y, radius) {
			return x, y, true
		}
	}
	return 0, 0, false
}

// SnapToWalkable 从 (x, y) 向外逐环搜索最近的可放置位置
func (a *Arena) SnapToWalkable(x, y, radius float64) (float64, float64, bool) {
	if a.IsWalkable(x, y, radius) {
		return x, y, true
	}
	for ring := 1; ring <= snapMaxRings; ring++ {
		d := float64(ring) * snapStep
		for s := 0; s < snapSamples; s++ {
			angle := float64(s) / snapSamples * 2 * math.Pi
			px := x + math.Cos(angle)*d
			py := y + math.Sin(angle)*d
			if a.IsWalkable(px, py, radius) {
				return px, py, true
			}
		}
	}
	return x, y, false
}
