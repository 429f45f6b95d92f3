package config

import (
	"fmt"
	"log"

	"github.com/decker502/wavewizard/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// MapConfigPath 竞技场地图的嵌入路径
const MapConfigPath = "data/maps.yaml"

// RectConfig 轴对齐矩形（左上角 + 宽高）
type RectConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// ObstacleConfig 带类别标记的障碍物
type ObstacleConfig struct {
	RectConfig `yaml:",inline"`
	Category   string `yaml:"category"` // "solid" 或 "hazard"
}

// PointConfig 二维坐标
type PointConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// MapConfig 单张竞技场地图
type MapConfig struct {
	ID          string           `yaml:"id"`
	Name        string           `yaml:"name"`
	Width       float64          `yaml:"width"`
	Height      float64          `yaml:"height"`
	PlayerStart PointConfig      `yaml:"playerStart"`
	Obstacles   []ObstacleConfig `yaml:"obstacles"`
	Pits        []RectConfig     `yaml:"pits"` // 没有可行走地面的区域
}

// MapCatalog 地图列表（下标即持久化的地图编号）
type MapCatalog struct {
	Maps []MapConfig `yaml:"maps"`
}

// LoadMapCatalog 从嵌入数据加载地图列表
func LoadMapCatalog(path string) (*MapCatalog, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read map config %s: %w", path, err)
	}
	catalog, err := ParseMapCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("invalid map config in %s: %w", path, err)
	}
	return catalog, nil
}

// LoadMapCatalogOrDefault 加载地图列表，失败时记录警告并使用空旷竞技场
func LoadMapCatalogOrDefault(path string) *MapCatalog {
	catalog, err := LoadMapCatalog(path)
	if err != nil {
		log.Printf("[MapConfig] Warning: %v (using empty arena)", err)
		return &MapCatalog{Maps: []MapConfig{DefaultMap()}}
	}
	return catalog
}

// ParseMapCatalog 解析 YAML 格式的地图列表
func ParseMapCatalog(data []byte) (*MapCatalog, error) {
	var catalog MapCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse map YAML: %w", err)
	}
	if len(catalog.Maps) == 0 {
		return nil, fmt.Errorf("at least one map is required")
	}
	for i := range catalog.Maps {
		if err := validateMap(&catalog.Maps[i]); err != nil {
			return nil, fmt.Errorf("map %d (%s): %w", i, catalog.Maps[i].ID, err)
		}
	}
	return &catalog, nil
}

// validateMap 验证单张地图
func validateMap(m *MapConfig) error {
	if m.ID == "" {
		return fmt.Errorf("id is required")
	}
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("size must be positive, got %vx%v", m.Width, m.Height)
	}
	if m.PlayerStart.X < 0 || m.PlayerStart.X > m.Width || m.PlayerStart.Y < 0 || m.PlayerStart.Y > m.Height {
		return fmt.Errorf("playerStart (%v, %v) is outside the arena", m.PlayerStart.X, m.PlayerStart.Y)
	}
	for i, o := range m.Obstacles {
		if o.W <= 0 || o.H <= 0 {
			return fmt.Errorf("obstacle %d: size must be positive", i)
		}
		if o.Category != "solid" && o.Category != "hazard" {
			return fmt.Errorf("obstacle %d: category must be solid or hazard, got %q", i, o.Category)
		}
	}
	for i, p := range m.Pits {
		if p.W <= 0 || p.H <= 0 {
			return fmt.Errorf("pit %d: size must be positive", i)
		}
	}
	return nil
}

// Map 按下标取地图，越界时回退到第一张
func (c *MapCatalog) Map(index int) MapConfig {
	if c == nil || len(c.Maps) == 0 {
		return DefaultMap()
	}
	if index < 0 || index >= len(c.Maps) {
		log.Printf("[MapConfig] Warning: map index %d out of range, using %s", index, c.Maps[0].ID)
		return c.Maps[0]
	}
	return c.Maps[index]
}

// DefaultMap 没有任何障碍物的兜底竞技场
func DefaultMap() MapConfig {
	return MapConfig{
		ID:          "arena",
		Name:        "Empty Arena",
		Width:       40,
		Height:      40,
		PlayerStart: PointConfig{X: 20, Y: 20},
	}
}
