package config

import (
	"errors"
	"fmt"
	"log"

	"github.com/decker502/wavewizard/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// EnemyConfigPath 敌人模板池的嵌入路径
const EnemyConfigPath = "data/enemies.yaml"

// ErrNoSpawnPool 指定阶没有任何可用模板
var ErrNoSpawnPool = errors.New("no spawn pool for tier")

// HostileTier 敌人强度阶
type HostileTier string

const (
	HostileWeak   HostileTier = "weak"
	HostileMedium HostileTier = "medium"
	HostileStrong HostileTier = "strong"
	HostileBoss   HostileTier = "boss"
)

// Valid 检查是否为已知的阶
func (t HostileTier) Valid() bool {
	switch t {
	case HostileWeak, HostileMedium, HostileStrong, HostileBoss:
		return true
	}
	return false
}

// EnemyTemplate 单个敌人模板（相当于预制体）
type EnemyTemplate struct {
	ID               string  `yaml:"id"`
	MaxHealth        float64 `yaml:"maxHealth"`
	Damage           float64 `yaml:"damage"`
	AttackRange      float64 `yaml:"attackRange"`
	AttackCooldown   float64 `yaml:"attackCooldown"`
	Speed            float64 `yaml:"speed"`
	Radius           float64 `yaml:"radius"`
	RewardCoins      int     `yaml:"rewardCoins"`
	RewardExperience int     `yaml:"rewardExperience"`
	Score            int     `yaml:"score"`
}

// EnemyPools 阶 -> 模板池
type EnemyPools struct {
	Tiers map[HostileTier][]EnemyTemplate `yaml:"tiers"`
}

// LoadEnemyPools 从嵌入数据加载敌人模板池
func LoadEnemyPools(path string) (*EnemyPools, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read enemy config %s: %w", path, err)
	}
	pools, err := ParseEnemyPools(data)
	if err != nil {
		return nil, fmt.Errorf("invalid enemy config in %s: %w", path, err)
	}
	return pools, nil
}

// LoadEnemyPoolsOrDefault 加载模板池，失败时记录警告并使用内置模板池
func LoadEnemyPoolsOrDefault(path string) *EnemyPools {
	pools, err := LoadEnemyPools(path)
	if err != nil {
		log.Printf("[EnemyConfig] Warning: %v (using built-in pools)", err)
		return DefaultEnemyPools()
	}
	return pools
}

// ParseEnemyPools 解析 YAML 格式的敌人模板池
func ParseEnemyPools(data []byte) (*EnemyPools, error) {
	var pools EnemyPools
	if err := yaml.Unmarshal(data, &pools); err != nil {
		return nil, fmt.Errorf("failed to parse enemy YAML: %w", err)
	}
	if err := validateEnemyPools(&pools); err != nil {
		return nil, err
	}
	return &pools, nil
}

// validateEnemyPools 验证模板池
func validateEnemyPools(pools *EnemyPools) error {
	if len(pools.Tiers) == 0 {
		return fmt.Errorf("at least one tier is required")
	}
	for tier, templates := range pools.Tiers {
		if !tier.Valid() {
			return fmt.Errorf("unknown tier %q", tier)
		}
		for i, tpl := range templates {
			if tpl.ID == "" {
				return fmt.Errorf("tier %s template %d: id is required", tier, i)
			}
			if tpl.MaxHealth <= 0 {
				return fmt.Errorf("%s: maxHealth must be positive, got %v", tpl.ID, tpl.MaxHealth)
			}
			if tpl.Damage < 0 || tpl.AttackRange < 0 || tpl.AttackCooldown < 0 || tpl.Speed < 0 || tpl.Radius < 0 {
				return fmt.Errorf("%s: combat and movement stats cannot be negative", tpl.ID)
			}
			if tpl.RewardCoins < 0 || tpl.RewardExperience < 0 || tpl.Score < 0 {
				return fmt.Errorf("%s: rewards cannot be negative", tpl.ID)
			}
		}
	}
	return nil
}

// Pool 返回指定阶的模板池
func (p *EnemyPools) Pool(tier HostileTier) ([]EnemyTemplate, error) {
	if p == nil {
		return nil, fmt.Errorf("%w %s", ErrNoSpawnPool, tier)
	}
	templates := p.Tiers[tier]
	if len(templates) == 0 {
		return nil, fmt.Errorf("%w %s", ErrNoSpawnPool, tier)
	}
	return templates, nil
}

// DefaultEnemyTemplate 模板池缺失时使用的兜底模板
func DefaultEnemyTemplate() EnemyTemplate {
	return EnemyTemplate{
		ID:               "shade",
		MaxHealth:        30,
		Damage:           5,
		AttackRange:      1.2,
		AttackCooldown:   1,
		Speed:            2,
		Radius:           0.4,
		RewardCoins:      1,
		RewardExperience: 10,
		Score:            10,
	}
}

// DefaultEnemyPools 内置兜底模板池
func DefaultEnemyPools() *EnemyPools {
	weak := DefaultEnemyTemplate()
	medium := weak
	medium.ID, medium.MaxHealth, medium.Damage = "shade_brute", 70, 10
	strong := weak
	strong.ID, strong.MaxHealth, strong.Damage, strong.Speed = "shade_giant", 180, 18, 1.2
	boss := strong
	boss.ID, boss.MaxHealth, boss.RewardCoins, boss.RewardExperience, boss.Score = "shade_lord", 900, 25, 400, 500

	return &EnemyPools{Tiers: map[HostileTier][]EnemyTemplate{
		HostileWeak:   {weak},
		HostileMedium: {medium},
		HostileStrong: {strong},
		HostileBoss:   {boss},
	}}
}
