package config

import (
	"fmt"
	"log"

	"github.com/decker502/wavewizard/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// BalanceConfigPath 平衡参数的嵌入路径
const BalanceConfigPath = "data/balance.yaml"

// PlayerBalance 巫师（玩家）基础属性
type PlayerBalance struct {
	MaxHealth     float64 `yaml:"maxHealth"`
	MoveSpeed     float64 `yaml:"moveSpeed"`
	Radius        float64 `yaml:"radius"`
	SpellDamage   float64 `yaml:"spellDamage"`
	SpellRange    float64 `yaml:"spellRange"`
	SpellCooldown float64 `yaml:"spellCooldown"`
	PickupRadius  float64 `yaml:"pickupRadius"`
	MagnetRadius  float64 `yaml:"magnetRadius"`
	MagnetSpeed   float64 `yaml:"magnetSpeed"`
}

// ProgressionBalance 经验与等级
type ProgressionBalance struct {
	MaxLevel           int     `yaml:"maxLevel"`
	BaseExperience     int     `yaml:"baseExperience"`
	ExperienceGrowth   float64 `yaml:"experienceGrowth"`
	LevelUpHealthBonus float64 `yaml:"levelUpHealthBonus"`
	LevelUpDamageBonus float64 `yaml:"levelUpDamageBonus"`
}

// ExperienceToNext 计算从 level 升到 level+1 所需经验
// 公式: BaseExperience * ExperienceGrowth^(level-1)，向下取整，至少为 1
func (p ProgressionBalance) ExperienceToNext(level int) int {
	if level < 1 {
		level = 1
	}
	need := float64(p.BaseExperience)
	for i := 1; i < level; i++ {
		need *= p.ExperienceGrowth
	}
	if need < 1 {
		return 1
	}
	return int(need)
}

// CombatBalance 伤害结算参数
type CombatBalance struct {
	// SecondaryMultiplier 范围伤害对次要目标的系数（0~1 常用于平衡，默认 1 即满伤害）
	SecondaryMultiplier float64 `yaml:"secondaryMultiplier"`
	AreaRadius          float64 `yaml:"areaRadius"`
	DeathDelay          float64 `yaml:"deathDelay"` // 死亡确认到实体销毁的延迟（秒）
	DropRadius          float64 `yaml:"dropRadius"` // 金币散落半径
}

// SpawnBalance 生成位置采样参数
type SpawnBalance struct {
	MinRadius   float64 `yaml:"minRadius"`
	MaxRadius   float64 `yaml:"maxRadius"`
	MaxAttempts int     `yaml:"maxAttempts"`
}

// SuddenDeathBalance 加时阶段的混合生成参数
type SuddenDeathBalance struct {
	SpawnInterval float64       `yaml:"spawnInterval"`
	Tiers         []HostileTier `yaml:"tiers"`
	Weights       []float64     `yaml:"weights"`
}

// VictoryBalance 胜利判定参数
type VictoryBalance struct {
	PollInterval  float64 `yaml:"pollInterval"`
	GracePeriod   float64 `yaml:"gracePeriod"`   // 没有任何敌人生成时，开局后多久开始判定
	SequenceDelay float64 `yaml:"sequenceDelay"` // 胜利演出时长
}

// Messages 状态提示文本（纯装饰，可替换）
type Messages struct {
	WaveStarted   string   `yaml:"waveStarted"`
	WaveCleared   string   `yaml:"waveCleared"`
	BossIncoming  string   `yaml:"bossIncoming"`
	SuddenDeath   string   `yaml:"suddenDeath"`
	Victory       string   `yaml:"victory"`
	GameOver      string   `yaml:"gameOver"`
	RestCountdown string   `yaml:"restCountdown"`
	TimeoutTaunts []string `yaml:"timeoutTaunts"`
}

// BalanceConfig 平衡参数总表
type BalanceConfig struct {
	Player      PlayerBalance      `yaml:"player"`
	Progression ProgressionBalance `yaml:"progression"`
	Combat      CombatBalance      `yaml:"combat"`
	Spawn       SpawnBalance       `yaml:"spawn"`
	SuddenDeath SuddenDeathBalance `yaml:"suddenDeath"`
	Victory     VictoryBalance     `yaml:"victory"`
	Messages    Messages           `yaml:"messages"`
}

// LoadBalanceConfig 从嵌入数据加载平衡参数
func LoadBalanceConfig(path string) (*BalanceConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read balance config %s: %w", path, err)
	}
	cfg, err := ParseBalanceConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid balance config in %s: %w", path, err)
	}
	return cfg, nil
}

// LoadBalanceConfigOrDefault 加载平衡参数，失败时记录警告并使用默认值
func LoadBalanceConfigOrDefault(path string) *BalanceConfig {
	cfg, err := LoadBalanceConfig(path)
	if err != nil {
		log.Printf("[BalanceConfig] Warning: %v (using defaults)", err)
		return DefaultBalanceConfig()
	}
	return cfg
}

// ParseBalanceConfig 解析 YAML 格式的平衡参数，缺省字段取默认值
func ParseBalanceConfig(data []byte) (*BalanceConfig, error) {
	cfg := DefaultBalanceConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse balance YAML: %w", err)
	}
	if err := validateBalance(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validateBalance 验证平衡参数
func validateBalance(cfg *BalanceConfig) error {
	if cfg.Player.MaxHealth <= 0 {
		return fmt.Errorf("player.maxHealth must be positive, got %v", cfg.Player.MaxHealth)
	}
	if cfg.Progression.MaxLevel < 1 {
		return fmt.Errorf("progression.maxLevel must be >= 1, got %d", cfg.Progression.MaxLevel)
	}
	if cfg.Progression.BaseExperience < 1 {
		return fmt.Errorf("progression.baseExperience must be >= 1, got %d", cfg.Progression.BaseExperience)
	}
	if cfg.Progression.ExperienceGrowth < 1 {
		return fmt.Errorf("progression.experienceGrowth must be >= 1, got %v", cfg.Progression.ExperienceGrowth)
	}
	if cfg.Combat.SecondaryMultiplier < 0 {
		return fmt.Errorf("combat.secondaryMultiplier cannot be negative, got %v", cfg.Combat.SecondaryMultiplier)
	}
	if cfg.Combat.AreaRadius < 0 || cfg.Combat.DeathDelay < 0 || cfg.Combat.DropRadius < 0 {
		return fmt.Errorf("combat radii and delays cannot be negative")
	}
	if cfg.Spawn.MinRadius < 0 || cfg.Spawn.MaxRadius < cfg.Spawn.MinRadius {
		return fmt.Errorf("spawn radii must satisfy 0 <= minRadius <= maxRadius, got %v..%v", cfg.Spawn.MinRadius, cfg.Spawn.MaxRadius)
	}
	if cfg.Spawn.MaxAttempts < 1 {
		return fmt.Errorf("spawn.maxAttempts must be >= 1, got %d", cfg.Spawn.MaxAttempts)
	}
	if len(cfg.SuddenDeath.Tiers) != len(cfg.SuddenDeath.Weights) {
		return fmt.Errorf("suddenDeath.tiers and suddenDeath.weights must have the same length (%d != %d)",
			len(cfg.SuddenDeath.Tiers), len(cfg.SuddenDeath.Weights))
	}
	for i, w := range cfg.SuddenDeath.Weights {
		if w < 0 {
			return fmt.Errorf("suddenDeath.weights[%d] cannot be negative, got %v", i, w)
		}
		if !cfg.SuddenDeath.Tiers[i].Valid() {
			return fmt.Errorf("suddenDeath.tiers[%d]: unknown tier %q", i, cfg.SuddenDeath.Tiers[i])
		}
	}
	if cfg.SuddenDeath.SpawnInterval <= 0 {
		return fmt.Errorf("suddenDeath.spawnInterval must be positive, got %v", cfg.SuddenDeath.SpawnInterval)
	}
	if cfg.Victory.PollInterval < 0 || cfg.Victory.GracePeriod < 0 || cfg.Victory.SequenceDelay < 0 {
		return fmt.Errorf("victory timings cannot be negative")
	}
	return nil
}

// DefaultBalanceConfig 内置默认平衡参数
func DefaultBalanceConfig() *BalanceConfig {
	return &BalanceConfig{
		Player: PlayerBalance{
			MaxHealth:     100,
			MoveSpeed:     5,
			Radius:        0.5,
			SpellDamage:   20,
			SpellRange:    8,
			SpellCooldown: 0.8,
			PickupRadius:  0.8,
			MagnetRadius:  4,
			MagnetSpeed:   8,
		},
		Progression: ProgressionBalance{
			MaxLevel:           20,
			BaseExperience:     50,
			ExperienceGrowth:   1.25,
			LevelUpHealthBonus: 10,
			LevelUpDamageBonus: 2,
		},
		Combat: CombatBalance{
			SecondaryMultiplier: 1,
			AreaRadius:          2.5,
			DeathDelay:          2,
			DropRadius:          1,
		},
		Spawn: SpawnBalance{
			MinRadius:   8,
			MaxRadius:   14,
			MaxAttempts: 10,
		},
		SuddenDeath: SuddenDeathBalance{
			SpawnInterval: 3,
			Tiers:         []HostileTier{HostileWeak, HostileMedium, HostileStrong},
			Weights:       []float64{0.6, 0.3, 0.1},
		},
		Victory: VictoryBalance{
			PollInterval:  0.5,
			GracePeriod:   10,
			SequenceDelay: 3,
		},
		Messages: Messages{
			WaveStarted:   "Wave %d begins!",
			WaveCleared:   "Wave cleared! Catch your breath.",
			BossIncoming:  "The Lich has risen!",
			SuddenDeath:   "SUDDEN DEATH! They will not stop coming.",
			Victory:       "Dawn breaks. The wizard prevails.",
			GameOver:      "The wizard has fallen.",
			RestCountdown: "Next wave in %d...",
			TimeoutTaunts: []string{"Time's up! The enemies are still here."},
		},
	}
}
