package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/decker502/wavewizard/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DifficultyConfigPath 难度参数表的嵌入路径
const DifficultyConfigPath = "data/difficulty.yaml"

// ErrUnknownTier 无法识别的难度档位名称
var ErrUnknownTier = errors.New("unknown difficulty tier")

// DifficultyTier 难度档位
// 数值即持久化到设置中的下标，顺序不可调整
type DifficultyTier int

const (
	TierEasy DifficultyTier = iota
	TierMedium
	TierHard
	TierDefault
)

// AllTiers 菜单中可选的档位（按显示顺序）
var AllTiers = []DifficultyTier{TierEasy, TierMedium, TierHard, TierDefault}

// String 返回档位在配置文件中的键名
func (t DifficultyTier) String() string {
	switch t {
	case TierEasy:
		return "easy"
	case TierMedium:
		return "medium"
	case TierHard:
		return "hard"
	case TierDefault:
		return "default"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// Valid 检查档位是否在已知范围内
func (t DifficultyTier) Valid() bool {
	return t >= TierEasy && t <= TierDefault
}

// ParseDifficultyTier 将配置键名或命令行参数解析为档位（大小写不敏感）
func ParseDifficultyTier(name string) (DifficultyTier, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "easy":
		return TierEasy, nil
	case "medium", "normal":
		return TierMedium, nil
	case "hard":
		return TierHard, nil
	case "default", "":
		return TierDefault, nil
	}
	return TierDefault, fmt.Errorf("%w: %q", ErrUnknownTier, name)
}

// DifficultyProfile 一局游戏的难度参数包
// 每局开始时选定一次，之后只读
type DifficultyProfile struct {
	Tier DifficultyTier `yaml:"-"`

	StartWave  int `yaml:"startWave"`  // 首个波次的绝对编号
	EndWave    int `yaml:"endWave"`    // 最后一个波次的绝对编号
	TotalWaves int `yaml:"totalWaves"` // 本档位要发出的波次数

	WaveDuration   float64 `yaml:"waveDuration"`   // 每波软时限（秒）
	RestDuration   float64 `yaml:"restDuration"`   // 波间休整（秒）
	TotalTimeLimit float64 `yaml:"totalTimeLimit"` // 全局计时（秒）

	EnemyHealthMultiplier float64 `yaml:"enemyHealthMultiplier"`
	EnemyDamageMultiplier float64 `yaml:"enemyDamageMultiplier"`

	SuddenDeathImmediate bool    `yaml:"suddenDeathImmediate"` // 波次耗尽后立即进入加时
	SuddenDeathDuration  float64 `yaml:"suddenDeathDuration"`  // 全局计时首次到期后加时时长（秒）

	CoinsRequired int `yaml:"coinsRequired"` // 胜利所需金币，0 表示不要求

	IntroLines []string `yaml:"introLines"` // 开场旁白（纯装饰）
}

// Validate 检查档位参数的不变量
func (p DifficultyProfile) Validate() error {
	if p.StartWave < 1 {
		return fmt.Errorf("startWave must be >= 1, got %d", p.StartWave)
	}
	if p.StartWave > p.EndWave {
		return fmt.Errorf("startWave (%d) must be <= endWave (%d)", p.StartWave, p.EndWave)
	}
	if p.TotalWaves < 1 {
		return fmt.Errorf("totalWaves must be >= 1, got %d", p.TotalWaves)
	}

	nonNegative := map[string]float64{
		"waveDuration":          p.WaveDuration,
		"restDuration":          p.RestDuration,
		"totalTimeLimit":        p.TotalTimeLimit,
		"enemyHealthMultiplier": p.EnemyHealthMultiplier,
		"enemyDamageMultiplier": p.EnemyDamageMultiplier,
		"suddenDeathDuration":   p.SuddenDeathDuration,
	}
	for name, v := range nonNegative {
		if v < 0 {
			return fmt.Errorf("%s cannot be negative, got %v", name, v)
		}
	}
	if p.CoinsRequired < 0 {
		return fmt.Errorf("coinsRequired cannot be negative, got %d", p.CoinsRequired)
	}
	return nil
}

// DefaultProfile 硬编码的兜底档位，配置缺失时使用
func DefaultProfile() DifficultyProfile {
	return DifficultyProfile{
		Tier:                  TierDefault,
		StartWave:             1,
		EndWave:               5,
		TotalWaves:            5,
		WaveDuration:          60,
		RestDuration:          10,
		TotalTimeLimit:        480,
		EnemyHealthMultiplier: 1,
		EnemyDamageMultiplier: 1,
		SuddenDeathImmediate:  false,
		SuddenDeathDuration:   60,
		CoinsRequired:         0,
		IntroLines:            []string{"Hold the line, wizard."},
	}
}

// DifficultyTable 档位 -> 参数包 查找表
type DifficultyTable struct {
	profiles map[DifficultyTier]DifficultyProfile
}

// difficultyFile 难度配置文件结构
type difficultyFile struct {
	Profiles map[string]DifficultyProfile `yaml:"profiles"`
}

// profilePresence 记录可缺省字段是否在文件中出现
// 显式写 0 与省略含义不同：省略取默认值，0 保留
type profilePresence struct {
	EnemyHealthMultiplier *float64 `yaml:"enemyHealthMultiplier"`
	EnemyDamageMultiplier *float64 `yaml:"enemyDamageMultiplier"`
	SuddenDeathDuration   *float64 `yaml:"suddenDeathDuration"`
}

// presenceFile 只解析字段是否出现
type presenceFile struct {
	Profiles map[string]profilePresence `yaml:"profiles"`
}

// DefaultDifficultyTable 只包含兜底档位的查找表
func DefaultDifficultyTable() *DifficultyTable {
	return &DifficultyTable{
		profiles: map[DifficultyTier]DifficultyProfile{TierDefault: DefaultProfile()},
	}
}

// LoadDifficultyTable 从嵌入数据加载难度参数表
func LoadDifficultyTable(path string) (*DifficultyTable, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read difficulty config %s: %w", path, err)
	}
	table, err := ParseDifficultyTable(data)
	if err != nil {
		return nil, fmt.Errorf("invalid difficulty config in %s: %w", path, err)
	}
	return table, nil
}

// LoadDifficultyTableOrDefault 加载难度表，失败时记录警告并返回兜底表
func LoadDifficultyTableOrDefault(path string) *DifficultyTable {
	table, err := LoadDifficultyTable(path)
	if err != nil {
		log.Printf("[DifficultyConfig] Warning: %v (using built-in default profile)", err)
		return DefaultDifficultyTable()
	}
	return table
}

// ParseDifficultyTable 解析 YAML 格式的难度参数表
func ParseDifficultyTable(data []byte) (*DifficultyTable, error) {
	var file difficultyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse difficulty YAML: %w", err)
	}
	if len(file.Profiles) == 0 {
		return nil, fmt.Errorf("at least one profile is required")
	}
	var presence presenceFile
	if err := yaml.Unmarshal(data, &presence); err != nil {
		return nil, fmt.Errorf("failed to parse difficulty YAML: %w", err)
	}

	table := &DifficultyTable{profiles: make(map[DifficultyTier]DifficultyProfile, len(file.Profiles))}
	for name, profile := range file.Profiles {
		tier, err := ParseDifficultyTier(name)
		if err != nil {
			return nil, err
		}
		profile.Tier = tier
		applyProfileDefaults(&profile, presence.Profiles[name])
		if err := profile.Validate(); err != nil {
			return nil, fmt.Errorf("profile %s: %w", name, err)
		}
		table.profiles[tier] = profile
	}

	// 查找表始终保证存在 default 档位
	if _, ok := table.profiles[TierDefault]; !ok {
		table.profiles[TierDefault] = DefaultProfile()
	}
	return table, nil
}

// applyProfileDefaults 为省略的字段设置默认值
func applyProfileDefaults(p *DifficultyProfile, present profilePresence) {
	if present.EnemyHealthMultiplier == nil {
		p.EnemyHealthMultiplier = 1
	}
	if present.EnemyDamageMultiplier == nil {
		p.EnemyDamageMultiplier = 1
	}
	if p.TotalWaves == 0 && p.EndWave >= p.StartWave {
		p.TotalWaves = p.EndWave - p.StartWave + 1
	}
	if present.SuddenDeathDuration == nil {
		p.SuddenDeathDuration = DefaultProfile().SuddenDeathDuration
	}
}

// Profile 查找指定档位的参数包
// 档位缺失时回退到 default 档位并记录警告
func (t *DifficultyTable) Profile(tier DifficultyTier) DifficultyProfile {
	if t == nil {
		log.Printf("[DifficultyConfig] Warning: no difficulty table, using built-in default profile")
		return DefaultProfile()
	}
	if p, ok := t.profiles[tier]; ok {
		return p
	}
	log.Printf("[DifficultyConfig] Warning: profile %s not found, falling back to default", tier)
	if p, ok := t.profiles[TierDefault]; ok {
		return p
	}
	return DefaultProfile()
}

// Tiers 返回表中存在的档位（按档位顺序）
func (t *DifficultyTable) Tiers() []DifficultyTier {
	tiers := make([]DifficultyTier, 0, len(t.profiles))
	for _, tier := range AllTiers {
		if _, ok := t.profiles[tier]; ok {
			tiers = append(tiers, tier)
		}
	}
	return tiers
}
