package config

import (
	"fmt"
	"log"
	"sort"

	"github.com/decker502/wavewizard/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// SpawnScriptPath 波次脚本的嵌入路径
const SpawnScriptPath = "data/waves.yaml"

// DefaultBossWave 默认的终局（Boss）波次编号
const DefaultBossWave = 5

// SpawnGroup 一组敌人的生成指令
// 对应 (数量, 阶, 子类型, 下一组前的延迟)
type SpawnGroup struct {
	Count      int         `yaml:"count"`
	Tier       HostileTier `yaml:"tier"`
	Variant    *int        `yaml:"variant"` // nil 表示在阶池中随机选择
	DelayAfter float64     `yaml:"delayAfter"`
}

// VariantIndex 返回子类型下标，未指定时返回 -1
func (g SpawnGroup) VariantIndex() int {
	if g.Variant == nil {
		return -1
	}
	return *g.Variant
}

// SpawnScript 全部波次的生成脚本
type SpawnScript struct {
	BossWave int                  `yaml:"bossWave"`
	Waves    map[int][]SpawnGroup `yaml:"waves"`
	Boss     []SpawnGroup         `yaml:"boss"`
}

// LoadSpawnScript 从嵌入数据加载波次脚本
func LoadSpawnScript(path string) (*SpawnScript, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read spawn script %s: %w", path, err)
	}
	script, err := ParseSpawnScript(data)
	if err != nil {
		return nil, fmt.Errorf("invalid spawn script in %s: %w", path, err)
	}
	return script, nil
}

// LoadSpawnScriptOrDefault 加载波次脚本，失败时记录警告并使用内置脚本
func LoadSpawnScriptOrDefault(path string) *SpawnScript {
	script, err := LoadSpawnScript(path)
	if err != nil {
		log.Printf("[SpawnScript] Warning: %v (using built-in script)", err)
		return DefaultSpawnScript()
	}
	return script
}

// ParseSpawnScript 解析 YAML 格式的波次脚本
func ParseSpawnScript(data []byte) (*SpawnScript, error) {
	var script SpawnScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("failed to parse spawn script YAML: %w", err)
	}
	if script.BossWave == 0 {
		script.BossWave = DefaultBossWave
	}
	if err := validateSpawnScript(&script); err != nil {
		return nil, err
	}
	return &script, nil
}

// validateSpawnScript 验证波次脚本的合法性
func validateSpawnScript(script *SpawnScript) error {
	if len(script.Waves) == 0 {
		return fmt.Errorf("at least one wave is required")
	}
	for wave, groups := range script.Waves {
		if wave < 1 {
			return fmt.Errorf("wave number must be >= 1, got %d", wave)
		}
		if err := validateGroups(groups); err != nil {
			return fmt.Errorf("wave %d: %w", wave, err)
		}
	}
	if err := validateGroups(script.Boss); err != nil {
		return fmt.Errorf("boss: %w", err)
	}
	return nil
}

func validateGroups(groups []SpawnGroup) error {
	for i, g := range groups {
		if g.Count < 0 {
			return fmt.Errorf("group %d: count cannot be negative, got %d", i, g.Count)
		}
		if !g.Tier.Valid() {
			return fmt.Errorf("group %d: unknown tier %q", i, g.Tier)
		}
		if g.DelayAfter < 0 {
			return fmt.Errorf("group %d: delayAfter cannot be negative, got %v", i, g.DelayAfter)
		}
		if g.Variant != nil && *g.Variant < 0 {
			return fmt.Errorf("group %d: variant cannot be negative, got %d", i, *g.Variant)
		}
	}
	return nil
}

// GroupsForWave 返回指定绝对波次的生成组
// 脚本中没有该波次时，使用不超过它的最大波次（高难度可跳到高编号波次）
func (s *SpawnScript) GroupsForWave(wave int) []SpawnGroup {
	if groups, ok := s.Waves[wave]; ok {
		return groups
	}

	numbers := make([]int, 0, len(s.Waves))
	for n := range s.Waves {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	best := -1
	for _, n := range numbers {
		if n <= wave {
			best = n
		}
	}
	if best == -1 {
		if len(numbers) == 0 {
			return nil
		}
		best = numbers[0]
	}
	log.Printf("[SpawnScript] Warning: wave %d not scripted, reusing wave %d", wave, best)
	return s.Waves[best]
}

// DefaultSpawnScript 内置兜底脚本
func DefaultSpawnScript() *SpawnScript {
	zero := 0
	return &SpawnScript{
		BossWave: DefaultBossWave,
		Waves: map[int][]SpawnGroup{
			1: {{Count: 4, Tier: HostileWeak, DelayAfter: 0}},
			2: {{Count: 4, Tier: HostileWeak, DelayAfter: 3}, {Count: 2, Tier: HostileMedium}},
			3: {{Count: 3, Tier: HostileMedium, DelayAfter: 3}, {Count: 1, Tier: HostileStrong}},
			4: {{Count: 4, Tier: HostileMedium, DelayAfter: 3}, {Count: 2, Tier: HostileStrong}},
			5: {{Count: 5, Tier: HostileWeak, DelayAfter: 3}, {Count: 2, Tier: HostileStrong}},
		},
		Boss: []SpawnGroup{{Count: 1, Tier: HostileBoss, Variant: &zero}},
	}
}
