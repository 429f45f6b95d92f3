package config

import (
	"errors"
	"testing"
)

func TestParseDifficultyTier(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    DifficultyTier
		wantErr bool
	}{
		{"easy", "easy", TierEasy, false},
		{"大小写不敏感", "HARD", TierHard, false},
		{"normal 视为 medium", "normal", TierMedium, false},
		{"空字符串视为 default", "", TierDefault, false},
		{"带空白", "  medium ", TierMedium, false},
		{"未知档位", "nightmare", TierDefault, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDifficultyTier(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownTier) {
					t.Fatalf("expected ErrUnknownTier, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestDifficultyTierString(t *testing.T) {
	for _, tier := range AllTiers {
		parsed, err := ParseDifficultyTier(tier.String())
		if err != nil {
			t.Fatalf("tier %d: %v", tier, err)
		}
		if parsed != tier {
			t.Errorf("round trip of %s gave %s", tier, parsed)
		}
	}
	if DifficultyTier(9).Valid() {
		t.Error("tier 9 should be invalid")
	}
}

func TestLoadDifficultyTableEmbedded(t *testing.T) {
	table, err := LoadDifficultyTable(DifficultyConfigPath)
	if err != nil {
		t.Fatalf("LoadDifficultyTable failed: %v", err)
	}

	if got := len(table.Tiers()); got != 4 {
		t.Fatalf("expected 4 tiers, got %d", got)
	}

	easy := table.Profile(TierEasy)
	if easy.StartWave != 1 || easy.EndWave != 1 || easy.TotalWaves != 1 {
		t.Errorf("easy waves: got %d..%d total %d", easy.StartWave, easy.EndWave, easy.TotalWaves)
	}
	if easy.SuddenDeathImmediate {
		t.Error("easy should not enter sudden death immediately")
	}
	if easy.Tier != TierEasy {
		t.Errorf("easy profile carries tier %v", easy.Tier)
	}

	hard := table.Profile(TierHard)
	if hard.StartWave != 5 || hard.TotalWaves != 1 {
		t.Errorf("hard waves: got start %d total %d", hard.StartWave, hard.TotalWaves)
	}
	if !hard.SuddenDeathImmediate {
		t.Error("hard should enter sudden death immediately")
	}
	if hard.EnemyHealthMultiplier != 1.5 {
		t.Errorf("hard health multiplier: expected 1.5, got %v", hard.EnemyHealthMultiplier)
	}

	for _, tier := range table.Tiers() {
		if err := table.Profile(tier).Validate(); err != nil {
			t.Errorf("profile %s invalid: %v", tier, err)
		}
	}
}

func TestParseDifficultyTableFallsBackToDefault(t *testing.T) {
	yamlData := []byte(`
profiles:
  easy:
    startWave: 1
    endWave: 2
    waveDuration: 30
    restDuration: 5
    totalTimeLimit: 100
`)
	table, err := ParseDifficultyTable(yamlData)
	if err != nil {
		t.Fatalf("ParseDifficultyTable failed: %v", err)
	}

	easy := table.Profile(TierEasy)
	if easy.TotalWaves != 2 {
		t.Errorf("totalWaves should default to endWave-startWave+1, got %d", easy.TotalWaves)
	}
	if easy.EnemyHealthMultiplier != 1 || easy.EnemyDamageMultiplier != 1 {
		t.Errorf("multipliers should default to 1, got %v/%v", easy.EnemyHealthMultiplier, easy.EnemyDamageMultiplier)
	}

	// hard 未配置，应回退到 default 档位
	hard := table.Profile(TierHard)
	if hard.Tier != TierDefault {
		t.Errorf("missing tier should fall back to default, got %v", hard.Tier)
	}
	if hard.TotalTimeLimit != DefaultProfile().TotalTimeLimit {
		t.Errorf("fallback should be the built-in default profile")
	}
}

func TestParseDifficultyTableErrors(t *testing.T) {
	cases := map[string]string{
		"空表":       "profiles: {}\n",
		"未知档位":     "profiles:\n  insane:\n    startWave: 1\n    endWave: 1\n",
		"起止波次颠倒":   "profiles:\n  easy:\n    startWave: 3\n    endWave: 1\n    totalWaves: 1\n",
		"负数时长":     "profiles:\n  easy:\n    startWave: 1\n    endWave: 1\n    waveDuration: -1\n",
		"负数金币":     "profiles:\n  easy:\n    startWave: 1\n    endWave: 1\n    coinsRequired: -5\n",
		"非法 YAML":  "profiles: [",
		"起始波次为 0": "profiles:\n  easy:\n    startWave: 0\n    endWave: 1\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseDifficultyTable([]byte(data)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestNilDifficultyTableProfile(t *testing.T) {
	var table *DifficultyTable
	p := table.Profile(TierHard)
	if p.Tier != TierDefault {
		t.Errorf("nil table should return the built-in default profile, got %v", p.Tier)
	}
}

func TestLoadDifficultyTableOrDefaultMissingFile(t *testing.T) {
	table := LoadDifficultyTableOrDefault("data/missing.yaml")
	if got := table.Tiers(); len(got) != 1 || got[0] != TierDefault {
		t.Errorf("expected only the default tier, got %v", got)
	}
}

func TestParseDifficultyTableKeepsExplicitZero(t *testing.T) {
	yamlData := []byte(`
profiles:
  easy:
    startWave: 1
    endWave: 1
    enemyHealthMultiplier: 0
    enemyDamageMultiplier: 0
    suddenDeathDuration: 0
  medium:
    startWave: 1
    endWave: 3
`)
	table, err := ParseDifficultyTable(yamlData)
	if err != nil {
		t.Fatalf("ParseDifficultyTable failed: %v", err)
	}

	easy := table.Profile(TierEasy)
	if easy.EnemyHealthMultiplier != 0 || easy.EnemyDamageMultiplier != 0 {
		t.Errorf("explicit zero multipliers should be kept, got %v/%v", easy.EnemyHealthMultiplier, easy.EnemyDamageMultiplier)
	}
	if easy.SuddenDeathDuration != 0 {
		t.Errorf("explicit zero sudden death duration should be kept, got %v", easy.SuddenDeathDuration)
	}

	medium := table.Profile(TierMedium)
	if medium.EnemyHealthMultiplier != 1 || medium.EnemyDamageMultiplier != 1 {
		t.Errorf("omitted multipliers should default to 1, got %v/%v", medium.EnemyHealthMultiplier, medium.EnemyDamageMultiplier)
	}
	if medium.SuddenDeathDuration != DefaultProfile().SuddenDeathDuration {
		t.Errorf("omitted sudden death duration should default, got %v", medium.SuddenDeathDuration)
	}
}
