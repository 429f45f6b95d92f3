package config

import (
	"errors"
	"testing"
)

func TestLoadSpawnScriptEmbedded(t *testing.T) {
	script, err := LoadSpawnScript(SpawnScriptPath)
	if err != nil {
		t.Fatalf("LoadSpawnScript failed: %v", err)
	}
	if script.BossWave != 5 {
		t.Errorf("expected boss wave 5, got %d", script.BossWave)
	}
	for wave := 1; wave <= 5; wave++ {
		if len(script.Waves[wave]) == 0 {
			t.Errorf("wave %d has no groups", wave)
		}
	}
	if len(script.Boss) == 0 || script.Boss[0].Tier != HostileBoss {
		t.Fatalf("boss script should start with a boss group, got %+v", script.Boss)
	}
	if script.Boss[0].VariantIndex() != 0 {
		t.Errorf("boss variant should be pinned to 0, got %d", script.Boss[0].VariantIndex())
	}
}

func TestParseSpawnScriptDefaults(t *testing.T) {
	script, err := ParseSpawnScript([]byte(`
waves:
  1:
    - { count: 2, tier: weak }
`))
	if err != nil {
		t.Fatalf("ParseSpawnScript failed: %v", err)
	}
	if script.BossWave != DefaultBossWave {
		t.Errorf("boss wave should default to %d, got %d", DefaultBossWave, script.BossWave)
	}
	if got := script.Waves[1][0].VariantIndex(); got != -1 {
		t.Errorf("omitted variant should be -1, got %d", got)
	}
}

func TestParseSpawnScriptErrors(t *testing.T) {
	cases := map[string]string{
		"没有波次":  "bossWave: 5\n",
		"波次号为 0": "waves:\n  0:\n    - { count: 1, tier: weak }\n",
		"未知阶":   "waves:\n  1:\n    - { count: 1, tier: dragon }\n",
		"负数数量":  "waves:\n  1:\n    - { count: -1, tier: weak }\n",
		"负数延迟":  "waves:\n  1:\n    - { count: 1, tier: weak, delayAfter: -2 }\n",
		"负数子类型": "waves:\n  1:\n    - { count: 1, tier: weak, variant: -1 }\n",
		"Boss 组错误": "waves:\n  1:\n    - { count: 1, tier: weak }\nboss:\n  - { count: 1, tier: ogre }\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseSpawnScript([]byte(data)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestGroupsForWaveFallback(t *testing.T) {
	script := &SpawnScript{Waves: map[int][]SpawnGroup{
		1: {{Count: 1, Tier: HostileWeak}},
		3: {{Count: 3, Tier: HostileMedium}},
	}}

	if got := script.GroupsForWave(3); got[0].Count != 3 {
		t.Errorf("wave 3 should be scripted directly, got %+v", got)
	}
	if got := script.GroupsForWave(2); got[0].Count != 1 {
		t.Errorf("wave 2 should reuse wave 1, got %+v", got)
	}
	if got := script.GroupsForWave(9); got[0].Count != 3 {
		t.Errorf("wave 9 should reuse wave 3, got %+v", got)
	}
	if got := script.GroupsForWave(0); got[0].Count != 1 {
		t.Errorf("wave 0 should use the lowest scripted wave, got %+v", got)
	}
}

func TestLoadEnemyPoolsEmbedded(t *testing.T) {
	pools, err := LoadEnemyPools(EnemyConfigPath)
	if err != nil {
		t.Fatalf("LoadEnemyPools failed: %v", err)
	}
	for _, tier := range []HostileTier{HostileWeak, HostileMedium, HostileStrong, HostileBoss} {
		templates, err := pools.Pool(tier)
		if err != nil {
			t.Errorf("tier %s: %v", tier, err)
			continue
		}
		for _, tpl := range templates {
			if tpl.MaxHealth <= 0 {
				t.Errorf("%s has non-positive health", tpl.ID)
			}
		}
	}
	boss, _ := pools.Pool(HostileBoss)
	if boss[0].ID != "lich" {
		t.Errorf("boss variant 0 should be lich, got %s", boss[0].ID)
	}
}

func TestEnemyPoolsMissingTier(t *testing.T) {
	pools, err := ParseEnemyPools([]byte(`
tiers:
  weak:
    - { id: rat, maxHealth: 5 }
`))
	if err != nil {
		t.Fatalf("ParseEnemyPools failed: %v", err)
	}
	if _, err := pools.Pool(HostileStrong); !errors.Is(err, ErrNoSpawnPool) {
		t.Errorf("expected ErrNoSpawnPool, got %v", err)
	}

	var nilPools *EnemyPools
	if _, err := nilPools.Pool(HostileWeak); !errors.Is(err, ErrNoSpawnPool) {
		t.Errorf("nil pools: expected ErrNoSpawnPool, got %v", err)
	}
}

func TestParseEnemyPoolsErrors(t *testing.T) {
	cases := map[string]string{
		"空池":     "tiers: {}\n",
		"未知阶":    "tiers:\n  epic:\n    - { id: x, maxHealth: 1 }\n",
		"缺少 id":  "tiers:\n  weak:\n    - { maxHealth: 1 }\n",
		"生命值为 0": "tiers:\n  weak:\n    - { id: x, maxHealth: 0 }\n",
		"负数奖励":   "tiers:\n  weak:\n    - { id: x, maxHealth: 1, rewardCoins: -1 }\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseEnemyPools([]byte(data)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
