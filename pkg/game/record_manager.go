package game

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// RunResult 一局游戏的结算数据
type RunResult struct {
	Tier     string  // 难度档位名称
	MapID    string  // 地图 ID
	Victory  bool    // 是否胜利
	Score    int     // 最终分数
	Kills    int     // 击杀数
	Level    int     // 最终等级
	Duration float64 // 开场结束后经过的时间（秒）
}

// TierRecord 单个难度档位的历史记录
type TierRecord struct {
	Runs           int       `yaml:"runs"`
	Victories      int       `yaml:"victories"`
	BestScore      int       `yaml:"bestScore"`
	FastestVictory float64   `yaml:"fastestVictory"` // 秒，0 表示尚未胜利过
	LastPlayedAt   time.Time `yaml:"lastPlayedAt"`
}

// RecordData 记录文件结构
type RecordData struct {
	Tiers map[string]*TierRecord `yaml:"tiers"`
}

// RecordManager 战绩管理器
//
// 职责：
//   - 按难度档位累计局数、胜场
//   - 保存最高分与最快胜利时间
//
// 数据持久化到本地 YAML 文件
type RecordManager struct {
	path string
	data *RecordData
}

// NewRecordManager 创建战绩管理器
//
// 参数：
//   - dir: 记录文件目录
//
// 记录文件损坏时返回错误；文件不存在时从空记录开始
func NewRecordManager(dir string) (*RecordManager, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create record directory: %w", err)
	}

	rm := &RecordManager{
		path: filepath.Join(dir, "records.yaml"),
		data: &RecordData{Tiers: map[string]*TierRecord{}},
	}

	if err := rm.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	return rm, nil
}

// Load 从文件加载记录
// 文件不存在时返回 os.ErrNotExist
func (rm *RecordManager) Load() error {
	data, err := os.ReadFile(rm.path)
	if err != nil {
		return err
	}

	var loaded RecordData
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to parse records: %w", err)
	}
	if loaded.Tiers == nil {
		loaded.Tiers = map[string]*TierRecord{}
	}
	rm.data = &loaded
	return nil
}

// Save 保存记录到文件
func (rm *RecordManager) Save() error {
	data, err := yaml.Marshal(rm.data)
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}
	if err := os.WriteFile(rm.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write record file: %w", err)
	}
	return nil
}

// Record 记录一局结果并保存
//
// 返回：
//   - bool: 是否刷新了该档位的最高分或最快胜利
//   - error: 保存失败时返回错误（内存中的记录仍会更新）
func (rm *RecordManager) Record(result RunResult) (bool, error) {
	rec, ok := rm.data.Tiers[result.Tier]
	if !ok {
		rec = &TierRecord{}
		rm.data.Tiers[result.Tier] = rec
	}

	rec.Runs++
	rec.LastPlayedAt = time.Now()

	improved := false
	if result.Score > rec.BestScore {
		rec.BestScore = result.Score
		improved = true
	}
	if result.Victory {
		rec.Victories++
		if rec.FastestVictory == 0 || result.Duration < rec.FastestVictory {
			rec.FastestVictory = result.Duration
			improved = true
		}
	}

	log.Printf("[RecordManager] Recorded %s run on %s (victory=%v, score=%d, improved=%v)",
		result.Tier, result.MapID, result.Victory, result.Score, improved)

	if err := rm.Save(); err != nil {
		return improved, err
	}
	return improved, nil
}

// Get 返回指定档位的记录
func (rm *RecordManager) Get(tier string) (TierRecord, bool) {
	rec, ok := rm.data.Tiers[tier]
	if !ok {
		return TierRecord{}, false
	}
	return *rec, true
}

// TierNames 返回有记录的档位名称（排序后）
func (rm *RecordManager) TierNames() []string {
	names := make([]string, 0, len(rm.data.Tiers))
	for name := range rm.data.Tiers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
