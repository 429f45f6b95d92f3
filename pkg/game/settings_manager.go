package game

import (
	"fmt"
	"log"

	"github.com/decker502/wavewizard/pkg/config"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// GameSettings 持久化的玩家选择
// 只是一条扁平记录：难度档位下标、地图下标、音效开关
type GameSettings struct {
	DifficultyTier int  `yaml:"difficultyTier"` // config.DifficultyTier 的数值
	MapIndex       int  `yaml:"mapIndex"`       // maps.yaml 中的下标
	SoundEnabled   bool `yaml:"soundEnabled"`   // 音效开关
}

// DefaultSettings 返回默认设置
func DefaultSettings() *GameSettings {
	return &GameSettings{
		DifficultyTier: int(config.TierDefault),
		MapIndex:       0,
		SoundEnabled:   true,
	}
}

// Tier 返回设置中的难度档位，非法值回退到 default
func (s *GameSettings) Tier() config.DifficultyTier {
	tier := config.DifficultyTier(s.DifficultyTier)
	if !tier.Valid() {
		log.Printf("[SettingsManager] Warning: stored difficulty tier %d is invalid, using default", s.DifficultyTier)
		return config.TierDefault
	}
	return tier
}

// SettingsManager 设置管理器
// 负责玩家选择的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *GameSettings  // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 加载失败不影响创建，使用默认设置
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}
	return sm
}

// Load 从 gdata 加载设置
// 如果 gdataManager 为 nil 或记录不存在，使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded (tier=%s, map=%d)", loaded.Tier(), loaded.MapIndex)
	return nil
}

// Save 保存设置到 gdata
// 降级模式下直接返回 nil
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *GameSettings {
	return sm.settings
}

// SetDifficultyTier 设置难度档位（需调用 Save() 持久化）
func (sm *SettingsManager) SetDifficultyTier(tier config.DifficultyTier) {
	if !tier.Valid() {
		log.Printf("[SettingsManager] Warning: ignoring invalid difficulty tier %d", int(tier))
		return
	}
	sm.settings.DifficultyTier = int(tier)
}

// SetMapIndex 设置地图下标（需调用 Save() 持久化）
func (sm *SettingsManager) SetMapIndex(index int) {
	if index < 0 {
		index = 0
	}
	sm.settings.MapIndex = index
}

// SetSoundEnabled 设置音效开关（需调用 Save() 持久化）
func (sm *SettingsManager) SetSoundEnabled(enabled bool) {
	sm.settings.SoundEnabled = enabled
}
