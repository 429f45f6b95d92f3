package scenes

import (
	"fmt"
	"image/color"
	"log"
	"strings"

	"github.com/decker502/wavewizard/pkg/config"
	"github.com/decker502/wavewizard/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// menuRow 菜单行
type menuRow int

const (
	rowTier menuRow = iota
	rowMap
	rowSound
	rowStart
	rowCount
)

// menuKey 菜单按键（与具体输入设备无关）
type menuKey int

const (
	keyNone menuKey = iota
	keyUp
	keyDown
	keyLeft
	keyRight
	keyConfirm
)

var menuBackground = color.RGBA{R: 18, G: 14, B: 32, A: 255}

// MenuScene 主菜单：选择难度、地图、音效开关
// 选择保存在 SettingsManager 中，开始战斗时写盘
type MenuScene struct {
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	records      *game.RecordManager
	mapNames     []string
	table        *config.DifficultyTable
	cursor       menuRow
	onSound      func(enabled bool)
}

// NewMenuScene 创建主菜单
//
// 参数：
//   - records: 可为 nil（不显示战绩）
//   - onSound: 音效开关变化时回调，可为 nil
func NewMenuScene(sm *game.SceneManager, settings *game.SettingsManager, records *game.RecordManager,
	cfg MenuConfig, onSound func(enabled bool)) *MenuScene {
	var names []string
	if cfg.Maps != nil {
		for _, m := range cfg.Maps.Maps {
			names = append(names, m.Name)
		}
	}
	if len(names) == 0 {
		names = append(names, config.DefaultMap().Name)
	}

	s := &MenuScene{
		sceneManager: sm,
		settings:     settings,
		records:      records,
		mapNames:     names,
		table:        cfg.Difficulty,
		onSound:      onSound,
	}
	if st := settings.GetSettings(); st.MapIndex >= len(names) {
		settings.SetMapIndex(0)
	}
	return s
}

// MenuConfig 菜单需要的静态配置
type MenuConfig struct {
	Difficulty *config.DifficultyTable
	Maps       *config.MapCatalog
}

// Update 读取键盘输入
func (s *MenuScene) Update(deltaTime float64) {
	s.handleKey(readMenuKey())
}

func readMenuKey() menuKey {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyUp), inpututil.IsKeyJustPressed(ebiten.KeyW):
		return keyUp
	case inpututil.IsKeyJustPressed(ebiten.KeyDown), inpututil.IsKeyJustPressed(ebiten.KeyS):
		return keyDown
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft), inpututil.IsKeyJustPressed(ebiten.KeyA):
		return keyLeft
	case inpututil.IsKeyJustPressed(ebiten.KeyRight), inpututil.IsKeyJustPressed(ebiten.KeyD):
		return keyRight
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		return keyConfirm
	}
	return keyNone
}

// handleKey 处理一次按键
func (s *MenuScene) handleKey(key menuKey) {
	switch key {
	case keyUp:
		s.cursor = (s.cursor + rowCount - 1) % rowCount
	case keyDown:
		s.cursor = (s.cursor + 1) % rowCount
	case keyLeft:
		s.cycle(-1)
	case keyRight:
		s.cycle(1)
	case keyConfirm:
		if s.cursor == rowStart {
			s.start()
			return
		}
		s.cycle(1)
	}
}

// cycle 修改当前行的取值
func (s *MenuScene) cycle(step int) {
	st := s.settings.GetSettings()
	switch s.cursor {
	case rowTier:
		idx := tierIndex(st.Tier())
		n := len(config.AllTiers)
		s.settings.SetDifficultyTier(config.AllTiers[(idx+step+n)%n])
	case rowMap:
		n := len(s.mapNames)
		s.settings.SetMapIndex((st.MapIndex + step + n) % n)
	case rowSound:
		s.settings.SetSoundEnabled(!st.SoundEnabled)
		if s.onSound != nil {
			s.onSound(!st.SoundEnabled)
		}
	}
}

func tierIndex(tier config.DifficultyTier) int {
	for i, t := range config.AllTiers {
		if t == tier {
			return i
		}
	}
	return 0
}

// start 保存设置并开始战斗
func (s *MenuScene) start() {
	if err := s.settings.Save(); err != nil {
		log.Printf("[MenuScene] Warning: failed to save settings: %v", err)
	}
	st := s.settings.GetSettings()
	s.sceneManager.StartBattle(st.Tier(), st.MapIndex)
}

// Draw 绘制菜单
func (s *MenuScene) Draw(screen *ebiten.Image) {
	screen.Fill(menuBackground)

	ebitenutil.DebugPrintAt(screen, "WAVE WIZARD", ScreenWidth/2-40, 80)
	for i, line := range s.lines() {
		prefix := "  "
		if menuRow(i) == s.cursor {
			prefix = "> "
		}
		ebitenutil.DebugPrintAt(screen, prefix+line, ScreenWidth/2-160, 180+i*28)
	}

	ebitenutil.DebugPrintAt(screen, "Up/Down: select   Left/Right: change   Enter: start", ScreenWidth/2-170, 340)
	ebitenutil.DebugPrintAt(screen, s.profileSummary(), ScreenWidth/2-160, 400)
	ebitenutil.DebugPrintAt(screen, s.recordSummary(), ScreenWidth/2-160, 520)
}

// lines 菜单行文本
func (s *MenuScene) lines() []string {
	st := s.settings.GetSettings()
	sound := "on"
	if !st.SoundEnabled {
		sound = "off"
	}
	mapName := s.mapNames[0]
	if st.MapIndex >= 0 && st.MapIndex < len(s.mapNames) {
		mapName = s.mapNames[st.MapIndex]
	}
	return []string{
		fmt.Sprintf("Difficulty: < %s >", st.Tier()),
		fmt.Sprintf("Arena:      < %s >", mapName),
		fmt.Sprintf("Sound:      < %s >", sound),
		"Start",
	}
}

// profileSummary 当前难度档位的参数摘要
func (s *MenuScene) profileSummary() string {
	p := s.table.Profile(s.settings.GetSettings().Tier())
	var b strings.Builder
	fmt.Fprintf(&b, "Waves %d-%d (%d total)\n", p.StartWave, p.EndWave, p.TotalWaves)
	if p.TotalTimeLimit > 0 {
		fmt.Fprintf(&b, "Time limit %.0fs, then sudden death\n", p.TotalTimeLimit)
	}
	fmt.Fprintf(&b, "Enemy health x%.2f, damage x%.2f\n", p.EnemyHealthMultiplier, p.EnemyDamageMultiplier)
	if p.CoinsRequired > 0 {
		fmt.Fprintf(&b, "Collect %d coins to win\n", p.CoinsRequired)
	}
	return b.String()
}

// recordSummary 当前档位的战绩
func (s *MenuScene) recordSummary() string {
	if s.records == nil {
		return ""
	}
	tier := s.settings.GetSettings().Tier().String()
	rec, ok := s.records.Get(tier)
	if !ok {
		return "No runs recorded on this difficulty yet"
	}
	line := fmt.Sprintf("Runs %d  Victories %d  Best score %d", rec.Runs, rec.Victories, rec.BestScore)
	if rec.FastestVictory > 0 {
		line += fmt.Sprintf("  Fastest %.0fs", rec.FastestVictory)
	}
	return line
}
