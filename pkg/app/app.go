// Package app 提供桌面版游戏应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来：读取设置、打开战绩、
// 准备音效、创建场景管理器，然后由 main.go 交给 ebiten.RunGame。
package app

import (
	"image/color"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/decker502/wavewizard/pkg/audio"
	"github.com/decker502/wavewizard/pkg/config"
	"github.com/decker502/wavewizard/pkg/game"
	"github.com/decker502/wavewizard/pkg/run"
	"github.com/decker502/wavewizard/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// appName gdata 与战绩目录使用的应用名
const appName = "wavewizard"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Tier 直接开局的难度；为 nil 时显示菜单
	Tier *config.DifficultyTier
	// MapIndex 地图下标，<0 表示使用已保存的设置
	MapIndex int
	// Mute 关闭音效（覆盖设置）
	Mute bool
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	cues         *audio.CuePlayer
	verbose      bool
}

// NewApp 创建并初始化游戏应用
// 设置存储、战绩文件、音频设备任何一项不可用都只降级，不返回错误
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gdataManager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[App] Warning: persistent storage unavailable: %v (settings will not be saved)", err)
		gdataManager = nil
	}
	settings := game.NewSettingsManager(gdataManager)

	records, err := game.NewRecordManager(recordDir())
	if err != nil {
		log.Printf("[App] Warning: records unavailable: %v", err)
		records = nil
	}

	muted := cfg.Mute || !settings.GetSettings().SoundEnabled
	cues := audio.NewCuePlayer(muted)
	if err := cues.Init(); err != nil {
		log.Printf("[App] Warning: %v (continuing without sound)", err)
	}

	runCfg := run.LoadConfig()
	sceneManager := game.NewSceneManager()
	sceneManager.SetBattleFactory(func(tier config.DifficultyTier, mapIndex int) game.Scene {
		opts := run.Options{Tier: tier, MapIndex: mapIndex, Seed: cfg.Seed, Verbose: cfg.Verbose}
		return scenes.NewBattleScene(sceneManager, runCfg, opts, cues, records)
	})
	sceneManager.SetMenuFactory(func() game.Scene {
		menuCfg := scenes.MenuConfig{Difficulty: runCfg.Difficulty, Maps: runCfg.Maps}
		return scenes.NewMenuScene(sceneManager, settings, records, menuCfg, func(enabled bool) {
			if !cfg.Mute {
				cues.SetMuted(!enabled)
				if enabled {
					if err := cues.Init(); err != nil {
						log.Printf("[App] Warning: %v", err)
					}
				}
			}
		})
	})

	if cfg.Tier != nil {
		mapIndex := cfg.MapIndex
		if mapIndex < 0 {
			mapIndex = settings.GetSettings().MapIndex
		}
		log.Printf("[App] Skipping menu: tier=%s map=%d", *cfg.Tier, mapIndex)
		sceneManager.StartBattle(*cfg.Tier, mapIndex)
	} else {
		if cfg.MapIndex >= 0 {
			settings.SetMapIndex(cfg.MapIndex)
		}
		sceneManager.ShowMenu()
	}

	return &App{
		sceneManager: sceneManager,
		settings:     settings,
		cues:         cues,
		verbose:      cfg.Verbose,
	}, nil
}

// recordDir 战绩目录：用户配置目录下的 wavewizard，取不到时用当前目录
func recordDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return appName
	}
	return filepath.Join(dir, appName)
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时两侧填充黑色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return scenes.ScreenWidth, scenes.ScreenHeight
}

// Shutdown 关闭当前场景、保存设置、释放音频设备
func (a *App) Shutdown() {
	a.sceneManager.Shutdown()
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
	a.cues.Close()
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
