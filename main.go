package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/decker502/wavewizard/pkg/app"
	"github.com/decker502/wavewizard/pkg/config"
	"github.com/decker502/wavewizard/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细日志")
	difficulty = flag.String("difficulty", "", "直接开局的难度（easy/medium/hard/default），为空时显示菜单")
	mapIndex   = flag.Int("map", -1, "地图下标（maps.yaml 中的顺序），-1 使用已保存的设置")
	mute       = flag.Bool("mute", false, "关闭音效")
	seed       = flag.Int64("seed", 0, "随机种子，0 表示使用当前时间")
)

func main() {
	flag.Parse()

	cfg := app.Config{
		Verbose:  *verbose,
		MapIndex: *mapIndex,
		Mute:     *mute,
		Seed:     *seed,
	}
	if *difficulty != "" {
		tier, err := config.ParseDifficultyTier(*difficulty)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid --difficulty: %v\n", err)
			os.Exit(2)
		}
		cfg.Tier = &tier
	}

	gameApp, err := app.NewApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "游戏初始化失败: %v\n", err)
		os.Exit(1)
	}
	defer gameApp.Shutdown()

	ebiten.SetWindowSize(scenes.ScreenWidth, scenes.ScreenHeight)
	ebiten.SetWindowTitle("Wave Wizard")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
