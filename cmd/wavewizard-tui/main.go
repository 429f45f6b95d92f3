// wavewizard-tui 在终端中运行一局游戏
//
// 用法：
//
//	go run ./cmd/wavewizard-tui --difficulty hard --map 1
//
// 操作：WASD/方向键移动，Tab 自动驾驶，p 暂停，r 重开，q/Esc 退出
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/decker502/wavewizard/pkg/audio"
	"github.com/decker502/wavewizard/pkg/config"
	"github.com/decker502/wavewizard/pkg/run"
	"github.com/decker502/wavewizard/pkg/tui"
	"github.com/gdamore/tcell/v2"
)

// frameInterval 约 30 FPS
const frameInterval = 33 * time.Millisecond

var (
	difficulty = flag.String("difficulty", "default", "难度（easy/medium/hard/default）")
	mapIndex   = flag.Int("map", 0, "地图下标")
	seed       = flag.Int64("seed", 0, "随机种子，0 表示使用当前时间")
	mute       = flag.Bool("mute", false, "关闭音效")
	logFile    = flag.String("log", "", "日志文件（终端被占用，默认丢弃日志）")
)

func main() {
	flag.Parse()

	tier, err := config.ParseDifficultyTier(*difficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --difficulty: %v\n", err)
		os.Exit(2)
	}

	verbose := *logFile != ""
	if verbose {
		f, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "cannot init screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	game := run.New(run.Options{Tier: tier, MapIndex: *mapIndex, Seed: *seed, Verbose: verbose})
	messages := run.NewMessageLog(game.Dispatcher())
	defer messages.Close()

	cues := audio.NewCuePlayer(*mute)
	if err := cues.Init(); err != nil {
		// 没有音频设备时继续以无声模式运行
		log.Printf("[Main] Audio initialization failed: %v", err)
	}
	cues.Attach(game.Dispatcher())
	defer cues.Close()

	loop(screen, game, messages)
}

// loop 主循环：按键在独立 goroutine 中读取，定时器驱动逻辑帧
func loop(screen tcell.Screen, game *run.Run, messages *run.MessageLog) {
	renderer := tui.NewRenderer(screen)
	pilot := run.NewAutopilot(game)
	var input tui.Input
	paused, demo := false, false

	eventChan := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	last := time.Now()

	game.Start()
	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch input.HandleKey(ev) {
				case tui.ActionQuit:
					return
				case tui.ActionRestart:
					game.Restart()
					messages.Clear()
					input.Reset()
				case tui.ActionPause:
					paused = !paused
				case tui.ActionAutopilot:
					demo = !demo
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if dt > 0.1 {
				dt = 0.1
			}
			if !paused {
				if demo {
					pilot.Steer()
				} else {
					game.SetPlayerInput(input.Direction(dt))
				}
				game.Update(dt)
				messages.Update(dt)
			}
			renderer.Draw(game, messages, demo)
		}
	}
}
