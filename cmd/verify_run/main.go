// verify_run 无界面运行一局并打印状态时间线
//
// 用于校验难度档位的完整流程（开场、波次、休整、Boss、加时、胜负），
// 玩家由自动驾驶控制。
//
// 用法：
//
//	go run ./cmd/verify_run --difficulty easy --max-seconds 600
//	go run ./cmd/verify_run --difficulty hard --idle --verbose
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decker502/wavewizard/pkg/config"
	"github.com/decker502/wavewizard/pkg/event"
	"github.com/decker502/wavewizard/pkg/run"
)

const frame = 1.0 / 60

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	difficulty = flag.String("difficulty", "default", "难度（easy/medium/hard/default）")
	mapIndex   = flag.Int("map", 0, "地图下标")
	seed       = flag.Int64("seed", 1, "随机种子")
	maxSeconds = flag.Float64("max-seconds", 900, "模拟时长上限（秒）")
	idle       = flag.Bool("idle", false, "玩家不移动（只自动施法）")
)

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	tier, err := config.ParseDifficultyTier(*difficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --difficulty: %v\n", err)
		os.Exit(2)
	}

	game := run.New(run.Options{Tier: tier, MapIndex: *mapIndex, Seed: *seed, Verbose: *verbose})
	elapsed := 0.0
	stamp := func() string { return fmt.Sprintf("[%7.2fs]", elapsed) }

	d := game.Dispatcher()
	d.SubscribeFunc(event.StateChanged, func(e event.Event) {
		data := e.Data.(event.StateChangedData)
		fmt.Printf("%s %s -> %s (%s)\n", stamp(), data.From, data.To, data.Description)
	})
	d.SubscribeFunc(event.WaveChanged, func(e event.Event) {
		data := e.Data.(event.WaveChangedData)
		fmt.Printf("%s wave %d/%d (absolute %d)\n", stamp(), data.Wave, data.TotalWaves, data.AbsoluteIndex)
	})
	d.SubscribeFunc(event.Message, func(e event.Event) {
		fmt.Printf("%s message: %v\n", stamp(), e.Data)
	})
	d.SubscribeFunc(event.Victory, func(e event.Event) {
		fmt.Printf("%s VICTORY via %v\n", stamp(), e.Data)
	})
	d.SubscribeFunc(event.GameOver, func(e event.Event) {
		fmt.Printf("%s GAME OVER: %v\n", stamp(), e.Data)
	})
	spawned, killed := 0, 0
	d.SubscribeFunc(event.EnemySpawned, func(event.Event) { spawned++ })
	d.SubscribeFunc(event.EnemyKilled, func(event.Event) { killed++ })

	pilot := run.NewAutopilot(game)
	game.Start()
	for elapsed < *maxSeconds && !game.Finished() {
		if !*idle {
			pilot.Steer()
		}
		game.Update(frame)
		elapsed += frame
	}

	st := game.Status()
	fmt.Printf("\nfinal state: %s after %.1fs\n", st.State, elapsed)
	fmt.Printf("spawned %d, killed %d, alive %d\n", spawned, killed, st.Alive)
	fmt.Printf("level %d, coins %d/%d, score %d, hp %.0f/%.0f\n",
		st.Level, st.Coins, st.CoinsRequired, st.Score, st.Health, st.MaxHealth)

	if !game.Finished() {
		fmt.Println("run did not finish within --max-seconds")
		os.Exit(1)
	}
}
