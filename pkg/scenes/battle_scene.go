package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/decker502/wavewizard/pkg/audio"
	"github.com/decker502/wavewizard/pkg/components"
	"github.com/decker502/wavewizard/pkg/config"
	"github.com/decker502/wavewizard/pkg/game"
	"github.com/decker502/wavewizard/pkg/run"
	"github.com/decker502/wavewizard/pkg/world"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// hudHeight 顶部状态栏高度（像素）
const hudHeight = 72

var (
	colorBackground = color.RGBA{R: 12, G: 10, B: 20, A: 255}
	colorGround     = color.RGBA{R: 44, G: 52, B: 40, A: 255}
	colorPit        = color.RGBA{R: 4, G: 4, B: 6, A: 255}
	colorSolid      = color.RGBA{R: 96, G: 92, B: 88, A: 255}
	colorHazard     = color.RGBA{R: 110, G: 30, B: 24, A: 255}
	colorPlayer     = color.RGBA{R: 90, G: 140, B: 255, A: 255}
	colorCoin       = color.RGBA{R: 250, G: 210, B: 60, A: 255}
	colorCorpse     = color.RGBA{R: 70, G: 66, B: 66, A: 255}
	colorHealthBar  = color.RGBA{R: 200, G: 40, B: 40, A: 255}
	colorOverlay    = color.RGBA{A: 160}
)

// tierColors 敌人强度阶对应的颜色
var tierColors = map[config.HostileTier]color.RGBA{
	config.HostileWeak:   {R: 150, G: 200, B: 120, A: 255},
	config.HostileMedium: {R: 220, G: 160, B: 60, A: 255},
	config.HostileStrong: {R: 230, G: 80, B: 60, A: 255},
	config.HostileBoss:   {R: 190, G: 70, B: 220, A: 255},
}

// BattleScene 战斗场景
//
// 职责：
//   - 把键盘方向写入玩家输入，每帧推进 run.Run
//   - 渲染竞技场、实体、状态栏与消息
//   - 终局演出结束后写入一次战绩
//
// 操作：WASD/方向键移动，P 暂停，Tab 自动驾驶，R 重开，Esc 返回菜单
type BattleScene struct {
	sceneManager *game.SceneManager
	run          *run.Run
	messages     *run.MessageLog
	autopilot    *run.Autopilot
	cues         *audio.CuePlayer
	records      *game.RecordManager
	view         viewport

	paused   bool
	demo     bool
	recorded bool
	improved bool
}

// NewBattleScene 创建并开始一局
//
// 参数：
//   - cues: 可为 nil（无音效）
//   - records: 可为 nil（不记录战绩）
func NewBattleScene(sm *game.SceneManager, cfg run.Config, opts run.Options,
	cues *audio.CuePlayer, records *game.RecordManager) *BattleScene {
	r := run.NewWithConfig(cfg, opts)
	s := &BattleScene{
		sceneManager: sm,
		run:          r,
		messages:     run.NewMessageLog(r.Dispatcher()),
		autopilot:    run.NewAutopilot(r),
		cues:         cues,
		records:      records,
	}
	arena := r.Arena()
	s.view = fitViewport(arena.Width, arena.Height, 8, hudHeight+8, ScreenWidth-16, ScreenHeight-hudHeight-16)

	if cues != nil {
		cues.Attach(r.Dispatcher())
	}
	r.Start()
	return s
}

// Update 处理输入并推进一帧
func (s *BattleScene) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.sceneManager.ShowMenu()
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.restart()
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		s.paused = !s.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		s.demo = !s.demo
		log.Printf("[BattleScene] Autopilot: %v", s.demo)
	}
	if s.paused {
		return
	}

	if s.demo {
		s.autopilot.Steer()
	} else {
		s.run.SetPlayerInput(readDirection())
	}
	s.step(deltaTime)
}

// step 推进游戏并在结束时记录战绩
func (s *BattleScene) step(deltaTime float64) {
	s.run.Update(deltaTime)
	s.messages.Update(deltaTime)

	if s.run.Finished() && !s.recorded {
		s.recorded = true
		if s.records == nil {
			return
		}
		improved, err := s.records.Record(s.run.Result())
		if err != nil {
			log.Printf("[BattleScene] Warning: failed to save record: %v", err)
		}
		s.improved = improved
	}
}

func (s *BattleScene) restart() {
	s.run.Restart()
	s.messages.Clear()
	s.recorded = false
	s.improved = false
	s.paused = false
}

// readDirection 读取移动方向（未归一化，由移动系统处理）
func readDirection() (float64, float64) {
	var x, y float64
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		x--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		x++
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		y--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		y++
	}
	return x, y
}

// Close 取消订阅
func (s *BattleScene) Close() {
	s.messages.Close()
	if s.cues != nil {
		s.cues.Detach()
	}
}

// Draw 绘制竞技场与状态栏
func (s *BattleScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	s.drawArena(screen)
	s.drawSprites(screen)
	s.drawHUD(screen)
	s.drawMessages(screen)
	if s.run.Status().State.IsTerminal() || s.paused {
		s.drawOverlay(screen)
	}
}

func (s *BattleScene) drawArena(screen *ebiten.Image) {
	arena := s.run.Arena()
	x, y := s.view.toScreen(0, 0)
	vector.DrawFilledRect(screen, x, y, s.view.length(arena.Width), s.view.length(arena.Height), colorGround, false)

	for _, p := range arena.Pits() {
		px, py := s.view.toScreen(p.X, p.Y)
		vector.DrawFilledRect(screen, px, py, s.view.length(p.W), s.view.length(p.H), colorPit, false)
	}
	for _, o := range arena.Obstacles() {
		clr := colorSolid
		if o.Category == world.CategoryHazard {
			clr = colorHazard
		}
		ox, oy := s.view.toScreen(o.X, o.Y)
		vector.DrawFilledRect(screen, ox, oy, s.view.length(o.W), s.view.length(o.H), clr, false)
	}
}

func (s *BattleScene) drawSprites(screen *ebiten.Image) {
	for _, sp := range s.run.Sprites() {
		cx, cy := s.view.toScreen(sp.X, sp.Y)
		r := s.view.length(sp.Radius)
		switch sp.Kind {
		case run.SpriteCoin:
			vector.DrawFilledCircle(screen, cx, cy, r, colorCoin, true)
		case run.SpriteCorpse:
			vector.DrawFilledCircle(screen, cx, cy, r, colorCorpse, true)
		case run.SpriteHostile:
			vector.DrawFilledCircle(screen, cx, cy, r, tierColors[sp.Tier], true)
			if sp.HealthRatio < 1 {
				w := r * 2
				vector.DrawFilledRect(screen, cx-r, cy-r-5, w*float32(sp.HealthRatio), 3, colorHealthBar, false)
			}
		case run.SpritePlayer:
			vector.DrawFilledCircle(screen, cx, cy, r, colorPlayer, true)
			vector.StrokeCircle(screen, cx, cy, r+3, 1, color.White, true)
		}
	}
}

func (s *BattleScene) drawHUD(screen *ebiten.Image) {
	for i, line := range hudLines(s.run.Status()) {
		ebitenutil.DebugPrintAt(screen, line, 10, 6+i*16)
	}
	if s.demo {
		ebitenutil.DebugPrintAt(screen, "[AUTOPILOT]", ScreenWidth-100, 6)
	}
}

func (s *BattleScene) drawMessages(screen *ebiten.Image) {
	lines := s.messages.Lines()
	for i, line := range lines {
		x := ScreenWidth/2 - len(line.Text)*3
		y := ScreenHeight - 24 - (len(lines)-1-i)*16
		backdrop := color.RGBA{A: uint8(180 * line.Alpha())}
		vector.DrawFilledRect(screen, float32(x-4), float32(y), float32(len(line.Text)*6+8), 16, backdrop, false)
		ebitenutil.DebugPrintAt(screen, line.Text, x, y)
	}
}

func (s *BattleScene) drawOverlay(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, ScreenWidth, ScreenHeight, colorOverlay, false)
	for i, line := range overlayLines(s.run.Status(), s.run.Outcome(), s.paused, s.improved) {
		ebitenutil.DebugPrintAt(screen, line, ScreenWidth/2-len(line)*3, ScreenHeight/2-30+i*18)
	}
}

// hudLines 状态栏文本
func hudLines(st run.Status) []string {
	wave := fmt.Sprintf("Wave %d/%d (#%d)", st.Wave, st.TotalWaves, st.AbsoluteWave)
	timer := ""
	if st.StateTimer > 0 {
		timer = fmt.Sprintf("  %.0fs", st.StateTimer)
	}
	clock := ""
	if st.GlobalTimer > 0 {
		label := "Time"
		if st.Overtime {
			label = "Overtime"
		}
		clock = fmt.Sprintf("  %s %.0fs", label, st.GlobalTimer)
	}
	coins := fmt.Sprintf("Coins %d", st.Coins)
	if st.CoinsRequired > 0 {
		coins = fmt.Sprintf("Coins %d/%d", st.Coins, st.CoinsRequired)
	}
	return []string{
		fmt.Sprintf("%s  %s%s%s  Alive %d", st.Description, wave, timer, clock, st.Alive),
		fmt.Sprintf("HP %.0f/%.0f  Lv %d (%d/%d xp)", st.Health, st.MaxHealth, st.Level, st.Experience, st.NextLevel),
		fmt.Sprintf("%s  Score %d  Kills %d", coins, st.Score, st.Kills),
	}
}

// overlayLines 暂停或终局时的覆盖文本
func overlayLines(st run.Status, outcome string, paused, improved bool) []string {
	switch {
	case st.State == components.WaveStateVictory:
		lines := []string{"VICTORY", fmt.Sprintf("Score %d  Kills %d  %.0fs", st.Score, st.Kills, st.Elapsed)}
		if improved {
			lines = append(lines, "New record!")
		}
		return append(lines, "R: play again   Esc: menu")
	case st.State == components.WaveStateGameOver:
		return []string{"GAME OVER", outcome, "R: try again   Esc: menu"}
	case paused:
		return []string{"PAUSED", "P: resume"}
	}
	return nil
}
