// Package tui 在终端中渲染一局游戏（tcell）
//
// 竞技场按终端尺寸缩放到字符格；状态栏占顶部两行，消息占底部。
package tui

import (
	"fmt"

	"github.com/decker502/wavewizard/pkg/components"
	"github.com/decker502/wavewizard/pkg/config"
	"github.com/decker502/wavewizard/pkg/run"
	"github.com/decker502/wavewizard/pkg/world"
	"github.com/gdamore/tcell/v2"
)

// 版面行数
const (
	hudRows     = 2
	messageRows = 3
)

var (
	styleHUD     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleGround  = tcell.StyleDefault.Foreground(tcell.ColorDarkOliveGreen)
	stylePit     = tcell.StyleDefault.Foreground(tcell.ColorBlack)
	styleSolid   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleHazard  = tcell.StyleDefault.Foreground(tcell.ColorMaroon)
	stylePlayer  = tcell.StyleDefault.Foreground(tcell.ColorDodgerBlue).Bold(true)
	styleCoin    = tcell.StyleDefault.Foreground(tcell.ColorGold)
	styleCorpse  = tcell.StyleDefault.Foreground(tcell.ColorDimGray)
	styleMessage = tcell.StyleDefault.Foreground(tcell.ColorLightCyan)
	styleBanner  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true).Reverse(true)
)

// tierGlyphs 敌人强度阶对应的字符与颜色
var tierGlyphs = map[config.HostileTier]struct {
	r     rune
	style tcell.Style
}{
	config.HostileWeak:   {'s', tcell.StyleDefault.Foreground(tcell.ColorLightGreen)},
	config.HostileMedium: {'m', tcell.StyleDefault.Foreground(tcell.ColorOrange)},
	config.HostileStrong: {'S', tcell.StyleDefault.Foreground(tcell.ColorRed)},
	config.HostileBoss:   {'B', tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true)},
}

// Renderer 终端渲染器
type Renderer struct {
	screen tcell.Screen
}

// NewRenderer 创建渲染器（screen 需已 Init）
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// grid 世界坐标到字符格的映射
type grid struct {
	cols, rows int
	sx, sy     float64
}

func newGrid(arena *world.Arena, width, height int) grid {
	rows := height - hudRows - messageRows
	if rows < 1 {
		rows = 1
	}
	if width < 1 {
		width = 1
	}
	return grid{
		cols: width,
		rows: rows,
		sx:   float64(width) / arena.Width,
		sy:   float64(rows) / arena.Height,
	}
}

// cell 世界坐标所在的字符格，越界时 ok 为 false
func (g grid) cell(x, y float64) (col, row int, ok bool) {
	col, row = int(x*g.sx), int(y*g.sy)
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return 0, 0, false
	}
	return col, row + hudRows, true
}

// Draw 绘制一帧
func (r *Renderer) Draw(game *run.Run, messages *run.MessageLog, demo bool) {
	r.screen.Clear()
	width, height := r.screen.Size()
	arena := game.Arena()
	g := newGrid(arena, width, height)

	r.drawTerrain(arena, g)
	for _, sp := range game.Sprites() {
		col, row, ok := g.cell(sp.X, sp.Y)
		if !ok {
			continue
		}
		ch, style := spriteGlyph(sp)
		r.screen.SetContent(col, row, ch, nil, style)
	}

	st := game.Status()
	for i, line := range HUDLines(st, demo) {
		r.drawText(0, i, line, styleHUD)
	}
	lines := messages.Lines()
	for i, line := range lines {
		style := styleMessage
		if line.Alpha() < 0.4 {
			style = style.Dim(true)
		}
		r.drawText(1, height-len(lines)+i, line.Text, style)
	}
	if banner := Banner(st, game.Outcome()); banner != "" {
		r.drawText((width-len(banner))/2, hudRows+g.rows/2, banner, styleBanner)
	}
	r.screen.Show()
}

// drawTerrain 逐格采样地面、坑洞和障碍物
func (r *Renderer) drawTerrain(arena *world.Arena, g grid) {
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			x := (float64(col) + 0.5) / g.sx
			y := (float64(row) + 0.5) / g.sy
			ch, style := '.', styleGround
			if !arena.HasGround(x, y) {
				ch, style = ' ', stylePit
			}
			for _, o := range arena.Obstacles() {
				if o.Contains(x, y) {
					if o.Category == world.CategoryHazard {
						ch, style = '~', styleHazard
					} else {
						ch, style = '#', styleSolid
					}
					break
				}
			}
			r.screen.SetContent(col, row+hudRows, ch, nil, style)
		}
	}
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	for i, ch := range text {
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}

// spriteGlyph 实体对应的字符
func spriteGlyph(sp run.Sprite) (rune, tcell.Style) {
	switch sp.Kind {
	case run.SpritePlayer:
		return '@', stylePlayer
	case run.SpriteCoin:
		return '$', styleCoin
	case run.SpriteCorpse:
		return 'x', styleCorpse
	}
	if g, ok := tierGlyphs[sp.Tier]; ok {
		return g.r, g.style
	}
	return '?', tcell.StyleDefault
}

// HUDLines 状态栏文本（两行）
func HUDLines(st run.Status, demo bool) []string {
	first := fmt.Sprintf("%s | wave %d/%d | alive %d", st.Description, st.Wave, st.TotalWaves, st.Alive)
	if st.StateTimer > 0 {
		first += fmt.Sprintf(" | %.0fs", st.StateTimer)
	}
	if st.GlobalTimer > 0 {
		if st.Overtime {
			first += fmt.Sprintf(" | overtime %.0fs", st.GlobalTimer)
		} else {
			first += fmt.Sprintf(" | time %.0fs", st.GlobalTimer)
		}
	}
	if demo {
		first += " | autopilot"
	}
	coins := fmt.Sprintf("%d", st.Coins)
	if st.CoinsRequired > 0 {
		coins = fmt.Sprintf("%d/%d", st.Coins, st.CoinsRequired)
	}
	second := fmt.Sprintf("HP %.0f/%.0f | Lv %d %d/%dxp | coins %s | score %d | kills %d",
		st.Health, st.MaxHealth, st.Level, st.Experience, st.NextLevel, coins, st.Score, st.Kills)
	return []string{first, second}
}

// Banner 终局提示，游戏进行中返回空串
func Banner(st run.Status, outcome string) string {
	switch st.State {
	case components.WaveStateVictory:
		return fmt.Sprintf(" VICTORY  score %d  (r: restart, q: quit) ", st.Score)
	case components.WaveStateGameOver:
		return fmt.Sprintf(" GAME OVER: %s  (r: restart, q: quit) ", outcome)
	}
	return ""
}
