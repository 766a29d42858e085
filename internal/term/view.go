package term

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/skullrun/game/internal/anim"
)

// Glyph is how one animation frame looks in a terminal cell.
type Glyph struct {
	Rune  rune
	Style tcell.Style
}

// Palette maps a sheet name to glyphs indexed by frame index, wrapping
// around when a sheet has more frames than glyphs.
type Palette map[string][]Glyph

func (p Palette) lookup(f anim.Frame) (Glyph, bool) {
	gs := p[f.Sheet]
	if len(gs) == 0 {
		return Glyph{}, false
	}
	i := f.Index % len(gs)
	if i < 0 {
		i += len(gs)
	}
	return gs[i], true
}

func fg(c tcell.Color) tcell.Style { return tcell.StyleDefault.Foreground(c) }

// DefaultPalette covers every sheet named in animations.yaml.
func DefaultPalette() Palette {
	return Palette{
		"black_block": {{'█', fg(tcell.ColorWhite)}},
		"red_block":   {{'█', fg(tcell.ColorRed)}, {'░', fg(tcell.ColorMaroon)}},
		"green_block": {{'█', fg(tcell.ColorGreen)}, {'░', fg(tcell.ColorDarkGreen)}},
		"spike":       {{'^', fg(tcell.ColorSilver)}},
		"bullet":      {{'•', fg(tcell.ColorYellow)}},
		"saw":         {{'✱', fg(tcell.ColorOrange)}, {'✳', fg(tcell.ColorOrange)}},
		"turret": {
			{'▲', fg(tcell.ColorSilver)},
			{'▶', fg(tcell.ColorSilver)},
			{'▼', fg(tcell.ColorSilver)},
			{'◀', fg(tcell.ColorSilver)},
		},
		"door":         {{'#', fg(tcell.ColorTeal)}, {' ', tcell.StyleDefault}},
		"lock":         digits(fg(tcell.ColorAqua)),
		"buttons":      {{'_', fg(tcell.ColorYellow)}, {'.', fg(tcell.ColorOlive)}},
		"checkpoint":   {{'P', fg(tcell.ColorAqua)}},
		"finishline":   {{'F', fg(tcell.ColorLime)}},
		"player":       {{'@', fg(tcell.ColorWhite).Bold(true)}},
		"player_skull": {{'☠', fg(tcell.ColorGray)}},
		"background":   {{'·', fg(tcell.ColorDimGray)}, {' ', tcell.StyleDefault}, {'˙', fg(tcell.ColorDimGray)}, {' ', tcell.StyleDefault}},
	}
}

func digits(st tcell.Style) []Glyph {
	gs := make([]Glyph, 10)
	for i := range gs {
		gs[i] = Glyph{Rune: rune('0' + i), Style: st}
	}
	return gs
}

// View draws frames onto a tcell screen. One cell covers CellW × CellH
// world units; the camera is the world position of the top-left cell.
type View struct {
	screen  tcell.Screen
	palette Palette
	cellW   float64
	cellH   float64
	camX    float64
	camY    float64
}

func NewView(s tcell.Screen, cellW, cellH float64, p Palette) *View {
	if p == nil {
		p = DefaultPalette()
	}
	return &View{screen: s, palette: p, cellW: cellW, cellH: cellH}
}

// Begin clears the screen for a new frame.
func (v *View) Begin() { v.screen.Clear() }

// Blit draws the glyph of f at a world position. Frames on sheets without
// glyphs and positions off screen are dropped.
func (v *View) Blit(f anim.Frame, x, y float64) {
	g, ok := v.palette.lookup(f)
	if !ok {
		return
	}
	cx := int(math.Floor((x - v.camX) / v.cellW))
	cy := int(math.Floor((y - v.camY) / v.cellH))
	w, h := v.screen.Size()
	if cx < 0 || cy < 0 || cx >= w || cy >= h {
		return
	}
	v.screen.SetContent(cx, cy, g.Rune, nil, g.Style)
}

// Follow centres the camera on a world point, keeping it inside the map.
func (v *View) Follow(x, y, mapW, mapH float64) {
	cols, rows := v.screen.Size()
	viewW, viewH := float64(cols)*v.cellW, float64(rows)*v.cellH
	v.camX = max(0, min(mapW-viewW, x-viewW/2))
	v.camY = max(0, min(mapH-viewH, y-viewH/2))
}

func (v *View) Camera() (x, y float64) { return v.camX, v.camY }

// Status writes a line of text on the bottom row, over whatever is there.
func (v *View) Status(text string, st tcell.Style) {
	_, h := v.screen.Size()
	col := 0
	for _, r := range text {
		v.screen.SetContent(col, h-1, r, nil, st)
		col++
	}
}

func (v *View) Show() { v.screen.Show() }
