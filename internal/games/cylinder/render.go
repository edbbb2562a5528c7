package cylinder

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/vovakirdan/cylitris/internal/config"
	"github.com/vovakirdan/cylitris/internal/core"
)

// Visual characters for rendering
const (
	GuideChar  = '·'
	ShadowChar = '░'
	BlockChar  = '█'
	SeamChar   = '┆'
	EdgeChar   = '│'
	FloorChar  = '─'
)

const hudHeight = 2

// layer is a painter's-algorithm pass; later layers draw over earlier ones.
type layer int

const (
	layerGuide layer = iota
	layerShadow
	layerSettled
	layerPiece
)

type drawable struct {
	column float32
	row    float32
	color  core.RGBA
	layer  layer
	depth  float64
}

// layout holds the vertical placement of the board.
type layout struct {
	boardTop int // screen y of grid row 0
	floorY   int // screen y of the line under the grid
}

func (g *Game) layout() layout {
	sky := -g.engine.Settings().SpawnRow
	top := hudHeight + sky
	return layout{
		boardTop: top,
		floorY:   top + g.engine.Settings().Height,
	}
}

// MinSize returns the smallest screen the current view fits on.
func (g *Game) MinSize() (w, h int) {
	cfg := g.cfg
	h = hudHeight - cfg.Gameplay.SpawnRow + cfg.Grid.Height + 1
	if g.view == config.ViewUnrolled {
		w = cfg.Grid.Width*cfg.View.CellWidth + 4
	} else {
		w = newCylinderProjection(cfg.Grid.Width, cfg.View.CellWidth, 0).outerWidth() + 2
	}
	return w, h
}

// fits reports whether the current view fits on a w×h screen.
func (g *Game) fits(w, h int) bool {
	needW, needH := g.MinSize()
	return w >= needW && h >= needH
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.tooSmall = !g.fits(dst.Width(), dst.Height())

	g.renderHUD(dst)

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", "Resize to continue", core.ColorWarning)
		return
	}

	if g.view == config.ViewUnrolled {
		g.renderUnrolled(dst)
	} else {
		g.renderCylinder(dst)
	}

	switch {
	case g.engine.ToppedOut():
		g.renderOverlay(dst, "Topped out", "Press R to restart", core.ColorWarning)
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue", core.ColorAccent)
	}
}

// collect gathers the frame's drawables and tags each with its layer.
// The engine reports grid cells first, then the piece, then the shadow.
func (g *Game) collect() []drawable {
	s := g.engine.Settings()
	gridCells := s.Width * s.Height
	out := make([]drawable, 0, gridCells+8)

	i := 0
	g.engine.ForEachDrawable(func(column, row float32, color core.RGBA, filled bool) {
		l := layerSettled
		switch {
		case !filled:
			l = layerGuide
		case i >= gridCells+4:
			l = layerShadow
		case i >= gridCells:
			l = layerPiece
		}
		i++
		out = append(out, drawable{column: column, row: row, color: color, layer: l})
	})
	return out
}

func (g *Game) renderCylinder(dst *core.Screen) {
	s := g.engine.Settings()
	lay := g.layout()
	proj := newCylinderProjection(s.Width, g.cfg.View.CellWidth, float64(dst.Width())/2)

	items := g.collect()
	for i := range items {
		items[i].depth = math.Cos(2 * math.Pi * float64(items[i].column) / float64(s.Width))
	}
	// back to front within each layer
	slices.SortStableFunc(items, func(a, b drawable) int {
		if c := cmp.Compare(a.layer, b.layer); c != 0 {
			return c
		}
		return cmp.Compare(a.depth, b.depth)
	})

	for _, d := range items {
		y := lay.boardTop + screenRow(d.row)
		if y < hudHeight || y >= lay.floorY {
			continue
		}
		x0, x1, depth, ok := proj.span(d.column)
		if !ok {
			continue
		}
		shade := brightness(depth)

		switch d.layer {
		case layerGuide:
			dst.SetColored((x0+x1-1)/2, y, GuideChar, core.ColorDim.Scale(shade))
		case layerShadow:
			fill(dst, x0, x1, y, ShadowChar, d.color.Flatten().Scale(shade))
		default:
			fill(dst, x0, x1, y, BlockChar, d.color.Scale(shade))
		}
	}

	left := int(math.Round(proj.center-proj.radius)) - 1
	right := int(math.Round(proj.center+proj.radius)) + 1
	g.renderFrame(dst, lay, left, right, EdgeChar)
}

func (g *Game) renderUnrolled(dst *core.Screen) {
	s := g.engine.Settings()
	lay := g.layout()
	cw := g.cfg.View.CellWidth
	boardW := s.Width * cw
	left := (dst.Width() - boardW) / 2
	right := left + boardW
	mid := left + (s.Width/2)*cw

	items := g.collect()
	slices.SortStableFunc(items, func(a, b drawable) int {
		return cmp.Compare(a.layer, b.layer)
	})

	for _, d := range items {
		y := lay.boardTop + screenRow(d.row)
		if y < hudHeight || y >= lay.floorY {
			continue
		}
		u := unrolledColumn(d.column, s.Width)
		x0 := mid + int(math.Round(float64(u)*float64(cw)))
		x1 := x0 + cw
		x0, x1 = max(x0, left), min(x1, right)
		if x1 <= x0 {
			continue
		}

		switch d.layer {
		case layerGuide:
			dst.SetColored(x0+(x1-x0-1)/2, y, GuideChar, core.ColorDim)
		case layerShadow:
			fill(dst, x0, x1, y, ShadowChar, d.color.Flatten())
		default:
			fill(dst, x0, x1, y, BlockChar, d.color)
		}
	}

	g.renderFrame(dst, lay, left-1, right, SeamChar)
}

// renderFrame draws the side lines and the floor.
func (g *Game) renderFrame(dst *core.Screen, lay layout, left, right int, side rune) {
	for y := lay.boardTop; y < lay.floorY; y++ {
		dst.SetColored(left, y, side, core.ColorGray)
		dst.SetColored(right, y, side, core.ColorGray)
	}
	for x := left + 1; x < right; x++ {
		dst.SetColored(x, lay.floorY, FloorChar, core.ColorGray)
	}
	dst.SetColored(left, lay.floorY, '└', core.ColorGray)
	dst.SetColored(right, lay.floorY, '┘', core.ColorGray)
}

func fill(dst *core.Screen, x0, x1, y int, r rune, c core.RGBA) {
	for x := x0; x < x1; x++ {
		dst.SetColored(x, y, r, c)
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	stats := g.engine.Stats()
	gravity := "normal"
	if g.engine.SoftDrop() {
		gravity = "soft"
	}

	dst.DrawTextColored(1, 0, g.Title(), core.ColorAccent)
	hud := fmt.Sprintf("  Pieces: %d  Rows: %d  Gravity: %s  View: %s",
		stats.Pieces, stats.Rows, gravity, g.view)
	dst.DrawText(1+len([]rune(g.Title())), 0, hud)

	dst.DrawHLine(0, 1, dst.Width(), FloorChar)
}

// renderOverlay draws a centered two-line message box with a colored title.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string, title core.RGBA) {
	boxW := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := core.CenteredRect(dst.Width(), dst.Height(), boxW, 5)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextColored((dst.Width()-len([]rune(line1)))/2, box.Y+1, line1, title)
	dst.DrawTextCentered(box.Y+3, line2)
}
