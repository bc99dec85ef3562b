package term

import (
	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/yuletide"
)

const upperHalf = '▀'

// Present paints c onto screen, two pixel rows per cell row, over an opaque
// background color. It does not call Show.
func Present(screen tcell.Screen, c *Canvas, background yuletide.Color) {
	cols, rows := screen.Size()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := flatten(c, x, 2*y, background)
			bottom := flatten(c, x, 2*y+1, background)
			st := tcell.StyleDefault.Foreground(top).Background(bottom)
			screen.SetContent(x, y, upperHalf, nil, st)
		}
	}
}

// flatten composites pixel (x, y) over an opaque background.
func flatten(c *Canvas, x, y int, bg yuletide.Color) tcell.Color {
	p := px{}
	if x >= 0 && y >= 0 && x < c.w && y < c.h {
		p = c.pix[y*c.w+x]
	}
	k := 1 - p.a
	r := float64(p.r) + bg.R*float64(k)
	g := float64(p.g) + bg.G*float64(k)
	b := float64(p.b) + bg.B*float64(k)
	return tcell.NewRGBColor(channel(r), channel(g), channel(b))
}

func channel(v float64) int32 {
	return int32(clamp01(v)*255 + 0.5)
}
