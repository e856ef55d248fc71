// internal/ui/shapes.go
package ui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var whiteImage = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img
}()

// fillPolygon fills the closed polygon through pts with c.
func fillPolygon(screen *ebiten.Image, pts [][2]float32, c color.Color) {
	if len(pts) < 3 {
		return
	}
	path := vector.Path{}
	path.MoveTo(pts[0][0], pts[0][1])
	for _, p := range pts[1:] {
		path.LineTo(p[0], p[1])
	}
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	r, g, b, a := c.RGBA()
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(r) / 0xffff
		vs[i].ColorG = float32(g) / 0xffff
		vs[i].ColorB = float32(b) / 0xffff
		vs[i].ColorA = float32(a) / 0xffff
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	screen.DrawTriangles(vs, is, whiteImage, op)
}

// clickPulse is the brief grow effect after a click.
func clickPulse(elapsedSeconds float64) float32 {
	return float32(1.0 + 0.3*expDecay(elapsedSeconds*8))
}

func expDecay(x float64) float64 {
	return math.Exp(-x)
}
