// Package background paints the procedural sprites for the roadside: a
// grass texture for the verges and one image per tree and bush variant.
package background

import (
	"image/color"
	"math"

	"github.com/golangdaddy/taxidash/pkg/mathutil"
	"github.com/golangdaddy/taxidash/pkg/scenery"
	"github.com/hajimehoshi/ebiten/v2"
)

// Sprites holds every generated roadside image, indexed by variant
type Sprites struct {
	Grass  *ebiten.Image
	Trees  []*ebiten.Image
	Bushes []*ebiten.Image
}

// Generator creates roadside textures
type Generator struct {
	Width  int
	Height int
	rng    *mathutil.Rand
}

// NewGenerator creates a generator for a screen of the given size
func NewGenerator(width, height int, seed int64) *Generator {
	return &Generator{
		Width:  width,
		Height: height,
		rng:    mathutil.NewRand(seed),
	}
}

// Generate paints the grass and one sprite per variant size
func (g *Generator) Generate() *Sprites {
	s := &Sprites{Grass: g.grass()}
	for _, size := range scenery.TreeSizes {
		s.Trees = append(s.Trees, g.tree(int(size.W), int(size.H)))
	}
	for _, size := range scenery.BushSizes {
		s.Bushes = append(s.Bushes, g.bush(int(size.W), int(size.H)))
	}
	return s
}

// grass creates a noisy green tile covering the screen
func (g *Generator) grass() *ebiten.Image {
	img := ebiten.NewImage(g.Width, g.Height)
	img.Fill(color.RGBA{30, 100, 30, 255})

	for i := 0; i < g.Width*g.Height/10; i++ {
		x := g.rng.IntBetween(0, g.Width-1)
		y := g.rng.IntBetween(0, g.Height-1)
		shade := uint8(g.rng.IntBetween(80, 139))
		img.Set(x, y, color.RGBA{30, shade, 30, 255})
	}
	return img
}

// tree draws a pine seen from slightly above: a trunk at the bottom centre
// under three stacked canopy layers. The trunk base is the sprite's root.
func (g *Generator) tree(w, h int) *ebiten.Image {
	img := ebiten.NewImage(w, h)
	cx := w / 2

	trunk := color.RGBA{60, 40, 20, 255}
	trunkW := max(w/12, 4)
	trunkH := h / 5
	for ty := 0; ty < trunkH; ty++ {
		for tx := -trunkW / 2; tx < trunkW/2; tx++ {
			setClipped(img, cx+tx, h-1-ty, trunk)
		}
	}

	leaves := color.RGBA{
		uint8(g.rng.IntBetween(20, 49)),
		uint8(g.rng.IntBetween(80, 139)),
		uint8(g.rng.IntBetween(20, 49)),
		255,
	}
	shadow := color.RGBA{leaves.R / 2, leaves.G * 3 / 4, leaves.B / 2, 255}

	const layers = 3
	canopy := h - trunkH
	layerH := canopy * 2 / (layers + 1)
	for l := 0; l < layers; l++ {
		base := h - trunkH - l*canopy/(layers+1)
		layerW := w - l*w/(layers+2)
		for ly := 0; ly < layerH; ly++ {
			rowW := layerW * (layerH - ly) / layerH
			for lx := -rowW / 2; lx < rowW/2; lx++ {
				c := leaves
				if lx < -rowW/4 {
					c = shadow
				}
				setClipped(img, cx+lx, base-ly, c)
			}
		}
	}
	return img
}

// bush draws a cluster of overlapping round clumps filling the sprite
func (g *Generator) bush(w, h int) *ebiten.Image {
	img := ebiten.NewImage(w, h)

	base := color.RGBA{
		uint8(g.rng.IntBetween(40, 79)),
		uint8(g.rng.IntBetween(100, 149)),
		uint8(g.rng.IntBetween(40, 79)),
		255,
	}

	clumps := 5 + g.rng.IntBetween(0, 3)
	for i := 0; i < clumps; i++ {
		rx := float64(w) / 4 * g.rng.FloatBetween(0.7, 1)
		ry := float64(h) / 3 * g.rng.FloatBetween(0.7, 1)
		ox := g.rng.FloatBetween(rx, float64(w)-rx)
		oy := g.rng.FloatBetween(ry, float64(h)-ry)
		shade := uint8(g.rng.IntBetween(0, 30))
		c := color.RGBA{base.R + shade/2, base.G + shade, base.B, 255}
		fillEllipse(img, ox, oy, rx, ry, c)
	}
	return img
}

func fillEllipse(img *ebiten.Image, ox, oy, rx, ry float64, c color.Color) {
	for y := int(math.Floor(oy - ry)); y <= int(math.Ceil(oy+ry)); y++ {
		for x := int(math.Floor(ox - rx)); x <= int(math.Ceil(ox+rx)); x++ {
			dx := (float64(x) - ox) / rx
			dy := (float64(y) - oy) / ry
			if dx*dx+dy*dy <= 1 {
				setClipped(img, x, y, c)
			}
		}
	}
}

func setClipped(img *ebiten.Image, x, y int, c color.Color) {
	b := img.Bounds()
	if x >= b.Min.X && x < b.Max.X && y >= b.Min.Y && y < b.Max.Y {
		img.Set(x, y, c)
	}
}
