package game

import (
	"image/color"

	"github.com/golangdaddy/taxidash/pkg/scroll"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// playerOffset is how far above the bottom edge the taxi sits
const playerOffset = 100

var (
	roadColor   = color.RGBA{70, 70, 75, 255}
	edgeColor   = color.RGBA{235, 235, 235, 255}
	markerColor = color.RGBA{255, 255, 255, 255}
)

// drawWorld paints back to front: grass, road, markers, bushes, traffic,
// the taxi and finally the trees, which overhang everything on the road
func (g *Game) drawWorld(screen *ebiten.Image) {
	screen.DrawImage(g.sprites.Grass, nil)
	g.drawRoad(screen)

	for _, m := range g.frame.Markers {
		w := float32(g.cfg.Scenery.MarkerWidth)
		rect(screen, float32(m.X)-w/2, float32(m.Y-m.Height/2), w, float32(m.Height), markerColor)
	}

	g.drawPlants(screen, g.frame.Bushes, g.sprites.Bushes)
	g.drawTraffic(screen)
	g.drawTaxi(screen)
	g.drawPlants(screen, g.frame.Trees, g.sprites.Trees)
}

func (g *Game) drawRoad(screen *ebiten.Image) {
	road := g.cfg.Road
	h := float32(g.cfg.ScreenHeight)
	left, right := float32(road.Left()), float32(road.Right())

	vector.DrawFilledRect(screen, left, 0, right-left, h, roadColor, false)
	vector.StrokeLine(screen, left+3, 0, left+3, h, 4, edgeColor, false)
	vector.StrokeLine(screen, right-3, 0, right-3, h, 4, edgeColor, false)
}

// drawPlants draws elements in slice order, centred on their position
func (g *Game) drawPlants(screen *ebiten.Image, elements []scroll.Element, sprites []*ebiten.Image) {
	for _, e := range elements {
		if e.Variant < 0 || e.Variant >= len(sprites) {
			continue
		}
		img := sprites[e.Variant]
		b := img.Bounds()

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
		op.GeoM.Scale(e.Scale, e.Scale)
		op.GeoM.Translate(e.X, e.Y)
		screen.DrawImage(img, op)
	}
}

func (g *Game) drawTraffic(screen *ebiten.Image) {
	scale := g.cfg.Vehicle.BaseScale
	for _, a := range g.frame.Agents {
		img := g.traffic[a.Variant%len(g.traffic)]

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-carWidth/2, -carHeight/2)
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(a.X, a.Position)
		screen.DrawImage(img, op)
	}
}

func (g *Game) drawTaxi(screen *ebiten.Image) {
	pose := g.frame.Pose

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-carWidth/2, -carHeight/2)
	op.GeoM.Scale(pose.ScaleX, pose.ScaleY)
	op.GeoM.Rotate(pose.Rotation)
	op.GeoM.Translate(pose.X, g.cfg.ScreenHeight-playerOffset)
	screen.DrawImage(g.taxi, op)
}
