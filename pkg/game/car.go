package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Unscaled car sprite size. At the default 0.7 scale the body is about as
// wide as road.Geometry.CarWidth.
const (
	carWidth  = 56
	carHeight = 90
)

// carPaint is the colour scheme of one car body
type carPaint struct {
	body, roof, highlight color.RGBA
	sign                  bool // Roof light
}

var (
	taxiPaint = carPaint{
		body:      color.RGBA{240, 190, 20, 255},
		roof:      color.RGBA{210, 160, 10, 255},
		highlight: color.RGBA{255, 230, 120, 255},
		sign:      true,
	}
	trafficPaints = []carPaint{
		{body: color.RGBA{220, 20, 20, 255}, roof: color.RGBA{180, 15, 15, 255}, highlight: color.RGBA{255, 100, 100, 255}},
		{body: color.RGBA{30, 80, 200, 255}, roof: color.RGBA{20, 60, 160, 255}, highlight: color.RGBA{110, 150, 255, 255}},
		{body: color.RGBA{230, 230, 235, 255}, roof: color.RGBA{190, 190, 200, 255}, highlight: color.RGBA{255, 255, 255, 255}},
		{body: color.RGBA{30, 150, 70, 255}, roof: color.RGBA{20, 120, 50, 255}, highlight: color.RGBA{110, 210, 140, 255}},
	}
)

// paintCar draws a top-down car facing up the screen
func paintCar(p carPaint) *ebiten.Image {
	img := ebiten.NewImage(carWidth, carHeight)
	w, h := float32(carWidth), float32(carHeight)

	wheel := color.RGBA{40, 40, 40, 255}
	for _, y := range []float32{h * 0.15, h * 0.7} {
		rect(img, 0, y, w*0.15, h*0.15, wheel)
		rect(img, w*0.85, y, w*0.15, h*0.15, wheel)
	}

	// Body with a black outline
	rect(img, w*0.1, h*0.08, w*0.8, h*0.86, color.RGBA{0, 0, 0, 255})
	rect(img, w*0.12, h*0.09, w*0.76, h*0.84, p.body)
	rect(img, w*0.18, h*0.11, w*0.64, h*0.03, p.highlight)

	rect(img, w*0.2, h*0.3, w*0.6, h*0.36, p.roof)
	rect(img, w*0.24, h*0.3, w*0.52, h*0.12, color.RGBA{100, 180, 220, 255})
	rect(img, w*0.26, h*0.6, w*0.48, h*0.06, color.RGBA{70, 130, 170, 255})
	if p.sign {
		rect(img, w*0.38, h*0.46, w*0.24, h*0.07, color.RGBA{255, 250, 210, 255})
	}

	lamp := color.RGBA{255, 255, 100, 255}
	tail := color.RGBA{255, 0, 0, 255}
	rect(img, w*0.2, h*0.05, w*0.14, h*0.04, lamp)
	rect(img, w*0.66, h*0.05, w*0.14, h*0.04, lamp)
	rect(img, w*0.2, h*0.92, w*0.14, h*0.04, tail)
	rect(img, w*0.66, h*0.92, w*0.14, h*0.04, tail)

	return img
}

func rect(dst *ebiten.Image, x, y, w, h float32, c color.Color) {
	vector.DrawFilledRect(dst, x, y, w, h, c, false)
}
