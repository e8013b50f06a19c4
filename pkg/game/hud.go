package game

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/golangdaddy/taxidash/pkg/mathutil"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/hako/durafmt"
)

// MPHPerPixelPerTick is the conversion factor from pixels per tick to MPH.
// 8 pixels per tick at 60 ticks per second reads as 100 MPH.
const MPHPerPixelPerTick = 12.5

const metresPerSecondPerMPH = 0.44704

var shortUnits, _ = durafmt.DefaultUnitsCoder.Decode("y:yrs,wk:wks,d:d,h:h,m:m,s:s,ms:ms,us:us")

// MPH converts a speed in pixels per tick to a speedometer reading
func MPH(speed float64) float64 {
	return math.Abs(speed) * MPHPerPixelPerTick
}

// Metres converts scrolled pixels to distance travelled
func Metres(pixels float64, ticksPerSecond int) float64 {
	if ticksPerSecond <= 0 {
		return 0
	}
	return pixels * MPHPerPixelPerTick * metresPerSecondPerMPH / float64(ticksPerSecond)
}

// FormatDistance renders metres for the odometer, switching to SI prefixes
// from one kilometre
func FormatDistance(m float64) string {
	sign := ""
	if m < 0 {
		sign = "-"
		m = -m
	}
	if m < 1000 {
		return fmt.Sprintf("%s%.0f m", sign, m)
	}
	return sign + humanize.SIWithDigits(m, 2, "m")
}

// FormatClock renders a session duration with its two largest units
func FormatClock(d time.Duration) string {
	if d < time.Second {
		return "0 s"
	}
	return durafmt.Parse(d.Truncate(time.Second)).LimitFirstN(2).Format(shortUnits)
}

// FormatCount renders a counter with thousands separators
func FormatCount(n uint64) string {
	return humanize.Comma(int64(n))
}

// SpeedColor blends from green at standstill to red at top speed
func SpeedColor(fraction float64) color.RGBA {
	f := mathutil.Clamp(fraction, 0, 1)
	return color.RGBA{
		R: uint8(math.Round(255 * f)),
		G: uint8(math.Round(255 * (1 - f))),
		A: 255,
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	g.drawSpeedometer(screen)
	g.drawSpeedBar(screen)
	g.drawSteeringWheel(screen)

	if g.paused {
		w, h := int(g.cfg.Road.ScreenWidth), int(g.cfg.ScreenHeight)
		vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), color.RGBA{0, 0, 0, 120}, false)
		ebitenutil.DebugPrintAt(screen, "PAUSED  P resume  R restart  Esc quit", w/2-110, h/2)
	}
	if g.overlay {
		g.drawOverlay(screen)
	}
}

// drawSpeedometer draws the MPH readout and odometer in the top-left corner
func (g *Game) drawSpeedometer(screen *ebiten.Image) {
	x, y := 20.0, 20.0
	width, height := 180.0, 110.0

	vector.DrawFilledRect(screen, float32(x), float32(y), float32(width), float32(height), color.RGBA{20, 20, 30, 200}, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(width), float32(height), 2, color.RGBA{100, 100, 120, 255}, false)

	speedText := fmt.Sprintf("%.0f", MPH(g.frame.Speed))
	g.drawText(screen, speedText, x+width/2, y+45, 3, SpeedColor(g.frame.SpeedFraction))

	label := "MPH"
	if g.frame.Speed < 0 {
		label = "MPH R"
	}
	g.drawText(screen, label, x+width/2, y+72, 1.5, color.RGBA{200, 200, 200, 255})

	odo := FormatDistance(Metres(g.frame.Distance, g.cfg.TicksPerSecond))
	g.drawText(screen, odo, x+width/2, y+95, 1, color.RGBA{200, 200, 200, 255})
}

// drawText draws s horizontally centred on cx with its top at y
func (g *Game) drawText(screen *ebiten.Image, s string, cx, y, scale float64, c color.Color) {
	w := text.Advance(s, g.face) * scale

	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(cx-w/2, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, g.face, op)
}

// drawSpeedBar draws a vertical bar on the right edge that fills and reddens
// with speed
func (g *Game) drawSpeedBar(screen *ebiten.Image) {
	const barW, barH = 20, 200
	x := float32(g.cfg.Road.ScreenWidth) - 50
	y := float32(g.cfg.ScreenHeight)/2 - barH/2

	vector.DrawFilledRect(screen, x, y, barW, barH, color.RGBA{40, 40, 40, 255}, false)
	fill := float32(g.frame.SpeedFraction) * barH
	if fill > 0 {
		vector.DrawFilledRect(screen, x, y+barH-fill, barW, fill, SpeedColor(g.frame.SpeedFraction), false)
	}
	vector.StrokeRect(screen, x, y, barW, barH, 2, color.RGBA{150, 150, 150, 255}, false)
}

// drawSteeringWheel draws a wheel in the bottom-right corner turned by ten
// times the steering angle
func (g *Game) drawSteeringWheel(screen *ebiten.Image) {
	cx := float32(g.cfg.Road.ScreenWidth) - 80
	cy := float32(g.cfg.ScreenHeight) - 80
	const radius = 30

	vector.StrokeCircle(screen, cx, cy, radius, 5, color.RGBA{100, 100, 100, 255}, true)
	vector.DrawFilledCircle(screen, cx, cy, 5, color.RGBA{200, 200, 200, 255}, true)

	spoke := color.RGBA{50, 255, 50, 255}
	if math.Abs(g.frame.SteeringAngle) > g.frame.MaxSteering/2 {
		spoke = color.RGBA{255, 50, 50, 255}
	}
	angle := g.frame.SteeringAngle * 10
	for _, a := range []float64{angle, angle + 2*math.Pi/3, angle - 2*math.Pi/3} {
		ex := cx + float32((radius-3)*math.Sin(a))
		ey := cy - float32((radius-3)*math.Cos(a))
		vector.StrokeLine(screen, cx, cy, ex, ey, 3, spoke, true)
	}
}

// drawOverlay prints the simulation internals for tuning
func (g *Game) drawOverlay(screen *ebiten.Image) {
	st := g.session.Stats()
	lines := []string{
		fmt.Sprintf("tick %s  fps %.0f  tps %.0f", FormatCount(g.frame.Tick), ebiten.ActualFPS(), ebiten.ActualTPS()),
		fmt.Sprintf("speed %.2f  steer %+.3f / %.3f", g.frame.Speed, g.frame.SteeringAngle, g.frame.MaxSteering),
		fmt.Sprintf("x %.1f  rot %+.3f  tilt %+.3f", g.frame.Pose.X, g.frame.Pose.Rotation, g.frame.Pose.Tilt),
		fmt.Sprintf("traffic %d  spawned %d  skipped %d  despawned %d", len(g.frame.Agents), st.Spawned, st.Skipped, st.Despawned),
		fmt.Sprintf("recycled %s  clock %s  restarts %d", FormatCount(uint64(st.Recycled)), FormatClock(g.session.Elapsed()), g.restarts),
	}
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, 220, 20+i*16)
	}
}
