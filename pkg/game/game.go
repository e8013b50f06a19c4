// Package game connects a simulation session to ebiten: it reads the
// keyboard into an intent every tick and draws the resulting frame.
package game

import (
	"fmt"

	"github.com/golangdaddy/taxidash/pkg/background"
	"github.com/golangdaddy/taxidash/pkg/config"
	"github.com/golangdaddy/taxidash/pkg/session"
	"github.com/golangdaddy/taxidash/pkg/vehicle"
	"github.com/hajimehoshi/bitmapfont/v4"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	log "github.com/sirupsen/logrus"
)

// Game implements the ebiten.Game interface around a session
type Game struct {
	cfg    config.Config
	logger log.FieldLogger

	session *session.Session
	frame   session.Frame

	sprites *background.Sprites
	taxi    *ebiten.Image
	traffic []*ebiten.Image
	face    text.Face

	paused   bool
	overlay  bool
	restarts int
}

// NewGame starts a session. Sprites are painted on the first tick, once the
// ebiten loop is running.
func NewGame(cfg config.Config, logger log.FieldLogger, overlay bool) (*Game, error) {
	if logger == nil {
		logger = log.StandardLogger()
	}
	s, err := session.New(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}

	return &Game{
		cfg:     cfg,
		logger:  logger,
		session: s,
		frame:   s.Frame(),
		face:    text.NewGoXFace(bitmapfont.Face),
		overlay: overlay,
	}, nil
}

func (g *Game) loadSprites() {
	if g.sprites != nil {
		return
	}
	g.sprites = background.NewGenerator(int(g.cfg.Road.ScreenWidth), int(g.cfg.ScreenHeight), g.cfg.Seed).Generate()
	g.taxi = paintCar(taxiPaint)
	for i := 0; i < g.cfg.Traffic.Variants; i++ {
		g.traffic = append(g.traffic, paintCar(trafficPaints[i%len(trafficPaints)]))
	}
	g.logger.WithField("variants", len(g.traffic)).Debug("Sprites painted")
}

// Update reads input and advances the session by one tick
func (g *Game) Update() error {
	g.loadSprites()
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
		g.logger.WithField("tick", g.frame.Tick).Infof("Paused: %v", g.paused)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.overlay = !g.overlay
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.restart(); err != nil {
			return err
		}
	}

	if g.paused {
		return nil
	}
	g.frame = g.session.Tick(readIntent())
	return nil
}

// restart replaces the session with a fresh one from the same config
func (g *Game) restart() error {
	g.logSummary("Session ended")

	s, err := session.New(g.cfg, g.logger)
	if err != nil {
		return fmt.Errorf("restart session: %w", err)
	}
	g.session = s
	g.frame = s.Frame()
	g.paused = false
	g.restarts++
	return nil
}

// Draw renders the latest frame
func (g *Game) Draw(screen *ebiten.Image) {
	g.loadSprites()
	g.drawWorld(screen)
	g.drawHUD(screen)
}

// Layout returns the configured logical screen size
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return int(g.cfg.Road.ScreenWidth), int(g.cfg.ScreenHeight)
}

// Session returns the running session
func (g *Game) Session() *session.Session {
	return g.session
}

// Restarts returns how many times the player restarted
func (g *Game) Restarts() int {
	return g.restarts
}

// Close logs the summary of the running session
func (g *Game) Close() {
	g.logSummary("Session finished")
}

func (g *Game) logSummary(msg string) {
	st := g.session.Stats()
	g.logger.WithFields(log.Fields{
		"ticks":     FormatCount(st.Ticks),
		"time":      FormatClock(g.session.Elapsed()),
		"distance":  FormatDistance(Metres(st.Distance, g.cfg.TicksPerSecond)),
		"spawned":   st.Spawned,
		"skipped":   st.Skipped,
		"despawned": st.Despawned,
		"recycled":  FormatCount(uint64(st.Recycled)),
	}).Info(msg)
}

// readIntent polls the keyboard. Arrows and WASD both drive; space brakes.
func readIntent() vehicle.Intent {
	return vehicle.Intent{
		Accelerate: ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW),
		Brake: ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) ||
			ebiten.IsKeyPressed(ebiten.KeySpace),
		SteerLeft:  ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		SteerRight: ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
	}
}
