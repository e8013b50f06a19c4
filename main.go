package main

import (
	"errors"
	"flag"
	"io/fs"
	"time"

	"github.com/golangdaddy/taxidash/pkg/config"
	"github.com/golangdaddy/taxidash/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	log "github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "JSON config file; missing fields use the defaults")
	writeConfig := flag.String("write-config", "", "write the effective config to this file and exit")
	seed := flag.Int64("seed", 0, "random seed, overrides the config (0 keeps the config's seed)")
	debug := flag.Bool("debug", false, "debug logging and the on-screen overlay")
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			log.WithField("path", *configPath).Warn("Config file not found, using defaults")
		case err != nil:
			log.WithError(err).Fatal("Failed to load config")
		default:
			cfg = loaded
		}
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("Invalid config")
	}

	if *writeConfig != "" {
		if err := cfg.Save(*writeConfig); err != nil {
			log.WithError(err).Fatal("Failed to write config")
		}
		log.WithField("path", *writeConfig).Info("Config written")
		return
	}

	g, err := game.NewGame(cfg, log.StandardLogger(), *debug)
	if err != nil {
		log.WithError(err).Fatal("Failed to start")
	}

	ebiten.SetWindowSize(int(cfg.Road.ScreenWidth), int(cfg.ScreenHeight))
	ebiten.SetWindowTitle("Taxi Dash")
	ebiten.SetTPS(cfg.TicksPerSecond)

	started := time.Now()
	runErr := ebiten.RunGame(g)
	g.Close()
	log.WithFields(log.Fields{
		"wall":     game.FormatClock(time.Since(started)),
		"restarts": g.Restarts(),
	}).Info("Shutting down")

	if runErr != nil {
		log.WithError(runErr).Fatal("Game loop failed")
	}
}
