package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/leonelquinteros/gotext"
	"github.com/sirupsen/logrus"

	"nhport/pkg/engine/bridge"
	"nhport/pkg/engine/command"
	"nhport/pkg/engine/config"
	"nhport/pkg/engine/glyph"
	"nhport/pkg/engine/logger"
	"nhport/pkg/engine/winproc"
	"nhport/pkg/game/devtools"
	"nhport/pkg/game/gameplay"
	"nhport/pkg/game/sandbox"
	"nhport/pkg/port/bell"
	"nhport/pkg/port/ebiten"
	"nhport/pkg/port/fullscreen"
	"nhport/pkg/port/tui"
	"nhport/pkg/port/web"
	"nhport/pkg/port/window"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	defPath, _ := config.DefaultPath()
	cfgPath := flag.String("config", defPath, "path to the preference file")
	port := flag.String("port", "", "window port: tui, fullscreen, ebiten or web")
	addr := flag.String("addr", "", "listen address for the web port")
	seed := flag.Int64("seed", 0, "random seed (0 picks one)")
	logLevel := flag.String("log-level", "", "log level")
	showVersion := flag.Bool("version", false, "print the version and exit")
	dumpDir := flag.String("dump-map", "", "write the first level to map.txt in this directory and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("nhport", sandbox.Version)
		return nil
	}

	prefs, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	// prefs is what zooming saves; cfg is this run's view of it.
	config.SetCurrent(prefs)
	cfg := prefs.Effective(config.Overrides{
		Port:     *port,
		WebAddr:  *addr,
		LogLevel: *logLevel,
		Seed:     *seed,
	})

	// Screen-owning ports cannot share the terminal with log output.
	logFile := cfg.Log.File
	if logFile == "" && (cfg.Port == "tui" || cfg.Port == "fullscreen") {
		logFile = filepath.Join(os.TempDir(), "nhport.log")
	}
	closer, err := logger.Init(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, File: logFile})
	if err != nil {
		logger.Log.WithError(err).Warn("log file unavailable, logging to stderr")
	}
	defer closer.Close()
	log := logger.Log.WithFields(logrus.Fields{"port": cfg.Port, "version": sandbox.Version})

	gotext.Configure(cfg.LocaleDir, cfg.Locale, "default")

	keymap := command.DefaultKeymap()
	if err := cfg.ApplyBindings(keymap); err != nil {
		log.WithError(err).Warn("ignoring bad key bindings")
	}

	layout := glyph.DefaultLayout
	tiles, err := loadTiles(cfg.TileMap, layout)
	if err != nil {
		return err
	}

	gameSeed := cfg.Seed
	if gameSeed == 0 {
		gameSeed = time.Now().UnixNano()
	}
	g := gameplay.BuildGame(rand.New(rand.NewSource(gameSeed)))
	g.DECGraphics = cfg.DECGraphics

	if *dumpDir != "" {
		path, err := devtools.DumpMapToFile(g, layout, *dumpDir)
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	}

	core := bridge.New(bridge.Config{
		Tiles:   tiles,
		Keymap:  keymap,
		Symbols: sandbox.Symbols{Layout: layout},
		Hero:    g.Hero,
	})

	var ring bell.Ringer = bell.Silent{}
	if cfg.Bell {
		tone := bell.NewTone(0.3)
		defer tone.Close()
		ring = tone
	}

	var gfx *ebiten.EbitenRenderer
	var surface window.Surface
	switch cfg.Port {
	case "tui":
		surface = tui.New(core, os.Stdin, os.Stdout, nil)
	case "fullscreen":
		surface = fullscreen.New(core, nil)
	case "ebiten":
		gfx, err = ebiten.New(core, ring)
		if err != nil {
			return err
		}
		surface = gfx
	case "web":
		surface = web.New(core, cfg.WebAddr)
	default:
		return fmt.Errorf("unknown port %q", cfg.Port)
	}

	procs := winproc.Guarded(window.NewProcs(core, core, surface), &winproc.Guard{})
	engine := sandbox.New(procs, g, layout)
	log.WithField("seed", gameSeed).Info("starting")

	done := make(chan error, 1)
	go func() { done <- engine.Run() }()

	if gfx != nil {
		// Ebiten owns the main goroutine until its window closes.
		if err := gfx.Run(); err != nil {
			core.Close()
			<-done
			return err
		}
		core.Close()
	}
	if err := <-done; err != nil {
		return err
	}
	log.WithField("turns", g.Turn).Info("finished")
	return nil
}

func loadTiles(path string, layout glyph.Layout) (*glyph.Table, error) {
	if path == "" {
		return glyph.DefaultTable(layout), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening tile map: %w", err)
	}
	defer f.Close()
	return glyph.LoadTable(f, layout)
}
