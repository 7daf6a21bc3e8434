package main

import (
	"log"
	"log/slog"
	"os"

	"PaintBoard/internal/config"
	"PaintBoard/internal/paint"
	"PaintBoard/internal/state"
	"PaintBoard/internal/ui"
)

func main() {
	var path string
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	level, _ := cfg.Log.SlogLevel()
	state.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	driver, err := paint.NewDriver(cfg.Render.Backend)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	canvas := state.New(paint.NewRenderer(driver), state.WithTouchTolerance(cfg.Brush.TouchTolerance))
	canvas.Init(cfg.Canvas.Width, cfg.Canvas.Height)

	state.Logger().Info("starting PaintBoard", "backend", cfg.Render.Backend, "config", path)
	ui.RunApp(cfg, canvas)
}
