package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"charrig/internal/config"
	"charrig/internal/game"
	"charrig/internal/sim"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config overlaid on the defaults")
	headless := flag.Bool("headless", false, "Run the built-in input script without a window")
	frames := flag.Int("frames", 600, "Frames to run in headless mode")
	tracePath := flag.String("trace", "", "Write a per-tick CSV trace to this path")
	watch := flag.Bool("watch", false, "Reload the config file when it changes")
	debug := flag.Bool("debug", false, "Log at debug level, including phase changes")
	flag.Parse()

	var logger *slog.Logger
	if *debug {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	} else {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	slog.SetDefault(logger)

	if err := run(*configPath, *headless, *frames, *tracePath, *watch, logger); err != nil {
		logger.Error("charrig failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, headless bool, frames int, tracePath string, watch bool, logger *slog.Logger) (err error) {
	if watch && configPath == "" {
		return fmt.Errorf("--watch needs --config")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if tracePath != "" {
		cfg.Trace.Path = tracePath
	}

	zone, err := sim.LoadZone(cfg)
	if err != nil {
		return fmt.Errorf("loading zone: %w", err)
	}
	s, err := sim.New(cfg, zone, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := s.Close(); err == nil {
			err = closeErr
		}
	}()

	if headless {
		return s.Run(sim.DefaultScript(), frames, cfg.Timestep.Step)
	}

	var watcher *config.Watcher
	if watch {
		watcher, err = config.NewWatcher(configPath, logger)
		if err != nil {
			return fmt.Errorf("watching config: %w", err)
		}
		defer watcher.Close()
	}

	return game.New(s, watcher, logger).Run()
}
