package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"falling-sand/internal/app"
	"falling-sand/internal/sims/sand"
	"falling-sand/internal/term"

	"github.com/gdamore/tcell/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Width = 120
	cfg.Height = 60
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	// The terminal owns stdout, so log output goes to a file or nowhere.
	logFile, err := app.SetupLogging(cfg.Debug, cfg.LogDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "sandterm: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *app.Config) error {
	cfg.Sim = "sand"
	sim, err := app.BuildSim(cfg)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = term.New(sim.(*sand.Sim), cfg.TPS, cfg.Seed).Run(ctx, screen)
	if ctx.Err() != nil {
		return nil
	}
	return err
}
