package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/coder/quartz"
	"github.com/lox/streetbook/internal/config"
	"github.com/lox/streetbook/internal/engine"
	"github.com/lox/streetbook/internal/randutil"
	"github.com/lox/streetbook/internal/session"
	"github.com/lox/streetbook/internal/store"
	"github.com/lox/streetbook/internal/tui"
)

type PlayCmd struct {
	Save    string `help:"Save file path" default:"streetbook.sqlite"`
	LogFile string `help:"Diagnostic log file" default:"streetbook.log"`
	Seed    *int64 `help:"Deterministic RNG seed (optional)"`
	New     bool   `help:"Abandon the current save and start fresh"`
	Debug   bool   `help:"Enable debug logging"`
}

func (c *PlayCmd) Run(cli *CLI) error {
	logger, cleanup, err := setupLogger(c.Debug, c.LogFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer cleanup()

	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	} else if cfg.Seed() != 0 {
		seed = cfg.Seed()
	}
	logger.Info("starting streetbook", "seed", seed)

	st, err := store.OpenSQLite(cfg.SavePath(c.Save), logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if c.New {
		if err := st.Delete(ctx); err != nil {
			return err
		}
	}

	eng := engine.New(cfg.Rules(), randutil.New(seed), logger)
	sess, err := session.LoadOrNew(ctx, eng, st, logger, quartz.NewReal())
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close(ctx) }()

	sess.StartAutosave(ctx)

	model := tui.New(sess, logger)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
