package main

import (
	"fmt"
	"time"

	"github.com/lox/streetbook/internal/config"
	"github.com/lox/streetbook/internal/server"
)

type ServeCmd struct {
	Addr  string `default:":8080" help:"Listen address"`
	Seed  *int64 `help:"Deterministic RNG seed (optional)"`
	Debug bool   `help:"Enable debug logging"`
}

func (c *ServeCmd) Run(cli *CLI) error {
	logger, cleanup, err := setupLogger(c.Debug, "")
	if err != nil {
		return err
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

	srv := server.New(c.Addr, cfg.Rules(), seed, logger)
	return srv.Start()
}
