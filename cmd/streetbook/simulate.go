package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/streetbook/internal/config"
	"github.com/lox/streetbook/internal/engine"
	"github.com/lox/streetbook/internal/randutil"
	"golang.org/x/sync/errgroup"
)

type SimulateCmd struct {
	Games    int    `default:"100" help:"Number of games to autoplay"`
	Workers  int    `default:"4" help:"Concurrent games"`
	MaxWeeks int    `default:"52" help:"Abandon runs that survive this long"`
	Seed     *int64 `help:"Base RNG seed; run n uses seed+n (optional)"`
	Debug    bool   `help:"Enable debug logging"`
}

type runResult struct {
	weeks    int
	bankroll int
	won      bool
	busted   bool
	heated   bool
}

func (c *SimulateCmd) Run(cli *CLI) error {
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
	rules := cfg.Rules()

	baseSeed := time.Now().UnixNano()
	if c.Seed != nil {
		baseSeed = *c.Seed
	}
	logger.Info("simulating", "games", c.Games, "workers", c.Workers, "seed", baseSeed)

	var mu sync.Mutex
	var results []runResult

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(c.Workers)

	for i := 0; i < c.Games; i++ {
		i := i
		g.Go(func() error {
			res := autoplay(rules, baseSeed+int64(i), c.MaxWeeks, logger)
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	printSummary(results, rules)
	return nil
}

// autoplay runs one game with a simple baseline policy: keep the opening
// lines, run every safe affordable mission, end the day, and talk the
// non-payers down.
func autoplay(rules engine.Rules, seed int64, maxWeeks int, logger *log.Logger) runResult {
	eng := engine.New(rules, randutil.New(seed), logger)
	s := eng.NewState()

	for !s.IsGameOver && s.Week <= maxWeeks {
		if s.PendingNonPayer != nil {
			s = eng.Reduce(s, engine.HandleNonPayer{
				CustomerID: s.PendingNonPayer.CustomerID,
				Choice:     engine.LetSlide,
			})
			continue
		}

		if id, ok := safeMission(s); ok {
			s = eng.Reduce(s, engine.DoMission{MissionID: id})
			continue
		}

		if s.Day == rules.GameDay {
			s = eng.Reduce(s, engine.SimulateGames{})
			if s.PendingNonPayer != nil || s.IsGameOver {
				continue
			}
		}
		s = eng.Reduce(s, engine.EndDay{})
	}

	return runResult{
		weeks:    s.Week,
		bankroll: s.Bankroll,
		won:      s.Bankroll >= rules.WinThreshold,
		busted:   s.Bankroll <= rules.BustThreshold,
		heated:   s.Heat >= rules.HeatLimit,
	}
}

// safeMission picks the first zero-risk mission the state can afford.
func safeMission(s *engine.GameState) (string, bool) {
	for _, m := range s.AvailableMissions {
		if m.Risk == 0 && m.EnergyCost <= s.Energy && m.MoneyCost <= s.Bankroll {
			return m.ID, true
		}
	}
	return "", false
}

func printSummary(results []runResult, rules engine.Rules) {
	if len(results) == 0 {
		return
	}

	var wins, busts, heated, survived int
	var totalBankroll, totalWeeks int
	for _, r := range results {
		switch {
		case r.won:
			wins++
		case r.busted:
			busts++
		case r.heated:
			heated++
		default:
			survived++
		}
		totalBankroll += r.bankroll
		totalWeeks += r.weeks
	}

	n := len(results)
	fmt.Printf("games:          %d\n", n)
	fmt.Printf("won:            %d (%.1f%%)\n", wins, pct(wins, n))
	fmt.Printf("busted:         %d (%.1f%%)\n", busts, pct(busts, n))
	fmt.Printf("heat limit:     %d (%.1f%%)\n", heated, pct(heated, n))
	fmt.Printf("still running:  %d (%.1f%%)\n", survived, pct(survived, n))
	fmt.Printf("avg bankroll:   $%d (started with $%d)\n", totalBankroll/n, rules.StartingBankroll)
	fmt.Printf("avg weeks:      %.1f\n", float64(totalWeeks)/float64(n))
}

func pct(part, total int) float64 {
	return float64(part) / float64(total) * 100
}
