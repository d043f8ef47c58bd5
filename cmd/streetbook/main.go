package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Config   string           `short:"c" default:"streetbook.hcl" help:"Path to HCL configuration file"`
	Play     PlayCmd          `cmd:"" default:"withargs" help:"Run the game in the terminal"`
	Serve    ServeCmd         `cmd:"" help:"Serve the game over WebSocket"`
	Simulate SimulateCmd      `cmd:"" help:"Autoplay batches of games and report outcomes"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("streetbook"),
		kong.Description("Run a neighborhood sports book without going bust, getting busted, or both"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}

// setupLogger builds the process logger. An empty logFile logs to
// stderr; the play command always passes a file since the TUI owns the
// terminal.
func setupLogger(debug bool, logFile string) (*log.Logger, func(), error) {
	var w io.Writer = os.Stderr
	cleanup := func() {}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return nil, nil, err
		}
		w = f
		cleanup = func() { _ = f.Close() }
	}

	logger := log.New(w)
	if debug {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}
	return logger, cleanup, nil
}
