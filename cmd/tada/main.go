package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Makepad-fr/tada/internal/cli"
	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/todo"
	"github.com/Makepad-fr/tada/internal/ui"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	// Root flags (apply to every subcommand)
	fs := flag.NewFlagSet("tada", flag.ContinueOnError)
	fs.Usage = func() { cli.PrintHelp(os.Stderr) }
	cfg, err := config.Load(fs, argv)
	if err != nil {
		if config.IsHelp(err) {
			return cli.ExitOK
		}
		ui.Fail(os.Stderr, "config: "+err.Error())
		return cli.ExitUsage
	}
	ui.SetTheme(cfg.Theme)

	log := logging.New(logging.Config{
		Level:      cfg.Log.Level,
		FilePath:   cfg.Log.File,
		JSONFormat: cfg.Log.JSON,
	})

	// Hand the remaining args to the CLI runner.
	args := fs.Args()
	if len(args) == 0 {
		cli.PrintHelp(os.Stderr)
		return cli.ExitUsage
	}

	store, closeStore, err := config.OpenStore(cfg)
	if err != nil {
		ui.Fail(os.Stderr, "open store: "+err.Error())
		return cli.ExitError
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.WithError(err).Warn("closing store")
		}
	}()
	log.WithField("backend", cfg.Backend).WithField("dir", cfg.DataDir).Debug("store opened")

	list := todo.New(store, todo.WithKey(cfg.Key), todo.WithLogger(log))
	if err := list.Initialize(); err != nil {
		// Non-fatal: the list starts empty and the next change rewrites it.
		ui.Warn(os.Stderr, err.Error())
	}

	code := cli.Run(args, &cli.Env{
		List:        list,
		FullIDs:     cfg.FullIDs,
		HistoryPath: filepath.Join(cfg.DataDir, ".tada_history"),
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	return code
}
