package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"github.com/idilsaglam/smarttasks/internal/cli"
	"github.com/idilsaglam/smarttasks/internal/config"
	"github.com/idilsaglam/smarttasks/internal/store/jsonstore"
	"github.com/idilsaglam/smarttasks/internal/tasks"
	"github.com/idilsaglam/smarttasks/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	configPath := flag.String("config", config.DefaultConfigPath(), "path to config.yaml")
	dataFile := flag.String("data", "", "task data file (overrides config)")
	theme := flag.String("theme", "", "classic, neon or mono (overrides config)")
	groupPending := flag.Bool("group", false, "group output by pending/done")
	noColor := flag.Bool("no-color", false, "disable colored output")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		ui.Fail(os.Stderr, "config: "+err.Error())
		os.Exit(cli.ExitUsage)
	}
	if *dataFile != "" {
		cfg.DataFile = *dataFile
	}
	if *theme != "" {
		if !ui.ValidTheme(*theme) {
			ui.Fail(os.Stderr, fmt.Sprintf("-theme: unknown theme %q", *theme))
			os.Exit(cli.ExitUsage)
		}
		cfg.Theme = *theme
	}
	ui.SetTheme(cfg.Theme)
	if *noColor {
		ui.SetColorForcing(false, true)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:  cfg.Level(),
		Prefix: config.AppName,
	})

	kv := jsonstore.New(cfg.DataFile)
	store := tasks.New(kv,
		tasks.WithKey(cfg.StorageKey),
		tasks.WithLogger(logger),
		tasks.WithFilter(cfg.Filter()),
	)
	n := store.Load()
	logger.Debug("store ready", "file", kv.Path(), "tasks", n)

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		if !isatty.IsTerminal(os.Stdin.Fd()) {
			cli.PrintHelp()
			os.Exit(cli.ExitUsage)
		}
		args = []string{"tui"}
	}

	code := cli.Run(args, store, cli.Options{
		Group:    *groupPending,
		Priority: cfg.Priority(),
	})
	if code != cli.ExitOK {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
