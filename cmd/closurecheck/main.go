package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/ComedicChimera/olive"

	"github.com/funvibe/closurecheck/internal/config"
	"github.com/funvibe/closurecheck/internal/logging"
)

func main() {
	cli := olive.NewCLI(config.ToolName, "closurecheck infers closure signatures and capabilities for scenario files", true)
	cli.AddSelectorArg("loglevel", "ll", "the log level", false, []string{"silent", "error", "warn", "verbose", "debug"})

	checkCmd := cli.AddSubcommand("check", "check a scenario file or every scenario in a directory", true)
	checkCmd.AddPrimaryArg("path", "the scenario file or directory", true)
	checkCmd.AddStringArg("config", "c", "path to a closurecheck config file", false)
	checkCmd.AddStringArg("db", "d", "SQLite file to export recorded signatures to", false)
	checkCmd.AddFlag("watch", "w", "re-check scenarios when they change")
	checkCmd.AddFlag("dump", "du", "dump each scenario and its result")

	cli.AddSubcommand("version", "print the closurecheck version", false)

	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		logging.PrintErrorMessage("CLI Usage Error", err)
		os.Exit(2)
	}

	logLevel := ""
	if v, ok := result.Arguments["loglevel"]; ok {
		logLevel = v.(string)
	}

	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "check":
		if !execCheckCommand(subResult, logLevel) {
			os.Exit(1)
		}
	case "version":
		logging.PrintInfoMessage("closurecheck version", config.Version)
	}
}

// execCheckCommand runs the check subcommand and reports whether every
// scenario passed.
func execCheckCommand(result *olive.ArgParseResult, logLevel string) bool {
	target, _ := result.PrimaryArg()
	target, err := filepath.Abs(target)
	if err != nil {
		logging.PrintErrorMessage("Path Error", err)
		return false
	}
	info, err := os.Stat(target)
	if err != nil {
		logging.PrintErrorMessage("Path Error", err)
		return false
	}
	dir := target
	if !info.IsDir() {
		dir = filepath.Dir(target)
	}

	var cfg *config.Config
	if v, ok := result.Arguments["config"]; ok {
		cfg, err = config.Load(v.(string))
	} else {
		cfg, err = config.Find(dir)
	}
	if err != nil {
		logging.PrintErrorMessage("Config Error", err)
		return false
	}
	if logLevel == "" {
		logLevel = cfg.LogLevel
	}
	logging.Initialize(logLevel)

	opts := checkOptions{
		config:   cfg,
		database: cfg.Export.Database,
		dump:     result.HasFlag("dump"),
	}
	if v, ok := result.Arguments["db"]; ok {
		opts.database = v.(string)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ok := runCheck(ctx, target, opts)
	if !result.HasFlag("watch") {
		return ok
	}
	if err := watchAndCheck(ctx, target, info.IsDir(), opts); err != nil && ctx.Err() == nil {
		logging.PrintErrorMessage("Watch Error", err)
		return false
	}
	return true
}
