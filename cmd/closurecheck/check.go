package main

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"golang.org/x/sync/errgroup"

	"github.com/funvibe/closurecheck/internal/analyzer"
	"github.com/funvibe/closurecheck/internal/config"
	"github.com/funvibe/closurecheck/internal/logging"
	"github.com/funvibe/closurecheck/internal/pipeline"
	"github.com/funvibe/closurecheck/internal/scenario"
	"github.com/funvibe/closurecheck/internal/typetable"
	"github.com/funvibe/closurecheck/internal/watch"
)

type checkOptions struct {
	config   *config.Config
	database string
	dump     bool
}

// watchQuiet is how long the watcher waits for a burst of saves to settle.
const watchQuiet = 150 * time.Millisecond

var dumpConfig = spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true, MaxDepth: 6}

// isScenarioFile checks if a file has a recognized scenario extension and is
// not a config file.
func isScenarioFile(path string) bool {
	base := filepath.Base(path)
	for _, name := range config.ConfigFileNames {
		if base == name {
			return false
		}
	}
	for _, ext := range config.ScenarioFileExtensions {
		if strings.HasSuffix(base, ext) {
			return true
		}
	}
	return false
}

// collectScenarios returns the scenario files under target in lexical order.
// A file target is returned as is.
func collectScenarios(target string) ([]string, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{target}, nil
	}

	var files []string
	err = filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != target && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if isScenarioFile(path) {
			files = append(files, path)
		}
		return nil
	})
	sort.Strings(files)
	return files, err
}

// runCheck checks every scenario under target and prints the summary.
func runCheck(ctx context.Context, target string, opts checkOptions) bool {
	files, err := collectScenarios(target)
	if err != nil {
		logging.PrintErrorMessage("Path Error", err)
		return false
	}
	if err := checkFiles(ctx, files, opts); err != nil {
		logging.PrintErrorMessage("Check Error", err)
	}
	logging.DisplaySummary(len(files))
	return logging.ShouldProceed()
}

// checkFiles runs the pipeline over files concurrently. Diagnostics go to
// the logger; the returned error is only set when ctx is cancelled.
func checkFiles(ctx context.Context, files []string, opts checkOptions) error {
	export := &pipeline.ExportProcessor{}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, file := range files {
		file := file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			checkFile(file, opts, export)
			return nil
		})
	}
	return g.Wait()
}

func checkFile(path string, opts checkOptions, export pipeline.Processor) *pipeline.PipelineContext {
	pctx := &pipeline.PipelineContext{
		FilePath: path,
		Config:   opts.config,
		Database: opts.database,
	}
	if opts.database != "" {
		pctx.RunID = typetable.NewRunID()
	}

	p := pipeline.New(
		&scenario.LoaderProcessor{},
		&analyzer.CheckProcessor{},
		&scenario.VerifyProcessor{},
		export,
	)
	pctx = p.Run(pctx)

	for _, err := range pctx.Errors {
		logging.LogDiagnostic(err)
	}
	if !pctx.Failed() {
		switch {
		case pctx.Result != nil:
			logging.LogResult(path, pctx.Result.String())
		case pctx.Err != nil:
			logging.LogResult(path, "expected "+pctx.Err.Error())
		}
	}
	if opts.dump {
		dumpOutcome(pctx)
	}
	return pctx
}

func dumpOutcome(pctx *pipeline.PipelineContext) {
	if pctx.Scenario == nil {
		return
	}
	out := dumpConfig.Sdump(pctx.Scenario.Closure, pctx.Scenario.Expected)
	if pctx.Tables != nil {
		tables, release := pctx.Tables.Borrow()
		if sig, ok := tables.ClosureSig(pctx.Scenario.Closure.ID); ok {
			out += "signature: " + sig.String() + "\n"
		}
		if rec, ok := tables.ClosureKind(pctx.Scenario.Closure.ID); ok {
			out += "capability: " + rec.Level.String() + "\n"
		}
		release()
	}
	if pctx.Result != nil {
		out += "type: " + pctx.Result.String() + "\n"
	}
	logging.LogDump("Dump "+filepath.Base(pctx.FilePath), out)
}

// watchAndCheck re-checks changed scenarios until ctx is cancelled.
func watchAndCheck(ctx context.Context, target string, isDir bool, opts checkOptions) error {
	w, err := watch.NewFSWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	relevant := isScenarioFile
	if isDir {
		err = filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != target && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return w.Add(path)
			}
			return nil
		})
	} else {
		relevant = func(path string) bool { return filepath.Clean(path) == target }
		err = w.Add(filepath.Dir(target))
	}
	if err != nil {
		return err
	}

	logging.PrintInfoMessage("Watching", target)
	return watch.Run(ctx, w, watchQuiet, relevant, func(paths []string) {
		var files []string
		for _, p := range paths {
			if _, err := os.Stat(p); err == nil {
				files = append(files, p)
			}
		}
		if len(files) == 0 {
			return
		}
		logging.ResetCounts()
		if err := checkFiles(ctx, files, opts); err != nil {
			return
		}
		logging.DisplaySummary(len(files))
	})
}
