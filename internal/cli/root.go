// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/config"
	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/export"
	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/logging"
	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/storage"
	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/ui/styles"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// app holds state shared by every command of one invocation.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	// Global flags
	configPath string
	verbose    bool
	jsonOut    bool

	cfg *config.Config
	log *logrus.Logger

	store     storage.KeyValueStore
	closeDB   func() error
	openStore func(ctx context.Context, path string) (storage.KeyValueStore, func() error, error)
	isTTY     func() bool
	provider  *export.Provider
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	return &app{
		in:     in,
		out:    out,
		errOut: errOut,
		openStore: func(ctx context.Context, path string) (storage.KeyValueStore, func() error, error) {
			db, err := storage.OpenSQLite(ctx, path)
			if err != nil {
				return nil, nil, err
			}
			return db, db.Close, nil
		},
		isTTY: func() bool {
			return out == os.Stdout && styles.IsStdoutTTY()
		},
	}
}

// setup loads configuration and builds the logger.
func (a *app) setup() error {
	var (
		cfg *config.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = config.LoadFile(a.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.log = logging.New(cfg.Log, a.errOut)
	if a.verbose {
		logging.Verbose(a.log)
	}
	a.log.WithField("db", cfg.Storage.DBPath).Debug("configuration loaded")
	return nil
}

// kv opens the preset and history store on first use.
func (a *app) kv(ctx context.Context) (storage.KeyValueStore, error) {
	if a.store != nil {
		return a.store, nil
	}
	kv, closer, err := a.openStore(ctx, a.cfg.Storage.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	a.store, a.closeDB = kv, closer
	return kv, nil
}

func (a *app) close() {
	if a.closeDB != nil {
		if err := a.closeDB(); err != nil {
			a.log.WithError(err).Warn("could not close store")
		}
		a.closeDB = nil
	}
	a.store = nil
}

// renderers returns the shared provider, built from [pdf] on first use.
func (a *app) renderers() *export.Provider {
	if a.provider == nil {
		a.provider = export.DefaultProvider(a.cfg.PDFOptions(), a.log)
	}
	return a.provider
}

// newRootCmd builds the command tree around a.
func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "sparkexport",
		Short: "Export interview questions to HTML, PDF, Word, Markdown or JSON",
		Long: `sparkexport turns an interview question bank into shareable documents.

Questions are read from a JSON or YAML file (an array, or an object with a
"questions" array), filtered, cleaned of private content, sorted, grouped,
and rendered. Split exports produce one file per group packed into a zip.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &UsageError{Message: err.Error()}
	})

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ~/.sparkexport/config.toml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "print machine-readable JSON")

	root.AddCommand(
		newExportCmd(a),
		newPreviewCmd(a),
		newPresetsCmd(a),
		newHistoryCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)
	return root
}

// Execute runs the CLI with args and returns the process exit code.
func Execute(ctx context.Context, args []string) int {
	return run(ctx, args, os.Stdin, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	a := newApp(in, out, errOut)
	root := newRootCmd(a)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err != nil {
		a.close()
		if a.jsonOut {
			_ = NewJSONErrorResponse(root.Name(), err).Print(out)
		} else {
			fmt.Fprintln(errOut, styles.Render(styles.Error, "Error: ")+err.Error())
		}
	}
	return ExitCode(err)
}
