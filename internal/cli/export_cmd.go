// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/export"
	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/storage"
	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/ui/styles"
	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/watch"
)

// newExportCmd creates the export command
func newExportCmd(a *app) *cobra.Command {
	var (
		input      inputFlags
		flags      optionFlags
		output     string
		open       bool
		watchInput bool
		savePreset string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export questions to a document",
		Long: `Export questions through filter, transform, sort, group and render.

Output goes to the configured output directory as export-<timestamp>.<ext>.
With --split-by, one document per group is packed into
export-batch-<timestamp>.zip. PDF output needs Chrome or Chromium; when
conversion fails a printable HTML page is written and opened instead.

Examples:
  sparkexport export -i questions.json --format pdf --group-by round
  sparkexport export -i questions.yaml --tag react --no-answer -f md -o -
  sparkexport export -i questions.json --split-by tag --format docx
  sparkexport export -i questions.json --preset weekly --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if watchInput && input.path == "-" {
				return usageErrorf("--watch needs a file, not stdin")
			}

			opts, err := flags.resolve(ctx, a, cmd.Flags())
			if err != nil {
				return err
			}

			if savePreset != "" {
				kv, err := a.kv(ctx)
				if err != nil {
					return err
				}
				if err := storage.NewPresets(kv).Save(ctx, savePreset, opts); err != nil {
					return &CommandError{Command: "export", Action: "save preset", Err: err}
				}
				a.log.WithField("preset", savePreset).Info("preset saved")
			}

			if !cmd.Flags().Changed("open") {
				open = a.cfg.Output.OpenAfterExport
			}
			report := a.out
			var sink export.Sink
			if output == "-" {
				sink = &export.WriterSink{W: a.out}
				report = a.errOut
			} else {
				if output == "" {
					output = a.cfg.Output.Dir
				}
				sink = export.NewDirSink(output, open)
			}
			exp := a.exporter(ctx, sink)

			once := func(ctx context.Context) error {
				qs, err := input.load(a)
				if err != nil {
					return err
				}
				res, err := exp.Run(ctx, qs, opts)
				if err != nil {
					return err
				}
				return a.reportExport(report, res)
			}

			if err := once(ctx); err != nil {
				return err
			}
			if !watchInput {
				return nil
			}

			w, err := watch.New(input.path, watch.DefaultDebounce, a.log)
			if err != nil {
				return err
			}
			return w.Run(ctx, once)
		},
	}

	input.register(cmd)
	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory, or - for stdout (default from config)")
	cmd.Flags().BoolVar(&open, "open", false, "open the exported file")
	cmd.Flags().BoolVarP(&watchInput, "watch", "w", false, "re-export whenever the input file changes")
	cmd.Flags().StringVar(&savePreset, "save-preset", "", "save the resolved options under this name")

	return cmd
}

// exporter builds an Exporter that records history when the store opens.
func (a *app) exporter(ctx context.Context, sink export.Sink) *export.Exporter {
	opts := []export.ExporterOption{
		export.WithProvider(a.renderers()),
		export.WithSink(sink),
		export.WithLogger(a.log),
		export.WithLocale(a.cfg.Defaults.Locale),
	}
	if kv, err := a.kv(ctx); err != nil {
		a.log.WithError(err).Warn("history disabled")
	} else {
		opts = append(opts, export.WithHistory(storage.NewHistory(kv)))
	}
	return export.New(opts...)
}

// exportReport is the --json shape of a finished export.
type exportReport struct {
	Location string   `json:"location"`
	Name     string   `json:"name"`
	MimeType string   `json:"mimeType"`
	Bytes    int      `json:"bytes"`
	Count    int      `json:"count"`
	Entries  []string `json:"entries,omitempty"`
	Fallback bool     `json:"fallback,omitempty"`
}

func (a *app) reportExport(w io.Writer, res *export.Result) error {
	r := exportReport{
		Location: res.Location,
		Count:    res.Count,
		Entries:  res.Entries,
		Fallback: res.Fallback,
	}
	if res.Artifact != nil {
		r.Name = res.Artifact.Name
		r.MimeType = res.Artifact.MimeType
		r.Bytes = len(res.Artifact.Data)
	}
	if a.jsonOut {
		return NewJSONResponse("export", r).Print(w)
	}

	if res.Fallback {
		fmt.Fprintln(w, styles.Render(styles.Warning, "PDF conversion unavailable; wrote a printable page instead"))
	}
	fmt.Fprintf(w, "%s %d questions → %s\n",
		styles.Render(styles.Success, "Exported"), r.Count, styles.Render(styles.Location, r.Location))
	for _, e := range r.Entries {
		fmt.Fprintf(w, "  %s\n", styles.Render(styles.Dim, e))
	}
	a.log.WithFields(logrus.Fields{"name": r.Name, "bytes": r.Bytes}).Debug("export reported")
	return nil
}
