// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/export"
	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/ui/pager"
	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/ui/styles"
)

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

// newPreviewCmd creates the preview command
func newPreviewCmd(a *app) *cobra.Command {
	var (
		input    inputFlags
		flags    optionFlags
		terminal bool
		copyHTML bool
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the HTML preview without saving or recording history",
		Long: `Render the same HTML an export would produce and print it to stdout.

--terminal shows the Markdown rendering instead, paged when stdout is a
terminal. --copy places the HTML on the system clipboard.

Examples:
  sparkexport preview -i questions.json --group-by tag > preview.html
  sparkexport preview -i questions.json --terminal
  sparkexport preview -i questions.json --preset weekly --copy`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts, err := flags.resolve(ctx, a, cmd.Flags())
			if err != nil {
				return err
			}
			qs, err := input.load(a)
			if err != nil {
				return err
			}

			exp := export.New(
				export.WithProvider(a.renderers()),
				export.WithLogger(a.log),
				export.WithLocale(a.cfg.Defaults.Locale),
			)

			html, err := exp.Preview(ctx, qs, opts)
			if err != nil {
				return err
			}
			if copyHTML {
				if err := copyToClipboard(html); err != nil {
					return &CommandError{Command: "preview", Action: "copy", Err: err}
				}
				fmt.Fprintln(a.errOut, styles.Render(styles.Success, "Preview HTML copied to clipboard"))
			}

			if !terminal {
				if copyHTML {
					return nil
				}
				_, err := fmt.Fprint(a.out, html)
				return err
			}

			md, err := exp.PreviewFormat(ctx, qs, opts, export.FormatMarkdown)
			if err != nil {
				return err
			}
			if a.isTTY() {
				title := opts.Title
				if title == "" {
					title = export.DefaultTitle
				}
				return pager.Show(title, string(md))
			}
			width, _ := styles.TerminalSize()
			return pager.Print(a.out, string(md), width)
		},
	}

	input.register(cmd)
	flags.register(cmd.Flags())
	cmd.Flags().BoolVarP(&terminal, "terminal", "t", false, "show a Markdown rendering in the terminal")
	cmd.Flags().BoolVar(&copyHTML, "copy", false, "copy the HTML to the clipboard")

	return cmd
}
