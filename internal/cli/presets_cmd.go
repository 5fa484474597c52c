// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/export"
	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/storage"
	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/ui/styles"
)

// newPresetsCmd creates the presets command group
func newPresetsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "presets",
		Aliases: []string{"preset"},
		Short:   "Manage saved export presets",
	}
	cmd.AddCommand(
		newPresetsListCmd(a),
		newPresetsShowCmd(a),
		newPresetsSaveCmd(a),
		newPresetsDeleteCmd(a),
	)
	return cmd
}

// presetRow is the --json shape of a preset summary.
type presetRow struct {
	Name    string        `json:"name"`
	Format  export.Format `json:"format,omitempty"`
	GroupBy string        `json:"groupBy,omitempty"`
	SplitBy string        `json:"splitBy,omitempty"`
	SortBy  string        `json:"sortBy,omitempty"`
}

func newPresetsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			kv, err := a.kv(ctx)
			if err != nil {
				return err
			}
			presets := storage.NewPresets(kv)
			names, err := presets.List(ctx)
			if err != nil {
				return err
			}

			rows := make([]presetRow, 0, len(names))
			for _, name := range names {
				p, err := presets.Get(ctx, name)
				if err != nil {
					return err
				}
				rows = append(rows, presetRow{
					Name:    name,
					Format:  p.Format,
					GroupBy: p.GroupBy,
					SplitBy: p.SplitBy,
					SortBy:  p.SortBy,
				})
			}

			if a.jsonOut {
				return NewJSONResponse("presets list", rows).Print(a.out)
			}
			if len(rows) == 0 {
				fmt.Fprintln(a.out, styles.Render(styles.Dim, "No presets saved."))
				return nil
			}
			t := &styles.Table{
				Headers:   []string{"Name", "Format", "Group", "Split", "Sort"},
				MaxWidths: []int{24},
			}
			for _, r := range rows {
				t.Rows = append(t.Rows, []string{r.Name, string(r.Format), r.GroupBy, r.SplitBy, r.SortBy})
			}
			fmt.Fprint(a.out, t.Render())
			return nil
		},
	}
}

func newPresetsShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Print a preset as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			kv, err := a.kv(ctx)
			if err != nil {
				return err
			}
			p, err := storage.NewPresets(kv).Get(ctx, args[0])
			if err != nil {
				return err
			}
			if a.jsonOut {
				return NewJSONResponse("presets show", p).Print(a.out)
			}
			data, err := yaml.Marshal(p)
			if err != nil {
				return fmt.Errorf("marshal yaml: %w", err)
			}
			_, err = a.out.Write(data)
			return err
		},
	}
}

func newPresetsSaveCmd(a *app) *cobra.Command {
	var (
		from  string
		flags optionFlags
	)
	cmd := &cobra.Command{
		Use:   "save NAME",
		Short: "Save a preset from flags or a YAML file",
		Long: `Save a preset from option flags, or from a YAML file written by
"presets show". Flags given together with --from override the file.

Examples:
  sparkexport presets save weekly --format pdf --group-by round --no-answer
  sparkexport presets show weekly > weekly.yaml
  sparkexport presets save weekly-dark --from weekly.yaml --theme dark`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts := &export.Options{}
			if from != "" {
				data, err := os.ReadFile(from)
				if err != nil {
					return fmt.Errorf("read preset file: %w", err)
				}
				if err := yaml.Unmarshal(data, opts); err != nil {
					return fmt.Errorf("parse preset file: %w", err)
				}
			}
			if err := flags.apply(opts, cmd.Flags()); err != nil {
				return err
			}

			kv, err := a.kv(ctx)
			if err != nil {
				return err
			}
			if err := storage.NewPresets(kv).Save(ctx, args[0], opts); err != nil {
				return &CommandError{Command: "presets", Action: "save", Err: err}
			}
			if a.jsonOut {
				return NewJSONResponse("presets save", presetRow{Name: args[0], Format: opts.Format}).Print(a.out)
			}
			fmt.Fprintf(a.out, "%s preset %s\n", styles.Render(styles.Success, "Saved"), styles.Render(styles.Title, args[0]))
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "YAML file holding the options")
	flags.register(cmd.Flags())
	_ = cmd.Flags().MarkHidden("preset")
	return cmd
}

func newPresetsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete NAME",
		Aliases: []string{"rm"},
		Short:   "Delete a preset",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			kv, err := a.kv(ctx)
			if err != nil {
				return err
			}
			if err := storage.NewPresets(kv).Delete(ctx, args[0]); err != nil {
				return err
			}
			if a.jsonOut {
				return NewJSONResponse("presets delete", presetRow{Name: args[0]}).Print(a.out)
			}
			fmt.Fprintf(a.out, "%s preset %s\n", styles.Render(styles.Success, "Deleted"), args[0])
			return nil
		},
	}
}
