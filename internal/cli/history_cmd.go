// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/storage"
	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/ui/styles"
)

// newHistoryCmd creates the history command
func newHistoryCmd(a *app) *cobra.Command {
	var clearAll bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent exports",
		Long: fmt.Sprintf(`Show the last %d exports, newest first.

Previews are not recorded. Use --clear to forget every entry.`, storage.MaxHistory),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			kv, err := a.kv(ctx)
			if err != nil {
				return err
			}
			h := storage.NewHistory(kv)

			if clearAll {
				if err := h.Clear(ctx); err != nil {
					return &CommandError{Command: "history", Action: "clear", Err: err}
				}
				if a.jsonOut {
					return NewJSONResponse("history clear", nil).Print(a.out)
				}
				fmt.Fprintln(a.out, styles.Render(styles.Success, "History cleared"))
				return nil
			}

			entries, err := h.List(ctx)
			if err != nil {
				return err
			}
			if a.jsonOut {
				return NewJSONResponse("history", entries).Print(a.out)
			}
			if len(entries) == 0 {
				fmt.Fprintln(a.out, styles.Render(styles.Dim, "No exports yet."))
				return nil
			}

			t := &styles.Table{
				Headers:   []string{"When", "Format", "Count", "Group", "Split", "ID"},
				MaxWidths: []int{0, 0, 0, 12, 12, 8},
			}
			for _, e := range entries {
				t.Rows = append(t.Rows, []string{
					e.At.Local().Format("2006-01-02 15:04"),
					string(e.Format),
					strconv.Itoa(e.Count),
					e.GroupBy,
					e.SplitBy,
					e.ID,
				})
			}
			fmt.Fprint(a.out, t.Render())
			return nil
		},
	}
	cmd.Flags().BoolVar(&clearAll, "clear", false, "delete all history entries")
	return cmd
}
