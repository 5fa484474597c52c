// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/ui/styles"
)

// versionInfo is the --json shape of the version command.
type versionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := versionInfo{
				Version:   Version,
				GitCommit: GitCommit,
				BuildDate: BuildDate,
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}
			if a.jsonOut {
				return NewJSONResponse("version", info).Print(a.out)
			}
			fmt.Fprintln(a.out, styles.Render(styles.Title, "sparkexport "+info.Version))
			fmt.Fprintln(a.out, styles.RenderField("Commit", info.GitCommit))
			fmt.Fprintln(a.out, styles.RenderField("Built", info.BuildDate))
			fmt.Fprintln(a.out, styles.RenderField("Go", info.GoVersion))
			fmt.Fprintln(a.out, styles.RenderField("Platform", info.Platform))
			return nil
		},
	}
}
