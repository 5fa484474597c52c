// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides terminal styling for sparkexport command output.
//
// Colors use Lip Gloss AdaptiveColor so they read on light and dark
// terminals. Styling is disabled when stdout is not a TTY or NO_COLOR is
// set, so piped output stays plain.
//
// # Usage
//
//	fmt.Println(styles.Render(styles.Success, "exported"))
//
//	t := &styles.Table{Headers: []string{"When", "Format"}}
//	t.Rows = append(t.Rows, []string{"2024-05-06", "pdf"})
//	fmt.Print(t.Render())
package styles
