// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the sparkexport command-line interface.
//
// # Commands
//
//   - export: filter, transform, sort and render questions to a file or zip
//   - preview: print the HTML preview, page it in the terminal, or copy it
//   - presets: list, show, save and delete named option sets
//   - history: show or clear the last 20 exports
//   - config: show, get and set configuration values
//   - version: print build information
//
// # Option Precedence
//
// Export options are layered, later layers winning:
//   - [defaults] from the config file
//   - the preset named by --preset
//   - flags given on the command line
//
// # Usage
//
//	os.Exit(cli.Execute(ctx, os.Args[1:]))
package cli
