// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export turns interview question collections into documents.
//
// An export runs five stages: Filter, Transform, Sort/Group, Render and
// Deliver. Each stage works on copies; the caller's questions are never
// modified.
//
// # Key Types
//
//   - Options: Everything one export can be configured with
//   - Exporter: Runs the pipeline (Run) or renders a preview (Preview)
//   - Renderer: Format-specific document builder
//   - Provider: Lazily constructs renderers by Format
//   - Sink: Destination for finished artifacts
//
// # Supported Formats
//
//   - HTML: Self-contained page with embedded CSS
//   - PDF: HTML printed through headless Chrome, with a print-page fallback
//   - DOCX: Word document
//   - Markdown: Flat Markdown with front matter
//   - JSON: Re-importable question list
//
// # Usage
//
//	exp := export.New(
//	    export.WithSink(export.NewDirSink("exports", true)),
//	    export.WithHistory(history),
//	)
//	res, err := exp.Run(ctx, questions, &export.Options{
//	    Format:  export.FormatDOCX,
//	    GroupBy: export.GroupRound,
//	    SortBy:  export.SortNewest,
//	})
//
// Setting SplitBy produces one document per group, zipped together.
package export
