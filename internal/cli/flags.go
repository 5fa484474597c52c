// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/export"
	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/question"
	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/storage"
)

// optionFlags binds export options to command-line flags. Only flags the
// user actually set override the preset and config layers.
type optionFlags struct {
	preset string
	opts   export.Options

	format       string
	removeBlocks []string
	omit         map[string]*bool
}

// omittable lists the --no-<field> switches in display order.
var omittable = []string{"answer", "code", "tags", "images", "round", "subject", "date", "flags"}

func (f *optionFlags) register(fs *pflag.FlagSet) {
	o := &f.opts
	fs.StringVar(&f.preset, "preset", "", "start from a saved preset")

	// Filtering
	fs.StringSliceVar(&o.IncludeTags, "tag", nil, "keep questions with any of these tags")
	fs.StringSliceVar(&o.ExcludeTags, "exclude-tag", nil, "drop questions with any of these tags")
	fs.StringSliceVar(&o.IncludeRounds, "round", nil, "keep questions from these rounds")
	fs.StringSliceVar(&o.ExcludeRounds, "exclude-round", nil, "drop questions from these rounds")
	fs.StringVar(&o.SearchText, "search", "", "keep questions containing this text")
	fs.StringSliceVar(&o.SelectedIDs, "id", nil, "export only these question ids")
	fs.IntVar(&o.Limit, "limit", 0, "export at most this many questions")

	// Transformation
	f.omit = make(map[string]*bool, len(omittable))
	for _, name := range omittable {
		f.omit[name] = fs.Bool("no-"+name, false, "leave out "+name)
	}
	fs.StringArrayVar(&o.RemovePatterns, "remove-pattern", nil, "regular expression to strip from answers, code and notes")
	fs.StringArrayVar(&f.removeBlocks, "remove-block", nil, "strip text between START,END markers")

	// Rendering
	fs.StringVarP(&f.format, "format", "f", "", "html, pdf, docx (word), md (markdown) or json")
	fs.StringVar(&o.Title, "title", "", "document title")
	fs.StringVar(&o.Theme, "theme", "", "light or dark")
	fs.IntVar(&o.FontSize, "font-size", 0, "base font size in pixels")
	fs.BoolVar(&o.SyntaxHighlight, "highlight", false, "syntax-highlight code blocks in HTML")
	fs.StringVar(&o.Watermark, "watermark", "", "watermark text")
	fs.BoolVar(&o.TOC, "toc", false, "add a table of contents")
	fs.StringVar(&o.Header.Project, "header-project", "", "project name in the page header")
	fs.StringVar(&o.Header.Text, "header-text", "", "text in the page header")
	fs.StringVar(&o.Footer.Text, "footer", "", "footer text")
	fs.StringVar(&o.DateLayout, "date-layout", "", "Go time layout for question dates")

	// Ordering
	fs.StringVar(&o.GroupBy, "group-by", "", "none, round, tag, subject or difficulty")
	fs.StringVar(&o.SplitBy, "split-by", "", "write one file per group into a zip (same keys as --group-by)")
	fs.StringVar(&o.SortBy, "sort-by", "", "newest, oldest, alphabetical or difficulty")
}

// resolve layers config defaults, the preset and changed flags.
func (f *optionFlags) resolve(ctx context.Context, a *app, fs *pflag.FlagSet) (*export.Options, error) {
	opts := a.cfg.ExportDefaults()

	if f.preset != "" {
		kv, err := a.kv(ctx)
		if err != nil {
			return nil, err
		}
		p, err := storage.NewPresets(kv).Get(ctx, f.preset)
		if err != nil {
			return nil, err
		}
		fillDefaults(p, opts)
		opts = p
	}

	if err := f.apply(opts, fs); err != nil {
		return nil, err
	}
	return opts, nil
}

// apply copies every changed flag onto opts.
func (f *optionFlags) apply(opts *export.Options, fs *pflag.FlagSet) error {
	o := &f.opts
	set := map[string]func(){
		"tag":            func() { opts.IncludeTags = o.IncludeTags },
		"exclude-tag":    func() { opts.ExcludeTags = o.ExcludeTags },
		"round":          func() { opts.IncludeRounds = o.IncludeRounds },
		"exclude-round":  func() { opts.ExcludeRounds = o.ExcludeRounds },
		"search":         func() { opts.SearchText = o.SearchText },
		"id":             func() { opts.SelectedIDs = o.SelectedIDs },
		"limit":          func() { opts.Limit = o.Limit },
		"remove-pattern": func() { opts.RemovePatterns = o.RemovePatterns },
		"format":         func() { opts.Format = export.ParseFormat(f.format) },
		"title":          func() { opts.Title = o.Title },
		"theme":          func() { opts.Theme = strings.ToLower(o.Theme) },
		"font-size":      func() { opts.FontSize = o.FontSize },
		"highlight":      func() { opts.SyntaxHighlight = o.SyntaxHighlight },
		"watermark":      func() { opts.Watermark = o.Watermark },
		"toc":            func() { opts.TOC = o.TOC },
		"header-project": func() { opts.Header.Project = o.Header.Project },
		"header-text":    func() { opts.Header.Text = o.Header.Text },
		"footer":         func() { opts.Footer.Text = o.Footer.Text },
		"date-layout":    func() { opts.DateLayout = o.DateLayout },
		"group-by":       func() { opts.GroupBy = strings.ToLower(o.GroupBy) },
		"split-by":       func() { opts.SplitBy = strings.ToLower(o.SplitBy) },
		"sort-by":        func() { opts.SortBy = strings.ToLower(o.SortBy) },
	}
	for name, fn := range set {
		if fs.Changed(name) {
			fn()
		}
	}

	if fs.Changed("remove-block") {
		blocks, err := parseBlocks(f.removeBlocks)
		if err != nil {
			return err
		}
		opts.RemoveBlocks = blocks
	}

	for _, name := range omittable {
		if !fs.Changed("no-" + name) {
			continue
		}
		include := export.Bool(!*f.omit[name])
		switch name {
		case "answer":
			opts.Include.Answer = include
		case "code":
			opts.Include.Code = include
		case "tags":
			opts.Include.Tags = include
		case "images":
			opts.Include.Images = include
		case "round":
			opts.Include.Round = include
		case "subject":
			opts.Include.Subject = include
		case "date":
			opts.Include.Date = include
		case "flags":
			opts.Include.Flags = include
		}
	}
	return nil
}

// parseBlocks splits each "START,END" pair on its first comma.
func parseBlocks(raw []string) ([]export.Block, error) {
	blocks := make([]export.Block, 0, len(raw))
	for _, r := range raw {
		start, end, ok := strings.Cut(r, ",")
		if !ok || start == "" || end == "" {
			return nil, usageErrorf("--remove-block %q: want START,END", r)
		}
		blocks = append(blocks, export.Block{Start: start, End: end})
	}
	return blocks, nil
}

// fillDefaults sets rendering fields left empty in dst from defaults.
func fillDefaults(dst, defaults *export.Options) {
	if dst.Format == "" {
		dst.Format = defaults.Format
	}
	if dst.Theme == "" {
		dst.Theme = defaults.Theme
	}
	if dst.FontSize == 0 {
		dst.FontSize = defaults.FontSize
	}
	if dst.SortBy == "" {
		dst.SortBy = defaults.SortBy
	}
	if dst.GroupBy == "" {
		dst.GroupBy = defaults.GroupBy
	}
	if dst.DateLayout == "" {
		dst.DateLayout = defaults.DateLayout
	}
}

// =============================================================================
// INPUT
// =============================================================================

// inputFlags locate the question file.
type inputFlags struct {
	path   string
	format string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.path, "input", "i", "", "question file (.json, .yaml), or - for stdin")
	cmd.Flags().StringVar(&f.format, "input-format", "json", "stdin encoding: json or yaml")
	_ = cmd.MarkFlagRequired("input")
}

// load reads the questions named by the flags.
func (f *inputFlags) load(a *app) ([]question.Question, error) {
	if f.path != "-" {
		return question.Load(f.path)
	}
	format := question.Format(strings.ToLower(f.format))
	if format == "yml" {
		format = question.FormatYAML
	}
	if format != question.FormatJSON && format != question.FormatYAML {
		return nil, usageErrorf("--input-format must be json or yaml, got %q", f.format)
	}
	qs, err := question.Decode(a.in, format)
	if err != nil {
		return nil, fmt.Errorf("decode stdin: %w", err)
	}
	return qs, nil
}
