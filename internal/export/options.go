// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"strings"

	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/question"
)

// =============================================================================
// FORMATS AND KEYS
// =============================================================================

// Format is an output document format.
type Format string

const (
	FormatHTML     Format = "html"
	FormatPDF      Format = "pdf"
	FormatDOCX     Format = "docx"
	FormatMarkdown Format = "md"
	FormatJSON     Format = "json"
)

// ParseFormat normalizes a user supplied format name. Unknown names map to
// HTML.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pdf":
		return FormatPDF
	case "docx", "word":
		return FormatDOCX
	case "md", "markdown":
		return FormatMarkdown
	case "json":
		return FormatJSON
	default:
		return FormatHTML
	}
}

// Grouping keys accepted by GroupBy and SplitBy.
const (
	GroupNone       = "none"
	GroupRound      = "round"
	GroupTag        = "tag"
	GroupSubject    = "subject"
	GroupDifficulty = "difficulty"
)

// Sort orders accepted by SortBy.
const (
	SortNewest       = "newest"
	SortOldest       = "oldest"
	SortAlphabetical = "alphabetical"
	SortDifficulty   = "difficulty"
)

// Themes accepted by Theme.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// DefaultFontSize is the HTML base font size in pixels.
const DefaultFontSize = 14

// DefaultTitle heads every rendered document.
const DefaultTitle = "Interview Questions Export"

// =============================================================================
// OPTIONS
// =============================================================================

// Include selects which optional question fields survive the export. A nil
// flag means the field is included.
type Include struct {
	Answer  *bool `json:"answer,omitempty" yaml:"answer,omitempty"`
	Code    *bool `json:"code,omitempty" yaml:"code,omitempty"`
	Tags    *bool `json:"tags,omitempty" yaml:"tags,omitempty"`
	Images  *bool `json:"images,omitempty" yaml:"images,omitempty"`
	Round   *bool `json:"round,omitempty" yaml:"round,omitempty"`
	Subject *bool `json:"subject,omitempty" yaml:"subject,omitempty"`
	Date    *bool `json:"date,omitempty" yaml:"date,omitempty"`
	Flags   *bool `json:"flags,omitempty" yaml:"flags,omitempty"`
}

// Omitted returns the fields switched off by inc.
func (inc Include) Omitted() question.Field {
	var f question.Field
	off := func(b *bool, field question.Field) {
		if b != nil && !*b {
			f |= field
		}
	}
	off(inc.Answer, question.FieldAnswer)
	off(inc.Code, question.FieldCode)
	off(inc.Tags, question.FieldTags)
	off(inc.Images, question.FieldImages)
	off(inc.Round, question.FieldRound)
	off(inc.Subject, question.FieldSubject)
	off(inc.Date, question.FieldDate)
	off(inc.Flags, question.FieldFlags)
	return f
}

// Bool returns a pointer to b, for building Include values.
func Bool(b bool) *bool {
	return &b
}

// Block is a pair of literal delimiters; everything from Start through the
// next End is removed.
type Block struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// Header is the page header used by paged formats.
type Header struct {
	Project string `json:"project,omitempty" yaml:"project,omitempty"`
	Text    string `json:"text,omitempty" yaml:"text,omitempty"`
}

// IsZero reports whether the header has no content.
func (h Header) IsZero() bool {
	return h.Project == "" && h.Text == ""
}

// Footer is the page footer used by paged formats.
type Footer struct {
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
}

// Options configures one export. Every field is optional; zero values mean
// no restriction and default rendering. Options serialize with the same key
// names the web client stores in presets.
type Options struct {
	// Filtering
	SelectedIDs   []string `json:"selectedIds,omitempty" yaml:"selectedIds,omitempty"`
	IncludeTags   []string `json:"includeTags,omitempty" yaml:"includeTags,omitempty"`
	ExcludeTags   []string `json:"excludeTags,omitempty" yaml:"excludeTags,omitempty"`
	IncludeRounds []string `json:"includeRounds,omitempty" yaml:"includeRounds,omitempty"`
	ExcludeRounds []string `json:"excludeRounds,omitempty" yaml:"excludeRounds,omitempty"`
	SearchText    string   `json:"searchText,omitempty" yaml:"searchText,omitempty"`
	Limit         int      `json:"limit,omitempty" yaml:"limit,omitempty"`

	// Transformation
	Include        Include  `json:"include" yaml:"include"`
	RemovePatterns []string `json:"removePatterns,omitempty" yaml:"removePatterns,omitempty"`
	RemoveBlocks   []Block  `json:"removeBlocks,omitempty" yaml:"removeBlocks,omitempty"`

	// Rendering
	Format          Format `json:"format,omitempty" yaml:"format,omitempty"`
	Title           string `json:"title,omitempty" yaml:"title,omitempty"`
	Theme           string `json:"theme,omitempty" yaml:"theme,omitempty"`
	FontSize        int    `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	SyntaxHighlight bool   `json:"syntaxHighlight,omitempty" yaml:"syntaxHighlight,omitempty"`
	Header          Header `json:"header" yaml:"header"`
	Footer          Footer `json:"footer" yaml:"footer"`
	Watermark       string `json:"watermark,omitempty" yaml:"watermark,omitempty"`
	TOC             bool   `json:"toc,omitempty" yaml:"toc,omitempty"`
	DateLayout      string `json:"dateLayout,omitempty" yaml:"dateLayout,omitempty"`

	// Ordering
	GroupBy string `json:"groupBy,omitempty" yaml:"groupBy,omitempty"`
	SplitBy string `json:"splitBy,omitempty" yaml:"splitBy,omitempty"`
	SortBy  string `json:"sortBy,omitempty" yaml:"sortBy,omitempty"`
}

// Criteria extracts the filter criteria.
func (o *Options) Criteria() Criteria {
	return Criteria{
		SelectedIDs:   o.SelectedIDs,
		IncludeTags:   o.IncludeTags,
		ExcludeTags:   o.ExcludeTags,
		IncludeRounds: o.IncludeRounds,
		ExcludeRounds: o.ExcludeRounds,
		SearchText:    o.SearchText,
	}
}

// TransformOptions extracts the per-question transform settings.
func (o *Options) TransformOptions() TransformOptions {
	return TransformOptions{
		Include:        o.Include,
		RemovePatterns: o.RemovePatterns,
		RemoveBlocks:   o.RemoveBlocks,
	}
}

// title returns the document title.
func (o *Options) title() string {
	if o.Title != "" {
		return o.Title
	}
	return DefaultTitle
}

// fontSize returns the HTML base font size.
func (o *Options) fontSize() int {
	if o.FontSize > 0 {
		return o.FontSize
	}
	return DefaultFontSize
}

// theme returns light unless dark was requested.
func (o *Options) theme() string {
	if strings.EqualFold(o.Theme, ThemeDark) {
		return ThemeDark
	}
	return ThemeLight
}

// isGroupKey reports whether key names a real grouping.
func isGroupKey(key string) bool {
	switch key {
	case GroupRound, GroupTag, GroupSubject, GroupDifficulty:
		return true
	default:
		return false
	}
}
