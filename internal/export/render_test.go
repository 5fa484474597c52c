// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/question"
)

var exportedAt = time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

func renderDoc(t *testing.T, r Renderer, qs []question.Question, opts *Options) string {
	t.Helper()
	doc := NewDocument(GroupBy(qs, opts.GroupBy), opts, exportedAt)
	out, err := r.Render(context.Background(), doc)
	require.NoError(t, err)
	return string(out)
}

func unzip(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	files := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		files[f.Name] = string(body)
	}
	return files
}

func sentinelQuestion() question.Question {
	return question.Question{
		ID:        "s",
		Question:  "Sentinel check",
		Round:     "unnamed",
		Subject:   "",
		CreatedAt: day(2024, 1, 2),
	}
}

// =============================================================================
// METADATA
// =============================================================================

func TestMetadataLine_SuppressesPlaceholders(t *testing.T) {
	testCases := []struct {
		name     string
		q        question.Question
		expected string
	}{
		{"all present", question.Question{Round: "hr", Subject: "Go", CreatedAt: day(2024, 1, 2)}, "hr • Go • 1/2/2024"},
		{"unnamed round", sentinelQuestion(), "1/2/2024"},
		{"general subject", question.Question{Round: "hr", Subject: "General"}, "hr"},
		{"nothing", question.Question{Round: "null", Subject: "undefined"}, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, metadataLine(&tc.q, ""))
		})
	}
}

// =============================================================================
// HTML
// =============================================================================

func TestHTMLRenderer_Sentinels(t *testing.T) {
	out := renderDoc(t, NewHTMLRenderer(nil), []question.Question{sentinelQuestion()}, &Options{})
	require.Contains(t, out, `<div class="question-meta">1/2/2024</div>`)
	require.NotContains(t, out, "unnamed")

	out = renderDoc(t, NewHTMLRenderer(nil), []question.Question{{Question: "Q", Round: "general"}}, &Options{})
	require.NotContains(t, out, `class="question-meta"`)
}

func TestHTMLRenderer_EscapesContent(t *testing.T) {
	q := question.Question{
		Question:     "<script>alert(1)</script>",
		Answer:       "use **bold** & <b>",
		Code:         "if a < b {}",
		CodeLanguage: `go"><x`,
	}
	out := renderDoc(t, NewHTMLRenderer(nil), []question.Question{q}, &Options{})

	require.NotContains(t, out, "<script>alert")
	require.Contains(t, out, "&lt;script&gt;alert(1)&lt;/script&gt;")
	require.Contains(t, out, "<strong>bold</strong> &amp; &lt;b&gt;")
	require.Contains(t, out, "if a &lt; b {}")
	require.NotContains(t, out, `go"><x`)
}

func TestHTMLRenderer_Layout(t *testing.T) {
	qs := []question.Question{
		{Question: "First", Round: "hr", Favorite: true, Hot: true},
		{Question: "Second", Round: "technical"},
	}
	opts := &Options{
		GroupBy:   GroupRound,
		Theme:     "dark",
		FontSize:  18,
		Watermark: "DRAFT",
		TOC:       true,
		Header:    Header{Project: "Prep"},
		Footer:    Footer{Text: "confidential"},
	}
	out := renderDoc(t, NewHTMLRenderer(nil), qs, opts)

	require.Contains(t, out, `<body class="dark-theme">`)
	require.Contains(t, out, "--base-font: 18px")
	require.Contains(t, out, `class="watermark" aria-hidden="true">DRAFT</div>`)
	require.Contains(t, out, `<nav class="toc">`)
	require.Contains(t, out, `<a href="#q-2">Second</a>`)
	require.Contains(t, out, `id="q-2"`)
	require.Equal(t, 2, strings.Count(out, `<section class="group">`))
	require.Contains(t, out, "<strong>Prep</strong>")
	require.Contains(t, out, "<p>confidential</p>")

	require.Contains(t, out, "⭐")
	require.Contains(t, out, "🔥")
	require.NotContains(t, out, "📌")

	// TOC precedes the grouped content
	require.Less(t, strings.Index(out, `<nav class="toc">`), strings.Index(out, `<section class="group">`))
}

func TestHTMLRenderer_CardOrder(t *testing.T) {
	qs := []question.Question{{
		Question: "Ordered",
		Answer:   "answer text",
		Code:     "x := 1",
		Tags:     []question.TagRef{question.Bare("go")},
		Round:    "technical",
		Review:   true,
	}}
	out := renderDoc(t, NewHTMLRenderer(nil), qs, &Options{})

	order := []string{
		`class="question-title"`,
		`class="badges"`,
		`class="question-meta"`,
		`class="answer"`,
		`class="code-block"`,
		`<div class="tags">`,
	}
	prev := -1
	for _, marker := range order {
		i := strings.Index(out, marker)
		require.Greater(t, i, prev, "%s out of order", marker)
		prev = i
	}
}

func TestHTMLRenderer_OptionalPartsOff(t *testing.T) {
	out := renderDoc(t, NewHTMLRenderer(nil), []question.Question{{Question: "Q"}}, &Options{})
	require.Contains(t, out, `<body class="light-theme">`)
	require.Contains(t, out, "--base-font: 14px")
	require.NotContains(t, out, `<nav class="toc">`)
	require.NotContains(t, out, `class="watermark"`)
	require.NotContains(t, out, `<section class="group">`)
	require.NotContains(t, out, `class="badges"`)
}

func TestHTMLRenderer_TagColors(t *testing.T) {
	q := question.Question{
		Question: "Q",
		Tags: []question.TagRef{
			question.Bare("plain"),
			question.Styled("styled", "#ff0000"),
			question.Styled("hostile", "red;}body{display:none"),
		},
	}
	out := renderDoc(t, NewHTMLRenderer(nil), []question.Question{q}, &Options{})

	require.Contains(t, out, `style="background: #3b82f6">plain</span>`)
	require.Contains(t, out, `style="background: #ff0000">styled</span>`)
	require.Contains(t, out, `style="background: #f59e0b">hostile</span>`)
	require.NotContains(t, out, "display:none")
}

func TestHTMLRenderer_SyntaxHighlight(t *testing.T) {
	q := question.Question{Question: "Q", Code: "func main() {}", CodeLanguage: "go"}

	plain := renderDoc(t, NewHTMLRenderer(nil), []question.Question{q}, &Options{})
	require.Contains(t, plain, `<pre><code class="language-go">func main() {}</code></pre>`)

	highlighted := renderDoc(t, NewHTMLRenderer(nil), []question.Question{q}, &Options{SyntaxHighlight: true})
	require.NotContains(t, highlighted, `class="language-go"`)
	require.Contains(t, highlighted, "func")
	require.Contains(t, highlighted, "<pre")
}

func TestHTMLRenderer_Images(t *testing.T) {
	q := question.Question{
		Question: "Q",
		Images:   []string{"data:image/png;base64,AAAA", "javascript:alert(1)", "https://example.com/a.png"},
	}
	out := renderDoc(t, NewHTMLRenderer(nil), []question.Question{q}, &Options{})
	require.Contains(t, out, `src="data:image/png;base64,AAAA"`)
	require.Contains(t, out, `src="https://example.com/a.png"`)
	require.NotContains(t, out, "javascript:")
}

func TestPrintableHTML(t *testing.T) {
	out := string(PrintableHTML([]byte("<html><body><p>x</p></body></html>")))
	require.True(t, strings.HasSuffix(out, "</body></html>"))
	require.Less(t, strings.Index(out, "window.print()"), strings.Index(out, "</body>"))

	bare := string(PrintableHTML([]byte("<p>x</p>")))
	require.Contains(t, bare, "window.print()")
}

// =============================================================================
// MARKDOWN
// =============================================================================

func TestMarkdownRenderer(t *testing.T) {
	qs := []question.Question{
		{
			Question:     "What is a goroutine?",
			Answer:       "A *lightweight* thread.",
			Code:         "go work()\n",
			CodeLanguage: "go",
			Notes:        "line one\nline two",
			Tags:         []question.TagRef{question.Bare("go"), question.Styled("concurrency", "#000")},
			Round:        "technical",
			Review:       true,
		},
		sentinelQuestion(),
	}
	out := renderDoc(t, NewMarkdownRenderer(), qs, &Options{GroupBy: GroupRound, Title: "Prep: notes"})

	require.True(t, strings.HasPrefix(out, "---\ntitle: \"Prep: notes\"\n"))
	require.Contains(t, out, "questions: 2\n")
	require.Contains(t, out, "# Prep: notes\n")
	require.Contains(t, out, "## What is a goroutine? 📌\n")
	require.Contains(t, out, "*technical*\n")
	require.Contains(t, out, "**Tags:** go, concurrency\n")
	require.Contains(t, out, "A *lightweight* thread.\n")
	require.Contains(t, out, "```go\ngo work()\n```\n")
	require.Contains(t, out, "> **Notes:** line one\n> line two\n")
	// Front matter close plus one separator per question
	require.Equal(t, 3, strings.Count(out, "\n---\n\n"))

	// Flat output even when grouped
	require.NotContains(t, out, "## technical")
	require.NotContains(t, out, "## Other")

	// Sentinel question
	require.Contains(t, out, "*1/2/2024*\n")
	require.NotContains(t, out, "unnamed")
}

func TestEscapeYAML(t *testing.T) {
	require.Equal(t, "plain", escapeYAML("plain"))
	require.Equal(t, `"a: b"`, escapeYAML("a: b"))
	require.Equal(t, `"line\nbreak"`, escapeYAML("line\nbreak"))
	require.Equal(t, `"back\\slash"`, escapeYAML(`back\slash`))
}

// =============================================================================
// DOCX
// =============================================================================

func TestDOCXRenderer(t *testing.T) {
	qs := []question.Question{
		{
			Question:     "Explain channels",
			Answer:       "- buffered\n- unbuffered\n\n**Blocking** semantics",
			Code:         "ch := make(chan int)\n<-ch",
			CodeLanguage: "go",
			Tags:         []question.TagRef{question.Bare("go"), question.Bare("concurrency")},
			Round:        "technical",
			Favorite:     true,
		},
		{Question: "Why this team?"},
	}
	opts := &Options{
		GroupBy: GroupRound,
		Header:  Header{Project: "Prep", Text: "Q3"},
		Footer:  Footer{Text: "page footer"},
	}
	out := renderDoc(t, NewDOCXRenderer(), qs, opts)

	parts := unzip(t, []byte(out))
	body := parts["word/document.xml"]

	// Group headings
	require.Contains(t, body, ">technical</w:t>")
	require.Contains(t, body, ">Other</w:t>")

	require.Contains(t, body, ">Explain channels</w:t>")
	require.Contains(t, body, ">Answer</w:t>")
	require.Contains(t, body, ">Code (go)</w:t>")
	require.Contains(t, body, `ch := make(chan int)</w:t><w:br/><w:t xml:space="preserve">&lt;-ch`)
	require.Contains(t, body, ">Tags: </w:t>")
	require.Contains(t, body, ">go, concurrency</w:t>")
	require.Equal(t, 1, strings.Count(body, ">Flags: </w:t>"))
	require.Contains(t, body, "⭐ Favorite")
	require.Contains(t, body, `<w:numId w:val="1"/>`)
	require.Equal(t, 2, strings.Count(body, "<w:pBdr>"))

	require.Contains(t, parts["word/header1.xml"], ">Prep</w:t>")
	require.Contains(t, parts["word/header1.xml"], "> — </w:t>")
	require.Contains(t, parts["word/header1.xml"], ">Q3</w:t>")
	require.Contains(t, parts["word/header1.xml"], `<w:jc w:val="right"/>`)
	require.Contains(t, parts["word/footer1.xml"], ">page footer</w:t>")
}

func TestDOCXRenderer_AnswerBlocks(t *testing.T) {
	qs := []question.Question{{
		Question: "Blocks",
		Answer:   "first\n\nsecond\n```js\nlet a;\nlet b;\n```",
	}}
	out := renderDoc(t, NewDOCXRenderer(), qs, &Options{})
	body := unzip(t, []byte(out))["word/document.xml"]

	// The blank line survives as an empty spacing paragraph.
	require.Equal(t, 1, strings.Count(body, "<w:p></w:p>"))
	require.Less(t, strings.Index(body, ">first</w:t>"), strings.Index(body, "<w:p></w:p>"))
	require.Less(t, strings.Index(body, "<w:p></w:p>"), strings.Index(body, ">second</w:t>"))

	// The fence becomes one shaded monospace paragraph with line breaks.
	shaded := `<w:p><w:pPr><w:shd w:val="clear" w:color="auto" w:fill="F3F4F6"/></w:pPr>` +
		`<w:r><w:rPr><w:rFonts w:ascii="Consolas" w:hAnsi="Consolas" w:cs="Consolas"/>`
	require.Equal(t, 1, strings.Count(body, shaded))
	require.Contains(t, body, `let a;</w:t><w:br/><w:t xml:space="preserve">let b;</w:t>`)
	require.NotContains(t, body, "```")
}

func TestDOCXRenderer_Sentinels(t *testing.T) {
	out := renderDoc(t, NewDOCXRenderer(), []question.Question{sentinelQuestion()}, &Options{})
	body := unzip(t, []byte(out))["word/document.xml"]
	require.Contains(t, body, ">1/2/2024</w:t>")
	require.NotContains(t, body, "unnamed")
}

func TestDOCXRenderer_NoTagsOrFlags(t *testing.T) {
	out := renderDoc(t, NewDOCXRenderer(), []question.Question{{Question: "Bare"}}, &Options{})
	body := unzip(t, []byte(out))["word/document.xml"]
	require.NotContains(t, body, ">Tags: </w:t>")
	require.NotContains(t, body, ">Flags: </w:t>")
	require.NotContains(t, body, ">Answer</w:t>")
}

// =============================================================================
// JSON
// =============================================================================

func TestJSONRenderer(t *testing.T) {
	qs := []question.Question{
		{ID: "1", Question: "A", Round: "hr"},
		{ID: "2", Question: "B", Round: "technical"},
	}

	flat := renderDoc(t, NewJSONRenderer(), qs, &Options{})
	var doc struct {
		Count     int                 `json:"count"`
		Questions []question.Question `json:"questions"`
		Groups    []json.RawMessage   `json:"groups"`
	}
	require.NoError(t, json.Unmarshal([]byte(flat), &doc))
	require.Equal(t, 2, doc.Count)
	require.Equal(t, []string{"1", "2"}, ids(doc.Questions))
	require.Empty(t, doc.Groups)

	grouped := renderDoc(t, NewJSONRenderer(), qs, &Options{GroupBy: GroupRound})
	require.Contains(t, grouped, `"group": "hr"`)
	require.Contains(t, grouped, `"group": "technical"`)
}
