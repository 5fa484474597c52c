// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func readParts(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	parts := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		parts[f.Name] = string(body)
	}
	return parts
}

func TestDocument_Package(t *testing.T) {
	doc := New()
	doc.Title = "Export & more"
	doc.Add(Heading(1, "Title <1>"))
	doc.Add(&Paragraph{
		Shading: "F3F4F6",
		Runs:    []Run{{Text: "line one\nline two", Font: MonoFont}},
	})
	doc.Add(&Paragraph{Bullet: true, Runs: []Run{{Text: "item"}}})
	doc.Add(&Paragraph{BorderBottom: true})

	data, err := doc.Bytes()
	require.NoError(t, err)

	parts := readParts(t, data)
	require.Contains(t, parts, "[Content_Types].xml")
	require.Contains(t, parts, "word/document.xml")
	require.Contains(t, parts, "word/styles.xml")
	require.Contains(t, parts, "word/numbering.xml")
	require.NotContains(t, parts, "word/header1.xml")

	body := parts["word/document.xml"]
	require.Contains(t, body, `<w:pStyle w:val="Heading1"/>`)
	require.Contains(t, body, "Title &lt;1&gt;")
	require.Contains(t, body, `line one</w:t><w:br/><w:t xml:space="preserve">line two`)
	require.Contains(t, body, `<w:numId w:val="1"/>`)
	require.Contains(t, body, `<w:pBdr>`)
	require.Contains(t, parts["docProps/core.xml"], "Export &amp; more")

	for name, content := range parts {
		requireWellFormed(t, name, content)
	}
}

func requireWellFormed(t *testing.T, name, content string) {
	t.Helper()
	dec := xml.NewDecoder(bytes.NewReader([]byte(content)))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return
		}
		require.NoError(t, err, "part %s is not well-formed", name)
	}
}

func TestDocument_HeaderFooter(t *testing.T) {
	doc := New()
	doc.Header = &Paragraph{Align: AlignRight, Runs: []Run{{Text: "Project — notes"}}}
	doc.Footer = &Paragraph{Align: AlignCenter, Runs: []Run{{Text: "page footer"}}}
	doc.Add(Text("body"))

	data, err := doc.Bytes()
	require.NoError(t, err)

	parts := readParts(t, data)
	require.Contains(t, parts["word/header1.xml"], `<w:jc w:val="right"/>`)
	require.Contains(t, parts["word/footer1.xml"], "page footer")
	require.Contains(t, parts["word/document.xml"], `r:id="rIdHeader1"`)
	require.Contains(t, parts["word/_rels/document.xml.rels"], "footer1.xml")
}

func TestHeading_ClampsLevel(t *testing.T) {
	require.Equal(t, "Heading1", Heading(0, "x").Style)
	require.Equal(t, "Heading3", Heading(9, "x").Style)
}
