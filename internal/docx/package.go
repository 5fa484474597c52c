// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"
)

const (
	nsW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
)

// =============================================================================
// PACKAGE LAYOUT
// =============================================================================

type part struct {
	name string
	body string
}

func writePackage(w io.Writer, d *Document) error {
	parts := []part{
		{"[Content_Types].xml", contentTypes(d)},
		{"_rels/.rels", rootRels},
		{"docProps/core.xml", coreProps(d)},
		{"word/_rels/document.xml.rels", documentRels(d)},
		{"word/document.xml", documentXML(d)},
		{"word/styles.xml", stylesXML},
		{"word/numbering.xml", numberingXML},
	}
	if d.Header != nil {
		parts = append(parts, part{"word/header1.xml", headerFooterXML("hdr", d.Header)})
	}
	if d.Footer != nil {
		parts = append(parts, part{"word/footer1.xml", headerFooterXML("ftr", d.Footer)})
	}

	zw := zip.NewWriter(w)
	for _, p := range parts {
		f, err := zw.CreateHeader(&zip.FileHeader{
			Name:     p.name,
			Method:   zip.Deflate,
			Modified: d.Created,
		})
		if err != nil {
			return fmt.Errorf("create %s: %w", p.name, err)
		}
		if _, err := io.WriteString(f, p.body); err != nil {
			return fmt.Errorf("write %s: %w", p.name, err)
		}
	}
	return zw.Close()
}

func contentTypes(d *Document) string {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	sb.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	sb.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	sb.WriteString(`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>`)
	sb.WriteString(`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>`)
	sb.WriteString(`<Override PartName="/word/numbering.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"/>`)
	sb.WriteString(`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>`)
	if d.Header != nil {
		sb.WriteString(`<Override PartName="/word/header1.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.header+xml"/>`)
	}
	if d.Footer != nil {
		sb.WriteString(`<Override PartName="/word/footer1.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.footer+xml"/>`)
	}
	sb.WriteString(`</Types>`)
	return sb.String()
}

const rootRels = xmlHeader +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>` +
	`</Relationships>`

func documentRels(d *Document) string {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	sb.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>`)
	sb.WriteString(`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering" Target="numbering.xml"/>`)
	if d.Header != nil {
		sb.WriteString(`<Relationship Id="rIdHeader1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/header" Target="header1.xml"/>`)
	}
	if d.Footer != nil {
		sb.WriteString(`<Relationship Id="rIdFooter1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer" Target="footer1.xml"/>`)
	}
	sb.WriteString(`</Relationships>`)
	return sb.String()
}

func coreProps(d *Document) string {
	created := d.Created
	if created.IsZero() {
		created = time.Now()
	}
	return xmlHeader +
		`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" ` +
		`xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" ` +
		`xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` +
		`<dc:title>` + escape(d.Title) + `</dc:title>` +
		`<dc:creator>sparkexport</dc:creator>` +
		`<dcterms:created xsi:type="dcterms:W3CDTF">` + created.UTC().Format(time.RFC3339) + `</dcterms:created>` +
		`</cp:coreProperties>`
}

// =============================================================================
// BODY
// =============================================================================

func documentXML(d *Document) string {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(`<w:document xmlns:w="` + nsW + `" xmlns:r="` + nsR + `"><w:body>`)
	for _, p := range d.body {
		writeParagraph(&sb, p)
	}

	// A4 portrait, one inch margins.
	sb.WriteString(`<w:sectPr>`)
	if d.Header != nil {
		sb.WriteString(`<w:headerReference w:type="default" r:id="rIdHeader1"/>`)
	}
	if d.Footer != nil {
		sb.WriteString(`<w:footerReference w:type="default" r:id="rIdFooter1"/>`)
	}
	sb.WriteString(`<w:pgSz w:w="11906" w:h="16838"/>`)
	sb.WriteString(`<w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="720" w:footer="720" w:gutter="0"/>`)
	sb.WriteString(`</w:sectPr></w:body></w:document>`)
	return sb.String()
}

func headerFooterXML(root string, p *Paragraph) string {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(`<w:` + root + ` xmlns:w="` + nsW + `" xmlns:r="` + nsR + `">`)
	writeParagraph(&sb, p)
	sb.WriteString(`</w:` + root + `>`)
	return sb.String()
}

func writeParagraph(sb *strings.Builder, p *Paragraph) {
	sb.WriteString(`<w:p>`)

	var ppr strings.Builder
	if p.Style != "" {
		ppr.WriteString(`<w:pStyle w:val="` + escape(p.Style) + `"/>`)
	}
	if p.Bullet {
		ppr.WriteString(`<w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr>`)
	}
	if p.BorderBottom {
		ppr.WriteString(`<w:pBdr><w:bottom w:val="single" w:sz="6" w:space="4" w:color="D1D5DB"/></w:pBdr>`)
	}
	if p.Shading != "" {
		ppr.WriteString(`<w:shd w:val="clear" w:color="auto" w:fill="` + escape(p.Shading) + `"/>`)
	}
	if p.SpacingAfter > 0 {
		ppr.WriteString(fmt.Sprintf(`<w:spacing w:after="%d"/>`, p.SpacingAfter*20))
	}
	if p.Align != "" {
		ppr.WriteString(`<w:jc w:val="` + escape(p.Align) + `"/>`)
	}
	if ppr.Len() > 0 {
		sb.WriteString(`<w:pPr>` + ppr.String() + `</w:pPr>`)
	}

	for _, r := range p.Runs {
		writeRun(sb, r)
	}
	sb.WriteString(`</w:p>`)
}

func writeRun(sb *strings.Builder, r Run) {
	sb.WriteString(`<w:r>`)

	var rpr strings.Builder
	if r.Font != "" {
		f := escape(r.Font)
		rpr.WriteString(`<w:rFonts w:ascii="` + f + `" w:hAnsi="` + f + `" w:cs="` + f + `"/>`)
	}
	if r.Bold {
		rpr.WriteString(`<w:b/>`)
	}
	if r.Italic {
		rpr.WriteString(`<w:i/>`)
	}
	if r.Color != "" {
		rpr.WriteString(`<w:color w:val="` + escape(r.Color) + `"/>`)
	}
	if r.Size > 0 {
		rpr.WriteString(fmt.Sprintf(`<w:sz w:val="%d"/>`, r.Size*2))
	}
	if r.Shading != "" {
		rpr.WriteString(`<w:shd w:val="clear" w:color="auto" w:fill="` + escape(r.Shading) + `"/>`)
	}
	if rpr.Len() > 0 {
		sb.WriteString(`<w:rPr>` + rpr.String() + `</w:rPr>`)
	}

	for i, line := range strings.Split(r.Text, "\n") {
		if i > 0 {
			sb.WriteString(`<w:br/>`)
		}
		sb.WriteString(`<w:t xml:space="preserve">` + escape(line) + `</w:t>`)
	}
	sb.WriteString(`</w:r>`)
}

func escape(s string) string {
	var sb strings.Builder
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}

// =============================================================================
// STATIC PARTS
// =============================================================================

const stylesXML = xmlHeader +
	`<w:styles xmlns:w="` + nsW + `">` +
	`<w:docDefaults><w:rPrDefault><w:rPr><w:rFonts w:ascii="Calibri" w:hAnsi="Calibri" w:cs="Calibri"/><w:sz w:val="22"/></w:rPr></w:rPrDefault>` +
	`<w:pPrDefault><w:pPr><w:spacing w:after="120" w:line="276" w:lineRule="auto"/></w:pPr></w:pPrDefault></w:docDefaults>` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/>` +
	`<w:pPr><w:keepNext/><w:spacing w:before="240" w:after="120"/><w:outlineLvl w:val="0"/></w:pPr><w:rPr><w:b/><w:sz w:val="32"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/>` +
	`<w:pPr><w:keepNext/><w:spacing w:before="200" w:after="100"/><w:outlineLvl w:val="1"/></w:pPr><w:rPr><w:b/><w:sz w:val="28"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading3"><w:name w:val="heading 3"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/>` +
	`<w:pPr><w:keepNext/><w:spacing w:before="160" w:after="80"/><w:outlineLvl w:val="2"/></w:pPr><w:rPr><w:b/><w:sz w:val="24"/></w:rPr></w:style>` +
	`</w:styles>`

const numberingXML = xmlHeader +
	`<w:numbering xmlns:w="` + nsW + `">` +
	`<w:abstractNum w:abstractNumId="0"><w:multiLevelType w:val="singleLevel"/>` +
	`<w:lvl w:ilvl="0"><w:start w:val="1"/><w:numFmt w:val="bullet"/><w:lvlText w:val="•"/><w:lvlJc w:val="left"/>` +
	`<w:pPr><w:ind w:left="720" w:hanging="360"/></w:pPr></w:lvl></w:abstractNum>` +
	`<w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num>` +
	`</w:numbering>`
