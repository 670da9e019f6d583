// Package docx writes minimal WordprocessingML (.docx) packages. It covers
// exactly what document assembly needs: bold heading paragraphs and plain
// text paragraphs, zipped into a package that Word, LibreOffice and Google
// Docs all open. The corpus has no docx dependency, so the package is built
// directly on archive/zip.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const documentHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`

const documentFooter = `</w:body></w:document>`

type paragraph struct {
	text string
	bold bool
}

// Builder accumulates paragraphs and renders them into one .docx package
type Builder struct {
	paragraphs []paragraph
}

// NewBuilder creates an empty document builder
func NewBuilder() *Builder {
	return &Builder{}
}

// AddHeading appends a bold paragraph
func (b *Builder) AddHeading(text string) *Builder {
	b.paragraphs = append(b.paragraphs, paragraph{text: text, bold: true})
	return b
}

// AddParagraph appends a plain paragraph
func (b *Builder) AddParagraph(text string) *Builder {
	b.paragraphs = append(b.paragraphs, paragraph{text: text})
	return b
}

// AddBlankLine appends an empty paragraph
func (b *Builder) AddBlankLine() *Builder {
	b.paragraphs = append(b.paragraphs, paragraph{})
	return b
}

// DocumentXML renders the word/document.xml part
func (b *Builder) DocumentXML() string {
	var buf bytes.Buffer
	buf.WriteString(documentHeader)
	for _, p := range b.paragraphs {
		writeParagraph(&buf, p)
	}
	buf.WriteString(documentFooter)
	return buf.String()
}

// Bytes renders the complete .docx package
func (b *Builder) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/document.xml", b.DocumentXML()},
	}

	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", part.name, err)
		}
		if _, err := w.Write([]byte(part.content)); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", part.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize package: %w", err)
	}
	return buf.Bytes(), nil
}

func writeParagraph(buf *bytes.Buffer, p paragraph) {
	buf.WriteString("<w:p>")
	if p.text != "" {
		if p.bold {
			buf.WriteString(`<w:pPr><w:rPr><w:b/></w:rPr></w:pPr><w:r><w:rPr><w:b/></w:rPr>`)
		} else {
			buf.WriteString("<w:r>")
		}
		buf.WriteString(`<w:t xml:space="preserve">`)
		buf.WriteString(escape(p.text))
		buf.WriteString("</w:t></w:r>")
	}
	buf.WriteString("</w:p>")
}

func escape(s string) string {
	var buf bytes.Buffer
	// xml.EscapeText only fails on a failing writer; bytes.Buffer never does
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
