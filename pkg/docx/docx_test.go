package docx

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
)

func readPart(t *testing.T, data []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("output is not a valid zip: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open %s: %v", name, err)
		}
		defer rc.Close()
		b, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("failed to read %s: %v", name, err)
		}
		return string(b)
	}
	t.Fatalf("part %s missing from package", name)
	return ""
}

func TestBytes_PackageStructure(t *testing.T) {
	b := NewBuilder().
		AddHeading("Acme Proposal").
		AddParagraph("Overall summary text").
		AddBlankLine().
		AddParagraph("- 15 access points")

	data, err := b.Bytes()
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}

	for _, part := range []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml"} {
		readPart(t, data, part)
	}

	doc := readPart(t, data, "word/document.xml")
	if !strings.Contains(doc, "Acme Proposal") {
		t.Fatal("heading text missing from document.xml")
	}
	if !strings.Contains(doc, "<w:b/>") {
		t.Fatal("heading is not bold")
	}
	if !strings.Contains(doc, "- 15 access points") {
		t.Fatal("bullet paragraph missing from document.xml")
	}
}

func TestBytes_OrderPreserved(t *testing.T) {
	b := NewBuilder().
		AddParagraph("first").
		AddParagraph("second").
		AddParagraph("third")

	data, err := b.Bytes()
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}

	doc := readPart(t, data, "word/document.xml")
	first := strings.Index(doc, "first")
	second := strings.Index(doc, "second")
	third := strings.Index(doc, "third")
	if !(first < second && second < third) {
		t.Fatalf("paragraph order not preserved: %d %d %d", first, second, third)
	}
}

func TestDocumentXML_EscapesText(t *testing.T) {
	doc := NewBuilder().AddParagraph(`10 < 15 & "quotes"`).DocumentXML()
	if strings.Contains(doc, `10 < 15`) {
		t.Fatal("text was not XML-escaped")
	}
	if !strings.Contains(doc, "10 &lt; 15 &amp;") {
		t.Fatalf("expected escaped entities, got %s", doc)
	}
}
