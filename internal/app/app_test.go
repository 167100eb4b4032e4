package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/mention-popup/internal/document"
	"github.com/atomicstack/mention-popup/internal/mention"
)

func sampleDocument() *document.Document {
	return document.FromBlocks(document.Block{Inlines: []document.Inline{
		document.Text{Value: "Hey "},
		document.NewMention(mention.New("2", "Smart Owl")),
		document.Text{Value: " "},
	}})
}

func TestParseExportFormat(t *testing.T) {
	cases := map[string]ExportFormat{
		"":         ExportHTML,
		"HTML":     ExportHTML,
		"text":     ExportText,
		"md":       ExportMarkdown,
		"markdown": ExportMarkdown,
	}
	for in, want := range cases {
		got, err := ParseExportFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseExportFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseExportFormat("pdf"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestExportFormats(t *testing.T) {
	doc := sampleDocument()
	html, err := Export(doc, ExportHTML, '@')
	if err != nil {
		t.Fatalf("html export: %v", err)
	}
	if !strings.Contains(html, `data-type="mention"`) || !strings.Contains(html, `data-id="2"`) {
		t.Fatalf("html export missing token: %s", html)
	}
	text, err := Export(doc, ExportText, '@')
	if err != nil || text != "Hey @Smart Owl " {
		t.Fatalf("text export = %q, %v", text, err)
	}
	md, err := Export(doc, ExportMarkdown, '@')
	if err != nil {
		t.Fatalf("markdown export: %v", err)
	}
	if !strings.Contains(md, "@Smart Owl") {
		t.Fatalf("markdown export missing token: %q", md)
	}
	if _, err := Export(doc, ExportFormat("pdf"), '@'); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestLoadDocumentPlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.txt")
	if err := os.WriteFile(path, []byte("first\r\nsecond @sm\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	doc, err := LoadDocument(path, '@')
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := doc.PlainText('@'); got != "first\nsecond @sm" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestLoadDocumentHTMLKeepsTokens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.html")
	if err := os.WriteFile(path, []byte(sampleDocument().RenderHTML('@')), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	doc, err := LoadDocument(path, '@')
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	mentions := doc.Mentions()
	if len(mentions) != 1 || mentions[0].Token != mention.New("2", "Smart Owl") {
		t.Fatalf("unexpected tokens %+v", mentions)
	}
}

func TestLoadDocumentEmptyPath(t *testing.T) {
	doc, err := LoadDocument("", '@')
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Size() != 2 {
		t.Fatalf("expected one empty block, got size %d", doc.Size())
	}
	if _, err := LoadDocument(filepath.Join(t.TempDir(), "missing.txt"), '@'); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
