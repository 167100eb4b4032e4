package app

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atomicstack/mention-popup/internal/document"
)

// ExportFormat names the serialization written on exit.
type ExportFormat string

const (
	ExportHTML     ExportFormat = "html"
	ExportText     ExportFormat = "text"
	ExportMarkdown ExportFormat = "markdown"
)

// ParseExportFormat validates a format name. Empty selects HTML.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", ExportHTML:
		return ExportHTML, nil
	case ExportText, "txt":
		return ExportText, nil
	case ExportMarkdown, "md":
		return ExportMarkdown, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// Export serializes doc.
func Export(doc *document.Document, format ExportFormat, trigger rune) (string, error) {
	switch format {
	case "", ExportHTML:
		return doc.RenderHTML(trigger), nil
	case ExportText:
		return doc.PlainText(trigger), nil
	case ExportMarkdown:
		return doc.Markdown(trigger)
	}
	return "", fmt.Errorf("unknown export format %q", format)
}

// LoadDocument reads the starting document. HTML files keep their mention
// tokens; anything else is read as plain text, one block per line. An empty
// path yields an empty document.
func LoadDocument(path string, trigger rune) (*document.Document, error) {
	if strings.TrimSpace(path) == "" {
		return document.New(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return document.ReadHTML(f, trigger)
	}
	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return document.New(lines...), nil
}
