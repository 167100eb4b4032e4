package document

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/atomicstack/mention-popup/internal/mention"
)

// PlainText renders blocks on separate lines with tokens in their fallback
// form.
func (d *Document) PlainText(trigger rune) string {
	lines := make([]string, len(d.Blocks))
	for i, b := range d.Blocks {
		lines[i] = b.Text(func(m Mention) string { return m.Token.Text(trigger) })
	}
	return strings.Join(lines, "\n")
}

// Markdown converts the structured form to Markdown. Tokens are written in
// their plain-text fallback form.
func (d *Document) Markdown(trigger rune) (string, error) {
	conv := md.NewConverter("", true, nil)
	conv.AddRules(md.Rule{
		Filter: []string{"span"},
		Replacement: func(content string, selec *goquery.Selection, opt *md.Options) *string {
			if !mention.Is(selec) {
				return nil
			}
			return md.String(mention.FromSelection(selec, trigger).Text(trigger))
		},
	})
	out, err := conv.ConvertString(d.RenderHTML(trigger))
	if err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return out, nil
}
