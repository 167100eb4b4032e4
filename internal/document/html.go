package document

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/atomicstack/mention-popup/internal/logging"
	"github.com/atomicstack/mention-popup/internal/mention"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RenderHTML writes the structured form: one <p> per block, mention tokens as
// marked spans.
func (d *Document) RenderHTML(trigger rune) string {
	var b strings.Builder
	for _, block := range d.Blocks {
		p := &html.Node{Type: html.ElementNode, DataAtom: atom.P, Data: "p"}
		for _, in := range block.Inlines {
			switch v := in.(type) {
			case Text:
				p.AppendChild(&html.Node{Type: html.TextNode, Data: v.Value})
			case Mention:
				p.AppendChild(v.Token.Node(trigger))
			}
		}
		if err := html.Render(&b, p); err != nil {
			// strings.Builder never fails; keep going for the remaining blocks
			continue
		}
	}
	return b.String()
}

// ReadHTML reads the structured form back. Unknown markup contributes its
// text; malformed tokens are kept with whatever attributes they carry.
func ReadHTML(r io.Reader, trigger rune) (*Document, error) {
	root, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	p := &parser{trigger: trigger}
	p.walkTop(root.Find("body"))
	p.flush(false)
	return FromBlocks(p.blocks...), nil
}

type parser struct {
	trigger rune
	blocks  []Block
	current []Inline
	open    bool
}

var blockTags = map[string]struct{}{
	"p": {}, "div": {}, "li": {}, "blockquote": {}, "pre": {},
	"h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
}

const nestedBlockSelector = "p,div,li,blockquote,pre,h1,h2,h3,h4,h5,h6,ul,ol"

func (p *parser) flush(force bool) {
	if !p.open && !force {
		return
	}
	p.blocks = append(p.blocks, Block{Inlines: normalize(p.current)})
	p.current = nil
	p.open = false
}

func (p *parser) walkTop(sel *goquery.Selection) {
	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		node := s.Get(0)
		if node.Type == html.ElementNode {
			if _, ok := blockTags[node.Data]; ok {
				p.walkBlock(s)
				return
			}
			if node.Data == "ul" || node.Data == "ol" {
				p.walkTop(s)
				return
			}
		}
		if node.Type == html.TextNode && strings.TrimSpace(node.Data) == "" {
			return
		}
		p.walkNode(s)
	})
}

// walkBlock turns s into one block, or into several when s wraps other
// block elements. An element that produced no block at all still yields an
// empty one.
func (p *parser) walkBlock(s *goquery.Selection) {
	p.flush(false)
	before := len(p.blocks)
	if s.ChildrenFiltered(nestedBlockSelector).Length() > 0 {
		p.walkTop(s)
	} else {
		p.walkInline(s)
	}
	p.flush(len(p.blocks) == before)
}

func (p *parser) walkInline(sel *goquery.Selection) {
	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		p.walkNode(s)
	})
}

func (p *parser) walkNode(s *goquery.Selection) {
	node := s.Get(0)
	switch node.Type {
	case html.TextNode:
		p.current = append(p.current, Text{Value: node.Data})
		p.open = true
	case html.ElementNode:
		switch {
		case mention.Is(s):
			tok := mention.FromSelection(s, p.trigger)
			if !tok.Valid() {
				logging.Warn("malformed mention token", "id", tok.ID, "label", tok.Label)
			}
			p.current = append(p.current, NewMention(tok))
			p.open = true
		case node.Data == "br":
			p.flush(true)
			p.open = true
		default:
			p.walkInline(s)
		}
	}
}
