package processor

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/ZaguanLabs/dialect"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLProcessor extracts and applies translations to HTML content.
type HTMLProcessor struct {
	ignoredTags map[string]bool
}

// NewHTMLProcessor creates a new HTML processor with default ignored tags.
func NewHTMLProcessor() *HTMLProcessor {
	return &HTMLProcessor{
		ignoredTags: dialect.IgnoredTags,
	}
}

// NewHTMLProcessorWithIgnoredTags creates a new HTML processor with custom ignored tags.
func NewHTMLProcessorWithIgnoredTags(tags []string) *HTMLProcessor {
	ignored := make(map[string]bool)
	for _, tag := range tags {
		ignored[strings.ToLower(tag)] = true
	}
	return &HTMLProcessor{
		ignoredTags: ignored,
	}
}

// parsedHTML holds the parsed document.
type parsedHTML struct {
	doc      *goquery.Document
	fragment bool // input had no <html> element; render the body only
}

// Extract parses HTML and extracts translatable text nodes, one per distinct text.
func (p *HTMLProcessor) Extract(content string) (any, []TextNode, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, nil, &dialect.ProcessorError{
			Message:     "failed to parse HTML",
			Cause:       err,
			ContentType: "html",
		}
	}

	var nodes []TextNode
	seenHashes := make(map[string]bool)

	p.walk(doc, func(n *html.Node) {
		trimmed := strings.TrimSpace(n.Data)
		hash := dialect.HashText(trimmed)
		if seenHashes[hash] {
			return
		}
		seenHashes[hash] = true

		node := TextNode{
			ID:       fmt.Sprintf("node-%d", len(nodes)),
			Text:     trimmed,
			Hash:     hash,
			NodeType: "html_text",
			Metadata: map[string]string{},
		}
		if n.Parent != nil {
			node.Metadata["parent_tag"] = n.Parent.Data
		}
		nodes = append(nodes, node)
	})

	parsed := &parsedHTML{
		doc:      doc,
		fragment: !strings.Contains(strings.ToLower(content), "<html"),
	}
	return parsed, nodes, nil
}

// Apply writes results back into the document. Results are keyed by the hash
// of the trimmed node text; surrounding whitespace is preserved. With
// highlight set, each replacement becomes a <span class="highlight"> element.
func (p *HTMLProcessor) Apply(parsed any, nodes []TextNode, results map[string]Result, highlight bool) (string, error) {
	ph, ok := parsed.(*parsedHTML)
	if !ok {
		return "", &dialect.ProcessorError{
			Message:     "invalid parsed content type",
			ContentType: "html",
		}
	}

	var targets []*html.Node
	p.walk(ph.doc, func(n *html.Node) {
		targets = append(targets, n)
	})

	for _, n := range targets {
		result, ok := results[dialect.HashText(strings.TrimSpace(n.Data))]
		if !ok || len(result.Changes) == 0 {
			continue
		}
		leading, trailing := whitespace(n.Data)
		if !highlight {
			n.Data = leading + result.Plain + trailing
			continue
		}
		replaceWithHighlights(n, leading, trailing, result)
	}

	var out string
	var err error
	if ph.fragment {
		out, err = ph.doc.Find("body").Html()
	} else {
		out, err = ph.doc.Html()
	}
	if err != nil {
		return "", &dialect.ProcessorError{
			Message:     "failed to serialize HTML",
			Cause:       err,
			ContentType: "html",
		}
	}
	return out, nil
}

// ContentType returns "html".
func (p *HTMLProcessor) ContentType() string {
	return "html"
}

// walk calls fn for every non-blank text node outside ignored subtrees.
func (p *HTMLProcessor) walk(doc *goquery.Document, fn func(*html.Node)) {
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if p.ignoredTags[strings.ToLower(n.Data)] {
				return
			}
			for _, attr := range n.Attr {
				if attr.Key == "data-no-translate" {
					return
				}
			}
		}

		if n.Type == html.TextNode && strings.TrimSpace(n.Data) != "" {
			fn(n)
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}

	for _, n := range doc.Nodes {
		visit(n)
	}
}

// replaceWithHighlights splits text node n around the result's changes,
// inserting a highlight element for each replacement.
func replaceWithHighlights(n *html.Node, leading, trailing string, result Result) {
	parent := n.Parent
	if parent == nil {
		return
	}

	text := result.Source
	last := 0
	var parts []*html.Node
	for _, c := range result.Changes {
		parts = append(parts, textNode(text[last:c.Start]), highlightNode(c.Replacement))
		last = c.End
	}
	parts = append(parts, textNode(text[last:]))
	parts[0].Data = leading + parts[0].Data
	parts[len(parts)-1].Data += trailing

	for _, part := range parts {
		if part.Type == html.TextNode && part.Data == "" {
			continue
		}
		parent.InsertBefore(part, n)
	}
	parent.RemoveChild(n)
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func highlightNode(s string) *html.Node {
	span := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Span,
		Data:     "span",
		Attr:     []html.Attribute{{Key: "class", Val: dialect.HighlightClass}},
	}
	span.AppendChild(textNode(s))
	return span
}

// whitespace returns the leading and trailing whitespace of s.
func whitespace(s string) (leading, trailing string) {
	trimmedLeft := strings.TrimLeftFunc(s, unicode.IsSpace)
	leading = s[:len(s)-len(trimmedLeft)]
	trailing = trimmedLeft[len(strings.TrimRightFunc(trimmedLeft, unicode.IsSpace)):]
	return leading, trailing
}

// Verify HTMLProcessor implements ContentProcessor
var _ ContentProcessor = (*HTMLProcessor)(nil)
