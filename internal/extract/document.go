package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Document wraps a parsed offer page. Extractors work against CSS selectors
// or against the page's visible text as one whitespace-normalized string.
type Document struct {
	doc      *goquery.Document
	fullText string
}

func NewDocument(pageHTML string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, err
	}
	return &Document{doc: doc}, nil
}

// FullText returns the visible text of the whole page with every run of
// whitespace collapsed to a single space. Computed once.
func (d *Document) FullText() string {
	if d.fullText == "" {
		d.fullText = visibleText(d.doc.Selection)
	}
	return d.fullText
}

func (d *Document) find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// visibleText walks text nodes so that text from adjacent elements is
// space-separated instead of glued together.
func visibleText(sel *goquery.Selection) string {
	var sb strings.Builder
	for _, node := range sel.Nodes {
		collectText(node, &sb)
	}
	return normalizeWhitespace(sb.String())
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteByte(' ')
		return
	}
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// findTextNode returns the first text node matching pattern, whitespace
// normalized. Used by fallback extractors that target loose text rather than
// a stable selector.
func findTextNode(sel *goquery.Selection, pattern *regexp.Regexp) string {
	var found string
	var walk func(n *html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.TextNode && pattern.MatchString(n.Data) {
			found = normalizeWhitespace(n.Data)
			return true
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return false
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}
	for _, node := range sel.Nodes {
		if walk(node) {
			break
		}
	}
	return found
}
