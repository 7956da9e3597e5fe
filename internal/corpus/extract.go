package corpus

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Page is the text extracted from one HTML document.
type Page struct {
	Title string // trimmed <title> text, empty when the page has none
	Text  string // every visible text node, title included, space separated
}

// Extract parses an HTML document and returns its title and text.
// Script and style contents are skipped.
func Extract(r io.Reader) (Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Page{}, err
	}

	var page Page
	var text strings.Builder
	var walk func(n *html.Node, inTitle bool)
	walk = func(n *html.Node, inTitle bool) {
		switch n.Type {
		case html.ElementNode:
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript:
				return
			case atom.Title:
				inTitle = true
			}
		case html.TextNode:
			data := strings.TrimSpace(n.Data)
			if data == "" {
				break
			}
			if inTitle && page.Title == "" {
				page.Title = strings.Join(strings.Fields(data), " ")
			}
			if text.Len() > 0 {
				text.WriteByte(' ')
			}
			text.WriteString(data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inTitle)
		}
	}
	walk(doc, false)

	page.Text = text.String()
	return page, nil
}
