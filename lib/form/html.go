package form

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseHTML parses an HTML document (or fragment) and returns its input,
// select and textarea elements in document order.
//
// Select options report their trimmed text content; textareas report their
// raw text content.
func ParseHTML(r io.Reader) ([]Element, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("form: parse html: %w", err)
	}

	var elements []Element
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Input:
				elements = append(elements, Element{
					TagName: n.Data,
					Type:    attr(n, "type"),
					Name:    attr(n, "name"),
					Value:   attr(n, "value"),
					Checked: hasAttr(n, "checked"),
				})
				return
			case atom.Select:
				elements = append(elements, Element{
					TagName:  n.Data,
					Name:     attr(n, "name"),
					Multiple: hasAttr(n, "multiple"),
					Options:  options(n),
				})
				return
			case atom.Textarea:
				elements = append(elements, Element{
					TagName: n.Data,
					Name:    attr(n, "name"),
					Text:    textContent(n),
				})
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)

	return elements, nil
}

func options(sel *html.Node) []Option {
	var opts []Option
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Option {
			opts = append(opts, Option{
				Selected: hasAttr(n, "selected"),
				Text:     strings.TrimSpace(textContent(n)),
			})
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(sel)
	return opts
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
