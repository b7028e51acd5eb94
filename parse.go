package htmlcleaner

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// IsFragment reports whether markup looks like a fragment rather than a
// full document. Only the trimmed, lowercased prefix is inspected:
// anything not starting with <!doctype or <html is a fragment. A
// literal "<html" later in the input does not affect the result.
func IsFragment(markup string) bool {
	s := strings.ToLower(strings.TrimSpace(markup))
	return !strings.HasPrefix(s, "<!doctype") && !strings.HasPrefix(s, "<html")
}

// parse builds a mutable tree from markup. Fragments are parsed in a
// synthetic body context and reparented under a fresh document node so
// the rest of the pipeline sees a single tree shape; this also keeps
// leading comments in place, which html.Parse would hoist above the
// root element and out of body-relative output. The parser recovers
// from malformed markup on its own and does not fail on string input.
func parse(markup string, fragment bool) (*html.Node, error) {
	if !fragment {
		return html.Parse(strings.NewReader(markup))
	}
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), body)
	if err != nil {
		return nil, err
	}
	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, nil
}

// serialize renders the cleaned tree. Fragment mode emits only the
// container's children, with no document wrapper. Document mode
// reconstructs a doctype line from the parsed doctype name, if one was
// present, followed by the root element's outer markup.
func serialize(root *html.Node, fragment bool) (string, error) {
	var buf bytes.Buffer
	if fragment {
		for c := root.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
		return buf.String(), nil
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.DoctypeNode:
			buf.WriteString("<!DOCTYPE ")
			buf.WriteString(c.Data)
			buf.WriteString(">\n")
		case html.ElementNode:
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
	}
	return buf.String(), nil
}

// collectElements snapshots every element in document order.
func collectElements(root *html.Node) []*html.Node {
	var elems []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			elems = append(elems, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return elems
}
