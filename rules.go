package htmlcleaner

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// presentationalAttrs are removed unconditionally: inline styles plus
// the legacy pre-CSS styling attributes.
var presentationalAttrs = map[string]bool{
	"style":       true,
	"bgcolor":     true,
	"color":       true,
	"face":        true,
	"size":        true,
	"align":       true,
	"valign":      true,
	"width":       true,
	"height":      true,
	"border":      true,
	"cellpadding": true,
	"cellspacing": true,
}

// eventAttrRegexp matches event-handler attribute names (onclick,
// onmouseover, ...). Names are lowercased before matching.
var eventAttrRegexp = regexp.MustCompile(`^on[a-z]+$`)

// dropAttr decides whether a single attribute is removed from its
// element under opts. Attribute names compare case-insensitively;
// values are opaque except for the empty-class rule.
func dropAttr(name, val string, opts Options) bool {
	name = strings.ToLower(name)
	switch {
	case presentationalAttrs[name]:
		return true
	case eventAttrRegexp.MatchString(name):
		return true
	case strings.HasPrefix(name, "data-"):
		return opts.RemoveDataAttrs
	case name == "class":
		return opts.RemoveClasses || strings.TrimSpace(val) == ""
	}
	return false
}

// cleanAttrs filters n's attributes in place.
func cleanAttrs(n *html.Node, opts Options) {
	if len(n.Attr) == 0 {
		return
	}
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if !dropAttr(a.Key, a.Val, opts) {
			kept = append(kept, a)
		}
	}
	n.Attr = kept
}

// stripElements removes style and script elements, stylesheet links,
// and (optionally) comments from the whole tree. Targets are collected
// in one walk and detached afterwards, so the walk never iterates a
// mutating child list. Returns the number of removed nodes.
func stripElements(root *html.Node, removeComments bool) int {
	var doomed []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			switch n.Data {
			case "style", "script":
				doomed = append(doomed, n)
				return
			case "link":
				if strings.EqualFold(attrVal(n, "rel"), "stylesheet") {
					doomed = append(doomed, n)
					return
				}
			}
		case html.CommentNode:
			if removeComments {
				doomed = append(doomed, n)
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	for _, n := range doomed {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}
	return len(doomed)
}

// attrVal returns the value of the named attribute on n, or "".
func attrVal(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val
		}
	}
	return ""
}
