// Package htmlutil provides read-only traversal helpers over parsed html
// trees. All lookups treat absence as a nil return, never an error, and
// every linear walk takes a hop bound so a malformed document can never
// send a scan off the rails.
package htmlutil

import (
	"bytes"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var innerWhitespace = regexp.MustCompile(`\s+`)

// GetText concatenates the text of every descendant text node verbatim.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// CollapsedText is GetText with runs of whitespace squashed to single
// spaces and the result trimmed. Adjacent text nodes are joined with a
// space so "Room</div><div>4605" does not fuse into one token.
func CollapsedText(node *html.Node) string {
	var buffer bytes.Buffer
	collapsedTextRecursive(node, &buffer)
	text := innerWhitespace.ReplaceAllString(buffer.String(), " ")
	return strings.Trim(text, " \t\n")
}

func collapsedTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		buffer.WriteString(" ")
		return
	}
	child := node.FirstChild
	for child != nil {
		collapsedTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// HasClass reports whether an element node carries the given class in its
// space-separated class attribute.
func HasClass(node *html.Node, class string) bool {
	if node == nil || node.Type != html.ElementNode {
		return false
	}
	for _, attr := range node.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

// IsElement reports whether the node is an element with the given tag name.
func IsElement(node *html.Node, tag string) bool {
	return node != nil && node.Type == html.ElementNode && node.Data == tag
}

// FindAllText returns every text node under root whose contents match the
// pattern, in document order. The result is a one-shot snapshot; the tree
// is never mutated afterwards.
func FindAllText(root *html.Node, pattern *regexp.Regexp) []*html.Node {
	var out []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n == nil {
			return
		}
		if n.Type == html.TextNode && pattern.MatchString(n.Data) {
			out = append(out, n)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)
	return out
}

// prevNode returns the node immediately before n in document order: the
// deepest last descendant of the previous sibling, or the parent when
// there is no previous sibling.
func prevNode(n *html.Node) *html.Node {
	if n.PrevSibling == nil {
		return n.Parent
	}
	n = n.PrevSibling
	for n.LastChild != nil {
		n = n.LastChild
	}
	return n
}

// nextNode returns the node immediately after n in document order.
func nextNode(n *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for n != nil {
		if n.NextSibling != nil {
			return n.NextSibling
		}
		n = n.Parent
	}
	return nil
}

// FindPreceding walks backward in document order from start, visiting
// element nodes only, and returns the first one satisfying pred. At most
// maxHops elements are examined; maxHops <= 0 runs the walk to the
// beginning of the document. Returns nil when nothing in range matches.
func FindPreceding(start *html.Node, pred func(*html.Node) bool, maxHops int) *html.Node {
	if start == nil {
		return nil
	}
	hops := 0
	for n := prevNode(start); n != nil; n = prevNode(n) {
		if n.Type != html.ElementNode {
			continue
		}
		if pred(n) {
			return n
		}
		hops++
		if maxHops > 0 && hops >= maxHops {
			return nil
		}
	}
	return nil
}

// FindFollowing walks forward in document order from start, visiting
// element nodes only, and returns the first one satisfying pred. If stop
// is non-nil and matches first, the walk ends early with nil; this keeps
// a title search from leaking into the next course. At most maxHops
// elements are examined; maxHops <= 0 means unbounded.
func FindFollowing(start *html.Node, pred, stop func(*html.Node) bool, maxHops int) *html.Node {
	if start == nil {
		return nil
	}
	hops := 0
	for n := nextNode(start); n != nil; n = nextNode(n) {
		if n.Type != html.ElementNode {
			continue
		}
		if stop != nil && stop(n) {
			return nil
		}
		if pred(n) {
			return n
		}
		hops++
		if maxHops > 0 && hops >= maxHops {
			return nil
		}
	}
	return nil
}

// AncestorWithClass returns the nearest strict ancestor of start carrying
// any of the given classes, or nil.
func AncestorWithClass(start *html.Node, classes ...string) *html.Node {
	if start == nil {
		return nil
	}
	for n := start.Parent; n != nil; n = n.Parent {
		for _, class := range classes {
			if HasClass(n, class) {
				return n
			}
		}
	}
	return nil
}
