package apt

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Node is one element of a parsed proposal document. Only element
// structure and character data are kept; comments and processing
// instructions are dropped.
type Node struct {
	Name     xml.Name
	Attr     []xml.Attr
	Text     string
	Children []*Node
}

// parseTree reads a complete XML document into a Node tree.
func parseTree(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)

	var (
		root  *Node
		stack []*Node
		text  []*strings.Builder
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Name: t.Name, Attr: t.Copy().Attr}
			if len(stack) == 0 {
				if root != nil {
					line, _ := dec.InputPos()
					return nil, fmt.Errorf("line %d: second root element <%s>", line, t.Name.Local)
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)
			text = append(text, &strings.Builder{})

		case xml.EndElement:
			top := len(stack) - 1
			stack[top].Text = text[top].String()
			stack = stack[:top]
			text = text[:top]

		case xml.CharData:
			if len(text) > 0 {
				text[len(text)-1].Write(t)
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("document has no root element")
	}
	return root, nil
}

// Child returns the first direct child with the given namespace and local name.
func (n *Node) Child(space, local string) *Node {
	for _, c := range n.Children {
		if c.Name.Space == space && c.Name.Local == local {
			return c
		}
	}
	return nil
}

// ChildLocal returns the first direct child with the given local name in any namespace.
func (n *Node) ChildLocal(local string) *Node {
	for _, c := range n.Children {
		if c.Name.Local == local {
			return c
		}
	}
	return nil
}

// Descendants returns every element below n, in document order, whose
// name matches space and local.
func (n *Node) Descendants(space, local string) []*Node {
	var out []*Node
	n.walk(func(c *Node) {
		if c.Name.Space == space && c.Name.Local == local {
			out = append(out, c)
		}
	})
	return out
}

// DescendantsLocal is Descendants ignoring namespaces. Template elements
// live in per-template namespaces that vary between APT releases.
func (n *Node) DescendantsLocal(local string) []*Node {
	var out []*Node
	n.walk(func(c *Node) {
		if c.Name.Local == local {
			out = append(out, c)
		}
	})
	return out
}

// FirstElement returns the first child element, or nil.
func (n *Node) FirstElement() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

// walk visits descendants depth-first in document order, excluding n.
func (n *Node) walk(fn func(*Node)) {
	for _, c := range n.Children {
		fn(c)
		c.walk(fn)
	}
}
