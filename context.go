// Copyright 2021 The delphi2js Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package delphi2js // import "modernc.org/delphi2js"

// Context is the stack of nodes being visited, root first. It holds no
// ownership of the nodes. Each compilation uses its own Context.
type Context struct {
	stack []Node
}

// NewContext returns a Context with root on the stack.
func NewContext(root Node) *Context {
	return &Context{stack: []Node{root}}
}

// push must be paired with pop, as in
//
//	c.push(n)
//	defer c.pop()
func (c *Context) push(n Node) { c.stack = append(c.stack, n) }

func (c *Context) pop() { c.stack = c.stack[:len(c.stack)-1] }

// Depth returns the number of nodes on the stack.
func (c *Context) Depth() int { return len(c.stack) }

// Current returns the node on top of the stack or nil.
func (c *Context) Current() Node {
	if len(c.stack) == 0 {
		return nil
	}

	return c.stack[len(c.stack)-1]
}

// AncestorAt returns the node depth+1 levels below the top of the stack:
// AncestorAt(0) is the parent of the current node, AncestorAt(1) its parent
// and so on. It returns nil when depth reaches past the root.
func (c *Context) AncestorAt(depth int) Node {
	i := len(c.stack) - 2 - depth
	if depth < 0 || i < 0 {
		return nil
	}

	return c.stack[i]
}

// parentIs reports whether the parent of the current node is of kind k.
func (c *Context) parentIs(k Kind) bool {
	n := c.AncestorAt(0)
	return n != nil && n.Kind() == k
}

// CurrentScope returns the innermost Scope attached to a node on the stack.
func (c *Context) CurrentScope() (*Scope, error) {
	for i := len(c.stack) - 1; i >= 0; i-- {
		if h, ok := c.stack[i].(ScopeHolder); ok {
			if s := h.Scope(); s != nil {
				return s, nil
			}
		}
	}

	return nil, &ScopeResolutionError{Trace: c.Snapshot()}
}

// Snapshot returns the kinds of the nodes on the stack, root first.
func (c *Context) Snapshot() []Kind {
	r := make([]Kind, len(c.stack))
	for i, v := range c.stack {
		r[i] = v.Kind()
	}
	return r
}
