// Copyright 2021 The delphi2js Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package delphi2js // import "modernc.org/delphi2js"

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedNode is the target of errors.Is for *UnsupportedNodeError.
	ErrUnsupportedNode = errors.New("unsupported node type")
	// ErrInvalidValue is the target of errors.Is for *InvalidValueError.
	ErrInvalidValue = errors.New("invalid value")
	// ErrNoScope is the target of errors.Is for *ScopeResolutionError.
	ErrNoScope = errors.New("context has no root scope")
)

// UnsupportedNodeError reports a node the code generator cannot translate in
// the position it was found.
type UnsupportedNodeError struct {
	Node  Node
	Trace []Kind // Kinds of the nodes being visited, root first.
	Msg   string // Optional.
}

func (e *UnsupportedNodeError) Error() string {
	return formatNodeError(e.Node, e.Trace, fmt.Sprintf("%s: %s", ErrUnsupportedNode, kindOf(e.Node)), e.Msg)
}

// Detail returns Error followed by a dump of the offending node.
func (e *UnsupportedNodeError) Detail() string { return e.Error() + "\nnode:\n" + Dump(e.Node) }

func (e *UnsupportedNodeError) Unwrap() error { return ErrUnsupportedNode }

// InvalidValueError reports a well formed node carrying a value outside of
// its domain.
type InvalidValueError struct {
	Node  Node
	Trace []Kind
	Msg   string
}

func (e *InvalidValueError) Error() string {
	return formatNodeError(e.Node, e.Trace, fmt.Sprintf("%s in %s", ErrInvalidValue, kindOf(e.Node)), e.Msg)
}

// Detail returns Error followed by a dump of the offending node.
func (e *InvalidValueError) Detail() string { return e.Error() + "\nnode:\n" + Dump(e.Node) }

func (e *InvalidValueError) Unwrap() error { return ErrInvalidValue }

// ScopeResolutionError reports a scope query made where no node on the
// context stack has a Scope attached, typically because Resolve was not run.
type ScopeResolutionError struct {
	Trace []Kind
}

func (e *ScopeResolutionError) Error() string {
	return formatNodeError(nil, e.Trace, ErrNoScope.Error(), "")
}

func (e *ScopeResolutionError) Unwrap() error { return ErrNoScope }

func kindOf(n Node) Kind {
	if n == nil {
		return KindInvalid
	}

	return n.Kind()
}

func formatNodeError(n Node, trace []Kind, head, msg string) string {
	var b strings.Builder
	if n != nil {
		if pos := n.Position(); pos.IsValid() {
			fmt.Fprintf(&b, "%v: ", pos)
		}
	}
	b.WriteString(head)
	if msg != "" {
		fmt.Fprintf(&b, ": %s", msg)
	}
	if len(trace) != 0 {
		b.WriteString("\nat:")
		for i, v := range trace {
			fmt.Fprintf(&b, "\n%s%s", strings.Repeat("  ", i), v)
		}
	}
	return b.String()
}

// ErrorList is a list of errors reported together, like the shape errors
// found by Decode.
type ErrorList []error

func (l ErrorList) Error() string {
	var a []string
	for _, v := range l {
		a = append(a, v.Error())
	}
	return strings.Join(a, "\n")
}

// Err returns l or nil if l is empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}

	return l
}
