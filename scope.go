// Copyright 2021 The delphi2js Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package delphi2js // import "modernc.org/delphi2js"

import (
	"fmt"
	"sort"
	"strings"
)

// IdentifierKind is what a declared name denotes.
type IdentifierKind int

// Values of IdentifierKind.
const (
	Unknown IdentifierKind = iota // Not declared in any visible scope.
	Constant
	Variable
	Procedure
	Function
)

func (k IdentifierKind) String() string {
	switch k {
	case Unknown:
		return "unknown"
	case Constant:
		return "constant"
	case Variable:
		return "variable"
	case Procedure:
		return "procedure"
	case Function:
		return "function"
	default:
		return fmt.Sprintf("IdentifierKind(%d)", int(k))
	}
}

// Invocable reports whether a name of kind k is reached by call syntax.
func (k IdentifierKind) Invocable() bool { return k == Procedure || k == Function }

// Scope maps the names declared at one lexical level to their kind. Lookups
// continue in the parent scope. Pascal identifiers are case-insensitive and so
// are all Scope methods.
//
// A Scope is not safe for concurrent mutation.
type Scope struct {
	identifiers map[string]IdentifierKind
	parent      *Scope
}

// NewScope returns a new, empty Scope. parent may be nil.
func NewScope(parent *Scope) *Scope {
	return &Scope{
		identifiers: map[string]IdentifierKind{},
		parent:      parent,
	}
}

func scopeKey(name string) string { return strings.ToLower(name) }

// Parent returns the enclosing scope, if any.
func (s *Scope) Parent() *Scope { return s.parent }

// Add declares name as k at this level. A later declaration of the same name
// overrides an earlier one.
func (s *Scope) Add(name string, k IdentifierKind) {
	s.identifiers[scopeKey(name)] = k
}

// IdentifierKind returns the kind of name in the nearest scope declaring it,
// or Unknown.
func (s *Scope) IdentifierKind(name string) IdentifierKind {
	key := scopeKey(name)
	for ; s != nil; s = s.parent {
		if k, ok := s.identifiers[key]; ok {
			return k
		}
	}

	return Unknown
}

// CanInvoke reports whether a parameterless use of name is a call. Names not
// found anywhere in the scope chain are assumed to be external routines and
// are reported as invocable.
func (s *Scope) CanInvoke(name string) bool {
	switch k := s.IdentifierKind(name); k {
	case Unknown:
		return true
	default:
		return k.Invocable()
	}
}

// Names returns the sorted names declared at this level only.
func (s *Scope) Names() (r []string) {
	for k := range s.identifiers {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}

// String is a short, deterministic rendering of the local level, e.g.
// "{a:variable, f:function}".
func (s *Scope) String() string {
	var a []string
	for _, v := range s.Names() {
		a = append(a, fmt.Sprintf("%s:%v", v, s.identifiers[v]))
	}
	return "{" + strings.Join(a, ", ") + "}"
}
