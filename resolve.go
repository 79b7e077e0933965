// Copyright 2021 The delphi2js Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package delphi2js // import "modernc.org/delphi2js"

import (
	"fmt"
)

type scopeAttacher interface {
	attach(*Scope)
}

// Resolve computes the scope chain of f. The file level scope is attached to
// f, every procedure and function declaration gets its own scope, holding its
// parameters and local declarations, chained to the scope it was declared in.
//
// Resolve replaces the scopes attached by a previous call.
func Resolve(f PasFile) error {
	r := &resolver{}
	switch x := f.(type) {
	case *Program:
		r.program(x)
	case *Unit:
		r.unit(x)
	default:
		return fmt.Errorf("unexpected file AST node: %T", f)
	}
	return r.errs.Err()
}

type resolver struct {
	errs ErrorList
}

func (r *resolver) err(n Node, msg string, args ...interface{}) {
	s := fmt.Sprintf(msg, args...)
	if n != nil {
		if pos := n.Position(); pos.IsValid() {
			s = fmt.Sprintf("%v: %s", pos, s)
		}
	}
	r.errs = append(r.errs, fmt.Errorf("%s", s))
}

func (r *resolver) program(n *Program) {
	s := NewScope(nil)
	if n.Body != nil {
		r.declarations(n.Body.Declarations, s)
	}
	n.attach(s)
}

func (r *resolver) unit(n *Unit) {
	s := NewScope(nil)
	if n.Interface != nil {
		r.declarations(n.Interface.Declarations, s)
	}
	if n.Implementation != nil {
		r.declarations(n.Implementation.Declarations, s)
	}
	n.attach(s)
}

func (r *resolver) declarations(list []Declaration, s *Scope) {
	for _, v := range list {
		r.declaration(v, s)
	}
}

func (r *resolver) declaration(n Declaration, s *Scope) {
	switch x := n.(type) {
	case *VariableDeclaration:
		r.variableDeclaration(x, s)
	case *VariableDeclarationPart:
		for _, v := range x.List {
			r.variableDeclaration(v, s)
		}
	case *ConstantDeclaration:
		r.constantDeclaration(x, s)
	case *ConstantDeclarationPart:
		for _, v := range x.List {
			r.constantDeclaration(v, s)
		}
	case *ProcedureHeader:
		r.add(x, x.Identifier, Procedure, s)
	case *FunctionHeader:
		r.add(x, x.Identifier, Function, s)
	case *ProcedureDeclaration:
		r.add(x, x.Identifier, Procedure, s)
		r.routine(x, x.Params, x.Block, s)
	case *FunctionDeclaration:
		r.add(x, x.Identifier, Function, s)
		r.routine(x, x.Params, x.Block, s)
	case nil:
		r.err(nil, "nil declaration")
	default:
		r.err(n, "unknown declaration node type: %s", n.Kind())
	}
}

func (r *resolver) variableDeclaration(n *VariableDeclaration, s *Scope) {
	if n == nil {
		r.err(nil, "nil variable declaration")
		return
	}

	for _, v := range n.Identifiers {
		r.add(n, v, Variable, s)
	}
}

func (r *resolver) constantDeclaration(n *ConstantDeclaration, s *Scope) {
	if n == nil {
		r.err(nil, "nil constant declaration")
		return
	}

	r.add(n, n.Identifier, Constant, s)
}

func (r *resolver) add(n Node, id *Identifier, k IdentifierKind, s *Scope) {
	if id == nil || id.Value == "" {
		r.err(n, "%s without identifier", n.Kind())
		return
	}

	s.Add(id.Value, k)
}

// routine attaches a new scope, chained to parent, to the procedure or
// function declaration n.
func (r *resolver) routine(n scopeAttacher, params []ParameterDeclaration, b *Block, parent *Scope) {
	s := NewScope(parent)
	for _, v := range params {
		switch x := v.(type) {
		case *ValueParameter:
			for _, id := range x.Identifiers {
				r.add(x, id, Variable, s)
			}
		default:
			r.err(nil, "unknown parameter declaration: %T", v)
		}
	}
	if b != nil {
		r.declarations(b.Declarations, s)
	}
	n.attach(s)
}
