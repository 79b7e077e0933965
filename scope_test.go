// Copyright 2021 The delphi2js Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package delphi2js // import "modernc.org/delphi2js"

import (
	"testing"
)

func TestScope(t *testing.T) {
	root := NewScope(nil)
	root.Add("Total", Variable)
	root.Add("Max", Constant)
	root.Add("Area", Function)
	root.Add("Show", Procedure)
	child := NewScope(root)
	child.Add("total", Function)
	child.Add("i", Variable)

	if g := child.Parent(); g != root {
		t.Fatalf("got %p, expected %p", g, root)
	}

	for i, v := range []struct {
		s    *Scope
		name string
		kind IdentifierKind
		call bool
	}{
		{root, "Total", Variable, false},
		{root, "TOTAL", Variable, false},
		{root, "max", Constant, false},
		{root, "area", Function, true},
		{root, "Show", Procedure, true},
		{root, "i", Unknown, true},
		{root, "WriteLn", Unknown, true},
		{child, "Total", Function, true},
		{child, "i", Variable, false},
		{child, "Max", Constant, false},
		{child, "Show", Procedure, true},
		{child, "Halt", Unknown, true},
	} {
		if g, e := v.s.IdentifierKind(v.name), v.kind; g != e {
			t.Errorf("#%d: %s: got %v, expected %v", i, v.name, g, e)
		}
		if g, e := v.s.CanInvoke(v.name), v.call; g != e {
			t.Errorf("#%d: %s: got %v, expected %v", i, v.name, g, e)
		}
	}

	if g, e := child.String(), "{i:variable, total:function}"; g != e {
		t.Errorf("got %s, expected %s", g, e)
	}

	// Last declaration wins.
	root.Add("MAX", Variable)
	if g, e := root.IdentifierKind("Max"), Variable; g != e {
		t.Errorf("got %v, expected %v", g, e)
	}

	if g, e := len(root.Names()), 4; g != e {
		t.Errorf("got %v, expected %v", g, e)
	}
}

func TestIdentifierKindString(t *testing.T) {
	for k, e := range map[IdentifierKind]string{
		Unknown:   "unknown",
		Constant:  "constant",
		Variable:  "variable",
		Procedure: "procedure",
		Function:  "function",
		42:        "IdentifierKind(42)",
	} {
		if g := k.String(); g != e {
			t.Errorf("got %s, expected %s", g, e)
		}
	}
}
