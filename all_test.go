// Copyright 2021 The delphi2js Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package delphi2js // import "modernc.org/delphi2js"

import (
	"errors"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"modernc.org/ccgo/v3/lib"
)

func dbg(s string, va ...interface{}) {
	if s == "" {
		s = strings.Repeat("%v ", len(va))
	}
	_, fn, fl, _ := runtime.Caller(1)
	fmt.Fprintf(os.Stderr, "# dbg %s:%d: ", path.Base(fn), fl)
	fmt.Fprintf(os.Stderr, s, va...)
	fmt.Fprintln(os.Stderr)
	os.Stderr.Sync()
}

func use(...interface{}) {}

func init() {
	use(dbg)
}

// ----------------------------------------------------------------------------
var tempDir string

func TestMain(m *testing.M) {
	flag.Parse()
	os.Exit(testMain(m))
}

func testMain(m *testing.M) int {
	var err error
	tempDir, err = ioutil.TempDir("", "delphi2js-test-")
	if err != nil {
		panic(err)
	}

	defer os.RemoveAll(tempDir)

	return m.Run()
}

// ----------------------------------------------------------------------------
// Tree builders

func ident(s string) *Identifier { return &Identifier{Value: s} }

func idents(a ...string) (r []*Identifier) {
	for _, v := range a {
		r = append(r, ident(v))
	}
	return r
}

func integer(n int64) *IntegerConstant { return &IntegerConstant{Value: n} }

func str(s string) *StringConstant { return &StringConstant{Value: s} }

func call(name string, args ...Expression) *FunctionCall {
	return &FunctionCall{Target: ident(name), Params: args}
}

func stmt(name string, args ...Expression) *ProcedureStatement {
	return &ProcedureStatement{Target: ident(name), Params: args}
}

func compound(list ...Statement) *CompoundStatement { return &CompoundStatement{List: list} }

func block(decls []Declaration, list ...Statement) *Block {
	return &Block{Declarations: decls, Statements: compound(list...)}
}

func varDecl(names ...string) *VariableDeclaration {
	return &VariableDeclaration{Identifiers: idents(names...), VariableType: &InbuiltType{TypeName: "Integer"}}
}

func constDecl(name string, e Expression) *ConstantDeclaration {
	return &ConstantDeclaration{Identifier: ident(name), Expression: e}
}

func procDecl(name string, params []string, b *Block) *ProcedureDeclaration {
	n := &ProcedureDeclaration{Identifier: ident(name), Block: b}
	if len(params) != 0 {
		n.Params = []ParameterDeclaration{&ValueParameter{Identifiers: idents(params...), ParamType: &InbuiltType{TypeName: "Integer"}}}
	}
	return n
}

func funcDecl(name string, b *Block) *FunctionDeclaration {
	return &FunctionDeclaration{Identifier: ident(name), ReturnType: &InbuiltType{TypeName: "Integer"}, Block: b}
}

func program(decls []Declaration, list ...Statement) *Program {
	return &Program{Header: &ProgramHeader{Identifier: ident("Test")}, Body: block(decls, list...)}
}

func unit(decls ...Declaration) *Unit {
	return &Unit{
		Header:         &UnitHeader{Identifier: ident("Test")},
		Interface:      &InterfacePart{},
		Implementation: &ImplementationPart{Declarations: decls},
	}
}

func decls(a ...Declaration) []Declaration { return a }

func compile(t *testing.T, f PasFile) string {
	t.Helper()
	s, err := Compile(f)
	if err != nil {
		t.Fatal(err)
	}

	return s
}

// ----------------------------------------------------------------------------

func stage(t *testing.T, name string) []byte {
	t.Helper()
	fn := filepath.Join(tempDir, name)
	if _, err := ccgo.CopyFile(fn, filepath.Join("testdata", name), nil); err != nil {
		t.Fatal(err)
	}

	b, err := ioutil.ReadFile(fn)
	if err != nil {
		t.Fatal(err)
	}

	return b
}

func TestGolden(t *testing.T) {
	for _, v := range []string{"hello", "unit"} {
		t.Run(v, func(t *testing.T) {
			b := stage(t, v+".json")
			f, err := Decode(b, v+".json")
			if err != nil {
				t.Fatal(err)
			}

			g, err := Compile(f)
			if err != nil {
				t.Fatal(err)
			}

			e := strings.TrimSpace(string(stage(t, v+".js")))
			if g != e {
				t.Fatalf("\ngot\n%s\nexp\n%s", g, e)
			}

			if _, err := Pretty(g); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestGoldenTypedHandler(t *testing.T) {
	f, err := Decode(stage(t, "handler.json"), "handler.json")
	if err != nil {
		t.Fatal(err)
	}

	_, err = Compile(f)
	var x *UnsupportedNodeError
	if !errors.As(err, &x) {
		t.Fatalf("unexpected error: %v", err)
	}

	if g, e := x.Node.Kind(), KindExceptionHandlerClause; g != e {
		t.Fatalf("got %v, expected %v", g, e)
	}

	if g, e := x.Node.Position().String(), "handler.json:5:5"; g != e {
		t.Fatalf("got %v, expected %v", g, e)
	}
}
