// Copyright 2021 The delphi2js Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package delphi2js // import "modernc.org/delphi2js"

import (
	"strings"
	"testing"
)

func TestPretty(t *testing.T) {
	for i, v := range []struct {
		src, exp string
	}{
		{"", ""},
		{"var a;var b=1;", "var a;\nvar b=1;\n"},
		{
			`function f(a){var x=1;if (a) {g();} else {h();}}g();`,
			"function f(a) {\n\tvar x=1;\n\tif (a) {\n\t\tg();\n\t} else {\n\t\th();\n\t}\n}\ng();\n",
		},
		{
			`try {f();} catch ($e) {} finally {g();}`,
			"try {\n\tf();\n} catch ($e) {\n} finally {\n\tg();\n}\n",
		},
		{`Foo("a;{b}\"c");Bar('}');`, "Foo(\"a;{b}\\\"c\");\nBar('}');\n"},
		{"  var   a ;\n\n var b;", "var a ;\nvar b;\n"},
		{`f(g(1;2));`, "f(g(1;2));\n"},
		{`elsewhere();{x();}elsewhere();`, "elsewhere();\n{\n\tx();\n}\nelsewhere();\n"},
	} {
		g, err := Pretty(v.src)
		if err != nil {
			t.Errorf("#%d: %v", i, err)
			continue
		}

		if g != v.exp {
			t.Errorf("#%d:\ngot\n%s\nexp\n%s", i, g, v.exp)
		}
	}
}

func TestPrettyKeepsStrings(t *testing.T) {
	src := `var s="  {;}  \\";Foo(s,"x\"y");`
	g, err := Pretty(src)
	if err != nil {
		t.Fatal(err)
	}

	for _, v := range []string{`"  {;}  \\"`, `"x\"y"`} {
		if !strings.Contains(g, v) {
			t.Errorf("%q does not contain %q", g, v)
		}
	}
}

func TestPrettyErrors(t *testing.T) {
	for i, v := range []struct {
		src, err string
	}{
		{`f("abc);`, `1:3: unterminated string literal`},
		{"x;\nf(\"a\\", `2:3: unterminated string literal`},
		{"f(\"a\nb\");", `1:3: unterminated string literal`},
		{`function f(){`, `1:13: unbalanced '{'`},
		{`f();}`, `1:5: unbalanced '}'`},
		{"a\x00b", "zero byte"},
	} {
		_, err := Pretty(v.src)
		if err == nil {
			t.Errorf("#%d: unexpected success", i)
			continue
		}

		if !strings.Contains(err.Error(), v.err) {
			t.Errorf("#%d: error %q does not contain %q", i, err, v.err)
		}
	}
}
