// Copyright 2021 The delphi2js Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main // import "modernc.org/delphi2js/cmd/delphi2js"

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"modernc.org/ccgo/v3/lib"
	"modernc.org/delphi2js"
)

var tempDir string

func TestMain(m *testing.M) {
	flag.Parse()
	os.Exit(testMain(m))
}

func testMain(m *testing.M) int {
	var err error
	tempDir, err = ioutil.TempDir("", "delphi2js-cmd-test-")
	if err != nil {
		panic(err)
	}

	defer os.RemoveAll(tempDir)

	return m.Run()
}

func stage(t *testing.T, name string) string {
	t.Helper()
	fn := filepath.Join(tempDir, name)
	if _, err := ccgo.CopyFile(fn, filepath.Join("..", "..", "testdata", name), nil); err != nil {
		t.Fatal(err)
	}

	return fn
}

func newTestTask(in string) (*task, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	t := newTask([]string{"delphi2js-test"})
	t.in = in
	t.stdout = &stdout
	t.stderr = &stderr
	return t, &stdout, &stderr
}

func TestOutputFile(t *testing.T) {
	for _, v := range []string{"hello", "unit"} {
		in := stage(t, v+".json")
		task, stdout, _ := newTestTask(in)
		task.o = filepath.Join(tempDir, v+".js")
		if err := task.main(); err != nil {
			t.Fatal(task.report(err))
		}

		if stdout.Len() != 0 {
			t.Fatalf("unexpected stdout output %q", stdout)
		}

		g, err := ioutil.ReadFile(task.o)
		if err != nil {
			t.Fatal(err)
		}

		b, err := ioutil.ReadFile(in)
		if err != nil {
			t.Fatal(err)
		}

		f, err := delphi2js.Decode(b, in)
		if err != nil {
			t.Fatal(err)
		}

		e, err := delphi2js.Compile(f)
		if err != nil {
			t.Fatal(err)
		}

		if string(g) != e {
			t.Fatalf("%s:\ngot\n%s\nexp\n%s", v, g, e)
		}
	}
}

func TestStdout(t *testing.T) {
	task, stdout, stderr := newTestTask(stage(t, "unit.json"))
	task.v = true
	if err := task.main(); err != nil {
		t.Fatal(task.report(err))
	}

	if g, e := stdout.String(), `var Side=2;var Total=Side;function Area(){try {Log(Side+Area());} catch ($e) {Log("failed");}}`; g != e {
		t.Fatalf("got %s, expected %s", g, e)
	}

	if s := stderr.String(); !strings.Contains(s, " B out") || !strings.Contains(s, "kB in") {
		t.Fatalf("unexpected size report %q", s)
	}
}

func TestPretty(t *testing.T) {
	task, stdout, _ := newTestTask(stage(t, "hello.json"))
	task.pretty = true
	if err := task.main(); err != nil {
		t.Fatal(task.report(err))
	}

	e := `var Greeting="Hello, \"world\"";
var Count;
function Show(s) {
	WriteLn(s);
}
Count=1;
if (Count===1) Show(Greeting);
else Show("\x41");
`
	if g := stdout.String(); g != e {
		t.Fatalf("got\n%s\nexp\n%s", g, e)
	}
}

func TestAST(t *testing.T) {
	task, stdout, _ := newTestTask(stage(t, "hello.json"))
	task.ast = true
	if err := task.main(); err != nil {
		t.Fatal(task.report(err))
	}

	s := stdout.String()
	for _, v := range []string{"delphi2js.Program{", `Value: "Greeting"`, "Span: "} {
		if !strings.Contains(s, v) {
			t.Errorf("%q not found in\n%s", v, s)
		}
	}
}

func TestReport(t *testing.T) {
	task, _, _ := newTestTask(stage(t, "handler.json"))
	err := task.main()
	if err == nil {
		t.Fatal("unexpected success")
	}

	if s := task.report(err); strings.Contains(s, "node:") || !strings.Contains(s, "exception handlers are not implemented yet") {
		t.Fatalf("unexpected report\n%s", s)
	}

	task.e = true
	if s := task.report(err); !strings.Contains(s, "node:") || !strings.Contains(s, `"Exception"`) {
		t.Fatalf("unexpected report\n%s", s)
	}

	var list delphi2js.ErrorList
	for i := 0; i < maxErrors+5; i++ {
		list = append(list, errors.New(fmt.Sprint("error ", i)))
	}
	task.e = false
	s := task.report(list)
	if g, e := strings.Count(s, "\n"), maxErrors; g != e {
		t.Fatalf("got %v lines, expected %v\n%s", g, e, s)
	}

	if !strings.HasSuffix(s, "... and 5 more errors (-e shows all)") {
		t.Fatalf("unexpected report\n%s", s)
	}

	task.e = true
	if g, e := strings.Count(task.report(list), "\n"), maxErrors+4; g != e {
		t.Fatalf("got %v, expected %v", g, e)
	}
}

func TestMissingInput(t *testing.T) {
	task, _, _ := newTestTask(filepath.Join(tempDir, "does-not-exist.json"))
	if err := task.main(); err == nil {
		t.Fatal("unexpected success")
	}
}
