// Copyright 2021 The delphi2js Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command delphi2js translates a Delphi program or unit to ES5 JavaScript.
//
// Installation
//
// To install:
//
//	$ go install modernc.org/delphi2js/cmd/delphi2js
//
// Invocation
//
// To run the command:
//
//	$ delphi2js [options] input-file
//
// The input file
//
// The JSON syntax tree produced by the Pascal parser for the source file.
//
// Options
//
// Flags that adjust program behavior
//
//	-o output-file
//
// Set the JavaScript output file name. Existing files will be overwritten
// without asking. The default is to write to stdout.
//
//	-pretty
//
// Reformat the output, one statement per line.
//
//	-ast
//
// Print the decoded syntax tree instead of translating it.
//
//	-e
//
// Show all errors, if any, with the offending node.
//
//	-v
//
// Report input and output sizes on stderr.
//
//	-stack
//
// Show dying stack traces.
package main // import "modernc.org/delphi2js/cmd/delphi2js"

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"runtime/debug"
	"strings"

	"github.com/dustin/go-humanize"
	"modernc.org/delphi2js"
	"modernc.org/mathutil"
)

// Errors shown without -e.
const maxErrors = 10

func fatalf(stack bool, s string, args ...interface{}) {
	if stack {
		fmt.Fprintf(os.Stderr, "%s\n", debug.Stack())
	}
	fmt.Fprintln(os.Stderr, strings.TrimSpace(fmt.Sprintf(s, args...)))
	os.Exit(1)
}

func fatal(stack bool, args ...interface{}) {
	if stack {
		fmt.Fprintf(os.Stderr, "%s\n", debug.Stack())
	}
	fmt.Fprintln(os.Stderr, strings.TrimSpace(fmt.Sprint(args...)))
	os.Exit(1)
}

func main() {
	task := newTask(os.Args)
	flag.BoolVar(&task.ast, "ast", false, "print the syntax tree instead of translating it")
	flag.BoolVar(&task.e, "e", false, "show all errors")
	flag.BoolVar(&task.pretty, "pretty", false, "reformat the output")
	flag.BoolVar(&task.stack, "stack", false, "show dying stack traces")
	flag.BoolVar(&task.v, "v", false, "report sizes")
	flag.StringVar(&task.o, "o", "", ".js output file")
	flag.Parse()
	switch flag.NArg() {
	case 0:
		fatal(task.stack, "missing input file argument")
	case 1:
		task.in = flag.Arg(0)
	default:
		fatalf(task.stack, "exactly one input file expected, got %d", flag.NArg())
	}

	if err := task.main(); err != nil {
		fatal(task.stack, task.report(err))
	}
}

type task struct {
	args   []string
	in     string // foo.json, for example
	o      string // -o
	stderr io.Writer
	stdout io.Writer

	ast    bool // -ast
	e      bool // -e
	pretty bool // -pretty
	stack  bool // -stack
	v      bool // -v
}

func newTask(args []string) *task {
	return &task{
		args:   args,
		stderr: os.Stderr,
		stdout: os.Stdout,
	}
}

func (t *task) main() error {
	b, err := ioutil.ReadFile(t.in)
	if err != nil {
		return err
	}

	f, err := delphi2js.Decode(b, t.in)
	if err != nil {
		return err
	}

	if t.ast {
		_, err := fmt.Fprintln(t.stdout, delphi2js.Dump(f))
		return err
	}

	js, err := delphi2js.Compile(f)
	if err != nil {
		return err
	}

	if t.pretty {
		if js, err = delphi2js.Pretty(js); err != nil {
			return fmt.Errorf("%s: reformatting output: %w", t.in, err)
		}
	}

	if t.v {
		fmt.Fprintf(t.stderr, "%s: %s in, %s out\n", t.in, humanize.Bytes(uint64(len(b))), humanize.Bytes(uint64(len(js))))
	}

	if t.o == "" {
		_, err := io.WriteString(t.stdout, js)
		return err
	}

	return ioutil.WriteFile(t.o, []byte(js), 0666)
}

// report formats err for the user. Without -e at most maxErrors errors of a
// list are shown and node errors omit the node dump.
func (t *task) report(err error) string {
	var list delphi2js.ErrorList
	if errors.As(err, &list) {
		n := len(list)
		if !t.e {
			n = mathutil.Min(n, maxErrors)
		}
		var a []string
		for _, v := range list[:n] {
			a = append(a, t.detail(v))
		}
		if n < len(list) {
			a = append(a, fmt.Sprintf("... and %d more errors (-e shows all)", len(list)-n))
		}
		return strings.Join(a, "\n")
	}

	return t.detail(err)
}

func (t *task) detail(err error) string {
	var d interface{ Detail() string }
	if t.e && errors.As(err, &d) {
		return d.Detail()
	}

	return err.Error()
}
