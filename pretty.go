// Copyright 2021 The delphi2js Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package delphi2js // import "modernc.org/delphi2js"

import (
	"bytes"
	"fmt"
	"strings"

	"modernc.org/mathutil"
	"modernc.org/strutil"
	"modernc.org/token"
)

// Pretty reformats js, typically the output of Generate, placing every
// statement on its own line and indenting blocks by a tab. String literals are
// copied verbatim and runs of white space outside of them are collapsed.
//
// Pretty fails on an unterminated string literal or unbalanced braces.
func Pretty(js string) (string, error) {
	if x := strings.IndexByte(js, 0); x >= 0 {
		return "", fmt.Errorf("input contains a zero byte at offset %#x", x)
	}

	p := newPrettyPrinter(js)
	p.run()
	if len(p.errs) != 0 {
		return "", p.errs
	}

	return p.out.String(), nil
}

type prettyPrinter struct {
	errs  ErrorList
	f     strutil.Formatter
	file  *token.File
	line  []byte // Pending output line.
	open  []int  // Offsets of the unclosed '{'s.
	out   bytes.Buffer
	paren int
	s     string
	si    int // current index into s
}

func newPrettyPrinter(js string) *prettyPrinter {
	file := token.NewFile("", len(js))
	file.SetLinesForContent([]byte(js))
	p := &prettyPrinter{
		file: file,
		s:    js + "\x00", // Set the sentinel.
	}
	p.f = strutil.IndentFormatter(&p.out, "\t")
	return p
}

func (p *prettyPrinter) c() byte { return p.s[p.si] }

func (p *prettyPrinter) post() byte {
	r := p.s[p.si]
	if r != 0 {
		p.si++
	}
	return r
}

func (p *prettyPrinter) position(off int) token.Position {
	return p.file.Position(p.file.Pos(off))
}

func (p *prettyPrinter) err(off int, msg string, args ...interface{}) {
	pos := p.position(off)
	p.errs = append(p.errs, fmt.Errorf("%d:%d: %s", pos.Line, pos.Column, fmt.Sprintf(msg, args...)))
}

func (p *prettyPrinter) flush() {
	if s := strings.TrimRight(string(p.line), " "); s != "" {
		p.f.Format("%s\n", s)
	}
	p.line = p.line[:0]
}

func (p *prettyPrinter) space() {
	if n := len(p.line); n != 0 && p.line[n-1] != ' ' {
		p.line = append(p.line, ' ')
	}
}

func (p *prettyPrinter) run() {
	for {
		si0 := p.si
		switch c := p.c(); c {
		case 0:
			p.flush()
			if n := len(p.open); n != 0 {
				p.err(p.open[n-1], "unbalanced '{'")
			}
			return
		case '"', '\'':
			if !p.str(c) {
				return
			}
		case ' ', '\t', '\n', '\r':
			p.post()
			p.space()
		case '(':
			p.paren++
			p.line = append(p.line, p.post())
		case ')':
			p.paren = mathutil.Max(p.paren-1, 0)
			p.line = append(p.line, p.post())
		case ';':
			p.line = append(p.line, p.post())
			if p.paren == 0 {
				p.flush()
			}
		case '{':
			p.post()
			p.space()
			p.line = append(p.line, '{')
			p.flush()
			p.f.Format("%i")
			p.open = append(p.open, si0)
		case '}':
			if len(p.open) == 0 {
				p.err(si0, "unbalanced '}'")
				return
			}

			p.post()
			p.flush()
			p.f.Format("%u")
			p.open = p.open[:len(p.open)-1]
			p.line = append(p.line, '}')
			if !p.continues() {
				p.flush()
			}
		default:
			p.line = append(p.line, p.post())
		}
	}
}

// continues reports whether the text after a closing brace belongs to the
// same statement, as in "} else {", and positions p at that text.
func (p *prettyPrinter) continues() bool {
	si := p.si
	for {
		switch p.s[si] {
		case ' ', '\t', '\n', '\r':
			si++
			continue
		}
		break
	}
	for _, v := range []string{"else", "catch", "finally"} {
		if strings.HasPrefix(p.s[si:], v) && !isJSIdentNext(p.s[si+len(v)]) {
			p.si = si
			p.line = append(p.line, ' ')
			return true
		}
	}
	return false
}

func isJSIdentNext(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' || c == '$'
}

// str copies a string literal delimited by q.
func (p *prettyPrinter) str(q byte) bool {
	si0 := p.si
	p.post()
	for {
		switch p.post() {
		case q:
			p.line = append(p.line, p.s[si0:p.si]...)
			return true
		case '\\':
			if p.post() == 0 {
				p.err(si0, "unterminated string literal")
				return false
			}
		case '\n', 0:
			p.err(si0, "unterminated string literal")
			return false
		}
	}
}
