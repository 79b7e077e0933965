// Copyright 2021 The delphi2js Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package delphi2js // import "modernc.org/delphi2js"

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
)

var (
	_ literal = controlLiteral(0)
	_ literal = integerLiteral(0)
	_ literal = stringLiteral("")

	// ES5 reserved words, future reserved words, strict mode reserved words
	// and the literals null, true and false.
	jsReserved = map[string]struct{}{
		"arguments":  {},
		"break":      {},
		"case":       {},
		"catch":      {},
		"class":      {},
		"const":      {},
		"continue":   {},
		"debugger":   {},
		"default":    {},
		"delete":     {},
		"do":         {},
		"else":       {},
		"enum":       {},
		"eval":       {},
		"export":     {},
		"extends":    {},
		"false":      {},
		"finally":    {},
		"for":        {},
		"function":   {},
		"if":         {},
		"implements": {},
		"import":     {},
		"in":         {},
		"instanceof": {},
		"interface":  {},
		"let":        {},
		"new":        {},
		"null":       {},
		"package":    {},
		"private":    {},
		"protected":  {},
		"public":     {},
		"return":     {},
		"static":     {},
		"super":      {},
		"switch":     {},
		"this":       {},
		"throw":      {},
		"true":       {},
		"try":        {},
		"typeof":     {},
		"var":        {},
		"void":       {},
		"while":      {},
		"with":       {},
		"yield":      {},
	}
)

// literal is an ES5 literal.
type literal interface {
	render() string
}

// jsIdent returns s usable as an ES5 identifier. '$' cannot occur in a Pascal
// identifier so the result never collides with another source name.
func jsIdent(s string) string {
	if _, ok := jsReserved[s]; ok {
		return s + "$"
	}

	return s
}

// controlLiteral is the value of a #nnn control string.
type controlLiteral rune

func newControlLiteral(n int64) (controlLiteral, error) {
	if n < 0 {
		return 0, fmt.Errorf("control string value cannot be less than 0, but it is %d", n)
	}

	if n > unicode.MaxRune {
		return 0, fmt.Errorf("control string value %#x is not a Unicode code point", n)
	}

	return controlLiteral(n), nil
}

func (l controlLiteral) render() string {
	switch {
	case l < 0x100:
		return fmt.Sprintf(`"\x%02x"`, int32(l))
	case l < 0x10000:
		return fmt.Sprintf(`"\u%04x"`, int32(l))
	default:
		r1, r2 := utf16.EncodeRune(rune(l))
		return fmt.Sprintf(`"\u%04x\u%04x"`, r1, r2)
	}
}

type integerLiteral int64

func (l integerLiteral) render() string { return strconv.FormatInt(int64(l), 10) }

// stringLiteral is the unquoted value of a Pascal string constant.
type stringLiteral string

func (l stringLiteral) render() string {
	var b strings.Builder
	b.WriteByte('"')
	for _, c := range string(l) {
		switch c {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\u2028':
			b.WriteString(`\u2028`)
		case '\u2029':
			b.WriteString(`\u2029`)
		default:
			b.WriteRune(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
