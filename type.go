// Copyright 2021 The delphi2js Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package delphi2js // import "modernc.org/delphi2js"

import (
	"strings"
)

var (
	_ Type = (*InbuiltType)(nil)
	_ Type = (*TypeIdentifier)(nil)

	inbuiltTypes = map[string]struct{}{
		"boolean":  {},
		"byte":     {},
		"cardinal": {},
		"char":     {},
		"double":   {},
		"extended": {},
		"int64":    {},
		"integer":  {},
		"real":     {},
		"single":   {},
		"string":   {},
		"word":     {},
	}
)

// Type is a declared type. The generated code is untyped so types are carried
// for diagnostics only.
type Type interface {
	Node
	pascalName() string
}

// InbuiltType is a predeclared type like Integer or String.
type InbuiltType struct {
	Span
	TypeName string
}

func (t *InbuiltType) Kind() Kind         { return KindInbuiltType }
func (t *InbuiltType) pascalName() string { return t.TypeName }

// TypeIdentifier is a reference to a named, user declared type.
type TypeIdentifier struct {
	Span
	TypeName *Identifier
}

func (t *TypeIdentifier) Kind() Kind         { return KindTypeIdentifier }
func (t *TypeIdentifier) pascalName() string { return t.TypeName.Name() }

// IsInbuiltTypeName reports whether s names a predeclared type.
func IsInbuiltTypeName(s string) bool {
	_, ok := inbuiltTypes[strings.ToLower(s)]
	return ok
}

// TypeName returns the source name of t or "" for a nil t.
func TypeName(t Type) string {
	if t == nil {
		return ""
	}

	return t.pascalName()
}
