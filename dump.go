// Copyright 2021 The delphi2js Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package delphi2js // import "modernc.org/delphi2js"

import (
	"reflect"
	"strings"

	"modernc.org/strutil"
)

var dumpHooks = strutil.PrettyPrintHooks{
	reflect.TypeOf(Span{}): func(f strutil.Formatter, v interface{}, prefix, suffix string) {
		pos := v.(Span).Pos
		if !pos.IsValid() {
			return
		}

		f.Format("%s%s"+escapePercent(suffix), prefix, pos)
	},
}

func escapePercent(s string) string { return strings.Replace(s, "%", "%%", -1) }

// Dump returns a multi line, indented rendering of n and its subtree.
// Positions are shown as line:column, zero fields are omitted.
func Dump(n Node) string {
	if n == nil {
		return "<nil>"
	}

	return strutil.PrettyString(n, "", "", dumpHooks)
}
