// Copyright 2021 The delphi2js Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package delphi2js // import "modernc.org/delphi2js"

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"modernc.org/token"
)

// Decode builds the AST of the JSON document b produced by the external
// Pascal parser. Name is used in positions and error messages.
//
// Every node is a JSON object with a "type" member holding the Kind.String()
// tag of the node and an optional "location" member of the form
//
//	{"start": {"offset": 0, "line": 1, "column": 1}, "end": {...}}
//
// All shape errors found are reported together as an ErrorList.
func Decode(b []byte, name string) (PasFile, error) {
	d := &decoder{name: name}
	n := d.node(json.RawMessage(b), "$")
	if len(d.errs) != 0 {
		return nil, d.errs
	}

	switch x := n.(type) {
	case *Program:
		return x, nil
	case *Unit:
		return x, nil
	case nil:
		return nil, fmt.Errorf("%s: empty document", name)
	default:
		return nil, fmt.Errorf("%v: $: expected program or unit, got %s", d.position(x), x.Kind())
	}
}

type decoder struct {
	errs ErrorList
	name string
}

func (d *decoder) err(pos token.Position, path, msg string, args ...interface{}) {
	s := d.name
	if pos.IsValid() {
		s = pos.String()
	}
	d.errs = append(d.errs, fmt.Errorf("%s: %s: %s", s, path, fmt.Sprintf(msg, args...)))
}

func (d *decoder) position(n Node) token.Position {
	if pos := n.Position(); pos.IsValid() {
		return pos
	}

	return token.Position{Filename: d.name}
}

// object is a JSON object decoded one level deep.
type object struct {
	m    map[string]json.RawMessage
	path string
	pos  token.Position
	kind Kind
}

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// raw returns the first present, non null member of o named by one of names.
func (o *object) raw(names ...string) (json.RawMessage, string) {
	for _, v := range names {
		if raw, ok := o.m[v]; ok && !isNull(raw) {
			return raw, o.path + "." + v
		}
	}
	return nil, o.path + "." + names[0]
}

func (d *decoder) object(raw json.RawMessage, path string) *object {
	if isNull(raw) {
		return nil
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		d.err(token.Position{}, path, "expected an object: %v", err)
		return nil
	}

	o := &object{m: m, path: path, pos: d.location(m["location"], path)}
	var tag string
	if raw, ok := m["type"]; !ok || json.Unmarshal(raw, &tag) != nil {
		d.err(o.pos, path, "missing node type")
		return nil
	}

	k, ok := KindOf(tag)
	if !ok {
		d.err(o.pos, path+".type", "unknown node type %q", tag)
		return nil
	}

	o.kind = k
	return o
}

type location struct {
	Start struct {
		Offset int `json:"offset"`
		Line   int `json:"line"`
		Column int `json:"column"`
	} `json:"start"`
}

func (d *decoder) location(raw json.RawMessage, path string) token.Position {
	if isNull(raw) {
		return token.Position{}
	}

	var loc location
	if err := json.Unmarshal(raw, &loc); err != nil {
		d.err(token.Position{}, path+".location", "%v", err)
		return token.Position{}
	}

	return token.Position{Filename: d.name, Offset: loc.Start.Offset, Line: loc.Start.Line, Column: loc.Start.Column}
}

func (d *decoder) array(raw json.RawMessage, path string) []json.RawMessage {
	if isNull(raw) {
		return nil
	}

	var a []json.RawMessage
	if err := json.Unmarshal(raw, &a); err != nil {
		d.err(token.Position{}, path, "expected an array: %v", err)
		return nil
	}

	return a
}

func (d *decoder) str(o *object, mandatory bool, names ...string) string {
	raw, path := o.raw(names...)
	if raw == nil {
		if mandatory {
			d.err(o.pos, path, "missing %s", names[0])
		}
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		d.err(o.pos, path, "expected a string: %v", err)
	}
	return s
}

// integer accepts a JSON number or a string holding a decimal integer.
func (d *decoder) integer(o *object, name string) int64 {
	raw, path := o.raw(name)
	if raw == nil {
		d.err(o.pos, path, "missing %s", name)
		return 0
	}

	var n int64
	if json.Unmarshal(raw, &n) == nil {
		return n
	}

	var s string
	if json.Unmarshal(raw, &s) == nil {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
	}

	d.err(o.pos, path, "expected an integer, got %s", raw)
	return 0
}

// node decodes the object at path. It returns nil for null and on errors.
func (d *decoder) node(raw json.RawMessage, path string) Node {
	o := d.object(raw, path)
	if o == nil {
		return nil
	}

	span := Span{o.pos}
	switch o.kind {
	case KindProgram:
		return d.program(o, span)
	case KindUnit:
		return d.unit(o, span)
	case KindProgramHeader:
		return &ProgramHeader{Span: span, Identifier: d.identifierField(o, false, "identifier")}
	case KindUnitHeader:
		return &UnitHeader{Span: span, Identifier: d.identifierField(o, false, "identifier")}
	case KindInterfacePart:
		return &InterfacePart{Span: span, Uses: d.usesField(o), Declarations: d.declarations(o)}
	case KindImplementationPart:
		return &ImplementationPart{Span: span, Uses: d.usesField(o), Declarations: d.declarations(o)}
	case KindUsesClause:
		return &UsesClause{Span: span, List: d.identifiers(o, "list")}
	case KindComment:
		return &Comment{Span: span, Content: d.str(o, false, "content")}
	case KindIdentifier:
		return &Identifier{Span: span, Value: d.str(o, true, "value")}
	case KindBlock:
		return d.block(o, span)
	case KindVariableDeclaration:
		return d.variableDeclaration(o, span)
	case KindVariableDeclarationPart:
		n := &VariableDeclarationPart{Span: span}
		raw, path := o.raw("list")
		for i, v := range d.array(raw, path) {
			p := fmt.Sprintf("%s[%d]", path, i)
			switch x := d.node(v, p).(type) {
			case *VariableDeclaration:
				n.List = append(n.List, x)
			case nil:
				// reported
			default:
				d.err(d.position(x), p, "expected variable_declaration, got %s", x.Kind())
			}
		}
		return n
	case KindConstantDeclaration:
		return d.constantDeclaration(o, span)
	case KindConstantDeclarationPart:
		n := &ConstantDeclarationPart{Span: span}
		raw, path := o.raw("list")
		for i, v := range d.array(raw, path) {
			p := fmt.Sprintf("%s[%d]", path, i)
			switch x := d.node(v, p).(type) {
			case *ConstantDeclaration:
				n.List = append(n.List, x)
			case nil:
				// reported
			default:
				d.err(d.position(x), p, "expected constant_declaration, got %s", x.Kind())
			}
		}
		return n
	case KindProcedureHeader:
		return &ProcedureHeader{
			Span:       span,
			Identifier: d.identifierField(o, true, "identifier"),
			Params:     d.params(o),
		}
	case KindFunctionHeader:
		return &FunctionHeader{
			Span:       span,
			Identifier: d.identifierField(o, true, "identifier"),
			Params:     d.params(o),
			ReturnType: d.typeField(o, "returnType"),
		}
	case KindProcedureDeclaration:
		return &ProcedureDeclaration{
			Span:       span,
			Identifier: d.identifierField(o, true, "identifier"),
			Params:     d.params(o),
			Block:      d.blockField(o),
		}
	case KindFunctionDeclaration:
		return &FunctionDeclaration{
			Span:       span,
			Identifier: d.identifierField(o, true, "identifier"),
			Params:     d.params(o),
			ReturnType: d.typeField(o, "returnType"),
			Block:      d.blockField(o),
		}
	case KindValueParameter:
		return &ValueParameter{Span: span, Identifiers: d.identifiers(o, "identifiers"), ParamType: d.typeField(o, "paramType")}
	case KindInbuiltType:
		return &InbuiltType{Span: span, TypeName: d.str(o, true, "typeName")}
	case KindTypeIdentifier:
		return &TypeIdentifier{Span: span, TypeName: d.identifierField(o, true, "typeName")}
	case KindAssignment:
		return &Assignment{
			Span:       span,
			Target:     d.targetField(o, "target", "identifier"),
			Operator:   d.str(o, true, "operator"),
			Expression: d.expressionField(o, true, "expression"),
		}
	case KindProcedureStatement:
		return &ProcedureStatement{Span: span, Target: d.targetField(o, "target"), Params: d.expressions(o, "params")}
	case KindCompoundStatement:
		return &CompoundStatement{Span: span, List: d.statements(o, "list")}
	case KindIf:
		return &IfStatement{
			Span:        span,
			Condition:   d.expressionField(o, true, "condition"),
			TrueBranch:  d.statementField(o, "trueBranch"),
			FalseBranch: d.statementField(o, "falseBranch"),
		}
	case KindTryExcept:
		return &TryExceptStatement{Span: span, Body: d.statements(o, "body"), Handlers: d.handlers(o)}
	case KindTryFinally:
		return &TryFinallyStatement{Span: span, Body: d.statements(o, "body"), Fin: d.statements(o, "fin")}
	case KindExceptionHandlerClause:
		return &ExceptionHandlerClause{
			Span:          span,
			Identifier:    d.identifierField(o, false, "identifier"),
			ExceptionType: d.typeField(o, "exceptionType"),
			Statement:     d.statementField(o, "statement"),
		}
	case KindStringConstant:
		return &StringConstant{Span: span, Value: d.str(o, false, "value")}
	case KindControlString:
		return &ControlString{Span: span, Value: d.integer(o, "value")}
	case KindIntegerConstant:
		return &IntegerConstant{Span: span, Value: d.integer(o, "value")}
	case KindParens:
		return &Parens{Span: span, Expression: d.expressionField(o, true, "expression")}
	case KindBinaryOp:
		return &BinaryOp{
			Span:  span,
			Op:    d.str(o, true, "op", "operator"),
			Left:  d.expressionField(o, true, "left"),
			Right: d.expressionField(o, true, "right"),
		}
	case KindFunctionCall:
		return &FunctionCall{Span: span, Target: d.targetField(o, "target"), Params: d.expressions(o, "params")}
	case KindSetConstructor:
		n := &SetConstructor{Span: span}
		raw, path := o.raw("list")
		for i, v := range d.array(raw, path) {
			p := fmt.Sprintf("%s[%d]", path, i)
			switch x := d.node(v, p).(type) {
			case SetElement:
				n.List = append(n.List, x)
			case nil:
				// reported
			default:
				d.err(d.position(x), p, "expected a set element, got %s", x.Kind())
			}
		}
		return n
	case KindRange:
		return &Range{Span: span, Start: d.expressionField(o, true, "start"), End: d.expressionField(o, true, "end")}
	default:
		d.err(o.pos, o.path, "unexpected node type %s", o.kind)
		return nil
	}
}

func (d *decoder) program(o *object, span Span) *Program {
	n := &Program{Span: span, Uses: d.usesField(o)}
	raw, path := o.raw("header")
	switch x := d.node(raw, path).(type) {
	case *ProgramHeader:
		n.Header = x
	case nil:
		// optional
	default:
		d.err(d.position(x), path, "expected program_header, got %s", x.Kind())
	}
	if n.Body = d.blockField(o, "body"); n.Body == nil {
		d.err(o.pos, o.path+".body", "missing body")
	}
	if raw, path := o.raw("comments"); raw != nil {
		var m map[string]json.RawMessage
		if err := json.Unmarshal(raw, &m); err != nil {
			d.err(o.pos, path, "expected an object: %v", err)
			return n
		}

		c := &object{m: m, path: path, pos: o.pos}
		n.Comments = ProgramComments{
			Pre:  d.commentField(c, "pre"),
			Uses: d.commentField(c, "uses"),
			End:  d.commentField(c, "end"),
			Post: d.commentField(c, "post"),
		}
	}
	return n
}

func (d *decoder) unit(o *object, span Span) *Unit {
	n := &Unit{Span: span}
	raw, path := o.raw("header")
	switch x := d.node(raw, path).(type) {
	case *UnitHeader:
		n.Header = x
	case nil:
		// optional
	default:
		d.err(d.position(x), path, "expected unit_header, got %s", x.Kind())
	}
	raw, path = o.raw("interface", "interfacePart")
	switch x := d.node(raw, path).(type) {
	case *InterfacePart:
		n.Interface = x
	case nil:
		// optional
	default:
		d.err(d.position(x), path, "expected interface_part, got %s", x.Kind())
	}
	raw, path = o.raw("implementation", "implementationPart")
	switch x := d.node(raw, path).(type) {
	case *ImplementationPart:
		n.Implementation = x
	case nil:
		// optional
	default:
		d.err(d.position(x), path, "expected implementation_part, got %s", x.Kind())
	}
	return n
}

func (d *decoder) block(o *object, span Span) *Block {
	n := &Block{Span: span, Declarations: d.declarations(o)}
	raw, path := o.raw("statements")
	switch x := d.node(raw, path).(type) {
	case *CompoundStatement:
		n.Statements = x
	case nil:
		d.err(o.pos, path, "missing statements")
	default:
		d.err(d.position(x), path, "expected compound_statement, got %s", x.Kind())
	}
	return n
}

func (d *decoder) blockField(o *object, names ...string) *Block {
	if len(names) == 0 {
		names = []string{"block"}
	}
	raw, path := o.raw(names...)
	switch x := d.node(raw, path).(type) {
	case *Block:
		return x
	case nil:
		return nil
	default:
		d.err(d.position(x), path, "expected block, got %s", x.Kind())
		return nil
	}
}

func (d *decoder) variableDeclaration(o *object, span Span) *VariableDeclaration {
	n := &VariableDeclaration{
		Span:         span,
		Identifiers:  d.identifiers(o, "identifiers"),
		VariableType: d.typeField(o, "variableType"),
		Expression:   d.expressionField(o, false, "expression"),
	}
	if len(n.Identifiers) == 0 {
		d.err(o.pos, o.path+".identifiers", "variable declaration without identifiers")
	}
	return n
}

func (d *decoder) constantDeclaration(o *object, span Span) *ConstantDeclaration {
	return &ConstantDeclaration{
		Span:         span,
		Identifier:   d.identifierField(o, true, "identifier"),
		ConstantType: d.typeField(o, "constantType"),
		Expression:   d.expressionField(o, true, "expression"),
	}
}

func (d *decoder) commentField(o *object, name string) *Comment {
	raw, path := o.raw(name)
	switch x := d.node(raw, path).(type) {
	case *Comment:
		return x
	case nil:
		return nil
	default:
		d.err(d.position(x), path, "expected comment, got %s", x.Kind())
		return nil
	}
}

func (d *decoder) usesField(o *object) *UsesClause {
	raw, path := o.raw("uses")
	switch x := d.node(raw, path).(type) {
	case *UsesClause:
		return x
	case nil:
		return nil
	default:
		d.err(d.position(x), path, "expected uses_clause, got %s", x.Kind())
		return nil
	}
}

func (d *decoder) identifierField(o *object, mandatory bool, name string) *Identifier {
	raw, path := o.raw(name)
	switch x := d.node(raw, path).(type) {
	case *Identifier:
		return x
	case nil:
		if mandatory && raw == nil {
			d.err(o.pos, path, "missing %s", name)
		}
		return nil
	default:
		d.err(d.position(x), path, "expected identifier, got %s", x.Kind())
		return nil
	}
}

func (d *decoder) identifiers(o *object, name string) (r []*Identifier) {
	raw, path := o.raw(name)
	for i, v := range d.array(raw, path) {
		p := fmt.Sprintf("%s[%d]", path, i)
		switch x := d.node(v, p).(type) {
		case *Identifier:
			r = append(r, x)
		case nil:
			d.err(o.pos, p, "missing identifier")
		default:
			d.err(d.position(x), p, "expected identifier, got %s", x.Kind())
		}
	}
	return r
}

func (d *decoder) targetField(o *object, names ...string) Target {
	raw, path := o.raw(names...)
	switch x := d.node(raw, path).(type) {
	case Target:
		return x
	case nil:
		if raw == nil {
			d.err(o.pos, path, "missing target")
		}
		return nil
	default:
		d.err(d.position(x), path, "expected identifier, got %s", x.Kind())
		return nil
	}
}

func (d *decoder) typeField(o *object, name string) Type {
	raw, path := o.raw(name)
	switch x := d.node(raw, path).(type) {
	case Type:
		return x
	case nil:
		return nil
	default:
		d.err(d.position(x), path, "expected a type, got %s", x.Kind())
		return nil
	}
}

func (d *decoder) params(o *object) (r []ParameterDeclaration) {
	raw, path := o.raw("params")
	for i, v := range d.array(raw, path) {
		p := fmt.Sprintf("%s[%d]", path, i)
		switch x := d.node(v, p).(type) {
		case ParameterDeclaration:
			r = append(r, x)
		case nil:
			d.err(o.pos, p, "missing parameter declaration")
		default:
			d.err(d.position(x), p, "expected value_parameter, got %s", x.Kind())
		}
	}
	return r
}

func (d *decoder) declarations(o *object) (r []Declaration) {
	raw, path := o.raw("declarations")
	for i, v := range d.array(raw, path) {
		p := fmt.Sprintf("%s[%d]", path, i)
		switch x := d.node(v, p).(type) {
		case Declaration:
			r = append(r, x)
		case nil:
			d.err(o.pos, p, "missing declaration")
		default:
			d.err(d.position(x), p, "expected a declaration, got %s", x.Kind())
		}
	}
	return r
}

func (d *decoder) statementField(o *object, name string) Statement {
	raw, path := o.raw(name)
	switch x := d.node(raw, path).(type) {
	case Statement:
		return x
	case nil:
		return nil
	default:
		d.err(d.position(x), path, "expected a statement, got %s", x.Kind())
		return nil
	}
}

func (d *decoder) statementList(raw json.RawMessage, path string) (r []Statement) {
	for i, v := range d.array(raw, path) {
		p := fmt.Sprintf("%s[%d]", path, i)
		switch x := d.node(v, p).(type) {
		case Statement:
			r = append(r, x)
		case nil:
			// Empty statement.
		default:
			d.err(d.position(x), p, "expected a statement, got %s", x.Kind())
		}
	}
	return r
}

func (d *decoder) statements(o *object, name string) []Statement {
	raw, path := o.raw(name)
	return d.statementList(raw, path)
}

// handlers decodes the except part of a try statement: an array of
// statements or a single exception_handler_clause object.
func (d *decoder) handlers(o *object) ExceptionHandlers {
	raw, path := o.raw("handlers")
	if raw == nil {
		return nil
	}

	if raw = bytes.TrimSpace(raw); raw[0] == '[' {
		return HandlerList(d.statementList(raw, path))
	}

	switch x := d.node(raw, path).(type) {
	case *ExceptionHandlerClause:
		return x
	case nil:
		return nil
	default:
		d.err(d.position(x), path, "expected exception_handler_clause, got %s", x.Kind())
		return nil
	}
}

func (d *decoder) expressionField(o *object, mandatory bool, name string) Expression {
	raw, path := o.raw(name)
	switch x := d.node(raw, path).(type) {
	case Expression:
		return x
	case nil:
		if mandatory && raw == nil {
			d.err(o.pos, path, "missing %s", name)
		}
		return nil
	default:
		d.err(d.position(x), path, "expected an expression, got %s", x.Kind())
		return nil
	}
}

func (d *decoder) expressions(o *object, name string) (r []Expression) {
	raw, path := o.raw(name)
	for i, v := range d.array(raw, path) {
		p := fmt.Sprintf("%s[%d]", path, i)
		switch x := d.node(v, p).(type) {
		case Expression:
			r = append(r, x)
		case nil:
			d.err(o.pos, p, "missing expression")
		default:
			d.err(d.position(x), p, "expected an expression, got %s", x.Kind())
		}
	}
	return r
}
