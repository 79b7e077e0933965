// Copyright 2021 The delphi2js Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package delphi2js // import "modernc.org/delphi2js"

import (
	"fmt"
	"strings"
)

// Compile resolves the scopes of f and translates it to ECMAScript 5 source
// code. On error the result is always "".
func Compile(f PasFile) (string, error) {
	if err := Resolve(f); err != nil {
		return "", err
	}

	return Generate(f)
}

// Generate translates f, which must have been passed to Resolve before, to
// ECMAScript 5 source code. On error the result is always "".
func Generate(f PasFile) (string, error) {
	c := newCompiler(f)
	if err := c.file(f); err != nil {
		return "", err
	}

	return c.out.String(), nil
}

type compiler struct {
	ctx *Context
	out strings.Builder
}

func newCompiler(root Node) *compiler {
	return &compiler{ctx: NewContext(root)}
}

func (c *compiler) append(s string) { c.out.WriteString(s) }

func (c *compiler) unsupported(n Node, msg string, args ...interface{}) error {
	return &UnsupportedNodeError{Node: n, Trace: c.ctx.Snapshot(), Msg: fmt.Sprintf(msg, args...)}
}

func (c *compiler) missing(what string) error {
	return c.unsupported(c.ctx.Current(), "missing %s", what)
}

func (c *compiler) file(n PasFile) error {
	switch x := n.(type) {
	case *Program:
		if x == nil {
			return c.missing("program")
		}

		return c.program(x)
	case *Unit:
		if x == nil {
			return c.missing("unit")
		}

		return c.unit(x)
	case nil:
		return fmt.Errorf("unexpected file AST node: %v", n)
	default:
		return c.unsupported(n, "")
	}
}

// The root node is already on the context stack.
func (c *compiler) program(n *Program) error {
	if n.Body == nil {
		return c.missing("block")
	}

	return c.block(n.Body)
}

// Interface and implementation declarations are emitted in order. Uses
// clauses emit nothing.
func (c *compiler) unit(n *Unit) error {
	if n.Interface != nil {
		if err := c.interfacePart(n.Interface); err != nil {
			return err
		}
	}

	if n.Implementation != nil {
		return c.implementationPart(n.Implementation)
	}

	return nil
}

func (c *compiler) interfacePart(n *InterfacePart) error {
	c.ctx.push(n)
	defer c.ctx.pop()

	return c.declarations(n.Declarations)
}

func (c *compiler) implementationPart(n *ImplementationPart) error {
	c.ctx.push(n)
	defer c.ctx.pop()

	return c.declarations(n.Declarations)
}

// The top level block of a program is not wrapped in braces.
func (c *compiler) block(n *Block) error {
	c.ctx.push(n)
	defer c.ctx.pop()

	topLevel := c.ctx.parentIs(KindProgram)
	if !topLevel {
		c.append("{")
	}
	if err := c.declarations(n.Declarations); err != nil {
		return err
	}

	if n.Statements != nil {
		if err := c.compoundStatement(n.Statements); err != nil {
			return err
		}
	}
	if !topLevel {
		c.append("}")
	}
	return nil
}

// ----------------------------------------------------------------------------
// Declarations

func (c *compiler) declarations(list []Declaration) error {
	for _, v := range list {
		if err := c.declaration(v); err != nil {
			return err
		}
	}
	return nil
}

func (c *compiler) declaration(n Declaration) error {
	switch x := n.(type) {
	case *VariableDeclaration:
		return c.variableDeclaration(x)
	case *VariableDeclarationPart:
		return c.variableDeclarationPart(x)
	case *ConstantDeclaration:
		return c.constantDeclaration(x)
	case *ConstantDeclarationPart:
		return c.constantDeclarationPart(x)
	case *ProcedureHeader, *FunctionHeader:
		// Forward declarations, function declarations are hoisted.
		return nil
	case *ProcedureDeclaration:
		return c.routine(x, x.Identifier, x.Params, x.Block)
	case *FunctionDeclaration:
		return c.routine(x, x.Identifier, x.Params, x.Block)
	case nil:
		return c.missing("declaration")
	default:
		return c.unsupported(n, "")
	}
}

func (c *compiler) variableDeclarationPart(n *VariableDeclarationPart) error {
	c.ctx.push(n)
	defer c.ctx.pop()

	for _, v := range n.List {
		if err := c.variableDeclaration(v); err != nil {
			return err
		}
	}
	return nil
}

// var a, b: T;      -> var a,b;
// var a, b: T = e;  -> var a=e;var b=a;
func (c *compiler) variableDeclaration(n *VariableDeclaration) error {
	if n == nil {
		return c.missing("variable declaration")
	}

	c.ctx.push(n)
	defer c.ctx.pop()

	if len(n.Identifiers) == 0 {
		return c.missing("identifier")
	}

	c.append("var ")
	if n.Expression == nil {
		for i, v := range n.Identifiers {
			if i != 0 {
				c.append(",")
			}
			if err := c.identifier(v); err != nil {
				return err
			}
		}
		c.append(";")
		return nil
	}

	first := n.Identifiers[0]
	if err := c.identifier(first); err != nil {
		return err
	}

	c.append("=")
	if err := c.expression(n.Expression); err != nil {
		return err
	}

	c.append(";")
	for _, v := range n.Identifiers[1:] {
		c.append("var ")
		if err := c.identifier(v); err != nil {
			return err
		}

		c.append("=" + jsIdent(first.Value) + ";")
	}
	return nil
}

func (c *compiler) constantDeclarationPart(n *ConstantDeclarationPart) error {
	c.ctx.push(n)
	defer c.ctx.pop()

	for _, v := range n.List {
		if err := c.constantDeclaration(v); err != nil {
			return err
		}
	}
	return nil
}

func (c *compiler) constantDeclaration(n *ConstantDeclaration) error {
	if n == nil {
		return c.missing("constant declaration")
	}

	c.ctx.push(n)
	defer c.ctx.pop()

	if n.Expression == nil {
		return c.missing("expression")
	}

	c.append("var ")
	if err := c.identifier(n.Identifier); err != nil {
		return err
	}

	c.append("=")
	if err := c.expression(n.Expression); err != nil {
		return err
	}

	c.append(";")
	return nil
}

// routine emits a procedure or function declaration. Return values are not
// wired.
func (c *compiler) routine(n Node, id *Identifier, params []ParameterDeclaration, b *Block) error {
	c.ctx.push(n)
	defer c.ctx.pop()

	c.append("function ")
	if err := c.identifier(id); err != nil {
		return err
	}

	if err := c.parameterDeclarations(params); err != nil {
		return err
	}

	if b == nil {
		return c.missing("block")
	}

	return c.block(b)
}

func (c *compiler) parameterDeclarations(list []ParameterDeclaration) error {
	c.append("(")
	for i, v := range list {
		if i != 0 {
			c.append(",")
		}
		switch x := v.(type) {
		case *ValueParameter:
			if err := c.valueParameter(x); err != nil {
				return err
			}
		case nil:
			return c.missing("parameter declaration")
		default:
			return c.unsupported(v, "")
		}
	}
	c.append(")")
	return nil
}

func (c *compiler) valueParameter(n *ValueParameter) error {
	c.ctx.push(n)
	defer c.ctx.pop()

	for i, v := range n.Identifiers {
		if i != 0 {
			c.append(",")
		}
		if err := c.identifier(v); err != nil {
			return err
		}
	}
	return nil
}

// ----------------------------------------------------------------------------
// Statements

func (c *compiler) statementList(list []Statement) error {
	for _, v := range list {
		if err := c.statement(v); err != nil {
			return err
		}
	}
	return nil
}

func (c *compiler) statement(n Statement) error {
	switch x := n.(type) {
	case *Assignment:
		return c.assignment(x)
	case *ProcedureStatement:
		return c.procedureStatement(x)
	case *CompoundStatement:
		return c.compoundStatement(x)
	case *IfStatement:
		return c.ifStatement(x)
	case *TryExceptStatement:
		return c.tryExceptStatement(x)
	case *TryFinallyStatement:
		return c.tryFinallyStatement(x)
	case nil:
		return c.missing("statement")
	default:
		return c.unsupported(n, "")
	}
}

func (c *compiler) assignment(n *Assignment) error {
	c.ctx.push(n)
	defer c.ctx.pop()

	if err := c.assignmentTarget(n.Target); err != nil {
		return err
	}

	switch n.Operator {
	case ":=":
		c.append("=")
	default:
		return c.unsupported(n, "unsupported assignment operator: %q", n.Operator)
	}

	if err := c.expression(n.Expression); err != nil {
		return err
	}

	c.append(";")
	return nil
}

func (c *compiler) assignmentTarget(n Target) error {
	switch x := n.(type) {
	case *Identifier:
		return c.identifier(x)
	case nil:
		return c.missing("assignment target")
	default:
		return c.unsupported(n, "")
	}
}

func (c *compiler) procedureStatement(n *ProcedureStatement) error {
	c.ctx.push(n)
	defer c.ctx.pop()

	if _, err := c.callTarget(n.Target); err != nil {
		return err
	}

	if err := c.parameterList(n.Params); err != nil {
		return err
	}

	c.append(";")
	return nil
}

func (c *compiler) callTarget(n Target) (*Identifier, error) {
	switch x := n.(type) {
	case *Identifier:
		c.ctx.push(x)
		defer c.ctx.pop()

		return x, c.identifier(x)
	case nil:
		return nil, c.missing("call target")
	default:
		return nil, c.unsupported(n, "")
	}
}

func (c *compiler) parameterList(list []Expression) error {
	c.append("(")
	for i, v := range list {
		if i != 0 {
			c.append(",")
		}
		if err := c.expression(v); err != nil {
			return err
		}
	}
	c.append(")")
	return nil
}

// A compound statement directly in a block gets its braces from the block.
func (c *compiler) compoundStatement(n *CompoundStatement) error {
	c.ctx.push(n)
	defer c.ctx.pop()

	braces := !c.ctx.parentIs(KindBlock)
	if braces {
		c.append("{")
	}
	if err := c.statementList(n.List); err != nil {
		return err
	}

	if braces {
		c.append("}")
	}
	return nil
}

func (c *compiler) ifStatement(n *IfStatement) error {
	c.ctx.push(n)
	defer c.ctx.pop()

	c.append("if (")
	if err := c.expression(n.Condition); err != nil {
		return err
	}

	c.append(") ")
	if n.TrueBranch == nil {
		// Empty statement.
		c.append(";")
	} else if err := c.statement(n.TrueBranch); err != nil {
		return err
	}

	if n.FalseBranch != nil {
		c.append(" else ")
		return c.statement(n.FalseBranch)
	}

	return nil
}

// The exception object is bound to $e, a name Pascal code cannot refer to.
func (c *compiler) tryExceptStatement(n *TryExceptStatement) error {
	c.ctx.push(n)
	defer c.ctx.pop()

	var handlers []Statement
	switch x := n.Handlers.(type) {
	case nil:
		// ok
	case HandlerList:
		handlers = x
	case *ExceptionHandlerClause:
		return c.unsupported(x, "exception handlers are not implemented yet")
	default:
		return c.unsupported(nil, "unknown exception handlers: %T", x)
	}

	c.append("try {")
	if err := c.statementList(n.Body); err != nil {
		return err
	}

	c.append("} catch ($e) {")
	if err := c.statementList(handlers); err != nil {
		return err
	}

	c.append("}")
	return nil
}

func (c *compiler) tryFinallyStatement(n *TryFinallyStatement) error {
	c.ctx.push(n)
	defer c.ctx.pop()

	c.append("try {")
	if err := c.statementList(n.Body); err != nil {
		return err
	}

	c.append("} finally {")
	if err := c.statementList(n.Fin); err != nil {
		return err
	}

	c.append("}")
	return nil
}

func (c *compiler) identifier(n *Identifier) error {
	if n == nil || n.Value == "" {
		return c.missing("identifier")
	}

	c.append(jsIdent(n.Value))
	return nil
}

// ----------------------------------------------------------------------------
// Expressions

func (c *compiler) expression(n Expression) error {
	switch x := n.(type) {
	case *StringConstant:
		c.append(stringLiteral(x.Value).render())
	case *ControlString:
		l, err := newControlLiteral(x.Value)
		if err != nil {
			return &InvalidValueError{Node: x, Trace: c.ctx.Snapshot(), Msg: err.Error()}
		}

		c.append(l.render())
	case *IntegerConstant:
		c.append(integerLiteral(x.Value).render())
	case *Parens:
		return c.parens(x)
	case *BinaryOp:
		return c.binaryOp(x)
	case *FunctionCall:
		return c.functionCall(x)
	case *SetConstructor:
		return c.setConstructor(x)
	case nil:
		return c.missing("expression")
	default:
		return c.unsupported(n, "")
	}
	return nil
}

func (c *compiler) parens(n *Parens) error {
	c.ctx.push(n)
	defer c.ctx.pop()

	c.append("(")
	if err := c.expression(n.Expression); err != nil {
		return err
	}

	c.append(")")
	return nil
}

// Operands are emitted as is, grouping relies on the Parens nodes of the
// tree.
func (c *compiler) binaryOp(n *BinaryOp) error {
	c.ctx.push(n)
	defer c.ctx.pop()

	op, ok := binaryOperator(n.Op)
	if !ok {
		return c.unsupported(n, "unsupported binary operator: %q", n.Op)
	}

	if err := c.expression(n.Left); err != nil {
		return err
	}

	c.append(op)
	return c.expression(n.Right)
}

func binaryOperator(op string) (string, bool) {
	switch strings.ToLower(op) {
	case "+":
		return "+", true
	case "=":
		return "===", true
	case "<>":
		return "!==", true
	case "and":
		return "&&", true
	default:
		return "", false
	}
}

// A call with arguments is always a call. A call without arguments is a call
// only if the target can be invoked in the current scope, otherwise it is a
// read of a variable or constant.
func (c *compiler) functionCall(n *FunctionCall) error {
	c.ctx.push(n)
	defer c.ctx.pop()

	id, err := c.callTarget(n.Target)
	if err != nil {
		return err
	}

	if len(n.Params) == 0 {
		s, err := c.ctx.CurrentScope()
		if err != nil {
			return err
		}

		if !s.CanInvoke(id.Value) {
			return nil
		}
	}

	return c.parameterList(n.Params)
}

func (c *compiler) setConstructor(n *SetConstructor) error {
	c.ctx.push(n)
	defer c.ctx.pop()

	c.append("[")
	for i, v := range n.List {
		if i != 0 {
			c.append(",")
		}
		switch x := v.(type) {
		case *Range:
			return c.unsupported(x, "ranges in set constructors are not implemented yet")
		case Expression:
			if err := c.expression(x); err != nil {
				return err
			}
		case nil:
			return c.missing("set element")
		default:
			return c.unsupported(v, "")
		}
	}
	c.append("]")
	return nil
}
