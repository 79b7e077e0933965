// Copyright 2021 The delphi2js Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package delphi2js // import "modernc.org/delphi2js"

import (
	"fmt"

	"modernc.org/token"
)

// Kind is the discriminant tag of an AST node.
type Kind int

// Values of Kind. The String value of each is the tag the external parser
// uses for the node in its JSON output.
const (
	KindInvalid Kind = iota

	KindAssignment
	KindBinaryOp
	KindBlock
	KindComment
	KindCompoundStatement
	KindConstantDeclaration
	KindConstantDeclarationPart
	KindControlString
	KindExceptionHandlerClause
	KindFunctionCall
	KindFunctionDeclaration
	KindFunctionHeader
	KindIdentifier
	KindIf
	KindImplementationPart
	KindInbuiltType
	KindIntegerConstant
	KindInterfacePart
	KindParens
	KindProcedureDeclaration
	KindProcedureHeader
	KindProcedureStatement
	KindProgram
	KindProgramHeader
	KindRange
	KindSetConstructor
	KindStringConstant
	KindTryExcept
	KindTryFinally
	KindTypeIdentifier
	KindUnit
	KindUnitHeader
	KindUsesClause
	KindValueParameter
	KindVariableDeclaration
	KindVariableDeclarationPart

	nKinds
)

var kindNames = [nKinds]string{
	KindInvalid:                 "invalid",
	KindAssignment:              "assignment",
	KindBinaryOp:                "binary_op",
	KindBlock:                   "block",
	KindComment:                 "comment",
	KindCompoundStatement:       "compound_statement",
	KindConstantDeclaration:     "constant_declaration",
	KindConstantDeclarationPart: "constant_declaration_part",
	KindControlString:           "control_string",
	KindExceptionHandlerClause:  "exception_handler_clause",
	KindFunctionCall:            "function_call",
	KindFunctionDeclaration:     "function_declaration",
	KindFunctionHeader:          "function_header",
	KindIdentifier:              "identifier",
	KindIf:                      "if",
	KindImplementationPart:      "implementation_part",
	KindInbuiltType:             "inbuilt_type",
	KindIntegerConstant:         "integer_constant",
	KindInterfacePart:           "interface_part",
	KindParens:                  "parens",
	KindProcedureDeclaration:    "procedure_declaration",
	KindProcedureHeader:         "procedure_header",
	KindProcedureStatement:      "procedure_statement",
	KindProgram:                 "program",
	KindProgramHeader:           "program_header",
	KindRange:                   "range",
	KindSetConstructor:          "set_constructor",
	KindStringConstant:          "string_constant",
	KindTryExcept:               "try_except",
	KindTryFinally:              "try_finally",
	KindTypeIdentifier:          "type_identifier",
	KindUnit:                    "unit",
	KindUnitHeader:              "unit_header",
	KindUsesClause:              "uses_clause",
	KindValueParameter:          "value_parameter",
	KindVariableDeclaration:     "variable_declaration",
	KindVariableDeclarationPart: "variable_declaration_part",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, nKinds)
	for k := KindInvalid + 1; k < nKinds; k++ {
		m[kindNames[k]] = k
	}
	return m
}()

func (k Kind) String() string {
	if k >= 0 && k < nKinds {
		return kindNames[k]
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// KindOf returns the Kind whose String value is s, if any.
func KindOf(s string) (Kind, bool) {
	k, ok := kindsByName[s]
	return k, ok
}

// Node is implemented by every AST node.
type Node interface {
	Kind() Kind
	Position() token.Position
}

// Span records where the parser found a node. The zero value is a valid,
// position-less span.
type Span struct {
	Pos token.Position
}

// Position implements Node.
func (s Span) Position() token.Position { return s.Pos }

// ScopeHolder is implemented by the nodes the resolution pass attaches a
// Scope to.
type ScopeHolder interface {
	Node
	Scope() *Scope
}

var (
	_ ScopeHolder = (*FunctionDeclaration)(nil)
	_ ScopeHolder = (*ProcedureDeclaration)(nil)
	_ ScopeHolder = (*Program)(nil)
	_ ScopeHolder = (*Unit)(nil)

	_ PasFile = (*Program)(nil)
	_ PasFile = (*Unit)(nil)
)

// PasFile is a compilation unit, a *Program or a *Unit.
type PasFile interface {
	Node
	pasFile()
}

// Comment is a source comment preserved by the parser.
type Comment struct {
	Span
	Content string
}

func (n *Comment) Kind() Kind { return KindComment }

// Identifier is a name as written in the source.
type Identifier struct {
	Span
	Value string
}

func (n *Identifier) Kind() Kind { return KindIdentifier }
func (n *Identifier) target()    {}

// Name returns n.Value or "" for a nil n.
func (n *Identifier) Name() string {
	if n == nil {
		return ""
	}

	return n.Value
}

// UsesClause = "uses" Identifier { "," Identifier } ";" .
type UsesClause struct {
	Span
	List []*Identifier
}

func (n *UsesClause) Kind() Kind { return KindUsesClause }

// Program = ProgramHeader [ UsesClause ] Block "." .
type Program struct {
	Span
	Header   *ProgramHeader
	Uses     *UsesClause
	Body     *Block
	Comments ProgramComments

	scope *Scope
}

func (n *Program) Kind() Kind      { return KindProgram }
func (n *Program) Scope() *Scope   { return n.scope }
func (n *Program) pasFile()        {}
func (n *Program) attach(s *Scope) { n.scope = s }

// ProgramComments are the comments the parser found around the program
// sections.
type ProgramComments struct {
	Pre  *Comment
	Uses *Comment
	End  *Comment
	Post *Comment
}

// ProgramHeader = "program" Identifier ";" .
type ProgramHeader struct {
	Span
	Identifier *Identifier
}

func (n *ProgramHeader) Kind() Kind { return KindProgramHeader }

// Unit = UnitHeader InterfacePart ImplementationPart "end" "." .
type Unit struct {
	Span
	Header         *UnitHeader
	Interface      *InterfacePart
	Implementation *ImplementationPart

	scope *Scope
}

func (n *Unit) Kind() Kind      { return KindUnit }
func (n *Unit) Scope() *Scope   { return n.scope }
func (n *Unit) pasFile()        {}
func (n *Unit) attach(s *Scope) { n.scope = s }

// UnitHeader = "unit" Identifier ";" .
type UnitHeader struct {
	Span
	Identifier *Identifier
}

func (n *UnitHeader) Kind() Kind { return KindUnitHeader }

// InterfacePart = "interface" [ UsesClause ] { Declaration } .
type InterfacePart struct {
	Span
	Uses         *UsesClause
	Declarations []Declaration
}

func (n *InterfacePart) Kind() Kind { return KindInterfacePart }

// ImplementationPart = "implementation" [ UsesClause ] { Declaration } .
type ImplementationPart struct {
	Span
	Uses         *UsesClause
	Declarations []Declaration
}

func (n *ImplementationPart) Kind() Kind { return KindImplementationPart }

// Block = { Declaration } CompoundStatement .
type Block struct {
	Span
	Declarations []Declaration
	Statements   *CompoundStatement
}

func (n *Block) Kind() Kind { return KindBlock }

// ----------------------------------------------------------------------------
// Declarations

// Declaration is one of the declaration nodes.
type Declaration interface {
	Node
	declaration()
}

var (
	_ Declaration = (*ConstantDeclaration)(nil)
	_ Declaration = (*ConstantDeclarationPart)(nil)
	_ Declaration = (*FunctionDeclaration)(nil)
	_ Declaration = (*FunctionHeader)(nil)
	_ Declaration = (*ProcedureDeclaration)(nil)
	_ Declaration = (*ProcedureHeader)(nil)
	_ Declaration = (*VariableDeclaration)(nil)
	_ Declaration = (*VariableDeclarationPart)(nil)
)

// VariableDeclaration = IdentifierList ":" Type [ "=" Expression ] .
type VariableDeclaration struct {
	Span
	Identifiers  []*Identifier
	VariableType Type
	Expression   Expression // Initializer, nil if none.
}

func (n *VariableDeclaration) Kind() Kind   { return KindVariableDeclaration }
func (n *VariableDeclaration) declaration() {}

// VariableDeclarationPart = "var" VariableDeclaration ";" { VariableDeclaration ";" } .
type VariableDeclarationPart struct {
	Span
	List []*VariableDeclaration
}

func (n *VariableDeclarationPart) Kind() Kind   { return KindVariableDeclarationPart }
func (n *VariableDeclarationPart) declaration() {}

// ConstantDeclaration = Identifier [ ":" Type ] "=" Expression .
type ConstantDeclaration struct {
	Span
	Identifier   *Identifier
	ConstantType Type
	Expression   Expression
}

func (n *ConstantDeclaration) Kind() Kind   { return KindConstantDeclaration }
func (n *ConstantDeclaration) declaration() {}

// ConstantDeclarationPart = "const" ConstantDeclaration ";" { ConstantDeclaration ";" } .
type ConstantDeclarationPart struct {
	Span
	List []*ConstantDeclaration
}

func (n *ConstantDeclarationPart) Kind() Kind   { return KindConstantDeclarationPart }
func (n *ConstantDeclarationPart) declaration() {}

// ProcedureHeader = "procedure" Identifier [ FormalParameterList ] ";" "forward" ";" .
type ProcedureHeader struct {
	Span
	Identifier *Identifier
	Params     []ParameterDeclaration
}

func (n *ProcedureHeader) Kind() Kind   { return KindProcedureHeader }
func (n *ProcedureHeader) declaration() {}

// FunctionHeader = "function" Identifier [ FormalParameterList ] ":" Type ";" "forward" ";" .
type FunctionHeader struct {
	Span
	Identifier *Identifier
	Params     []ParameterDeclaration
	ReturnType Type
}

func (n *FunctionHeader) Kind() Kind   { return KindFunctionHeader }
func (n *FunctionHeader) declaration() {}

// ProcedureDeclaration = "procedure" Identifier [ FormalParameterList ] ";" Block ";" .
type ProcedureDeclaration struct {
	Span
	Identifier *Identifier
	Params     []ParameterDeclaration
	Block      *Block

	scope *Scope
}

func (n *ProcedureDeclaration) Kind() Kind      { return KindProcedureDeclaration }
func (n *ProcedureDeclaration) Scope() *Scope   { return n.scope }
func (n *ProcedureDeclaration) declaration()    {}
func (n *ProcedureDeclaration) attach(s *Scope) { n.scope = s }

// FunctionDeclaration = "function" Identifier [ FormalParameterList ] ":" Type ";" Block ";" .
//
// ReturnType is carried but not used by the code generator.
type FunctionDeclaration struct {
	Span
	Identifier *Identifier
	Params     []ParameterDeclaration
	ReturnType Type
	Block      *Block

	scope *Scope
}

func (n *FunctionDeclaration) Kind() Kind      { return KindFunctionDeclaration }
func (n *FunctionDeclaration) Scope() *Scope   { return n.scope }
func (n *FunctionDeclaration) declaration()    {}
func (n *FunctionDeclaration) attach(s *Scope) { n.scope = s }

// ParameterDeclaration is a formal parameter group. *ValueParameter is the
// only form.
type ParameterDeclaration interface {
	Node
	parameterDeclaration()
}

// ValueParameter = IdentifierList ":" Type .
type ValueParameter struct {
	Span
	Identifiers []*Identifier
	ParamType   Type
}

func (n *ValueParameter) Kind() Kind            { return KindValueParameter }
func (n *ValueParameter) parameterDeclaration() {}

// ----------------------------------------------------------------------------
// Statements

// Statement is one of the statement nodes.
type Statement interface {
	Node
	statement()
}

var (
	_ Statement = (*Assignment)(nil)
	_ Statement = (*CompoundStatement)(nil)
	_ Statement = (*IfStatement)(nil)
	_ Statement = (*ProcedureStatement)(nil)
	_ Statement = (*TryExceptStatement)(nil)
	_ Statement = (*TryFinallyStatement)(nil)
)

// Target is the callee of a call or the left side of an assignment.
// *Identifier is the only form.
type Target interface {
	Node
	target()
}

// Assignment = Target ":=" Expression .
type Assignment struct {
	Span
	Target     Target
	Operator   string
	Expression Expression
}

func (n *Assignment) Kind() Kind { return KindAssignment }
func (n *Assignment) statement() {}

// ProcedureStatement = Target [ "(" ExpressionList ")" ] .
type ProcedureStatement struct {
	Span
	Target Target
	Params []Expression
}

func (n *ProcedureStatement) Kind() Kind { return KindProcedureStatement }
func (n *ProcedureStatement) statement() {}

// CompoundStatement = "begin" StatementSequence "end" .
type CompoundStatement struct {
	Span
	List []Statement
}

func (n *CompoundStatement) Kind() Kind { return KindCompoundStatement }
func (n *CompoundStatement) statement() {}

// IfStatement = "if" Expression "then" Statement [ "else" Statement ] .
type IfStatement struct {
	Span
	Condition   Expression
	TrueBranch  Statement
	FalseBranch Statement // nil if there's no else branch.
}

func (n *IfStatement) Kind() Kind { return KindIf }
func (n *IfStatement) statement() {}

// TryExceptStatement = "try" StatementSequence "except" ExceptionHandlers "end" .
type TryExceptStatement struct {
	Span
	Body     []Statement
	Handlers ExceptionHandlers // nil for an empty except part.
}

func (n *TryExceptStatement) Kind() Kind { return KindTryExcept }
func (n *TryExceptStatement) statement() {}

// TryFinallyStatement = "try" StatementSequence "finally" StatementSequence "end" .
type TryFinallyStatement struct {
	Span
	Body []Statement
	Fin  []Statement
}

func (n *TryFinallyStatement) Kind() Kind { return KindTryFinally }
func (n *TryFinallyStatement) statement() {}

// ExceptionHandlers is either a HandlerList or an *ExceptionHandlerClause.
type ExceptionHandlers interface {
	exceptionHandlers()
}

var (
	_ ExceptionHandlers = HandlerList(nil)
	_ ExceptionHandlers = (*ExceptionHandlerClause)(nil)
)

// HandlerList is the statement sequence of a bare except part.
type HandlerList []Statement

func (HandlerList) exceptionHandlers() {}

// ExceptionHandlerClause = "on" [ Identifier ":" ] Type "do" Statement .
type ExceptionHandlerClause struct {
	Span
	Identifier    *Identifier
	ExceptionType Type
	Statement     Statement
}

func (n *ExceptionHandlerClause) Kind() Kind         { return KindExceptionHandlerClause }
func (n *ExceptionHandlerClause) exceptionHandlers() {}

// ----------------------------------------------------------------------------
// Expressions

// Expression is one of the expression nodes.
type Expression interface {
	SetElement
	expression()
}

var (
	_ Expression = (*BinaryOp)(nil)
	_ Expression = (*ControlString)(nil)
	_ Expression = (*FunctionCall)(nil)
	_ Expression = (*IntegerConstant)(nil)
	_ Expression = (*Parens)(nil)
	_ Expression = (*SetConstructor)(nil)
	_ Expression = (*StringConstant)(nil)

	_ SetElement = (*Range)(nil)
)

// SetElement is an element of a set constructor, an Expression or a *Range.
type SetElement interface {
	Node
	setElement()
}

// StringConstant = "'" { Character } "'" .
type StringConstant struct {
	Span
	Value string // Unquoted.
}

func (n *StringConstant) Kind() Kind  { return KindStringConstant }
func (n *StringConstant) expression() {}
func (n *StringConstant) setElement() {}

// ControlString = "#" UnsignedInteger .
type ControlString struct {
	Span
	Value int64
}

func (n *ControlString) Kind() Kind  { return KindControlString }
func (n *ControlString) expression() {}
func (n *ControlString) setElement() {}

// IntegerConstant = DigitSequence .
type IntegerConstant struct {
	Span
	Value int64
}

func (n *IntegerConstant) Kind() Kind  { return KindIntegerConstant }
func (n *IntegerConstant) expression() {}
func (n *IntegerConstant) setElement() {}

// Parens = "(" Expression ")" .
type Parens struct {
	Span
	Expression Expression
}

func (n *Parens) Kind() Kind  { return KindParens }
func (n *Parens) expression() {}
func (n *Parens) setElement() {}

// BinaryOp = Expression Operator Expression .
type BinaryOp struct {
	Span
	Op    string
	Left  Expression
	Right Expression
}

func (n *BinaryOp) Kind() Kind  { return KindBinaryOp }
func (n *BinaryOp) expression() {}
func (n *BinaryOp) setElement() {}

// FunctionCall = Target [ "(" ExpressionList ")" ] .
//
// A FunctionCall without parameters is syntactically indistinguishable from a
// read of a variable or constant.
type FunctionCall struct {
	Span
	Target Target
	Params []Expression
}

func (n *FunctionCall) Kind() Kind  { return KindFunctionCall }
func (n *FunctionCall) expression() {}
func (n *FunctionCall) setElement() {}

// SetConstructor = "[" [ SetElement { "," SetElement } ] "]" .
type SetConstructor struct {
	Span
	List []SetElement
}

func (n *SetConstructor) Kind() Kind  { return KindSetConstructor }
func (n *SetConstructor) expression() {}
func (n *SetConstructor) setElement() {}

// Range = Expression ".." Expression .
type Range struct {
	Span
	Start Expression
	End   Expression
}

func (n *Range) Kind() Kind  { return KindRange }
func (n *Range) setElement() {}
