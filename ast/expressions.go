// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package ast defines the Core AST handed to the inference engine: the
// tokenizer, parser and surface-to-core desugaring pass all live upstream of
// this package and are out of scope here. Every node carries a Tau slot
// (pre-filled for literals, otherwise a fresh type-variable allocated by the
// desugarer). Inference never writes to the slot: it returns an out-of-band
// substitution, which callers apply to each slot afterward.
package ast

import "github.com/nathsou/yolang/types"

// Expr is the base for every Core AST expression node.
type Expr interface {
	exprNode()
	// Tau returns the node's type slot.
	Tau() types.MonoTy
	// SetTau overwrites the node's type slot. Used by the desugarer to
	// install a fresh type-variable, and by callers applying the final
	// substitution to materialize concrete types.
	SetTau(types.MonoTy)
}

type baseExpr struct {
	tau types.MonoTy
}

func (e *baseExpr) Tau() types.MonoTy     { return e.tau }
func (e *baseExpr) SetTau(t types.MonoTy) { e.tau = t }

// NameRef is a mutable cell shared between every occurrence of an
// already-uniquified identifier. Ty is updated in place by substitution
// application once inference succeeds.
type NameRef struct {
	Name    string
	NewName string
	Ty      types.MonoTy
}

// ConstKind distinguishes the handful of literal forms the core cares about;
// their monotypes are fixed at desugar time.
type ConstKind int

const (
	ConstUnit ConstKind = iota
	ConstBool
	ConstU8
	ConstU32
	ConstChar
	ConstString
)

// Const is a literal value whose type is known without inference.
type Const struct {
	baseExpr
	Kind  ConstKind
	Value string
}

func (*Const) exprNode() {}

// NewConst builds a literal node with its type slot pre-filled.
func NewConst(kind ConstKind, value string, ty types.MonoTy) *Const {
	return &Const{baseExpr: baseExpr{tau: ty}, Kind: kind, Value: value}
}

// Var is a reference to a bound identifier or, if the name resolves to a
// registered struct rather than a value, a projection onto that struct's
// static functions (see infer.go, case Var).
type Var struct {
	baseExpr
	Name string
	Ref  *NameRef
}

func (*Var) exprNode() {}

func NewVar(name string, ref *NameRef, tau types.MonoTy) *Var {
	return &Var{baseExpr: baseExpr{tau: tau}, Name: name, Ref: ref}
}

// Assignment is `lhs = rhs`; it type-checks to unit.
type Assignment struct {
	baseExpr
	Lhs, Rhs Expr
}

func (*Assignment) exprNode() {}

func NewAssignment(lhs, rhs Expr, tau types.MonoTy) *Assignment {
	return &Assignment{baseExpr: baseExpr{tau: tau}, Lhs: lhs, Rhs: rhs}
}

// UnaryOp is a prefix operator: `-x`, `!x`, `*x` (Deref).
type UnaryOp struct {
	baseExpr
	Op      string
	Operand Expr
}

func (*UnaryOp) exprNode() {}

func NewUnaryOp(op string, operand Expr, tau types.MonoTy) *UnaryOp {
	return &UnaryOp{baseExpr: baseExpr{tau: tau}, Op: op, Operand: operand}
}

// BinOp is an infix operator: arithmetic, comparison, logical, shift.
type BinOp struct {
	baseExpr
	Op          string
	Left, Right Expr
}

func (*BinOp) exprNode() {}

func NewBinOp(op string, left, right Expr, tau types.MonoTy) *BinOp {
	return &BinOp{baseExpr: baseExpr{tau: tau}, Op: op, Left: left, Right: right}
}

// Block is a sequence of statement-expressions whose value is the last
// expression's value, or unit if the block is empty.
type Block struct {
	baseExpr
	Stmts []Expr
}

func (*Block) exprNode() {}

func NewBlock(stmts []Expr, tau types.MonoTy) *Block {
	return &Block{baseExpr: baseExpr{tau: tau}, Stmts: stmts}
}

// Last returns the block's trailing expression, or nil for an empty block.
func (b *Block) Last() Expr {
	if len(b.Stmts) == 0 {
		return nil
	}
	return b.Stmts[len(b.Stmts)-1]
}

// LetIn is `let x = e1 in e2`, generalizing e1's type at the let boundary.
type LetIn struct {
	baseExpr
	Name  string
	Ref   *NameRef
	Value Expr
	Body  Expr
}

func (*LetIn) exprNode() {}

func NewLetIn(name string, ref *NameRef, value, body Expr, tau types.MonoTy) *LetIn {
	return &LetIn{baseExpr: baseExpr{tau: tau}, Name: name, Ref: ref, Value: value, Body: body}
}

// LetRec is the recursive-binding form every surface `let x = fn args -> body`
// has already been desugared into: `f` and its arguments are monomorphic
// while checking Body, then `f` is generalized for In.
type LetRec struct {
	baseExpr
	Name    string
	Ref     *NameRef
	Args    []string
	ArgRefs []*NameRef
	Body    Expr
	In      Expr
}

func (*LetRec) exprNode() {}

func NewLetRec(name string, ref *NameRef, args []string, argRefs []*NameRef, body, in Expr, tau types.MonoTy) *LetRec {
	return &LetRec{baseExpr: baseExpr{tau: tau}, Name: name, Ref: ref, Args: args, ArgRefs: argRefs, Body: body, In: in}
}

// Func is a function literal: `fn(args) { body }`.
type Func struct {
	baseExpr
	Args    []string
	ArgRefs []*NameRef
	Body    Expr
}

func (*Func) exprNode() {}

func NewFunc(args []string, argRefs []*NameRef, body Expr, tau types.MonoTy) *Func {
	return &Func{baseExpr: baseExpr{tau: tau}, Args: args, ArgRefs: argRefs, Body: body}
}

// App is a function application: `lhs(args...)`.
type App struct {
	baseExpr
	Callee Expr
	Args   []Expr
}

func (*App) exprNode() {}

func NewApp(callee Expr, args []Expr, tau types.MonoTy) *App {
	return &App{baseExpr: baseExpr{tau: tau}, Callee: callee, Args: args}
}

// If is `if cond { then } else { else }`.
type If struct {
	baseExpr
	Cond, Then, Else Expr
}

func (*If) exprNode() {}

func NewIf(cond, then, els Expr, tau types.MonoTy) *If {
	return &If{baseExpr: baseExpr{tau: tau}, Cond: cond, Then: then, Else: els}
}

// While is `while cond { body }`; it type-checks to unit.
type While struct {
	baseExpr
	Cond, Body Expr
}

func (*While) exprNode() {}

func NewWhile(cond, body Expr, tau types.MonoTy) *While {
	return &While{baseExpr: baseExpr{tau: tau}, Cond: cond, Body: body}
}

// Return is `return e` or bare `return`. Value is nil for the bare form.
type Return struct {
	baseExpr
	Value Expr
}

func (*Return) exprNode() {}

func NewReturn(value Expr, tau types.MonoTy) *Return {
	return &Return{baseExpr: baseExpr{tau: tau}, Value: value}
}

// TypeAssertion is `e as T`; OriginalTy is the type e was inferred to have
// before the assertion, AssertedTy is validated by a collaborator outside
// this core.
type TypeAssertion struct {
	baseExpr
	Value                  Expr
	OriginalTy, AssertedTy types.MonoTy
}

func (*TypeAssertion) exprNode() {}

func NewTypeAssertion(value Expr, originalTy, assertedTy, tau types.MonoTy) *TypeAssertion {
	return &TypeAssertion{baseExpr: baseExpr{tau: tau}, Value: value, OriginalTy: originalTy, AssertedTy: assertedTy}
}

// Tuple is `(e1, e2, ...)`.
type Tuple struct {
	baseExpr
	Elems []Expr
}

func (*Tuple) exprNode() {}

func NewTuple(elems []Expr, tau types.MonoTy) *Tuple {
	return &Tuple{baseExpr: baseExpr{tau: tau}, Elems: elems}
}

// StructAttr is one `name: value` pair in a struct literal.
type StructAttr struct {
	Name  string
	Value Expr
}

// Struct is a struct literal: `Name { attr: value, ... }`.
type Struct struct {
	baseExpr
	Name  string
	Attrs []StructAttr
}

func (*Struct) exprNode() {}

func NewStruct(name string, attrs []StructAttr, tau types.MonoTy) *Struct {
	return &Struct{baseExpr: baseExpr{tau: tau}, Name: name, Attrs: attrs}
}

// Array is an array literal, either a list of initializers or a single
// repeated initializer with a syntactic length.
type Array struct {
	baseExpr
	Elems     []Expr
	RepeatLen int // > 0 for the `[init; N]` repeat form, 0 for `[e1, e2, ...]`
}

func (*Array) exprNode() {}

func NewArrayList(elems []Expr, tau types.MonoTy) *Array {
	return &Array{baseExpr: baseExpr{tau: tau}, Elems: elems}
}

func NewArrayRepeat(init Expr, length int, tau types.MonoTy) *Array {
	return &Array{baseExpr: baseExpr{tau: tau}, Elems: []Expr{init}, RepeatLen: length}
}

// Len returns the array's syntactic length.
func (a *Array) Len() int {
	if a.RepeatLen > 0 {
		return a.RepeatLen
	}
	return len(a.Elems)
}

// AttributeAccess is `lhs.attr`, possibly a field or a zero-argument method
// reference depending on the struct declaration.
type AttributeAccess struct {
	baseExpr
	Object Expr
	Attr   string
}

func (*AttributeAccess) exprNode() {}

func NewAttributeAccess(object Expr, attr string, tau types.MonoTy) *AttributeAccess {
	return &AttributeAccess{baseExpr: baseExpr{tau: tau}, Object: object, Attr: attr}
}
