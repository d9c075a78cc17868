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

// Package construct provides terse builder functions for Core AST nodes and
// monotypes, used by tests to assemble fixtures without the boilerplate of
// a full tokenizer/parser/desugarer.
package construct

import (
	"github.com/nathsou/yolang/ast"
	"github.com/nathsou/yolang/types"
)

// Types

func TVar(index uint32) *types.Var { return types.NewVar(index) }

func TConst(name string, params ...types.MonoTy) *types.Const {
	return types.NewConst(name, params...)
}

func TUnit() *types.Const   { return types.Unit() }
func TBool() *types.Const   { return types.Bool() }
func TU8() *types.Const     { return types.U8() }
func TU32() *types.Const    { return types.U32() }
func TChar() *types.Const   { return types.Char() }
func TString() *types.Const { return types.StrTy() }

func TPtr(t types.MonoTy) *types.Const { return types.PtrOf(t) }

func TTuple(elems ...types.MonoTy) *types.Const { return types.TupleOf(elems...) }

func TArray(elem types.MonoTy, length int) *types.Const { return types.ArrayOf(elem, length) }

func TFn(args []types.MonoTy, ret types.MonoTy) *types.Const { return types.FnTy(args, ret) }

func TNamed(name string) *types.NamedStruct { return &types.NamedStruct{Name: name} }

func TPartial(tail uint32, attrs ...types.RowAttr) *types.PartialStruct {
	return types.NewPartialStruct(tail, attrs...)
}

func Attr(name string, ty types.MonoTy) types.RowAttr {
	return types.RowAttr{Name: name, Ty: ty}
}

// Ref builds a NameRef whose Ty is tau, typically a fresh type variable: the
// shape the desugarer would have installed before handing the tree to inference.
func Ref(name string, tau types.MonoTy) *ast.NameRef {
	return &ast.NameRef{Name: name, NewName: name, Ty: tau}
}

// Expressions

func Const(kind ast.ConstKind, value string, tau types.MonoTy) *ast.Const {
	return ast.NewConst(kind, value, tau)
}

func Unit(tau types.MonoTy) *ast.Const        { return ast.NewConst(ast.ConstUnit, "", tau) }
func Bool(value bool, tau types.MonoTy) *ast.Const {
	v := "false"
	if value {
		v = "true"
	}
	return ast.NewConst(ast.ConstBool, v, tau)
}
func U32(value string, tau types.MonoTy) *ast.Const {
	return ast.NewConst(ast.ConstU32, value, tau)
}

func Var(name string, ref *ast.NameRef, tau types.MonoTy) *ast.Var {
	return ast.NewVar(name, ref, tau)
}

func Assign(lhs, rhs ast.Expr, tau types.MonoTy) *ast.Assignment {
	return ast.NewAssignment(lhs, rhs, tau)
}

func Unary(op string, operand ast.Expr, tau types.MonoTy) *ast.UnaryOp {
	return ast.NewUnaryOp(op, operand, tau)
}

func Bin(op string, left, right ast.Expr, tau types.MonoTy) *ast.BinOp {
	return ast.NewBinOp(op, left, right, tau)
}

func Block(stmts []ast.Expr, tau types.MonoTy) *ast.Block {
	return ast.NewBlock(stmts, tau)
}

func LetIn(name string, ref *ast.NameRef, value, body ast.Expr, tau types.MonoTy) *ast.LetIn {
	return ast.NewLetIn(name, ref, value, body, tau)
}

func LetRec(name string, ref *ast.NameRef, args []string, argRefs []*ast.NameRef, body, in ast.Expr, tau types.MonoTy) *ast.LetRec {
	return ast.NewLetRec(name, ref, args, argRefs, body, in, tau)
}

func Func(args []string, argRefs []*ast.NameRef, body ast.Expr, tau types.MonoTy) *ast.Func {
	return ast.NewFunc(args, argRefs, body, tau)
}

func App(callee ast.Expr, args []ast.Expr, tau types.MonoTy) *ast.App {
	return ast.NewApp(callee, args, tau)
}

func If(cond, then, els ast.Expr, tau types.MonoTy) *ast.If {
	return ast.NewIf(cond, then, els, tau)
}

func While(cond, body ast.Expr, tau types.MonoTy) *ast.While {
	return ast.NewWhile(cond, body, tau)
}

func Return(value ast.Expr, tau types.MonoTy) *ast.Return {
	return ast.NewReturn(value, tau)
}

func TypeAssertion(value ast.Expr, originalTy, assertedTy, tau types.MonoTy) *ast.TypeAssertion {
	return ast.NewTypeAssertion(value, originalTy, assertedTy, tau)
}

func Tuple(elems []ast.Expr, tau types.MonoTy) *ast.Tuple {
	return ast.NewTuple(elems, tau)
}

func StructAttr(name string, value ast.Expr) ast.StructAttr {
	return ast.StructAttr{Name: name, Value: value}
}

func Struct(name string, attrs []ast.StructAttr, tau types.MonoTy) *ast.Struct {
	return ast.NewStruct(name, attrs, tau)
}

func ArrayList(elems []ast.Expr, tau types.MonoTy) *ast.Array {
	return ast.NewArrayList(elems, tau)
}

func ArrayRepeat(init ast.Expr, length int, tau types.MonoTy) *ast.Array {
	return ast.NewArrayRepeat(init, length, tau)
}

func AttrAccess(object ast.Expr, attr string, tau types.MonoTy) *ast.AttributeAccess {
	return ast.NewAttributeAccess(object, attr, tau)
}

// Declarations

func FuncDecl(name string, ref *ast.NameRef, args []string, argRefs []*ast.NameRef, body ast.Expr) *ast.FuncDecl {
	return &ast.FuncDecl{Name: name, Ref: ref, Args: args, ArgRefs: argRefs, Body: body}
}

func ExternFuncDecl(name string, ref *ast.NameRef, argTys []types.MonoTy, retTy types.MonoTy) *ast.ExternFuncDecl {
	return &ast.ExternFuncDecl{Name: name, Ref: ref, ArgTys: argTys, RetTy: retTy}
}

func GlobalDecl(name string, ref *ast.NameRef, init ast.Expr) *ast.GlobalDecl {
	return &ast.GlobalDecl{Name: name, Ref: ref, Init: init}
}

func StructDecl(name string) *ast.StructDecl {
	return &ast.StructDecl{Name: name}
}

func ImplFunc(name string, ref *ast.NameRef, args []string, argRefs []*ast.NameRef, body ast.Expr, selfMutable bool) *ast.ImplFunc {
	return &ast.ImplFunc{Name: name, Ref: ref, Args: args, ArgRefs: argRefs, Body: body, SelfMutable: selfMutable}
}

func ImplDecl(typeName string, funcs ...*ast.ImplFunc) *ast.ImplDecl {
	return &ast.ImplDecl{TypeName: typeName, Funcs: funcs}
}
