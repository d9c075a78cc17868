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

package ast

import "github.com/nathsou/yolang/types"

// Decl is the base for every top-level declaration.
type Decl interface {
	declNode()
}

// FuncDecl is a top-level function: `fn name(args) { body }`.
type FuncDecl struct {
	Name    string
	Ref     *NameRef
	Args    []string
	ArgRefs []*NameRef
	Body    Expr
}

func (*FuncDecl) declNode() {}

// ExternFuncDecl is a signature-only declaration for a function implemented
// outside the language: `extern fn name(argTys...) -> retTy`.
type ExternFuncDecl struct {
	Name   string
	Ref    *NameRef
	ArgTys []types.MonoTy
	RetTy  types.MonoTy
}

func (*ExternFuncDecl) declNode() {}

// GlobalDecl is a top-level value binding: `let name = init`.
type GlobalDecl struct {
	Name string
	Ref  *NameRef
	Init Expr
}

func (*GlobalDecl) declNode() {}

// StructDecl marks a struct as declared; the struct's attributes were already
// installed in the global struct table during desugaring, so registering
// this declaration is a no-op (see register.go).
type StructDecl struct {
	Name string
}

func (*StructDecl) declNode() {}

// ImplFunc is one function inside an `impl` block, before registration
// decides whether it is a method (Args[0] == "self") or a static
// function.
type ImplFunc struct {
	Name    string
	Ref     *NameRef
	Args    []string
	ArgRefs []*NameRef
	Body    Expr
	// SelfMutable records whether the surface `self` parameter (args[0]) was
	// taken by mutable reference. Meaningless for static functions.
	SelfMutable bool
}

// ImplDecl is `impl TypeName { ... }`.
type ImplDecl struct {
	TypeName string
	Funcs    []*ImplFunc
}

func (*ImplDecl) declNode() {}
