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

// Package yolang is the type inference core for yolang: a Hindley-Milner
// engine extended with named nominal structs, impl blocks and a structural
// struct-matching pass that resolves attribute access before a bearer's
// concrete type is known. The tokenizer, parser and desugaring pass that
// hand this package a Core AST live upstream and outside this module.
package yolang

import (
	"github.com/nathsou/yolang/ast"
	"github.com/nathsou/yolang/types"
)

// MethodImpl marks a struct attribute as a method slot rather than a plain
// field, recording which function implements it and whether it takes self
// by mutable reference.
type MethodImpl struct {
	FuncRef     *ast.NameRef
	SelfMutable bool
}

// StructAttrDecl is one declared attribute of a struct: a field, or a method
// slot when Impl is non-nil.
type StructAttrDecl struct {
	Name string
	Ty   types.MonoTy
	Impl *MethodImpl
}

// StructDecl is the global-table entry for a registered struct declaration.
type StructDecl struct {
	Name        string
	Attrs       []StructAttrDecl
	StaticFuncs []*ast.NameRef
}

// Attr looks up a declared attribute (field or method) by name.
func (s *StructDecl) Attr(name string) (StructAttrDecl, bool) {
	for _, a := range s.Attrs {
		if a.Name == name {
			return a, true
		}
	}
	return StructAttrDecl{}, false
}

// StaticFunc looks up a static function registered on the struct by name.
func (s *StructDecl) StaticFunc(name string) (*ast.NameRef, bool) {
	for _, f := range s.StaticFuncs {
		if f.Name == name || f.NewName == name {
			return f, true
		}
	}
	return nil, false
}

// StaticFuncRow builds the row of (name, type) bindings projected when a
// struct name is referenced as a value (see infer.go, case Var).
func (s *StructDecl) StaticFuncRow() []types.RowAttr {
	attrs := make([]types.RowAttr, 0, len(s.StaticFuncs))
	for _, f := range s.StaticFuncs {
		if f.Ty != nil {
			attrs = append(attrs, types.RowAttr{Name: f.Name, Ty: f.Ty})
		}
	}
	return attrs
}

// StructTable is the global, append-only registry of struct declarations.
// Declarations are added once during desugaring; impl installations append
// to a struct's Attrs/StaticFuncs during declaration registration. It is not
// safe for concurrent modification.
type StructTable struct {
	byName map[string]*StructDecl
	order  []string
}

// NewStructTable creates an empty struct table.
func NewStructTable() *StructTable {
	return &StructTable{byName: make(map[string]*StructDecl)}
}

// Declare registers a new struct by name, returning its table entry. Declaring
// the same name twice returns the existing entry.
func (t *StructTable) Declare(name string) *StructDecl {
	if existing, ok := t.byName[name]; ok {
		return existing
	}
	decl := &StructDecl{Name: name}
	t.byName[name] = decl
	t.order = append(t.order, name)
	return decl
}

// Lookup finds a registered struct declaration by name.
func (t *StructTable) Lookup(name string) (*StructDecl, bool) {
	d, ok := t.byName[name]
	return d, ok
}

// All returns every registered struct declaration in registration order, so
// that struct-matching and error listings are deterministic.
func (t *StructTable) All() []*StructDecl {
	decls := make([]*StructDecl, len(t.order))
	for i, name := range t.order {
		decls[i] = t.byName[name]
	}
	return decls
}

// Context is the fresh-variable allocator and global struct table shared by a
// single compilation pass. It keeps no registry of identifiers; their schemes
// live in Env. It is not safe for concurrent use.
type Context struct {
	nextVar uint32
	Structs *StructTable
}

// NewContext creates an empty inference context.
func NewContext() *Context {
	return &Context{Structs: NewStructTable()}
}

// Fresh allocates a new, never-before-seen type variable. Fresh variable
// indices are monotonically increasing and never recycled within a context.
func (c *Context) Fresh() *types.Var {
	v := types.NewVar(c.nextVar)
	c.nextVar++
	return v
}

