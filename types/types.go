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

// Package types defines the monomorphic and polymorphic type algebra used by
// the yolang inference core: unification variables, named/applied
// constructors, function types and the two struct flavors (NamedStruct and
// PartialStruct) used to resolve attribute access before a bearer's concrete
// type is known.
package types

import "fmt"

// MonoTy is a monomorphic type: a type without explicit universal
// quantification. The concrete implementations are *Var, *Const, *NamedStruct
// and *PartialStruct.
type MonoTy interface {
	String() string
	monoTy()
}

// Var is a unification variable, identified by a globally unique index
// allocated by a Context. Vars are compared by Index, never by identity.
type Var struct {
	Index uint32
}

func (*Var) monoTy() {}

func (v *Var) String() string { return fmt.Sprintf("'t%d", v.Index) }

// NewVar wraps a fresh-variable index as a MonoTy.
func NewVar(index uint32) *Var { return &Var{Index: index} }

// Const is a nullary or higher-arity type constructor: u8, u32, bool, char,
// string, unit, Ptr<T>, Tuple<T...>, Array<T, N>, Fn(args..., ret).
type Const struct {
	Name   string
	Params []MonoTy
}

func (*Const) monoTy() {}

func (c *Const) String() string {
	if len(c.Params) == 0 {
		return c.Name
	}
	s := c.Name + "<"
	for i, p := range c.Params {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	return s + ">"
}

// NewConst builds a type constructor application.
func NewConst(name string, params ...MonoTy) *Const {
	return &Const{Name: name, Params: params}
}

// Primitive constructors.

func Unit() *Const                   { return NewConst("unit") }
func Bool() *Const                   { return NewConst("bool") }
func U8() *Const                     { return NewConst("u8") }
func U32() *Const                    { return NewConst("u32") }
func Char() *Const                   { return NewConst("char") }
func StrTy() *Const                  { return NewConst("string") }
func PtrOf(t MonoTy) *Const          { return NewConst("Ptr", t) }
func TupleOf(elems ...MonoTy) *Const { return NewConst("Tuple", elems...) }

// ArrayOf builds Array<T, N>; the length is carried as an opaque constant
// name since array lengths are syntactic, never inferred.
func ArrayOf(elem MonoTy, length int) *Const {
	return &Const{Name: "Array", Params: []MonoTy{elem, arrayLen(length)}}
}

func arrayLen(n int) MonoTy { return NewConst(fmt.Sprintf("%d", n)) }

// ArrayLen extracts the statically known length from an Array<T, N> constant,
// or -1 if t is not an array type built by ArrayOf.
func ArrayLen(t MonoTy) int {
	c, ok := t.(*Const)
	if !ok || c.Name != "Array" || len(c.Params) != 2 {
		return -1
	}
	lenConst, ok := c.Params[1].(*Const)
	if !ok {
		return -1
	}
	var n int
	if _, err := fmt.Sscanf(lenConst.Name, "%d", &n); err != nil {
		return -1
	}
	return n
}

// FnTy builds Fn(args..., ret) as a Const named "Fn" whose last parameter is
// the return type.
func FnTy(args []MonoTy, ret MonoTy) *Const {
	params := make([]MonoTy, 0, len(args)+1)
	params = append(params, args...)
	params = append(params, ret)
	return &Const{Name: "Fn", Params: params}
}

// IsFn reports whether t is a function type built by FnTy, and if so returns
// its argument types and return type.
func IsFn(t MonoTy) (args []MonoTy, ret MonoTy, ok bool) {
	c, isConst := t.(*Const)
	if !isConst || c.Name != "Fn" || len(c.Params) == 0 {
		return nil, nil, false
	}
	return c.Params[:len(c.Params)-1], c.Params[len(c.Params)-1], true
}
