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

package yolang

import "github.com/nathsou/yolang/types"

// Unify computes the most general unifier of t1 and t2. Callers are expected
// to have already applied any substitution accumulated so far to both sides;
// Unify itself operates on the raw monotypes it is given.
func Unify(ctx *Context, t1, t2 types.MonoTy) (Substitution, error) {
	switch a := t1.(type) {
	case *types.Var:
		return unifyVar(a, t2)
	}
	if b, ok := t2.(*types.Var); ok {
		return unifyVar(b, t1)
	}

	switch a := t1.(type) {
	case *types.Const:
		b, ok := t2.(*types.Const)
		if !ok || a.Name != b.Name || len(a.Params) != len(b.Params) {
			return nil, errTypeMismatch(t1, t2)
		}
		subst := Substitution{}
		for i := range a.Params {
			s, err := Unify(ctx, Apply(subst, a.Params[i]), Apply(subst, b.Params[i]))
			if err != nil {
				return nil, err
			}
			subst = Compose(s, subst)
		}
		return subst, nil

	case *types.NamedStruct:
		switch b := t2.(type) {
		case *types.NamedStruct:
			if a.Name != b.Name {
				return nil, errTypeMismatch(t1, t2)
			}
			return Substitution{}, nil
		case *types.PartialStruct:
			return unifyNamedPartial(ctx, a, b)
		}
		return nil, errTypeMismatch(t1, t2)

	case *types.PartialStruct:
		switch b := t2.(type) {
		case *types.NamedStruct:
			return unifyNamedPartial(ctx, b, a)
		case *types.PartialStruct:
			return unifyRows(ctx, a, b)
		}
		return nil, errTypeMismatch(t1, t2)
	}

	return nil, errTypeMismatch(t1, t2)
}

func unifyVar(v *types.Var, t types.MonoTy) (Substitution, error) {
	if other, ok := t.(*types.Var); ok && other.Index == v.Index {
		return Substitution{}, nil
	}
	if occurs(v.Index, t) {
		return nil, errRecursiveType
	}
	return singleton(v.Index, t), nil
}

// occurs is the occurs-check, extended to rows: a row's tail variable must
// never appear among its own bindings, directly or transitively.
func occurs(i uint32, t types.MonoTy) bool {
	switch t := t.(type) {
	case *types.Var:
		return t.Index == i
	case *types.Const:
		for _, p := range t.Params {
			if occurs(i, p) {
				return true
			}
		}
		return false
	case *types.PartialStruct:
		if t.Row.Tail == i {
			return true
		}
		for _, a := range t.Row.Attrs() {
			if occurs(i, a.Ty) {
				return true
			}
		}
		return false
	}
	return false
}

// unifyNamedPartial seals a partial struct against a registered struct
// declaration: every row binding (including method and static-function
// attributes, when projecting a struct name itself) must correspond to a
// declared attribute and unify with its declared type, then the row's tail
// is bound to the named struct.
func unifyNamedPartial(ctx *Context, named *types.NamedStruct, partial *types.PartialStruct) (Substitution, error) {
	decl, ok := ctx.Structs.Lookup(named.Name)
	if !ok {
		return nil, errUndeclaredStruct(named.Name)
	}
	subst := Substitution{}
	for _, rowAttr := range partial.Row.Attrs() {
		declAttr, ok := decl.Attr(rowAttr.Name)
		if !ok {
			if _, isStaticFunc := decl.StaticFunc(rowAttr.Name); isStaticFunc {
				continue
			}
			return nil, errAttributeNotExist(rowAttr.Name, named.Name)
		}
		s, err := Unify(ctx, Apply(subst, declAttr.Ty), Apply(subst, rowAttr.Ty))
		if err != nil {
			return nil, err
		}
		subst = Compose(s, subst)
	}
	subst = Compose(singleton(partial.Row.Tail, named), subst)
	return subst, nil
}

// unifyRows merges two partial-struct rows: shared attributes unify their
// values, and each row is extended with the other's exclusive attributes
// through a freshly allocated tail variable.
func unifyRows(ctx *Context, a, b *types.PartialStruct) (Substitution, error) {
	subst := Substitution{}
	var onlyA, onlyB []types.RowAttr
	for _, attrA := range a.Row.Attrs() {
		if attrB, ok := b.Row.Get(attrA.Name); ok {
			s, err := Unify(ctx, Apply(subst, attrA.Ty), Apply(subst, attrB))
			if err != nil {
				return nil, err
			}
			subst = Compose(s, subst)
		} else {
			onlyA = append(onlyA, attrA)
		}
	}
	for _, attrB := range b.Row.Attrs() {
		if !a.Row.Has(attrB.Name) {
			onlyB = append(onlyB, attrB)
		}
	}

	if a.Row.Tail == b.Row.Tail {
		if len(onlyA) != 0 || len(onlyB) != 0 {
			return nil, errTypeMismatch(a, b)
		}
		return subst, nil
	}

	mergedTail := ctx.Fresh().Index
	// a's tail must absorb b's exclusive attributes, and vice versa, so that
	// both rows agree on a common, fully-merged shape.
	rowForA := types.NewRow(mergedTail, onlyB...)
	rowForB := types.NewRow(mergedTail, onlyA...)
	subst = Compose(singleton(a.Row.Tail, &types.PartialStruct{Row: rowForA}), subst)
	subst = Compose(singleton(b.Row.Tail, &types.PartialStruct{Row: rowForB}), subst)
	return subst, nil
}
