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

// Substitution is a finite map from type-variable index to monotype.
type Substitution map[uint32]types.MonoTy

// singleton builds a one-entry substitution `{i -> t}`.
func singleton(i uint32, t types.MonoTy) Substitution {
	return Substitution{i: t}
}

// Apply recursively replaces every TyVar(i) in t by subst[i], continuing
// through chains of bound variables until reaching a fixed point. For
// PartialStruct, both the tail variable and every bound attribute are
// rewritten; if the tail resolves to another PartialStruct, the two rows are
// merged (see unifyRows) so the result stays a single flat row.
func Apply(subst Substitution, t types.MonoTy) types.MonoTy {
	switch t := t.(type) {
	case *types.Var:
		if repl, ok := subst[t.Index]; ok {
			if v, isVar := repl.(*types.Var); isVar && v.Index == t.Index {
				return t
			}
			return Apply(subst, repl)
		}
		return t

	case *types.Const:
		if len(t.Params) == 0 {
			return t
		}
		params := make([]types.MonoTy, len(t.Params))
		for i, p := range t.Params {
			params[i] = Apply(subst, p)
		}
		return &types.Const{Name: t.Name, Params: params}

	case *types.NamedStruct:
		return t

	case *types.PartialStruct:
		attrs := make([]types.RowAttr, 0, t.Row.Len())
		for _, a := range t.Row.Attrs() {
			attrs = append(attrs, types.RowAttr{Name: a.Name, Ty: Apply(subst, a.Ty)})
		}
		tail, hasTail := subst[t.Row.Tail]
		if !hasTail {
			return &types.PartialStruct{Row: types.NewRow(t.Row.Tail, attrs...)}
		}
		tail = Apply(subst, tail)
		switch tail := tail.(type) {
		case *types.PartialStruct:
			merged := tail.Row
			for _, a := range attrs {
				merged = merged.Extend(a.Name, a.Ty)
			}
			return &types.PartialStruct{Row: merged}
		case *types.NamedStruct:
			// sealed: the row's own attributes were already checked against
			// the struct during unification, so the named type wins.
			return tail
		case *types.Var:
			return &types.PartialStruct{Row: types.NewRow(tail.Index, attrs...)}
		default:
			return &types.PartialStruct{Row: types.NewRow(t.Row.Tail, attrs...)}
		}
	}
	return t
}

// Compose produces sigma where sigma(i) = Apply(s2, s1(i)) for every i in
// dom(s1), augmented with the entries of s2 whose domain doesn't overlap
// dom(s1). Composition is left-biased: compose(s2, s1) applies s1 first,
// s2 second, i.e. compose(s2, s1)(x) = s2(s1(x)).
func Compose(s2, s1 Substitution) Substitution {
	out := make(Substitution, len(s1)+len(s2))
	for i, t := range s1 {
		out[i] = Apply(s2, t)
	}
	for i, t := range s2 {
		if _, ok := s1[i]; !ok {
			out[i] = t
		}
	}
	return out
}

// ApplyToScheme applies subst to a scheme's body, leaving its quantifiers
// untouched (quantified variables never appear in subst's domain for a
// well-formed substitution).
func ApplyToScheme(subst Substitution, s types.PolyTy) types.PolyTy {
	return types.PolyTy{Quantified: s.Quantified, Body: Apply(subst, s.Body)}
}

// ApplyToEnv applies subst to the body of every scheme bound in env.
func ApplyToEnv(subst Substitution, env Env) Env {
	out := make(Env, len(env))
	for name, scheme := range env {
		out[name] = ApplyToScheme(subst, scheme)
	}
	return out
}

// Generalize closes over every variable free in t but not free in env,
// turning it into a scheme those variables are universally quantified in.
func Generalize(env Env, t types.MonoTy) types.PolyTy {
	tv := types.FreeVars(t)
	ev := env.FreeVars()
	quantified := make([]uint32, 0, len(tv))
	for v := range tv {
		if _, bound := ev[v]; !bound {
			quantified = append(quantified, v)
		}
	}
	sortUint32s(quantified)
	return types.PolyTy{Quantified: quantified, Body: t}
}

// FreshInstance allocates a fresh type-variable for each of the scheme's
// quantifiers and substitutes them through its body.
func FreshInstance(ctx *Context, s types.PolyTy) types.MonoTy {
	if len(s.Quantified) == 0 {
		return s.Body
	}
	subst := make(Substitution, len(s.Quantified))
	for _, q := range s.Quantified {
		subst[q] = ctx.Fresh()
	}
	return Apply(subst, s.Body)
}

func sortUint32s(xs []uint32) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}
