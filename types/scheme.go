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

package types

import "strings"

// PolyTy is a polymorphic type scheme: a monotype body closed over a set of
// universally quantified variable indices.
type PolyTy struct {
	Quantified []uint32
	Body       MonoTy
}

// Mono wraps a monotype as a scheme with no quantifiers.
func Mono(t MonoTy) PolyTy { return PolyTy{Body: t} }

func (s PolyTy) String() string {
	if len(s.Quantified) == 0 {
		return s.Body.String()
	}
	var sb strings.Builder
	sb.WriteString("forall")
	for _, q := range s.Quantified {
		sb.WriteString(" ")
		sb.WriteString((&Var{Index: q}).String())
	}
	sb.WriteString(". ")
	sb.WriteString(s.Body.String())
	return sb.String()
}

// FreeVars computes the set of unification-variable indices free in t: every
// *Var reachable through the type's structure, including row tails.
func FreeVars(t MonoTy) map[uint32]struct{} {
	fv := map[uint32]struct{}{}
	collectFreeVars(t, fv)
	return fv
}

func collectFreeVars(t MonoTy, out map[uint32]struct{}) {
	switch t := t.(type) {
	case *Var:
		out[t.Index] = struct{}{}
	case *Const:
		for _, p := range t.Params {
			collectFreeVars(p, out)
		}
	case *NamedStruct:
		// no variables
	case *PartialStruct:
		for _, a := range t.Row.Attrs() {
			collectFreeVars(a.Ty, out)
		}
		out[t.Row.Tail] = struct{}{}
	}
}

// FreeVarsScheme computes the variables free in a scheme's body, excluding
// its own quantifiers.
func FreeVarsScheme(s PolyTy) map[uint32]struct{} {
	fv := FreeVars(s.Body)
	for _, q := range s.Quantified {
		delete(fv, q)
	}
	return fv
}
