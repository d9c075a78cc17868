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

// MatchKind classifies the outcome of struct-matching a partial row against
// the global struct table.
type MatchKind int

const (
	NoMatch MatchKind = iota
	OneMatch
	MultipleMatches
)

// MatchResult is the outcome of matching a row against every registered
// struct declaration.
type MatchResult struct {
	Kind       MatchKind
	Candidates []string // struct names consistent with the row, in table order
}

// MatchStruct finds which registered struct declarations are consistent with
// row: every (name, ty) binding in the row must correspond to an attribute
// (or static function) of the candidate whose declared type unifies with ty.
// Because Unify never mutates its inputs, speculatively trying a candidate
// and discarding the unifier on failure is safe without any stash/rollback
// bookkeeping.
func MatchStruct(ctx *Context, row types.Row) MatchResult {
	var candidates []string
	for _, decl := range ctx.Structs.All() {
		if rowConsistentWithStruct(ctx, row, decl) {
			candidates = append(candidates, decl.Name)
		}
	}
	switch len(candidates) {
	case 0:
		return MatchResult{Kind: NoMatch}
	case 1:
		return MatchResult{Kind: OneMatch, Candidates: candidates}
	default:
		return MatchResult{Kind: MultipleMatches, Candidates: candidates}
	}
}

func rowConsistentWithStruct(ctx *Context, row types.Row, decl *StructDecl) bool {
	for _, attr := range row.Attrs() {
		declAttr, ok := decl.Attr(attr.Name)
		if !ok {
			if _, isStatic := decl.StaticFunc(attr.Name); isStatic {
				continue
			}
			return false
		}
		if _, err := Unify(ctx, declAttr.Ty, attr.Ty); err != nil {
			return false
		}
	}
	return true
}
