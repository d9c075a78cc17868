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

import (
	"strings"

	"github.com/benbjohnson/immutable"
)

// RowAttr is one binding of an attribute row: a name paired with its type.
type RowAttr struct {
	Name string
	Ty   MonoTy
}

var emptyRowMap = immutable.NewSortedMap(nil)

// Row is an attribute map plus an open tail variable, backed by an immutable
// sorted map so that Extend never mutates a row shared by other in-flight
// monotypes. The tail variable is unified either with another row (extending
// it) or with NamedStruct(n) (sealing it, once struct matching collapses the
// row to a single candidate).
type Row struct {
	m    *immutable.SortedMap
	Tail uint32
}

// NewRow builds a row with the given tail and attribute bindings.
func NewRow(tail uint32, attrs ...RowAttr) Row {
	r := Row{Tail: tail}
	for _, a := range attrs {
		r = r.Extend(a.Name, a.Ty)
	}
	return r
}

func (r Row) rowMap() *immutable.SortedMap {
	if r.m == nil {
		return emptyRowMap
	}
	return r.m
}

// Get returns the type bound to name in the row, if present.
func (r Row) Get(name string) (MonoTy, bool) {
	v, ok := r.rowMap().Get(name)
	if !ok {
		return nil, false
	}
	return v.(MonoTy), true
}

// Has reports whether name is bound in the row.
func (r Row) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Extend returns a copy of the row with (name, ty) inserted, overwriting any
// prior binding for name. The receiver is left unmodified.
func (r Row) Extend(name string, ty MonoTy) Row {
	return Row{m: r.rowMap().Set(name, ty), Tail: r.Tail}
}

// Attrs materializes the row's bindings sorted by name, the order the
// underlying sorted map iterates in, so error messages and the order in which
// a row's attributes are checked during struct matching are deterministic.
func (r Row) Attrs() []RowAttr {
	m := r.rowMap()
	attrs := make([]RowAttr, 0, m.Len())
	it := m.Iterator()
	for !it.Done() {
		k, v := it.Next()
		attrs = append(attrs, RowAttr{Name: k.(string), Ty: v.(MonoTy)})
	}
	return attrs
}

// Len returns the number of attributes bound in the row.
func (r Row) Len() int { return r.rowMap().Len() }

func (r Row) String() string {
	attrs := r.Attrs()
	var sb strings.Builder
	sb.WriteString("{")
	for i, a := range attrs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.Name)
		sb.WriteString(": ")
		sb.WriteString(a.Ty.String())
	}
	if len(attrs) > 0 {
		sb.WriteString(" | ")
	}
	sb.WriteString((&Var{Index: r.Tail}).String())
	sb.WriteString("}")
	return sb.String()
}

// NamedStruct is the monomorphic type of values known to be an instance of
// the struct declaration named Name.
type NamedStruct struct {
	Name string
}

func (*NamedStruct) monoTy() {}

func (n *NamedStruct) String() string { return n.Name }

// PartialStruct is the monomorphic type of values known only by a subset of
// the attributes accessed on them so far; Row.Tail stays open until struct
// matching (or an explicit type annotation) seals it to a NamedStruct.
type PartialStruct struct {
	Row Row
}

func (*PartialStruct) monoTy() {}

func (p *PartialStruct) String() string { return p.Row.String() }

// NewPartialStruct builds a PartialStruct with the given attributes and the
// given open tail variable.
func NewPartialStruct(tail uint32, attrs ...RowAttr) *PartialStruct {
	return &PartialStruct{Row: NewRow(tail, attrs...)}
}
