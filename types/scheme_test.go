package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFreeVarsOfConst(t *testing.T) {
	a, b := NewVar(0), NewVar(1)
	fn := FnTy([]MonoTy{a}, b)
	fv := FreeVars(fn)
	assert.Len(t, fv, 2)
	_, hasA := fv[0]
	_, hasB := fv[1]
	assert.True(t, hasA)
	assert.True(t, hasB)
}

func TestFreeVarsOfPartialStruct(t *testing.T) {
	row := NewRow(2, RowAttr{Name: "x", Ty: NewVar(1)})
	fv := FreeVars(&PartialStruct{Row: row})
	assert.Len(t, fv, 2)
	_, hasTail := fv[2]
	_, hasAttr := fv[1]
	assert.True(t, hasTail)
	assert.True(t, hasAttr)
}

func TestFreeVarsOfNamedStructIsEmpty(t *testing.T) {
	fv := FreeVars(&NamedStruct{Name: "Point"})
	assert.Empty(t, fv)
}

func TestFreeVarsSchemeExcludesQuantified(t *testing.T) {
	scheme := PolyTy{Quantified: []uint32{0}, Body: FnTy([]MonoTy{NewVar(0)}, NewVar(1))}
	fv := FreeVarsScheme(scheme)
	assert.Len(t, fv, 1)
	_, has1 := fv[1]
	assert.True(t, has1)
}

func TestPolyTyString(t *testing.T) {
	mono := Mono(U32())
	assert.Equal(t, "u32", mono.String())

	scheme := PolyTy{Quantified: []uint32{0}, Body: NewVar(0)}
	assert.Equal(t, "forall 't0. 't0", scheme.String())
}
