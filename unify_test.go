package yolang

import (
	"testing"

	"github.com/nathsou/yolang/types"
	"github.com/stretchr/testify/assert"
)

func TestUnifyVarWithConst(t *testing.T) {
	ctx := NewContext()
	v := ctx.Fresh()
	subst, err := Unify(ctx, v, types.U32())
	assert.NoError(t, err)
	assert.Equal(t, types.U32(), Apply(subst, v))
}

func TestUnifyOccursCheck(t *testing.T) {
	ctx := NewContext()
	v := ctx.Fresh()
	_, err := Unify(ctx, v, types.PtrOf(v))
	assert.EqualError(t, err, "recursive type")
}

func TestUnifyConstMismatch(t *testing.T) {
	ctx := NewContext()
	_, err := Unify(ctx, types.U32(), types.Bool())
	assert.EqualError(t, err, "type mismatch: expected u32, got bool")
}

func TestUnifyNamedStructs(t *testing.T) {
	ctx := NewContext()
	_, err := Unify(ctx, &types.NamedStruct{Name: "Point"}, &types.NamedStruct{Name: "Point"})
	assert.NoError(t, err)

	_, err = Unify(ctx, &types.NamedStruct{Name: "Point"}, &types.NamedStruct{Name: "Other"})
	assert.Error(t, err)
}

func TestUnifyNamedAgainstPartialSealsRow(t *testing.T) {
	ctx := NewContext()
	decl := ctx.Structs.Declare("Point")
	decl.Attrs = []StructAttrDecl{{Name: "x", Ty: types.U32()}}

	row := types.NewRow(ctx.Fresh().Index, types.RowAttr{Name: "x", Ty: types.U32()})
	partial := &types.PartialStruct{Row: row}

	subst, err := Unify(ctx, &types.NamedStruct{Name: "Point"}, partial)
	assert.NoError(t, err)
	assert.Equal(t, &types.NamedStruct{Name: "Point"}, Apply(subst, types.NewVar(row.Tail)))
}

func TestUnifyNamedAgainstPartialRejectsUnknownAttribute(t *testing.T) {
	ctx := NewContext()
	decl := ctx.Structs.Declare("Point")
	decl.Attrs = []StructAttrDecl{{Name: "x", Ty: types.U32()}}

	row := types.NewRow(ctx.Fresh().Index, types.RowAttr{Name: "z", Ty: types.U32()})
	_, err := Unify(ctx, &types.NamedStruct{Name: "Point"}, &types.PartialStruct{Row: row})
	assert.EqualError(t, err, `attribute "z" does not exist on struct "Point"`)
}

func TestUnifyTwoPartialStructsMergesExclusiveAttrs(t *testing.T) {
	ctx := NewContext()
	rowA := types.NewRow(ctx.Fresh().Index, types.RowAttr{Name: "x", Ty: types.U32()})
	rowB := types.NewRow(ctx.Fresh().Index, types.RowAttr{Name: "y", Ty: types.Bool()})

	subst, err := Unify(ctx, &types.PartialStruct{Row: rowA}, &types.PartialStruct{Row: rowB})
	assert.NoError(t, err)

	sealedA := Apply(subst, &types.PartialStruct{Row: rowA})
	partial, ok := sealedA.(*types.PartialStruct)
	assert.True(t, ok)
	assert.True(t, partial.Row.Has("x"))
	assert.True(t, partial.Row.Has("y"))
}

func TestUnifySameTailRowsRequireIdenticalAttrs(t *testing.T) {
	ctx := NewContext()
	tail := ctx.Fresh().Index
	rowA := types.NewRow(tail, types.RowAttr{Name: "x", Ty: types.U32()})
	rowB := types.Row{Tail: tail}

	_, err := Unify(ctx, &types.PartialStruct{Row: rowA}, &types.PartialStruct{Row: rowB})
	assert.Error(t, err)
}
