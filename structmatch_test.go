package yolang

import (
	"testing"

	"github.com/nathsou/yolang/ast"
	"github.com/nathsou/yolang/types"
	"github.com/stretchr/testify/assert"
)

func TestMatchStructNoMatch(t *testing.T) {
	ctx := NewContext()
	ctx.Structs.Declare("Point").Attrs = []StructAttrDecl{{Name: "x", Ty: types.U32()}}

	row := types.NewRow(ctx.Fresh().Index, types.RowAttr{Name: "nope", Ty: types.U32()})
	result := MatchStruct(ctx, row)
	assert.Equal(t, NoMatch, result.Kind)
}

func TestMatchStructOneMatch(t *testing.T) {
	ctx := NewContext()
	ctx.Structs.Declare("Point").Attrs = []StructAttrDecl{
		{Name: "x", Ty: types.U32()},
		{Name: "y", Ty: types.U32()},
	}
	ctx.Structs.Declare("Named").Attrs = []StructAttrDecl{{Name: "label", Ty: types.StrTy()}}

	row := types.NewRow(ctx.Fresh().Index, types.RowAttr{Name: "x", Ty: types.U32()})
	result := MatchStruct(ctx, row)
	assert.Equal(t, OneMatch, result.Kind)
	assert.Equal(t, []string{"Point"}, result.Candidates)
}

func TestMatchStructMultipleMatchesCollapsesAsAttrsAreAdded(t *testing.T) {
	ctx := NewContext()
	ctx.Structs.Declare("A").Attrs = []StructAttrDecl{{Name: "x", Ty: types.U32()}}
	ctx.Structs.Declare("B").Attrs = []StructAttrDecl{
		{Name: "x", Ty: types.U32()},
		{Name: "y", Ty: types.Bool()},
	}

	tail := ctx.Fresh().Index
	onlyX := types.NewRow(tail, types.RowAttr{Name: "x", Ty: types.U32()})
	result := MatchStruct(ctx, onlyX)
	assert.Equal(t, MultipleMatches, result.Kind)
	assert.ElementsMatch(t, []string{"A", "B"}, result.Candidates)

	withY := onlyX.Extend("y", types.Bool())
	result = MatchStruct(ctx, withY)
	assert.Equal(t, OneMatch, result.Kind)
	assert.Equal(t, []string{"B"}, result.Candidates)
}

func TestMatchStructAllowsStaticFuncNames(t *testing.T) {
	ctx := NewContext()
	decl := ctx.Structs.Declare("Point")
	decl.Attrs = []StructAttrDecl{{Name: "x", Ty: types.U32()}}
	originTy := types.FnTy(nil, &types.NamedStruct{Name: "Point"})
	decl.StaticFuncs = []*ast.NameRef{{Name: "origin", NewName: "origin", Ty: originTy}}

	row := types.NewRow(ctx.Fresh().Index, types.RowAttr{Name: "origin", Ty: types.FnTy(nil, &types.NamedStruct{Name: "Point"})})
	result := MatchStruct(ctx, row)
	assert.Equal(t, OneMatch, result.Kind)
}
