package yolang

import (
	"testing"

	"github.com/nathsou/yolang/ast"
	"github.com/nathsou/yolang/construct"
	"github.com/nathsou/yolang/types"
	"github.com/stretchr/testify/assert"
)

// fn id(x) { x }; id(true); id(1u32)
func TestIdentityFunctionGeneralizes(t *testing.T) {
	ctx := NewContext()
	argTy := ctx.Fresh()
	idRef := construct.Ref("id", types.FnTy([]types.MonoTy{argTy}, argTy))
	xRef := construct.Ref("x", argTy)
	idDecl := construct.FuncDecl("id", idRef, []string{"x"}, []*ast.NameRef{xRef},
		construct.Var("x", xRef, argTy))

	boolCall := construct.App(construct.Var("id", nil, ctx.Fresh()),
		[]ast.Expr{construct.Bool(true, ctx.Fresh())}, ctx.Fresh())
	boolGlobal := construct.GlobalDecl("use_bool", construct.Ref("use_bool", ctx.Fresh()), boolCall)

	u32Call := construct.App(construct.Var("id", nil, ctx.Fresh()),
		[]ast.Expr{construct.U32("1", ctx.Fresh())}, ctx.Fresh())
	u32Global := construct.GlobalDecl("use_u32", construct.Ref("use_u32", ctx.Fresh()), u32Call)

	env, subst, err := Infer(ctx, NewEnv(), []ast.Decl{idDecl, boolGlobal, u32Global})
	assert.NoError(t, err)

	assert.Equal(t, types.Bool(), Apply(subst, env["use_bool"].Body))
	assert.Equal(t, types.U32(), Apply(subst, env["use_u32"].Body))
}

// fn fact(n) { if n == 0 { 1 } else { n * fact(n - 1) } } : u32 -> u32
func TestRecursiveFactorialIsMonomorphic(t *testing.T) {
	ctx := NewContext()
	retTy := ctx.Fresh()
	nRef := construct.Ref("n", ctx.Fresh())
	factRef := construct.Ref("fact", types.FnTy([]types.MonoTy{nRef.Ty}, retTy))

	n := func() *ast.Var { return construct.Var("n", nRef, nRef.Ty) }
	cond := construct.Bin("==", n(), construct.U32("0", ctx.Fresh()), ctx.Fresh())
	recCall := construct.App(construct.Var("fact", factRef, factRef.Ty),
		[]ast.Expr{construct.Bin("-", n(), construct.U32("1", ctx.Fresh()), ctx.Fresh())}, ctx.Fresh())
	elseBranch := construct.Bin("*", n(), recCall, ctx.Fresh())
	body := construct.If(cond, construct.U32("1", ctx.Fresh()), elseBranch, ctx.Fresh())

	decl := construct.FuncDecl("fact", factRef, []string{"n"}, []*ast.NameRef{nRef}, body)

	env, subst, err := Infer(ctx, NewEnv(), []ast.Decl{decl})
	assert.NoError(t, err)

	fnTy := Apply(subst, env["fact"].Body)
	assert.Equal(t, types.FnTy([]types.MonoTy{types.U32()}, types.U32()), fnTy)
}

// Swapping the base case to `true` yields `type mismatch: expected u32, got bool`.
func TestRecursiveFactorialBaseCaseMismatch(t *testing.T) {
	ctx := NewContext()
	retTy := ctx.Fresh()
	nRef := construct.Ref("n", ctx.Fresh())
	factRef := construct.Ref("fact", types.FnTy([]types.MonoTy{nRef.Ty}, retTy))

	n := func() *ast.Var { return construct.Var("n", nRef, nRef.Ty) }
	cond := construct.Bin("==", n(), construct.U32("0", ctx.Fresh()), ctx.Fresh())
	recCall := construct.App(construct.Var("fact", factRef, factRef.Ty),
		[]ast.Expr{construct.Bin("-", n(), construct.U32("1", ctx.Fresh()), ctx.Fresh())}, ctx.Fresh())
	elseBranch := construct.Bin("*", n(), recCall, ctx.Fresh())
	body := construct.If(cond, construct.Bool(true, ctx.Fresh()), elseBranch, ctx.Fresh())

	decl := construct.FuncDecl("fact", factRef, []string{"n"}, []*ast.NameRef{nRef}, body)

	_, _, err := Infer(ctx, NewEnv(), []ast.Decl{decl})
	assert.EqualError(t, err, "type mismatch: expected u32, got bool")
}

// Point { x: u32, y: u32 }; p.x types as u32; p.z errors.
func TestStructFieldAccess(t *testing.T) {
	ctx := NewContext()
	ctx.Structs.Declare("Point").Attrs = []StructAttrDecl{
		{Name: "x", Ty: types.U32()},
		{Name: "y", Ty: types.U32()},
	}

	pRef := construct.Ref("p", &types.NamedStruct{Name: "Point"})
	access := construct.AttrAccess(construct.Var("p", pRef, pRef.Ty), "x", ctx.Fresh())
	decl := construct.GlobalDecl("got_x", construct.Ref("got_x", ctx.Fresh()), access)

	env := NewEnv().BindMono("p", pRef.Ty)
	resultEnv, subst, err := Infer(ctx, env, []ast.Decl{decl})
	assert.NoError(t, err)
	assert.Equal(t, types.U32(), Apply(subst, resultEnv["got_x"].Body))

	badAccess := construct.AttrAccess(construct.Var("p", pRef, pRef.Ty), "z", ctx.Fresh())
	badDecl := construct.GlobalDecl("got_z", construct.Ref("got_z", ctx.Fresh()), badAccess)
	_, _, err = Infer(ctx, env, []ast.Decl{badDecl})
	assert.EqualError(t, err, `attribute "z" does not exist on struct "Point"`)
}

// A { x: u32 }, B { x: u32, y: bool }; fn f(p) { p.x } infers PartialStruct{x: u32}
// with MultipleMatches; adding `p.y == true` collapses to OneMatch(B).
func TestStructMatchingCollapsesAsAttributesAreObserved(t *testing.T) {
	ctx := NewContext()
	ctx.Structs.Declare("A").Attrs = []StructAttrDecl{{Name: "x", Ty: types.U32()}}
	ctx.Structs.Declare("B").Attrs = []StructAttrDecl{
		{Name: "x", Ty: types.U32()},
		{Name: "y", Ty: types.Bool()},
	}

	pTy := ctx.Fresh()
	pRef := construct.Ref("p", pTy)
	xAccess := construct.AttrAccess(construct.Var("p", pRef, pTy), "x", ctx.Fresh())
	fRef := construct.Ref("f", ctx.Fresh())
	fDecl := construct.FuncDecl("f", fRef, []string{"p"}, []*ast.NameRef{pRef}, xAccess)

	env, subst, err := Infer(ctx, NewEnv(), []ast.Decl{fDecl})
	assert.NoError(t, err)

	pResolved := Apply(subst, pTy)
	partial, ok := pResolved.(*types.PartialStruct)
	assert.True(t, ok)
	assert.True(t, partial.Row.Has("x"))
	// two free vars remain: the still-unresolved attribute type (shared with
	// f's return type) and the row's fresh open tail.
	assert.Len(t, env["f"].Quantified, 2)

	pTy2 := ctx.Fresh()
	pRef2 := construct.Ref("p", pTy2)
	xAccess2 := construct.AttrAccess(construct.Var("p", pRef2, pTy2), "x", ctx.Fresh())
	yAccess2 := construct.AttrAccess(construct.Var("p", pRef2, pTy2), "y", ctx.Fresh())
	eqExpr := construct.Bin("==", yAccess2, construct.Bool(true, ctx.Fresh()), ctx.Fresh())
	body2 := construct.Block([]ast.Expr{eqExpr, xAccess2}, ctx.Fresh())
	fRef2 := construct.Ref("f2", ctx.Fresh())
	fDecl2 := construct.FuncDecl("f2", fRef2, []string{"p"}, []*ast.NameRef{pRef2}, body2)

	_, subst2, err := Infer(ctx, NewEnv(), []ast.Decl{fDecl2})
	assert.NoError(t, err)

	pResolved2 := Apply(subst2, pTy2)
	named, ok := pResolved2.(*types.NamedStruct)
	assert.True(t, ok)
	assert.Equal(t, "B", named.Name)
}

func TestTopLevelReturnErrors(t *testing.T) {
	ctx := NewContext()
	ret := construct.Return(nil, ctx.Fresh())
	decl := construct.GlobalDecl("x", construct.Ref("x", ctx.Fresh()), ret)

	_, _, err := Infer(ctx, NewEnv(), []ast.Decl{decl})
	assert.EqualError(t, err, "'return' used outside of a function")
}

// [1u32, true] errors during the second element's unification.
func TestArrayLiteralElementMismatch(t *testing.T) {
	ctx := NewContext()
	arr := construct.ArrayList([]ast.Expr{
		construct.U32("1", ctx.Fresh()),
		construct.Bool(true, ctx.Fresh()),
	}, ctx.Fresh())
	decl := construct.GlobalDecl("xs", construct.Ref("xs", ctx.Fresh()), arr)

	_, _, err := Infer(ctx, NewEnv(), []ast.Decl{decl})
	assert.EqualError(t, err, "type mismatch: expected u32, got bool")
}
