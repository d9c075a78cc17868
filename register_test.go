package yolang

import (
	"testing"

	"github.com/nathsou/yolang/ast"
	"github.com/nathsou/yolang/construct"
	"github.com/nathsou/yolang/types"
	"github.com/stretchr/testify/assert"
)

func TestRegisterFuncDeclGeneralizes(t *testing.T) {
	ctx := NewContext()
	argTy := ctx.Fresh()
	retTy := ctx.Fresh()
	ref := construct.Ref("id", types.FnTy([]types.MonoTy{argTy}, retTy))
	argRef := construct.Ref("x", argTy)

	decl := construct.FuncDecl("id", ref, []string{"x"}, []*ast.NameRef{argRef},
		construct.Var("x", argRef, argTy))

	env, _, err := Infer(ctx, NewEnv(), []ast.Decl{decl})
	assert.NoError(t, err)

	scheme, ok := env["id"]
	assert.True(t, ok)
	assert.Len(t, scheme.Quantified, 1)
}

func TestRegisterExternFuncDeclBindsSignature(t *testing.T) {
	ctx := NewContext()
	// ref.Ty starts out as an unresolved placeholder, the shape the desugarer
	// actually hands inference; registerExternFuncDecl has to unify it with
	// the declared signature itself rather than relying on it already being
	// a Fn type.
	ref := construct.Ref("syscall_write", ctx.Fresh())
	decl := construct.ExternFuncDecl("syscall_write", ref, []types.MonoTy{types.U32()}, types.U32())

	env, subst, err := Infer(ctx, NewEnv(), []ast.Decl{decl})
	assert.NoError(t, err)

	scheme, ok := env["syscall_write"]
	assert.True(t, ok)
	assert.Equal(t, types.FnTy([]types.MonoTy{types.U32()}, types.U32()), scheme.Body)
	assert.Equal(t, types.FnTy([]types.MonoTy{types.U32()}, types.U32()), Apply(subst, ref.Ty))
}

func TestRegisterGlobalDeclIsMonomorphic(t *testing.T) {
	ctx := NewContext()
	ref := construct.Ref("counter", ctx.Fresh())
	decl := construct.GlobalDecl("counter", ref, construct.U32("0", types.U32()))

	env, _, err := Infer(ctx, NewEnv(), []ast.Decl{decl})
	assert.NoError(t, err)

	scheme := env["counter"]
	assert.Empty(t, scheme.Quantified)
	assert.Equal(t, types.U32(), scheme.Body)
}

func TestRegisterImplDeclInstallsMethodAndDropsFromEnv(t *testing.T) {
	ctx := NewContext()
	decl := ctx.Structs.Declare("Point")
	decl.Attrs = []StructAttrDecl{{Name: "x", Ty: types.U32()}}

	// self's declared type starts out as an unresolved placeholder, not the
	// already-correct NamedStruct: registerImplDecl has to pin it itself.
	selfRef := construct.Ref("self", ctx.Fresh())
	getXRef := construct.Ref("get_x", ctx.Fresh())

	impl := construct.ImplFunc("get_x", getXRef, []string{"self"}, []*ast.NameRef{selfRef},
		construct.AttrAccess(construct.Var("self", selfRef, selfRef.Ty), "x", ctx.Fresh()), false)

	program := []ast.Decl{construct.ImplDecl("Point", impl)}
	env, _, err := Infer(ctx, NewEnv(), program)
	assert.NoError(t, err)

	_, stillGlobal := env["get_x"]
	assert.False(t, stillGlobal)

	attr, ok := decl.Attr("get_x")
	assert.True(t, ok)
	assert.NotNil(t, attr.Impl)

	// self is pinned to NamedStruct("Point") and dropped from the method's
	// own Fn signature, so a zero-arg receiver call unifies against it.
	assert.Equal(t, &types.NamedStruct{Name: "Point"}, selfRef.Ty)
	assert.Equal(t, types.FnTy(nil, types.U32()), attr.Ty)
	assert.Equal(t, "Point_get_x", getXRef.NewName)
}

// TestRegisterImplDeclMethodCallHasSelfExcludedArity exercises the bug
// described by the maintainer review directly: a zero-argument receiver
// call `p.dist()` builds App(AttributeAccess(p, "dist"), []) and expects to
// unify against Fn([], ret), not Fn(SelfTy, ret).
func TestRegisterImplDeclMethodCallHasSelfExcludedArity(t *testing.T) {
	ctx := NewContext()
	pointDecl := ctx.Structs.Declare("Point")
	pointDecl.Attrs = []StructAttrDecl{{Name: "x", Ty: types.U32()}}

	selfRef := construct.Ref("self", ctx.Fresh())
	distRef := construct.Ref("dist", ctx.Fresh())
	implFunc := construct.ImplFunc("dist", distRef, []string{"self"}, []*ast.NameRef{selfRef},
		construct.AttrAccess(construct.Var("self", selfRef, selfRef.Ty), "x", ctx.Fresh()), false)

	pRef := construct.Ref("p", ctx.Fresh())
	callTau := ctx.Fresh()
	call := construct.App(
		construct.AttrAccess(construct.Var("p", pRef, pRef.Ty), "dist", ctx.Fresh()),
		nil,
		callTau,
	)

	pDecl := construct.GlobalDecl("p", pRef, construct.Struct("Point",
		[]ast.StructAttr{construct.StructAttr("x", construct.U32("0", ctx.Fresh()))},
		ctx.Fresh()))
	callDecl := construct.GlobalDecl("call_result", construct.Ref("call_result", ctx.Fresh()), call)

	program := []ast.Decl{construct.ImplDecl("Point", implFunc), pDecl, callDecl}
	env, subst, err := Infer(ctx, NewEnv(), program)
	assert.NoError(t, err)
	assert.Equal(t, types.U32(), Apply(subst, env["call_result"].Body))
}

func TestRegisterImplDeclInstallsStaticFunc(t *testing.T) {
	ctx := NewContext()
	decl := ctx.Structs.Declare("Point")

	retTy := &types.NamedStruct{Name: "Point"}
	originRef := construct.Ref("origin", types.FnTy(nil, retTy))

	impl := construct.ImplFunc("origin", originRef, nil, nil,
		construct.Struct("Point", nil, ctx.Fresh()), false)

	program := []ast.Decl{construct.ImplDecl("Point", impl)}
	env, _, err := Infer(ctx, NewEnv(), program)
	assert.NoError(t, err)

	_, stillGlobal := env["origin"]
	assert.False(t, stillGlobal)

	ref, isStatic := decl.StaticFunc("origin")
	assert.True(t, isStatic)
	assert.Equal(t, "Point_origin", ref.NewName)
}

func TestRegisterImplDeclUnknownTypeErrors(t *testing.T) {
	ctx := NewContext()
	ref := construct.Ref("f", ctx.Fresh())
	impl := construct.ImplFunc("f", ref, nil, nil, construct.Unit(ctx.Fresh()), false)
	program := []ast.Decl{construct.ImplDecl("Ghost", impl)}

	_, _, err := Infer(ctx, NewEnv(), program)
	assert.EqualError(t, err, `cannot implement for unknown type "Ghost"`)
}
