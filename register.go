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

import (
	"github.com/nathsou/yolang/ast"
	"github.com/nathsou/yolang/types"
)

// Infer is the module's single entry point: it registers every top-level
// declaration in program order, threading environment and substitution, and
// returns the final environment and substitution or the first error
// encountered. Declarations are processed left to right; a later
// declaration sees the generalized types of every earlier one.
func Infer(ctx *Context, env Env, program []ast.Decl) (Env, Substitution, error) {
	inf := NewInferrer(ctx)
	subst := Substitution{}
	curEnv := env
	for _, decl := range program {
		newEnv, s, err := registerDecl(inf, curEnv, decl)
		if err != nil {
			return nil, nil, err
		}
		subst = Compose(s, subst)
		curEnv = ApplyToEnv(subst, newEnv)
	}
	return curEnv, subst, nil
}

func registerDecl(inf *Inferrer, env Env, decl ast.Decl) (Env, Substitution, error) {
	switch decl := decl.(type) {
	case *ast.FuncDecl:
		return registerFuncDecl(inf, env, decl)
	case *ast.ExternFuncDecl:
		return registerExternFuncDecl(inf, env, decl)
	case *ast.GlobalDecl:
		return registerGlobalDecl(inf, env, decl)
	case *ast.StructDecl:
		return env, Substitution{}, nil
	case *ast.ImplDecl:
		return registerImplDecl(inf, env, decl)
	}
	panic("registerDecl: unhandled declaration node")
}

// registerFuncDecl mirrors LetRec's monomorphic-body, generalize-after
// pattern, but at the top level there is no `In` expression to check
// afterward: the generalized scheme is simply bound into env.
func registerFuncDecl(inf *Inferrer, env Env, decl *ast.FuncDecl) (Env, Substitution, error) {
	env1 := env.BindMono(decl.Name, decl.Ref.Ty)
	for i, arg := range decl.Args {
		env1 = env1.BindMono(arg, decl.ArgRefs[i].Ty)
	}
	retTy := inf.ctx.Fresh()
	inf.pushReturn(retTy)
	s1, err := inf.InferWith(env1, decl.Body, retTy)
	inf.popReturn()
	if err != nil {
		return nil, nil, err
	}
	fnTy := types.FnTy(refTypes(decl.ArgRefs), retTy)
	s2, err := inf.unify(Apply(s1, decl.Ref.Ty), Apply(s1, fnTy))
	if err != nil {
		return nil, nil, err
	}
	subst := Compose(s2, s1)
	env2 := ApplyToEnv(subst, env)
	scheme := Generalize(env2, Apply(subst, decl.Ref.Ty))
	return env2.Bind(decl.Name, scheme), subst, nil
}

// registerExternFuncDecl binds an extern function's declared signature
// without inferring a body; extern functions are generalized immediately
// since there is no body whose free variables could leak an un-generalized
// type variable into later declarations. The declared type still has to be
// unified with the function-reference's placeholder, the same as every other
// declaration kind, so that decl.Ref.Ty resolves under the returned
// substitution.
func registerExternFuncDecl(inf *Inferrer, env Env, decl *ast.ExternFuncDecl) (Env, Substitution, error) {
	fnTy := types.FnTy(decl.ArgTys, decl.RetTy)
	s, err := inf.unify(decl.Ref.Ty, fnTy)
	if err != nil {
		return nil, nil, err
	}
	scheme := Generalize(NewEnv(), Apply(s, fnTy))
	return env.Bind(decl.Name, scheme), s, nil
}

// registerGlobalDecl infers the initializer against the pre-allocated name
// type and binds it monomorphically: global bindings are not generalized.
func registerGlobalDecl(inf *Inferrer, env Env, decl *ast.GlobalDecl) (Env, Substitution, error) {
	s1, err := inf.InferWith(env, decl.Init, decl.Ref.Ty)
	if err != nil {
		return nil, nil, err
	}
	env2 := env.BindMono(decl.Name, Apply(s1, decl.Ref.Ty))
	return env2, s1, nil
}

// registerImplDecl installs every function in an `impl TypeName { ... }`
// block onto the struct table: a function whose first argument is named
// "self" becomes a method slot on the struct, with self pinned to
// NamedStruct(TypeName) and dropped from the method's own Fn signature;
// every other function becomes a static function reachable only via
// `TypeName.func`, never directly. Both kinds are renamed to
// "TypeName_funcName" for codegen uniqueness and removed from the global
// value environment once installed.
func registerImplDecl(inf *Inferrer, env Env, decl *ast.ImplDecl) (Env, Substitution, error) {
	structDecl, ok := inf.ctx.Structs.Lookup(decl.TypeName)
	if !ok {
		return nil, nil, errCannotImplementUnknownType(decl.TypeName)
	}

	curEnv := env
	subst := Substitution{}
	for _, f := range decl.Funcs {
		f.Ref.NewName = decl.TypeName + "_" + f.Name
		isMethod := len(f.Args) > 0 && f.Args[0] == "self"
		sigArgRefs := f.ArgRefs

		if isMethod {
			selfTy := &types.NamedStruct{Name: decl.TypeName}
			s0, err := inf.unify(f.ArgRefs[0].Ty, selfTy)
			if err != nil {
				return nil, nil, err
			}
			f.ArgRefs[0].Ty = selfTy
			subst = Compose(s0, subst)
			curEnv = ApplyToEnv(subst, curEnv)
			sigArgRefs = f.ArgRefs[1:]
		}

		newEnv, s, err := registerFuncLikeDecl(inf, curEnv, f, sigArgRefs)
		if err != nil {
			return nil, nil, err
		}
		subst = Compose(s, subst)
		curEnv = ApplyToEnv(subst, newEnv)

		scheme := curEnv[f.Name]
		fnTy := Apply(subst, FreshInstance(inf.ctx, scheme))

		if isMethod {
			structDecl.Attrs = append(structDecl.Attrs, StructAttrDecl{
				Name: f.Name,
				Ty:   fnTy,
				Impl: &MethodImpl{FuncRef: f.Ref, SelfMutable: f.SelfMutable},
			})
		} else {
			f.Ref.Ty = fnTy
			structDecl.StaticFuncs = append(structDecl.StaticFuncs, f.Ref)
		}
		curEnv = curEnv.Without(f.Name)
	}

	return curEnv, subst, nil
}

// registerFuncLikeDecl runs the same inference shape as registerFuncDecl
// over an ast.ImplFunc, which shares FuncDecl's fields but is a distinct
// type because registration hasn't yet decided whether it is a method. Every
// one of f.Args is bound in the body's environment (so a method body can
// still refer to "self"), but sigArgRefs — not f.ArgRefs — determines the
// function's own Fn type, letting a caller exclude "self" from a method's
// signature while still type-checking its uses in the body.
func registerFuncLikeDecl(inf *Inferrer, env Env, f *ast.ImplFunc, sigArgRefs []*ast.NameRef) (Env, Substitution, error) {
	env1 := env.BindMono(f.Name, f.Ref.Ty)
	for i, arg := range f.Args {
		env1 = env1.BindMono(arg, f.ArgRefs[i].Ty)
	}
	retTy := inf.ctx.Fresh()
	inf.pushReturn(retTy)
	s1, err := inf.InferWith(env1, f.Body, retTy)
	inf.popReturn()
	if err != nil {
		return nil, nil, err
	}
	fnTy := types.FnTy(refTypes(sigArgRefs), retTy)
	s2, err := inf.unify(Apply(s1, f.Ref.Ty), Apply(s1, fnTy))
	if err != nil {
		return nil, nil, err
	}
	subst := Compose(s2, s1)
	env2 := ApplyToEnv(subst, env)
	scheme := Generalize(env2, Apply(subst, f.Ref.Ty))
	return env2.Bind(f.Name, scheme), subst, nil
}
