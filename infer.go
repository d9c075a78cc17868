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

// Inferrer walks a Core AST producing substitutions. It owns the function
// return-type stack: pushed on entry to a function body and popped on exit,
// whether or not the body type-checks. Infer also builds a fresh Inferrer for
// every top-level pass, so a failed pass never leaks state into the next one.
type Inferrer struct {
	ctx    *Context
	frames []types.MonoTy
}

// NewInferrer creates an inference walker over ctx.
func NewInferrer(ctx *Context) *Inferrer {
	return &Inferrer{ctx: ctx}
}

func (inf *Inferrer) pushReturn(t types.MonoTy) { inf.frames = append(inf.frames, t) }
func (inf *Inferrer) popReturn()                { inf.frames = inf.frames[:len(inf.frames)-1] }

func (inf *Inferrer) currentReturn() (types.MonoTy, bool) {
	if len(inf.frames) == 0 {
		return nil, false
	}
	return inf.frames[len(inf.frames)-1], true
}

func (inf *Inferrer) unify(a, b types.MonoTy) (Substitution, error) {
	return Unify(inf.ctx, a, b)
}

// Infer walks e under env, returning a substitution under which e.Tau()
// carries e's inferred type.
func (inf *Inferrer) Infer(env Env, e ast.Expr) (Substitution, error) {
	return inf.infer(env, e)
}

// InferWith additionally unifies the inferred result against an expected type.
func (inf *Inferrer) InferWith(env Env, e ast.Expr, expected types.MonoTy) (Substitution, error) {
	return inf.inferWith(env, e, expected)
}

func (inf *Inferrer) inferWith(env Env, e ast.Expr, expected types.MonoTy) (Substitution, error) {
	s1, err := inf.infer(env, e)
	if err != nil {
		return nil, err
	}
	s2, err := inf.unify(Apply(s1, e.Tau()), Apply(s1, expected))
	if err != nil {
		return nil, err
	}
	return Compose(s2, s1), nil
}

func (inf *Inferrer) infer(env Env, e ast.Expr) (Substitution, error) {
	switch e := e.(type) {
	case *ast.Const:
		return inf.inferConst(env, e)
	case *ast.Var:
		return inf.inferVar(env, e)
	case *ast.Assignment:
		return inf.inferAssignment(env, e)
	case *ast.UnaryOp:
		return inf.inferUnaryOp(env, e)
	case *ast.BinOp:
		return inf.inferBinOp(env, e)
	case *ast.Block:
		return inf.inferBlock(env, e)
	case *ast.LetIn:
		return inf.inferLetIn(env, e)
	case *ast.LetRec:
		return inf.inferLetRec(env, e)
	case *ast.Func:
		return inf.inferFunc(env, e)
	case *ast.App:
		return inf.inferApp(env, e)
	case *ast.If:
		return inf.inferIf(env, e)
	case *ast.While:
		return inf.inferWhile(env, e)
	case *ast.Return:
		return inf.inferReturn(env, e)
	case *ast.TypeAssertion:
		return inf.inferTypeAssertion(env, e)
	case *ast.Tuple:
		return inf.inferTuple(env, e)
	case *ast.Struct:
		return inf.inferStruct(env, e)
	case *ast.Array:
		return inf.inferArray(env, e)
	case *ast.AttributeAccess:
		return inf.inferAttributeAccess(env, e)
	}
	panic("infer: unhandled expression node")
}

func constType(kind ast.ConstKind) types.MonoTy {
	switch kind {
	case ast.ConstUnit:
		return types.Unit()
	case ast.ConstBool:
		return types.Bool()
	case ast.ConstU8:
		return types.U8()
	case ast.ConstU32:
		return types.U32()
	case ast.ConstChar:
		return types.Char()
	case ast.ConstString:
		return types.StrTy()
	}
	panic("constType: unknown const kind")
}

func (inf *Inferrer) inferConst(_ Env, e *ast.Const) (Substitution, error) {
	return inf.unify(e.Tau(), constType(e.Kind))
}

// inferVar implements both forms of Var: an ordinary identifier lookup with
// instantiation, or, when the name resolves to a registered struct rather
// than a bound value, a PartialStruct row of its static functions, the
// vehicle for `Struct.func` projection.
func (inf *Inferrer) inferVar(env Env, e *ast.Var) (Substitution, error) {
	if scheme, ok := env[e.Name]; ok {
		inst := FreshInstance(inf.ctx, scheme)
		return inf.unify(e.Tau(), inst)
	}
	if decl, ok := inf.ctx.Structs.Lookup(e.Name); ok {
		row := types.NewRow(inf.ctx.Fresh().Index, decl.StaticFuncRow()...)
		return inf.unify(e.Tau(), &types.PartialStruct{Row: row})
	}
	return nil, errUnboundVariable(e.Name)
}

// inferAssignment resolves the design note on assignment: the LHS is
// inferred expecting the RHS's post-substitution type, rather than inferred
// independently and then unified against it.
func (inf *Inferrer) inferAssignment(env Env, e *ast.Assignment) (Substitution, error) {
	s1, err := inf.infer(env, e.Rhs)
	if err != nil {
		return nil, err
	}
	env1 := ApplyToEnv(s1, env)
	expectedLhsTy := Apply(s1, e.Rhs.Tau())
	s2, err := inf.inferWith(env1, e.Lhs, expectedLhsTy)
	if err != nil {
		return nil, err
	}
	subst := Compose(s2, s1)
	s3, err := inf.unify(Apply(subst, e.Tau()), types.Unit())
	if err != nil {
		return nil, err
	}
	return Compose(s3, subst), nil
}

// unaryOpSignature returns a unary operator's argument and result type.
// Deref is polymorphic (`Ptr<a> -> a`); the others are monomorphic.
func (inf *Inferrer) unaryOpSignature(op string) (arg, ret types.MonoTy) {
	switch op {
	case "!":
		return types.Bool(), types.Bool()
	case "*":
		a := inf.ctx.Fresh()
		return types.PtrOf(a), a
	default: // "-" and bitwise complement: monomorphic over u32
		return types.U32(), types.U32()
	}
}

func (inf *Inferrer) inferUnaryOp(env Env, e *ast.UnaryOp) (Substitution, error) {
	s1, err := inf.infer(env, e.Operand)
	if err != nil {
		return nil, err
	}
	argTy, retTy := inf.unaryOpSignature(e.Op)
	observed := types.FnTy([]types.MonoTy{Apply(s1, e.Operand.Tau())}, Apply(s1, e.Tau()))
	scheme := types.FnTy([]types.MonoTy{argTy}, retTy)
	s2, err := inf.unify(observed, scheme)
	if err != nil {
		return nil, err
	}
	return Compose(s2, s1), nil
}

// binaryOpSignature returns a binary operator's two argument types and
// result type. Equality and inequality are polymorphic `(a, a) -> bool`;
// arithmetic, shifts and bitwise ops are monomorphic over u32; ordering
// comparisons are monomorphic over u32; logical ops are monomorphic over
// bool.
func (inf *Inferrer) binaryOpSignature(op string) (lhs, rhs, ret types.MonoTy) {
	switch op {
	case "==", "!=":
		a := inf.ctx.Fresh()
		return a, a, types.Bool()
	case "&&", "||":
		return types.Bool(), types.Bool(), types.Bool()
	case "<", "<=", ">", ">=":
		return types.U32(), types.U32(), types.Bool()
	default: // "+", "-", "*", "/", "%", "<<", ">>", "&", "|", "^"
		return types.U32(), types.U32(), types.U32()
	}
}

func (inf *Inferrer) inferBinOp(env Env, e *ast.BinOp) (Substitution, error) {
	s1, err := inf.infer(env, e.Left)
	if err != nil {
		return nil, err
	}
	env1 := ApplyToEnv(s1, env)
	s2, err := inf.infer(env1, e.Right)
	if err != nil {
		return nil, err
	}
	subst := Compose(s2, s1)
	lhsScheme, rhsScheme, retScheme := inf.binaryOpSignature(e.Op)
	observed := types.FnTy([]types.MonoTy{Apply(subst, e.Left.Tau()), Apply(subst, e.Right.Tau())}, Apply(subst, e.Tau()))
	scheme := types.FnTy([]types.MonoTy{lhsScheme, rhsScheme}, retScheme)
	s3, err := inf.unify(observed, scheme)
	if err != nil {
		return nil, err
	}
	return Compose(s3, subst), nil
}

func (inf *Inferrer) inferBlock(env Env, e *ast.Block) (Substitution, error) {
	subst := Substitution{}
	for _, stmt := range e.Stmts {
		curEnv := ApplyToEnv(subst, env)
		s, err := inf.infer(curEnv, stmt)
		if err != nil {
			return nil, err
		}
		subst = Compose(s, subst)
	}
	lastTy := types.MonoTy(types.Unit())
	if last := e.Last(); last != nil {
		lastTy = Apply(subst, last.Tau())
	}
	s2, err := inf.unify(Apply(subst, e.Tau()), lastTy)
	if err != nil {
		return nil, err
	}
	return Compose(s2, subst), nil
}

func (inf *Inferrer) inferLetIn(env Env, e *ast.LetIn) (Substitution, error) {
	s1, err := inf.infer(env, e.Value)
	if err != nil {
		return nil, err
	}
	env1 := ApplyToEnv(s1, env)
	valueTy := Apply(s1, e.Value.Tau())
	scheme := Generalize(env1.Without(e.Name), valueTy)
	env2 := env1.Bind(e.Name, scheme)
	s2, err := inf.inferWith(env2, e.Body, Apply(s1, e.Tau()))
	if err != nil {
		return nil, err
	}
	subst := Compose(s2, s1)
	if e.Ref != nil {
		s3, err := inf.unify(Apply(subst, e.Ref.Ty), Apply(subst, valueTy))
		if err != nil {
			return nil, err
		}
		subst = Compose(s3, subst)
	}
	return subst, nil
}

func refTypes(refs []*ast.NameRef) []types.MonoTy {
	tys := make([]types.MonoTy, len(refs))
	for i, r := range refs {
		tys[i] = r.Ty
	}
	return tys
}

func (inf *Inferrer) inferLetRec(env Env, e *ast.LetRec) (Substitution, error) {
	env1 := env.BindMono(e.Name, e.Ref.Ty)
	for i, arg := range e.Args {
		env1 = env1.BindMono(arg, e.ArgRefs[i].Ty)
	}
	retTy := inf.ctx.Fresh()
	inf.pushReturn(retTy)
	s1, err := inf.inferWith(env1, e.Body, retTy)
	inf.popReturn()
	if err != nil {
		return nil, err
	}
	fnTy := types.FnTy(refTypes(e.ArgRefs), retTy)
	s2, err := inf.unify(Apply(s1, e.Ref.Ty), Apply(s1, fnTy))
	if err != nil {
		return nil, err
	}
	subst := Compose(s2, s1)
	env2 := ApplyToEnv(subst, env)
	scheme := Generalize(env2, Apply(subst, e.Ref.Ty))
	env3 := env2.Bind(e.Name, scheme)
	s3, err := inf.inferWith(env3, e.In, Apply(subst, e.Tau()))
	if err != nil {
		return nil, err
	}
	return Compose(s3, subst), nil
}

func (inf *Inferrer) inferFunc(env Env, e *ast.Func) (Substitution, error) {
	env1 := env
	for i, arg := range e.Args {
		env1 = env1.BindMono(arg, e.ArgRefs[i].Ty)
	}
	retTy := inf.ctx.Fresh()
	inf.pushReturn(retTy)
	s1, err := inf.inferWith(env1, e.Body, retTy)
	inf.popReturn()
	if err != nil {
		return nil, err
	}
	fnTy := types.FnTy(refTypes(e.ArgRefs), retTy)
	s2, err := inf.unify(Apply(s1, e.Tau()), Apply(s1, fnTy))
	if err != nil {
		return nil, err
	}
	return Compose(s2, s1), nil
}

func exprTaus(exprs []ast.Expr) []types.MonoTy {
	tys := make([]types.MonoTy, len(exprs))
	for i, e := range exprs {
		tys[i] = e.Tau()
	}
	return tys
}

func (inf *Inferrer) inferApp(env Env, e *ast.App) (Substitution, error) {
	expectedFnTy := types.FnTy(exprTaus(e.Args), e.Tau())
	s1, err := inf.inferWith(env, e.Callee, expectedFnTy)
	if err != nil {
		return nil, err
	}
	subst := s1
	for _, arg := range e.Args {
		curEnv := ApplyToEnv(subst, env)
		expected := Apply(subst, arg.Tau())
		s2, err := inf.inferWith(curEnv, arg, expected)
		if err != nil {
			return nil, err
		}
		subst = Compose(s2, subst)
	}
	return subst, nil
}

func (inf *Inferrer) inferIf(env Env, e *ast.If) (Substitution, error) {
	s1, err := inf.inferWith(env, e.Cond, types.Bool())
	if err != nil {
		return nil, err
	}
	env1 := ApplyToEnv(s1, env)
	s2, err := inf.inferWith(env1, e.Then, Apply(s1, e.Tau()))
	if err != nil {
		return nil, err
	}
	subst12 := Compose(s2, s1)
	env2 := ApplyToEnv(subst12, env)
	s3, err := inf.inferWith(env2, e.Else, Apply(subst12, e.Tau()))
	if err != nil {
		return nil, err
	}
	return Compose(s3, subst12), nil
}

func (inf *Inferrer) inferWhile(env Env, e *ast.While) (Substitution, error) {
	s1, err := inf.inferWith(env, e.Cond, types.Bool())
	if err != nil {
		return nil, err
	}
	env1 := ApplyToEnv(s1, env)
	s2, err := inf.infer(env1, e.Body)
	if err != nil {
		return nil, err
	}
	subst := Compose(s2, s1)
	s3, err := inf.unify(Apply(subst, e.Tau()), types.Unit())
	if err != nil {
		return nil, err
	}
	return Compose(s3, subst), nil
}

func (inf *Inferrer) inferReturn(env Env, e *ast.Return) (Substitution, error) {
	retTy, ok := inf.currentReturn()
	if !ok {
		return nil, errReturnOutsideFunction
	}
	var subst Substitution
	if e.Value != nil {
		s, err := inf.inferWith(env, e.Value, retTy)
		if err != nil {
			return nil, err
		}
		subst = s
	} else {
		s, err := inf.unify(retTy, types.Unit())
		if err != nil {
			return nil, err
		}
		subst = s
	}
	s2, err := inf.unify(Apply(subst, e.Tau()), types.Unit())
	if err != nil {
		return nil, err
	}
	return Compose(s2, subst), nil
}

func (inf *Inferrer) inferTypeAssertion(env Env, e *ast.TypeAssertion) (Substitution, error) {
	s1, err := inf.inferWith(env, e.Value, e.OriginalTy)
	if err != nil {
		return nil, err
	}
	s2, err := inf.unify(Apply(s1, e.Tau()), Apply(s1, e.AssertedTy))
	if err != nil {
		return nil, err
	}
	return Compose(s2, s1), nil
}

func (inf *Inferrer) inferTuple(env Env, e *ast.Tuple) (Substitution, error) {
	subst := Substitution{}
	for _, el := range e.Elems {
		curEnv := ApplyToEnv(subst, env)
		s, err := inf.infer(curEnv, el)
		if err != nil {
			return nil, err
		}
		subst = Compose(s, subst)
	}
	elemTys := make([]types.MonoTy, len(e.Elems))
	for i, el := range e.Elems {
		elemTys[i] = Apply(subst, el.Tau())
	}
	s2, err := inf.unify(Apply(subst, e.Tau()), types.TupleOf(elemTys...))
	if err != nil {
		return nil, err
	}
	return Compose(s2, subst), nil
}

func (inf *Inferrer) inferStruct(env Env, e *ast.Struct) (Substitution, error) {
	decl, ok := inf.ctx.Structs.Lookup(e.Name)
	if !ok {
		return nil, errUndeclaredStruct(e.Name)
	}
	subst := Substitution{}
	seen := map[string]bool{}
	for _, attr := range e.Attrs {
		declAttr, ok := decl.Attr(attr.Name)
		if !ok || declAttr.Impl != nil {
			return nil, errExtraneousAttribute(attr.Name, e.Name)
		}
		seen[attr.Name] = true
		curEnv := ApplyToEnv(subst, env)
		s, err := inf.inferWith(curEnv, attr.Value, Apply(subst, declAttr.Ty))
		if err != nil {
			return nil, err
		}
		subst = Compose(s, subst)
	}
	for _, declAttr := range decl.Attrs {
		if declAttr.Impl != nil {
			continue
		}
		if !seen[declAttr.Name] {
			return nil, errMissingAttribute(declAttr.Name, e.Name)
		}
	}
	s2, err := inf.unify(Apply(subst, e.Tau()), &types.NamedStruct{Name: e.Name})
	if err != nil {
		return nil, err
	}
	return Compose(s2, subst), nil
}

func (inf *Inferrer) inferArray(env Env, e *ast.Array) (Substitution, error) {
	elem := inf.ctx.Fresh()
	subst := Substitution{}
	for _, el := range e.Elems {
		curEnv := ApplyToEnv(subst, env)
		s, err := inf.infer(curEnv, el)
		if err != nil {
			return nil, err
		}
		subst = Compose(s, subst)
		s1, err := inf.unify(Apply(subst, elem), Apply(subst, el.Tau()))
		if err != nil {
			return nil, err
		}
		subst = Compose(s1, subst)
	}
	s2, err := inf.unify(Apply(subst, e.Tau()), types.ArrayOf(Apply(subst, elem), e.Len()))
	if err != nil {
		return nil, err
	}
	return Compose(s2, subst), nil
}

// inferAttributeAccess resolves `lhs.attr` against a known struct, an
// already-partial row, or otherwise extends the row and consults struct
// matching.
func (inf *Inferrer) inferAttributeAccess(env Env, e *ast.AttributeAccess) (Substitution, error) {
	s1, err := inf.infer(env, e.Object)
	if err != nil {
		return nil, err
	}
	lhsTy := Apply(s1, e.Object.Tau())
	return inf.resolveAttributeAccess(env, e, s1, lhsTy)
}

func (inf *Inferrer) resolveAttributeAccess(env Env, e *ast.AttributeAccess, subst Substitution, lhsTy types.MonoTy) (Substitution, error) {
	switch t := lhsTy.(type) {
	case *types.NamedStruct:
		decl, ok := inf.ctx.Structs.Lookup(t.Name)
		if !ok {
			return nil, errUndeclaredStruct(t.Name)
		}
		declAttr, ok := decl.Attr(e.Attr)
		if !ok {
			return nil, errAttributeNotExist(e.Attr, t.Name)
		}
		s2, err := inf.unify(Apply(subst, e.Tau()), declAttr.Ty)
		if err != nil {
			return nil, err
		}
		return Compose(s2, subst), nil

	case *types.PartialStruct:
		if ty, ok := t.Row.Get(e.Attr); ok {
			s2, err := inf.unify(Apply(subst, e.Tau()), ty)
			if err != nil {
				return nil, err
			}
			return Compose(s2, subst), nil
		}
		return inf.extendAndMatch(env, e, subst, lhsTy, t.Row)

	case *types.Var:
		return inf.extendAndMatch(env, e, subst, lhsTy, types.Row{Tail: inf.ctx.Fresh().Index})

	default:
		return nil, errNoStructMatches(lhsTy)
	}
}

// extendAndMatch extends an open row with (attr, tau) and consults struct
// matching to decide how much of the bearer's type can be learned from it.
//
// The row passed in by a bearer that is itself an unbound Var always carries
// a tail distinct from that Var: binding the Var to a PartialStruct whose own
// tail is the Var being bound would make the substitution self-referential
// (Apply would loop resolving it). The same reasoning applies when re-sealing
// an already-partial bearer: the row unified against it is rebuilt with a
// fresh tail so unifyRows takes its merge path instead of rejecting the new
// attribute as an "exclusive" mismatch against an identical tail.
func (inf *Inferrer) extendAndMatch(env Env, e *ast.AttributeAccess, subst Substitution, lhsTy types.MonoTy, row types.Row) (Substitution, error) {
	_, wasVar := lhsTy.(*types.Var)
	extended := row.Extend(e.Attr, Apply(subst, e.Tau()))
	match := MatchStruct(inf.ctx, extended)
	sealed := types.NewRow(inf.ctx.Fresh().Index, extended.Attrs()...)

	switch match.Kind {
	case OneMatch:
		name := match.Candidates[0]
		s2, err := inf.unify(lhsTy, &types.NamedStruct{Name: name})
		if err != nil {
			return nil, err
		}
		return inf.recheckAttributeAccess(env, e, Compose(s2, subst), lhsTy)

	case MultipleMatches:
		s2, err := inf.unify(lhsTy, &types.PartialStruct{Row: sealed})
		if err != nil {
			return nil, err
		}
		return inf.recheckAttributeAccess(env, e, Compose(s2, subst), lhsTy)

	default: // NoMatch
		if wasVar {
			s2, err := inf.unify(lhsTy, &types.PartialStruct{Row: sealed})
			if err != nil {
				return nil, err
			}
			return Compose(s2, subst), nil
		}
		return nil, errNoStructMatches(lhsTy)
	}
}

// recheckAttributeAccess re-resolves the access once a substitution has
// revealed new information about the bearer's type. It only recurses when
// the bearer's type actually changed, which guarantees termination: each
// recursion either seals a PartialStruct to a NamedStruct, an irreversible
// step, or leaves the row unchanged.
func (inf *Inferrer) recheckAttributeAccess(env Env, e *ast.AttributeAccess, subst Substitution, previousLhsTy types.MonoTy) (Substitution, error) {
	newLhsTy := Apply(subst, e.Object.Tau())
	if typesEqual(previousLhsTy, newLhsTy) {
		return subst, nil
	}
	return inf.resolveAttributeAccess(env, e, subst, newLhsTy)
}

func typesEqual(a, b types.MonoTy) bool {
	return a.String() == b.String()
}
