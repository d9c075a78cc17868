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

// Env is a map from identifier name to its declared type scheme. Binding
// replaces any prior scheme for the same name (shadowing), and the map
// itself is the source of truth for "most recent binding wins".
type Env map[string]types.PolyTy

// NewEnv creates an empty environment.
func NewEnv() Env { return Env{} }

// Clone returns a shallow copy of env, safe to mutate independently.
func (env Env) Clone() Env {
	out := make(Env, len(env))
	for k, v := range env {
		out[k] = v
	}
	return out
}

// Bind returns a copy of env with name bound to scheme (shadowing any prior
// binding for name).
func (env Env) Bind(name string, scheme types.PolyTy) Env {
	out := env.Clone()
	out[name] = scheme
	return out
}

// BindMono is a convenience for binding name to a non-generalized monotype.
func (env Env) BindMono(name string, t types.MonoTy) Env {
	return env.Bind(name, types.Mono(t))
}

// Without returns a copy of env with name removed, used before generalizing
// a let-bound name's own initializer.
func (env Env) Without(name string) Env {
	out := env.Clone()
	delete(out, name)
	return out
}

// FreeVars is the union of the free variables of every scheme bound in env.
func (env Env) FreeVars() map[uint32]struct{} {
	out := map[uint32]struct{}{}
	for _, scheme := range env {
		for v := range types.FreeVarsScheme(scheme) {
			out[v] = struct{}{}
		}
	}
	return out
}
