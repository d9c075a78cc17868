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
	"errors"
	"fmt"

	"github.com/nathsou/yolang/types"
)

// Every inference failure is reported as one of these exact, user-visible
// strings. Callers match on Error() text, not on a Go error type, so the
// wording here is part of the contract.

func errUnboundVariable(name string) error {
	return fmt.Errorf("unbound variable: %q", name)
}

var errRecursiveType = errors.New("recursive type")

func errTypeMismatch(expected, got types.MonoTy) error {
	return fmt.Errorf("type mismatch: expected %s, got %s", expected.String(), got.String())
}

func errMissingAttribute(attr, structName string) error {
	return fmt.Errorf("missing attribute %q for struct %q", attr, structName)
}

func errExtraneousAttribute(attr, structName string) error {
	return fmt.Errorf("extraneous attribute %q for struct %q", attr, structName)
}

func errAttributeNotExist(attr, structName string) error {
	return fmt.Errorf("attribute %q does not exist on struct %q", attr, structName)
}

func errUndeclaredStruct(name string) error {
	return fmt.Errorf("undeclared struct %q", name)
}

func errNoStructMatches(t types.MonoTy) error {
	return fmt.Errorf("no struct declaration matches type %s", t.String())
}

var errReturnOutsideFunction = errors.New("'return' used outside of a function")

func errCannotImplementUnknownType(name string) error {
	return fmt.Errorf("cannot implement for unknown type %q", name)
}
