/* Copyright 2019 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package pf

import (
	"reflect"
)

// Type is a type descriptor that can check whether a value is an
// instance of that type.
//
// The zero Type describes no type at all.  Nothing is an instance of
// the zero Type, and a Builder will not accept a case with a zero
// Type.
type Type struct {
	t reflect.Type
}

// Any is the universal type.  Every non-nil value is an instance.
var Any = TypeFor[any]()

// TypeFor returns the Type for T.
//
// When T is an interface type, instances are values whose dynamic
// type implements T.
func TypeFor[T any]() Type {
	return Type{reflect.TypeOf((*T)(nil)).Elem()}
}

// TypeOf returns the dynamic Type of the given value.
//
// TypeOf(nil) is the zero Type.
func TypeOf(x any) Type {
	return Type{reflect.TypeOf(x)}
}

// TypeFromReflect wraps a reflect.Type.
func TypeFromReflect(t reflect.Type) Type {
	return Type{t}
}

// IsZero reports whether this Type describes no type.
func (t Type) IsZero() bool {
	return t.t == nil
}

// Reflect returns the underlying reflect.Type, which is nil for the
// zero Type.
func (t Type) Reflect() reflect.Type {
	return t.t
}

// IsInstance reports whether x is an instance of this Type.
//
// A nil interface value is not an instance of any Type, including
// Any.
func (t Type) IsInstance(x any) bool {
	if t.t == nil || x == nil {
		return false
	}
	xt := reflect.TypeOf(x)
	if xt == t.t {
		return true
	}
	if t.t.Kind() == reflect.Interface {
		return xt.Implements(t.t)
	}
	return false
}

// Name returns a readable name for the type.
func (t Type) Name() string {
	if t.t == nil {
		return "<none>"
	}
	return t.t.String()
}

func (t Type) String() string {
	return t.Name()
}

// Covers reports whether every instance of u is also an instance of
// t.  The zero Type covers nothing and is covered by nothing.
func (t Type) Covers(u Type) bool {
	if t.t == nil || u.t == nil {
		return false
	}
	if t.t == u.t {
		return true
	}
	return t.t.Kind() == reflect.Interface && u.t.Implements(t.t)
}
