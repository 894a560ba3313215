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

package rules

import (
	"github.com/Comcast/casematch/pf"
)

// TypeRegistry maps the type names used in RuleSources to pf.Types.
type TypeRegistry map[string]pf.Type

// DefaultTypes has names for the types that JSON decoding produces.
//
// There is no type for null because nil is an instance of nothing.
var DefaultTypes = TypeRegistry{
	"any":    pf.Any,
	"bool":   pf.TypeFor[bool](),
	"number": pf.TypeFor[float64](),
	"string": pf.TypeFor[string](),
	"array":  pf.TypeFor[[]interface{}](),
	"object": pf.TypeFor[map[string]interface{}](),
}

// Register adds or replaces a name.  Not thread-safe.
func (r TypeRegistry) Register(name string, t pf.Type) TypeRegistry {
	r[name] = t
	return r
}

// Copy makes a shallow copy.
func (r TypeRegistry) Copy() TypeRegistry {
	acc := make(TypeRegistry, len(r))
	for name, t := range r {
		acc[name] = t
	}
	return acc
}

// Lookup finds the named type.  The empty name means "any".
func (r TypeRegistry) Lookup(name string) (pf.Type, error) {
	if name == "" {
		name = "any"
	}
	t, have := r[name]
	if !have {
		return pf.Type{}, &UnknownType{name}
	}
	return t, nil
}
