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
	"context"
	"errors"
	"os"
	"reflect"

	"github.com/Comcast/casematch/pf"
	"github.com/Comcast/casematch/util"

	"github.com/jsccast/yaml"
)

// RuleSet is an ordered list of rules.  Order is priority: when
// compiled, the first rule that accepts a value wins.
type RuleSet struct {
	// Name is the generic name for this rule set.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Version is the version of this rule set.  Something like
	// "1.2".
	Version string `json:"version,omitempty" yaml:"version,omitempty"`

	// Doc is general documentation (in Markdown) about this rule
	// set.
	Doc string `json:"doc,omitempty" yaml:"doc,omitempty"`

	// Interpreter is the name of the interpreter for the guards
	// and actions that don't name one.  Defaults to
	// DefaultInterpreter.
	Interpreter string `json:"interpreter,omitempty" yaml:"interpreter,omitempty"`

	Rules []*RuleSource `json:"rules" yaml:"rules"`
}

// RuleSource is the data for one case.
type RuleSource struct {
	// Doc is optional documentation in Markdown.
	Doc string `json:"doc,omitempty" yaml:"doc,omitempty"`

	// Type is a name in a TypeRegistry.  Empty means "any".
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	// Equals, if not nil, restricts this rule to values equal to
	// this one.  Both are compared after Canonicalize, so an int 5
	// equals 5 in YAML.
	Equals interface{} `json:"equals,omitempty" yaml:"equals,omitempty"`

	// Guard is optional code that should return a boolean.  A
	// non-boolean result means false.
	Guard *ActionSource `json:"guard,omitempty" yaml:"guard,omitempty"`

	// Action is the code that computes the result.  Required.
	Action *ActionSource `json:"action,omitempty" yaml:"action,omitempty"`
}

// Copy makes a copy of the RuleSource.  Equals is shared, not
// deep-copied.
func (r *RuleSource) Copy() *RuleSource {
	return &RuleSource{
		Doc:    r.Doc,
		Type:   r.Type,
		Equals: r.Equals,
		Guard:  r.Guard.Copy(),
		Action: r.Action.Copy(),
	}
}

// Copy makes a copy of the RuleSet.
func (rs *RuleSet) Copy() *RuleSet {
	acc := &RuleSet{
		Name:        rs.Name,
		Version:     rs.Version,
		Doc:         rs.Doc,
		Interpreter: rs.Interpreter,
		Rules:       make([]*RuleSource, len(rs.Rules)),
	}
	for i, r := range rs.Rules {
		if r != nil {
			acc.Rules[i] = r.Copy()
		}
	}
	return acc
}

// Parse reads a RuleSet in YAML (or JSON).
func Parse(bs []byte) (*RuleSet, error) {
	var rs RuleSet
	if err := yaml.Unmarshal(bs, &rs); err != nil {
		return nil, err
	}
	return &rs, nil
}

// ReadFile parses the RuleSet in the given file.
func ReadFile(filename string) (*RuleSet, error) {
	bs, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Parse(bs)
}

// Compile makes a pf.Match from the rules.
//
// Interpreters and types default to DefaultInterpreters and
// DefaultTypes.  The given ctx is also used for every later execution
// of the compiled guards and actions, so cancelling it makes those
// executions fail.
//
// Any problem with a rule is reported as a *RuleError.
func (rs *RuleSet) Compile(ctx context.Context, interpreters InterpretersMap, types TypeRegistry) (*pf.Match[interface{}, interface{}], error) {
	if interpreters == nil {
		interpreters = DefaultInterpreters
	}
	if types == nil {
		types = DefaultTypes
	}

	def := rs.Interpreter
	if def == "" {
		def = DefaultInterpreter
	}

	b := pf.NewBuilder[interface{}, interface{}]()
	for i, r := range rs.Rules {
		c, err := r.compile(ctx, interpreters, types, def)
		if err == nil {
			err = b.Append(c)
		}
		if err != nil {
			return nil, &RuleError{
				RuleSet: rs.Name,
				Index:   i,
				Err:     err,
			}
		}
	}

	util.Logf("rules: compiled %q with %d rules", rs.Name, b.Len())

	return b.Build(), nil
}

var errNilRule = errors.New("empty rule")

func (r *RuleSource) compile(ctx context.Context, interpreters InterpretersMap, types TypeRegistry, def string) (pf.CaseStatement[interface{}], error) {
	var none pf.CaseStatement[interface{}]

	if r == nil {
		return none, errNilRule
	}

	t, err := types.Lookup(r.Type)
	if err != nil {
		return none, err
	}

	// A nil apply is left for the pf.Builder to reject.
	var apply func(interface{}) (interface{}, error)
	if r.Action != nil {
		action, err := r.Action.Compile(ctx, interpreters, def)
		if err != nil {
			return none, err
		}
		apply = func(x interface{}) (interface{}, error) {
			return action.Exec(ctx, x)
		}
	}

	guards := make([]func(interface{}) (bool, error), 0, 2)

	if r.Equals != nil {
		want, err := Canonicalize(r.Equals)
		if err != nil {
			return none, err
		}
		guards = append(guards, func(x interface{}) (bool, error) {
			// A value that can't be canonicalized isn't JSON, so it
			// can't equal want.
			y, err := Canonicalize(x)
			if err != nil {
				return false, nil
			}
			return reflect.DeepEqual(want, y), nil
		})
	}

	if r.Guard != nil {
		guard, err := r.Guard.Compile(ctx, interpreters, def)
		if err != nil {
			return none, err
		}
		guards = append(guards, func(x interface{}) (bool, error) {
			y, err := guard.Exec(ctx, x)
			if err != nil {
				return false, err
			}
			b, is := y.(bool)
			return is && b, nil
		})
	}

	switch len(guards) {
	case 0:
		return pf.NewCase(t, apply), nil
	case 1:
		return pf.NewGuardedCase(t, guards[0], apply), nil
	default:
		return pf.NewGuardedCase(t, allOf(guards), apply), nil
	}
}

// allOf evaluates the guards in order and stops at the first one
// that doesn't pass.
func allOf(guards []func(interface{}) (bool, error)) func(interface{}) (bool, error) {
	return func(x interface{}) (bool, error) {
		for _, g := range guards {
			ok, err := g(x)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	}
}
