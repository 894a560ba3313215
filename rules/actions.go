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
	"fmt"
)

var (
	// InterpreterNotFound occurs when you try to Compile an
	// ActionSource, and the required interpreter isn't in the
	// given map of interpreters.
	InterpreterNotFound = errors.New("interpreter not found")

	// DefaultInterpreters will be used in RuleSet.Compile if
	// given nil interpreters.
	DefaultInterpreters = NewInterpretersMap()

	// DefaultInterpreter is the name of the interpreter used for
	// an ActionSource that doesn't name one when the RuleSet
	// doesn't either.
	DefaultInterpreter = "goja"
)

// Interpreter can compile and execute code for guards and actions.
type Interpreter interface {
	// Compile can make something that helps when Exec()ing the
	// code later.
	Compile(ctx context.Context, code interface{}) (interface{}, error)

	// Exec executes the code with the given value.  The result of
	// a previous Compile() might be provided.
	Exec(ctx context.Context, x interface{}, code interface{}, compiled interface{}) (interface{}, error)
}

// InterpretersMap maps interpreter names to Interpreters.
type InterpretersMap map[string]Interpreter

func NewInterpretersMap() InterpretersMap {
	return make(InterpretersMap, 8)
}

// Find returns the named Interpreter or InterpreterNotFound.
func (m InterpretersMap) Find(name string) (Interpreter, error) {
	i, have := m[name]
	if !have {
		return nil, fmt.Errorf("%w: %q", InterpreterNotFound, name)
	}
	return i, nil
}

// ActionSource is code for a guard or an action.
//
// In YAML, an ActionSource can be just a string, which is the
// Source.
type ActionSource struct {
	Interpreter string      `json:"interpreter,omitempty" yaml:"interpreter,omitempty"`
	Source      interface{} `json:"source" yaml:"source"`
}

// UnmarshalYAML accepts a plain string or a map.
func (a *ActionSource) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err == nil {
		a.Source = s
		return nil
	}
	type plain ActionSource
	var p plain
	if err := unmarshal(&p); err != nil {
		return err
	}
	*a = ActionSource(p)
	return nil
}

// MarshalYAML writes just the source when there's no interpreter.
func (a *ActionSource) MarshalYAML() (interface{}, error) {
	if a.Interpreter == "" {
		if s, is := a.Source.(string); is {
			return s, nil
		}
	}
	type plain ActionSource
	return (*plain)(a), nil
}

// Copy makes a shallow copy.
func (a *ActionSource) Copy() *ActionSource {
	if a == nil {
		return nil
	}
	return &ActionSource{
		Interpreter: a.Interpreter,
		Source:      a.Source,
	}
}

// Compiled is an ActionSource bound to its Interpreter.
type Compiled struct {
	interpreter Interpreter
	code        interface{}
	compiled    interface{}
}

// Exec runs the compiled code.
func (c *Compiled) Exec(ctx context.Context, x interface{}) (interface{}, error) {
	return c.interpreter.Exec(ctx, x, c.code, c.compiled)
}

// Compile attempts to compile the ActionSource using the interpreter
// it names or else the given default name.
func (a *ActionSource) Compile(ctx context.Context, interpreters InterpretersMap, def string) (*Compiled, error) {
	if interpreters == nil {
		interpreters = DefaultInterpreters
	}

	name := a.Interpreter
	if name == "" {
		name = def
	}

	interpreter, err := interpreters.Find(name)
	if err != nil {
		return nil, err
	}

	x, err := interpreter.Compile(ctx, a.Source)
	if err != nil {
		return nil, err
	}

	return &Compiled{
		interpreter: interpreter,
		code:        a.Source,
		compiled:    x,
	}, nil
}
