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

// PartialFunction is a function that might not be defined for every
// input.
//
// A *Match is a PartialFunction, and UnitMatch.PartialFunction gives
// one for a UnitMatch.
type PartialFunction[I, R any] interface {
	// Apply computes the result for the given input.  If the
	// function isn't defined at the input, Apply returns a
	// *NoMatchError.
	Apply(I) (R, error)

	// IsDefinedAt reports whether Apply would do anything other
	// than return a *NoMatchError.
	IsDefinedAt(I) bool
}

// Func makes a total function into a PartialFunction that's defined
// everywhere.
type Func[I, R any] func(I) (R, error)

func (f Func[I, R]) Apply(x I) (R, error) {
	return f(x)
}

func (f Func[I, R]) IsDefinedAt(x I) bool {
	return true
}

// Match is a compiled, immutable sequence of cases.
//
// A Match is safe for concurrent use as long as its guards and
// actions are.
type Match[I, R any] struct {
	cases []CaseStatement[R]
}

// find returns the first case that accepts x, or nil.
func (m *Match[I, R]) find(x any) (*CaseStatement[R], error) {
	for i := range m.cases {
		c := &m.cases[i]
		ok, err := c.accepts(x)
		if err != nil {
			return nil, err
		}
		if ok {
			return c, nil
		}
	}
	return nil, nil
}

// Apply executes the action of the first case that accepts the given
// value and returns the action's result.
//
// If no case accepts the value, Apply returns a *NoMatchError.  An
// error returned by a guard or an action is returned unchanged.
func (m *Match[I, R]) Apply(v I) (R, error) {
	var zero R
	x := any(v)
	c, err := m.find(x)
	if err != nil {
		return zero, err
	}
	if c == nil {
		return zero, &NoMatchError{Value: x}
	}
	return c.apply(x)
}

// DefinedAt reports whether some case accepts the given value.  Only
// guards are executed.  An error from a guard is returned.
func (m *Match[I, R]) DefinedAt(v I) (bool, error) {
	c, err := m.find(any(v))
	if err != nil {
		return false, err
	}
	return c != nil, nil
}

// IsDefinedAt is DefinedAt that reports false if a guard fails.
func (m *Match[I, R]) IsDefinedAt(v I) bool {
	ok, err := m.DefinedAt(v)
	return ok && err == nil
}

// Lift is Apply that reports a missing match with false rather than
// an error.
func (m *Match[I, R]) Lift(v I) (R, bool, error) {
	var zero R
	x := any(v)
	c, err := m.find(x)
	if err != nil {
		return zero, false, err
	}
	if c == nil {
		return zero, false, nil
	}
	r, err := c.apply(x)
	return r, true, err
}

// ApplyOrElse is Apply that calls the fallback instead of returning
// a *NoMatchError.
func (m *Match[I, R]) ApplyOrElse(v I, fallback func(I) (R, error)) (R, error) {
	r, ok, err := m.Lift(v)
	if err != nil || ok {
		return r, err
	}
	return fallback(v)
}

// OrElse returns a PartialFunction that tries this Match and then
// the given PartialFunction.
func (m *Match[I, R]) OrElse(other PartialFunction[I, R]) PartialFunction[I, R] {
	return &orElse[I, R]{
		first:  m,
		second: other,
	}
}

// Len returns the number of cases.
func (m *Match[I, R]) Len() int {
	return len(m.cases)
}

// Cases returns a copy of the cases in order.
func (m *Match[I, R]) Cases() []CaseStatement[R] {
	acc := make([]CaseStatement[R], len(m.cases))
	copy(acc, m.cases)
	return acc
}

type orElse[I, R any] struct {
	first  *Match[I, R]
	second PartialFunction[I, R]
}

// Apply only tries the second function when no case in the first
// accepts v.  An error from the first is returned.
func (o *orElse[I, R]) Apply(v I) (R, error) {
	r, ok, err := o.first.Lift(v)
	if ok || err != nil {
		return r, err
	}
	return o.second.Apply(v)
}

func (o *orElse[I, R]) IsDefinedAt(v I) bool {
	return o.first.IsDefinedAt(v) || o.second.IsDefinedAt(v)
}

// UnitMatch is a Match whose actions only have side effects.
type UnitMatch[I any] struct {
	m *Match[I, Unit]
}

// Apply executes the action of the first case that accepts the given
// value.
//
// If no case accepts the value, Apply returns a *NoMatchError.
func (u *UnitMatch[I]) Apply(v I) error {
	_, err := u.m.Apply(v)
	return err
}

// DefinedAt is Match.DefinedAt.
func (u *UnitMatch[I]) DefinedAt(v I) (bool, error) {
	return u.m.DefinedAt(v)
}

// IsDefinedAt is Match.IsDefinedAt.
func (u *UnitMatch[I]) IsDefinedAt(v I) bool {
	return u.m.IsDefinedAt(v)
}

// PartialFunction exposes this UnitMatch as a PartialFunction that
// returns Unit.
func (u *UnitMatch[I]) PartialFunction() PartialFunction[I, Unit] {
	return u.m
}

// Len returns the number of cases.
func (u *UnitMatch[I]) Len() int {
	return u.m.Len()
}
