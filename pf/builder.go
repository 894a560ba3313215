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

// Builder accumulates cases for a Match with input type I and
// result type R.
//
// A Builder is not safe for concurrent use.  Build can be called more
// than once, and the Builder can keep accumulating cases after a Build
// without affecting the Matches already built.
type Builder[I, R any] struct {
	cases []CaseStatement[R]
}

// NewBuilder makes an empty Builder.
func NewBuilder[I, R any]() *Builder[I, R] {
	return &Builder[I, R]{
		cases: make([]CaseStatement[R], 0, 8),
	}
}

// On makes a Builder with the given first case.
//
//   b := pf.On[any](pf.Case(func(s string) int { return len(s) }))
//
// Panics with an *InvalidRuleError if the case is invalid.
func On[I, R any](c CaseStatement[R]) *Builder[I, R] {
	return NewBuilder[I, R]().Add(c)
}

// Append adds the case after the existing cases.
//
// If the case has no type, no action, or a nil guard, Append returns
// an *InvalidRuleError and the Builder is unchanged.
func (b *Builder[I, R]) Append(c CaseStatement[R]) error {
	if err := c.validate(len(b.cases)); err != nil {
		return err
	}
	b.cases = append(b.cases, c)
	return nil
}

// Add is a chainable Append.  Panics with an *InvalidRuleError if
// the case is invalid.
func (b *Builder[I, R]) Add(c CaseStatement[R]) *Builder[I, R] {
	if err := b.Append(c); err != nil {
		panic(err)
	}
	return b
}

// Match adds a case for the given Type.  See Add.
func (b *Builder[I, R]) Match(t Type, apply func(any) R) *Builder[I, R] {
	return b.Add(NewCase(t, total(apply)))
}

// MatchIf adds a guarded case for the given Type.  See Add.
func (b *Builder[I, R]) MatchIf(t Type, guard func(any) bool, apply func(any) R) *Builder[I, R] {
	return b.Add(NewGuardedCase(t, predicate(guard), total(apply)))
}

// Len returns the number of cases added so far.
func (b *Builder[I, R]) Len() int {
	return len(b.cases)
}

// Build makes a Match from a copy of the current cases.
func (b *Builder[I, R]) Build() *Match[I, R] {
	cases := make([]CaseStatement[R], len(b.cases))
	copy(cases, b.cases)
	return &Match[I, R]{
		cases: cases,
	}
}

// Create is Build in the form of a function.
func Create[I, R any](b *Builder[I, R]) *Match[I, R] {
	return b.Build()
}

// UnitBuilder accumulates effect-only cases for a UnitMatch.
//
// See Builder.
type UnitBuilder[I any] struct {
	b Builder[I, Unit]
}

// NewUnitBuilder makes an empty UnitBuilder.
func NewUnitBuilder[I any]() *UnitBuilder[I] {
	return &UnitBuilder[I]{
		b: Builder[I, Unit]{
			cases: make([]CaseStatement[Unit], 0, 8),
		},
	}
}

// OnUnit makes a UnitBuilder with the given first case.
func OnUnit[I any](c CaseStatement[Unit]) *UnitBuilder[I] {
	return NewUnitBuilder[I]().Add(c)
}

// Append is Builder.Append.
func (b *UnitBuilder[I]) Append(c CaseStatement[Unit]) error {
	return b.b.Append(c)
}

// Add is Builder.Add.
func (b *UnitBuilder[I]) Add(c CaseStatement[Unit]) *UnitBuilder[I] {
	b.b.Add(c)
	return b
}

// Match adds an effect-only case for the given Type.
func (b *UnitBuilder[I]) Match(t Type, apply func(any)) *UnitBuilder[I] {
	return b.Add(NewUnitCase(t, effect(apply)))
}

// MatchIf adds a guarded effect-only case for the given Type.
func (b *UnitBuilder[I]) MatchIf(t Type, guard func(any) bool, apply func(any)) *UnitBuilder[I] {
	return b.Add(NewGuardedUnitCase(t, predicate(guard), effect(apply)))
}

// Len returns the number of cases added so far.
func (b *UnitBuilder[I]) Len() int {
	return b.b.Len()
}

// Build makes a UnitMatch from a copy of the current cases.
func (b *UnitBuilder[I]) Build() *UnitMatch[I] {
	return &UnitMatch[I]{
		m: b.b.Build(),
	}
}

// CreateUnit is UnitBuilder.Build in the form of a function.
func CreateUnit[I any](b *UnitBuilder[I]) *UnitMatch[I] {
	return b.Build()
}

// total, predicate, and effect preserve nil so that validate can
// see it.

func total[R any](f func(any) R) func(any) (R, error) {
	if f == nil {
		return nil
	}
	return func(x any) (R, error) {
		return f(x), nil
	}
}

func predicate(f func(any) bool) func(any) (bool, error) {
	if f == nil {
		return nil
	}
	return func(x any) (bool, error) {
		return f(x), nil
	}
}

func effect(f func(any)) func(any) error {
	if f == nil {
		return nil
	}
	return func(x any) error {
		f(x)
		return nil
	}
}
