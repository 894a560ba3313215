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

// Unit is the result of an action that returns nothing.
type Unit struct{}

// CaseStatement is one case: a declared Type, an optional guard, and
// an action.
//
// A CaseStatement is immutable.  Make one with Case, CaseIf, Do, etc.
// or with NewCase and NewGuardedCase when the Type is only known at
// runtime.
type CaseStatement[R any] struct {
	typ     Type
	guarded bool
	guard   func(any) (bool, error)
	apply   func(any) (R, error)
	unit    bool
}

// downcast adapts a typed action.  The value has already passed the
// Type check, so the assertion only fails if a caller got around
// Builder.
func downcast[P, R any](f func(P) (R, error)) func(any) (R, error) {
	return func(x any) (R, error) {
		p, ok := x.(P)
		if !ok {
			var zero R
			return zero, &NoMatchError{Value: x}
		}
		return f(p)
	}
}

func typedGuard[P any](g func(P) bool) func(any) (bool, error) {
	if g == nil {
		return nil
	}
	return func(x any) (bool, error) {
		p, ok := x.(P)
		return ok && g(p), nil
	}
}

// Case makes a case that applies to every instance of P.
func Case[P, R any](apply func(P) R) CaseStatement[R] {
	c := CaseStatement[R]{typ: TypeFor[P]()}
	if apply != nil {
		c.apply = downcast(func(p P) (R, error) {
			return apply(p), nil
		})
	}
	return c
}

// CaseE is Case for an action that can fail.  Apply returns the
// action's error unchanged.
func CaseE[P, R any](apply func(P) (R, error)) CaseStatement[R] {
	c := CaseStatement[R]{typ: TypeFor[P]()}
	if apply != nil {
		c.apply = downcast(apply)
	}
	return c
}

// CaseIf makes a case that applies to an instance of P when the guard
// returns true.
func CaseIf[P, R any](guard func(P) bool, apply func(P) R) CaseStatement[R] {
	c := Case(apply)
	c.guarded = true
	c.guard = typedGuard(guard)
	return c
}

// Equals makes a case that applies to an instance of P that equals
// want.
//
// If P is an interface type, comparing values that are not
// comparable panics.
func Equals[P comparable, R any](want P, apply func(P) R) CaseStatement[R] {
	return CaseIf(func(p P) bool { return p == want }, apply)
}

// Default makes a case that applies to any non-nil value.
func Default[R any](apply func(any) R) CaseStatement[R] {
	return Case(apply)
}

// NewCase makes a case for a Type that's only known at runtime.  The
// action receives the value after the value passed the Type check.
func NewCase[R any](t Type, apply func(any) (R, error)) CaseStatement[R] {
	return CaseStatement[R]{
		typ:   t,
		apply: apply,
	}
}

// NewGuardedCase is NewCase with a guard.  An error from the guard is
// returned by Apply unchanged.
func NewGuardedCase[R any](t Type, guard func(any) (bool, error), apply func(any) (R, error)) CaseStatement[R] {
	return CaseStatement[R]{
		typ:     t,
		guarded: true,
		guard:   guard,
		apply:   apply,
	}
}

func unitAction[P any](f func(P) error) func(any) (Unit, error) {
	if f == nil {
		return nil
	}
	return downcast(func(p P) (Unit, error) {
		return Unit{}, f(p)
	})
}

// Do makes a case whose action has only side effects.
func Do[P any](apply func(P)) CaseStatement[Unit] {
	var f func(P) error
	if apply != nil {
		f = func(p P) error {
			apply(p)
			return nil
		}
	}
	return DoE(f)
}

// DoE is Do for an action that can fail.
func DoE[P any](apply func(P) error) CaseStatement[Unit] {
	return CaseStatement[Unit]{
		typ:   TypeFor[P](),
		apply: unitAction(apply),
		unit:  true,
	}
}

// DoIf is Do with a guard.
func DoIf[P any](guard func(P) bool, apply func(P)) CaseStatement[Unit] {
	c := Do(apply)
	c.guarded = true
	c.guard = typedGuard(guard)
	return c
}

// DoEquals is the effect-only version of Equals.
func DoEquals[P comparable](want P, apply func(P)) CaseStatement[Unit] {
	return DoIf(func(p P) bool { return p == want }, apply)
}

// DoDefault makes an effect-only case for any non-nil value.
func DoDefault(apply func(any)) CaseStatement[Unit] {
	return Do(apply)
}

// NewUnitCase is NewCase for an effect-only action.
func NewUnitCase(t Type, apply func(any) error) CaseStatement[Unit] {
	return CaseStatement[Unit]{
		typ:   t,
		apply: unitAction(apply),
		unit:  true,
	}
}

// NewGuardedUnitCase is NewGuardedCase for an effect-only action.
func NewGuardedUnitCase(t Type, guard func(any) (bool, error), apply func(any) error) CaseStatement[Unit] {
	c := NewUnitCase(t, apply)
	c.guarded = true
	c.guard = guard
	return c
}

// Type returns the declared type.
func (c CaseStatement[R]) Type() Type {
	return c.typ
}

// HasGuard reports whether the case was given a guard.
func (c CaseStatement[R]) HasGuard() bool {
	return c.guarded
}

// IsUnit reports whether the action returns nothing.
func (c CaseStatement[R]) IsUnit() bool {
	return c.unit
}

func (c CaseStatement[R]) String() string {
	s := "case " + c.typ.Name()
	if c.guarded {
		s += " if <guard>"
	}
	return s
}

func (c CaseStatement[R]) validate(i int) error {
	switch {
	case c.typ.IsZero():
		return &InvalidRuleError{Index: i, Reason: "no type"}
	case c.apply == nil:
		return &InvalidRuleError{Index: i, Reason: "nil action"}
	case c.guarded && c.guard == nil:
		return &InvalidRuleError{Index: i, Reason: "nil guard"}
	}
	return nil
}

// accepts runs the Type check and then the guard (if any).
func (c *CaseStatement[R]) accepts(x any) (bool, error) {
	if !c.typ.IsInstance(x) {
		return false, nil
	}
	if c.guard == nil {
		return true, nil
	}
	return c.guard(x)
}
