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
	"errors"
	"fmt"
	"sync"
	"testing"
)

func signs() *Match[any, string] {
	return NewBuilder[any, string]().
		Add(CaseIf(func(n int) bool { return 0 < n }, func(n int) string { return "positive" })).
		Add(Case(func(n int) string { return "non-positive-or-other-int" })).
		Add(Case(func(s string) string { return "string" })).
		Build()
}

func TestMatchScenario(t *testing.T) {
	m := signs()

	tests := []struct {
		x    any
		want string
	}{
		{5, "positive"},
		{-3, "non-positive-or-other-int"},
		{0, "non-positive-or-other-int"},
		{"x", "string"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt.x), func(t *testing.T) {
			got, err := m.Apply(tt.x)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Fatalf("got %q, wanted %q", got, tt.want)
			}
			if !m.IsDefinedAt(tt.x) {
				t.Fatal("not defined")
			}
		})
	}

	t.Run("float", func(t *testing.T) {
		_, err := m.Apply(3.14)
		if err == nil {
			t.Fatal("expected an error")
		}
		nm, is := err.(*NoMatchError)
		if !is {
			t.Fatalf("%#v is a %T, not a %T", err, err, nm)
		}
		if nm.Value != 3.14 {
			t.Fatalf("error has value %#v", nm.Value)
		}
		if !errors.Is(err, ErrNoMatch) {
			t.Fatal("not ErrNoMatch")
		}
		if !IsNoMatch(fmt.Errorf("wrapped: %w", err)) {
			t.Fatal("wrapped error isn't a no match")
		}
		if m.IsDefinedAt(3.14) {
			t.Fatal("defined at 3.14")
		}
	})

	t.Run("nil", func(t *testing.T) {
		if _, err := m.Apply(nil); !IsNoMatch(err) {
			t.Fatalf("nil gave %v", err)
		}
	})
}

func TestMatchOrder(t *testing.T) {
	var ran []int

	b := NewBuilder[any, int]()
	for i := 0; i < 5; i++ {
		i := i
		b.Add(CaseIf(func(n int) bool { return i <= n }, func(n int) int {
			ran = append(ran, i)
			return i
		}))
	}
	m := b.Build()

	for n := 0; n < 5; n++ {
		ran = nil
		got, err := m.Apply(n)
		if err != nil {
			t.Fatal(err)
		}
		if got != 0 {
			t.Fatalf("%d matched case %d", n, got)
		}
		if len(ran) != 1 {
			t.Fatalf("ran %v", ran)
		}
	}
}

func TestMatchGuardOrder(t *testing.T) {
	var guards []string

	m := NewBuilder[any, string]().
		Add(CaseIf(func(s string) bool {
			guards = append(guards, "first")
			return false
		}, func(s string) string { return "first" })).
		Add(CaseIf(func(n int) bool {
			guards = append(guards, "int")
			return true
		}, func(n int) string { return "int" })).
		Add(CaseIf(func(s string) bool {
			guards = append(guards, "second")
			return true
		}, func(s string) string { return "second" })).
		Add(CaseIf(func(s string) bool {
			guards = append(guards, "third")
			return true
		}, func(s string) string { return "third" })).
		Build()

	got, err := m.Apply("tacos")
	if err != nil {
		t.Fatal(err)
	}
	if got != "second" {
		t.Fatalf("got %q", got)
	}
	// The int guard doesn't run for a string, and nothing after the
	// winner runs.
	if len(guards) != 2 || guards[0] != "first" || guards[1] != "second" {
		t.Fatalf("guards %v", guards)
	}
}

func TestMatchInterfaceCase(t *testing.T) {
	m := NewBuilder[shape, string]().
		Add(Case(func(s *circle) string { return "circle" })).
		Add(Case(func(s shape) string { return fmt.Sprintf("shape %v", s.Area()) })).
		Build()

	if got, _ := m.Apply(&circle{1}); got != "circle" {
		t.Fatalf("got %q", got)
	}
	if got, _ := m.Apply(square{2}); got != "shape 4" {
		t.Fatalf("got %q", got)
	}
}

func TestMatchIsDefinedAtHasNoEffects(t *testing.T) {
	actions := 0
	guards := 0

	m := NewBuilder[any, int]().
		Add(CaseIf(func(n int) bool {
			guards++
			return true
		}, func(n int) int {
			actions++
			return n
		})).
		Build()

	if !m.IsDefinedAt(1) {
		t.Fatal("not defined")
	}
	if m.IsDefinedAt("one") {
		t.Fatal("defined at a string")
	}
	if actions != 0 {
		t.Fatalf("IsDefinedAt ran %d actions", actions)
	}
	if guards != 1 {
		t.Fatalf("IsDefinedAt ran %d guards", guards)
	}
}

func TestMatchSnapshot(t *testing.T) {
	b := NewBuilder[any, string]().
		Add(Case(func(n int) string { return "int" }))

	before := b.Build()

	b.Add(Case(func(s string) string { return "string" }))
	b.Add(Default(func(x any) string { return "any" }))

	after := b.Build()

	if before.Len() != 1 {
		t.Fatalf("before has %d cases", before.Len())
	}
	if _, err := before.Apply("x"); !IsNoMatch(err) {
		t.Fatalf("before matched a string: %v", err)
	}
	if got, _ := after.Apply("x"); got != "string" {
		t.Fatalf("after got %q", got)
	}
	if got, _ := after.Apply(3.14); got != "any" {
		t.Fatalf("after got %q", got)
	}

	cs := after.Cases()
	cs[0] = Case(func(n int) string { return "changed" })
	if got, _ := after.Apply(1); got != "int" {
		t.Fatalf("Cases aliased the match: %q", got)
	}
}

func TestMatchErrors(t *testing.T) {
	bad := errors.New("bad")

	m := NewBuilder[any, int]().
		Add(CaseE(func(n int) (int, error) { return 0, bad })).
		Add(NewGuardedCase(TypeFor[string](), func(x any) (bool, error) {
			return false, bad
		}, func(x any) (int, error) { return 1, nil })).
		Build()

	if _, err := m.Apply(1); err != bad {
		t.Fatalf("action error %v", err)
	}
	if _, err := m.Apply("x"); err != bad {
		t.Fatalf("guard error %v", err)
	}
	if ok, err := m.DefinedAt("x"); ok || err != bad {
		t.Fatalf("DefinedAt %v %v", ok, err)
	}
	if m.IsDefinedAt("x") {
		t.Fatal("defined despite guard error")
	}
}

func TestMatchPanicPropagates(t *testing.T) {
	m := On[any](Case(func(n int) int { panic("boom") })).Build()

	defer func() {
		if r := recover(); r != "boom" {
			t.Fatalf("recovered %v", r)
		}
	}()
	m.Apply(1)
	t.Fatal("didn't panic")
}

func TestMatchLift(t *testing.T) {
	m := signs()

	if s, ok, err := m.Lift(5); err != nil || !ok || s != "positive" {
		t.Fatalf("Lift(5) = %q %v %v", s, ok, err)
	}
	if s, ok, err := m.Lift(true); err != nil || ok || s != "" {
		t.Fatalf("Lift(true) = %q %v %v", s, ok, err)
	}

	s, err := m.ApplyOrElse(true, func(x any) (string, error) {
		return "fallback", nil
	})
	if err != nil || s != "fallback" {
		t.Fatalf("ApplyOrElse = %q %v", s, err)
	}
}

func TestMatchOrElse(t *testing.T) {
	floats := On[any](Case(func(f float64) string { return "float" })).Build()

	var pf PartialFunction[any, string] = signs().OrElse(floats)

	if got, _ := pf.Apply(3.14); got != "float" {
		t.Fatalf("got %q", got)
	}
	if got, _ := pf.Apply(1); got != "positive" {
		t.Fatalf("got %q", got)
	}
	if pf.IsDefinedAt(true) {
		t.Fatal("defined at true")
	}
	if _, err := pf.Apply(true); !IsNoMatch(err) {
		t.Fatalf("got %v", err)
	}

	total := signs().OrElse(Func[any, string](func(x any) (string, error) {
		return "whatever", nil
	}))
	if got, _ := total.Apply(true); got != "whatever" {
		t.Fatalf("got %q", got)
	}
}

func TestMatchOrElseGuardError(t *testing.T) {
	bad := errors.New("bad guard")
	first := On[any](NewGuardedCase(TypeFor[int](),
		func(x any) (bool, error) { return false, bad },
		func(x any) (string, error) { return "first", nil })).Build()
	second := On[any](Default(func(x any) string { return "second" })).Build()

	got, err := first.OrElse(second).Apply(1)
	if err != bad {
		t.Fatalf("got %q, %v", got, err)
	}
	if got, err := first.OrElse(second).Apply("x"); err != nil || got != "second" {
		t.Fatalf("got %q, %v", got, err)
	}
}

func TestMatchOrElseGuardsOnce(t *testing.T) {
	n := 0
	first := On[any](CaseIf(func(i int) bool { n++; return 0 < i },
		func(i int) string { return "positive" })).Build()
	second := On[any](Default(func(x any) string { return "other" })).Build()

	pf := first.OrElse(second)
	if got, _ := pf.Apply(1); got != "positive" {
		t.Fatalf("got %q", got)
	}
	if n != 1 {
		t.Fatalf("guard ran %d times", n)
	}
}

func TestMatchEquals(t *testing.T) {
	m := NewBuilder[any, string]().
		Add(Equals("tacos", func(s string) string { return "yum" })).
		Add(Equals(42, func(n int) string { return "answer" })).
		Build()

	if got, _ := m.Apply("tacos"); got != "yum" {
		t.Fatalf("got %q", got)
	}
	if got, _ := m.Apply(42); got != "answer" {
		t.Fatalf("got %q", got)
	}
	if m.IsDefinedAt("chips") {
		t.Fatal("defined at chips")
	}
}

func TestMatchReflective(t *testing.T) {
	m := NewBuilder[any, string]().
		MatchIf(TypeOf(""), func(x any) bool { return x.(string) != "" }, func(x any) string { return "nonempty" }).
		Match(TypeOf(""), func(x any) string { return "empty" }).
		Build()

	if got, _ := m.Apply("x"); got != "nonempty" {
		t.Fatalf("got %q", got)
	}
	if got, _ := m.Apply(""); got != "empty" {
		t.Fatalf("got %q", got)
	}
}

func TestMatchConcurrent(t *testing.T) {
	m := signs()

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				want := "positive"
				n := j + 1
				if i%2 == 0 {
					want = "non-positive-or-other-int"
					n = -j
				}
				got, err := m.Apply(n)
				if err != nil {
					errs <- err
					return
				}
				if got != want {
					errs <- fmt.Errorf("%d gave %q", n, got)
					return
				}
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
}

func TestUnitMatch(t *testing.T) {
	var (
		ints    []int
		strings []string
	)

	u := NewUnitBuilder[any]().
		Add(DoIf(func(n int) bool { return n%2 == 0 }, func(n int) { ints = append(ints, n) })).
		Add(Do(func(s string) { strings = append(strings, s) })).
		Build()

	if err := u.Apply(2); err != nil {
		t.Fatal(err)
	}
	if err := u.Apply("chips"); err != nil {
		t.Fatal(err)
	}
	if len(ints) != 1 || ints[0] != 2 {
		t.Fatalf("ints %v", ints)
	}
	if len(strings) != 1 || strings[0] != "chips" {
		t.Fatalf("strings %v", strings)
	}

	err := u.Apply(3)
	if !IsNoMatch(err) {
		t.Fatalf("odd int gave %v", err)
	}
	if len(ints) != 1 {
		t.Fatalf("ints %v", ints)
	}
	if u.IsDefinedAt(3) {
		t.Fatal("defined at 3")
	}

	if _, err := u.PartialFunction().Apply(4); err != nil {
		t.Fatal(err)
	}
	if len(ints) != 2 {
		t.Fatalf("ints %v", ints)
	}
}

func TestUnitMatchErrors(t *testing.T) {
	bad := errors.New("bad")
	u := OnUnit[any](DoE(func(n int) error { return bad })).
		Add(DoDefault(func(x any) {})).
		Build()

	if err := u.Apply(1); err != bad {
		t.Fatalf("got %v", err)
	}
	if err := u.Apply("x"); err != nil {
		t.Fatalf("got %v", err)
	}
	if u.Len() != 2 {
		t.Fatalf("len %d", u.Len())
	}
}
