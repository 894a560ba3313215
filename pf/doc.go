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

// Package pf provides partial functions that are assembled at runtime
// from an ordered list of cases.
//
// A case is a declared Type, an optional guard, and an action.  Cases
// are accumulated with a Builder (or a UnitBuilder for actions that
// return nothing) and then compiled with Build into a Match (or a
// UnitMatch).  A compiled Match never changes, so it can be reused
// and shared between goroutines.
//
// Applying a Match to a value considers the cases in the order they
// were added.  A case applies when the value is an instance of the
// case's Type and the case's guard (if any) returns true.  The first
// case that applies wins: its action is executed, and no other case
// is considered.  If no case applies, Apply returns a *NoMatchError.
//
//   m := pf.NewBuilder[any, string]().
//           Add(pf.CaseIf(func(n int) bool { return 0 < n },
//                         func(n int) string { return "positive" })).
//           Add(pf.Case(func(n int) string { return "other int" })).
//           Add(pf.Case(func(s string) string { return "string" })).
//           Build()
//
//   s, err := m.Apply(-3) // "other int"
//
// A Type check is Go's notion of "is an instance of": the value's
// dynamic type is the declared type, or the declared type is an
// interface that the value's dynamic type implements.  Use pf.Any (or
// Default) for a catch-all case.
package pf
