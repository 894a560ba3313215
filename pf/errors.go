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
)

// ErrNoMatch is the sentinel that every *NoMatchError matches via
// errors.Is.
var ErrNoMatch = errors.New("no match")

// NoMatchError occurs when a Match is applied to a value that no case
// accepts.
type NoMatchError struct {
	// Value is the value that was rejected.
	Value any
}

func (e *NoMatchError) Error() string {
	if e.Value == nil {
		return "no match for nil"
	}
	return fmt.Sprintf("no match for %T: %v", e.Value, e.Value)
}

// Is makes errors.Is(err, ErrNoMatch) work.
func (e *NoMatchError) Is(target error) bool {
	return target == ErrNoMatch
}

// IsNoMatch reports whether err is (or wraps) a *NoMatchError.
func IsNoMatch(err error) bool {
	var nm *NoMatchError
	return errors.As(err, &nm)
}

// InvalidRuleError occurs when a case without a type, without an
// action, or with a nil guard is added to a Builder.
//
// The Builder is not modified.
type InvalidRuleError struct {
	// Index is the position the case would have had.
	Index int

	// Reason says what was missing.
	Reason string
}

func (e *InvalidRuleError) Error() string {
	return fmt.Sprintf("invalid case %d: %s", e.Index, e.Reason)
}
