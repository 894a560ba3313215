package rules

// These errors are user errors, not internal errors.

import (
	"fmt"
)

// UnknownType occurs when a RuleSource names a type that the
// TypeRegistry doesn't have.
type UnknownType struct {
	Name string
}

func (e *UnknownType) Error() string {
	return `unknown type "` + e.Name + `"`
}

// RuleError reports a problem with a specific rule in a RuleSet.
type RuleError struct {
	RuleSet string
	Index   int
	Err     error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf(`rule %d in "%s": %s`, e.Index, e.RuleSet, e.Err)
}

func (e *RuleError) Unwrap() error {
	return e.Err
}
