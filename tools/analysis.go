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

package tools

import (
	"fmt"
	"sort"

	"github.com/Comcast/casematch/pf"
	"github.com/Comcast/casematch/rules"
)

// RuleSetAnalysis reports some facts and problems about a RuleSet
// without compiling any of its code.
type RuleSetAnalysis struct {
	ruleSet *rules.RuleSet

	Errors  []string
	Rules   int
	Guards  int
	Equals  int
	Actions int

	// Shadowed maps the index of a rule that can never be chosen
	// to the index of the earlier rule that always wins instead.
	Shadowed map[int]int

	// Missing lists the rules without actions.
	Missing []int

	Types        []string
	Interpreters []string
}

// Analyze examines the rule set.  Types default to rules.DefaultTypes.
//
// A rule is shadowed when an earlier rule has no guard, no equals,
// and a type that covers the later rule's type.
func Analyze(rs *rules.RuleSet, types rules.TypeRegistry) (*RuleSetAnalysis, error) {
	if rs == nil {
		return nil, fmt.Errorf("no rule set")
	}
	if types == nil {
		types = rules.DefaultTypes
	}

	a := RuleSetAnalysis{
		ruleSet:  rs,
		Rules:    len(rs.Rules),
		Errors:   make([]string, 0, 8),
		Shadowed: make(map[int]int),
	}

	def := rs.Interpreter
	if def == "" {
		def = rules.DefaultInterpreter
	}

	var (
		resolved     = make([]pf.Type, len(rs.Rules))
		catchAll     = make([]bool, len(rs.Rules))
		typeNames    = make(map[string]bool)
		interpreters = make(map[string]bool)
	)

	interpreter := func(src *rules.ActionSource) {
		if src.Interpreter == "" {
			interpreters[def] = true
		} else {
			interpreters[src.Interpreter] = true
		}
	}

	for i, r := range rs.Rules {
		if r == nil {
			a.Errors = append(a.Errors, fmt.Sprintf("rule %d is empty", i))
			continue
		}

		name := r.Type
		if name == "" {
			name = "any"
		}
		typeNames[name] = true
		t, err := types.Lookup(name)
		if err != nil {
			a.Errors = append(a.Errors, fmt.Sprintf("rule %d: %v", i, err))
		}
		resolved[i] = t

		if r.Equals != nil {
			a.Equals++
		}
		if r.Guard != nil {
			a.Guards++
			interpreter(r.Guard)
		}
		if r.Action != nil {
			a.Actions++
			interpreter(r.Action)
		} else {
			a.Missing = append(a.Missing, i)
			a.Errors = append(a.Errors, fmt.Sprintf("rule %d has no action", i))
		}
		catchAll[i] = r.Guard == nil && r.Equals == nil && r.Action != nil
	}

	for j := range rs.Rules {
		for i := 0; i < j; i++ {
			if catchAll[i] && resolved[i].Covers(resolved[j]) {
				a.Shadowed[j] = i
				break
			}
		}
	}

	a.Types = keysToStringSlice(typeNames)
	a.Interpreters = keysToStringSlice(interpreters)

	return &a, nil
}

// keysToStringSlice returns the sorted keys, or the given default
// value when there are no keys.
func keysToStringSlice(m map[string]bool, defaultValue ...string) []string {
	var list []string
	for key := range m {
		list = append(list, key)
	}
	sort.Strings(list)

	if len(list) == 0 && len(defaultValue) > 0 {
		return []string{defaultValue[0]}
	}

	return list
}
