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

// Package rules compiles rule sets, which are data, into pf.Matches.
//
// A RuleSet is an ordered list of RuleSources.  Each RuleSource names
// a type (see TypeRegistry), an optional guard, optional Equals
// value, and an action.  Guards and actions are ActionSources, which
// are compiled by an Interpreter (see the packages in
// interpreters/).
//
// A RuleSet is usually written in YAML:
//
//   name: sign
//   doc: Classify some values.
//   rules:
//     - type: number
//       guard: return 0 < _.value;
//       action: return "positive";
//     - type: number
//       action: return "non-positive";
//     - type: string
//       action: return "string";
//
// Values given to a compiled RuleSet should be JSON-like:
// float64, string, bool, []interface{}, or map[string]interface{}.
// Canonicalize can help.
package rules
