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
	"io"
	"strings"

	"github.com/Comcast/casematch/rules"
	. "github.com/Comcast/casematch/util/testutil"
)

type MermaidOpts struct {
	// ShowEquals will put the JSON representation of a rule's
	// equals value (if any) in its label.
	ShowEquals bool `json:"showEquals"`

	// ActionFill is the fill color for action nodes.
	ActionFill string `json:"actionFill,omitempty"`

	// NoMatch is the label of the final node that's reached when
	// no rule accepts the value.
	NoMatch string `json:"noMatch,omitempty"`
}

func mermaidQuote(s string) string {
	return strings.Replace(s, `"`, `'`, -1)
}

// Mermaid makes a Mermaid (https://mermaidjs.github.io/) flowchart
// for the given rule set.
//
// Each rule is a decision node in order.  Its "yes" edge goes to the
// rule's action and its "no" edge goes to the next rule.
func Mermaid(rs *rules.RuleSet, w io.Writer, opts *MermaidOpts) error {
	if opts == nil {
		opts = &MermaidOpts{
			ShowEquals: true,
			ActionFill: "#bcf2db",
		}
	}
	noMatch := opts.NoMatch
	if noMatch == "" {
		noMatch = "no match"
	}

	f := func(format string, args ...interface{}) {
		fmt.Fprintf(w, format+"\n", args...)
	}

	f("graph TB")
	f(`  start(("%s"))`, mermaidQuote(rs.Name))

	prev := "start"
	for i, r := range rs.Rules {
		if r == nil {
			continue
		}
		typ := r.Type
		if typ == "" {
			typ = "any"
		}
		label := typ
		if opts.ShowEquals && r.Equals != nil {
			label += " = " + JS(r.Equals)
		}
		if r.Guard != nil {
			label += " if guard"
		}

		rid := fmt.Sprintf("r%d", i)
		aid := fmt.Sprintf("a%d", i)

		f(`  %s{"%d: %s"}`, rid, i, mermaidQuote(label))
		f(`  %s["action %d"]`, aid, i)
		if opts.ActionFill != "" {
			f("  style %s fill:%s", aid, opts.ActionFill)
		}
		if prev == "start" {
			f("  %s --> %s", prev, rid)
		} else {
			f("  %s -- no --> %s", prev, rid)
		}
		f("  %s -- yes --> %s", rid, aid)
		prev = rid
	}

	f(`  nomatch("%s")`, mermaidQuote(noMatch))
	if prev == "start" {
		f("  %s --> nomatch", prev)
	} else {
		f("  %s -- no --> nomatch", prev)
	}

	return nil
}
