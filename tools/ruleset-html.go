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
	"encoding/json"
	"fmt"
	"html"
	"io"

	"github.com/Comcast/casematch/rules"
	. "github.com/Comcast/casematch/util/testutil"

	md "github.com/russross/blackfriday/v2"
)

func sourceHTML(a *rules.ActionSource) string {
	var src string
	switch vv := a.Source.(type) {
	case string:
		src = vv
	default:
		src = JS(vv)
	}
	return html.EscapeString(src)
}

// RenderRuleSetHTML writes an HTML fragment for the rule set.  Docs
// are rendered as Markdown.
func RenderRuleSetHTML(rs *rules.RuleSet, out io.Writer) error {
	f := func(format string, args ...interface{}) {
		fmt.Fprintf(out, format+"\n", args...)
	}

	f(`<div class="ruleSetDoc doc">%s</div>`, md.Run([]byte(rs.Doc)))

	f(`<div class="rules"><table>`)
	for i, r := range rs.Rules {
		if r == nil {
			continue
		}
		typ := r.Type
		if typ == "" {
			typ = "any"
		}
		f(`<tr class="rule"><td><span id="rule%d" class="ruleNum">%d</span></td><td>`, i, i)
		if r.Doc != "" {
			f(`<div class="ruleDoc doc">%s</div>`, md.Run([]byte(r.Doc)))
		}
		f(`<table>`)
		f(`<tr><td>type</td><td><code>%s</code></td></tr>`, html.EscapeString(typ))
		if r.Equals != nil {
			f(`<tr><td>equals</td><td><code>%s</code></td></tr>`, html.EscapeString(JS(r.Equals)))
		}
		if r.Guard != nil {
			f(`<tr><td>guard</td><td><div class="code"><pre>%s</pre></div></td></tr>`, sourceHTML(r.Guard))
		}
		if r.Action != nil {
			f(`<tr><td>action</td><td><div class="code"><pre>%s</pre></div></td></tr>`, sourceHTML(r.Action))
		}
		f(`</table>`)
		f(`</td></tr>`)
	}
	f(`</table></div>`)

	return nil
}

// RenderRuleSetPage writes a complete HTML page for the rule set.
//
// The rule set is also included as JSON in a script element so that
// page scripts can use it.
func RenderRuleSetPage(rs *rules.RuleSet, out io.Writer, cssFiles []string) error {
	if cssFiles == nil {
		cssFiles = []string{"/static/ruleset-html.css"}
	}

	js, err := json.Marshal(rs)
	if err != nil {
		return err
	}

	title := html.EscapeString(rs.Name)

	fmt.Fprintf(out, `<!DOCTYPE html>
<meta charset="utf-8">
<html>
  <head>
  <title>%s</title>
  <script type="application/json" id="ruleSet">%s</script>
`, title, html.EscapeString(string(js)))

	for _, cssFile := range cssFiles {
		fmt.Fprintf(out, "  <link href=\"%s\" rel=\"stylesheet\">\n", cssFile)
	}

	fmt.Fprintf(out, `
  </head>
  <body>
    <h1>%s</h1>
`, title)

	if err = RenderRuleSetHTML(rs, out); err != nil {
		return err
	}

	fmt.Fprintf(out, `
  </body>
</html>
`)

	return nil
}

// ReadAndRenderRuleSetPage reads a rule set from the given file and
// renders it with RenderRuleSetPage.
//
// The rule set's types are checked, but its code isn't compiled.
func ReadAndRenderRuleSetPage(filename string, cssFiles []string, out io.Writer) error {
	rs, err := rules.ReadFile(filename)
	if err != nil {
		return err
	}

	a, err := Analyze(rs, nil)
	if err != nil {
		return err
	}
	if len(a.Errors) != 0 {
		return fmt.Errorf("rule set %s: %s", rs.Name, a.Errors[0])
	}

	return RenderRuleSetPage(rs, out, cssFiles)
}
