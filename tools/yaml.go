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
	"io"

	"github.com/Comcast/casematch/rules"

	"gopkg.in/yaml.v2"
)

// RenderRuleSetYAML writes the rule set as YAML that rules.Parse can
// read.
func RenderRuleSetYAML(rs *rules.RuleSet, out io.Writer) error {
	bs, err := yaml.Marshal(rs)
	if err != nil {
		return err
	}
	_, err = out.Write(bs)
	return err
}
