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

package rules

import (
	"sync/atomic"

	"github.com/Comcast/casematch/pf"
)

// Updatable is a pf.PartialFunction with an underlying compiled
// RuleSet that can be replaced at any time.
//
// Each Apply uses whichever Match was current when it started.
type Updatable struct {
	m atomic.Pointer[pf.Match[interface{}, interface{}]]
}

// NewUpdatable makes one with the given initial Match, which can be
// changed later via Set.
func NewUpdatable(m *pf.Match[interface{}, interface{}]) *Updatable {
	u := &Updatable{}
	u.Set(m)
	return u
}

// Set atomically changes the underlying Match.
func (u *Updatable) Set(m *pf.Match[interface{}, interface{}]) {
	u.m.Store(m)
}

// Match returns the current Match.
func (u *Updatable) Match() *pf.Match[interface{}, interface{}] {
	return u.m.Load()
}

func (u *Updatable) Apply(x interface{}) (interface{}, error) {
	return u.Match().Apply(x)
}

func (u *Updatable) IsDefinedAt(x interface{}) bool {
	return u.Match().IsDefinedAt(x)
}

var _ pf.PartialFunction[interface{}, interface{}] = &Updatable{}
