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

// Package storage defines how named rule sets are saved and loaded.
package storage

import (
	"context"
	"errors"
)

// NotFound is returned by Get and Remove when there's no rule set
// with the given name.
var NotFound = errors.New("not found")

// Storage holds rule set sources by name.
//
// Sources are stored as given (usually YAML) so they can be parsed
// with rules.Parse after a Get.
type Storage interface {
	Open(ctx context.Context) error
	Close() error

	Put(ctx context.Context, name string, src []byte) error
	Get(ctx context.Context, name string) ([]byte, error)
	List(ctx context.Context) ([]string, error)
	Remove(ctx context.Context, name string) error
}
