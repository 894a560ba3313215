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

// Package bolt is a storage.Storage backed by a bbolt file.
package bolt

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Comcast/casematch/storage"

	bolt "go.etcd.io/bbolt"
)

// Bucket is the bucket that holds rule set sources.
var Bucket = []byte("rulesets")

var NotOpen = errors.New("storage not open")

type Storage struct {
	Debug    bool
	filename string
	db       *bolt.DB
}

var _ storage.Storage = &Storage{}

func NewStorage(filename string) (*Storage, error) {
	if filename == "" {
		return nil, fmt.Errorf("no filename for bolt storage")
	}
	return &Storage{
		filename: filename,
	}, nil
}

func (s *Storage) Open(ctx context.Context) error {
	opts := &bolt.Options{
		Timeout: time.Second,
	}

	s.logf("Open %s", s.filename)
	db, err := bolt.Open(s.filename, 0644, opts)
	if err != nil {
		return err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(Bucket)
		return err
	})
	if err != nil {
		db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	s.logf("Close %s", s.filename)
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Storage) logf(format string, args ...interface{}) {
	if s.Debug {
		log.Printf("BoltDB Storage."+format, args...)
	}
}

// check returns ctx.Err() or NotOpen if either applies.
func (s *Storage) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.db == nil {
		return NotOpen
	}
	return nil
}

func (s *Storage) Put(ctx context.Context, name string, src []byte) error {
	s.logf("Put %s (%d bytes)", name, len(src))
	if err := s.check(ctx); err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("rule set has no name")
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(Bucket).Put([]byte(name), src)
	})
}

func (s *Storage) Get(ctx context.Context, name string) ([]byte, error) {
	s.logf("Get %s", name)
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	var src []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		bs := tx.Bucket(Bucket).Get([]byte(name))
		if bs == nil {
			return fmt.Errorf("%w: rule set %q", storage.NotFound, name)
		}
		// bs is only valid during the transaction.
		src = append([]byte(nil), bs...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return src, nil
}

// List returns the names of the stored rule sets in key order.
func (s *Storage) List(ctx context.Context) ([]string, error) {
	s.logf("List")
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	names := make([]string, 0, 8)
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(Bucket).ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (s *Storage) Remove(ctx context.Context, name string) error {
	s.logf("Remove %s", name)
	if err := s.check(ctx); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(Bucket)
		if b.Get([]byte(name)) == nil {
			return fmt.Errorf("%w: rule set %q", storage.NotFound, name)
		}
		return b.Delete([]byte(name))
	})
}
