// Copyright 2025 refx authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package store provides name-keyed CRUD over saved expressions and groups.
package store

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// ❌ ErrMissingName means an expression or group was submitted without a
// name. Rejected before any store mutation.
var ErrMissingName = errors.New("name is required")

// 🔄 Expression is a named regex pattern + flags + replacement template.
type Expression struct {
	Name    string `json:"name" yaml:"name"`
	Pattern string `json:"pattern" yaml:"pattern"`
	Flags   string `json:"flags" yaml:"flags"`
	Replace string `json:"replace" yaml:"replace"`
}

// Key implements keyed.
func (e Expression) Key() string { return e.Name }

// 📦 Group is an ordered list of expression names applied sequentially as one
// action. Items are weak references by name, not ownership: a group stays
// valid (and partially runnable) after a referenced expression is deleted.
type Group struct {
	Name  string   `json:"name" yaml:"name"`
	Items []string `json:"items" yaml:"items"`
}

// Key implements keyed.
func (g Group) Key() string { return g.Name }

// 🔑 keyed is anything addressable by a unique name within an ordered
// collection.
type keyed interface {
	Key() string
}

// 📝 upsert replaces the item with the same key in place (preserving its
// position) or appends it if absent.
func upsert[T keyed](items []T, item T) []T {
	for i := range items {
		if items[i].Key() == item.Key() {
			items[i] = item
			return items
		}
	}
	return append(items, item)
}

// 🗑️ remove deletes the item with the given key, reporting whether it was
// present.
func remove[T keyed](items []T, key string) ([]T, bool) {
	for i := range items {
		if items[i].Key() == key {
			return append(items[:i], items[i+1:]...), true
		}
	}
	return items, false
}

// 🔍 filter returns the items whose key contains query (case-insensitive),
// preserving collection order. An empty query matches everything.
func filter[T keyed](items []T, query string) []T {
	q := strings.ToLower(query)
	var out []T
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Key()), q) {
			out = append(out, item)
		}
	}
	return out
}

// 🎯 Store holds the ordered collections of saved expressions and groups.
// It is accessed by a single logical caller at a time, so it carries no
// locking discipline. Persistence is the caller's job, performed as a
// distinct best-effort step after a successful mutation.
type Store struct {
	expressions []Expression
	groups      []Group
}

// 🏭 New creates a store seeded with the given collections, preserving order.
func New(expressions []Expression, groups []Group) *Store {
	return &Store{
		expressions: append([]Expression(nil), expressions...),
		groups:      append([]Group(nil), groups...),
	}
}

// 📝 UpsertExpression saves an expression by name, replacing in place or
// appending if absent.
func (s *Store) UpsertExpression(expr Expression) error {
	if expr.Name == "" {
		return errors.Errorf("saving expression: %w", ErrMissingName)
	}
	s.expressions = upsert(s.expressions, expr)
	return nil
}

// 📝 UpsertGroup saves a group by name, replacing in place or appending if
// absent.
func (s *Store) UpsertGroup(group Group) error {
	if group.Name == "" {
		return errors.Errorf("saving group: %w", ErrMissingName)
	}
	s.groups = upsert(s.groups, group)
	return nil
}

// 🗑️ DeleteExpression removes an expression by name. Groups referencing the
// name are left untouched; the dangling reference is resolved lazily at apply
// time.
func (s *Store) DeleteExpression(name string) bool {
	var ok bool
	s.expressions, ok = remove(s.expressions, name)
	return ok
}

// 🗑️ DeleteGroup removes a group by name.
func (s *Store) DeleteGroup(name string) bool {
	var ok bool
	s.groups, ok = remove(s.groups, name)
	return ok
}

// 🔍 FindExpression looks up an expression by exact name.
func (s *Store) FindExpression(name string) (Expression, bool) {
	for _, e := range s.expressions {
		if e.Name == name {
			return e, true
		}
	}
	return Expression{}, false
}

// 🔍 FindGroup looks up a group by exact name.
func (s *Store) FindGroup(name string) (Group, bool) {
	for _, g := range s.groups {
		if g.Name == name {
			return g, true
		}
	}
	return Group{}, false
}

// 🔍 FilterExpressions returns expressions whose name contains query
// (case-insensitive), in collection order.
func (s *Store) FilterExpressions(query string) []Expression {
	return filter(s.expressions, query)
}

// 🔍 FilterGroups returns groups whose name contains query
// (case-insensitive), in collection order.
func (s *Store) FilterGroups(query string) []Group {
	return filter(s.groups, query)
}

// 📋 Expressions returns a copy of the ordered expression collection.
func (s *Store) Expressions() []Expression {
	return append([]Expression(nil), s.expressions...)
}

// 📋 Groups returns a copy of the ordered group collection.
func (s *Store) Groups() []Group {
	return append([]Group(nil), s.groups...)
}

// 🎯 ResolveGroup resolves a group's items against the live store in stored
// order, silently dropping names with no matching stored expression.
func (s *Store) ResolveGroup(group Group) []Expression {
	var out []Expression
	for _, name := range group.Items {
		if expr, ok := s.FindExpression(name); ok {
			out = append(out, expr)
		}
	}
	return out
}
