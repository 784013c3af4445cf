// Copyright 2024 The Axiograph Authors.
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

package pathdb

import "sync"

// Interner is a bijection between byte strings and dense, non-negative
// integer ids, stable for the lifetime of a snapshot. Equivalent byte
// strings collapse to a single id (spec invariant: interning bijection).
type Interner struct {
	mu      sync.RWMutex
	forward map[string]uint32
	reverse [][]byte
}

// NewInterner returns an empty interning table.
func NewInterner() *Interner {
	return &Interner{forward: make(map[string]uint32)}
}

// Intern returns the id for b, allocating a new one if b has not been seen
// before. Idempotent: repeated calls with byte-equal input return the same
// id.
func (in *Interner) Intern(b []byte) uint32 {
	key := string(b)

	in.mu.RLock()
	if id, ok := in.forward[key]; ok {
		in.mu.RUnlock()
		return id
	}
	in.mu.RUnlock()

	in.mu.Lock()
	defer in.mu.Unlock()
	if id, ok := in.forward[key]; ok {
		return id
	}

	id := uint32(len(in.reverse))
	cp := make([]byte, len(b))
	copy(cp, b)
	in.reverse = append(in.reverse, cp)
	in.forward[key] = id
	return id
}

// InternString is a convenience wrapper around Intern for string literals.
func (in *Interner) InternString(s string) uint32 {
	return in.Intern([]byte(s))
}

// Find looks up the id for s without interning it, for callers (such as
// query planning) that must distinguish "never seen" from "seen, id N".
func (in *Interner) Find(s string) (uint32, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	id, ok := in.forward[s]
	return id, ok
}

// Lookup returns the bytes interned under id, or ErrUnknownID if id is out
// of the allocated range.
func (in *Interner) Lookup(id uint32) ([]byte, error) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if int(id) >= len(in.reverse) {
		return nil, ErrUnknownID.New(id)
	}
	return in.reverse[id], nil
}

// LookupString is Lookup with a string result; it panics on an unknown id
// since the caller is expected to hold only ids it obtained from this same
// Interner.
func (in *Interner) LookupString(id uint32) string {
	b, err := in.Lookup(id)
	if err != nil {
		panic(err)
	}
	return string(b)
}

// Len returns the number of distinct strings interned so far.
func (in *Interner) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.reverse)
}

// All returns the id→bytes table in ascending id order. Callers must not
// mutate the returned slices; they alias interner storage.
func (in *Interner) All() [][]byte {
	in.mu.RLock()
	defer in.mu.RUnlock()
	out := make([][]byte, len(in.reverse))
	copy(out, in.reverse)
	return out
}
