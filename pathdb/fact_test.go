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

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactIDDeterministicUnderPermutation(t *testing.T) {
	order := []string{"f1", "f2", "f3"}
	fields := []FieldValue{
		{Field: "f1", Value: "a"},
		{Field: "f2", Value: "b"},
		{Field: "f3", Value: "c"},
	}

	want := FactID("m", "s", "i", "rel", fields, order)

	r := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := append([]FieldValue(nil), fields...)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		got := FactID("m", "s", "i", "rel", shuffled, order)
		assert.Equal(t, want, got)
	}
}

func TestFactIDPrefixed(t *testing.T) {
	id := FactID("m", "s", "i", "rel", nil, nil)
	require.Regexp(t, `^fnv1a64:[0-9a-f]{16}$`, id)
}

func TestFactIDDiffersOnFieldSet(t *testing.T) {
	order := []string{"f1"}
	a := FactID("m", "s", "i", "rel", []FieldValue{{Field: "f1", Value: "a"}}, order)
	b := FactID("m", "s", "i", "rel", []FieldValue{{Field: "f1", Value: "b"}}, order)
	assert.NotEqual(t, a, b)
}
