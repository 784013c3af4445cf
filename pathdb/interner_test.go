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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInternerBijection(t *testing.T) {
	in := NewInterner()

	a := in.InternString("alice")
	b := in.InternString("bob")
	a2 := in.InternString("alice")

	require.Equal(t, a, a2, "interning the same bytes twice must return the same id")
	require.NotEqual(t, a, b)

	got, err := in.Lookup(a)
	require.NoError(t, err)
	require.Equal(t, "alice", string(got))

	got, err = in.Lookup(b)
	require.NoError(t, err)
	require.Equal(t, "bob", string(got))
}

func TestInternerLookupUnknownID(t *testing.T) {
	in := NewInterner()
	in.InternString("only")

	_, err := in.Lookup(42)
	require.Error(t, err)
	require.True(t, ErrUnknownID.Is(err))
}

func TestInternerRoundTripAllIDs(t *testing.T) {
	in := NewInterner()
	words := []string{"a", "b", "c", "a", "d", "b"}
	ids := make([]uint32, len(words))
	for i, w := range words {
		ids[i] = in.InternString(w)
	}

	for i, id := range ids {
		got := in.LookupString(id)
		require.Equal(t, words[i], got)
		require.Equal(t, id, in.InternString(words[i]))
	}
}
