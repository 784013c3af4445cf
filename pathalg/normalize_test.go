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

package pathalg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCancelsAdjacentInverses(t *testing.T) {
	// trans(step(a,r,b), inv(step(a,r,b))) normalizes to refl(a)
	s := Step("a", "r", "b")
	e := Trans(s, Inv(s))

	got := Normalize(e)
	assert.True(t, Equal(got, Refl("a")))
}

func TestNormalizeIdempotent(t *testing.T) {
	e := Trans(Step("a", "r", "b"), Trans(Step("b", "r2", "c"), Inv(Step("d", "r3", "c"))))

	once := Normalize(e)
	twice := Normalize(once)
	assert.True(t, Equal(once, twice))
}

func TestNormalizeEmptyReductionYieldsRefl(t *testing.T) {
	s := Step("x", "r", "y")
	e := Trans(Inv(s), s)

	got := Normalize(e)
	assert.True(t, Equal(got, Refl("y")))
}

func TestNormalizePreservesEndpoints(t *testing.T) {
	e := Trans(Step("a", "r1", "b"), Step("b", "r2", "c"))
	got := Normalize(e)
	assert.Equal(t, e.Source(), got.Source())
	assert.Equal(t, e.Target(), got.Target())
}
