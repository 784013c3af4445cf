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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVProbRangeValidation(t *testing.T) {
	_, err := NewVProb(-1)
	require.Error(t, err)

	_, err = NewVProb(Precision + 1)
	require.Error(t, err)

	v, err := NewVProb(Precision)
	require.NoError(t, err)
	assert.Equal(t, Certain, v)
}

func TestVProbMulAndComplement(t *testing.T) {
	half := MustVProb(500_000)
	quarter := half.Mul(half)
	assert.Equal(t, int64(250_000), quarter.Numerator())

	assert.Equal(t, int64(500_000), half.Complement().Numerator())
	assert.Equal(t, int64(0), Certain.Complement().Numerator())
}

func TestVProbComposeChainMonotone(t *testing.T) {
	steps := []VProb{MustVProb(900_000), MustVProb(800_000), MustVProb(950_000)}
	composed := ComposeChain(steps)

	min := steps[0]
	for _, s := range steps[1:] {
		min = min.Min(s)
	}
	assert.True(t, composed.Compare(min) <= 0, "composed confidence must not exceed the minimum single step")
}

func TestVProbString(t *testing.T) {
	assert.Equal(t, "0.500000", MustVProb(500_000).String())
	assert.Equal(t, "1.000000", Certain.String())
}
