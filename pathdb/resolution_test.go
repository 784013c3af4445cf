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
)

func TestResolve(t *testing.T) {
	threshold := MustVProb(100_000)

	assert.Equal(t, DecisionAccept, Resolve(MustVProb(900_000), MustVProb(700_000), threshold))
	assert.Equal(t, DecisionReject, Resolve(MustVProb(700_000), MustVProb(900_000), threshold))
	assert.Equal(t, DecisionAmbiguous, Resolve(MustVProb(500_000), MustVProb(550_000), threshold))
}
