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

import "github.com/shopspring/decimal"

// Precision is the denominator of every VProb: a VProb numerator n
// represents the probability n/Precision.
const Precision int64 = 1_000_000

// VProb is a fixed-point probability in [0, 1], represented as an integer
// numerator over Precision. All arithmetic is integer and deterministic.
type VProb struct {
	numerator int64
}

// NewVProb builds a VProb from a numerator, validating it falls in
// [0, Precision].
func NewVProb(numerator int64) (VProb, error) {
	if numerator < 0 || numerator > Precision {
		return VProb{}, ErrInvalidConfidence.New(numerator, Precision)
	}
	return VProb{numerator: numerator}, nil
}

// MustVProb is NewVProb but panics on an out-of-range numerator; intended
// for constants and tests.
func MustVProb(numerator int64) VProb {
	v, err := NewVProb(numerator)
	if err != nil {
		panic(err)
	}
	return v
}

// Certain is the VProb with numerator == Precision (probability 1).
var Certain = VProb{numerator: Precision}

// Impossible is the VProb with numerator == 0 (probability 0).
var Impossible = VProb{numerator: 0}

// Numerator returns the raw fixed-point numerator.
func (v VProb) Numerator() int64 { return v.numerator }

// Mul computes the fixed-point product ⌊a·b / Precision⌋.
func (v VProb) Mul(other VProb) VProb {
	return VProb{numerator: (v.numerator * other.numerator) / Precision}
}

// Complement computes Precision − n.
func (v VProb) Complement() VProb {
	return VProb{numerator: Precision - v.numerator}
}

// Compare returns -1, 0, or 1 as v is less than, equal to, or greater than
// other, comparing numerators directly.
func (v VProb) Compare(other VProb) int {
	switch {
	case v.numerator < other.numerator:
		return -1
	case v.numerator > other.numerator:
		return 1
	default:
		return 0
	}
}

// Min returns the smaller of v and other.
func (v VProb) Min(other VProb) VProb {
	if v.Compare(other) <= 0 {
		return v
	}
	return other
}

// Decimal renders the VProb as a shopspring/decimal value, for display in
// logs and certificate summaries.
func (v VProb) Decimal() decimal.Decimal {
	return decimal.New(v.numerator, 0).Div(decimal.New(Precision, 0))
}

// String renders the VProb with six decimal digits, e.g. "0.900000".
func (v VProb) String() string {
	return v.Decimal().StringFixed(6)
}

// ComposeChain composes the per-step confidences of a reachability chain.
// The composed confidence is the running product, which by construction is
// less than or equal to the minimum single step (testable property 7).
func ComposeChain(steps []VProb) VProb {
	acc := Certain
	for _, s := range steps {
		acc = acc.Mul(s)
	}
	return acc
}
