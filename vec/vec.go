// Copyright 2025 go-gemm Authors
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

// Package vec provides a fixed-width vector value type for double precision.
//
// A Vec holds Width float64 lanes and models one vector register. The
// operations mirror the portable-SIMD style: load from and store to slices,
// broadcast a scalar across lanes, and fused multiply-add. Vec is a plain
// value type with no heap allocation, so accumulators held in local variables
// stay register-resident under the compiler.
//
// Basic usage:
//
//	a := vec.Load(data1)
//	b := vec.Set(scalar)
//	acc := vec.Zero()
//	acc = vec.MulAdd(a, b, acc)
//	vec.Store(acc, output)
package vec

import "math"

// Width is the number of float64 lanes per vector.
// Corresponds to a 256-bit register (4 x 64-bit doubles).
const Width = 4

// Vec is a fixed-width vector of float64 lanes.
type Vec struct {
	d [Width]float64
}

// Load creates a vector from the first Width elements of src.
// If src is shorter than Width, the remaining lanes are zero.
func Load(src []float64) Vec {
	var v Vec
	copy(v.d[:], src)
	return v
}

// LoadN creates a vector from the first n elements of src.
// Lanes beyond n are zero. n is clamped to [0, Width].
func LoadN(src []float64, n int) Vec {
	if n > Width {
		n = Width
	}
	var v Vec
	if n > 0 {
		copy(v.d[:n], src[:n])
	}
	return v
}

// Store writes all Width lanes of v to dst.
// If dst is shorter than Width, only len(dst) lanes are written.
func Store(v Vec, dst []float64) {
	copy(dst, v.d[:])
}

// StoreN writes the first n lanes of v to dst. n is clamped to [0, Width].
func StoreN(v Vec, dst []float64, n int) {
	if n > Width {
		n = Width
	}
	if n > 0 {
		copy(dst[:n], v.d[:n])
	}
}

// Set creates a vector with all lanes set to x (broadcast).
func Set(x float64) Vec {
	var v Vec
	for i := range v.d {
		v.d[i] = x
	}
	return v
}

// Zero creates a vector with all lanes set to zero.
func Zero() Vec {
	return Vec{}
}

// Add performs lane-wise addition.
func Add(a, b Vec) Vec {
	var r Vec
	for i := range r.d {
		r.d[i] = a.d[i] + b.d[i]
	}
	return r
}

// MulAdd performs fused multiply-add: a*b + acc, lane-wise.
//
// Each lane is computed with a single rounding (math.FMA), matching hardware
// FMA semantics. A reference built from separate multiply and add rounds
// twice and may differ in the final ulp.
func MulAdd(a, b, acc Vec) Vec {
	var r Vec
	for i := range r.d {
		r.d[i] = math.FMA(a.d[i], b.d[i], acc.d[i])
	}
	return r
}

// At returns lane i. Primarily for tests; the hot path uses Store.
func (v Vec) At(i int) float64 {
	return v.d[i]
}
