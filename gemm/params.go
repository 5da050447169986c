// Copyright 2025 go-gemm Authors. SPDX-License-Identifier: Apache-2.0

package gemm

import (
	"github.com/pkg/errors"

	"github.com/ajroetker/go-gemm/vec"
)

// Fixed unroll capacity of the micro-kernel. Register tiles are bounded so
// accumulators fit in fixed-size local arrays with no per-call allocation.
const (
	maxMr = 2 * vec.Width
	maxNr = 8
)

// Params holds the five blocking constants of the loop nest.
//
// Mc, Nc and Kc bound the row, column and shared-dimension chunk processed
// at the cache-blocking levels; Mr and Nr are the register tile dimensions
// of the micro-kernel. Correctness does not depend on the specific values,
// only on the consistency checked by Validate, so the same kernel can be
// tuned or tested against different cache geometries.
type Params struct {
	Mc, Nc, Kc int
	Mr, Nr     int
}

// DefaultParams returns blocking parameters tuned for a typical
// 32KB-L1 / 256KB-L2 / shared-LLC hierarchy with 256-bit vectors.
func DefaultParams() Params {
	return Params{
		Mc: 72,
		Nc: 1020,
		Kc: 256,
		Mr: vec.Width,
		Nr: 4,
	}
}

// Validate checks internal consistency of the blocking parameters.
// It is called once per top-level multiply, never inside the loop nest.
// Remainders are handled by padding, so the cache block sizes need not be
// multiples of the register tile dimensions.
func (p Params) Validate() error {
	if p.Mc <= 0 || p.Nc <= 0 || p.Kc <= 0 {
		return errors.Errorf("gemm: cache block sizes must be positive (Mc=%d Nc=%d Kc=%d)", p.Mc, p.Nc, p.Kc)
	}
	if p.Mr <= 0 || p.Mr%vec.Width != 0 {
		return errors.Errorf("gemm: Mr must be a positive multiple of the vector width %d (Mr=%d)", vec.Width, p.Mr)
	}
	if p.Mr > maxMr {
		return errors.Errorf("gemm: Mr exceeds the kernel unroll capacity %d (Mr=%d)", maxMr, p.Mr)
	}
	if p.Nr <= 0 || p.Nr > maxNr {
		return errors.Errorf("gemm: Nr must be in 1..%d (Nr=%d)", maxNr, p.Nr)
	}
	return nil
}
