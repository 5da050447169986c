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

package gemm

import "github.com/ajroetker/go-gemm/vec"

// microKernel computes the rank-kb update of one register tile of C:
//
//	C[0:mrEff, 0:nrEff] += sum_p aPanel[p] ⊗ bPanel[p]
//
// aPanel holds mr contiguous left-operand values per k step, bPanel holds nr
// contiguous right-operand scalars per k step (both zero-padded by packing).
// c is the tile's view into the output; mrEff and nrEff are its active
// extent, which is smaller than mr x nr only at matrix edges.
//
// The current C tile is loaded into the accumulators before the K loop —
// C carries a partial result, never a zero-initialized product — and the
// arithmetic runs branch-free at full mr x nr width over the padding. Only
// the active sub-tile is stored back.
func microKernel(kb int, aPanel, bPanel []float64, c View, mrEff, nrEff, mr, nr int) {
	if mr == vec.Width && nr == 4 && mrEff == vec.Width && nrEff == 4 {
		switch {
		case c.RowStride == 1:
			microKernel4x4Cols(kb, aPanel, bPanel, c)
			return
		case c.ColStride == 1:
			microKernel4x4Rows(kb, aPanel, bPanel, c)
			return
		}
	}
	microKernelGeneric(kb, aPanel, bPanel, c, mrEff, nrEff, mr, nr)
}

// microKernel4x4Cols is the fully unrolled kernel for the default 4x4 tile
// with contiguous C columns (RowStride == 1). One accumulator register per
// output column, each holding four rows.
func microKernel4x4Cols(kb int, aPanel, bPanel []float64, c View) {
	cs := c.ColStride

	acc0 := vec.Load(c.Data[0*cs:])
	acc1 := vec.Load(c.Data[1*cs:])
	acc2 := vec.Load(c.Data[2*cs:])
	acc3 := vec.Load(c.Data[3*cs:])

	for p := 0; p < kb; p++ {
		va := vec.Load(aPanel[p*vec.Width:])
		bp := bPanel[p*4:]
		acc0 = vec.MulAdd(va, vec.Set(bp[0]), acc0)
		acc1 = vec.MulAdd(va, vec.Set(bp[1]), acc1)
		acc2 = vec.MulAdd(va, vec.Set(bp[2]), acc2)
		acc3 = vec.MulAdd(va, vec.Set(bp[3]), acc3)
	}

	vec.Store(acc0, c.Data[0*cs:])
	vec.Store(acc1, c.Data[1*cs:])
	vec.Store(acc2, c.Data[2*cs:])
	vec.Store(acc3, c.Data[3*cs:])
}

// microKernel4x4Rows is the mirror of microKernel4x4Cols for contiguous C
// rows (ColStride == 1), the row-major default. One accumulator register per
// output row, each holding four columns; the roles of the panels swap, so the
// right-hand scalars load as a vector and the left-hand values broadcast.
// Lane (i, j) computes the same fused sequence as the column variant, so the
// two paths agree bit for bit.
func microKernel4x4Rows(kb int, aPanel, bPanel []float64, c View) {
	rs := c.RowStride

	acc0 := vec.Load(c.Data[0*rs:])
	acc1 := vec.Load(c.Data[1*rs:])
	acc2 := vec.Load(c.Data[2*rs:])
	acc3 := vec.Load(c.Data[3*rs:])

	for p := 0; p < kb; p++ {
		vb := vec.Load(bPanel[p*vec.Width:])
		ap := aPanel[p*4:]
		acc0 = vec.MulAdd(vec.Set(ap[0]), vb, acc0)
		acc1 = vec.MulAdd(vec.Set(ap[1]), vb, acc1)
		acc2 = vec.MulAdd(vec.Set(ap[2]), vb, acc2)
		acc3 = vec.MulAdd(vec.Set(ap[3]), vb, acc3)
	}

	vec.Store(acc0, c.Data[0*rs:])
	vec.Store(acc1, c.Data[1*rs:])
	vec.Store(acc2, c.Data[2*rs:])
	vec.Store(acc3, c.Data[3*rs:])
}

// microKernelGeneric handles any valid tile shape and any C strides.
// Accumulators live in a fixed-capacity array sized by the kernel unroll
// limits, indexed by (row strip, column).
func microKernelGeneric(kb int, aPanel, bPanel []float64, c View, mrEff, nrEff, mr, nr int) {
	rs, cs := c.RowStride, c.ColStride
	mrVecs := mr / vec.Width

	var acc [maxMr / vec.Width][maxNr]vec.Vec

	// Seed the accumulators with the active C sub-tile. Inactive lanes stay
	// zero and only ever accumulate zero-padded terms.
	for s := 0; s < mrVecs; s++ {
		base := s * vec.Width
		n := min(vec.Width, mrEff-base)
		if n <= 0 {
			break
		}
		for j := 0; j < nrEff; j++ {
			if rs == 1 {
				acc[s][j] = vec.LoadN(c.Data[base+j*cs:], n)
			} else {
				var lanes [vec.Width]float64
				for i := 0; i < n; i++ {
					lanes[i] = c.Data[(base+i)*rs+j*cs]
				}
				acc[s][j] = vec.Load(lanes[:])
			}
		}
	}

	for p := 0; p < kb; p++ {
		var va [maxMr / vec.Width]vec.Vec
		aOff := p * mr
		for s := 0; s < mrVecs; s++ {
			va[s] = vec.Load(aPanel[aOff+s*vec.Width:])
		}
		bp := bPanel[p*nr:]
		for j := 0; j < nr; j++ {
			vb := vec.Set(bp[j])
			for s := 0; s < mrVecs; s++ {
				acc[s][j] = vec.MulAdd(va[s], vb, acc[s][j])
			}
		}
	}

	// Store only the active sub-tile back to C.
	for s := 0; s < mrVecs; s++ {
		base := s * vec.Width
		n := min(vec.Width, mrEff-base)
		if n <= 0 {
			break
		}
		for j := 0; j < nrEff; j++ {
			if rs == 1 {
				vec.StoreN(acc[s][j], c.Data[base+j*cs:], n)
			} else {
				var lanes [vec.Width]float64
				vec.Store(acc[s][j], lanes[:])
				for i := 0; i < n; i++ {
					c.Data[(base+i)*rs+j*cs] = lanes[i]
				}
			}
		}
	}
}
