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

// packLeft packs an ib x kb chunk of the left operand into micro-panels of
// mr rows each.
//
// The packed layout is [num_panels, kb, mr]: within a panel, the mr values
// of one k step are contiguous, iterating k-first. This is the order the
// micro-kernel consumes — one contiguous mr-wide column load per k step.
//
// A partial last panel (ib not a multiple of mr) is padded with exact zeros
// so the kernel always runs at full tile width; the padded rows multiply
// into discarded lanes and never reach C.
func packLeft(dst []float64, a View, mr int) {
	idx := 0
	for strip := 0; strip < a.Rows; strip += mr {
		validRows := min(mr, a.Rows-strip)

		// Fast path: column-major source, full panel. An mr-row column
		// segment is contiguous in memory.
		if validRows == mr && a.RowStride == 1 && mr%vec.Width == 0 {
			for kk := 0; kk < a.Cols; kk++ {
				col := strip + kk*a.ColStride
				for r := 0; r < mr; r += vec.Width {
					vec.Store(vec.Load(a.Data[col+r:]), dst[idx+r:])
				}
				idx += mr
			}
			continue
		}

		// Strided gather, zero-padding the missing rows.
		for kk := 0; kk < a.Cols; kk++ {
			colBase := kk * a.ColStride
			for r := 0; r < validRows; r++ {
				dst[idx] = a.Data[(strip+r)*a.RowStride+colBase]
				idx++
			}
			for r := validRows; r < mr; r++ {
				dst[idx] = 0
				idx++
			}
		}
	}
}

// packRight packs a kb x jb chunk of the right operand into micro-panels of
// nr columns each.
//
// Structurally symmetric to packLeft with the row/column roles swapped: the
// packed layout is [num_panels, kb, nr], so the nr scalars the kernel
// broadcasts for one k step are contiguous.
func packRight(dst []float64, b View, nr int) {
	idx := 0
	for strip := 0; strip < b.Cols; strip += nr {
		validCols := min(nr, b.Cols-strip)

		// Fast path: row-major source, full panel, vector-width columns.
		if validCols == nr && b.ColStride == 1 && nr%vec.Width == 0 {
			for kk := 0; kk < b.Rows; kk++ {
				row := kk*b.RowStride + strip
				for c := 0; c < nr; c += vec.Width {
					vec.Store(vec.Load(b.Data[row+c:]), dst[idx+c:])
				}
				idx += nr
			}
			continue
		}

		// Strided gather, zero-padding the missing columns.
		for kk := 0; kk < b.Rows; kk++ {
			rowBase := kk * b.RowStride
			for c := 0; c < validCols; c++ {
				dst[idx] = b.Data[rowBase+(strip+c)*b.ColStride]
				idx++
			}
			for c := validCols; c < nr; c++ {
				dst[idx] = 0
				idx++
			}
		}
	}
}
