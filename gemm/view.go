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

// View is a dense matrix view over caller-owned memory.
//
// Element (i, j) lives at Data[i*RowStride + j*ColStride]. Strides are
// arbitrary element offsets, so a View can describe row-major storage,
// column-major storage, or a rectangular window into a larger buffer.
// Views do not own memory and never allocate; no bounds are validated.
type View struct {
	Data []float64

	Rows, Cols int

	// RowStride is the element offset between vertically adjacent elements,
	// ColStride between horizontally adjacent ones.
	RowStride, ColStride int
}

// FromRowMajor wraps data as a rows x cols row-major matrix.
// PRECONDITION: len(data) >= rows*cols.
func FromRowMajor(data []float64, rows, cols int) View {
	return View{Data: data, Rows: rows, Cols: cols, RowStride: cols, ColStride: 1}
}

// FromColMajor wraps data as a rows x cols column-major matrix.
// PRECONDITION: len(data) >= rows*cols.
func FromColMajor(data []float64, rows, cols int) View {
	return View{Data: data, Rows: rows, Cols: cols, RowStride: 1, ColStride: rows}
}

// Of wraps data as a rows x cols matrix with explicit strides.
func Of(data []float64, rows, cols, rowStride, colStride int) View {
	return View{Data: data, Rows: rows, Cols: cols, RowStride: rowStride, ColStride: colStride}
}

// At returns element (i, j).
func (v View) At(i, j int) float64 {
	return v.Data[i*v.RowStride+j*v.ColStride]
}

// SetAt stores x into element (i, j).
func (v View) SetAt(i, j int, x float64) {
	v.Data[i*v.RowStride+j*v.ColStride] = x
}

// window returns the rows x cols sub-view with origin (i, j).
// All stride arithmetic in the loop nest funnels through here.
// Callers stay in bounds by construction; nothing is checked.
func (v View) window(i, j, rows, cols int) View {
	return View{
		Data:      v.Data[i*v.RowStride+j*v.ColStride:],
		Rows:      rows,
		Cols:      cols,
		RowStride: v.RowStride,
		ColStride: v.ColStride,
	}
}
