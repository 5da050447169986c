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

// Package gemm implements dense double-precision matrix multiplication,
// C ← A·B + C, over arbitrarily strided views.
//
// The computation is decomposed by a five-level blocked loop nest in the
// style of high-performance BLAS implementations: the outer three levels
// partition N, K and M into cache-sized chunks, repacking the B and A chunks
// into contiguous zero-padded panel buffers once per chunk; the inner two
// levels walk register tiles of the packed panels and hand each tile to a
// fused-multiply-add micro-kernel that accumulates entirely in vector
// registers.
//
// The package is single-threaded and performs no input validation on the
// hot path: the caller guarantees that A is M x K, B is K x N and C is
// M x N under the given strides, and that C's existing contents are the
// accumulation seed. A parallel extension would need one packed-buffer pair
// per worker; the buffers here are owned by their packing loop level and
// must not be shared.
package gemm

// Multiply updates C in place to hold A·B + C using the default blocking
// parameters.
//
// Dimensions are taken from the views: A is M x K, B is K x N, C is M x N.
// Non-positive dimensions degenerate to zero iterations and leave C
// unchanged. Stride or length errors are undefined behavior, not reported.
func Multiply(c, a, b View) {
	multiply(DefaultParams(), c, a, b)
}

// MultiplyWith is Multiply with explicit blocking parameters, validated
// once before the loop nest runs.
func MultiplyWith(p Params, c, a, b View) error {
	if err := p.Validate(); err != nil {
		return err
	}
	multiply(p, c, a, b)
	return nil
}

// multiply is the outermost partition (level 5): N is split into Nc-column
// chunks sized for the last-level cache. A passes through whole.
func multiply(p Params, c, a, b View) {
	m, n, k := a.Rows, b.Cols, a.Cols
	// An empty operand contributes nothing and its backing slice may have
	// zero length, so it must never be windowed past the first chunk.
	if m <= 0 || n <= 0 || k <= 0 {
		return
	}
	for jc := 0; jc < n; jc += p.Nc {
		jb := min(p.Nc, n-jc)
		colBlock(p, c.window(0, jc, m, jb), a, b.window(0, jc, k, jb))
	}
}

// colBlock is the K partition (level 4): K is split into Kc chunks. It owns
// the packed right-hand buffer for the duration of its loop; each B chunk is
// repacked exactly once and reused across every row block below.
func colBlock(p Params, c, a, b View) {
	k := a.Cols
	bBuf := newAlignedBuf(p.Kc * roundUp(b.Cols, p.Nr))
	for pc := 0; pc < k; pc += p.Kc {
		kb := min(p.Kc, k-pc)
		packRight(bBuf, b.window(pc, 0, kb, b.Cols), p.Nr)
		rowBlock(p, c, a.window(0, pc, a.Rows, kb), bBuf, kb)
	}
}

// rowBlock is the M partition (level 3): M is split into Mc chunks. It owns
// the packed left-hand buffer; each A chunk is repacked exactly once per
// (column chunk, K chunk) pair.
func rowBlock(p Params, c, a View, bPacked []float64, kb int) {
	m := a.Rows
	aBuf := newAlignedBuf(roundUp(p.Mc, p.Mr) * kb)
	for ic := 0; ic < m; ic += p.Mc {
		ib := min(p.Mc, m-ic)
		packLeft(aBuf, a.window(ic, 0, ib, kb), p.Mr)
		registerBlocks(p, c.window(ic, 0, ib, c.Cols), aBuf, bPacked, kb)
	}
}

// registerBlocks are the register-tile partitions (levels 2 and 1): the
// packed panels are walked in Nr-column then Mr-row tiles, and each tile is
// handed to the micro-kernel. Panel offsets are pure index arithmetic into
// the packed buffers; no data moves here.
func registerBlocks(p Params, c View, aPacked, bPacked []float64, kb int) {
	for jr := 0; jr < c.Cols; jr += p.Nr {
		jbr := min(p.Nr, c.Cols-jr)
		bPanel := bPacked[(jr/p.Nr)*kb*p.Nr:]
		for ir := 0; ir < c.Rows; ir += p.Mr {
			ibr := min(p.Mr, c.Rows-ir)
			aPanel := aPacked[(ir/p.Mr)*kb*p.Mr:]
			microKernel(kb, aPanel, bPanel, c.window(ir, jr, ibr, jbr), ibr, jbr, p.Mr, p.Nr)
		}
	}
}

// roundUp rounds x up to the next multiple of to.
func roundUp(x, to int) int {
	return (x + to - 1) / to * to
}
