// Copyright 2025 go-gemm Authors. SPDX-License-Identifier: Apache-2.0

package gemm

import "unsafe"

// bufAlign is the byte alignment of packed panel buffers.
const bufAlign = 64

// newAlignedBuf returns a zeroed float64 slice of length n whose base
// address is bufAlign-byte aligned.
//
// The buffer is carved from an oversized garbage-collected slice, so its
// lifetime is tied to the stage that allocated it: no matching free call,
// the buffer dies when the owning loop level returns.
func newAlignedBuf(n int) []float64 {
	if n <= 0 {
		return nil
	}
	const pad = bufAlign / 8
	raw := make([]float64, n+pad)
	off := 0
	if rem := uintptr(unsafe.Pointer(&raw[0])) % bufAlign; rem != 0 {
		// float64 slices are 8-byte aligned, so the gap is a whole
		// number of elements.
		off = int((bufAlign - rem) / 8)
	}
	return raw[off : off+n : off+n]
}
