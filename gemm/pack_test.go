// Copyright 2025 go-gemm Authors. SPDX-License-Identifier: Apache-2.0

package gemm

import (
	"fmt"
	"math/rand"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestPackRightPadsPartialPanel(t *testing.T) {
	// 6x5 chunk, nr=4: the second panel has one valid column and three
	// padded ones that must be exact zeros.
	rng := rand.New(rand.NewSource(1))
	b := randomView(rng, 6, 5, rowMajor)
	dst := newAlignedBuf(6 * roundUp(5, 4))
	packRight(dst, b, 4)

	for kk := 0; kk < 6; kk++ {
		for c := 0; c < 4; c++ {
			require.Equal(t, b.At(kk, c), dst[kk*4+c])
		}
	}
	base := 6 * 4
	for kk := 0; kk < 6; kk++ {
		require.Equal(t, b.At(kk, 4), dst[base+kk*4])
		for c := 1; c < 4; c++ {
			require.Equal(t, 0.0, dst[base+kk*4+c])
		}
	}
}

func TestPackLeftPadsPartialPanel(t *testing.T) {
	// 5x3 chunk, mr=4: the second panel has one valid row, padded to four.
	rng := rand.New(rand.NewSource(2))
	a := randomView(rng, 5, 3, rowMajor)
	dst := newAlignedBuf(roundUp(5, 4) * 3)
	packLeft(dst, a, 4)

	// Full panel: k-first, the four rows of one k step are contiguous.
	for kk := 0; kk < 3; kk++ {
		for r := 0; r < 4; r++ {
			require.Equal(t, a.At(r, kk), dst[kk*4+r])
		}
	}
	base := 3 * 4
	for kk := 0; kk < 3; kk++ {
		require.Equal(t, a.At(4, kk), dst[base+kk*4])
		for r := 1; r < 4; r++ {
			require.Equal(t, 0.0, dst[base+kk*4+r])
		}
	}
}

func TestPackLayoutIndependent(t *testing.T) {
	// Packing depends only on logical element values, not source strides.
	rng := rand.New(rand.NewSource(3))
	rm := randomView(rng, 7, 6, rowMajor)
	cm := randomView(rng, 7, 6, colMajor)
	em := randomView(rng, 7, 6, embedded)
	for i := 0; i < 7; i++ {
		for j := 0; j < 6; j++ {
			cm.SetAt(i, j, rm.At(i, j))
			em.SetAt(i, j, rm.At(i, j))
		}
	}

	n := roundUp(7, 4) * 6
	left := make([][]float64, 3)
	for i, v := range []View{rm, cm, em} {
		left[i] = newAlignedBuf(n)
		packLeft(left[i], v, 4)
	}
	require.Equal(t, left[0], left[1])
	require.Equal(t, left[0], left[2])

	n = 7 * roundUp(6, 4)
	right := make([][]float64, 3)
	for i, v := range []View{rm, cm, em} {
		right[i] = newAlignedBuf(n)
		packRight(right[i], v, 4)
	}
	require.Equal(t, right[0], right[1])
	require.Equal(t, right[0], right[2])
}

func TestPackIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	a := randomView(rng, 9, 5, embedded)

	first := newAlignedBuf(roundUp(9, 4) * 5)
	second := newAlignedBuf(roundUp(9, 4) * 5)
	packLeft(first, a, 4)
	packLeft(second, a, 4)
	require.Equal(t, first, second)

	b := randomView(rng, 5, 9, embedded)
	first = newAlignedBuf(5 * roundUp(9, 4))
	second = newAlignedBuf(5 * roundUp(9, 4))
	packRight(first, b, 4)
	packRight(second, b, 4)
	require.Equal(t, first, second)
}

func TestAlignedBufAlignment(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7, 16, 63, 64, 100, 4096} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			buf := newAlignedBuf(n)
			require.Len(t, buf, n)
			addr := uintptr(unsafe.Pointer(&buf[0]))
			require.Zero(t, addr%bufAlign, "base address %#x not %d-byte aligned", addr, bufAlign)
		})
	}
	require.Nil(t, newAlignedBuf(0))
	require.Nil(t, newAlignedBuf(-1))
}
