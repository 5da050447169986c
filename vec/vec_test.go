// Copyright 2025 go-gemm Authors. SPDX-License-Identifier: Apache-2.0

package vec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadStoreRoundTrip(t *testing.T) {
	src := []float64{1, 2, 3, 4}
	v := Load(src)
	dst := make([]float64, Width)
	Store(v, dst)
	require.Equal(t, src, dst)
}

func TestLoadShortSliceZeroFills(t *testing.T) {
	v := Load([]float64{7, 8})
	require.Equal(t, 7.0, v.At(0))
	require.Equal(t, 8.0, v.At(1))
	require.Equal(t, 0.0, v.At(2))
	require.Equal(t, 0.0, v.At(3))
}

func TestLoadNStoreN(t *testing.T) {
	src := []float64{1, 2, 3, 4}
	v := LoadN(src, 3)
	require.Equal(t, 0.0, v.At(3))

	dst := []float64{-1, -1, -1, -1}
	StoreN(v, dst, 2)
	require.Equal(t, []float64{1, 2, -1, -1}, dst)

	// Clamped out-of-range counts are no-ops / full-width.
	StoreN(v, dst, 0)
	require.Equal(t, []float64{1, 2, -1, -1}, dst)
	StoreN(v, dst, Width+5)
	require.Equal(t, []float64{1, 2, 3, 0}, dst)
}

func TestSetBroadcast(t *testing.T) {
	v := Set(2.5)
	for i := 0; i < Width; i++ {
		require.Equal(t, 2.5, v.At(i))
	}
}

func TestAdd(t *testing.T) {
	a := Load([]float64{1, 2, 3, 4})
	b := Load([]float64{10, 20, 30, 40})
	r := Add(a, b)
	for i := 0; i < Width; i++ {
		require.Equal(t, a.At(i)+b.At(i), r.At(i))
	}
}

func TestMulAddIsFused(t *testing.T) {
	// Pick operands where fused and unfused results differ: a*b needs more
	// than 53 bits, and acc cancels most of the product.
	a := 1.0 + math.Pow(2, -30)
	b := 1.0 + math.Pow(2, -30)
	acc := -1.0

	fused := math.FMA(a, b, acc)
	unfused := a*b + acc
	require.NotEqual(t, fused, unfused, "test operands must expose double rounding")

	r := MulAdd(Set(a), Set(b), Set(acc))
	for i := 0; i < Width; i++ {
		require.Equal(t, fused, r.At(i))
	}
}

func TestMulAddZeroAccumulator(t *testing.T) {
	a := Load([]float64{1, -2, 3, -4})
	b := Set(0.5)
	r := MulAdd(a, b, Zero())
	for i := 0; i < Width; i++ {
		require.Equal(t, a.At(i)*0.5, r.At(i))
	}
}
