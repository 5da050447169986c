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

// Command gemmbench measures the throughput of the blocked DGEMM kernel.
//
// It allocates random square matrices for each requested size, runs repeated
// C ← A·B + C updates, and reports achieved GFLOPS. The blocking parameters
// can be overridden from the command line to sweep cache geometries.
package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ajroetker/go-gemm/gemm"
	"github.com/ajroetker/go-gemm/internal/cpuinfo"
)

var (
	flagSizes  []int
	flagReps   int
	flagSeed   int64
	flagVerify bool

	flagMc, flagNc, flagKc, flagMr, flagNr int
)

func main() {
	defaults := gemm.DefaultParams()

	root := &cobra.Command{
		Use:          "gemmbench",
		Short:        "Benchmark the blocked double-precision GEMM kernel",
		RunE:         run,
		SilenceUsage: true,
	}
	root.Flags().IntSliceVar(&flagSizes, "sizes", []int{256, 512, 1024}, "square matrix sizes to benchmark")
	root.Flags().IntVar(&flagReps, "reps", 3, "timed repetitions per size")
	root.Flags().Int64Var(&flagSeed, "seed", 1, "seed for the random matrices")
	root.Flags().BoolVar(&flagVerify, "verify", true, "check the smallest size against a naive reference")
	root.Flags().IntVar(&flagMc, "mc", defaults.Mc, "row block size")
	root.Flags().IntVar(&flagNc, "nc", defaults.Nc, "outer column block size")
	root.Flags().IntVar(&flagKc, "kc", defaults.Kc, "shared-dimension block size")
	root.Flags().IntVar(&flagMr, "mr", defaults.Mr, "register tile rows")
	root.Flags().IntVar(&flagNr, "nr", defaults.Nr, "register tile columns")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	params := gemm.Params{Mc: flagMc, Nc: flagNc, Kc: flagKc, Mr: flagMr, Nr: flagNr}
	if err := params.Validate(); err != nil {
		return errors.Wrap(err, "invalid blocking parameters")
	}
	if flagReps < 1 {
		return errors.Errorf("reps must be at least 1, got %d", flagReps)
	}

	fmt.Printf("host: %s\n", cpuinfo.Summary())
	fmt.Printf("blocking: Mc=%d Nc=%d Kc=%d Mr=%d Nr=%d\n\n", params.Mc, params.Nc, params.Kc, params.Mr, params.Nr)

	rng := rand.New(rand.NewSource(flagSeed))
	smallest := -1
	for _, n := range flagSizes {
		if n < 1 {
			return errors.Errorf("matrix size must be at least 1, got %d", n)
		}
		if smallest < 0 || n < smallest {
			smallest = n
		}
		if err := benchSize(rng, params, n); err != nil {
			return err
		}
	}

	if flagVerify && smallest > 0 {
		return verifySize(rng, params, smallest)
	}
	return nil
}

func benchSize(rng *rand.Rand, params gemm.Params, n int) error {
	a := randomMatrix(rng, n)
	b := randomMatrix(rng, n)
	c := randomMatrix(rng, n)

	// Warm up once so page faults and buffer allocation settle.
	if err := gemm.MultiplyWith(params, c, a, b); err != nil {
		return err
	}

	start := time.Now()
	for r := 0; r < flagReps; r++ {
		if err := gemm.MultiplyWith(params, c, a, b); err != nil {
			return err
		}
	}
	elapsed := time.Since(start)

	flops := 2 * float64(n) * float64(n) * float64(n) * float64(flagReps)
	gflops := flops / elapsed.Seconds() / 1e9
	fmt.Printf("%6d x %-6d %12s elements %10s %8.2f GFLOPS\n",
		n, n, humanize.Comma(int64(n*n)), elapsed.Round(time.Microsecond), gflops)
	return nil
}

func verifySize(rng *rand.Rand, params gemm.Params, n int) error {
	a := randomMatrix(rng, n)
	b := randomMatrix(rng, n)
	c := randomMatrix(rng, n)
	want := make([]float64, len(c.Data))
	copy(want, c.Data)

	if err := gemm.MultiplyWith(params, c, a, b); err != nil {
		return err
	}
	naiveInto(gemm.FromRowMajor(want, n, n), a, b)

	var maxErr float64
	for i, got := range c.Data {
		if d := math.Abs(got - want[i]); d > maxErr {
			maxErr = d
		}
	}
	tol := 1e-12 * float64(n+1)
	if maxErr > tol {
		return errors.Errorf("verification failed at n=%d: max error %e exceeds %e", n, maxErr, tol)
	}
	fmt.Printf("\nverified n=%d against naive reference (max error %e)\n", n, maxErr)
	return nil
}

// naiveInto is the textbook triple loop, C ← A·B + C.
func naiveInto(c, a, b gemm.View) {
	for i := 0; i < a.Rows; i++ {
		for j := 0; j < b.Cols; j++ {
			sum := c.At(i, j)
			for p := 0; p < a.Cols; p++ {
				sum += a.At(i, p) * b.At(p, j)
			}
			c.SetAt(i, j, sum)
		}
	}
}

func randomMatrix(rng *rand.Rand, n int) gemm.View {
	data := make([]float64, n*n)
	for i := range data {
		data[i] = rng.Float64()*2 - 1
	}
	return gemm.FromRowMajor(data, n, n)
}
