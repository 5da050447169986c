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

// Package cpuinfo reports host CPU capabilities relevant to the kernel.
//
// The report is informational: the portable kernel computes with math.FMA,
// which is fused on every platform, so numerics do not change with the
// features listed here. The benchmark tool prints them so throughput numbers
// can be read in context.
package cpuinfo

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/cpu"
)

// HasFMA reports whether the CPU has hardware fused multiply-add (x86 FMA3).
func HasFMA() bool {
	return cpu.X86.HasFMA
}

// HasAVX2 reports whether the CPU supports AVX2 (256-bit vectors).
func HasAVX2() bool {
	return cpu.X86.HasAVX2
}

// HasAVX512 reports whether the CPU supports AVX-512 foundation instructions.
func HasAVX512() bool {
	return cpu.X86.HasAVX512F
}

// Summary returns a one-line description of the host for diagnostics.
func Summary() string {
	if runtime.GOARCH != "amd64" {
		return fmt.Sprintf("%s/%s (portable kernel, fused math.FMA)", runtime.GOOS, runtime.GOARCH)
	}
	return fmt.Sprintf("%s/%s fma=%v avx2=%v avx512f=%v",
		runtime.GOOS, runtime.GOARCH, HasFMA(), HasAVX2(), HasAVX512())
}
