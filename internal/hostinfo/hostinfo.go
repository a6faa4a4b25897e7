// Package hostinfo reads the hardware hints the capability profile uses.
package hostinfo

import (
	"context"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/iburimskiy/wave-background/internal/animator"
)

const gib = 1 << 30

// Detect reports the logical CPU count and total memory. A probe that fails
// leaves its hint unset, which never lowers the profile.
func Detect(ctx context.Context) animator.Hints {
	var h animator.Hints
	if n, err := cpu.CountsWithContext(ctx, true); err == nil && n > 0 {
		h.CPUs = n
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil && vm.Total > 0 {
		h.MemoryGB = float64(vm.Total) / gib
	}
	return h
}

// Override replaces detected hints with explicit values. Negative values
// clear the hint; zero keeps the detected value.
func Override(h animator.Hints, cpus int, memoryGB float64) animator.Hints {
	switch {
	case cpus < 0:
		h.CPUs = 0
	case cpus > 0:
		h.CPUs = cpus
	}
	switch {
	case memoryGB < 0:
		h.MemoryGB = 0
	case memoryGB > 0:
		h.MemoryGB = memoryGB
	}
	return h
}
