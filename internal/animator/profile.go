package animator

import "github.com/iburimskiy/wave-background/internal/config"

// Hints are the optional hardware signals reported by the host. A zero
// field means the host did not report it.
type Hints struct {
	CPUs     int
	MemoryGB float64
}

// Thresholds at or below which a hint marks the device as low power.
type Thresholds struct {
	CompactWidth float64
	CPUs         int
	MemoryGB     float64
}

// ThresholdsFromConfig pulls the profile thresholds out of cfg.
func ThresholdsFromConfig(cfg config.Profile) Thresholds {
	return Thresholds{
		CompactWidth: cfg.CompactWidth,
		CPUs:         cfg.CPUThreshold,
		MemoryGB:     cfg.MemoryThresholdG,
	}
}

// CapabilityProfile classifies the rendering budget of the host.
// LowPower is always true when Compact is.
type CapabilityProfile struct {
	Compact  bool
	LowPower bool
}

// NewProfile derives the profile for a viewport of the given logical width.
func NewProfile(width float64, h Hints, t Thresholds) CapabilityProfile {
	compact := width < t.CompactWidth
	lowCPU := h.CPUs > 0 && h.CPUs <= t.CPUs
	lowMem := h.MemoryGB > 0 && h.MemoryGB <= t.MemoryGB
	return CapabilityProfile{
		Compact:  compact,
		LowPower: compact || lowCPU || lowMem,
	}
}

func (p CapabilityProfile) String() string {
	switch {
	case p.Compact:
		return "compact"
	case p.LowPower:
		return "low-power"
	}
	return "full"
}
