package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/iburimskiy/wave-background/internal/animator"
)

// formatFrameTime formats a frame duration as milliseconds with two decimals.
func formatFrameTime(d time.Duration) string {
	return fmt.Sprintf("%.2fms", float64(d.Microseconds())/1000)
}

// overlayText builds the F3 debug overlay.
func overlayText(fps float64, vp animator.Viewport, p animator.CapabilityProfile, st animator.FrameStats, mean time.Duration) string {
	var b strings.Builder
	fmt.Fprintf(&b, "FPS: %.1f  frame: %s\n", fps, formatFrameTime(mean))
	fmt.Fprintf(&b, "viewport: %.0fx%.0f @%.2gx  profile: %s\n", vp.Width, vp.Height, vp.PixelRatio, p)
	fmt.Fprintf(&b, "particles: %d  shapes: %d\n", st.Particles, st.Shapes)
	if p.LowPower {
		b.WriteString("connections: off")
	} else {
		fmt.Fprintf(&b, "connections: %d/%d", st.Connections, st.PairChecks)
	}
	return b.String()
}
