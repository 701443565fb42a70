// Package loadshape builds deterministic load profiles: time-indexed
// schedules of target virtual-user counts that an external load-test
// engine samples to decide how many users should be active at a given
// elapsed time.
package loadshape

import "time"

// PhaseKind identifies the shape of a single load phase.
type PhaseKind string

const (
	// KindSpike holds at a constant elevated user count for a short burst.
	KindSpike PhaseKind = "spike"

	// KindRampUp increases linearly from the previous phase's ending
	// user count to a target.
	KindRampUp PhaseKind = "ramp-up"

	// KindSteady holds at a constant user count.
	KindSteady PhaseKind = "steady"

	// KindStressRamp interpolates linearly between an explicit start and
	// end user count, independent of the previous phase.
	KindStressRamp PhaseKind = "stress-ramp"
)

// DefaultSpikeDuration is the duration used by Builder.Spike when no
// explicit duration is given.
const DefaultSpikeDuration = time.Second

// Phase is one segment of a load profile.
//
// StartUsers and EndUsers are the user counts at the phase boundaries.
// For spike and steady phases both carry the fixed count. For ramp-up
// phases EndUsers is the target; StartUsers is resolved at Build time
// from the previous phase's ending count (0 for the first phase).
type Phase struct {
	Kind       PhaseKind
	StartUsers int
	EndUsers   int
	Duration   time.Duration
}

// spawnRate returns the user spawn rate the external engine should use
// while this phase is active, in users per second.
func (p Phase) spawnRate() float64 {
	switch p.Kind {
	case KindSpike:
		// Reach the burst count immediately.
		return float64(p.EndUsers)
	case KindSteady:
		return 1
	default:
		if p.Duration <= 0 {
			return float64(p.EndUsers)
		}
		delta := p.EndUsers - p.StartUsers
		if delta < 0 {
			delta = -delta
		}
		rate := float64(delta) / p.Duration.Seconds()
		if rate < 1 {
			rate = 1
		}
		return rate
	}
}
