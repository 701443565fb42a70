package loadshape

import (
	"fmt"
	"time"
)

// Profile is an immutable, ordered schedule of load phases. It answers
// "how many virtual users should be active at elapsed time t" for any t
// in [0, TotalDuration]. All methods are pure reads over state frozen
// at Build time, so a Profile is safe for concurrent use by any number
// of samplers without locking.
type Profile struct {
	phases  []Phase
	offsets []time.Duration // start offset of each phase
	rates   []float64       // per-phase spawn rate, users/second
	total   time.Duration
}

// UsersAt returns the target user count at the given elapsed time.
//
// Out-of-range times are clamped to [0, TotalDuration]. A sample taken
// exactly at a phase boundary belongs to the phase that is starting;
// only the final phase's window is closed on both ends, so
// UsersAt(TotalDuration) is the last phase's ending count. Interpolated
// values round half-up.
//
// The only possible error is ErrEmptyProfile, for a zero-value Profile
// that never went through Build.
func (p *Profile) UsersAt(elapsed time.Duration) (int, error) {
	i, elapsed, err := p.locate(elapsed)
	if err != nil {
		return 0, err
	}

	ph := p.phases[i]
	switch ph.Kind {
	case KindSpike, KindSteady:
		return ph.EndUsers, nil
	case KindRampUp, KindStressRamp:
		if ph.Duration == 0 {
			return ph.EndUsers, nil
		}
		fraction := float64(elapsed-p.offsets[i]) / float64(ph.Duration)
		value := float64(ph.StartUsers) + float64(ph.EndUsers-ph.StartUsers)*fraction
		return int(value + 0.5), nil
	default:
		return 0, fmt.Errorf("unknown phase kind %q", ph.Kind)
	}
}

// SpawnRateAt returns the user spawn rate (users per second) the engine
// should apply at the given elapsed time, clamped like UsersAt.
func (p *Profile) SpawnRateAt(elapsed time.Duration) (float64, error) {
	i, _, err := p.locate(elapsed)
	if err != nil {
		return 0, err
	}
	return p.rates[i], nil
}

// TotalDuration returns the sum of all phase durations.
func (p *Profile) TotalDuration() time.Duration {
	return p.total
}

// PhaseCount returns the number of phases in the profile.
func (p *Profile) PhaseCount() int {
	return len(p.phases)
}

// PhaseAt returns the phase at the given index, with ramp-up starting
// levels already resolved.
func (p *Profile) PhaseAt(i int) Phase {
	return p.phases[i]
}

// Phases returns a copy of the resolved phase list in append order.
func (p *Profile) Phases() []Phase {
	out := make([]Phase, len(p.phases))
	copy(out, p.phases)
	return out
}

// locate clamps elapsed and returns the index of the phase whose window
// contains it. Windows are [start, end) except the last, which is
// [start, end] so TotalDuration itself is well-defined.
func (p *Profile) locate(elapsed time.Duration) (int, time.Duration, error) {
	if p == nil || len(p.phases) == 0 {
		return 0, 0, ErrEmptyProfile
	}
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > p.total {
		elapsed = p.total
	}
	for i := 0; i < len(p.phases)-1; i++ {
		if elapsed < p.offsets[i]+p.phases[i].Duration {
			return i, elapsed, nil
		}
	}
	return len(p.phases) - 1, elapsed, nil
}
