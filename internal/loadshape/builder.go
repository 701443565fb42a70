package loadshape

import "time"

// Builder accumulates phases in call order and finalizes them into an
// immutable Profile.
//
// Example:
//
//	profile, err := loadshape.NewBuilder().
//		Spike(10).
//		RampUp(50, 30*time.Second).
//		SteadyUsers(50, time.Minute).
//		StressRamp(50, 100, 30*time.Second).
//		Build()
//
// Each append validates its parameters; the first violation is recorded
// and returned by Build. The builder is safe to discard after Build —
// the Profile holds its own copy of the phases.
type Builder struct {
	phases []Phase
	err    error
}

// NewBuilder creates an empty load profile builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Spike appends a burst to the given user count held for
// DefaultSpikeDuration.
func (b *Builder) Spike(users int) *Builder {
	return b.SpikeFor(users, DefaultSpikeDuration)
}

// SpikeFor appends a burst to the given user count held for an explicit
// duration. A zero duration is a valid instantaneous transition.
func (b *Builder) SpikeFor(users int, duration time.Duration) *Builder {
	if users < 0 {
		return b.fail(KindSpike, "users", "must be non-negative")
	}
	if duration < 0 {
		return b.fail(KindSpike, "duration", "must be non-negative")
	}
	return b.append(Phase{Kind: KindSpike, StartUsers: users, EndUsers: users, Duration: duration})
}

// RampUp appends a linear ramp from the previous phase's ending user
// count (0 if this is the first phase) to targetUsers.
func (b *Builder) RampUp(targetUsers int, duration time.Duration) *Builder {
	if targetUsers < 0 {
		return b.fail(KindRampUp, "targetUsers", "must be non-negative")
	}
	if duration <= 0 {
		return b.fail(KindRampUp, "duration", "must be positive")
	}
	// StartUsers is resolved against the preceding phase at Build time.
	return b.append(Phase{Kind: KindRampUp, EndUsers: targetUsers, Duration: duration})
}

// SteadyUsers appends a phase holding a constant user count.
func (b *Builder) SteadyUsers(users int, duration time.Duration) *Builder {
	if users < 0 {
		return b.fail(KindSteady, "users", "must be non-negative")
	}
	if duration <= 0 {
		return b.fail(KindSteady, "duration", "must be positive")
	}
	return b.append(Phase{Kind: KindSteady, StartUsers: users, EndUsers: users, Duration: duration})
}

// StressRamp appends a linear ramp between explicit start and end user
// counts, ignoring the previous phase's ending value.
func (b *Builder) StressRamp(startUsers, endUsers int, duration time.Duration) *Builder {
	if startUsers < 0 {
		return b.fail(KindStressRamp, "startUsers", "must be non-negative")
	}
	if endUsers < 0 {
		return b.fail(KindStressRamp, "endUsers", "must be non-negative")
	}
	if duration <= 0 {
		return b.fail(KindStressRamp, "duration", "must be positive")
	}
	return b.append(Phase{Kind: KindStressRamp, StartUsers: startUsers, EndUsers: endUsers, Duration: duration})
}

// Build snapshots the accumulated phases into an immutable Profile.
// It returns the first validation error recorded during appends, or
// ErrEmptyProfile when no phases were added.
func (b *Builder) Build() (*Profile, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.phases) == 0 {
		return nil, ErrEmptyProfile
	}

	phases := make([]Phase, len(b.phases))
	copy(phases, b.phases)

	// Resolve ramp-up starting levels and cumulative phase offsets.
	offsets := make([]time.Duration, len(phases))
	rates := make([]float64, len(phases))
	var elapsed time.Duration
	prevEnd := 0
	for i := range phases {
		if phases[i].Kind == KindRampUp {
			phases[i].StartUsers = prevEnd
		}
		offsets[i] = elapsed
		rates[i] = phases[i].spawnRate()
		elapsed += phases[i].Duration
		prevEnd = phases[i].EndUsers
	}

	return &Profile{
		phases:  phases,
		offsets: offsets,
		rates:   rates,
		total:   elapsed,
	}, nil
}

func (b *Builder) append(p Phase) *Builder {
	if b.err == nil {
		b.phases = append(b.phases, p)
	}
	return b
}

func (b *Builder) fail(kind PhaseKind, field, message string) *Builder {
	if b.err == nil {
		b.err = &InvalidPhaseError{Kind: kind, Field: field, Message: message}
	}
	return b
}
