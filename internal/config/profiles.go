package config

import (
	"fmt"
	"time"

	"github.com/stampede-dev/stampede/internal/loadshape"
)

// PhaseConfig is one declared phase of a load profile. Ramp-up phases
// name their destination with `target`; `users` is accepted as a
// synonym there for symmetry with spike and steady phases.
type PhaseConfig struct {
	Type     string        `mapstructure:"type"`
	Users    int           `mapstructure:"users"`
	Target   int           `mapstructure:"target"`
	Start    int           `mapstructure:"start"`
	End      int           `mapstructure:"end"`
	Duration time.Duration `mapstructure:"duration"`
}

// rampTarget resolves the destination count of a ramp-up phase.
func (p PhaseConfig) rampTarget() int {
	if p.Target != 0 {
		return p.Target
	}
	return p.Users
}

// ProfileConfig is an ordered list of phases.
type ProfileConfig []PhaseConfig

// Build turns the declared phases into a sampled profile. Unknown
// phase types and malformed counts or durations are reported here, at
// load time.
func (pc ProfileConfig) Build() (*loadshape.Profile, error) {
	builder := loadshape.NewBuilder()
	for i, phase := range pc {
		switch phase.Type {
		case "spike":
			if phase.Duration > 0 {
				builder.SpikeFor(phase.Users, phase.Duration)
			} else {
				builder.Spike(phase.Users)
			}
		case "ramp-up":
			builder.RampUp(phase.rampTarget(), phase.Duration)
		case "steady":
			builder.SteadyUsers(phase.Users, phase.Duration)
		case "stress-ramp":
			builder.StressRamp(phase.Start, phase.End, phase.Duration)
		default:
			return nil, fmt.Errorf("phase %d: unknown phase type %q", i, phase.Type)
		}
	}
	return builder.Build()
}

// BuiltinProfiles returns the named profiles available without a
// config file.
func BuiltinProfiles() map[string]ProfileConfig {
	return map[string]ProfileConfig{
		"DEFAULT": {
			{Type: "spike", Users: 1},
			{Type: "ramp-up", Users: 20, Duration: 10 * time.Second},
			{Type: "steady", Users: 5, Duration: 5 * time.Second},
			{Type: "stress-ramp", Start: 5, End: 15, Duration: 10 * time.Second},
		},
		"BASIC": {
			{Type: "spike", Users: 1},
			{Type: "ramp-up", Users: 20, Duration: 10 * time.Second},
		},
		"STRESS": {
			{Type: "spike", Users: 5},
			{Type: "ramp-up", Users: 50, Duration: 20 * time.Second},
			{Type: "steady", Users: 30, Duration: 30 * time.Second},
		},
		"ENDURANCE": {
			{Type: "spike", Users: 1},
			{Type: "ramp-up", Users: 10, Duration: 30 * time.Second},
			{Type: "steady", Users: 10, Duration: time.Hour},
		},
	}
}
