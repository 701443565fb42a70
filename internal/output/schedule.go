// Package output renders load schedules and check results for the
// terminal and for machine consumption.
package output

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/stampede-dev/stampede/internal/loadshape"
)

// Format selects a schedule rendering.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format: %s", name)
	}
}

// schedulePhase is the serialized form of one phase.
type schedulePhase struct {
	Kind       string  `json:"kind" yaml:"kind"`
	StartUsers int     `json:"start_users" yaml:"start_users"`
	EndUsers   int     `json:"end_users" yaml:"end_users"`
	Duration   float64 `json:"duration_seconds" yaml:"duration_seconds"`
	SpawnRate  float64 `json:"spawn_rate" yaml:"spawn_rate"`
}

// schedule is the serialized form of a whole profile.
type schedule struct {
	Name     string          `json:"name,omitempty" yaml:"name,omitempty"`
	Total    float64         `json:"total_seconds" yaml:"total_seconds"`
	PeakUser int             `json:"peak_users" yaml:"peak_users"`
	Phases   []schedulePhase `json:"phases" yaml:"phases"`
}

// ScheduleFormatter renders load profiles.
type ScheduleFormatter struct {
	scheme  *ColorScheme
	noColor bool
}

// NewScheduleFormatter creates a formatter; noColor disables ANSI output.
func NewScheduleFormatter(noColor bool) *ScheduleFormatter {
	scheme := DefaultColorScheme()
	if noColor {
		scheme = NoColorScheme()
	}
	return &ScheduleFormatter{scheme: scheme, noColor: noColor}
}

// Format renders a profile in the requested format.
func (f *ScheduleFormatter) Format(name string, profile *loadshape.Profile, format Format) (string, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(toSchedule(name, profile), "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	case FormatYAML:
		data, err := yaml.Marshal(toSchedule(name, profile))
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return f.formatText(name, profile), nil
	}
}

func (f *ScheduleFormatter) formatText(name string, profile *loadshape.Profile) string {
	var buf strings.Builder

	heading := "Load schedule"
	if name != "" {
		heading += ": " + name
	}
	buf.WriteString(f.scheme.Heading.Sprint(heading))
	buf.WriteString(fmt.Sprintf("  (total %s, peak %d users)\n",
		profile.TotalDuration(), peakUsers(profile)))

	elapsed := time.Duration(0)
	for i := 0; i < profile.PhaseCount(); i++ {
		phase := profile.PhaseAt(i)
		kind := f.phaseColor(phase.Kind).Sprint(string(phase.Kind))

		var span string
		switch phase.Kind {
		case loadshape.KindSpike, loadshape.KindSteady:
			span = fmt.Sprintf("%d users", phase.EndUsers)
		default:
			span = fmt.Sprintf("%d -> %d users", phase.StartUsers, phase.EndUsers)
		}

		buf.WriteString(fmt.Sprintf("  %2d. %-24s %-20s %8s  [%s - %s]\n",
			i+1, kind, span, phase.Duration,
			elapsed, elapsed+phase.Duration))
		elapsed += phase.Duration
	}

	return buf.String()
}

func (f *ScheduleFormatter) phaseColor(kind loadshape.PhaseKind) colorPrinter {
	switch kind {
	case loadshape.KindSpike:
		return f.scheme.PhaseSpike
	case loadshape.KindRampUp:
		return f.scheme.PhaseRamp
	case loadshape.KindSteady:
		return f.scheme.PhaseSteady
	default:
		return f.scheme.PhaseStress
	}
}

type colorPrinter interface {
	Sprint(a ...interface{}) string
}

func toSchedule(name string, profile *loadshape.Profile) schedule {
	phases := profile.Phases()
	out := schedule{
		Name:     name,
		Total:    profile.TotalDuration().Seconds(),
		PeakUser: peakUsers(profile),
		Phases:   make([]schedulePhase, 0, len(phases)),
	}
	for i, phase := range phases {
		rate, _ := profile.SpawnRateAt(phaseOffset(profile, i))
		out.Phases = append(out.Phases, schedulePhase{
			Kind:       string(phase.Kind),
			StartUsers: phase.StartUsers,
			EndUsers:   phase.EndUsers,
			Duration:   phase.Duration.Seconds(),
			SpawnRate:  rate,
		})
	}
	return out
}

func phaseOffset(profile *loadshape.Profile, index int) time.Duration {
	offset := time.Duration(0)
	for i := 0; i < index; i++ {
		offset += profile.PhaseAt(i).Duration
	}
	return offset
}

func peakUsers(profile *loadshape.Profile) int {
	peak := 0
	for _, phase := range profile.Phases() {
		if phase.StartUsers > peak {
			peak = phase.StartUsers
		}
		if phase.EndUsers > peak {
			peak = phase.EndUsers
		}
	}
	return peak
}
