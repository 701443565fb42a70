package output

import (
	"github.com/fatih/color"
)

// ColorScheme defines the colors used for different elements in the output
type ColorScheme struct {
	PhaseSpike  *color.Color
	PhaseRamp   *color.Color
	PhaseSteady *color.Color
	PhaseStress *color.Color
	Heading     *color.Color
	Value       *color.Color
	Success     *color.Color
	Error       *color.Color
	Highlight   *color.Color
}

// DefaultColorScheme returns the default color scheme
func DefaultColorScheme() *ColorScheme {
	return &ColorScheme{
		PhaseSpike:  color.New(color.FgMagenta, color.Bold),
		PhaseRamp:   color.New(color.FgCyan),
		PhaseSteady: color.New(color.FgBlue),
		PhaseStress: color.New(color.FgYellow),
		Heading:     color.New(color.FgWhite, color.Bold),
		Value:       color.New(color.FgWhite),
		Success:     color.New(color.FgGreen),
		Error:       color.New(color.FgRed),
		Highlight:   color.New(color.FgMagenta, color.Bold),
	}
}

// NoColorScheme returns a color scheme with all colors disabled
func NoColorScheme() *ColorScheme {
	scheme := DefaultColorScheme()

	scheme.PhaseSpike.DisableColor()
	scheme.PhaseRamp.DisableColor()
	scheme.PhaseSteady.DisableColor()
	scheme.PhaseStress.DisableColor()
	scheme.Heading.DisableColor()
	scheme.Value.DisableColor()
	scheme.Success.DisableColor()
	scheme.Error.DisableColor()
	scheme.Highlight.DisableColor()

	return scheme
}

// SuccessIcon returns a checkmark symbol with appropriate color
func SuccessIcon(noColor bool) string {
	if noColor {
		return "✓"
	}
	return color.New(color.FgGreen).Sprint("✓")
}

// ErrorIcon returns an X symbol with appropriate color
func ErrorIcon(noColor bool) string {
	if noColor {
		return "✗"
	}
	return color.New(color.FgRed).Sprint("✗")
}

// WarningIcon returns a warning symbol with appropriate color
func WarningIcon(noColor bool) string {
	if noColor {
		return "⚠"
	}
	return color.New(color.FgYellow).Sprint("⚠")
}
