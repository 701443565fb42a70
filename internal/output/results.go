package output

import (
	"fmt"
	"strings"

	"github.com/stampede-dev/stampede/internal/validate"
)

// FormatResults renders validation results, one line per check, with a
// trailing pass/fail summary.
func FormatResults(results []validate.Result, noColor bool) string {
	var buf strings.Builder

	for _, result := range results {
		if result.Passed {
			buf.WriteString(fmt.Sprintf("  %s %s\n", SuccessIcon(noColor), result.Name))
		} else {
			buf.WriteString(fmt.Sprintf("  %s %s: %v\n", ErrorIcon(noColor), result.Name, result.Err))
		}
	}

	summary := validate.Summarize(results)
	scheme := DefaultColorScheme()
	if noColor {
		scheme = NoColorScheme()
	}
	line := fmt.Sprintf("%d/%d checks passed", summary.Passed, summary.Total)
	if summary.Failed > 0 {
		buf.WriteString(scheme.Error.Sprint(line) + "\n")
	} else {
		buf.WriteString(scheme.Success.Sprint(line) + "\n")
	}

	return buf.String()
}
