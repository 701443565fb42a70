package validate

// Result records the outcome of a single expectation.
type Result struct {
	Name   string
	Passed bool
	Err    error
}

// Summary aggregates validation results for reporting.
type Summary struct {
	Total  int
	Passed int
	Failed int
}

// Summarize counts passed and failed results.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Passed {
			s.Passed++
		} else {
			s.Failed++
		}
	}
	return s
}
