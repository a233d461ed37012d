package reporter

import "github.com/ethanolivertroy/dep-check/internal/models"

// Reporter is the interface for output formatters
type Reporter interface {
	// Report generates output for the given verdicts. Satisfied verdicts are
	// rendered too when present.
	Report(verdicts []models.Verdict) ([]byte, error)
}

// Get returns a reporter for the specified format
func Get(format string) Reporter {
	switch format {
	case "json":
		return &JSONReporter{}
	case "sarif":
		return &SARIFReporter{}
	default:
		return &TerminalReporter{}
	}
}

// countUnsatisfied returns the number of unsatisfied verdicts
func countUnsatisfied(verdicts []models.Verdict) int {
	n := 0
	for _, v := range verdicts {
		if !v.Satisfied {
			n++
		}
	}
	return n
}
