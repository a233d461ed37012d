package reporter

import (
	"encoding/json"

	"github.com/ethanolivertroy/dep-check/internal/models"
)

// JSONReporter outputs verdicts in JSON format
type JSONReporter struct{}

// jsonOutput represents the JSON output structure
type jsonOutput struct {
	Summary  jsonSummary   `json:"summary"`
	Verdicts []jsonVerdict `json:"verdicts"`
}

type jsonSummary struct {
	Reported    int `json:"reported"`
	Unsatisfied int `json:"unsatisfied"`
}

type jsonVerdict struct {
	Ecosystem  string         `json:"ecosystem"`
	Name       string         `json:"name"`
	Required   string         `json:"required"`
	Kind       string         `json:"kind"`
	Ref        string         `json:"ref,omitempty"`
	Installed  *jsonInstalled `json:"installed,omitempty"`
	Satisfied  bool           `json:"satisfied"`
	Failure    string         `json:"failure,omitempty"`
	Reason     string         `json:"reason,omitempty"`
	SourceFile string         `json:"source_file,omitempty"`
	Line       int            `json:"line,omitempty"`
}

type jsonInstalled struct {
	Version string `json:"version"`
	Root    string `json:"root"`
}

// Report generates JSON output for the given verdicts
func (r *JSONReporter) Report(verdicts []models.Verdict) ([]byte, error) {
	output := jsonOutput{
		Summary: jsonSummary{
			Reported:    len(verdicts),
			Unsatisfied: countUnsatisfied(verdicts),
		},
		Verdicts: make([]jsonVerdict, 0, len(verdicts)),
	}

	for _, v := range verdicts {
		jv := jsonVerdict{
			Ecosystem:  string(v.Ecosystem),
			Name:       v.Name,
			Required:   v.Specifier.Raw,
			Kind:       string(v.Specifier.Kind),
			Ref:        v.Specifier.Ref,
			Satisfied:  v.Satisfied,
			Failure:    string(v.Failure),
			Reason:     v.Reason,
			SourceFile: v.SourceFile,
			Line:       v.Line,
		}
		if v.Installed.Found {
			jv.Installed = &jsonInstalled{Version: v.Installed.Version, Root: v.Installed.SourceRoot}
		}
		output.Verdicts = append(output.Verdicts, jv)
	}

	return json.MarshalIndent(output, "", "  ")
}
