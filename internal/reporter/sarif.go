package reporter

import (
	"encoding/json"
	"fmt"

	"github.com/ethanolivertroy/dep-check/internal/models"
)

// SARIFReporter outputs unsatisfied dependencies in SARIF format for GitHub Code Scanning
type SARIFReporter struct{}

// SARIF structures
type sarifReport struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	ShortDescription sarifText       `json:"shortDescription"`
	FullDescription  sarifText       `json:"fullDescription"`
	Help             sarifText       `json:"help"`
	DefaultConfig    sarifRuleConfig `json:"defaultConfiguration"`
	Properties       sarifProperties `json:"properties"`
}

type sarifText struct {
	Text string `json:"text"`
}

type sarifRuleConfig struct {
	Level string `json:"level"`
}

type sarifProperties struct {
	Tags []string `json:"tags"`
}

type sarifResult struct {
	RuleID              string            `json:"ruleId"`
	RuleIndex           int               `json:"ruleIndex"`
	Level               string            `json:"level"`
	Message             sarifText         `json:"message"`
	Locations           []sarifLocation   `json:"locations"`
	PartialFingerprints map[string]string `json:"partialFingerprints"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           *sarifRegion  `json:"region,omitempty"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
}

// Rules are fixed: one per failure kind
var sarifRules = []sarifRule{
	{
		ID:               "DEP001",
		Name:             "DependencyNotInstalled",
		ShortDescription: sarifText{Text: "Declared dependency is not installed"},
		FullDescription:  sarifText{Text: "The manifest declares a dependency that none of the searched install directories contains."},
		Help:             sarifText{Text: "Install the project's dependencies before running the tool."},
		DefaultConfig:    sarifRuleConfig{Level: "error"},
		Properties:       sarifProperties{Tags: []string{"dependencies", "not-installed"}},
	},
	{
		ID:               "DEP002",
		Name:             "DependencyVersionMismatch",
		ShortDescription: sarifText{Text: "Installed dependency does not satisfy the declared version"},
		FullDescription:  sarifText{Text: "The installed package version falls outside the declared range, or differs from the tag pinned by a version-control specifier."},
		Help:             sarifText{Text: "Reinstall the dependency so the installed version matches the manifest."},
		DefaultConfig:    sarifRuleConfig{Level: "error"},
		Properties:       sarifProperties{Tags: []string{"dependencies", "version-mismatch"}},
	},
}

// Report generates SARIF output for the unsatisfied verdicts
func (r *SARIFReporter) Report(verdicts []models.Verdict) ([]byte, error) {
	report := sarifReport{
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Version: "2.1.0",
		Runs: []sarifRun{{
			Tool: sarifTool{
				Driver: sarifDriver{
					Name:           "dep-check",
					Version:        "1.0.0",
					InformationURI: "https://github.com/ethanolivertroy/dep-check",
					Rules:          sarifRules,
				},
			},
			Results: r.buildResults(verdicts),
		}},
	}

	return json.MarshalIndent(report, "", "  ")
}

func (r *SARIFReporter) buildResults(verdicts []models.Verdict) []sarifResult {
	results := []sarifResult{}

	for _, v := range verdicts {
		if v.Satisfied {
			continue
		}

		ruleIndex := 1
		if v.Failure == models.FailureNotInstalled {
			ruleIndex = 0
		}

		msg := fmt.Sprintf("%s dependency %s@%s is unsatisfied: %s", v.Ecosystem, v.Name, v.Specifier.Raw, v.Reason)

		location := sarifLocation{
			PhysicalLocation: sarifPhysicalLocation{
				ArtifactLocation: sarifArtifact{
					URI: v.SourceFile,
				},
			},
		}

		if v.Line > 0 {
			location.PhysicalLocation.Region = &sarifRegion{
				StartLine: v.Line,
			}
		}

		results = append(results, sarifResult{
			RuleID:    sarifRules[ruleIndex].ID,
			RuleIndex: ruleIndex,
			Level:     "error",
			Message:   sarifText{Text: msg},
			Locations: []sarifLocation{location},
			PartialFingerprints: map[string]string{
				"primaryLocationLineHash": fmt.Sprintf("%s:%s:%s", v.Ecosystem, v.Name, v.Specifier.Raw),
			},
		})
	}

	return results
}
