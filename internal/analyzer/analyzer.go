// Package analyzer is the parameter extraction and
// compatibility-decision engine. It locates typed technical values in
// free-text documents, normalizes them into base units and applies a
// fixed set of comparison rules to produce a verdict with a
// confidence level and supporting evidence.
//
// The package holds no mutable state: the pattern registry is frozen
// at init and every Analyze call is an independent, pure computation,
// so concurrent calls need no synchronization.
package analyzer

import (
	"specanalyzer/internal/model"
)

// Settings are the tunables the core honors. They are supplied by the
// configuration layer and frozen for the lifetime of the Analyzer.
type Settings struct {
	// VoltageTolerance widens single-point voltage values by this many
	// volts on both sides before comparison
	VoltageTolerance float64

	// ConfidenceThreshold excludes parameters below this confidence
	// from decision-making (they still appear in the extracted data)
	ConfidenceThreshold float64

	// CurrentSafetyMargin is the headroom fraction reported as healthy
	// in justifications
	CurrentSafetyMargin float64
}

// DefaultSettings mirrors the documented defaults
func DefaultSettings() Settings {
	return Settings{
		VoltageTolerance:    0.5,
		ConfidenceThreshold: 0.6,
		CurrentSafetyMargin: 0.1,
	}
}

// Analyzer is the stateless analysis engine
type Analyzer struct {
	settings Settings
}

// New creates an analyzer with the given settings
func New(settings Settings) *Analyzer {
	return &Analyzer{settings: settings}
}

// Analyze runs the full pipeline on one document and query:
// extraction over the whole document, query interpretation, then rule
// evaluation. It assumes non-empty inputs; the boundary layer rejects
// empty or oversized documents before calling the core. It always
// returns a well-formed result, never an error.
func (a *Analyzer) Analyze(documentText, userQuery string) *model.AnalysisResult {
	params := a.Extract(documentText)

	// Unintelligible input: nothing extracted means no component role
	// can ever be resolved either
	if len(params) == 0 {
		return &model.AnalysisResult{
			Decision:               model.DecisionError,
			ConfidenceScore:        model.ConfidenceLow,
			Justification:          "No technical parameters could be extracted from the document and no component roles could be resolved; the input could not be interpreted.",
			ExtractedTechnicalData: map[string]string{},
			ReferencedSections:     []model.ReferencedSection{},
		}
	}

	groups, ungrouped := groupByHint(params)
	hints := make([]string, 0, len(groups))
	for _, g := range groups {
		hints = append(hints, g.Hint)
	}

	intent := interpretQuery(userQuery, hints)
	return a.decide(groups, ungrouped, params, intent)
}
