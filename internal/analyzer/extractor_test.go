package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"specanalyzer/internal/model"
)

func newTestAnalyzer() *Analyzer {
	return New(DefaultSettings())
}

func findByLabel(params []model.ExtractedParameter, label string) *model.ExtractedParameter {
	for i := range params {
		if params[i].Label == label {
			return &params[i]
		}
	}
	return nil
}

func TestExtractLabeledParameter(t *testing.T) {
	params := newTestAnalyzer().Extract("Output Voltage: 12V DC")

	p := findByLabel(params, "Output Voltage")
	require.NotNil(t, p)
	assert.Equal(t, model.ParamVoltage, p.Type)
	assert.Equal(t, "12V", p.RawText)
	assert.Equal(t, model.Scalar(12), p.Value)
	assert.Equal(t, model.Scalar(12), p.Normalized)
	assert.Equal(t, "V", p.Unit)
	assert.True(t, p.Labeled())
	assert.InDelta(t, 1.0, p.Confidence, 0.001)
}

func TestExtractNormalizesToBaseUnit(t *testing.T) {
	params := newTestAnalyzer().Extract("Current Draw: 500mA")

	p := findByLabel(params, "Current Draw")
	require.NotNil(t, p)
	assert.Equal(t, model.ParamCurrent, p.Type)
	assert.Equal(t, model.Scalar(500), p.Value)
	assert.Equal(t, model.Scalar(0.5), p.Normalized)
	assert.Equal(t, "mA", p.Unit)
}

func TestExtractFallbackScoresBelowLabeled(t *testing.T) {
	a := newTestAnalyzer()

	labeled := a.Extract("Output Voltage: 12V DC")
	require.Len(t, labeled, 1)

	unlabeled := a.Extract("The board runs at 12V during normal operation.")
	require.Len(t, unlabeled, 1)
	assert.False(t, unlabeled[0].Labeled())
	assert.InDelta(t, 0.70, unlabeled[0].Confidence, 0.001)

	assert.Greater(t, labeled[0].Confidence, unlabeled[0].Confidence)
}

func TestExtractDeduplicatesOverlappingMatches(t *testing.T) {
	// "5 Amps" matches both the labeled pattern and the bare-value
	// fallback; only the labeled match survives
	params := newTestAnalyzer().Extract("Max Output Current: 5 Amps")

	require.Len(t, params, 1)
	assert.Equal(t, "Max Output Current", params[0].Label)
	assert.Equal(t, model.ParamCurrent, params[0].Type)
}

func TestExtractDisambiguatesByUnitFamily(t *testing.T) {
	a := newTestAnalyzer()

	// "Power Consumption: 48W" is a power parameter
	params := a.Extract("Power Consumption: 48W")
	require.Len(t, params, 1)
	assert.Equal(t, model.ParamPower, params[0].Type)
	assert.Equal(t, "Power Consumption", params[0].Label)

	// "Power Consumption: 2 Amps" reads as a current parameter despite
	// the wording, because the value carries a current unit
	params = a.Extract("Power Consumption: 2 Amps")
	require.Len(t, params, 1)
	assert.Equal(t, model.ParamCurrent, params[0].Type)
}

func TestExtractRangeAndToleranceValues(t *testing.T) {
	a := newTestAnalyzer()

	params := a.Extract("Input Voltage Range: 10V to 14V")
	p := findByLabel(params, "Input Voltage Range")
	require.NotNil(t, p)
	assert.Equal(t, model.ValueRange{Min: 10, Max: 14}, p.Normalized)

	params = a.Extract("Output Voltage: 12V ± 0.5V")
	p = findByLabel(params, "Output Voltage")
	require.NotNil(t, p)
	assert.Equal(t, model.ValueRange{Min: 11.5, Max: 12.5}, p.Normalized)
}

func TestExtractAcInputAsRange(t *testing.T) {
	// "100-240V" is a range with a bare lower bound, not a scalar
	// "-240V" with the separator read as a minus sign
	params := newTestAnalyzer().Extract("Input: 100-240V AC")

	require.Len(t, params, 1)
	p := params[0]
	assert.Equal(t, model.ParamVoltage, p.Type)
	assert.Equal(t, "100-240V", p.RawText)
	assert.Equal(t, model.ValueRange{Min: 100, Max: 240}, p.Normalized)
	assert.Equal(t, "Input", p.Label)
}

func TestExtractSkipsModelNumberFragments(t *testing.T) {
	a := newTestAnalyzer()

	assert.Empty(t, a.Extract("Power Supply Unit Model: PSU-12V-5A"))
	assert.Empty(t, a.Extract("LED Strip Model: RGB-5M"))
	assert.Empty(t, a.Extract("Part number 2024-5A-77"))
}

func TestExtractCertifications(t *testing.T) {
	params := newTestAnalyzer().Extract("Certifications: CE, RoHS, UL")

	p := findByLabel(params, "Certifications")
	require.NotNil(t, p)
	assert.Equal(t, model.ParamCertification, p.Type)
	assert.Equal(t, "CE, RoHS, UL", p.RawText)
	assert.Empty(t, p.Unit)
}

func TestExtractUnparseableTextYieldsNothing(t *testing.T) {
	assert.Empty(t, newTestAnalyzer().Extract("asdf qwer zxcv"))
	assert.Empty(t, newTestAnalyzer().Extract("Voltage: unknown"))
}

func TestExtractAssignsComponentHints(t *testing.T) {
	doc := `Power Supply Unit Model: PSU-12V-5A
Output Voltage: 12V DC
Max Output Current: 5 Amps

LED Strip Model: RGB-5M
Required Input Voltage: 12V DC
Current Draw: 4 Amps`

	params := newTestAnalyzer().Extract(doc)

	tests := []struct {
		label string
		hint  string
	}{
		{"Output Voltage", "Power Supply Unit Model: PSU-12V-5A"},
		{"Max Output Current", "Power Supply Unit Model: PSU-12V-5A"},
		{"Required Input Voltage", "LED Strip Model: RGB-5M"},
		{"Current Draw", "LED Strip Model: RGB-5M"},
	}
	for _, tc := range tests {
		p := findByLabel(params, tc.label)
		require.NotNil(t, p, "label %q", tc.label)
		assert.Equal(t, tc.hint, p.ComponentHint, "label %q", tc.label)
	}
}

func TestHeadingName(t *testing.T) {
	tests := []struct {
		line string
		name string
		ok   bool
	}{
		{`"SuperBright LED Strip"`, "SuperBright LED Strip", true},
		{"LED Strip Model: RGB-5M", "LED Strip Model: RGB-5M", true},
		{"Datasheet for PSU-100", "Datasheet for PSU-100", true},
		{"Electrical Characteristics:", "Electrical Characteristics", true},
		{"Output Voltage:", "", false}, // names a parameter, not a component
		{"Output Voltage: 12V DC", "", false},
		{"", "", false},
	}
	for _, tc := range tests {
		name, ok := headingName(tc.line)
		assert.Equal(t, tc.ok, ok, "line %q", tc.line)
		if tc.ok {
			assert.Equal(t, tc.name, name, "line %q", tc.line)
		}
	}
}

func TestExtractParametersWithoutHeadingStayUngrouped(t *testing.T) {
	params := newTestAnalyzer().Extract("Output Voltage: 12V DC\nCurrent Draw: 2A")

	groups, ungrouped := groupByHint(params)
	assert.Empty(t, groups)
	assert.Len(t, ungrouped, 2)
}

func TestGroupByHint(t *testing.T) {
	doc := `Power Supply Unit Model: PSU-12V-5A
Output Voltage: 12V DC

LED Strip Model: RGB-5M
Required Input Voltage: 12V DC`

	params := newTestAnalyzer().Extract(doc)
	groups, _ := groupByHint(params)

	require.Len(t, groups, 2)
	assert.Equal(t, "Power Supply Unit Model: PSU-12V-5A", groups[0].Hint)
	assert.Equal(t, "LED Strip Model: RGB-5M", groups[1].Hint)
	assert.True(t, groups[0].Has(model.ParamVoltage))
	assert.True(t, groups[1].Has(model.ParamVoltage))
}

func TestExtractIsDeterministic(t *testing.T) {
	doc := `Power Supply Unit Model: PSU-12V-5A
Output Voltage: 12V DC
Max Output Current: 5 Amps`

	a := newTestAnalyzer()
	first := a.Extract(doc)
	second := a.Extract(doc)
	assert.Equal(t, first, second)
}
