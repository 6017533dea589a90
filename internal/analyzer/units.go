package analyzer

import (
	"errors"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"specanalyzer/internal/model"
)

// errNoMatch is returned when a text window holds no numeric literal
// with a recognized unit. Callers recover by trying the next pattern.
var errNoMatch = errors.New("no numeric value with a recognized unit")

// baseUnits maps each parameter type to the canonical unit all
// normalized values are expressed in
var baseUnits = map[model.ParameterType]string{
	model.ParamVoltage:     "V",
	model.ParamCurrent:     "A",
	model.ParamPower:       "W",
	model.ParamTemperature: "°C",
	model.ParamFrequency:   "Hz",
	model.ParamDimension:   "mm",
}

// unitFamilies maps lowercase unit spellings to the factor that
// converts a value into the type's base unit
var unitFamilies = map[model.ParameterType]map[string]float64{
	model.ParamVoltage: {
		"v": 1, "volt": 1, "volts": 1,
		"mv": 0.001, "millivolt": 0.001, "millivolts": 0.001,
		"kv": 1000, "kilovolt": 1000, "kilovolts": 1000,
	},
	model.ParamCurrent: {
		"a": 1, "amp": 1, "amps": 1, "ampere": 1, "amperes": 1,
		"ma": 0.001, "milliamp": 0.001, "milliamps": 0.001, "milliampere": 0.001, "milliamperes": 0.001,
	},
	model.ParamPower: {
		"w": 1, "watt": 1, "watts": 1,
		"mw": 0.001, "milliwatt": 0.001, "milliwatts": 0.001,
		"kw": 1000, "kilowatt": 1000, "kilowatts": 1000,
	},
	model.ParamTemperature: {
		"°c": 1, "c": 1, "celsius": 1, "degc": 1,
	},
	model.ParamFrequency: {
		"hz": 1, "hertz": 1,
		"khz": 1000,
		"mhz": 1000000,
		"ghz": 1000000000,
	},
	model.ParamDimension: {
		"mm": 1, "millimeter": 1, "millimeters": 1,
		"cm": 10, "centimeter": 10, "centimeters": 10,
		"m": 1000, "meter": 1000, "meters": 1000,
		"in": 25.4, "inch": 25.4, "inches": 25.4,
	},
}

// BaseUnit returns the canonical unit for a parameter type, or an
// empty string for non-numeric types like certifications
func BaseUnit(t model.ParameterType) string {
	return baseUnits[t]
}

// unitFactor resolves a unit token (any supported spelling, any case)
// to its conversion factor into the base unit
func unitFactor(t model.ParameterType, token string) (float64, bool) {
	family, ok := unitFamilies[t]
	if !ok {
		return 0, false
	}
	f, ok := family[strings.ToLower(strings.TrimSpace(token))]
	return f, ok
}

// valueRes compiled per type at init: tolerance, range, then scalar,
// tried in that order so "10-14V" parses as a range rather than two
// scalars
type valueRes struct {
	tolerance *regexp.Regexp
	valRange  *regexp.Regexp
	scalar    *regexp.Regexp
}

var valueMatchers = map[model.ParameterType]valueRes{}

func init() {
	const num = `([-+]?[0-9]+(?:\.[0-9]+)?)`
	for t, family := range unitFamilies {
		unit := "(" + unitAlternation(family) + ")"
		valueMatchers[t] = valueRes{
			tolerance: regexp.MustCompile(`(?i)` + num + `\s*` + unit + `?\s*\(?\s*(?:±|\+/-|\+-)\s*` + num + `\s*` + unit + `?\s*\)?`),
			valRange:  regexp.MustCompile(`(?i)` + num + `\s*` + unit + `?\s*(?:to|–|-)\s*` + num + `\s*` + unit + `\b`),
			scalar:    regexp.MustCompile(`(?i)` + num + `\s*` + unit + `\b`),
		}
	}
}

// unitAlternation builds a regex alternation over a unit family,
// longest spelling first so "volts" wins over "v"
func unitAlternation(family map[string]float64) string {
	spellings := make([]string, 0, len(family))
	for s := range family {
		spellings = append(spellings, s)
	}
	sort.Slice(spellings, func(i, j int) bool {
		if len(spellings[i]) != len(spellings[j]) {
			return len(spellings[i]) > len(spellings[j])
		}
		return spellings[i] < spellings[j]
	})
	escaped := make([]string, len(spellings))
	for i, s := range spellings {
		escaped[i] = regexp.QuoteMeta(s)
	}
	return strings.Join(escaped, "|")
}

// parsedValue is the result of locating one numeric literal with its
// unit inside a text window
type parsedValue struct {
	value      model.ValueRange
	unit       string
	confidence float64 // 0.0 to 1.0, decreasing with number-to-unit distance
	start, end int     // offsets of the matched text within the window
}

// findNumericWithUnit locates a numeric literal with an adjoining
// recognized unit in text. It handles scalars ("12V"), ranges
// ("10-14V", "10V to 14V") and tolerances ("12V ± 0.5V",
// "12V (±0.5V)"). A literal without a recognizable unit fails with
// errNoMatch rather than guessing.
func findNumericWithUnit(text string, t model.ParameterType) (parsedValue, error) {
	m, ok := valueMatchers[t]
	if !ok {
		return parsedValue{}, errNoMatch
	}

	if loc := m.tolerance.FindStringSubmatchIndex(text); loc != nil {
		nominal, err1 := parseFloatAt(text, loc, 1)
		tol, err2 := parseFloatAt(text, loc, 3)
		unit := firstGroup(text, loc, 2, 4)
		if err1 == nil && err2 == nil && unit != "" {
			return parsedValue{
				value:      model.ValueRange{Min: nominal - tol, Max: nominal + tol},
				unit:       unit,
				confidence: unitProximity(text, loc, 1, 2, 4),
				start:      loc[0],
				end:        loc[1],
			}, nil
		}
	}

	if loc := m.valRange.FindStringSubmatchIndex(text); loc != nil {
		lo, err1 := parseFloatAt(text, loc, 1)
		hi, err2 := parseFloatAt(text, loc, 3)
		unit := firstGroup(text, loc, 2, 4)
		if err1 == nil && err2 == nil && unit != "" && lo <= hi {
			return parsedValue{
				value:      model.ValueRange{Min: lo, Max: hi},
				unit:       unit,
				confidence: unitProximity(text, loc, 3, 4, 2),
				start:      loc[0],
				end:        loc[1],
			}, nil
		}
	}

	if loc := m.scalar.FindStringSubmatchIndex(text); loc != nil {
		v, err := parseFloatAt(text, loc, 1)
		unit := firstGroup(text, loc, 2)
		if err == nil && unit != "" {
			return parsedValue{
				value:      model.Scalar(v),
				unit:       unit,
				confidence: unitProximity(text, loc, 1, 2),
				start:      loc[0],
				end:        loc[1],
			}, nil
		}
	}

	return parsedValue{}, errNoMatch
}

func parseFloatAt(text string, loc []int, group int) (float64, error) {
	if loc[2*group] < 0 {
		return 0, errNoMatch
	}
	return strconv.ParseFloat(text[loc[2*group]:loc[2*group+1]], 64)
}

// firstGroup returns the first non-empty capture among groups
func firstGroup(text string, loc []int, groups ...int) string {
	for _, g := range groups {
		if loc[2*g] >= 0 && loc[2*g] < loc[2*g+1] {
			return text[loc[2*g]:loc[2*g+1]]
		}
	}
	return ""
}

// unitProximity scores how tightly the unit token adjoins the numeric
// literal: 1.0 when adjacent, dropping 0.1 per separating character.
// When the unit group next to the literal is empty the farther group
// is used, which widens the gap and lowers the score.
func unitProximity(text string, loc []int, numGroup int, unitGroups ...int) float64 {
	numEnd := loc[2*numGroup+1]
	for _, g := range unitGroups {
		if loc[2*g] < 0 {
			continue
		}
		gap := loc[2*g] - numEnd
		if gap < 0 {
			gap = 0
		}
		if gap > 5 {
			gap = 5
		}
		return 1.0 - 0.1*float64(gap)
	}
	return 0.5
}
