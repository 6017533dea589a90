package analyzer

import (
	"regexp"
	"strings"

	"specanalyzer/internal/model"
)

// Axis is one dimension of compatibility comparison
type Axis string

const (
	AxisVoltage     Axis = "voltage"
	AxisCurrent     Axis = "current"
	AxisTemperature Axis = "temperature"
	AxisPower       Axis = "power"
)

// axisOrder fixes rule evaluation priority
var axisOrder = []Axis{AxisVoltage, AxisCurrent, AxisTemperature, AxisPower}

// Role labels one side of a compatibility comparison
type Role string

const (
	RoleSource Role = "source"
	RoleLoad   Role = "load"
)

// QueryIntent is what the user's query asks about: which component
// roles are involved and which comparison axes matter. Empty Axes
// means "everything resolvable from the data".
type QueryIntent struct {
	Roles []Role
	Axes  []Axis
}

// HasAxis reports whether the intent requests a specific axis. An
// intent with no explicit axes requests all of them.
func (q QueryIntent) HasAxis(a Axis) bool {
	if len(q.Axes) == 0 {
		return true
	}
	for _, x := range q.Axes {
		if x == a {
			return true
		}
	}
	return false
}

// sourceVocabulary and loadVocabulary are the role words recognized
// in queries and component headings
var (
	sourceVocabulary = []string{"psu", "power supply", "supply", "adapter", "charger", "transformer", "source", "converter"}
	loadVocabulary   = []string{"led", "strip", "light", "lamp", "load", "module", "fan", "device", "controller"}

	voltageWords = regexp.MustCompile(`(?i)\b(voltage|volts?)\b`)
	currentWords = regexp.MustCompile(`(?i)\b(current|amps?|amperes?|draw)\b`)
	tempWords    = regexp.MustCompile(`(?i)\b(temperature|thermal|heat|operating\s+range)\b`)
	// Bare "power" is almost always "power supply" or "safely power";
	// only wattage-style phrasing selects the power axis
	powerWords = regexp.MustCompile(`(?i)\b(watts?|wattage|power\s+(?:rating|consumption|output|draw))\b`)
)

// interpretQuery classifies a natural-language query against the role
// vocabulary and the component hints found during extraction. It never
// fails: an unmatchable query yields an intent with no roles, which
// the rule engine turns into "Not Explicitly Covered".
func interpretQuery(userQuery string, hints []string) QueryIntent {
	lower := strings.ToLower(userQuery)
	for _, h := range hints {
		lower += " " + strings.ToLower(h)
	}

	var intent QueryIntent
	if containsAny(lower, sourceVocabulary) {
		intent.Roles = append(intent.Roles, RoleSource)
	}
	if containsAny(lower, loadVocabulary) {
		intent.Roles = append(intent.Roles, RoleLoad)
	}

	if voltageWords.MatchString(userQuery) {
		intent.Axes = append(intent.Axes, AxisVoltage)
	}
	if currentWords.MatchString(userQuery) {
		intent.Axes = append(intent.Axes, AxisCurrent)
	}
	if tempWords.MatchString(userQuery) {
		intent.Axes = append(intent.Axes, AxisTemperature)
	}
	if powerWords.MatchString(userQuery) {
		intent.Axes = append(intent.Axes, AxisPower)
	}
	return intent
}

func containsAny(text string, vocabulary []string) bool {
	for _, w := range vocabulary {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// roleScore counts role vocabulary hits in a piece of text
func roleScore(text string, vocabulary []string) int {
	lower := strings.ToLower(text)
	score := 0
	for _, w := range vocabulary {
		if strings.Contains(lower, w) {
			score++
		}
	}
	return score
}

// sourceLabelWords and loadLabelWords classify individual parameter
// labels when component headings are absent: "Output Voltage" reads as
// the supplying side, "Required Input Voltage" and "Current Draw" as
// the consuming side.
var (
	sourceLabelWords = regexp.MustCompile(`(?i)\b(output|supply|max(?:imum)?)\b`)
	loadLabelWords   = regexp.MustCompile(`(?i)\b(input|required?|draw|consumption|requirement|usage)\b`)
)

// classifyGroupRole decides which side of the comparison a component
// group plays, from its heading and its parameter labels
func classifyGroupRole(g *model.ComponentGroup) (Role, bool) {
	src := roleScore(g.Hint, sourceVocabulary) * 2
	load := roleScore(g.Hint, loadVocabulary) * 2
	for _, p := range g.Parameters {
		if sourceLabelWords.MatchString(p.Label) {
			src++
		}
		if loadLabelWords.MatchString(p.Label) {
			load++
		}
	}
	switch {
	case src > load:
		return RoleSource, true
	case load > src:
		return RoleLoad, true
	}
	return "", false
}

// classifyParameterRole assigns an ungrouped parameter to a side
// using its label alone
func classifyParameterRole(p model.ExtractedParameter) (Role, bool) {
	src := sourceLabelWords.MatchString(p.Label)
	load := loadLabelWords.MatchString(p.Label)
	switch {
	case src && !load:
		return RoleSource, true
	case load && !src:
		return RoleLoad, true
	}
	return "", false
}
