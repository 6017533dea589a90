package analyzer

import (
	"regexp"

	"specanalyzer/internal/model"
)

// patternDef pairs one compiled expression with the weight its
// specificity contributes to match confidence. Labeled patterns carry
// two capture groups (label, value window); fallback patterns carry a
// single group holding the bare value occurrence.
type patternDef struct {
	re          *regexp.Regexp
	specificity float64
	labeled     bool
}

func labeled(spec float64, expr string) patternDef {
	return patternDef{re: regexp.MustCompile(expr), specificity: spec, labeled: true}
}

// fallbackGuard anchors label-free patterns: the value must sit at
// the start of the text or after a non-word, non-hyphen rune, so a
// model number like "PSU-12V-5A" or the tail of a range like
// "100-240V" is never carved into a bare scalar.
const fallbackGuard = `(?:^|[^-\w])`

func fallback(spec float64, expr string) patternDef {
	return patternDef{re: regexp.MustCompile(expr), specificity: spec}
}

// patternTable is the process-wide pattern registry: for each
// parameter type an ordered list of definitions, most specific first.
// Frozen after package init; never mutated per request.
var patternTable = map[model.ParameterType][]patternDef{
	model.ParamVoltage: {
		labeled(0.35, `(?i)((?:output|input|supply|operating|required(?:\s+input)?|rated|forward|nominal)\s+voltage(?:\s+range)?)\s*:\s*([^\r\n]+)`),
		labeled(0.30, `(?i)(voltage\s+(?:output|input|supply|rating|range|requirement))\s*:\s*([^\r\n]+)`),
		labeled(0.25, `(?i)\b(v(?:out|in|supply|dd|cc))\s*[:=]\s*([^\r\n]+)`),
		labeled(0.25, `(?i)\b(dc\s+output)\s*:\s*([^\r\n]+)`),
		fallback(0.05, `(?i)`+fallbackGuard+`([0-9]+(?:\.[0-9]+)?\s*(?:mv|kv|v|volts?)?\s*(?:to|–|-)\s*[0-9]+(?:\.[0-9]+)?\s*(?:mv|kv|v|volts?)\b(?:\s*(?:dc|ac))?|[-+]?[0-9]+(?:\.[0-9]+)?\s*(?:mv|kv|v|volts?)\b(?:\s*(?:dc|ac))?)`),
	},
	model.ParamCurrent: {
		labeled(0.35, `(?i)((?:max(?:imum)?\s+)?(?:output|input)\s+current|max(?:imum)?\s+current)\s*:\s*([^\r\n]+)`),
		labeled(0.33, `(?i)(current\s+(?:draw|rating|consumption|requirement|usage|output|input))\s*:\s*([^\r\n]+)`),
		labeled(0.25, `(?i)\b(i(?:out|in|max))\s*[:=]\s*([^\r\n]+)`),
		labeled(0.25, `(?i)(power\s+consumption)\s*:\s*([^\r\n]+)`),
		fallback(0.05, `(?i)`+fallbackGuard+`([0-9]+(?:\.[0-9]+)?\s*(?:amps?|amperes?|ma|a)?\s*(?:to|–|-)\s*[0-9]+(?:\.[0-9]+)?\s*(?:amps?|amperes?|ma|a)\b|[-+]?[0-9]+(?:\.[0-9]+)?\s*(?:amps?|amperes?|ma|a)\b)`),
	},
	model.ParamPower: {
		labeled(0.35, `(?i)((?:max(?:imum)?|output|input|rated)\s+power)\s*:\s*([^\r\n]+)`),
		labeled(0.30, `(?i)(power\s+(?:rating|consumption|output|input))\s*:\s*([^\r\n]+)`),
		labeled(0.25, `(?i)\b(power)\s*:\s*([^\r\n]+)`),
		fallback(0.05, `(?i)`+fallbackGuard+`([0-9]+(?:\.[0-9]+)?\s*(?:kw|mw|w|watts?)?\s*(?:to|–|-)\s*[0-9]+(?:\.[0-9]+)?\s*(?:kw|mw|w|watts?)\b|[0-9]+(?:\.[0-9]+)?\s*(?:kw|mw|w|watts?)\b)`),
	},
	model.ParamTemperature: {
		labeled(0.35, `(?i)(operating\s+temp(?:erature)?(?:\s+range)?)\s*:\s*([^\r\n]+)`),
		labeled(0.30, `(?i)(temp(?:erature)?\.?\s*range)\s*:\s*([^\r\n]+)`),
		labeled(0.28, `(?i)(storage\s+temp(?:erature)?)\s*:\s*([^\r\n]+)`),
		fallback(0.05, `(?i)`+fallbackGuard+`([-+]?[0-9]+\s*°?c?\s*to\s*[-+]?[0-9]+\s*°c\b)`),
	},
	model.ParamFrequency: {
		labeled(0.35, `(?i)((?:switching\s+|operating\s+|clock\s+)?frequency)\s*:\s*([^\r\n]+)`),
		fallback(0.05, `(?i)`+fallbackGuard+`([0-9]+(?:\.[0-9]+)?\s*(?:ghz|mhz|khz|hz)?\s*(?:to|–|-)\s*[0-9]+(?:\.[0-9]+)?\s*(?:ghz|mhz|khz|hz)\b|[0-9]+(?:\.[0-9]+)?\s*(?:ghz|mhz|khz|hz)\b)`),
	},
	model.ParamDimension: {
		labeled(0.35, `(?i)(dimensions?|size)\s*:\s*([^\r\n]+)`),
		labeled(0.30, `(?i)\b(length|width|height|depth|thickness)\s*:\s*([^\r\n]+)`),
		fallback(0.05, `(?i)`+fallbackGuard+`([0-9]+(?:\.[0-9]+)?\s*(?:mm|cm|in(?:ch(?:es)?)?)?\s*(?:to|–|-)\s*[0-9]+(?:\.[0-9]+)?\s*(?:mm|cm|in(?:ch(?:es)?)?)\b|[0-9]+(?:\.[0-9]+)?\s*(?:mm|cm|in(?:ch(?:es)?)?)\b)`),
	},
	model.ParamCertification: {
		labeled(0.35, `(?i)(certifications?|compliance|safety\s+(?:standards?|approvals?)|approvals?)\s*:\s*([^\r\n]+)`),
	},
}

// patternsFor returns the ordered pattern definitions for a type,
// most specific first
func patternsFor(t model.ParameterType) []patternDef {
	return patternTable[t]
}
