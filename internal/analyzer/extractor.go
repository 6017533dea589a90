package analyzer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"specanalyzer/internal/model"
)

const (
	// baseConfidence is the floor every accepted match starts from;
	// pattern specificity and unit proximity add on top of it
	baseConfidence = 0.45

	// proximityWeight scales the parser's number-to-unit proximity
	// score into the final confidence
	proximityWeight = 0.2

	// headingScanLines bounds the backward scan for a component
	// heading above a match
	headingScanLines = 8
)

// Extract locates every technical parameter in the document, in
// source order. Unparseable sections never fail extraction; they
// simply contribute no parameters.
func (a *Analyzer) Extract(documentText string) []model.ExtractedParameter {
	var params []model.ExtractedParameter
	for _, t := range model.AllParameterTypes {
		for _, pd := range patternsFor(t) {
			for _, loc := range pd.re.FindAllStringSubmatchIndex(documentText, -1) {
				p, ok := buildParameter(documentText, t, pd, loc)
				if ok {
					params = append(params, p)
				}
			}
		}
	}

	params = dedupe(params)
	assignLineLabels(documentText, params)
	assignComponentHints(documentText, params)

	sort.SliceStable(params, func(i, j int) bool {
		return params[i].Span.Start < params[j].Span.Start
	})
	return params
}

// buildParameter turns one pattern match into a typed, normalized
// parameter. Matches whose value window holds no recognizable
// numeric+unit are dropped.
func buildParameter(doc string, t model.ParameterType, pd patternDef, loc []int) (model.ExtractedParameter, bool) {
	var label string
	winStart, winEnd := loc[2], loc[3]
	if pd.labeled {
		label = doc[loc[2]:loc[3]]
		winStart, winEnd = loc[4], loc[5]
	}
	window := doc[winStart:winEnd]

	// Certifications have no unit family; the window text itself is
	// the value
	if t == model.ParamCertification {
		raw := strings.TrimSpace(window)
		if raw == "" {
			return model.ExtractedParameter{}, false
		}
		return model.ExtractedParameter{
			Type:       t,
			Label:      label,
			RawText:    raw,
			Confidence: clamp01(baseConfidence + pd.specificity + proximityWeight),
			Span:       model.SourceSpan{Start: winStart, End: winEnd},
		}, true
	}

	pv, err := findNumericWithUnit(window, t)
	if err != nil {
		return model.ExtractedParameter{}, false
	}
	// A fallback window begins at its number; a parse starting later
	// means the leading digits were a fragment of something else
	if !pd.labeled && pv.start != 0 {
		return model.ExtractedParameter{}, false
	}
	factor, ok := unitFactor(t, pv.unit)
	if !ok {
		return model.ExtractedParameter{}, false
	}

	return model.ExtractedParameter{
		Type:       t,
		Label:      label,
		RawText:    strings.TrimSpace(window[pv.start:pv.end]),
		Value:      pv.value,
		Unit:       pv.unit,
		Normalized: pv.value.Scale(factor),
		Confidence: clamp01(baseConfidence + pd.specificity + proximityWeight*pv.confidence),
		Span:       model.SourceSpan{Start: winStart + pv.start, End: winStart + pv.end},
	}, true
}

// dedupe removes candidates whose source spans overlap for the same
// type, keeping the highest-confidence one
func dedupe(params []model.ExtractedParameter) []model.ExtractedParameter {
	sort.SliceStable(params, func(i, j int) bool {
		return params[i].Confidence > params[j].Confidence
	})
	var kept []model.ExtractedParameter
	for _, p := range params {
		overlapping := false
		for _, k := range kept {
			if k.Type == p.Type && k.Span.Overlaps(p.Span) {
				overlapping = true
				break
			}
		}
		if !overlapping {
			kept = append(kept, p)
		}
	}
	return kept
}

// parameterLabelWords excludes lines naming a parameter ("Output
// Voltage:") from being treated as component headings
var parameterLabelWords = regexp.MustCompile(`(?i)\b(voltage|current|power|temp(?:erature)?|frequency|dimensions?|size|certifications?|compliance)\b`)

var datasheetLine = regexp.MustCompile(`(?i)\b(datasheet|model)\b`)

// lineLabelPrefix captures a short "Name:" prefix at the start of a
// line, for attributing bare values like "Input: 100-240V AC" that no
// labeled pattern recognizes
var lineLabelPrefix = regexp.MustCompile(`^\s*([A-Za-z][A-Za-z ()/._-]{0,40}?)\s*:`)

// assignLineLabels gives label-free matches the colon-terminated
// prefix of their line when one precedes the value, so role
// classification can read which side of the comparison the line
// describes
func assignLineLabels(doc string, params []model.ExtractedParameter) {
	lines := splitLines(doc)
	for i := range params {
		if params[i].Label != "" {
			continue
		}
		line := lines[lineIndexFor(lines, params[i].Span.Start)]
		m := lineLabelPrefix.FindStringSubmatchIndex(line.text)
		if m == nil || line.start+m[1] > params[i].Span.Start {
			continue
		}
		params[i].Label = strings.TrimSpace(line.text[m[2]:m[3]])
	}
}

// assignComponentHints scans backward from each match to the nearest
// preceding heading-like line within a bounded window. Matches with no
// heading above them keep an empty hint. When two headings are equally
// plausible the nearest one wins; that choice is heuristic and may
// misattribute in multi-column documents.
func assignComponentHints(doc string, params []model.ExtractedParameter) {
	lines := splitLines(doc)
	for i := range params {
		li := lineIndexFor(lines, params[i].Span.Start)
		for back := li - 1; back >= 0 && back >= li-headingScanLines; back-- {
			if name, ok := headingName(lines[back].text); ok {
				params[i].ComponentHint = name
				break
			}
		}
	}
}

type docLine struct {
	start int
	text  string
}

func splitLines(doc string) []docLine {
	var lines []docLine
	start := 0
	for i := 0; i < len(doc); i++ {
		if doc[i] == '\n' {
			lines = append(lines, docLine{start: start, text: doc[start:i]})
			start = i + 1
		}
	}
	lines = append(lines, docLine{start: start, text: doc[start:]})
	return lines
}

func lineIndexFor(lines []docLine, offset int) int {
	idx := sort.Search(len(lines), func(i int) bool {
		return lines[i].start > offset
	})
	return idx - 1
}

// headingName decides whether a line looks like a component heading
// and returns its display form
func headingName(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", false
	}

	// Quoted product name on its own line
	if len(trimmed) > 2 && strings.HasPrefix(trimmed, `"`) && strings.HasSuffix(trimmed, `"`) {
		return strings.Trim(trimmed, `"`), true
	}

	// "Datasheet for ..." / "... Model: XYZ" style lines
	if datasheetLine.MatchString(trimmed) {
		return strings.TrimSuffix(trimmed, ":"), true
	}

	// A line ending in a colon with no value after it, as long as it
	// is not naming a parameter
	if strings.HasSuffix(trimmed, ":") && !parameterLabelWords.MatchString(trimmed) {
		return strings.TrimSuffix(trimmed, ":"), true
	}

	return "", false
}

// groupByHint clusters parameters sharing a non-empty component hint,
// preserving first-appearance order. Parameters without a hint are
// returned separately for cross-document fallback matching.
func groupByHint(params []model.ExtractedParameter) ([]model.ComponentGroup, []model.ExtractedParameter) {
	var groups []model.ComponentGroup
	index := make(map[string]int)
	var ungrouped []model.ExtractedParameter

	for _, p := range params {
		if p.ComponentHint == "" {
			ungrouped = append(ungrouped, p)
			continue
		}
		gi, ok := index[p.ComponentHint]
		if !ok {
			gi = len(groups)
			index[p.ComponentHint] = gi
			groups = append(groups, model.ComponentGroup{Hint: p.ComponentHint})
		}
		groups[gi].Parameters = append(groups[gi].Parameters, p)
	}
	return groups, ungrouped
}

// displayKey builds the Extracted_Technical_Data key for a parameter
func displayKey(p model.ExtractedParameter) string {
	name := p.Label
	if name == "" {
		name = p.Type.DisplayName()
	}
	if p.ComponentHint != "" {
		return p.ComponentHint + " - " + name
	}
	return name
}

// sectionName names the part of the document a parameter came from,
// for Referenced_Sections
func sectionName(p model.ExtractedParameter) string {
	switch {
	case p.ComponentHint != "" && p.Label != "":
		return p.ComponentHint + " - " + p.Label
	case p.ComponentHint != "":
		return p.ComponentHint
	case p.Label != "":
		return p.Label
	}
	return fmt.Sprintf("Unlabeled value near offset %d", p.Span.Start)
}

func clamp01(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}
