package analyzer

import (
	"fmt"
	"strings"

	"specanalyzer/internal/model"
)

// axisParam maps each comparison axis to the parameter type it reads
var axisParam = map[Axis]model.ParameterType{
	AxisVoltage:     model.ParamVoltage,
	AxisCurrent:     model.ParamCurrent,
	AxisTemperature: model.ParamTemperature,
	AxisPower:       model.ParamPower,
}

// axisResult records one evaluated comparison
type axisResult struct {
	axis   Axis
	pass   bool
	source *model.ExtractedParameter
	load   *model.ExtractedParameter
	detail string
}

// decide applies the comparison rules to the resolved source and load
// groups and produces the final verdict. It never fails: every input,
// however thin, maps to a structured result.
func (a *Analyzer) decide(groups []model.ComponentGroup, ungrouped []model.ExtractedParameter, params []model.ExtractedParameter, intent QueryIntent) *model.AnalysisResult {
	extracted := extractedData(params)

	if len(intent.Roles) < 2 {
		return &model.AnalysisResult{
			Decision:               model.DecisionNotCovered,
			ConfidenceScore:        model.ConfidenceLow,
			Justification:          "The query does not identify both a supplying and a consuming component, so no compatibility comparison applies.",
			ExtractedTechnicalData: extracted,
			ReferencedSections:     []model.ReferencedSection{},
		}
	}

	source, load, reason := a.resolveRoles(groups, ungrouped)
	if source == nil || load == nil {
		return &model.AnalysisResult{
			Decision:               model.DecisionNotCovered,
			ConfidenceScore:        model.ConfidenceLow,
			Justification:          reason,
			ExtractedTechnicalData: extracted,
			ReferencedSections:     []model.ReferencedSection{},
		}
	}

	var evaluated []axisResult
	for _, axis := range axisOrder {
		if !intent.HasAxis(axis) {
			continue
		}
		res, ok := a.evaluateAxis(axis, source, load)
		if !ok {
			continue
		}
		evaluated = append(evaluated, res)
	}

	if len(evaluated) == 0 {
		return &model.AnalysisResult{
			Decision:               model.DecisionNotCovered,
			ConfidenceScore:        model.ConfidenceLow,
			Justification:          missingDataJustification(intent),
			ExtractedTechnicalData: extracted,
			ReferencedSections:     []model.ReferencedSection{},
		}
	}

	decision := model.DecisionCompatible
	decisive := evaluated
	for i, res := range evaluated {
		if !res.pass {
			// First applicable axis failure determines the verdict
			decision = model.DecisionIncompatible
			decisive = evaluated[i : i+1]
			break
		}
	}

	return &model.AnalysisResult{
		Decision:               decision,
		ConfidenceScore:        bucketConfidence(minConfidence(decisive)),
		Justification:          buildJustification(decision, decisive),
		ExtractedTechnicalData: extracted,
		ReferencedSections:     referencedSections(evaluated),
	}
}

// resolveRoles picks exactly one source and one load group. Hinted
// groups are classified first; when headings are absent the ungrouped
// parameters are split into pseudo-groups by their labels. More than
// one plausible group per role is ambiguous and resolves to neither.
func (a *Analyzer) resolveRoles(groups []model.ComponentGroup, ungrouped []model.ExtractedParameter) (*model.ComponentGroup, *model.ComponentGroup, string) {
	var sources, loads []*model.ComponentGroup
	for i := range groups {
		role, ok := classifyGroupRole(&groups[i])
		if !ok {
			continue
		}
		if role == RoleSource {
			sources = append(sources, &groups[i])
		} else {
			loads = append(loads, &groups[i])
		}
	}

	if len(sources) > 1 || len(loads) > 1 {
		return nil, nil, "More than two plausible components matched the requested roles; the document is ambiguous about which pair to compare."
	}

	var source, load *model.ComponentGroup
	if len(sources) == 1 {
		source = sources[0]
	}
	if len(loads) == 1 {
		load = loads[0]
	}

	// Label-based fallback for documents without usable headings
	if source == nil || load == nil {
		fs, fl := splitByLabels(ungrouped)
		if source == nil && len(fs.Parameters) > 0 {
			source = fs
		}
		if load == nil && len(fl.Parameters) > 0 {
			load = fl
		}
	}

	if source == nil || load == nil {
		return nil, nil, "The document does not contain identifiable data for both a supplying and a consuming component."
	}
	return source, load, ""
}

// splitByLabels builds pseudo-groups from ungrouped parameters whose
// labels identify the side they describe
func splitByLabels(params []model.ExtractedParameter) (*model.ComponentGroup, *model.ComponentGroup) {
	source := &model.ComponentGroup{Hint: ""}
	load := &model.ComponentGroup{Hint: ""}
	for _, p := range params {
		role, ok := classifyParameterRole(p)
		if !ok {
			continue
		}
		if role == RoleSource {
			source.Parameters = append(source.Parameters, p)
		} else {
			load.Parameters = append(load.Parameters, p)
		}
	}
	return source, load
}

// bestFor picks the group's highest-confidence parameter of a type
// for one side of the comparison, skipping parameters whose own label
// names the other side. A supply's "Input: 100-240V AC" line rates
// what it draws from the wall, not what it delivers.
func bestFor(g *model.ComponentGroup, t model.ParameterType, role Role) *model.ExtractedParameter {
	var best *model.ExtractedParameter
	for i := range g.Parameters {
		p := &g.Parameters[i]
		if p.Type != t {
			continue
		}
		if r, ok := classifyParameterRole(*p); ok && r != role {
			continue
		}
		if best == nil || p.Confidence > best.Confidence {
			best = p
		}
	}
	return best
}

// evaluateAxis applies one comparison rule. ok is false when either
// side lacks usable data for the axis, which skips the axis without
// penalty.
func (a *Analyzer) evaluateAxis(axis Axis, source, load *model.ComponentGroup) (axisResult, bool) {
	src := a.usable(bestFor(source, axisParam[axis], RoleSource))
	ld := a.usable(bestFor(load, axisParam[axis], RoleLoad))
	if src == nil || ld == nil {
		return axisResult{}, false
	}

	res := axisResult{axis: axis, source: src, load: ld}
	switch axis {
	case AxisVoltage:
		supplied := src.Normalized
		if supplied.IsScalar() {
			supplied = supplied.Expand(a.settings.VoltageTolerance)
		}
		res.pass = supplied.Overlaps(ld.Normalized)
		if res.pass {
			res.detail = fmt.Sprintf("The supply provides %s, which matches the load's required %s.", src.RawText, ld.RawText)
		} else {
			res.detail = fmt.Sprintf("Voltage mismatch: the supply provides %s but the load requires %s.", src.RawText, ld.RawText)
		}
	case AxisCurrent:
		res.pass = src.Normalized.Max >= ld.Normalized.Max
		if res.pass {
			headroom := headroomPercent(src.Normalized.Max, ld.Normalized.Max)
			if headroom < a.settings.CurrentSafetyMargin*100 {
				res.detail = fmt.Sprintf("The supply's maximum current of %s covers the load's draw of %s, but only with %.0f%% headroom.", src.RawText, ld.RawText, headroom)
			} else {
				res.detail = fmt.Sprintf("The supply's maximum current of %s covers the load's draw of %s (%.0f%% headroom).", src.RawText, ld.RawText, headroom)
			}
		} else {
			res.detail = fmt.Sprintf("Insufficient current: the supply provides a maximum of %s but the load requires %s.", src.RawText, ld.RawText)
		}
	case AxisTemperature:
		res.pass = src.Normalized.Overlaps(ld.Normalized)
		if res.pass {
			res.detail = fmt.Sprintf("Operating temperature ranges %s and %s overlap.", src.RawText, ld.RawText)
		} else {
			res.detail = fmt.Sprintf("Operating temperature ranges do not overlap: %s versus %s.", src.RawText, ld.RawText)
		}
	case AxisPower:
		res.pass = src.Normalized.Max >= ld.Normalized.Max
		if res.pass {
			res.detail = fmt.Sprintf("The supply's rated power of %s covers the load's consumption of %s.", src.RawText, ld.RawText)
		} else {
			res.detail = fmt.Sprintf("Insufficient power: the supply is rated for %s but the load consumes %s.", src.RawText, ld.RawText)
		}
	}
	return res, true
}

// usable drops parameters below the configured confidence threshold
// from decision-making
func (a *Analyzer) usable(p *model.ExtractedParameter) *model.ExtractedParameter {
	if p == nil || p.Confidence < a.settings.ConfidenceThreshold {
		return nil
	}
	return p
}

func headroomPercent(supplied, drawn float64) float64 {
	if drawn <= 0 {
		return 0
	}
	return (supplied - drawn) / drawn * 100
}

func minConfidence(results []axisResult) float64 {
	min := 1.0
	for _, r := range results {
		if r.source.Confidence < min {
			min = r.source.Confidence
		}
		if r.load.Confidence < min {
			min = r.load.Confidence
		}
	}
	return min
}

// bucketConfidence maps the minimum per-parameter confidence of the
// decisive axes into the reported bucket
func bucketConfidence(c float64) model.Confidence {
	switch {
	case c >= 0.8:
		return model.ConfidenceHigh
	case c >= 0.5:
		return model.ConfidenceMedium
	}
	return model.ConfidenceLow
}

func buildJustification(decision model.Decision, decisive []axisResult) string {
	parts := make([]string, 0, len(decisive)+1)
	for _, r := range decisive {
		parts = append(parts, r.detail)
	}
	if decision == model.DecisionCompatible {
		parts = append(parts, "The components are compatible.")
	} else {
		parts = append(parts, "The components are not compatible.")
	}
	return strings.Join(parts, " ")
}

func missingDataJustification(intent QueryIntent) string {
	if len(intent.Axes) == 0 {
		return "Could not determine compatibility: the document lacks comparable data for the two components."
	}
	names := make([]string, 0, len(intent.Axes))
	for _, a := range intent.Axes {
		names = append(names, string(a))
	}
	return fmt.Sprintf("Could not determine compatibility: the document lacks the %s data the query asks about.", strings.Join(names, " and "))
}

// referencedSections lists, for each parameter used in the
// evaluation, the part of the document it came from
func referencedSections(evaluated []axisResult) []model.ReferencedSection {
	sections := make([]model.ReferencedSection, 0, len(evaluated)*2)
	seen := make(map[string]bool)
	add := func(p *model.ExtractedParameter) {
		name := sectionName(*p)
		if seen[name] {
			return
		}
		seen[name] = true
		details := p.RawText
		if p.Label != "" {
			details = p.Label + ": " + p.RawText
		}
		sections = append(sections, model.ReferencedSection{SectionName: name, Details: details})
	}
	for _, r := range evaluated {
		add(r.source)
		add(r.load)
	}
	return sections
}

// extractedData builds the display map of everything found in the
// document, decision-relevant or not
func extractedData(params []model.ExtractedParameter) map[string]string {
	out := make(map[string]string, len(params))
	for _, p := range params {
		key := displayKey(p)
		if _, taken := out[key]; taken {
			key = fmt.Sprintf("%s (offset %d)", key, p.Span.Start)
		}
		out[key] = p.RawText
	}
	return out
}
