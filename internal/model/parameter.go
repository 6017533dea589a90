package model

// ParameterType identifies a kind of technical value
type ParameterType string

const (
	ParamVoltage       ParameterType = "voltage"
	ParamCurrent       ParameterType = "current"
	ParamPower         ParameterType = "power"
	ParamTemperature   ParameterType = "temperature"
	ParamFrequency     ParameterType = "frequency"
	ParamDimension     ParameterType = "dimension"
	ParamCertification ParameterType = "certification"
)

// AllParameterTypes lists every type the extractor scans for, in a
// fixed order so extraction output is deterministic
var AllParameterTypes = []ParameterType{
	ParamVoltage,
	ParamCurrent,
	ParamPower,
	ParamTemperature,
	ParamFrequency,
	ParamDimension,
	ParamCertification,
}

// DisplayName returns the human-readable name for a parameter type
func (t ParameterType) DisplayName() string {
	switch t {
	case ParamVoltage:
		return "Voltage"
	case ParamCurrent:
		return "Current"
	case ParamPower:
		return "Power"
	case ParamTemperature:
		return "Temperature"
	case ParamFrequency:
		return "Frequency"
	case ParamDimension:
		return "Dimension"
	case ParamCertification:
		return "Certification"
	}
	return string(t)
}

// ValueRange is a closed numeric interval. Scalar values are stored
// with Min == Max.
type ValueRange struct {
	Min float64 `json:"min" bson:"min"`
	Max float64 `json:"max" bson:"max"`
}

// Scalar builds a degenerate range holding a single value
func Scalar(v float64) ValueRange {
	return ValueRange{Min: v, Max: v}
}

// IsScalar reports whether the range holds a single value
func (r ValueRange) IsScalar() bool {
	return r.Min == r.Max
}

// Overlaps reports whether two closed intervals intersect
func (r ValueRange) Overlaps(o ValueRange) bool {
	return r.Min <= o.Max && o.Min <= r.Max
}

// Contains reports whether v lies inside the interval
func (r ValueRange) Contains(v float64) bool {
	return r.Min <= v && v <= r.Max
}

// Expand widens the interval by tol on both sides
func (r ValueRange) Expand(tol float64) ValueRange {
	return ValueRange{Min: r.Min - tol, Max: r.Max + tol}
}

// Scale multiplies both endpoints by factor (unit conversion)
func (r ValueRange) Scale(factor float64) ValueRange {
	return ValueRange{Min: r.Min * factor, Max: r.Max * factor}
}

// SourceSpan locates a match inside the source document
type SourceSpan struct {
	Start int `json:"start" bson:"start"`
	End   int `json:"end" bson:"end"`
}

// Overlaps reports whether two spans share at least one byte
func (s SourceSpan) Overlaps(o SourceSpan) bool {
	return s.Start < o.End && o.Start < s.End
}

// ExtractedParameter is one technical value located in a document.
// It is immutable once created by the extractor.
type ExtractedParameter struct {
	Type          ParameterType `json:"parameterType" bson:"parameterType"`
	Label         string        `json:"label" bson:"label"` // matched label text, empty for fallback matches
	RawText       string        `json:"rawText" bson:"rawText"`
	Value         ValueRange    `json:"value" bson:"value"`           // as written in the document
	Unit          string        `json:"unit" bson:"unit"`             // unit token as written
	Normalized    ValueRange    `json:"normalized" bson:"normalized"` // in the type's base unit
	Confidence    float64       `json:"confidence" bson:"confidence"` // 0.0 to 1.0
	Span          SourceSpan    `json:"span" bson:"span"`
	ComponentHint string        `json:"componentHint,omitempty" bson:"componentHint,omitempty"` // nearest preceding heading, empty when none
}

// Labeled reports whether the parameter came from a label-anchored pattern
func (p ExtractedParameter) Labeled() bool {
	return p.Label != ""
}

// ComponentGroup clusters parameters believed to describe one
// physical component. Grouping is heuristic: an ambiguous document
// may yield more than one group per real component.
type ComponentGroup struct {
	Hint       string               `json:"hint" bson:"hint"`
	Parameters []ExtractedParameter `json:"parameters" bson:"parameters"`
}

// Best returns the highest-confidence parameter of the given type,
// or nil when the group has none
func (g *ComponentGroup) Best(t ParameterType) *ExtractedParameter {
	var best *ExtractedParameter
	for i := range g.Parameters {
		p := &g.Parameters[i]
		if p.Type != t {
			continue
		}
		if best == nil || p.Confidence > best.Confidence {
			best = p
		}
	}
	return best
}

// Has reports whether the group contains a parameter of the given type
func (g *ComponentGroup) Has(t ParameterType) bool {
	return g.Best(t) != nil
}
