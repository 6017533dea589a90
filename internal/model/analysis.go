package model

import "time"

// Decision is the overall compatibility verdict
type Decision string

const (
	DecisionCompatible   Decision = "Compatible"
	DecisionIncompatible Decision = "Incompatible"
	DecisionNotCovered   Decision = "Not Explicitly Covered"
	DecisionError        Decision = "Error"
)

// Confidence is the bucketed reliability of a verdict
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// ReferencedSection points back into the source document to show
// which text supported the verdict
type ReferencedSection struct {
	SectionName string `json:"section_name" bson:"sectionName"`
	Details     string `json:"details" bson:"details"`
}

// AnalysisResult is the externally visible output of one analyze
// call. Constructed once, never mutated, serialized directly as the
// wire response and as the persisted history row.
type AnalysisResult struct {
	Decision               Decision            `json:"Decision" bson:"decision"`
	ConfidenceScore        Confidence          `json:"Confidence_Score" bson:"confidenceScore"`
	Justification          string              `json:"Justification" bson:"justification"`
	ExtractedTechnicalData map[string]string   `json:"Extracted_Technical_Data" bson:"extractedTechnicalData"`
	ReferencedSections     []ReferencedSection `json:"Referenced_Sections" bson:"referencedSections"`
}

// AnalysisSession is one stored analysis with its inputs and result
type AnalysisSession struct {
	ID               string          `json:"-" bson:"_id,omitempty"`
	SessionID        string          `json:"sessionId" bson:"sessionId"`
	DocumentText     string          `json:"documentText" bson:"documentText"`
	UserQuery        string          `json:"userQuery" bson:"userQuery"`
	Result           *AnalysisResult `json:"result" bson:"result"`
	Decision         Decision        `json:"decision" bson:"decision"`
	ConfidenceScore  Confidence      `json:"confidenceScore" bson:"confidenceScore"`
	DocumentSize     int             `json:"documentSize" bson:"documentSize"`
	ProcessingTimeMS int64           `json:"processingTimeMs" bson:"processingTimeMs"`
	CreatedAt        time.Time       `json:"createdAt" bson:"createdAt"`
}

// AnalysisTemplate is a pre-defined compatibility check with an
// example document, served to clients as a starting point
type AnalysisTemplate struct {
	ID              string    `json:"-" bson:"_id,omitempty"`
	TemplateName    string    `json:"templateName" bson:"templateName"`
	DisplayName     string    `json:"displayName" bson:"displayName"`
	Description     string    `json:"description" bson:"description"`
	QueryTemplate   string    `json:"queryTemplate" bson:"queryTemplate"`
	ExampleDocument string    `json:"exampleDocument" bson:"exampleDocument"`
	UsageCount      int       `json:"usageCount" bson:"usageCount"`
	CreatedAt       time.Time `json:"createdAt" bson:"createdAt"`
}

// StatsSnapshot summarizes analysis activity for the dashboard
type StatsSnapshot struct {
	TotalAnalyses    int64              `json:"totalAnalyses"`
	DecisionCounts   map[Decision]int64 `json:"decisionBreakdown"`
	AvgProcessingMS  float64            `json:"avgProcessingMs"`
	TotalProcessedMS int64              `json:"-"`
}
