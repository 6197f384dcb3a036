package model

import "time"

// MatchType classifies how a source element matched its target counterpart.
type MatchType string

const (
	MatchExact    MatchType = "exact"
	MatchPartial  MatchType = "partial"
	MatchSemantic MatchType = "semantic"
	MatchWeak     MatchType = "weak"
)

// MatchRecord pairs a source element with its best-scoring target element.
type MatchRecord struct {
	SourceElement   string    `json:"source_element"`
	TargetElement   string    `json:"target_element"`
	SimilarityScore float64   `json:"similarity_score"`
	Confidence      float64   `json:"confidence"`
	MatchType       MatchType `json:"match_type"`
}

// DiscrepancyReport describes which elements of one kind (entities or
// relationships) failed to find a counterpart, and the resulting coverage.
type DiscrepancyReport struct {
	MatchedCount    int      `json:"matched_count"`
	UnmatchedSource []string `json:"unmatched_source"`
	UnmatchedTarget []string `json:"unmatched_target"`
	CoverageSource  float64  `json:"coverage_source"`
	CoverageTarget  float64  `json:"coverage_target"`

	// Unmatched ids bucketed by entity category / relation tag, for reporting.
	UnmatchedSourceByCategory map[string][]string `json:"unmatched_source_by_category,omitempty"`
	UnmatchedTargetByCategory map[string][]string `json:"unmatched_target_by_category,omitempty"`

	// Unmatched ids whose category is on the role-specific critical list.
	CriticalSource []string `json:"critical_source,omitempty"`
	CriticalTarget []string `json:"critical_target,omitempty"`
}

// ComplianceLevel is the coarse grade assigned to a compliance score.
type ComplianceLevel string

const (
	CompliancePoor      ComplianceLevel = "Poor"
	ComplianceFair      ComplianceLevel = "Fair"
	ComplianceGood      ComplianceLevel = "Good"
	ComplianceExcellent ComplianceLevel = "Excellent"
)

// ComplianceAssessment folds match quality and coverage into the headline
// scores. ComplianceScore is directional: how much of the source contract
// survived into the target representation.
type ComplianceAssessment struct {
	OverallSimilarity float64         `json:"overall_similarity"`
	ComplianceScore   float64         `json:"compliance_score"`
	ComplianceLevel   ComplianceLevel `json:"compliance_level"`
	IsCompliant       bool            `json:"is_compliant"`
	Issues            []string        `json:"issues"`
}

// Report is the full output of one comparison invocation. It is created fresh
// per invocation and never mutated afterwards.
type Report struct {
	ComparisonID              string               `json:"comparison_id"`
	GeneratedAt               time.Time            `json:"generated_at"`
	EntityMatches             []MatchRecord        `json:"entity_matches"`
	RelationshipMatches       []MatchRecord        `json:"relationship_matches"`
	EntityDiscrepancies       DiscrepancyReport    `json:"entity_discrepancies"`
	RelationshipDiscrepancies DiscrepancyReport    `json:"relationship_discrepancies"`
	Compliance                ComplianceAssessment `json:"compliance_assessment"`
	Recommendations           []string             `json:"recommendations"`
}

// BidirectionalReport wraps the same pipeline run in both directions, plus the
// symmetric alignment scores some callers report.
type BidirectionalReport struct {
	Forward                    Report  `json:"forward"`
	Reverse                    Report  `json:"reverse"`
	EntityAlignmentScore       float64 `json:"entity_alignment_score"`
	RelationshipAlignmentScore float64 `json:"relationship_alignment_score"`
}
