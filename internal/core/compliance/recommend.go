package compliance

import (
	"fmt"

	"github.com/lexbridge/lexbridge/internal/config"
	"github.com/lexbridge/lexbridge/internal/core/model"
)

// Recommend turns an assessment and its discrepancy reports into actionable
// follow-ups, most severe first. An empty result never escapes: a report with
// nothing to fix gets the alignment confirmation line.
func Recommend(cfg config.ComplianceConfig, assessment model.ComplianceAssessment, entityMatches []model.MatchRecord, entityDisc, relationDisc model.DiscrepancyReport) []string {
	var recs []string

	if n := len(entityDisc.CriticalSource); n > 0 {
		recs = append(recs, fmt.Sprintf("Implement the %d critical missing entities (parties, financial terms, obligations, deadlines)", n))
	}
	if entityDisc.CoverageSource < cfg.GapCoverageMin {
		recs = append(recs, "Significant entity gaps detected - review the target representation for completeness")
	}
	if n := len(relationDisc.UnmatchedSource); n > 0 {
		recs = append(recs, fmt.Sprintf("Add implementations for the %d missing source relationships", n))
	}
	if n := countLowConfidence(entityMatches, cfg.LowConfidenceMax); n > 0 {
		recs = append(recs, fmt.Sprintf("Improve the implementation of %d low-confidence entity matches", n))
	}
	if assessment.OverallSimilarity < cfg.ReviewOverallSimilarity {
		recs = append(recs, "Overall similarity is low - a comprehensive review of the implementation is recommended")
	}

	if len(recs) == 0 {
		recs = append(recs, "The implementation shows good alignment with the source contract")
	}
	return recs
}

func countLowConfidence(matches []model.MatchRecord, max float64) int {
	n := 0
	for _, m := range matches {
		if m.Confidence < max {
			n++
		}
	}
	return n
}
