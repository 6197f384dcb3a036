// Package compliance folds match scores and coverage ratios into the headline
// assessment: overall similarity, the directional compliance score, a coarse
// level, and human-readable issues.
package compliance

import (
	"fmt"

	"github.com/lexbridge/lexbridge/internal/config"
	"github.com/lexbridge/lexbridge/internal/core/model"
)

type Assessor struct {
	cfg config.ComplianceConfig
}

func NewAssessor(cfg config.ComplianceConfig) *Assessor {
	return &Assessor{cfg: cfg}
}

// Assess computes the compliance assessment from the two match lists and the
// two discrepancy reports of one comparison run.
func (a *Assessor) Assess(entityMatches, relationMatches []model.MatchRecord, entityDisc, relationDisc model.DiscrepancyReport) model.ComplianceAssessment {
	// Coverage contributes symmetrically to overall similarity; the
	// compliance score below stays source-directional.
	entityCoverage := (entityDisc.CoverageSource + entityDisc.CoverageTarget) / 2
	relationCoverage := (relationDisc.CoverageSource + relationDisc.CoverageTarget) / 2

	overall := a.cfg.EntityMatchWeight*meanSimilarity(entityMatches) +
		a.cfg.RelationMatchWeight*meanSimilarity(relationMatches) +
		a.cfg.EntityCoverageWeight*entityCoverage +
		a.cfg.RelationCoverageWeight*relationCoverage
	overall = model.Clamp01(overall)

	score := model.Clamp01((entityDisc.CoverageSource + relationDisc.CoverageSource) / 2)

	return model.ComplianceAssessment{
		OverallSimilarity: overall,
		ComplianceScore:   score,
		ComplianceLevel:   a.level(score),
		IsCompliant:       score >= a.cfg.CompliantMin,
		Issues:            a.issues(entityDisc, relationDisc),
	}
}

func (a *Assessor) level(score float64) model.ComplianceLevel {
	switch {
	case score >= a.cfg.ExcellentMin:
		return model.ComplianceExcellent
	case score >= a.cfg.GoodMin:
		return model.ComplianceGood
	case score >= a.cfg.FairMin:
		return model.ComplianceFair
	default:
		return model.CompliancePoor
	}
}

func (a *Assessor) issues(entityDisc, relationDisc model.DiscrepancyReport) []string {
	var issues []string
	if n := len(entityDisc.UnmatchedSource); n > 0 {
		issues = append(issues, fmt.Sprintf("%d source entities have no counterpart in the target representation", n))
	}
	if n := len(relationDisc.UnmatchedSource); n > 0 {
		issues = append(issues, fmt.Sprintf("%d source relationships have no counterpart in the target representation", n))
	}
	if n := len(entityDisc.CriticalSource); n > 0 {
		issues = append(issues, fmt.Sprintf("%d unmatched source entities are in critical categories", n))
	}
	return issues
}

func meanSimilarity(matches []model.MatchRecord) float64 {
	if len(matches) == 0 {
		return 0
	}
	var sum float64
	for _, m := range matches {
		sum += m.SimilarityScore
	}
	return sum / float64(len(matches))
}
