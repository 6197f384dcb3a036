// Package discrepancy derives unmatched-element sets and coverage ratios from
// the matchers' output. Coverage denominators are guarded with max(n,1) so an
// empty graph yields coverage 0 rather than an error.
package discrepancy

import (
	"sort"

	"github.com/lexbridge/lexbridge/internal/core/model"
	"github.com/lexbridge/lexbridge/internal/core/ontology"
)

type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// Entities computes the entity discrepancy report between two graphs given the
// accepted entity matches.
func (c *Calculator) Entities(source, target *model.KnowledgeGraph, matches []model.MatchRecord) model.DiscrepancyReport {
	report := c.compute(entityIDs(source), entityIDs(target), matches)

	report.UnmatchedSourceByCategory = bucketByEntityCategory(source, report.UnmatchedSource)
	report.UnmatchedTargetByCategory = bucketByEntityCategory(target, report.UnmatchedTarget)
	report.CriticalSource = criticalEntities(source, report.UnmatchedSource, ontology.CriticalSourceCategory)
	report.CriticalTarget = criticalEntities(target, report.UnmatchedTarget, ontology.CriticalTargetCategory)
	return report
}

// Relationships computes the relationship discrepancy report, bucketing
// unmatched relationships by their relation tag.
func (c *Calculator) Relationships(source, target *model.KnowledgeGraph, matches []model.MatchRecord) model.DiscrepancyReport {
	report := c.compute(relationshipIDs(source), relationshipIDs(target), matches)

	report.UnmatchedSourceByCategory = bucketByRelation(source, report.UnmatchedSource)
	report.UnmatchedTargetByCategory = bucketByRelation(target, report.UnmatchedTarget)
	return report
}

func (c *Calculator) compute(sourceIDs, targetIDs []string, matches []model.MatchRecord) model.DiscrepancyReport {
	matchedSource := make(map[string]bool, len(matches))
	matchedTarget := make(map[string]bool, len(matches))
	for _, m := range matches {
		matchedSource[m.SourceElement] = true
		matchedTarget[m.TargetElement] = true
	}

	unmatchedSource := subtract(sourceIDs, matchedSource)
	unmatchedTarget := subtract(targetIDs, matchedTarget)

	return model.DiscrepancyReport{
		MatchedCount:    len(matches),
		UnmatchedSource: unmatchedSource,
		UnmatchedTarget: unmatchedTarget,
		CoverageSource:  coverage(len(matchedSource), len(sourceIDs)),
		CoverageTarget:  coverage(len(matchedTarget), len(targetIDs)),
	}
}

func coverage(matched, total int) float64 {
	return float64(matched) / float64(max(total, 1))
}

func subtract(all []string, matched map[string]bool) []string {
	var out []string
	for _, id := range all {
		if !matched[id] {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

func entityIDs(g *model.KnowledgeGraph) []string {
	ids := make([]string, 0, len(g.Entities))
	for id := range g.Entities {
		if id != "" {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func relationshipIDs(g *model.KnowledgeGraph) []string {
	ids := make([]string, 0, len(g.Relationships))
	for id := range g.Relationships {
		if id != "" {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func bucketByEntityCategory(g *model.KnowledgeGraph, ids []string) map[string][]string {
	if len(ids) == 0 {
		return nil
	}
	buckets := make(map[string][]string)
	for _, id := range ids {
		cat := g.Entities[id].Category
		if cat == "" {
			cat = model.UnknownTag
		}
		buckets[cat] = append(buckets[cat], id)
	}
	return buckets
}

func bucketByRelation(g *model.KnowledgeGraph, ids []string) map[string][]string {
	if len(ids) == 0 {
		return nil
	}
	buckets := make(map[string][]string)
	for _, id := range ids {
		rel := g.Relationships[id].Relation
		if rel == "" {
			rel = model.UnknownTag
		}
		buckets[rel] = append(buckets[rel], id)
	}
	return buckets
}

func criticalEntities(g *model.KnowledgeGraph, ids []string, critical func(string) bool) []string {
	var out []string
	for _, id := range ids {
		if critical(g.Entities[id].Category) {
			out = append(out, id)
		}
	}
	return out
}
