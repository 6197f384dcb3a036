package discrepancy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexbridge/lexbridge/internal/core/model"
)

func buildGraph(t *testing.T, role model.GraphRole, entities []model.EntityRecord, rels []model.RelationshipRecord) *model.KnowledgeGraph {
	t.Helper()
	g := model.NewKnowledgeGraph(role)
	for _, e := range entities {
		require.NoError(t, g.AddEntity(e))
	}
	for _, r := range rels {
		require.NoError(t, g.AddRelationship(r))
	}
	return g
}

func TestEntityDiscrepancies(t *testing.T) {
	source := buildGraph(t, model.RoleSource, []model.EntityRecord{
		{ID: "e1", Text: "Company A", Type: "ORGANIZATION", Category: "PARTY"},
		{ID: "e2", Text: "$5,000", Type: "MONEY", Category: "FINANCIAL"},
		{ID: "e3", Text: "arbitration", Type: "LEGAL_TERM", Category: "LEGAL_TERM"},
	}, nil)
	target := buildGraph(t, model.RoleTarget, []model.EntityRecord{
		{ID: "t1", Text: "companyA", Type: "VARIABLE", Category: "STATE_STORAGE"},
		{ID: "t2", Text: "unusedHelper", Type: "FUNCTION", Category: "FUNCTION_DEFINITION"},
	}, nil)

	matches := []model.MatchRecord{
		{SourceElement: "e1", TargetElement: "t1", SimilarityScore: 0.9},
	}

	c := NewCalculator()
	report := c.Entities(source, target, matches)

	assert.Equal(t, 1, report.MatchedCount)
	assert.Equal(t, []string{"e2", "e3"}, report.UnmatchedSource)
	assert.Equal(t, []string{"t2"}, report.UnmatchedTarget)
	assert.InDelta(t, 1.0/3.0, report.CoverageSource, 1e-9)
	assert.InDelta(t, 0.5, report.CoverageTarget, 1e-9)

	assert.Equal(t, []string{"e2"}, report.UnmatchedSourceByCategory["FINANCIAL"])
	assert.Equal(t, []string{"e3"}, report.UnmatchedSourceByCategory["LEGAL_TERM"])

	// Unmatched FINANCIAL source entities are critical; LEGAL_TERM is not.
	assert.Equal(t, []string{"e2"}, report.CriticalSource)
	// Unmatched FUNCTION_DEFINITION target entities are critical.
	assert.Equal(t, []string{"t2"}, report.CriticalTarget)
}

func TestRelationshipDiscrepancies(t *testing.T) {
	source := buildGraph(t, model.RoleSource, []model.EntityRecord{
		{ID: "e1", Text: "Company A", Type: "ORGANIZATION", Category: "PARTY"},
		{ID: "e2", Text: "$5,000", Type: "MONEY", Category: "FINANCIAL"},
	}, []model.RelationshipRecord{
		{ID: "r1", SourceID: "e1", TargetID: "e2", Relation: "payment"},
		{ID: "r2", SourceID: "e2", TargetID: "e1", Relation: "obligation"},
	})
	target := buildGraph(t, model.RoleTarget, []model.EntityRecord{
		{ID: "t1", Text: "Contract", Type: "CONTRACT", Category: "CONTRACT_DEFINITION"},
		{ID: "t2", Text: "amount", Type: "STATE_VARIABLE", Category: "STATE_STORAGE"},
	}, []model.RelationshipRecord{
		{ID: "tr1", SourceID: "t1", TargetID: "t2", Relation: "contains"},
	})

	matches := []model.MatchRecord{
		{SourceElement: "r1", TargetElement: "tr1", SimilarityScore: 0.5},
	}

	report := NewCalculator().Relationships(source, target, matches)

	assert.Equal(t, []string{"r2"}, report.UnmatchedSource)
	assert.Empty(t, report.UnmatchedTarget)
	assert.InDelta(t, 0.5, report.CoverageSource, 1e-9)
	assert.InDelta(t, 1.0, report.CoverageTarget, 1e-9)
	assert.Equal(t, []string{"r2"}, report.UnmatchedSourceByCategory["obligation"])
	// Relationship reports carry no critical flags.
	assert.Empty(t, report.CriticalSource)
	assert.Empty(t, report.CriticalTarget)
}

func TestCoverageOfEmptyGraphIsZero(t *testing.T) {
	source := model.NewKnowledgeGraph(model.RoleSource)
	target := model.NewKnowledgeGraph(model.RoleTarget)

	report := NewCalculator().Entities(source, target, nil)

	assert.Zero(t, report.CoverageSource)
	assert.Zero(t, report.CoverageTarget)
	assert.Empty(t, report.UnmatchedSource)
	assert.Empty(t, report.UnmatchedTarget)
}

func TestSharedTargetCountsOnce(t *testing.T) {
	// Greedy matching lets two sources claim the same target; target coverage
	// counts the claimed target once.
	source := buildGraph(t, model.RoleSource, []model.EntityRecord{
		{ID: "e1", Text: "a", Type: "MONEY", Category: "FINANCIAL"},
		{ID: "e2", Text: "b", Type: "MONEY", Category: "FINANCIAL"},
	}, nil)
	target := buildGraph(t, model.RoleTarget, []model.EntityRecord{
		{ID: "t1", Text: "amount", Type: "STATE_VARIABLE", Category: "STATE_STORAGE"},
		{ID: "t2", Text: "other", Type: "STATE_VARIABLE", Category: "STATE_STORAGE"},
	}, nil)

	matches := []model.MatchRecord{
		{SourceElement: "e1", TargetElement: "t1"},
		{SourceElement: "e2", TargetElement: "t1"},
	}

	report := NewCalculator().Entities(source, target, matches)
	assert.InDelta(t, 1.0, report.CoverageSource, 1e-9)
	assert.InDelta(t, 0.5, report.CoverageTarget, 1e-9)
	assert.Equal(t, []string{"t2"}, report.UnmatchedTarget)
}
