package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexbridge/lexbridge/internal/core/model"
)

func TestDedupeMergesByNormalizedKey(t *testing.T) {
	g := model.NewKnowledgeGraph(model.RoleSource)
	require.NoError(t, g.AddEntity(model.EntityRecord{ID: "e1", Text: "Company A", Type: "ORGANIZATION", Confidence: 0.7}))
	require.NoError(t, g.AddEntity(model.EntityRecord{ID: "e2", Text: "company a", Type: "ORGANIZATION", Confidence: 0.9}))
	require.NoError(t, g.AddEntity(model.EntityRecord{ID: "e3", Text: "$5,000", Type: "MONEY", Confidence: 0.8}))

	out := Dedupe(g)

	assert.Len(t, out.Entities, 2)
	// The survivor keeps the first id but the higher-confidence record.
	survivor, ok := out.Entities["e1"]
	require.True(t, ok)
	assert.Equal(t, 0.9, survivor.Confidence)
	_, gone := out.Entities["e2"]
	assert.False(t, gone)
}

func TestDedupeRemapsRelationshipEndpoints(t *testing.T) {
	g := model.NewKnowledgeGraph(model.RoleSource)
	require.NoError(t, g.AddEntity(model.EntityRecord{ID: "e1", Text: "Company A", Type: "ORGANIZATION", Confidence: 0.9}))
	require.NoError(t, g.AddEntity(model.EntityRecord{ID: "e2", Text: "company a", Type: "ORGANIZATION", Confidence: 0.7}))
	require.NoError(t, g.AddEntity(model.EntityRecord{ID: "e3", Text: "$5,000", Type: "MONEY", Confidence: 0.8}))
	require.NoError(t, g.AddRelationship(model.RelationshipRecord{ID: "r1", SourceID: "e2", TargetID: "e3", Relation: "payment", Confidence: 0.8}))

	out := Dedupe(g)
	require.NoError(t, out.Validate())

	r, ok := out.Relationships["r1"]
	require.True(t, ok)
	assert.Equal(t, "e1", r.SourceID)
	assert.Equal(t, "e3", r.TargetID)
}

func TestDedupeDropsSelfLoopsAndDuplicateEdges(t *testing.T) {
	g := model.NewKnowledgeGraph(model.RoleSource)
	require.NoError(t, g.AddEntity(model.EntityRecord{ID: "e1", Text: "Company A", Type: "ORGANIZATION", Confidence: 0.9}))
	require.NoError(t, g.AddEntity(model.EntityRecord{ID: "e2", Text: "company a", Type: "ORGANIZATION", Confidence: 0.7}))
	require.NoError(t, g.AddEntity(model.EntityRecord{ID: "e3", Text: "$5,000", Type: "MONEY", Confidence: 0.8}))
	// Becomes a self-loop after the merge.
	require.NoError(t, g.AddRelationship(model.RelationshipRecord{ID: "r1", SourceID: "e1", TargetID: "e2", Relation: "co_occurrence", Confidence: 0.5}))
	// Same edge from both duplicates; only one survives.
	require.NoError(t, g.AddRelationship(model.RelationshipRecord{ID: "r2", SourceID: "e1", TargetID: "e3", Relation: "payment", Confidence: 0.5}))
	require.NoError(t, g.AddRelationship(model.RelationshipRecord{ID: "r3", SourceID: "e2", TargetID: "e3", Relation: "payment", Confidence: 0.5}))

	out := Dedupe(g)

	assert.Len(t, out.Relationships, 1)
	_, hasSelfLoop := out.Relationships["r1"]
	assert.False(t, hasSelfLoop)
}

func TestDedupeKeepsDistinctTypesApart(t *testing.T) {
	// Same surface text with different types stays separate.
	g := model.NewKnowledgeGraph(model.RoleTarget)
	require.NoError(t, g.AddEntity(model.EntityRecord{ID: "t1", Text: "deposit", Type: "FUNCTION", Confidence: 1.0}))
	require.NoError(t, g.AddEntity(model.EntityRecord{ID: "t2", Text: "deposit", Type: "STATE_VARIABLE", Confidence: 1.0}))

	out := Dedupe(g)
	assert.Len(t, out.Entities, 2)
}
