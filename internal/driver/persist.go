package driver

import (
	"context"
	"sort"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/lexbridge/lexbridge/internal/core/model"
)

// GraphSink mirrors graphs and comparison outcomes into the graph database so
// they can be inspected with Cypher. It is optional: the engine runs fully
// in-process without it.
type GraphSink struct {
	driver GraphDriver
}

func NewGraphSink(d GraphDriver) *GraphSink {
	return &GraphSink{driver: d}
}

// SaveGraph writes every entity and relationship of g under the given graph
// id, replacing any previous snapshot of that id.
func (s *GraphSink) SaveGraph(ctx context.Context, graphID string, g *model.KnowledgeGraph) error {
	if _, err := s.driver.ExecuteQuery(ctx, DeleteGraphQuery, map[string]interface{}{
		"graph_id": graphID,
	}); err != nil {
		return err
	}

	for _, id := range sortedKeys(g.Entities) {
		e := g.Entities[id]
		if _, err := s.driver.ExecuteQuery(ctx, SaveEntityNodeQuery, map[string]interface{}{
			"id":         e.ID,
			"graph_id":   graphID,
			"text":       e.Text,
			"type":       e.Type,
			"category":   e.Category,
			"confidence": e.Confidence,
			"role":       string(g.Role),
		}); err != nil {
			return err
		}
	}

	for _, id := range sortedKeys(g.Relationships) {
		r := g.Relationships[id]
		if _, err := s.driver.ExecuteQuery(ctx, SaveRelationshipEdgeQuery, map[string]interface{}{
			"id":         r.ID,
			"graph_id":   graphID,
			"source_id":  r.SourceID,
			"target_id":  r.TargetID,
			"relation":   r.Relation,
			"confidence": r.Confidence,
		}); err != nil {
			return err
		}
	}

	return nil
}

// SaveComparison writes the headline numbers of a finished report.
func (s *GraphSink) SaveComparison(ctx context.Context, report model.Report) error {
	_, err := s.driver.ExecuteQuery(ctx, SaveComparisonNodeQuery, map[string]interface{}{
		"id":                   report.ComparisonID,
		"generated_at":         report.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
		"overall_similarity":   report.Compliance.OverallSimilarity,
		"compliance_score":     report.Compliance.ComplianceScore,
		"compliance_level":     string(report.Compliance.ComplianceLevel),
		"is_compliant":         report.Compliance.IsCompliant,
		"entity_matches":       len(report.EntityMatches),
		"relationship_matches": len(report.RelationshipMatches),
	})
	return err
}

// SaveComparisonGraphs mirrors a finished comparison: both graphs under
// <comparison id>_source and <comparison id>_target, the summary node, and a
// COVERS link from the comparison to every entity of each graph.
func (s *GraphSink) SaveComparisonGraphs(ctx context.Context, report model.Report, source, target *model.KnowledgeGraph) error {
	sourceID := report.ComparisonID + "_source"
	targetID := report.ComparisonID + "_target"

	if err := s.SaveGraph(ctx, sourceID, source); err != nil {
		return err
	}
	if err := s.SaveGraph(ctx, targetID, target); err != nil {
		return err
	}
	if err := s.SaveComparison(ctx, report); err != nil {
		return err
	}

	links := []struct {
		graphID string
		role    model.GraphRole
	}{
		{sourceID, model.RoleSource},
		{targetID, model.RoleTarget},
	}
	for _, l := range links {
		graphID, role := l.graphID, l.role
		if _, err := s.driver.ExecuteQuery(ctx, LinkComparisonGraphQuery, map[string]interface{}{
			"comparison_id": report.ComparisonID,
			"graph_id":      graphID,
			"role":          string(role),
		}); err != nil {
			return err
		}
	}
	return nil
}

// LoadGraph reads a persisted snapshot back into a knowledge graph.
func (s *GraphSink) LoadGraph(ctx context.Context, graphID string, role model.GraphRole) (*model.KnowledgeGraph, error) {
	g := model.NewKnowledgeGraph(role)
	g.Metadata["source"] = "memgraph"

	result, err := s.driver.ExecuteQuery(ctx, GetGraphEntitiesQuery, map[string]interface{}{
		"graph_id": graphID,
	})
	if err != nil {
		return nil, err
	}
	for _, rec := range result.Records {
		if err := g.AddEntity(model.EntityRecord{
			ID:         recordString(rec, "id"),
			Text:       recordString(rec, "text"),
			Type:       recordString(rec, "type"),
			Category:   recordString(rec, "category"),
			Confidence: recordFloat(rec, "confidence"),
		}); err != nil {
			return nil, err
		}
	}

	result, err = s.driver.ExecuteQuery(ctx, GetGraphRelationshipsQuery, map[string]interface{}{
		"graph_id": graphID,
	})
	if err != nil {
		return nil, err
	}
	for _, rec := range result.Records {
		if err := g.AddRelationship(model.RelationshipRecord{
			ID:         recordString(rec, "id"),
			SourceID:   recordString(rec, "source_id"),
			TargetID:   recordString(rec, "target_id"),
			Relation:   recordString(rec, "relation"),
			Confidence: recordFloat(rec, "confidence"),
		}); err != nil {
			return nil, err
		}
	}

	g.Normalize()
	return g, nil
}

func recordString(rec *neo4j.Record, key string) string {
	v, _ := rec.Get(key)
	s, _ := v.(string)
	return s
}

func recordFloat(rec *neo4j.Record, key string) float64 {
	v, _ := rec.Get(key)
	f, _ := v.(float64)
	return f
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
