package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexbridge/lexbridge/internal/core/model"
)

func sampleReport() model.Report {
	return model.Report{
		ComparisonID: "cmp-1",
		GeneratedAt:  time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		EntityMatches: []model.MatchRecord{
			{SourceElement: "e1", TargetElement: "t1", SimilarityScore: 0.9123, Confidence: 0.85, MatchType: model.MatchExact},
		},
		RelationshipMatches: []model.MatchRecord{
			{SourceElement: "r1", TargetElement: "tr1", SimilarityScore: 0.5, Confidence: 0.6, MatchType: model.MatchSemantic},
		},
		EntityDiscrepancies: model.DiscrepancyReport{
			MatchedCount:    1,
			UnmatchedSource: []string{"e2", "e3"},
			CoverageSource:  1.0 / 3.0,
		},
		RelationshipDiscrepancies: model.DiscrepancyReport{
			MatchedCount:   1,
			CoverageSource: 1.0,
		},
		Compliance: model.ComplianceAssessment{
			OverallSimilarity: 0.72,
			ComplianceScore:   0.6667,
			ComplianceLevel:   model.ComplianceFair,
			IsCompliant:       false,
		},
		Recommendations: []string{"Add implementations for the 1 missing source relationships"},
	}
}

func TestWriteJSONRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleReport()))

	var got model.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "cmp-1", got.ComparisonID)
	assert.Equal(t, model.ComplianceFair, got.Compliance.ComplianceLevel)
	assert.Len(t, got.EntityMatches, 1)
	assert.Equal(t, []string{"e2", "e3"}, got.EntityDiscrepancies.UnmatchedSource)
}

func TestWriteCSVLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleReport()))

	r := csv.NewReader(&buf)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 7)

	assert.Equal(t, []string{"comparison_id", "overall_similarity", "compliance_score", "compliance_level", "is_compliant"}, rows[0])
	assert.Equal(t, []string{"cmp-1", "0.7200", "0.6667", "Fair", "false"}, rows[1])

	// Match rows: entities first, then relationships.
	assert.Equal(t, []string{"entity", "e1", "t1", "0.9123", "0.8500", "exact"}, rows[3])
	assert.Equal(t, []string{"relationship", "r1", "tr1", "0.5000", "0.6000", "semantic"}, rows[4])

	assert.Equal(t, []string{"unmatched_source_entities", "e2;e3"}, rows[5])
	assert.Equal(t, []string{"unmatched_source_relationships", ""}, rows[6])
}
