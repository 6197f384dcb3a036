// Package export renders comparison reports for consumption outside the API:
// indented JSON for archival and a flattened CSV summary for spreadsheets.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lexbridge/lexbridge/internal/core/model"
)

// WriteJSON renders the full report as indented JSON.
func WriteJSON(w io.Writer, report model.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// WriteCSV renders a flat per-match table with a leading summary row. Matches
// are emitted entities first, then relationships, in their report order.
func WriteCSV(w io.Writer, report model.Report) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"comparison_id", "overall_similarity", "compliance_score", "compliance_level", "is_compliant"}); err != nil {
		return err
	}
	if err := cw.Write([]string{
		report.ComparisonID,
		formatScore(report.Compliance.OverallSimilarity),
		formatScore(report.Compliance.ComplianceScore),
		string(report.Compliance.ComplianceLevel),
		strconv.FormatBool(report.Compliance.IsCompliant),
	}); err != nil {
		return err
	}

	if err := cw.Write([]string{"kind", "source_element", "target_element", "similarity_score", "confidence", "match_type"}); err != nil {
		return err
	}
	writeMatches := func(kind string, matches []model.MatchRecord) error {
		for _, m := range matches {
			if err := cw.Write([]string{
				kind,
				m.SourceElement,
				m.TargetElement,
				formatScore(m.SimilarityScore),
				formatScore(m.Confidence),
				string(m.MatchType),
			}); err != nil {
				return err
			}
		}
		return nil
	}
	if err := writeMatches("entity", report.EntityMatches); err != nil {
		return err
	}
	if err := writeMatches("relationship", report.RelationshipMatches); err != nil {
		return err
	}

	if err := cw.Write([]string{"unmatched_source_entities", strings.Join(report.EntityDiscrepancies.UnmatchedSource, ";")}); err != nil {
		return err
	}
	if err := cw.Write([]string{"unmatched_source_relationships", strings.Join(report.RelationshipDiscrepancies.UnmatchedSource, ";")}); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

func formatScore(v float64) string {
	return fmt.Sprintf("%.4f", v)
}
