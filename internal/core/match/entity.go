// Package match implements the greedy best-match selection between the two
// graphs' entities and relationships. For each source element the matcher
// scores every target element with a composite weighted similarity and keeps
// the maximum, accepting it only above the configured threshold. Selection is
// per-source, not bijective: a target element may be claimed by several
// source elements.
package match

import (
	"sort"
	"strings"

	"github.com/lexbridge/lexbridge/internal/config"
	"github.com/lexbridge/lexbridge/internal/core/model"
	"github.com/lexbridge/lexbridge/internal/core/ontology"
	"github.com/lexbridge/lexbridge/internal/platform/logger"
)

type EntityMatcher struct {
	weights config.EntityWeights
	mapping config.BusinessMappingScores
	log     *logger.Logger
}

func NewEntityMatcher(cfg config.MatchingConfig, log *logger.Logger) *EntityMatcher {
	if log == nil {
		log = logger.Nop()
	}
	return &EntityMatcher{weights: cfg.Entity, mapping: cfg.Mapping, log: log}
}

// Match finds, for each source entity, its best-scoring target counterpart.
// Records without an id are skipped (noisy upstream extraction is tolerated,
// not fatal). Iteration is id-sorted so repeated runs produce identical
// output; score ties go to the lexicographically smallest target id.
func (m *EntityMatcher) Match(source, target map[string]model.EntityRecord) []model.MatchRecord {
	sourceIDs := sortedEntityIDs(source, m.log)
	targetIDs := sortedEntityIDs(target, m.log)

	var matches []model.MatchRecord
	for _, sid := range sourceIDs {
		se := source[sid]

		bestScore := 0.0
		bestID := ""
		for _, tid := range targetIDs {
			if s := m.Score(se, target[tid]); s > bestScore {
				bestScore = s
				bestID = tid
			}
		}

		if bestID == "" || bestScore <= m.weights.Threshold {
			continue
		}
		te := target[bestID]
		matches = append(matches, model.MatchRecord{
			SourceElement:   sid,
			TargetElement:   bestID,
			SimilarityScore: bestScore,
			Confidence:      m.confidence(bestScore, se, te),
			MatchType:       classifyEntityMatch(se, te),
		})
	}
	return matches
}

// Score computes the composite similarity of one entity pair, capped at 1.0.
func (m *EntityMatcher) Score(se, te model.EntityRecord) float64 {
	w := m.weights
	score := 0.0

	switch ontology.EntityMappingStrength(se.Text, te.Text, te.Type) {
	case ontology.MappingStrong:
		score += w.BusinessMapping * m.mapping.Strong
	case ontology.MappingPartial:
		score += w.BusinessMapping * m.mapping.Partial
	}

	if ontology.CompatibleTypes(se.Type, te.Type) {
		score += w.TypeExact
	} else if ontology.RelatedDomains(se.Type, te.Type) {
		score += w.TypeRelated
	}

	score += w.Text * textSimilarity(se.Text, te.Text)

	score += w.Semantic * ontology.JaccardCategories(
		ontology.SemanticCategories(se.Text, flattenProperties(se.Properties)),
		ontology.SemanticCategories(te.Text, flattenProperties(te.Properties)),
	)

	if sameTag(se.Type, te.Type) || sameTag(se.Category, te.Category) {
		score += w.LabelBonus
	}

	return model.Clamp01(score)
}

func (m *EntityMatcher) confidence(score float64, se, te model.EntityRecord) float64 {
	w := m.weights
	avg := (se.Confidence + te.Confidence) / 2
	return model.Clamp01(w.ConfidenceSimilarity*score + w.ConfidenceExtraction*avg)
}

func classifyEntityMatch(se, te model.EntityRecord) model.MatchType {
	switch {
	case foldText(se.Text) == foldText(te.Text) && foldText(se.Text) != "":
		return model.MatchExact
	case containmentRatio(se.Text, te.Text) > 0:
		return model.MatchPartial
	case ontology.CompatibleTypes(se.Type, te.Type) || ontology.RelatedDomains(se.Type, te.Type):
		return model.MatchSemantic
	default:
		return model.MatchWeak
	}
}

func sortedEntityIDs(entities map[string]model.EntityRecord, log *logger.Logger) []string {
	ids := make([]string, 0, len(entities))
	for id := range entities {
		if id == "" {
			log.Warn("skipping entity with missing id")
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func sameTag(a, b string) bool {
	a, b = strings.ToUpper(a), strings.ToUpper(b)
	return a != "" && a != model.UnknownTag && a == b
}

func flattenProperties(props map[string]string) string {
	if len(props) == 0 {
		return ""
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(k)
		sb.WriteByte(' ')
		sb.WriteString(props[k])
		sb.WriteByte(' ')
	}
	return sb.String()
}
