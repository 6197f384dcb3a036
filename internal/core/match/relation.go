package match

import (
	"sort"
	"strings"

	"github.com/lexbridge/lexbridge/internal/config"
	"github.com/lexbridge/lexbridge/internal/core/model"
	"github.com/lexbridge/lexbridge/internal/core/ontology"
	"github.com/lexbridge/lexbridge/internal/platform/logger"
)

type RelationshipMatcher struct {
	weights config.RelationWeights
	mapping config.BusinessMappingScores
	log     *logger.Logger
}

func NewRelationshipMatcher(cfg config.MatchingConfig, log *logger.Logger) *RelationshipMatcher {
	if log == nil {
		log = logger.Nop()
	}
	return &RelationshipMatcher{weights: cfg.Relation, mapping: cfg.Mapping, log: log}
}

// Match is the relationship analogue of EntityMatcher.Match: greedy per-source
// best match over the composite score, accepted above the relation threshold.
func (m *RelationshipMatcher) Match(source, target map[string]model.RelationshipRecord) []model.MatchRecord {
	sourceIDs := sortedRelationIDs(source, m.log)
	targetIDs := sortedRelationIDs(target, m.log)

	var matches []model.MatchRecord
	for _, sid := range sourceIDs {
		sr := source[sid]

		bestScore := 0.0
		bestID := ""
		for _, tid := range targetIDs {
			if s := m.Score(sr, target[tid]); s > bestScore {
				bestScore = s
				bestID = tid
			}
		}

		if bestID == "" || bestScore <= m.weights.Threshold {
			continue
		}
		tr := target[bestID]
		matches = append(matches, model.MatchRecord{
			SourceElement:   sid,
			TargetElement:   bestID,
			SimilarityScore: bestScore,
			Confidence:      m.confidence(bestScore, sr, tr),
			MatchType:       classifyRelationMatch(sr, tr),
		})
	}
	return matches
}

// Score computes the composite similarity of one relationship pair, capped at
// 1.0. Endpoint types contribute independently for the source and target
// endpoint, scaled by how closely they agree.
func (m *RelationshipMatcher) Score(sr, tr model.RelationshipRecord) float64 {
	w := m.weights
	score := 0.0

	switch ontology.RelationMappingStrength(sr.Relation, tr.Relation) {
	case ontology.MappingStrong:
		score += w.BusinessMapping * m.mapping.Strong
	case ontology.MappingPartial:
		score += w.BusinessMapping * m.mapping.Partial
	}

	if equalRelation(sr.Relation, tr.Relation) {
		score += w.RelationEqual
	} else if ontology.CompatibleRelations(sr.Relation, tr.Relation) {
		score += w.RelationCompatible
	}

	score += w.EndpointEach * m.endpointScale(sr.SourceType, tr.SourceType)
	score += w.EndpointEach * m.endpointScale(sr.TargetType, tr.TargetType)

	score += w.Semantic * ontology.JaccardCategories(
		ontology.RelationSemanticCategories(sr.Relation),
		ontology.RelationSemanticCategories(tr.Relation),
	)

	minConf := sr.Confidence
	if tr.Confidence < minConf {
		minConf = tr.Confidence
	}
	score += w.Confidence * minConf

	return model.Clamp01(score)
}

func (m *RelationshipMatcher) endpointScale(a, b string) float64 {
	w := m.weights
	switch {
	case strings.EqualFold(a, b) && a != "":
		return w.EndpointExactScale
	case ontology.CompatibleTypes(a, b):
		return w.EndpointCompatScale
	case ontology.RelatedDomains(a, b):
		return w.EndpointRelatedScale
	default:
		return 0
	}
}

func (m *RelationshipMatcher) confidence(score float64, sr, tr model.RelationshipRecord) float64 {
	w := m.weights
	avg := (sr.Confidence + tr.Confidence) / 2
	return model.Clamp01(w.ConfidenceSimilarity*score + w.ConfidenceExtraction*avg)
}

func classifyRelationMatch(sr, tr model.RelationshipRecord) model.MatchType {
	switch {
	case equalRelation(sr.Relation, tr.Relation):
		return model.MatchExact
	case containmentRatio(sr.Relation, tr.Relation) > 0:
		return model.MatchPartial
	case ontology.CompatibleRelations(sr.Relation, tr.Relation):
		return model.MatchSemantic
	default:
		return model.MatchWeak
	}
}

func equalRelation(a, b string) bool {
	return normalizeText(a) != "" && normalizeText(a) == normalizeText(b)
}

func sortedRelationIDs(relations map[string]model.RelationshipRecord, log *logger.Logger) []string {
	ids := make([]string, 0, len(relations))
	for id := range relations {
		if id == "" {
			log.Warn("skipping relationship with missing id")
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
