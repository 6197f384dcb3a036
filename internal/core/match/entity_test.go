package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexbridge/lexbridge/internal/config"
	"github.com/lexbridge/lexbridge/internal/core/model"
)

func defaultMatching() config.MatchingConfig {
	return config.Default().Matching
}

func TestEntityMatchBusinessToTechnical(t *testing.T) {
	// A party name written as prose on the source side and as a camel-cased
	// variable on the target side must still match, and fold to exact.
	m := NewEntityMatcher(defaultMatching(), nil)

	source := map[string]model.EntityRecord{
		"e1": {ID: "e1", Text: "Company A", Type: "PERSON", Category: "PARTY", Confidence: 0.9},
	}
	target := map[string]model.EntityRecord{
		"t1": {ID: "t1", Text: "companyA", Type: "VARIABLE", Category: "STATE_STORAGE", Confidence: 1.0},
	}

	matches := m.Match(source, target)
	require.Len(t, matches, 1)
	assert.Equal(t, "e1", matches[0].SourceElement)
	assert.Equal(t, "t1", matches[0].TargetElement)
	assert.Equal(t, model.MatchExact, matches[0].MatchType)
	assert.Greater(t, matches[0].SimilarityScore, 0.5)
	assert.LessOrEqual(t, matches[0].SimilarityScore, 1.0)
}

func TestEntityMatchMonetaryAmountToStateVariable(t *testing.T) {
	m := NewEntityMatcher(defaultMatching(), nil)

	se := model.EntityRecord{ID: "e1", Text: "$5,000", Type: "MONEY", Category: "FINANCIAL", Confidence: 0.9}
	te := model.EntityRecord{ID: "t1", Text: "paymentAmount", Type: "STATE_VARIABLE", Category: "STATE_STORAGE", Confidence: 1.0}

	// Strong mapping (financial pattern + "amount" variable), compatible types
	// and shared financial semantics push this well past the threshold.
	score := m.Score(se, te)
	assert.Greater(t, score, 0.75)

	matches := m.Match(
		map[string]model.EntityRecord{"e1": se},
		map[string]model.EntityRecord{"t1": te},
	)
	require.Len(t, matches, 1)
	assert.Equal(t, model.MatchSemantic, matches[0].MatchType)
}

func TestEntityMatchRejectsUnrelated(t *testing.T) {
	m := NewEntityMatcher(defaultMatching(), nil)

	source := map[string]model.EntityRecord{
		"e1": {ID: "e1", Text: "Alice", Type: "PERSON", Category: "PARTY", Confidence: 1.0},
	}
	target := map[string]model.EntityRecord{
		"t1": {ID: "t1", Text: "increment", Type: "FUNCTION", Category: "FUNCTION_DEFINITION", Confidence: 1.0},
	}

	assert.Empty(t, m.Match(source, target))
}

func TestEntityMatchThresholdIsStrict(t *testing.T) {
	// A score exactly at the threshold is rejected.
	cfg := defaultMatching()
	cfg.Entity = config.EntityWeights{TypeExact: 0.25, Threshold: 0.25}
	m := NewEntityMatcher(cfg, nil)

	source := map[string]model.EntityRecord{
		"e1": {ID: "e1", Text: "x", Type: "PERSON", Confidence: 1.0},
	}
	target := map[string]model.EntityRecord{
		"t1": {ID: "t1", Text: "zq", Type: "PERSON", Confidence: 1.0},
	}
	assert.Empty(t, m.Match(source, target))

	cfg.Entity.Threshold = 0.2
	m = NewEntityMatcher(cfg, nil)
	assert.Len(t, m.Match(source, target), 1)
}

func TestEntityMatchTieGoesToSmallestTargetID(t *testing.T) {
	m := NewEntityMatcher(defaultMatching(), nil)

	source := map[string]model.EntityRecord{
		"e1": {ID: "e1", Text: "rent", Type: "MONEY", Category: "FINANCIAL", Confidence: 1.0},
	}
	target := map[string]model.EntityRecord{
		"t2": {ID: "t2", Text: "rent", Type: "MONEY", Category: "FINANCIAL", Confidence: 1.0},
		"t1": {ID: "t1", Text: "rent", Type: "MONEY", Category: "FINANCIAL", Confidence: 1.0},
	}

	matches := m.Match(source, target)
	require.Len(t, matches, 1)
	assert.Equal(t, "t1", matches[0].TargetElement)
}

func TestEntityMatchIsGreedyNotBijective(t *testing.T) {
	// Two source entities may claim the same target element.
	m := NewEntityMatcher(defaultMatching(), nil)

	source := map[string]model.EntityRecord{
		"e1": {ID: "e1", Text: "monthly rent", Type: "MONEY", Category: "FINANCIAL", Confidence: 1.0},
		"e2": {ID: "e2", Text: "rent deposit", Type: "MONEY", Category: "FINANCIAL", Confidence: 1.0},
	}
	target := map[string]model.EntityRecord{
		"t1": {ID: "t1", Text: "rentAmount", Type: "STATE_VARIABLE", Category: "STATE_STORAGE", Confidence: 1.0},
	}

	matches := m.Match(source, target)
	require.Len(t, matches, 2)
	assert.Equal(t, "t1", matches[0].TargetElement)
	assert.Equal(t, "t1", matches[1].TargetElement)
}

func TestEntityMatchSkipsRecordsWithoutID(t *testing.T) {
	m := NewEntityMatcher(defaultMatching(), nil)

	source := map[string]model.EntityRecord{
		"":   {Text: "orphan", Type: "PERSON", Confidence: 1.0},
		"e1": {ID: "e1", Text: "rent", Type: "MONEY", Category: "FINANCIAL", Confidence: 1.0},
	}
	target := map[string]model.EntityRecord{
		"t1": {ID: "t1", Text: "rent", Type: "MONEY", Category: "FINANCIAL", Confidence: 1.0},
	}

	matches := m.Match(source, target)
	require.Len(t, matches, 1)
	assert.Equal(t, "e1", matches[0].SourceElement)
}

func TestEntityConfidenceBlendsScoreAndExtraction(t *testing.T) {
	m := NewEntityMatcher(defaultMatching(), nil)

	se := model.EntityRecord{ID: "e1", Text: "rent", Type: "MONEY", Category: "FINANCIAL", Confidence: 0.6}
	te := model.EntityRecord{ID: "t1", Text: "rent", Type: "MONEY", Category: "FINANCIAL", Confidence: 1.0}

	matches := m.Match(
		map[string]model.EntityRecord{"e1": se},
		map[string]model.EntityRecord{"t1": te},
	)
	require.Len(t, matches, 1)

	want := 0.7*matches[0].SimilarityScore + 0.3*0.8
	assert.InDelta(t, want, matches[0].Confidence, 1e-9)
}

func TestEntityScoreIsDeterministic(t *testing.T) {
	m := NewEntityMatcher(defaultMatching(), nil)

	se := model.EntityRecord{ID: "e1", Text: "security deposit", Type: "MONEY", Category: "FINANCIAL", Confidence: 0.85,
		Properties: map[string]string{"currency": "USD"}}
	te := model.EntityRecord{ID: "t1", Text: "depositAmount", Type: "STATE_VARIABLE", Category: "STATE_STORAGE", Confidence: 1.0}

	first := m.Score(se, te)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, m.Score(se, te))
	}
}
