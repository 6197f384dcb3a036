package ontology

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompatibleTypesIsSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"PERSON", "VARIABLE"},
		{"MONEY", "STATE_VARIABLE"},
		{"DATE", "TEMPORAL"},
		{"CONTRACT", "SMART_CONTRACT"},
	}
	for _, p := range pairs {
		assert.True(t, CompatibleTypes(p[0], p[1]), "%s vs %s", p[0], p[1])
		assert.True(t, CompatibleTypes(p[1], p[0]), "%s vs %s", p[1], p[0])
	}

	assert.False(t, CompatibleTypes("PERSON", "FUNCTION"))
	assert.False(t, CompatibleTypes("MONEY", "CONTRACT"))
}

func TestCompatibleTypesIsCaseInsensitive(t *testing.T) {
	assert.True(t, CompatibleTypes("person", "Variable"))
}

func TestRelatedDomainsIsLooserThanCompatible(t *testing.T) {
	// MONEY and FUNCTION share the financial domain without being
	// substitutable.
	assert.False(t, CompatibleTypes("MONEY", "FUNCTION"))
	assert.True(t, RelatedDomains("MONEY", "FUNCTION"))
}

func TestSemanticCategories(t *testing.T) {
	cats := SemanticCategories("monthly rent payment due by the first day")
	assert.Contains(t, cats, "financial")
	assert.Contains(t, cats, "temporal")
	assert.NotContains(t, cats, "storage")

	assert.Empty(t, SemanticCategories("xyzzy"))
}

func TestJaccardCategories(t *testing.T) {
	a := map[string]struct{}{"financial": {}, "temporal": {}}
	b := map[string]struct{}{"financial": {}}
	assert.InDelta(t, 0.5, JaccardCategories(a, b), 1e-9)
	assert.Equal(t, 0.0, JaccardCategories(nil, nil))
	assert.Equal(t, 1.0, JaccardCategories(a, a))
}

func TestEntityMappingStrength(t *testing.T) {
	// Pattern hit on both sides is strong.
	assert.Equal(t, MappingStrong, EntityMappingStrength("$5,000", "paymentAmount", "STATE_VARIABLE"))
	assert.Equal(t, MappingStrong, EntityMappingStrength("the landlord", "landlordAddress", "STATE_VARIABLE"))

	// Pattern hit against a technical-typed target without a variable hit is
	// partial.
	assert.Equal(t, MappingPartial, EntityMappingStrength("Company A", "xyzzy", "VARIABLE"))

	// No business pattern hit at all.
	assert.Equal(t, MappingNone, EntityMappingStrength("xyzzy", "paymentAmount", "STATE_VARIABLE"))

	// A non-technical target type cannot take a partial.
	assert.Equal(t, MappingNone, EntityMappingStrength("Company A", "xyzzy", "LEGAL_TERM"))
}

func TestRelationMappingStrength(t *testing.T) {
	assert.Equal(t, MappingStrong, RelationMappingStrength("payment", "contains"))
	assert.Equal(t, MappingStrong, RelationMappingStrength("obligation", "validates"))
	assert.Equal(t, MappingNone, RelationMappingStrength("xyzzy", "contains"))
}

func TestCompatibleRelations(t *testing.T) {
	assert.True(t, CompatibleRelations("contains", "has_member"))
	assert.True(t, CompatibleRelations("payment", "transfers"))
	assert.True(t, CompatibleRelations("Contains", "HAS_MEMBER"))
	assert.False(t, CompatibleRelations("payment", "contains"))
}

func TestCriticalCategories(t *testing.T) {
	for _, c := range []string{"PARTY", "FINANCIAL", "LEGAL_OBLIGATION", "TEMPORAL"} {
		assert.True(t, CriticalSourceCategory(c), c)
	}
	assert.False(t, CriticalSourceCategory("LEGAL_TERM"))
	assert.False(t, CriticalSourceCategory("LOCATION"))

	for _, c := range []string{"CONTRACT_DEFINITION", "FUNCTION_DEFINITION", "STATE_STORAGE", "ACCESS_CONTROL"} {
		assert.True(t, CriticalTargetCategory(c), c)
	}
	assert.False(t, CriticalTargetCategory("EVENT_DEFINITION"))

	assert.True(t, CriticalSourceCategory("party"))
}
