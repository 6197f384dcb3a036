package model

import "fmt"

// GraphRole tags which side of a comparison a graph belongs to.
type GraphRole string

const (
	RoleSource GraphRole = "source" // e-contract side
	RoleTarget GraphRole = "target" // smart-contract side
)

const UnknownTag = "UNKNOWN"

// Default confidences applied when upstream extraction omits the field.
const (
	DefaultEntityConfidence       = 1.0
	DefaultRelationshipConfidence = 0.5
)

// EntityRecord is a typed node extracted from either contract representation.
type EntityRecord struct {
	ID         string            `json:"id"`
	Text       string            `json:"text"`
	Type       string            `json:"type"`
	Category   string            `json:"category"`
	Confidence float64           `json:"confidence"`
	Properties map[string]string `json:"properties,omitempty"`
}

// RelationshipRecord is a typed directed edge between two entities of the
// same graph. SourceType/TargetType are denormalized copies of the endpoint
// entity types so matchers can check compatibility without a lookup.
type RelationshipRecord struct {
	ID         string  `json:"id"`
	SourceID   string  `json:"source_id"`
	TargetID   string  `json:"target_id"`
	Relation   string  `json:"relation"`
	Confidence float64 `json:"confidence"`
	SourceType string  `json:"source_type"`
	TargetType string  `json:"target_type"`
}

// KnowledgeGraph holds the typed entities and relationships extracted from one
// contract representation. It is built once by an extractor and treated as a
// read-only snapshot for the duration of any comparison using it.
type KnowledgeGraph struct {
	Role          GraphRole                     `json:"role"`
	Entities      map[string]EntityRecord       `json:"entities"`
	Relationships map[string]RelationshipRecord `json:"relationships"`
	Metadata      map[string]string             `json:"metadata,omitempty"`
}

func NewKnowledgeGraph(role GraphRole) *KnowledgeGraph {
	return &KnowledgeGraph{
		Role:          role,
		Entities:      make(map[string]EntityRecord),
		Relationships: make(map[string]RelationshipRecord),
		Metadata:      make(map[string]string),
	}
}

// AddEntity stores an entity, filling defaults for missing optional fields.
func (g *KnowledgeGraph) AddEntity(e EntityRecord) error {
	if e.ID == "" {
		return fmt.Errorf("entity is missing an id")
	}
	normalizeEntity(&e)
	g.Entities[e.ID] = e
	return nil
}

// AddRelationship stores a relationship. Both endpoints must already exist in
// the graph; endpoint types are denormalized onto the record when absent.
func (g *KnowledgeGraph) AddRelationship(r RelationshipRecord) error {
	if r.ID == "" {
		return fmt.Errorf("relationship is missing an id")
	}
	src, ok := g.Entities[r.SourceID]
	if !ok {
		return fmt.Errorf("relationship %s references unknown source entity %q", r.ID, r.SourceID)
	}
	tgt, ok := g.Entities[r.TargetID]
	if !ok {
		return fmt.Errorf("relationship %s references unknown target entity %q", r.ID, r.TargetID)
	}
	if r.SourceType == "" {
		r.SourceType = src.Type
	}
	if r.TargetType == "" {
		r.TargetType = tgt.Type
	}
	normalizeRelationship(&r)
	g.Relationships[r.ID] = r
	return nil
}

// Normalize fills defaults on every record. Graphs received over the wire
// bypass AddEntity/AddRelationship, so callers normalize before comparing.
func (g *KnowledgeGraph) Normalize() {
	if g.Entities == nil {
		g.Entities = make(map[string]EntityRecord)
	}
	if g.Relationships == nil {
		g.Relationships = make(map[string]RelationshipRecord)
	}
	for id, e := range g.Entities {
		if e.ID == "" {
			e.ID = id
		}
		normalizeEntity(&e)
		g.Entities[id] = e
	}
	for id, r := range g.Relationships {
		if r.ID == "" {
			r.ID = id
		}
		normalizeRelationship(&r)
		g.Relationships[id] = r
	}
}

// Validate reports whether the graph is structurally sound: relationships must
// reference entities present in the same graph.
func (g *KnowledgeGraph) Validate() error {
	for id, r := range g.Relationships {
		if _, ok := g.Entities[r.SourceID]; !ok {
			return fmt.Errorf("relationship %s references unknown source entity %q", id, r.SourceID)
		}
		if _, ok := g.Entities[r.TargetID]; !ok {
			return fmt.Errorf("relationship %s references unknown target entity %q", id, r.TargetID)
		}
	}
	return nil
}

// Neighbors returns the ids of entities directly connected to entityID.
// direction is "in", "out" or "both".
func (g *KnowledgeGraph) Neighbors(entityID, direction string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, r := range g.Relationships {
		if (direction == "out" || direction == "both") && r.SourceID == entityID {
			add(r.TargetID)
		}
		if (direction == "in" || direction == "both") && r.TargetID == entityID {
			add(r.SourceID)
		}
	}
	return out
}

// EntitiesByCategory groups entity ids by their coarse category tag.
func (g *KnowledgeGraph) EntitiesByCategory() map[string][]string {
	buckets := make(map[string][]string)
	for id, e := range g.Entities {
		buckets[e.Category] = append(buckets[e.Category], id)
	}
	return buckets
}

func normalizeEntity(e *EntityRecord) {
	if e.Type == "" {
		e.Type = UnknownTag
	}
	if e.Category == "" {
		e.Category = UnknownTag
	}
	if e.Confidence <= 0 {
		e.Confidence = DefaultEntityConfidence
	}
	e.Confidence = Clamp01(e.Confidence)
}

func normalizeRelationship(r *RelationshipRecord) {
	if r.Relation == "" {
		r.Relation = UnknownTag
	}
	if r.SourceType == "" {
		r.SourceType = UnknownTag
	}
	if r.TargetType == "" {
		r.TargetType = UnknownTag
	}
	if r.Confidence <= 0 {
		r.Confidence = DefaultRelationshipConfidence
	}
	r.Confidence = Clamp01(r.Confidence)
}

// Clamp01 clips v to the [0,1] interval all scores live in.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
