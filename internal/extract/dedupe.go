package extract

import (
	"sort"
	"strings"

	"github.com/lexbridge/lexbridge/internal/core/model"
)

// Dedupe collapses entities that share a normalized (text, type) key, keeping
// the highest-confidence record, and remaps relationship endpoints onto the
// survivors. Relationships made self-referential or redundant by the merge are
// dropped.
func Dedupe(g *model.KnowledgeGraph) *model.KnowledgeGraph {
	out := model.NewKnowledgeGraph(g.Role)
	for k, v := range g.Metadata {
		out.Metadata[k] = v
	}

	remap := make(map[string]string, len(g.Entities))
	byKey := make(map[string]string)

	ids := make([]string, 0, len(g.Entities))
	for id := range g.Entities {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		e := g.Entities[id]
		key := dedupeKey(e)
		if survivorID, ok := byKey[key]; ok {
			remap[id] = survivorID
			if e.Confidence > out.Entities[survivorID].Confidence {
				merged := e
				merged.ID = survivorID
				out.Entities[survivorID] = merged
			}
			continue
		}
		byKey[key] = id
		remap[id] = id
		out.Entities[id] = e
	}

	relIDs := make([]string, 0, len(g.Relationships))
	for id := range g.Relationships {
		relIDs = append(relIDs, id)
	}
	sort.Strings(relIDs)

	seen := make(map[string]bool)
	for _, id := range relIDs {
		r := g.Relationships[id]
		r.SourceID = remap[r.SourceID]
		r.TargetID = remap[r.TargetID]
		if r.SourceID == r.TargetID {
			continue
		}
		edgeKey := r.SourceID + "|" + strings.ToLower(r.Relation) + "|" + r.TargetID
		if seen[edgeKey] {
			continue
		}
		seen[edgeKey] = true
		out.Relationships[r.ID] = r
	}

	out.Normalize()
	return out
}

func dedupeKey(e model.EntityRecord) string {
	text := strings.ToLower(strings.TrimSpace(e.Text))
	return strings.ToUpper(e.Type) + "|" + text
}
