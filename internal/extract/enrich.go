package extract

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/lexbridge/lexbridge/internal/core/common"
	"github.com/lexbridge/lexbridge/internal/core/model"
	"github.com/lexbridge/lexbridge/internal/llm"
	"github.com/lexbridge/lexbridge/internal/platform/logger"
)

// Enricher asks an LLM to reclassify extracted entities. It only updates the
// type and category tags of entities that already exist; the model cannot add
// or remove graph elements.
type Enricher struct {
	llm    llm.LLMClient
	prompt string
	log    *logger.Logger
}

func NewEnricher(client llm.LLMClient, prompt string, log *logger.Logger) *Enricher {
	if log == nil {
		log = logger.Nop()
	}
	return &Enricher{llm: client, prompt: prompt, log: log}
}

type enrichmentResult struct {
	Entities []struct {
		ID       string `json:"id"`
		Type     string `json:"type"`
		Category string `json:"category"`
	} `json:"entities"`
}

func (e *Enricher) Enrich(ctx context.Context, g *model.KnowledgeGraph) error {
	if e.llm == nil || len(g.Entities) == 0 {
		return nil
	}

	prompt := fmt.Sprintf(e.prompt, serializeEntities(g))
	response, err := e.llm.Generate(ctx, prompt)
	if err != nil {
		return fmt.Errorf("enrichment generation failed: %w", err)
	}

	result, err := common.ParseJSON[enrichmentResult](response)
	if err != nil {
		return fmt.Errorf("enrichment response: %w", err)
	}

	for _, u := range result.Entities {
		entity, ok := g.Entities[u.ID]
		if !ok {
			e.log.Warn("enrichment referenced unknown entity", "id", u.ID)
			continue
		}
		if u.Type != "" {
			entity.Type = strings.ToUpper(u.Type)
		}
		if u.Category != "" {
			entity.Category = strings.ToUpper(u.Category)
		}
		g.Entities[u.ID] = entity
	}
	return nil
}

func serializeEntities(g *model.KnowledgeGraph) string {
	ids := make([]string, 0, len(g.Entities))
	for id := range g.Entities {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var b strings.Builder
	for _, id := range ids {
		e := g.Entities[id]
		fmt.Fprintf(&b, "- id: %s, text: %q, type: %s, category: %s\n", e.ID, e.Text, e.Type, e.Category)
	}
	return b.String()
}
