// Package extract builds knowledge graphs from raw inputs: natural-language
// e-contract text on the source side and Solidity code on the target side.
// Extraction is pattern-based and deterministic; the optional LLM enricher
// refines the tags afterwards.
package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lexbridge/lexbridge/internal/core/model"
	"github.com/lexbridge/lexbridge/internal/core/ontology"
)

const (
	patternConfidence = 0.85
	domainConfidence  = 0.75
)

type econtractPattern struct {
	re       *regexp.Regexp
	typeTag  string
	category string
}

var econtractPatterns = []econtractPattern{
	{
		// "Acme Corp", "Beta LLC", plus bare "Company A" / "Party B" style names.
		re:       regexp.MustCompile(`\b[A-Z][A-Za-z]*(?: [A-Z][A-Za-z]*)* (?:Corp|Corporation|Inc|LLC|Ltd|Company)\b\.?|\b(?:Company|Party|Contractor|Client|Vendor|Landlord|Tenant|Employer|Employee|Buyer|Seller) [A-Z]\b`),
		typeTag:  ontology.TypeOrganization,
		category: ontology.CategoryParty,
	},
	{
		re:       regexp.MustCompile(`\$\d+(?:,\d{3})*(?:\.\d{2})?|\b\d+(?:,\d{3})*(?:\.\d{2})?\s*(?:dollars?|USD|euros?|EUR|pounds?|GBP)\b`),
		typeTag:  ontology.TypeMoney,
		category: ontology.CategoryFinancial,
	},
	{
		re:       regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b|\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4}\b|\bwithin\s+\d+\s+(?:days?|weeks?|months?|years?)\b`),
		typeTag:  ontology.TypeDate,
		category: ontology.CategoryTemporal,
	},
	{
		re:       regexp.MustCompile(`(?i)\b(?:shall|must|agrees? to|undertakes? to|is required to|is responsible for)\s+\w+(?:\s+\w+){0,5}`),
		typeTag:  ontology.TypeObligation,
		category: ontology.CategoryLegalObligation,
	},
	{
		re:       regexp.MustCompile(`(?i)\b(?:governing law|jurisdiction|arbitration|mediation|indemnification|force majeure|confidentiality)\b`),
		typeTag:  ontology.TypeLegalTerm,
		category: ontology.CategoryLegalTerm,
	},
	{
		re:       regexp.MustCompile(`\b\d+\s+[A-Z][A-Za-z ]+(?:Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Lane|Ln|Drive|Dr)\b`),
		typeTag:  ontology.TypeLocation,
		category: ontology.CategoryLocation,
	},
}

// EContractExtractor turns e-contract text into a source-role knowledge graph.
type EContractExtractor struct{}

func NewEContractExtractor() *EContractExtractor {
	return &EContractExtractor{}
}

func (x *EContractExtractor) Extract(text string) (*model.KnowledgeGraph, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty contract text")
	}

	g := model.NewKnowledgeGraph(model.RoleSource)
	g.Metadata["source"] = "econtract_text"

	type span struct {
		start, end int
		id         string
	}
	var spans []span
	seen := make(map[string]bool)
	nextID := 0

	for _, p := range econtractPatterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			surface := strings.TrimSpace(text[loc[0]:loc[1]])
			key := p.typeTag + "|" + strings.ToLower(surface)
			if seen[key] {
				continue
			}
			seen[key] = true

			id := fmt.Sprintf("entity_%d", nextID)
			nextID++
			if err := g.AddEntity(model.EntityRecord{
				ID:         id,
				Text:       surface,
				Type:       p.typeTag,
				Category:   p.category,
				Confidence: patternConfidence,
			}); err != nil {
				return nil, err
			}
			spans = append(spans, span{start: loc[0], end: loc[1], id: id})
		}
	}

	// Relationships come from sentence-level co-occurrence: two entities in the
	// same sentence are related, with the relation tag derived from their
	// categories.
	relID := 0
	for _, sentence := range sentenceSpans(text) {
		var inSentence []string
		for _, s := range spans {
			if s.start >= sentence[0] && s.end <= sentence[1] {
				inSentence = append(inSentence, s.id)
			}
		}
		for i := 0; i < len(inSentence); i++ {
			for j := i + 1; j < len(inSentence); j++ {
				a, b := g.Entities[inSentence[i]], g.Entities[inSentence[j]]
				if err := g.AddRelationship(model.RelationshipRecord{
					ID:         fmt.Sprintf("rel_%d", relID),
					SourceID:   a.ID,
					TargetID:   b.ID,
					Relation:   relationFor(a.Category, b.Category),
					Confidence: domainConfidence,
				}); err != nil {
					return nil, err
				}
				relID++
			}
		}
	}

	return g, nil
}

func relationFor(a, b string) string {
	switch {
	case a == ontology.CategoryFinancial || b == ontology.CategoryFinancial:
		return "payment"
	case a == ontology.CategoryTemporal || b == ontology.CategoryTemporal:
		return "temporal"
	case a == ontology.CategoryLegalObligation || b == ontology.CategoryLegalObligation:
		return "obligation"
	default:
		return "co_occurrence"
	}
}

func sentenceSpans(text string) [][2]int {
	var spans [][2]int
	start := 0
	for i, r := range text {
		if r == '.' || r == ';' || r == '\n' {
			if i > start {
				spans = append(spans, [2]int{start, i + 1})
			}
			start = i + 1
		}
	}
	if start < len(text) {
		spans = append(spans, [2]int{start, len(text)})
	}
	return spans
}
