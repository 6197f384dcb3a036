package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lexbridge/lexbridge/internal/core/model"
	"github.com/lexbridge/lexbridge/internal/core/ontology"
)

var (
	contractRe = regexp.MustCompile(`(?m)^\s*(?:abstract\s+)?contract\s+(\w+)`)
	functionRe = regexp.MustCompile(`function\s+(\w+)\s*\(([^)]*)\)\s*([^{;]*)`)
	eventRe    = regexp.MustCompile(`event\s+(\w+)\s*\(([^)]*)\)`)
	modifierRe = regexp.MustCompile(`modifier\s+(\w+)`)
	stateVarRe = regexp.MustCompile(`(?m)^\s*(address|uint\d*|int\d*|bool|string|bytes\d*|mapping\s*\([^;]*\))\s+((?:public|private|internal|constant|immutable|payable)\s+)*(\w+)\s*[;=]`)
	emitRe     = regexp.MustCompile(`emit\s+(\w+)\s*\(`)
	paramRe    = regexp.MustCompile(`(\w+(?:\s*\[\])?)\s+(?:memory\s+|calldata\s+|storage\s+)?(\w+)\s*(?:,|$)`)
)

// SolidityExtractor turns Solidity source into a target-role knowledge graph.
// It is a structural pass over declarations, not a compiler: nested contracts
// and assembly blocks are out of scope.
type SolidityExtractor struct{}

func NewSolidityExtractor() *SolidityExtractor {
	return &SolidityExtractor{}
}

func (x *SolidityExtractor) Extract(code string) (*model.KnowledgeGraph, error) {
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("empty contract code")
	}

	g := model.NewKnowledgeGraph(model.RoleTarget)
	g.Metadata["source"] = "solidity_code"

	nextID := 0
	newID := func(kind string) string {
		id := fmt.Sprintf("%s_%d", kind, nextID)
		nextID++
		return id
	}
	relID := 0
	newRelID := func() string {
		id := fmt.Sprintf("rel_%d", relID)
		relID++
		return id
	}

	var contractID string
	if m := contractRe.FindStringSubmatch(code); m != nil {
		contractID = newID("contract")
		if err := g.AddEntity(model.EntityRecord{
			ID:         contractID,
			Text:       m[1],
			Type:       ontology.TypeContract,
			Category:   ontology.CategoryContractDef,
			Confidence: 1.0,
		}); err != nil {
			return nil, err
		}
	}

	contains := func(targetID string) error {
		if contractID == "" {
			return nil
		}
		return g.AddRelationship(model.RelationshipRecord{
			ID:         newRelID(),
			SourceID:   contractID,
			TargetID:   targetID,
			Relation:   "contains",
			Confidence: 1.0,
		})
	}

	for _, m := range stateVarRe.FindAllStringSubmatch(code, -1) {
		id := newID("variable")
		if err := g.AddEntity(model.EntityRecord{
			ID:         id,
			Text:       m[3],
			Type:       ontology.TypeStateVariable,
			Category:   ontology.CategoryStateStorage,
			Confidence: 1.0,
			Properties: map[string]string{"data_type": strings.TrimSpace(m[1])},
		}); err != nil {
			return nil, err
		}
		if err := contains(id); err != nil {
			return nil, err
		}
	}

	type funcSpan struct {
		id    string
		start int
	}
	var funcSpans []funcSpan
	for _, idx := range functionRe.FindAllStringSubmatchIndex(code, -1) {
		name := code[idx[2]:idx[3]]
		params := code[idx[4]:idx[5]]
		signature := code[idx[6]:idx[7]]

		id := newID("function")
		if err := g.AddEntity(model.EntityRecord{
			ID:         id,
			Text:       name,
			Type:       ontology.TypeFunction,
			Category:   ontology.CategoryFunctionDef,
			Confidence: 1.0,
			Properties: map[string]string{"signature": strings.TrimSpace(signature)},
		}); err != nil {
			return nil, err
		}
		if err := contains(id); err != nil {
			return nil, err
		}
		funcSpans = append(funcSpans, funcSpan{id: id, start: idx[0]})

		for _, pm := range paramRe.FindAllStringSubmatch(params, -1) {
			paramID := newID("param")
			if err := g.AddEntity(model.EntityRecord{
				ID:         paramID,
				Text:       pm[2],
				Type:       ontology.TypeParameter,
				Category:   ontology.CategoryParameter,
				Confidence: 1.0,
				Properties: map[string]string{"data_type": strings.TrimSpace(pm[1])},
			}); err != nil {
				return nil, err
			}
			if err := g.AddRelationship(model.RelationshipRecord{
				ID:         newRelID(),
				SourceID:   id,
				TargetID:   paramID,
				Relation:   "has_parameter",
				Confidence: 1.0,
			}); err != nil {
				return nil, err
			}
		}
	}

	eventIDs := make(map[string]string)
	for _, m := range eventRe.FindAllStringSubmatch(code, -1) {
		id := newID("event")
		if err := g.AddEntity(model.EntityRecord{
			ID:         id,
			Text:       m[1],
			Type:       ontology.TypeEvent,
			Category:   ontology.CategoryEventDef,
			Confidence: 1.0,
		}); err != nil {
			return nil, err
		}
		if err := contains(id); err != nil {
			return nil, err
		}
		eventIDs[m[1]] = id
	}

	for _, m := range modifierRe.FindAllStringSubmatch(code, -1) {
		id := newID("modifier")
		if err := g.AddEntity(model.EntityRecord{
			ID:         id,
			Text:       m[1],
			Type:       ontology.TypeModifier,
			Category:   ontology.CategoryAccessControl,
			Confidence: 1.0,
		}); err != nil {
			return nil, err
		}
		if err := contains(id); err != nil {
			return nil, err
		}
	}

	// Each emit statement links its enclosing function to the event.
	for _, em := range emitRe.FindAllStringSubmatchIndex(code, -1) {
		eventID, ok := eventIDs[code[em[2]:em[3]]]
		if !ok {
			continue
		}
		var funcID string
		for _, f := range funcSpans {
			if f.start < em[0] {
				funcID = f.id
			}
		}
		if funcID == "" {
			continue
		}
		if err := g.AddRelationship(model.RelationshipRecord{
			ID:         newRelID(),
			SourceID:   funcID,
			TargetID:   eventID,
			Relation:   "emits",
			Confidence: 1.0,
		}); err != nil {
			return nil, err
		}
	}

	return g, nil
}
