// Package core wires the matchers, discrepancy calculator and compliance
// assessor into the comparison pipeline.
package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lexbridge/lexbridge/internal/config"
	"github.com/lexbridge/lexbridge/internal/core/compliance"
	"github.com/lexbridge/lexbridge/internal/core/discrepancy"
	"github.com/lexbridge/lexbridge/internal/core/match"
	"github.com/lexbridge/lexbridge/internal/core/model"
	"github.com/lexbridge/lexbridge/internal/platform/logger"
	"github.com/lexbridge/lexbridge/internal/store"
)

// Comparator runs the full pipeline: entity matching, relationship matching,
// discrepancy detection, compliance assessment and recommendations. A single
// Comparator is safe for concurrent Compare calls on distinct graph pairs;
// each call produces a fresh report. Compare normalizes its inputs in place
// (filling default confidences and UNKNOWN tags) before matching, so callers
// sharing one graph across goroutines must normalize it up front.
type Comparator struct {
	cfg       *config.Config
	entities  *match.EntityMatcher
	relations *match.RelationshipMatcher
	disc      *discrepancy.Calculator
	assessor  *compliance.Assessor
	reports   store.ComparisonStore
	log       *logger.Logger
}

// Option configures a Comparator.
type Option func(*Comparator)

// WithStore makes the comparator persist each finished report.
func WithStore(s store.ComparisonStore) Option {
	return func(c *Comparator) { c.reports = s }
}

func NewComparator(cfg *config.Config, log *logger.Logger, opts ...Option) *Comparator {
	if log == nil {
		log = logger.Nop()
	}
	c := &Comparator{
		cfg:       cfg,
		entities:  match.NewEntityMatcher(cfg.Matching, log),
		relations: match.NewRelationshipMatcher(cfg.Matching, log),
		disc:      discrepancy.NewCalculator(),
		assessor:  compliance.NewAssessor(cfg.Compliance),
		log:       log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compare runs the pipeline from the source graph toward the target graph.
// Malformed graphs (dangling relationship endpoints, missing role) are
// rejected before any matching happens.
func (c *Comparator) Compare(source, target *model.KnowledgeGraph) (model.Report, error) {
	return c.CompareWithID("", source, target)
}

// CompareWithID is Compare with a caller-chosen comparison id. An empty id
// gets a generated uuid.
func (c *Comparator) CompareWithID(id string, source, target *model.KnowledgeGraph) (model.Report, error) {
	if source == nil || target == nil {
		return model.Report{}, fmt.Errorf("both graphs are required")
	}
	source.Normalize()
	target.Normalize()
	if err := source.Validate(); err != nil {
		return model.Report{}, fmt.Errorf("invalid source graph: %w", err)
	}
	if err := target.Validate(); err != nil {
		return model.Report{}, fmt.Errorf("invalid target graph: %w", err)
	}

	started := time.Now()
	entityMatches := c.entities.Match(source.Entities, target.Entities)
	relationMatches := c.relations.Match(source.Relationships, target.Relationships)

	entityDisc := c.disc.Entities(source, target, entityMatches)
	relationDisc := c.disc.Relationships(source, target, relationMatches)

	assessment := c.assessor.Assess(entityMatches, relationMatches, entityDisc, relationDisc)
	recommendations := compliance.Recommend(c.cfg.Compliance, assessment, entityMatches, entityDisc, relationDisc)

	if id == "" {
		id = uuid.NewString()
	}
	report := model.Report{
		ComparisonID:              id,
		GeneratedAt:               time.Now().UTC(),
		EntityMatches:             entityMatches,
		RelationshipMatches:       relationMatches,
		EntityDiscrepancies:       entityDisc,
		RelationshipDiscrepancies: relationDisc,
		Compliance:                assessment,
		Recommendations:           recommendations,
	}

	c.log.Info("comparison finished",
		"comparison_id", report.ComparisonID,
		"entity_matches", len(entityMatches),
		"relationship_matches", len(relationMatches),
		"compliance_score", assessment.ComplianceScore,
		"level", assessment.ComplianceLevel,
		"took", time.Since(started),
	)

	if c.reports != nil {
		if err := c.reports.Save(report); err != nil {
			return model.Report{}, fmt.Errorf("failed to save report: %w", err)
		}
	}
	return report, nil
}

// CompareBidirectional runs the pipeline in both directions and reports the
// symmetric alignment scores, the mean of the two directional coverages.
func (c *Comparator) CompareBidirectional(source, target *model.KnowledgeGraph) (model.BidirectionalReport, error) {
	forward, err := c.Compare(source, target)
	if err != nil {
		return model.BidirectionalReport{}, err
	}
	reverse, err := c.Compare(target, source)
	if err != nil {
		return model.BidirectionalReport{}, err
	}
	return model.BidirectionalReport{
		Forward: forward,
		Reverse: reverse,
		EntityAlignmentScore: (forward.EntityDiscrepancies.CoverageSource +
			reverse.EntityDiscrepancies.CoverageSource) / 2,
		RelationshipAlignmentScore: (forward.RelationshipDiscrepancies.CoverageSource +
			reverse.RelationshipDiscrepancies.CoverageSource) / 2,
	}, nil
}
