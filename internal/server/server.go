// Package server exposes the comparison engine over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lexbridge/lexbridge/internal/config"
	"github.com/lexbridge/lexbridge/internal/core"
	"github.com/lexbridge/lexbridge/internal/core/model"
	"github.com/lexbridge/lexbridge/internal/driver"
	"github.com/lexbridge/lexbridge/internal/export"
	"github.com/lexbridge/lexbridge/internal/extract"
	"github.com/lexbridge/lexbridge/internal/platform/logger"
	"github.com/lexbridge/lexbridge/internal/store"
)

type Server struct {
	cfg        *config.Config
	comparator *core.Comparator
	reports    store.ComparisonStore
	econtract  *extract.EContractExtractor
	solidity   *extract.SolidityExtractor
	enricher   *extract.Enricher
	sink       *driver.GraphSink
	log        *logger.Logger
}

// New builds the HTTP server. enricher and sink are optional; a nil sink
// skips the graph-database mirror.
func New(cfg *config.Config, log *logger.Logger, enricher *extract.Enricher, sink *driver.GraphSink) *Server {
	if log == nil {
		log = logger.Nop()
	}
	reports := store.NewMemory()
	return &Server{
		cfg:        cfg,
		comparator: core.NewComparator(cfg, log, core.WithStore(reports)),
		reports:    reports,
		econtract:  extract.NewEContractExtractor(),
		solidity:   extract.NewSolidityExtractor(),
		enricher:   enricher,
		sink:       sink,
		log:        log,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	gin.SetMode(s.cfg.Server.Mode)
	r := gin.Default()

	r.GET("/health", s.Health)
	r.POST("/extract", s.Extract)
	r.POST("/compare", s.Compare)
	r.GET("/comparisons", s.ListComparisons)
	r.GET("/comparisons/:id", s.GetComparison)
	r.GET("/comparisons/:id/export", s.ExportComparison)

	return r
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type ExtractRequest struct {
	Kind string `json:"kind" binding:"required"` // "econtract" or "solidity"
	Text string `json:"text" binding:"required"`
}

func (s *Server) Extract(c *gin.Context) {
	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var (
		graph *model.KnowledgeGraph
		err   error
	)
	switch req.Kind {
	case "econtract":
		graph, err = s.econtract.Extract(req.Text)
	case "solidity":
		graph, err = s.solidity.Extract(req.Text)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be 'econtract' or 'solidity'"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	graph = extract.Dedupe(graph)

	if s.enricher != nil {
		if err := s.enricher.Enrich(c.Request.Context(), graph); err != nil {
			// Enrichment is best-effort: the pattern-based tags still stand.
			s.log.Warn("entity enrichment failed", "error", err)
		}
	}

	c.JSON(http.StatusOK, graph)
}

// CompareRequest carries either two pre-built graphs or two raw documents
// (e-contract text and Solidity source) to extract on the fly.
type CompareRequest struct {
	Source        *model.KnowledgeGraph `json:"source"`
	Target        *model.KnowledgeGraph `json:"target"`
	SourceText    string                `json:"source_text"`
	TargetText    string                `json:"target_text"`
	ComparisonID  string                `json:"comparison_id"`
	Bidirectional bool                  `json:"bidirectional"`
}

func (s *Server) Compare(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Source == nil {
		if req.SourceText == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "source graph or source_text is required"})
			return
		}
		graph, err := s.econtract.Extract(req.SourceText)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		graph = extract.Dedupe(graph)
		if s.enricher != nil {
			if err := s.enricher.Enrich(c.Request.Context(), graph); err != nil {
				s.log.Warn("entity enrichment failed", "error", err)
			}
		}
		req.Source = graph
	}
	if req.Target == nil {
		if req.TargetText == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "target graph or target_text is required"})
			return
		}
		graph, err := s.solidity.Extract(req.TargetText)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		req.Target = extract.Dedupe(graph)
	}

	req.Source.Role = model.RoleSource
	req.Target.Role = model.RoleTarget

	if req.Bidirectional {
		report, err := s.comparator.CompareBidirectional(req.Source, req.Target)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.mirrorComparison(c.Request.Context(), report.Forward, req.Source, req.Target)
		c.JSON(http.StatusOK, report)
		return
	}

	report, err := s.comparator.CompareWithID(req.ComparisonID, req.Source, req.Target)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.mirrorComparison(c.Request.Context(), report, req.Source, req.Target)
	c.JSON(http.StatusOK, report)
}

// mirrorComparison pushes the finished comparison into the graph database.
// Best-effort: the report has already been computed and stored in memory.
func (s *Server) mirrorComparison(ctx context.Context, report model.Report, source, target *model.KnowledgeGraph) {
	if s.sink == nil {
		return
	}
	if err := s.sink.SaveComparisonGraphs(ctx, report, source, target); err != nil {
		s.log.Warn("failed to mirror comparison to graph store", "comparison_id", report.ComparisonID, "error", err)
	}
}

func (s *Server) ListComparisons(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"comparison_ids": s.reports.List()})
}

func (s *Server) GetComparison(c *gin.Context) {
	report, err := s.reports.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "comparison not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) ExportComparison(c *gin.Context) {
	report, err := s.reports.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "comparison not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	switch format := c.DefaultQuery("format", "json"); format {
	case "json":
		if err := export.WriteJSON(&buf, report); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "application/json", buf.Bytes())
	case "csv":
		if err := export.WriteCSV(&buf, report); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename="+report.ComparisonID+".csv")
		c.Data(http.StatusOK, "text/csv", buf.Bytes())
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be 'json' or 'csv'"})
	}
}
