package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// EntityWeights are the scoring weights of the entity matcher. The composite
// score is capped at 1.0 after all terms are summed.
type EntityWeights struct {
	BusinessMapping float64 `toml:"business_mapping"`
	TypeExact       float64 `toml:"type_exact"`
	TypeRelated     float64 `toml:"type_related"`
	Text            float64 `toml:"text"`
	Semantic        float64 `toml:"semantic"`
	LabelBonus      float64 `toml:"label_bonus"`
	Threshold       float64 `toml:"threshold"`
	// Match confidence = ConfidenceSimilarity*score + ConfidenceExtraction*avg(record confidences).
	ConfidenceSimilarity float64 `toml:"confidence_similarity"`
	ConfidenceExtraction float64 `toml:"confidence_extraction"`
}

// RelationWeights are the scoring weights of the relationship matcher.
type RelationWeights struct {
	BusinessMapping    float64 `toml:"business_mapping"`
	RelationEqual      float64 `toml:"relation_equal"`
	RelationCompatible float64 `toml:"relation_compatible"`
	// Per-endpoint contribution, scaled by the endpoint compatibility grade.
	EndpointEach         float64 `toml:"endpoint_each"`
	EndpointExactScale   float64 `toml:"endpoint_exact_scale"`
	EndpointCompatScale  float64 `toml:"endpoint_compat_scale"`
	EndpointRelatedScale float64 `toml:"endpoint_related_scale"`
	Semantic             float64 `toml:"semantic"`
	Confidence           float64 `toml:"confidence"`
	Threshold            float64 `toml:"threshold"`
	ConfidenceSimilarity float64 `toml:"confidence_similarity"`
	ConfidenceExtraction float64 `toml:"confidence_extraction"`
}

// BusinessMappingScores grade how strongly a business→technical pattern table
// hit contributes before the BusinessMapping weight is applied.
type BusinessMappingScores struct {
	Strong  float64 `toml:"strong"`
	Partial float64 `toml:"partial"`
}

// ComplianceConfig carries the aggregate weights and the level cutoffs
// (inclusive lower bounds).
type ComplianceConfig struct {
	EntityMatchWeight       float64 `toml:"entity_match_weight"`
	RelationMatchWeight     float64 `toml:"relation_match_weight"`
	EntityCoverageWeight    float64 `toml:"entity_coverage_weight"`
	RelationCoverageWeight  float64 `toml:"relation_coverage_weight"`
	ExcellentMin            float64 `toml:"excellent_min"`
	GoodMin                 float64 `toml:"good_min"`
	FairMin                 float64 `toml:"fair_min"`
	CompliantMin            float64 `toml:"compliant_min"`
	GapCoverageMin          float64 `toml:"gap_coverage_min"`
	LowConfidenceMax        float64 `toml:"low_confidence_max"`
	ReviewOverallSimilarity float64 `toml:"review_overall_similarity"`
}

// MatchingConfig bundles every tunable of the comparison engine so the scoring
// logic itself carries no inlined literals.
type MatchingConfig struct {
	Entity   EntityWeights         `toml:"entity"`
	Relation RelationWeights       `toml:"relation"`
	Mapping  BusinessMappingScores `toml:"mapping"`
}

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type ServerConfig struct {
	Port string `toml:"port"`
	Mode string `toml:"mode"`
}

// EnrichmentConfig holds the prompt template used by the optional LLM entity
// enricher. The template receives the entity listing as its single argument.
type EnrichmentConfig struct {
	Enabled bool   `toml:"enabled"`
	Prompt  string `toml:"prompt"`
}

type Config struct {
	Server     ServerConfig     `toml:"server"`
	Matching   MatchingConfig   `toml:"matching"`
	Compliance ComplianceConfig `toml:"compliance"`
	LLM        LLMConfig        `toml:"llm"`
	Memgraph   MemgraphConfig   `toml:"memgraph"`
	Enrichment EnrichmentConfig `toml:"enrichment"`
}

// Default returns the engine's reference tuning. The matching weights and
// thresholds are the calibrated values the scoring model was validated with.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080", Mode: "debug"},
		Matching: MatchingConfig{
			Entity: EntityWeights{
				BusinessMapping:      0.5,
				TypeExact:            0.3,
				TypeRelated:          0.2,
				Text:                 0.15,
				Semantic:             0.25,
				LabelBonus:           0.1,
				Threshold:            0.25,
				ConfidenceSimilarity: 0.7,
				ConfidenceExtraction: 0.3,
			},
			Relation: RelationWeights{
				BusinessMapping:      0.4,
				RelationEqual:        0.3,
				RelationCompatible:   0.2,
				EndpointEach:         0.1,
				EndpointExactScale:   1.0,
				EndpointCompatScale:  0.6,
				EndpointRelatedScale: 0.3,
				Semantic:             0.15,
				Confidence:           0.05,
				Threshold:            0.2,
				ConfidenceSimilarity: 0.8,
				ConfidenceExtraction: 0.2,
			},
			Mapping: BusinessMappingScores{
				Strong:  0.9,
				Partial: 0.7,
			},
		},
		Compliance: ComplianceConfig{
			EntityMatchWeight:       0.3,
			RelationMatchWeight:     0.2,
			EntityCoverageWeight:    0.3,
			RelationCoverageWeight:  0.2,
			ExcellentMin:            0.9,
			GoodMin:                 0.7,
			FairMin:                 0.5,
			CompliantMin:            0.7,
			GapCoverageMin:          0.5,
			LowConfidenceMax:        0.6,
			ReviewOverallSimilarity: 0.7,
		},
		Enrichment: EnrichmentConfig{
			Enabled: false,
			Prompt: "Classify each contract entity below into one of: PERSON, ORGANIZATION, MONEY, DATE, OBLIGATION, LOCATION, LEGAL_TERM.\n" +
				"Return a JSON object {\"entities\": [{\"id\": \"...\", \"type\": \"...\", \"category\": \"...\"}]}.\n\n%s",
		},
	}
}

// Load reads a TOML config file over the defaults, so partial files only
// override what they mention.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}
