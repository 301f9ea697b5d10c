package model

import "time"

// Config holds the complete process configuration
type Config struct {
	TrustedSites []string          `yaml:"trusted_sites" mapstructure:"trusted_sites"`
	Aggregation  AggregationConfig `yaml:"aggregation" mapstructure:"aggregation"`
	Extraction   ExtractionConfig  `yaml:"extraction" mapstructure:"extraction"`
	Retrieval    RetrievalConfig   `yaml:"retrieval" mapstructure:"retrieval"`
	Rerank       RerankConfig      `yaml:"rerank" mapstructure:"rerank"`
	Stance       StanceConfig      `yaml:"stance" mapstructure:"stance"`
	Cache        CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Search       SearchConfig      `yaml:"search" mapstructure:"search"`
	HTTP         HTTPConfig        `yaml:"http" mapstructure:"http"`
	Concurrency  ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Server       ServerConfig      `yaml:"server" mapstructure:"server"`
}

// AggregationConfig maps the article score to a credibility band
type AggregationConfig struct {
	HighMin float64 `yaml:"high_min" mapstructure:"high_min"` // scores >= HighMin -> High
	MedMin  float64 `yaml:"med_min" mapstructure:"med_min"`   // scores in [MedMin, HighMin) -> Medium
}

// ExtractionConfig controls claim extraction
type ExtractionConfig struct {
	MaxClaims            int            `yaml:"max_claims" mapstructure:"max_claims"`
	MinTokens            int            `yaml:"min_tokens" mapstructure:"min_tokens"`
	MaxTokens            int            `yaml:"max_tokens" mapstructure:"max_tokens"`
	RequireEntityOrDigit bool           `yaml:"require_entity_or_digit" mapstructure:"require_entity_or_digit"`
	Gate                 GateStrategy   `yaml:"gate" mapstructure:"gate"`
	Salience             SalienceScheme `yaml:"salience" mapstructure:"salience"`
}

// RetrievalConfig controls evidence retrieval breadth and depth
type RetrievalConfig struct {
	TopKDocs     int `yaml:"top_k_docs" mapstructure:"top_k_docs"`         // documents fetched per claim
	TopKSnippets int `yaml:"top_k_snippets" mapstructure:"top_k_snippets"` // snippets kept per claim
	TimeoutSec   int `yaml:"timeout_s" mapstructure:"timeout_s"`           // per search/fetch call
}

// RerankConfig holds knobs for the snippet re-ranker
type RerankConfig struct {
	UseEmbeddings bool `yaml:"use_embeddings" mapstructure:"use_embeddings"`
	TopKFinal     int  `yaml:"top_k_final" mapstructure:"top_k_final"`
}

// StanceConfig selects and tunes the stance classifier backend
type StanceConfig struct {
	Provider      string  `yaml:"provider" mapstructure:"provider"` // "", "openai"
	Model         string  `yaml:"model" mapstructure:"model"`
	APIKey        string  `yaml:"-" mapstructure:"-"` // from environment only
	MinConfidence float64 `yaml:"min_confidence" mapstructure:"min_confidence"`
	TimeoutSec    int     `yaml:"timeout_s" mapstructure:"timeout_s"`
}

// CacheConfig controls the URL result cache
type CacheConfig struct {
	Enabled    bool `yaml:"enabled" mapstructure:"enabled"`
	TTLSeconds int  `yaml:"ttl_seconds" mapstructure:"ttl_seconds"`
	MaxEntries int  `yaml:"max_entries" mapstructure:"max_entries"`
}

// SearchConfig configures the web search client
type SearchConfig struct {
	APIKey   string `yaml:"-" mapstructure:"-"` // from environment only
	EngineID string `yaml:"engine_id" mapstructure:"engine_id"`
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
}

// HTTPConfig configures outbound page fetching
type HTTPConfig struct {
	UserAgent     string `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64  `yaml:"max_bytes" mapstructure:"max_bytes"`
	CheckRobots   bool   `yaml:"check_robots" mapstructure:"check_robots"`
	RatePerDomain float64 `yaml:"rate_per_domain" mapstructure:"rate_per_domain"` // requests/sec
	InsecureTLS   bool   `yaml:"insecure_tls" mapstructure:"insecure_tls"` // skip certificate verification
	HTTPProxy     string `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy    string `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy       string `yaml:"no_proxy" mapstructure:"no_proxy"`
}

// ConcurrencyConfig bounds the worker pools
type ConcurrencyConfig struct {
	ClaimWorkers int `yaml:"claim_workers" mapstructure:"claim_workers"` // claims evaluated in parallel
	FetchWorkers int `yaml:"fetch_workers" mapstructure:"fetch_workers"` // URL fetches in flight per claim
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr          string   `yaml:"addr" mapstructure:"addr"`
	MinTextLength int      `yaml:"min_text_length" mapstructure:"min_text_length"`
	MaxClaimsCap  int      `yaml:"max_claims_cap" mapstructure:"max_claims_cap"`
	AllowOrigins  []string `yaml:"allow_origins" mapstructure:"allow_origins"`
	DeadlineSec   int      `yaml:"deadline_s" mapstructure:"deadline_s"` // end-to-end per request
}

// RetrievalTimeout returns the per-call network timeout as a duration
func (c RetrievalConfig) RetrievalTimeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// TTL returns the cache entry lifetime as a duration
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		TrustedSites: DefaultTrustedSites(),
		Aggregation: AggregationConfig{
			HighMin: 0.75,
			MedMin:  0.55,
		},
		Extraction: ExtractionConfig{
			MaxClaims:            12,
			MinTokens:            8,
			MaxTokens:            40,
			RequireEntityOrDigit: true,
			Gate:                 GateLexical,
			Salience:             SalienceWeighted,
		},
		Retrieval: RetrievalConfig{
			TopKDocs:     5,
			TopKSnippets: 3,
			TimeoutSec:   8,
		},
		Rerank: RerankConfig{
			UseEmbeddings: false,
			TopKFinal:     2,
		},
		Stance: StanceConfig{
			Provider:      "",
			Model:         "gpt-4o-mini",
			MinConfidence: 0.6,
			TimeoutSec:    30,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: 3600,
			MaxEntries: 500,
		},
		Search: SearchConfig{
			Endpoint: "https://www.googleapis.com/customsearch/v1",
		},
		HTTP: HTTPConfig{
			UserAgent:     "Veritas/0.1 (+https://github.com/veritas-checks/veritas)",
			MaxBodyBytes:  2_000_000,
			CheckRobots:   true,
			RatePerDomain: 2,
		},
		Concurrency: ConcurrencyConfig{
			ClaimWorkers: 4,
			FetchWorkers: 3,
		},
		Server: ServerConfig{
			Addr:          ":8000",
			MinTextLength: 200,
			MaxClaimsCap:  50,
			AllowOrigins:  []string{"*"},
			DeadlineSec:   60,
		},
	}
}

// DefaultTrustedSites is the allowlist of hosts considered reliable enough
// to supply evidence. Matching is by host substring.
func DefaultTrustedSites() []string {
	return []string{
		// General news
		"apnews.com",
		"reuters.com",
		"bbc.com",
		"npr.org",

		// Fact-checking
		"snopes.com",
		"politifact.com",
		"factcheck.org",

		// Research and reference
		"pewresearch.org",
		"propublica.org",
		"theconversation.com",

		// Major international news
		"economist.com",
		"aljazeera.com",
		"dw.com",

		// Science and health
		"nature.com",
		"science.org",
		"nih.gov",
		"cdc.gov",

		// Data and policy
		"worldbank.org",
		"oecd.org",
		"un.org",
		"data.un.org",
		"undp.org",
		"crsreports.congress.gov",

		// Investigative and nonprofit
		"publicintegrity.org",
		"icij.org",

		// U.S. government
		"usa.gov",
		"data.gov",
		"congress.gov",
		"nasa.gov",
		"noaa.gov",
		"usgs.gov",
		"nsf.gov",
		"fda.gov",
		"healthdata.gov",
		"bea.gov",
		"bls.gov",
		"census.gov",
		"federalreserve.gov",
		"supremecourt.gov",
		"justice.gov",
		"state.gov",
		"defense.gov",
		"cia.gov",
	}
}
