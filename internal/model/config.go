package model

import "time"

// Config is the complete lexdrift configuration. Every heuristic
// threshold the classifier and scorer use lives here with a documented
// default, so tuning is auditable instead of buried in code.
type Config struct {
	HTTP         HTTPConfig        `yaml:"http" json:"http"`
	Concurrency  ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	RateLimiting RateLimitConfig   `yaml:"rate_limiting" json:"rate_limiting"`
	Cache        CacheConfig       `yaml:"cache" json:"cache"`
	Classifier   ClassifierConfig  `yaml:"classifier" json:"classifier"`
	Impact       ImpactConfig      `yaml:"impact" json:"impact"`
	Ground       GroundConfig      `yaml:"ground" json:"ground"`
	LLM          LLMConfig         `yaml:"llm" json:"llm"`
	Output       OutputConfig      `yaml:"output" json:"output"`
}

// HTTPConfig controls the live corroboration fetcher.
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent     string        `yaml:"user_agent" json:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" json:"max_body_bytes"`
	MaxRetries    int           `yaml:"max_retries" json:"max_retries"`
	InsecureTLS   bool          `yaml:"insecure_tls" json:"insecure_tls"`
	HTTPProxy     string        `yaml:"http_proxy,omitempty" json:"http_proxy,omitempty"`
	HTTPSProxy    string        `yaml:"https_proxy,omitempty" json:"https_proxy,omitempty"`
	NoProxy       string        `yaml:"no_proxy,omitempty" json:"no_proxy,omitempty"`
	RespectRobots bool          `yaml:"respect_robots" json:"respect_robots"`

	// DisableLiveFetch skips corroboration entirely: every drifted pair
	// stays mixed_or_inconclusive. For offline runs.
	DisableLiveFetch bool `yaml:"disable_live_fetch" json:"disable_live_fetch"`
}

// ConcurrencyConfig bounds the per-pair worker pool. Fetching the live
// page is the only blocking step, so the bound tracks network capacity.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" json:"workers"`
}

// RateLimitConfig bounds request rate per target domain.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" json:"burst_size"`
}

// CacheConfig controls live-page caching. Memory dedups repeated
// fetches of the same origin URL within a run; disk optionally carries
// pages across runs.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" json:"enabled"`
	Dir     string        `yaml:"dir,omitempty" json:"dir,omitempty"`
	TTL     time.Duration `yaml:"ttl" json:"ttl"`
}

// ClassifierConfig holds the corroboration hit-rate cutoffs. The band
// between LowHitRate and HighHitRate is deliberately wide: anything in
// it stays mixed_or_inconclusive rather than asserting a cause without
// clean evidence.
type ClassifierConfig struct {
	HighHitRate float64 `yaml:"high_hit_rate" json:"high_hit_rate"`
	LowHitRate  float64 `yaml:"low_hit_rate" json:"low_hit_rate"`
}

// ImpactConfig holds the impact scorer's weight table and bucket
// thresholds.
type ImpactConfig struct {
	FamilyWeight    int `yaml:"family_weight" json:"family_weight"`       // Points per matched keyword family
	MagnitudeDiv    int `yaml:"magnitude_div" json:"magnitude_div"`       // Changed lines per magnitude point
	MagnitudeCap    int `yaml:"magnitude_cap" json:"magnitude_cap"`       // Max magnitude points
	HighThreshold   int `yaml:"high_threshold" json:"high_threshold"`     // Score >= this is HIGH
	MediumThreshold int `yaml:"medium_threshold" json:"medium_threshold"` // Score >= this is MEDIUM
}

// GroundConfig tunes the groundedness checker's cheap lexical pass.
type GroundConfig struct {
	SupportOverlap      float64 `yaml:"support_overlap" json:"support_overlap"`           // Overlap >= this supports the claim
	InconclusiveOverlap float64 `yaml:"inconclusive_overlap" json:"inconclusive_overlap"` // Overlap >= this escalates instead of rejecting
}

// LLMConfig configures the optional semantic-entailment fallback.
type LLMConfig struct {
	Provider  string `yaml:"provider,omitempty" json:"provider,omitempty"` // "openai", "anthropic", "ollama", "" disables
	Model     string `yaml:"model,omitempty" json:"model,omitempty"`
	APIKey    string `yaml:"-" json:"-"` // From environment only, never serialized
	BaseURL   string `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	Timeout   int    `yaml:"timeout" json:"timeout"` // Seconds
	MaxTokens int    `yaml:"max_tokens" json:"max_tokens"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" json:"verbose"`
	IncludeFooter bool `yaml:"include_footer" json:"include_footer"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:       20 * time.Second,
			UserAgent:     "lexdrift/0.1 (+https://github.com/lexdrift/lexdrift)",
			MaxBodyBytes:  2_000_000,
			MaxRetries:    2,
			RespectRobots: true,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 8,
		},
		RateLimiting: RateLimitConfig{
			RequestsPerSecond: 2.0,
			BurstSize:         5,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     1 * time.Hour,
		},
		Classifier: ClassifierConfig{
			HighHitRate: 0.6,
			LowHitRate:  0.2,
		},
		Impact: ImpactConfig{
			FamilyWeight:    3,
			MagnitudeDiv:    5,
			MagnitudeCap:    4,
			HighThreshold:   6,
			MediumThreshold: 3,
		},
		Ground: GroundConfig{
			SupportOverlap:      0.6,
			InconclusiveOverlap: 0.3,
		},
		LLM: LLMConfig{
			Timeout:   30,
			MaxTokens: 300,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
