package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/KWARC/llamapun/internal/c14n"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Rules
	RulesPath  string
	MatchRules []string

	// Normalization and hashing
	DNMProfile     string
	DNMOptionsPath string
	C14NAlgorithm  string
	FormulaXPath   string

	// Formula index; empty means in-memory
	IndexPath string

	// Annotator; empty URL selects the built-in tagger
	AnnotatorURL     string
	AnnotatorAPIKey  string
	AnnotatorTimeout time.Duration

	// Result sink; empty URL disables publishing
	SinkURL    string
	SinkAPIKey string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Segmentation
	MaxSentenceTokens int

	// Job state
	JobTTL time.Duration

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("LLAMAPUN_API_KEY"),

		RulesPath:  os.Getenv("RULES_PATH"),
		MatchRules: envList("MATCH_RULES"),

		DNMProfile:     envOr("DNM_PROFILE", "math"),
		DNMOptionsPath: os.Getenv("DNM_OPTIONS_PATH"),
		C14NAlgorithm:  envOr("C14N_ALGORITHM", c14n.BLAKE3),
		FormulaXPath:   envOr("FORMULA_XPATH", "//*[local-name()='math']"),

		IndexPath: os.Getenv("INDEX_PATH"),

		AnnotatorURL:     os.Getenv("ANNOTATOR_URL"),
		AnnotatorAPIKey:  os.Getenv("ANNOTATOR_API_KEY"),
		AnnotatorTimeout: envDuration("ANNOTATOR_TIMEOUT", 30*time.Second),

		SinkURL:    os.Getenv("SINK_URL"),
		SinkAPIKey: os.Getenv("SINK_API_KEY"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		MaxSentenceTokens: envInt("MAX_SENTENCE_TOKENS", 200),

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.MaxSentenceTokens <= 0 {
		cfg.MaxSentenceTokens = 200
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.AnnotatorTimeout <= 0 {
		cfg.AnnotatorTimeout = 30 * time.Second
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("LLAMAPUN_API_KEY is required")
	}
	if c.RulesPath == "" {
		return fmt.Errorf("RULES_PATH is required")
	}
	switch c.DNMProfile {
	case "default", "math":
	default:
		return fmt.Errorf("DNM_PROFILE must be default or math, got %q", c.DNMProfile)
	}
	switch c.C14NAlgorithm {
	case c14n.BLAKE3, c14n.SHA256:
	default:
		return fmt.Errorf("C14N_ALGORITHM must be %s or %s, got %q", c14n.BLAKE3, c14n.SHA256, c.C14NAlgorithm)
	}
	if c.AnnotatorURL != "" && c.AnnotatorAPIKey == "" {
		return fmt.Errorf("ANNOTATOR_API_KEY is required when ANNOTATOR_URL is set")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envList splits a comma-separated variable, dropping blanks.
func envList(key string) []string {
	var out []string
	for _, s := range strings.Split(os.Getenv(key), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
