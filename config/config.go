package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds the application's configuration. All retrieval tuning
// constants live here so the response policy has one source of truth.
type Config struct {
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	KnowledgeBasePath string `mapstructure:"KNOWLEDGE_BASE_PATH"`

	// Response policy thresholds over the fused score.
	HighConfidence float64 `mapstructure:"HIGH_CONFIDENCE"`
	MidConfidence  float64 `mapstructure:"MID_CONFIDENCE"`

	// Fuzzy keyword-pool fallback.
	FuzzyEnabled         bool    `mapstructure:"FUZZY_ENABLED"`
	FuzzySimilarityFloor float64 `mapstructure:"FUZZY_SIMILARITY_FLOOR"`

	// Score fusion. Statistical similarities live on a 0-1 scale and are
	// rescaled by StatisticalScale before fusion with keyword scores.
	KeywordWeight     float64 `mapstructure:"KEYWORD_WEIGHT"`
	StatisticalWeight float64 `mapstructure:"STATISTICAL_WEIGHT"`
	StatisticalScale  float64 `mapstructure:"STATISTICAL_SCALE"`

	// Term-weight model blend and noise floor.
	LemmaModelWeight float64 `mapstructure:"LEMMA_MODEL_WEIGHT"`
	RawModelWeight   float64 `mapstructure:"RAW_MODEL_WEIGHT"`
	SimilarityFloor  float64 `mapstructure:"SIMILARITY_FLOOR"`

	// Index vocabulary caps.
	LemmaVocabularyLimit int `mapstructure:"LEMMA_VOCABULARY_LIMIT"`
	RawVocabularyLimit   int `mapstructure:"RAW_VOCABULARY_LIMIT"`

	// Candidate list sizes.
	TopK           int `mapstructure:"TOP_K"`
	CandidateLimit int `mapstructure:"CANDIDATE_LIMIT"`

	// Session memory.
	HistoryLength      int           `mapstructure:"HISTORY_LENGTH"`
	SessionIdleLimit   time.Duration `mapstructure:"INACTIVITY_LIMIT_HOURS"`
	SweepInterval      time.Duration `mapstructure:"SWEEP_INTERVAL_MINUTES"`
	ShortQuestionRunes int           `mapstructure:"SHORT_QUESTION_RUNES"`

	// Normalizer lemma cache capacity.
	LemmaCacheSize int `mapstructure:"LEMMA_CACHE_SIZE"`
}

func Load(logger *zap.Logger) *Config {
	var config Config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	// Set default values
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("KNOWLEDGE_BASE_PATH", "knowledge.json")
	viper.SetDefault("HIGH_CONFIDENCE", 3.5)
	viper.SetDefault("MID_CONFIDENCE", 1.5)
	viper.SetDefault("FUZZY_ENABLED", true)
	viper.SetDefault("FUZZY_SIMILARITY_FLOOR", 0.70)
	viper.SetDefault("KEYWORD_WEIGHT", 0.6)
	viper.SetDefault("STATISTICAL_WEIGHT", 0.4)
	viper.SetDefault("STATISTICAL_SCALE", 50)
	viper.SetDefault("LEMMA_MODEL_WEIGHT", 0.7)
	viper.SetDefault("RAW_MODEL_WEIGHT", 0.3)
	viper.SetDefault("SIMILARITY_FLOOR", 0.15)
	viper.SetDefault("LEMMA_VOCABULARY_LIMIT", 3000)
	viper.SetDefault("RAW_VOCABULARY_LIMIT", 2000)
	viper.SetDefault("TOP_K", 3)
	viper.SetDefault("CANDIDATE_LIMIT", 5)
	viper.SetDefault("HISTORY_LENGTH", 5)
	viper.SetDefault("INACTIVITY_LIMIT_HOURS", 24)
	viper.SetDefault("SWEEP_INTERVAL_MINUTES", 5)
	viper.SetDefault("SHORT_QUESTION_RUNES", 20)
	viper.SetDefault("LEMMA_CACHE_SIZE", 4096)

	if err := viper.ReadInConfig(); err != nil {
		if logger != nil {
			logger.Warn("Could not read config file, using defaults/env vars", zap.Error(err))
		}
	}

	if err := viper.Unmarshal(&config); err != nil {
		// Config unmarshaling is critical - fail fast during bootstrap
		if logger != nil {
			logger.Fatal("Unable to decode config into struct", zap.Error(err))
		} else {
			fmt.Fprintf(os.Stderr, "FATAL: Unable to decode config into struct: %v\n", err)
			os.Exit(1)
		}
	}

	// Convert hours/minutes to proper time.Duration
	config.SessionIdleLimit = config.SessionIdleLimit * time.Hour
	config.SweepInterval = config.SweepInterval * time.Minute

	return &config
}
