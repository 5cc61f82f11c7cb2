package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Embedding  EmbeddingConfig
	Retrieval  RetrievalConfig
	Scoring    ScoringConfig
	Preference PreferenceConfig
	Trainer    TrainerConfig
	Blob       BlobConfig
	Cache      CacheConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration

	MigrationsDir string
}

type EmbeddingConfig struct {
	// APIKey empty means the Gemini backend is skipped entirely and the
	// deterministic hash embedder serves every request.
	APIKey    string
	Model     string
	Dimension int
}

type RetrievalConfig struct {
	MinScore     float64
	CacheTTL     time.Duration
	UseFlatIndex bool
	SnapshotDir  string
}

type ScoringConfig struct {
	TransferableThreshold float64
	SemanticThreshold     float64
}

type PreferenceConfig struct {
	MinFeedback           int
	TrainThreshold        int
	MaxFeedback           int
	DefaultBoost          float64
	BootstrapLearningRate float64
	CorrelationThreshold  float64
	SmoothingAlpha        float64
	MinAdjustment         float64
	MaxAdjustment         float64
}

type TrainerConfig struct {
	// Schedule is a cron spec, e.g. "@every 6h".
	Schedule string
	// ArtifactBackend selects where fitted models live: postgres or s3.
	ArtifactBackend string
}

type CacheConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	DefaultTTL    time.Duration
}

type BlobConfig struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		return v
	}
	optInt := func(key string, def int) int {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return def
		}
		return n
	}
	optFloat := func(key string, def float64) float64 {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return def
		}
		return f
	}
	optBool := func(key string, def bool) bool {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return def
		}
		return b
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return def
		}
		return d
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST", "localhost"),
		DBPort:     opt("DB_PORT", "5432"),
		DBName:     opt("DB_NAME", ""),
		DBUser:     opt("DB_USER", ""),
		DBPassword: opt("DB_PASSWORD", ""),
		DBSSLMode:  opt("DB_SSL_MODE", "disable"),

		ConnectTimeout:        optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 8)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optDuration("DB_POOL_MAX_CONN_LIFETIME", 30*time.Minute),
		PoolMaxConnIdleTime:   optDuration("DB_POOL_MAX_CONN_IDLE_TIME", 5*time.Minute),
		PoolHealthCheckPeriod: optDuration("DB_POOL_HEALTH_CHECK_PERIOD", time.Minute),

		MigrationsDir: opt("DB_MIGRATIONS_DIR", "migrations"),
	}

	cfg.Embedding = EmbeddingConfig{
		APIKey:    opt("GEMINI_API_KEY", ""),
		Model:     opt("EMBEDDING_MODEL", "gemini-embedding-001"),
		Dimension: optInt("EMBEDDING_DIMENSION", 256),
	}

	cfg.Retrieval = RetrievalConfig{
		MinScore:     optFloat("MATCH_MIN_SCORE", 0.6),
		CacheTTL:     optDuration("MATCH_CACHE_TTL", 10*time.Minute),
		UseFlatIndex: optBool("INDEX_EXACT", true),
		SnapshotDir:  opt("INDEX_SNAPSHOT_DIR", "data"),
	}

	cfg.Scoring = ScoringConfig{
		TransferableThreshold: optFloat("SKILL_TRANSFERABLE_THRESHOLD", 0.7),
		SemanticThreshold:     optFloat("SKILL_SEMANTIC_THRESHOLD", 0.8),
	}

	cfg.Preference = PreferenceConfig{
		MinFeedback:           optInt("PREF_MIN_FEEDBACK", 3),
		TrainThreshold:        optInt("PREF_TRAIN_THRESHOLD", 10),
		MaxFeedback:           optInt("PREF_MAX_FEEDBACK", 1000),
		DefaultBoost:          optFloat("PREF_DEFAULT_BOOST", 1.2),
		BootstrapLearningRate: optFloat("PREF_BOOTSTRAP_LEARNING_RATE", 0.3),
		CorrelationThreshold:  optFloat("PREF_CORRELATION_THRESHOLD", 0.3),
		SmoothingAlpha:        optFloat("PREF_SMOOTHING_ALPHA", 0.1),
		MinAdjustment:         optFloat("PREF_MIN_ADJUSTMENT", 0.1),
		MaxAdjustment:         optFloat("PREF_MAX_ADJUSTMENT", 2.0),
	}

	cfg.Trainer = TrainerConfig{
		Schedule:        opt("TRAIN_SCHEDULE", "@every 6h"),
		ArtifactBackend: opt("ARTIFACT_BACKEND", "postgres"),
	}

	cfg.Cache = CacheConfig{
		RedisHost:     opt("REDIS_HOST", "localhost"),
		RedisPort:     opt("REDIS_PORT", "6379"),
		RedisPassword: opt("REDIS_PASSWORD", ""),
		DefaultTTL:    optDuration("REDIS_TTL", 10*time.Minute),
	}

	cfg.Blob = BlobConfig{
		Endpoint:  opt("BLOB_ENDPOINT", ""),
		Region:    opt("BLOB_REGION", ""),
		AccessKey: opt("BLOB_ACCESS_KEY", ""),
		SecretKey: opt("BLOB_SECRET_KEY", ""),
		Bucket:    opt("BLOB_BUCKET", ""),
		Prefix:    opt("BLOB_PREFIX", "preference-models"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}
