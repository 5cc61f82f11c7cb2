package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/suawasthi/job-recom/internal/config"
	"github.com/suawasthi/job-recom/internal/database"
	"github.com/suawasthi/job-recom/internal/database/migration"
	dbpostgres "github.com/suawasthi/job-recom/internal/database/postgres"
	"github.com/suawasthi/job-recom/internal/database/seeder"
	"github.com/suawasthi/job-recom/internal/infrastructure/blob"
	"github.com/suawasthi/job-recom/internal/infrastructure/cache"
	"github.com/suawasthi/job-recom/internal/matching"
	"github.com/suawasthi/job-recom/internal/ontology"
	"github.com/suawasthi/job-recom/internal/preference"
	"github.com/suawasthi/job-recom/internal/repository"
	"github.com/suawasthi/job-recom/internal/retrieval"
	"github.com/suawasthi/job-recom/internal/scoring"
	"github.com/suawasthi/job-recom/internal/usecase"
	"github.com/suawasthi/job-recom/internal/weights"
)

// Container wires every long-lived component: database, cache, ontology
// graph, embedder, scoring engine, learner and the usecases on top of them.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    database.DB
	Cache *cache.Redis

	Graph      *ontology.Graph
	Calculator *weights.Calculator
	Engine     *matching.Engine
	Learner    *preference.Learner
	Retriever  *retrieval.Service

	Jobs       usecase.JobUsecase
	Candidates usecase.CandidateUsecase
	Matcher    usecase.MatchUsecase
	Recommend  usecase.RecommendationUsecase
	Feedback   usecase.FeedbackUsecase

	snapshotPath string
}

func NewContainer(ctx context.Context, cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "[App] ", log.LstdFlags)

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	migrator := migration.Runner{Dir: cfg.Database.MigrationsDir}
	if err := migrator.Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	seeders := seeder.Runner{Seeders: seeder.Defaults(), Logger: logger}
	if err := seeders.Run(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run seeders: %w", err)
	}

	cacheClient := cache.NewRedis(cache.Options{
		Host:       cfg.Cache.RedisHost,
		Port:       cfg.Cache.RedisPort,
		Password:   cfg.Cache.RedisPassword,
		DefaultTTL: cfg.Cache.DefaultTTL,
	}, log.New(os.Stdout, "[Cache] ", log.LstdFlags))

	graph := ontology.Default()
	skillRepo := repository.NewPostgresSkillRepository(db)
	if nodes, err := skillRepo.ListNodes(ctx); err != nil {
		logger.Printf("skill catalog load failed, using built-in graph only: %v", err)
	} else {
		graph.Merge(nodes)
	}

	embedder := buildEmbedder(ctx, cfg.Embedding, logger)

	calc := weights.NewCalculator()
	semantic := retrieval.NewSemanticScorer(embedder, graph)
	engine := matching.NewEngine(graph, calc, semantic, log.New(os.Stdout, "[Matching] ", log.LstdFlags))
	params := scoring.DefaultParams()
	params.TransferableThreshold = cfg.Scoring.TransferableThreshold
	params.SemanticThreshold = cfg.Scoring.SemanticThreshold
	engine.SetParams(params)

	jobRepo := repository.NewPostgresJobRepository(db)
	candidateRepo := repository.NewPostgresCandidateRepository(db)
	feedbackRepo := repository.NewPostgresFeedbackRepository(db)
	adjustmentRepo := repository.NewPostgresAdjustmentRepository(db)
	matchRepo := repository.NewPostgresMatchRepository(db)

	artifacts, err := buildArtifactStore(ctx, cfg, db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init artifact store: %w", err)
	}

	learner := preference.NewLearner(
		preferenceConfig(cfg.Preference),
		feedbackRepo,
		jobRepo,
		adjustmentRepo,
		artifacts,
		log.New(os.Stdout, "[Preference] ", log.LstdFlags),
	)

	svcCfg := retrieval.DefaultServiceConfig()
	svcCfg.MinScore = cfg.Retrieval.MinScore
	svcCfg.CacheTTL = cfg.Retrieval.CacheTTL
	svcCfg.UseFlatIndex = cfg.Retrieval.UseFlatIndex
	retriever := retrieval.NewService(svcCfg, embedder, engine, cacheClient, learner, log.New(os.Stdout, "[Retrieval] ", log.LstdFlags))

	snapshotPath := filepath.Join(cfg.Retrieval.SnapshotDir, "index.json")
	if err := retriever.LoadSnapshot(snapshotPath); err != nil {
		logger.Printf("index snapshot restore failed: %v", err)
	}

	return &Container{
		Config:     cfg,
		Logger:     logger,
		DB:         db,
		Cache:      cacheClient,
		Graph:      graph,
		Calculator: calc,
		Engine:     engine,
		Learner:    learner,
		Retriever:  retriever,

		Jobs:       usecase.NewJobUsecase(jobRepo, retriever),
		Candidates: usecase.NewCandidateUsecase(candidateRepo, retriever),
		Matcher:    usecase.NewMatchUsecase(candidateRepo, jobRepo, matchRepo, engine, calc, learner, log.New(os.Stdout, "[Match] ", log.LstdFlags)),
		Recommend:  usecase.NewRecommendationUsecase(retriever, matchRepo, log.New(os.Stdout, "[Recommend] ", log.LstdFlags)),
		Feedback:   usecase.NewFeedbackUsecase(learner, log.New(os.Stdout, "[Feedback] ", log.LstdFlags)),

		snapshotPath: snapshotPath,
	}, nil
}

// buildEmbedder prefers the Gemini backend and degrades to the
// deterministic hash embedder when no API key is configured or the client
// cannot be constructed.
func buildEmbedder(ctx context.Context, cfg config.EmbeddingConfig, logger *log.Logger) retrieval.Embedder {
	hash := retrieval.NewHashEmbedder(cfg.Dimension)
	if cfg.APIKey == "" {
		logger.Printf("GEMINI_API_KEY not set, embeddings served by hash backend")
		return hash
	}

	gemini, err := retrieval.NewGeminiEmbedder(ctx, cfg.APIKey, cfg.Model, cfg.Dimension, logger)
	if err != nil {
		logger.Printf("gemini client init failed, embeddings served by hash backend: %v", err)
		return hash
	}
	return retrieval.NewFallbackEmbedder(gemini, hash, logger)
}

func buildArtifactStore(ctx context.Context, cfg config.Config, db database.DB) (preference.ArtifactStore, error) {
	if cfg.Trainer.ArtifactBackend == "s3" {
		return blob.NewS3ArtifactStore(ctx, blob.Config{
			Endpoint:  cfg.Blob.Endpoint,
			Region:    cfg.Blob.Region,
			AccessKey: cfg.Blob.AccessKey,
			SecretKey: cfg.Blob.SecretKey,
			Bucket:    cfg.Blob.Bucket,
			Prefix:    cfg.Blob.Prefix,
		})
	}
	return repository.NewPostgresArtifactRepository(db), nil
}

func preferenceConfig(cfg config.PreferenceConfig) preference.Config {
	return preference.Config{
		MinFeedback:           cfg.MinFeedback,
		TrainThreshold:        cfg.TrainThreshold,
		MaxFeedback:           cfg.MaxFeedback,
		DefaultBoost:          cfg.DefaultBoost,
		BootstrapLearningRate: cfg.BootstrapLearningRate,
		CorrelationThreshold:  cfg.CorrelationThreshold,
		SmoothingAlpha:        cfg.SmoothingAlpha,
		MinAdjustment:         cfg.MinAdjustment,
		MaxAdjustment:         cfg.MaxAdjustment,
	}
}

// Close flushes the index snapshot and releases the database pool.
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Retriever != nil && c.snapshotPath != "" {
		if err := c.Retriever.SaveSnapshot(c.snapshotPath); err != nil {
			c.Logger.Printf("index snapshot save failed: %v", err)
		}
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
