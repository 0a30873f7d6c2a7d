// Package bootstrap wires configuration into the services shared by the server and the CLI.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/BeefBowl03/domain-generator/config"
	"github.com/BeefBowl03/domain-generator/internal/domain"
	"github.com/BeefBowl03/domain-generator/internal/infrastructure/cache"
	"github.com/BeefBowl03/domain-generator/internal/infrastructure/catalog"
	"github.com/BeefBowl03/domain-generator/internal/infrastructure/llm"
	"github.com/BeefBowl03/domain-generator/internal/infrastructure/persistence"
	"github.com/BeefBowl03/domain-generator/internal/infrastructure/prober"
	"github.com/BeefBowl03/domain-generator/internal/logger"
	"github.com/BeefBowl03/domain-generator/internal/usecase"
)

// Services holds the wired application graph
type Services struct {
	Catalog    *catalog.Catalog
	Normalizer *usecase.NicheNormalizer
	Lookup     *usecase.LookupService

	// MaxLookupDuration is the longest a lookup can run: the timeout cap plus the
	// deadline overrun allowed by the configured probe settings
	MaxLookupDuration time.Duration

	closers []func() error
	log     logger.Logger
}

// CreateLogger creates a logger from configuration
func CreateLogger(cfg *config.Config, service string) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(
		logger.String("service", service),
		logger.String("environment", cfg.Server.Environment),
	), nil
}

// Build creates every dependency of the lookup service.
// Optional backends fall back to in-memory implementations when unconfigured.
func Build(ctx context.Context, cfg *config.Config, log logger.Logger) (*Services, error) {
	s := &Services{Catalog: catalog.Default(), log: log}

	s.Normalizer = usecase.NewNicheNormalizer(s.Catalog, catalog.DefaultLexicon(), usecase.DefaultSimilarityPolicy)
	seeds := usecase.NewSeedSource(s.Catalog, s.Normalizer)

	fastSettings, thoroughSettings := probeSettings(cfg.Probe.Fast), probeSettings(cfg.Probe.Thorough)
	siteProber := prober.New(
		prober.WithSettings(domain.ProbeFast, fastSettings),
		prober.WithSettings(domain.ProbeThorough, thoroughSettings),
		prober.WithLogger(log),
	)
	s.MaxLookupDuration = usecase.MaxLookupTimeout + usecase.MaxOverrun(fastSettings, thoroughSettings)

	var generator domain.CandidateGenerator
	llmClient := llm.NewClient(llm.Config{
		APIKey:            cfg.LLM.APIKey,
		BaseURL:           cfg.LLM.BaseURL,
		Model:             cfg.LLM.Model,
		RequestsPerMinute: cfg.LLM.RequestsPerMinute,
		Timeout:           cfg.LLM.Timeout,
	}, log)
	if llmClient.Enabled() {
		generator = llmClient
		log.Info("candidate generator enabled", logger.String("model", cfg.LLM.Model))
	} else {
		log.Warn("candidate generator disabled: llm.api_key not set")
	}

	repo, err := s.curatedRepository(ctx, cfg)
	if err != nil {
		s.Close()
		return nil, err
	}

	lookupCache, err := s.cache(cfg)
	if err != nil {
		s.Close()
		return nil, err
	}

	competitors := usecase.NewCompetitorService(s.Normalizer, seeds, siteProber, generator, log)
	s.Lookup = usecase.NewLookupService(competitors, s.Normalizer, lookupCache, repo, usecase.LookupServiceConfig{
		CacheTTL:       cfg.Cache.TTL,
		DefaultTimeout: cfg.Discovery.Deadline,
		MaxAttempts:    cfg.Discovery.MaxAttempts,
		FastVerify:     cfg.Discovery.FastVerify,
	}, log)

	return s, nil
}

func (s *Services) curatedRepository(ctx context.Context, cfg *config.Config) (domain.CuratedRepository, error) {
	if cfg.Database.URL == "" {
		s.log.Info("using in-memory curated repository")
		return persistence.NewMemoryRepository(), nil
	}

	db, err := persistence.NewPostgresConnection(persistence.Config{
		URL:             cfg.Database.URL,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return nil, err
	}
	s.closers = append(s.closers, db.Close)

	if err := persistence.EnsureSchema(ctx, db); err != nil {
		return nil, err
	}

	s.log.Info("using postgres curated repository")
	return persistence.NewPostgresRepository(db), nil
}

func (s *Services) cache(cfg *config.Config) (domain.CacheRepository, error) {
	if cfg.Cache.Type == "redis" {
		redisCache, err := cache.NewRedisCache(cfg.Cache.RedisURL)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, redisCache.Close)
		s.log.Info("using redis lookup cache", logger.Duration("ttl", cfg.Cache.TTL))
		return redisCache, nil
	}

	memoryCache := cache.NewMemoryCache()
	s.closers = append(s.closers, memoryCache.Close)
	s.log.Info("using in-memory lookup cache", logger.Duration("ttl", cfg.Cache.TTL))
	return memoryCache, nil
}

// Close releases database and cache connections in reverse order
func (s *Services) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			s.log.Error("failed to close resource", logger.Error(err))
		}
	}
	s.closers = nil
}

func probeSettings(c config.ProbeModeConfig) domain.ProbeSettings {
	return domain.ProbeSettings{
		HeadTimeout:  c.HeadTimeout,
		GetTimeout:   c.GetTimeout,
		MaxRedirects: c.MaxRedirects,
	}
}
