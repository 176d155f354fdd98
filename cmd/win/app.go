package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/artem13815/win/pkg/auth"
	"github.com/artem13815/win/pkg/compatibility"
	"github.com/artem13815/win/pkg/config"
	"github.com/artem13815/win/pkg/discovery"
	"github.com/artem13815/win/pkg/feed"
	"github.com/artem13815/win/pkg/health"
	"github.com/artem13815/win/pkg/health/checkers"
	"github.com/artem13815/win/pkg/imaging"
	"github.com/artem13815/win/pkg/imaging/gemini"
	"github.com/artem13815/win/pkg/imaging/remote"
	"github.com/artem13815/win/pkg/media"
	"github.com/artem13815/win/pkg/profile"
	"github.com/artem13815/win/pkg/repository/memory"
	pgrepo "github.com/artem13815/win/pkg/repository/postgres"
	redisrepo "github.com/artem13815/win/pkg/repository/redis"
	"github.com/artem13815/win/pkg/security/jwt"
	"github.com/artem13815/win/pkg/seed"
	"github.com/artem13815/win/pkg/storage/postgres"
	"github.com/artem13815/win/pkg/storage/redis"
)

// stores are the persistence backends the services run on.
type stores struct {
	profiles profile.Repository
	accounts auth.AccountRepository
	posts    feed.Repository
	sessions discovery.SessionStore
	checkers []health.Checker
	closers  []func()
}

func (s *stores) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func memoryStores() *stores {
	return &stores{
		profiles: memory.NewProfileRepository(),
		accounts: memory.NewAccountRepository(),
		posts:    memory.NewPostRepository(),
		sessions: memory.NewSessionStore(),
	}
}

// openStores starts from memory and swaps in Postgres and Redis when they are configured.
func openStores(ctx context.Context, cfg config.Config, log *zap.Logger) (*stores, error) {
	st := memoryStores()

	if cfg.DatabaseURL != "" {
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("postgres connect: %w", err)
		}
		st.closers = append(st.closers, pool.Close)
		if err := postgres.Migrate(ctx, pool); err != nil {
			st.Close()
			return nil, fmt.Errorf("postgres migrate: %w", err)
		}
		st.profiles = pgrepo.NewProfileRepository(pool)
		st.accounts = pgrepo.NewAccountRepository(pool)
		st.posts = pgrepo.NewPostRepository(pool)
		st.checkers = append(st.checkers, checkers.NewPostgresChecker(pool))
		log.Info("using postgres storage")
	}

	if cfg.RedisURL != "" {
		client, err := redis.Connect(ctx, cfg.RedisURL)
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("redis connect: %w", err)
		}
		st.closers = append(st.closers, func() { _ = client.Close() })
		st.sessions = redisrepo.NewSessionStore(client, cfg.SessionTTL)
		st.checkers = append(st.checkers, checkers.NewRedisChecker(client))
		log.Info("using redis browse sessions", zap.Duration("ttl", cfg.SessionTTL))
	}
	return st, nil
}

// container holds the wired services.
type container struct {
	profiles  profile.UseCase
	scorer    *compatibility.Scorer
	discovery discovery.UseCase
	feed      feed.UseCase
	auth      auth.AuthUseCase
	images    imaging.UseCase
	readiness health.ReadinessUseCase
	media     *media.DiskStore
}

func build(ctx context.Context, cfg config.Config, st *stores, log *zap.Logger) (*container, error) {
	catalog, err := seed.Load(cfg.SeedFile)
	if err != nil {
		return nil, err
	}

	store, err := media.NewDiskStore(cfg.MediaDir, cfg.MediaBaseURL)
	if err != nil {
		return nil, fmt.Errorf("media store: %w", err)
	}

	profiles := profile.NewService(st.profiles)
	scorer := compatibility.NewScorer(catalog.Compatibility)
	tokens := jwt.NewGenerator(cfg.JWTSecret, cfg.JWTIssuer, time.Duration(cfg.JWTTTLMinutes)*time.Minute)
	authUC := auth.NewAuthService(st.accounts, profiles, tokens)

	err = seed.Apply(ctx, catalog, seed.Targets{
		Profiles: profiles,
		Accounts: authUC,
		Posts:    st.posts,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("apply seed catalog: %w", err)
	}

	provider, err := imageProvider(ctx, cfg, store)
	if err != nil {
		return nil, err
	}
	log.Info("image provider selected", zap.String("provider", cfg.ImageProvider))

	return &container{
		profiles:  profiles,
		scorer:    scorer,
		discovery: discovery.NewService(profiles, st.sessions, scorer),
		feed:      feed.NewService(st.posts, store),
		auth:      authUC,
		images:    imaging.NewService(provider, log.Named("imaging")),
		readiness: health.NewService(st.checkers...),
		media:     store,
	}, nil
}

func imageProvider(ctx context.Context, cfg config.Config, store media.Store) (imaging.Provider, error) {
	switch cfg.ImageProvider {
	case config.ImageProviderRemote:
		return remote.New(cfg.ImageGenerateURL, cfg.ImageEditURL, cfg.ImageTimeout), nil
	case config.ImageProviderGemini:
		client, err := gemini.New(ctx, gemini.Config{
			APIKey:        cfg.GeminiAPIKey,
			Project:       cfg.GoogleCloudProject,
			Location:      cfg.GoogleCloudLocation,
			GenerateModel: cfg.GeminiImageModel,
			EditModel:     cfg.GeminiEditModel,
			Timeout:       cfg.ImageTimeout,
		}, store)
		if err != nil {
			return nil, fmt.Errorf("gemini image provider: %w", err)
		}
		return client, nil
	case config.ImageProviderDisabled, "":
		return imaging.Disabled{}, nil
	default:
		return nil, fmt.Errorf("unknown IMAGE_PROVIDER %q", cfg.ImageProvider)
	}
}
