package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	httpapi "github.com/artem13815/win/api/http"
	"github.com/artem13815/win/api/http/handlers"
	"github.com/artem13815/win/api/http/middleware"
	_ "github.com/artem13815/win/docs"
	"github.com/artem13815/win/pkg/security/jwt"
)

const (
	shutdownTimeout = 10 * time.Second
	// Inline data URLs for post media and image edits make bodies large.
	bodyLimit = 25 << 20
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().String("port", "", "listen port (default from PORT)")
	_ = v.BindPFlag("PORT", serveCmd.Flags().Lookup("port"))
	rootCmd.AddCommand(serveCmd)
}

func serve(parent context.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("starting win", zap.String("version", version))

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Error("open stores", zap.Error(err))
		return err
	}
	defer st.Close()

	c, err := build(ctx, cfg, st, log)
	if err != nil {
		log.Error("build services", zap.Error(err))
		return err
	}

	srv := newServer(c, cfg.JWTSecret, cfg.JWTIssuer, cfg.MediaBaseURL, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("HTTP server listening", zap.String("port", cfg.Port))
		return srv.Listen(":" + cfg.Port)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		return srv.ShutdownWithTimeout(shutdownTimeout)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server stopped", zap.Error(err))
		return err
	}
	log.Info("server stopped")
	return nil
}

func newServer(c *container, secret, issuer, mediaURL string, log *zap.Logger) *fiber.App {
	srv := fiber.New(fiber.Config{
		AppName:               app,
		BodyLimit:             bodyLimit,
		DisableStartupMessage: true,
	})
	srv.Use(recover.New())
	srv.Use(middleware.RequestLogger(log.Named("http")))

	srv.Static(mediaURL, c.media.Dir())

	httpapi.Register(srv, httpapi.Handlers{
		Auth:      handlers.NewAuthHandler(c.auth),
		Health:    handlers.NewHealthHandler(c.readiness),
		Profile:   handlers.NewProfileHandler(c.profiles, c.scorer),
		Discovery: handlers.NewDiscoveryHandler(c.discovery),
		Feed:      handlers.NewFeedHandler(c.feed, c.profiles),
		Images:    handlers.NewImageHandler(c.images),
	}, jwt.NewAuthMiddleware(secret, issuer))

	// Swagger UI
	srv.Get("/swagger/*", swagger.HandlerDefault)
	return srv
}
