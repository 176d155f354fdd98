package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/win/api/http/handlers"
)

// Handlers groups every HTTP handler the API serves.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Health    *handlers.HealthHandler
	Profile   *handlers.ProfileHandler
	Discovery *handlers.DiscoveryHandler
	Feed      *handlers.FeedHandler
	Images    *handlers.ImageHandler
}

// Register wires all HTTP routes onto given Fiber app. Everything except health and auth
// goes through authMW.
func Register(app *fiber.App, h Handlers, authMW fiber.Handler) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", h.Health.Health)
	v1.Get("/ready", h.Health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", h.Auth.Register)
	a.Post("/login", h.Auth.Login)

	me := v1.Group("/me", authMW)
	me.Get("/profile", h.Profile.Me)
	me.Patch("/profile", h.Profile.UpdateMe)

	v1.Get("/profiles/:id", authMW, h.Profile.Get)

	d := v1.Group("/discover", authMW)
	d.Get("", h.Discovery.Current)
	d.Post("/like", h.Discovery.Like)
	d.Post("/dislike", h.Discovery.Dislike)
	d.Post("/reset", h.Discovery.Reset)
	v1.Get("/matches", authMW, h.Discovery.Matches)

	p := v1.Group("/posts", authMW)
	p.Get("", h.Feed.List)
	p.Post("", h.Feed.Create)
	p.Post("/:id/like", h.Feed.Like)
	p.Get("/:id/comments", h.Feed.Comments)
	p.Post("/:id/comments", h.Feed.Comment)

	img := v1.Group("/images", authMW)
	img.Post("/generate", h.Images.Generate)
	img.Post("/edit", h.Images.Edit)
}
