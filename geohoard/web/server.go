// Package web is the presentation collaborator surface: a JSON API that
// exposes the game state after every mutation and accepts the player's
// purchase and click actions. It renders data, never map tiles.
package web

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ellavondegurechaff/geohoard/geohoard/services"
	"github.com/ellavondegurechaff/geohoard/geohoard/world"
)

// Server serves the game state API.
type Server struct {
	store   *world.Store
	search  *services.SearchService
	cache   *SnapshotCache
	version string
}

// NewServer creates the API server over the store.
func NewServer(store *world.Store, search *services.SearchService, version string) *Server {
	return &Server{
		store:   store,
		search:  search,
		cache:   NewSnapshotCache(),
		version: version,
	}
}

// App builds the fiber application with middleware and routes.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "GeoHoard API",
		ServerHeader: "GeoHoard",
		ErrorHandler: ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))
	app.Use(RequestLogging())

	app.Get("/health", s.handleHealth)
	app.Get("/", s.handleRoot)

	api := app.Group("/api")
	api.Get("/state", s.handleState)
	api.Get("/shop", s.handleShop)
	api.Get("/entities", s.handleEntities)
	api.Get("/collection", s.handleCollection)
	api.Get("/events", s.handleEvents)
	api.Get("/search", s.handleSearch)

	actions := api.Group("", RateLimit(60, time.Minute))
	actions.Post("/purchase/:id", s.handlePurchase)
	actions.Post("/click", s.handleClick)

	return app
}
