package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ellavondegurechaff/geohoard/geohoard/world"
)

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "healthy", "version": s.version})
}

func (s *Server) handleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "GeoHoard API",
		"version": s.version,
		"status":  "running",
	})
}

func (s *Server) handleState(c *fiber.Ctx) error {
	data := s.cache.Get("state", s.store.Revision(), func() any {
		return s.store.Snapshot()
	})
	return sendSuccess(c, data)
}

func (s *Server) handleShop(c *fiber.Ctx) error {
	data := s.cache.Get("shop", s.store.Revision(), func() any {
		return s.store.ShopListing()
	})
	return sendSuccess(c, data)
}

func (s *Server) handleEntities(c *fiber.Ctx) error {
	data := s.cache.Get("entities", s.store.Revision(), func() any {
		return s.store.Entities()
	})
	return sendSuccess(c, data)
}

func (s *Server) handleCollection(c *fiber.Ctx) error {
	data := s.cache.Get("collection", s.store.Revision(), func() any {
		return s.store.CollectionView()
	})
	return sendSuccess(c, data)
}

func (s *Server) handleEvents(c *fiber.Ctx) error {
	return sendSuccess(c, s.store.Events())
}

func (s *Server) handleSearch(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return sendError(c, http.StatusBadRequest, "BAD_REQUEST", "query parameter q is required")
	}

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 100 {
			return sendError(c, http.StatusBadRequest, "BAD_REQUEST", "limit must be between 1 and 100")
		}
		limit = parsed
	}

	return sendSuccess(c, s.search.Search(query, limit))
}

func (s *Server) handlePurchase(c *fiber.Ctx) error {
	id := c.Params("id")

	receipt, err := s.store.Purchase(id)
	if err != nil {
		switch {
		case errors.Is(err, world.ErrUnknownEntity):
			return sendError(c, http.StatusNotFound, "UNKNOWN_ENTITY", err.Error())
		case errors.Is(err, world.ErrAlreadyOwned):
			return sendError(c, http.StatusConflict, "ALREADY_OWNED", err.Error())
		case errors.Is(err, world.ErrNotInStock):
			return sendError(c, http.StatusConflict, "NOT_IN_STOCK", err.Error())
		case errors.Is(err, world.ErrInsufficientFunds):
			return sendError(c, http.StatusPaymentRequired, "INSUFFICIENT_FUNDS", err.Error())
		default:
			return sendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		}
	}

	return sendSuccess(c, receipt)
}

func (s *Server) handleClick(c *fiber.Ctx) error {
	balance := s.store.Click()
	return sendSuccess(c, fiber.Map{"balance": balance})
}
