package handlers

import (
	"context"
	"time"

	"freshtrack-backend/domain"
	"freshtrack-backend/internal/api/presenters"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

const healthTimeout = 2 * time.Second

type (
	// CheckFunc reports whether a dependency is reachable.
	CheckFunc func(ctx context.Context) error

	AppHandler interface {
		Root(c *fiber.Ctx) error
		Health(c *fiber.Ctx) error
		Ping(c *fiber.Ctx) error
	}

	appHandler struct {
		name          string
		version       string
		databaseCheck CheckFunc
		cacheCheck    CheckFunc
	}
)

func NewAppHandler(name, version string, databaseCheck, cacheCheck CheckFunc) AppHandler {
	return &appHandler{
		name:          name,
		version:       version,
		databaseCheck: databaseCheck,
		cacheCheck:    cacheCheck,
	}
}

func (h *appHandler) Root(c *fiber.Ctx) error {
	return c.JSON(domain.AppInfoResponse{
		Name:    h.name,
		Version: h.version,
		Status:  "running",
	})
}

// Health answers 503 when the database is unreachable. A cache outage only
// degrades lookups, so it is reported but keeps the service healthy.
func (h *appHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), healthTimeout)
	defer cancel()

	res := domain.HealthResponse{Status: "healthy", Database: "up", Cache: "up"}
	status := fiber.StatusOK
	message := domain.MessageSuccessHealth

	if err := run(ctx, h.databaseCheck); err != nil {
		log.Warnw("database health check failed", "error", err)
		res.Status, res.Database = "unhealthy", "down"
		status = fiber.StatusServiceUnavailable
		message = domain.MessageFailedHealth
	}
	if err := run(ctx, h.cacheCheck); err != nil {
		log.Warnw("cache health check failed", "error", err)
		res.Cache = "down"
	}

	return presenters.SuccessResponse(c, res, status, message)
}

func (h *appHandler) Ping(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "pong"})
}

func run(ctx context.Context, check CheckFunc) error {
	if check == nil {
		return nil
	}
	return check(ctx)
}
