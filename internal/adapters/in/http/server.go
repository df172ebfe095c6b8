// Package http exposes the repair-order command API over HTTP using echo.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"repairshop/internal/core/application/usecases/commands"
)

// storeResetter clears the backing order store. Both the in-memory and the
// Postgres repositories implement it.
type storeResetter interface {
	Clear(ctx context.Context) error
}

// Server handles the HTTP surface: the batch command endpoint, the store
// reset endpoint, and the health check.
type Server struct {
	batchHandler *commands.BatchCommandHandler
	resetter     storeResetter
}

// NewServer creates a new HTTP server with the required dependencies.
func NewServer(batchHandler *commands.BatchCommandHandler, resetter storeResetter) *Server {
	return &Server{
		batchHandler: batchHandler,
		resetter:     resetter,
	}
}

// RegisterRoutes attaches the server's endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/commands", s.ProcessCommands)
	e.POST("/api/v1/reset", s.ResetRepository)
	e.GET("/health", s.HealthCheck)
}

type commandJSON struct {
	Op   string               `json:"op"`
	TS   time.Time            `json:"ts"`
	Data commands.CommandData `json:"data"`
}

type commandsRequest struct {
	Commands []commandJSON `json:"commands"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ProcessCommands handles POST /api/v1/commands - applies a batch of
// commands and returns the resulting orders, events, and errors.
func (s *Server) ProcessCommands(ctx echo.Context) error {
	var request commandsRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	batch := make([]commands.Command, 0, len(request.Commands))
	for _, entry := range request.Commands {
		cmd, err := commands.NewCommand(entry.Op, entry.TS, entry.Data)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, errorResponse{
				Code:    http.StatusBadRequest,
				Message: "Invalid command: " + err.Error(),
			})
		}
		batch = append(batch, cmd)
	}

	result, err := s.batchHandler.Handle(ctx.Request().Context(), batch)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to process commands",
		})
	}

	return ctx.JSON(http.StatusOK, result)
}

// ResetRepository handles POST /api/v1/reset - clears all stored orders.
func (s *Server) ResetRepository(ctx echo.Context) error {
	if err := s.resetter.Clear(ctx.Request().Context()); err != nil {
		return ctx.JSON(http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to reset repository",
		})
	}

	return ctx.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Repository cleared",
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}
