// Package transport exposes the HTTP query API.
package transport

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goodnatureofminers/opreturn-explorer-backend/internal/opreturn/service/query"
	"go.uber.org/zap"
)

const (
	msgInternal      = "Internal server error"
	msgEmptyQuery    = "Search query is required"
	msgInvalidHeight = "Invalid block height"
	msgBlockNotFound = "Block not found"
	msgRateLimited   = "Too many requests"
	healthStatusOK   = "OK"
)

// Handler serves the OP_RETURN query endpoints.
type Handler struct {
	service QueryService
	logger  *zap.Logger
	now     func() time.Time
}

func NewHandler(service QueryService, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.Named("handler"),
		now:     time.Now,
	}
}

// Health GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    healthStatusOK,
		"timestamp": h.now().UTC().Format(time.RFC3339),
	})
}

// ListOpReturns GET /api/opreturns?page&limit
func (h *Handler) ListOpReturns(c *gin.Context) {
	page, err := h.service.ListOpReturns(c.Request.Context(), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newPageResponse(page))
}

// Search GET /api/search?q&page&limit
func (h *Handler) Search(c *gin.Context) {
	page, err := h.service.Search(c.Request.Context(), c.Query("q"), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newPageResponse(page))
}

// Stats GET /api/stats
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dataResponse{Success: true, Data: newStatsResponse(stats)})
}

// BlockInfo GET /api/blocks/:height
func (h *Handler) BlockInfo(c *gin.Context) {
	height, err := strconv.ParseUint(c.Param("height"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: msgInvalidHeight})
		return
	}

	info, err := h.service.BlockInfo(c.Request.Context(), height)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dataResponse{Success: true, Data: newBlockInfoResponse(info)})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, query.ErrEmptyQuery):
		c.JSON(http.StatusBadRequest, errorResponse{Error: msgEmptyQuery})
	case errors.Is(err, query.ErrBlockNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: msgBlockNotFound})
	default:
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Error: msgInternal})
	}
}

// queryInt reads an integer query parameter. Missing or malformed values read as 0 and
// are replaced by the service defaults.
func queryInt(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}
