package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"linguacademy/internal/catalog"
	"linguacademy/internal/transport/http/response"
)

var errUnavailable = errors.New("catalog is not available")

type StatusHandler struct {
	store *catalog.Store
}

func NewStatusHandler(store *catalog.Store) *StatusHandler {
	return &StatusHandler{store: store}
}

// GET /health
func (h *StatusHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GET /api/v1/status
func (h *StatusHandler) Status(c *gin.Context) {
	body := gin.H{"loading": h.store.Loading()}
	if err := h.store.Err(); err != nil {
		body["error"] = err.Error()
	}
	c.JSON(http.StatusOK, body)
}

// RequireCatalog answers 503 while the catalog is loading or failed to load.
func RequireCatalog(store *catalog.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store.Loading() {
			response.AbortError(c, http.StatusServiceUnavailable, response.CodeUnavailable, errors.New("catalog is loading"))
			return
		}
		if err := store.Err(); err != nil {
			response.AbortError(c, http.StatusServiceUnavailable, response.CodeUnavailable, errUnavailable)
			return
		}
		c.Next()
	}
}
