package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BeefBowl03/domain-generator/internal/domain"
	"github.com/BeefBowl03/domain-generator/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	lookupService *usecase.LookupService
}

// NewHandler creates a new HTTP handler. A nil service answers 503 on API routes.
func NewHandler(lookupService *usecase.LookupService) *Handler {
	return &Handler{lookupService: lookupService}
}

// CompetitorRequest is the body of POST /api/v1/competitors
type CompetitorRequest struct {
	Niche          string `json:"niche" binding:"required"`
	Fast           bool   `json:"fast"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
}

// ResolveResponse describes how a niche maps onto the catalog
type ResolveResponse struct {
	Input      string   `json:"input"`
	Normalized string   `json:"normalized"`
	Canonical  string   `json:"canonical"`
	Strategy   string   `json:"strategy"`
	Variations []string `json:"variations"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "nichescout",
		"version": "1.0.0",
	})
}

// FindCompetitors handles verified-competitor lookups
func (h *Handler) FindCompetitors(c *gin.Context) {
	if h.lookupService == nil {
		serviceNotConfigured(c)
		return
	}

	var req CompetitorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: niche is required",
		})
		return
	}
	if req.TimeoutSeconds < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: timeoutSeconds must not be negative",
		})
		return
	}

	result, err := h.lookupService.Lookup(c.Request.Context(), usecase.LookupRequest{
		Niche:   req.Niche,
		Fast:    req.Fast,
		Timeout: time.Duration(req.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ResolveNiche reports the normalized form, canonical key and variations of ?q=
func (h *Handler) ResolveNiche(c *gin.Context) {
	if h.lookupService == nil {
		serviceNotConfigured(c)
		return
	}

	q := c.Query("q")
	if strings.TrimSpace(q) == "" {
		respondError(c, domain.ErrInvalidNiche)
		return
	}

	res, variations := h.lookupService.Resolve(q)
	c.JSON(http.StatusOK, ResolveResponse{
		Input:      res.Input,
		Normalized: res.Normalized,
		Canonical:  res.Canonical,
		Strategy:   string(res.Strategy),
		Variations: variations,
	})
}

// GetCurated returns the stored curated list for a niche
func (h *Handler) GetCurated(c *gin.Context) {
	if h.lookupService == nil {
		serviceNotConfigured(c)
		return
	}

	result, err := h.lookupService.Curated(c.Request.Context(), c.Param("niche"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func serviceNotConfigured(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"error": "Competitor lookup service not configured",
	})
}

// respondError maps domain errors to HTTP status codes
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, domain.ErrInvalidNiche):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid niche - enter a product category such as \"hot tubs\"",
		})
	case errors.Is(err, domain.ErrNoCompetitors):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No verified competitors found - try a different niche",
		})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No curated competitors stored - try a different niche",
		})
	case errors.Is(err, domain.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error": "Rate limit exceeded - please slow down",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
