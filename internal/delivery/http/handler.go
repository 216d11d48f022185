package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stylefinder/backend/internal/domain"
	"github.com/stylefinder/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	recommendations *usecase.RecommendationService
}

// NewHandler creates a new HTTP handler
func NewHandler(recommendations *usecase.RecommendationService) *Handler {
	return &Handler{recommendations: recommendations}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "stylefinder-backend",
		"version": "1.0.0",
	})
}

// sizePreviewRequest is the wizard's live size preview payload
type sizePreviewRequest struct {
	Measurements domain.RawMeasurement `json:"measurements" binding:"required"`
	AgeYears     int                   `json:"ageYears"`
	Gender       string                `json:"gender" binding:"required"`
}

// PreviewSize computes the size label for the measurements step without
// running a product search.
func (h *Handler) PreviewSize(c *gin.Context) {
	if h.recommendations == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "sizing service not configured",
		})
		return
	}

	var req sizePreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	gender, ok := domain.ParseGenderTag(req.Gender)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown gender tag"})
		return
	}

	result, err := h.recommendations.PreviewSize(req.Measurements, domain.Demographic{
		AgeYears: req.AgeYears,
		Gender:   gender,
	})
	if err != nil {
		// Incomplete input blocks the step, it is not a server failure.
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "profile not ready", "ready": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"size":  result.Label.String(),
		"match": result.Match,
		"ready": true,
	})
}

// searchRequest is the full outfit search payload
type searchRequest struct {
	SessionID    string                 `json:"sessionId"`
	UserID       string                 `json:"userId"`
	Measurements domain.RawMeasurement  `json:"measurements" binding:"required"`
	AgeYears     int                    `json:"ageYears"`
	Gender       string                 `json:"gender" binding:"required"`
	Style        domain.StylePreference `json:"style"`
	Occasion     domain.OccasionContext `json:"occasion"`
}

// SearchOutfits runs the full recommendation pipeline.
func (h *Handler) SearchOutfits(c *gin.Context) {
	if h.recommendations == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "recommendation service not configured",
		})
		return
	}

	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	gender, ok := domain.ParseGenderTag(req.Gender)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown gender tag"})
		return
	}

	result, err := h.recommendations.Search(c.Request.Context(), &usecase.OutfitRequest{
		SessionID:   req.SessionID,
		UserID:      req.UserID,
		Raw:         req.Measurements,
		Demographic: domain.Demographic{AgeYears: req.AgeYears, Gender: gender},
		Style:       req.Style,
		Occasion:    req.Occasion,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProfileIncomplete):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "profile not ready", "ready": false})
		case errors.Is(err, domain.ErrSearchSuperseded):
			// A newer search for this session already started; the client
			// should only render that one.
			c.JSON(http.StatusConflict, gin.H{"error": "superseded by a newer search"})
		case errors.Is(err, domain.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request parameters"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
