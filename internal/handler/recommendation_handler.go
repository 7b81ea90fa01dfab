package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/aravind-gm/CINEPLEXFINAL/internal/middleware"
	"github.com/aravind-gm/CINEPLEXFINAL/internal/service"
)

// RecommendationHandler handles HTTP requests for recommendations.
type RecommendationHandler struct {
	svc *service.RecommendationService
}

// NewRecommendationHandler creates a new RecommendationHandler.
func NewRecommendationHandler(svc *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{svc: svc}
}

// Personalized returns recommendations for the authenticated user.
// @Summary Personalized recommendations
// @Tags recommendations
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max results" default(12)
// @Success 200 {object} models.RecommendationResponse
// @Failure 401 {object} ErrorResponse
// @Router /recommendations/personalized [get]
func (h *RecommendationHandler) Personalized(c fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: "missing token"})
	}
	limit := fiber.Query(c, "limit", 12)

	resp, err := h.svc.GetPersonalized(c.Context(), claims.UserID, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// ByGenre returns the top movies of one genre.
// @Summary Recommendations by genre
// @Tags recommendations
// @Produce json
// @Param genreID path int true "Genre ID"
// @Param limit query int false "Max results" default(8)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Router /recommendations/by-genre/{genreID} [get]
func (h *RecommendationHandler) ByGenre(c fiber.Ctx) error {
	genreID, err := strconv.Atoi(c.Params("genreID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid genre ID"})
	}
	limit := fiber.Query(c, "limit", 8)

	recs, err := h.svc.GetByGenre(c.Context(), genreID, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"genre_id":        genreID,
		"recommendations": recs,
	})
}
