package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/aravind-gm/CINEPLEXFINAL/internal/middleware"
	"github.com/aravind-gm/CINEPLEXFINAL/internal/models"
	"github.com/aravind-gm/CINEPLEXFINAL/internal/service"
)

// UserHandler handles HTTP requests for profiles and user-movie
// interactions. All routes require a validated bearer token.
type UserHandler struct {
	svc *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func userID(c fiber.Ctx) (int, bool) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return 0, false
	}
	return claims.UserID, true
}

// UpdateProfile applies a partial profile update.
// @Summary Update profile
// @Tags users
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UserResponse
// @Failure 400 {object} ErrorResponse
// @Router /users/profile [put]
func (h *UserHandler) UpdateProfile(c fiber.Ctx) error {
	uid, ok := userID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: "missing token"})
	}

	var req models.UpdateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	user, err := h.svc.UpdateProfile(uid, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// GetDemographics returns the user's demographic fields.
// @Summary Get demographics
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Demographics
// @Router /users/demographics [get]
func (h *UserHandler) GetDemographics(c fiber.Ctx) error {
	uid, ok := userID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: "missing token"})
	}

	demo, err := h.svc.GetDemographics(uid)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(demo)
}

// UpdateDemographics updates the user's demographic fields.
// @Summary Update demographics
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UserResponse
// @Failure 400 {object} ErrorResponse
// @Router /users/demographics [put]
func (h *UserHandler) UpdateDemographics(c fiber.Ctx) error {
	uid, ok := userID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: "missing token"})
	}

	var req models.DemographicsRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	user, err := h.svc.UpdateProfile(uid, req.ProfileUpdate())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// UploadAvatar stores an uploaded avatar image.
// @Summary Upload avatar
// @Tags users
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param avatar formData file true "Avatar image"
// @Success 200 {object} models.UserResponse
// @Failure 400 {object} ErrorResponse
// @Router /users/avatar [post]
func (h *UserHandler) UploadAvatar(c fiber.Ctx) error {
	uid, ok := userID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: "missing token"})
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "avatar file is required"})
	}

	user, err := h.svc.SaveAvatar(uid, file)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// ListAvatars returns the URLs of stored avatar images.
// @Summary List avatars
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string][]string
// @Router /users/avatars [get]
func (h *UserHandler) ListAvatars(c fiber.Ctx) error {
	avatars, err := h.svc.ListAvatars()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"avatars": avatars})
}

// GetWatchlist returns the user's watchlist.
// @Summary Get watchlist
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /users/watch-list [get]
func (h *UserHandler) GetWatchlist(c fiber.Ctx) error {
	uid, ok := userID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: "missing token"})
	}

	entries, err := h.svc.GetWatchlist(uid)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"watchlist": entries})
}

// ToggleWatchlist flips a movie's watchlist membership.
// @Summary Toggle watchlist entry
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body models.MovieRefRequest true "Movie reference"
// @Success 200 {object} models.ToggleWatchlistResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/watch-list/toggle [post]
func (h *UserHandler) ToggleWatchlist(c fiber.Ctx) error {
	uid, ok := userID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: "missing token"})
	}

	var req models.MovieRefRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	result, err := h.svc.ToggleWatchlist(uid, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// GetHistory returns the user's watch history.
// @Summary Get watch history
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max entries" default(12)
// @Success 200 {object} map[string]interface{}
// @Router /users/watch-history [get]
func (h *UserHandler) GetHistory(c fiber.Ctx) error {
	uid, ok := userID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: "missing token"})
	}
	limit := fiber.Query(c, "limit", 12)

	entries, err := h.svc.GetHistory(uid, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"history": entries})
}

// AddHistory appends a watch history entry.
// @Summary Record watch history
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body models.MovieRefRequest true "Movie reference"
// @Success 201 {object} models.HistoryEntry
// @Failure 404 {object} ErrorResponse
// @Router /users/watch-history [post]
func (h *UserHandler) AddHistory(c fiber.Ctx) error {
	uid, ok := userID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: "missing token"})
	}

	var req models.MovieRefRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	entry, err := h.svc.AddToHistory(uid, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// RemoveHistory deletes the history entries for one movie.
// @Summary Remove watch history
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param movieID path int true "Movie ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Router /users/watch-history/{movieID} [delete]
func (h *UserHandler) RemoveHistory(c fiber.Ctx) error {
	uid, ok := userID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: "missing token"})
	}

	movieID, err := strconv.Atoi(c.Params("movieID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid movie ID"})
	}

	if err := h.svc.RemoveFromHistory(uid, movieID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "removed from history"})
}

// RateMovie creates or replaces a rating.
// @Summary Rate a movie
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body models.RateMovieRequest true "Rating payload"
// @Success 200 {object} models.Rating
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/ratings [post]
func (h *UserHandler) RateMovie(c fiber.Ctx) error {
	uid, ok := userID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: "missing token"})
	}

	var req models.RateMovieRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	rating, err := h.svc.RateMovie(uid, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rating)
}

// GetRatings returns the user's ratings.
// @Summary Get ratings
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /users/ratings [get]
func (h *UserHandler) GetRatings(c fiber.Ctx) error {
	uid, ok := userID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: "missing token"})
	}

	ratings, err := h.svc.GetRatings(uid)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"ratings": ratings})
}

// GetRating returns the user's rating for one movie.
// @Summary Get rating for a movie
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param movieID path int true "Movie ID"
// @Success 200 {object} models.Rating
// @Failure 404 {object} ErrorResponse
// @Router /users/ratings/{movieID} [get]
func (h *UserHandler) GetRating(c fiber.Ctx) error {
	uid, ok := userID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: "missing token"})
	}

	movieID, err := strconv.Atoi(c.Params("movieID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid movie ID"})
	}

	rating, err := h.svc.GetRating(uid, movieID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rating)
}

// SetGenrePreferences replaces the user's preferred genres.
// @Summary Set genre preferences
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body models.SetGenrePreferencesRequest true "Genre IDs"
// @Success 200 {object} models.GenrePreferencesResponse
// @Failure 400 {object} ErrorResponse
// @Router /users/genre-preferences [put]
func (h *UserHandler) SetGenrePreferences(c fiber.Ctx) error {
	uid, ok := userID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: "missing token"})
	}

	var req models.SetGenrePreferencesRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	resp, err := h.svc.SetGenrePreferences(uid, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// GetGenrePreferences returns the user's preferred genres.
// @Summary Get genre preferences
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.GenrePreferencesResponse
// @Router /users/genre-preferences [get]
func (h *UserHandler) GetGenrePreferences(c fiber.Ctx) error {
	uid, ok := userID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: "missing token"})
	}

	resp, err := h.svc.GetGenrePreferences(uid)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
