package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/aravind-gm/CINEPLEXFINAL/internal/service"
)

// MovieHandler handles HTTP requests for the movie catalog.
type MovieHandler struct {
	svc *service.MovieService
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(svc *service.MovieService) *MovieHandler {
	return &MovieHandler{svc: svc}
}

// Root returns the fixed API status payload.
// @Summary API status
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func (h *MovieHandler) Root(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Movie Recommendation System API",
	})
}

// Popular returns a paginated list of movies ranked by popularity.
// @Summary Popular movies
// @Tags movies
// @Produce json
// @Param page query int false "Page number" default(1)
// @Success 200 {object} models.MovieListResponse
// @Failure 500 {object} ErrorResponse
// @Router /movies/popular [get]
func (h *MovieHandler) Popular(c fiber.Ctx) error {
	page := fiber.Query(c, "page", 1)

	result, err := h.svc.ListPopular(page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// Search returns movies matching the title query.
// @Summary Search movies
// @Tags movies
// @Produce json
// @Param query query string true "Title query"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} models.MovieListResponse
// @Failure 400 {object} ErrorResponse
// @Router /movies/search [get]
func (h *MovieHandler) Search(c fiber.Ctx) error {
	query := c.Query("query")
	page := fiber.Query(c, "page", 1)

	result, err := h.svc.Search(query, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// Genres returns all genres.
// @Summary List genres
// @Tags movies
// @Produce json
// @Success 200 {array} models.Genre
// @Failure 500 {object} ErrorResponse
// @Router /movies/genres [get]
func (h *MovieHandler) Genres(c fiber.Ctx) error {
	genres, err := h.svc.ListGenres()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"genres": genres})
}

// ByGenre returns movies in one genre.
// @Summary Movies by genre
// @Tags movies
// @Produce json
// @Param genreID path int true "Genre ID"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} models.MovieListResponse
// @Failure 400 {object} ErrorResponse
// @Router /movies/genre/{genreID} [get]
func (h *MovieHandler) ByGenre(c fiber.Ctx) error {
	genreID, err := strconv.Atoi(c.Params("genreID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid genre ID"})
	}
	page := fiber.Query(c, "page", 1)

	result, err := h.svc.ListByGenre(genreID, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// Detail returns one movie with its genres.
// @Summary Get movie detail
// @Tags movies
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} models.MovieResponse
// @Failure 404 {object} ErrorResponse
// @Router /movies/{id} [get]
func (h *MovieHandler) Detail(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid movie ID"})
	}

	detail, err := h.svc.GetMovieDetail(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(detail)
}

// Similar returns movies sharing a genre with the given movie.
// @Summary Similar movies
// @Tags movies
// @Produce json
// @Param id path int true "Movie ID"
// @Param limit query int false "Max results" default(8)
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} ErrorResponse
// @Router /movies/{id}/similar [get]
func (h *MovieHandler) Similar(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid movie ID"})
	}
	limit := fiber.Query(c, "limit", 8)

	movies, err := h.svc.GetSimilar(id, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"results":       movies,
		"total_results": len(movies),
	})
}

// Sync triggers a catalog sync from TMDB.
// @Summary Sync movies from TMDB
// @Tags admin
// @Produce json
// @Param pages query int false "Number of pages to sync" default(5)
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Router /admin/sync [post]
func (h *MovieHandler) Sync(c fiber.Ctx) error {
	pages := fiber.Query(c, "pages", 5)
	if pages < 1 {
		pages = 1
	}
	if pages > 50 {
		pages = 50
	}

	count, err := h.svc.SyncMovies(pages)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":       "sync completed",
		"movies_synced": count,
		"pages":         pages,
	})
}
