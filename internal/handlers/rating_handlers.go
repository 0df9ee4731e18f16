package handlers

import (
	"net/http"

	"menuboard/internal/models"
	"menuboard/internal/services"

	"github.com/labstack/echo/v4"
)

type RatingHandlers struct {
	ratingSvc services.RatingService
}

func NewRatingHandlers(ratingSvc services.RatingService) *RatingHandlers {
	return &RatingHandlers{ratingSvc: ratingSvc}
}

// Submit accepts a public rating submission. The visitor's address keys the
// throttle; the user agent is stored alongside the rating.
func (h *RatingHandlers) Submit(c echo.Context) error {
	var input models.RatingInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	id, err := h.ratingSvc.Submit(c.Request().Context(), &input, c.Request().UserAgent(), c.RealIP())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"id": id})
}

func (h *RatingHandlers) ListRatings(c echo.Context) error {
	ratings, err := h.ratingSvc.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"ratings": ratings})
}

func (h *RatingHandlers) DeleteRating(c echo.Context) error {
	id, err := parseID(c, "ratingId")
	if err != nil {
		return err
	}
	if err := h.ratingSvc.Delete(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *RatingHandlers) RatingStats(c echo.Context) error {
	stats, err := h.ratingSvc.Stats(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, stats)
}
