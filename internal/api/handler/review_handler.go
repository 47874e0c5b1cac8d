package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/traincamp/bootcamp-directory/internal/api/metrics"
	"github.com/traincamp/bootcamp-directory/internal/core/listing"
	"github.com/traincamp/bootcamp-directory/internal/core/ports"
)

// ReviewHandler handles HTTP requests for review operations.
type ReviewHandler struct {
	service ports.ReviewService
}

func NewReviewHandler(service ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// List handles GET /api/v1/reviews.
func (h *ReviewHandler) List(c echo.Context) error {
	params := listing.Parse(c.QueryParams())
	items, meta, err := h.service.List(c.Request().Context(), params)
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, len(items), meta, items)
}

// ListByBootcamp handles GET /api/v1/bootcamps/:bootcampId/reviews.
func (h *ReviewHandler) ListByBootcamp(c echo.Context) error {
	items, err := h.service.ListByBootcamp(c.Request().Context(), c.Param("bootcampId"))
	if err != nil {
		return err
	}
	return respondCollection(c, http.StatusOK, len(items), items)
}

// Get handles GET /api/v1/reviews/:id.
func (h *ReviewHandler) Get(c echo.Context) error {
	review, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, review)
}

// Create handles POST /api/v1/bootcamps/:bootcampId/reviews.
func (h *ReviewHandler) Create(c echo.Context) error {
	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	u, err := principal(c)
	if err != nil {
		return err
	}

	review, err := h.service.Create(c.Request().Context(), u, c.Param("bootcampId"), ports.CreateReviewInput{
		Title:  req.Title,
		Text:   req.Text,
		Rating: req.Rating,
	})
	if err != nil {
		return err
	}

	metrics.ResourcesCreatedTotal.WithLabelValues("review").Inc()
	return respondData(c, http.StatusCreated, review)
}

// Update handles PUT /api/v1/reviews/:id.
func (h *ReviewHandler) Update(c echo.Context) error {
	var req updateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	u, err := principal(c)
	if err != nil {
		return err
	}

	review, err := h.service.Update(c.Request().Context(), u, c.Param("id"), ports.UpdateReviewInput{
		Title:  req.Title,
		Text:   req.Text,
		Rating: req.Rating,
	})
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, review)
}

// Delete handles DELETE /api/v1/reviews/:id.
func (h *ReviewHandler) Delete(c echo.Context) error {
	u, err := principal(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), u, c.Param("id")); err != nil {
		return err
	}
	return respondData(c, http.StatusOK, map[string]any{})
}
