package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/traincamp/bootcamp-directory/internal/api/metrics"
	"github.com/traincamp/bootcamp-directory/internal/core/listing"
	"github.com/traincamp/bootcamp-directory/internal/core/ports"
)

// CourseHandler handles HTTP requests for course operations.
type CourseHandler struct {
	service ports.CourseService
}

func NewCourseHandler(service ports.CourseService) *CourseHandler {
	return &CourseHandler{service: service}
}

// List handles GET /api/v1/courses.
func (h *CourseHandler) List(c echo.Context) error {
	params := listing.Parse(c.QueryParams())
	items, meta, err := h.service.List(c.Request().Context(), params)
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, len(items), meta, items)
}

// ListByBootcamp handles GET /api/v1/bootcamps/:bootcampId/courses.
func (h *CourseHandler) ListByBootcamp(c echo.Context) error {
	items, err := h.service.ListByBootcamp(c.Request().Context(), c.Param("bootcampId"))
	if err != nil {
		return err
	}
	return respondCollection(c, http.StatusOK, len(items), items)
}

// Get handles GET /api/v1/courses/:id.
func (h *CourseHandler) Get(c echo.Context) error {
	course, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, course)
}

// Create handles POST /api/v1/bootcamps/:bootcampId/courses.
func (h *CourseHandler) Create(c echo.Context) error {
	var req createCourseRequest
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

	course, err := h.service.Create(c.Request().Context(), u, c.Param("bootcampId"), ports.CreateCourseInput{
		Title:                req.Title,
		Description:          req.Description,
		Weeks:                req.Weeks,
		Tuition:              req.Tuition,
		MinimumSkill:         req.MinimumSkill,
		ScholarshipAvailable: req.ScholarshipAvailable,
	})
	if err != nil {
		return err
	}

	metrics.ResourcesCreatedTotal.WithLabelValues("course").Inc()
	return respondData(c, http.StatusCreated, course)
}

// Update handles PUT /api/v1/courses/:id.
func (h *CourseHandler) Update(c echo.Context) error {
	var req updateCourseRequest
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

	course, err := h.service.Update(c.Request().Context(), u, c.Param("id"), ports.UpdateCourseInput{
		Title:                req.Title,
		Description:          req.Description,
		Weeks:                req.Weeks,
		Tuition:              req.Tuition,
		MinimumSkill:         req.MinimumSkill,
		ScholarshipAvailable: req.ScholarshipAvailable,
	})
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, course)
}

// Delete handles DELETE /api/v1/courses/:id.
func (h *CourseHandler) Delete(c echo.Context) error {
	u, err := principal(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), u, c.Param("id")); err != nil {
		return err
	}
	return respondData(c, http.StatusOK, map[string]any{})
}
