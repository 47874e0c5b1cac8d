package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/traincamp/bootcamp-directory/internal/api/metrics"
	"github.com/traincamp/bootcamp-directory/internal/core/listing"
	"github.com/traincamp/bootcamp-directory/internal/core/ports"
)

// BootcampHandler handles HTTP requests for bootcamp operations.
type BootcampHandler struct {
	service ports.BootcampService
}

func NewBootcampHandler(service ports.BootcampService) *BootcampHandler {
	return &BootcampHandler{service: service}
}

// List handles GET /api/v1/bootcamps with filtering, field selection,
// sorting and pagination via the query string.
func (h *BootcampHandler) List(c echo.Context) error {
	params := listing.Parse(c.QueryParams())
	items, meta, err := h.service.List(c.Request().Context(), params)
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, len(items), meta, items)
}

// Get handles GET /api/v1/bootcamps/:id.
func (h *BootcampHandler) Get(c echo.Context) error {
	b, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, b)
}

// Create handles POST /api/v1/bootcamps.
func (h *BootcampHandler) Create(c echo.Context) error {
	var req createBootcampRequest
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

	b, err := h.service.Create(c.Request().Context(), u, ports.CreateBootcampInput{
		Name:          req.Name,
		Description:   req.Description,
		Website:       req.Website,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		Careers:       req.Careers,
		Housing:       req.Housing,
		JobAssistance: req.JobAssistance,
		JobGuarantee:  req.JobGuarantee,
		AcceptGI:      req.AcceptGI,
	})
	if err != nil {
		return err
	}

	metrics.ResourcesCreatedTotal.WithLabelValues("bootcamp").Inc()
	return respondData(c, http.StatusCreated, b)
}

// Update handles PUT /api/v1/bootcamps/:id.
func (h *BootcampHandler) Update(c echo.Context) error {
	var req updateBootcampRequest
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

	b, err := h.service.Update(c.Request().Context(), u, c.Param("id"), ports.UpdateBootcampInput{
		Name:          req.Name,
		Description:   req.Description,
		Website:       req.Website,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		Careers:       req.Careers,
		Housing:       req.Housing,
		JobAssistance: req.JobAssistance,
		JobGuarantee:  req.JobGuarantee,
		AcceptGI:      req.AcceptGI,
	})
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, b)
}

// Delete handles DELETE /api/v1/bootcamps/:id; it cascades to the bootcamp's
// courses and reviews.
func (h *BootcampHandler) Delete(c echo.Context) error {
	u, err := principal(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), u, c.Param("id")); err != nil {
		return err
	}
	return respondData(c, http.StatusOK, map[string]any{})
}

// WithinRadius handles GET /api/v1/bootcamps/radius/:zipcode/:distance.
// Distance is in miles.
func (h *BootcampHandler) WithinRadius(c echo.Context) error {
	distance, err := strconv.ParseFloat(c.Param("distance"), 64)
	if err != nil || distance <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "distance must be a positive number")
	}

	items, err := h.service.WithinRadius(c.Request().Context(), c.Param("zipcode"), distance)
	if err != nil {
		return err
	}
	return respondCollection(c, http.StatusOK, len(items), items)
}

// UploadPhoto handles PUT /api/v1/bootcamps/:id/photo (multipart form,
// field name "file").
func (h *BootcampHandler) UploadPhoto(c echo.Context) error {
	u, err := principal(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		metrics.PhotoUploadsTotal.WithLabelValues("rejected").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "please upload a file")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	name, err := h.service.UploadPhoto(c.Request().Context(), u, c.Param("id"), ports.PhotoUpload{
		Reader:      src,
		Size:        fileHeader.Size,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Filename:    fileHeader.Filename,
	})
	if err != nil {
		metrics.PhotoUploadsTotal.WithLabelValues("rejected").Inc()
		return err
	}

	metrics.PhotoUploadsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, photoResponse{Success: true, Data: name})
}
