package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/traincamp/bootcamp-directory/internal/core/listing"
)

// dataResponse is the success envelope for single-resource responses.
type dataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// listResponse is the success envelope for paged collection responses.
type listResponse struct {
	Success    bool             `json:"success"`
	Count      int              `json:"count"`
	Pagination listing.PageMeta `json:"pagination"`
	Data       any              `json:"data"`
}

// collectionResponse is the envelope for unpaginated collections (nested
// lists, radius search).
type collectionResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
	Data    any  `json:"data"`
}

func respondData(c echo.Context, code int, v any) error {
	return c.JSON(code, dataResponse{Success: true, Data: v})
}

func respondList(c echo.Context, code, count int, meta listing.PageMeta, v any) error {
	return c.JSON(code, listResponse{Success: true, Count: count, Pagination: meta, Data: v})
}

func respondCollection(c echo.Context, code, count int, v any) error {
	return c.JSON(code, collectionResponse{Success: true, Count: count, Data: v})
}
