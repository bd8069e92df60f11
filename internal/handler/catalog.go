package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"learntechnotes-backend/internal/service"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

func (h *CatalogHandler) GetCourses(c echo.Context) error {
	ctx := c.Request().Context()

	courses, err := h.catalogService.GetCourses(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, courses)
}
