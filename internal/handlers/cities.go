package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"example.com/travel-buddy/backend/internal/catalog"
	"example.com/travel-buddy/backend/internal/models"
)

type CityHandler struct {
	Store *catalog.CityStore
}

// NewCityHandler создает обработчик справочника городов.
func NewCityHandler(store *catalog.CityStore) *CityHandler {
	return &CityHandler{Store: store}
}

// List возвращает все города справочника.
func (h *CityHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]models.City{"cities": h.Store.FindAll()})
}

// Get возвращает город по идентификатору.
func (h *CityHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid city id")
	}

	city, err := h.Store.FindByID(id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return notFound(c, "city not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, city)
}

// GetByName возвращает город по названию без учета регистра.
func (h *CityHandler) GetByName(c echo.Context) error {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		return badRequest(c, "name is required")
	}

	city, err := h.Store.FindByName(name)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return notFound(c, "city not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, city)
}
