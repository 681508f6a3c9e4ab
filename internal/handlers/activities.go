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

type ActivityHandler struct {
	Store *catalog.ActivityStore
}

// NewActivityHandler создает обработчик каталога активностей.
func NewActivityHandler(store *catalog.ActivityStore) *ActivityHandler {
	return &ActivityHandler{Store: store}
}

type ActivityRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	City        string  `json:"city" validate:"required,max=100"`
	Type        string  `json:"type" validate:"required,max=50"`
	Description string  `json:"description" validate:"max=1000"`
	Duration    int     `json:"duration" validate:"gte=0"`
	Cost        float64 `json:"cost" validate:"gte=0"`
	Rating      float64 `json:"rating" validate:"gte=0,lte=5"`
	TimeSlot    string  `json:"timeSlot" validate:"omitempty,oneof=morning afternoon evening"`
}

// List возвращает все активности каталога.
func (h *ActivityHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]models.Activity{"activities": h.Store.FindAll()})
}

// Get возвращает активность по идентификатору.
func (h *ActivityHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid activity id")
	}

	activity, err := h.Store.FindByID(id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return notFound(c, "activity not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, activity)
}

// ListByCity возвращает активности города.
func (h *ActivityHandler) ListByCity(c echo.Context) error {
	city := strings.TrimSpace(c.Param("city"))
	if city == "" {
		return badRequest(c, "city is required")
	}

	return c.JSON(http.StatusOK, map[string][]models.Activity{"activities": h.Store.FindByCity(city)})
}

// ListByType возвращает активности заданного типа.
func (h *ActivityHandler) ListByType(c echo.Context) error {
	activityType := strings.TrimSpace(c.Param("type"))
	if activityType == "" {
		return badRequest(c, "type is required")
	}

	return c.JSON(http.StatusOK, map[string][]models.Activity{"activities": h.Store.FindByType(activityType)})
}

// ListTypes возвращает доступные типы активностей, опционально по городу.
func (h *ActivityHandler) ListTypes(c echo.Context) error {
	var types []string

	if city := strings.TrimSpace(c.QueryParam("city")); city != "" {
		types = h.Store.DistinctTypesByCity(city)
	} else {
		types = h.Store.DistinctTypes()
	}

	return c.JSON(http.StatusOK, map[string][]string{"types": types})
}

// Create добавляет активность в каталог.
func (h *ActivityHandler) Create(c echo.Context) error {
	var req ActivityRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	activity, err := h.Store.Save(toActivity(0, req))
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, activity)
}

// Update обновляет активность каталога.
func (h *ActivityHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid activity id")
	}

	if _, err := h.Store.FindByID(id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return notFound(c, "activity not found")
		}
		return serverError(c)
	}

	var req ActivityRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	activity, err := h.Store.Save(toActivity(id, req))
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, activity)
}

// Delete удаляет активность из каталога.
func (h *ActivityHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid activity id")
	}

	if err := h.Store.DeleteByID(id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return notFound(c, "activity not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

func toActivity(id int64, req ActivityRequest) models.Activity {
	return models.Activity{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		City:        strings.TrimSpace(req.City),
		Type:        strings.TrimSpace(req.Type),
		Description: strings.TrimSpace(req.Description),
		Duration:    req.Duration,
		Cost:        req.Cost,
		Rating:      req.Rating,
		TimeSlot:    req.TimeSlot,
	}
}
