package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"example.com/travel-buddy/backend/internal/auth"
	"example.com/travel-buddy/backend/internal/catalog"
	"example.com/travel-buddy/backend/internal/itinerary"
	"example.com/travel-buddy/backend/internal/notifications"
)

type ItineraryHandler struct {
	Builder  *itinerary.Builder
	Store    *catalog.ActivityStore
	Notifier *notifications.Hub
}

// NewItineraryHandler создает обработчик генерации маршрутов.
func NewItineraryHandler(builder *itinerary.Builder, store *catalog.ActivityStore, notifier *notifications.Hub) *ItineraryHandler {
	return &ItineraryHandler{Builder: builder, Store: store, Notifier: notifier}
}

// Build генерирует маршрут по заявке.
// Неудачная генерация — это обычный результат, статус всегда 200.
func (h *ItineraryHandler) Build(c echo.Context) error {
	var req itinerary.Request
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}

	result := h.Builder.Build(req)

	if result.Success {
		if userID, ok := auth.UserIDFromContext(c); ok {
			publishItineraryEvent(h.Notifier, userID, result.City, result.TotalDays, result.TotalActivities)
		}
	}

	return c.JSON(http.StatusOK, result)
}

// Types возвращает типы активностей для формы генерации маршрута.
func (h *ItineraryHandler) Types(c echo.Context) error {
	var types []string

	if city := strings.TrimSpace(c.QueryParam("city")); city != "" {
		types = h.Store.DistinctTypesByCity(city)
	} else {
		types = h.Store.DistinctTypes()
	}

	return c.JSON(http.StatusOK, map[string][]string{"types": types})
}
