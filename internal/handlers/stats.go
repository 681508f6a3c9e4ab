package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/travel-buddy/backend/internal/auth"
	"example.com/travel-buddy/backend/internal/repository"
)

type StatsHandler struct {
	Stats *repository.StatsRepository
}

// NewStatsHandler создает обработчик статистики.
func NewStatsHandler(stats *repository.StatsRepository) *StatsHandler {
	return &StatsHandler{Stats: stats}
}

type OverviewResponse struct {
	TotalTrips     int     `json:"total_trips"`
	PlannedTrips   int     `json:"planned_trips"`
	CompletedTrips int     `json:"completed_trips"`
	CancelledTrips int     `json:"cancelled_trips"`
	TotalBudget    float64 `json:"total_budget"`
}

// Overview возвращает сводку по поездкам пользователя.
func (h *StatsHandler) Overview(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	overview, err := h.Stats.Overview(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, OverviewResponse{
		TotalTrips:     overview.TotalTrips,
		PlannedTrips:   overview.PlannedTrips,
		CompletedTrips: overview.CompletedTrips,
		CancelledTrips: overview.CancelledTrips,
		TotalBudget:    overview.TotalBudget,
	})
}
