package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/travel-buddy/backend/internal/auth"
	"example.com/travel-buddy/backend/internal/catalog"
	"example.com/travel-buddy/backend/internal/models"
	"example.com/travel-buddy/backend/internal/notifications"
	"example.com/travel-buddy/backend/internal/repository"
)

const dateLayout = "2006-01-02"

type TripHandler struct {
	Trips      *repository.TripRepository
	Activities *catalog.ActivityStore
	Notifier   *notifications.Hub
}

// NewTripHandler создает обработчик поездок.
func NewTripHandler(trips *repository.TripRepository, activities *catalog.ActivityStore, notifier *notifications.Hub) *TripHandler {
	return &TripHandler{Trips: trips, Activities: activities, Notifier: notifier}
}

type TripRequest struct {
	Name      string  `json:"name" validate:"required,max=200"`
	City      string  `json:"city" validate:"required,max=100"`
	StartDate string  `json:"start_date" validate:"required"`
	EndDate   string  `json:"end_date" validate:"required"`
	Budget    float64 `json:"budget" validate:"gt=0"`
}

type TripStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type TripResponse struct {
	ID           uuid.UUID         `json:"id"`
	Name         string            `json:"name"`
	City         string            `json:"city"`
	StartDate    string            `json:"start_date"`
	EndDate      string            `json:"end_date"`
	NumberOfDays int               `json:"number_of_days"`
	Budget       float64           `json:"budget"`
	ActivityIDs  []int64           `json:"activity_ids"`
	Status       models.TripStatus `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// List возвращает поездки пользователя, опционально отфильтрованные по городу.
func (h *TripHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var (
		trips []models.Trip
		err   error
	)

	if city := strings.TrimSpace(c.QueryParam("city")); city != "" {
		trips, err = h.Trips.ListByUserAndCity(c.Request().Context(), userID, city)
	} else {
		trips, err = h.Trips.ListByUser(c.Request().Context(), userID)
	}
	if err != nil {
		return serverError(c)
	}

	response := make([]TripResponse, 0, len(trips))
	for _, trip := range trips {
		response = append(response, toTripResponse(trip))
	}

	return c.JSON(http.StatusOK, map[string][]TripResponse{"trips": response})
}

// Get возвращает поездку по идентификатору.
func (h *TripHandler) Get(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid trip id")
	}

	trip, err := h.Trips.GetByID(c.Request().Context(), userID, tripID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "trip not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, toTripResponse(trip))
}

// Create создает новую поездку.
func (h *TripHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req TripRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	startDate, endDate, err := parseTripDates(req.StartDate, req.EndDate)
	if err != nil {
		return badRequest(c, err.Error())
	}

	trip, err := h.Trips.Create(c.Request().Context(), userID, strings.TrimSpace(req.Name), strings.TrimSpace(req.City), startDate, endDate, req.Budget)
	if err != nil {
		return serverError(c)
	}

	publishTripEvent(h.Notifier, userID, "trip_created", trip.ID)
	return c.JSON(http.StatusCreated, toTripResponse(trip))
}

// Update обновляет основные поля поездки.
func (h *TripHandler) Update(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid trip id")
	}

	var req TripRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	startDate, endDate, err := parseTripDates(req.StartDate, req.EndDate)
	if err != nil {
		return badRequest(c, err.Error())
	}

	trip, err := h.Trips.Update(c.Request().Context(), userID, tripID, strings.TrimSpace(req.Name), strings.TrimSpace(req.City), startDate, endDate, req.Budget)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "trip not found")
		}
		return serverError(c)
	}

	publishTripEvent(h.Notifier, userID, "trip_updated", trip.ID)
	return c.JSON(http.StatusOK, toTripResponse(trip))
}

// Delete удаляет поездку.
func (h *TripHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid trip id")
	}

	if err := h.Trips.Delete(c.Request().Context(), userID, tripID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "trip not found")
		}
		return serverError(c)
	}

	publishTripEvent(h.Notifier, userID, "trip_deleted", tripID)
	return c.NoContent(http.StatusNoContent)
}

// AddActivity добавляет активность каталога в поездку.
func (h *TripHandler) AddActivity(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid trip id")
	}

	activityID, err := strconv.ParseInt(c.Param("activityId"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid activity id")
	}

	if _, err := h.Activities.FindByID(activityID); err != nil {
		return notFound(c, "activity not found")
	}

	trip, err := h.Trips.AddActivity(c.Request().Context(), userID, tripID, activityID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "trip not found")
		}
		return serverError(c)
	}

	publishTripEvent(h.Notifier, userID, "trip_updated", trip.ID)
	return c.JSON(http.StatusOK, toTripResponse(trip))
}

// UpdateStatus переводит поездку в новый статус.
func (h *TripHandler) UpdateStatus(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid trip id")
	}

	var req TripStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	status := models.TripStatus(strings.ToUpper(strings.TrimSpace(req.Status)))

	trip, err := h.Trips.UpdateStatus(c.Request().Context(), userID, tripID, status)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInvalid):
			return badRequest(c, "invalid status")
		case errors.Is(err, repository.ErrNotFound):
			return notFound(c, "trip not found")
		default:
			return serverError(c)
		}
	}

	publishTripEvent(h.Notifier, userID, "trip_updated", trip.ID)
	return c.JSON(http.StatusOK, toTripResponse(trip))
}

func toTripResponse(trip models.Trip) TripResponse {
	activityIDs := trip.ActivityIDs
	if activityIDs == nil {
		activityIDs = []int64{}
	}

	return TripResponse{
		ID:           trip.ID,
		Name:         trip.Name,
		City:         trip.City,
		StartDate:    trip.StartDate.Format(dateLayout),
		EndDate:      trip.EndDate.Format(dateLayout),
		NumberOfDays: int(trip.EndDate.Sub(trip.StartDate).Hours()/24) + 1,
		Budget:       trip.Budget,
		ActivityIDs:  activityIDs,
		Status:       trip.Status,
		CreatedAt:    trip.CreatedAt,
		UpdatedAt:    trip.UpdatedAt,
	}
}

func parseTripDates(start, end string) (time.Time, time.Time, error) {
	startDate, err := time.Parse(dateLayout, start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start_date must be in YYYY-MM-DD format")
	}

	endDate, err := time.Parse(dateLayout, end)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end_date must be in YYYY-MM-DD format")
	}

	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, fmt.Errorf("end_date must not be before start_date")
	}

	return startDate, endDate, nil
}
