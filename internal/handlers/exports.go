package handlers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/travel-buddy/backend/internal/auth"
	"example.com/travel-buddy/backend/internal/models"
	"example.com/travel-buddy/backend/internal/repository"
)

type TripExportResponse struct {
	Trip       TripResponse      `json:"trip"`
	Activities []models.Activity `json:"activities"`
}

// ExportJSON выгружает поездку вместе с активностями в JSON-файл.
func (h *TripHandler) ExportJSON(c echo.Context) error {
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

	response := TripExportResponse{
		Trip:       toTripResponse(trip),
		Activities: h.resolveActivities(trip.ActivityIDs),
	}

	filename := "trip-" + trip.ID.String() + ".json"
	c.Response().Header().Set(echo.HeaderContentType, "application/json")
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.JSON(http.StatusOK, response)
}

// ExportCSV выгружает активности поездки в CSV-файл.
func (h *TripHandler) ExportCSV(c echo.Context) error {
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

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writeTripActivitiesCSV(writer, trip, h.resolveActivities(trip.ActivityIDs)); err != nil {
		return serverError(c)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return serverError(c)
	}

	filename := "trip-" + trip.ID.String() + "-activities.csv"
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *TripHandler) resolveActivities(ids []int64) []models.Activity {
	activities := make([]models.Activity, 0, len(ids))
	for _, id := range ids {
		activity, err := h.Activities.FindByID(id)
		if err != nil {
			continue
		}
		activities = append(activities, activity)
	}

	return activities
}

func writeTripActivitiesCSV(writer *csv.Writer, trip models.Trip, activities []models.Activity) error {
	header := []string{
		"trip_id",
		"trip_name",
		"trip_city",
		"activity_id",
		"activity_name",
		"activity_type",
		"time_slot",
		"duration_hours",
		"cost",
		"rating",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, activity := range activities {
		record := []string{
			trip.ID.String(),
			trip.Name,
			trip.City,
			strconv.FormatInt(activity.ID, 10),
			activity.Name,
			activity.Type,
			activity.TimeSlot,
			strconv.Itoa(activity.Duration),
			strconv.FormatFloat(activity.Cost, 'f', 2, 64),
			strconv.FormatFloat(activity.Rating, 'f', 1, 64),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}
