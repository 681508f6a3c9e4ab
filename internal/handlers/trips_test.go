package handlers

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"

	"example.com/travel-buddy/backend/internal/models"
)

// TestParseTripDatesValid проверяет корректный разбор дат поездки.
func TestParseTripDatesValid(t *testing.T) {
	start, end, err := parseTripDates("2026-06-01", "2026-06-07")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if start.Format(dateLayout) != "2026-06-01" {
		t.Fatalf("unexpected start: %s", start.Format(dateLayout))
	}
	if end.Format(dateLayout) != "2026-06-07" {
		t.Fatalf("unexpected end: %s", end.Format(dateLayout))
	}
}

// TestParseTripDatesInvalid проверяет ошибки при неверных датах.
func TestParseTripDatesInvalid(t *testing.T) {
	if _, _, err := parseTripDates("2026/06/01", "2026-06-07"); err == nil {
		t.Fatal("expected error for invalid start format")
	}

	if _, _, err := parseTripDates("2026-06-08", "2026-06-07"); err == nil {
		t.Fatal("expected error for end before start")
	}
}

// TestToTripResponseDays проверяет вычисление длительности поездки.
func TestToTripResponseDays(t *testing.T) {
	trip := models.Trip{
		ID:        uuid.New(),
		StartDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 7, 0, 0, 0, 0, time.UTC),
		Status:    models.TripStatusPlanned,
	}

	response := toTripResponse(trip)
	if response.NumberOfDays != 7 {
		t.Fatalf("expected 7 days, got %d", response.NumberOfDays)
	}
	if response.ActivityIDs == nil {
		t.Fatal("expected empty slice instead of nil activity ids")
	}

	trip.EndDate = trip.StartDate
	if got := toTripResponse(trip).NumberOfDays; got != 1 {
		t.Fatalf("expected 1 day for same-day trip, got %d", got)
	}
}

// TestWriteTripActivitiesCSV проверяет формат CSV-выгрузки поездки.
func TestWriteTripActivitiesCSV(t *testing.T) {
	trip := models.Trip{ID: uuid.New(), Name: "Summer in Paris", City: "Paris"}
	activities := []models.Activity{
		{ID: 1, Name: "Louvre Museum", Type: "museum", Duration: 3, Cost: 17, Rating: 4.8},
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writeTripActivitiesCSV(writer, trip, activities); err != nil {
		t.Fatalf("failed to write csv: %v", err)
	}
	writer.Flush()

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("failed to read csv: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected header and one record, got %d rows", len(records))
	}
	if records[0][0] != "trip_id" {
		t.Fatalf("unexpected header: %v", records[0])
	}

	record := records[1]
	if record[4] != "Louvre Museum" || record[8] != "17.00" || record[9] != "4.8" {
		t.Fatalf("unexpected record: %v", record)
	}
}
