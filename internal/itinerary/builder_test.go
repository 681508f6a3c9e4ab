package itinerary

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"
	"time"

	"example.com/travel-buddy/backend/internal/models"
)

type staticCatalog struct {
	activities []models.Activity
}

func (c staticCatalog) FindByCity(city string) []models.Activity {
	var out []models.Activity
	for _, activity := range c.activities {
		if strings.EqualFold(activity.City, city) {
			out = append(out, activity)
		}
	}
	return out
}

func testClock() func() time.Time {
	return func() time.Time {
		return time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	}
}

func parisCandidates() []models.Activity {
	return []models.Activity{
		{ID: 1, Name: "Eiffel Tower", City: "Paris", Type: "landmark", Cost: 40, Rating: 4.5, TimeSlot: "morning"},
		{ID: 2, Name: "Louvre", City: "Paris", Type: "museum", Cost: 50, Rating: 4.0, TimeSlot: ""},
		{ID: 3, Name: "Seine Cruise", City: "Paris", Type: "nature", Cost: 30, Rating: 4.0, TimeSlot: "evening"},
	}
}

// TestBuildParisScenario проверяет опорный сценарий: бюджет 100, один день,
// предпочтение не задано.
func TestBuildParisScenario(t *testing.T) {
	builder := NewBuilderAt(staticCatalog{activities: parisCandidates()}, testClock())

	result := builder.Build(Request{City: "Paris", Budget: 100, DurationDays: 1})

	if !result.Success {
		t.Fatalf("expected success, got %q", result.Message)
	}
	if len(result.Days) != 1 {
		t.Fatalf("expected 1 day, got %d", len(result.Days))
	}

	day := result.Days[0]
	if len(day.Activities) != 2 {
		t.Fatalf("expected 2 activities, got %d", len(day.Activities))
	}

	first := day.Activities[0]
	if first.ActivityID != 1 || first.StartTime != "09:00" || first.EndTime != "12:00" {
		t.Fatalf("expected activity 1 in morning slot, got %+v", first)
	}

	second := day.Activities[1]
	if second.ActivityID != 2 || second.StartTime != "14:00" || second.EndTime != "18:00" {
		t.Fatalf("expected activity 2 in afternoon slot, got %+v", second)
	}

	if result.TotalCost != 90 {
		t.Fatalf("totalCost = %v, want 90", result.TotalCost)
	}
	if result.RemainingBudget != 10 {
		t.Fatalf("remainingBudget = %v, want 10", result.RemainingBudget)
	}
	if result.TotalActivities != 2 {
		t.Fatalf("totalActivities = %d, want 2", result.TotalActivities)
	}
	if day.Date != "2026-08-01" {
		t.Fatalf("date = %q, want 2026-08-01", day.Date)
	}
}

// TestBuildValidation проверяет порядок и тексты отказов валидации:
// первая сработавшая проверка выигрывает.
func TestBuildValidation(t *testing.T) {
	builder := NewBuilderAt(staticCatalog{}, testClock())

	tests := []struct {
		name    string
		request Request
		kind    FailureKind
		message string
	}{
		{
			name:    "empty city",
			request: Request{Budget: 100, DurationDays: 3},
			kind:    FailureInvalidCity,
			message: "City is required",
		},
		{
			name:    "city wins over duration",
			request: Request{DurationDays: 0, Budget: -5},
			kind:    FailureInvalidCity,
			message: "City is required",
		},
		{
			name:    "zero duration",
			request: Request{City: "Paris", Budget: 100, DurationDays: 0},
			kind:    FailureInvalidDuration,
			message: "Duration must be between 1 and 14 days",
		},
		{
			name:    "duration too long",
			request: Request{City: "Paris", Budget: 100, DurationDays: 15},
			kind:    FailureInvalidDuration,
			message: "Duration must be between 1 and 14 days",
		},
		{
			name:    "duration wins over budget",
			request: Request{City: "Paris", Budget: 0, DurationDays: 20},
			kind:    FailureInvalidDuration,
			message: "Duration must be between 1 and 14 days",
		},
		{
			name:    "non-positive budget",
			request: Request{City: "Paris", Budget: 0, DurationDays: 3},
			kind:    FailureInvalidBudget,
			message: "Budget must be positive",
		},
	}

	for _, tt := range tests {
		result := builder.Build(tt.request)
		if result.Success {
			t.Fatalf("%s: expected failure", tt.name)
		}
		if result.Kind != tt.kind {
			t.Fatalf("%s: kind = %q, want %q", tt.name, result.Kind, tt.kind)
		}
		if result.Message != tt.message {
			t.Fatalf("%s: message = %q, want %q", tt.name, result.Message, tt.message)
		}
		if len(result.Days) != 0 || result.TotalCost != 0 || result.TotalActivities != 0 {
			t.Fatalf("%s: failure must carry no days or totals", tt.name)
		}
	}
}

// TestBuildNoCandidates проверяет отказ для города без активностей.
func TestBuildNoCandidates(t *testing.T) {
	builder := NewBuilderAt(staticCatalog{activities: parisCandidates()}, testClock())

	result := builder.Build(Request{City: "Atlantis", Budget: 100, DurationDays: 1})

	if result.Success || result.Kind != FailureNoCandidates {
		t.Fatalf("expected no-candidates failure, got %+v", result)
	}
	if result.Message != "No activities found for city: Atlantis" {
		t.Fatalf("unexpected message %q", result.Message)
	}
}

// TestBuildTypeFilterExcludesAll проверяет отказ, когда фильтр по типам
// отсеивает всех кандидатов.
func TestBuildTypeFilterExcludesAll(t *testing.T) {
	activities := []models.Activity{
		{ID: 1, Name: "Eiffel Tower", City: "Paris", Type: "landmark", Cost: 40, Rating: 4.5},
	}
	builder := NewBuilderAt(staticCatalog{activities: activities}, testClock())

	result := builder.Build(Request{City: "Paris", Budget: 100, DurationDays: 1, ActivityTypes: []string{"museum"}})

	if result.Success || result.Kind != FailureNoCandidates {
		t.Fatalf("expected no-candidates failure, got %+v", result)
	}
	if result.Message != "No activities match the selected types" {
		t.Fatalf("unexpected message %q", result.Message)
	}
}

// TestBuildTypeFilterCaseInsensitive проверяет фильтр по типам без учета
// регистра и отсутствие фильтрации при пустом наборе.
func TestBuildTypeFilterCaseInsensitive(t *testing.T) {
	builder := NewBuilderAt(staticCatalog{activities: parisCandidates()}, testClock())

	result := builder.Build(Request{City: "Paris", Budget: 200, DurationDays: 1, ActivityTypes: []string{"MUSEUM"}})
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Message)
	}
	if result.TotalActivities != 1 || result.Days[0].Activities[0].ActivityID != 2 {
		t.Fatalf("expected only activity 2, got %+v", result.Days)
	}

	unfiltered := builder.Build(Request{City: "Paris", Budget: 200, DurationDays: 1, ActivityTypes: nil})
	if unfiltered.TotalActivities != 3 {
		t.Fatalf("empty filter must accept all, got %d activities", unfiltered.TotalActivities)
	}
}

// TestBuildGlobalDedup проверяет, что активность не повторяется между днями.
func TestBuildGlobalDedup(t *testing.T) {
	builder := NewBuilderAt(staticCatalog{activities: parisCandidates()}, testClock())

	result := builder.Build(Request{City: "Paris", Budget: 1000, DurationDays: 5})
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Message)
	}

	seen := make(map[int64]bool)
	for _, day := range result.Days {
		for _, activity := range day.Activities {
			if seen[activity.ActivityID] {
				t.Fatalf("activity %d scheduled twice", activity.ActivityID)
			}
			seen[activity.ActivityID] = true
		}
	}

	// Кандидатов всего три, так что занят может быть только первый день.
	if len(result.Days) != 1 || result.TotalActivities != 3 {
		t.Fatalf("expected single day with 3 activities, got %d days, %d activities", len(result.Days), result.TotalActivities)
	}
	if result.TotalDays != 5 {
		t.Fatalf("totalDays must stay as requested, got %d", result.TotalDays)
	}
}

// TestBuildPerDayCap проверяет лимиты активностей в день по предпочтениям.
func TestBuildPerDayCap(t *testing.T) {
	var activities []models.Activity
	for i := int64(1); i <= 12; i++ {
		activities = append(activities, models.Activity{
			ID: i, Name: "Spot", City: "Rome", Type: "landmark", Cost: 1, Rating: 4.0,
		})
	}
	builder := NewBuilderAt(staticCatalog{activities: activities}, testClock())

	tests := []struct {
		preference string
		perDay     int
	}{
		{"relaxed", 2},
		{"balanced", 3},
		{"intensive", 3}, // слотов в дне три, лимит 4 не достижим
		{"", 3},
		{"whatever", 3},
	}

	for _, tt := range tests {
		result := builder.Build(Request{City: "Rome", Budget: 100, DurationDays: 2, Preference: tt.preference})
		if !result.Success {
			t.Fatalf("%q: expected success, got %q", tt.preference, result.Message)
		}
		for _, day := range result.Days {
			if len(day.Activities) > tt.perDay {
				t.Fatalf("%q: day %d has %d activities, cap %d", tt.preference, day.DayNumber, len(day.Activities), tt.perDay)
			}
		}
	}
}

// TestBuildFixedSlotRespected проверяет, что активность с заданным слотом
// попадает только в него.
func TestBuildFixedSlotRespected(t *testing.T) {
	activities := []models.Activity{
		{ID: 1, Name: "Night Market", City: "Rome", Type: "nightlife", Cost: 10, Rating: 5.0, TimeSlot: "evening"},
		{ID: 2, Name: "Forum", City: "Rome", Type: "landmark", Cost: 10, Rating: 4.0, TimeSlot: ""},
	}
	builder := NewBuilderAt(staticCatalog{activities: activities}, testClock())

	result := builder.Build(Request{City: "Rome", Budget: 100, DurationDays: 1})
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Message)
	}

	for _, activity := range result.Days[0].Activities {
		if activity.ActivityID == 1 && activity.StartTime != "19:00" {
			t.Fatalf("fixed-slot activity placed at %s", activity.StartTime)
		}
	}
}

// TestBuildBudgetInvariant проверяет, что каждая выбранная активность
// укладывалась в остаток бюджета и итоговая сумма сходится точно.
func TestBuildBudgetInvariant(t *testing.T) {
	activities := []models.Activity{
		{ID: 1, Name: "A", City: "Rome", Type: "landmark", Cost: 45, Rating: 5.0},
		{ID: 2, Name: "B", City: "Rome", Type: "museum", Cost: 35, Rating: 4.5},
		{ID: 3, Name: "C", City: "Rome", Type: "nature", Cost: 30, Rating: 4.0},
		{ID: 4, Name: "D", City: "Rome", Type: "shopping", Cost: 5, Rating: 3.5},
	}
	builder := NewBuilderAt(staticCatalog{activities: activities}, testClock())

	budget := 90.0
	result := builder.Build(Request{City: "Rome", Budget: budget, DurationDays: 3})
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Message)
	}

	if result.RemainingBudget < 0 {
		t.Fatalf("remaining budget must never go negative, got %v", result.RemainingBudget)
	}
	if result.TotalCost+result.RemainingBudget != budget {
		t.Fatalf("totalCost %v + remaining %v != budget %v", result.TotalCost, result.RemainingBudget, budget)
	}

	remaining := budget
	for _, day := range result.Days {
		for _, activity := range day.Activities {
			if activity.Cost > remaining {
				t.Fatalf("activity %d cost %v exceeds remaining %v at pick time", activity.ActivityID, activity.Cost, remaining)
			}
			remaining -= activity.Cost
		}
	}
}

// TestBuildIdempotent проверяет, что перестановка входного снимка
// кандидатов не меняет результат: ранжирование задает тотальный порядок.
func TestBuildIdempotent(t *testing.T) {
	activities := []models.Activity{
		{ID: 1, Name: "A", City: "Rome", Type: "landmark", Cost: 40, Rating: 4.5, TimeSlot: "morning"},
		{ID: 2, Name: "B", City: "Rome", Type: "museum", Cost: 50, Rating: 4.0},
		{ID: 3, Name: "C", City: "Rome", Type: "nature", Cost: 30, Rating: 4.0, TimeSlot: "evening"},
		{ID: 4, Name: "D", City: "Rome", Type: "shopping", Cost: 20, Rating: 3.0},
		{ID: 5, Name: "E", City: "Rome", Type: "nightlife", Cost: 25, Rating: 4.0, TimeSlot: "evening"},
	}
	request := Request{City: "Rome", Budget: 150, DurationDays: 2, Preference: "intensive"}

	baseline := NewBuilderAt(staticCatalog{activities: activities}, testClock()).Build(request)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10; i++ {
		shuffled := make([]models.Activity, len(activities))
		copy(shuffled, activities)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		result := NewBuilderAt(staticCatalog{activities: shuffled}, testClock()).Build(request)
		if !reflect.DeepEqual(baseline, result) {
			t.Fatalf("shuffle %d produced different result:\n%+v\nvs\n%+v", i, baseline, result)
		}
	}
}

// TestBuildDatesFromRunDate фиксирует известное ограничение: даты маршрута
// считаются от даты запуска, даты самой поездки не учитываются.
func TestBuildDatesFromRunDate(t *testing.T) {
	builder := NewBuilderAt(staticCatalog{activities: parisCandidates()}, testClock())

	result := builder.Build(Request{City: "Paris", Budget: 1000, DurationDays: 3})
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Message)
	}

	for _, day := range result.Days {
		want := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day.DayNumber-1).Format("2006-01-02")
		if day.Date != want {
			t.Fatalf("day %d date = %q, want %q", day.DayNumber, day.Date, want)
		}
	}
}

// TestBuildCityCaseInsensitive проверяет поиск города без учета регистра.
func TestBuildCityCaseInsensitive(t *testing.T) {
	builder := NewBuilderAt(staticCatalog{activities: parisCandidates()}, testClock())

	result := builder.Build(Request{City: "pArIs", Budget: 100, DurationDays: 1})
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Message)
	}
}

// TestRankCandidates проверяет ранжирование: рейтинг по убыванию,
// при равенстве — стоимость по возрастанию, сортировка стабильная.
func TestRankCandidates(t *testing.T) {
	activities := []models.Activity{
		{ID: 1, Rating: 4.0, Cost: 50},
		{ID: 2, Rating: 4.5, Cost: 90},
		{ID: 3, Rating: 4.0, Cost: 30},
		{ID: 4, Rating: 4.0, Cost: 30},
	}

	rankCandidates(activities)

	wantOrder := []int64{2, 3, 4, 1}
	for i, want := range wantOrder {
		if activities[i].ID != want {
			t.Fatalf("position %d: got %d, want %d", i, activities[i].ID, want)
		}
	}
}

// TestParsePreference проверяет разбор предпочтений и дефолт balanced.
func TestParsePreference(t *testing.T) {
	tests := []struct {
		value string
		want  Preference
	}{
		{"relaxed", PreferenceRelaxed},
		{"Balanced", PreferenceBalanced},
		{"INTENSIVE", PreferenceIntensive},
		{"", PreferenceBalanced},
		{"extreme", PreferenceBalanced},
	}

	for _, tt := range tests {
		if got := ParsePreference(tt.value); got != tt.want {
			t.Fatalf("ParsePreference(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}

	if PreferenceRelaxed.ActivitiesPerDay() != 2 || PreferenceBalanced.ActivitiesPerDay() != 3 || PreferenceIntensive.ActivitiesPerDay() != 4 {
		t.Fatal("unexpected per-day caps")
	}
}
