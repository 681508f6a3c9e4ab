package itinerary

import (
	"slices"
	"strings"
	"time"

	"example.com/travel-buddy/backend/internal/models"
)

const dateLayout = "2006-01-02"

// Слоты дня с фиксированными окнами времени. Окна не зависят от
// длительности самой активности.
type slot struct {
	name  string
	start string
	end   string
}

var daySlots = [...]slot{
	{name: "morning", start: "09:00", end: "12:00"},
	{name: "afternoon", start: "14:00", end: "18:00"},
	{name: "evening", start: "19:00", end: "22:00"},
}

// ActivityLookup — единственная внешняя зависимость построителя:
// выборка активностей города (поиск без учета регистра, пустой срез —
// не ошибка).
type ActivityLookup interface {
	FindByCity(city string) []models.Activity
}

// Builder строит маршрут по запросу. Каждый вызов Build независим:
// снимок кандидатов, бюджет и набор занятых активностей живут в рамках
// одного построения, поэтому конкурентные вызовы безопасны.
type Builder struct {
	catalog ActivityLookup
	now     func() time.Time
}

// NewBuilder создает построитель маршрутов поверх каталога активностей.
func NewBuilder(catalog ActivityLookup) *Builder {
	return &Builder{catalog: catalog, now: time.Now}
}

// NewBuilderAt создает построитель с фиксированными часами. Дата маршрута
// считается от текущего момента запуска, а не от дат поездки, поэтому в
// тестах часы подменяются.
func NewBuilderAt(catalog ActivityLookup, now func() time.Time) *Builder {
	return &Builder{catalog: catalog, now: now}
}

// Build строит маршрут: валидация запроса, выборка и фильтрация кандидатов,
// ранжирование и жадное распределение по дням и слотам. Алгоритм не ищет
// глобальный оптимум: на каждом шаге берется первый подходящий кандидат
// в порядке ранжирования, что дает детерминированный результат.
// Любой отказ возвращается значением с success=false, без ошибок наружу.
func (b *Builder) Build(req Request) Itinerary {
	if req.City == "" {
		return newFailure(FailureInvalidCity, "City is required")
	}
	if req.DurationDays < 1 || req.DurationDays > 14 {
		return newFailure(FailureInvalidDuration, "Duration must be between 1 and 14 days")
	}
	if req.Budget <= 0 {
		return newFailure(FailureInvalidBudget, "Budget must be positive")
	}

	candidates := b.catalog.FindByCity(req.City)
	if len(candidates) == 0 {
		return newFailure(FailureNoCandidates, "No activities found for city: "+req.City)
	}

	// Фильтр по типам применяется только при непустом наборе: отсутствие
	// фильтра и фильтр, отсеявший всех кандидатов, различаются.
	if len(req.ActivityTypes) > 0 {
		candidates = filterByTypes(candidates, req.ActivityTypes)
		if len(candidates) == 0 {
			return newFailure(FailureNoCandidates, "No activities match the selected types")
		}
	}

	rankCandidates(candidates)

	perDay := ParsePreference(req.Preference).ActivitiesPerDay()

	result := Itinerary{
		Success:   true,
		Message:   "Itinerary generated successfully",
		City:      req.City,
		TotalDays: req.DurationDays,
	}

	remaining := req.Budget
	used := make(map[int64]struct{}, len(candidates))
	startDate := b.now()

	for dayNumber := 1; dayNumber <= req.DurationDays; dayNumber++ {
		day := NewDay(dayNumber, startDate.AddDate(0, 0, dayNumber-1).Format(dateLayout))

		for _, daySlot := range daySlots {
			if len(day.Activities) >= perDay {
				break
			}

			activity, ok := pickFirstEligible(candidates, used, remaining, daySlot.name)
			if !ok {
				continue
			}

			day.AddActivity(ScheduledActivity{
				ActivityID:  activity.ID,
				Name:        activity.Name,
				StartTime:   daySlot.start,
				EndTime:     daySlot.end,
				Cost:        activity.Cost,
				Type:        activity.Type,
				Description: activity.Description,
			})
			used[activity.ID] = struct{}{}
			remaining -= activity.Cost
		}

		// День без единой активности в результат не попадает.
		if len(day.Activities) > 0 {
			result.AddDay(day)
		}
	}

	result.RemainingBudget = remaining
	return result
}

func filterByTypes(activities []models.Activity, types []string) []models.Activity {
	accepted := make(map[string]struct{}, len(types))
	for _, t := range types {
		accepted[strings.ToLower(t)] = struct{}{}
	}

	var out []models.Activity
	for _, activity := range activities {
		if _, ok := accepted[strings.ToLower(activity.Type)]; ok {
			out = append(out, activity)
		}
	}
	return out
}

// rankCandidates сортирует кандидатов по рейтингу (убывание), при равном
// рейтинге — по стоимости (возрастание). Сортировка стабильная, это
// единственный сигнал приоритета для жадного цикла.
func rankCandidates(activities []models.Activity) {
	slices.SortStableFunc(activities, func(a, b models.Activity) int {
		if a.Rating != b.Rating {
			if a.Rating > b.Rating {
				return -1
			}
			return 1
		}
		if a.Cost != b.Cost {
			if a.Cost < b.Cost {
				return -1
			}
			return 1
		}
		return 0
	})
}

// pickFirstEligible выбирает первого подходящего кандидата в порядке
// ранжирования: не использован в этом построении, укладывается в остаток
// бюджета, слот совпадает или не задан. Именно первого, а не самого
// дешевого: при равных возможностях приоритет у рейтинга, не у запаса
// бюджета.
func pickFirstEligible(candidates []models.Activity, used map[int64]struct{}, remaining float64, slotName string) (models.Activity, bool) {
	for _, activity := range candidates {
		if _, taken := used[activity.ID]; taken {
			continue
		}
		if activity.Cost > remaining {
			continue
		}
		if activity.TimeSlot != "" && !strings.EqualFold(activity.TimeSlot, slotName) {
			continue
		}
		return activity, true
	}

	return models.Activity{}, false
}
