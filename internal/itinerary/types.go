// Package itinerary реализует построение маршрута поездки: детерминированный
// одношаговый жадный распределитель активностей по дням и слотам времени.
package itinerary

// FailureKind классифицирует неуспешный результат построения маршрута.
// Наружу уходит только success+message, вид ошибки нужен внутренним проверкам.
type FailureKind string

const (
	FailureNone            FailureKind = ""
	FailureInvalidCity     FailureKind = "invalid_city"
	FailureInvalidDuration FailureKind = "invalid_duration"
	FailureInvalidBudget   FailureKind = "invalid_budget"
	FailureNoCandidates    FailureKind = "no_candidates"
)

// Request описывает запрос на построение маршрута.
type Request struct {
	City          string   `json:"city"`
	Budget        float64  `json:"budget"`
	DurationDays  int      `json:"durationDays"`
	ActivityTypes []string `json:"activityTypes,omitempty"`
	Preference    string   `json:"preference,omitempty"`
}

// ScheduledActivity — активность, закрепленная за конкретным слотом дня.
// Время начала и конца берется из таблицы слотов, не из самой активности.
type ScheduledActivity struct {
	ActivityID  int64   `json:"activityId"`
	Name        string  `json:"name"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	Cost        float64 `json:"cost"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
}

// Day — один день маршрута. DayCost поддерживается инкрементально
// при каждом добавлении активности.
type Day struct {
	DayNumber  int                 `json:"dayNumber"`
	Date       string              `json:"date"`
	DayCost    float64             `json:"dayCost"`
	Activities []ScheduledActivity `json:"activities"`
}

// Itinerary — агрегат-результат построения. Дни и их активности принадлежат
// агрегату целиком и не изменяются после возврата результата.
type Itinerary struct {
	Success         bool        `json:"success"`
	Message         string      `json:"message"`
	Kind            FailureKind `json:"-"`
	City            string      `json:"city,omitempty"`
	TotalDays       int         `json:"totalDays"`
	TotalCost       float64     `json:"totalCost"`
	RemainingBudget float64     `json:"remainingBudget"`
	TotalActivities int         `json:"totalActivities"`
	Days            []Day       `json:"days,omitempty"`
}

// NewDay создает пустой день маршрута.
func NewDay(dayNumber int, date string) Day {
	return Day{DayNumber: dayNumber, Date: date}
}

// AddActivity добавляет активность в день и обновляет стоимость дня.
func (d *Day) AddActivity(activity ScheduledActivity) {
	d.Activities = append(d.Activities, activity)
	d.DayCost += activity.Cost
}

// RecomputeCost пересчитывает стоимость дня по списку активностей.
func (d *Day) RecomputeCost() float64 {
	var cost float64
	for _, activity := range d.Activities {
		cost += activity.Cost
	}
	return cost
}

// AddDay добавляет день в маршрут и обновляет бегущие итоги агрегата.
func (i *Itinerary) AddDay(day Day) {
	i.Days = append(i.Days, day)
	i.TotalCost += day.DayCost
	i.TotalActivities += len(day.Activities)
}

// RecomputeTotals пересчитывает итоги маршрута с нуля по списку дней.
// Инкрементальные значения обязаны совпадать с пересчитанными.
func (i *Itinerary) RecomputeTotals() (totalCost float64, totalActivities int) {
	for _, day := range i.Days {
		totalCost += day.RecomputeCost()
		totalActivities += len(day.Activities)
	}
	return totalCost, totalActivities
}

func newFailure(kind FailureKind, message string) Itinerary {
	return Itinerary{Success: false, Kind: kind, Message: message}
}
