package itinerary

import "strings"

// Preference задает темп поездки и определяет лимит активностей в день.
type Preference int

const (
	PreferenceBalanced Preference = iota
	PreferenceRelaxed
	PreferenceIntensive
)

// ParsePreference разбирает предпочтение из запроса.
// Пустое или нераспознанное значение дает balanced.
func ParsePreference(value string) Preference {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "relaxed":
		return PreferenceRelaxed
	case "intensive":
		return PreferenceIntensive
	case "balanced":
		return PreferenceBalanced
	default:
		return PreferenceBalanced
	}
}

// ActivitiesPerDay возвращает лимит активностей в день для предпочтения.
// Отображение тотально: неизвестные значения трактуются как balanced.
func (p Preference) ActivitiesPerDay() int {
	switch p {
	case PreferenceRelaxed:
		return 2
	case PreferenceIntensive:
		return 4
	default:
		return 3
	}
}

// String возвращает каноническое имя предпочтения.
func (p Preference) String() string {
	switch p {
	case PreferenceRelaxed:
		return "relaxed"
	case PreferenceIntensive:
		return "intensive"
	default:
		return "balanced"
	}
}
