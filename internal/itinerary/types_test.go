package itinerary

import (
	"math/rand"
	"testing"
)

// TestAggregateTotalsMatchRecompute проверяет свойство агрегата: бегущие
// итоги совпадают с пересчитанными с нуля после любой последовательности
// добавлений.
func TestAggregateTotalsMatchRecompute(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 50; run++ {
		var result Itinerary

		days := 1 + rng.Intn(5)
		var id int64
		for dayNumber := 1; dayNumber <= days; dayNumber++ {
			day := NewDay(dayNumber, "2026-08-01")

			for i := 0; i < 1+rng.Intn(3); i++ {
				id++
				day.AddActivity(ScheduledActivity{
					ActivityID: id,
					Cost:       float64(rng.Intn(200)) / 2,
				})
			}

			if day.DayCost != day.RecomputeCost() {
				t.Fatalf("run %d: dayCost %v != recomputed %v", run, day.DayCost, day.RecomputeCost())
			}

			result.AddDay(day)
		}

		totalCost, totalActivities := result.RecomputeTotals()
		if result.TotalCost != totalCost {
			t.Fatalf("run %d: totalCost %v != recomputed %v", run, result.TotalCost, totalCost)
		}
		if result.TotalActivities != totalActivities {
			t.Fatalf("run %d: totalActivities %d != recomputed %d", run, result.TotalActivities, totalActivities)
		}
	}
}

// TestAddDayKeepsOrder проверяет порядок дней и неизменность их содержимого.
func TestAddDayKeepsOrder(t *testing.T) {
	var result Itinerary

	first := NewDay(1, "2026-08-01")
	first.AddActivity(ScheduledActivity{ActivityID: 1, Cost: 10})
	second := NewDay(3, "2026-08-03")
	second.AddActivity(ScheduledActivity{ActivityID: 2, Cost: 20})

	result.AddDay(first)
	result.AddDay(second)

	if len(result.Days) != 2 || result.Days[0].DayNumber != 1 || result.Days[1].DayNumber != 3 {
		t.Fatalf("unexpected day order: %+v", result.Days)
	}
	if result.TotalCost != 30 || result.TotalActivities != 2 {
		t.Fatalf("totals = (%v, %d), want (30, 2)", result.TotalCost, result.TotalActivities)
	}
}
