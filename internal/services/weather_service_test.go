package services

import (
	"strings"
	"testing"

	"wayfarer/internal/models/response_models"
)

func juneClimate() map[int]MonthlyClimate {
	return map[int]MonthlyClimate{
		6: {Month: 6, TmaxC: f(25.3), TminC: f(17.1), PrecipDays: f(6), PrecipSumMM: f(40)},
	}
}

func TestInjectWeatherFillsMissingFields(t *testing.T) {
	days := dayPlans(t, "2026-06-10", 2)
	InjectWeather(days, juneClimate())

	for i := range days {
		w := days[i].Weather
		if w == nil {
			t.Fatalf("day %d weather not filled", i+1)
		}
		if w.Summary == nil || !strings.Contains(*w.Summary, "Seasonal averages for June") {
			t.Errorf("day %d summary = %v", i+1, w.Summary)
		}
		if w.HighC == nil || *w.HighC != 25.3 {
			t.Errorf("day %d high = %v", i+1, w.HighC)
		}
		if w.PrecipChance == nil || *w.PrecipChance != 0.2 {
			// 6 rainy days / 30 days in June
			t.Errorf("day %d precip chance = %v, want 0.2", i+1, w.PrecipChance)
		}

		tips := 0
		for _, n := range days[i].Notes {
			if strings.HasPrefix(n, "Weather tip (June):") {
				tips++
			}
		}
		if tips != 1 {
			t.Errorf("day %d has %d weather tips, want 1", i+1, tips)
		}
	}
}

func TestInjectWeatherKeepsModelValues(t *testing.T) {
	days := dayPlans(t, "2026-06-10", 1)
	high := 30.0
	summary := "Hot and sunny"
	days[0].Weather = &response_models.WeatherSummary{Summary: &summary, HighC: &high}

	InjectWeather(days, juneClimate())

	if *days[0].Weather.Summary != "Hot and sunny" {
		t.Errorf("summary overwritten: %v", *days[0].Weather.Summary)
	}
	if *days[0].Weather.HighC != 30.0 {
		t.Errorf("high overwritten: %v", *days[0].Weather.HighC)
	}
	// gaps still get filled
	if days[0].Weather.LowC == nil {
		t.Error("low not filled from normals")
	}
}

func TestInjectWeatherIdempotent(t *testing.T) {
	days := dayPlans(t, "2026-06-10", 1)
	InjectWeather(days, juneClimate())
	notesAfterFirst := len(days[0].Notes)

	InjectWeather(days, juneClimate())
	if len(days[0].Notes) != notesAfterFirst {
		t.Errorf("second run appended notes: %v", days[0].Notes)
	}
}

func TestInjectWeatherNoDataNoOp(t *testing.T) {
	days := dayPlans(t, "2026-06-10", 1)
	InjectWeather(days, map[int]MonthlyClimate{})
	if days[0].Weather != nil || len(days[0].Notes) != 0 {
		t.Errorf("no-data run mutated the day: %+v", days[0])
	}

	// climate for a different month leaves June days alone
	InjectWeather(days, map[int]MonthlyClimate{1: {Month: 1, TmaxC: f(8)}})
	if days[0].Weather != nil {
		t.Error("wrong-month climate applied")
	}
}
