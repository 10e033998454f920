package services

import (
	"fmt"
	"math"
	"strings"

	"wayfarer/internal/models/response_models"
	"wayfarer/pkg/utils"
)

// InjectWeather fills missing per-day weather summaries from monthly
// climate normals and makes sure each day carries exactly one "Weather tip"
// note. Summaries are phrased as seasonal averages, never as a forecast.
// Days whose month has no climate entry are left alone. Idempotent:
// re-running never duplicates a tip or overwrites values already present.
func InjectWeather(days []response_models.DayPlan, monthly map[int]MonthlyClimate) {
	if len(monthly) == 0 {
		return
	}
	for i := range days {
		day := &days[i]
		mc, ok := monthly[int(day.Date.Month())]
		if !ok {
			continue
		}

		w := day.Weather
		if w == nil {
			w = &response_models.WeatherSummary{}
		}
		if w.Summary == nil {
			s := fmt.Sprintf("Seasonal averages for %s", day.Date.Month())
			w.Summary = &s
		}
		if w.HighC == nil && mc.TmaxC != nil {
			v := *mc.TmaxC
			w.HighC = &v
		}
		if w.LowC == nil && mc.TminC != nil {
			v := *mc.TminC
			w.LowC = &v
		}
		if w.PrecipChance == nil && mc.PrecipDays != nil {
			// crude precipitation-probability proxy: rainy days over
			// days in the month, clamped to [0, 1]
			p := *mc.PrecipDays / float64(utils.DaysInMonth(day.Date.Year(), day.Date.Month()))
			p = math.Max(0, math.Min(1, p))
			p = math.Round(p*100) / 100
			w.PrecipChance = &p
		}
		day.Weather = w

		if !hasWeatherTip(day.Notes) {
			day.Notes = append(day.Notes, weatherTipLine(day, mc))
		}
	}
}

func hasWeatherTip(notes []string) bool {
	for _, n := range notes {
		if strings.HasPrefix(strings.ToLower(n), "weather tip") {
			return true
		}
	}
	return false
}

func weatherTipLine(day *response_models.DayPlan, mc MonthlyClimate) string {
	var parts []string
	switch {
	case mc.TmaxC != nil && mc.TminC != nil:
		parts = append(parts, fmt.Sprintf("avg %d°C/%d°C", int(math.Round(*mc.TmaxC)), int(math.Round(*mc.TminC))))
	case mc.TmaxC != nil:
		parts = append(parts, fmt.Sprintf("avg high %d°C", int(math.Round(*mc.TmaxC))))
	}
	if mc.PrecipDays != nil {
		parts = append(parts, fmt.Sprintf("~%d rainy day(s)", int(math.Round(*mc.PrecipDays))))
	}
	hint := "bring a light layer for evenings"
	if mc.PrecipDays != nil && *mc.PrecipDays >= 5 {
		hint = "pack light layers and a compact umbrella"
	}
	return fmt.Sprintf("Weather tip (%s): %s — %s.", day.Date.Month(), strings.Join(parts, ", "), hint)
}
