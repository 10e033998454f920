package services

import "wayfarer/internal/models/response_models"

// ReconcileDays pads or truncates a validated day list to exactly the
// desired length. Padded days continue the day_index sequence and the
// calendar date, with empty activities and notes. This is the final
// length guarantee: len(result) == desired always holds for desired >= 0.
func ReconcileDays(days []response_models.DayPlan, desired int, startDate response_models.DateOnly) []response_models.DayPlan {
	if desired < 0 {
		desired = 0
	}
	current := len(days)
	if current == desired {
		return days
	}
	if current > desired {
		return days[:desired]
	}
	out := make([]response_models.DayPlan, 0, desired)
	out = append(out, days...)
	for i := current; i < desired; i++ {
		out = append(out, response_models.DayPlan{
			DayIndex:   i + 1,
			Date:       startDate.AddDays(i),
			Activities: []response_models.Activity{},
			Notes:      []string{},
		})
	}
	return out
}
