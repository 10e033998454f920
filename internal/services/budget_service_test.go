package services

import (
	"strings"
	"testing"

	"wayfarer/internal/models/response_models"
)

func rawDay(costs ...[2]float64) map[string]any {
	activities := make([]any, 0, len(costs))
	for _, c := range costs {
		activities = append(activities, map[string]any{
			"title":          "x",
			"estimated_cost": map[string]any{"amount_min": c[0], "amount_max": c[1]},
		})
	}
	return map[string]any{"activities": activities, "notes": []any{"see the viewpoint"}}
}

func guardrailNotes(day map[string]any) []string {
	return anyToStrings(day["notes"])
}

func TestApplyBudgetGuardrailsVerdicts(t *testing.T) {
	cases := []struct {
		name    string
		day     map[string]any
		verdict string
	}{
		{"over", rawDay([2]float64{60, 70}, [2]float64{50, 50}), "OVER"},
		{"under", rawDay([2]float64{10, 20}), "UNDER"},
		{"within", rawDay([2]float64{100, 100}), "WITHIN"},
	}
	cap := 100
	for _, tc := range cases {
		days := []any{tc.day}
		ApplyBudgetGuardrails(days, &cap, "EUR")

		notes := guardrailNotes(tc.day)
		if len(notes) == 0 {
			t.Fatalf("%s: no notes injected", tc.name)
		}
		summary := notes[0]
		if !strings.HasPrefix(summary, "Budget summary:") || !strings.Contains(summary, tc.verdict) {
			t.Errorf("%s: summary = %q, want verdict %s", tc.name, summary, tc.verdict)
		}
		if !strings.Contains(summary, "cap EUR 100") || !strings.Contains(summary, "±5% rule") {
			t.Errorf("%s: summary missing cap/rule: %q", tc.name, summary)
		}

		suggestions := 0
		for _, n := range notes {
			if strings.HasPrefix(n, "Budget suggestion:") {
				suggestions++
			}
		}
		wantSuggestions := 1
		if tc.verdict == "WITHIN" {
			wantSuggestions = 0
		}
		if suggestions != wantSuggestions {
			t.Errorf("%s: %d suggestions, want %d", tc.name, suggestions, wantSuggestions)
		}

		// pre-existing traveler note survives
		found := false
		for _, n := range notes {
			if n == "see the viewpoint" {
				found = true
			}
		}
		if !found {
			t.Errorf("%s: original note lost: %v", tc.name, notes)
		}
	}
}

func TestApplyBudgetGuardrailsIdempotent(t *testing.T) {
	day := rawDay([2]float64{60, 70})
	cap := 100
	days := []any{day}

	ApplyBudgetGuardrails(days, &cap, "EUR")
	first := guardrailNotes(day)
	ApplyBudgetGuardrails(days, &cap, "EUR")
	second := guardrailNotes(day)

	if len(first) != len(second) {
		t.Errorf("second run changed note count: %v vs %v", first, second)
	}
}

func TestApplyBudgetGuardrailsNoCap(t *testing.T) {
	day := rawDay([2]float64{60, 70})
	ApplyBudgetGuardrails([]any{day}, nil, "EUR")
	notes := guardrailNotes(day)
	if len(notes) != 1 || notes[0] != "see the viewpoint" {
		t.Errorf("no-cap run injected notes: %v", notes)
	}
}

type fixedRateCurrency struct {
	rate float64
}

func (c fixedRateCurrency) Rate(base, quote string) float64 { return c.rate }
func (c fixedRateCurrency) Convert(amount float64, base, quote string) float64 {
	return amount * c.rate
}

func annotatedItinerary(t *testing.T, amounts ...float64) *response_models.ItineraryResponse {
	t.Helper()
	acts := make([]response_models.Activity, 0, len(amounts))
	for _, a := range amounts {
		v := a
		acts = append(acts, response_models.Activity{
			Title:         "x",
			Category:      "sightseeing",
			EstimatedCost: &response_models.MoneyEstimate{Currency: "EUR", AmountMax: &v},
		})
	}
	return &response_models.ItineraryResponse{
		Destination: "Lisbon",
		StartDate:   mustDate(t, "2026-06-10"),
		EndDate:     mustDate(t, "2026-06-10"),
		TotalDays:   1,
		Currency:    "EUR",
		DailyPlan: []response_models.DayPlan{{
			DayIndex:   1,
			Date:       mustDate(t, "2026-06-10"),
			Activities: acts,
			Notes:      []string{},
		}},
	}
}

func TestAnnotateBudgetCrossCurrency(t *testing.T) {
	it := annotatedItinerary(t, 90, 50) // 140 EUR
	home := "GBP"
	cap := 150

	AnnotateBudget(it, &home, &cap, fixedRateCurrency{rate: 0.85})

	notes := it.DailyPlan[0].Notes
	if len(notes) == 0 {
		t.Fatal("no budget note injected")
	}
	// 140 * 0.85 = 119.00 against a 150 cap, 31/150 rounds to 21%
	want := "Budget (GBP): 119.00 / 150 — UNDER by 21%"
	if notes[0] != want {
		t.Errorf("note = %q, want %q", notes[0], want)
	}
}

func TestAnnotateBudgetOverAndIdempotent(t *testing.T) {
	it := annotatedItinerary(t, 200)
	home := "EUR"
	cap := 150

	AnnotateBudget(it, &home, &cap, fixedRateCurrency{rate: 1})
	AnnotateBudget(it, &home, &cap, fixedRateCurrency{rate: 1})

	notes := it.DailyPlan[0].Notes
	if len(notes) != 1 {
		t.Fatalf("idempotence broken: %v", notes)
	}
	if !strings.Contains(notes[0], "OVER by 33%") {
		t.Errorf("note = %q, want OVER by 33%%", notes[0])
	}
}

func TestAnnotateBudgetNoHomeCurrencyNoOp(t *testing.T) {
	it := annotatedItinerary(t, 200)
	cap := 150
	AnnotateBudget(it, nil, &cap, fixedRateCurrency{rate: 1})
	if len(it.DailyPlan[0].Notes) != 0 {
		t.Errorf("notes injected without home currency: %v", it.DailyPlan[0].Notes)
	}
}
