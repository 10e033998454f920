package services

import (
	"testing"

	"wayfarer/internal/models/request_models"
	"wayfarer/internal/models/response_models"
)

func mustDate(t *testing.T, s string) response_models.DateOnly {
	t.Helper()
	d, err := response_models.ParseDateOnly(s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func testRequest(t *testing.T) *request_models.ItineraryRequest {
	t.Helper()
	three := 3
	req := &request_models.ItineraryRequest{
		Destination:  "Lisbon",
		StartDate:    mustDate(t, "2026-06-10"),
		DurationDays: &three,
	}
	if err := req.Validate(); err != nil {
		t.Fatalf("test request invalid: %v", err)
	}
	return req
}

func TestUnwrapRoot(t *testing.T) {
	inner := map[string]any{"destination": "Lisbon"}

	if got := UnwrapRoot(map[string]any{"itinerary": inner}); got.(map[string]any)["destination"] != "Lisbon" {
		t.Errorf("itinerary wrapper not unwrapped: %v", got)
	}
	if got := UnwrapRoot(map[string]any{"plan": inner}); got.(map[string]any)["destination"] != "Lisbon" {
		t.Errorf("plan wrapper not unwrapped: %v", got)
	}

	// two keys is not a wrapper
	two := map[string]any{"itinerary": inner, "x": 1}
	if got := UnwrapRoot(two); len(got.(map[string]any)) != 2 {
		t.Errorf("multi-key object should pass through, got %v", got)
	}
	// unknown single key is not a wrapper either
	other := map[string]any{"stuff": inner}
	if got := UnwrapRoot(other); len(got.(map[string]any)) != 1 {
		t.Errorf("unknown wrapper key should pass through, got %v", got)
	}
}

func TestNormalizeTime(t *testing.T) {
	for _, placeholder := range []string{"", "TBD", "unknown", "N/A", "  tbd  "} {
		if got := NormalizeTime(placeholder); got != nil {
			t.Errorf("NormalizeTime(%q) = %v, want nil", placeholder, got)
		}
	}
	if got := NormalizeTime("24:00"); got != "23:59:00" {
		t.Errorf("NormalizeTime(24:00) = %v, want 23:59:00", got)
	}
	if got := NormalizeTime("09:30:00"); got != "09:30:00" {
		t.Errorf("NormalizeTime(09:30:00) = %v", got)
	}
	if got := NormalizeTime(nil); got != nil {
		t.Errorf("NormalizeTime(nil) = %v", got)
	}
}

func TestNormalizeCostSingleAmount(t *testing.T) {
	got := NormalizeCost(map[string]any{"amount": 50.0, "currency": "JPY"}, "EUR")
	if got["currency"] != "JPY" {
		t.Errorf("currency = %v, want JPY", got["currency"])
	}
	if got["amount_min"] != 50.0 || got["amount_max"] != 50.0 {
		t.Errorf("amount range = %v..%v, want 50..50", got["amount_min"], got["amount_max"])
	}
}

func TestNormalizeCostRangeDefaultsCurrency(t *testing.T) {
	got := NormalizeCost(map[string]any{"amount_min": 10.0, "amount_max": 20.0}, "EUR")
	if got["currency"] != "EUR" {
		t.Errorf("currency = %v, want local default EUR", got["currency"])
	}
	if got["amount_min"] != 10.0 || got["amount_max"] != 20.0 {
		t.Errorf("range = %v..%v", got["amount_min"], got["amount_max"])
	}
	if NormalizeCost("not a map", "EUR") != nil {
		t.Error("non-map cost should normalize to nil")
	}
}

func TestNormalizeCandidateLegacyShape(t *testing.T) {
	req := testRequest(t)
	raw := map[string]any{
		"itinerary": map[string]any{
			"destination": "Lisbon",
			"itinerary": []any{
				map[string]any{
					"plans": []any{
						map[string]any{
							"title":      "Castelo de São Jorge",
							"start_time": "TBD",
							"cost":       map[string]any{"amount": 15.0},
						},
						map[string]any{"description": "no title, dropped"},
					},
				},
			},
		},
	}

	out := (&NormalizerService{}).NormalizeCandidate(req, raw, "EUR")

	if out["destination"] != "Lisbon" {
		t.Errorf("destination = %v", out["destination"])
	}
	if out["start_date"] != "2026-06-10" || out["end_date"] != "2026-06-12" {
		t.Errorf("dates = %v..%v", out["start_date"], out["end_date"])
	}
	if out["total_days"] != 3 {
		t.Errorf("total_days = %v, want 3 from the date range", out["total_days"])
	}
	if out["currency"] != "EUR" {
		t.Errorf("currency = %v", out["currency"])
	}

	days := out["daily_plan"].([]any)
	if len(days) != 1 {
		t.Fatalf("daily_plan has %d days, want 1", len(days))
	}
	day := days[0].(map[string]any)
	if day["day_index"] != 1 || day["date"] != "2026-06-10" {
		t.Errorf("day defaults = index %v date %v", day["day_index"], day["date"])
	}

	acts := day["activities"].([]any)
	if len(acts) != 1 {
		t.Fatalf("activities = %d, want the untitled one dropped", len(acts))
	}
	act := acts[0].(map[string]any)
	if act["start_time"] != nil {
		t.Errorf("placeholder start_time = %v, want nil", act["start_time"])
	}
	cost := act["estimated_cost"].(map[string]any)
	if cost["currency"] != "EUR" || cost["amount_min"] != 15.0 || cost["amount_max"] != 15.0 {
		t.Errorf("legacy cost key not coerced: %v", cost)
	}
	if act["category"] != "sightseeing" {
		t.Errorf("category default = %v", act["category"])
	}

	// echoed request fields must not leak into the candidate
	for _, junk := range []string{"budget_level", "pace", "duration_days"} {
		if _, present := out[junk]; present {
			t.Errorf("junk key %s survived", junk)
		}
	}
}

func TestNormalizeCandidateEmptyOutput(t *testing.T) {
	req := testRequest(t)
	out := (&NormalizerService{}).NormalizeCandidate(req, map[string]any{}, "EUR")

	if out["destination"] != "Lisbon" {
		t.Errorf("destination fallback = %v", out["destination"])
	}
	if len(out["daily_plan"].([]any)) != 0 {
		t.Errorf("daily_plan should be empty, got %v", out["daily_plan"])
	}
	if out["total_days"] != 3 {
		t.Errorf("total_days = %v, want request-derived 3", out["total_days"])
	}
	if out["timezone"] != "GMT" {
		t.Errorf("timezone default = %v", out["timezone"])
	}
	meta := out["meta"].(map[string]any)
	if meta["schema_version"] != response_models.SchemaVersion {
		t.Errorf("meta default missing: %v", meta)
	}
}

func TestNormalizeCandidateBogusTotalDays(t *testing.T) {
	req := testRequest(t)
	raw := map[string]any{"total_days": 0.0, "start_date": "2026-06-10", "end_date": "2026-06-12"}
	out := (&NormalizerService{}).NormalizeCandidate(req, raw, "EUR")
	if out["total_days"] != 3 {
		t.Errorf("total_days = %v, want 3 (zero ignored)", out["total_days"])
	}
}
