package response_models

import (
	"encoding/json"
	"strings"
	"testing"
)

func date(t *testing.T, s string) DateOnly {
	t.Helper()
	d, err := ParseDateOnly(s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

func tod(t *testing.T, s string) *TimeOfDay {
	t.Helper()
	v, err := ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("bad time %q: %v", s, err)
	}
	return &v
}

func validItinerary(t *testing.T) *ItineraryResponse {
	t.Helper()
	return &ItineraryResponse{
		Destination: "Lisbon",
		StartDate:   date(t, "2026-06-10"),
		EndDate:     date(t, "2026-06-11"),
		TotalDays:   2,
		Currency:    "EUR",
		DailyPlan: []DayPlan{
			{DayIndex: 1, Date: date(t, "2026-06-10")},
			{DayIndex: 2, Date: date(t, "2026-06-11")},
		},
		Meta: DefaultMeta(),
	}
}

func TestValidateAcceptsMinimalItinerary(t *testing.T) {
	it := validItinerary(t)
	if err := it.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	// Normalize ran: nil slices became empty
	if it.Interests == nil || it.DailyPlan[0].Activities == nil || it.DailyPlan[0].Notes == nil {
		t.Error("nil slices not normalized")
	}
}

func TestValidateRejectsBadFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ItineraryResponse)
	}{
		{"inverted dates", func(it *ItineraryResponse) { it.EndDate = date(t, "2026-06-01") }},
		{"bad currency", func(it *ItineraryResponse) { it.Currency = "euros" }},
		{"zero total_days", func(it *ItineraryResponse) { it.TotalDays = 0 }},
		{"empty destination", func(it *ItineraryResponse) { it.Destination = "" }},
		{"bad category", func(it *ItineraryResponse) {
			it.DailyPlan[0].Activities = []Activity{{Title: "x", Category: "skydiving-with-sharks"}}
		}},
		{"bad travel mode", func(it *ItineraryResponse) {
			it.DailyPlan[0].Activities = []Activity{{
				Title: "x", Category: "transport",
				TravelFromPrev: &TravelLeg{Mode: "teleport"},
			}}
		}},
	}
	for _, tc := range cases {
		it := validItinerary(t)
		tc.mutate(it)
		if err := it.Validate(); err == nil {
			t.Errorf("%s: validation passed", tc.name)
		}
	}
}

func TestMidnightCrossingRepaired(t *testing.T) {
	it := validItinerary(t)
	it.DailyPlan[0].Activities = []Activity{{
		Title:     "Fado night in Alfama",
		Category:  "nightlife",
		StartTime: tod(t, "21:00"),
		EndTime:   tod(t, "02:00"),
	}}

	if err := it.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	a := it.DailyPlan[0].Activities[0]
	if a.EndTime != nil {
		t.Errorf("end time not cleared: %v", a.EndTime)
	}
	found := false
	for _, tip := range a.Tips {
		if strings.Contains(tip, "Ends after midnight") {
			found = true
		}
	}
	if !found {
		t.Errorf("midnight tip missing: %v", a.Tips)
	}
	if a.StartTime == nil || a.StartTime.Hour != 21 {
		t.Errorf("start time touched: %v", a.StartTime)
	}
}

func TestTimeOfDayDecoding(t *testing.T) {
	var a Activity
	if err := json.Unmarshal([]byte(`{"title":"x","category":"food","start_time":"09:30"}`), &a); err != nil {
		t.Fatalf("HH:MM not accepted: %v", err)
	}
	if a.StartTime.String() != "09:30:00" {
		t.Errorf("String() = %s", a.StartTime.String())
	}

	if err := json.Unmarshal([]byte(`{"title":"x","category":"food","start_time":"25:00"}`), &a); err == nil {
		t.Error("invalid hour accepted")
	}
}

func TestDateOnlyRoundTrip(t *testing.T) {
	d := date(t, "2026-06-10")
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"2026-06-10"` {
		t.Errorf("marshal = %s", b)
	}

	var back DateOnly
	if err := json.Unmarshal([]byte(`"2026-13-40"`), &back); err == nil {
		t.Error("nonsense date accepted")
	}

	if d.AddDays(2).Format("2006-01-02") != "2026-06-12" {
		t.Errorf("AddDays = %s", d.AddDays(2).Format("2006-01-02"))
	}
	if d.DaysUntil(date(t, "2026-06-13")) != 3 {
		t.Errorf("DaysUntil = %d", d.DaysUntil(date(t, "2026-06-13")))
	}
}
