package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type staticHolidays struct {
	list []PublicHoliday
}

func (s staticHolidays) HolidaysInRange(ctx context.Context, countryCode string, start, end time.Time) []PublicHoliday {
	var out []PublicHoliday
	for _, h := range s.list {
		if !h.Date.Before(start) && !h.Date.After(end) {
			out = append(out, h)
		}
	}
	return out
}

func writeEventsFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.yml")
	content := `events:
  - name: Festas de Santo António
    country_code: PT
    city: Lisbon
    month: 6
    day: 12
    notes: street parties in Alfama
  - name: São João Festival
    country_code: PT
    city: Porto
    month: 6
    day: 23
  - name: Bastille Day
    country_code: FR
    month: 7
    day: 14
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write events file: %v", err)
	}
	return path
}

func TestStaticAnnualEventProviderScoping(t *testing.T) {
	provider := NewStaticAnnualEventProvider(writeEventsFile(t))
	start := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 13, 0, 0, 0, 0, time.UTC)

	events := provider.EventsInRange("PT", "Lisbon", start, end)
	if len(events) != 1 || events[0].Name != "Festas de Santo António" {
		t.Fatalf("events = %+v, want only the Lisbon festival", events)
	}

	// Porto festival is out of range AND city-scoped elsewhere
	if got := provider.EventsInRange("PT", "Porto", start, end); len(got) != 0 {
		t.Errorf("out-of-range event matched: %+v", got)
	}
	// country mismatch
	if got := provider.EventsInRange("FR", "Lisbon", start, end); len(got) != 0 {
		t.Errorf("wrong-country event matched: %+v", got)
	}
}

func TestStaticAnnualEventProviderMissingFile(t *testing.T) {
	provider := NewStaticAnnualEventProvider(filepath.Join(t.TempDir(), "missing.yml"))
	got := provider.EventsInRange("PT", "Lisbon",
		time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC))
	if len(got) != 0 {
		t.Errorf("missing catalog produced events: %+v", got)
	}
}

func TestBuildCalendarContext(t *testing.T) {
	holidays := staticHolidays{list: []PublicHoliday{
		{Date: time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC), Name: "Portugal Day", LocalName: "Dia de Portugal"},
	}}
	svc := NewCalendarService(holidays, NewStaticAnnualEventProvider(writeEventsFile(t)))

	start := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 13, 0, 0, 0, 0, time.UTC)
	got := svc.BuildCalendarContext(context.Background(), "PT", "Lisbon", start, end)

	if !strings.Contains(got, "2026-06-10: Portugal Day (Dia de Portugal) [public holiday]") {
		t.Errorf("holiday line missing:\n%s", got)
	}
	if !strings.Contains(got, "Festas de Santo António") || !strings.Contains(got, "street parties in Alfama") {
		t.Errorf("event line missing:\n%s", got)
	}
}

func TestBuildCalendarContextEmpty(t *testing.T) {
	svc := NewCalendarService(staticHolidays{}, NewStaticAnnualEventProvider(filepath.Join(t.TempDir(), "none.yml")))
	got := svc.BuildCalendarContext(context.Background(), "PT", "Lisbon",
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC))
	if got != "" {
		t.Errorf("expected empty context, got:\n%s", got)
	}
}
