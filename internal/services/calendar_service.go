package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"gopkg.in/yaml.v3"

	"wayfarer/pkg/utils"
)

// PublicHoliday is one nationwide or regional holiday.
type PublicHoliday struct {
	Date      time.Time
	LocalName string
	Name      string
}

// HolidayProviderInterface lists public holidays for a country within a date
// range. Best-effort: lookup failures yield an empty list.
type HolidayProviderInterface interface {
	HolidaysInRange(ctx context.Context, countryCode string, start, end time.Time) []PublicHoliday
}

const nagerDateURL = "https://date.nager.at/api/v3/PublicHolidays"

type NagerHolidayProvider struct {
	client  *http.Client
	baseURL string
	cache   *lru.Cache[string, []PublicHoliday]
}

func NewNagerHolidayProvider() HolidayProviderInterface {
	cache, _ := lru.New[string, []PublicHoliday](256)
	return &NagerHolidayProvider{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: nagerDateURL,
		cache:   cache,
	}
}

func (p *NagerHolidayProvider) holidaysForYear(ctx context.Context, countryCode string, year int) []PublicHoliday {
	key := fmt.Sprintf("%s-%d", countryCode, year)
	if hs, ok := p.cache.Get(key); ok {
		return hs
	}

	url := fmt.Sprintf("%s/%d/%s", p.baseURL, year, countryCode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}
	resp, err := p.client.Do(req)
	if err != nil {
		log.Printf("Holiday fetch failed for %s %d: %v", countryCode, year, err)
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		// 404 means the country is not covered; cache the miss
		if resp.StatusCode == http.StatusNotFound {
			p.cache.Add(key, nil)
		}
		log.Printf("Holiday fetch for %s %d: status %d", countryCode, year, resp.StatusCode)
		return nil
	}

	var payload []struct {
		Date      string `json:"date"`
		LocalName string `json:"localName"`
		Name      string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("Holiday decode failed for %s %d: %v", countryCode, year, err)
		return nil
	}

	holidays := make([]PublicHoliday, 0, len(payload))
	for _, h := range payload {
		d, ok := utils.ParseISODate(h.Date)
		if !ok {
			continue
		}
		holidays = append(holidays, PublicHoliday{Date: d, LocalName: h.LocalName, Name: h.Name})
	}
	p.cache.Add(key, holidays)
	return holidays
}

func (p *NagerHolidayProvider) HolidaysInRange(ctx context.Context, countryCode string, start, end time.Time) []PublicHoliday {
	countryCode = strings.ToUpper(strings.TrimSpace(countryCode))
	if len(countryCode) != 2 {
		return nil
	}
	var out []PublicHoliday
	for year := start.Year(); year <= end.Year(); year++ {
		for _, h := range p.holidaysForYear(ctx, countryCode, year) {
			if !h.Date.Before(start) && !h.Date.After(end) {
				out = append(out, h)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// AnnualEvent is a recurring festival or cultural event from the static
// catalog. Month/Day anchor the typical date each year.
type AnnualEvent struct {
	Name        string `yaml:"name"`
	CountryCode string `yaml:"country_code"`
	City        string `yaml:"city"`
	Month       int    `yaml:"month"`
	Day         int    `yaml:"day"`
	Category    string `yaml:"category"`
	Notes       string `yaml:"notes"`
}

// AnnualEventProviderInterface lists recurring events relevant to a
// destination within a date range.
type AnnualEventProviderInterface interface {
	EventsInRange(countryCode, destination string, start, end time.Time) []AnnualEvent
}

type StaticAnnualEventProvider struct {
	events []AnnualEvent
}

// NewStaticAnnualEventProvider loads the event catalog from a YAML file. A
// missing or malformed file logs and yields an empty provider.
func NewStaticAnnualEventProvider(path string) AnnualEventProviderInterface {
	p := &StaticAnnualEventProvider{}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Annual events catalog not loaded from %s: %v", path, err)
		return p
	}
	var doc struct {
		Events []AnnualEvent `yaml:"events"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		log.Printf("Annual events catalog parse failed: %v", err)
		return p
	}
	p.events = doc.Events
	log.Printf("Loaded %d annual events from %s", len(p.events), path)
	return p
}

func (p *StaticAnnualEventProvider) EventsInRange(countryCode, destination string, start, end time.Time) []AnnualEvent {
	countryCode = strings.ToUpper(strings.TrimSpace(countryCode))
	dest := strings.ToLower(destination)

	var out []AnnualEvent
	for _, ev := range p.events {
		if ev.CountryCode != "" && ev.CountryCode != countryCode {
			continue
		}
		// city-scoped events only match when the destination mentions the city
		if ev.City != "" && !strings.Contains(dest, strings.ToLower(ev.City)) {
			continue
		}
		if !eventFallsInRange(ev, start, end) {
			continue
		}
		out = append(out, ev)
	}
	return out
}

func eventFallsInRange(ev AnnualEvent, start, end time.Time) bool {
	if ev.Month < 1 || ev.Month > 12 {
		return false
	}
	day := ev.Day
	if day < 1 {
		day = 1
	}
	for year := start.Year(); year <= end.Year(); year++ {
		if day > utils.DaysInMonth(year, time.Month(ev.Month)) {
			continue
		}
		d := time.Date(year, time.Month(ev.Month), day, 0, 0, 0, 0, time.UTC)
		if !d.Before(start) && !d.After(end) {
			return true
		}
	}
	return false
}

// CalendarServiceInterface renders a holidays-and-events context block for
// the prompt.
type CalendarServiceInterface interface {
	BuildCalendarContext(ctx context.Context, countryCode, destination string, start, end time.Time) string
}

type CalendarService struct {
	holidays HolidayProviderInterface
	events   AnnualEventProviderInterface
}

func NewCalendarService(holidays HolidayProviderInterface, events AnnualEventProviderInterface) CalendarServiceInterface {
	return &CalendarService{holidays: holidays, events: events}
}

const maxCalendarLines = 8

// BuildCalendarContext returns a compact text block listing public holidays
// and recurring events during the trip, or "" when nothing is known.
func (c *CalendarService) BuildCalendarContext(ctx context.Context, countryCode, destination string, start, end time.Time) string {
	var lines []string

	for _, h := range c.holidays.HolidaysInRange(ctx, countryCode, start, end) {
		name := h.Name
		if h.LocalName != "" && !strings.EqualFold(h.LocalName, h.Name) {
			name = fmt.Sprintf("%s (%s)", h.Name, h.LocalName)
		}
		lines = append(lines, fmt.Sprintf("- %s: %s [public holiday]", utils.FormatISODate(h.Date), name))
	}

	for _, ev := range c.events.EventsInRange(countryCode, destination, start, end) {
		line := fmt.Sprintf("- around %s %d: %s", time.Month(ev.Month), ev.Day, ev.Name)
		if ev.Notes != "" {
			line += " — " + ev.Notes
		}
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		return ""
	}
	if len(lines) > maxCalendarLines {
		extra := len(lines) - maxCalendarLines
		lines = append(lines[:maxCalendarLines], fmt.Sprintf("...and %d more", extra))
	}
	return "Holidays and events during the trip:\n" + strings.Join(lines, "\n")
}
