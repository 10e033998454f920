package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"wayfarer/pkg/utils"
)

// MonthlyClimate holds 1991-2020 climate normals for one calendar month.
// Any field can be absent when the upstream dataset has a gap.
type MonthlyClimate struct {
	Month       int
	TmaxC       *float64
	TminC       *float64
	PrecipDays  *float64
	PrecipSumMM *float64
}

// GeoPoint is a resolved destination from the geocoding API.
type GeoPoint struct {
	Name        string
	CountryCode string
	Lat         float64
	Lon         float64
}

// ClimateServiceInterface resolves destinations and serves seasonal climate
// normals. Everything is best-effort: lookup failures yield empty results,
// never errors, so itinerary generation degrades instead of failing.
type ClimateServiceInterface interface {
	Geocode(ctx context.Context, destination string) *GeoPoint
	MonthlyMapForRange(ctx context.Context, destination string, start, end time.Time) map[int]MonthlyClimate
	BuildClimateContext(ctx context.Context, destination string, start, end time.Time) string
}

const (
	geocodingURL  = "https://geocoding-api.open-meteo.com/v1/search"
	climateAPIURL = "https://climate-api.open-meteo.com/v1/climate"

	normalsStartYear = 1991
	normalsEndYear   = 2020
)

type ClimateService struct {
	client       *http.Client
	geocodeURL   string
	climateURL   string
	geocodeCache *lru.Cache[string, *GeoPoint]
	normalsCache *lru.Cache[string, map[int]MonthlyClimate]
}

func NewClimateService() ClimateServiceInterface {
	return newClimateService(geocodingURL, climateAPIURL, 10*time.Second)
}

func newClimateService(geocodeURL, climateURL string, timeout time.Duration) *ClimateService {
	geocodeCache, _ := lru.New[string, *GeoPoint](512)
	normalsCache, _ := lru.New[string, map[int]MonthlyClimate](512)
	return &ClimateService{
		client:       &http.Client{Timeout: timeout},
		geocodeURL:   geocodeURL,
		climateURL:   climateURL,
		geocodeCache: geocodeCache,
		normalsCache: normalsCache,
	}
}

// Geocode resolves a destination name to coordinates and a country code.
// Returns nil when the place cannot be resolved.
func (c *ClimateService) Geocode(ctx context.Context, destination string) *GeoPoint {
	key := strings.ToLower(strings.TrimSpace(destination))
	if key == "" {
		return nil
	}
	if gp, ok := c.geocodeCache.Get(key); ok {
		return gp
	}

	q := url.Values{}
	q.Set("name", destination)
	q.Set("count", "1")
	q.Set("language", "en")
	q.Set("format", "json")

	var payload struct {
		Results []struct {
			Name        string  `json:"name"`
			CountryCode string  `json:"country_code"`
			Latitude    float64 `json:"latitude"`
			Longitude   float64 `json:"longitude"`
		} `json:"results"`
	}
	if err := c.getJSON(ctx, c.geocodeURL+"?"+q.Encode(), &payload); err != nil {
		log.Printf("Geocoding failed for %q: %v", destination, err)
		return nil
	}
	if len(payload.Results) == 0 {
		log.Printf("Geocoding found no match for %q", destination)
		c.geocodeCache.Add(key, nil)
		return nil
	}

	r := payload.Results[0]
	gp := &GeoPoint{
		Name:        r.Name,
		CountryCode: strings.ToUpper(r.CountryCode),
		Lat:         r.Latitude,
		Lon:         r.Longitude,
	}
	c.geocodeCache.Add(key, gp)
	return gp
}

// monthlyNormals fetches per-month climate normals for a coordinate.
func (c *ClimateService) monthlyNormals(ctx context.Context, gp *GeoPoint) map[int]MonthlyClimate {
	key := fmt.Sprintf("%.3f,%.3f", gp.Lat, gp.Lon)
	if normals, ok := c.normalsCache.Get(key); ok {
		return normals
	}

	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", gp.Lat))
	q.Set("longitude", fmt.Sprintf("%.4f", gp.Lon))
	q.Set("start_year", fmt.Sprintf("%d", normalsStartYear))
	q.Set("end_year", fmt.Sprintf("%d", normalsEndYear))
	q.Set("monthly", "temperature_2m_max,temperature_2m_min,precipitation_days,precipitation_sum")

	var payload struct {
		Monthly struct {
			TemperatureMax   []*float64 `json:"temperature_2m_max"`
			TemperatureMin   []*float64 `json:"temperature_2m_min"`
			PrecipitationDay []*float64 `json:"precipitation_days"`
			PrecipitationSum []*float64 `json:"precipitation_sum"`
		} `json:"monthly"`
	}
	if err := c.getJSON(ctx, c.climateURL+"?"+q.Encode(), &payload); err != nil {
		log.Printf("Climate normals fetch failed for %s: %v", gp.Name, err)
		return nil
	}

	at := func(list []*float64, i int) *float64 {
		if i < len(list) {
			return list[i]
		}
		return nil
	}
	normals := make(map[int]MonthlyClimate, 12)
	for m := 1; m <= 12; m++ {
		normals[m] = MonthlyClimate{
			Month:       m,
			TmaxC:       at(payload.Monthly.TemperatureMax, m-1),
			TminC:       at(payload.Monthly.TemperatureMin, m-1),
			PrecipDays:  at(payload.Monthly.PrecipitationDay, m-1),
			PrecipSumMM: at(payload.Monthly.PrecipitationSum, m-1),
		}
	}
	c.normalsCache.Add(key, normals)
	return normals
}

// MonthlyMapForRange returns climate normals keyed by month number for every
// month the trip touches. Empty map when the destination cannot be resolved.
func (c *ClimateService) MonthlyMapForRange(ctx context.Context, destination string, start, end time.Time) map[int]MonthlyClimate {
	gp := c.Geocode(ctx, destination)
	if gp == nil {
		return map[int]MonthlyClimate{}
	}
	normals := c.monthlyNormals(ctx, gp)
	if normals == nil {
		return map[int]MonthlyClimate{}
	}
	out := map[int]MonthlyClimate{}
	for _, ym := range utils.MonthsInRange(start, end) {
		if mc, ok := normals[ym[1]]; ok {
			out[ym[1]] = mc
		}
	}
	return out
}

// BuildClimateContext renders a compact seasonal-climate block for the
// prompt. Empty string when nothing is known about the destination.
func (c *ClimateService) BuildClimateContext(ctx context.Context, destination string, start, end time.Time) string {
	gp := c.Geocode(ctx, destination)
	if gp == nil {
		return ""
	}
	normals := c.monthlyNormals(ctx, gp)
	if normals == nil {
		return ""
	}

	var lines []string
	for _, ym := range utils.MonthsInRange(start, end) {
		m := time.Month(ym[1])
		mc, ok := normals[ym[1]]
		if !ok {
			continue
		}
		var parts []string
		if mc.TmaxC != nil && mc.TminC != nil {
			parts = append(parts, fmt.Sprintf("avg high %.0f°C / avg low %.0f°C", *mc.TmaxC, *mc.TminC))
		}
		if mc.PrecipDays != nil {
			parts = append(parts, fmt.Sprintf("~%.0f days with rain", *mc.PrecipDays))
		}
		if mc.PrecipSumMM != nil {
			parts = append(parts, fmt.Sprintf("%.0f mm total precipitation", *mc.PrecipSumMM))
		}
		if len(parts) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s: %s", m, strings.Join(parts, ", ")))
	}
	if len(lines) == 0 {
		return ""
	}

	header := fmt.Sprintf("Seasonal climate for %s (%s), averages %d-%d:", gp.Name, gp.CountryCode, normalsStartYear, normalsEndYear)
	return header + "\n" + strings.Join(lines, "\n")
}

func (c *ClimateService) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
