package response_models

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var currencyRe = regexp.MustCompile(`^[A-Z]{3}$`)

var validate = validator.New(validator.WithRequiredStructEnabled())

// MoneyEstimate is a cost range in a single currency. A single known amount
// is represented as amount_min == amount_max.
type MoneyEstimate struct {
	Currency  string   `json:"currency"`
	AmountMin *float64 `json:"amount_min" validate:"omitempty,gte=0"`
	AmountMax *float64 `json:"amount_max" validate:"omitempty,gte=0"`
	Notes     *string  `json:"notes"`
}

type Coordinates struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

type Place struct {
	Name          string       `json:"name"`
	Address       *string      `json:"address"`
	Coordinates   *Coordinates `json:"coordinates"`
	GoogleMapsURL *string      `json:"google_maps_url"`
	Website       *string      `json:"website"`
}

type BookingInfo struct {
	Required             bool           `json:"required"`
	RecommendedTimeframe *string        `json:"recommended_timeframe"`
	URL                  *string        `json:"url"`
	Cost                 *MoneyEstimate `json:"cost"`
	ConfirmationRef      *string        `json:"confirmation_ref"`
}

type TravelLeg struct {
	Mode            string   `json:"mode" validate:"oneof=walk public_transit train bus car bike rideshare flight ferry"`
	DistanceKm      *float64 `json:"distance_km" validate:"omitempty,gte=0"`
	DurationMinutes *int     `json:"duration_minutes" validate:"omitempty,gte=0"`
	FromPlace       *Place   `json:"from_place"`
	ToPlace         *Place   `json:"to_place"`
	Notes           *string  `json:"notes"`
}

type WeatherSummary struct {
	Summary      *string  `json:"summary"`
	HighC        *float64 `json:"high_c" validate:"omitempty,gte=-60,lte=60"`
	LowC         *float64 `json:"low_c" validate:"omitempty,gte=-60,lte=60"`
	PrecipChance *float64 `json:"precip_chance" validate:"omitempty,gte=0,lte=1"`
}

type Activity struct {
	Title          string         `json:"title" validate:"required"`
	Category       string         `json:"category" validate:"oneof=sightseeing museum landmark food coffee bar nightlife shopping nature beach hike experience transport hotel break"`
	StartTime      *TimeOfDay     `json:"start_time"`
	EndTime        *TimeOfDay     `json:"end_time"`
	Place          *Place         `json:"place"`
	Description    *string        `json:"description"`
	Booking        *BookingInfo   `json:"booking"`
	EstimatedCost  *MoneyEstimate `json:"estimated_cost"`
	TravelFromPrev *TravelLeg     `json:"travel_from_prev"`
	Tags           []string       `json:"tags"`
	Tips           []string       `json:"tips"`
}

// normalizeTimeOrder is lenient about nightlife that crosses midnight
// (e.g. 21:00 → 02:00). When end <= start the end time is cleared and an
// explanatory tip is appended instead of rejecting the activity.
func (a *Activity) normalizeTimeOrder() {
	if a.StartTime != nil && a.EndTime != nil && a.EndTime.BeforeOrEqual(*a.StartTime) {
		a.Tips = append(a.Tips, "Ends after midnight; times are approximate.")
		a.EndTime = nil
	}
}

type DayPlan struct {
	DayIndex   int             `json:"day_index" validate:"gte=1"`
	Date       DateOnly        `json:"date"`
	Summary    *string         `json:"summary"`
	Weather    *WeatherSummary `json:"weather"`
	Activities []Activity      `json:"activities" validate:"dive"`
	Notes      []string        `json:"notes"`
}

type Logistics struct {
	Arrival         *TravelLeg `json:"arrival"`
	Departure       *TravelLeg `json:"departure"`
	TransitTips     []string   `json:"transit_tips"`
	SafetyEtiquette []string   `json:"safety_etiquette"`
	MapOverviewURL  *string    `json:"map_overview_url"`
}

type Meta struct {
	SchemaVersion  string  `json:"schema_version"`
	GeneratedAtISO *string `json:"generated_at_iso"`
	Generator      string  `json:"generator"`
}

const (
	SchemaVersion = "1.0.0"
	GeneratorName = "wayfarer@v1"
)

func DefaultMeta() Meta {
	return Meta{SchemaVersion: SchemaVersion, Generator: GeneratorName}
}

type ItineraryResponse struct {
	Destination    string     `json:"destination" validate:"required"`
	StartDate      DateOnly   `json:"start_date"`
	EndDate        DateOnly   `json:"end_date"`
	TotalDays      int        `json:"total_days" validate:"gte=1"`
	Timezone       *string    `json:"timezone"`
	Currency       string     `json:"currency"`
	TravelersCount *int       `json:"travelers_count" validate:"omitempty,gte=1,lte=12"`
	Interests      []string   `json:"interests"`
	DailyPlan      []DayPlan  `json:"daily_plan" validate:"dive"`
	Logistics      *Logistics `json:"logistics"`
	Meta           Meta       `json:"meta"`
}

// Normalize applies the structural repairs that validation relies on:
// nil list fields become empty lists and activities with inverted time
// spans are reinterpreted as crossing midnight.
func (r *ItineraryResponse) Normalize() {
	if r.Interests == nil {
		r.Interests = []string{}
	}
	if r.DailyPlan == nil {
		r.DailyPlan = []DayPlan{}
	}
	for i := range r.DailyPlan {
		d := &r.DailyPlan[i]
		if d.Activities == nil {
			d.Activities = []Activity{}
		}
		if d.Notes == nil {
			d.Notes = []string{}
		}
		for j := range d.Activities {
			a := &d.Activities[j]
			if a.Tags == nil {
				a.Tags = []string{}
			}
			if a.Tips == nil {
				a.Tips = []string{}
			}
			a.normalizeTimeOrder()
		}
	}
}

// Validate normalizes in place and checks every structural invariant of the
// data model. The date fields themselves are enforced at decode time by the
// DateOnly/TimeOfDay types.
func (r *ItineraryResponse) Validate() error {
	r.Normalize()

	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return fmt.Errorf("start_date and end_date are required")
	}
	if r.EndDate.Time.Before(r.StartDate.Time) {
		return fmt.Errorf("end_date cannot be before start_date")
	}
	if !currencyRe.MatchString(r.Currency) {
		return fmt.Errorf("currency must be a 3-letter ISO code, got %q", r.Currency)
	}
	if err := validate.Struct(r); err != nil {
		return err
	}
	return nil
}
