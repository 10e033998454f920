package request_models

import (
	"fmt"
	"regexp"
	"strings"

	"wayfarer/internal/models/response_models"
	"wayfarer/pkg/utils"
)

var currencyRe = regexp.MustCompile(`^[A-Z]{3}$`)
var hasLetterRe = regexp.MustCompile(`[a-zA-Z]`)

type ItineraryRequest struct {
	Destination  string                     `json:"destination" binding:"required"`
	StartDate    response_models.DateOnly   `json:"start_date"`
	EndDate      *response_models.DateOnly  `json:"end_date"`
	DurationDays *int                       `json:"duration_days" binding:"omitempty,gte=1,lte=30"`

	Interests          []string `json:"interests"`
	TravelersCount     *int     `json:"travelers_count" binding:"omitempty,gte=1,lte=12"`
	BudgetLevel        string   `json:"budget_level" binding:"omitempty,oneof=shoestring moderate comfortable luxury"`
	Pace               string   `json:"pace" binding:"omitempty,oneof=relaxed balanced packed"`
	PreferredTransport []string `json:"preferred_transport" binding:"omitempty,dive,oneof=walk public_transit car train bike rideshare"`

	// Per-day spend cap in the traveler's home currency.
	MaxDailyBudget *int    `json:"max_daily_budget" binding:"omitempty,gte=0"`
	HomeCurrency   *string `json:"home_currency"`
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", utils.ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// Validate fills defaults, sanitizes free-text fields and enforces the
// date-consistency rules. Mutates the request in place.
func (r *ItineraryRequest) Validate() error {
	dest := utils.SanitizeInput(r.Destination, 100)
	if dest == "" {
		return invalid("destination cannot be empty")
	}
	if suspicious, _ := utils.DetectPromptInjection(dest); suspicious {
		return invalid("invalid destination; provide a city or location name")
	}
	if !hasLetterRe.MatchString(dest) {
		return invalid("destination must contain letters")
	}
	if len(strings.Fields(dest)) > 10 {
		return invalid("destination name too complex")
	}
	r.Destination = dest

	clean := make([]string, 0, len(r.Interests))
	for _, it := range r.Interests {
		s := utils.SanitizeInput(it, 50)
		if s == "" {
			continue
		}
		// skip suspicious interests rather than failing the request
		if suspicious, _ := utils.DetectPromptInjection(s); suspicious {
			continue
		}
		clean = append(clean, s)
	}
	if len(clean) > 20 {
		return invalid("too many interests; maximum 20 allowed")
	}
	r.Interests = clean

	if r.TravelersCount == nil {
		one := 1
		r.TravelersCount = &one
	}
	if r.BudgetLevel == "" {
		r.BudgetLevel = "moderate"
	}
	if r.Pace == "" {
		r.Pace = "balanced"
	}
	if len(r.PreferredTransport) == 0 {
		r.PreferredTransport = []string{"walk", "public_transit"}
	}

	if r.StartDate.IsZero() {
		return invalid("start_date is required")
	}
	if r.EndDate == nil && r.DurationDays == nil {
		return invalid("provide either end_date or duration_days")
	}
	if r.EndDate != nil {
		if r.EndDate.Time.Before(r.StartDate.Time) {
			return invalid("end_date cannot be before start_date")
		}
		if r.DurationDays != nil {
			implied := r.StartDate.DaysUntil(*r.EndDate) + 1
			if implied != *r.DurationDays {
				return invalid("end_date implies %d days but duration_days=%d", implied, *r.DurationDays)
			}
		}
	}

	if r.HomeCurrency != nil {
		cc := strings.ToUpper(strings.TrimSpace(*r.HomeCurrency))
		if !currencyRe.MatchString(cc) {
			return invalid("home_currency must be a 3-letter ISO code (e.g. USD, GBP, EUR)")
		}
		r.HomeCurrency = &cc
	}

	return nil
}

// ExpectedEndDate resolves the trip's last day from end_date or
// duration_days.
func (r *ItineraryRequest) ExpectedEndDate() response_models.DateOnly {
	if r.EndDate != nil {
		return *r.EndDate
	}
	days := 1
	if r.DurationDays != nil {
		days = *r.DurationDays
	}
	return r.StartDate.AddDays(days - 1)
}

// TripDays is the requested trip length in days.
func (r *ItineraryRequest) TripDays() int {
	return r.StartDate.DaysUntil(r.ExpectedEndDate()) + 1
}
