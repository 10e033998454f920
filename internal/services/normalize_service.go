package services

import (
	"strings"

	"wayfarer/internal/models/request_models"
	"wayfarer/internal/models/response_models"
	"wayfarer/pkg/utils"
)

// NormalizerServiceInterface turns raw decoded model output of unknown shape
// into a candidate map that is structurally safe to decode into the typed
// itinerary model. It never fails; semantically poor values are left for
// validation to judge.
type NormalizerServiceInterface interface {
	NormalizeCandidate(req *request_models.ItineraryRequest, raw any, localCurrency string) map[string]any
}

type NormalizerService struct{}

func NewNormalizerService() NormalizerServiceInterface {
	return &NormalizerService{}
}

// wrapper keys some models put around the actual response object.
var wrapperKeys = map[string]bool{"itinerary": true, "plan": true, "data": true, "result": true}

// UnwrapRoot unwraps a single-key wrapper object ({"itinerary": {...}} and
// friends) so the rest of the pipeline sees the payload at the root.
func UnwrapRoot(candidate any) any {
	m, ok := candidate.(map[string]any)
	if !ok || len(m) != 1 {
		return candidate
	}
	for k, v := range m {
		if wrapperKeys[k] {
			return v
		}
	}
	return candidate
}

// NormalizeTime maps placeholder time strings to nil and clamps hour-24
// values, which the time-of-day type cannot represent. Anything else passes
// through for downstream parsing.
func NormalizeTime(raw any) any {
	s, ok := raw.(string)
	if !ok {
		return raw
	}
	t := strings.ToLower(strings.TrimSpace(s))
	switch t {
	case "", "tbd", "unknown", "n/a":
		return nil
	}
	if strings.HasPrefix(t, "24:") {
		return "23:59:00"
	}
	return s
}

// NormalizeCost coerces either cost shape ({amount} or
// {amount_min, amount_max}) into the canonical range shape, filling a
// missing currency with the destination's local currency.
func NormalizeCost(raw any, defaultCurrency string) map[string]any {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	currency := defaultCurrency
	if c, ok := m["currency"].(string); ok && c != "" {
		currency = c
	}
	if amt, present := m["amount"]; present {
		return map[string]any{
			"currency":   currency,
			"amount_min": amt,
			"amount_max": amt,
			"notes":      m["notes"],
		}
	}
	return map[string]any{
		"currency":   currency,
		"amount_min": m["amount_min"],
		"amount_max": m["amount_max"],
		"notes":      m["notes"],
	}
}

func sanitizeActivities(raw any, defaultCurrency string) []any {
	list, ok := raw.([]any)
	if !ok {
		return []any{}
	}
	clean := make([]any, 0, len(list))
	for _, item := range list {
		a, ok := item.(map[string]any)
		if !ok {
			continue
		}
		title, _ := a["title"].(string)
		if title == "" {
			// title is the one truly required field; drop the activity
			continue
		}

		out := map[string]any{"title": title}
		if cat, ok := a["category"].(string); ok && cat != "" {
			out["category"] = cat
		} else {
			out["category"] = "sightseeing"
		}
		out["start_time"] = NormalizeTime(a["start_time"])
		out["end_time"] = NormalizeTime(a["end_time"])
		out["place"] = mapOrNil(a["place"])
		if desc, ok := a["description"].(string); ok {
			out["description"] = desc
		}
		if booking := mapOrNil(a["booking"]); booking != nil {
			if cost, present := booking["cost"]; present {
				booking["cost"] = NormalizeCost(cost, defaultCurrency)
			}
			out["booking"] = booking
		}

		rawCost, present := a["estimated_cost"]
		if !present || rawCost == nil {
			// legacy key
			rawCost = a["cost"]
		}
		out["estimated_cost"] = NormalizeCost(rawCost, defaultCurrency)

		out["travel_from_prev"] = mapOrNil(a["travel_from_prev"])
		out["tags"] = stringList(a["tags"])
		out["tips"] = stringList(a["tips"])
		clean = append(clean, out)
	}
	return clean
}

// NormalizeCandidate applies the full defensive repair sequence: unwrap,
// top-level scalar fill from the request, day-list extraction with legacy
// key tolerance, per-day and per-activity defaulting, derived totals and
// auxiliary-field defaults.
func (n *NormalizerService) NormalizeCandidate(req *request_models.ItineraryRequest, raw any, localCurrency string) map[string]any {
	candidate := UnwrapRoot(raw)
	cand, _ := candidate.(map[string]any)
	expectedEnd := req.ExpectedEndDate()

	out := map[string]any{}
	out["destination"] = stringOr(cand["destination"], req.Destination)
	out["start_date"] = stringOr(cand["start_date"], utils.FormatISODate(req.StartDate.Time))
	out["end_date"] = stringOr(cand["end_date"], utils.FormatISODate(expectedEnd.Time))

	var rawDays []any
	if dp, ok := cand["daily_plan"].([]any); ok {
		rawDays = dp
	} else if it, ok := cand["itinerary"].([]any); ok {
		// alternate top-level field name for the same concept
		rawDays = it
	}

	startDate, startOK := utils.ParseISODate(out["start_date"].(string))

	days := make([]any, 0, len(rawDays))
	for i, rawDay := range rawDays {
		day, ok := rawDay.(map[string]any)
		if !ok {
			continue
		}
		d := map[string]any{}
		if idx, ok := asInt(day["day_index"]); ok && idx >= 1 {
			d["day_index"] = idx
		} else {
			d["day_index"] = i + 1
		}
		if ds, ok := day["date"].(string); ok {
			if _, valid := utils.ParseISODate(ds); valid {
				d["date"] = ds
			}
		}
		if _, ok := d["date"]; !ok {
			if startOK {
				d["date"] = utils.FormatISODate(startDate.AddDate(0, 0, i))
			} else {
				d["date"] = out["start_date"]
			}
		}
		if summary, ok := day["summary"].(string); ok {
			d["summary"] = summary
		}
		d["weather"] = mapOrNil(day["weather"])
		acts := day["activities"]
		if acts == nil {
			// legacy key
			acts = day["plans"]
		}
		d["activities"] = sanitizeActivities(acts, localCurrency)
		d["notes"] = stringList(day["notes"])
		days = append(days, d)
	}
	out["daily_plan"] = days

	if td, ok := asInt(cand["total_days"]); ok && td >= 1 {
		out["total_days"] = td
	} else if endDate, endOK := utils.ParseISODate(stringOr(out["end_date"], "")); startOK && endOK {
		out["total_days"] = int(endDate.Sub(startDate).Hours()/24) + 1
	} else if len(days) > 0 {
		out["total_days"] = len(days)
	} else {
		out["total_days"] = 1
	}

	out["timezone"] = stringOr(cand["timezone"], "GMT")
	if ccy, ok := cand["currency"].(string); ok && len(ccy) == 3 {
		out["currency"] = strings.ToUpper(ccy)
	} else {
		out["currency"] = localCurrency
	}
	if tc, ok := asInt(cand["travelers_count"]); ok && tc >= 1 && tc <= 12 {
		out["travelers_count"] = tc
	} else if req.TravelersCount != nil {
		out["travelers_count"] = *req.TravelersCount
	}
	if interests := stringList(cand["interests"]); len(interests) > 0 {
		out["interests"] = interests
	} else {
		out["interests"] = req.Interests
	}
	out["logistics"] = mapOrNil(cand["logistics"])
	if meta := mapOrNil(cand["meta"]); meta != nil {
		out["meta"] = meta
	} else {
		out["meta"] = map[string]any{
			"schema_version": response_models.SchemaVersion,
			"generator":      response_models.GeneratorName,
		}
	}

	// models sometimes echo request fields back; the response schema
	// forbids unknown properties
	for _, junk := range []string{"itinerary", "budget_level", "pace", "preferred_transport", "max_daily_budget", "duration_days", "home_currency"} {
		delete(out, junk)
	}

	return out
}

func stringOr(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}

func mapOrNil(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func stringList(v any) []any {
	list, ok := v.([]any)
	if !ok {
		return []any{}
	}
	out := make([]any, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	default:
		return 0, false
	}
}
