package services

import (
	"fmt"
	"math"
	"strings"

	"wayfarer/internal/models/response_models"
)

// Two budget strategies coexist: a pre-validation guardrail over raw day
// maps using a ±5% tolerance band in local currency, and a post-validation
// annotator that converts day totals into the traveler's home currency and
// does an exact comparison. Both are advisory only; neither ever rejects
// or regenerates a day.

const budgetNotePrefix = "budget "

// dropBudgetNotes removes previously injected budget lines so repeated runs
// replace rather than duplicate their annotation.
func dropBudgetNotes(notes []string) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		if strings.HasPrefix(strings.ToLower(n), budgetNotePrefix) {
			continue
		}
		out = append(out, n)
	}
	return out
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

// sumRawCosts totals estimated activity costs in a raw day, preferring the
// max bound and mirroring a missing bound from the present one.
func sumRawCosts(activities []any) (float64, float64) {
	var mn, mx float64
	for _, item := range activities {
		a, ok := item.(map[string]any)
		if !ok {
			continue
		}
		c, ok := a["estimated_cost"].(map[string]any)
		if !ok {
			continue
		}
		lo, loOK := asFloat(c["amount_min"])
		hi, hiOK := asFloat(c["amount_max"])
		if !loOK && !hiOK {
			continue
		}
		if !loOK {
			lo = hi
		}
		if !hiOK {
			hi = lo
		}
		mn += math.Max(0, lo)
		mx += math.Max(0, hi)
	}
	return mn, mx
}

func fmtMoneyRange(currency string, lo, hi float64) string {
	loI := int(math.Round(lo))
	hiI := int(math.Round(hi))
	if loI == hiI {
		return fmt.Sprintf("%s %d", currency, loI)
	}
	return fmt.Sprintf("%s %d-%d", currency, loI, hiI)
}

// ApplyBudgetGuardrails annotates raw (pre-validation) day maps with a
// per-day budget verdict against the cap, using a ±5% tolerance band in
// local currency. No-op without a cap. Idempotent.
func ApplyBudgetGuardrails(days []any, cap *int, currency string) {
	if cap == nil || *cap <= 0 {
		return
	}
	capF := float64(*cap)
	loBand := 0.95 * capF
	hiBand := 1.05 * capF

	for _, item := range days {
		d, ok := item.(map[string]any)
		if !ok {
			continue
		}
		notes := dropBudgetNotes(anyToStrings(d["notes"]))
		activities, _ := d["activities"].([]any)
		mn, mx := sumRawCosts(activities)

		verdict := "WITHIN"
		switch {
		case mx > hiBand:
			verdict = "OVER"
		case mn < loBand:
			verdict = "UNDER"
		}

		summary := fmt.Sprintf("Budget summary: %s vs cap %s %d — %s (±5%% rule).",
			fmtMoneyRange(currency, mn, mx), currency, *cap, verdict)
		notes = append([]string{summary}, notes...)
		switch verdict {
		case "OVER":
			notes = append(notes, "Budget suggestion: swap one paid attraction for a free viewpoint/park, pick a casual eatery over fine dining, or reduce bar round count.")
		case "UNDER":
			notes = append(notes, "Budget suggestion: consider an upgrade (guided tour, rooftop view, dessert add-on) while keeping within +5%.")
		}

		d["notes"] = stringsToAny(notes)
	}
}

func anyToStrings(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func stringsToAny(list []string) []any {
	out := make([]any, len(list))
	for i, s := range list {
		out[i] = s
	}
	return out
}

func pickAmount(me *response_models.MoneyEstimate) *float64 {
	if me == nil {
		return nil
	}
	if me.AmountMax != nil {
		return me.AmountMax
	}
	return me.AmountMin
}

func activityTotalLocal(a *response_models.Activity) float64 {
	total := 0.0
	if amt := pickAmount(a.EstimatedCost); amt != nil {
		total += *amt
	}
	if a.Booking != nil {
		if amt := pickAmount(a.Booking.Cost); amt != nil {
			total += *amt
		}
	}
	return total
}

// AnnotateBudget prepends a per-day budget line in the traveler's home
// currency, converting from the itinerary's local currency. Best-effort
// convenience: no-op when the home currency or the cap is absent, and
// conversion failures inside the currency service degrade to 1:1 rather
// than failing the request. Idempotent.
func AnnotateBudget(it *response_models.ItineraryResponse, homeCurrency *string, maxDailyBudget *int, currencySvc CurrencyServiceInterface) {
	if homeCurrency == nil || maxDailyBudget == nil || *maxDailyBudget <= 0 {
		return
	}
	localCcy := strings.ToUpper(it.Currency)
	homeCcy := strings.ToUpper(*homeCurrency)
	capF := float64(*maxDailyBudget)

	for i := range it.DailyPlan {
		day := &it.DailyPlan[i]

		localSum := 0.0
		for j := range day.Activities {
			localSum += activityTotalLocal(&day.Activities[j])
		}

		homeSum := localSum
		if localCcy != homeCcy {
			homeSum = currencySvc.Convert(localSum, localCcy, homeCcy)
		}

		diff := capF - homeSum
		status := "UNDER"
		if diff < 0 {
			status = "OVER"
		}
		pct := int(math.Round(math.Abs(diff) / capF * 100))

		line := fmt.Sprintf("Budget (%s): %.2f / %d — %s by %d%%", homeCcy, homeSum, *maxDailyBudget, status, pct)
		day.Notes = append([]string{line}, dropBudgetNotes(day.Notes)...)
	}
}
