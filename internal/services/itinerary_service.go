package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"wayfarer/internal/models/request_models"
	"wayfarer/internal/models/response_models"
	"wayfarer/internal/repositories"
	"wayfarer/pkg/utils"
)

// ProgressFunc receives human-readable progress lines while a generation
// runs. May be nil.
type ProgressFunc func(message string)

// ItineraryServiceInterface is the generation pipeline entry point.
type ItineraryServiceInterface interface {
	Generate(ctx context.Context, req *request_models.ItineraryRequest, progress ProgressFunc) (*response_models.ItineraryResponse, error)
	GenerateAndSave(ctx context.Context, req *request_models.ItineraryRequest, progress ProgressFunc) (*response_models.ItineraryResponse, string, error)
	GetSaved(ctx context.Context, id string) (*response_models.ItineraryResponse, error)
}

const systemPrompt = `You are an expert local travel planner. You design realistic, walkable day-by-day itineraries that respect opening hours, meal times and travel distances between places.
Rules:
- Respond with a single JSON object only. No markdown, no commentary.
- Follow the provided JSON structure exactly; use null for unknown optional values, never invent placeholder text.
- Use 24h times (HH:MM:SS) and ISO dates (YYYY-MM-DD).
- Prefer local food, neighborhoods and experiences over generic tourist traps.
- Keep daily pacing realistic: 3-6 activities per day including meals.
- Estimate costs in the local currency of the destination.`

type ItineraryService struct {
	llm        utils.LLMClientInterface
	schema     SchemaServiceInterface
	normalizer NormalizerServiceInterface
	locale     LocaleServiceInterface
	climate    ClimateServiceInterface
	calendar   CalendarServiceInterface
	currency   CurrencyServiceInterface
	repo       repositories.ItineraryRepositoryInterface
}

func NewItineraryService(
	llm utils.LLMClientInterface,
	schema SchemaServiceInterface,
	normalizer NormalizerServiceInterface,
	locale LocaleServiceInterface,
	climate ClimateServiceInterface,
	calendar CalendarServiceInterface,
	currency CurrencyServiceInterface,
	repo repositories.ItineraryRepositoryInterface,
) ItineraryServiceInterface {
	return &ItineraryService{
		llm:        llm,
		schema:     schema,
		normalizer: normalizer,
		locale:     locale,
		climate:    climate,
		calendar:   calendar,
		currency:   currency,
		repo:       repo,
	}
}

func notify(progress ProgressFunc, format string, args ...any) {
	if progress != nil {
		progress(fmt.Sprintf(format, args...))
	}
}

// screenContext drops an externally sourced prompt block entirely when it
// trips the injection heuristics. External data never gets to argue with the
// system prompt.
func screenContext(block, label string) string {
	if block == "" {
		return ""
	}
	if suspicious, patterns := utils.DetectPromptInjection(block); suspicious {
		log.Printf("Dropping %s context block, injection patterns: %v", label, patterns)
		return ""
	}
	return block
}

func (s *ItineraryService) buildUserPrompt(req *request_models.ItineraryRequest, calendarCtx, climateCtx string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Plan a trip to %s.\n", req.Destination)
	fmt.Fprintf(&b, "Dates: %s to %s (%d days). The daily_plan must contain exactly %d days.\n",
		utils.FormatISODate(req.StartDate.Time), utils.FormatISODate(req.ExpectedEndDate().Time), req.TripDays(), req.TripDays())
	fmt.Fprintf(&b, "Travelers: %d. Budget level: %s. Pace: %s.\n", *req.TravelersCount, req.BudgetLevel, req.Pace)
	fmt.Fprintf(&b, "Preferred transport: %s.\n", strings.Join(req.PreferredTransport, ", "))
	if len(req.Interests) > 0 {
		fmt.Fprintf(&b, "Interests: %s.\n", strings.Join(req.Interests, ", "))
	}
	if req.MaxDailyBudget != nil && *req.MaxDailyBudget > 0 {
		ccy := "the local currency"
		if req.HomeCurrency != nil {
			ccy = *req.HomeCurrency
		}
		fmt.Fprintf(&b, "Keep the combined daily activity cost near %d %s per day.\n", *req.MaxDailyBudget, ccy)
	}
	if calendarCtx != "" {
		b.WriteString("\n" + calendarCtx + "\nWork relevant holidays and events into the plan and warn about closures.\n")
	}
	if climateCtx != "" {
		b.WriteString("\n" + climateCtx + "\nChoose indoor/outdoor activities appropriate to the season.\n")
	}
	return b.String()
}

// decodeAndValidate takes raw model text through the full repair pipeline:
// fence stripping, JSON decode, normalization, optional budget guardrails on
// the raw day maps, then a typed decode and structural validation.
func (s *ItineraryService) decodeAndValidate(req *request_models.ItineraryRequest, rawText, localCcy string) (*response_models.ItineraryResponse, error) {
	var raw any
	if err := json.Unmarshal([]byte(utils.StripCodeFences(rawText)), &raw); err != nil {
		return nil, fmt.Errorf("model output is not valid JSON: %w", err)
	}

	candidate := s.normalizer.NormalizeCandidate(req, raw, localCcy)

	// the tolerance-band guardrail works in one currency; when the cap is
	// stated in a different home currency the post-validation annotator
	// covers budgets instead
	if req.HomeCurrency == nil || strings.EqualFold(*req.HomeCurrency, localCcy) {
		if days, ok := candidate["daily_plan"].([]any); ok {
			ApplyBudgetGuardrails(days, req.MaxDailyBudget, localCcy)
		}
	}

	buf, err := json.Marshal(candidate)
	if err != nil {
		return nil, fmt.Errorf("candidate re-encode failed: %w", err)
	}
	var it response_models.ItineraryResponse
	if err := json.Unmarshal(buf, &it); err != nil {
		return nil, fmt.Errorf("candidate does not fit the itinerary model: %w", err)
	}
	if err := it.Validate(); err != nil {
		return nil, fmt.Errorf("itinerary validation failed: %w", err)
	}
	return &it, nil
}

// Generate runs the strict-then-fallback generation pipeline and the
// deterministic annotation passes. It returns the validated itinerary or a
// single generation-failed error once both model attempts are exhausted.
func (s *ItineraryService) Generate(ctx context.Context, req *request_models.ItineraryRequest, progress ProgressFunc) (*response_models.ItineraryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := req.StartDate.Time
	end := req.ExpectedEndDate().Time

	ccHint := ""
	if gp := s.climate.Geocode(ctx, req.Destination); gp != nil {
		ccHint = gp.CountryCode
	}
	localCcy := s.locale.LocalCurrency(req.Destination, ccHint)
	notify(progress, "resolved destination %s (country=%q, currency=%s)", req.Destination, ccHint, localCcy)

	calendarCtx := screenContext(s.calendar.BuildCalendarContext(ctx, ccHint, req.Destination, start, end), "calendar")
	climateCtx := screenContext(s.climate.BuildClimateContext(ctx, req.Destination, start, end), "climate")
	userPrompt := s.buildUserPrompt(req, calendarCtx, climateCtx)

	notify(progress, "calling model (structured output)")
	it, strictErr := s.attemptStrict(ctx, req, userPrompt, localCcy)
	if strictErr != nil {
		log.Printf("Strict generation attempt failed for %s: %v", req.Destination, strictErr)
		notify(progress, "structured attempt failed, retrying in plain JSON mode")
		var fallbackErr error
		it, fallbackErr = s.attemptFallback(ctx, req, userPrompt, localCcy)
		if fallbackErr != nil {
			log.Printf("Fallback generation attempt failed for %s: %v", req.Destination, fallbackErr)
			return nil, utils.ErrGenerationFailed
		}
	}

	notify(progress, "model output validated, annotating")
	it.DailyPlan = ReconcileDays(it.DailyPlan, req.TripDays(), it.StartDate)
	it.TotalDays = len(it.DailyPlan)

	monthly := s.climate.MonthlyMapForRange(ctx, req.Destination, start, end)
	InjectWeather(it.DailyPlan, monthly)
	AnnotateBudget(it, req.HomeCurrency, req.MaxDailyBudget, s.currency)

	generatedAt := time.Now().UTC().Format(time.RFC3339)
	it.Meta.SchemaVersion = response_models.SchemaVersion
	it.Meta.Generator = response_models.GeneratorName
	it.Meta.GeneratedAtISO = &generatedAt

	notify(progress, "itinerary ready: %d day(s) in %s", it.TotalDays, it.Destination)
	return it, nil
}

func (s *ItineraryService) attemptStrict(ctx context.Context, req *request_models.ItineraryRequest, userPrompt, localCcy string) (*response_models.ItineraryResponse, error) {
	text, err := s.llm.CompleteStrict(ctx, systemPrompt, userPrompt, s.schema.StrictResponseSchema())
	if err != nil {
		return nil, err
	}
	return s.decodeAndValidate(req, text, localCcy)
}

func (s *ItineraryService) attemptFallback(ctx context.Context, req *request_models.ItineraryRequest, userPrompt, localCcy string) (*response_models.ItineraryResponse, error) {
	text, err := s.llm.CompleteJSON(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}
	return s.decodeAndValidate(req, text, localCcy)
}

// GenerateAndSave runs Generate and persists the result. Persistence is
// best-effort: a storage failure logs and returns an empty id, never an
// error, because the itinerary itself is already in hand.
func (s *ItineraryService) GenerateAndSave(ctx context.Context, req *request_models.ItineraryRequest, progress ProgressFunc) (*response_models.ItineraryResponse, string, error) {
	it, err := s.Generate(ctx, req, progress)
	if err != nil {
		return nil, "", err
	}
	if s.repo == nil {
		return it, "", nil
	}
	id, err := s.repo.Save(ctx, it)
	if err != nil {
		log.Printf("Itinerary save failed for %s: %v", it.Destination, err)
		return it, "", nil
	}
	notify(progress, "saved as %s", id)
	return it, id, nil
}

// GetSaved loads a previously stored itinerary by id.
func (s *ItineraryService) GetSaved(ctx context.Context, id string) (*response_models.ItineraryResponse, error) {
	if s.repo == nil {
		return nil, utils.ErrItineraryNotFound
	}
	return s.repo.FindByID(ctx, id)
}
