package context_fx

import (
	"os"

	"go.uber.org/fx"

	"wayfarer/internal/services"
)

// Prompt-context collaborators: destination locale, climate normals, public
// holidays and the static annual-events catalog.
var Module = fx.Provide(
	provideLocaleService,
	provideClimateService,
	provideHolidayProvider,
	provideAnnualEventProvider,
	provideCalendarService,
	provideCurrencyService)

func provideLocaleService() services.LocaleServiceInterface {
	return services.NewLocaleService(os.Getenv("DEFAULT_CURRENCY"))
}

func provideClimateService() services.ClimateServiceInterface {
	return services.NewClimateService()
}

func provideHolidayProvider() services.HolidayProviderInterface {
	return services.NewNagerHolidayProvider()
}

func provideAnnualEventProvider() services.AnnualEventProviderInterface {
	path := os.Getenv("ANNUAL_EVENTS_FILE")
	if path == "" {
		path = "data/annual_events.yml"
	}
	return services.NewStaticAnnualEventProvider(path)
}

func provideCalendarService(
	holidays services.HolidayProviderInterface,
	events services.AnnualEventProviderInterface,
) services.CalendarServiceInterface {
	return services.NewCalendarService(holidays, events)
}

func provideCurrencyService() services.CurrencyServiceInterface {
	return services.NewCurrencyService()
}
