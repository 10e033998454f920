package itinerary_fx

import (
	"go.uber.org/fx"

	"wayfarer/internal/api/controllers"
	"wayfarer/internal/repositories"
	"wayfarer/internal/services"
	"wayfarer/pkg/utils"
)

var Module = fx.Provide(
	provideSchemaService,
	provideNormalizerService,
	ProvideItineraryService,
	provideJobService,
	provideItineraryController,
	provideJobController,
	provideHealthController)

func provideSchemaService() services.SchemaServiceInterface {
	return services.NewSchemaService()
}

func provideNormalizerService() services.NormalizerServiceInterface {
	return services.NewNormalizerService()
}

// ProvideItineraryService creates the generation pipeline with all dependencies
func ProvideItineraryService(
	llm utils.LLMClientInterface,
	schema services.SchemaServiceInterface,
	normalizer services.NormalizerServiceInterface,
	locale services.LocaleServiceInterface,
	climate services.ClimateServiceInterface,
	calendar services.CalendarServiceInterface,
	currency services.CurrencyServiceInterface,
	repo repositories.ItineraryRepositoryInterface,
) services.ItineraryServiceInterface {
	return services.NewItineraryService(
		llm,
		schema,
		normalizer,
		locale,
		climate,
		calendar,
		currency,
		repo,
	)
}

func provideJobService(generator services.ItineraryServiceInterface) services.JobServiceInterface {
	return services.NewJobService(generator)
}

func provideItineraryController(itineraryService services.ItineraryServiceInterface) *controllers.ItineraryController {
	return controllers.NewItineraryController(itineraryService)
}

func provideJobController(jobService services.JobServiceInterface) *controllers.JobController {
	return controllers.NewJobController(jobService)
}

func provideHealthController() *controllers.HealthController {
	return controllers.NewHealthController()
}
