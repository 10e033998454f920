package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"wayfarer/cmd/fx/context_fx"
	"wayfarer/cmd/fx/db_fx"
	"wayfarer/cmd/fx/itinerary_fx"
	"wayfarer/cmd/fx/llm_fx"
	"wayfarer/internal/api/controllers"
	"wayfarer/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	app := fx.New(
		db_fx.Module,
		llm_fx.Module,
		context_fx.Module,
		itinerary_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	itineraryController *controllers.ItineraryController,
	jobController *controllers.JobController,
	healthController *controllers.HealthController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, itineraryController, jobController, healthController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	itineraryController *controllers.ItineraryController,
	jobController *controllers.JobController,
	healthController *controllers.HealthController) {

	r.GET("/health", healthController.HealthHandler)

	itinerariesGroup := r.Group("/itineraries")
	itinerariesGroup.POST("/generate", itineraryController.GenerateItineraryHandler)
	itinerariesGroup.GET("/:itineraryId", itineraryController.GetItineraryHandler)

	jobsGroup := r.Group("/jobs")
	jobsGroup.POST("/itinerary", jobController.SubmitItineraryJobHandler)
	jobsGroup.GET("/:jobId", jobController.GetJobHandler)
}
