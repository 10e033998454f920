package db_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"wayfarer/internal/infra"
	"wayfarer/internal/models/db_models"
	"wayfarer/internal/repositories"
)

var Module = fx.Provide(
	provideDB,
	provideItineraryRepository)

func provideDB() *gorm.DB {
	db := infra.InitPostgresql()
	_ = db.AutoMigrate(&db_models.Itinerary{})
	return db
}

func provideItineraryRepository(db *gorm.DB) repositories.ItineraryRepositoryInterface {
	return repositories.NewItineraryRepository(db)
}
