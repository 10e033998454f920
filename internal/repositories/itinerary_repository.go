package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wayfarer/internal/models/db_models"
	"wayfarer/internal/models/response_models"
	"wayfarer/pkg/utils"
)

type ItineraryRepositoryInterface interface {
	Save(ctx context.Context, it *response_models.ItineraryResponse) (string, error)
	FindByID(ctx context.Context, id string) (*response_models.ItineraryResponse, error)
}

type ItineraryRepository struct {
	db *gorm.DB
}

func NewItineraryRepository(db *gorm.DB) ItineraryRepositoryInterface {
	return &ItineraryRepository{db: db}
}

func (r ItineraryRepository) Save(ctx context.Context, it *response_models.ItineraryResponse) (string, error) {
	payload, err := json.Marshal(it)
	if err != nil {
		return "", fmt.Errorf("encode itinerary payload: %w", err)
	}

	row := db_models.Itinerary{
		Destination: it.Destination,
		StartDate:   it.StartDate.Time,
		EndDate:     it.EndDate.Time,
		TotalDays:   it.TotalDays,
		Currency:    it.Currency,
		Payload:     payload,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return row.ID.String(), nil
}

func (r ItineraryRepository) FindByID(ctx context.Context, id string) (*response_models.ItineraryResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, utils.ErrItineraryNotFound
	}

	var row db_models.Itinerary
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrItineraryNotFound
		}
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	var it response_models.ItineraryResponse
	if err := json.Unmarshal(row.Payload, &it); err != nil {
		return nil, fmt.Errorf("decode itinerary payload: %w", err)
	}
	return &it, nil
}
