package utils

import "errors"

var (
	ErrInvalidRequest        = errors.New("invalid request")
	ErrGenerationFailed      = errors.New("generation failed")
	ErrJobNotFound           = errors.New("job not found")
	ErrItineraryNotFound     = errors.New("itinerary not found")
	ErrProviderNotConfigured = errors.New("llm provider not configured")
	ErrDatabaseError         = errors.New("database error")
)
