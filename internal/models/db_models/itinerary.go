package db_models

import "time"

// Itinerary stores one generated itinerary. The full response document is
// kept as a JSONB payload; the scalar columns exist for listing and lookup.
type Itinerary struct {
	BaseModel
	Destination string    `gorm:"index"`
	StartDate   time.Time `gorm:"type:date"`
	EndDate     time.Time `gorm:"type:date"`
	TotalDays   int
	Currency    string `gorm:"type:varchar(3)"`
	Payload     []byte `gorm:"type:jsonb"`
}
