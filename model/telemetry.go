package model

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// TelemetryMessage is the sensor payload reported by a device
type TelemetryMessage struct {
	Temperature float64 `json:"temperature"`
	HeartRate   float64 `json:"heartRate"`
	Behavior    string  `json:"behavior"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Altitude    float64 `json:"altitude"`
	Speed       float64 `json:"speed"`
}

// Telemetry is a single reading ingested from a device
type Telemetry struct {
	bun.BaseModel `bun:"table:telemetries,alias:tlm"`
	ID            uuid.UUID        `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Topic         string           `bun:"topic,notnull" json:"topic"`
	Message       TelemetryMessage `bun:"message,type:jsonb" json:"message"`
	DeviceID      string           `bun:"device_id,notnull" json:"deviceId"`
	CreatedAt     *time.Time       `bun:"created_at,nullzero,default:current_timestamp" json:"createdAt,omitempty"`
	UpdatedAt     *time.Time       `bun:"updated_at,nullzero,default:current_timestamp" json:"updatedAt,omitempty"`
}

// Validate will run validation rules
func (t Telemetry) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Topic, validation.Required),
		validation.Field(&t.DeviceID, validation.Required),
		validation.Field(&t.Message, validation.By(validateMessage)),
	)
}

func validateMessage(value any) error {
	m, ok := value.(TelemetryMessage)
	if !ok {
		return errors.New("must be a telemetry message")
	}

	return validation.ValidateStruct(&m,
		validation.Field(&m.Behavior, validation.Required),
		validation.Field(&m.Latitude, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&m.Longitude, validation.Min(-180.0), validation.Max(180.0)),
	)
}
