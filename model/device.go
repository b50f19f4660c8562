package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// DeviceStatus is the operational status of an IoT device
type DeviceStatus = string

const (
	DeviceActive      DeviceStatus = "active"
	DeviceInactive    DeviceStatus = "inactive"
	DeviceMaintenance DeviceStatus = "maintenance"
)

// DeviceType tells nodes apart from gateways
type DeviceType = string

const (
	DeviceNode    DeviceType = "node"
	DeviceGateway DeviceType = "gateway"
)

// DeviceStatusLabels maps status tags to display labels
var DeviceStatusLabels = map[DeviceStatus]string{
	DeviceActive:      "Ativo",
	DeviceInactive:    "Inativo",
	DeviceMaintenance: "Manutenção",
}

// Device is an IoT tracking device attached to an animal or acting as a gateway
type Device struct {
	bun.BaseModel  `bun:"table:devices,alias:dev"`
	ID             uuid.UUID    `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	SerialNumber   string       `bun:"serial_number,notnull,unique" json:"serialNumber"`
	Model          string       `bun:"model,notnull" json:"model"`
	Status         DeviceStatus `bun:"status,notnull" json:"status"`
	Type           DeviceType   `bun:"device_type" json:"type,omitempty"`
	BatteryLevel   int          `bun:"battery_level" json:"batteryLevel,omitempty"`
	GatewayID      string       `bun:"gateway_id" json:"gatewayId,omitempty"`
	AnimalID       string       `bun:"animal_id" json:"animalId,omitempty"`
	ActivationDate *time.Time   `bun:"activation_date,nullzero" json:"activationDate,omitempty"`
	CreatedAt      *time.Time   `bun:"created_at,nullzero,default:current_timestamp" json:"createdAt,omitempty"`
	UpdatedAt      *time.Time   `bun:"updated_at,nullzero,default:current_timestamp" json:"updatedAt,omitempty"`
}

// Validate will run validation rules
func (d Device) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.SerialNumber, validation.Required, validation.Length(1, 100)),
		validation.Field(&d.Model, validation.Required),
		validation.Field(&d.Status, validation.Required, validation.In(DeviceActive, DeviceInactive, DeviceMaintenance)),
		validation.Field(&d.Type, validation.In(DeviceNode, DeviceGateway)),
		validation.Field(&d.BatteryLevel, validation.Min(0), validation.Max(100)),
	)
}
