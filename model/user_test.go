package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pettrack/console/model"
)

func TestUser_Validate(t *testing.T) {
	valid := model.User{
		Name:  "Maria Silva",
		Email: "maria@example.com",
		Role:  model.RoleUser,
	}

	t.Run("accepts a complete user", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("rejects unknown roles", func(t *testing.T) {
		u := valid
		u.Role = "superuser"
		assert.Error(t, u.Validate())
	})

	t.Run("rejects bad emails", func(t *testing.T) {
		u := valid
		u.Email = "not-an-email"
		assert.Error(t, u.Validate())
	})

	t.Run("accepts an empty phone", func(t *testing.T) {
		u := valid
		u.Phone = ""
		assert.NoError(t, u.Validate())
	})

	t.Run("accepts a valid BR phone", func(t *testing.T) {
		u := valid
		u.Phone = "+55 11 91234-5678"
		assert.NoError(t, u.Validate())
	})

	t.Run("rejects a malformed phone", func(t *testing.T) {
		u := valid
		u.Phone = "123"
		assert.Error(t, u.Validate())
	})
}

func TestDevice_Validate(t *testing.T) {
	valid := model.Device{
		SerialNumber: "SN-001",
		Model:        "TrackerX",
		Status:       model.DeviceActive,
		BatteryLevel: 80,
	}

	assert.NoError(t, valid.Validate())

	t.Run("rejects unknown status", func(t *testing.T) {
		d := valid
		d.Status = "broken"
		assert.Error(t, d.Validate())
	})

	t.Run("rejects battery above 100", func(t *testing.T) {
		d := valid
		d.BatteryLevel = 120
		assert.Error(t, d.Validate())
	})
}

func TestTelemetry_Validate(t *testing.T) {
	valid := model.Telemetry{
		Topic:    "devices/sn-001/telemetry",
		DeviceID: "dev-1",
		Message: model.TelemetryMessage{
			Behavior:  "grazing",
			Latitude:  -23.55,
			Longitude: -46.63,
		},
	}

	assert.NoError(t, valid.Validate())

	t.Run("rejects out-of-range coordinates", func(t *testing.T) {
		tm := valid
		tm.Message.Latitude = 120
		assert.Error(t, tm.Validate())
	})

	t.Run("rejects a missing behavior", func(t *testing.T) {
		tm := valid
		tm.Message.Behavior = ""
		assert.Error(t, tm.Validate())
	})
}
