package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Notification is a message raised for a staff account
type Notification struct {
	bun.BaseModel `bun:"table:notifications,alias:ntf"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Title         string     `bun:"title,notnull" json:"title"`
	Message       string     `bun:"message,notnull" json:"message"`
	DateTime      *time.Time `bun:"date_time,nullzero" json:"dateTime,omitempty"`
	UserID        string     `bun:"user_id,notnull" json:"userId"`
	Read          bool       `bun:"read" json:"read"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"createdAt,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updatedAt,omitempty"`
}

// Validate will run validation rules
func (n Notification) Validate() error {
	return validation.ValidateStruct(&n,
		validation.Field(&n.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&n.Message, validation.Required),
		validation.Field(&n.UserID, validation.Required),
	)
}
