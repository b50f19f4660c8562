package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// AnimalSex is the sex tag of a tracked animal
type AnimalSex = string

const (
	SexMale   AnimalSex = "male"
	SexFemale AnimalSex = "female"
	SexOther  AnimalSex = "other"
)

// AnimalSexLabels maps sex tags to display labels
var AnimalSexLabels = map[AnimalSex]string{
	SexMale:   "Macho",
	SexFemale: "Fêmea",
	SexOther:  "Outro",
}

// Animal is a tracked animal
type Animal struct {
	bun.BaseModel `bun:"table:animals,alias:anm"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string     `bun:"name,notnull" json:"name"`
	Specie        string     `bun:"specie,notnull" json:"specie"`
	Breed         string     `bun:"breed" json:"breed,omitempty"`
	Sex           AnimalSex  `bun:"sex" json:"sex,omitempty"`
	BirthDate     *time.Time `bun:"birth_date,nullzero" json:"birthDate,omitempty"`
	Weight        float64    `bun:"weight" json:"weight,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"createdAt,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updatedAt,omitempty"`
}

// Validate will run validation rules
func (a Animal) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&a.Specie, validation.Required),
		validation.Field(&a.Sex, validation.In(SexMale, SexFemale, SexOther)),
		validation.Field(&a.Weight, validation.Min(0.0)),
	)
}
