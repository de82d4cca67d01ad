package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Reminder is a note attached to a future (or past) target date.
type Reminder struct {
	ID           int64     `json:"id"`
	Author       string    `json:"author"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	RepeatSchema string    `json:"repeatSchema,omitempty"`
	ColorHex     string    `json:"colorHex,omitempty"`
	TargetDate   string    `json:"targetDate"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Validate implements validation.Validatable.
func (r Reminder) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TargetDate, validation.Required, dateKey),
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
	)
}
