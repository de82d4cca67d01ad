package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Habit is a yes/no practice tracked per date.
type Habit struct {
	ID          int64     `json:"id"`
	Author      string    `json:"author"`
	Date        string    `json:"date"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsCompleted bool      `json:"isCompleted"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate implements validation.Validatable.
func (h Habit) Validate() error {
	return validation.ValidateStruct(&h,
		validation.Field(&h.Date, validation.Required, dateKey),
		validation.Field(&h.Name, validation.Required, validation.Length(1, 200)),
	)
}
