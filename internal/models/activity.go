package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Activity is a named thing done on a date, optionally timed.
type Activity struct {
	ID          int64     `json:"id"`
	Author      string    `json:"author"`
	Date        string    `json:"date"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartTime   string    `json:"startTime,omitempty"`
	EndTime     string    `json:"endTime,omitempty"`
	Duration    *int      `json:"duration,omitempty"` // minutes
	GoalType    GoalType  `json:"goalType"`
	Recurring   bool      `json:"recurring"`
	CoverImage  string    `json:"coverImage,omitempty"`
	ColorHex    string    `json:"colorHex,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate implements validation.Validatable.
func (a Activity) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Date, validation.Required, dateKey),
		validation.Field(&a.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&a.StartTime, clockTime),
		validation.Field(&a.EndTime, clockTime, endsAfter(a.StartTime)),
		validation.Field(&a.Duration, validation.Min(0)),
		validation.Field(&a.GoalType),
	)
}
