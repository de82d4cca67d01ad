package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// UserProfile is the caller's own settings record.
type UserProfile struct {
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Theme     Theme     `json:"theme"`
	Language  Language  `json:"language"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate implements validation.Validatable.
func (p UserProfile) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Username, validation.Required, validation.Length(1, 64)),
		validation.Field(&p.Email, is.EmailFormat),
		validation.Field(&p.Theme),
		validation.Field(&p.Language),
	)
}

// SetupStatus reports whether the caller has finished onboarding.
type SetupStatus struct {
	HasProfile bool `json:"hasProfile"`
}
