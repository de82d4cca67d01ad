package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// AccessType controls who may read a journal entry.
type AccessType string

const (
	AccessPublic  AccessType = "public"
	AccessPrivate AccessType = "private"
)

// Journal is the free-text entry for a date. There is at most one per
// author and date.
type Journal struct {
	ID             int64      `json:"id"`
	Author         string     `json:"author"`
	Date           string     `json:"date"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	Locked         bool       `json:"locked"`
	AccessType     AccessType `json:"accessType"`
	SharedWith     []string   `json:"sharedWith,omitempty"`
	CoverImage     string     `json:"coverImage,omitempty"`
	ColorHex       string     `json:"colorHex,omitempty"`
	HasAttachments bool       `json:"hasAttachments"`
	Entropy        int64      `json:"entropy"`
	SourcePath     string     `json:"sourcePath,omitempty"`
	SourceChecksum string     `json:"-"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// Validate implements validation.Validatable.
func (j Journal) Validate() error {
	return validation.ValidateStruct(&j,
		validation.Field(&j.Date, validation.Required, dateKey),
		validation.Field(&j.Title, validation.Length(0, 200)),
		validation.Field(&j.AccessType, validation.Required, validation.In(AccessPublic, AccessPrivate)),
	)
}
