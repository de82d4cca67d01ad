// Package models defines the tracked entities and their validation rules.
package models

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/daybook/internal/activitytime"
	"github.com/starford/daybook/internal/localdate"
)

// dateKey accepts empty values; pair it with validation.Required.
var dateKey = validation.By(func(v interface{}) error {
	s, _ := v.(string)
	if s == "" || localdate.IsValid(s) {
		return nil
	}
	return errors.New("must be a valid YYYY-MM-DD date")
})

var clockTime = validation.By(func(v interface{}) error {
	s, _ := v.(string)
	if s == "" {
		return nil
	}
	if _, err := activitytime.ParseMinutes(s); err != nil {
		return errors.New("must be a valid HH:MM time")
	}
	return nil
})

func endsAfter(start string) validation.Rule {
	return validation.By(func(v interface{}) error {
		end, _ := v.(string)
		if start == "" || end == "" {
			return nil
		}
		if _, ok := activitytime.SpanMinutes(start, end); !ok {
			return errors.New("must be after the start time")
		}
		return nil
	})
}
