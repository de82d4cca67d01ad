package models

import (
	"errors"
	"fmt"
	"slices"
)

// Kind names an entity family. The values double as cache key prefixes.
type Kind string

const (
	KindActivity Kind = "activities"
	KindFinance  Kind = "finances"
	KindHabit    Kind = "habits"
	KindJournal  Kind = "journal"
	KindReminder Kind = "reminders"
	KindProfile  Kind = "profile"
)

// Singular returns a human label for messages.
func (k Kind) Singular() string {
	switch k {
	case KindActivity:
		return "activity"
	case KindFinance:
		return "finance entry"
	case KindHabit:
		return "habit"
	case KindJournal:
		return "journal entry"
	case KindReminder:
		return "reminder"
	case KindProfile:
		return "profile"
	}
	return string(k)
}

// Plural returns the human plural label.
func (k Kind) Plural() string {
	switch k {
	case KindActivity:
		return "activities"
	case KindFinance:
		return "finance entries"
	case KindHabit:
		return "habits"
	case KindJournal:
		return "journal entries"
	case KindReminder:
		return "reminders"
	case KindProfile:
		return "your profile"
	}
	return string(k)
}

// GoalKind tags a GoalType.
type GoalKind string

const (
	GoalHabit   GoalKind = "habit"
	GoalCustom  GoalKind = "custom"
	GoalMonthly GoalKind = "monthly"
	GoalYearly  GoalKind = "yearly"
	GoalDaily   GoalKind = "daily"
	GoalProject GoalKind = "project"
	GoalWeekly  GoalKind = "weekly"
)

var goalKinds = []GoalKind{GoalHabit, GoalMonthly, GoalYearly, GoalDaily, GoalProject, GoalWeekly}

// GoalType is the goal an activity counts towards. Only the custom kind
// carries a payload.
type GoalType struct {
	Kind   GoalKind `json:"kind"`
	Custom string   `json:"custom,omitempty"`
}

// Validate implements validation.Validatable.
func (g GoalType) Validate() error {
	return validateVariant(g.Kind, g.Custom, GoalCustom, goalKinds)
}

// Label returns the display name.
func (g GoalType) Label() string {
	switch g.Kind {
	case GoalCustom:
		return g.Custom
	case GoalHabit:
		return "Habit"
	case GoalMonthly:
		return "Monthly"
	case GoalYearly:
		return "Yearly"
	case GoalDaily:
		return "Daily"
	case GoalProject:
		return "Project"
	case GoalWeekly:
		return "Weekly"
	}
	return ""
}

// ThemeKind tags a Theme.
type ThemeKind string

const (
	ThemeRed    ThemeKind = "red"
	ThemeCustom ThemeKind = "custom"
	ThemeBlue   ThemeKind = "blue"
	ThemeDark   ThemeKind = "dark"
	ThemePurple ThemeKind = "purple"
	ThemeLight  ThemeKind = "light"
	ThemeGreen  ThemeKind = "green"
	ThemeYellow ThemeKind = "yellow"
)

var themeKinds = []ThemeKind{ThemeRed, ThemeBlue, ThemeDark, ThemePurple, ThemeLight, ThemeGreen, ThemeYellow}

// Theme is the profile's UI theme.
type Theme struct {
	Kind   ThemeKind `json:"kind"`
	Custom string    `json:"custom,omitempty"`
}

// Validate implements validation.Validatable.
func (t Theme) Validate() error {
	return validateVariant(t.Kind, t.Custom, ThemeCustom, themeKinds)
}

// LanguageKind tags a Language.
type LanguageKind string

const (
	LanguageCustom     LanguageKind = "custom"
	LanguagePortuguese LanguageKind = "portuguese"
	LanguageJapanese   LanguageKind = "japanese"
	LanguageChinese    LanguageKind = "chinese"
	LanguageItalian    LanguageKind = "italian"
	LanguageSpanish    LanguageKind = "spanish"
	LanguageGerman     LanguageKind = "german"
	LanguageArabic     LanguageKind = "arabic"
	LanguageFrench     LanguageKind = "french"
	LanguageRussian    LanguageKind = "russian"
	LanguageDutch      LanguageKind = "dutch"
	LanguageEnglish    LanguageKind = "english"
	LanguageKorean     LanguageKind = "korean"
)

var languageKinds = []LanguageKind{
	LanguagePortuguese, LanguageJapanese, LanguageChinese, LanguageItalian,
	LanguageSpanish, LanguageGerman, LanguageArabic, LanguageFrench,
	LanguageRussian, LanguageDutch, LanguageEnglish, LanguageKorean,
}

// Language is the profile's preferred language.
type Language struct {
	Kind   LanguageKind `json:"kind"`
	Custom string       `json:"custom,omitempty"`
}

// Validate implements validation.Validatable.
func (l Language) Validate() error {
	return validateVariant(l.Kind, l.Custom, LanguageCustom, languageKinds)
}

func validateVariant[K ~string](kind K, custom string, customKind K, plain []K) error {
	switch {
	case kind == "":
		return errors.New("kind is required")
	case kind == customKind:
		if custom == "" {
			return fmt.Errorf("kind %q requires a value", kind)
		}
		return nil
	case slices.Contains(plain, kind):
		if custom != "" {
			return fmt.Errorf("kind %q does not take a value", kind)
		}
		return nil
	}
	return fmt.Errorf("unknown kind %q", kind)
}
