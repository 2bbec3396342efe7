package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrIncompleteProfile = errors.New("model: username and origin country are required")
	ErrInvalidDuration   = errors.New("model: invalid stay duration")
	ErrInvalidLanguage   = errors.New("model: invalid preferred language")
	ErrInvalidArrival    = errors.New("model: arrival date must be YYYY-MM-DD")
)

const ArrivalDateLayout = "2006-01-02"

type StayDuration string

const (
	StayUnderThreeMonths StayDuration = "Less than 3 months"
	StayOneSemester      StayDuration = "One semester (6 months)"
	StayOneYear          StayDuration = "One year"
	StayTwoYearsPlus     StayDuration = "Two years or more"
	StayPermanent        StayDuration = "Permanent"
)

var StayDurations = []StayDuration{
	StayUnderThreeMonths,
	StayOneSemester,
	StayOneYear,
	StayTwoYearsPlus,
	StayPermanent,
}

func (d StayDuration) IsValid() bool {
	switch d {
	case StayUnderThreeMonths, StayOneSemester, StayOneYear, StayTwoYearsPlus, StayPermanent:
		return true
	default:
		return false
	}
}

type Language string

const (
	LanguageEnglish Language = "English"
	LanguageSwedish Language = "Swedish"
	LanguageChinese Language = "Chinese"
	LanguageSpanish Language = "Spanish"
	LanguageHindi   Language = "Hindi"
	LanguageArabic  Language = "Arabic"
)

var Languages = []Language{
	LanguageEnglish,
	LanguageSwedish,
	LanguageChinese,
	LanguageSpanish,
	LanguageHindi,
	LanguageArabic,
}

func (l Language) IsValid() bool {
	switch l {
	case LanguageEnglish, LanguageSwedish, LanguageChinese, LanguageSpanish, LanguageHindi, LanguageArabic:
		return true
	default:
		return false
	}
}

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

func (t Theme) IsValid() bool {
	return t == ThemeDark || t == ThemeLight
}

func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// UserProfile is the single persisted aggregate. Field names on the wire
// match the stored JSON document.
type UserProfile struct {
	Username          string       `json:"username"`
	OriginCountry     string       `json:"originCountry"`
	City              string       `json:"city,omitempty"`
	InSweden          bool         `json:"inSweden"`
	ArrivalDate       string       `json:"arrivalDate"`
	StayDuration      StayDuration `json:"stayDuration"`
	Age               int          `json:"age"`
	FocusCategories   []string     `json:"focusCategories"`
	ActiveTasks       []TaskItem   `json:"activeTasks"`
	PreferredLanguage Language     `json:"preferredLanguage"`
	IsOnboarded       bool         `json:"isOnboarded"`
}

// Validate enforces the minimum needed to persist a profile. The remaining
// fields are checked per wizard step.
func (p UserProfile) Validate() error {
	if strings.TrimSpace(p.Username) == "" || strings.TrimSpace(p.OriginCountry) == "" {
		return ErrIncompleteProfile
	}
	if p.StayDuration != "" && !p.StayDuration.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidDuration, p.StayDuration)
	}
	if p.PreferredLanguage != "" && !p.PreferredLanguage.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidLanguage, p.PreferredLanguage)
	}
	if p.ArrivalDate != "" {
		if _, err := ParseArrivalDate(p.ArrivalDate); err != nil {
			return err
		}
	}
	return nil
}

func ParseArrivalDate(raw string) (time.Time, error) {
	t, err := time.Parse(ArrivalDateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidArrival, raw)
	}
	return t, nil
}

// Clone returns a deep copy so callers can mutate slices freely.
func (p UserProfile) Clone() UserProfile {
	out := p
	if p.FocusCategories != nil {
		out.FocusCategories = append(make([]string, 0, len(p.FocusCategories)), p.FocusCategories...)
	}
	if p.ActiveTasks != nil {
		out.ActiveTasks = append(make([]TaskItem, 0, len(p.ActiveTasks)), p.ActiveTasks...)
	}
	return out
}

// NewDraft returns the starting point for the onboarding wizard.
func NewDraft() UserProfile {
	return UserProfile{
		FocusCategories:   []string{},
		ActiveTasks:       []TaskItem{},
		PreferredLanguage: LanguageEnglish,
	}
}
