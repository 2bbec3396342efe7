package onboarding

import (
	"strconv"
	"strings"

	"github.com/sandeepkv93/studyviking/internal/model"
)

type Field int

const (
	FieldUsername Field = iota
	FieldOrigin
	FieldCity
	FieldInSweden
	FieldArrival
	FieldDuration
	FieldAge
	FieldLanguage
	FieldCategories
)

const fieldCount = int(FieldCategories) + 1

var fieldLabels = [...]string{
	FieldUsername:   "Username",
	FieldOrigin:     "Origin Country",
	FieldCity:       "City in Sweden",
	FieldInSweden:   "Are you in Sweden?",
	FieldArrival:    "Arrival Date",
	FieldDuration:   "Duration of Stay",
	FieldAge:        "Age",
	FieldLanguage:   "Preferred Language",
	FieldCategories: "Your Focus Areas",
}

func (f Field) Label() string {
	return fieldLabels[f]
}

// IsText reports whether the field is edited by typing.
func (f Field) IsText() bool {
	switch f {
	case FieldUsername, FieldOrigin, FieldArrival, FieldAge:
		return true
	default:
		return false
	}
}

// EditForm edits a copy of an existing profile. Nothing is applied until
// the caller takes Result.
type EditForm struct {
	draft     model.UserProfile
	field     Field
	catCursor int
	ageText   string
	options   []string
}

func NewEditForm(p model.UserProfile) *EditForm {
	f := &EditForm{draft: p.Clone(), options: editCategories(p.FocusCategories)}
	if p.Age > 0 {
		f.ageText = strconv.Itoa(p.Age)
	}
	return f
}

func (f *EditForm) Field() Field             { return f.field }
func (f *EditForm) Draft() model.UserProfile { return f.draft.Clone() }
func (f *EditForm) CategoryCursor() int      { return f.catCursor }
func (f *EditForm) Categories() []string     { return append([]string(nil), f.options...) }

func (f *EditForm) Selected(category string) bool {
	return model.ContainsCategory(f.draft.FocusCategories, category)
}

func (f *EditForm) NextField() {
	f.field = Field((int(f.field) + 1) % fieldCount)
}

func (f *EditForm) PrevField() {
	f.field = Field((int(f.field) + fieldCount - 1) % fieldCount)
}

// Text returns the editable text of the focused field.
func (f *EditForm) Text() string {
	switch f.field {
	case FieldUsername:
		return f.draft.Username
	case FieldOrigin:
		return f.draft.OriginCountry
	case FieldArrival:
		return f.draft.ArrivalDate
	case FieldAge:
		return f.ageText
	default:
		return ""
	}
}

func (f *EditForm) SetText(v string) {
	switch f.field {
	case FieldUsername:
		f.draft.Username = v
	case FieldOrigin:
		f.draft.OriginCountry = v
	case FieldArrival:
		f.draft.ArrivalDate = strings.TrimSpace(v)
	case FieldAge:
		f.ageText = v
		age, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || age < 0 {
			age = 0
		}
		f.draft.Age = age
	}
}

// Cycle steps a selector field by delta. On the categories field it moves
// the category cursor instead.
func (f *EditForm) Cycle(delta int) {
	switch f.field {
	case FieldCity:
		names := cityOptions()
		f.draft.City = names[step(indexOf(names, f.draft.City), delta, len(names))]
	case FieldInSweden:
		f.draft.InSweden = !f.draft.InSweden
	case FieldDuration:
		opts := make([]string, len(model.StayDurations))
		for i, d := range model.StayDurations {
			opts[i] = string(d)
		}
		f.draft.StayDuration = model.StayDurations[step(indexOf(opts, string(f.draft.StayDuration)), delta, len(opts))]
	case FieldLanguage:
		opts := make([]string, len(model.Languages))
		for i, l := range model.Languages {
			opts[i] = string(l)
		}
		f.draft.PreferredLanguage = model.Languages[step(indexOf(opts, string(f.draft.PreferredLanguage)), delta, len(opts))]
	case FieldCategories:
		f.catCursor = step(f.catCursor, delta, len(f.options))
	}
}

// ToggleCategory flips the category under the cursor.
func (f *EditForm) ToggleCategory() {
	if len(f.options) == 0 {
		return
	}
	name := f.options[f.catCursor]
	if f.Selected(name) {
		f.draft.FocusCategories = model.RemoveCategory(f.draft.FocusCategories, name)
		return
	}
	f.draft.FocusCategories = append(f.draft.FocusCategories, name)
}

// Result validates the edited profile. Username and origin are required,
// as during onboarding.
func (f *EditForm) Result() (model.UserProfile, error) {
	p := f.draft.Clone()
	p.Username = strings.TrimSpace(p.Username)
	if err := p.Validate(); err != nil {
		return model.UserProfile{}, err
	}
	return p, nil
}

// editCategories is the built-ins plus any custom categories already on the
// profile. It is fixed when the form opens so deselected customs stay listed.
func editCategories(selected []string) []string {
	out := append([]string(nil), model.DefaultCategories...)
	for _, c := range selected {
		if !model.ContainsCategory(out, c) {
			out = append(out, c)
		}
	}
	return out
}

func cityOptions() []string {
	out := make([]string, 0, len(model.SwedishCities)+1)
	out = append(out, "")
	for _, c := range model.SwedishCities {
		out = append(out, c.Name)
	}
	return out
}

func indexOf(items []string, target string) int {
	for i, item := range items {
		if item == target {
			return i
		}
	}
	return -1
}

// step moves i by delta around a ring of n. An unknown position (-1) starts
// from the first option.
func step(i, delta, n int) int {
	if n == 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	return (((i + delta) % n) + n) % n
}
