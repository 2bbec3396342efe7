package onboarding

import (
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/sandeepkv93/studyviking/internal/model"
)

type Step int

const (
	StepWelcome Step = iota
	StepUsername
	StepOrigin
	StepInSweden
	StepArrival
	StepDuration
	StepAge
	StepLanguage
	StepCategories
)

const LastStep = StepCategories

var stepTitles = map[Step]string{
	StepWelcome:    "Welcome",
	StepUsername:   "Pick a username",
	StepOrigin:     "Where are you from?",
	StepInSweden:   "Are you already in Sweden?",
	StepArrival:    "When do you arrive?",
	StepDuration:   "How long will you stay?",
	StepAge:        "How old are you?",
	StepLanguage:   "Preferred language",
	StepCategories: "What do you need help with?",
}

func (s Step) Title() string {
	return stepTitles[s]
}

// Wizard is the onboarding form. It only validates and collects answers;
// task seeding happens after Finish.
type Wizard struct {
	step        Step
	draft       model.UserProfile
	custom      []string
	suggestions []string
}

func NewWizard(rng *rand.Rand) *Wizard {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Wizard{
		draft:       model.NewDraft(),
		suggestions: model.SuggestUsernames(rng, 3),
	}
}

func (w *Wizard) Step() Step                   { return w.step }
func (w *Wizard) Draft() model.UserProfile     { return w.draft.Clone() }
func (w *Wizard) SuggestedUsernames() []string { return append([]string(nil), w.suggestions...) }

// Progress is the completed fraction of the wizard in [0,1].
func (w *Wizard) Progress() float64 {
	return float64(w.step) / float64(LastStep)
}

// CanAdvance reports whether the current step's answer is acceptable.
func (w *Wizard) CanAdvance() bool {
	switch w.step {
	case StepUsername:
		return strings.TrimSpace(w.draft.Username) != ""
	case StepOrigin:
		return model.IsKnownCountry(w.draft.OriginCountry)
	case StepArrival:
		_, err := model.ParseArrivalDate(w.draft.ArrivalDate)
		return err == nil
	case StepDuration:
		return w.draft.StayDuration.IsValid()
	case StepAge:
		return w.draft.Age > 0
	default:
		return true
	}
}

// Next moves forward when the step is valid. It never passes LastStep.
func (w *Wizard) Next() bool {
	if w.step >= LastStep || !w.CanAdvance() {
		return false
	}
	w.step++
	return true
}

func (w *Wizard) Back() {
	if w.step > StepWelcome {
		w.step--
	}
}

func (w *Wizard) SetUsername(v string) { w.draft.Username = v }
func (w *Wizard) SetOrigin(v string)   { w.draft.OriginCountry = v }
func (w *Wizard) SetInSweden(v bool)   { w.draft.InSweden = v }
func (w *Wizard) SetArrival(v string)  { w.draft.ArrivalDate = strings.TrimSpace(v) }

func (w *Wizard) SetDuration(d model.StayDuration) { w.draft.StayDuration = d }
func (w *Wizard) SetLanguage(l model.Language)     { w.draft.PreferredLanguage = l }

// SetAgeText parses free text; anything that is not a whole number clears
// the age.
func (w *Wizard) SetAgeText(v string) {
	age, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || age < 0 {
		age = 0
	}
	w.draft.Age = age
}

// CountryMatches filters the country list for the origin picker.
func (w *Wizard) CountryMatches(filter string) []string {
	return model.MatchCountries(filter)
}

// AllCategories lists the built-ins followed by custom categories the user
// has added, in the order they were added.
func (w *Wizard) AllCategories() []string {
	out := append([]string(nil), model.DefaultCategories...)
	return append(out, w.custom...)
}

func (w *Wizard) Selected(category string) bool {
	return model.ContainsCategory(w.draft.FocusCategories, category)
}

func (w *Wizard) ToggleCategory(category string) {
	if w.Selected(category) {
		w.draft.FocusCategories = model.RemoveCategory(w.draft.FocusCategories, category)
		return
	}
	w.draft.FocusCategories = append(w.draft.FocusCategories, model.CanonicalCategory(category))
}

// AddCustomCategory adds and selects a free-form category. Typing the name
// of a built-in just selects it.
func (w *Wizard) AddCustomCategory(name string) (string, error) {
	canonical := model.CanonicalCategory(name)
	if canonical == "" {
		return "", model.ErrEmptyCategory
	}
	if model.ContainsCategory(w.AllCategories(), canonical) {
		if w.Selected(canonical) {
			return canonical, model.ErrDuplicateCategory
		}
		w.ToggleCategory(canonical)
		return canonical, nil
	}
	w.custom = append(w.custom, canonical)
	w.draft.FocusCategories = append(w.draft.FocusCategories, canonical)
	return canonical, nil
}

// Finish returns the completed profile without tasks. It is allowed with
// zero categories selected.
func (w *Wizard) Finish() (model.UserProfile, error) {
	p := w.draft.Clone()
	p.Username = strings.TrimSpace(p.Username)
	if err := p.Validate(); err != nil {
		return model.UserProfile{}, err
	}
	p.ActiveTasks = []model.TaskItem{}
	p.IsOnboarded = true
	return p, nil
}
