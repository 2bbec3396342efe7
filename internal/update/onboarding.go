package update

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/studyviking/internal/model"
	"github.com/sandeepkv93/studyviking/internal/onboarding"
	"github.com/sandeepkv93/studyviking/internal/tasks"
	"github.com/sandeepkv93/studyviking/internal/views"
)

const countryMatchLimit = 6

func (m Model) handleOnboardingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Onboarding.Seeding {
		return m, nil
	}
	w := m.Wizard
	key := msg.String()

	switch key {
	case "esc":
		w.Back()
		m.syncInputForStep()
		return m, nil
	case "ctrl+f":
		if w.Step() == onboarding.LastStep {
			return m.finishOnboarding()
		}
		return m, nil
	}

	switch w.Step() {
	case onboarding.StepWelcome, onboarding.StepLanguage, onboarding.StepDuration, onboarding.StepInSweden:
		if key == "enter" {
			return m.advance(), nil
		}
		m.handleChoiceKey(key)
		return m, nil
	case onboarding.StepOrigin:
		return m.handleOriginKey(msg)
	case onboarding.StepCategories:
		return m.handleCategoryStepKey(msg)
	}

	// Free-text steps: username, arrival, age.
	switch key {
	case "enter":
		return m.advance(), nil
	case "tab":
		if w.Step() == onboarding.StepUsername {
			names := w.SuggestedUsernames()
			if len(names) > 0 {
				m.Onboarding.Cursor = (m.Onboarding.Cursor + 1) % len(names)
				m.textInput.SetValue(names[m.Onboarding.Cursor])
				m.applyStepText()
			}
		}
		return m, nil
	}
	m.typeInto(msg)
	m.applyStepText()
	return m, nil
}

func (m *Model) handleChoiceKey(key string) {
	w := m.Wizard
	d := w.Draft()
	delta := 0
	switch key {
	case "up", "k", "left", "h":
		delta = -1
	case "down", "j", "right", "l":
		delta = 1
	}
	switch w.Step() {
	case onboarding.StepInSweden:
		switch key {
		case "y":
			w.SetInSweden(true)
		case "n":
			w.SetInSweden(false)
		case "left", "h", "right", "l", " ":
			w.SetInSweden(!d.InSweden)
		}
	case onboarding.StepDuration:
		if delta == 0 {
			return
		}
		i := indexOfDuration(d.StayDuration)
		if i < 0 {
			i = 0
			if delta < 0 {
				i = len(model.StayDurations) - 1
			}
		} else {
			i = wrapIndex(i+delta, len(model.StayDurations))
		}
		w.SetDuration(model.StayDurations[i])
	case onboarding.StepLanguage:
		if delta == 0 {
			return
		}
		i := wrapIndex(indexOfLanguage(d.PreferredLanguage)+delta, len(model.Languages))
		w.SetLanguage(model.Languages[i])
	}
}

func (m Model) handleOriginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	matches := m.Wizard.CountryMatches(m.textInput.Value())
	if len(matches) > countryMatchLimit {
		matches = matches[:countryMatchLimit]
	}
	switch msg.String() {
	case "up":
		m.Onboarding.Cursor = clamp(m.Onboarding.Cursor-1, len(matches))
		return m, nil
	case "down", "tab":
		m.Onboarding.Cursor = clamp(m.Onboarding.Cursor+1, len(matches))
		return m, nil
	case "enter":
		if !m.Wizard.CanAdvance() && len(matches) > 0 {
			pick := matches[clamp(m.Onboarding.Cursor, len(matches))]
			m.Wizard.SetOrigin(pick)
			m.textInput.SetValue(pick)
		}
		return m.advance(), nil
	}
	m.typeInto(msg)
	m.Onboarding.Cursor = 0
	m.applyStepText()
	return m, nil
}

func (m Model) handleCategoryStepKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	w := m.Wizard
	all := w.AllCategories()
	switch msg.String() {
	case "up":
		m.Onboarding.Cursor = clamp(m.Onboarding.Cursor-1, len(all))
		return m, nil
	case "down":
		m.Onboarding.Cursor = clamp(m.Onboarding.Cursor+1, len(all))
		return m, nil
	case "tab":
		if len(all) > 0 {
			w.ToggleCategory(all[clamp(m.Onboarding.Cursor, len(all))])
		}
		return m, nil
	case "enter":
		custom := strings.TrimSpace(m.textInput.Value())
		if custom == "" {
			return m.finishOnboarding()
		}
		name, err := w.AddCustomCategory(custom)
		if err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m, nil
		}
		m.textInput.SetValue("")
		m.Status = StatusBar{Text: fmt.Sprintf("added %s", name)}
		return m, nil
	}
	m.typeInto(msg)
	return m, nil
}

// advance moves the wizard forward and explains why when it cannot.
func (m Model) advance() Model {
	if !m.Wizard.Next() {
		if m.Wizard.Step() != onboarding.LastStep {
			m.Status = StatusBar{Text: "please answer this step to continue", IsError: true}
		}
		return m
	}
	m.Status = StatusBar{}
	m.syncInputForStep()
	return m
}

func (m Model) finishOnboarding() (tea.Model, tea.Cmd) {
	p, err := m.Wizard.Finish()
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.Onboarding.Seeding = true
	m.Status = StatusBar{Text: "building your checklist..."}
	return m, m.withSpinner(seedProfileCmd(m.deps, p))
}

func seedProfileCmd(deps Deps, p model.UserProfile) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		p.ActiveTasks = tasks.Seed(ctx, deps.generator(), deps.IDs, p, p.FocusCategories)
		err := deps.Store.Save(ctx, p)
		return OnboardingSeededMsg{Profile: p, SaveErr: err}
	}
}

// syncInputForStep loads the text input with the current step's answer.
func (m *Model) syncInputForStep() {
	d := m.Wizard.Draft()
	m.Onboarding.Cursor = 0
	m.textInput.Placeholder = ""
	switch m.Wizard.Step() {
	case onboarding.StepUsername:
		m.textInput.SetValue(d.Username)
		m.textInput.Placeholder = "e.g. " + strings.Join(m.Wizard.SuggestedUsernames(), ", ")
	case onboarding.StepOrigin:
		m.textInput.SetValue(d.OriginCountry)
		m.textInput.Placeholder = "type to search countries"
	case onboarding.StepArrival:
		m.textInput.SetValue(d.ArrivalDate)
		m.textInput.Placeholder = model.ArrivalDateLayout
	case onboarding.StepAge:
		age := ""
		if d.Age > 0 {
			age = strconv.Itoa(d.Age)
		}
		m.textInput.SetValue(age)
	default:
		m.textInput.SetValue("")
		if m.Wizard.Step() == onboarding.StepCategories {
			m.textInput.Placeholder = "add your own focus area"
		}
	}
}

// applyStepText copies the text input into the wizard draft.
func (m *Model) applyStepText() {
	v := m.textInput.Value()
	switch m.Wizard.Step() {
	case onboarding.StepUsername:
		m.Wizard.SetUsername(v)
	case onboarding.StepOrigin:
		m.Wizard.SetOrigin(strings.TrimSpace(v))
	case onboarding.StepArrival:
		m.Wizard.SetArrival(v)
	case onboarding.StepAge:
		m.Wizard.SetAgeText(v)
	}
}

// typeInto feeds a key to the shared text input.
func (m *Model) typeInto(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyRunes:
		m.textInput.SetValue(m.textInput.Value() + string(msg.Runes))
		return
	case tea.KeySpace:
		m.textInput.SetValue(m.textInput.Value() + " ")
		return
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	_ = cmd
}

func (m Model) renderOnboardingView() string {
	w := m.Wizard
	d := w.Draft()
	var b strings.Builder

	switch w.Step() {
	case onboarding.StepWelcome:
		b.WriteString("Välkommen! StudyViking helps international students settle in Sweden.\nA few questions and you get a personal checklist.")
	case onboarding.StepUsername:
		b.WriteString(m.textInput.View() + "\n[tab] try a suggestion")
	case onboarding.StepOrigin:
		b.WriteString(m.textInput.View() + "\n")
		matches := w.CountryMatches(m.textInput.Value())
		if len(matches) > countryMatchLimit {
			matches = matches[:countryMatchLimit]
		}
		for i, c := range matches {
			cursor := " "
			if i == m.Onboarding.Cursor {
				cursor = ">"
			}
			b.WriteString(fmt.Sprintf("%s %s\n", cursor, c))
		}
	case onboarding.StepInSweden:
		answer := "No, not yet"
		if d.InSweden {
			answer = "Yes, I'm here"
		}
		b.WriteString(fmt.Sprintf("< %s >  [y/n]", answer))
	case onboarding.StepArrival:
		b.WriteString(m.textInput.View())
	case onboarding.StepDuration:
		for _, opt := range model.StayDurations {
			b.WriteString(choiceLine(string(opt), opt == d.StayDuration))
		}
	case onboarding.StepAge:
		b.WriteString(m.textInput.View())
	case onboarding.StepLanguage:
		for _, opt := range model.Languages {
			b.WriteString(choiceLine(string(opt), opt == d.PreferredLanguage))
		}
	case onboarding.StepCategories:
		for i, cat := range w.AllCategories() {
			cursor := " "
			if i == m.Onboarding.Cursor {
				cursor = ">"
			}
			mark := "[ ]"
			if w.Selected(cat) {
				mark = "[x]"
			}
			b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, mark, cat))
		}
		b.WriteString(m.textInput.View() + "\n[tab] toggle  [enter] add typed area or finish")
		if m.Onboarding.Seeding {
			b.WriteString("\n" + m.busySpinner.View() + " building your checklist...")
		}
	}

	return views.RenderOnboardingPanel(views.OnboardingPanelData{
		StepIndex:    int(w.Step()),
		StepCount:    int(onboarding.LastStep),
		StepTitle:    w.Step().Title(),
		ProgressView: m.stepProgress.ViewAs(w.Progress()),
		Body:         strings.TrimRight(b.String(), "\n"),
		CanAdvance:   w.CanAdvance(),
		IsLast:       w.Step() == onboarding.LastStep,
	})
}

func choiceLine(label string, selected bool) string {
	if selected {
		return "(•) " + label + "\n"
	}
	return "( ) " + label + "\n"
}

func indexOfDuration(d model.StayDuration) int {
	for i, v := range model.StayDurations {
		if v == d {
			return i
		}
	}
	return -1
}

func indexOfLanguage(l model.Language) int {
	for i, v := range model.Languages {
		if v == l {
			return i
		}
	}
	return 0
}
