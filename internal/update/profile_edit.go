package update

import (
	"context"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/studyviking/internal/model"
	"github.com/sandeepkv93/studyviking/internal/onboarding"
	"github.com/sandeepkv93/studyviking/internal/router"
	"github.com/sandeepkv93/studyviking/internal/tasks"
	"github.com/sandeepkv93/studyviking/internal/views"
)

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.EditStatus.Saving || m.Edit == nil {
		return m, nil
	}
	f := m.Edit
	switch msg.String() {
	case "esc":
		if _, err := m.Router.Fire(router.EventCancel, ""); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m, nil
		}
		m.Edit = nil
		m.EditStatus = EditState{}
		m.Status = StatusBar{Text: "changes discarded"}
		return m, nil
	case "ctrl+s":
		return m.saveEdit()
	case "tab", "down":
		f.NextField()
		m.syncEditInput()
		return m, nil
	case "shift+tab", "up":
		f.PrevField()
		m.syncEditInput()
		return m, nil
	}

	if f.Field().IsText() {
		m.typeInto(msg)
		f.SetText(m.textInput.Value())
		return m, nil
	}
	switch msg.String() {
	case "left", "h":
		f.Cycle(-1)
	case "right", "l":
		f.Cycle(1)
	case " ", "enter":
		if f.Field() == onboarding.FieldCategories {
			f.ToggleCategory()
		} else {
			f.Cycle(1)
		}
	}
	return m, nil
}

func (m Model) saveEdit() (tea.Model, tea.Cmd) {
	edited, err := m.Edit.Result()
	if err != nil {
		m.EditStatus.Err = err.Error()
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.EditStatus = EditState{Saving: true}
	m.Status = StatusBar{Text: "saving profile..."}
	return m, m.withSpinner(saveEditCmd(m.deps, m.profile(), edited))
}

func saveEditCmd(deps Deps, old, edited model.UserProfile) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		p := tasks.ApplyProfileEdit(ctx, deps.generator(), deps.IDs, old, edited)
		err := deps.Store.Save(ctx, p)
		return ProfileEditedMsg{Profile: p, SaveErr: err}
	}
}

// syncEditInput loads the text input with the focused field's value.
func (m *Model) syncEditInput() {
	if m.Edit == nil {
		return
	}
	m.textInput.Placeholder = ""
	if !m.Edit.Field().IsText() {
		m.textInput.SetValue("")
		return
	}
	m.textInput.SetValue(m.Edit.Text())
	if m.Edit.Field() == onboarding.FieldArrival {
		m.textInput.Placeholder = model.ArrivalDateLayout
	}
	m.textInput.CursorEnd()
}

func (m Model) renderEditView() string {
	if m.Edit == nil {
		return ""
	}
	f := m.Edit
	d := f.Draft()
	inSweden := "No"
	if d.InSweden {
		inSweden = "Yes"
	}
	age := ""
	if d.Age > 0 {
		age = strconv.Itoa(d.Age)
	}
	values := []struct {
		field onboarding.Field
		value string
	}{
		{onboarding.FieldUsername, d.Username},
		{onboarding.FieldOrigin, d.OriginCountry},
		{onboarding.FieldCity, d.City},
		{onboarding.FieldInSweden, inSweden},
		{onboarding.FieldArrival, d.ArrivalDate},
		{onboarding.FieldDuration, string(d.StayDuration)},
		{onboarding.FieldAge, age},
		{onboarding.FieldLanguage, string(d.PreferredLanguage)},
	}
	fields := make([]views.EditFieldData, 0, len(values))
	for _, v := range values {
		fields = append(fields, views.EditFieldData{
			Label:   v.field.Label(),
			Value:   v.value,
			Focused: f.Field() == v.field,
		})
	}

	cats := make([]views.EditCategoryData, 0)
	onCats := f.Field() == onboarding.FieldCategories
	for i, c := range f.Categories() {
		cats = append(cats, views.EditCategoryData{
			Name:     c,
			Selected: f.Selected(c),
			Cursor:   onCats && i == f.CategoryCursor(),
		})
	}

	input := ""
	if f.Field().IsText() {
		input = m.textInput.View()
	}
	return views.RenderEditPanel(views.EditPanelData{
		Fields:     fields,
		Categories: cats,
		InputView:  input,
		ErrorText:  m.EditStatus.Err,
	})
}
