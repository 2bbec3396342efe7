package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/studyviking/internal/commands"
	"github.com/sandeepkv93/studyviking/internal/model"
	"github.com/sandeepkv93/studyviking/internal/widgets"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}
	if msg.Type == tea.KeyRunes {
		m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
		m.Palette.Input = m.commandInput.Value()
		return m, nil
	}
	if msg.Type == tea.KeySpace {
		m.commandInput.SetValue(m.commandInput.Value() + " ")
		m.Palette.Input = m.commandInput.Value()
		return m, nil
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var follow tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		More: func(a commands.MoreArgs) (commands.Result, error) {
			cat, err := m.focusCategory(a.Category)
			if err != nil {
				return commands.Result{}, err
			}
			next, c := m.generateMore(cat)
			m, follow = next.(Model), c
			return commands.Result{Message: fmt.Sprintf("generating more for %s", cat)}, nil
		},
		Category: func(a commands.CategoryArgs) (commands.Result, error) {
			name := model.CanonicalCategory(a.Name)
			if model.ContainsCategory(m.profile().FocusCategories, name) {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("%s is already a focus area", name)}
			}
			next, c := m.addCategory(name)
			m, follow = next.(Model), c
			return commands.Result{Message: fmt.Sprintf("adding %s", name)}, nil
		},
		Topic: func(a commands.TopicArgs) (commands.Result, error) {
			next, c := m.selectTopic(a.Topic)
			m, follow = next.(Model), c
			if m.Status.IsError {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: m.Status.Text}
			}
			return commands.Result{Message: "loading guide: " + a.Topic}, nil
		},
		Theme: func(a commands.ThemeArgs) (commands.Result, error) {
			theme := m.Theme.Toggle()
			switch a.Mode {
			case commands.ThemeDark:
				theme = model.ThemeDark
			case commands.ThemeLight:
				theme = model.ThemeLight
			}
			m.setTheme(theme)
			if m.Status.IsError {
				return commands.Result{}, fmt.Errorf("theme: %s", m.Status.Text)
			}
			return commands.Result{Message: fmt.Sprintf("theme: %s", theme)}, nil
		},
		Phrase: func() (commands.Result, error) {
			m.Widgets.PhraseIndex = widgets.NextPhraseIndex(m.deps.Rand, m.Widgets.PhraseIndex)
			return commands.Result{Message: "new phrase: " + widgets.Phrases[m.Widgets.PhraseIndex].Phrase}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
		return m, nil
	}
	m.Status = StatusBar{Text: res.Message}
	m.notify("Command", res.Message, "info")
	return m, follow
}

// focusCategory resolves name against the profile's focus areas.
func (m Model) focusCategory(name string) (string, error) {
	key := model.CategoryKey(name)
	for _, c := range m.profile().FocusCategories {
		if model.CategoryKey(c) == key {
			return c, nil
		}
	}
	return "", &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("%s is not one of your focus areas", model.NormalizeCategory(name))}
}
