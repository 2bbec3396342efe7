package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/studyviking/internal/router"
	"github.com/sandeepkv93/studyviking/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	bindings := m.helpBindings()
	plain := make([]string, 0, len(m.stateBindings()))
	for _, kb := range m.stateBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.Router.Current()),
		Bindings:    plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Palette, Action: "open command palette"},
		{Key: "c", Action: "open chat"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) stateBindings() []KeyBinding {
	if m.Chat.Open {
		return []KeyBinding{
			{Key: "enter", Action: "send message"},
			{Key: "tab", Action: "use a suggested question"},
			{Key: "esc", Action: "close chat"},
		}
	}
	switch m.Router.Current() {
	case router.StateDashboard:
		return []KeyBinding{
			{Key: "h/l", Action: "previous/next focus area"},
			{Key: "j/k", Action: "move task cursor"},
			{Key: "x", Action: "mark task done"},
			{Key: "g", Action: "generate more tasks"},
			{Key: "enter", Action: "open guide for selected task"},
			{Key: "e", Action: "edit profile"},
			{Key: "t", Action: "toggle theme"},
			{Key: "p", Action: "new Swedish phrase"},
		}
	case router.StateTopicDetail:
		return []KeyBinding{
			{Key: "j/k", Action: "scroll guide"},
			{Key: "y", Action: "copy guide"},
			{Key: "b", Action: "back to dashboard"},
		}
	case router.StateEditProfile:
		return []KeyBinding{
			{Key: "tab", Action: "next field"},
			{Key: "left/right", Action: "change selection"},
			{Key: "space", Action: "toggle focus area"},
			{Key: "ctrl+s", Action: "save"},
			{Key: "esc", Action: "discard changes"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.stateBindings()))
	for _, kb := range append(m.globalBindings(), m.stateBindings()...) {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
