package update

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/studyviking/internal/guide"
	"github.com/sandeepkv93/studyviking/internal/model"
	"github.com/sandeepkv93/studyviking/internal/views"
)

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Chat.Open = false
		m.chatInput.Blur()
		return m, nil
	case "tab":
		if s := m.suggestions(); len(s) > 0 {
			m.chatInput.SetValue(s[m.Chat.next%len(s)])
			m.Chat.next++
		}
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.chatInput.Value())
		if text == "" || m.Chat.Typing {
			return m, nil
		}
		m.chatInput.Reset()
		m.appendChat(model.ChatRoleUser, text)
		m.Chat.Typing = true
		return m, m.withSpinner(chatCmd(m.Session, text))
	}
	if msg.Type == tea.KeyRunes {
		m.chatInput.InsertString(string(msg.Runes))
		return m, nil
	}
	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

// suggestions are offered until the conversation gets going.
func (m Model) suggestions() []string {
	if len(m.Chat.Messages) >= suggestionsMax {
		return nil
	}
	return SuggestedQuestions
}

func (m *Model) appendChat(role model.ChatRole, text string) {
	m.Chat.Messages = append(m.Chat.Messages, model.ChatMessage{
		ID:        m.deps.IDs.NewID(),
		Role:      role,
		Text:      text,
		Timestamp: m.deps.Now(),
	})
}

func chatCmd(s *guide.Session, text string) tea.Cmd {
	return func() tea.Msg {
		reply, err := s.SendTurn(context.Background(), text)
		return ChatReplyMsg{Session: s, Reply: reply, Err: err}
	}
}

func (m Model) renderChatView() string {
	lines := make([]views.ChatLineData, 0, len(m.Chat.Messages))
	for _, msg := range m.Chat.Messages {
		lines = append(lines, views.ChatLineData{
			FromUser: msg.Role == model.ChatRoleUser,
			Text:     msg.Text,
			At:       msg.Timestamp.Format("15:04"),
		})
	}
	return views.RenderChatPanel(views.ChatPanelData{
		Lines:       lines,
		Suggestions: m.suggestions(),
		Typing:      m.Chat.Typing,
		SpinnerView: m.busySpinner.View(),
		InputView:   m.chatInput.View(),
	})
}
