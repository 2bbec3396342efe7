package update

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/studyviking/internal/guide"
	"github.com/sandeepkv93/studyviking/internal/model"
	"github.com/sandeepkv93/studyviking/internal/router"
	"github.com/sandeepkv93/studyviking/internal/views"
)

func (m Model) selectTopic(topic string) (tea.Model, tea.Cmd) {
	if _, err := m.Router.Fire(router.EventSelectTopic, topic); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.Topic = TopicState{Name: topic, Loading: true, seq: m.Topic.seq + 1}
	m.guideViewport.SetContent("")
	m.Status = StatusBar{Text: "loading guide: " + topic}
	return m, m.withSpinner(loadGuideCmd(m.deps.Guide, topic, m.Topic.seq, m.profile()))
}

func (m Model) handleTopicKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "b", "esc":
		if _, err := m.Router.Fire(router.EventBack, ""); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m, nil
		}
		m.Topic = TopicState{seq: m.Topic.seq}
		m.Status = StatusBar{}
		return m, nil
	case "y":
		if m.Topic.Loading || m.Topic.Markdown == "" {
			return m, nil
		}
		if err := m.deps.Clipboard(m.Topic.Markdown); err != nil {
			m.deps.Logger.Warn("clipboard write failed", "error", err)
			m.Status = StatusBar{Text: "could not copy guide: " + err.Error(), IsError: true}
			return m, nil
		}
		m.Status = StatusBar{Text: "guide copied to clipboard"}
		return m, nil
	}
	var cmd tea.Cmd
	m.guideViewport, cmd = m.guideViewport.Update(msg)
	return m, cmd
}

func loadGuideCmd(client *guide.Client, topic string, seq int, p model.UserProfile) tea.Cmd {
	return func() tea.Msg {
		raw := ""
		if client != nil {
			raw = client.GenerateGuide(context.Background(), topic, p)
		}
		return GuideLoadedMsg{Topic: topic, Seq: seq, Raw: raw}
	}
}

func (m Model) renderTopicView() string {
	return views.RenderTopicPanel(views.TopicPanelData{
		Topic:        m.Router.Topic(),
		Loading:      m.Topic.Loading,
		SpinnerView:  m.busySpinner.View(),
		ViewportView: m.guideViewport.View(),
		ScrollPct:    int(m.guideViewport.ScrollPercent() * 100),
	})
}
