package update

import (
	"strings"

	"github.com/sandeepkv93/studyviking/internal/views"
)

const notificationLimit = 40

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	m.Notifications = append(m.Notifications, Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    m.deps.Now().UTC(),
	})
	if len(m.Notifications) > notificationLimit {
		m.Notifications = m.Notifications[len(m.Notifications)-notificationLimit:]
	}
	m.deps.Logger.Debug("notification", "title", title, "level", level, "body", body)
}
