package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Theme        string
	Header       string
	LeftPane     string
	RightPane    string
	Modal        string
	StatusLine   string
	StatusError  bool
	Footer       string
	Notification string
}

const paneWidth = 58

func RenderApp(data AppData) string {
	st := StylesFor(data.Theme)

	var row string
	if strings.TrimSpace(data.RightPane) == "" {
		row = st.Panel.Width(paneWidth*2 + 2).Render(data.LeftPane)
	} else {
		left := st.Panel.Width(paneWidth).Render(data.LeftPane)
		right := st.Panel.Width(paneWidth).Render(data.RightPane)
		row = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}

	status := st.Status.Render(data.StatusLine)
	if data.StatusError {
		status = st.Error.Render(data.StatusLine)
	}

	lines := []string{st.Header.Render(data.Header)}
	if data.Modal != "" {
		lines = append(lines, st.Modal.Render(data.Modal))
	}
	lines = append(lines, row, status)
	if data.Notification != "" {
		lines = append(lines, st.Panel.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, st.Footer.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderMarkdown renders md with a glamour standard style ("dark" or
// "light"). The raw markdown is returned if rendering fails.
func RenderMarkdown(md, style string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	if style == "" {
		style = "dark"
	}
	out, err := glamour.Render(md, style)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
