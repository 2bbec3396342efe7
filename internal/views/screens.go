package views

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/studyviking/internal/model"
)

type OnboardingPanelData struct {
	StepIndex    int
	StepCount    int
	StepTitle    string
	ProgressView string
	Body         string
	CanAdvance   bool
	IsLast       bool
}

type CategorySummaryData struct {
	Name      string
	Count     int
	Selected  bool
	Loading   bool
	Replacing bool
}

type DashboardPanelData struct {
	Username      string
	Origin        string
	Categories    []CategorySummaryData
	CategoryView  string
	TaskTableView string
	SpinnerView   string
}

type WidgetsPanelData struct {
	Location    string
	Season      string
	Icon        string
	Temperature *float64
	Clothing    string
	Tip         string

	Phrase        string
	Phonetic      string
	Pronunciation string
	Meaning       string

	HolidayToday bool
	HolidayName  string
	HolidayDate  string
	HolidayDesc  string
}

type ConfirmModalData struct {
	TaskText string
	Category string
}

type TopicPanelData struct {
	Topic        string
	Loading      bool
	SpinnerView  string
	ViewportView string
	ScrollPct    int
}

type ChatLineData struct {
	FromUser bool
	Text     string
	At       string
}

type ChatPanelData struct {
	Lines       []ChatLineData
	Suggestions []string
	Typing      bool
	SpinnerView string
	InputView   string
}

type EditFieldData struct {
	Label   string
	Value   string
	Focused bool
}

type EditCategoryData struct {
	Name     string
	Selected bool
	Cursor   bool
}

type EditPanelData struct {
	Fields     []EditFieldData
	Categories []EditCategoryData
	InputView  string
	ErrorText  string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderOnboardingPanel(data OnboardingPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("onboarding: step %d/%d\n", data.StepIndex, data.StepCount))
	b.WriteString(data.ProgressView + "\n\n")
	b.WriteString(data.StepTitle + "\n")
	b.WriteString(data.Body + "\n\n")
	switch {
	case data.IsLast:
		b.WriteString("actions: [ctrl+f]finish [esc]back")
	case data.CanAdvance:
		b.WriteString("actions: [enter]next [esc]back")
	default:
		b.WriteString("actions: [esc]back (answer to continue)")
	}
	return b.String()
}

func RenderDashboardPanel(data DashboardPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Hej, %s!", data.Username))
	if data.Origin != "" {
		b.WriteString(fmt.Sprintf(" (from %s)", data.Origin))
	}
	b.WriteString("\n\n")
	if len(data.Categories) == 0 {
		b.WriteString("No focus areas yet. Add one with /category <name>.\n")
		return strings.TrimSpace(b.String())
	}
	b.WriteString("focus areas:\n")
	b.WriteString(data.CategoryView + "\n")
	for _, c := range data.Categories {
		if !c.Selected {
			continue
		}
		b.WriteString(fmt.Sprintf("\n%s (%d)", c.Name, c.Count))
		if c.Loading {
			b.WriteString(" " + data.SpinnerView + " generating...")
		}
		if c.Replacing {
			b.WriteString(" " + data.SpinnerView + " finding your next step...")
		}
		b.WriteString("\n")
		if c.Count == 0 {
			b.WriteString("  All done here. Press [g] for more.\n")
		} else {
			b.WriteString(data.TaskTableView + "\n")
		}
	}
	b.WriteString("\nactions: [h/l]area [j/k]task [x]done [g]more [enter]task guide [e]edit [c]chat")
	return b.String()
}

func RenderWidgetsPanel(data WidgetsPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s\n", data.Icon, data.Location))
	if data.Temperature != nil {
		b.WriteString(fmt.Sprintf("%.1f°C | ", *data.Temperature))
	}
	b.WriteString(data.Season + "\n")
	b.WriteString("Wear: " + data.Clothing + "\n")
	b.WriteString("Tip: " + data.Tip + "\n\n")

	b.WriteString("Phrase of the Day\n")
	b.WriteString(fmt.Sprintf("%s %s\n", data.Phrase, data.Phonetic))
	b.WriteString(fmt.Sprintf("\"%s\"\n", data.Pronunciation))
	b.WriteString(data.Meaning + "\n")
	b.WriteString("[p] new phrase\n\n")

	if data.HolidayToday {
		b.WriteString("Today's Holiday\n")
		b.WriteString(data.HolidayName + "\n")
	} else {
		b.WriteString("Upcoming Holiday\n")
		b.WriteString(fmt.Sprintf("%s (%s)\n", data.HolidayName, data.HolidayDate))
	}
	b.WriteString(data.HolidayDesc)
	return b.String()
}

func RenderConfirmModal(data ConfirmModalData) string {
	return fmt.Sprintf("Mark as done?\n\n%s\n(%s)\n\n[y] yes, done  [n] not yet", data.TaskText, data.Category)
}

func RenderTopicPanel(data TopicPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("guide: %s\n", data.Topic))
	if data.Loading {
		b.WriteString(fmt.Sprintf("\n%s Asking our Swedish guide about %s...\n", data.SpinnerView, data.Topic))
	} else {
		b.WriteString(data.ViewportView + "\n")
		b.WriteString(fmt.Sprintf("%d%%\n", data.ScrollPct))
	}
	b.WriteString("actions: [j/k]scroll [y]copy [c]chat [b]back")
	return b.String()
}

func RenderChatPanel(data ChatPanelData) string {
	var b strings.Builder
	b.WriteString("chat:\n")
	for _, line := range data.Lines {
		who := "guide"
		if line.FromUser {
			who = "you"
		}
		b.WriteString(fmt.Sprintf("[%s] %s: %s\n", line.At, who, line.Text))
	}
	if data.Typing {
		b.WriteString(data.SpinnerView + " typing...\n")
	}
	if len(data.Suggestions) > 0 {
		b.WriteString("\ntry asking:\n")
		for i, s := range data.Suggestions {
			b.WriteString(fmt.Sprintf("%d. %s\n", i+1, s))
		}
	}
	b.WriteString("\n" + data.InputView + "\n")
	b.WriteString("actions: [enter]send [tab]suggestion [esc]close")
	return b.String()
}

func RenderEditPanel(data EditPanelData) string {
	var b strings.Builder
	b.WriteString("edit profile:\n")
	for _, f := range data.Fields {
		cursor := " "
		if f.Focused {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s: %s\n", cursor, f.Label, f.Value))
	}
	if len(data.Categories) > 0 {
		b.WriteString("\n")
		for _, c := range data.Categories {
			cursor := " "
			if c.Cursor {
				cursor = ">"
			}
			mark := "[ ]"
			if c.Selected {
				mark = "[x]"
			}
			b.WriteString(fmt.Sprintf("  %s %s %s\n", cursor, mark, c.Name))
		}
	}
	if data.InputView != "" {
		b.WriteString("\n" + data.InputView + "\n")
	}
	if data.ErrorText != "" {
		b.WriteString("error: " + data.ErrorText + "\n")
	}
	b.WriteString("actions: [tab]field [left/right]change [space]toggle [ctrl+s]save [esc]cancel")
	return b.String()
}

// GuideMarkdown lays out a topic guide as markdown for glamour.
func GuideMarkdown(topic string, g model.GuideData) string {
	var b strings.Builder
	b.WriteString("# " + topic + "\n\n")
	if g.Intro != "" {
		b.WriteString(g.Intro + "\n\n")
	}
	if len(g.Steps) > 0 {
		b.WriteString("## Steps\n\n")
		for i, s := range g.Steps {
			b.WriteString(fmt.Sprintf("%d. **%s**: %s\n", i+1, s.Title, s.Desc))
		}
		b.WriteString("\n")
	}
	if len(g.Checklist) > 0 {
		b.WriteString("## Checklist\n\n")
		for _, item := range g.Checklist {
			b.WriteString("- [ ] " + item + "\n")
		}
		b.WriteString("\n")
	}
	if g.ProTip != "" {
		b.WriteString("> **Pro tip:** " + g.ProTip + "\n\n")
	}
	if len(g.Sources) > 0 {
		b.WriteString("## Sources\n\n")
		for _, src := range g.Sources {
			b.WriteString("- " + src + "\n")
		}
	}
	return strings.TrimSpace(b.String()) + "\n"
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s\ncommands: more <area> | category <name> | topic <text> | theme [dark|light] | phrase", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
