package update

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/studyviking/internal/guide"
	"github.com/sandeepkv93/studyviking/internal/model"
	"github.com/sandeepkv93/studyviking/internal/router"
	"github.com/sandeepkv93/studyviking/internal/tasks"
	"github.com/sandeepkv93/studyviking/internal/views"
)

func (m Model) Init() tea.Cmd {
	return m.weatherCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		switch m.Router.Current() {
		case router.StateOnboarding:
			return m.handleOnboardingKey(typed)
		case router.StateEditProfile:
			return m.handleEditKey(typed)
		}
		if m.Chat.Open {
			return m.handleChatKey(typed)
		}
		if _, pending := m.Tasks.Pending(); pending {
			return m.handleConfirmKey(typed)
		}

		switch typed.String() {
		case m.Keys.Palette:
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active"}
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown"}
			} else {
				m.Status = StatusBar{Text: "help hidden"}
			}
			return m, nil
		case m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		case "c":
			m.Chat.Open = true
			m.chatInput.Focus()
			return m, nil
		}
		if m.Router.Current() == router.StateTopicDetail {
			return m.handleTopicKey(typed)
		}
		return m.handleDashboardKey(typed)
	case spinner.TickMsg:
		if !m.busy() {
			m.spinnerActive = false
			return m, nil
		}
		var cmd tea.Cmd
		m.busySpinner, cmd = m.busySpinner.Update(typed)
		return m, cmd
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case OnboardingSeededMsg:
		m.Onboarding.Seeding = false
		m.startProfile(typed.Profile)
		if _, err := m.Router.Fire(router.EventComplete, ""); err != nil {
			m.deps.Logger.Warn("onboarding transition rejected", "error", err)
		}
		m.Dashboard = DashboardState{}
		m.setSaveStatus(fmt.Sprintf("Välkommen, %s! Your checklist is ready.", typed.Profile.Username), typed.SaveErr)
		return m, m.weatherCmd()
	case ProfileEditedMsg:
		m.EditStatus = EditState{}
		m.Edit = nil
		oldCity := m.profile().City
		m.startProfile(typed.Profile)
		if _, err := m.Router.Fire(router.EventSave, ""); err != nil {
			m.deps.Logger.Warn("edit transition rejected", "error", err)
		}
		m.setSaveStatus("profile updated", typed.SaveErr)
		if typed.Profile.City != oldCity {
			m.Widgets.Temperature = nil
			return m, m.weatherCmd()
		}
		return m, nil
	case TaskReplacedMsg:
		res := typed.Result
		m.clampDashboard()
		switch {
		case res.SaveErr != nil:
			m.setSaveStatus("", res.SaveErr)
		case res.Replacement != nil:
			m.Status = StatusBar{Text: "Next up: " + res.Replacement.Text}
		default:
			m.Status = StatusBar{Text: fmt.Sprintf("No new task for %s right now", res.Completed.Category)}
		}
		return m, nil
	case TasksGeneratedMsg:
		m.clampDashboard()
		switch {
		case errors.Is(typed.Err, tasks.ErrCategoryBusy):
			m.Status = StatusBar{Text: fmt.Sprintf("still generating for %s", typed.Category), IsError: true}
		case errors.Is(typed.Err, tasks.ErrUnknownCategory):
			m.deps.Logger.Debug("discarding generated tasks", "category", typed.Category)
		case typed.Err != nil:
			m.setSaveStatus("", typed.Err)
		case len(typed.Added) == 0:
			m.Status = StatusBar{Text: fmt.Sprintf("no new tasks for %s", typed.Category)}
		default:
			m.Status = StatusBar{Text: fmt.Sprintf("added %d task(s) to %s", len(typed.Added), typed.Category)}
			m.notify("Tasks", m.Status.Text, "info")
		}
		return m, nil
	case CategoryAddedMsg:
		m.clampDashboard()
		switch {
		case errors.Is(typed.Err, model.ErrDuplicateCategory), errors.Is(typed.Err, model.ErrEmptyCategory), errors.Is(typed.Err, tasks.ErrCategoryBusy):
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		default:
			m.setSaveStatus(fmt.Sprintf("added focus area %s with %d task(s)", typed.Name, len(typed.Seeded)), typed.Err)
		}
		return m, nil
	case GuideLoadedMsg:
		if m.Router.Current() != router.StateTopicDetail || m.Router.Topic() != typed.Topic || m.Topic.seq != typed.Seq {
			m.deps.Logger.Debug("discarding stale guide", "topic", typed.Topic)
			return m, nil
		}
		m.Topic.Loading = false
		m.Topic.Guide = guide.ParseGuide(typed.Raw)
		m.setGuideContent(views.GuideMarkdown(typed.Topic, m.Topic.Guide))
		return m, nil
	case ChatReplyMsg:
		if typed.Session != m.Session {
			m.deps.Logger.Debug("discarding reply from a previous session")
			return m, nil
		}
		m.Chat.Typing = false
		reply := typed.Reply
		if typed.Err != nil {
			m.Status = StatusBar{Text: "chat is not available: " + typed.Err.Error(), IsError: true}
			reply = guide.ApologyReply
		}
		m.appendChat(model.ChatRoleModel, reply)
		return m, nil
	case WeatherMsg:
		if typed.City != m.profile().City {
			return m, nil
		}
		if typed.Err != nil {
			m.deps.Logger.Warn("weather lookup failed", "city", typed.City, "error", typed.Err)
			return m, nil
		}
		temp := typed.Temperature
		m.Widgets.Temperature = &temp
		m.Widgets.TempCity = typed.City
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	m.syncBubbleData()

	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	state := m.Router.Current()
	data := views.AppData{
		Theme:        string(m.Theme),
		Header:       fmt.Sprintf("StudyViking | view: %s | theme: %s", state, m.Theme),
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: m.renderNotificationsView(),
		Footer:       m.footer(state),
	}
	switch state {
	case router.StateOnboarding:
		data.LeftPane = m.renderOnboardingView()
	case router.StateEditProfile:
		data.LeftPane = m.renderEditView()
		data.RightPane = m.renderHelpIfVisible()
	case router.StateTopicDetail:
		data.LeftPane = m.renderTopicView()
		data.RightPane = m.renderSidePane()
	default:
		data.LeftPane = m.renderDashboardView()
		data.RightPane = m.renderSidePane()
		data.Modal = m.renderConfirmModal()
	}
	return views.RenderApp(data)
}

// renderSidePane is the chat when open, otherwise the widgets; palette and
// help stack underneath.
func (m Model) renderSidePane() string {
	parts := make([]string, 0, 3)
	if m.Chat.Open {
		parts = append(parts, m.renderChatView())
	} else {
		parts = append(parts, m.renderWidgetsView())
	}
	if p := m.renderCommandPalette(); p != "" {
		parts = append(parts, p)
	}
	if h := m.renderHelpIfVisible(); h != "" {
		parts = append(parts, h)
	}
	return strings.Join(parts, "\n\n")
}

func (m Model) footer(state router.State) string {
	switch state {
	case router.StateOnboarding:
		return "keys: enter next | esc back | ctrl+c quit"
	case router.StateEditProfile:
		return "keys: tab field | ctrl+s save | esc cancel"
	default:
		return fmt.Sprintf("keys: c chat | t theme | %s cmd | %s help | %s quit", m.Keys.Palette, m.Keys.Help, m.Keys.Quit)
	}
}

// busy reports whether any background work is still in flight.
func (m Model) busy() bool {
	if m.Topic.Loading || m.Chat.Typing || m.Onboarding.Seeding || m.EditStatus.Saving {
		return true
	}
	if m.Tasks == nil {
		return false
	}
	for _, cat := range m.Tasks.Profile().FocusCategories {
		if m.Tasks.Loading(cat) || m.Tasks.Replacing(cat) {
			return true
		}
	}
	return false
}

// withSpinner starts the spinner alongside cmd if it is not running yet.
func (m *Model) withSpinner(cmd tea.Cmd) tea.Cmd {
	if m.spinnerActive {
		return cmd
	}
	m.spinnerActive = true
	return tea.Batch(cmd, m.busySpinner.Tick)
}

func (m *Model) setSaveStatus(ok string, err error) {
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: "could not save your progress: " + err.Error(), IsError: true}
		m.notify("Error", m.Status.Text, "error")
		return
	}
	m.Status = StatusBar{Text: ok}
	if ok != "" {
		m.notify("Saved", ok, "info")
	}
}
