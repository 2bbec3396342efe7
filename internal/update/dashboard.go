package update

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/studyviking/internal/model"
	"github.com/sandeepkv93/studyviking/internal/onboarding"
	"github.com/sandeepkv93/studyviking/internal/router"
	"github.com/sandeepkv93/studyviking/internal/tasks"
	"github.com/sandeepkv93/studyviking/internal/views"
	"github.com/sandeepkv93/studyviking/internal/widgets"
)

func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		m.Dashboard.CategoryCursor--
		m.Dashboard.TaskCursor = 0
		m.clampDashboard()
	case "right", "l":
		m.Dashboard.CategoryCursor++
		m.Dashboard.TaskCursor = 0
		m.clampDashboard()
	case "up", "k":
		m.Dashboard.TaskCursor--
		m.clampDashboard()
	case "down", "j":
		m.Dashboard.TaskCursor++
		m.clampDashboard()
	case "x", " ":
		task, ok := m.currentTask()
		if !ok {
			return m, nil
		}
		if _, ok := m.Tasks.InitiateCompletion(task.ID); ok {
			m.Status = StatusBar{Text: "confirm: " + task.Text}
		}
	case "g":
		cat, ok := m.currentCategory()
		if !ok {
			return m, nil
		}
		return m.generateMore(cat)
	case "enter":
		task, ok := m.currentTask()
		if !ok {
			return m, nil
		}
		return m.selectTopic(task.Text)
	case "e":
		m.Edit = onboarding.NewEditForm(m.profile())
		if _, err := m.Router.Fire(router.EventEdit, ""); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m, nil
		}
		m.EditStatus = EditState{}
		m.syncEditInput()
	case "t":
		m.setTheme(m.Theme.Toggle())
	case "p":
		m.Widgets.PhraseIndex = widgets.NextPhraseIndex(m.deps.Rand, m.Widgets.PhraseIndex)
	}
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		task, err := m.Tasks.Confirm(context.Background())
		if task.ID == "" {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m, nil
		}
		if err != nil {
			m.setSaveStatus("", err)
		} else {
			m.Status = StatusBar{Text: "Bra jobbat! Finding your next step..."}
		}
		m.clampDashboard()
		return m, m.withSpinner(replaceTaskCmd(m.Tasks, task))
	case "n", "esc":
		m.Tasks.CancelCompletion()
		m.Status = StatusBar{Text: "kept on your list"}
	}
	return m, nil
}

func (m Model) generateMore(category string) (tea.Model, tea.Cmd) {
	if m.Tasks.Loading(category) {
		m.Status = StatusBar{Text: fmt.Sprintf("still generating for %s", category), IsError: true}
		return m, nil
	}
	m.Status = StatusBar{Text: fmt.Sprintf("generating more for %s...", category)}
	return m, m.withSpinner(generateMoreCmd(m.Tasks, category, m.deps.Batch))
}

func (m Model) addCategory(name string) (tea.Model, tea.Cmd) {
	m.Status = StatusBar{Text: fmt.Sprintf("adding %s...", model.NormalizeCategory(name))}
	return m, m.withSpinner(addCategoryCmd(m.Tasks, name))
}

func (m *Model) setTheme(theme model.Theme) {
	m.Theme = theme
	if err := m.deps.Store.SaveThemePreference(context.Background(), theme); err != nil {
		m.deps.Logger.Warn("persist theme failed", "error", err)
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	if m.Topic.Markdown != "" {
		m.setGuideContent(m.Topic.Markdown)
	}
	m.Status = StatusBar{Text: fmt.Sprintf("theme: %s", theme)}
}

func replaceTaskCmd(c *tasks.Controller, completed model.TaskItem) tea.Cmd {
	return func() tea.Msg {
		return TaskReplacedMsg{Result: c.Replace(context.Background(), completed)}
	}
}

func generateMoreCmd(c *tasks.Controller, category string, count int) tea.Cmd {
	return func() tea.Msg {
		added, err := c.GenerateMore(context.Background(), category, count)
		return TasksGeneratedMsg{Category: category, Added: added, Err: err}
	}
}

func addCategoryCmd(c *tasks.Controller, name string) tea.Cmd {
	return func() tea.Msg {
		canonical, seeded, err := c.AddCategory(context.Background(), name)
		return CategoryAddedMsg{Name: canonical, Seeded: seeded, Err: err}
	}
}

func (m Model) renderDashboardView() string {
	p := m.profile()
	cur, _ := m.currentCategory()
	cats := make([]views.CategorySummaryData, 0, len(p.FocusCategories))
	for _, c := range p.FocusCategories {
		cats = append(cats, views.CategorySummaryData{
			Name:      c,
			Count:     len(model.TasksInCategory(p.ActiveTasks, c)),
			Selected:  c == cur,
			Loading:   m.Tasks.Loading(c),
			Replacing: m.Tasks.Replacing(c),
		})
	}
	return views.RenderDashboardPanel(views.DashboardPanelData{
		Username:      p.Username,
		Origin:        p.OriginCountry,
		Categories:    cats,
		CategoryView:  m.categoryList.View(),
		TaskTableView: m.taskTable.View(),
		SpinnerView:   m.busySpinner.View(),
	})
}

func (m Model) renderConfirmModal() string {
	task, ok := m.Tasks.Pending()
	if !ok {
		return ""
	}
	return views.RenderConfirmModal(views.ConfirmModalData{TaskText: task.Text, Category: task.Category})
}

func (m Model) renderWidgetsView() string {
	now := m.deps.Now()
	p := m.profile()
	season := widgets.SeasonFor(now)
	phrase := widgets.Phrases[clamp(m.Widgets.PhraseIndex, len(widgets.Phrases))]
	today, next := widgets.HolidaysAround(now)

	data := views.WidgetsPanelData{
		Location:      widgets.LocationLabel(p),
		Season:        string(season.Name),
		Icon:          season.Icon,
		Clothing:      season.Clothing,
		Tip:           season.Tip,
		Phrase:        phrase.Phrase,
		Phonetic:      phrase.Phonetic,
		Pronunciation: phrase.Pronunciation,
		Meaning:       phrase.Meaning,
		HolidayName:   next.Name,
		HolidayDate:   next.ShortDate(),
		HolidayDesc:   next.Description,
	}
	if m.Widgets.Temperature != nil && m.Widgets.TempCity == p.City {
		data.Temperature = m.Widgets.Temperature
	}
	if today != nil {
		data.HolidayToday = true
		data.HolidayName = today.Name
		data.HolidayDesc = today.Description
	}
	return views.RenderWidgetsPanel(data)
}

func (m Model) weatherCmd() tea.Cmd {
	if m.deps.Weather == nil || m.Tasks == nil {
		return nil
	}
	city, ok := model.FindCity(m.profile().City)
	if !ok {
		return nil
	}
	src := m.deps.Weather
	return func() tea.Msg {
		temp, err := src.CurrentTemperature(context.Background(), city.Lat, city.Lng)
		return WeatherMsg{City: city.Name, Temperature: temp, Err: err}
	}
}
