package update

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sandeepkv93/studyviking/internal/model"
	"github.com/sandeepkv93/studyviking/internal/views"
)

func (m *Model) initBubbleComponents() {
	m.categoryList = list.New([]list.Item{}, list.NewDefaultDelegate(), 54, 10)
	m.categoryList.Title = "Focus areas"
	m.categoryList.SetShowHelp(false)
	m.categoryList.SetShowStatusBar(false)
	m.categoryList.SetFilteringEnabled(false)

	cols := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Task", Width: 48},
	}
	m.taskTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(6))

	m.textInput = textinput.New()
	m.textInput.CharLimit = 128
	m.textInput.Width = 42
	m.textInput.Focus()

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.chatInput = textarea.New()
	m.chatInput.SetWidth(54)
	m.chatInput.SetHeight(3)
	m.chatInput.ShowLineNumbers = false
	m.chatInput.Placeholder = "Ask about life in Sweden..."

	m.stepProgress = progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))

	m.busySpinner = spinner.New()
	m.busySpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
	m.guideViewport = viewport.New(54, 16)
}

// syncBubbleData pushes controller state into the list and table. It runs
// on the copy being rendered.
func (m *Model) syncBubbleData() {
	if m.Tasks == nil {
		return
	}
	p := m.Tasks.Profile()

	items := make([]list.Item, 0, len(p.FocusCategories))
	for _, cat := range p.FocusCategories {
		desc := fmt.Sprintf("%d open", len(model.TasksInCategory(p.ActiveTasks, cat)))
		if m.Tasks.Loading(cat) || m.Tasks.Replacing(cat) {
			desc += " | working..."
		}
		items = append(items, listItem{title: cat, description: desc})
	}
	m.categoryList.SetItems(items)
	if len(items) > 0 {
		m.categoryList.Select(m.Dashboard.CategoryCursor)
	}

	cat, ok := m.currentCategory()
	rows := make([]table.Row, 0)
	if ok {
		for i, t := range model.TasksInCategory(p.ActiveTasks, cat) {
			rows = append(rows, table.Row{strconv.Itoa(i + 1), t.Text})
		}
	}
	m.taskTable.SetRows(rows)
	if len(rows) > 0 && m.Dashboard.TaskCursor < len(rows) {
		m.taskTable.SetCursor(m.Dashboard.TaskCursor)
	}

	m.commandInput.SetValue(m.Palette.Input)
	if m.Palette.Active {
		m.commandInput.Focus()
	}
}

// setGuideContent renders markdown into the topic viewport.
func (m *Model) setGuideContent(md string) {
	m.Topic.Markdown = md
	m.guideViewport.SetContent(views.RenderMarkdown(md, views.GlamourStyle(string(m.Theme))))
	m.guideViewport.GotoTop()
}

func (m Model) currentCategory() (string, bool) {
	cats := m.profile().FocusCategories
	if len(cats) == 0 {
		return "", false
	}
	i := m.Dashboard.CategoryCursor
	if i < 0 || i >= len(cats) {
		i = 0
	}
	return cats[i], true
}

func (m Model) currentTask() (model.TaskItem, bool) {
	cat, ok := m.currentCategory()
	if !ok {
		return model.TaskItem{}, false
	}
	items := m.Tasks.TasksFor(cat)
	if len(items) == 0 {
		return model.TaskItem{}, false
	}
	i := m.Dashboard.TaskCursor
	if i < 0 || i >= len(items) {
		i = len(items) - 1
	}
	return items[i], true
}

// clampDashboard keeps both cursors inside the current lists.
func (m *Model) clampDashboard() {
	if m.Tasks == nil {
		m.Dashboard = DashboardState{}
		return
	}
	cats := m.Tasks.Profile().FocusCategories
	m.Dashboard.CategoryCursor = clamp(m.Dashboard.CategoryCursor, len(cats))
	n := 0
	if cat, ok := m.currentCategory(); ok {
		n = len(m.Tasks.TasksFor(cat))
	}
	m.Dashboard.TaskCursor = clamp(m.Dashboard.TaskCursor, n)
}
