package update

import (
	"context"
	"errors"
	"math/rand/v2"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/studyviking/internal/guide"
	"github.com/sandeepkv93/studyviking/internal/model"
	"github.com/sandeepkv93/studyviking/internal/onboarding"
	"github.com/sandeepkv93/studyviking/internal/router"
	"github.com/sandeepkv93/studyviking/internal/storage"
	"github.com/sandeepkv93/studyviking/internal/tasks"
)

var fixedNow = time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)

type fakeCompleter struct {
	mu    sync.Mutex
	guide string
	tasks string
	chat  string
	err   error
}

func (f *fakeCompleter) Complete(_ context.Context, req guide.CompletionRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	last := req.Messages[len(req.Messages)-1].Content
	switch {
	case !req.JSON:
		return f.chat, nil
	case strings.Contains(last, `"tasks"`):
		return f.tasks, nil
	default:
		return f.guide, nil
	}
}

type fakeWeather struct {
	temp float64
}

func (f fakeWeather) CurrentTemperature(context.Context, float64, float64) (float64, error) {
	return f.temp, nil
}

type harness struct {
	store  *storage.ProfileStore
	copied []string
}

func bankingProfile() model.UserProfile {
	return model.UserProfile{
		Username:          "Anna",
		OriginCountry:     "Germany",
		City:              "Stockholm",
		StayDuration:      model.StayOneYear,
		PreferredLanguage: model.LanguageEnglish,
		FocusCategories:   []string{model.CategoryBanking},
		ActiveTasks: []model.TaskItem{
			{ID: "b1", Category: model.CategoryBanking, Text: "Open a Swedish Bank Account"},
			{ID: "b2", Category: model.CategoryBanking, Text: "Get a BankID (Digital ID)"},
		},
		IsOnboarded: true,
	}
}

func newTestModel(t *testing.T, p *model.UserProfile, comp guide.Completer) (Model, *harness) {
	t.Helper()
	h := &harness{store: storage.NewProfileStore(storage.NewMemoryRepository(), nil)}
	h.store.SetDarkHint(func() bool { return true })
	if p != nil {
		if err := h.store.Save(context.Background(), *p); err != nil {
			t.Fatalf("seed profile: %v", err)
		}
	}
	deps := Deps{
		Store: h.store,
		IDs:   &tasks.SequenceProvider{},
		Rand:  rand.New(rand.NewPCG(1, 2)),
		Now:   func() time.Time { return fixedNow },
		Clipboard: func(s string) error {
			h.copied = append(h.copied, s)
			return nil
		},
	}
	if comp != nil {
		deps.Guide = guide.NewClient(comp, guide.DefaultOptions(), nil)
	}
	return NewModel(deps), h
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyOf(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func send(m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		updated, c := m.Update(msg)
		m, cmd = updated.(Model), c
	}
	return m, cmd
}

// collect runs cmd and flattens batches. Spinner ticks are dropped.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch typed := msg.(type) {
	case nil, spinner.TickMsg:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range typed {
			out = append(out, collect(c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

// run delivers everything cmd produces, following up on returned commands.
func run(m Model, cmd tea.Cmd) Model {
	for _, msg := range collect(cmd) {
		updated, next := m.Update(msg)
		m = run(updated.(Model), next)
	}
	return m
}

func TestNewModelWithoutProfileStartsOnboarding(t *testing.T) {
	m, _ := newTestModel(t, nil, nil)
	if m.Router.Current() != router.StateOnboarding {
		t.Fatalf("expected onboarding, got %q", m.Router.Current())
	}
	if m.Keys.Quit != "q" || m.Keys.Palette != "/" {
		t.Fatalf("unexpected key map: %+v", m.Keys)
	}
	if m.Theme != model.ThemeDark {
		t.Fatalf("expected dark theme from hint, got %q", m.Theme)
	}
	if !strings.Contains(m.View(), "Welcome") {
		t.Fatalf("expected welcome step in view")
	}
}

func TestNewModelWithProfileOpensDashboard(t *testing.T) {
	p := bankingProfile()
	m, _ := newTestModel(t, &p, nil)
	if m.Router.Current() != router.StateDashboard {
		t.Fatalf("expected dashboard, got %q", m.Router.Current())
	}
	if len(m.Chat.Messages) != 1 || m.Chat.Messages[0].Text != WelcomeMessage {
		t.Fatalf("expected welcome message only, got %+v", m.Chat.Messages)
	}
	view := m.View()
	if !strings.Contains(view, "Open a Swedish Bank Account") {
		t.Fatalf("expected task in dashboard view, got:\n%s", view)
	}
}

func TestOnboardingFlowSeedsChecklist(t *testing.T) {
	m, h := newTestModel(t, nil, nil)
	m, _ = send(m,
		keyOf(tea.KeyEnter),
		keyRunes("Anna"), keyOf(tea.KeyEnter),
		keyRunes("Germany"), keyOf(tea.KeyEnter),
		keyRunes("y"), keyOf(tea.KeyEnter),
		keyRunes("2026-08-20"), keyOf(tea.KeyEnter),
		keyRunes("l"), keyOf(tea.KeyEnter),
		keyRunes("24"), keyOf(tea.KeyEnter),
		keyOf(tea.KeyEnter),
		keyOf(tea.KeyTab),
	)
	if m.Wizard.Step() != onboarding.LastStep {
		t.Fatalf("expected categories step, got %v (status %q)", m.Wizard.Step(), m.Status.Text)
	}
	m, cmd := send(m, keyOf(tea.KeyEnter))
	if !m.Onboarding.Seeding || cmd == nil {
		t.Fatalf("expected seeding to start")
	}
	m = run(m, cmd)

	if m.Router.Current() != router.StateDashboard {
		t.Fatalf("expected dashboard after onboarding, got %q", m.Router.Current())
	}
	if !strings.Contains(m.Status.Text, "Välkommen, Anna") {
		t.Fatalf("unexpected status: %q", m.Status.Text)
	}
	saved, ok := h.store.Load(context.Background())
	if !ok || !saved.IsOnboarded {
		t.Fatalf("expected onboarded profile in store, got %+v", saved)
	}
	if saved.Age != 24 || !saved.InSweden || saved.StayDuration != model.StayUnderThreeMonths {
		t.Fatalf("unexpected answers saved: %+v", saved)
	}
	if len(saved.ActiveTasks) != 3 || saved.ActiveTasks[0].Category != model.CategoryLegal {
		t.Fatalf("expected three legal tasks, got %+v", saved.ActiveTasks)
	}
	if saved.ActiveTasks[0].ID != "task-1" {
		t.Fatalf("expected injected ids, got %q", saved.ActiveTasks[0].ID)
	}
}

func TestOnboardingBlocksEmptyUsername(t *testing.T) {
	m, _ := newTestModel(t, nil, nil)
	m, _ = send(m, keyOf(tea.KeyEnter), keyOf(tea.KeyEnter))
	if !m.Status.IsError {
		t.Fatalf("expected validation status, got %+v", m.Status)
	}
}

func TestCompleteTaskReplacesWithinCategory(t *testing.T) {
	p := bankingProfile()
	comp := &fakeCompleter{tasks: `{"tasks":["Compare student bank accounts"]}`}
	m, h := newTestModel(t, &p, comp)

	m, _ = send(m, keyRunes("x"))
	if task, ok := m.Tasks.Pending(); !ok || task.ID != "b1" {
		t.Fatalf("expected b1 pending, got %+v %v", task, ok)
	}
	if !strings.Contains(m.View(), "Mark as done?") {
		t.Fatalf("expected confirmation modal")
	}

	m, cmd := send(m, keyRunes("y"))
	if got := len(m.Tasks.Tasks()); got != 1 {
		t.Fatalf("expected completed task removed before replacement, got %d", got)
	}
	m = run(m, cmd)

	got := m.Tasks.TasksFor(model.CategoryBanking)
	if len(got) != 2 {
		t.Fatalf("expected replacement appended, got %+v", got)
	}
	if got[1].Text != "Compare student bank accounts" || got[1].ID != "task-1" {
		t.Fatalf("unexpected replacement: %+v", got[1])
	}
	if !strings.HasPrefix(m.Status.Text, "Next up:") {
		t.Fatalf("unexpected status: %q", m.Status.Text)
	}
	saved, _ := h.store.Load(context.Background())
	if len(saved.ActiveTasks) != 2 || saved.ActiveTasks[0].ID != "b2" {
		t.Fatalf("expected persisted list b2 + replacement, got %+v", saved.ActiveTasks)
	}
}

func TestCancelCompletionKeepsTask(t *testing.T) {
	p := bankingProfile()
	m, _ := newTestModel(t, &p, nil)
	m, _ = send(m, keyRunes("x"), keyRunes("n"))
	if _, ok := m.Tasks.Pending(); ok {
		t.Fatalf("expected nothing pending")
	}
	if len(m.Tasks.Tasks()) != 2 {
		t.Fatalf("expected tasks untouched")
	}
}

func TestGenerateMoreAddsBatch(t *testing.T) {
	p := bankingProfile()
	comp := &fakeCompleter{tasks: `{"tasks":["Learn about CSN","Set up e-invoices","Open a savings account"]}`}
	m, _ := newTestModel(t, &p, comp)

	m, cmd := send(m, keyRunes("g"))
	m = run(m, cmd)
	if got := len(m.Tasks.TasksFor(model.CategoryBanking)); got != 5 {
		t.Fatalf("expected 5 banking tasks, got %d", got)
	}
	if m.Status.Text != "added 3 task(s) to Banking & Finance" {
		t.Fatalf("unexpected status: %q", m.Status.Text)
	}
}

func TestGeneratedTasksForRemovedCategoryAreSilent(t *testing.T) {
	p := bankingProfile()
	m, _ := newTestModel(t, &p, nil)
	m.Status = StatusBar{Text: "before"}
	m, _ = send(m, TasksGeneratedMsg{Category: "Fika", Err: tasks.ErrUnknownCategory})
	if m.Status.Text != "before" {
		t.Fatalf("expected status untouched, got %q", m.Status.Text)
	}
}

func TestTopicGuideDiscardsStaleResult(t *testing.T) {
	p := bankingProfile()
	comp := &fakeCompleter{guide: `{"intro":"Open an account early","steps":[{"title":"Book","desc":"Book a bank meeting"}],"checklist":["Passport"],"proTip":"Ask for student terms","sources":["Finansinspektionen"]}`}
	m, h := newTestModel(t, &p, comp)

	m, first := send(m, keyRunes("j"), keyOf(tea.KeyEnter))
	if m.Router.Current() != router.StateTopicDetail || !m.Topic.Loading {
		t.Fatalf("expected loading topic, got %q loading=%v", m.Router.Current(), m.Topic.Loading)
	}
	if got := m.Router.Topic(); got != "Get a BankID (Digital ID)" {
		t.Fatalf("expected topic to be the selected task, got %q", got)
	}
	m, _ = send(m, keyRunes("b"))
	if m.Router.Current() != router.StateDashboard {
		t.Fatalf("expected dashboard after back, got %q", m.Router.Current())
	}
	m, second := send(m, keyRunes("k"), keyOf(tea.KeyEnter))
	if got := m.Router.Topic(); got != "Open a Swedish Bank Account" {
		t.Fatalf("expected topic to follow the cursor, got %q", got)
	}

	m = run(m, first)
	if !m.Topic.Loading {
		t.Fatalf("stale guide must not finish loading")
	}
	m = run(m, second)
	if m.Topic.Loading || m.Topic.Guide.Intro != "Open an account early" {
		t.Fatalf("unexpected topic state: %+v", m.Topic)
	}
	if !strings.Contains(m.Topic.Markdown, "Ask for student terms") {
		t.Fatalf("expected pro tip in markdown, got %q", m.Topic.Markdown)
	}

	m, _ = send(m, keyRunes("y"))
	if len(h.copied) != 1 || h.copied[0] != m.Topic.Markdown {
		t.Fatalf("expected guide copied, got %v", h.copied)
	}
}

func TestTopicGuideFallsBackOnInvalidJSON(t *testing.T) {
	p := bankingProfile()
	m, _ := newTestModel(t, &p, &fakeCompleter{guide: "not json"})

	m, cmd := send(m, keyOf(tea.KeyEnter))
	m = run(m, cmd)
	if m.Topic.Loading {
		t.Fatalf("expected guide loaded")
	}
	if !reflect.DeepEqual(m.Topic.Guide, guide.FallbackGuide()) {
		t.Fatalf("expected fallback guide, got %+v", m.Topic.Guide)
	}
	if !strings.Contains(m.Topic.Markdown, guide.FallbackGuide().Intro) {
		t.Fatalf("expected fallback intro in markdown, got %q", m.Topic.Markdown)
	}
}

func TestEnterWithoutTasksStaysOnDashboard(t *testing.T) {
	p := bankingProfile()
	p.ActiveTasks = nil
	m, _ := newTestModel(t, &p, &fakeCompleter{})

	m, cmd := send(m, keyOf(tea.KeyEnter))
	if cmd != nil || m.Router.Current() != router.StateDashboard {
		t.Fatalf("expected no transition, got %q", m.Router.Current())
	}
}

func TestChatSendsTurnAndIgnoresOldSession(t *testing.T) {
	p := bankingProfile()
	comp := &fakeCompleter{chat: "Hej hej! Ask me anything."}
	m, _ := newTestModel(t, &p, comp)

	m, _ = send(m, keyRunes("c"))
	if !m.Chat.Open {
		t.Fatalf("expected chat open")
	}
	m, cmd := send(m, keyRunes("Hej"), keyOf(tea.KeyEnter))
	if !m.Chat.Typing || len(m.Chat.Messages) != 2 {
		t.Fatalf("expected user turn pending, got %+v", m.Chat)
	}
	m = run(m, cmd)
	if m.Chat.Typing || len(m.Chat.Messages) != 3 {
		t.Fatalf("expected reply appended, got %+v", m.Chat.Messages)
	}
	last := m.Chat.Messages[2]
	if last.Role != model.ChatRoleModel || last.Text != "Hej hej! Ask me anything." {
		t.Fatalf("unexpected reply: %+v", last)
	}

	m, _ = send(m, ChatReplyMsg{Session: &guide.Session{}, Reply: "late"})
	if len(m.Chat.Messages) != 3 {
		t.Fatalf("reply from another session must be dropped")
	}
	if s := m.suggestions(); s != nil {
		t.Fatalf("expected suggestions hidden after conversation started, got %v", s)
	}
}

func TestChatWithoutAssistantApologizes(t *testing.T) {
	p := bankingProfile()
	m, _ := newTestModel(t, &p, nil)
	m, cmd := send(m, keyRunes("c"), keyRunes("Hi"), keyOf(tea.KeyEnter))
	m = run(m, cmd)
	last := m.Chat.Messages[len(m.Chat.Messages)-1]
	if last.Text != guide.ApologyReply {
		t.Fatalf("expected apology, got %q", last.Text)
	}
	if !m.Status.IsError {
		t.Fatalf("expected error status")
	}
}

func TestPaletteThemeAndUnknownCategory(t *testing.T) {
	p := bankingProfile()
	m, h := newTestModel(t, &p, nil)

	m, _ = send(m, keyRunes("/"), keyRunes("theme light"), keyOf(tea.KeyEnter))
	if m.Palette.Active {
		t.Fatalf("expected palette closed")
	}
	if m.Theme != model.ThemeLight {
		t.Fatalf("expected light theme, got %q", m.Theme)
	}
	if got := h.store.LoadThemePreference(context.Background()); got != model.ThemeLight {
		t.Fatalf("expected theme persisted, got %q", got)
	}

	m, _ = send(m, keyRunes("/"), keyRunes("more knitting"), keyOf(tea.KeyEnter))
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "not one of your focus areas") {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
}

func TestPaletteMoreUsesStoredSpelling(t *testing.T) {
	p := bankingProfile()
	comp := &fakeCompleter{tasks: `{"tasks":["Learn about CSN"]}`}
	m, _ := newTestModel(t, &p, comp)

	m, cmd := send(m, keyRunes("/"), keyRunes("more banking & finance"), keyOf(tea.KeyEnter))
	if m.Status.IsError {
		t.Fatalf("unexpected error: %q", m.Status.Text)
	}
	m = run(m, cmd)
	got := m.Tasks.TasksFor(model.CategoryBanking)
	if len(got) != 3 || got[2].Category != model.CategoryBanking {
		t.Fatalf("unexpected tasks: %+v", got)
	}
}

func TestEditProfileSwapsCategories(t *testing.T) {
	p := bankingProfile()
	m, h := newTestModel(t, &p, nil)

	m, _ = send(m, keyRunes("e"))
	if m.Router.Current() != router.StateEditProfile {
		t.Fatalf("expected edit state, got %q", m.Router.Current())
	}
	for i := 0; i < 8; i++ {
		m, _ = send(m, keyOf(tea.KeyTab))
	}
	// Legal is first, Banking third.
	m, _ = send(m, keyOf(tea.KeySpace), keyRunes("l"), keyRunes("l"), keyOf(tea.KeySpace))
	m, cmd := send(m, keyOf(tea.KeyCtrlS))
	if !m.EditStatus.Saving {
		t.Fatalf("expected save in flight")
	}
	m = run(m, cmd)

	if m.Router.Current() != router.StateDashboard {
		t.Fatalf("expected dashboard after save, got %q", m.Router.Current())
	}
	saved, _ := h.store.Load(context.Background())
	if len(saved.FocusCategories) != 1 || saved.FocusCategories[0] != model.CategoryLegal {
		t.Fatalf("unexpected categories: %v", saved.FocusCategories)
	}
	if len(saved.ActiveTasks) != 3 || len(model.TasksInCategory(saved.ActiveTasks, model.CategoryBanking)) != 0 {
		t.Fatalf("expected banking tasks dropped and legal seeded, got %+v", saved.ActiveTasks)
	}
}

func TestEditEscDiscardsChanges(t *testing.T) {
	p := bankingProfile()
	m, _ := newTestModel(t, &p, nil)
	m, _ = send(m, keyRunes("e"), keyRunes("x"), keyOf(tea.KeyEsc))
	if m.Router.Current() != router.StateDashboard || m.Edit != nil {
		t.Fatalf("expected edit discarded, got %q", m.Router.Current())
	}
	if m.profile().Username != "Anna" {
		t.Fatalf("expected username unchanged, got %q", m.profile().Username)
	}
}

func TestWeatherForCurrentCityOnly(t *testing.T) {
	p := bankingProfile()
	m, _ := newTestModel(t, &p, nil)
	m, _ = send(m, WeatherMsg{City: "Malmö", Temperature: 4})
	if m.Widgets.Temperature != nil {
		t.Fatalf("weather for another city must be ignored")
	}
	m, _ = send(m, WeatherMsg{City: "Stockholm", Temperature: -3})
	if m.Widgets.Temperature == nil || *m.Widgets.Temperature != -3 {
		t.Fatalf("expected temperature set, got %v", m.Widgets.Temperature)
	}
	if !strings.Contains(m.View(), "-3") {
		t.Fatalf("expected temperature in view")
	}
}

func TestInitFetchesWeatherForCity(t *testing.T) {
	p := bankingProfile()
	h := &harness{store: storage.NewProfileStore(storage.NewMemoryRepository(), nil)}
	h.store.SetDarkHint(func() bool { return false })
	if err := h.store.Save(context.Background(), p); err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	m := NewModel(Deps{Store: h.store, Weather: fakeWeather{temp: 7}, Now: func() time.Time { return fixedNow }})
	msgs := collect(m.Init())
	if len(msgs) != 1 {
		t.Fatalf("expected one weather message, got %v", msgs)
	}
	w, ok := msgs[0].(WeatherMsg)
	if !ok || w.City != "Stockholm" || w.Temperature != 7 {
		t.Fatalf("unexpected weather msg: %#v", msgs[0])
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	p := bankingProfile()
	m, _ := newTestModel(t, &p, nil)
	m, _ = send(m, SetStatusMsg{Text: "ready"})
	if m.Status.Text != "ready" || m.Status.IsError {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
	m, _ = send(m, AppErrorMsg{Err: errors.New("boom")})
	if m.LastError == nil || !m.Status.IsError || m.Status.Text != "boom" {
		t.Fatalf("unexpected error status: %+v", m.Status)
	}
	m, _ = send(m, ClearStatusMsg{})
	if m.Status.Text != "" {
		t.Fatalf("expected cleared status, got %+v", m.Status)
	}
	if len(m.Notifications) != 2 {
		t.Fatalf("expected two notifications, got %d", len(m.Notifications))
	}
}

func TestHelpToggleShowsStateBindings(t *testing.T) {
	p := bankingProfile()
	m, _ := newTestModel(t, &p, nil)
	m, _ = send(m, keyRunes("?"))
	if !m.HelpVisible {
		t.Fatalf("expected help visible")
	}
	if !strings.Contains(m.View(), "generate more tasks") {
		t.Fatalf("expected dashboard bindings in help")
	}
}

func TestQuitKey(t *testing.T) {
	p := bankingProfile()
	m, _ := newTestModel(t, &p, nil)
	m, cmd := send(m, keyRunes("q"))
	if !m.Quitting || cmd == nil {
		t.Fatalf("expected quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected QuitMsg")
	}
}

func TestClampAndWrap(t *testing.T) {
	if clamp(5, 3) != 2 || clamp(-1, 3) != 0 || clamp(1, 0) != 0 {
		t.Fatalf("clamp out of range")
	}
	if wrapIndex(-1, 4) != 3 || wrapIndex(4, 4) != 0 {
		t.Fatalf("wrapIndex out of range")
	}
}
