package update

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/hashicorp/go-hclog"
	"github.com/sandeepkv93/studyviking/internal/guide"
	"github.com/sandeepkv93/studyviking/internal/model"
	"github.com/sandeepkv93/studyviking/internal/onboarding"
	"github.com/sandeepkv93/studyviking/internal/router"
	"github.com/sandeepkv93/studyviking/internal/storage"
	"github.com/sandeepkv93/studyviking/internal/tasks"
	"github.com/sandeepkv93/studyviking/internal/widgets"
)

const (
	WelcomeMessage = "Hello! I am your guide. Ask me anything about moving to or living in Sweden! 🇸🇪"
	suggestionsMax = 3
)

var SuggestedQuestions = []string{
	"How do I get a personnummer?",
	"Where can I buy cheap groceries?",
	"How does public transport work?",
	"Is tap water safe to drink?",
}

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Palette string
	Help    string
	Quit    string
}

// WeatherSource reports the current temperature at a coordinate.
type WeatherSource interface {
	CurrentTemperature(ctx context.Context, lat, lng float64) (float64, error)
}

// Deps wires the program to storage and the outside world. Zero values get
// working defaults except Guide and Weather, which are optional.
type Deps struct {
	Store     *storage.ProfileStore
	Guide     *guide.Client
	Weather   WeatherSource
	IDs       tasks.IDProvider
	Logger    hclog.Logger
	Rand      *rand.Rand
	Now       func() time.Time
	Clipboard func(string) error
	Batch     int
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = hclog.NewNullLogger()
	}
	if d.Store == nil {
		d.Store = storage.NewProfileStore(storage.NewMemoryRepository(), d.Logger)
	}
	if d.IDs == nil {
		d.IDs = tasks.UUIDProvider{}
	}
	if d.Rand == nil {
		d.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Clipboard == nil {
		d.Clipboard = clipboard.WriteAll
	}
	if d.Batch <= 0 {
		d.Batch = tasks.DefaultBatch
	}
	return d
}

// generator avoids handing the controller a typed nil.
func (d Deps) generator() tasks.Generator {
	if d.Guide == nil {
		return nil
	}
	return d.Guide
}

type DashboardState struct {
	CategoryCursor int
	TaskCursor     int
}

type TopicState struct {
	Name     string
	Loading  bool
	Guide    model.GuideData
	Markdown string
	seq      int
}

type ChatState struct {
	Open     bool
	Messages []model.ChatMessage
	Typing   bool
	next     int
}

type WidgetState struct {
	PhraseIndex int
	Temperature *float64
	TempCity    string
}

type OnboardingState struct {
	Cursor  int
	Seeding bool
}

type EditState struct {
	Saving bool
	Err    string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type Model struct {
	Router        *router.Router
	Wizard        *onboarding.Wizard
	Edit          *onboarding.EditForm
	Tasks         *tasks.Controller
	Session       *guide.Session
	Theme         model.Theme
	Dashboard     DashboardState
	Topic         TopicState
	Chat          ChatState
	Widgets       WidgetState
	Onboarding    OnboardingState
	EditStatus    EditState
	Palette       CommandPaletteState
	HelpVisible   bool
	Notifications []Notification
	Status        StatusBar
	Keys          GlobalKeyMap
	Quitting      bool
	LastError     error

	deps Deps
	// Bubble components used for rich TUI controls
	categoryList  list.Model
	taskTable     table.Model
	textInput     textinput.Model
	commandInput  textinput.Model
	chatInput     textarea.Model
	guideViewport viewport.Model
	stepProgress  progress.Model
	busySpinner   spinner.Model
	helpModel     help.Model
	spinnerActive bool
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type OnboardingSeededMsg struct {
	Profile model.UserProfile
	SaveErr error
}

type ProfileEditedMsg struct {
	Profile model.UserProfile
	SaveErr error
}

type TaskReplacedMsg struct {
	Result tasks.CompletionResult
}

type TasksGeneratedMsg struct {
	Category string
	Added    []model.TaskItem
	Err      error
}

type CategoryAddedMsg struct {
	Name   string
	Seeded []model.TaskItem
	Err    error
}

type GuideLoadedMsg struct {
	Topic string
	Seq   int
	Raw   string
}

type ChatReplyMsg struct {
	Session *guide.Session
	Reply   string
	Err     error
}

type WeatherMsg struct {
	City        string
	Temperature float64
	Err         error
}

// NewModel loads the stored profile and theme and lands on the dashboard
// when a profile exists, otherwise on onboarding.
func NewModel(deps Deps) Model {
	deps = deps.withDefaults()
	ctx := context.Background()
	profile, ok := deps.Store.Load(ctx)

	m := Model{
		Router:  router.New(ok),
		Wizard:  onboarding.NewWizard(deps.Rand),
		Theme:   deps.Store.LoadThemePreference(ctx),
		Widgets: WidgetState{PhraseIndex: widgets.DailyPhraseIndex(deps.Now())},
		Keys: GlobalKeyMap{
			Palette: "/",
			Help:    "?",
			Quit:    "q",
		},
		deps: deps,
	}
	if ok {
		m.startProfile(profile)
	}
	m.initBubbleComponents()
	m.syncInputForStep()
	return m
}

// startProfile installs p as the active profile: a fresh controller, a new
// chat session and a reset transcript.
func (m *Model) startProfile(p model.UserProfile) {
	if m.Tasks == nil {
		m.Tasks = tasks.NewController(p, m.deps.generator(), m.deps.Store, m.deps.IDs, m.deps.Logger)
	} else {
		m.Tasks.Reset(p)
	}
	if m.deps.Guide != nil {
		m.Session = m.deps.Guide.StartSession(p)
	} else {
		m.Session = nil
	}
	m.Chat = ChatState{Messages: []model.ChatMessage{{
		ID:        "welcome",
		Role:      model.ChatRoleModel,
		Text:      WelcomeMessage,
		Timestamp: m.deps.Now(),
	}}}
	m.Router.SetProfileLoaded(true)
	m.clampDashboard()
}

func (m Model) profile() model.UserProfile {
	if m.Tasks == nil {
		return model.UserProfile{}
	}
	return m.Tasks.Profile()
}
