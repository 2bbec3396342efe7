package router

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidTransition = errors.New("router: invalid transition")

type State string

const (
	StateOnboarding  State = "onboarding"
	StateDashboard   State = "dashboard"
	StateEditProfile State = "edit-profile"
	StateTopicDetail State = "topic-detail"
)

type Event string

const (
	EventComplete    Event = "complete"
	EventEdit        Event = "edit"
	EventSave        Event = "save"
	EventCancel      Event = "cancel"
	EventSelectTopic Event = "select-topic"
	EventBack        Event = "back"
)

type transitionKey struct {
	from  State
	event Event
}

var transitions = map[transitionKey]State{
	{StateOnboarding, EventComplete}:   StateDashboard,
	{StateDashboard, EventEdit}:        StateEditProfile,
	{StateEditProfile, EventSave}:      StateDashboard,
	{StateEditProfile, EventCancel}:    StateDashboard,
	{StateDashboard, EventSelectTopic}: StateTopicDetail,
	{StateTopicDetail, EventBack}:      StateDashboard,
}

// Router tracks which screen is active. Screens other than onboarding need
// a loaded profile; Current falls back to onboarding when a guard fails.
type Router struct {
	state         State
	topic         string
	profileLoaded bool
}

func New(profileLoaded bool) *Router {
	r := &Router{state: StateOnboarding, profileLoaded: profileLoaded}
	if profileLoaded {
		r.state = StateDashboard
	}
	return r
}

func (r *Router) SetProfileLoaded(loaded bool) {
	r.profileLoaded = loaded
}

func (r *Router) ProfileLoaded() bool {
	return r.profileLoaded
}

func (r *Router) Topic() string {
	return r.topic
}

// Current returns the screen to render after applying guards.
func (r *Router) Current() State {
	switch r.state {
	case StateDashboard, StateEditProfile:
		if !r.profileLoaded {
			return StateOnboarding
		}
	case StateTopicDetail:
		if !r.profileLoaded || strings.TrimSpace(r.topic) == "" {
			return StateOnboarding
		}
	}
	return r.state
}

// Fire applies event from the current guarded state. arg carries the topic
// for EventSelectTopic and is ignored otherwise.
func (r *Router) Fire(event Event, arg string) (State, error) {
	from := r.Current()
	to, ok := transitions[transitionKey{from: from, event: event}]
	if !ok {
		return from, fmt.Errorf("%w: %s --(%s)-->", ErrInvalidTransition, from, event)
	}
	switch event {
	case EventSelectTopic:
		if strings.TrimSpace(arg) == "" {
			return from, fmt.Errorf("%w: empty topic", ErrInvalidTransition)
		}
		r.topic = arg
	case EventBack:
		r.topic = ""
	case EventComplete:
		r.profileLoaded = true
	}
	r.state = to
	return to, nil
}
