package guide

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/sandeepkv93/studyviking/internal/model"
)

type fakeCompleter struct {
	mu       sync.Mutex
	replies  []string
	err      error
	requests []CompletionRequest
}

func (f *fakeCompleter) Complete(_ context.Context, req CompletionRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return "", nil
	}
	r := f.replies[0]
	f.replies = f.replies[1:]
	return r, nil
}

func anna() model.UserProfile {
	return model.UserProfile{
		Username:          "Anna",
		OriginCountry:     "Germany",
		StayDuration:      model.StayOneYear,
		FocusCategories:   []string{model.CategoryBanking},
		PreferredLanguage: model.LanguageEnglish,
	}
}

func TestParseGuideValidAndFenced(t *testing.T) {
	raw := "```json\n{\"intro\":\"Hi\",\"steps\":[{\"title\":\"A\",\"desc\":\"B\"}],\"checklist\":[\"c\"],\"proTip\":\"p\",\"sources\":[\"s\"]}\n```"
	got := ParseGuide(raw)
	if got.Intro != "Hi" || len(got.Steps) != 1 || got.Steps[0].Title != "A" {
		t.Fatalf("unexpected guide %+v", got)
	}
	if !reflect.DeepEqual(got.Checklist, []string{"c"}) {
		t.Fatalf("unexpected checklist %q", got.Checklist)
	}
}

func TestParseGuideInvalidYieldsFallback(t *testing.T) {
	got := ParseGuide("I am not json")
	if !reflect.DeepEqual(got, FallbackGuide()) {
		t.Fatalf("expected fallback, got %+v", got)
	}
	if len(got.Steps) != 0 || got.ProTip != "Try asking the chat assistant instead." {
		t.Fatalf("unexpected fallback content %+v", got)
	}
}

func TestParseGuideFillsMissingArrays(t *testing.T) {
	got := ParseGuide(`{"intro":"x"}`)
	if got.Steps == nil || got.Checklist == nil || got.Sources == nil {
		t.Fatalf("expected empty arrays, got %#v", got)
	}
}

func TestGenerateGuideServiceErrorReturnsUnavailableJSON(t *testing.T) {
	c := NewClient(&fakeCompleter{err: errors.New("boom")}, DefaultOptions(), nil)
	got := ParseGuide(c.GenerateGuide(context.Background(), "Banking", anna()))
	if got.Intro != "Unable to load guide content." || got.ProTip != "Please try again later." {
		t.Fatalf("unexpected unavailable guide %+v", got)
	}
}

func TestGenerateGuidePromptMentionsTopicAndOrigin(t *testing.T) {
	fc := &fakeCompleter{replies: []string{`{"intro":"ok"}`}}
	c := NewClient(fc, DefaultOptions(), nil)
	if raw := c.GenerateGuide(context.Background(), "Housing", anna()); raw != `{"intro":"ok"}` {
		t.Fatalf("expected raw reply, got %q", raw)
	}
	if len(fc.requests) != 1 || !fc.requests[0].JSON {
		t.Fatalf("expected one json request, got %+v", fc.requests)
	}
	prompt := fc.requests[0].Messages[1].Content
	for _, want := range []string{`"Housing"`, "Germany", string(model.StayOneYear)} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestGenerateTasksCleansAndTruncates(t *testing.T) {
	fc := &fakeCompleter{replies: []string{`{"tasks":["  Learn Swish ", "", "Open a Swedish Bank Account", "Compare banks", "Budget monthly"]}`}}
	c := NewClient(fc, DefaultOptions(), nil)
	got, err := c.GenerateTasks(context.Background(), model.CategoryBanking, []string{"open a swedish bank account"}, anna(), 2)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"Learn Swish", "Compare banks"}) {
		t.Fatalf("unexpected tasks %q", got)
	}
	if !strings.Contains(fc.requests[0].Messages[1].Content, "open a swedish bank account") {
		t.Fatal("expected exclude list in prompt")
	}
}

func TestGenerateTasksFailuresYieldEmpty(t *testing.T) {
	for name, fc := range map[string]*fakeCompleter{
		"service error": {err: errors.New("down")},
		"not json":      {replies: []string{"nope"}},
	} {
		t.Run(name, func(t *testing.T) {
			got, err := NewClient(fc, DefaultOptions(), nil).GenerateTasks(context.Background(), "Fika", nil, anna(), 3)
			if err != nil || len(got) != 0 {
				t.Fatalf("expected empty result, got %q err=%v", got, err)
			}
		})
	}
}

func TestGenerateTasksArgumentErrors(t *testing.T) {
	c := NewClient(&fakeCompleter{}, DefaultOptions(), nil)
	if _, err := c.GenerateTasks(context.Background(), "   ", nil, anna(), 3); !errors.Is(err, ErrEmptyCategory) {
		t.Fatalf("expected ErrEmptyCategory, got %v", err)
	}
	if _, err := c.GenerateTasks(context.Background(), "Fika", nil, anna(), 0); !errors.Is(err, ErrInvalidCount) {
		t.Fatalf("expected ErrInvalidCount, got %v", err)
	}
}

func TestGenerateTasksCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := NewClient(&fakeCompleter{err: context.Canceled}, DefaultOptions(), nil)
	if _, err := c.GenerateTasks(ctx, "Fika", nil, anna(), 3); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
}

func TestSessionNilReturnsErrNoSession(t *testing.T) {
	var s *Session
	if _, err := s.SendTurn(context.Background(), "hello"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestSessionCarriesProfileContextAndHistory(t *testing.T) {
	fc := &fakeCompleter{replies: []string{"first", "second"}}
	c := NewClient(fc, DefaultOptions(), nil)
	s := c.StartSession(anna())

	reply, err := s.SendTurn(context.Background(), "When do I arrive?")
	if err != nil || reply != "first" {
		t.Fatalf("first turn: %q %v", reply, err)
	}
	if _, err := s.SendTurn(context.Background(), "And then?"); err != nil {
		t.Fatalf("second turn: %v", err)
	}

	second := fc.requests[1].Messages
	if len(second) != 4 {
		t.Fatalf("expected system plus three turns, got %d", len(second))
	}
	if second[0].Role != RoleSystem || !strings.Contains(second[0].Content, "Name: Anna") {
		t.Fatalf("unexpected system message %+v", second[0])
	}
	if second[1].Content != "When do I arrive?" || second[2].Content != "first" {
		t.Fatalf("unexpected history %+v", second)
	}
}

func TestSessionTransportErrorReturnsApology(t *testing.T) {
	c := NewClient(&fakeCompleter{err: errors.New("offline")}, DefaultOptions(), nil)
	s := c.StartSession(anna())
	reply, err := s.SendTurn(context.Background(), "hi")
	if err != nil || reply != ApologyReply {
		t.Fatalf("expected apology, got %q %v", reply, err)
	}
	if n := len(s.History()); n != 1 {
		t.Fatalf("failed turn must not be kept, history has %d", n)
	}
}

func TestSessionEmptyReply(t *testing.T) {
	c := NewClient(&fakeCompleter{replies: []string{"  "}}, DefaultOptions(), nil)
	reply, err := c.StartSession(anna()).SendTurn(context.Background(), "hi")
	if err != nil || reply != NotUnderstoodReply {
		t.Fatalf("expected not-understood reply, got %q %v", reply, err)
	}
}

func TestTrimHistoryKeepsSystemMessage(t *testing.T) {
	history := []Message{{Role: RoleSystem, Content: "sys"}}
	for i := 0; i < 10; i++ {
		history = append(history, Message{Role: RoleUser, Content: string(rune('a' + i))})
	}
	got := trimHistory(history, 4)
	if len(got) != 5 || got[0].Content != "sys" || got[1].Content != "g" || got[4].Content != "j" {
		t.Fatalf("unexpected trimmed history %+v", got)
	}
}
