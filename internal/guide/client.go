package guide

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/sandeepkv93/studyviking/internal/model"
)

var (
	ErrEmptyCategory = errors.New("guide: category is required")
	ErrInvalidCount  = errors.New("guide: count must be positive")
)

type Options struct {
	Temperature  float64
	HistoryLimit int
}

func DefaultOptions() Options {
	return Options{Temperature: 0.7, HistoryLimit: 20}
}

// Client builds prompts for the assistant and turns its replies into
// guides, task lists and chat sessions. Failures degrade to fallbacks and
// are only visible in the log.
type Client struct {
	completer Completer
	logger    hclog.Logger
	opts      Options
}

func NewClient(completer Completer, opts Options, logger hclog.Logger) *Client {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = DefaultOptions().HistoryLimit
	}
	return &Client{completer: completer, logger: logger.Named("guide"), opts: opts}
}

// StartSession opens a conversation primed with the persona and the
// profile context. Each call returns an independent session.
func (c *Client) StartSession(p model.UserProfile) *Session {
	return &Session{
		completer:   c.completer,
		logger:      c.logger.Named("chat"),
		temperature: c.opts.Temperature,
		limit:       c.opts.HistoryLimit,
		history: []Message{{
			Role:    RoleSystem,
			Content: systemInstruction + userContext(p),
		}},
	}
}

// GenerateGuide returns the raw guide JSON for topic. On any service error
// it returns an encoded "unavailable" guide instead.
func (c *Client) GenerateGuide(ctx context.Context, topic string, p model.UserProfile) string {
	text, err := c.completer.Complete(ctx, CompletionRequest{
		Messages: []Message{
			{Role: RoleSystem, Content: systemInstruction},
			{Role: RoleUser, Content: guidePrompt(topic, p)},
		},
		Temperature: c.opts.Temperature,
		JSON:        true,
	})
	if err != nil {
		c.logger.Error("guide generation failed", "topic", topic, "error", err)
		fallback, _ := json.Marshal(unavailableGuide())
		return string(fallback)
	}
	if strings.TrimSpace(text) == "" {
		return "{}"
	}
	return text
}

// GenerateTasks asks for up to count new tasks in category, avoiding the
// texts in exclude. Service and parse failures yield an empty list; only
// cancellation and bad arguments are returned as errors.
func (c *Client) GenerateTasks(ctx context.Context, category string, exclude []string, p model.UserProfile, count int) ([]string, error) {
	category = model.NormalizeCategory(category)
	if category == "" {
		return nil, ErrEmptyCategory
	}
	if count <= 0 {
		return nil, ErrInvalidCount
	}
	text, err := c.completer.Complete(ctx, CompletionRequest{
		Messages: []Message{
			{Role: RoleSystem, Content: systemInstruction + userContext(p)},
			{Role: RoleUser, Content: tasksPrompt(category, exclude, count)},
		},
		Temperature: c.opts.Temperature,
		JSON:        true,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.logger.Error("task generation failed", "category", category, "error", err)
		return []string{}, nil
	}
	raw, err := parseTasks(text)
	if err != nil {
		c.logger.Warn("task generation returned invalid json", "category", category, "error", err)
		return []string{}, nil
	}
	return cleanTasks(raw, exclude, count), nil
}

func cleanTasks(raw, exclude []string, count int) []string {
	seen := make(map[string]bool, len(exclude)+len(raw))
	for _, e := range exclude {
		seen[strings.ToLower(strings.TrimSpace(e))] = true
	}
	out := make([]string, 0, count)
	for _, t := range raw {
		t = strings.TrimSpace(t)
		key := strings.ToLower(t)
		if t == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
		if len(out) == count {
			break
		}
	}
	return out
}
