package guide

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
)

var ErrNoSession = errors.New("guide: chat session not started")

const (
	ApologyReply       = "I'm having a little trouble connecting to my brain right now. Please try again in a moment! ☕"
	NotUnderstoodReply = "I'm sorry, I couldn't understand that perfectly. Could you try asking in a different way?"
)

// Session is one conversation with the assistant. Turns are serialized.
type Session struct {
	mu          sync.Mutex
	completer   Completer
	logger      hclog.Logger
	temperature float64
	limit       int
	history     []Message
}

// SendTurn sends text and returns the reply. Transport failures are
// reported as a friendly reply rather than an error.
func (s *Session) SendTurn(ctx context.Context, text string) (string, error) {
	if s == nil {
		return "", ErrNoSession
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := append(append([]Message(nil), s.history...), Message{Role: RoleUser, Content: text})
	reply, err := s.completer.Complete(ctx, CompletionRequest{
		Messages:    pending,
		Temperature: s.temperature,
	})
	if err != nil {
		s.logger.Error("chat turn failed", "error", err)
		return ApologyReply, nil
	}
	if strings.TrimSpace(reply) == "" {
		return NotUnderstoodReply, nil
	}
	s.history = trimHistory(append(pending, Message{Role: RoleAssistant, Content: reply}), s.limit)
	return reply, nil
}

// History returns a copy of the conversation including the system prompt.
func (s *Session) History() []Message {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.history...)
}

// trimHistory keeps the system message plus the newest limit messages.
func trimHistory(history []Message, limit int) []Message {
	if limit <= 0 || len(history) <= limit+1 {
		return history
	}
	out := make([]Message, 0, limit+1)
	out = append(out, history[0])
	return append(out, history[len(history)-limit:]...)
}
