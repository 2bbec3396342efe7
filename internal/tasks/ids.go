package tasks

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// IDProvider creates task identifiers.
type IDProvider interface {
	NewID() string
}

type UUIDProvider struct{}

func (UUIDProvider) NewID() string {
	return uuid.NewString()
}

// SequenceProvider yields prefix-1, prefix-2, ... and is meant for tests and
// deterministic fixtures.
type SequenceProvider struct {
	mu     sync.Mutex
	Prefix string
	next   int
}

func (s *SequenceProvider) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	prefix := s.Prefix
	if prefix == "" {
		prefix = "task"
	}
	return fmt.Sprintf("%s-%d", prefix, s.next)
}
