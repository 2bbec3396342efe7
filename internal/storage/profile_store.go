package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hashicorp/go-hclog"
	"github.com/sandeepkv93/studyviking/internal/model"
)

const (
	ProfileKey = "studyVikingUser"
	ThemeKey   = "theme"
)

// ProfileStore persists the single user profile and the theme preference on
// top of a key/value Repository. Reads never fail: an absent or unreadable
// profile is reported as "no profile". Stored documents are returned as
// decoded; fields missing from older documents keep their zero value.
type ProfileStore struct {
	repo     Repository
	logger   hclog.Logger
	darkHint func() bool
}

func NewProfileStore(repo Repository, logger hclog.Logger) *ProfileStore {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &ProfileStore{
		repo:     repo,
		logger:   logger.Named("store"),
		darkHint: lipgloss.HasDarkBackground,
	}
}

// SetDarkHint replaces the terminal background probe used when no theme has
// been saved.
func (s *ProfileStore) SetDarkHint(fn func() bool) {
	if fn != nil {
		s.darkHint = fn
	}
}

func (s *ProfileStore) Load(ctx context.Context) (model.UserProfile, bool) {
	entry, err := s.repo.Get(ctx, ProfileKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("read profile failed", "error", err)
		}
		return model.UserProfile{}, false
	}
	var p model.UserProfile
	if err := json.Unmarshal([]byte(entry.Value), &p); err != nil {
		s.logger.Warn("stored profile is corrupt, ignoring", "error", err)
		return model.UserProfile{}, false
	}
	return p, true
}

// Save overwrites the stored profile. Concurrent writers race and the last
// write wins.
func (s *ProfileStore) Save(ctx context.Context, p model.UserProfile) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := s.repo.Put(ctx, ProfileKey, string(payload)); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// Clear removes the profile so the next start begins onboarding again.
func (s *ProfileStore) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, ProfileKey); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("clear profile: %w", err)
	}
	return nil
}

// RawProfile returns the stored document verbatim.
func (s *ProfileStore) RawProfile(ctx context.Context) (string, error) {
	entry, err := s.repo.Get(ctx, ProfileKey)
	if err != nil {
		return "", err
	}
	return entry.Value, nil
}

func (s *ProfileStore) LoadThemePreference(ctx context.Context) model.Theme {
	entry, err := s.repo.Get(ctx, ThemeKey)
	if err == nil {
		theme := model.Theme(strings.TrimSpace(entry.Value))
		if theme.IsValid() {
			return theme
		}
		s.logger.Warn("ignoring unknown stored theme", "value", entry.Value)
	} else if !errors.Is(err, ErrNotFound) {
		s.logger.Warn("read theme failed", "error", err)
	}
	if s.darkHint != nil && s.darkHint() {
		return model.ThemeDark
	}
	return model.ThemeLight
}

func (s *ProfileStore) SaveThemePreference(ctx context.Context, theme model.Theme) error {
	if !theme.IsValid() {
		return fmt.Errorf("storage: invalid theme %q", theme)
	}
	if err := s.repo.Put(ctx, ThemeKey, string(theme)); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}
