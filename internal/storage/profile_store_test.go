package storage

import (
	"context"
	"reflect"
	"testing"

	"github.com/sandeepkv93/studyviking/internal/model"
)

func sampleProfile() model.UserProfile {
	return model.UserProfile{
		Username:          "Anna",
		OriginCountry:     "Germany",
		City:              "Uppsala",
		InSweden:          true,
		ArrivalDate:       "2026-08-20",
		StayDuration:      model.StayOneYear,
		Age:               23,
		FocusCategories:   []string{model.CategoryBanking, "Learning Swedish"},
		ActiveTasks:       []model.TaskItem{{ID: "t1", Category: model.CategoryBanking, Text: "Open a Swedish Bank Account"}},
		PreferredLanguage: model.LanguageEnglish,
		IsOnboarded:       true,
	}
}

func TestProfileStoreRoundTrip(t *testing.T) {
	profiles := map[string]model.UserProfile{
		"full":        sampleProfile(),
		"nil slices":  {Username: "Anna", OriginCountry: "Germany"},
		"empty lists": {Username: "Anna", OriginCountry: "Germany", FocusCategories: []string{}, ActiveTasks: []model.TaskItem{}},
	}
	for repoName, repo := range map[string]Repository{
		"memory": NewMemoryRepository(),
		"sqlite": setupRepo(t),
	} {
		for name, want := range profiles {
			t.Run(repoName+"/"+name, func(t *testing.T) {
				store := NewProfileStore(repo, nil)
				ctx := context.Background()
				if err := store.Save(ctx, want); err != nil {
					t.Fatalf("save: %v", err)
				}
				got, ok := store.Load(ctx)
				if !ok {
					t.Fatal("expected stored profile")
				}
				if !reflect.DeepEqual(got, want) {
					t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", got, want)
				}
			})
		}
	}
}

func TestProfileStoreLoadMissingAndCorrupt(t *testing.T) {
	repo := NewMemoryRepository()
	store := NewProfileStore(repo, nil)
	ctx := context.Background()

	if _, ok := store.Load(ctx); ok {
		t.Fatal("expected no profile on empty store")
	}

	_ = repo.Put(ctx, ProfileKey, "{not json")
	if p, ok := store.Load(ctx); ok || p.Username != "" {
		t.Fatalf("expected corrupt profile to load as absent, got %#v ok=%v", p, ok)
	}
}

func TestProfileStoreLoadAcceptsMissingFields(t *testing.T) {
	repo := NewMemoryRepository()
	store := NewProfileStore(repo, nil)
	ctx := context.Background()
	_ = repo.Put(ctx, ProfileKey, `{"username":"Anna","originCountry":"Germany"}`)

	p, ok := store.Load(ctx)
	if !ok {
		t.Fatal("expected profile")
	}
	want := model.UserProfile{Username: "Anna", OriginCountry: "Germany"}
	if !reflect.DeepEqual(p, want) {
		t.Fatalf("expected profile as stored, got %#v", p)
	}
	if n := len(p.ActiveTasks) + len(p.FocusCategories); n != 0 {
		t.Fatalf("expected no tasks or categories, got %d", n)
	}
}

func TestProfileStoreClear(t *testing.T) {
	store := NewProfileStore(NewMemoryRepository(), nil)
	ctx := context.Background()
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear on empty store: %v", err)
	}
	_ = store.Save(ctx, sampleProfile())
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := store.Load(ctx); ok {
		t.Fatal("expected profile gone after clear")
	}
}

func TestThemePreferenceFallsBackToHint(t *testing.T) {
	repo := NewMemoryRepository()
	store := NewProfileStore(repo, nil)
	ctx := context.Background()

	store.SetDarkHint(func() bool { return true })
	if got := store.LoadThemePreference(ctx); got != model.ThemeDark {
		t.Fatalf("expected dark from hint, got %q", got)
	}
	store.SetDarkHint(func() bool { return false })
	if got := store.LoadThemePreference(ctx); got != model.ThemeLight {
		t.Fatalf("expected light from hint, got %q", got)
	}

	if err := store.SaveThemePreference(ctx, model.ThemeDark); err != nil {
		t.Fatalf("save theme: %v", err)
	}
	if got := store.LoadThemePreference(ctx); got != model.ThemeDark {
		t.Fatalf("expected stored theme to win over hint, got %q", got)
	}

	_ = repo.Put(ctx, ThemeKey, "sepia")
	if got := store.LoadThemePreference(ctx); got != model.ThemeLight {
		t.Fatalf("expected unknown stored theme to fall back to hint, got %q", got)
	}

	if err := store.SaveThemePreference(ctx, model.Theme("sepia")); err == nil {
		t.Fatal("expected invalid theme error")
	}
}
