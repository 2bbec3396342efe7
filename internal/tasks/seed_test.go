package tasks

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/sandeepkv93/studyviking/internal/model"
)

func TestSeedBuiltinUsesDefaultsVerbatim(t *testing.T) {
	p := model.UserProfile{Username: "Anna", OriginCountry: "Germany"}
	got := Seed(context.Background(), &fakeGenerator{}, UUIDProvider{}, p, []string{model.CategoryBanking})

	want, _ := model.DefaultTasks(model.CategoryBanking)
	if len(got) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(got))
	}
	seen := map[string]bool{}
	for i, task := range got {
		if task.Text != want[i] || task.Category != model.CategoryBanking || task.IsCompleted {
			t.Fatalf("unexpected task %d: %+v", i, task)
		}
		if seen[task.ID] {
			t.Fatalf("duplicate id %q", task.ID)
		}
		seen[task.ID] = true
	}
}

func TestSeedCustomCategoriesAndOrder(t *testing.T) {
	gen := &fakeGenerator{byCat: map[string][]string{"Fika": {"Try kanelbulle", "Book a fika date"}}}
	cats := []string{"Fika", model.CategoryHealth, "Sauna"}
	got := Seed(context.Background(), gen, &SequenceProvider{}, model.UserProfile{}, cats)

	want := []string{
		"Try kanelbulle", "Book a fika date",
		"Register at a health center (Vårdcentral)", "Find the nearest pharmacy (Apotek)", "Save emergency numbers (112 vs 1177)",
		"Explore requirements for Sauna",
	}
	if texts := model.TaskTexts(got); !reflect.DeepEqual(texts, want) {
		t.Fatalf("unexpected seeded texts:\n got %q\nwant %q", texts, want)
	}
	for _, c := range gen.calls {
		if c.Count != 3 || len(c.Exclude) != 0 {
			t.Fatalf("unexpected generator call: %+v", c)
		}
	}
}

func TestSeedCustomCategoryErrorFallback(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("boom")}
	got := Seed(context.Background(), gen, &SequenceProvider{}, model.UserProfile{}, []string{"Sauna"})
	if len(got) != 1 || got[0].Text != "Research Sauna online" {
		t.Fatalf("expected research fallback, got %+v", got)
	}
}

func TestSeedNoCategories(t *testing.T) {
	if got := Seed(context.Background(), &fakeGenerator{}, UUIDProvider{}, model.UserProfile{}, nil); len(got) != 0 {
		t.Fatalf("expected no tasks, got %+v", got)
	}
}

func TestApplyProfileEditPrunesAndSeeds(t *testing.T) {
	old := bankingProfile()
	edited := old.Clone()
	edited.Username = "Anna K"
	edited.FocusCategories = []string{"Fika", model.CategoryStudent}

	got := ApplyProfileEdit(context.Background(), &fakeGenerator{}, &SequenceProvider{}, old, edited)
	if got.Username != "Anna K" {
		t.Fatalf("expected edited username, got %q", got.Username)
	}
	if len(got.ActiveTasks) != 4 || got.ActiveTasks[0].ID != "f1" {
		t.Fatalf("expected fika task kept and three student tasks, got %+v", got.ActiveTasks)
	}
	for _, task := range got.ActiveTasks[1:] {
		if task.Category != model.CategoryStudent {
			t.Fatalf("unexpected seeded category: %+v", task)
		}
	}
	if n := len(model.TasksInCategory(got.ActiveTasks, model.CategoryBanking)); n != 0 {
		t.Fatalf("expected banking tasks dropped with the category, got %d", n)
	}
}

func TestSequenceProvider(t *testing.T) {
	s := &SequenceProvider{Prefix: "x"}
	if a, b := s.NewID(), s.NewID(); a != "x-1" || b != "x-2" {
		t.Fatalf("unexpected sequence %q %q", a, b)
	}
	u := UUIDProvider{}
	if u.NewID() == u.NewID() {
		t.Fatal("expected distinct uuids")
	}
}
