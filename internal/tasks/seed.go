package tasks

import (
	"context"
	"fmt"

	"github.com/sandeepkv93/studyviking/internal/model"
	"golang.org/x/sync/errgroup"
)

const customSeedCount = 3

// Seed builds the initial task list for categories. Built-in categories use
// their curated defaults; custom ones are generated in parallel and fall back
// to a single placeholder. The result keeps category order.
func Seed(ctx context.Context, gen Generator, ids IDProvider, p model.UserProfile, categories []string) []model.TaskItem {
	results := make([][]model.TaskItem, len(categories))
	g, gctx := errgroup.WithContext(ctx)
	for i, cat := range categories {
		if defaults, ok := model.DefaultTasks(cat); ok {
			results[i] = newItems(ids, cat, defaults)
			continue
		}
		g.Go(func() error {
			results[i] = seedCustom(gctx, gen, ids, p, cat)
			return nil
		})
	}
	_ = g.Wait()

	out := make([]model.TaskItem, 0, len(categories)*customSeedCount)
	for _, r := range results {
		out = append(out, r...)
	}
	return out
}

func seedCustom(ctx context.Context, gen Generator, ids IDProvider, p model.UserProfile, cat string) []model.TaskItem {
	if gen == nil {
		return newItems(ids, cat, []string{fmt.Sprintf("Research %s online", cat)})
	}
	texts, err := gen.GenerateTasks(ctx, cat, nil, p, customSeedCount)
	if err != nil {
		return newItems(ids, cat, []string{fmt.Sprintf("Research %s online", cat)})
	}
	if len(texts) == 0 {
		return newItems(ids, cat, []string{fmt.Sprintf("Explore requirements for %s", cat)})
	}
	return newItems(ids, cat, texts)
}

func newItems(ids IDProvider, category string, texts []string) []model.TaskItem {
	out := make([]model.TaskItem, 0, len(texts))
	for _, text := range texts {
		out = append(out, model.TaskItem{ID: ids.NewID(), Category: category, Text: text})
	}
	return out
}

// ApplyProfileEdit carries tasks over from old to edited: tasks of removed
// categories are dropped, retained ones are kept as-is and newly added
// categories are seeded.
func ApplyProfileEdit(ctx context.Context, gen Generator, ids IDProvider, old, edited model.UserProfile) model.UserProfile {
	out := edited.Clone()
	kept := make([]model.TaskItem, 0, len(old.ActiveTasks))
	for _, t := range old.ActiveTasks {
		if model.ContainsCategory(out.FocusCategories, t.Category) {
			kept = append(kept, t)
		}
	}
	added := make([]string, 0)
	for _, cat := range out.FocusCategories {
		if !model.ContainsCategory(old.FocusCategories, cat) {
			added = append(added, cat)
		}
	}
	out.ActiveTasks = append(kept, Seed(ctx, gen, ids, out, added)...)
	return out
}
