package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/sandeepkv93/studyviking/internal/model"
)

var (
	ErrNothingPending  = errors.New("tasks: no completion awaiting confirmation")
	ErrTaskNotFound    = errors.New("tasks: task not found")
	ErrCategoryBusy    = errors.New("tasks: generation already running for category")
	ErrUnknownCategory = errors.New("tasks: category is not a focus area")
)

const DefaultBatch = 3

// Generator produces new task texts for a category.
type Generator interface {
	GenerateTasks(ctx context.Context, category string, exclude []string, p model.UserProfile, count int) ([]string, error)
}

// ProfileSaver is the write path back to storage.
type ProfileSaver interface {
	Save(ctx context.Context, p model.UserProfile) error
}

// CompletionResult describes how a confirmed completion ended.
type CompletionResult struct {
	Completed   model.TaskItem
	Replacement *model.TaskItem
	SaveErr     error
}

// Controller owns the task list of one profile. Every mutation is followed
// by a save of the whole profile. Methods are safe to call from command
// goroutines; generation calls run without holding the lock.
type Controller struct {
	mu        sync.Mutex
	profile   model.UserProfile
	pending   *model.TaskItem
	replacing map[string]model.TaskItem
	loading   map[string]bool

	gen    Generator
	saver  ProfileSaver
	ids    IDProvider
	logger hclog.Logger
}

func NewController(p model.UserProfile, gen Generator, saver ProfileSaver, ids IDProvider, logger hclog.Logger) *Controller {
	if ids == nil {
		ids = UUIDProvider{}
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Controller{
		profile:   p.Clone(),
		replacing: make(map[string]model.TaskItem),
		loading:   make(map[string]bool),
		gen:       gen,
		saver:     saver,
		ids:       ids,
		logger:    logger.Named("tasks"),
	}
}

func (c *Controller) Profile() model.UserProfile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profile.Clone()
}

func (c *Controller) Tasks() []model.TaskItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.TaskItem(nil), c.profile.ActiveTasks...)
}

func (c *Controller) TasksFor(category string) []model.TaskItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return model.TasksInCategory(c.profile.ActiveTasks, category)
}

// InitiateCompletion records id as awaiting confirmation. Completed and
// unknown tasks are ignored.
func (c *Controller) InitiateCompletion(id string) (model.TaskItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	task, ok := c.findLocked(id)
	if !ok || task.IsCompleted {
		return model.TaskItem{}, false
	}
	c.pending = &task
	return task, true
}

func (c *Controller) CancelCompletion() {
	c.mu.Lock()
	c.pending = nil
	c.mu.Unlock()
}

func (c *Controller) Pending() (model.TaskItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return model.TaskItem{}, false
	}
	return *c.pending, true
}

// Confirm removes the pending task, persists, and marks its category as
// awaiting a replacement. The caller follows up with Replace.
func (c *Controller) Confirm(ctx context.Context) (model.TaskItem, error) {
	c.mu.Lock()
	if c.pending == nil {
		c.mu.Unlock()
		return model.TaskItem{}, ErrNothingPending
	}
	task := *c.pending
	c.pending = nil
	if !c.removeLocked(task.ID) {
		c.mu.Unlock()
		return model.TaskItem{}, fmt.Errorf("%w: %s", ErrTaskNotFound, task.ID)
	}
	task.IsCompleted = true
	c.replacing[task.ID] = task
	snapshot := c.profile.Clone()
	c.mu.Unlock()

	return task, c.save(ctx, snapshot)
}

// Replace asks for one new task in the completed task's category and
// appends it when one comes back. Generation failures only cost the
// replacement.
func (c *Controller) Replace(ctx context.Context, completed model.TaskItem) CompletionResult {
	res := CompletionResult{Completed: completed}
	defer func() {
		c.mu.Lock()
		delete(c.replacing, completed.ID)
		c.mu.Unlock()
	}()

	c.mu.Lock()
	exclude := model.TaskTexts(model.TasksInCategory(c.profile.ActiveTasks, completed.Category))
	profile := c.profile.Clone()
	c.mu.Unlock()
	exclude = append(exclude, completed.Text)

	if c.gen == nil {
		return res
	}
	texts, err := c.gen.GenerateTasks(ctx, completed.Category, exclude, profile, 1)
	if err != nil {
		c.logger.Warn("replacement generation failed", "category", completed.Category, "error", err)
		return res
	}
	if len(texts) == 0 {
		return res
	}

	item := model.TaskItem{ID: c.ids.NewID(), Category: completed.Category, Text: texts[0]}
	c.mu.Lock()
	if !model.ContainsCategory(c.profile.FocusCategories, completed.Category) {
		c.mu.Unlock()
		c.logger.Debug("dropping replacement for removed category", "category", completed.Category)
		return res
	}
	c.profile.ActiveTasks = append(c.profile.ActiveTasks, item)
	snapshot := c.profile.Clone()
	c.mu.Unlock()

	res.Replacement = &item
	res.SaveErr = c.save(ctx, snapshot)
	return res
}

// ConfirmCompletion runs Confirm and Replace back to back.
func (c *Controller) ConfirmCompletion(ctx context.Context) (CompletionResult, error) {
	task, err := c.Confirm(ctx)
	if errors.Is(err, ErrNothingPending) || errors.Is(err, ErrTaskNotFound) {
		return CompletionResult{}, err
	}
	res := c.Replace(ctx, task)
	if res.SaveErr == nil {
		res.SaveErr = err
	}
	return res, nil
}

// Replacing reports whether a replacement is in flight for category.
func (c *Controller) Replacing(category string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := model.CategoryKey(category)
	for _, t := range c.replacing {
		if model.CategoryKey(t.Category) == key {
			return true
		}
	}
	return false
}

func (c *Controller) Loading(category string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading[model.CategoryKey(category)]
}

// GenerateMore appends up to count generated tasks to category, which must
// be one of the focus areas. A second call for the same category while one
// is running gets ErrCategoryBusy.
func (c *Controller) GenerateMore(ctx context.Context, category string, count int) ([]model.TaskItem, error) {
	if count <= 0 {
		count = DefaultBatch
	}
	key := model.CategoryKey(category)
	c.mu.Lock()
	category, ok := c.focusLocked(category)
	if !ok {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, key)
	}
	if c.loading[key] {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrCategoryBusy, category)
	}
	c.loading[key] = true
	exclude := model.TaskTexts(model.TasksInCategory(c.profile.ActiveTasks, category))
	profile := c.profile.Clone()
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.loading, key)
		c.mu.Unlock()
	}()

	if c.gen == nil {
		return nil, nil
	}
	texts, err := c.gen.GenerateTasks(ctx, category, exclude, profile, count)
	if err != nil {
		return nil, err
	}
	if len(texts) > count {
		texts = texts[:count]
	}
	added := newItems(c.ids, category, texts)

	c.mu.Lock()
	if _, ok := c.focusLocked(category); !ok {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	c.profile.ActiveTasks = append(c.profile.ActiveTasks, added...)
	snapshot := c.profile.Clone()
	c.mu.Unlock()

	return added, c.save(ctx, snapshot)
}

// AddCategory adds a custom focus category from the dashboard and seeds it
// the same way onboarding does.
func (c *Controller) AddCategory(ctx context.Context, name string) (string, []model.TaskItem, error) {
	c.mu.Lock()
	cats, canonical, err := model.AddCategory(c.profile.FocusCategories, name)
	if err != nil {
		c.mu.Unlock()
		return canonical, nil, err
	}
	key := model.CategoryKey(canonical)
	if c.loading[key] {
		c.mu.Unlock()
		return canonical, nil, fmt.Errorf("%w: %s", ErrCategoryBusy, canonical)
	}
	c.profile.FocusCategories = cats
	c.loading[key] = true
	profile := c.profile.Clone()
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.loading, key)
		c.mu.Unlock()
	}()

	seeded := Seed(ctx, c.gen, c.ids, profile, []string{canonical})

	c.mu.Lock()
	c.profile.ActiveTasks = append(c.profile.ActiveTasks, seeded...)
	snapshot := c.profile.Clone()
	c.mu.Unlock()

	return canonical, seeded, c.save(ctx, snapshot)
}

// Reset swaps in a new profile, for example after an edit was saved.
func (c *Controller) Reset(p model.UserProfile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profile = p.Clone()
	c.pending = nil
}

func (c *Controller) save(ctx context.Context, p model.UserProfile) error {
	if c.saver == nil {
		return nil
	}
	if err := c.saver.Save(ctx, p); err != nil {
		c.logger.Error("persist profile failed", "error", err)
		return err
	}
	return nil
}

// focusLocked returns the stored spelling of category.
func (c *Controller) focusLocked(category string) (string, bool) {
	key := model.CategoryKey(category)
	for _, cat := range c.profile.FocusCategories {
		if model.CategoryKey(cat) == key {
			return cat, true
		}
	}
	return "", false
}

func (c *Controller) findLocked(id string) (model.TaskItem, bool) {
	for _, t := range c.profile.ActiveTasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.TaskItem{}, false
}

func (c *Controller) removeLocked(id string) bool {
	for i, t := range c.profile.ActiveTasks {
		if t.ID == id {
			c.profile.ActiveTasks = append(c.profile.ActiveTasks[:i:i], c.profile.ActiveTasks[i+1:]...)
			return true
		}
	}
	return false
}
