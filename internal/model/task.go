package model

import (
	"errors"
	"strings"
)

var (
	ErrEmptyCategory     = errors.New("model: category name is required")
	ErrDuplicateCategory = errors.New("model: category already selected")
)

// TaskItem is one checklist entry on the dashboard. Completed items are
// removed from the list, so IsCompleted is only ever true transiently.
type TaskItem struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Text        string `json:"text"`
	IsCompleted bool   `json:"isCompleted"`
}

func (t TaskItem) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Category) == "" {
		return errors.New("model: task category is required")
	}
	if strings.TrimSpace(t.Text) == "" {
		return errors.New("model: task text is required")
	}
	return nil
}

const (
	CategoryLegal     = "Legal & Migration"
	CategoryHousing   = "Housing & Utilities"
	CategoryBanking   = "Banking & Finance"
	CategoryTransport = "Transport & Travel"
	CategoryStudent   = "Student Life"
	CategoryHealth    = "Health & Safety"
)

// DefaultCategories lists the built-in focus categories in display order.
var DefaultCategories = []string{
	CategoryLegal,
	CategoryHousing,
	CategoryBanking,
	CategoryTransport,
	CategoryStudent,
	CategoryHealth,
}

var defaultTasks = map[string][]string{
	CategoryLegal: {
		"Apply for a Residence Permit (Uppehållstillstånd)",
		"Register with Skatteverket (Personnummer)",
		"Get a Swedish ID Card (ID-kort)",
	},
	CategoryHousing: {
		"Sign up for student housing queues (Bostadskö)",
		"Understand your rental contract",
		"Set up home insurance (Hemförsäkring)",
	},
	CategoryBanking: {
		"Open a Swedish Bank Account",
		"Get a BankID (Digital ID)",
		"Understand Swish (Mobile payments)",
	},
	CategoryTransport: {
		"Get a public transport card (SL/Västtrafik/Skånetrafiken)",
		"Register a bike or learn traffic rules",
		"Download essential travel apps",
	},
	CategoryStudent: {
		"Get a Student Union Card (Mecenat/Studentkortet)",
		"Find course literature cheaply",
		"Understand the Swedish grading system",
	},
	CategoryHealth: {
		"Register at a health center (Vårdcentral)",
		"Find the nearest pharmacy (Apotek)",
		"Save emergency numbers (112 vs 1177)",
	},
}

// DefaultTasks returns a copy of the curated tasks for a built-in category.
// The second result is false for custom categories.
func DefaultTasks(category string) ([]string, bool) {
	tasks, ok := defaultTasks[category]
	if !ok {
		return nil, false
	}
	out := make([]string, len(tasks))
	copy(out, tasks)
	return out, true
}

func IsDefaultCategory(category string) bool {
	_, ok := defaultTasks[category]
	return ok
}

// NormalizeCategory trims the name and collapses internal whitespace.
func NormalizeCategory(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// CategoryKey is the case-folded identity used to compare categories.
func CategoryKey(name string) string {
	return strings.ToLower(NormalizeCategory(name))
}

// CanonicalCategory maps a user-typed name onto the built-in spelling when
// one matches, and returns the normalized input otherwise.
func CanonicalCategory(name string) string {
	key := CategoryKey(name)
	for _, builtin := range DefaultCategories {
		if CategoryKey(builtin) == key {
			return builtin
		}
	}
	return NormalizeCategory(name)
}

func ContainsCategory(categories []string, name string) bool {
	key := CategoryKey(name)
	for _, c := range categories {
		if CategoryKey(c) == key {
			return true
		}
	}
	return false
}

// AddCategory appends name to categories after normalization. Duplicates are
// detected case-insensitively.
func AddCategory(categories []string, name string) ([]string, string, error) {
	canonical := CanonicalCategory(name)
	if canonical == "" {
		return categories, "", ErrEmptyCategory
	}
	if ContainsCategory(categories, canonical) {
		return categories, canonical, ErrDuplicateCategory
	}
	out := make([]string, 0, len(categories)+1)
	out = append(out, categories...)
	return append(out, canonical), canonical, nil
}

func RemoveCategory(categories []string, name string) []string {
	key := CategoryKey(name)
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		if CategoryKey(c) != key {
			out = append(out, c)
		}
	}
	return out
}

func TaskTexts(tasks []TaskItem) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Text)
	}
	return out
}

// TasksInCategory filters by category identity, not exact spelling.
func TasksInCategory(tasks []TaskItem, category string) []TaskItem {
	key := CategoryKey(category)
	out := make([]TaskItem, 0)
	for _, t := range tasks {
		if CategoryKey(t.Category) == key {
			out = append(out, t)
		}
	}
	return out
}
