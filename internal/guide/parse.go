package guide

import (
	"encoding/json"
	"strings"

	"github.com/sandeepkv93/studyviking/internal/model"
)

// FallbackGuide is shown when the guide text cannot be parsed.
func FallbackGuide() model.GuideData {
	return model.GuideData{
		Intro:     "We couldn't load the visual guide right now.",
		Steps:     []model.GuideStep{},
		Checklist: []string{},
		ProTip:    "Try asking the chat assistant instead.",
		Sources:   []string{},
	}
}

func unavailableGuide() model.GuideData {
	return model.GuideData{
		Intro:     "Unable to load guide content.",
		Steps:     []model.GuideStep{},
		Checklist: []string{},
		ProTip:    "Please try again later.",
		Sources:   []string{},
	}
}

// ParseGuide decodes guide JSON, tolerating a surrounding markdown code
// fence. Anything undecodable yields FallbackGuide.
func ParseGuide(raw string) model.GuideData {
	var data model.GuideData
	if err := json.Unmarshal([]byte(stripFence(raw)), &data); err != nil {
		return FallbackGuide()
	}
	if data.Steps == nil {
		data.Steps = []model.GuideStep{}
	}
	if data.Checklist == nil {
		data.Checklist = []string{}
	}
	if data.Sources == nil {
		data.Sources = []string{}
	}
	return data
}

type tasksPayload struct {
	Tasks []string `json:"tasks"`
}

func parseTasks(raw string) ([]string, error) {
	var payload tasksPayload
	if err := json.Unmarshal([]byte(stripFence(raw)), &payload); err != nil {
		return nil, err
	}
	return payload.Tasks, nil
}

func stripFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
