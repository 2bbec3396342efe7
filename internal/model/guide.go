package model

import "time"

type GuideStep struct {
	Title string `json:"title"`
	Desc  string `json:"desc"`
}

// GuideData is the structured topic guide returned by the assistant.
type GuideData struct {
	Intro     string      `json:"intro"`
	Steps     []GuideStep `json:"steps"`
	Checklist []string    `json:"checklist"`
	ProTip    string      `json:"proTip"`
	Sources   []string    `json:"sources"`
}

type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

type ChatMessage struct {
	ID        string
	Role      ChatRole
	Text      string
	Timestamp time.Time
}
