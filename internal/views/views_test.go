package views

import (
	"strings"
	"testing"

	"github.com/sandeepkv93/studyviking/internal/model"
)

func TestGuideMarkdownSections(t *testing.T) {
	md := GuideMarkdown("Banking", model.GuideData{
		Intro:     "Banks need a personnummer.",
		Steps:     []model.GuideStep{{Title: "Book", Desc: "Book a meeting."}},
		Checklist: []string{"Passport"},
		ProTip:    "Ask about BankID.",
		Sources:   []string{"https://www.swedishbankers.se"},
	})
	for _, want := range []string{"# Banking", "1. **Book**: Book a meeting.", "- [ ] Passport", "**Pro tip:** Ask about BankID.", "## Sources"} {
		if !strings.Contains(md, want) {
			t.Fatalf("expected %q in %q", want, md)
		}
	}
}

func TestGuideMarkdownSkipsEmptySections(t *testing.T) {
	md := GuideMarkdown("Housing", model.GuideData{Intro: "Queue early."})
	if strings.Contains(md, "## Steps") || strings.Contains(md, "## Checklist") || strings.Contains(md, "## Sources") {
		t.Fatalf("unexpected empty sections in %q", md)
	}
}

func TestRenderMarkdownEmpty(t *testing.T) {
	if got := RenderMarkdown("   ", "light"); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestStylesForFallsBackToDark(t *testing.T) {
	if GlamourStyle("sepia") != "dark" || GlamourStyle("light") != "light" {
		t.Fatal("unexpected glamour style mapping")
	}
}

func TestRenderAppIncludesModalAndStatus(t *testing.T) {
	out := RenderApp(AppData{
		Theme:      "light",
		Header:     "StudyViking",
		LeftPane:   "left",
		RightPane:  "right",
		Modal:      RenderConfirmModal(ConfirmModalData{TaskText: "Open a bank account", Category: "Banking & Finance"}),
		StatusLine: "status: ready",
	})
	for _, want := range []string{"StudyViking", "Mark as done?", "Open a bank account", "status: ready"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output", want)
		}
	}
}

func TestRenderOnboardingPanelActions(t *testing.T) {
	out := RenderOnboardingPanel(OnboardingPanelData{StepIndex: 1, StepCount: 8, StepTitle: "Pick a username"})
	if !strings.Contains(out, "answer to continue") {
		t.Fatalf("expected blocked hint, got %q", out)
	}
	out = RenderOnboardingPanel(OnboardingPanelData{StepIndex: 8, StepCount: 8, IsLast: true})
	if !strings.Contains(out, "finish") {
		t.Fatalf("expected finish action, got %q", out)
	}
}

func TestRenderWidgetsPanelTemperatureOptional(t *testing.T) {
	data := WidgetsPanelData{Location: "Expected in Sweden", Season: "Winter", HolidayName: "Lucia", HolidayDate: "Dec 13"}
	if strings.Contains(RenderWidgetsPanel(data), "°C") {
		t.Fatal("temperature should be hidden when unknown")
	}
	temp := -2.0
	data.Temperature = &temp
	if !strings.Contains(RenderWidgetsPanel(data), "-2.0°C") {
		t.Fatal("expected temperature")
	}
}
