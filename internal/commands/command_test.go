package commands

import (
	"errors"
	"testing"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/more Banking & Finance", TypeMore},
		{"category learning Swedish", TypeCategory},
		{"/topic How do I get a personnummer?", TypeTopic},
		{"/THEME light", TypeTheme},
		{"phrase", TypePhrase},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseKeepsMultiWordArguments(t *testing.T) {
	cmd, err := Parse("/more   Banking   &   Finance ")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.More.Category != "Banking & Finance" {
		t.Fatalf("unexpected category: %q", cmd.More.Category)
	}
}

func TestParseTheme(t *testing.T) {
	cmd, err := Parse("/theme")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Theme.Mode != ThemeToggle {
		t.Fatalf("bare theme should toggle, got %q", cmd.Theme.Mode)
	}

	_, err = Parse("/theme sepia")
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]ErrorCode{
		"":            ErrCodeEmptyInput,
		"  /  ":       ErrCodeEmptyInput,
		"/unknown x":  ErrCodeUnknownCommand,
		"/more":       ErrCodeInvalidArgument,
		"/category  ": ErrCodeInvalidArgument,
		"/topic":      ErrCodeInvalidArgument,
	}
	for in, want := range cases {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != want {
			t.Fatalf("parse %q: expected %s, got %v", in, want, err)
		}
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/category fika culture")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Category: func(a CategoryArgs) (Result, error) {
			called = true
			if a.Name != "fika culture" {
				t.Fatalf("unexpected name: %q", a.Name)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("phrase")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
