package commands

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeMore     Type = "more"
	TypeCategory Type = "category"
	TypeTopic    Type = "topic"
	TypeTheme    Type = "theme"
	TypePhrase   Type = "phrase"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type MoreArgs struct {
	Category string
}

type CategoryArgs struct {
	Name string
}

type TopicArgs struct {
	Topic string
}

type ThemeMode string

const (
	ThemeDark   ThemeMode = "dark"
	ThemeLight  ThemeMode = "light"
	ThemeToggle ThemeMode = "toggle"
)

type ThemeArgs struct {
	Mode ThemeMode
}

type Command struct {
	Type     Type
	Raw      string
	More     *MoreArgs
	Category *CategoryArgs
	Topic    *TopicArgs
	Theme    *ThemeArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	rest := strings.Join(parts[1:], " ")

	switch Type(head) {
	case TypeMore:
		if rest == "" {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "more requires a category"}
		}
		return Command{Type: TypeMore, Raw: input, More: &MoreArgs{Category: rest}}, nil
	case TypeCategory:
		if rest == "" {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "category requires a name"}
		}
		return Command{Type: TypeCategory, Raw: input, Category: &CategoryArgs{Name: rest}}, nil
	case TypeTopic:
		if rest == "" {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "topic requires a subject"}
		}
		return Command{Type: TypeTopic, Raw: input, Topic: &TopicArgs{Topic: rest}}, nil
	case TypeTheme:
		return parseTheme(input, parts[1:])
	case TypePhrase:
		return Command{Type: TypePhrase, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseTheme(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{Type: TypeTheme, Raw: raw, Theme: &ThemeArgs{Mode: ThemeToggle}}, nil
	}
	if len(args) > 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "theme takes one of dark, light, toggle"}
	}
	mode := ThemeMode(strings.ToLower(args[0]))
	switch mode {
	case ThemeDark, ThemeLight, ThemeToggle:
		return Command{Type: TypeTheme, Raw: raw, Theme: &ThemeArgs{Mode: mode}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown theme: %s", args[0])}
	}
}
