package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	More     func(MoreArgs) (Result, error)
	Category func(CategoryArgs) (Result, error)
	Topic    func(TopicArgs) (Result, error)
	Theme    func(ThemeArgs) (Result, error)
	Phrase   func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeMore:
		if handlers.More == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.More(*cmd.More)
	case TypeCategory:
		if handlers.Category == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Category(*cmd.Category)
	case TypeTopic:
		if handlers.Topic == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Topic(*cmd.Topic)
	case TypeTheme:
		if handlers.Theme == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Theme(*cmd.Theme)
	case TypePhrase:
		if handlers.Phrase == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Phrase()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
