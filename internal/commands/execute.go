package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add    func(AddArgs) (Result, error)
	Delete func(DeleteArgs) (Result, error)
	Taken  func(TakenArgs) (Result, error)
	Show   func(ShowArgs) (Result, error)
	Theme  func(ThemeArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add handler not configured"}
		}
		return handlers.Add(*cmd.Add)
	case TypeDelete:
		if handlers.Delete == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "delete handler not configured"}
		}
		return handlers.Delete(*cmd.Delete)
	case TypeTaken:
		if handlers.Taken == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "taken handler not configured"}
		}
		return handlers.Taken(*cmd.Taken)
	case TypeShow:
		if handlers.Show == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "show handler not configured"}
		}
		return handlers.Show(*cmd.Show)
	case TypeTheme:
		if handlers.Theme == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "theme handler not configured"}
		}
		return handlers.Theme(*cmd.Theme)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
