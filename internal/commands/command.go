package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeDelete Type = "delete"
	TypeTaken  Type = "taken"
	TypeShow   Type = "show"
	TypeTheme  Type = "theme"
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

// AddArgs carries a reminder draft parsed from the palette, e.g.
// "add Aspirin at:08:00 on:Mon,Wed for:7".
type AddArgs struct {
	Name     string
	Time     string
	Days     []string
	Duration string
}

type DeleteArgs struct {
	Index int
}

type TakenArgs struct {
	Index int
	Day   string
}

type ShowArgs struct {
	Subject string
}

type ThemeArgs struct {
	Mode string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Delete *DeleteArgs
	Taken  *TakenArgs
	Show   *ShowArgs
	Theme  *ThemeArgs
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
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDelete:
		return parseDelete(input, args)
	case TypeTaken:
		return parseTaken(input, args)
	case TypeShow:
		return parseShow(input, args)
	case TypeTheme:
		return parseTheme(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a pill name"}
	}
	parsed := AddArgs{}
	nameParts := make([]string, 0, len(args))
	for _, arg := range args {
		lower := strings.ToLower(arg)
		switch {
		case strings.HasPrefix(lower, "at:"):
			parsed.Time = strings.TrimSpace(arg[len("at:"):])
		case strings.HasPrefix(lower, "on:"):
			for _, day := range strings.Split(arg[len("on:"):], ",") {
				day = strings.TrimSpace(day)
				if day != "" {
					parsed.Days = append(parsed.Days, day)
				}
			}
		case strings.HasPrefix(lower, "for:"):
			parsed.Duration = strings.TrimSpace(arg[len("for:"):])
		default:
			nameParts = append(nameParts, arg)
		}
	}
	parsed.Name = strings.TrimSpace(strings.Join(nameParts, " "))
	if parsed.Name == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a pill name"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &parsed}, nil
}

func parseDelete(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "delete requires a reminder number"}
	}
	index, err := parseIndex(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeDelete, Raw: raw, Delete: &DeleteArgs{Index: index}}, nil
}

func parseTaken(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "taken requires a reminder number"}
	}
	index, err := parseIndex(args[0])
	if err != nil {
		return Command{}, err
	}
	day := ""
	if len(args) > 1 {
		day = strings.TrimSpace(args[1])
	}
	return Command{Type: TypeTaken, Raw: raw, Taken: &TakenArgs{Index: index, Day: day}}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires a subject"}
	}
	subject := strings.ToLower(args[0])
	switch subject {
	case "today", "week", "settings":
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown show subject: %s", subject)}
	}
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Subject: subject}}, nil
}

func parseTheme(raw string, args []string) (Command, error) {
	mode := "toggle"
	if len(args) > 0 {
		mode = strings.ToLower(args[0])
	}
	switch mode {
	case "dark", "light", "toggle":
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown theme mode: %s", mode)}
	}
	return Command{Type: TypeTheme, Raw: raw, Theme: &ThemeArgs{Mode: mode}}, nil
}

// parseIndex converts the 1-based number shown in lists to a 0-based
// collection index.
func parseIndex(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid reminder number: %s", arg)}
	}
	return n - 1, nil
}
