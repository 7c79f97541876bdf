package sync

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownChoice возвращается ParseChoice для неизвестного значения
var ErrUnknownChoice = errors.New("unknown resolution choice")

// Choice выбор пользователя при разрешении конфликта
type Choice int

const (
	// KeepLocal отправляет сохраненную локальную версию на сервер
	KeepLocal Choice = iota
	// KeepRemote перезаписывает локальную запись серверной версией
	KeepRemote
	// Discard используется только в ResolutionResult для ClearConflicts
	Discard
)

func (c Choice) String() string {
	switch c {
	case KeepLocal:
		return "local"
	case KeepRemote:
		return "remote"
	case Discard:
		return "discard"
	default:
		return fmt.Sprintf("choice(%d)", int(c))
	}
}

// ParseChoice converts "local" or "remote" into a Choice
func ParseChoice(s string) (Choice, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "local", "keep-local", "l":
		return KeepLocal, nil
	case "remote", "keep-remote", "server", "r":
		return KeepRemote, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownChoice, s)
	}
}
