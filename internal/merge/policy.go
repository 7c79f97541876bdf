package merge

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPolicy возвращается ParsePolicy для неизвестного значения
var ErrUnknownPolicy = errors.New("unknown conflict policy")

// Policy определяет, как разрешается расхождение записей во время прохода
type Policy int

const (
	// PolicyAutoRemoteWins разрешает расхождения автоматически:
	// побеждает удаленная версия, если она не старше локальной.
	PolicyAutoRemoteWins Policy = iota
	// PolicyManual ставит все расхождения в очередь конфликтов.
	PolicyManual
)

// String returns the config/CLI name of the policy.
func (p Policy) String() string {
	switch p {
	case PolicyAutoRemoteWins:
		return "auto"
	case PolicyManual:
		return "manual"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy converts "auto" or "manual" into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto", "auto-remote-wins", "":
		return PolicyAutoRemoteWins, nil
	case "manual":
		return PolicyManual, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}
