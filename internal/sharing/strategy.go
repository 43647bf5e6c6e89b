package sharing

import (
	"fmt"
	"strings"

	"github.com/sogladev/wow-realm-switch-utility/internal/profile"
)

// Strategy controls whether a classified directory is deduplicated across
// everything, deduplicated per base, or kept private per workspace.
type Strategy string

const (
	Global    Strategy = "global"
	Base      Strategy = "base"
	Workspace Strategy = "workspace"
)

// Strategies returns every strategy.
func Strategies() []Strategy {
	return []Strategy{Global, Base, Workspace}
}

// ParseStrategy parses a strategy name case-insensitively.
func ParseStrategy(s string) (Strategy, error) {
	want := Strategy(strings.ToLower(strings.TrimSpace(s)))
	names := make([]string, 0, len(Strategies()))
	for _, candidate := range Strategies() {
		if candidate == want {
			return candidate, nil
		}
		names = append(names, string(candidate))
	}
	return "", fmt.Errorf("unknown sharing strategy %q (want one of %s)", s, strings.Join(names, ", "))
}

// Valid reports whether s is one of the known strategies.
func (s Strategy) Valid() bool {
	for _, candidate := range Strategies() {
		if s == candidate {
			return true
		}
	}
	return false
}

// Shared reports whether paths with this strategy live under a shared root.
func (s Strategy) Shared() bool {
	return s == Global || s == Base
}

func (s Strategy) String() string {
	return string(s)
}

func (s Strategy) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid sharing strategy %q", string(s))
	}
	return []byte(s), nil
}

func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// DefaultFor returns the strategy used for a role when no rule matches:
// media is shared globally, configuration stays with the workspace.
func DefaultFor(role profile.Role) Strategy {
	if role == profile.UserMedia {
		return Global
	}
	return Workspace
}
