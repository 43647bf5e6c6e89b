package profile

import (
	"fmt"
	"strings"
)

// Role is the semantic role assigned to a path in a base tree.
type Role string

const (
	// Executable is the main client executable.
	Executable Role = "Executable"
	// BaseData is immutable game data (common*.MPQ, ...). Only BaseData is checksummed.
	BaseData Role = "BaseData"
	// MutableData is data patched per installation (patch*.MPQ, custom content).
	MutableData Role = "MutableData"
	// UserMedia is content the user produces (screenshots, videos).
	UserMedia Role = "UserMedia"
	// UserConfig is per-user configuration (WTF, addons).
	UserConfig Role = "UserConfig"
	// Ephemeral is disposable content (Cache, Logs, Errors).
	Ephemeral Role = "Ephemeral"
	// Other is anything no rule matched.
	Other Role = "Other"
)

var allRoles = []Role{Executable, BaseData, MutableData, UserMedia, UserConfig, Ephemeral, Other}

// Roles returns every role in declaration order.
func Roles() []Role {
	out := make([]Role, len(allRoles))
	copy(out, allRoles)
	return out
}

// ParseRole parses a role name case-insensitively.
func ParseRole(s string) (Role, error) {
	for _, r := range allRoles {
		if strings.EqualFold(string(r), s) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	for _, known := range allRoles {
		if r == known {
			return true
		}
	}
	return false
}

// Shareable reports whether directories of this role take part in sharing.
func (r Role) Shareable() bool {
	return r == UserMedia || r == UserConfig
}

func (r Role) String() string {
	return string(r)
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("unknown role %q", string(r))
	}
	return []byte(r), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
