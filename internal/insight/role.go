package insight

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=Role -linecomment -output=role_string.go

// Role is a visual channel a column can be bound to.
type Role int

const (
	_ Role = iota // zero value is not a role

	RoleX     // x
	RoleY     // y
	RoleColor // color
	RoleZ     // z
	RoleSort  // sort
	RoleFacet // facet
	RoleGroup // group

	// RoleTotal is one past the last role.
	RoleTotal = int(iota)
)

// Roles lists every role in declaration order.
func Roles() []Role {
	out := make([]Role, 0, RoleTotal-1)
	for r := RoleX; int(r) < RoleTotal; r++ {
		out = append(out, r)
	}

	return out
}

// ParseRole resolves a role name, ignoring case.
func ParseRole(s string) (Role, error) {
	name := strings.ToLower(strings.TrimSpace(s))

	names := make([]string, 0, RoleTotal-1)

	for _, r := range Roles() {
		if r.String() == name {
			return r, nil
		}

		names = append(names, r.String())
	}

	return 0, &ConfigurationError{
		Reason:      fmt.Sprintf("unknown role %q", s),
		Suggestions: Suggest(name, names),
	}
}
