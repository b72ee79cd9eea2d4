package model

import (
	"sort"
	"strings"
)

// Well-known document roles. The role set is open; callers may use others.
const (
	RoleFixtureRecap      = "fixture_recap"
	RoleBaseCP            = "base_cp"
	RoleNegotiatedClauses = "negotiated_clauses"
)

// DocumentSet maps a document role to its raw text.
type DocumentSet map[string]string

// Roles returns the roles with non-blank content, sorted.
func (d DocumentSet) Roles() []string {
	roles := make([]string, 0, len(d))
	for role, text := range d {
		if strings.TrimSpace(text) == "" {
			continue
		}
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}

// IsEmpty reports whether no role carries any content.
func (d DocumentSet) IsEmpty() bool {
	return len(d.Roles()) == 0
}
