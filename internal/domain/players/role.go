package players

import (
	"encoding/json"
	"strings"
)

// Role is the squad importance tier. Higher values are more important.
type Role int

const (
	RoleUnknown Role = iota
	RoleProspect
	RoleSquad
	RoleRotation
	RoleImportant
	RoleCrucial
)

var roleCodes = map[Role]string{
	RoleCrucial:   "C",
	RoleImportant: "I",
	RoleRotation:  "R",
	RoleSquad:     "S",
	RoleProspect:  "P",
}

var roleNames = map[Role]string{
	RoleCrucial:   "Crucial",
	RoleImportant: "Important",
	RoleRotation:  "Rotation",
	RoleSquad:     "Squad",
	RoleProspect:  "Prospect",
}

// ParseRole accepts either the single-letter code or the full tier name.
func ParseRole(raw string) Role {
	raw = strings.TrimSpace(raw)
	for role, code := range roleCodes {
		if strings.EqualFold(raw, code) || strings.EqualFold(raw, roleNames[role]) {
			return role
		}
	}
	return RoleUnknown
}

// Valid reports whether r is one of the five known tiers.
func (r Role) Valid() bool {
	_, ok := roleCodes[r]
	return ok
}

// Code returns the persisted single-letter code, or "" when unknown.
func (r Role) Code() string { return roleCodes[r] }

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "Unknown"
}

// MarshalJSON stores roles as their single-letter code.
func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Code())
}

// UnmarshalJSON accepts codes or names; anything else decodes to RoleUnknown.
func (r *Role) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = ParseRole(raw)
	return nil
}
