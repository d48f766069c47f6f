package meta

import (
	"strings"

	"github.com/meridios/cura/errors"
)

// Role is a permission level granted to a group on a record.
type Role string

// Known roles, ordered from most to least privileged. The registry's wire
// format spells these with a ROLE_ prefix; ParseRole accepts both spellings.
const (
	RoleOwner  Role = "OWNER"
	RoleAdmin  Role = "ADMIN"
	RoleEditor Role = "EDITOR"
	RoleReader Role = "READER"
)

// WireName returns the prefixed spelling used by the registry API.
func (r Role) WireName() string {
	return "ROLE_" + string(r)
}

// ParseRole maps a raw role spelling to a known Role. It is lenient about
// case, surrounding whitespace, and the ROLE_ prefix. Unknown spellings
// return an error so callers can drop the access item with a warning.
func ParseRole(raw string) (Role, error) {
	name := strings.ToUpper(strings.TrimSpace(raw))
	name = strings.TrimPrefix(name, "ROLE_")

	switch Role(name) {
	case RoleOwner, RoleAdmin, RoleEditor, RoleReader:
		return Role(name), nil
	}
	return "", errors.Newf("unknown role %q", raw)
}

// RoleFromWire normalizes a role spelling received from the registry
// without rejecting unknown values. A server newer than this client may
// grant roles we have no constant for; those must survive a fetch-merge-
// apply round trip unchanged.
func RoleFromWire(raw string) Role {
	name := strings.ToUpper(strings.TrimSpace(raw))
	return Role(strings.TrimPrefix(name, "ROLE_"))
}

// AccessEntry grants one group a role on a record.
type AccessEntry struct {
	Group string `json:"group"` // Group identifier (e.g. institute-abc)
	Role  Role   `json:"role"`  // Permission level
}
