package parser

import (
	"strings"

	"github.com/meridios/cura/meta"
)

// ParseAccessList parses a rights cell of the shape
// "group,ROLE;group,ROLE;...". Items missing the comma, naming an unknown
// role, or carrying an empty group name are dropped with a warning; the
// remaining items are returned in input order.
func ParseAccessList(column, raw string) ([]meta.AccessEntry, []Warning) {
	var access []meta.AccessEntry
	var warnings []Warning

	for _, item := range splitItems(raw) {
		group, roleName, found := strings.Cut(item, ",")
		if !found {
			warnings = append(warnings, warnf(column, "rights item %q is missing its role, dropped", item))
			continue
		}

		group = strings.TrimSpace(group)
		if group == "" {
			warnings = append(warnings, warnf(column, "rights item %q has an empty group name, dropped", item))
			continue
		}

		role, err := meta.ParseRole(roleName)
		if err != nil {
			warnings = append(warnings, warnf(column, "rights item %q: %v, dropped", item, err))
			continue
		}

		access = append(access, meta.AccessEntry{Group: group, Role: role})
	}

	return access, warnings
}
