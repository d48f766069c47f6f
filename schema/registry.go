package schema

import (
	"sort"

	"github.com/meridios/cura/errors"
)

// Registry is the immutable column-to-field mapping table. It is built once
// at startup (Builtin or Load) and safely shared across the whole run
// without locking.
type Registry struct {
	fields  map[string]FieldConfig
	columns []string // sorted column names for deterministic iteration
}

// newRegistry validates and freezes a set of field configurations.
// Duplicate columns and inconsistent configs are build errors.
func newRegistry(configs []FieldConfig) (*Registry, error) {
	fields := make(map[string]FieldConfig, len(configs))
	for _, cfg := range configs {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		if _, dup := fields[cfg.Column]; dup {
			return nil, errors.Newf("duplicate column %s in field registry", cfg.Column)
		}
		fields[cfg.Column] = cfg
	}

	columns := make([]string, 0, len(fields))
	for col := range fields {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	return &Registry{fields: fields, columns: columns}, nil
}

// Builtin returns the registry holding only the built-in field table.
// The built-in table is validated by tests, so a failure here is a
// programming error and panics.
func Builtin() *Registry {
	r, err := newRegistry(builtinFields)
	if err != nil {
		panic(errors.Wrap(err, "built-in field table is inconsistent"))
	}
	return r
}

// Load returns the built-in registry extended with the field configurations
// from the given YAML extensions file. An empty path returns the built-in
// registry unchanged. Conflicts with built-in columns and invalid extension
// configs are fatal configuration errors.
func Load(extensionsPath string) (*Registry, error) {
	if extensionsPath == "" {
		return Builtin(), nil
	}

	extra, err := loadExtensions(extensionsPath)
	if err != nil {
		return nil, err
	}

	merged := make([]FieldConfig, 0, len(builtinFields)+len(extra))
	merged = append(merged, builtinFields...)
	merged = append(merged, extra...)

	r, err := newRegistry(merged)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrConfig, "field extensions %s: %v", extensionsPath, err)
	}
	return r, nil
}

// Lookup returns the field configuration for an input column. Unknown
// columns are not an error; callers warn and ignore them.
func (r *Registry) Lookup(column string) (FieldConfig, bool) {
	cfg, ok := r.fields[column]
	return cfg, ok
}

// Columns returns all registered column names in sorted order.
func (r *Registry) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

// Len returns the number of registered columns.
func (r *Registry) Len() int {
	return len(r.fields)
}

// Filter returns the field configurations matching the given predicate,
// ordered by column name.
func (r *Registry) Filter(keep func(FieldConfig) bool) []FieldConfig {
	var out []FieldConfig
	for _, col := range r.columns {
		cfg := r.fields[col]
		if keep == nil || keep(cfg) {
			out = append(out, cfg)
		}
	}
	return out
}

// All returns every field configuration, ordered by column name.
func (r *Registry) All() []FieldConfig {
	return r.Filter(nil)
}
