// Package cascade holds the static list of rows that depend on each entity,
// and applies it before the entity is deleted.
package cascade

import (
	"context"
	_ "embed"
	"fmt"
	"regexp"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"gopkg.in/yaml.v3"
)

const (
	ActionDelete  = "delete"
	ActionNullify = "nullify"

	Primary   = "primary"
	Secondary = "secondary"
)

//go:embed cascade.yaml
var defaultRules []byte

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Dependency is a table whose rows reference an entity through Column.
type Dependency struct {
	Table    string   `yaml:"table"`
	Column   string   `yaml:"column"`
	Action   string   `yaml:"action"`
	Backends []string `yaml:"backends"`
}

func (d Dependency) on(backend string) bool {
	for _, b := range d.Backends {
		if b == backend {
			return true
		}
	}
	return false
}

// Rules maps an entity table to its dependencies, in the order they are applied.
type Rules map[string][]Dependency

// Load returns the embedded rules.
func Load() (Rules, error) {
	return Parse(defaultRules)
}

// Parse reads and validates rules from YAML.
func Parse(b []byte) (Rules, error) {
	var rules Rules
	if err := yaml.Unmarshal(b, &rules); err != nil {
		return nil, errors.Wrap(err, "parsing cascade rules")
	}

	for entity, deps := range rules {
		for i, d := range deps {
			if !identifier.MatchString(d.Table) || !identifier.MatchString(d.Column) {
				return nil, errors.Errorf("cascade %s[%d]: invalid table or column", entity, i)
			}
			if d.Action != ActionDelete && d.Action != ActionNullify {
				return nil, errors.Errorf("cascade %s[%d]: unknown action %q", entity, i, d.Action)
			}
			if len(d.Backends) == 0 {
				return nil, errors.Errorf("cascade %s[%d]: no backends", entity, i)
			}
			for _, b := range d.Backends {
				if b != Primary && b != Secondary {
					return nil, errors.Errorf("cascade %s[%d]: unknown backend %q", entity, i, b)
				}
			}
		}
	}

	return rules, nil
}

// For returns the dependencies of entity on one backend.
func (r Rules) For(entity, backend string) []Dependency {
	var list []Dependency
	for _, d := range r[entity] {
		if d.on(backend) {
			list = append(list, d)
		}
	}
	return list
}

// Apply deletes or detaches every row that references id on one backend.
func (r Rules) Apply(ctx context.Context, db bun.IDB, entity, backend string, id int64) error {
	for _, d := range r.For(entity, backend) {
		var err error
		switch d.Action {
		case ActionDelete:
			_, err = db.NewDelete().
				TableExpr(d.Table).
				Where(fmt.Sprintf("%s = ?", d.Column), id).
				Exec(ctx)
		case ActionNullify:
			_, err = db.NewUpdate().
				TableExpr(d.Table).
				Set(fmt.Sprintf("%s = NULL", d.Column)).
				Where(fmt.Sprintf("%s = ?", d.Column), id).
				Exec(ctx)
		}
		if err != nil {
			return errors.Wrapf(err, "%s %s.%s on %s", d.Action, d.Table, d.Column, backend)
		}
	}
	return nil
}
