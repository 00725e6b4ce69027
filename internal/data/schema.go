package data

import "fmt"

type Role string

const (
	RolePredictor Role = "predictor"
	RoleTarget    Role = "target"
	RoleExcluded  Role = "excluded"
)

type Field struct {
	Name string
	Role Role
}

// Schema assigns exactly one role to every column. Predictor sets are built
// per target: the sibling target is always excluded so one outcome is never
// used to predict the other.
type Schema struct {
	fields []Field
	roles  map[string]Role
}

func NewSchema(columns []string, targets []string, excluded []string) (*Schema, error) {
	targetSet := make(map[string]bool, len(targets))
	for _, t := range targets {
		targetSet[t] = true
	}
	excludedSet := make(map[string]bool, len(excluded))
	for _, e := range excluded {
		if targetSet[e] {
			return nil, fmt.Errorf("%w: column %q is both target and excluded", ErrDataIntegrity, e)
		}
		excludedSet[e] = true
	}

	known := make(map[string]bool, len(columns))
	fields := make([]Field, 0, len(columns))
	roles := make(map[string]Role, len(columns))

	for _, name := range columns {
		known[name] = true
		role := RolePredictor
		switch {
		case targetSet[name]:
			role = RoleTarget
		case excludedSet[name]:
			role = RoleExcluded
		}
		fields = append(fields, Field{Name: name, Role: role})
		roles[name] = role
	}

	for _, t := range targets {
		if !known[t] {
			return nil, fmt.Errorf("%w: target column %q not in dataset", ErrDataIntegrity, t)
		}
	}
	for _, e := range excluded {
		if !known[e] {
			return nil, fmt.Errorf("%w: excluded column %q not in dataset", ErrDataIntegrity, e)
		}
	}

	return &Schema{fields: fields, roles: roles}, nil
}

func (s *Schema) Targets() []string {
	var targets []string
	for _, f := range s.fields {
		if f.Role == RoleTarget {
			targets = append(targets, f.Name)
		}
	}
	return targets
}

func (s *Schema) Role(name string) (Role, bool) {
	role, ok := s.roles[name]
	return role, ok
}

// PredictorsFor returns the predictor columns for the given target, in schema
// order. Every other target column is excluded from the result.
func (s *Schema) PredictorsFor(target string) ([]string, error) {
	role, ok := s.roles[target]
	if !ok {
		return nil, fmt.Errorf("%w: unknown target %q", ErrDataIntegrity, target)
	}
	if role != RoleTarget {
		return nil, fmt.Errorf("%w: column %q is not a target", ErrDataIntegrity, target)
	}

	var predictors []string
	for _, f := range s.fields {
		if f.Role == RolePredictor {
			predictors = append(predictors, f.Name)
		}
	}
	return predictors, nil
}
