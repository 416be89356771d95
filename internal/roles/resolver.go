// Package roles resolves a directory user onto a target-system role
// assignment. Resolution is pure configuration lookup: group membership,
// a role attribute, or realm roles map to an assignment, and the highest
// priority wins when several mappings apply.
package roles

import "github.com/spf13/viper"

// Mode selects how a user's role is derived.
type Mode string

const (
	// ModeGroup derives the role from group membership (default).
	ModeGroup Mode = "group"
	// ModeAttribute derives the role from a configured user attribute.
	ModeAttribute Mode = "attribute"
	// ModeRealmRole derives the role from directory realm roles.
	ModeRealmRole Mode = "realm_role"
)

// Context distinguishes course-level from system-level assignments.
const (
	ContextCourse = "course"
	ContextSystem = "system"
)

// Assignment is a resolved role with its enrolment context and the
// priority that won it.
type Assignment struct {
	Role     string `json:"role"`
	Context  string `json:"context"`
	Priority int    `json:"priority"`
}

// AttributeMapping maps one attribute value onto an assignment.
type AttributeMapping struct {
	Attribute string `json:"keycloak_attribute" mapstructure:"keycloak_attribute"`
	Value     string `json:"attribute_value" mapstructure:"attribute_value"`
	Role      string `json:"role" mapstructure:"role"`
	Context   string `json:"context" mapstructure:"context"`
	Priority  int    `json:"priority" mapstructure:"priority"`
}

// User is the directory-user snapshot the resolver inspects. Callers fill
// in whatever their mode needs.
type User struct {
	Username   string
	Groups     []string
	Attributes map[string][]string
	RealmRoles []string
}

// Config drives a Resolver. GroupMappings double as the realm-role
// mappings in realm_role mode.
type Config struct {
	Mode          Mode
	GroupMappings map[string]Assignment
	AttributeName string
	Custom        []AttributeMapping
	StudentValues []string
	TeacherValues []string
	AdminValues   []string
}

// DefaultConfig mirrors the stock school deployment: students enrol as
// students, assistants as non-editing teachers, teachers as editing
// teachers, and school administrators as system-level managers.
func DefaultConfig() Config {
	return Config{
		Mode:          ModeGroup,
		AttributeName: "sophomorixRole",
		GroupMappings: map[string]Assignment{
			"role-student":             {Role: "student", Context: ContextCourse, Priority: 10},
			"role-assistant":           {Role: "teacher", Context: ContextCourse, Priority: 15},
			"role-teacher":             {Role: "editingteacher", Context: ContextCourse, Priority: 20},
			"role-schooladministrator": {Role: "manager", Context: ContextSystem, Priority: 30},
		},
		StudentValues: []string{"S", "student"},
		TeacherValues: []string{"L", "teacher"},
		AdminValues:   []string{"A", "admin", "schooladministrator"},
	}
}

// FromSettings reads the resolver surface from the settings store,
// falling back to DefaultConfig for anything unset. Recognized keys live
// under "roles.": mode, attribute, mappings, custom, student_values,
// teacher_values, admin_values.
func FromSettings(v *viper.Viper) Config {
	cfg := DefaultConfig()
	if v == nil {
		return cfg
	}

	if mode := Mode(v.GetString("roles.mode")); mode == ModeGroup || mode == ModeAttribute || mode == ModeRealmRole {
		cfg.Mode = mode
	}
	if attr := v.GetString("roles.attribute"); attr != "" {
		cfg.AttributeName = attr
	}
	if v.IsSet("roles.mappings") {
		var mappings map[string]Assignment
		if err := v.UnmarshalKey("roles.mappings", &mappings); err == nil && len(mappings) > 0 {
			cfg.GroupMappings = mappings
		}
	}
	if v.IsSet("roles.custom") {
		var custom []AttributeMapping
		if err := v.UnmarshalKey("roles.custom", &custom); err == nil {
			cfg.Custom = custom
		}
	}
	if vals := v.GetStringSlice("roles.student_values"); len(vals) > 0 {
		cfg.StudentValues = vals
	}
	if vals := v.GetStringSlice("roles.teacher_values"); len(vals) > 0 {
		cfg.TeacherValues = vals
	}
	if vals := v.GetStringSlice("roles.admin_values"); len(vals) > 0 {
		cfg.AdminValues = vals
	}
	return cfg
}

// fallbackAssignment is returned when nothing maps: course-level student
// with zero priority, so any configured mapping outranks it.
func fallbackAssignment() Assignment {
	return Assignment{Role: "student", Context: ContextCourse, Priority: 0}
}

// Resolver resolves role assignments. Immutable after construction.
type Resolver struct {
	cfg Config
}

// NewResolver builds a resolver; a zero Mode means group mode.
func NewResolver(cfg Config) *Resolver {
	if cfg.Mode == "" {
		cfg.Mode = ModeGroup
	}
	return &Resolver{cfg: cfg}
}

// Resolve determines the user's role assignment under the configured mode.
func (r *Resolver) Resolve(u User) Assignment {
	switch r.cfg.Mode {
	case ModeAttribute:
		return r.fromAttribute(u)
	case ModeRealmRole:
		return r.best(u.RealmRoles)
	default:
		return r.best(u.Groups)
	}
}

// best picks the highest-priority assignment among the mapped keys.
func (r *Resolver) best(keys []string) Assignment {
	result := fallbackAssignment()
	for _, key := range keys {
		if a, ok := r.cfg.GroupMappings[key]; ok && a.Priority > result.Priority {
			result = a
		}
	}
	return result
}

func (r *Resolver) fromAttribute(u User) Assignment {
	values, ok := u.Attributes[r.cfg.AttributeName]
	if !ok || len(values) == 0 {
		return fallbackAssignment()
	}
	value := values[0]

	// Custom attribute-value mappings win over the built-in value lists.
	for _, m := range r.cfg.Custom {
		if m.Attribute == r.cfg.AttributeName && m.Value == value {
			ctx := m.Context
			if ctx == "" {
				ctx = ContextCourse
			}
			return Assignment{Role: m.Role, Context: ctx, Priority: m.Priority}
		}
	}

	switch {
	case contains(r.cfg.AdminValues, value):
		return Assignment{Role: "manager", Context: ContextSystem, Priority: 30}
	case contains(r.cfg.TeacherValues, value):
		return Assignment{Role: "editingteacher", Context: ContextCourse, Priority: 20}
	case contains(r.cfg.StudentValues, value):
		return Assignment{Role: "student", Context: ContextCourse, Priority: 10}
	}
	return fallbackAssignment()
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
