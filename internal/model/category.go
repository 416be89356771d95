// Package model defines the core value objects of the group-to-course
// mapping engine. Everything here is immutable after construction.
package model

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/edusync/coursemap/internal/common"
	"github.com/edusync/coursemap/internal/config"
)

// CategoryType is the closed set of classification buckets.
type CategoryType string

const (
	// CategoryTypeClass marks class groups (e.g. "10a-students").
	CategoryTypeClass CategoryType = "class"
	// CategoryTypeTeacher marks teaching-staff groups.
	CategoryTypeTeacher CategoryType = "teacher"
	// CategoryTypeProject marks project cohort groups.
	CategoryTypeProject CategoryType = "project"
	// CategoryTypeIgnore marks groups excluded from processing.
	CategoryTypeIgnore CategoryType = "ignore"
	// CategoryTypeUnknown marks names no category matched.
	CategoryTypeUnknown CategoryType = "unknown"
)

// ParseCategoryType maps a config string onto the closed enumeration.
// Unrecognized or empty values report false.
func ParseCategoryType(s string) (CategoryType, bool) {
	t := CategoryType(strings.ToLower(s))
	switch t {
	case CategoryTypeClass, CategoryTypeTeacher, CategoryTypeProject, CategoryTypeIgnore, CategoryTypeUnknown:
		return t, true
	}
	return CategoryTypeUnknown, false
}

// InferCategoryType derives a category type from a display name using
// keyword heuristics. Naming conventions in the field mix German and
// English vocabulary, so both are checked; project is the fallback.
func InferCategoryType(name string) CategoryType {
	lower := strings.ToLower(name)
	switch {
	case containsAny(lower, "ignor"):
		return CategoryTypeIgnore
	case containsAny(lower, "lehrer", "lehrkr", "teacher"):
		return CategoryTypeTeacher
	case containsAny(lower, "klasse", "class", "schüler", "schueler", "student"):
		return CategoryTypeClass
	case containsAny(lower, "projekt", "project"):
		return CategoryTypeProject
	default:
		return CategoryTypeProject
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Category is one classification bucket: an ordered pattern set plus
// display metadata. Patterns are compiled once at construction.
type Category struct {
	ID       int
	Name     string
	Patterns []string
	Color    string
	Ignore   bool
	Type     CategoryType

	compiled []*regexp.Regexp
}

// NewCategory builds a Category from its config entry. Invalid patterns
// are dropped individually; a category left with zero valid patterns is
// rejected entirely.
func NewCategory(cfg config.CategoryConfig) (*Category, error) {
	if err := config.ValidateCategory(cfg); err != nil {
		return nil, err
	}

	c := &Category{
		ID:     cfg.ID,
		Name:   cfg.Name,
		Color:  cfg.Color,
		Ignore: cfg.Ignore,
	}

	if t, ok := ParseCategoryType(cfg.Type); ok {
		c.Type = t
	} else {
		c.Type = InferCategoryType(cfg.Name)
	}

	for _, p := range cfg.Regex {
		re, err := regexp.Compile(p)
		if err != nil {
			slog.Warn("Dropping invalid category pattern", "category", cfg.Name, "pattern", p, "error", err)
			continue
		}
		c.Patterns = append(c.Patterns, p)
		c.compiled = append(c.compiled, re)
	}
	if len(c.compiled) == 0 {
		return nil, common.ErrNoValidPatterns
	}

	return c, nil
}

// Matches reports whether any of the category's patterns matches name.
func (c *Category) Matches(name string) bool {
	for _, re := range c.compiled {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// StripPattern removes the structural part matched by one of the
// category's patterns from name. The first pattern whose removal both
// changes the string and leaves it non-empty wins; otherwise name is
// returned unchanged.
func (c *Category) StripPattern(name string) string {
	for _, re := range c.compiled {
		stripped := re.ReplaceAllString(name, "")
		if stripped != name && stripped != "" {
			return stripped
		}
	}
	return name
}

// FirstPattern returns the category's first configured pattern source.
func (c *Category) FirstPattern() string {
	if len(c.Patterns) == 0 {
		return ""
	}
	return c.Patterns[0]
}
