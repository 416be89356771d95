package model

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/edusync/coursemap/internal/common"
	"github.com/edusync/coursemap/internal/config"
	"github.com/edusync/coursemap/internal/transform"
)

// Reserved capture keys added to every capture map alongside the pattern's
// named groups.
const (
	// CaptureKeyInput holds the original, unmodified group name.
	CaptureKeyInput = "input"
	// CaptureKeyMatch holds the full matched substring.
	CaptureKeyMatch = "match"
)

// DefaultPriority is assigned to schemas without an explicit priority,
// placing them after every explicitly prioritized rule.
const DefaultPriority = 1000

// MaxShortnameLength is the hard upper bound on generated shortnames.
const MaxShortnameLength = 100

// NamingSchema is one declarative rule pairing a named-capture pattern
// with the templates that generate course metadata.
type NamingSchema struct {
	ID                   string
	Description          string
	Priority             int
	Pattern              string
	CourseNameTemplate   string
	ShortnameTemplate    string
	CategoryPathTemplate string
	IDNumberPrefix       string
	RoleMap              map[string]string
	Enabled              bool

	re *regexp.Regexp
}

// NewNamingSchema builds a schema from its config entry. Schemas whose
// pattern does not compile are rejected and never participate in matching.
func NewNamingSchema(cfg config.SchemaConfig) (*NamingSchema, error) {
	if err := config.ValidateSchema(cfg); err != nil {
		return nil, err
	}

	re, err := regexp.Compile(cfg.Pattern)
	if err != nil {
		return nil, fmt.Errorf("schema %q: %w: %v", cfg.ID, common.ErrInvalidPattern, err)
	}

	priority := DefaultPriority
	if cfg.Priority != nil {
		priority = *cfg.Priority
	}
	enabled := true
	if cfg.Enabled != nil {
		enabled = *cfg.Enabled
	}

	roleMap := make(map[string]string, len(cfg.RoleMap))
	for k, v := range cfg.RoleMap {
		roleMap[k] = v
	}

	return &NamingSchema{
		ID:                   cfg.ID,
		Description:          cfg.Description,
		Priority:             priority,
		Pattern:              cfg.Pattern,
		CourseNameTemplate:   cfg.CourseName,
		ShortnameTemplate:    cfg.Shortname,
		CategoryPathTemplate: cfg.CategoryPath,
		IDNumberPrefix:       cfg.IDNumberPrefix,
		RoleMap:              roleMap,
		Enabled:              enabled,
		re:                   re,
	}, nil
}

// Matches reports whether the schema is enabled and its pattern matches name.
func (s *NamingSchema) Matches(name string) bool {
	return s.Enabled && s.re.MatchString(name)
}

// Extract returns the named-capture map for name, augmented with the
// reserved input and match keys, or false if the schema does not match.
func (s *NamingSchema) Extract(name string) (map[string]string, bool) {
	if !s.Enabled {
		return nil, false
	}
	m := s.re.FindStringSubmatch(name)
	if m == nil {
		return nil, false
	}

	captures := make(map[string]string)
	for i, groupName := range s.re.SubexpNames() {
		if i == 0 || groupName == "" {
			continue
		}
		captures[groupName] = m[i]
	}
	captures[CaptureKeyInput] = name
	captures[CaptureKeyMatch] = m[0]
	return captures, true
}

// CourseName renders the full course name from the capture map.
func (s *NamingSchema) CourseName(captures map[string]string, tr *transform.Transformer) string {
	return tr.Apply(s.CourseNameTemplate, captures)
}

// CourseShortname renders the course shortname. Whatever the template
// produces, the result is sanitized to [A-Za-z0-9_-] and hard-truncated
// to MaxShortnameLength characters.
func (s *NamingSchema) CourseShortname(captures map[string]string, tr *transform.Transformer) string {
	shortname := SanitizeIdentifier(tr.Apply(s.ShortnameTemplate, captures))
	if len(shortname) > MaxShortnameLength {
		shortname = shortname[:MaxShortnameLength]
	}
	return shortname
}

// CategoryPath renders the category placement path from the capture map.
func (s *NamingSchema) CategoryPath(captures map[string]string, tr *transform.Transformer) string {
	return tr.Apply(s.CategoryPathTemplate, captures)
}

// IDNumber derives the external-reference id from the raw group name:
// prefix plus a lowercase sanitized slug. It depends only on the raw
// input, so it stays stable even when templates change.
func (s *NamingSchema) IDNumber(groupName string) string {
	return s.IDNumberPrefix + SanitizeIdentifier(strings.ToLower(groupName))
}

// SanitizeIdentifier replaces every character outside [A-Za-z0-9_-] with
// an underscore.
func SanitizeIdentifier(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
