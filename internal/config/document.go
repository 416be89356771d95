// Package config defines the declarative configuration document shared by
// the category classifier and the naming-schema processor, together with
// the validation applied to its entries at load time.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

// Version is the canonical document version emitted by ExportConfig.
const Version = "1.0"

// Document is the canonical configuration document. Both the classifier
// (categories) and the processor (schemas, defaults, ignore patterns,
// transformer tables) consume the same shape.
type Document struct {
	Version        string                       `json:"version" mapstructure:"version"`
	Categories     []CategoryConfig             `json:"categories,omitempty" mapstructure:"categories"`
	Defaults       DefaultsConfig               `json:"defaults" mapstructure:"defaults"`
	Schemas        []SchemaConfig               `json:"schemas,omitempty" mapstructure:"schemas"`
	IgnorePatterns []string                     `json:"ignore_patterns" mapstructure:"ignore_patterns"`
	Transformers   map[string]map[string]string `json:"transformers,omitempty" mapstructure:"transformers"`
}

// SchemaConfig is one declarative naming-schema entry.
type SchemaConfig struct {
	ID             string            `json:"id" mapstructure:"id" validate:"required"`
	Description    string            `json:"description,omitempty" mapstructure:"description"`
	Priority       *int              `json:"priority,omitempty" mapstructure:"priority"`
	Pattern        string            `json:"pattern" mapstructure:"pattern" validate:"required"`
	CourseName     string            `json:"course_name" mapstructure:"course_name"`
	Shortname      string            `json:"course_shortname" mapstructure:"course_shortname"`
	CategoryPath   string            `json:"category_path" mapstructure:"category_path"`
	IDNumberPrefix string            `json:"course_idnumber_prefix" mapstructure:"course_idnumber_prefix"`
	RoleMap        map[string]string `json:"role_map,omitempty" mapstructure:"role_map"`
	Enabled        *bool             `json:"enabled,omitempty" mapstructure:"enabled"`
}

// CategoryConfig is one declarative classifier category entry.
type CategoryConfig struct {
	ID      int        `json:"id" mapstructure:"id"`
	Name    string     `json:"name" mapstructure:"name" validate:"required"`
	Regex   StringList `json:"regex" mapstructure:"regex" validate:"required,min=1"`
	Color   string     `json:"color,omitempty" mapstructure:"color"`
	Ignore  bool       `json:"ignore,omitempty" mapstructure:"ignore"`
	Type    string     `json:"type,omitempty" mapstructure:"type"`
}

// DefaultsConfig carries processor-wide course creation defaults. The
// engine passes these through untouched.
type DefaultsConfig struct {
	CourseFormat string `json:"course_format" mapstructure:"course_format"`
	NumSections  int    `json:"num_sections" mapstructure:"num_sections"`
	Visible      *bool  `json:"visible" mapstructure:"visible"`
}

// StringList accepts either a single JSON string or an array of strings.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = StringList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("regex must be a string or an array of strings: %w", err)
	}
	*l = StringList(many)
	return nil
}

var validate = validator.New()

// ValidateSchema reports whether a schema entry carries all required fields.
func ValidateSchema(cfg SchemaConfig) error {
	return validate.Struct(cfg)
}

// ValidateCategory reports whether a category entry carries all required fields.
func ValidateCategory(cfg CategoryConfig) error {
	return validate.Struct(cfg)
}

// LoadFile reads and parses one JSON configuration document. Any read or
// parse error makes the source unusable as a whole; callers fall through
// to the next source in their precedence chain.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config document: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse config document: %w", err)
	}
	return &doc, nil
}
