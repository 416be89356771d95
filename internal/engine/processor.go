// Package engine implements the naming-schema processor: it resolves a
// group name to the first matching schema in priority order and renders a
// course descriptor from the schema's templates. Global ignore patterns
// are checked before any schema test.
package engine

import (
	"regexp"

	"github.com/edusync/coursemap/internal/config"
	"github.com/edusync/coursemap/internal/model"
	"github.com/edusync/coursemap/internal/transform"
)

// Processor holds a compiled, priority-sorted schema set. Instances are
// immutable after construction and safe for concurrent readers; swap in a
// freshly constructed instance to pick up configuration changes.
type Processor struct {
	schemas        []*model.NamingSchema
	ignorePatterns []string
	ignoreCompiled []*regexp.Regexp
	transformer    *transform.Transformer
	defaults       model.CourseDefaults
	source         config.Source
}

// ShouldIgnore reports whether name matches any global ignore pattern.
// Ignore patterns take precedence over every schema.
func (p *Processor) ShouldIgnore(name string) bool {
	for _, re := range p.ignoreCompiled {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// FindSchema resolves name to the first schema in priority order whose
// pattern matches, or nil when the name is globally ignored or unmatched.
// Matching stops at the first hit; it is never exhaustive.
func (p *Processor) FindSchema(name string) *model.NamingSchema {
	if p.ShouldIgnore(name) {
		return nil
	}
	for _, s := range p.schemas {
		if s.Matches(name) {
			return s
		}
	}
	return nil
}

// Process maps one group onto a course descriptor, or nil when no schema
// matches. Ignored and genuinely unmatched names both come back nil;
// callers distinguish them via ShouldIgnore.
func (p *Processor) Process(name, id string) *model.CourseDescriptor {
	schema := p.FindSchema(name)
	if schema == nil {
		return nil
	}

	captures, ok := schema.Extract(name)
	if !ok {
		return nil
	}

	// Hand out a copy so descriptor mutation cannot reach the schema.
	roleMap := make(map[string]string, len(schema.RoleMap))
	for k, v := range schema.RoleMap {
		roleMap[k] = v
	}

	return &model.CourseDescriptor{
		SchemaID:        schema.ID,
		GroupName:       name,
		GroupID:         id,
		CapturedGroups:  captures,
		CourseFullname:  schema.CourseName(captures, p.transformer),
		CourseShortname: schema.CourseShortname(captures, p.transformer),
		CategoryPath:    schema.CategoryPath(captures, p.transformer),
		CourseIDNumber:  schema.IDNumber(name),
		RoleMap:         roleMap,
		Defaults:        p.defaults,
	}
}

// ProcessResult partitions a processed batch. Ignored groups (global
// ignore pattern hit) are kept apart from genuinely unmatched groups for
// operator visibility.
type ProcessResult struct {
	Matched   []model.CourseDescriptor `json:"matched"`
	Ignored   []model.Group            `json:"ignored"`
	Unmatched []model.Group            `json:"unmatched"`
}

// ProcessAll processes a batch of groups, preserving input order within
// each partition.
func (p *Processor) ProcessAll(groups []model.Group) ProcessResult {
	var result ProcessResult
	for _, g := range groups {
		if p.ShouldIgnore(g.Name) {
			result.Ignored = append(result.Ignored, g)
			continue
		}
		if desc := p.Process(g.Name, g.ID); desc != nil {
			result.Matched = append(result.Matched, *desc)
			continue
		}
		result.Unmatched = append(result.Unmatched, g)
	}
	return result
}

// Schemas returns the active schema set in priority order.
func (p *Processor) Schemas() []*model.NamingSchema {
	out := make([]*model.NamingSchema, len(p.schemas))
	copy(out, p.schemas)
	return out
}

// Transformer exposes the processor's template transformer.
func (p *Processor) Transformer() *transform.Transformer {
	return p.transformer
}

// Defaults returns the processor-wide course creation defaults.
func (p *Processor) Defaults() model.CourseDefaults {
	return p.defaults
}

// IgnorePatterns returns the global ignore pattern sources.
func (p *Processor) IgnorePatterns() []string {
	out := make([]string, len(p.ignorePatterns))
	copy(out, p.ignorePatterns)
	return out
}

// ConfigSource reports which precedence level supplied the active schema set.
func (p *Processor) ConfigSource() config.Source {
	return p.source
}
