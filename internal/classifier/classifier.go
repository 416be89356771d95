// Package classifier buckets identity-directory group names into coarse
// semantic categories (class, teacher, project, ignore, unknown) without
// producing course metadata. It is the independent, coarser-grained
// counterpart to the naming-schema processor in internal/engine.
package classifier

import (
	"strings"

	"github.com/edusync/coursemap/internal/config"
	"github.com/edusync/coursemap/internal/model"
)

// defaultTeacherSuffix is used to derive paired teacher-group names when
// no teacher category is configured.
const defaultTeacherSuffix = "-teachers"

// Classifier tests names against an ordered category set. Instances are
// immutable after construction and safe for concurrent readers;
// reconfiguration means constructing a new instance.
type Classifier struct {
	categories []*model.Category
	source     config.Source
}

// Classify returns the first category in configured order whose pattern
// set matches name, or nil.
func (c *Classifier) Classify(name string) *model.Category {
	for _, cat := range c.categories {
		if cat.Matches(name) {
			return cat
		}
	}
	return nil
}

// TypeOf resolves the category type for name: ignore when the matched
// category is marked ignore, the category's type otherwise, and unknown
// when nothing matched.
func (c *Classifier) TypeOf(name string) model.CategoryType {
	cat := c.Classify(name)
	if cat == nil {
		return model.CategoryTypeUnknown
	}
	if cat.Ignore {
		return model.CategoryTypeIgnore
	}
	return cat.Type
}

// ShouldIgnore reports whether name resolves to the ignore type.
func (c *Classifier) ShouldIgnore(name string) bool {
	return c.TypeOf(name) == model.CategoryTypeIgnore
}

// IsClassGroup reports whether name resolves to a class group.
func (c *Classifier) IsClassGroup(name string) bool {
	return c.TypeOf(name) == model.CategoryTypeClass
}

// IsTeacherGroup reports whether name resolves to a teacher group.
func (c *Classifier) IsTeacherGroup(name string) bool {
	return c.TypeOf(name) == model.CategoryTypeTeacher
}

// IsProjectGroup reports whether name resolves to a project group.
func (c *Classifier) IsProjectGroup(name string) bool {
	return c.TypeOf(name) == model.CategoryTypeProject
}

// ExtractBaseName removes the matched category's structural suffix or
// prefix from name ("10a-students" -> "10a"). Names without a matching
// category, or whose patterns strip nothing, come back unchanged.
func (c *Classifier) ExtractBaseName(name string) string {
	cat := c.Classify(name)
	if cat == nil {
		return name
	}
	return cat.StripPattern(name)
}

// FindTeacherGroup locates the teacher group paired with a class group:
// the expected name is the class group's base name plus the literal suffix
// implied by the teacher category's first pattern. Candidates are searched
// case-insensitively for an exact name match.
func (c *Classifier) FindTeacherGroup(classGroupName string, candidates []model.Group) *model.Group {
	want := c.ExtractBaseName(classGroupName) + c.teacherSuffix()
	for i := range candidates {
		if strings.EqualFold(candidates[i].Name, want) {
			return &candidates[i]
		}
	}
	return nil
}

func (c *Classifier) teacherSuffix() string {
	for _, cat := range c.categories {
		if cat.Type == model.CategoryTypeTeacher && !cat.Ignore {
			if s := literalPattern(cat.FirstPattern()); s != "" {
				return s
			}
		}
	}
	return defaultTeacherSuffix
}

// literalPattern heuristically recovers the literal text of a structural
// pattern by stripping anchors and escapes ("-teachers$" -> "-teachers").
var patternMetaStripper = strings.NewReplacer("^", "", "$", "", "\\", "")

func literalPattern(pattern string) string {
	return patternMetaStripper.Replace(pattern)
}

// ClassifyGroups annotates each group with its resolved category and type
// and partitions the batch into the five buckets, preserving input order.
func (c *Classifier) ClassifyGroups(groups []model.Group) model.GroupPartition {
	var p model.GroupPartition
	for _, g := range groups {
		cg := model.ClassifiedGroup{
			Group:    g,
			Category: c.Classify(g.Name),
			Type:     c.TypeOf(g.Name),
		}
		switch cg.Type {
		case model.CategoryTypeClass:
			p.Class = append(p.Class, cg)
		case model.CategoryTypeTeacher:
			p.Teacher = append(p.Teacher, cg)
		case model.CategoryTypeProject:
			p.Project = append(p.Project, cg)
		case model.CategoryTypeIgnore:
			p.Ignore = append(p.Ignore, cg)
		default:
			p.Unknown = append(p.Unknown, cg)
		}
	}
	return p
}

// TestResult is the classification outcome for one raw name.
type TestResult struct {
	Name     string             `json:"name"`
	Category string             `json:"category,omitempty"`
	Type     model.CategoryType `json:"type"`
}

// TestReport is the dry-run output of TestPatterns.
type TestReport struct {
	Results []TestResult               `json:"results"`
	Counts  map[model.CategoryType]int `json:"counts"`
}

// TestPatterns dry-runs a batch of raw names through the category set for
// configuration validation and preview.
func (c *Classifier) TestPatterns(names []string) TestReport {
	report := TestReport{
		Results: make([]TestResult, 0, len(names)),
		Counts:  make(map[model.CategoryType]int),
	}
	for _, name := range names {
		result := TestResult{Name: name, Type: c.TypeOf(name)}
		if cat := c.Classify(name); cat != nil {
			result.Category = cat.Name
		}
		report.Results = append(report.Results, result)
		report.Counts[result.Type]++
	}
	return report
}

// Categories returns the active category set in configured order.
func (c *Classifier) Categories() []*model.Category {
	out := make([]*model.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// ConfigSource reports which precedence level supplied the active
// category set.
func (c *Classifier) ConfigSource() config.Source {
	return c.source
}
