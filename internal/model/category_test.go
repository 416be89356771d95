package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusync/coursemap/internal/common"
	"github.com/edusync/coursemap/internal/config"
)

func TestInferCategoryType(t *testing.T) {
	tests := []struct {
		name     string
		category string
		want     CategoryType
	}{
		{"german class keyword", "Klassen", CategoryTypeClass},
		{"english class keyword", "Class groups", CategoryTypeClass},
		{"student keyword", "Students", CategoryTypeClass},
		{"german teacher keyword", "Lehrer", CategoryTypeTeacher},
		{"teacher staff label", "Lehrkräfte", CategoryTypeTeacher},
		{"english teacher keyword", "Teachers", CategoryTypeTeacher},
		{"german project keyword", "Projekte", CategoryTypeProject},
		{"english project keyword", "Project cohorts", CategoryTypeProject},
		{"ignore keyword", "Ignorierte Gruppen", CategoryTypeIgnore},
		{"no keyword defaults to project", "Sonstiges", CategoryTypeProject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferCategoryType(tt.category))
		})
	}
}

func TestNewCategory(t *testing.T) {
	t.Run("compiles valid patterns", func(t *testing.T) {
		cat, err := NewCategory(config.CategoryConfig{
			ID:    1,
			Name:  "Klassen",
			Regex: config.StringList{"-students$"},
		})
		require.NoError(t, err)
		assert.True(t, cat.Matches("10a-students"))
		assert.False(t, cat.Matches("10a-teachers"))
	})

	t.Run("explicit type wins over inference", func(t *testing.T) {
		cat, err := NewCategory(config.CategoryConfig{
			Name:  "Lehrer", // would infer teacher
			Regex: config.StringList{"^x_"},
			Type:  "project",
		})
		require.NoError(t, err)
		assert.Equal(t, CategoryTypeProject, cat.Type)
	})

	t.Run("missing name is rejected", func(t *testing.T) {
		_, err := NewCategory(config.CategoryConfig{Regex: config.StringList{"-students$"}})
		assert.Error(t, err)
	})

	t.Run("invalid patterns are dropped individually", func(t *testing.T) {
		cat, err := NewCategory(config.CategoryConfig{
			Name:  "Klassen",
			Regex: config.StringList{"[invalid", "-students$"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"-students$"}, cat.Patterns)
	})

	t.Run("zero valid patterns rejects the category", func(t *testing.T) {
		_, err := NewCategory(config.CategoryConfig{
			Name:  "Kaputt",
			Regex: config.StringList{"[invalid", "(also broken"},
		})
		assert.ErrorIs(t, err, common.ErrNoValidPatterns)
	})
}

func TestCategory_StripPattern(t *testing.T) {
	cat, err := NewCategory(config.CategoryConfig{
		Name:  "Klassen",
		Regex: config.StringList{"-students$"},
	})
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"suffix removed", "10a-students", "10a"},
		{"non-matching name unchanged", "10a-teachers", "10a-teachers"},
		{"removal emptying the string is skipped", "-students", "-students"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cat.StripPattern(tt.input))
		})
	}
}

func TestParseCategoryType(t *testing.T) {
	got, ok := ParseCategoryType("Teacher")
	assert.True(t, ok)
	assert.Equal(t, CategoryTypeTeacher, got)

	_, ok = ParseCategoryType("")
	assert.False(t, ok)

	_, ok = ParseCategoryType("banana")
	assert.False(t, ok)
}
