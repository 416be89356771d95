package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusync/coursemap/internal/config"
)

func TestProcessor_ExportConfig(t *testing.T) {
	p := defaultProcessor()
	doc := p.ExportConfig()

	assert.Equal(t, config.Version, doc.Version)
	assert.Equal(t, []string{"-parents$", "^role-"}, doc.IgnorePatterns)
	assert.Contains(t, doc.Transformers, "subject_map")
	require.NotNil(t, doc.Defaults.Visible)
	assert.True(t, *doc.Defaults.Visible)

	require.Len(t, doc.Schemas, 4)
	first := doc.Schemas[0]
	assert.Equal(t, "fachschaft", first.ID)
	require.NotNil(t, first.Priority)
	assert.Equal(t, 10, *first.Priority)
	require.NotNil(t, first.Enabled)
	assert.True(t, *first.Enabled)
}

func TestProcessor_ExportConfig_RoundTrip(t *testing.T) {
	original := defaultProcessor()
	rebuilt := New(Config{Document: original.ExportConfig()})

	assert.Equal(t, config.SourceOverride, rebuilt.ConfigSource())
	assert.Equal(t, original.IgnorePatterns(), rebuilt.IgnorePatterns())
	assert.Equal(t, original.Defaults(), rebuilt.Defaults())

	require.Len(t, rebuilt.Schemas(), len(original.Schemas()))
	for _, group := range []string{"10a-students", "p_alle_mathe", "p_ab_mathe_10a", "p_ag_robotik"} {
		assert.Equal(t, original.Process(group, "1"), rebuilt.Process(group, "1"), group)
	}
	assert.True(t, rebuilt.ShouldIgnore("10a-parents"))
}

func TestProcessor_ExportConfig_IsDetached(t *testing.T) {
	p := defaultProcessor()
	doc := p.ExportConfig()

	// Mutating the export must not reach into the live processor.
	doc.Schemas[0].RoleMap["default"] = "changed"
	doc.Transformers["subject_map"]["mathe"] = "changed"

	desc := p.Process("p_alle_mathe", "1")
	require.NotNil(t, desc)
	assert.Equal(t, "editingteacher", desc.RoleMap["default"])
	assert.Equal(t, "Fachschaft Mathematik", desc.CourseFullname)
}
