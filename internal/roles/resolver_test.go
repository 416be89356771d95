package roles

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestResolver_GroupMode(t *testing.T) {
	r := NewResolver(DefaultConfig())

	tests := []struct {
		name        string
		groups      []string
		wantRole    string
		wantContext string
	}{
		{"student group", []string{"10a-students", "role-student"}, "student", ContextCourse},
		{"assistant outranks student", []string{"role-student", "role-assistant"}, "teacher", ContextCourse},
		{"teacher outranks assistant", []string{"role-assistant", "role-teacher"}, "editingteacher", ContextCourse},
		{"admin outranks teacher", []string{"role-teacher", "role-schooladministrator"}, "manager", ContextSystem},
		{"order of groups is irrelevant", []string{"role-schooladministrator", "role-student"}, "manager", ContextSystem},
		{"no mapped group falls back to student", []string{"10a-students"}, "student", ContextCourse},
		{"no groups at all", nil, "student", ContextCourse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := r.Resolve(User{Username: "jdoe", Groups: tt.groups})
			assert.Equal(t, tt.wantRole, a.Role)
			assert.Equal(t, tt.wantContext, a.Context)
		})
	}
}

func TestResolver_AttributeMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mode = ModeAttribute
	r := NewResolver(cfg)

	tests := []struct {
		name       string
		attributes map[string][]string
		wantRole   string
	}{
		{"student value", map[string][]string{"sophomorixRole": {"S"}}, "student"},
		{"teacher value", map[string][]string{"sophomorixRole": {"L"}}, "editingteacher"},
		{"admin value", map[string][]string{"sophomorixRole": {"A"}}, "manager"},
		{"long form value", map[string][]string{"sophomorixRole": {"teacher"}}, "editingteacher"},
		{"unknown value falls back", map[string][]string{"sophomorixRole": {"X"}}, "student"},
		{"attribute missing falls back", map[string][]string{"other": {"L"}}, "student"},
		{"attribute empty falls back", map[string][]string{"sophomorixRole": {}}, "student"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := r.Resolve(User{Username: "jdoe", Attributes: tt.attributes})
			assert.Equal(t, tt.wantRole, a.Role)
		})
	}
}

func TestResolver_CustomAttributeMappingWins(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mode = ModeAttribute
	cfg.Custom = []AttributeMapping{
		{Attribute: "sophomorixRole", Value: "L", Role: "teacherassistant", Priority: 15},
	}
	r := NewResolver(cfg)

	a := r.Resolve(User{Attributes: map[string][]string{"sophomorixRole": {"L"}}})
	assert.Equal(t, "teacherassistant", a.Role)
	assert.Equal(t, ContextCourse, a.Context)
	assert.Equal(t, 15, a.Priority)
}

func TestResolver_RealmRoleMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mode = ModeRealmRole
	r := NewResolver(cfg)

	a := r.Resolve(User{RealmRoles: []string{"role-teacher", "offline_access"}})
	assert.Equal(t, "editingteacher", a.Role)

	a = r.Resolve(User{RealmRoles: []string{"offline_access"}})
	assert.Equal(t, "student", a.Role)
	assert.Zero(t, a.Priority)
}

func TestNewResolver_ZeroModeMeansGroup(t *testing.T) {
	r := NewResolver(Config{GroupMappings: map[string]Assignment{
		"g": {Role: "manager", Context: ContextSystem, Priority: 5},
	}})
	a := r.Resolve(User{Groups: []string{"g"}})
	assert.Equal(t, "manager", a.Role)
}

func TestFromSettings(t *testing.T) {
	t.Run("nil settings yield defaults", func(t *testing.T) {
		assert.Equal(t, DefaultConfig(), FromSettings(nil))
	})

	t.Run("unset keys keep defaults", func(t *testing.T) {
		cfg := FromSettings(viper.New())
		assert.Equal(t, ModeGroup, cfg.Mode)
		assert.Equal(t, "sophomorixRole", cfg.AttributeName)
		assert.Len(t, cfg.GroupMappings, 4)
	})

	t.Run("configured keys override defaults", func(t *testing.T) {
		v := viper.New()
		v.Set("roles.mode", "attribute")
		v.Set("roles.attribute", "employeeType")
		v.Set("roles.teacher_values", []string{"staff"})
		v.Set("roles.mappings", map[string]any{
			"faculty": map[string]any{"role": "editingteacher", "context": "course", "priority": 20},
		})

		cfg := FromSettings(v)
		assert.Equal(t, ModeAttribute, cfg.Mode)
		assert.Equal(t, "employeeType", cfg.AttributeName)
		assert.Equal(t, []string{"staff"}, cfg.TeacherValues)
		assert.Equal(t, Assignment{Role: "editingteacher", Context: ContextCourse, Priority: 20}, cfg.GroupMappings["faculty"])
	})

	t.Run("invalid mode keeps default", func(t *testing.T) {
		v := viper.New()
		v.Set("roles.mode", "banana")
		assert.Equal(t, ModeGroup, FromSettings(v).Mode)
	})
}
