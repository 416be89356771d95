package classifier

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/edusync/coursemap/internal/config"
	"github.com/edusync/coursemap/internal/model"
)

// Environment variables consulted as the pattern fallback surface. Each
// holds a single pattern or multiple newline-delimited patterns.
const (
	EnvClassPattern   = "SYNC_CLASS_PATTERN"
	EnvTeacherPattern = "SYNC_TEACHER_PATTERN"
	EnvProjectPattern = "SYNC_PROJECT_PATTERN"
	EnvIgnorePattern  = "SYNC_IGNORE_PATTERN"
)

// Settings-store keys for the same surface.
const (
	settingClassPattern   = "classifier.class_pattern"
	settingTeacherPattern = "classifier.teacher_pattern"
	settingProjectPattern = "classifier.project_pattern"
	settingIgnorePattern  = "classifier.ignore_pattern"
	settingConfigFile     = "classifier.config_file"
)

// Built-in default patterns, used when every other source fails.
var defaultPatterns = bucketPatterns{
	class:   []string{"-students$"},
	teacher: []string{"-teachers$"},
	project: []string{"^p_"},
	ignore:  []string{"-parents$"},
}

// Config selects the configuration sources for a classifier instance.
// Sources are tried in precedence order and never merged: explicit
// categories, then the external JSON document, then the settings store,
// then process environment, then built-in defaults.
type Config struct {
	// Categories is the explicit override category set.
	Categories []config.CategoryConfig
	// ConfigFile points at an external JSON configuration document. When
	// empty, the settings store may supply the path instead.
	ConfigFile string
	// Settings is the caller's structured settings snapshot.
	Settings *viper.Viper
	// Environ overrides environment lookup, mainly for tests. Defaults to
	// os.Getenv.
	Environ func(string) string
}

// New constructs a classifier from the first usable configuration source.
// Construction never fails; the built-in defaults are the terminal source.
func New(cfg Config) *Classifier {
	if cfg.Environ == nil {
		cfg.Environ = os.Getenv
	}

	type loader struct {
		source config.Source
		load   func() []*model.Category
	}
	loaders := []loader{
		{config.SourceOverride, func() []*model.Category { return buildCategories(cfg.Categories) }},
		{config.SourceFile, func() []*model.Category { return categoriesFromFile(cfg) }},
		{config.SourceSettings, func() []*model.Category { return categoriesFromSettings(cfg.Settings) }},
		{config.SourceEnvironment, func() []*model.Category { return categoriesFromEnv(cfg.Environ) }},
		{config.SourceDefaults, func() []*model.Category { return defaultPatterns.categories() }},
	}

	for _, l := range loaders {
		if cats := l.load(); len(cats) > 0 {
			slog.Debug("Classifier configuration loaded", "source", l.source, "categories", len(cats))
			return &Classifier{categories: cats, source: l.source}
		}
	}

	// Unreachable: defaults always yield categories.
	return &Classifier{source: config.SourceDefaults}
}

// buildCategories compiles config entries into categories, dropping
// invalid ones. An empty result means the source is not usable.
func buildCategories(configs []config.CategoryConfig) []*model.Category {
	var out []*model.Category
	for _, cc := range configs {
		cat, err := model.NewCategory(cc)
		if err != nil {
			slog.Warn("Dropping invalid category", "category", cc.Name, "error", err)
			continue
		}
		out = append(out, cat)
	}
	return out
}

func categoriesFromFile(cfg Config) []*model.Category {
	path := cfg.ConfigFile
	if path == "" && cfg.Settings != nil {
		path = cfg.Settings.GetString(settingConfigFile)
	}
	if path == "" {
		return nil
	}

	doc, err := config.LoadFile(path)
	if err != nil {
		slog.Warn("Skipping classifier config file", "path", path, "error", err)
		return nil
	}
	return buildCategories(doc.Categories)
}

func categoriesFromSettings(v *viper.Viper) []*model.Category {
	if v == nil {
		return nil
	}
	return bucketPatterns{
		class:   patternsFromSetting(v, settingClassPattern),
		teacher: patternsFromSetting(v, settingTeacherPattern),
		project: patternsFromSetting(v, settingProjectPattern),
		ignore:  patternsFromSetting(v, settingIgnorePattern),
	}.categories()
}

// patternsFromSetting accepts either a newline-delimited string or an
// array value for a pattern setting.
func patternsFromSetting(v *viper.Viper, key string) []string {
	switch raw := v.Get(key).(type) {
	case string:
		return splitPatterns(raw)
	case []string:
		var out []string
		for _, p := range raw {
			out = append(out, splitPatterns(p)...)
		}
		return out
	case []any:
		var out []string
		for _, item := range raw {
			if s, ok := item.(string); ok {
				out = append(out, splitPatterns(s)...)
			}
		}
		return out
	default:
		return nil
	}
}

func categoriesFromEnv(environ func(string) string) []*model.Category {
	return bucketPatterns{
		class:   splitPatterns(environ(EnvClassPattern)),
		teacher: splitPatterns(environ(EnvTeacherPattern)),
		project: splitPatterns(environ(EnvProjectPattern)),
		ignore:  splitPatterns(environ(EnvIgnorePattern)),
	}.categories()
}

// splitPatterns turns a single- or newline-delimited pattern value into a
// pattern list.
func splitPatterns(value string) []string {
	var out []string
	for _, line := range strings.Split(value, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// bucketPatterns is the four-bucket pattern surface shared by the
// settings, environment, and default sources. Each bucket is usable
// standalone.
type bucketPatterns struct {
	class, teacher, project, ignore []string
}

func (b bucketPatterns) categories() []*model.Category {
	buckets := []struct {
		id       int
		name     string
		typeName string
		patterns []string
		ignored  bool
	}{
		{1, "Klassen", string(model.CategoryTypeClass), b.class, false},
		{2, "Lehrkräfte", string(model.CategoryTypeTeacher), b.teacher, false},
		{3, "Projekte", string(model.CategoryTypeProject), b.project, false},
		{4, "Ignoriert", string(model.CategoryTypeIgnore), b.ignore, true},
	}

	var configs []config.CategoryConfig
	for _, bucket := range buckets {
		if len(bucket.patterns) == 0 {
			continue
		}
		configs = append(configs, config.CategoryConfig{
			ID:     bucket.id,
			Name:   bucket.name,
			Regex:  config.StringList(bucket.patterns),
			Ignore: bucket.ignored,
			Type:   bucket.typeName,
		})
	}
	return buildCategories(configs)
}
