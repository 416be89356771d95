package engine

import (
	"log/slog"
	"regexp"
	"sort"

	"github.com/spf13/viper"

	"github.com/edusync/coursemap/internal/config"
	"github.com/edusync/coursemap/internal/model"
	"github.com/edusync/coursemap/internal/transform"
)

// Settings-store keys consulted by the processor's precedence chain.
const (
	settingInlineDocument = "naming"
	settingConfigFile     = "naming_config_file"
)

// Fallback course-creation defaults applied when a document leaves them out.
const (
	fallbackCourseFormat = "topics"
	fallbackNumSections  = 4
)

// Config selects the configuration sources for a processor instance, in
// precedence order: explicit document, inline document in the settings
// store, external JSON document, built-in defaults. Sources are never
// merged; a source yielding zero valid schemas counts as not loaded.
type Config struct {
	// Document is the explicit override configuration.
	Document *config.Document
	// Settings is the caller's structured settings snapshot; an inline
	// schema-set document may live under the "naming" key.
	Settings *viper.Viper
	// ConfigFile points at an external JSON configuration document. When
	// empty, the settings store may supply the path instead.
	ConfigFile string
}

// New constructs a processor from the first usable configuration source.
// Construction never fails; the built-in default schema set is the
// terminal source.
func New(cfg Config) *Processor {
	type loader struct {
		source config.Source
		load   func() *config.Document
	}
	loaders := []loader{
		{config.SourceOverride, func() *config.Document { return cfg.Document }},
		{config.SourceSettings, func() *config.Document { return documentFromSettings(cfg.Settings) }},
		{config.SourceFile, func() *config.Document { return documentFromFile(cfg) }},
		{config.SourceDefaults, DefaultDocument},
	}

	for _, l := range loaders {
		doc := l.load()
		if doc == nil {
			continue
		}
		p, ok := build(doc, l.source)
		if !ok {
			slog.Warn("Configuration source yields no valid schemas, falling through", "source", l.source)
			continue
		}
		slog.Debug("Processor configuration loaded", "source", l.source, "schemas", len(p.schemas))
		return p
	}

	// Unreachable: the default document always builds.
	p, _ := build(DefaultDocument(), config.SourceDefaults)
	return p
}

func documentFromSettings(v *viper.Viper) *config.Document {
	if v == nil || !v.IsSet(settingInlineDocument) {
		return nil
	}
	var doc config.Document
	if err := v.UnmarshalKey(settingInlineDocument, &doc); err != nil {
		slog.Warn("Skipping malformed inline schema document in settings", "error", err)
		return nil
	}
	return &doc
}

func documentFromFile(cfg Config) *config.Document {
	path := cfg.ConfigFile
	if path == "" && cfg.Settings != nil {
		path = cfg.Settings.GetString(settingConfigFile)
	}
	if path == "" {
		return nil
	}

	doc, err := config.LoadFile(path)
	if err != nil {
		slog.Warn("Skipping processor config file", "path", path, "error", err)
		return nil
	}
	return doc
}

// build compiles a document into a processor. It reports false when the
// document yields zero valid schemas, so the precedence chain can fall
// through.
func build(doc *config.Document, source config.Source) (*Processor, bool) {
	p := &Processor{
		transformer: transform.New(),
		defaults:    courseDefaults(doc.Defaults),
		source:      source,
	}

	for name, table := range doc.Transformers {
		p.transformer.RegisterMap(name, table)
	}

	for _, pattern := range doc.IgnorePatterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			slog.Warn("Dropping invalid ignore pattern", "pattern", pattern, "error", err)
			continue
		}
		p.ignorePatterns = append(p.ignorePatterns, pattern)
		p.ignoreCompiled = append(p.ignoreCompiled, re)
	}

	for _, sc := range doc.Schemas {
		schema, err := model.NewNamingSchema(sc)
		if err != nil {
			slog.Warn("Dropping invalid schema", "schema", sc.ID, "error", err)
			continue
		}
		if !schema.Enabled {
			slog.Debug("Skipping disabled schema", "schema", sc.ID)
			continue
		}
		p.schemas = append(p.schemas, schema)
	}
	if len(p.schemas) == 0 {
		return nil, false
	}

	sort.SliceStable(p.schemas, func(i, j int) bool {
		return p.schemas[i].Priority < p.schemas[j].Priority
	})

	return p, true
}

func courseDefaults(cfg config.DefaultsConfig) model.CourseDefaults {
	d := model.CourseDefaults{
		CourseFormat: cfg.CourseFormat,
		NumSections:  cfg.NumSections,
		Visible:      true,
	}
	if d.CourseFormat == "" {
		d.CourseFormat = fallbackCourseFormat
	}
	if d.NumSections <= 0 {
		d.NumSections = fallbackNumSections
	}
	if cfg.Visible != nil {
		d.Visible = *cfg.Visible
	}
	return d
}
