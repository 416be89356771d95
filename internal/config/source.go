package config

// Source identifies which level of a precedence chain supplied the active
// configuration of a classifier or processor instance.
type Source string

const (
	// SourceOverride marks configuration passed explicitly to a constructor.
	SourceOverride Source = "override"
	// SourceSettings marks configuration read from the structured settings store.
	SourceSettings Source = "settings"
	// SourceFile marks configuration read from an external JSON document.
	SourceFile Source = "file"
	// SourceEnvironment marks configuration read from process environment variables.
	SourceEnvironment Source = "environment"
	// SourceDefaults marks the built-in default configuration.
	SourceDefaults Source = "defaults"
)
