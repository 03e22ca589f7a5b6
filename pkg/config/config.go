// Package config defines core configuration types for marcup.
// These types are pure data structures with no dependency on the loaders that fill them.
package config

// Engine selects the parser front end.
type Engine string

const (
	// EngineMarcup is the built-in combinator grammar.
	EngineMarcup Engine = "marcup"
	// EngineGoldmark maps goldmark's CommonMark parse into the same tree.
	EngineGoldmark Engine = "goldmark"
)

// IsValid returns true if the engine is known.
func (e Engine) IsValid() bool {
	switch e {
	case EngineMarcup, EngineGoldmark:
		return true
	default:
		return false
	}
}

// Flavor specifies the Markdown flavor used by the goldmark engine.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// IsValid returns true if the flavor is known.
func (f Flavor) IsValid() bool {
	switch f {
	case FlavorCommonMark, FlavorGFM:
		return true
	default:
		return false
	}
}

// OutputFormat specifies how parsed trees are written.
type OutputFormat string

const (
	FormatJSON    OutputFormat = "json"
	FormatYAML    OutputFormat = "yaml"
	FormatTree    OutputFormat = "tree"
	FormatSummary OutputFormat = "summary"
)

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTree, FormatSummary:
		return true
	default:
		return false
	}
}

// ColorMode controls colored output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid returns true if the color mode is known.
func (c ColorMode) IsValid() bool {
	switch c {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// DefaultExtensions are the file extensions parsed when a directory is given.
//
//nolint:gochecknoglobals // Read-only default.
var DefaultExtensions = []string{".md", ".markdown"}

// Config is the root configuration structure for marcup.
type Config struct {
	// Engine selects the parser ("marcup" or "goldmark").
	Engine Engine `yaml:"engine,omitempty"`

	// Flavor selects the goldmark flavor ("commonmark" or "gfm").
	Flavor Flavor `yaml:"flavor,omitempty"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"format,omitempty"`

	// Positions includes source positions in JSON and YAML output.
	// Nil means unset, so a lower-precedence value is kept during merging.
	Positions *bool `yaml:"positions,omitempty"`

	// DetectLanguage fills in the language of fenced code without an info string.
	DetectLanguage *bool `yaml:"detect_language,omitempty"`

	// LogLevel is the minimum log level ("debug", "info", "warn", "error").
	LogLevel string `yaml:"log_level,omitempty"`

	// Extensions are the file extensions parsed when walking directories.
	Extensions []string `yaml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// CLI-level options (not persisted to config files).

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// Color controls colored output.
	Color ColorMode `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Engine:         EngineMarcup,
		Flavor:         FlavorCommonMark,
		Format:         FormatJSON,
		Positions:      Bool(false),
		DetectLanguage: Bool(false),
		LogLevel:       "warn",
		Extensions:     append([]string(nil), DefaultExtensions...),
		Color:          ColorAuto,
		Jobs:           0, // 0 means use GOMAXPROCS
	}
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// WantPositions reports whether positions should be emitted.
func (c *Config) WantPositions() bool {
	return c.Positions != nil && *c.Positions
}

// WantLanguageDetection reports whether code language detection is enabled.
func (c *Config) WantLanguageDetection() bool {
	return c.DetectLanguage != nil && *c.DetectLanguage
}
