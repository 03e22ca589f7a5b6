package config

import (
	"fmt"
	"strings"

	"github.com/tailscale/hujson"
)

// Template formats.
const (
	TemplateYAML = "yaml"
	TemplateJSON = "json"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Format is the output format: "yaml" or "json".
	// The JSON form is JWCC and keeps its comments.
	Format string

	// Full writes every setting uncommented with its default value.
	// If false, only the engine is set and the rest is left as commented examples.
	Full bool
}

// templateField documents one configuration key.
type templateField struct {
	key     string
	comment string
	yaml    string
	json    string
}

// templateFields lists the configurable keys in file order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var templateFields = []templateField{
	{"engine", "Parser engine: marcup or goldmark", `marcup`, `"marcup"`},
	{"flavor", "Markdown flavor for the goldmark engine: commonmark or gfm", `commonmark`, `"commonmark"`},
	{"format", "Output format: json, yaml, tree, or summary", `json`, `"json"`},
	{"positions", "Include source positions in json and yaml output", `false`, `false`},
	{"detect_language", "Detect the language of fenced code that has no info string", `false`, `false`},
	{"log_level", "Log level: debug, info, warn, or error", `warn`, `"warn"`},
	{"extensions", "File extensions parsed when walking directories", "\n  - .md\n  - .markdown", `[".md", ".markdown"]`},
	{"ignore", "File patterns to ignore (glob patterns)", "\n  - \"vendor/**\"\n  - \"node_modules/**\"", `["vendor/**", "node_modules/**"]`},
}

// GenerateTemplate creates a commented configuration file.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch opts.Format {
	case "", TemplateYAML:
		return generateYAMLTemplate(opts), nil
	case TemplateJSON:
		return generateJSONTemplate(opts)
	default:
		return nil, fmt.Errorf("unknown template format %q (want yaml or json)", opts.Format)
	}
}

func generateYAMLTemplate(opts TemplateOptions) []byte {
	var sb strings.Builder
	sb.WriteString(DefaultTemplateHeader())
	sb.WriteString("\n")

	for i, f := range templateFields {
		sb.WriteString("\n# " + f.comment + "\n")
		line := f.key + ":"
		if !strings.HasPrefix(f.yaml, "\n") {
			line += " "
		}
		line += f.yaml
		if opts.Full || i == 0 {
			sb.WriteString(line + "\n")
			continue
		}
		for _, l := range strings.Split(line, "\n") {
			sb.WriteString("# " + l + "\n")
		}
	}

	return []byte(sb.String())
}

func generateJSONTemplate(opts TemplateOptions) ([]byte, error) {
	var sb strings.Builder
	for _, l := range strings.Split(DefaultTemplateHeader(), "\n") {
		sb.WriteString("//" + strings.TrimPrefix(l, "#") + "\n")
	}
	sb.WriteString("{\n")

	for i, f := range templateFields {
		sb.WriteString("// " + f.comment + "\n")
		entry := fmt.Sprintf("%q: %s,", f.key, f.json)
		if !opts.Full && i > 0 {
			entry = "// " + entry
		}
		sb.WriteString(entry + "\n")
	}
	sb.WriteString("}\n")

	formatted, err := hujson.Format([]byte(sb.String()))
	if err != nil {
		return nil, fmt.Errorf("format json template: %w", err)
	}
	return formatted, nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# marcup configuration
# See: https://github.com/yaklabco/marcup`
}
