package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tailscale/hujson"

	"github.com/yaklabco/marcup/pkg/config"
)

// persisted returns the defaults with CLI-only fields cleared.
func persisted() *config.Config {
	cfg := config.NewConfig()
	cfg.Jobs = 0
	cfg.Color = ""
	cfg.Ignore = []string{"vendor/**", "node_modules/**"}
	return cfg
}

func TestGenerateTemplate_YAML(t *testing.T) {
	t.Run("full template parses to the defaults", func(t *testing.T) {
		data, err := config.GenerateTemplate(config.TemplateOptions{Format: config.TemplateYAML, Full: true})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "# marcup configuration"))

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, persisted(), cfg)
	})

	t.Run("minimal template sets only the engine", func(t *testing.T) {
		data, err := config.GenerateTemplate(config.TemplateOptions{})
		require.NoError(t, err)
		assert.Contains(t, string(data), "# format: json")
		assert.Contains(t, string(data), "#   - .md")

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, &config.Config{Engine: config.EngineMarcup}, cfg)
	})
}

func TestGenerateTemplate_JSON(t *testing.T) {
	t.Run("full template is JWCC for the defaults", func(t *testing.T) {
		data, err := config.GenerateTemplate(config.TemplateOptions{Format: config.TemplateJSON, Full: true})
		require.NoError(t, err)
		assert.Contains(t, string(data), "// Parser engine: marcup or goldmark")

		standard, err := hujson.Standardize(data)
		require.NoError(t, err)

		cfg, err := config.FromYAML(standard)
		require.NoError(t, err)
		assert.Equal(t, persisted(), cfg)
	})

	t.Run("minimal template", func(t *testing.T) {
		data, err := config.GenerateTemplate(config.TemplateOptions{Format: config.TemplateJSON})
		require.NoError(t, err)

		standard, err := hujson.Standardize(data)
		require.NoError(t, err)

		cfg, err := config.FromYAML(standard)
		require.NoError(t, err)
		assert.Equal(t, &config.Config{Engine: config.EngineMarcup}, cfg)
	})
}

func TestGenerateTemplate_UnknownFormat(t *testing.T) {
	_, err := config.GenerateTemplate(config.TemplateOptions{Format: "toml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "toml")
}
