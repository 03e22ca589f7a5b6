package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/marcup/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("empty config", func(t *testing.T) {
		c := &config.Config{}
		clone := c.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, c, clone)
		assert.Equal(t, c, clone)
	})

	t.Run("deep copies slices and pointers", func(t *testing.T) {
		original := config.NewConfig()
		original.Ignore = []string{"*.md", "vendor/**"}
		original.Positions = config.Bool(true)

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.Equal(t, original, clone)

		clone.Ignore[0] = "changed"
		clone.Extensions[0] = ".txt"
		*clone.Positions = false

		assert.Equal(t, "*.md", original.Ignore[0])
		assert.Equal(t, ".md", original.Extensions[0])
		assert.True(t, original.WantPositions())
	})

	t.Run("preserves CLI-only fields", func(t *testing.T) {
		original := &config.Config{Jobs: 4, Color: config.ColorNever}
		clone := original.Clone()
		assert.Equal(t, 4, clone.Jobs)
		assert.Equal(t, config.ColorNever, clone.Color)
	})
}

func TestConfigYAML(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		original := config.NewConfig()
		original.Engine = config.EngineGoldmark
		original.Flavor = config.FlavorGFM
		original.DetectLanguage = config.Bool(true)
		original.Ignore = []string{"vendor/**"}

		data, err := original.ToYAML()
		require.NoError(t, err)
		assert.Contains(t, string(data), "engine: goldmark")
		assert.Contains(t, string(data), "detect_language: true")
		assert.NotContains(t, string(data), "jobs")

		parsed, err := config.FromYAML(data)
		require.NoError(t, err)

		// CLI-only fields are not serialised.
		original.Jobs = 0
		original.Color = ""
		assert.Equal(t, original, parsed)
	})

	t.Run("nil config", func(t *testing.T) {
		var c *config.Config
		data, err := c.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("empty document", func(t *testing.T) {
		cfg, err := config.FromYAML(nil)
		require.NoError(t, err)
		assert.Equal(t, &config.Config{}, cfg)
	})

	t.Run("unset booleans stay nil", func(t *testing.T) {
		cfg, err := config.FromYAML([]byte("format: tree\n"))
		require.NoError(t, err)
		assert.Equal(t, config.FormatTree, cfg.Format)
		assert.Nil(t, cfg.Positions)
		assert.False(t, cfg.WantPositions())
	})

	t.Run("unknown key is rejected", func(t *testing.T) {
		_, err := config.FromYAML([]byte("flavour: gfm\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse yaml")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := config.FromYAML([]byte("engine: [unclosed"))
		require.Error(t, err)
	})
}

func TestConfigEnums(t *testing.T) {
	assert.True(t, config.EngineMarcup.IsValid())
	assert.True(t, config.EngineGoldmark.IsValid())
	assert.False(t, config.Engine("pandoc").IsValid())

	assert.True(t, config.FlavorGFM.IsValid())
	assert.False(t, config.Flavor("mdx").IsValid())

	assert.True(t, config.FormatTree.IsValid())
	assert.False(t, config.OutputFormat("sarif").IsValid())

	assert.True(t, config.ColorAlways.IsValid())
	assert.False(t, config.ColorMode("sometimes").IsValid())
}
