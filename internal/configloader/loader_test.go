package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/marcup/pkg/config"
)

// isolated returns load options that only see tmpDir and the given environment.
func isolated(tmpDir string, env map[string]string) LoadOptions {
	return LoadOptions{
		WorkingDir:         tmpDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		Getenv:             func(key string) string { return env[key] },
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t.TempDir(), nil))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	assert.Equal(t, config.NewConfig(), result.Config)
	assert.Empty(t, result.LoadedFrom)
	assert.Empty(t, result.Warnings)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ".marcup.yml")
	writeFile(t, configPath, "engine: goldmark\nflavor: gfm\npositions: true\n")

	result, err := Load(context.Background(), isolated(tmpDir, nil))
	require.NoError(t, err)

	assert.Equal(t, config.EngineGoldmark, result.Config.Engine)
	assert.Equal(t, config.FlavorGFM, result.Config.Flavor)
	assert.True(t, result.Config.WantPositions())
	assert.Equal(t, config.FormatJSON, result.Config.Format, "unset keys keep their defaults")
	assert.Equal(t, []string{configPath}, result.LoadedFrom)
	assert.Equal(t, configPath, result.Paths.Project)
}

func TestLoad_ProjectConfigFromSubdirectory(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755))
	writeFile(t, filepath.Join(tmpDir, ".marcup.yaml"), "format: tree\n")
	subDir := filepath.Join(tmpDir, "docs", "guide")
	require.NoError(t, os.MkdirAll(subDir, 0o755))

	result, err := Load(context.Background(), isolated(subDir, nil))
	require.NoError(t, err)
	assert.Equal(t, config.FormatTree, result.Config.Format)
}

func TestLoad_JWCCConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".marcup.json"), `{
	// Parse with goldmark.
	"engine": "goldmark",
	"ignore": [
		"vendor/**", // third-party docs
	],
}
`)

	result, err := Load(context.Background(), isolated(tmpDir, nil))
	require.NoError(t, err)
	assert.Equal(t, config.EngineGoldmark, result.Config.Engine)
	assert.Equal(t, []string{"vendor/**"}, result.Config.Ignore)
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".marcup.yml"), "engine: goldmark\nformat: yaml\n")
	customPath := filepath.Join(tmpDir, "custom-config.yml")
	writeFile(t, customPath, "format: tree\n")

	opts := isolated(tmpDir, nil)
	opts.ExplicitPath = customPath

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, config.EngineGoldmark, result.Config.Engine)
	assert.Equal(t, config.FormatTree, result.Config.Format, "explicit config beats project config")
	assert.Len(t, result.LoadedFrom, 2)
	assert.Equal(t, customPath, result.LoadedFrom[1])
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".marcup.yml"), "format: yaml\npositions: true\n")

	env := map[string]string{
		"MARCUP_FORMAT":     "tree",
		"MARCUP_POSITIONS":  "false",
		"MARCUP_JOBS":       "3",
		"MARCUP_EXTENSIONS": ".md, .mdx ,",
	}

	result, err := Load(context.Background(), isolated(tmpDir, env))
	require.NoError(t, err)

	assert.Equal(t, config.FormatTree, result.Config.Format)
	assert.False(t, result.Config.WantPositions())
	assert.Equal(t, 3, result.Config.Jobs)
	assert.Equal(t, []string{".md", ".mdx"}, result.Config.Extensions)
}

func TestLoad_IgnoreEnv(t *testing.T) {
	t.Parallel()

	opts := isolated(t.TempDir(), map[string]string{"MARCUP_ENGINE": "goldmark"})
	opts.IgnoreEnv = true

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, config.EngineMarcup, result.Config.Engine)
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	env := map[string]string{"MARCUP_FORMAT": "yaml", "MARCUP_DETECT_LANGUAGE": "true"}
	opts := isolated(t.TempDir(), env)
	opts.CLIConfig = &config.Config{
		Format:         config.FormatTree,
		DetectLanguage: config.Bool(false),
		Color:          config.ColorNever,
	}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, config.FormatTree, result.Config.Format)
	assert.False(t, result.Config.WantLanguageDetection())
	assert.Equal(t, config.ColorNever, result.Config.Color)
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		env     map[string]string
		wantErr string
	}{
		{name: "bad engine", content: "engine: pandoc\n", wantErr: "invalid engine"},
		{name: "bad yaml", content: "engine: [\n", wantErr: "load project config"},
		{name: "unknown key", content: "flavour: gfm\n", wantErr: "parse .marcup.yml"},
		{name: "bad glob", content: "ignore: ['[']\n", wantErr: "ignore[0]"},
		{name: "bad env bool", env: map[string]string{"MARCUP_POSITIONS": "maybe"}, wantErr: "MARCUP_POSITIONS"},
		{name: "bad env format", env: map[string]string{"MARCUP_FORMAT": "sarif"}, wantErr: "invalid format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			if tt.content != "" {
				writeFile(t, filepath.Join(tmpDir, ".marcup.yml"), tt.content)
			}

			_, err := Load(context.Background(), isolated(tmpDir, tt.env))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_Warnings(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".marcup.yml"), "extensions: [md]\n")

	result, err := Load(context.Background(), isolated(tmpDir, nil))
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "does not start with a dot")
	assert.Contains(t, result.Warnings[0], ".marcup.yml")
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolated(t.TempDir(), nil))
	require.ErrorIs(t, err, context.Canceled)
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	assert.Nil(t, MergeAll())

	base := config.NewConfig()
	merged := MergeAll(base,
		&config.Config{Engine: config.EngineGoldmark, Ignore: []string{"a"}},
		&config.Config{Positions: config.Bool(true)},
		&config.Config{Ignore: []string{"b"}},
	)

	assert.Equal(t, config.EngineGoldmark, merged.Engine)
	assert.True(t, merged.WantPositions())
	assert.Equal(t, []string{"b"}, merged.Ignore)
	assert.False(t, base.WantPositions(), "base is not modified")
	assert.Nil(t, base.Ignore)
}

func TestEnvVars(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "MARCUP_DETECT_LANGUAGE", GetEnvVarName("detect_language"))
	assert.Empty(t, GetEnvVarName("nope"))

	vars := ListEnvVars()
	assert.Len(t, vars, len(envMappings))
	assert.Contains(t, vars, "MARCUP_ENGINE")
}

func TestConfigPaths_Layers(t *testing.T) {
	t.Parallel()

	paths := &ConfigPaths{User: "/u/config.yaml", Explicit: "/x.yml"}
	assert.Equal(t, []Layer{
		{Scope: ScopeUser, Path: "/u/config.yaml"},
		{Scope: ScopeExplicit, Path: "/x.yml"},
	}, paths.Layers())
	assert.Empty(t, (&ConfigPaths{}).Layers())
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".marcup.yml"), "format: tree\n")
	repo := filepath.Join(tmpDir, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))
	nested := filepath.Join(repo, "docs", "guide")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	path, err := FindProjectConfig(context.Background(), nested)
	require.NoError(t, err)
	assert.Empty(t, path)

	writeFile(t, filepath.Join(repo, ".marcup.json"), "{}")
	path, err = FindProjectConfig(context.Background(), nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(repo, ".marcup.json"), path)
}

func TestIsJSONConfig(t *testing.T) {
	t.Parallel()

	assert.True(t, IsJSONConfig(".marcup.json"))
	assert.True(t, IsJSONConfig("config.jsonc"))
	assert.False(t, IsJSONConfig(".marcup.yml"))
}
