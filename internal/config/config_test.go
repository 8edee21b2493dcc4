package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accessor-generator/internal/gen"
	"accessor-generator/internal/host"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "accessor-generator.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Empty(t, cfg.File)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, gen.DefaultFilename, cfg.Output.Filename)
	assert.True(t, cfg.Output.Comments)
	assert.False(t, cfg.Classify.StrictArity)
	assert.Equal(t, host.Default().Guard, cfg.Host.Guard)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
  format: json
output:
  dir: generated
  filename: zz_accessors.go
  package: models
  comments: false
classify:
  strict_arity: true
mappings:
  - accessors.yaml
host:
  receiver: self
  executor: context.Context
  imports:
    - path: context
  scalars:
    ID: string
    DateTime: time.Time
  wrappers:
    Arc: "*{{.Elem}}"
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.File)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "generated", cfg.Output.Dir)
	assert.Equal(t, "zz_accessors.go", cfg.Output.Filename)
	assert.Equal(t, "models", cfg.Output.Package)
	assert.False(t, cfg.Output.Comments)
	assert.True(t, cfg.Classify.StrictArity)
	assert.Equal(t, []string{"accessors.yaml"}, cfg.Mappings)

	assert.Equal(t, "self", cfg.Host.Receiver)
	assert.Equal(t, "context.Context", cfg.Host.Executor)
	assert.Equal(t, "string", cfg.Host.Scalars["ID"])
	assert.Equal(t, "time.Time", cfg.Host.Scalars["DateTime"])
	assert.Equal(t, "int32", cfg.Host.Scalars["i32"])
	assert.Equal(t, "*{{.Elem}}", cfg.Host.Wrappers["Arc"])
	assert.Equal(t, host.Default().Guard, cfg.Host.Guard)

	g := cfg.Generator()
	assert.Equal(t, "generated", g.OutputDir)
	assert.Equal(t, "zz_accessors.go", g.Filename)
	assert.Equal(t, "models", g.PackageName)
	assert.False(t, g.GenerateComments)
	assert.True(t, g.Classify.StrictArity)

	_, err = gen.NewGenerator(g)
	require.NoError(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "log:\n  level: warn\n")

	t.Setenv("ACCESSORGEN_LOG_LEVEL", "error")
	t.Setenv("ACCESSORGEN_CLASSIFY_STRICT_ARITY", "true")

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.Log.Level)
	assert.True(t, cfg.Classify.StrictArity)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ACCESSORGEN_LOG_LEVEL", "error")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-level", "info", "")
	flags.String("log-format", "console", "")
	flags.Bool("strict-arity", false, "")
	flags.String("out", "", "")

	require.NoError(t, flags.Parse([]string{"--log-level=debug", "--strict-arity"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Classify.StrictArity)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Empty(t, cfg.Output.Dir)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.ErrorContains(t, err, "error reading config file")

	path := writeConfig(t, "log: [\n")
	_, err = Load(path, nil)
	assert.ErrorContains(t, err, "error reading config file")

	path = writeConfig(t, "host:\n  guard: \"{{.Nope}}\"\n")
	_, err = Load(path, nil)
	assert.ErrorContains(t, err, "host contract")
}
