// Package config loads generator settings from accessor-generator.yaml,
// ACCESSORGEN_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"accessor-generator/internal/classify"
	"accessor-generator/internal/gen"
	"accessor-generator/internal/host"
	"accessor-generator/internal/logging"
)

// EnvPrefix prefixes environment overrides, e.g. ACCESSORGEN_LOG_LEVEL.
const EnvPrefix = "ACCESSORGEN"

// DefaultName is the config file looked up in the working directory.
const DefaultName = "accessor-generator"

// Config is the complete generator configuration.
type Config struct {
	Log      logging.Config `mapstructure:"log"`
	Output   OutputConfig   `mapstructure:"output"`
	Classify ClassifyConfig `mapstructure:"classify"`
	// Mappings are mapping files loaded in addition to directives.
	Mappings []string `mapstructure:"mappings"`
	// Host is decoded separately; see loadHost.
	Host host.Contract `mapstructure:"-"`

	// File is the config file that was read, empty if none.
	File string `mapstructure:"-"`
}

type OutputConfig struct {
	Dir      string `mapstructure:"dir"`
	Filename string `mapstructure:"filename"`
	Package  string `mapstructure:"package"`
	Comments bool   `mapstructure:"comments"`
}

type ClassifyConfig struct {
	StrictArity bool `mapstructure:"strict_arity"`
}

// flagKeys maps command-line flags onto config keys.
var flagKeys = map[string]string{
	"log-level":    "log.level",
	"log-format":   "log.format",
	"strict-arity": "classify.strict_arity",
	"out":          "output.dir",
	"filename":     "output.filename",
	"package":      "output.package",
	"mapping":      "mappings",
}

func setDefaults(v *viper.Viper) {
	lc := logging.DefaultConfig()
	v.SetDefault("log.level", lc.Level)
	v.SetDefault("log.format", lc.Format)
	v.SetDefault("log.output", lc.Output)

	v.SetDefault("output.dir", "")
	v.SetDefault("output.filename", gen.DefaultFilename)
	v.SetDefault("output.package", "")
	v.SetDefault("output.comments", true)

	v.SetDefault("classify.strict_arity", false)
	v.SetDefault("mappings", []string{})
}

// Load reads the configuration. path selects a config file; when empty,
// accessor-generator.yaml in the working directory is used if present.
// flags may be nil; flags that were not set on the command line do not
// override file or environment values.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultName)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag --%s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{File: v.ConfigFileUsed()}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	contract, err := loadHost(cfg.File)
	if err != nil {
		return nil, err
	}

	cfg.Host = contract.WithDefaults()

	if err := cfg.Host.Validate(); err != nil {
		return nil, fmt.Errorf("host contract: %w", err)
	}

	return cfg, nil
}

// loadHost decodes the host section straight from the YAML file. Viper
// lower-cases map keys, which would turn the String and ID scalar names
// into different names.
func loadHost(file string) (host.Contract, error) {
	if file == "" {
		return host.Contract{}, nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return host.Contract{}, fmt.Errorf("error reading config file: %w", err)
	}

	var doc struct {
		Host host.Contract `yaml:"host"`
	}

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return host.Contract{}, fmt.Errorf("decoding host section: %w", err)
	}

	return doc.Host, nil
}

// Generator returns the generator configuration.
func (c *Config) Generator() gen.GeneratorConfig {
	g := gen.DefaultGeneratorConfig()

	g.OutputDir = c.Output.Dir
	g.GenerateComments = c.Output.Comments
	g.Host = c.Host
	g.Classify = classify.Options{StrictArity: c.Classify.StrictArity}

	if c.Output.Filename != "" {
		g.Filename = c.Output.Filename
	}

	if c.Output.Package != "" {
		g.PackageName = c.Output.Package
	}

	return g
}
