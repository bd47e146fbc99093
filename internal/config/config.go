package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/template-resolver/errors"
	"github.com/wippyai/template-resolver/instrument"
	"github.com/wippyai/template-resolver/resolver"
	"github.com/wippyai/template-resolver/wasmhelper"
)

// EnvPrefix prefixes every environment override, e.g.
// TMPLRESOLVE_RESOLVER_TEMPLATE_ONLY_COMPONENTS=false.
const EnvPrefix = "TMPLRESOLVE"

// Config holds application configuration.
type Config struct {
	Manifest string         `mapstructure:"manifest"`
	Resolver ResolverConfig `mapstructure:"resolver"`
	Log      LogConfig      `mapstructure:"log"`
	Wasm     WasmConfig     `mapstructure:"wasm"`
}

// ResolverConfig holds resolver feature flags.
type ResolverConfig struct {
	TemplateOnlyComponents  bool `mapstructure:"template_only_components"`
	CustomComponentManagers bool `mapstructure:"custom_component_managers"`
	Instrument              bool `mapstructure:"instrument"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// WasmConfig holds wasm helper runtime settings.
type WasmConfig struct {
	MemoryLimitPages uint32 `mapstructure:"memory_limit_pages"`
}

// Load reads configuration from file and env. path may be empty, in which
// case TMPLRESOLVE_CONFIG is used, then config.{toml,yaml,json} in
// ~/.config/tmplresolve and the working directory. A missing default file is
// not an error; a missing explicit file is.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("manifest", "")
	v.SetDefault("resolver.template_only_components", true)
	v.SetDefault("resolver.custom_component_managers", true)
	v.SetDefault("resolver.instrument", false)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
	v.SetDefault("wasm.memory_limit_pages", 0)

	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "tmplresolve"))
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !stderrors.As(err, &notFound) {
			return Config{}, errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, "read config")
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, "unmarshal config")
	}
	if c.Manifest != "" && !filepath.IsAbs(c.Manifest) && v.ConfigFileUsed() != "" {
		c.Manifest = filepath.Join(filepath.Dir(v.ConfigFileUsed()), c.Manifest)
	}
	return c, nil
}

// Logger builds a zap logger from the log settings.
func (c LogConfig) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "log level")
	}
	var zc zap.Config
	switch c.Format {
	case "json":
		zc = zap.NewProductionConfig()
	case "console", "":
		zc = zap.NewDevelopmentConfig()
	default:
		return nil, errors.InvalidInput(errors.PhaseConfig, fmt.Sprintf("unknown log format %q", c.Format))
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// Options converts the resolver settings. Instrumentation spans are logged
// through l when enabled.
func (c ResolverConfig) Options(l *zap.Logger) resolver.Options {
	opts := resolver.Options{
		TemplateOnlyComponents:  c.TemplateOnlyComponents,
		CustomComponentManagers: c.CustomComponentManagers,
	}
	if c.Instrument && l != nil {
		opts.Instrumenter = instrument.NewZap(l)
	}
	return opts
}

// HostConfig converts the wasm settings.
func (c WasmConfig) HostConfig() *wasmhelper.Config {
	return &wasmhelper.Config{MemoryLimitPages: c.MemoryLimitPages}
}
