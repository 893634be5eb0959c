// Package config reads the articlectl configuration from the environment.
// Command-line flags override it.
package config

import (
	"log/slog"
	"reflect"
)

type Config struct {
	Trace bool `env:"ARTICLE_TRACE"`

	// Sanitize pasted and imported HTML.
	Sanitize bool `env:"ARTICLE_SANITIZE"`

	Highlight         bool `env:"ARTICLE_HIGHLIGHT"`
	HighlightAnalysis bool `env:"ARTICLE_HIGHLIGHT_ANALYSE"`

	Minify bool `env:"ARTICLE_MINIFY"`

	// Files checked in parallel.
	Workers int `env:"ARTICLE_WORKERS"`

	set []setting
}

type setting struct {
	key, value string
}

// ReadConfig loads the configuration over its defaults.
func ReadConfig() *Config {
	config := &Config{
		Sanitize:          true,
		Highlight:         true,
		HighlightAnalysis: true,
		Workers:           4,
	}

	config.set = envConfig("env", config)

	if config.Workers <= 0 {
		config.Workers = 4
	}

	return config
}

// Log writes the values read from the environment at debug level. Call it
// once the logger is configured.
func (c *Config) Log(logger *slog.Logger) {
	for _, s := range c.set {
		logger.Debug("Set config value",
			slog.String("key", s.key),
			slog.String("value", s.value),
			slog.String("source", "ENVIRONMENT"),
		)
	}
}

// envConfig sets every tagged field whose variable is set and not empty.
func envConfig(key string, s interface{}) []setting {
	var set []setting
	v := reflect.ValueOf(s).Elem()
	typeParam := v.Type()
	for i := 0; i < v.NumField(); i++ {
		fName := typeParam.Field(i).Name
		fEnvTag := typeParam.Field(i).Tag.Get(key)

		if fEnvTag == "" || !Exist(fEnvTag) {
			continue
		}

		value := GetEnv(fEnvTag)
		if value == "" {
			continue
		}

		set = append(set, setting{typeParam.Name() + "." + fName, value})

		switch v.Field(i).Interface().(type) {
		case string:
			v.Field(i).SetString(value)
		case int:
			v.Field(i).SetInt(int64(GetIntEnv(fEnvTag)))
		case bool:
			v.Field(i).SetBool(GetBoolEnv(fEnvTag))
		}
	}
	return set
}
