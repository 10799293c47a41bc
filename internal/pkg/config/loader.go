// Package config provides fail-open environment loading shared by the
// engine's long-running processes (the sweep worker, the suggest client,
// the describer). Invalid values never abort startup: the default is
// applied and the substitution is surfaced as a warning plus a metric.
package config

import (
	"fmt"
	"os"
	"time"
)

// ConfigLoadResult carries a loaded configuration value together with the
// warnings produced while loading it. FallbackApplied is true when the
// default was substituted for an invalid environment value; an unset
// variable is not a fallback.
type ConfigLoadResult struct {
	Value           interface{}
	Warnings        []string
	FallbackApplied bool
}

func loaded(v interface{}) ConfigLoadResult {
	return ConfigLoadResult{Value: v}
}

func fellBack(envKey, raw string, reason error, def interface{}) ConfigLoadResult {
	return ConfigLoadResult{
		Value:           def,
		Warnings:        []string{fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%v'", envKey, raw, reason, def)},
		FallbackApplied: true,
	}
}

// LoadEnvWithFallback reads a string environment variable, validates it
// with the given validator (nil skips validation), and falls back to
// defaultValue with a warning when validation fails.
func LoadEnvWithFallback(envKey, defaultValue string, validator func(string) error) ConfigLoadResult {
	raw := os.Getenv(envKey)
	if raw == "" {
		return loaded(defaultValue)
	}
	if validator != nil {
		if err := validator(raw); err != nil {
			return fellBack(envKey, raw, err, defaultValue)
		}
	}
	return loaded(raw)
}

// LoadEnvDuration reads a Go duration string ("30s", "5m", "1h30m") from
// the environment. Parse failures and validation failures both fall back
// to defaultValue with a warning.
func LoadEnvDuration(envKey string, defaultValue time.Duration, validator func(time.Duration) error) ConfigLoadResult {
	raw := os.Getenv(envKey)
	if raw == "" {
		return loaded(defaultValue)
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fellBack(envKey, raw, err, defaultValue)
	}
	if validator != nil {
		if err := validator(d); err != nil {
			return fellBack(envKey, raw, err, defaultValue)
		}
	}
	return loaded(d)
}

// LoadEnvInt reads an integer from the environment. Parse failures and
// validation failures both fall back to defaultValue with a warning.
func LoadEnvInt(envKey string, defaultValue int, validator func(int) error) ConfigLoadResult {
	raw := os.Getenv(envKey)
	if raw == "" {
		return loaded(defaultValue)
	}
	var n int
	if _, err := fmt.Sscanf(raw, "%d", &n); err != nil {
		return fellBack(envKey, raw, fmt.Errorf("invalid integer format"), defaultValue)
	}
	if validator != nil {
		if err := validator(n); err != nil {
			return fellBack(envKey, raw, err, defaultValue)
		}
	}
	return loaded(n)
}
