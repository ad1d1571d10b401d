package update

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"doseup/internal/model"
)

type RuntimeConfig struct {
	StoragePath              string `koanf:"storage_path"`
	DefaultTheme             string `koanf:"default_theme"`
	RequireRecurrenceDays    bool   `koanf:"require_recurrence_days"`
	CountdownFollowsSchedule bool   `koanf:"countdown_follows_schedule"`
	RefreshBuffer            int    `koanf:"refresh_buffer"`
	CelebrationSeconds       int    `koanf:"celebration_seconds"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		StoragePath:              "doseup.db",
		DefaultTheme:             string(model.ThemeLight),
		RequireRecurrenceDays:    true,
		CountdownFollowsSchedule: false,
		RefreshBuffer:            16,
		CelebrationSeconds:       3,
	}
}

func defaultConfigMap() map[string]interface{} {
	def := DefaultRuntimeConfig()
	return map[string]interface{}{
		"storage_path":               def.StoragePath,
		"default_theme":              def.DefaultTheme,
		"require_recurrence_days":    def.RequireRecurrenceDays,
		"countdown_follows_schedule": def.CountdownFollowsSchedule,
		"refresh_buffer":             def.RefreshBuffer,
		"celebration_seconds":        def.CelebrationSeconds,
	}
}

// LoadRuntimeConfig layers defaults, an optional YAML file, and DOSEUP_
// environment variables, in that order.
func LoadRuntimeConfig(configPath string) (RuntimeConfig, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultConfigMap(), "."), nil); err != nil {
		return RuntimeConfig{}, fmt.Errorf("load defaults: %w", err)
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return RuntimeConfig{}, fmt.Errorf("load config file: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider("DOSEUP_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "DOSEUP_"))
	}), nil); err != nil {
		return RuntimeConfig{}, fmt.Errorf("load env vars: %w", err)
	}

	var cfg RuntimeConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return RuntimeConfig{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c RuntimeConfig) Validate() error {
	if strings.TrimSpace(c.StoragePath) == "" {
		return fmt.Errorf("storage_path must not be empty")
	}
	if !model.Theme(c.DefaultTheme).IsValid() {
		return fmt.Errorf("default_theme must be %q or %q", model.ThemeLight, model.ThemeDark)
	}
	if c.RefreshBuffer <= 0 {
		return fmt.Errorf("refresh_buffer must be positive")
	}
	if c.CelebrationSeconds <= 0 {
		return fmt.Errorf("celebration_seconds must be positive")
	}
	return nil
}
