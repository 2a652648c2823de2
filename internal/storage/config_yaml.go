package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"meridian/internal/core/model"

	"gopkg.in/yaml.v3"
)

const configFileName = "config.yaml"

const (
	minTickInterval  = 100 * time.Millisecond
	maxTickInterval  = time.Minute
	maxNeighborLimit = 100
)

type yamlConfig struct {
	TickIntervalMs int      `yaml:"tick_interval_ms"`
	DefaultZones   []string `yaml:"default_zones"`
	ShowLocal      *bool    `yaml:"show_local"`
	NeighborLimit  int      `yaml:"neighbor_limit"`
	NightStartHour *int     `yaml:"night_start_hour"`
	NightEndHour   *int     `yaml:"night_end_hour"`
}

// LoadConfig reads the world clock configuration from the user config dir.
// If the config file does not exist, default values are returned.
func LoadConfig(appName string) (model.ClockConfig, error) {
	configPath, err := ConfigPath(appName)
	if err != nil {
		return model.DefaultClockConfig(), err
	}
	return LoadConfigFrom(configPath)
}

// LoadConfigFrom reads the configuration stored at configPath.
func LoadConfigFrom(configPath string) (model.ClockConfig, error) {
	config := model.DefaultClockConfig()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return config, fmt.Errorf("read config file: %w", err)
	}

	var fileData yamlConfig
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return config, fmt.Errorf("parse config yaml: %w", err)
	}

	applyYamlConfig(&config, fileData)
	return config, nil
}

// SaveConfig writes the configuration to the user config dir.
func SaveConfig(appName string, config model.ClockConfig) error {
	configPath, err := ConfigPath(appName)
	if err != nil {
		return err
	}
	return SaveConfigTo(configPath, config)
}

// SaveConfigTo writes the configuration to configPath.
func SaveConfigTo(configPath string, config model.ClockConfig) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	showLocal := config.ShowLocal
	nightStart := config.Night.StartHour
	nightEnd := config.Night.EndHour
	fileData := yamlConfig{
		TickIntervalMs: int(config.TickInterval / time.Millisecond),
		DefaultZones:   config.DefaultZones,
		ShowLocal:      &showLocal,
		NeighborLimit:  config.NeighborLimit,
		NightStartHour: &nightStart,
		NightEndHour:   &nightEnd,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal config yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// ConfigPath returns <user config dir>/<appName>/config.yaml.
func ConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, configFileName), nil
}

func applyYamlConfig(config *model.ClockConfig, fileData yamlConfig) {
	interval := time.Duration(fileData.TickIntervalMs) * time.Millisecond
	if interval >= minTickInterval && interval <= maxTickInterval {
		config.TickInterval = interval
	}

	if fileData.DefaultZones != nil {
		zones := make([]string, 0, len(fileData.DefaultZones))
		for _, id := range fileData.DefaultZones {
			if id != "" {
				zones = append(zones, id)
			}
		}
		config.DefaultZones = zones
	}

	if fileData.ShowLocal != nil {
		config.ShowLocal = *fileData.ShowLocal
	}

	if fileData.NeighborLimit > 0 && fileData.NeighborLimit <= maxNeighborLimit {
		config.NeighborLimit = fileData.NeighborLimit
	}

	if validHour(fileData.NightStartHour) && validHour(fileData.NightEndHour) {
		config.Night = model.NightWindow{
			StartHour: *fileData.NightStartHour,
			EndHour:   *fileData.NightEndHour,
		}
	}
}

func validHour(hour *int) bool {
	return hour != nil && *hour >= 0 && *hour <= 23
}
