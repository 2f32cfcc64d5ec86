package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"pomodoro/internal/core/model"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	EnableSpeech        *bool  `yaml:"enable_speech,omitempty"`
	EnableSound         *bool  `yaml:"enable_sound,omitempty"`
	EnableNotifications *bool  `yaml:"enable_notifications,omitempty"`
	LogLevel            string `yaml:"log_level,omitempty"`
}

// LoadSettings reads preferences for appName from the user config dir.
// If the file does not exist, default settings are returned.
func LoadSettings(appName string) (model.Settings, error) {
	configPath, err := SettingsPath(appName)
	if err != nil {
		return model.DefaultSettings(), err
	}
	return LoadSettingsFile(configPath)
}

// LoadSettingsFile reads preferences from path.
func LoadSettingsFile(path string) (model.Settings, error) {
	settings := model.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes preferences for appName to the user config dir.
func SaveSettings(appName string, settings model.Settings) error {
	configPath, err := SettingsPath(appName)
	if err != nil {
		return err
	}
	return SaveSettingsFile(configPath, settings)
}

// SaveSettingsFile writes preferences to path, creating its directory.
func SaveSettingsFile(path string, settings model.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		EnableSpeech:        boolRef(settings.EnableSpeech),
		EnableSound:         boolRef(settings.EnableSound),
		EnableNotifications: boolRef(settings.EnableNotifications),
		LogLevel:            settings.LogLevel,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

// SettingsPath returns the settings file location for appName.
func SettingsPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(settings *model.Settings, fileData yamlSettings) {
	if fileData.EnableSpeech != nil {
		settings.EnableSpeech = *fileData.EnableSpeech
	}
	if fileData.EnableSound != nil {
		settings.EnableSound = *fileData.EnableSound
	}
	if fileData.EnableNotifications != nil {
		settings.EnableNotifications = *fileData.EnableNotifications
	}

	switch level := strings.ToLower(strings.TrimSpace(fileData.LogLevel)); level {
	case "debug", "info", "warn", "error":
		settings.LogLevel = level
	}
}

func boolRef(value bool) *bool {
	return &value
}
