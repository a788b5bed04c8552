package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the settings read by the build driver: where the schema
// lives, where generated code lands, which Go package it belongs to, and
// how the codec and id allocator should behave by default.
type Config struct {
	SchemaPath   string       `yaml:"schema_path"`
	OutputDir    string       `yaml:"output_dir"`
	BasePackage  string       `yaml:"base_package"`
	LockfilePath string       `yaml:"lockfile_path"`
	Mode         string       `yaml:"mode"`
	Codec        CodecConfig  `yaml:"codec"`
	Logging      Logging      `yaml:"logging"`
	Security     SecurityKeys `yaml:"security"`
}

// CodecConfig holds the Segment Pool defaults a generated service wires
// into its runtime.
type CodecConfig struct {
	SegmentSize int `yaml:"segment_size"`
	PoolSize    int `yaml:"pool_size"`
}

// Logging contains logging configuration.
type Logging struct {
	Level string `yaml:"level"`
}

// SecurityKeys holds generated secrets for worked examples that expose an
// authenticated diagnostics endpoint.
type SecurityKeys struct {
	SystemKey string `yaml:"system_key"`
}

// DefaultConfig returns the build driver's default configuration.
func DefaultConfig() *Config {
	return &Config{
		SchemaPath:   "schema.yaml",
		OutputDir:    "./gen",
		BasePackage:  "generated",
		LockfilePath: ".mvpe.ids.lock",
		Mode:         "write",
		Codec: CodecConfig{
			SegmentSize: 8192,
			PoolSize:    1000,
		},
		Logging: Logging{
			Level: "info",
		},
		Security: SecurityKeys{
			SystemKey: "auto",
		},
	}
}

// LoadConfig loads configuration from the specified path.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path.
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateSecureKey generates a cryptographically secure random key, hex
// encoded.
func GenerateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate secure key: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// BootstrapConfig creates a new configuration with a generated system key
// if one doesn't exist yet, then persists it.
func BootstrapConfig(configPath string, outputDir string) (*Config, error) {
	config := DefaultConfig()
	if outputDir != "" {
		config.OutputDir = outputDir
	}

	systemKey, err := GenerateSecureKey(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate system key: %w", err)
	}
	config.Security.SystemKey = systemKey

	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the
// current platform.
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./mvpe.yaml"
	}

	configDir := filepath.Join(homeDir, ".config", "mvpe")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists.
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
