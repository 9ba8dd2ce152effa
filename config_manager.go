package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// envVarPrefix is the prefix for all Local Agent environment variables.
const envVarPrefix = "LOCALAGENT_"

// UserConfig holds the user-tunable settings loaded from config.yaml.
type UserConfig struct {
	OllamaURL              string   `yaml:"ollama_url"`
	Model                  string   `yaml:"model"`
	SystemPrompt           string   `yaml:"system_prompt,omitempty"`
	HistoryWindow          int      `yaml:"history_window"`
	NumThread              int      `yaml:"num_thread"`
	NumGPU                 int      `yaml:"num_gpu"`
	CommandVerbs           []string `yaml:"command_verbs,omitempty"`
	ConfirmDefaultDirect   bool     `yaml:"confirm_default_direct"`
	ConfirmDefaultSelected bool     `yaml:"confirm_default_selected"`
	AuditEnabled           bool     `yaml:"audit_enabled"`
	AuditDBPath            string   `yaml:"audit_db_path,omitempty"`
	LogDir                 string   `yaml:"log_dir,omitempty"`
	HistoryFile            string   `yaml:"history_file,omitempty"`
}

// defaultConfig returns the configuration used when no config file
// exists yet. Paths are rooted under the config directory.
func defaultConfig(configDir string) UserConfig {
	return UserConfig{
		OllamaURL:              "http://localhost:11434",
		Model:                  "llama3:8b",
		HistoryWindow:          5,
		NumThread:              4,
		NumGPU:                 1,
		ConfirmDefaultDirect:   false,
		ConfirmDefaultSelected: true,
		AuditEnabled:           true,
		AuditDBPath:            filepath.Join(configDir, "executions.db"),
		LogDir:                 filepath.Join(configDir, "logs"),
		HistoryFile:            filepath.Join(configDir, "input_history"),
	}
}

// ConfigManager provides centralized configuration management backed by a
// YAML file with environment variable overrides.
type ConfigManager struct {
	configDir     string
	configPath    string
	config        UserConfig
	mutex         sync.RWMutex
	isInitialized bool
}

// NewConfigManager creates a config manager rooted at
// ~/.config/localagent.
func NewConfigManager() (*ConfigManager, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv("HOME")
	}
	return newConfigManagerAt(filepath.Join(homeDir, ".config", "localagent"))
}

// newConfigManagerAt creates a config manager rooted at an explicit
// directory. Split out for tests.
func newConfigManagerAt(configDir string) (*ConfigManager, error) {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %v", err)
	}
	return &ConfigManager{
		configDir:  configDir,
		configPath: filepath.Join(configDir, "config.yaml"),
		config:     defaultConfig(configDir),
	}, nil
}

// Initialize loads the configuration from disk, writing the defaults out
// on first run, then applies environment overrides.
func (cm *ConfigManager) Initialize() error {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	if err := cm.loadConfig(); err != nil {
		if err := cm.saveConfig(); err != nil {
			return err
		}
	}
	cm.applyEnvOverrides()
	cm.isInitialized = true
	return nil
}

// Config returns a copy of the current configuration.
func (cm *ConfigManager) Config() UserConfig {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()
	return cm.config
}

// UpdateConfig replaces the configuration and persists it.
func (cm *ConfigManager) UpdateConfig(config UserConfig) error {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()
	cm.config = config
	return cm.saveConfig()
}

// loadConfig reads the YAML config file. Caller holds the lock.
func (cm *ConfigManager) loadConfig() error {
	data, err := os.ReadFile(cm.configPath)
	if err != nil {
		return err
	}

	config := defaultConfig(cm.configDir)
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse config file: %v", err)
	}
	if config.HistoryWindow <= 0 {
		config.HistoryWindow = 5
	}
	cm.config = config
	return nil
}

// saveConfig writes the YAML config file. Caller holds the lock.
func (cm *ConfigManager) saveConfig() error {
	data, err := yaml.Marshal(cm.config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %v", err)
	}
	if err := os.WriteFile(cm.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %v", err)
	}
	return nil
}

// applyEnvOverrides lets LOCALAGENT_* environment variables override the
// file-based settings for one session. Caller holds the lock.
func (cm *ConfigManager) applyEnvOverrides() {
	cm.config.OllamaURL = getEnvString(envVarPrefix+"OLLAMA_URL", cm.config.OllamaURL)
	cm.config.Model = getEnvString(envVarPrefix+"MODEL", cm.config.Model)
	cm.config.HistoryWindow = getEnvInt(envVarPrefix+"HISTORY_WINDOW", cm.config.HistoryWindow)
	cm.config.NumThread = getEnvInt(envVarPrefix+"NUM_THREAD", cm.config.NumThread)
	cm.config.NumGPU = getEnvInt(envVarPrefix+"NUM_GPU", cm.config.NumGPU)
	cm.config.AuditEnabled = getEnvBool(envVarPrefix+"AUDIT", cm.config.AuditEnabled)
}

// getEnvString retrieves a string value from an environment variable.
// If the variable is not set, returns the defaultValue.
func getEnvString(name string, defaultValue string) string {
	val := os.Getenv(name)
	if val == "" {
		return defaultValue
	}
	return val
}

// getEnvInt retrieves an integer value from an environment variable.
// If the variable is not set or invalid, returns the defaultValue.
func getEnvInt(name string, defaultValue int) int {
	val := os.Getenv(name)
	if val == "" {
		return defaultValue
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return intVal
}

// getEnvBool retrieves a boolean value from an environment variable.
// If the variable is not set, returns the defaultValue.
func getEnvBool(name string, defaultValue bool) bool {
	val := os.Getenv(name)
	if val == "" {
		return defaultValue
	}
	val = strings.ToLower(val)
	return val == "true" || val == "1" || val == "yes"
}

// Global ConfigManager instance
var globalConfigManager *ConfigManager

// GetConfigManager returns the global ConfigManager instance.
func GetConfigManager() *ConfigManager {
	if globalConfigManager == nil {
		cm, err := NewConfigManager()
		if err != nil {
			fmt.Printf("Error initializing config manager: %v\n", err)
			return nil
		}
		if err := cm.Initialize(); err != nil {
			fmt.Printf("Error loading configuration: %v\n", err)
		}
		globalConfigManager = cm
	}
	return globalConfigManager
}
