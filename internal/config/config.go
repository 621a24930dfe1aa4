package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config represents the covdiff configuration.
type Config struct {
	Format         string         `yaml:"format"`
	InputFormat    string         `yaml:"inputFormat"`
	BaselineLabel  string         `yaml:"baselineLabel"`
	ShowWarning    bool           `yaml:"showWarning"`
	FailOnDecrease bool           `yaml:"failOnDecrease"`
	TimeoutSeconds int            `yaml:"timeoutSeconds"`
	CircleCI       CircleCIConfig `yaml:"circleci"`
}

// CircleCIConfig controls where CircleCI report artifacts are looked up.
type CircleCIConfig struct {
	Project        string `yaml:"project,omitempty"`
	Job            string `yaml:"job"`
	BaselineBranch string `yaml:"baselineBranch"`
	Artifact       string `yaml:"artifact"`
}

// fileConfig mirrors Config with pointer bools so an explicit false in the
// file can be told apart from an unset key.
type fileConfig struct {
	Format         string         `yaml:"format"`
	InputFormat    string         `yaml:"inputFormat"`
	BaselineLabel  string         `yaml:"baselineLabel"`
	ShowWarning    *bool          `yaml:"showWarning"`
	FailOnDecrease *bool          `yaml:"failOnDecrease"`
	TimeoutSeconds int            `yaml:"timeoutSeconds"`
	CircleCI       CircleCIConfig `yaml:"circleci"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Format:         "markdown",
		InputFormat:    "simplecov",
		BaselineLabel:  "master",
		ShowWarning:    true,
		FailOnDecrease: false,
		TimeoutSeconds: 60,
		CircleCI: CircleCIConfig{
			Job:            "build",
			BaselineBranch: "master",
			Artifact:       "coverage/coverage.json",
		},
	}
}

// ConfigDir returns the platform-appropriate config directory for covdiff.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "covdiff"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "covdiff"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "covdiff"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "covdiff"), nil
	default:
		return filepath.Join(home, ".config", "covdiff"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LoadFile loads config from the config file, layered over defaults.
// A missing file yields the defaults.
func LoadFile() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	mergeFile(&cfg, fc)
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags (only explicitly set values should be present).
func Load(overrides map[string]string) (Config, error) {
	cfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	if err := mergeEnv(&cfg); err != nil {
		return Config{}, err
	}
	for k, v := range overrides {
		if err := SetField(&cfg, k, v); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

func mergeFile(dst *Config, src fileConfig) {
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.InputFormat != "" {
		dst.InputFormat = src.InputFormat
	}
	if src.BaselineLabel != "" {
		dst.BaselineLabel = src.BaselineLabel
	}
	if src.ShowWarning != nil {
		dst.ShowWarning = *src.ShowWarning
	}
	if src.FailOnDecrease != nil {
		dst.FailOnDecrease = *src.FailOnDecrease
	}
	if src.TimeoutSeconds > 0 {
		dst.TimeoutSeconds = src.TimeoutSeconds
	}
	if src.CircleCI.Project != "" {
		dst.CircleCI.Project = src.CircleCI.Project
	}
	if src.CircleCI.Job != "" {
		dst.CircleCI.Job = src.CircleCI.Job
	}
	if src.CircleCI.BaselineBranch != "" {
		dst.CircleCI.BaselineBranch = src.CircleCI.BaselineBranch
	}
	if src.CircleCI.Artifact != "" {
		dst.CircleCI.Artifact = src.CircleCI.Artifact
	}
}

// envKeys maps environment variables to config keys accepted by SetField.
var envKeys = []struct{ env, key string }{
	{"COVDIFF_FORMAT", "format"},
	{"COVDIFF_INPUT_FORMAT", "inputFormat"},
	{"COVDIFF_BASELINE_LABEL", "baselineLabel"},
	{"COVDIFF_SHOW_WARNING", "showWarning"},
	{"COVDIFF_FAIL_ON_DECREASE", "failOnDecrease"},
	{"COVDIFF_TIMEOUT_SECONDS", "timeoutSeconds"},
	{"COVDIFF_PROJECT", "circleci.project"},
	{"COVDIFF_JOB", "circleci.job"},
	{"COVDIFF_BASELINE_BRANCH", "circleci.baselineBranch"},
	{"COVDIFF_ARTIFACT", "circleci.artifact"},
}

// EnvOverrides returns the names of the COVDIFF_* variables currently set.
func EnvOverrides() []string {
	var names []string
	for _, e := range envKeys {
		if os.Getenv(e.env) != "" {
			names = append(names, e.env)
		}
	}
	return names
}

func mergeEnv(cfg *Config) error {
	for _, e := range envKeys {
		v := os.Getenv(e.env)
		if v == "" {
			continue
		}
		if err := SetField(cfg, e.key, v); err != nil {
			return fmt.Errorf("%s: %w", e.env, err)
		}
	}
	return nil
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "format":
		cfg.Format = value
	case "inputFormat":
		cfg.InputFormat = value
	case "baselineLabel":
		cfg.BaselineLabel = value
	case "showWarning":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("showWarning must be a boolean: %w", err)
		}
		cfg.ShowWarning = b
	case "failOnDecrease":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("failOnDecrease must be a boolean: %w", err)
		}
		cfg.FailOnDecrease = b
	case "timeoutSeconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("timeoutSeconds must be an integer: %w", err)
		}
		cfg.TimeoutSeconds = n
	case "circleci.project":
		cfg.CircleCI.Project = value
	case "circleci.job":
		cfg.CircleCI.Job = value
	case "circleci.baselineBranch":
		cfg.CircleCI.BaselineBranch = value
	case "circleci.artifact":
		cfg.CircleCI.Artifact = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
