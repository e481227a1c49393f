// Package config loads the application configuration.
//
// Repository information is derived from git, not configuration; the config
// file only carries overrides and credentials-adjacent settings.
package config

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// Config represents the application configuration.
type Config struct {
	Git      GitConfig      `mapstructure:"git"`
	GitHub   GitHubConfig   `mapstructure:"github"`
	Template TemplateConfig `mapstructure:"template"`
}

// GitConfig holds optional git configuration overrides.
type GitConfig struct {
	BaseBranch string `mapstructure:"base_branch"` // Optional override for the detected base branch
	Remote     string `mapstructure:"remote"`      // Remote to sync against (default: origin)
}

// GitHubConfig holds GitHub integration configuration.
type GitHubConfig struct {
	Token  string `mapstructure:"token"`   // Personal access token (GITHUB_TOKEN env var takes precedence)
	APIURL string `mapstructure:"api_url"` // Non-default API endpoint (GitHub Enterprise)
}

// TemplateConfig holds pull request template configuration.
type TemplateConfig struct {
	Path string `mapstructure:"path"` // Explicit template path, overrides repository lookup
}

// SecurityWarning represents a configuration security issue.
type SecurityWarning struct {
	Field   string
	Message string
}

// Load loads the configuration from file and environment variables.
func Load() (*Config, error) {
	config := &Config{}

	setDefaults()

	if err := viper.Unmarshal(config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	if err := expandPaths(config); err != nil {
		return nil, errors.Wrap(err, "failed to expand paths")
	}

	return config, nil
}

// CheckSecurityWarnings returns warnings for insecure configuration practices.
func CheckSecurityWarnings(config *Config) []SecurityWarning {
	var warnings []SecurityWarning

	if config.GitHub.Token != "" && os.Getenv("GITHUB_TOKEN") == "" && os.Getenv("GIT_WORKFLOW_GITHUB_TOKEN") == "" {
		warnings = append(warnings, SecurityWarning{
			Field:   "github.token",
			Message: "GitHub token is set in config file. For security, use the GITHUB_TOKEN environment variable or 'git-workflow login' instead.",
		})
	}

	return warnings
}

// setDefaults sets default configuration values.
func setDefaults() {
	viper.SetDefault("git.base_branch", "") // empty means auto-detect
	viper.SetDefault("git.remote", "origin")
	viper.SetDefault("github.token", "")
	viper.SetDefault("github.api_url", "")
	viper.SetDefault("template.path", "")
}

// expandPaths expands ~ in configured paths.
func expandPaths(config *Config) error {
	var err error

	config.Template.Path, err = expandPath(config.Template.Path)
	if err != nil {
		return err
	}

	return nil
}

// expandPath expands ~ to the home directory.
func expandPath(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, path[1:]), nil
}
