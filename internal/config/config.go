// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/goots/pom-deployer/internal/issue"
)

const (
	// AppName is the application name.
	AppName = "pom-deployer"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// LocalConfigFileName is the config file looked up in the working directory.
	LocalConfigFileName = AppName + "." + ConfigFileExt
	// EnvPrefix prefixes environment overrides (POM_DEPLOYER_DEPLOY_SKIP, ...).
	EnvPrefix = "POM_DEPLOYER"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the pom-deployer configuration directory: %APPDATA% on
// Windows, ~/Library/Application Support on macOS and $XDG_CONFIG_HOME
// (default ~/.config) elsewhere.
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string
	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// resolveConfigPath returns the file to load: the explicit file, else
// config.cue in the config directory, else pom-deployer.cue in the working
// directory, else "".
func resolveConfigPath(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Use 'pom-deployer config init' to create a default configuration").
				Wrap(fmt.Errorf("config file not found: %w", os.ErrNotExist)).
				BuildError()
		}
		return opts.ConfigFilePath, nil
	}

	cfgDir := opts.ConfigDirPath
	if cfgDir == "" {
		dir, err := ConfigDir()
		if err != nil {
			return "", err
		}
		cfgDir = dir
	}

	if cuePath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt); fileExists(cuePath) {
		return cuePath, nil
	}
	if fileExists(LocalConfigFileName) {
		return LocalConfigFileName, nil
	}
	return "", nil
}

// loadWithOptions layers defaults, the resolved CUE file and POM_DEPLOYER_
// environment variables, then validates the result.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath, err := resolveConfigPath(opts)
	if err != nil {
		return nil, "", err
	}

	if resolvedPath != "" {
		if err := loadCUEIntoViper(v, resolvedPath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(resolvedPath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the values match the schema shown by 'pom-deployer config dump'").
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Fix the listed fields or the POM_DEPLOYER_* variables overriding them").
			Wrap(err).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("executor", string(d.Executor))
	v.SetDefault("local_repository", d.LocalRepository)
	v.SetDefault("maven.binary", d.Maven.Binary)
	v.SetDefault("maven.args", d.Maven.Args)
	v.SetDefault("maven.offline", d.Maven.Offline)
	v.SetDefault("http.timeout", d.HTTP.Timeout)
	v.SetDefault("deploy.alt_deployment_repository", d.Deploy.AltDeploymentRepository)
	v.SetDefault("deploy.alt_snapshot_deployment_repository", d.Deploy.AltSnapshotDeploymentRepository)
	v.SetDefault("deploy.skip", d.Deploy.Skip)
	v.SetDefault("deploy.error_on_missing", d.Deploy.ErrorOnMissing)
	v.SetDefault("ui.color_scheme", string(d.UI.ColorScheme))
	v.SetDefault("ui.verbose", d.UI.Verbose)
}

// loadCUEIntoViper validates a CUE file against #Config and merges it over
// the defaults already registered in v.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	configMap, err := decodeCUE(data, path)
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes the default configuration to config.cue in dir
// (ConfigDir when empty) unless the file exists. It returns the file path
// and whether it was created.
func CreateDefaultConfig(dir string) (string, bool, error) {
	if dir == "" {
		d, err := ConfigDir()
		if err != nil {
			return "", false, err
		}
		dir = d
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create config directory: %w", err)
	}

	cfgPath := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if _, err := os.Stat(cfgPath); err == nil {
		return cfgPath, false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", false, fmt.Errorf("failed to stat config file: %w", err)
	}

	if err := os.WriteFile(cfgPath, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", false, fmt.Errorf("failed to write config file: %w", err)
	}
	return cfgPath, true, nil
}

// GenerateCUE renders cfg as a config file. Passwords are never written;
// servers keep their password_env reference only.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// pom-deployer configuration\n\n")
	fmt.Fprintf(&sb, "executor: %q\n", cfg.Executor)
	if cfg.LocalRepository != "" {
		fmt.Fprintf(&sb, "local_repository: %q\n", cfg.LocalRepository)
	}

	sb.WriteString("\nmaven: {\n")
	fmt.Fprintf(&sb, "\tbinary: %q\n", cfg.Maven.Binary)
	if cfg.Maven.Args != "" {
		fmt.Fprintf(&sb, "\targs: %q\n", cfg.Maven.Args)
	}
	fmt.Fprintf(&sb, "\toffline: %v\n", cfg.Maven.Offline)
	sb.WriteString("}\n")

	sb.WriteString("\nhttp: {\n")
	fmt.Fprintf(&sb, "\ttimeout: %q\n", cfg.HTTP.Timeout.String())
	sb.WriteString("}\n")

	if len(cfg.Servers) > 0 {
		sb.WriteString("\nservers: [\n")
		for _, s := range cfg.Servers {
			fmt.Fprintf(&sb, "\t{id: %q", s.ID)
			if s.Username != "" {
				fmt.Fprintf(&sb, ", username: %q", s.Username)
			}
			if s.PasswordEnv != "" {
				fmt.Fprintf(&sb, ", password_env: %q", s.PasswordEnv)
			}
			sb.WriteString("},\n")
		}
		sb.WriteString("]\n")
	}

	sb.WriteString("\ndeploy: {\n")
	if cfg.Deploy.AltDeploymentRepository != "" {
		fmt.Fprintf(&sb, "\talt_deployment_repository: %q\n", cfg.Deploy.AltDeploymentRepository)
	}
	if cfg.Deploy.AltSnapshotDeploymentRepository != "" {
		fmt.Fprintf(&sb, "\talt_snapshot_deployment_repository: %q\n", cfg.Deploy.AltSnapshotDeploymentRepository)
	}
	fmt.Fprintf(&sb, "\tskip: %v\n", cfg.Deploy.Skip)
	fmt.Fprintf(&sb, "\terror_on_missing: %v\n", cfg.Deploy.ErrorOnMissing)
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	sb.WriteString("}\n")

	return sb.String()
}
