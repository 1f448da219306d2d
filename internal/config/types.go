// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

const (
	// ExecutorBuiltin publishes with the pure Go install/deploy implementation.
	ExecutorBuiltin ExecutorMode = "builtin"
	// ExecutorMaven delegates install/deploy to the mvn binary.
	ExecutorMaven ExecutorMode = "maven"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultMavenBinary is the mvn binary looked up on PATH.
	DefaultMavenBinary = "mvn"
	// DefaultHTTPTimeout bounds each request of the builtin HTTP transport.
	DefaultHTTPTimeout = 60 * time.Second
)

var (
	// ErrInvalidExecutorMode is returned when an ExecutorMode value is not recognized.
	ErrInvalidExecutorMode = errors.New("invalid executor mode")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidServerConfig is the sentinel error wrapped by InvalidServerConfigError.
	ErrInvalidServerConfig = errors.New("invalid server config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ExecutorMode selects the runtime that performs install and deploy.
	ExecutorMode string

	// InvalidExecutorModeError is returned when an ExecutorMode value is not recognized.
	InvalidExecutorModeError struct {
		Value ExecutorMode
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidServerConfigError is returned when a server entry is unusable.
	InvalidServerConfigError struct {
		ID     string
		Reason string
	}

	// InvalidConfigError collects the field errors of a Config.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Executor selects the install/deploy runtime.
		Executor ExecutorMode `json:"executor" mapstructure:"executor"`
		// LocalRepository overrides ~/.m2/repository.
		LocalRepository string `json:"local_repository,omitempty" mapstructure:"local_repository"`
		// Maven configures the maven executor.
		Maven MavenConfig `json:"maven" mapstructure:"maven"`
		// HTTP configures the builtin HTTP transport.
		HTTP HTTPConfig `json:"http" mapstructure:"http"`
		// Servers holds repository credentials keyed by repository id.
		Servers []ServerConfig `json:"servers,omitempty" mapstructure:"servers"`
		// Deploy holds defaults for the add-pom parameters.
		Deploy DeployConfig `json:"deploy" mapstructure:"deploy"`
		// UI configures terminal output.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// MavenConfig configures the maven executor.
	MavenConfig struct {
		// Binary is the mvn executable name or path.
		Binary string `json:"binary" mapstructure:"binary"`
		// Args are extra mvn arguments, split with shell quoting rules.
		Args string `json:"args,omitempty" mapstructure:"args"`
		// Offline adds -o to every invocation.
		Offline bool `json:"offline" mapstructure:"offline"`
	}

	// HTTPConfig configures the builtin HTTP transport.
	HTTPConfig struct {
		Timeout time.Duration `json:"timeout" mapstructure:"timeout"`
	}

	// ServerConfig holds the credentials of one repository id.
	ServerConfig struct {
		ID       string `json:"id" mapstructure:"id"`
		Username string `json:"username,omitempty" mapstructure:"username"`
		Password string `json:"password,omitempty" mapstructure:"password"`
		// PasswordEnv names an environment variable holding the password.
		// It takes precedence over Password when the variable is set.
		PasswordEnv string `json:"password_env,omitempty" mapstructure:"password_env"`
	}

	// DeployConfig holds defaults for the add-pom parameters. Flags given on
	// the command line win.
	DeployConfig struct {
		AltDeploymentRepository         string `json:"alt_deployment_repository,omitempty" mapstructure:"alt_deployment_repository"`
		AltSnapshotDeploymentRepository string `json:"alt_snapshot_deployment_repository,omitempty" mapstructure:"alt_snapshot_deployment_repository"`
		Skip                            bool   `json:"skip" mapstructure:"skip"`
		ErrorOnMissing                  bool   `json:"error_on_missing" mapstructure:"error_on_missing"`
	}

	// UIConfig configures terminal output.
	UIConfig struct {
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		Verbose     bool        `json:"verbose" mapstructure:"verbose"`
	}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Executor: ExecutorBuiltin,
		Maven: MavenConfig{
			Binary: DefaultMavenBinary,
		},
		HTTP: HTTPConfig{
			Timeout: DefaultHTTPTimeout,
		},
		Deploy: DeployConfig{
			ErrorOnMissing: true,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// Validate returns an InvalidConfigError listing every invalid field, or nil.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Executor.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.UI.ColorScheme.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.HTTP.Timeout < 0 {
		errs = append(errs, fmt.Errorf("http.timeout must not be negative, got %s", c.HTTP.Timeout))
	}
	if strings.TrimSpace(c.Maven.Binary) == "" {
		errs = append(errs, errors.New("maven.binary must not be empty"))
	}
	seen := make(map[string]bool, len(c.Servers))
	for _, s := range c.Servers {
		if err := s.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if seen[s.ID] {
			errs = append(errs, &InvalidServerConfigError{ID: s.ID, Reason: "is declared more than once"})
		}
		seen[s.ID] = true
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Server returns the credentials configured for a repository id.
func (c *Config) Server(id string) (ServerConfig, bool) {
	idx := slices.IndexFunc(c.Servers, func(s ServerConfig) bool { return s.ID == id })
	if idx < 0 {
		return ServerConfig{}, false
	}
	return c.Servers[idx], true
}

// LocalRepositoryPath returns the local repository directory: the
// configured one, or ~/.m2/repository.
func (c *Config) LocalRepositoryPath() (string, error) {
	if c.LocalRepository != "" {
		return filepath.Abs(c.LocalRepository)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".m2", "repository"), nil
}

// Credentials returns the username and password of the server. The password
// is read from PasswordEnv when that variable is set.
func (s ServerConfig) Credentials() (username, password string) {
	password = s.Password
	if s.PasswordEnv != "" {
		if v, ok := os.LookupEnv(s.PasswordEnv); ok {
			password = v
		}
	}
	return s.Username, password
}

// Validate returns an error when the server has no id.
func (s ServerConfig) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return &InvalidServerConfigError{ID: s.ID, Reason: "must have a non-empty id"}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidServerConfigError) Error() string {
	return fmt.Sprintf("server %q %s", e.ID, e.Reason)
}

// Unwrap returns ErrInvalidServerConfig for errors.Is() compatibility.
func (e *InvalidServerConfigError) Unwrap() error { return ErrInvalidServerConfig }

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// String returns the string representation of the ExecutorMode.
func (m ExecutorMode) String() string { return string(m) }

// Validate returns nil for "builtin" and "maven".
func (m ExecutorMode) Validate() error {
	switch m {
	case ExecutorBuiltin, ExecutorMaven:
		return nil
	default:
		return &InvalidExecutorModeError{Value: m}
	}
}

// Error implements the error interface.
func (e *InvalidExecutorModeError) Error() string {
	return fmt.Sprintf("invalid executor %q (valid: builtin, maven)", e.Value)
}

// Unwrap returns ErrInvalidExecutorMode for errors.Is() compatibility.
func (e *InvalidExecutorModeError) Unwrap() error { return ErrInvalidExecutorMode }

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// Validate returns nil for "auto", "dark" and "light".
func (cs ColorScheme) Validate() error {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return &InvalidColorSchemeError{Value: cs}
	}
}

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }
