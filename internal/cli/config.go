package cli

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/toyz/routegen/internal/errors"
	"github.com/toyz/routegen/internal/templates"
)

const (
	// ConfigFile is looked up in the project root when no config path is given
	ConfigFile = "routegen.toml"

	// EnvTarget overrides the configured target framework
	EnvTarget = "ROUTEGEN_TARGET"

	DefaultControllersDir = "controllers"
	DefaultRoutesDir      = "routes"
)

// Config holds the configuration for a generation run
type Config struct {
	// Root is the project directory holding the controllers and routes directories
	Root string `toml:"-"`

	// Target is the router framework to emit code for
	Target string `toml:"target"`

	// ControllersDir and RoutesDir are single path segments under Root.
	// Output paths swap the first for the second.
	ControllersDir string `toml:"controllers"`
	RoutesDir      string `toml:"routes"`

	// ModuleName is the custom module name for imports.
	// If empty, will be determined from go.mod file
	ModuleName string `toml:"module"`

	// ContinueOnError keeps generating the remaining modules after one fails
	ContinueOnError bool `toml:"continue_on_error"`

	// Check compares generated output against disk without writing
	Check bool `toml:"-"`

	// Verbose enables detailed logging and error reporting
	Verbose bool `toml:"-"`
}

// LoadConfig reads a routegen.toml file. A missing file is only an error when required.
func LoadConfig(path string, required bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && stderrors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, errors.WrapFileSystemError("read config", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.NewConfigurationError("file", path, fmt.Sprintf("parse config: %v", err))
	}
	return &cfg, nil
}

// Merge applies values from overlay that differ from zero values
func (c *Config) Merge(overlay *Config) {
	if overlay.Root != "" {
		c.Root = overlay.Root
	}
	if overlay.Target != "" {
		c.Target = overlay.Target
	}
	if overlay.ControllersDir != "" {
		c.ControllersDir = overlay.ControllersDir
	}
	if overlay.RoutesDir != "" {
		c.RoutesDir = overlay.RoutesDir
	}
	if overlay.ModuleName != "" {
		c.ModuleName = overlay.ModuleName
	}
	c.ContinueOnError = c.ContinueOnError || overlay.ContinueOnError
	c.Check = c.Check || overlay.Check
	c.Verbose = c.Verbose || overlay.Verbose
}

// Finalize applies defaults, loads environment overrides, and validates the configuration
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// ControllersRoot is the absolute-or-relative directory scanned for declarations
func (c *Config) ControllersRoot() string {
	return filepath.Join(c.Root, c.ControllersDir)
}

// RoutesRoot is the directory generated routers are written under
func (c *Config) RoutesRoot() string {
	return filepath.Join(c.Root, c.RoutesDir)
}

func (c *Config) loadDefaults() {
	if c.Root == "" {
		c.Root = "."
	}
	if c.Target == "" {
		c.Target = templates.DefaultTarget
	}
	if c.ControllersDir == "" {
		c.ControllersDir = DefaultControllersDir
	}
	if c.RoutesDir == "" {
		c.RoutesDir = DefaultRoutesDir
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvTarget); v != "" {
		c.Target = v
	}
}

func (c *Config) validate() error {
	if _, err := templates.LookupTarget(c.Target); err != nil {
		return errors.NewConfigurationError("target", c.Target, err.Error())
	}
	if err := validateSegment("controllers", c.ControllersDir); err != nil {
		return err
	}
	if err := validateSegment("routes", c.RoutesDir); err != nil {
		return err
	}
	if c.ControllersDir == c.RoutesDir {
		return errors.NewConfigurationError("routes", c.RoutesDir, "must differ from the controllers directory")
	}
	return nil
}

func validateSegment(field, value string) error {
	if value == "." || value == ".." || strings.ContainsAny(value, `/\`) {
		return errors.NewConfigurationError(field, value, "must be a single directory name")
	}
	return nil
}
