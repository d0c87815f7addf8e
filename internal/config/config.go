package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/livetree/internal/errors"
)

const (
	// ConfigFileName is the name of the JSON configuration file.
	ConfigFileName = "livetree.json"

	// DefaultPort is the default preview server port.
	DefaultPort = 3000

	// DefaultHost is the default preview server host.
	DefaultHost = "localhost"

	// DefaultJournal is the default journal database path.
	DefaultJournal = "livetree.db"

	// DefaultNamespace is the default metrics namespace.
	DefaultNamespace = "livetree"
)

// candidates are the file names Load looks for, in order.
var candidates = []string{ConfigFileName, "livetree.yaml", "livetree.yml"}

// Config represents the complete livetree configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `json:"logLevel,omitempty" yaml:"logLevel,omitempty"`

	// Preview contains preview server configuration.
	Preview PreviewConfig `json:"preview" yaml:"preview"`

	// Journal contains message journal configuration.
	Journal JournalConfig `json:"journal" yaml:"journal"`

	// Snapshot contains rendered HTML snapshot configuration.
	Snapshot SnapshotConfig `json:"snapshot" yaml:"snapshot"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// PreviewConfig contains preview server settings.
type PreviewConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty" yaml:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty" yaml:"port,omitempty"`
}

// JournalConfig contains message journal settings.
type JournalConfig struct {
	// Path is the bbolt database file.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// Record journals every dispatched message.
	Record bool `json:"record,omitempty" yaml:"record,omitempty"`
}

// SnapshotConfig contains snapshot sink settings. Dir and Bucket may both
// be set.
type SnapshotConfig struct {
	Dir    string `json:"dir,omitempty" yaml:"dir,omitempty"`
	Bucket string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Region string `json:"region,omitempty" yaml:"region,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Enabled   bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		LogLevel: "info",
		Preview: PreviewConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Journal: JournalConfig{
			Path: DefaultJournal,
		},
		Metrics: MetricsConfig{
			Namespace: DefaultNamespace,
			Enabled:   true,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for livetree.json, then livetree.yaml and livetree.yml.
func Load(dir string) (*Config, error) {
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("E010").
		WithDetail("No livetree.json or livetree.yaml found in " + dir).
		WithSuggestion("Create livetree.json or pass --config")
}

// LoadFile reads configuration from the specified file path. Files ending
// in .yaml or .yml are parsed as YAML, everything else as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E010").WithDetail("No config file at " + path)
		}
		return nil, errors.New("E011").Wrap(err)
	}

	cfg := New()
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("E011").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that the file is valid " + format(path))
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path, as YAML or JSON
// depending on the extension.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		// Add newline at end of file
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("E011").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E011").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Preview.Host == "" {
		c.Preview.Host = DefaultHost
	}
	if c.Preview.Port == 0 {
		c.Preview.Port = DefaultPort
	}
	if c.Journal.Path == "" {
		c.Journal.Path = DefaultJournal
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Preview.Port < 0 || c.Preview.Port > 65535 {
		return errors.New("E012").
			WithDetail("Port must be between 0 and 65535")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.Snapshot.Bucket != "" && strings.Contains(c.Snapshot.Bucket, "/") {
		return errors.New("E012").
			WithDetailf("Bucket %q must not contain '/'", c.Snapshot.Bucket).
			WithSuggestion("Put key paths in snapshot.prefix")
	}
	return nil
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, errors.New("E012").
			WithDetailf("Unknown log level %q", c.LogLevel).
			WithSuggestion("Use debug, info, warn or error")
	}
	return level, nil
}

// Addr returns the preview server address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Preview.Host, strconv.Itoa(c.Preview.Port))
}

// URL returns the preview server URL.
func (c *Config) URL() string {
	return fmt.Sprintf("http://%s", c.Addr())
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func format(path string) string {
	if isYAML(path) {
		return "YAML"
	}
	return "JSON"
}
