package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Constants for default values.
const (
	DefaultGHuntPath    = "ghunt"
	DefaultPythonPath   = "python3"
	DefaultResultsDir   = "results"
	DefaultTimeout      = 60 * time.Second
	DefaultSetupTimeout = 300 * time.Second
	DefaultMaxOutput    = 10 * 1024 * 1024 // 10MB
	DefaultLogFormat    = "console"
	DefaultTheme        = "google"

	// FileName is the config file looked up locally and under UserConfigDir.
	FileName = ".goosint.yaml"
)

// Duration accepts "90s"-style strings or a bare number of seconds in YAML.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if secs, err := strconv.ParseFloat(node.Value, 64); err == nil {
		*d = Duration(time.Duration(secs * float64(time.Second)))
		return nil
	}
	parsed, err := time.ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid duration %q", node.Line, node.Value)
	}
	*d = Duration(parsed)
	return nil
}

// FileConfig is the shape of .goosint.yaml.
type FileConfig struct {
	GHuntPath    string   `yaml:"ghunt_path"`
	GHuntArgs    []string `yaml:"ghunt_args"`
	PythonPath   string   `yaml:"python_path"`
	ResultsDir   string   `yaml:"results_dir"`
	Timeout      Duration `yaml:"timeout"`
	SetupTimeout Duration `yaml:"setup_timeout"`
	MaxOutput    int64    `yaml:"max_output"`
	NoColor      bool     `yaml:"no_color"`
	Debug        bool     `yaml:"debug"`
	LogFormat    string   `yaml:"log_format"`
	Theme        string   `yaml:"theme"`
}

// CliFlags holds the values of command-line flags that override config.
type CliFlags struct {
	ConfigPath string
	ResultsDir string
	Timeout    time.Duration
	NoColor    bool
	Debug      bool

	// Flags to track if they were explicitly set by the user
	ResultsDirSet bool
	TimeoutSet    bool
	NoColorSet    bool
	DebugSet      bool
}

// Config is the resolved configuration for one run.
type Config struct {
	GHuntPath    string
	GHuntArgs    []string
	PythonPath   string
	ResultsDir   string
	Timeout      time.Duration
	SetupTimeout time.Duration
	MaxOutput    int64
	NoColor      bool
	Debug        bool
	LogFormat    string
	Theme        string

	// Source is the config file that was read, or "" for none.
	Source string
	// Warnings are non-fatal problems found while loading.
	Warnings []string
}

// Defaults returns the hardcoded configuration.
func Defaults() *Config {
	return &Config{
		GHuntPath:    DefaultGHuntPath,
		PythonPath:   DefaultPythonPath,
		ResultsDir:   DefaultResultsDir,
		Timeout:      DefaultTimeout,
		SetupTimeout: DefaultSetupTimeout,
		MaxOutput:    DefaultMaxOutput,
		LogFormat:    DefaultLogFormat,
		Theme:        DefaultTheme,
	}
}

// Resolve merges defaults, the config file, the environment and flags.
func Resolve(flags CliFlags) *Config {
	cfg := Defaults()

	path, warn := getConfigPath(flags.ConfigPath)
	if warn != "" {
		cfg.Warnings = append(cfg.Warnings, warn)
	}
	if path != "" {
		if fc, err := loadFile(path); err != nil {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("%v; using defaults", err))
		} else {
			cfg.Source = path
			cfg.mergeFile(fc)
		}
	}

	cfg.mergeEnv()
	cfg.mergeFlags(flags)
	return cfg
}

func loadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return &fc, nil
}

func (c *Config) mergeFile(fc *FileConfig) {
	if fc.GHuntPath != "" {
		c.GHuntPath = fc.GHuntPath
	}
	if len(fc.GHuntArgs) > 0 {
		c.GHuntArgs = fc.GHuntArgs
	}
	if fc.PythonPath != "" {
		c.PythonPath = fc.PythonPath
	}
	if fc.ResultsDir != "" {
		c.ResultsDir = fc.ResultsDir
	}
	if fc.Timeout > 0 {
		c.Timeout = time.Duration(fc.Timeout)
	}
	if fc.SetupTimeout > 0 {
		c.SetupTimeout = time.Duration(fc.SetupTimeout)
	}
	if fc.MaxOutput > 0 {
		c.MaxOutput = fc.MaxOutput
	}
	c.NoColor = fc.NoColor
	c.Debug = fc.Debug
	switch fc.LogFormat {
	case "":
	case "console", "json":
		c.LogFormat = fc.LogFormat
	default:
		c.Warnings = append(c.Warnings, fmt.Sprintf("unknown log_format %q; using %s", fc.LogFormat, c.LogFormat))
	}
	switch fc.Theme {
	case "":
	case "google", "mono":
		c.Theme = fc.Theme
	default:
		c.Warnings = append(c.Warnings, fmt.Sprintf("unknown theme %q; using %s", fc.Theme, c.Theme))
	}
}

func (c *Config) mergeEnv() {
	noColor := os.Getenv("GOOSINT_NO_COLOR")
	if noColor == "" {
		noColor = os.Getenv("NO_COLOR")
	}
	if noColor != "" {
		if b, err := strconv.ParseBool(noColor); err == nil {
			c.NoColor = b
		}
	}
	if os.Getenv("GOOSINT_DEBUG") != "" {
		c.Debug = true
	}
	if p := os.Getenv("GOOSINT_GHUNT_PATH"); p != "" {
		c.GHuntPath = p
	}
	if d := os.Getenv("GOOSINT_RESULTS_DIR"); d != "" {
		c.ResultsDir = d
	}
}

func (c *Config) mergeFlags(f CliFlags) {
	if f.ResultsDirSet && f.ResultsDir != "" {
		c.ResultsDir = f.ResultsDir
	}
	if f.TimeoutSet {
		if f.Timeout > 0 {
			c.Timeout = f.Timeout
		} else {
			c.Warnings = append(c.Warnings, fmt.Sprintf("ignoring non-positive --timeout %s", f.Timeout))
		}
	}
	if f.NoColorSet {
		c.NoColor = f.NoColor
	}
	if f.DebugSet {
		c.Debug = f.Debug
	}
}

// LogLevel is the zap level implied by Debug.
func (c *Config) LogLevel() string {
	if c.Debug {
		return "debug"
	}
	return "warn"
}

// getConfigPath finds the config file to read. An explicit path wins; then
// the working directory; then the user config directory.
func getConfigPath(explicit string) (string, string) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return "", fmt.Sprintf("config file %s not found; using defaults", explicit)
			}
			return "", fmt.Sprintf("config file %s: %v; using defaults", explicit, err)
		}
		return explicit, ""
	}

	if _, err := os.Stat(FileName); err == nil {
		return FileName, ""
	}

	configHome, err := os.UserConfigDir()
	if err != nil || configHome == "" || configHome == "/" {
		return "", ""
	}
	xdgPath := filepath.Join(configHome, "goosint", FileName)
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath, ""
	}
	return "", ""
}
