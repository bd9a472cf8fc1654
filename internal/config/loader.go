package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigDirName is the per-user configuration directory under $HOME.
	ConfigDirName = ".postmd"
	// ConfigFileName is the file name inside ConfigDirName.
	ConfigFileName = "config.yaml"
	// ProjectFileName is a site-local configuration file, looked up from the
	// working directory towards the filesystem root.
	ProjectFileName = ".postmd.yaml"
)

// envVarPattern matches ${VAR} and ${VAR:-fallback}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

// Loader reads and writes one configuration file.
type Loader struct {
	configDir  string
	configPath string
}

// NewLoader returns a loader for ~/.postmd/config.yaml.
func NewLoader() (*Loader, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return NewLoaderWithPath(filepath.Join(homeDir, ConfigDirName, ConfigFileName)), nil
}

// NewLoaderWithPath returns a loader for an explicit file.
func NewLoaderWithPath(configPath string) *Loader {
	return &Loader{
		configDir:  filepath.Dir(configPath),
		configPath: configPath,
	}
}

// Discover prefers a project file found from dir upwards and falls back to
// the per-user file.
func Discover(dir string) (*Loader, error) {
	if path, ok := FindProjectFile(dir); ok {
		return NewLoaderWithPath(path), nil
	}
	return NewLoader()
}

// FindProjectFile walks from dir to the root looking for ProjectFileName.
func FindProjectFile(dir string) (string, bool) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(abs, ProjectFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", false
		}
		abs = parent
	}
}

// ConfigPath returns the configuration file path.
func (l *Loader) ConfigPath() string {
	return l.configPath
}

// Load reads the file with ${VAR} references expanded. A missing file yields
// DefaultConfig.
func (l *Loader) Load() (*Config, error) {
	return l.read(true)
}

// LoadRaw reads the file as written, for editing and saving back.
func (l *Loader) LoadRaw() (*Config, error) {
	return l.read(false)
}

func (l *Loader) read(expand bool) (*Config, error) {
	data, err := os.ReadFile(l.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if expand {
		data = []byte(expandEnvVars(string(data)))
	}

	// keys missing from the file keep their defaults
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", l.configPath, err)
	}
	return cfg, nil
}

// Save writes cfg, creating the directory when needed.
func (l *Loader) Save(cfg *Config) error {
	if err := os.MkdirAll(l.configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(l.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Exists reports whether the configuration file exists.
func (l *Loader) Exists() bool {
	_, err := os.Stat(l.configPath)
	return err == nil
}

// Init writes DefaultConfig unless a file is already present.
func (l *Loader) Init() error {
	if l.Exists() {
		return fmt.Errorf("config file already exists: %s", l.configPath)
	}
	return l.Save(DefaultConfig())
}

// expandEnvVars substitutes ${VAR} with its value, or with the text after
// ":-" when VAR is unset or empty.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		sub := envVarPattern.FindStringSubmatch(match)
		if value := os.Getenv(sub[1]); value != "" {
			return value
		}
		return sub[2]
	})
}

// GetEnvOrDefault returns the environment variable value or a default.
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvBool returns true if the environment variable is "true", "1" or "yes".
func GetEnvBool(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "true", "1", "yes":
		return true
	}
	return false
}
