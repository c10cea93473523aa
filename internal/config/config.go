package config

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/bnema/cosmetic-filter/internal/logging"
)

// Config holds the small set of knobs this engine actually needs: where to
// read rule lists and the scriptlet resources catalog from, where to keep
// the compiled rule cache, and how verbosely to log.
type Config struct {
	RuleSources   []string `mapstructure:"rule_sources"`
	ResourcesFile string   `mapstructure:"resources_file"`
	CacheDir      string   `mapstructure:"cache_dir"`
	Debug         bool     `mapstructure:"debug"`
	LogLevel      string   `mapstructure:"log_level"`
}

func defaultConfig() *Config {
	cacheDir, err := GetFilterCacheDir()
	if err != nil {
		cacheDir = ""
	}
	return &Config{
		RuleSources:   nil,
		ResourcesFile: "",
		CacheDir:      cacheDir,
		Debug:         false,
		LogLevel:      "info",
	}
}

// Manager loads the config through viper and can watch the backing file for
// live reload, notifying registered callbacks on change.
type Manager struct {
	mu        sync.RWMutex
	config    *Config
	viper     *viper.Viper
	callbacks []func(*Config)
	watching  bool
}

// NewManager constructs a Manager bound to the XDG config file, falling
// back to built-in defaults when no config file exists yet.
func NewManager() (*Manager, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("COSMETIC_FILTER")
	if err := v.BindEnv("rule_sources"); err != nil {
		return nil, fmt.Errorf("failed to bind rule_sources env var: %w", err)
	}
	if err := v.BindEnv("resources_file"); err != nil {
		return nil, fmt.Errorf("failed to bind resources_file env var: %w", err)
	}
	if err := v.BindEnv("cache_dir"); err != nil {
		return nil, fmt.Errorf("failed to bind cache_dir env var: %w", err)
	}
	if err := v.BindEnv("debug"); err != nil {
		return nil, fmt.Errorf("failed to bind debug env var: %w", err)
	}
	if err := v.BindEnv("log_level"); err != nil {
		return nil, fmt.Errorf("failed to bind log_level env var: %w", err)
	}

	def := defaultConfig()
	v.SetDefault("rule_sources", def.RuleSources)
	v.SetDefault("resources_file", def.ResourcesFile)
	v.SetDefault("cache_dir", def.CacheDir)
	v.SetDefault("debug", def.Debug)
	v.SetDefault("log_level", def.LogLevel)

	return &Manager{
		config: def,
		viper:  v,
	}, nil
}

// Load reads the config file if present, otherwise keeps the defaults.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		logging.Debug("no config file found, using defaults")
		return nil
	}

	cfg := &Config{}
	if err := m.viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	m.config = cfg
	return nil
}

// Get returns the current, live config snapshot.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// OnConfigChange registers a callback invoked after every successful reload.
func (m *Manager) OnConfigChange(callback func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, callback)
}

// Watch starts watching the config file for changes and reloads on write,
// notifying every registered callback. Safe to call more than once; repeat
// calls are no-ops.
func (m *Manager) Watch() {
	m.mu.Lock()
	if m.watching {
		m.mu.Unlock()
		return
	}
	m.watching = true
	m.mu.Unlock()

	m.viper.WatchConfig()
	m.viper.OnConfigChange(func(_ fsnotify.Event) {
		m.mu.Lock()
		cfg := &Config{}
		if err := m.viper.Unmarshal(cfg); err != nil {
			logging.Error(fmt.Sprintf("failed to reload config: %v", err))
			m.mu.Unlock()
			return
		}
		m.config = cfg
		callbacks := make([]func(*Config), len(m.callbacks))
		copy(callbacks, m.callbacks)
		m.mu.Unlock()

		logging.Info("config reloaded")
		for _, cb := range callbacks {
			cb(cfg)
		}
	})
}

// ConfigFilePath returns the path viper resolved (or will resolve) the
// config file to, joining the config directory and file name directly
// so callers can create a default file before the first Load.
func (m *Manager) ConfigFilePath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}
