// Package config loads typed configuration for Robot webservice tooling
// from a file plus HROBOT_-prefixed environment variables, and watches the
// file for changes so long-running callers can pick up rotated credentials
// without restarting.
package config

import (
	"encoding/json"
	"os"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/elasticjava/community.hrobot/robot"
)

// EnvPrefix is the prefix for environment overrides, e.g. HROBOT_USER.
const EnvPrefix = "HROBOT"

// Robot is the configuration consumed by cmd/hrobot and similar callers.
type Robot struct {
	// User and Password are the webservice credentials. Values of the form
	// ${VAR} are expanded from the environment at load time.
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`

	// BaseURL overrides the fixed webservice endpoint (tests, mirrors).
	BaseURL string `mapstructure:"base_url"`

	// Timeout is the per-request timeout.
	Timeout time.Duration `mapstructure:"timeout"`

	// CheckDelay and CheckTimeout tune polling commands.
	CheckDelay   time.Duration `mapstructure:"check_delay"`
	CheckTimeout time.Duration `mapstructure:"check_timeout"`

	// RateLimit caps outgoing requests per second. Zero disables throttling.
	RateLimit float64 `mapstructure:"rate_limit"`
}

// Credentials returns the resolved credentials.
func (r Robot) Credentials() robot.Credentials {
	return robot.Credentials{User: expandEnvRefs(r.User), Password: expandEnvRefs(r.Password)}
}

// RobotDefaults mirrors the webservice defaults carried by package robot.
func RobotDefaults() map[string]any {
	return map[string]any{
		"base_url":      robot.DefaultBaseURL,
		"timeout":       robot.DefaultRequestTimeout,
		"check_delay":   robot.DefaultCheckDelay,
		"check_timeout": robot.DefaultCheckTimeout,
		"rate_limit":    0.0,
	}
}

var envRefPattern = regexp.MustCompile(`^\$\{(\w+)\}$`)

// expandEnvRefs resolves ${VAR} credential references. Anything else is
// returned verbatim, so literal passwords containing "$" keep working.
func expandEnvRefs(v string) string {
	m := envRefPattern.FindStringSubmatch(strings.TrimSpace(v))
	if m == nil {
		return v
	}
	return os.Getenv(m[1])
}

// Config is a typed configuration handle.
type Config[T any] struct {
	v        *viper.Viper
	value    *T
	mu       sync.RWMutex
	watchers []func(old, new T)
}

type Option[T any] func(*Config[T])

// WithDefaults seeds default values applied below file and env sources.
func WithDefaults[T any](defaults map[string]any) Option[T] {
	return func(c *Config[T]) {
		for k, v := range defaults {
			c.v.SetDefault(k, v)
		}
	}
}

// WithEnv binds environment variables with the given prefix; nested keys
// use "_" instead of ".".
func WithEnv[T any](prefix string) Option[T] {
	return func(c *Config[T]) {
		c.v.SetEnvPrefix(prefix)
		c.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		c.v.AutomaticEnv()
	}
}

// Load reads the config file at path, applies options and starts watching
// the file for changes.
func Load[T any](path string, opts ...Option[T]) (*Config[T], error) {
	v := viper.New()
	v.SetConfigFile(path)

	c := &Config[T]{v: v}

	for _, opt := range opts {
		opt(c)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var val T
	if err := v.Unmarshal(&val); err != nil {
		return nil, err
	}
	c.value = &val

	c.watch()
	return c, nil
}

// LoadRobot loads the Robot config from path with webservice defaults and
// HROBOT_ env binding.
func LoadRobot(path string) (*Config[Robot], error) {
	return Load(path,
		WithDefaults[Robot](RobotDefaults()),
		WithEnv[Robot](EnvPrefix),
	)
}

// FromEnv builds a Robot config purely from defaults and HROBOT_
// environment variables, for callers without a config file.
func FromEnv() (Robot, error) {
	v := viper.New()
	for k, d := range RobotDefaults() {
		v.SetDefault(k, d)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only resolves keys viper already knows about.
	for _, k := range []string{"user", "password"} {
		if !v.IsSet(k) {
			v.SetDefault(k, "")
		}
	}

	var out Robot
	if err := v.Unmarshal(&out); err != nil {
		return Robot{}, err
	}
	return out, nil
}

// Get returns the current value (concurrency-safe deep copy).
func (c *Config[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return deepCopy(*c.value)
}

// OnChange registers a callback invoked after the watched file changes.
func (c *Config[T]) OnChange(callback func(old, new T)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.watchers = append(c.watchers, callback)
}

// Changed reports whether two values differ.
func Changed[T any](old, new T) bool {
	return !reflect.DeepEqual(old, new)
}

// deepCopy copies via JSON round trip.
func deepCopy[T any](src T) T {
	var dst T
	data, _ := json.Marshal(src)
	_ = json.Unmarshal(data, &dst)
	return dst
}

func (c *Config[T]) watch() {
	var (
		debounceTimer *time.Timer
		debounceMu    sync.Mutex
	)

	c.v.OnConfigChange(func(_ fsnotify.Event) {
		debounceMu.Lock()
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
			c.handleConfigChange()
		})
		debounceMu.Unlock()
	})

	c.v.WatchConfig()
}

func (c *Config[T]) handleConfigChange() {
	oldConfig := c.Get()

	newConfig, watchers, ok := c.reloadConfig()
	if !ok {
		return
	}

	if !Changed(oldConfig, newConfig) {
		return
	}

	for _, cb := range watchers {
		func() {
			defer func() { _ = recover() }()
			cb(oldConfig, newConfig)
		}()
	}
}

func (c *Config[T]) reloadConfig() (T, []func(old, new T), bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	if err := c.v.ReadInConfig(); err != nil {
		return zero, nil, false
	}

	var val T
	if err := c.v.Unmarshal(&val); err != nil {
		return zero, nil, false
	}
	c.value = &val

	watchers := make([]func(old, new T), len(c.watchers))
	copy(watchers, c.watchers)

	return deepCopy(val), watchers, true
}
