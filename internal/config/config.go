// Package config reads process configuration from the environment, with an
// optional .env file loaded first. User preferences live in the store, not
// here.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/julianstephens/waktu/internal/constants"
)

const envPrefix = "WAKTU_"

// Config is the resolved runtime configuration.
type Config struct {
	ScheduleAPIBase string
	QuranAPIBase    string
	HTTPTimeout     time.Duration

	MirrorBackend string
	// MirrorDSN overrides the keyring secret when set.
	MirrorDSN     string
	RedisAddr     string
	RedisUsername string
	RedisPassword string

	NotifyVia    []string
	MQTTBroker   string
	MQTTTopic    string
	MQTTClientID string
	MQTTUsername string
	// MQTTPassword overrides the keyring secret when set.
	MQTTPassword string
}

// Default returns the configuration used when no variables are set.
func Default() Config {
	return Config{
		ScheduleAPIBase: constants.DefaultScheduleAPIBase,
		QuranAPIBase:    constants.DefaultQuranAPIBase,
		HTTPTimeout:     constants.DefaultHTTPTimeout,
		MirrorBackend:   constants.MirrorBackendNone,
		NotifyVia:       []string{constants.NotifyViaTray},
		MQTTTopic:       constants.DefaultMQTTTopic,
		MQTTClientID:    constants.DefaultMQTTClientID,
	}
}

// Load applies the given .env files (missing files are skipped, existing
// variables win) and then reads the environment.
func Load(dotenvFiles ...string) (Config, error) {
	for _, f := range dotenvFiles {
		if f == "" {
			continue
		}
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return Config{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return FromLookup(os.LookupEnv)
}

// DotenvPaths returns the .env candidates: the working directory first, then
// the config directory.
func DotenvPaths(configDir string) []string {
	return []string{".env", filepath.Join(configDir, ".env")}
}

// FromLookup builds a Config from lookup, which follows os.LookupEnv.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	get := func(name string, dst *string) {
		if v, ok := lookup(envPrefix + name); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	get("SCHEDULE_API", &cfg.ScheduleAPIBase)
	get("QURAN_API", &cfg.QuranAPIBase)
	get("MIRROR", &cfg.MirrorBackend)
	get("MIRROR_DSN", &cfg.MirrorDSN)
	get("REDIS_ADDRESS", &cfg.RedisAddr)
	get("REDIS_USERNAME", &cfg.RedisUsername)
	get("REDIS_PASSWORD", &cfg.RedisPassword)
	get("MQTT_BROKER", &cfg.MQTTBroker)
	get("MQTT_TOPIC", &cfg.MQTTTopic)
	get("MQTT_CLIENT_ID", &cfg.MQTTClientID)
	get("MQTT_USERNAME", &cfg.MQTTUsername)
	get("MQTT_PASSWORD", &cfg.MQTTPassword)

	var timeout string
	get("HTTP_TIMEOUT", &timeout)
	if timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %sHTTP_TIMEOUT: %w", envPrefix, err)
		}
		cfg.HTTPTimeout = d
	}

	var via string
	get("NOTIFY_VIA", &via)
	if via != "" {
		cfg.NotifyVia = nil
		for _, v := range strings.Split(via, ",") {
			if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
				cfg.NotifyVia = append(cfg.NotifyVia, v)
			}
		}
	}

	cfg.MirrorBackend = strings.ToLower(cfg.MirrorBackend)
	cfg.ScheduleAPIBase = strings.TrimRight(cfg.ScheduleAPIBase, "/")
	cfg.QuranAPIBase = strings.TrimRight(cfg.QuranAPIBase, "/")

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerations, URLs and cross-field requirements.
func (c Config) Validate() error {
	for name, base := range map[string]string{"schedule": c.ScheduleAPIBase, "quran": c.QuranAPIBase} {
		u, err := url.Parse(base)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid %s API base URL %q", name, base)
		}
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP timeout must be positive, got %s", c.HTTPTimeout)
	}

	switch c.MirrorBackend {
	case constants.MirrorBackendNone, constants.MirrorBackendPostgres:
	case constants.MirrorBackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("%sREDIS_ADDRESS is required for the redis mirror", envPrefix)
		}
	default:
		return fmt.Errorf("unknown mirror backend %q (must be none, postgres, or redis)", c.MirrorBackend)
	}

	for _, v := range c.NotifyVia {
		switch v {
		case constants.NotifyViaTray, constants.NotifyViaConsole:
		case constants.NotifyViaMQTT:
			if c.MQTTBroker == "" {
				return fmt.Errorf("%sMQTT_BROKER is required to notify via mqtt", envPrefix)
			}
		default:
			return fmt.Errorf("unknown notification surface %q", v)
		}
	}
	return nil
}
