package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds configuration for the watch command, merged from flags,
// environment variables, and an optional config file.
type Config struct {
	RPCWSURL         string
	RPCHTTPURL       string
	V2Router         string
	V3Router         string
	UniversalRouters []string
	Workers          int
	MaxRetries       int
	RetryBackoff     time.Duration
	Out              string
	PGDSN            string
	MinScore         int
	LogLevel         string
}

// Load merges config file, environment variables, and flags into Config.
// A .env file in the working directory is folded into the environment
// first, if present.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("MONITOR")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("workers", 4)
	v.SetDefault("max-retries", 3)
	v.SetDefault("retry-backoff", 500*time.Millisecond)
	v.SetDefault("min-score", 0)
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if err := readConfigFile(v, cfgFile); err != nil {
		return Config{}, err
	}

	cfg := Config{
		RPCWSURL:         v.GetString("rpc-ws"),
		RPCHTTPURL:       v.GetString("rpc-http"),
		V2Router:         v.GetString("v2-router"),
		V3Router:         v.GetString("v3-router"),
		UniversalRouters: getStringSlice(v, "universal-router"),
		Workers:          v.GetInt("workers"),
		MaxRetries:       v.GetInt("max-retries"),
		RetryBackoff:     v.GetDuration("retry-backoff"),
		Out:              v.GetString("out"),
		PGDSN:            v.GetString("pg-dsn"),
		MinScore:         v.GetInt("min-score"),
		LogLevel:         v.GetString("log-level"),
	}

	return cfg, nil
}

// ReplayConfig holds configuration for the replay command.
type ReplayConfig struct {
	RPCHTTPURL       string
	In               string
	V2Router         string
	V3Router         string
	UniversalRouters []string
	Out              string
	PGDSN            string
	MinScore         int
	LogLevel         string
}

// LoadReplay merges config file, environment variables, and flags into
// ReplayConfig.
func LoadReplay(cfgFile string, flags *pflag.FlagSet) (ReplayConfig, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("MONITOR")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("min-score", 0)
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return ReplayConfig{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if err := readConfigFile(v, cfgFile); err != nil {
		return ReplayConfig{}, err
	}

	cfg := ReplayConfig{
		RPCHTTPURL:       v.GetString("rpc-http"),
		In:               v.GetString("in"),
		V2Router:         v.GetString("v2-router"),
		V3Router:         v.GetString("v3-router"),
		UniversalRouters: getStringSlice(v, "universal-router"),
		Out:              v.GetString("out"),
		PGDSN:            v.GetString("pg-dsn"),
		MinScore:         v.GetInt("min-score"),
		LogLevel:         v.GetString("log-level"),
	}

	return cfg, nil
}

func readConfigFile(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		return nil
	}
	v.SetConfigName("config")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

func getStringSlice(v *viper.Viper, key string) []string {
	if !v.IsSet(key) {
		return nil
	}

	val := v.Get(key)
	switch typed := val.(type) {
	case []string:
		return cleanStrings(typed)
	case string:
		return splitAndClean(typed)
	case []interface{}:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			items = append(items, fmt.Sprintf("%v", item))
		}
		return cleanStrings(items)
	default:
		return nil
	}
}

func splitAndClean(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	return cleanStrings(parts)
}

func cleanStrings(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
