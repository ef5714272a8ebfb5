// Package config loads the scheduler's TOML configuration file, mirroring
// the nested-section Config/DefaultConfig pattern used throughout this
// codebase.
package config

import (
	"hash/fnv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/zhenglier/eo/internal/app/ga"
)

// ServerConfig controls the HTTP API surface.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// StoreConfig controls the run-history store.
type StoreConfig struct {
	Path string `toml:"path"`
}

// Config is the top-level configuration document.
type Config struct {
	GA     ga.Config    `toml:"ga"`
	Server ServerConfig `toml:"server"`
	Store  StoreConfig  `toml:"store"`
	// Seed selects the GA's RNG seed for `eo run` when no --seed flag is
	// given; the HTTP API takes its seed from each request instead.
	// Absent (nil), a negative number, or zero resolves to the wall clock;
	// a string resolves to its FNV-1a hash, giving callers a stable seed
	// derived from e.g. a job name.
	Seed any `toml:"seed"`
}

// DefaultConfig returns production defaults: the GA engine's own defaults,
// plus a local HTTP address and an on-disk SQLite store path.
func DefaultConfig() Config {
	return Config{
		GA:     ga.DefaultConfig(),
		Server: ServerConfig{Addr: "127.0.0.1:8080"},
		Store:  StoreConfig{Path: "eo.db"},
	}
}

// Load reads path as TOML into a Config seeded with DefaultConfig, so any
// section or field the file omits keeps its default.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ResolveSeed turns the Seed config field into a concrete int64 RNG seed.
// Strings are hashed with FNV-1a so the same string always yields the same
// seed; nil, zero, and negative numeric values fall back to the wall
// clock, matching the "absent means non-deterministic" default used
// throughout the CLI.
func ResolveSeed(raw any) int64 {
	switch v := raw.(type) {
	case nil:
		return time.Now().UnixNano()
	case string:
		if v == "" {
			return time.Now().UnixNano()
		}
		h := fnv.New64a()
		_, _ = h.Write([]byte(v))
		return int64(h.Sum64() & 0x7fffffffffffffff)
	case int64:
		if v <= 0 {
			return time.Now().UnixNano()
		}
		return v
	case int:
		if v <= 0 {
			return time.Now().UnixNano()
		}
		return int64(v)
	case float64:
		// toml decodes untyped integers in an `any` field as int64, but
		// guard against float64 in case a caller builds Config by hand.
		if v <= 0 {
			return time.Now().UnixNano()
		}
		return int64(v)
	default:
		return time.Now().UnixNano()
	}
}
