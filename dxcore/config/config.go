/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package config loads the dxcal configuration.
//
// Settings come from three layers, later ones winning: the built-in
// defaults, an optional YAML file, and DXCAL_* environment variables:
//
//	schema: "1.0.0"
//	overflow: clamp        # DXCAL_OVERFLOW
//	format: text           # DXCAL_FORMAT
//	log:
//	  level: info          # DXCAL_LOG_LEVEL
//	  format: text         # DXCAL_LOG_FORMAT
//
// Unknown keys in the file are errors.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	dxerrors "dirpx.dev/dxcal/dxcore/errors"
	"dirpx.dev/dxcal/dxcore/model"
	"dirpx.dev/dxcal/dxcore/model/calendar"
	"dirpx.dev/dxcal/dxcore/model/semver"
	"dirpx.dev/rxmerr"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "DXCAL_"

// Schema is the configuration schema this build reads and writes.
var Schema = semver.Version{Major: 1}

// Log format names accepted in LogConfig.Format.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// LogConfig configures the structured logger.
type LogConfig struct {
	// Level is the minimum level logged: debug, info, warn or error.
	Level slog.Level `json:"level" yaml:"level" env:"LEVEL"`

	// Format is "text" or "json".
	Format string `json:"format" yaml:"format" env:"FORMAT"`
}

// Config is the complete dxcal configuration.
type Config struct {
	// Schema is the schema version the document was written against.
	Schema semver.Version `json:"schema" yaml:"schema" env:"SCHEMA"`

	// Overflow is the day-of-month policy for month and year arithmetic.
	Overflow calendar.Overflow `json:"overflow" yaml:"overflow" env:"OVERFLOW"`

	// Format is the output format of command results.
	Format Format `json:"format" yaml:"format" env:"FORMAT"`

	// Log configures logging.
	Log LogConfig `json:"log" yaml:"log" envPrefix:"LOG_"`
}

// Compile-time check that Config implements model.Model interface.
var _ model.Model = (*Config)(nil)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Schema:   Schema,
		Overflow: calendar.Clamp,
		Format:   FormatText,
		Log: LogConfig{
			Level:  slog.LevelInfo,
			Format: LogFormatText,
		},
	}
}

// Load returns the configuration read from the YAML file at path, if path
// is not empty, with the process environment applied on top.
func Load(path string) (Config, error) {
	return LoadEnv(path, nil)
}

// LoadEnv is like Load but reads environment variables from environ
// instead of the process environment when environ is not nil.
func LoadEnv(path string, environ map[string]string) (Config, error) {
	cfg := Default()

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
		defer f.Close()

		if err := Decode(f, &cfg); err != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
	}

	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("config: environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode reads one YAML document from r into cfg. Keys not defined by
// Config are rejected. An empty document leaves cfg unchanged.
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	type alias Config
	if err := dec.Decode((*alias)(cfg)); err != nil && !errors.Is(err, io.EOF) {
		return &dxerrors.UnmarshalError{Type: "Config", Reason: err.Error()}
	}
	return nil
}

// Validate reports every problem with c at once.
func (c Config) Validate() error {
	errs := rxmerr.NewCollector()

	switch {
	case c.Schema.IsZero():
		errs.Append(&dxerrors.ValidationError{Type: "Config", Field: "Schema", Reason: "must be declared"})
	case !c.Schema.Compatible(Schema):
		errs.Append(&dxerrors.ValidationError{
			Type:   "Config",
			Field:  "Schema",
			Reason: fmt.Sprintf("version %s cannot be read by schema %s", c.Schema, Schema),
			Value:  c.Schema.String(),
		})
	}

	if err := model.ValidateAll([]model.Model{&c.Schema, &c.Overflow}); err != nil {
		errs.Append(err)
	}

	if !c.Format.Valid() {
		errs.Append(&dxerrors.ValidationError{Type: "Config", Field: "Format", Reason: "unknown format", Value: int(c.Format)})
	}

	switch c.Log.Format {
	case LogFormatText, LogFormatJSON:
	default:
		errs.Append(&dxerrors.ValidationError{
			Type:   "Config",
			Field:  "Log.Format",
			Reason: fmt.Sprintf("must be %q or %q, got %q", LogFormatText, LogFormatJSON, c.Log.Format),
			Value:  c.Log.Format,
		})
	}

	return errs.Err()
}

// IsZero reports whether c is the zero Config, which is not a usable
// configuration; see Default.
func (c Config) IsZero() bool {
	return c == Config{}
}

// TypeName returns "Config".
func (c Config) TypeName() string {
	return "Config"
}

// String returns a one-line summary of c.
func (c Config) String() string {
	return fmt.Sprintf("Config{Schema:%s, Overflow:%s, Format:%s, Log:{Level:%s, Format:%s}}",
		c.Schema, c.Overflow, c.Format, c.Log.Level, c.Log.Format)
}

// Redacted returns the same string as String.
func (c Config) Redacted() string {
	return c.String()
}

// MarshalJSON encodes a valid Config.
func (c Config) MarshalJSON() ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	type alias Config
	return json.Marshal((alias)(c))
}

// UnmarshalJSON decodes and validates a Config. Absent keys keep their
// default values.
func (c *Config) UnmarshalJSON(data []byte) error {
	type alias Config
	cfg := alias(Default())
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return &dxerrors.UnmarshalError{Type: "Config", Data: data, Reason: err.Error()}
	}
	if err := Config(cfg).Validate(); err != nil {
		return err
	}
	*c = Config(cfg)
	return nil
}

// MarshalYAML encodes a valid Config as the document Load reads.
func (c Config) MarshalYAML() (any, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	type alias Config
	return (alias)(c), nil
}

// UnmarshalYAML decodes and validates a Config. Absent keys keep their
// default values.
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	type alias Config
	cfg := alias(Default())
	if err := node.Decode(&cfg); err != nil {
		return &dxerrors.UnmarshalError{Type: "Config", Data: []byte(node.Value), Reason: err.Error()}
	}
	if err := Config(cfg).Validate(); err != nil {
		return err
	}
	*c = Config(cfg)
	return nil
}
