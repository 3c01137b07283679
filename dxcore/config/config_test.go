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

package config_test

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dirpx.dev/dxcal/dxcore/config"
	dxerrors "dirpx.dev/dxcal/dxcore/errors"
	"dirpx.dev/dxcal/dxcore/model/calendar"
	"dirpx.dev/dxcal/dxcore/model/semver"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dxcal.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
	if cfg.Overflow != calendar.Clamp || cfg.Format != config.FormatText {
		t.Errorf("Default() = %v", cfg)
	}
	if cfg.Log.Level != slog.LevelInfo || cfg.Log.Format != config.LogFormatText {
		t.Errorf("Default().Log = %+v", cfg.Log)
	}
}

func TestLoadEnv(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		environ map[string]string
		check   func(t *testing.T, cfg config.Config)
	}{
		{
			name:    "defaults",
			environ: map[string]string{},
			check: func(t *testing.T, cfg config.Config) {
				if cfg != config.Default() {
					t.Errorf("cfg = %v, want defaults", cfg)
				}
			},
		},
		{
			name: "file",
			file: "schema: \"1.0.0\"\noverflow: normalize\nformat: json\nlog:\n  level: debug\n  format: json\n",
			environ: map[string]string{},
			check: func(t *testing.T, cfg config.Config) {
				if cfg.Overflow != calendar.Normalize || cfg.Format != config.FormatJSON {
					t.Errorf("cfg = %v", cfg)
				}
				if cfg.Log.Level != slog.LevelDebug || cfg.Log.Format != config.LogFormatJSON {
					t.Errorf("cfg.Log = %+v", cfg.Log)
				}
			},
		},
		{
			name: "partial_file_keeps_defaults",
			file: "format: yaml\n",
			environ: map[string]string{},
			check: func(t *testing.T, cfg config.Config) {
				if cfg.Format != config.FormatYAML || cfg.Overflow != calendar.Clamp || cfg.Schema != config.Schema {
					t.Errorf("cfg = %v", cfg)
				}
			},
		},
		{
			name: "empty_file",
			file: "",
			environ: map[string]string{},
			check: func(t *testing.T, cfg config.Config) {
				if cfg != config.Default() {
					t.Errorf("cfg = %v, want defaults", cfg)
				}
			},
		},
		{
			name: "environment_wins",
			file: "overflow: clamp\nformat: json\n",
			environ: map[string]string{
				"DXCAL_OVERFLOW":   "normalize",
				"DXCAL_FORMAT":     "text",
				"DXCAL_LOG_LEVEL":  "warn",
				"DXCAL_LOG_FORMAT": "json",
				"DXCAL_SCHEMA":     "1.0.3",
			},
			check: func(t *testing.T, cfg config.Config) {
				if cfg.Overflow != calendar.Normalize || cfg.Format != config.FormatText {
					t.Errorf("cfg = %v", cfg)
				}
				if cfg.Log.Level != slog.LevelWarn || cfg.Log.Format != config.LogFormatJSON {
					t.Errorf("cfg.Log = %+v", cfg.Log)
				}
				if cfg.Schema != (semver.Version{Major: 1, Patch: 3}) {
					t.Errorf("cfg.Schema = %v", cfg.Schema)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := ""
			if tt.name != "defaults" {
				path = writeConfig(t, tt.file)
			}
			cfg, err := config.LoadEnv(path, tt.environ)
			if err != nil {
				t.Fatalf("LoadEnv() error = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoadEnv_Errors(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		environ  map[string]string
		contains []string
	}{
		{
			name:     "unknown_key",
			file:     "overflow: clamp\ntimezone: UTC\n",
			contains: []string{"timezone"},
		},
		{
			name:     "bad_overflow",
			file:     "overflow: wrap\n",
			contains: []string{"wrap"},
		},
		{
			name:     "newer_schema",
			file:     "schema: \"1.1.0\"\n",
			contains: []string{"Config.Schema", "1.1.0"},
		},
		{
			name:     "other_major",
			file:     "schema: \"2.0.0\"\n",
			contains: []string{"Config.Schema"},
		},
		{
			name:     "bad_env",
			environ:  map[string]string{"DXCAL_FORMAT": "xml"},
			contains: []string{"environment"},
		},
		{
			name:     "every_problem_reported",
			file:     "schema: \"2.0.0\"\nlog:\n  format: logfmt\n",
			contains: []string{"Config.Schema", "Config.Log.Format"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			environ := tt.environ
			if environ == nil {
				environ = map[string]string{}
			}
			_, err := config.LoadEnv(writeConfig(t, tt.file), environ)
			if err == nil {
				t.Fatal("LoadEnv() should fail")
			}
			for _, want := range tt.contains {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("LoadEnv() error %q does not mention %q", err, want)
				}
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want os.ErrNotExist", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := config.Default()
	cfg.Schema = semver.Version{}
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "must be declared") {
		t.Errorf("Validate() error = %v", err)
	}

	cfg = config.Default()
	cfg.Format = config.Format(9)
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject an unknown format")
	}

	cfg = config.Default()
	cfg.Overflow = calendar.Overflow(5)
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject an unknown overflow policy")
	}

	cfg = config.Default()
	cfg.Schema = semver.Version{Major: 1, Patch: -1}
	cfg.Overflow = calendar.Overflow(5)
	err = cfg.Validate()
	if err == nil {
		t.Fatal("Validate() should reject a malformed schema and overflow policy")
	}
	for _, want := range []string{"model[0] (Version)", "Version.Patch", "model[1] (Overflow)"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() error %q does not mention %q", err, want)
		}
	}
}

func TestConfig_Serialization(t *testing.T) {
	cfg := config.Default()
	cfg.Overflow = calendar.Normalize

	data, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	for _, want := range []string{`schema: "1.0.0"`, "overflow: normalize", "format: text", "level: INFO"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("yaml.Marshal() = %q, want it to contain %q", data, want)
		}
	}

	var back config.Config
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if back != cfg {
		t.Errorf("YAML round trip = %v, want %v", back, cfg)
	}

	js, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	var fromJSON config.Config
	if err := json.Unmarshal(js, &fromJSON); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if fromJSON != cfg {
		t.Errorf("JSON round trip = %v, want %v", fromJSON, cfg)
	}

	if err := json.Unmarshal([]byte(`{"zone":"UTC"}`), &fromJSON); err == nil {
		t.Error("json.Unmarshal() should reject unknown keys")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    config.Format
		wantErr bool
	}{
		{"text", config.FormatText, false},
		{"JSON", config.FormatJSON, false},
		{"Yaml", config.FormatYAML, false},
		{"xml", config.FormatText, true},
	}
	for _, tt := range tests {
		got, err := config.ParseFormat(tt.input)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, %v", tt.input, got, err)
		}
		if tt.wantErr {
			var pe *dxerrors.ParseError
			if !errors.As(err, &pe) {
				t.Errorf("ParseFormat(%q) error = %T, want *ParseError", tt.input, err)
			}
		}
	}

	if _, err := config.Format(7).MarshalText(); err == nil {
		t.Error("MarshalText() of an unknown format should fail")
	}
}
