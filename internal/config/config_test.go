// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// setupTestConfig sets CLOUDCHORE_CFG_FILE to point to a test config file.
// Returns cleanup function that should be deferred.
func setupTestConfig(t *testing.T, testdataFile string) (cleanup func()) {
	t.Helper()

	// Get absolute path to testdata file
	configPath := filepath.Join("testdata", testdataFile)
	absPath, err := filepath.Abs(configPath)
	assert.NoError(t, err, "failed to get absolute path for test config")

	// Set CLOUDCHORE_CFG_FILE environment variable
	t.Setenv("CLOUDCHORE_CFG_FILE", absPath)

	// Reset the global Config to force reload
	Config = Type{}

	return func() {
		// Reset global Config
		Config = Type{}
	}
}

// withConfig is a helper that sets up a test config and executes a test function.
func withConfig(t *testing.T, testFile string, fn func(t *testing.T)) {
	t.Helper()
	cleanup := setupTestConfig(t, testFile)
	defer cleanup()
	_, _ = Load()
	fn(t)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		testFile  string
		wantErr   bool
		checkFunc func(*testing.T, Type)
	}{
		{
			name:     "simple string values",
			testFile: "simple.yaml",
			wantErr:  false,
			checkFunc: func(t *testing.T, cfg Type) {
				assert.NotEmpty(t, cfg.Source)
				assert.Contains(t, cfg.Data, "region")
				assert.Equal(t, "us-east-1", cfg.Data["region"])
				assert.Equal(t, "my-bucket", cfg.Data["bucket"])
			},
		},
		{
			name:     "nested structure",
			testFile: "nested.yaml",
			wantErr:  false,
			checkFunc: func(t *testing.T, cfg Type) {
				check, ok := cfg.Data["check"].(map[string]interface{})
				assert.True(t, ok, "check should be a map")
				ntfy, ok := check["ntfy"].(map[string]interface{})
				assert.True(t, ok, "ntfy should be a map")
				assert.Equal(t, "https://ntfy.example.com", ntfy["server"])
				assert.Equal(t, "aws-cost-alerts", ntfy["topic"])
			},
		},
		{
			name:     "mixed types",
			testFile: "mixed-types.yaml",
			wantErr:  false,
			checkFunc: func(t *testing.T, cfg Type) {
				assert.Equal(t, "test-project", cfg.Data["name"])
				assert.Equal(t, 1, cfg.Data["version"])
				assert.Equal(t, true, cfg.Data["enabled"])
				assert.Equal(t, 30.5, cfg.Data["timeout"])
				tags, ok := cfg.Data["tags"].([]interface{})
				assert.True(t, ok)
				assert.Len(t, tags, 2)
			},
		},
		{
			name:     "empty file",
			testFile: "empty.yaml",
			wantErr:  false,
			checkFunc: func(t *testing.T, cfg Type) {
				// Empty YAML unmarshals to nil map, which is acceptable
				assert.NotEmpty(t, cfg.Source, "should have a source path")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := setupTestConfig(t, tt.testFile)
			defer cleanup()

			cfg, err := Load()

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestGetString(t *testing.T) {
	withConfig(t, "simple.yaml", func(t *testing.T) {
		val, err := GetString("region")
		assert.NoError(t, err)
		assert.Equal(t, "us-east-1", val)
	})

	withConfig(t, "simple.yaml", func(t *testing.T) {
		val, err := GetString("missing", "fallback")
		assert.NoError(t, err)
		assert.Equal(t, "fallback", val)
	})

	withConfig(t, "simple.yaml", func(t *testing.T) {
		_, err := GetString("missing")
		assert.Error(t, err)
	})

	withConfig(t, "nested.yaml", func(t *testing.T) {
		val, err := GetString("check.ntfy.topic")
		assert.NoError(t, err)
		assert.Equal(t, "aws-cost-alerts", val)
	})
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("CLOUDCHORE_CFG_FILE", filepath.Join("testdata", "does-not-exist.yaml"))
	Config = Type{}
	_, err := Load()
	assert.Error(t, err)
	Config = Type{}
}
