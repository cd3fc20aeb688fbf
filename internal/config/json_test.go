// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Komarov

package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_AllFields(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"auth": map[string]any{
			"valid_fields":      []string{"email"},
			"session_sign_key":  "jwt_secret",
			"session_issuer":    "issuer",
			"session_duration":  "20m",
			"remember_duration": "168h",
			"bcrypt_cost":       10,
			"redirects": map[string]any{
				"login":         "/home",
				"login_failure": "/auth/login",
				"logout":        "/bye",
			},
		},
		"storage": map[string]any{
			"db": map[string]any{"driver": "sqlite3", "dsn": "auth.db"},
		},
		"server": map[string]any{
			"http_address":    "localhost:8088",
			"request_timeout": "10s",
		},
		"workers": map[string]any{
			"sweep_interval": "2h",
		},
	})

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"email"}, cfg.Auth.ValidFields)
	assert.Equal(t, "jwt_secret", cfg.Auth.SessionSignKey)
	assert.Equal(t, "issuer", cfg.Auth.SessionIssuer)
	assert.Equal(t, 20*time.Minute, cfg.Auth.SessionDuration)
	assert.Equal(t, 168*time.Hour, cfg.Auth.RememberDuration)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, "/home", cfg.Auth.Redirects.Login)
	assert.Equal(t, "/auth/login", cfg.Auth.Redirects.LoginFailure)
	assert.Equal(t, "/bye", cfg.Auth.Redirects.Logout)
	assert.Equal(t, "sqlite3", cfg.Storage.DB.Driver)
	assert.Equal(t, "auth.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "localhost:8088", cfg.Server.HTTPAddress)
	assert.Equal(t, 10*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 2*time.Hour, cfg.Workers.SweepInterval)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON("/does/not/exist.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading a json file")
}

func TestParseJSON_MalformedJSON(t *testing.T) {
	path := writeTempJSONConfig(t, "not an object")

	_, err := parseJSON(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{name: "string form", input: `"1h"`, expected: time.Hour},
		{name: "numeric nanoseconds", input: `1000000000`, expected: time.Second},
		{name: "invalid string", input: `"soon"`, wantErr: true},
		{name: "invalid json", input: `{`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, time.Duration(d))
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(Duration(90 * time.Second))
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(out))
}
