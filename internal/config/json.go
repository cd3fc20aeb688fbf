package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON-friendly field
// types (durations as strings) for file-based configuration.
type StructuredJSONConfig struct {
	Auth struct {
		ValidFields      []string `json:"valid_fields"`
		SessionSignKey   string   `json:"session_sign_key"`
		SessionIssuer    string   `json:"session_issuer"`
		SessionDuration  Duration `json:"session_duration"`
		RememberDuration Duration `json:"remember_duration"`
		BcryptCost       int      `json:"bcrypt_cost"`
		CookieInsecure   bool     `json:"cookie_insecure"`
		Redirects        struct {
			Login        string `json:"login"`
			LoginFailure string `json:"login_failure"`
			Logout       string `json:"logout"`
		} `json:"redirects,omitempty"`
	} `json:"auth,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Workers struct {
		SweepInterval Duration `json:"sweep_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Auth: Auth{
			ValidFields:      jsonCfg.Auth.ValidFields,
			SessionSignKey:   jsonCfg.Auth.SessionSignKey,
			SessionIssuer:    jsonCfg.Auth.SessionIssuer,
			SessionDuration:  time.Duration(jsonCfg.Auth.SessionDuration),
			RememberDuration: time.Duration(jsonCfg.Auth.RememberDuration),
			BcryptCost:       jsonCfg.Auth.BcryptCost,
			CookieInsecure:   jsonCfg.Auth.CookieInsecure,
			Redirects: Redirects{
				Login:        jsonCfg.Auth.Redirects.Login,
				LoginFailure: jsonCfg.Auth.Redirects.LoginFailure,
				Logout:       jsonCfg.Auth.Redirects.Logout,
			},
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Workers: Workers{
			SweepInterval: time.Duration(jsonCfg.Workers.SweepInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
