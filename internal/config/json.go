package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk shape of the JSON config file.
type StructuredJSONConfig struct {
	App struct {
		LogLevel string `json:"log_level"`
		Version  string `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		Driver   string `json:"driver"`
		DSN      string `json:"dsn"`
		TreePath string `json:"tree_path"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		PushURL        string   `json:"push_url"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Workers struct {
		JobTimeout Duration `json:"job_timeout"`
	} `json:"workers,omitempty"`

	Push struct {
		APIKey      string `json:"api_key"`
		ReferenceID string `json:"reference_id"`
		Tag         string `json:"tag"`
	} `json:"push,omitempty"`
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
		App: App{
			LogLevel: jsonCfg.App.LogLevel,
			Version:  jsonCfg.App.Version,
		},
		Storage: Storage{
			Driver:   jsonCfg.Storage.Driver,
			DSN:      jsonCfg.Storage.DSN,
			TreePath: jsonCfg.Storage.TreePath,
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Adapter: Adapter{
			PushURL:        jsonCfg.Adapter.PushURL,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Workers: Workers{
			JobTimeout: time.Duration(jsonCfg.Workers.JobTimeout),
		},
		Push: Push{
			APIKey:      jsonCfg.Push.APIKey,
			ReferenceID: jsonCfg.Push.ReferenceID,
			Tag:         jsonCfg.Push.Tag,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
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
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
