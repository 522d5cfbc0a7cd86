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
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenAudience string   `json:"token_audience"`
		TokenDuration Duration `json:"token_duration"`
		Environment   string   `json:"environment"`
		Version       string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	RateLimit struct {
		MaxRequests       int      `json:"max_requests"`
		Window            Duration `json:"window"`
		Backend           string   `json:"backend"`
		RedisAddress      string   `json:"redis_address"`
		TrustForwardedFor bool     `json:"trust_forwarded_for"`
		JanitorInterval   Duration `json:"janitor_interval"`
	} `json:"rate_limit,omitempty"`

	Retry struct {
		MaxRetries int      `json:"max_retries"`
		BaseDelay  Duration `json:"base_delay"`
	} `json:"retry,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Client struct {
		DSN     string `json:"dsn"`
		LogFile string `json:"log_file"`
	} `json:"client,omitempty"`
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
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenAudience: jsonCfg.App.TokenAudience,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			Environment:   jsonCfg.App.Environment,
			Version:       jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{DSN: jsonCfg.Storage.DB.DSN},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		RateLimit: RateLimit{
			MaxRequests:       jsonCfg.RateLimit.MaxRequests,
			Window:            time.Duration(jsonCfg.RateLimit.Window),
			Backend:           jsonCfg.RateLimit.Backend,
			RedisAddress:      jsonCfg.RateLimit.RedisAddress,
			TrustForwardedFor: jsonCfg.RateLimit.TrustForwardedFor,
			JanitorInterval:   time.Duration(jsonCfg.RateLimit.JanitorInterval),
		},
		Retry: Retry{
			MaxRetries: jsonCfg.Retry.MaxRetries,
			BaseDelay:  time.Duration(jsonCfg.Retry.BaseDelay),
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Client: Client{
			DB:      DB{DSN: jsonCfg.Client.DSN},
			LogFile: jsonCfg.Client.LogFile,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
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
