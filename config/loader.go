package config

import (
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the global application configuration
var Config AppConfig

// LoadAppConfig loads and validates the application configuration from config.yml
func LoadAppConfig() error {
	paths := []string{"config.yml", "./config/config.yml"}
	var data []byte
	var err error
	var found string
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			found = p
			break
		}
	}
	if err != nil {
		return err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return err
	}
	v := validator.New()
	if err := v.Struct(cfg.Server); err != nil {
		return err
	}
	// endpoints are optional; if present validate each and load its schema
	baseDir := filepath.Dir(found)
	for i := range cfg.Endpoints {
		if err := v.Struct(cfg.Endpoints[i]); err != nil {
			return err
		}
		if cfg.Endpoints[i].SchemaFile != "" {
			schema, err := LoadSchema(resolvePath(baseDir, cfg.Endpoints[i].SchemaFile))
			if err != nil {
				return err
			}
			cfg.Endpoints[i].Schema = schema
		}
	}
	Config = cfg
	if Config.Server.Port == 0 {
		Config.Server.Port = 16181
	}
	return nil
}

// LoadSchema reads a schema document from disk. The core only ever sees
// schema text; file retrieval stays in the configuration layer.
func LoadSchema(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// SelectEndpoint chooses an endpoint by name; fallback to first; nil if none.
func SelectEndpoint(name string) *Endpoint {
	if name != "" {
		for i := range Config.Endpoints {
			if Config.Endpoints[i].Name == name {
				return &Config.Endpoints[i]
			}
		}
	}
	if len(Config.Endpoints) > 0 {
		return &Config.Endpoints[0]
	}
	return nil
}

func resolvePath(baseDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
