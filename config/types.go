package config

// ServerConfig contains server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gte=0"`
}

// Endpoint declares one schema-gated response endpoint.
type Endpoint struct {
	Name        string `yaml:"name" validate:"required"`
	Path        string `yaml:"path" validate:"omitempty,startswith=/"`
	Format      string `yaml:"format" validate:"required,oneof=json xml"`
	StatusCode  string `yaml:"statusCode" validate:"required"`
	ContentType string `yaml:"contentType"`
	Location    string `yaml:"location"`
	SchemaFile  string `yaml:"schemaFile"`

	// Schema holds the loaded schema document text; empty means responses on
	// this endpoint are not validated.
	Schema string `yaml:"-"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server    ServerConfig `yaml:"server" validate:"required"`
	Endpoints []Endpoint   `yaml:"endpoints"`
}
