// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Endpoint schema documents are read from disk here, so the rest of the
// system only ever handles schema text.
package config
