package config

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	// parse schema
	var schema map[string]interface{}
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	// convert config to JSON for validation
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	var configMap map[string]interface{}
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	// every top-level key of the config must be declared by the schema
	if err := checkKnownSections(schema, configMap); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// checkKnownSections makes sure the schema describes all config sections
func checkKnownSections(schema, configMap map[string]interface{}) error {
	defs, ok := schema["$defs"].(map[string]interface{})
	if !ok {
		return fmt.Errorf("schema has no definitions")
	}
	cfgDef, ok := defs["Config"].(map[string]interface{})
	if !ok {
		return fmt.Errorf("schema has no Config definition")
	}
	props, ok := cfgDef["properties"].(map[string]interface{})
	if !ok {
		return fmt.Errorf("schema Config has no properties")
	}
	for key := range configMap {
		if _, found := props[key]; !found {
			return fmt.Errorf("config section %q is not described by schema", key)
		}
	}
	return nil
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if cfg.Server.Timeout == 0 {
		return fmt.Errorf("server.timeout is required")
	}
	if cfg.Validator.Timeout == 0 {
		return fmt.Errorf("validator.timeout is required")
	}
	if cfg.Validator.BatchSize == 0 {
		return fmt.Errorf("validator.batch_size is required")
	}
	if cfg.Collector.Timeout == 0 {
		return fmt.Errorf("collector.timeout is required")
	}
	if cfg.Sync.Enabled && cfg.Sync.Schedule == "" {
		return fmt.Errorf("sync.schedule is required when sync is enabled")
	}
	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}
