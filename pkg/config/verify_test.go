package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyAgainstEmbeddedSchema(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr string
	}{
		{name: "default config", modify: func(c *Config) {}},
		{
			name:    "missing server listen",
			modify:  func(c *Config) { c.Server.Listen = "" },
			wantErr: "server.listen is required",
		},
		{
			name:    "missing validator batch size",
			modify:  func(c *Config) { c.Validator.BatchSize = 0 },
			wantErr: "validator.batch_size is required",
		},
		{
			name:    "sync enabled without schedule",
			modify:  func(c *Config) { c.Sync.Enabled = true; c.Sync.Schedule = "" },
			wantErr: "sync.schedule is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := VerifyAgainstEmbeddedSchema(cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGenerateSchema(t *testing.T) {
	schema, err := GenerateSchema()
	require.NoError(t, err)
	require.NotNil(t, schema)
	require.NotNil(t, schema.Definitions)
	cfgDef, ok := schema.Definitions["Config"]
	require.True(t, ok)
	_, ok = cfgDef.Properties.Get("validator")
	assert.True(t, ok)
	_, ok = cfgDef.Properties.Get("discovery")
	assert.True(t, ok)
}
