package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.Server.Port)
	assert.Equal(t, "storefront", cfg.Mongo.Database)
	assert.True(t, cfg.Mongo.Transactions)
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.Equal(t, "skip", cfg.Checkout.MissingProduct)
	assert.Equal(t, "zero", cfg.Checkout.MissingSize)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "9090")
	t.Setenv("MONGO_TRANSACTIONS", "false")
	t.Setenv("CHECKOUT_MISSING_SIZE", "REJECT")
	t.Setenv("JWT_TTL", "2h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.False(t, cfg.Mongo.Transactions)
	assert.Equal(t, "reject", cfg.Checkout.MissingSize)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{"JWT_SECRET": ""}},
		{"unknown driver", map[string]string{"JWT_SECRET": "s", "STORAGE_DRIVER": "ftp"}},
		{"s3 without bucket", map[string]string{"JWT_SECRET": "s", "STORAGE_DRIVER": "s3"}},
		{"bad size policy", map[string]string{"JWT_SECRET": "s", "CHECKOUT_MISSING_SIZE": "ignore"}},
		{"bad product policy", map[string]string{"JWT_SECRET": "s", "CHECKOUT_MISSING_PRODUCT": "zero"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
