package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Env:             "development",
		Port:            "5000",
		JWTSecret:       "secure-secret-at-least-32-chars-long",
		DBDriver:        "postgres",
		DBPassword:      "secure-password",
		DBSSLMode:       "require",
		StorageDriver:   "local",
		SessionTTLHours: 24,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
	}{
		{"valid development", func(_ *Config) {}, false},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"missing secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"negative session ttl", func(c *Config) { c.SessionTTLHours = -1 }, true},
		{"unknown db driver", func(c *Config) { c.DBDriver = "mysql" }, true},
		{"sqlite driver", func(c *Config) { c.DBDriver = "sqlite" }, false},
		{"s3 without bucket", func(c *Config) { c.StorageDriver = "s3" }, true},
		{"s3 with bucket", func(c *Config) { c.StorageDriver = "s3"; c.S3Bucket = "uploads" }, false},
		{"unknown storage driver", func(c *Config) { c.StorageDriver = "ftp" }, true},
		{"production default secret", func(c *Config) { c.Env = "production"; c.JWTSecret = defaultJWTSecret }, true},
		{"production short secret", func(c *Config) { c.Env = "production"; c.JWTSecret = "short" }, true},
		{"production default db password", func(c *Config) { c.Env = "prod"; c.DBPassword = "password" }, true},
		{"production sqlite ignores db password", func(c *Config) {
			c.Env = "production"
			c.DBDriver = "sqlite"
			c.DBPassword = ""
		}, false},
		{"production valid", func(c *Config) { c.Env = "production" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_IsProduction(t *testing.T) {
	assert.True(t, (&Config{Env: "production"}).IsProduction())
	assert.True(t, (&Config{Env: "prod"}).IsProduction())
	assert.False(t, (&Config{Env: "development"}).IsProduction())
}

func TestLoadConfig_EnvOverridesDefaults(t *testing.T) {
	defer viper.Reset()

	t.Setenv("APP_ENV", "test")
	t.Setenv("PORT", "6060")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SESSION_TTL_HOURS", "2")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "6060", c.Port)
	assert.Equal(t, "sqlite", c.DBDriver)
	assert.Equal(t, 2, c.SessionTTLHours)
	assert.Equal(t, "gpt-4o", c.OpenAIModel)
	assert.Equal(t, 30, c.LeaderboardCacheS)
	assert.True(t, strings.Contains(c.FeatureFlags, "targeted_chat"))
}
