package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name:    "load default configuration",
			envVars: map[string]string{},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "0.0.0.0", cfg.ServerHost)
				assert.Equal(t, 8080, cfg.ServerPort)
				assert.Equal(t, DriverBadger, cfg.DBDriver)
				assert.Equal(t, "./data", cfg.KVPath)
				assert.True(t, cfg.KVSyncWrites)
				assert.Equal(t, 25, cfg.DBMaxOpenConnections)
				assert.Equal(t, 5, cfg.DBMaxIdleConnections)
				assert.Equal(t, 5*time.Minute, cfg.DBConnMaxLifetime)
				assert.Equal(t, "info", cfg.LogLevel)
				assert.Equal(t, 14400*time.Second, cfg.AuthTokenExpiration)
				assert.Empty(t, cfg.AuditSigningKey)
				assert.Equal(t, "datashare", cfg.MetricsNamespace)
				assert.Equal(t, 10, cfg.LockoutMaxAttempts)
				assert.Equal(t, 30*time.Minute, cfg.LockoutDuration)
			},
		},
		{
			name: "load custom server configuration",
			envVars: map[string]string{
				"SERVER_HOST": "localhost",
				"SERVER_PORT": "9090",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "localhost", cfg.ServerHost)
				assert.Equal(t, 9090, cfg.ServerPort)
			},
		},
		{
			name: "load custom sql storage configuration",
			envVars: map[string]string{
				"DB_DRIVER":               "mysql",
				"DB_CONNECTION_STRING":    "user:password@tcp(localhost:3306)/testdb",
				"DB_MAX_OPEN_CONNECTIONS": "50",
				"DB_CONN_MAX_LIFETIME":    "10",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DriverMySQL, cfg.DBDriver)
				assert.True(t, cfg.IsSQLDriver())
				assert.Equal(t, "user:password@tcp(localhost:3306)/testdb", cfg.DBConnectionString)
				assert.Equal(t, 50, cfg.DBMaxOpenConnections)
				assert.Equal(t, 10*time.Minute, cfg.DBConnMaxLifetime)
			},
		},
		{
			name: "load custom embedded storage configuration",
			envVars: map[string]string{
				"DB_DRIVER":      "leveldb",
				"KV_PATH":        "/var/lib/datashare",
				"KV_SYNC_WRITES": "false",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DriverLevelDB, cfg.DBDriver)
				assert.False(t, cfg.IsSQLDriver())
				assert.Equal(t, "/var/lib/datashare", cfg.KVPath)
				assert.False(t, cfg.KVSyncWrites)
			},
		},
		{
			name: "load custom auth configuration",
			envVars: map[string]string{
				"AUTH_TOKEN_EXPIRATION_SECONDS": "10",
				"AUDIT_SIGNING_KEY":             "signing-key",
				"LOCKOUT_MAX_ATTEMPTS":          "3",
				"LOCKOUT_DURATION_MINUTES":      "5",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 10*time.Second, cfg.AuthTokenExpiration)
				assert.Equal(t, "signing-key", cfg.AuditSigningKey)
				assert.Equal(t, 3, cfg.LockoutMaxAttempts)
				assert.Equal(t, 5*time.Minute, cfg.LockoutDuration)
			},
		},
		{
			name: "load custom log level",
			envVars: map[string]string{
				"LOG_LEVEL": "debug",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.LogLevel)
				assert.Equal(t, "debug", cfg.GetGinMode())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()

			for key, value := range tt.envVars {
				require.NoError(t, os.Setenv(key, value))
			}

			tt.validate(t, Load())
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "valid", cfg: Config{DBDriver: DriverMemory, AuditSigningKey: "k"}},
		{name: "unknown driver", cfg: Config{DBDriver: "sqlite", AuditSigningKey: "k"}, wantErr: true},
		{name: "missing signing key", cfg: Config{DBDriver: DriverBadger}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestConfig_GetGinMode(t *testing.T) {
	for _, level := range []string{"info", "warn", "error", "unknown"} {
		assert.Equal(t, "release", (&Config{LogLevel: level}).GetGinMode())
	}
}
