package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhive/BookingService/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "localhost"
user = "booking"
dbname = "booking"

[catalog_service]
url = "http://localhost:8081"

[identity_service]
url = "http://localhost:8082"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, domain.DefaultBookingWindowDays, cfg.Booking.WindowDays)
	assert.Equal(t, 5, cfg.CatalogService.Timeout)
	assert.InDelta(t, 10.0, cfg.RateLimit.RPS, 0.001)
}

func TestLoad_ExplicitValuesKept(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db.internal"
port = 5433
user = "booking"
password = "secret"
dbname = "booking"
sslmode = "require"

[catalog_service]
url = "http://catalog:8081"

[identity_service]
url = "http://identity:8082"

[booking]
window_days = 14
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 14, cfg.Booking.WindowDays)
	assert.Contains(t, cfg.Database.DSN(), "host=db.internal")
	assert.Contains(t, cfg.Database.DSN(), "sslmode=require")
}

func TestLoad_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing database host",
			content: `
[database]
user = "booking"
dbname = "booking"

[catalog_service]
url = "http://localhost:8081"

[identity_service]
url = "http://localhost:8082"
`,
		},
		{
			name: "missing catalog url",
			content: `
[database]
host = "localhost"
user = "booking"
dbname = "booking"

[identity_service]
url = "http://localhost:8082"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_UnreadableFile(t *testing.T) {
	_, err := Load("/nonexistent/config.toml")
	assert.Error(t, err)
}
