package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/samandr77/microservices/compliance/pkg/config"
)

//nolint:paralleltest
func TestNew(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")

	err := os.WriteFile(envPath, []byte("REFERENCE_DATE=2024-05-15\nKAFKA_BROKERS=a:9092,b:9092\nAI_TIMEOUT=5s\nFETCH_ALLOWED_HOSTS=docs.example.com,files.example.com\n"), 0o600)
	require.NoError(t, err)

	t.Cleanup(func() {
		for _, k := range []string{"REFERENCE_DATE", "KAFKA_BROKERS", "AI_TIMEOUT", "FETCH_ALLOWED_HOSTS"} {
			_ = os.Unsetenv(k)
		}
	})

	cfg, err := config.New(envPath)
	require.NoError(t, err)

	require.Equal(t, "2024-05-15", cfg.ReferenceDate)
	require.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	require.True(t, cfg.Kafka.Enabled())
	require.Equal(t, 5*time.Second, cfg.AI.Timeout)
	require.Equal(t, "gemini-2.5-flash", cfg.AI.Model)
	require.InDelta(t, 0.7, cfg.AI.Temperature, 1e-9)
	require.Equal(t, 2500*time.Millisecond, cfg.AnalysisDelay)
	require.Equal(t, "memory", cfg.Blob.Driver)
	require.False(t, cfg.Mailer.Enabled())
	require.Equal(t, []string{"docs.example.com", "files.example.com"}, cfg.Fetch.AllowedHosts)
	require.False(t, cfg.Fetch.AllowPrivate)
	require.Equal(t, int64(64<<20), cfg.Fetch.MaxBytes)
	require.Equal(t, 1000, cfg.AI.MaxSessions)
	require.Equal(t, 24*time.Hour, cfg.AI.SessionTTL)
}

//nolint:paralleltest
func TestNew_MissingFile(t *testing.T) {
	cfg, err := config.New(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.HTTPPort)
}
