package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SESSION_TTL", "2h")

	cfg, err := NewConfig()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "fintrack", cfg.Mongo.Database)
	require.Equal(t, 2*time.Hour, cfg.SessionTTL)
	require.Equal(t, 3, cfg.Scheduler.ReminderDaysAhead)
	require.False(t, cfg.MailEnabled())

	key, err := cfg.EncryptionKeyBytes()
	require.NoError(t, err)
	require.Len(t, key, 32)
}

func TestNewConfig_InvalidEncryptionKey(t *testing.T) {
	t.Setenv("ENCRYPTION_KEY", "not-hex")

	_, err := NewConfig()
	require.Error(t, err)

	t.Setenv("ENCRYPTION_KEY", "a1b2c3")
	_, err = NewConfig()
	require.ErrorContains(t, err, "16, 24 or 32 bytes")
}
