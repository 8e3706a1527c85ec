package tracking_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tracking "github.com/marketbeam/tracking"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := tracking.LoadConfig()
		require.NoError(t, err)

		assert.Empty(t, cfg.CollectorURL)
		assert.Empty(t, cfg.MeasurementID)
		assert.Equal(t, 30*time.Minute, cfg.SessionTimeout)
		assert.Equal(t, "trk", cfg.AnonymousIDPrefix)
		assert.Equal(t, "trk_session", cfg.SessionKey)
		assert.Equal(t, "trk_identity", cfg.IdentityKey)
		assert.Equal(t, "trk_consent", cfg.ConsentKey)
		assert.Equal(t, 10*time.Second, cfg.DispatchTimeout)
	})

	t.Run("reads environment", func(t *testing.T) {
		t.Setenv("TRACKING_COLLECTOR_URL", "https://api.example.com/api/content/tracking/")
		t.Setenv("TRACKING_GA_MEASUREMENT_ID", "G-ABC123")
		t.Setenv("TRACKING_GA_API_SECRET", "s3cret")
		t.Setenv("TRACKING_SESSION_TIMEOUT", "45m")
		t.Setenv("TRACKING_ANONYMOUS_ID_PREFIX", "mb")

		cfg, err := tracking.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "https://api.example.com/api/content/tracking/", cfg.CollectorURL)
		assert.Equal(t, "G-ABC123", cfg.MeasurementID)
		assert.Equal(t, "s3cret", cfg.APISecret)
		assert.Equal(t, 45*time.Minute, cfg.SessionTimeout)
		assert.Equal(t, "mb", cfg.AnonymousIDPrefix)
	})

	t.Run("invalid duration", func(t *testing.T) {
		t.Setenv("TRACKING_SESSION_TIMEOUT", "not-a-duration")

		_, err := tracking.LoadConfig()
		assert.ErrorIs(t, err, tracking.ErrParsingConfig)
	})
}
