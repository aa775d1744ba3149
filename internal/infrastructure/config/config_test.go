package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndEnvOverrides(t *testing.T) {
	t.Setenv("PERKLOOP_DATABASE_DRIVER", "sqlite")
	t.Setenv("PERKLOOP_SERVER_PORT", "9090")
	t.Setenv("PERKLOOP_YIELD_FEE_POLICY", "flat-5")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "flat-5", cfg.Yield.FeePolicy)
	assert.Equal(t, "JPY", cfg.Yield.DepositCurrency)
	assert.Equal(t, 1800, cfg.Feeds.ExchangeRate.IntervalSeconds)
	assert.Equal(t, "USDC", cfg.Feeds.APY.Symbol)
	assert.Equal(t, "0 9 * * *", cfg.Scheduler.MaturityDigestCron)
	assert.Same(t, cfg, Get())
}

func TestLoad_Rejects(t *testing.T) {
	t.Run("unsupported driver", func(t *testing.T) {
		t.Setenv("PERKLOOP_DATABASE_DRIVER", "oracle")
		_, err := Load("")
		assert.ErrorContains(t, err, "oracle")
	})

	t.Run("non-positive feed interval", func(t *testing.T) {
		t.Setenv("PERKLOOP_DATABASE_DRIVER", "sqlite")
		t.Setenv("PERKLOOP_FEEDS_APY_INTERVAL_SECONDS", "0")
		_, err := Load("")
		assert.ErrorContains(t, err, "feed intervals")
	})

	t.Run("unknown fee policy", func(t *testing.T) {
		t.Setenv("PERKLOOP_DATABASE_DRIVER", "sqlite")
		t.Setenv("PERKLOOP_YIELD_FEE_POLICY", "flat-7")
		_, err := Load("")
		assert.ErrorContains(t, err, `unknown fee policy version "flat-7"`)
		assert.ErrorContains(t, err, "tiered-1-20")
	})

	t.Run("default jwt secret in release", func(t *testing.T) {
		t.Setenv("PERKLOOP_DATABASE_DRIVER", "sqlite")
		_, err := Load("release")
		assert.ErrorContains(t, err, "auth.jwt.secret")
	})
}

func TestLoad_ReleaseWithSecret(t *testing.T) {
	t.Setenv("PERKLOOP_DATABASE_DRIVER", "sqlite")
	t.Setenv("PERKLOOP_AUTH_JWT_SECRET", "a-real-secret")

	cfg, err := Load("release")
	require.NoError(t, err)
	assert.Equal(t, "release", cfg.Server.Mode)
}
