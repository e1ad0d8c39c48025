package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tradepost/tradepost-daemon/config"
)

func TestDefaults(t *testing.T) {
	require.Equal(t, 9945, config.GetInt(config.ListeningPortKey))
	require.Equal(t, ":9945", config.GetAddress())
	require.Equal(t, time.Hour, config.GetDuration(config.TradeExpiryDurationKey))
	require.Equal(t, 10*time.Minute, config.GetDuration(config.CounterOfferExpiryDurationKey))
	require.Equal(t, float64(500), config.GetFloat(config.CashAdjustmentCeilingKey))
	require.Equal(t, 30*time.Second, config.GetMillisDuration(config.NegotiatorRequestTimeoutKey))
	require.NotEmpty(t, config.GetDatadir())
}

func TestSetOverride(t *testing.T) {
	config.Set(config.TradeExpiryDurationKey, 120)
	defer config.Set(config.TradeExpiryDurationKey, 3600)

	require.Equal(t, 2*time.Minute, config.GetDuration(config.TradeExpiryDurationKey))
}

func TestValidate(t *testing.T) {
	require.NotPanics(t, config.Validate)

	t.Run("invalid_negotiator_endpoint", func(t *testing.T) {
		config.Set(config.NegotiatorEndpointKey, "not a url")
		defer config.Set(
			config.NegotiatorEndpointKey, "http://localhost:8788/functions/v1/negotiate",
		)

		require.Panics(t, config.Validate)
	})

	t.Run("non_positive_expiry", func(t *testing.T) {
		config.Set(config.TradeExpiryDurationKey, 0)
		defer config.Set(config.TradeExpiryDurationKey, 3600)

		require.Panics(t, config.Validate)
	})
}
