package countdown_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tradepost/tradepost-daemon/pkg/countdown"
)

var (
	totalDuration = 10 * time.Minute
	expiryTime    = time.Date(2024, 6, 1, 12, 10, 0, 0, time.UTC)
)

func TestComputeAtWindowStart(t *testing.T) {
	now := expiryTime.Add(-totalDuration)

	c := countdown.Compute(now, expiryTime, totalDuration)
	require.False(t, c.IsExpired)
	require.Equal(t, float64(100), c.ProgressPercent)
	require.Equal(t, "10:00", c.RemainingLabel)
}

func TestComputeAtExpiry(t *testing.T) {
	c := countdown.Compute(expiryTime, expiryTime, totalDuration)
	require.True(t, c.IsExpired)
	require.Equal(t, float64(0), c.ProgressPercent)
	require.Equal(t, "0:00", c.RemainingLabel)
}

func TestComputePastExpiry(t *testing.T) {
	now := expiryTime.Add(30 * time.Second)

	c := countdown.Compute(now, expiryTime, totalDuration)
	require.True(t, c.IsExpired)
	require.Equal(t, float64(0), c.ProgressPercent)
}

func TestComputeMidWindow(t *testing.T) {
	now := expiryTime.Add(-totalDuration / 2)

	c := countdown.Compute(now, expiryTime, totalDuration)
	require.False(t, c.IsExpired)
	require.Equal(t, float64(50), c.ProgressPercent)
	require.Equal(t, "5:00", c.RemainingLabel)
}

func TestComputeProgressIsMonotonic(t *testing.T) {
	prev := float64(101)
	for now := expiryTime.Add(-totalDuration); now.Before(expiryTime.Add(time.Minute)); now = now.Add(13 * time.Second) {
		c := countdown.Compute(now, expiryTime, totalDuration)
		require.LessOrEqual(t, c.ProgressPercent, prev)
		prev = c.ProgressPercent
	}
}
