// Package countdown computes the display state of a counter-offer expiry
// timer as a pure function of the wall clock, so UIs can recompute it every
// second with whatever scheduling primitive they have without owning any
// timer state.
package countdown

import (
	"fmt"
	"time"
)

// Countdown is the display state of an expiring counter offer.
type Countdown struct {
	RemainingLabel  string
	ProgressPercent float64
	IsExpired       bool
}

// Compute returns the countdown state for an offer expiring at expiryTime,
// given the total validity window it started with. Progress decays linearly
// from 100 at the start of the window to 0 at expiry, and reaching or
// passing the expiration flips IsExpired. The expiry is a presentation
// state only, retracting the offer belongs to the negotiation agent.
func Compute(now, expiryTime time.Time, totalDuration time.Duration) Countdown {
	remaining := expiryTime.Sub(now)
	if remaining <= 0 {
		return Countdown{
			RemainingLabel: "0:00",
			IsExpired:      true,
		}
	}

	progress := float64(remaining) / float64(totalDuration) * 100
	if progress > 100 {
		progress = 100
	}

	secs := int(remaining.Round(time.Second) / time.Second)
	return Countdown{
		RemainingLabel:  fmt.Sprintf("%d:%02d", secs/60, secs%60),
		ProgressPercent: progress,
	}
}
