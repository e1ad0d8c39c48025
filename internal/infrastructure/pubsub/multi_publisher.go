// Package pubsub provides helpers to compose the notification backends of
// the daemon.
package pubsub

import (
	"golang.org/x/sync/errgroup"

	"github.com/tradepost/tradepost-daemon/internal/core/ports"
)

type multiPublisher struct {
	publishers []ports.Publisher
}

// NewMultiPublisher returns a ports.Publisher forwarding every message to
// all the given publishers. Publish returns the first error encountered but
// always attempts the whole list.
func NewMultiPublisher(publishers ...ports.Publisher) ports.Publisher {
	return &multiPublisher{publishers: publishers}
}

func (m *multiPublisher) Publish(topic string, message string) error {
	eg := &errgroup.Group{}
	for i := range m.publishers {
		publisher := m.publishers[i]
		eg.Go(func() error { return publisher.Publish(topic, message) })
	}
	return eg.Wait()
}
