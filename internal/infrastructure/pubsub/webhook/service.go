// Package webhookpubsub delivers trade and negotiation notifications to
// registered webhook endpoints.
package webhookpubsub

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/golang-jwt/jwt"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/errgroup"

	"github.com/tradepost/tradepost-daemon/internal/core/ports"
)

type webhookService struct {
	store      *webhookStore
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker
}

// NewWebhookPubSubService returns a ports.PubSub that persists its
// subscriptions in a badger store under dbDir and POSTs event payloads to
// every matching endpoint.
func NewWebhookPubSubService(
	dbDir string, requestTimeout time.Duration, logger badger.Logger,
) (WebhookPubSub, error) {
	store, err := newWebhookStore(dbDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening webhook store: %w", err)
	}

	return &webhookService{
		store:      store,
		httpClient: &http.Client{Timeout: requestTimeout},
		cb:         newCircuitBreaker(),
	}, nil
}

// WebhookPubSub is a ports.PubSub with a Close method releasing the
// underlying store.
type WebhookPubSub interface {
	ports.PubSub

	Close() error
}

func (ws *webhookService) Subscribe(topic, endpoint, secret string) (string, error) {
	actionType, ok := WebhookActionFromString(topic)
	if !ok {
		return "", ErrInvalidTopic
	}

	hook, err := NewWebhook(actionType, endpoint, secret)
	if err != nil {
		return "", err
	}

	if err := ws.store.addWebhook(hook); err != nil {
		return "", err
	}
	return hook.ID, nil
}

func (ws *webhookService) Unsubscribe(_, id string) error {
	return ws.store.removeWebhook(id)
}

func (ws *webhookService) ListSubscriptionsForTopic(topic string) []ports.Subscription {
	actionType, ok := WebhookActionFromString(topic)
	if !ok {
		return nil
	}

	hooks := ws.hooksForAction(actionType)
	subs := make([]ports.Subscription, len(hooks))
	for i, h := range hooks {
		subs[i] = h
	}
	return subs
}

// Publish makes a POST request to every webhook endpoint registered for the
// given topic, those subscribed for all topics included. A circuit breaker
// maximizes the chances that every webhook gets invoked without errors.
func (ws *webhookService) Publish(topic string, message string) error {
	actionType, ok := WebhookActionFromString(topic)
	if !ok {
		return ErrUnknownWebhookAction
	}

	hooks := ws.hooksForAction(actionType)

	eg := &errgroup.Group{}
	for i := range hooks {
		hook := hooks[i]
		eg.Go(func() error { return ws.doRequest(hook, message) })
	}
	return eg.Wait()
}

func (ws *webhookService) Close() error {
	return ws.store.close()
}

func (ws *webhookService) hooksForAction(actionType WebhookAction) []*Webhook {
	hooks := ws.store.getWebhooksForAction(actionType)
	if actionType != AllActions {
		hooksForAllActions := ws.store.getWebhooksForAction(AllActions)
		hooks = append(hooks, hooksForAllActions...)
	}
	return hooks
}

func (ws *webhookService) doRequest(hook *Webhook, payload string) error {
	_, err := ws.cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequest(
			http.MethodPost, hook.Endpoint, strings.NewReader(payload),
		)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		if hook.IsSecured() {
			token := jwt.New(jwt.SigningMethodHS256)
			tokenString, _ := token.SignedString([]byte(hook.Secret))
			req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", tokenString))
		}

		res, err := ws.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer res.Body.Close()

		if res.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(res.Body)
			return nil, fmt.Errorf(
				"webhook returned status %d: %s", res.StatusCode, string(body),
			)
		}
		return nil, nil
	})

	return err
}

func newCircuitBreaker() *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: "webhook",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests > 20 && failureRatio >= 0.7
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if to == gobreaker.StateOpen {
				log.Warn("webhook endpoints seem down, stop allowing requests")
			}
			if from == gobreaker.StateOpen && to == gobreaker.StateHalfOpen {
				log.Info("checking webhook endpoints status")
			}
			if from == gobreaker.StateHalfOpen && to == gobreaker.StateClosed {
				log.Info("webhook endpoints seem ok, restart allowing requests")
			}
		},
	})
}
