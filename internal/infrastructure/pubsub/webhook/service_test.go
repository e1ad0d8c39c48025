package webhookpubsub_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tradepost/tradepost-daemon/internal/core/application"
	webhookpubsub "github.com/tradepost/tradepost-daemon/internal/infrastructure/pubsub/webhook"
)

var testMessage = `{"proposal_id":"fe2b1b15-1a25-4a3a-b21c-77d403e4b5cf","status":"accepted"}`

func TestWebhookPubSubService(t *testing.T) {
	var acceptedCalls, allActionsCalls, securedCalls int32

	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/accepted":
				body, _ := io.ReadAll(r.Body)
				contentType := r.Header.Get("Content-Type")
				if string(body) == testMessage && contentType == "application/json" {
					atomic.AddInt32(&acceptedCalls, 1)
				}
			case "/allactions":
				atomic.AddInt32(&allActionsCalls, 1)
			case "/secured":
				auth := r.Header.Get("Authorization")
				if strings.HasPrefix(auth, "Bearer ") {
					atomic.AddInt32(&securedCalls, 1)
				}
			}
			w.WriteHeader(http.StatusOK)
		},
	))
	t.Cleanup(server.Close)

	pubsubSvc, err := webhookpubsub.NewWebhookPubSubService(
		t.TempDir(), 5*time.Second, nil,
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		//nolint
		pubsubSvc.Close()
	})

	acceptedID, err := pubsubSvc.Subscribe(
		application.TopicTradeProposalAccepted, server.URL+"/accepted", "",
	)
	require.NoError(t, err)
	require.NotEmpty(t, acceptedID)

	allActionsID, err := pubsubSvc.Subscribe(
		"*", server.URL+"/allactions", "",
	)
	require.NoError(t, err)
	require.NotEmpty(t, allActionsID)

	securedID, err := pubsubSvc.Subscribe(
		application.TopicTradeProposalAccepted, server.URL+"/secured", "supersecret",
	)
	require.NoError(t, err)
	require.NotEmpty(t, securedID)

	t.Run("unknown topic", func(t *testing.T) {
		_, err := pubsubSvc.Subscribe("NOT_A_TOPIC", server.URL, "")
		require.ErrorIs(t, err, webhookpubsub.ErrInvalidTopic)
	})

	t.Run("invalid endpoint", func(t *testing.T) {
		_, err := pubsubSvc.Subscribe(
			application.TopicTradeProposalAccepted, "not a url", "",
		)
		require.ErrorIs(t, err, webhookpubsub.ErrInvalidEndpoint)
	})

	subs := pubsubSvc.ListSubscriptionsForTopic(application.TopicTradeProposalAccepted)
	require.Len(t, subs, 3)

	subs = pubsubSvc.ListSubscriptionsForTopic(application.TopicTradeProposalRejected)
	require.Len(t, subs, 1)
	require.Equal(t, allActionsID, subs[0].Id())

	err = pubsubSvc.Publish(application.TopicTradeProposalAccepted, testMessage)
	require.NoError(t, err)
	require.Equal(t, int32(1), atomic.LoadInt32(&acceptedCalls))
	require.Equal(t, int32(1), atomic.LoadInt32(&allActionsCalls))
	require.Equal(t, int32(1), atomic.LoadInt32(&securedCalls))

	// Events for other topics only reach the catch-all subscription.
	err = pubsubSvc.Publish(application.TopicTradeProposalRejected, testMessage)
	require.NoError(t, err)
	require.Equal(t, int32(1), atomic.LoadInt32(&acceptedCalls))
	require.Equal(t, int32(2), atomic.LoadInt32(&allActionsCalls))

	err = pubsubSvc.Unsubscribe("", acceptedID)
	require.NoError(t, err)

	err = pubsubSvc.Publish(application.TopicTradeProposalAccepted, testMessage)
	require.NoError(t, err)
	require.Equal(t, int32(1), atomic.LoadInt32(&acceptedCalls))
	require.Equal(t, int32(2), atomic.LoadInt32(&securedCalls))
}
