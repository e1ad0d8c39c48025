package httpinterface_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tradepost/tradepost-daemon/internal/core/application"
	"github.com/tradepost/tradepost-daemon/internal/core/ports"
	"github.com/tradepost/tradepost-daemon/internal/infrastructure/storage/db/inmemory"
	httpinterface "github.com/tradepost/tradepost-daemon/internal/interfaces/http"
)

type mockAgent struct {
	reply *ports.AgentReply
	err   error
}

func (m mockAgent) Negotiate(
	_ context.Context, _ ports.AgentRequest,
) (*ports.AgentReply, error) {
	return m.reply, m.err
}

type mockPubSub struct{}

func (mockPubSub) Publish(_, _ string) error { return nil }
func (mockPubSub) Subscribe(_, _, _ string) (string, error) {
	return "sub-id", nil
}
func (mockPubSub) Unsubscribe(_, _ string) error { return nil }
func (mockPubSub) ListSubscriptionsForTopic(_ string) []ports.Subscription {
	return nil
}

func newTestServer(t *testing.T, agent ports.NegotiationAgent) *httptest.Server {
	t.Helper()

	repoManager := inmemory.NewRepoManager()
	tradeSvc := application.NewTradeService(
		repoManager, nil, decimal.NewFromInt(500), time.Hour,
	)
	negotiationSvc := application.NewNegotiationService(
		repoManager, agent, nil, 10*time.Minute,
	)
	operatorSvc := application.NewOperatorService(repoManager, mockPubSub{})

	handler := httpinterface.NewHandler(tradeSvc, negotiationSvc, operatorSvc, nil)
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func postJSON(
	t *testing.T, url string, body interface{},
) (*http.Response, map[string]interface{}) {
	t.Helper()

	buf, err := json.Marshal(body)
	require.NoError(t, err)

	res, err := http.Post(url, "application/json", bytes.NewReader(buf))
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&parsed))
	res.Body.Close()
	return res, parsed
}

func addItem(t *testing.T, serverURL, title, price, sellerId string) string {
	t.Helper()

	res, body := postJSON(t, serverURL+"/v1/items", map[string]interface{}{
		"title":     title,
		"price":     price,
		"seller_id": sellerId,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	return body["id"].(string)
}

func TestTradeProposalLifecycle(t *testing.T) {
	server := newTestServer(t, mockAgent{})

	targetId := addItem(t, server.URL, "Vintage amp", "480", "seller-1")
	offeredId := addItem(t, server.URL, "Electric guitar", "400", "buyer-1")

	res, body := postJSON(t, server.URL+"/v1/trades/preview", map[string]interface{}{
		"target_item_id":   targetId,
		"offered_item_ids": []string{offeredId},
		"cash_adjustment":  "80",
	})
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "even", body["direction"])

	res, body = postJSON(t, server.URL+"/v1/trades", map[string]interface{}{
		"target_item_id":   targetId,
		"proposer_id":      "buyer-1",
		"offered_item_ids": []string{offeredId},
		"cash_adjustment":  "80",
		"message":          "fair swap?",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	require.Equal(t, true, body["success"])
	proposal := body["proposal"].(map[string]interface{})
	proposalId := proposal["id"].(string)
	require.Equal(t, "pending", proposal["status"])

	t.Run("responder must be the target owner", func(t *testing.T) {
		res, _ := postJSON(t, server.URL+"/v1/trades/respond", map[string]interface{}{
			"proposal_id":  proposalId,
			"responder_id": "someone-else",
			"action":       "accept",
		})
		require.Equal(t, http.StatusForbidden, res.StatusCode)
	})

	res, body = postJSON(t, server.URL+"/v1/trades/respond", map[string]interface{}{
		"proposal_id":  proposalId,
		"responder_id": "seller-1",
		"action":       "accept",
	})
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "accepted", body["proposal"].(map[string]interface{})["status"])

	t.Run("second decision conflicts", func(t *testing.T) {
		res, _ := postJSON(t, server.URL+"/v1/trades/respond", map[string]interface{}{
			"proposal_id":  proposalId,
			"responder_id": "seller-1",
			"action":       "reject",
		})
		require.Equal(t, http.StatusConflict, res.StatusCode)
	})

	res, body = postJSON(t, server.URL+"/v1/trades/complete", map[string]interface{}{
		"proposal_id": proposalId,
	})
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "completed", body["proposal"].(map[string]interface{})["status"])

	// items swapped owners on completion
	itemRes, err := http.Get(server.URL + "/v1/items/" + targetId)
	require.NoError(t, err)
	defer itemRes.Body.Close()
	var item map[string]interface{}
	require.NoError(t, json.NewDecoder(itemRes.Body).Decode(&item))
	require.Equal(t, "buyer-1", item["seller_id"])
	require.Equal(t, "traded", item["status"])
}

func TestTradeValidationErrors(t *testing.T) {
	server := newTestServer(t, mockAgent{})
	targetId := addItem(t, server.URL, "Road bike", "350", "seller-1")

	tests := []struct {
		name string
		body map[string]interface{}
		code int
	}{
		{
			name: "empty offer",
			body: map[string]interface{}{
				"target_item_id": targetId,
				"proposer_id":    "buyer-1",
			},
			code: http.StatusBadRequest,
		},
		{
			name: "cash over ceiling",
			body: map[string]interface{}{
				"target_item_id":  targetId,
				"proposer_id":     "buyer-1",
				"cash_adjustment": "501",
			},
			code: http.StatusBadRequest,
		},
		{
			name: "negative cash",
			body: map[string]interface{}{
				"target_item_id":  targetId,
				"proposer_id":     "buyer-1",
				"cash_adjustment": "-10",
			},
			code: http.StatusBadRequest,
		},
		{
			name: "self trade",
			body: map[string]interface{}{
				"target_item_id":  targetId,
				"proposer_id":     "seller-1",
				"cash_adjustment": "100",
			},
			code: http.StatusBadRequest,
		},
		{
			name: "unknown target",
			body: map[string]interface{}{
				"target_item_id":  "nope",
				"proposer_id":     "buyer-1",
				"cash_adjustment": "100",
			},
			code: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, _ := postJSON(t, server.URL+"/v1/trades", tt.body)
			require.Equal(t, tt.code, res.StatusCode)
		})
	}
}

func TestNegotiationMessage(t *testing.T) {
	counter := 42.5
	agent := mockAgent{
		reply: &ports.AgentReply{
			Success:            true,
			Response:           "I could let it go for $42.50.",
			ConversationId:     "conv-1",
			CounterOfferAmount: decimalPtr(counter),
		},
	}
	server := newTestServer(t, agent)
	itemId := addItem(t, server.URL, "Record player", "60", "seller-1")

	res, body := postJSON(t, server.URL+"/v1/negotiations/message", map[string]interface{}{
		"itemId":      itemId,
		"buyerId":     "buyer-1",
		"userMessage": "would you take $40?",
	})
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, true, body["success"])
	require.Equal(t, "conv-1", body["conversationId"])
	require.Equal(t, "42.5", body["counterOfferAmount"])
	require.Equal(t, float64(1), body["round"])
	require.NotZero(t, body["thinkDelayMs"])
	require.NotZero(t, body["expiresAt"])

	t.Run("acceptance fast-path skips the agent", func(t *testing.T) {
		failing := mockAgent{err: fmt.Errorf("unreachable")}
		server := newTestServer(t, failing)
		itemId := addItem(t, server.URL, "Record player", "60", "seller-1")

		res, body := postJSON(t, server.URL+"/v1/negotiations/message", map[string]interface{}{
			"itemId":      itemId,
			"buyerId":     "buyer-1",
			"userMessage": "I accept your offer of $1,250.00",
		})
		require.Equal(t, http.StatusOK, res.StatusCode)
		require.Equal(t, true, body["offerAccepted"])
		require.EqualValues(t, 0, body["thinkDelayMs"])
	})

	t.Run("agent failure maps to bad gateway", func(t *testing.T) {
		failing := mockAgent{err: fmt.Errorf("unreachable")}
		server := newTestServer(t, failing)
		itemId := addItem(t, server.URL, "Record player", "60", "seller-1")

		res, _ := postJSON(t, server.URL+"/v1/negotiations/message", map[string]interface{}{
			"itemId":      itemId,
			"buyerId":     "buyer-1",
			"userMessage": "would you take $40?",
		})
		require.Equal(t, http.StatusBadGateway, res.StatusCode)
	})
}

func decimalPtr(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}
