// Package negotiator implements the client of the remote negotiation
// function consumed by the chat protocol.
package negotiator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
	"go.uber.org/ratelimit"

	"github.com/tradepost/tradepost-daemon/internal/core/ports"
	"github.com/tradepost/tradepost-daemon/pkg/circuitbreaker"
)

type service struct {
	endpoint   string
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker
	limiter    ratelimit.Limiter
}

// NewService returns a ports.NegotiationAgent talking to the negotiation
// function at the given endpoint. Calls are bounded by the request timeout,
// throttled at requestsPerSecond and guarded by a circuit breaker.
func NewService(
	endpoint string, requestTimeout time.Duration, requestsPerSecond int,
) ports.NegotiationAgent {
	return &service{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: requestTimeout},
		cb:         circuitbreaker.NewCircuitBreaker("negotiator"),
		limiter:    ratelimit.New(requestsPerSecond),
	}
}

type negotiateRequest struct {
	ItemId         string `json:"itemId"`
	UserMessage    string `json:"userMessage"`
	ConversationId string `json:"conversationId,omitempty"`
	BuyerId        string `json:"buyerId"`
}

type negotiateResponse struct {
	Success            bool     `json:"success"`
	Response           string   `json:"response"`
	ConversationId     string   `json:"conversationId"`
	CounterOfferAmount *float64 `json:"counterOfferAmount,omitempty"`
	OfferAccepted      *bool    `json:"offerAccepted,omitempty"`
	ExpiresAt          string   `json:"expiresAt,omitempty"`
	Error              string   `json:"error,omitempty"`
}

func (s *service) Negotiate(
	ctx context.Context, request ports.AgentRequest,
) (*ports.AgentReply, error) {
	s.limiter.Take()

	body, err := json.Marshal(negotiateRequest{
		ItemId:         request.ItemId,
		UserMessage:    request.UserMessage,
		ConversationId: request.ConversationId,
		BuyerId:        request.BuyerId,
	})
	if err != nil {
		return nil, err
	}

	res, err := s.cb.Execute(func() (interface{}, error) {
		return s.doRequest(ctx, body)
	})
	if err != nil {
		return nil, err
	}

	return res.(*ports.AgentReply), nil
}

func (s *service) doRequest(ctx context.Context, body []byte) (*ports.AgentReply, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, s.endpoint, bytes.NewReader(body),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	rs, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer rs.Body.Close()

	resBody, err := io.ReadAll(rs.Body)
	if err != nil {
		return nil, err
	}
	if rs.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"negotiation function returned status %d: %s", rs.StatusCode, string(resBody),
		)
	}

	var parsed negotiateResponse
	if err := json.Unmarshal(resBody, &parsed); err != nil {
		return nil, fmt.Errorf("parsing negotiation function reply: %w", err)
	}

	return toAgentReply(parsed), nil
}

func toAgentReply(res negotiateResponse) *ports.AgentReply {
	reply := &ports.AgentReply{
		Success:        res.Success,
		Response:       res.Response,
		ConversationId: res.ConversationId,
		Error:          res.Error,
	}
	if res.CounterOfferAmount != nil {
		amount := decimal.NewFromFloat(*res.CounterOfferAmount)
		reply.CounterOfferAmount = &amount
	}
	if res.OfferAccepted != nil {
		reply.OfferAccepted = *res.OfferAccepted
	}
	if res.ExpiresAt != "" {
		if expiry, err := time.Parse(time.RFC3339, res.ExpiresAt); err == nil {
			reply.ExpiryTime = expiry.Unix()
		}
	}
	return reply
}
