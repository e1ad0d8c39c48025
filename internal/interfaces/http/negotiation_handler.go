package httpinterface

import (
	"net/http"
	"strings"

	"github.com/tradepost/tradepost-daemon/internal/core/application"
)

type sendMessageBody struct {
	ItemId         string `json:"itemId"`
	BuyerId        string `json:"buyerId"`
	ConversationId string `json:"conversationId"`
	UserMessage    string `json:"userMessage"`
}

type sendMessageResponse struct {
	Success            bool   `json:"success"`
	Response           string `json:"response"`
	ConversationId     string `json:"conversationId"`
	CounterOfferAmount string `json:"counterOfferAmount,omitempty"`
	OfferAccepted      bool   `json:"offerAccepted,omitempty"`
	ExpiresAt          int64  `json:"expiresAt,omitempty"`
	Round              int    `json:"round"`
	ThinkDelayMs       int    `json:"thinkDelayMs"`
}

func (s *server) handleNegotiationMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var body sendMessageBody
	if err := decodeJSON(r, &body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if body.ItemId == "" || body.BuyerId == "" || body.UserMessage == "" {
		http.Error(w, "itemId, buyerId and userMessage are required", http.StatusBadRequest)
		return
	}

	reply, err := s.negotiationSvc.SendMessage(r.Context(), application.SendMessageRequest{
		ItemId:         body.ItemId,
		BuyerId:        body.BuyerId,
		ConversationId: body.ConversationId,
		Text:           body.UserMessage,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sendMessageResponse{
		Success:            true,
		Response:           reply.Message.Text,
		ConversationId:     reply.ConversationId,
		CounterOfferAmount: decimalString(reply.Message.CounterOffer),
		OfferAccepted:      reply.Message.OfferAccepted,
		ExpiresAt:          reply.Message.ExpiryTime,
		Round:              reply.Round,
		ThinkDelayMs:       reply.ThinkDelayMs,
	})
}

func (s *server) handleNegotiations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	buyerId := r.URL.Query().Get("buyer_id")
	if buyerId == "" {
		http.Error(w, "buyer_id query param is required", http.StatusBadRequest)
		return
	}

	conversations, err := s.negotiationSvc.ListConversationsForBuyer(r.Context(), buyerId)
	if err != nil {
		writeError(w, err)
		return
	}

	views := make([]conversationView, len(conversations))
	for i, c := range conversations {
		views[i] = toConversationView(c)
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *server) handleNegotiationById(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	conversationId := strings.TrimPrefix(r.URL.Path, "/v1/negotiations/")
	buyerId := r.URL.Query().Get("buyer_id")

	conversation, err := s.negotiationSvc.GetConversation(r.Context(), conversationId, buyerId)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toConversationView(*conversation))
}
