package httpinterface

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/tradepost/tradepost-daemon/internal/core/application"
	"github.com/tradepost/tradepost-daemon/internal/core/domain"
	webhookpubsub "github.com/tradepost/tradepost-daemon/internal/infrastructure/pubsub/webhook"
)

const maxRequestBytes int64 = 1 << 20

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint
	json.NewEncoder(w).Encode(payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	if dec.More() {
		return errors.New("invalid json: trailing content")
	}
	return nil
}

type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFromError(err), errorBody{Success: false, Error: err.Error()})
}

// statusFromError maps the error taxonomy of the core services onto HTTP
// status codes.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrProposalNotFound),
		errors.Is(err, domain.ErrConversationNotFound):
		return http.StatusNotFound
	case errors.Is(err, application.ErrNotAuthorized),
		errors.Is(err, application.ErrConversationNotOwned):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrProposalAlreadyDecided),
		errors.Is(err, domain.ErrProposalExpired),
		errors.Is(err, domain.ErrProposalMustBeAccepted),
		errors.Is(err, domain.ErrItemNotActive),
		errors.Is(err, application.ErrItemNotAvailable),
		errors.Is(err, application.ErrOfferedItemNotAvailable):
		return http.StatusConflict
	case errors.Is(err, application.ErrEmptyOffer),
		errors.Is(err, application.ErrCashCeilingExceeded),
		errors.Is(err, application.ErrNegativeCashAdjustment),
		errors.Is(err, application.ErrOfferedItemNotOwned),
		errors.Is(err, application.ErrSelfTrade),
		errors.Is(err, application.ErrInvalidAction),
		errors.Is(err, webhookpubsub.ErrInvalidTopic),
		errors.Is(err, webhookpubsub.ErrInvalidEndpoint):
		return http.StatusBadRequest
	case errors.Is(err, application.ErrAgentUnreachable),
		errors.Is(err, application.ErrMalformedAgentReply):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
