package httpinterface

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tradepost/tradepost-daemon/internal/core/application"
)

type submitProposalBody struct {
	TargetItemId   string   `json:"target_item_id"`
	ProposerId     string   `json:"proposer_id"`
	OfferedItemIds []string `json:"offered_item_ids"`
	CashAdjustment string   `json:"cash_adjustment"`
	Message        string   `json:"message"`
}

type previewOfferBody struct {
	TargetItemId   string   `json:"target_item_id"`
	OfferedItemIds []string `json:"offered_item_ids"`
	CashAdjustment string   `json:"cash_adjustment"`
}

type respondProposalBody struct {
	ProposalId  string `json:"proposal_id"`
	ResponderId string `json:"responder_id"`
	Action      string `json:"action"`
}

type completeProposalBody struct {
	ProposalId string `json:"proposal_id"`
}

func (s *server) handleTrades(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.submitProposal(w, r)
	case http.MethodGet:
		s.listProposals(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *server) handleTradeById(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	proposalId := strings.TrimPrefix(r.URL.Path, "/v1/trades/")
	proposal, err := s.tradeSvc.GetProposal(r.Context(), proposalId)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProposalView(*proposal))
}

func (s *server) submitProposal(w http.ResponseWriter, r *http.Request) {
	var body submitProposalBody
	if err := decodeJSON(r, &body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cashAdjustment, err := parseCashAdjustment(body.CashAdjustment)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	proposal, err := s.tradeSvc.SubmitProposal(r.Context(), application.SubmitProposalRequest{
		TargetItemId:   body.TargetItemId,
		ProposerId:     body.ProposerId,
		OfferedItemIds: body.OfferedItemIds,
		CashAdjustment: cashAdjustment,
		Message:        body.Message,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":  true,
		"proposal": toProposalView(*proposal),
	})
}

func (s *server) handleTradePreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var body previewOfferBody
	if err := decodeJSON(r, &body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cashAdjustment, err := parseCashAdjustment(body.CashAdjustment)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	preview, err := s.tradeSvc.PreviewOffer(
		r.Context(), body.TargetItemId, body.OfferedItemIds, cashAdjustment,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"offer_value":  preview.OfferValue.String(),
		"target_value": preview.TargetValue.String(),
		"difference":   preview.Balance.Difference.String(),
		"direction":    preview.Balance.Direction,
	})
}

func (s *server) handleTradeRespond(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var body respondProposalBody
	if err := decodeJSON(r, &body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	proposal, err := s.tradeSvc.RespondToProposal(
		r.Context(), body.ProposalId, body.ResponderId, body.Action,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"proposal": toProposalView(*proposal),
	})
}

func (s *server) handleTradeComplete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var body completeProposalBody
	if err := decodeJSON(r, &body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	proposal, err := s.tradeSvc.CompleteProposal(r.Context(), body.ProposalId)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"proposal": toProposalView(*proposal),
	})
}

func (s *server) listProposals(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	ctx := r.Context()

	switch {
	case query.Get("proposer_id") != "":
		list, err := s.tradeSvc.ListProposalsForProposer(ctx, query.Get("proposer_id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toProposalViews(list))
	case query.Get("owner_id") != "":
		list, err := s.tradeSvc.ListProposalsForTargetOwner(ctx, query.Get("owner_id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toProposalViews(list))
	case query.Get("item_id") != "":
		list, err := s.tradeSvc.ListProposalsForItem(ctx, query.Get("item_id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toProposalViews(list))
	default:
		http.Error(
			w,
			"one of proposer_id, owner_id or item_id query params is required",
			http.StatusBadRequest,
		)
	}
}

func parseCashAdjustment(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}
