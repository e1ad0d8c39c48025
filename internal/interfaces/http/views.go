package httpinterface

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradepost/tradepost-daemon/internal/core/domain"
	"github.com/tradepost/tradepost-daemon/pkg/countdown"
)

type itemView struct {
	Id        string `json:"id"`
	Title     string `json:"title"`
	Price     string `json:"price"`
	SellerId  string `json:"seller_id"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
}

func toItemView(item domain.Item) itemView {
	return itemView{
		Id:        item.Id,
		Title:     item.Title,
		Price:     item.Price.String(),
		SellerId:  item.SellerId,
		Status:    item.Status,
		CreatedAt: item.CreatedAt,
	}
}

type proposalView struct {
	Id                string   `json:"id"`
	TargetItemId      string   `json:"target_item_id"`
	TargetOwnerId     string   `json:"target_owner_id"`
	ProposerId        string   `json:"proposer_id"`
	OfferedItemIds    []string `json:"offered_item_ids"`
	CashAdjustment    string   `json:"cash_adjustment"`
	Message           string   `json:"message,omitempty"`
	TotalOfferedValue string   `json:"total_offered_value"`
	Status            string   `json:"status"`
	CreatedAt         int64    `json:"created_at"`
	ExpiryTime        int64    `json:"expires_at"`
}

func toProposalView(p domain.TradeProposal) proposalView {
	return proposalView{
		Id:                p.Id,
		TargetItemId:      p.TargetItemId,
		TargetOwnerId:     p.TargetOwnerId,
		ProposerId:        p.ProposerId,
		OfferedItemIds:    p.OfferedItemIds,
		CashAdjustment:    p.CashAdjustment.String(),
		Message:           p.Message,
		TotalOfferedValue: p.TotalOfferedValue.String(),
		Status:            p.Status.String(),
		CreatedAt:         p.CreatedAt,
		ExpiryTime:        p.ExpiryTime,
	}
}

func toProposalViews(proposals []domain.TradeProposal) []proposalView {
	views := make([]proposalView, len(proposals))
	for i, p := range proposals {
		views[i] = toProposalView(p)
	}
	return views
}

type messageView struct {
	Role            string         `json:"role"`
	Text            string         `json:"text"`
	Timestamp       int64          `json:"timestamp"`
	OfferAccepted   bool           `json:"offer_accepted,omitempty"`
	CounterOffer    string         `json:"counter_offer,omitempty"`
	AcceptedOffer   string         `json:"accepted_offer,omitempty"`
	ExpiryTime      int64          `json:"expires_at,omitempty"`
	IsSecondCounter bool           `json:"is_second_counter,omitempty"`
	IsFinalCounter  bool           `json:"is_final_counter,omitempty"`
	Countdown       *countdownView `json:"countdown,omitempty"`
}

type countdownView struct {
	Remaining       string  `json:"remaining"`
	ProgressPercent float64 `json:"progress_percent"`
	Expired         bool    `json:"expired"`
}

func toMessageView(m domain.Message) messageView {
	view := messageView{
		Role:            m.Role,
		Text:            m.Text,
		Timestamp:       m.Timestamp,
		OfferAccepted:   m.OfferAccepted,
		CounterOffer:    decimalString(m.CounterOffer),
		AcceptedOffer:   decimalString(m.AcceptedOffer),
		ExpiryTime:      m.ExpiryTime,
		IsSecondCounter: m.IsSecondCounter,
		IsFinalCounter:  m.IsFinalCounter,
	}
	if m.CounterOffer != nil && m.ExpiryTime > 0 {
		window := time.Duration(m.ExpiryTime-m.Timestamp) * time.Second
		cd := countdown.Compute(time.Now(), time.Unix(m.ExpiryTime, 0), window)
		view.Countdown = &countdownView{
			Remaining:       cd.RemainingLabel,
			ProgressPercent: cd.ProgressPercent,
			Expired:         cd.IsExpired,
		}
	}
	return view
}

type conversationView struct {
	Id        string        `json:"id"`
	ItemId    string        `json:"item_id"`
	BuyerId   string        `json:"buyer_id"`
	Messages  []messageView `json:"messages"`
	Round     int           `json:"round"`
	CreatedAt int64         `json:"created_at"`
}

func toConversationView(c domain.Conversation) conversationView {
	messages := make([]messageView, len(c.Messages))
	for i, m := range c.Messages {
		messages[i] = toMessageView(m)
	}
	return conversationView{
		Id:        c.Id,
		ItemId:    c.ItemId,
		BuyerId:   c.BuyerId,
		Messages:  messages,
		Round:     c.Round,
		CreatedAt: c.CreatedAt,
	}
}

type subscriptionView struct {
	Id       string `json:"id"`
	Topic    string `json:"topic"`
	Endpoint string `json:"endpoint"`
	Secured  bool   `json:"secured"`
}

func decimalString(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}
