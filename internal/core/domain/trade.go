package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status codes a trade proposal can assume. Pending is the initial status,
// Accepted, Rejected and Expired are terminal for the target owner's
// decision, Completed is terminal after fulfillment.
const (
	ProposalStatusCodePending = iota
	ProposalStatusCodeAccepted
	ProposalStatusCodeRejected
	ProposalStatusCodeExpired
	ProposalStatusCodeCompleted
)

var proposalStatusToString = map[int]string{
	ProposalStatusCodePending:   "pending",
	ProposalStatusCodeAccepted:  "accepted",
	ProposalStatusCodeRejected:  "rejected",
	ProposalStatusCodeExpired:   "expired",
	ProposalStatusCodeCompleted: "completed",
}

// ProposalStatus represents the status of a trade proposal.
type ProposalStatus struct {
	Code int
}

func (s ProposalStatus) String() string {
	str, ok := proposalStatusToString[s.Code]
	if !ok {
		str = "unknown"
	}
	return str
}

// TradeProposal is the data structure representing a directed item-for-item
// offer from a proposer to the owner of a target item. Proposals are never
// deleted, they are retained as history.
type TradeProposal struct {
	Id                string
	TargetItemId      string
	TargetOwnerId     string
	ProposerId        string
	OfferedItemIds    []string
	CashAdjustment    decimal.Decimal
	Message           string
	TotalOfferedValue decimal.Decimal
	Status            ProposalStatus
	CreatedAt         int64
	ExpiryTime        int64
}

// NewTradeProposal returns a pending proposal with a new id and an
// expiration time set to now + the given validity window.
func NewTradeProposal(
	targetItemId, targetOwnerId, proposerId string,
	offeredItemIds []string,
	cashAdjustment, totalOfferedValue decimal.Decimal,
	message string, validityWindow time.Duration,
) *TradeProposal {
	now := time.Now()
	return &TradeProposal{
		Id:                uuid.New().String(),
		TargetItemId:      targetItemId,
		TargetOwnerId:     targetOwnerId,
		ProposerId:        proposerId,
		OfferedItemIds:    offeredItemIds,
		CashAdjustment:    cashAdjustment,
		Message:           message,
		TotalOfferedValue: totalOfferedValue,
		Status:            ProposalStatus{Code: ProposalStatusCodePending},
		CreatedAt:         now.Unix(),
		ExpiryTime:        now.Add(validityWindow).Unix(),
	}
}

// Accept brings the proposal from the Pending to the Accepted status.
// A proposal past its expiration time is marked Expired as a side effect of
// the attempt.
func (p *TradeProposal) Accept() error {
	if err := p.checkDecidable(); err != nil {
		return err
	}
	p.Status.Code = ProposalStatusCodeAccepted
	return nil
}

// Reject brings the proposal from the Pending to the Rejected status with
// the same expiry side effect of Accept.
func (p *TradeProposal) Reject() error {
	if err := p.checkDecidable(); err != nil {
		return err
	}
	p.Status.Code = ProposalStatusCodeRejected
	return nil
}

// Complete brings the proposal from the Accepted to the Completed status
// once the fulfillment workflow has exchanged the items.
func (p *TradeProposal) Complete() error {
	if p.IsCompleted() {
		return nil
	}
	if !p.IsAccepted() {
		return ErrProposalMustBeAccepted
	}
	p.Status.Code = ProposalStatusCodeCompleted
	return nil
}

// Expire brings the proposal to the Expired status, making sure its
// expiration time has passed. Used by the expiry sweep for proposals nobody
// ever responded to.
func (p *TradeProposal) Expire() (bool, error) {
	if p.Status.Code == ProposalStatusCodeExpired {
		return true, nil
	}
	if p.ExpiryTime <= 0 {
		return false, ErrProposalNullExpiryTime
	}
	if p.Status.Code != ProposalStatusCodePending {
		return false, ErrProposalAlreadyDecided
	}
	if time.Now().Before(time.Unix(p.ExpiryTime, 0)) {
		return false, ErrProposalNotYetExpired
	}
	p.Status.Code = ProposalStatusCodeExpired
	return true, nil
}

func (p *TradeProposal) checkDecidable() error {
	if p.Status.Code != ProposalStatusCodePending {
		if p.Status.Code == ProposalStatusCodeExpired {
			return ErrProposalExpired
		}
		return ErrProposalAlreadyDecided
	}
	if p.IsExpired() {
		p.Status.Code = ProposalStatusCodeExpired
		return ErrProposalExpired
	}
	return nil
}

// IsPending returns whether the proposal is in Pending status.
func (p *TradeProposal) IsPending() bool {
	return p.Status.Code == ProposalStatusCodePending
}

// IsAccepted returns whether the proposal is in Accepted status.
func (p *TradeProposal) IsAccepted() bool {
	return p.Status.Code == ProposalStatusCodeAccepted
}

// IsRejected returns whether the proposal is in Rejected status.
func (p *TradeProposal) IsRejected() bool {
	return p.Status.Code == ProposalStatusCodeRejected
}

// IsCompleted returns whether the proposal is in Completed status.
func (p *TradeProposal) IsCompleted() bool {
	return p.Status.Code == ProposalStatusCodeCompleted
}

// IsExpired returns whether the proposal is in Expired status, or if its
// expiration time has passed while still pending.
func (p *TradeProposal) IsExpired() bool {
	return p.Status.Code == ProposalStatusCodeExpired ||
		(p.Status.Code == ProposalStatusCodePending &&
			p.ExpiryTime > 0 && time.Now().After(time.Unix(p.ExpiryTime, 0)))
}
