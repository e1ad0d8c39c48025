package application

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/tradepost/tradepost-daemon/internal/core/domain"
	"github.com/tradepost/tradepost-daemon/internal/core/ports"
	"github.com/tradepost/tradepost-daemon/internal/metrics"
	"github.com/tradepost/tradepost-daemon/pkg/acceptance"
)

const (
	minThinkDelayMs = 2000
	maxThinkDelayMs = 3000
)

// NegotiationService exposes the turn-based buyer/agent chat protocol: local
// acceptance detection, agent forwarding and round tracking.
type NegotiationService interface {
	SendMessage(ctx context.Context, req SendMessageRequest) (*SendMessageReply, error)
	GetConversation(
		ctx context.Context, conversationId, buyerId string,
	) (*domain.Conversation, error)
	ListConversationsForBuyer(
		ctx context.Context, buyerId string,
	) ([]domain.Conversation, error)
}

type negotiationService struct {
	repoManager        ports.RepoManager
	agent              ports.NegotiationAgent
	publisher          ports.Publisher
	counterOfferWindow time.Duration
}

// NewNegotiationService returns a NegotiationService forwarding buyer turns
// to the given negotiation agent.
func NewNegotiationService(
	repoManager ports.RepoManager,
	agent ports.NegotiationAgent,
	publisher ports.Publisher,
	counterOfferWindow time.Duration,
) NegotiationService {
	return &negotiationService{
		repoManager:        repoManager,
		agent:              agent,
		publisher:          publisher,
		counterOfferWindow: counterOfferWindow,
	}
}

func (n *negotiationService) SendMessage(
	ctx context.Context, req SendMessageRequest,
) (*SendMessageReply, error) {
	item, err := n.repoManager.ItemRepository().GetItem(ctx, req.ItemId)
	if err != nil {
		return nil, domain.ErrItemNotFound
	}
	if !item.IsActive() {
		return nil, ErrItemNotAvailable
	}

	conversation, err := n.getOwnedConversation(ctx, req.ConversationId, req.BuyerId)
	if err != nil {
		return nil, err
	}

	// acceptance fast-path: an explicit confirmation carrying a dollar
	// amount never round-trips to the agent
	if amount, ok := acceptance.Match(req.Text); ok {
		return n.acceptLocally(ctx, item, conversation, req, amount)
	}

	metrics.NegotiationTurns.Inc()
	reply, err := n.agent.Negotiate(ctx, ports.AgentRequest{
		ItemId:         req.ItemId,
		UserMessage:    req.Text,
		ConversationId: req.ConversationId,
		BuyerId:        req.BuyerId,
	})
	if err != nil {
		log.WithError(err).Warn("negotiation agent call failed")
		n.recordFailure(ctx, conversation, req.Text)
		return nil, ErrAgentUnreachable
	}
	if !reply.Success || reply.Response == "" {
		n.recordFailure(ctx, conversation, req.Text)
		return nil, ErrMalformedAgentReply
	}

	expiryTime := reply.ExpiryTime
	if reply.CounterOfferAmount != nil && expiryTime == 0 {
		expiryTime = time.Now().Add(n.counterOfferWindow).Unix()
	}

	var appended domain.Message
	if conversation == nil {
		conversationId := reply.ConversationId
		if conversationId == "" {
			conversationId = uuid.New().String()
		}
		conversation = domain.NewConversation(conversationId, req.ItemId, req.BuyerId)
		conversation.AddUserMessage(req.Text)
		appended = conversation.AddAgentMessage(
			reply.Response, reply.CounterOfferAmount, reply.OfferAccepted, expiryTime,
		)
		if err := n.repoManager.ConversationRepository().AddConversation(
			ctx, *conversation,
		); err != nil {
			return nil, err
		}
	} else {
		if err := n.repoManager.ConversationRepository().UpdateConversation(
			ctx, conversation.Id,
			func(c *domain.Conversation) (*domain.Conversation, error) {
				c.AddUserMessage(req.Text)
				appended = c.AddAgentMessage(
					reply.Response, reply.CounterOfferAmount, reply.OfferAccepted, expiryTime,
				)
				conversation = c
				return c, nil
			},
		); err != nil {
			return nil, err
		}
	}

	if reply.OfferAccepted {
		n.publishAcceptedOffer(conversation, reply.CounterOfferAmount)
	}

	return &SendMessageReply{
		ConversationId: conversation.Id,
		Message:        appended,
		Round:          conversation.Round,
		ThinkDelayMs:   thinkDelayMs(),
	}, nil
}

func (n *negotiationService) GetConversation(
	ctx context.Context, conversationId, buyerId string,
) (*domain.Conversation, error) {
	conversation, err := n.repoManager.ConversationRepository().GetConversation(
		ctx, conversationId,
	)
	if err != nil {
		return nil, domain.ErrConversationNotFound
	}
	if conversation.BuyerId != buyerId {
		return nil, ErrConversationNotOwned
	}
	return conversation, nil
}

func (n *negotiationService) ListConversationsForBuyer(
	ctx context.Context, buyerId string,
) ([]domain.Conversation, error) {
	return n.repoManager.ConversationRepository().GetConversationsForBuyer(ctx, buyerId)
}

// acceptLocally appends the canned confirmation of the acceptance fast-path.
// Conversations accepted before any agent turn get a locally assigned id.
func (n *negotiationService) acceptLocally(
	ctx context.Context,
	item *domain.Item,
	conversation *domain.Conversation,
	req SendMessageRequest,
	amount decimal.Decimal,
) (*SendMessageReply, error) {
	confirmation := fmt.Sprintf(
		"Great news! Your offer of $%s for %s has been accepted. The seller will be in touch to arrange the handoff.",
		amount.StringFixed(2), item.Title,
	)

	var appended domain.Message
	if conversation == nil {
		conversation = domain.NewConversation(uuid.New().String(), req.ItemId, req.BuyerId)
		conversation.AddUserMessage(req.Text)
		appended = conversation.AddAcceptanceMessage(confirmation, amount)
		if err := n.repoManager.ConversationRepository().AddConversation(
			ctx, *conversation,
		); err != nil {
			return nil, err
		}
	} else {
		if err := n.repoManager.ConversationRepository().UpdateConversation(
			ctx, conversation.Id,
			func(c *domain.Conversation) (*domain.Conversation, error) {
				c.AddUserMessage(req.Text)
				appended = c.AddAcceptanceMessage(confirmation, amount)
				conversation = c
				return c, nil
			},
		); err != nil {
			return nil, err
		}
	}

	metrics.NegotiationAcceptedOffers.Inc()
	n.publishAcceptedOffer(conversation, &amount)
	log.Debugf(
		"buyer %s accepted an offer of %s on item %s without an agent round-trip",
		req.BuyerId, amount, req.ItemId,
	)

	return &SendMessageReply{
		ConversationId: conversation.Id,
		Message:        appended,
		Round:          conversation.Round,
	}, nil
}

// recordFailure appends an inline system message so the transcript keeps
// track of failed turns. First-turn failures have no conversation to write
// to, the buyer just retries.
func (n *negotiationService) recordFailure(
	ctx context.Context, conversation *domain.Conversation, text string,
) {
	if conversation == nil {
		return
	}
	if err := n.repoManager.ConversationRepository().UpdateConversation(
		ctx, conversation.Id,
		func(c *domain.Conversation) (*domain.Conversation, error) {
			c.AddUserMessage(text)
			c.AddSystemMessage("The negotiation assistant could not be reached. Please try sending your message again.")
			return c, nil
		},
	); err != nil {
		log.WithError(err).Warn("failed to record negotiation failure")
	}
}

func (n *negotiationService) getOwnedConversation(
	ctx context.Context, conversationId, buyerId string,
) (*domain.Conversation, error) {
	if conversationId == "" {
		return nil, nil
	}
	return n.GetConversation(ctx, conversationId, buyerId)
}

func (n *negotiationService) publishAcceptedOffer(
	conversation *domain.Conversation, amount *decimal.Decimal,
) {
	if n.publisher == nil {
		return
	}
	acceptedOffer := ""
	if amount != nil {
		acceptedOffer = amount.String()
	}
	payload := serializePayload(NegotiationPayload{
		ConversationId: conversation.Id,
		ItemId:         conversation.ItemId,
		BuyerId:        conversation.BuyerId,
		AcceptedOffer:  acceptedOffer,
	})
	if err := n.publisher.Publish(TopicNegotiationAccepted, payload); err != nil {
		log.WithError(err).Warn("failed to publish negotiation event")
	}
}

func thinkDelayMs() int {
	return minThinkDelayMs + rand.Intn(maxThinkDelayMs-minThinkDelayMs+1)
}
