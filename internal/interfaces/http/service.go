// Package httpinterface exposes the daemon services over a JSON HTTP API
// plus a websocket live updates feed.
package httpinterface

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/tradepost/tradepost-daemon/internal/core/application"
	"github.com/tradepost/tradepost-daemon/internal/interfaces"
)

const shutdownTimeout = 5 * time.Second

type server struct {
	tradeSvc       application.TradeService
	negotiationSvc application.NegotiationService
	operatorSvc    application.OperatorService
	feed           *UpdatesFeed
}

type service struct {
	httpServer *http.Server
	feed       *UpdatesFeed
}

// NewService returns an interfaces.Service serving the trade, negotiation
// and operator APIs on the given address. The updates feed, if not nil, is
// mounted on /v1/updates.
func NewService(
	address string,
	tradeSvc application.TradeService,
	negotiationSvc application.NegotiationService,
	operatorSvc application.OperatorService,
	feed *UpdatesFeed,
) interfaces.Service {
	return &service{
		httpServer: &http.Server{
			Addr:              address,
			Handler:           NewHandler(tradeSvc, negotiationSvc, operatorSvc, feed),
			ReadHeaderTimeout: 5 * time.Second,
		},
		feed: feed,
	}
}

// NewHandler returns the API routing without a listener attached.
func NewHandler(
	tradeSvc application.TradeService,
	negotiationSvc application.NegotiationService,
	operatorSvc application.OperatorService,
	feed *UpdatesFeed,
) http.Handler {
	h := &server{
		tradeSvc:       tradeSvc,
		negotiationSvc: negotiationSvc,
		operatorSvc:    operatorSvc,
		feed:           feed,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", h.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/v1/trades", h.handleTrades)
	mux.HandleFunc("/v1/trades/preview", h.handleTradePreview)
	mux.HandleFunc("/v1/trades/respond", h.handleTradeRespond)
	mux.HandleFunc("/v1/trades/complete", h.handleTradeComplete)
	mux.HandleFunc("/v1/trades/", h.handleTradeById)
	mux.HandleFunc("/v1/negotiations/message", h.handleNegotiationMessage)
	mux.HandleFunc("/v1/negotiations", h.handleNegotiations)
	mux.HandleFunc("/v1/negotiations/", h.handleNegotiationById)
	mux.HandleFunc("/v1/items", h.handleItems)
	mux.HandleFunc("/v1/items/", h.handleItemById)
	mux.HandleFunc("/v1/webhooks", h.handleWebhooks)
	mux.HandleFunc("/v1/webhooks/", h.handleWebhookById)
	if feed != nil {
		mux.HandleFunc("/v1/updates", feed.handleUpgrade)
	}

	return mux
}

func (s *service) Start() error {
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("http interface exited with error")
		}
	}()
	log.Infof("http interface listening on %s", s.httpServer.Addr)
	return nil
}

func (s *service) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.feed != nil {
		s.feed.closeAll()
	}
	//nolint
	s.httpServer.Shutdown(ctx)
	log.Info("stopped http interface")
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}
