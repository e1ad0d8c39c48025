package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/tradepost/tradepost-daemon/config"
	"github.com/tradepost/tradepost-daemon/internal/core/application"
	"github.com/tradepost/tradepost-daemon/internal/infrastructure/negotiator"
	"github.com/tradepost/tradepost-daemon/internal/infrastructure/pubsub"
	webhookpubsub "github.com/tradepost/tradepost-daemon/internal/infrastructure/pubsub/webhook"
	dbbadger "github.com/tradepost/tradepost-daemon/internal/infrastructure/storage/db/badger"
	httpinterface "github.com/tradepost/tradepost-daemon/internal/interfaces/http"
)

func main() {
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))
	config.Validate()

	datadir := config.GetDatadir()

	repoManager, err := dbbadger.NewDbManager(filepath.Join(datadir, config.DbLocation), nil)
	if err != nil {
		log.WithError(err).Fatal("error opening db")
	}
	defer repoManager.Close()

	webhookSvc, err := webhookpubsub.NewWebhookPubSubService(
		filepath.Join(datadir, "webhooks"),
		config.GetDuration(config.WebhookRequestTimeoutKey),
		nil,
	)
	if err != nil {
		log.WithError(err).Fatal("error opening webhook store")
	}
	defer webhookSvc.Close()

	feed := httpinterface.NewUpdatesFeed()
	publisher := pubsub.NewMultiPublisher(webhookSvc, feed)

	agent := negotiator.NewService(
		config.GetString(config.NegotiatorEndpointKey),
		config.GetMillisDuration(config.NegotiatorRequestTimeoutKey),
		config.GetInt(config.NegotiatorRateLimitKey),
	)

	tradeSvc := application.NewTradeService(
		repoManager,
		publisher,
		decimal.NewFromFloat(config.GetFloat(config.CashAdjustmentCeilingKey)),
		config.GetDuration(config.TradeExpiryDurationKey),
	)
	negotiationSvc := application.NewNegotiationService(
		repoManager,
		agent,
		publisher,
		config.GetDuration(config.CounterOfferExpiryDurationKey),
	)
	operatorSvc := application.NewOperatorService(repoManager, webhookSvc)

	sweeper := application.NewExpirySweeper(
		repoManager, publisher, config.GetDuration(config.ExpirySweepIntervalKey),
	)
	go sweeper.Start()
	defer sweeper.Stop()

	httpSvc := httpinterface.NewService(
		config.GetAddress(), tradeSvc, negotiationSvc, operatorSvc, feed,
	)
	if err := httpSvc.Start(); err != nil {
		log.WithError(err).Fatal("error starting http interface")
	}
	defer httpSvc.Stop()

	log.Debug("daemon started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan

	log.Debug("exiting")
}
