package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	// ListeningPortKey is the port where the HTTP interface will listen on
	ListeningPortKey = "LISTENING_PORT"
	// DatadirKey is the local data directory to store the internal state of the daemon
	DatadirKey = "DATA_DIR_PATH"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// TradeExpiryDurationKey is the validity window in seconds of a trade proposal before it expires
	TradeExpiryDurationKey = "TRADE_EXPIRY_DURATION"
	// CounterOfferExpiryDurationKey is the validity window in seconds of a chat counter-offer
	CounterOfferExpiryDurationKey = "COUNTER_OFFER_EXPIRY_DURATION"
	// CashAdjustmentCeilingKey is the maximum cash adjustment accepted on a trade proposal
	CashAdjustmentCeilingKey = "CASH_ADJUSTMENT_CEILING"
	// NegotiatorEndpointKey is the endpoint where the negotiation function is listening
	NegotiatorEndpointKey = "NEGOTIATOR_ENDPOINT"
	// NegotiatorRequestTimeoutKey are the milliseconds to wait for negotiation function responses before timeouts
	NegotiatorRequestTimeoutKey = "NEGOTIATOR_REQUEST_TIMEOUT"
	// NegotiatorRateLimitKey is the number of requests per second allowed towards the negotiation function
	NegotiatorRateLimitKey = "NEGOTIATOR_RATE_LIMIT"
	// ExpirySweepIntervalKey is the interval in seconds between two runs of the proposal expiry sweep
	ExpirySweepIntervalKey = "EXPIRY_SWEEP_INTERVAL"
	// WebhookRequestTimeoutKey are the seconds to wait for webhook endpoint responses before timeouts
	WebhookRequestTimeoutKey = "WEBHOOK_REQUEST_TIMEOUT"

	DbLocation = "db"
)

var vip *viper.Viper

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("TRADEPOST")
	vip.AutomaticEnv()

	defaultDatadir, _ := os.UserHomeDir()

	vip.SetDefault(ListeningPortKey, 9945)
	vip.SetDefault(DatadirKey, filepath.Join(defaultDatadir, ".tradepost-daemon"))
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(TradeExpiryDurationKey, 3600)
	vip.SetDefault(CounterOfferExpiryDurationKey, 600)
	vip.SetDefault(CashAdjustmentCeilingKey, 500)
	vip.SetDefault(NegotiatorEndpointKey, "http://localhost:8788/functions/v1/negotiate")
	vip.SetDefault(NegotiatorRequestTimeoutKey, 30000)
	vip.SetDefault(NegotiatorRateLimitKey, 5)
	vip.SetDefault(ExpirySweepIntervalKey, 60)
	vip.SetDefault(WebhookRequestTimeoutKey, 10)

	if err := initDatadir(); err != nil {
		log.WithError(err).Panic("error while creating data dir")
	}
}

// GetString returns the value of the given key as string.
func GetString(key string) string {
	return vip.GetString(key)
}

// GetInt returns the value of the given key as int.
func GetInt(key string) int {
	return vip.GetInt(key)
}

// GetFloat returns the value of the given key as float64.
func GetFloat(key string) float64 {
	return vip.GetFloat64(key)
}

// GetDuration returns the value of the given key as seconds.
func GetDuration(key string) time.Duration {
	return time.Duration(vip.GetInt(key)) * time.Second
}

// GetMillisDuration returns the value of the given key as milliseconds.
func GetMillisDuration(key string) time.Duration {
	return time.Duration(vip.GetInt(key)) * time.Millisecond
}

// GetDatadir returns the data dir path.
func GetDatadir() string {
	return GetString(DatadirKey)
}

// Validate panics when a fundamental config value is malformed.
func Validate() {
	if _, err := url.ParseRequestURI(GetString(NegotiatorEndpointKey)); err != nil {
		log.Panicf("%s is not a valid endpoint: %s", NegotiatorEndpointKey, err)
	}
	if GetInt(TradeExpiryDurationKey) <= 0 {
		log.Panicf("%s must be a positive number of seconds", TradeExpiryDurationKey)
	}
	if GetInt(CounterOfferExpiryDurationKey) <= 0 {
		log.Panicf("%s must be a positive number of seconds", CounterOfferExpiryDurationKey)
	}
	if GetFloat(CashAdjustmentCeilingKey) < 0 {
		log.Panicf("%s must not be negative", CashAdjustmentCeilingKey)
	}
}

func initDatadir() error {
	datadir := GetDatadir()
	if err := makeDirectoryIfNotExists(datadir); err != nil {
		return err
	}
	return makeDirectoryIfNotExists(filepath.Join(datadir, DbLocation))
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}

// Set overrides the value of the given key, used by tests.
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

// GetAddress returns the address the HTTP interface listens on.
func GetAddress() string {
	return fmt.Sprintf(":%d", GetInt(ListeningPortKey))
}
