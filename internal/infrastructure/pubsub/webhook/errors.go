package webhookpubsub

import "errors"

var (
	// ErrUnknownWebhookAction specifies that the given string does not represent
	// any known action.
	ErrUnknownWebhookAction = errors.New("action is unknown")
	// ErrInvalidTopic is returned whenever attempting to subscribe to an unknown
	// topic.
	ErrInvalidTopic = errors.New("topic is invalid")
	// ErrInvalidEndpoint is returned whenever attempting to subscribe with an
	// endpoint that is not a valid URI.
	ErrInvalidEndpoint = errors.New("webhook endpoint must be a valid URI")
)
