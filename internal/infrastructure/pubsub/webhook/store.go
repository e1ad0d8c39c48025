package webhookpubsub

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"
)

// webhookStore persists subscriptions on a dedicated badgerhold store so
// registered webhooks survive daemon restarts.
type webhookStore struct {
	store *badgerhold.Store
}

func newWebhookStore(dbDir string, logger badger.Logger) (*webhookStore, error) {
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	store, err := badgerhold.Open(badgerhold.Options{
		Encoder: func(value interface{}) ([]byte, error) {
			var buff bytes.Buffer
			if err := json.NewEncoder(&buff).Encode(value); err != nil {
				return nil, err
			}
			return buff.Bytes(), nil
		},
		Decoder: func(data []byte, value interface{}) error {
			return json.NewDecoder(bytes.NewReader(data)).Decode(value)
		},
		SequenceBandwith: 100,
		Options:          opts,
	})
	if err != nil {
		return nil, err
	}

	return &webhookStore{store: store}, nil
}

func (ws *webhookStore) addWebhook(hook *Webhook) error {
	err := ws.store.Insert(hook.ID, *hook)
	if err != nil && errors.Is(err, badgerhold.ErrKeyExists) {
		return nil
	}
	return err
}

func (ws *webhookStore) removeWebhook(hookID string) error {
	err := ws.store.Delete(hookID, Webhook{})
	if err != nil && errors.Is(err, badgerhold.ErrNotFound) {
		return nil
	}
	return err
}

func (ws *webhookStore) getWebhooksForAction(actionType WebhookAction) []*Webhook {
	var hooks []Webhook
	query := badgerhold.Where("ActionType").Eq(actionType)
	if err := ws.store.Find(&hooks, query); err != nil {
		return nil
	}

	list := make([]*Webhook, 0, len(hooks))
	for i := range hooks {
		list = append(list, &hooks[i])
	}
	return list
}

func (ws *webhookStore) close() error {
	return ws.store.Close()
}
