package dbbadger

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"
	"github.com/tradepost/tradepost-daemon/internal/core/domain"
	"github.com/tradepost/tradepost-daemon/internal/core/ports"
)

// DbManager holds the badgerhold store and the repositories built on it in
// a single data structure.
type DbManager struct {
	Store *badgerhold.Store

	itemRepository         domain.ItemRepository
	tradeRepository        domain.TradeProposalRepository
	conversationRepository domain.ConversationRepository
}

// NewDbManager opens (or creates if not exists) the badger store on disk.
// It expects a base data dir and an optional logger.
func NewDbManager(baseDbDir string, logger badger.Logger) (ports.RepoManager, error) {
	store, err := createDb(baseDbDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	db := &DbManager{Store: store}
	db.itemRepository = NewItemRepositoryImpl(db)
	db.tradeRepository = NewTradeProposalRepositoryImpl(db)
	db.conversationRepository = NewConversationRepositoryImpl(db)
	return db, nil
}

func (d *DbManager) ItemRepository() domain.ItemRepository {
	return d.itemRepository
}

func (d *DbManager) TradeProposalRepository() domain.TradeProposalRepository {
	return d.tradeRepository
}

func (d *DbManager) ConversationRepository() domain.ConversationRepository {
	return d.conversationRepository
}

func (d *DbManager) Close() {
	d.Store.Close()
}

// JSONEncode is a custom JSON based encoder for badger
func JSONEncode(value interface{}) ([]byte, error) {
	var buff bytes.Buffer

	en := json.NewEncoder(&buff)

	err := en.Encode(value)
	if err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}

// JSONDecode is a custom JSON based decoder for badger
func JSONDecode(data []byte, value interface{}) error {
	var buff bytes.Buffer
	de := json.NewDecoder(&buff)

	_, err := buff.Write(data)
	if err != nil {
		return err
	}

	return de.Decode(value)
}

func createDb(dbDir string, logger badger.Logger) (db *badgerhold.Store, err error) {
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	db, err = badgerhold.Open(badgerhold.Options{
		Encoder:          JSONEncode,
		Decoder:          JSONDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})

	return
}
