package dbbadger

import (
	"path/filepath"

	"github.com/dgraph-io/badger/v3"
	log "github.com/sirupsen/logrus"
	"github.com/timshannon/badgerhold/v4"

	"github.com/nftswap-network/nftswap-daemon/internal/core/domain"
	"github.com/nftswap-network/nftswap-daemon/internal/core/ports"
)

// DbManager is the badger-backed implementation of ports.RepoManager.
type DbManager struct {
	store *badgerhold.Store

	poolRepository  domain.PoolRepository
	tradeRepository domain.TradeRepository
}

// NewDbManager opens (or creates) the badger store under the given data
// directory.
func NewDbManager(datadir string, logger badger.Logger) (ports.RepoManager, error) {
	store, err := openStore(filepath.Join(datadir, "db"), logger)
	if err != nil {
		return nil, err
	}

	manager := &DbManager{store: store}
	manager.poolRepository = NewPoolRepositoryImpl(manager)
	manager.tradeRepository = NewTradeRepositoryImpl(manager)
	return manager, nil
}

func (d *DbManager) PoolRepository() domain.PoolRepository {
	return d.poolRepository
}

func (d *DbManager) TradeRepository() domain.TradeRepository {
	return d.tradeRepository
}

func (d *DbManager) Close() {
	if err := d.store.Close(); err != nil {
		log.WithError(err).Warn("failed to close badger store")
	}
}

func openStore(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	return badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
}
