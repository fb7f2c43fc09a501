package dbbadger

import (
	"context"

	"github.com/timshannon/badgerhold/v4"

	"github.com/nftswap-network/nftswap-daemon/internal/core/domain"
)

type tradeRepositoryImpl struct {
	db *DbManager
}

// NewTradeRepositoryImpl initializes a badger implementation of the
// domain.TradeRepository.
func NewTradeRepositoryImpl(db *DbManager) domain.TradeRepository {
	return &tradeRepositoryImpl{db: db}
}

func (r *tradeRepositoryImpl) AddTrade(
	_ context.Context, trade *domain.Trade,
) error {
	return r.db.store.Insert(trade.Id, *trade)
}

func (r *tradeRepositoryImpl) GetTradesForPool(
	_ context.Context, poolName string,
) ([]domain.Trade, error) {
	return r.findTrades(badgerhold.Where("PoolName").Eq(poolName))
}

func (r *tradeRepositoryImpl) GetAllTrades(
	_ context.Context,
) ([]domain.Trade, error) {
	return r.findTrades(&badgerhold.Query{})
}

func (r *tradeRepositoryImpl) findTrades(
	query *badgerhold.Query,
) ([]domain.Trade, error) {
	var trades []domain.Trade
	if err := r.db.store.Find(&trades, query.SortBy("Timestamp")); err != nil {
		return nil, err
	}
	return trades, nil
}
