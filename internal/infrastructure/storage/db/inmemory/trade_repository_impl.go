package inmemory

import (
	"context"
	"sync"

	"github.com/nftswap-network/nftswap-daemon/internal/core/domain"
)

// TradeRepositoryImpl represents an in-memory storage for the trade
// audit log.
type TradeRepositoryImpl struct {
	trades []domain.Trade

	lock *sync.RWMutex
}

// NewTradeRepositoryImpl returns a new empty TradeRepositoryImpl.
func NewTradeRepositoryImpl() *TradeRepositoryImpl {
	return &TradeRepositoryImpl{
		trades: []domain.Trade{},
		lock:   &sync.RWMutex{},
	}
}

func (r *TradeRepositoryImpl) AddTrade(
	_ context.Context, trade *domain.Trade,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.trades = append(r.trades, *trade)
	return nil
}

func (r *TradeRepositoryImpl) GetTradesForPool(
	_ context.Context, poolName string,
) ([]domain.Trade, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	trades := make([]domain.Trade, 0)
	for _, trade := range r.trades {
		if trade.PoolName == poolName {
			trades = append(trades, trade)
		}
	}
	return trades, nil
}

func (r *TradeRepositoryImpl) GetAllTrades(
	_ context.Context,
) ([]domain.Trade, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	trades := make([]domain.Trade, len(r.trades))
	copy(trades, r.trades)
	return trades, nil
}
