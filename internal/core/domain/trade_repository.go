package domain

import "context"

// TradeRepository is the abstraction for any kind of database intended to
// persist the audit log of executed Trades.
type TradeRepository interface {
	// AddTrade appends a trade record.
	AddTrade(ctx context.Context, trade *Trade) error
	// GetTradesForPool returns all trades executed against a pool.
	GetTradesForPool(ctx context.Context, poolName string) ([]Trade, error)
	// GetAllTrades returns all recorded trades.
	GetAllTrades(ctx context.Context) ([]Trade, error)
}
