package inmemory

import (
	"github.com/nftswap-network/nftswap-daemon/internal/core/domain"
	"github.com/nftswap-network/nftswap-daemon/internal/core/ports"
)

// DbManager is the in-memory implementation of ports.RepoManager, meant
// for tests and ephemeral runs.
type DbManager struct {
	poolRepository  domain.PoolRepository
	tradeRepository domain.TradeRepository
}

// NewDbManager returns an empty in-memory repo manager.
func NewDbManager() ports.RepoManager {
	return &DbManager{
		poolRepository:  NewPoolRepositoryImpl(),
		tradeRepository: NewTradeRepositoryImpl(),
	}
}

func (d *DbManager) PoolRepository() domain.PoolRepository {
	return d.poolRepository
}

func (d *DbManager) TradeRepository() domain.TradeRepository {
	return d.tradeRepository
}

func (d *DbManager) Close() {}
