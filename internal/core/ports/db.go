package ports

import (
	"github.com/nftswap-network/nftswap-daemon/internal/core/domain"
)

// RepoManager gives access to the repositories of all domain entities over
// one backing store.
type RepoManager interface {
	// PoolRepository returns the pool repository.
	PoolRepository() domain.PoolRepository
	// TradeRepository returns the trade audit-log repository.
	TradeRepository() domain.TradeRepository
	// Close gracefully closes the connection with the backing store.
	Close()
}
