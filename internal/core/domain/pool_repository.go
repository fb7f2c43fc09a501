package domain

import "context"

// PoolRepository is the abstraction for any kind of database intended to
// persist Pools.
type PoolRepository interface {
	// AddPool adds a new pool to the repository. Adding a pool whose name
	// already exists fails with ErrPoolAlreadyInitialized.
	AddPool(ctx context.Context, pool *Pool) error
	// GetPool returns the pool with the given name.
	GetPool(ctx context.Context, name string) (*Pool, error)
	// GetAllPools returns all pools.
	GetAllPools(ctx context.Context) ([]Pool, error)
	// UpdatePool updates the state of a pool. The closure commits multiple
	// changes to the pool transactionally: the updated copy is persisted
	// only when the closure returns no error, and no other update on the
	// same repository interleaves.
	UpdatePool(
		ctx context.Context,
		name string, updateFn func(p *Pool) (*Pool, error),
	) error
	// DeletePool removes a pool from the repository.
	DeletePool(ctx context.Context, name string) error
}
