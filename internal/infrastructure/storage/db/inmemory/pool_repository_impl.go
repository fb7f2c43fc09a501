package inmemory

import (
	"bytes"
	"context"
	"encoding/gob"
	"sync"

	"github.com/nftswap-network/nftswap-daemon/internal/core/domain"
)

// PoolRepositoryImpl represents an in-memory storage for pools.
//
// UpdatePool runs its closure under the write lock, which is what gives
// every swap its single-writer-per-pool semantics in this implementation.
type PoolRepositoryImpl struct {
	pools map[string]*domain.Pool

	lock *sync.RWMutex
}

// NewPoolRepositoryImpl returns a new empty PoolRepositoryImpl.
func NewPoolRepositoryImpl() *PoolRepositoryImpl {
	return &PoolRepositoryImpl{
		pools: map[string]*domain.Pool{},
		lock:  &sync.RWMutex{},
	}
}

func (r *PoolRepositoryImpl) AddPool(
	_ context.Context, pool *domain.Pool,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.pools[pool.Name]; ok {
		return domain.ErrPoolAlreadyInitialized
	}
	clone, err := clonePool(pool)
	if err != nil {
		return err
	}
	r.pools[pool.Name] = clone
	return nil
}

func (r *PoolRepositoryImpl) GetPool(
	_ context.Context, name string,
) (*domain.Pool, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	pool, ok := r.pools[name]
	if !ok {
		return nil, domain.ErrPoolNotFound
	}
	return clonePool(pool)
}

func (r *PoolRepositoryImpl) GetAllPools(
	_ context.Context,
) ([]domain.Pool, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	pools := make([]domain.Pool, 0, len(r.pools))
	for _, pool := range r.pools {
		clone, err := clonePool(pool)
		if err != nil {
			return nil, err
		}
		pools = append(pools, *clone)
	}
	return pools, nil
}

func (r *PoolRepositoryImpl) UpdatePool(
	_ context.Context,
	name string, updateFn func(p *domain.Pool) (*domain.Pool, error),
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	currentPool, ok := r.pools[name]
	if !ok {
		return domain.ErrPoolNotFound
	}

	// The closure gets a deep copy; nothing is committed on error.
	workingCopy, err := clonePool(currentPool)
	if err != nil {
		return err
	}
	updatedPool, err := updateFn(workingCopy)
	if err != nil {
		return err
	}

	r.pools[name] = updatedPool
	return nil
}

func (r *PoolRepositoryImpl) DeletePool(
	_ context.Context, name string,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.pools[name]; !ok {
		return domain.ErrPoolNotFound
	}
	delete(r.pools, name)
	return nil
}

// clonePool deep-copies a pool through gob, the same codec the persistent
// store uses, so both backends share serialization quirks.
func clonePool(pool *domain.Pool) (*domain.Pool, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(pool); err != nil {
		return nil, err
	}
	clone := &domain.Pool{}
	if err := gob.NewDecoder(&buf).Decode(clone); err != nil {
		return nil, err
	}
	return clone, nil
}
