package dbbadger

import (
	"context"
	"sync"

	"github.com/timshannon/badgerhold/v4"

	"github.com/nftswap-network/nftswap-daemon/internal/core/domain"
)

type poolRepositoryImpl struct {
	db *DbManager

	// badgerhold has no read-modify-write primitive spanning the update
	// closure, the lock provides the single-writer-per-pool guarantee.
	lock *sync.Mutex
}

// NewPoolRepositoryImpl initializes a badger implementation of the
// domain.PoolRepository.
func NewPoolRepositoryImpl(db *DbManager) domain.PoolRepository {
	return &poolRepositoryImpl{db: db, lock: &sync.Mutex{}}
}

func (r *poolRepositoryImpl) AddPool(
	_ context.Context, pool *domain.Pool,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if err := r.db.store.Insert(pool.Name, *pool); err != nil {
		if err == badgerhold.ErrKeyExists {
			return domain.ErrPoolAlreadyInitialized
		}
		return err
	}
	return nil
}

func (r *poolRepositoryImpl) GetPool(
	_ context.Context, name string,
) (*domain.Pool, error) {
	return r.getPool(name)
}

func (r *poolRepositoryImpl) GetAllPools(
	_ context.Context,
) ([]domain.Pool, error) {
	var pools []domain.Pool
	if err := r.db.store.Find(&pools, &badgerhold.Query{}); err != nil {
		return nil, err
	}
	return pools, nil
}

func (r *poolRepositoryImpl) UpdatePool(
	_ context.Context,
	name string, updateFn func(p *domain.Pool) (*domain.Pool, error),
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	currentPool, err := r.getPool(name)
	if err != nil {
		return err
	}

	updatedPool, err := updateFn(currentPool)
	if err != nil {
		return err
	}

	return r.db.store.Update(name, *updatedPool)
}

func (r *poolRepositoryImpl) DeletePool(
	_ context.Context, name string,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if err := r.db.store.Delete(name, domain.Pool{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return domain.ErrPoolNotFound
		}
		return err
	}
	return nil
}

func (r *poolRepositoryImpl) getPool(name string) (*domain.Pool, error) {
	var pool domain.Pool
	if err := r.db.store.Get(name, &pool); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrPoolNotFound
		}
		return nil, err
	}
	return &pool, nil
}
