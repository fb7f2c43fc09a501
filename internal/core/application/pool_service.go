package application

import (
	"context"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/nftswap-network/nftswap-daemon/internal/core/domain"
	"github.com/nftswap-network/nftswap-daemon/internal/core/ports"
	"github.com/nftswap-network/nftswap-daemon/pkg/fixedpoint"
)

// PoolService exposes the owner-side operations of a pool: one-time
// creation, curve-parameter and fee administration, deposits and
// withdrawals. Authorization of the caller is assumed to have happened
// upstream.
type PoolService interface {
	CreatePool(
		ctx context.Context,
		name string, poolType, curveType int,
		startPrice, delta *uint256.Int,
		tradeFee decimal.Decimal, assetsRecipient string,
		inventoryStrategy int,
	) (*PoolInfo, error)
	GetPool(ctx context.Context, name string) (*PoolInfo, error)
	ListPools(ctx context.Context) ([]PoolInfo, error)
	UpdateStartPrice(ctx context.Context, name string, v *uint256.Int) error
	UpdateDelta(ctx context.Context, name string, v *uint256.Int) error
	UpdateTradeFee(ctx context.Context, name string, fee decimal.Decimal) error
	UpdateAssetsRecipient(ctx context.Context, name, recipient string) error
	DepositTokens(ctx context.Context, name string, amount *uint256.Int) error
	DepositNFTs(ctx context.Context, name string, ids []string) error
	WithdrawTokens(
		ctx context.Context, name string, amount *uint256.Int, to string,
	) error
	WithdrawNFTs(ctx context.Context, name string, ids []string, to string) error
}

type poolService struct {
	repoManager ports.RepoManager
	pubsub      ports.PubSub
}

// NewPoolService returns a PoolService backed by the given repositories.
func NewPoolService(
	repoManager ports.RepoManager, pubsub ports.PubSub,
) PoolService {
	return &poolService{repoManager: repoManager, pubsub: pubsub}
}

func (s *poolService) CreatePool(
	ctx context.Context,
	name string, poolType, curveType int,
	startPrice, delta *uint256.Int,
	tradeFee decimal.Decimal, assetsRecipient string,
	inventoryStrategy int,
) (*PoolInfo, error) {
	pool, err := domain.NewPool(
		name, poolType, curveType, startPrice, delta,
		tradeFee, assetsRecipient, inventoryStrategy,
	)
	if err != nil {
		return nil, err
	}
	if err := s.repoManager.PoolRepository().AddPool(ctx, pool); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"pool":  name,
		"curve": pool.Curve().Name(),
	}).Info("pool created")
	return poolInfo(pool), nil
}

func (s *poolService) GetPool(
	ctx context.Context, name string,
) (*PoolInfo, error) {
	pool, err := s.repoManager.PoolRepository().GetPool(ctx, name)
	if err != nil {
		return nil, err
	}
	return poolInfo(pool), nil
}

func (s *poolService) ListPools(ctx context.Context) ([]PoolInfo, error) {
	pools, err := s.repoManager.PoolRepository().GetAllPools(ctx)
	if err != nil {
		return nil, err
	}
	infos := make([]PoolInfo, 0, len(pools))
	for i := range pools {
		infos = append(infos, *poolInfo(&pools[i]))
	}
	return infos, nil
}

func (s *poolService) UpdateStartPrice(
	ctx context.Context, name string, v *uint256.Int,
) error {
	if err := s.updatePool(ctx, name, func(p *domain.Pool) error {
		return p.SetStartPrice(v)
	}); err != nil {
		return err
	}
	publishEvent(s.pubsub, ports.TopicPool, "StartPriceUpdated",
		domain.StartPriceUpdatedEvent{
			PoolName: name, StartPrice: fixedpoint.Format(v),
		},
	)
	return nil
}

func (s *poolService) UpdateDelta(
	ctx context.Context, name string, v *uint256.Int,
) error {
	if err := s.updatePool(ctx, name, func(p *domain.Pool) error {
		return p.SetDelta(v)
	}); err != nil {
		return err
	}
	publishEvent(s.pubsub, ports.TopicPool, "DeltaUpdated",
		domain.DeltaUpdatedEvent{PoolName: name, Delta: fixedpoint.Format(v)},
	)
	return nil
}

func (s *poolService) UpdateTradeFee(
	ctx context.Context, name string, fee decimal.Decimal,
) error {
	if err := s.updatePool(ctx, name, func(p *domain.Pool) error {
		return p.SetTradeFee(fee)
	}); err != nil {
		return err
	}
	publishEvent(s.pubsub, ports.TopicPool, "TradeFeeUpdated",
		domain.TradeFeeUpdatedEvent{PoolName: name, TradeFee: fee.String()},
	)
	return nil
}

func (s *poolService) UpdateAssetsRecipient(
	ctx context.Context, name, recipient string,
) error {
	if err := s.updatePool(ctx, name, func(p *domain.Pool) error {
		return p.SetAssetsRecipient(recipient)
	}); err != nil {
		return err
	}
	publishEvent(s.pubsub, ports.TopicPool, "AssetsRecipientUpdated",
		domain.AssetsRecipientUpdatedEvent{
			PoolName: name, AssetsRecipient: recipient,
		},
	)
	return nil
}

func (s *poolService) DepositTokens(
	ctx context.Context, name string, amount *uint256.Int,
) error {
	if err := s.updatePool(ctx, name, func(p *domain.Pool) error {
		p.DepositTokens(amount)
		return nil
	}); err != nil {
		return err
	}
	publishEvent(s.pubsub, ports.TopicDeposit, "TokenDeposit",
		domain.TokenDepositEvent{
			PoolName: name, Amount: fixedpoint.Format(amount),
		},
	)
	return nil
}

func (s *poolService) DepositNFTs(
	ctx context.Context, name string, ids []string,
) error {
	if err := s.updatePool(ctx, name, func(p *domain.Pool) error {
		return p.DepositNFTs(ids)
	}); err != nil {
		return err
	}
	publishEvent(s.pubsub, ports.TopicDeposit, "NFTDeposit",
		domain.NFTDepositEvent{PoolName: name, Ids: ids},
	)
	return nil
}

func (s *poolService) WithdrawTokens(
	ctx context.Context, name string, amount *uint256.Int, to string,
) error {
	if err := s.updatePool(ctx, name, func(p *domain.Pool) error {
		return p.WithdrawTokens(amount)
	}); err != nil {
		return err
	}
	publishEvent(s.pubsub, ports.TopicWithdrawal, "TokenWithdrawal",
		domain.TokenWithdrawalEvent{
			PoolName: name, To: to, Amount: fixedpoint.Format(amount),
		},
	)
	return nil
}

func (s *poolService) WithdrawNFTs(
	ctx context.Context, name string, ids []string, to string,
) error {
	if err := s.updatePool(ctx, name, func(p *domain.Pool) error {
		return p.WithdrawNFTs(ids)
	}); err != nil {
		return err
	}
	publishEvent(s.pubsub, ports.TopicWithdrawal, "NFTWithdrawal",
		domain.NFTWithdrawalEvent{PoolName: name, To: to, Count: len(ids)},
	)
	return nil
}

func (s *poolService) updatePool(
	ctx context.Context, name string, fn func(p *domain.Pool) error,
) error {
	return s.repoManager.PoolRepository().UpdatePool(
		ctx, name, func(p *domain.Pool) (*domain.Pool, error) {
			if err := fn(p); err != nil {
				return nil, err
			}
			return p, nil
		},
	)
}
