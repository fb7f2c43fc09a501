package application

import (
	"context"
	"errors"

	"github.com/holiman/uint256"
	log "github.com/sirupsen/logrus"

	"github.com/nftswap-network/nftswap-daemon/internal/core/domain"
	"github.com/nftswap-network/nftswap-daemon/internal/core/ports"
	"github.com/nftswap-network/nftswap-daemon/pkg/curve"
	"github.com/nftswap-network/nftswap-daemon/pkg/fixedpoint"
)

// ErrInvalidProtocolFee is thrown when constructing a trade service with a
// protocol fee fraction of 1.0 or more.
var ErrInvalidProtocolFee = errors.New("protocol fee fraction must be below 1")

// TradeService executes swaps against pools. The process-wide protocol
// fee fraction and its recipient are injected once at construction and
// are read-only for the lifetime of the service.
type TradeService interface {
	SellNFTs(
		ctx context.Context, poolName string, ids []string,
		minOutput *uint256.Int, recipient string,
	) (*SellSwapInfo, error)
	BuySpecificNFTs(
		ctx context.Context, poolName string, ids []string,
		maxInput, offeredAmount *uint256.Int, recipient string,
	) (*BuySwapInfo, error)
	BuyAnyNFTs(
		ctx context.Context, poolName string, count uint64,
		maxInput, offeredAmount *uint256.Int, recipient string,
	) (*BuySwapInfo, error)
	PreviewBuy(
		ctx context.Context, poolName string, numItems uint64,
	) (*QuoteInfo, error)
	PreviewSell(
		ctx context.Context, poolName string, numItems uint64,
	) (*QuoteInfo, error)
}

type tradeService struct {
	repoManager          ports.RepoManager
	pubsub               ports.PubSub
	protocolFeeFraction  *uint256.Int
	protocolFeeRecipient string
}

// NewTradeService returns a TradeService applying the given protocol fee
// on every swap.
func NewTradeService(
	repoManager ports.RepoManager, pubsub ports.PubSub,
	protocolFeeFraction *uint256.Int, protocolFeeRecipient string,
) (TradeService, error) {
	if !protocolFeeFraction.Lt(fixedpoint.One) {
		return nil, ErrInvalidProtocolFee
	}
	return &tradeService{
		repoManager:          repoManager,
		pubsub:               pubsub,
		protocolFeeFraction:  protocolFeeFraction,
		protocolFeeRecipient: protocolFeeRecipient,
	}, nil
}

func (s *tradeService) SellNFTs(
	ctx context.Context, poolName string, ids []string,
	minOutput *uint256.Int, recipient string,
) (*SellSwapInfo, error) {
	var result *domain.SellResult
	var updated *domain.Pool
	if err := s.repoManager.PoolRepository().UpdatePool(
		ctx, poolName, func(p *domain.Pool) (*domain.Pool, error) {
			res, err := p.SellNFTs(ids, minOutput, s.protocolFeeFraction)
			if err != nil {
				return nil, err
			}
			result, updated = res, p
			return p, nil
		},
	); err != nil {
		return nil, err
	}

	trade := domain.NewTrade(
		poolName, domain.TradeTypeSell, ids, result.NumItemsPriced,
		fixedpoint.Format(result.Output),
		fixedpoint.Format(result.ProtocolFee),
		fixedpoint.Format(result.PoolFee),
	)
	s.recordTrade(ctx, trade)

	publishEvent(s.pubsub, ports.TopicTrade, "SellExecuted",
		domain.SellExecutedEvent{
			PoolName:    poolName,
			Seller:      recipient,
			NumItems:    result.NumItemsPriced,
			Output:      fixedpoint.Format(result.Output),
			ProtocolFee: fixedpoint.Format(result.ProtocolFee),
		},
	)
	s.publishCurveState(updated)

	log.WithFields(log.Fields{
		"pool":   poolName,
		"items":  result.NumItemsPriced,
		"output": fixedpoint.Format(result.Output),
	}).Info("sell swap executed")

	return &SellSwapInfo{
		TradeId:              trade.Id,
		PoolName:             poolName,
		NumItemsPriced:       result.NumItemsPriced,
		Output:               fixedpoint.Format(result.Output),
		Recipient:            recipient,
		ProtocolFee:          fixedpoint.Format(result.ProtocolFee),
		ProtocolFeeRecipient: s.protocolFeeRecipient,
		PoolFee:              fixedpoint.Format(result.PoolFee),
	}, nil
}

func (s *tradeService) BuySpecificNFTs(
	ctx context.Context, poolName string, ids []string,
	maxInput, offeredAmount *uint256.Int, recipient string,
) (*BuySwapInfo, error) {
	return s.buy(
		ctx, poolName, recipient,
		func(p *domain.Pool) (*domain.BuyResult, error) {
			return p.BuySpecificNFTs(
				ids, maxInput, offeredAmount, s.protocolFeeFraction,
			)
		},
	)
}

func (s *tradeService) BuyAnyNFTs(
	ctx context.Context, poolName string, count uint64,
	maxInput, offeredAmount *uint256.Int, recipient string,
) (*BuySwapInfo, error) {
	return s.buy(
		ctx, poolName, recipient,
		func(p *domain.Pool) (*domain.BuyResult, error) {
			return p.BuyAnyNFTs(
				count, maxInput, offeredAmount, s.protocolFeeFraction,
			)
		},
	)
}

func (s *tradeService) buy(
	ctx context.Context, poolName, recipient string,
	swap func(p *domain.Pool) (*domain.BuyResult, error),
) (*BuySwapInfo, error) {
	var result *domain.BuyResult
	var updated *domain.Pool
	if err := s.repoManager.PoolRepository().UpdatePool(
		ctx, poolName, func(p *domain.Pool) (*domain.Pool, error) {
			res, err := swap(p)
			if err != nil {
				return nil, err
			}
			result, updated = res, p
			return p, nil
		},
	); err != nil {
		return nil, err
	}

	trade := domain.NewTrade(
		poolName, domain.TradeTypeBuy, result.Ids, uint64(len(result.Ids)),
		fixedpoint.Format(result.Input),
		fixedpoint.Format(result.ProtocolFee),
		fixedpoint.Format(result.PoolFee),
	)
	s.recordTrade(ctx, trade)

	publishEvent(s.pubsub, ports.TopicTrade, "BuyExecuted",
		domain.BuyExecutedEvent{
			PoolName:    poolName,
			Buyer:       recipient,
			NumItems:    uint64(len(result.Ids)),
			Input:       fixedpoint.Format(result.Input),
			ProtocolFee: fixedpoint.Format(result.ProtocolFee),
		},
	)
	s.publishCurveState(updated)

	log.WithFields(log.Fields{
		"pool":  poolName,
		"items": len(result.Ids),
		"input": fixedpoint.Format(result.Input),
	}).Info("buy swap executed")

	return &BuySwapInfo{
		TradeId:              trade.Id,
		PoolName:             poolName,
		Ids:                  result.Ids,
		Recipient:            recipient,
		Input:                fixedpoint.Format(result.Input),
		ProtocolFee:          fixedpoint.Format(result.ProtocolFee),
		ProtocolFeeRecipient: s.protocolFeeRecipient,
		PoolFee:              fixedpoint.Format(result.PoolFee),
		Proceeds:             fixedpoint.Format(result.Proceeds),
		ProceedsRecipient:    updated.AssetsRecipient,
		Refund:               fixedpoint.Format(result.Refund),
	}, nil
}

func (s *tradeService) PreviewBuy(
	ctx context.Context, poolName string, numItems uint64,
) (*QuoteInfo, error) {
	pool, err := s.repoManager.PoolRepository().GetPool(ctx, poolName)
	if err != nil {
		return nil, err
	}
	quote, err := pool.PreviewBuy(numItems, s.protocolFeeFraction)
	if err != nil {
		return nil, err
	}
	return quoteInfo(quote), nil
}

func (s *tradeService) PreviewSell(
	ctx context.Context, poolName string, numItems uint64,
) (*QuoteInfo, error) {
	pool, err := s.repoManager.PoolRepository().GetPool(ctx, poolName)
	if err != nil {
		return nil, err
	}
	quote, err := pool.PreviewSell(numItems, s.protocolFeeFraction)
	if err != nil {
		return nil, err
	}
	return quoteInfo(quote), nil
}

// recordTrade appends to the audit log; the swap is already committed, a
// logging failure must not undo it.
func (s *tradeService) recordTrade(ctx context.Context, trade *domain.Trade) {
	if err := s.repoManager.TradeRepository().AddTrade(ctx, trade); err != nil {
		log.WithError(err).WithField("pool", trade.PoolName).
			Warn("failed to record trade")
	}
}

func (s *tradeService) publishCurveState(p *domain.Pool) {
	publishEvent(s.pubsub, ports.TopicPool, "StartPriceUpdated",
		domain.StartPriceUpdatedEvent{PoolName: p.Name, StartPrice: p.StartPrice},
	)
	publishEvent(s.pubsub, ports.TopicPool, "DeltaUpdated",
		domain.DeltaUpdatedEvent{PoolName: p.Name, Delta: p.Delta},
	)
}

func quoteInfo(q *curve.Quote) *QuoteInfo {
	return &QuoteInfo{
		NumItems:      q.NumItems,
		Amount:        fixedpoint.Format(q.Amount),
		ProtocolFee:   fixedpoint.Format(q.ProtocolFee),
		PoolFee:       fixedpoint.Format(q.PoolFee),
		NewStartPrice: fixedpoint.Format(q.NewStartPrice),
		NewDelta:      fixedpoint.Format(q.NewDelta),
	}
}
