package domain_test

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/nftswap-network/nftswap-daemon/internal/core/domain"
	"github.com/nftswap-network/nftswap-daemon/pkg/curve"
	"github.com/nftswap-network/nftswap-daemon/pkg/fixedpoint"
)

func wad(t *testing.T, s string) *uint256.Int {
	t.Helper()
	v, err := fixedpoint.FromDecimalString(s)
	require.NoError(t, err)
	return v
}

func fee(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	f, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return f
}

func newTestPool(
	t *testing.T, poolType int, startPrice, delta, tradeFee, recipient string,
) *domain.Pool {
	t.Helper()
	pool, err := domain.NewPool(
		"testpool", poolType, domain.CurveTypeLinear,
		wad(t, startPrice), wad(t, delta), fee(t, tradeFee), recipient,
		domain.InventoryStrategyCompact,
	)
	require.NoError(t, err)
	require.NotNil(t, pool)
	return pool
}

func TestNewPool(t *testing.T) {
	tests := []struct {
		name          string
		poolName      string
		poolType      int
		curveType     int
		startPrice    string
		delta         string
		tradeFee      string
		recipient     string
		expectedError error
	}{
		{
			name:     "trade_pool",
			poolName: "p", poolType: domain.PoolTypeTrade,
			curveType:  domain.CurveTypeLinear,
			startPrice: "1", delta: "0.5", tradeFee: "0.05",
		},
		{
			name:     "trade_pool_max_fee",
			poolName: "p", poolType: domain.PoolTypeTrade,
			curveType:  domain.CurveTypeLinear,
			startPrice: "1", delta: "0.5", tradeFee: "0.90",
		},
		{
			name:     "sell_pool",
			poolName: "p", poolType: domain.PoolTypeSell,
			curveType:  domain.CurveTypeExponential,
			startPrice: "1", delta: "1.1", tradeFee: "0", recipient: "operator",
		},
		{
			name:     "empty_name",
			poolName: "", poolType: domain.PoolTypeTrade,
			curveType:  domain.CurveTypeLinear,
			startPrice: "1", delta: "0.5", tradeFee: "0",
			expectedError: domain.ErrPoolInvalidName,
		},
		{
			name:     "unknown_pool_type",
			poolName: "p", poolType: 42,
			curveType:  domain.CurveTypeLinear,
			startPrice: "1", delta: "0.5", tradeFee: "0",
			expectedError: domain.ErrPoolInvalidType,
		},
		{
			name:     "unknown_curve_type",
			poolName: "p", poolType: domain.PoolTypeTrade,
			curveType:  42,
			startPrice: "1", delta: "0.5", tradeFee: "0",
			expectedError: domain.ErrPoolInvalidCurveType,
		},
		{
			name:     "exponential_flat_delta",
			poolName: "p", poolType: domain.PoolTypeTrade,
			curveType:  domain.CurveTypeExponential,
			startPrice: "1", delta: "1", tradeFee: "0",
			expectedError: domain.ErrPoolInvalidDelta,
		},
		{
			name:     "exponential_tiny_start_price",
			poolName: "p", poolType: domain.PoolTypeTrade,
			curveType:  domain.CurveTypeExponential,
			startPrice: "0.0000000000001", delta: "1.1", tradeFee: "0",
			expectedError: domain.ErrPoolInvalidStartPrice,
		},
		{
			name:     "trade_pool_fee_above_cap",
			poolName: "p", poolType: domain.PoolTypeTrade,
			curveType:  domain.CurveTypeLinear,
			startPrice: "1", delta: "0.5", tradeFee: "0.91",
			expectedError: domain.ErrPoolFeeTooHigh,
		},
		{
			name:     "trade_pool_with_recipient",
			poolName: "p", poolType: domain.PoolTypeTrade,
			curveType:  domain.CurveTypeLinear,
			startPrice: "1", delta: "0.5", tradeFee: "0", recipient: "operator",
			expectedError: domain.ErrPoolRecipientNotApplicable,
		},
		{
			name:     "sell_pool_without_recipient",
			poolName: "p", poolType: domain.PoolTypeSell,
			curveType:  domain.CurveTypeLinear,
			startPrice: "1", delta: "0.5", tradeFee: "0",
			expectedError: domain.ErrPoolInvalidRecipient,
		},
		{
			name:     "sell_pool_with_fee",
			poolName: "p", poolType: domain.PoolTypeSell,
			curveType:  domain.CurveTypeLinear,
			startPrice: "1", delta: "0.5", tradeFee: "0.01", recipient: "operator",
			expectedError: domain.ErrPoolFeeNotApplicable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool, err := domain.NewPool(
				tt.poolName, tt.poolType, tt.curveType,
				wad(t, tt.startPrice), wad(t, tt.delta),
				fee(t, tt.tradeFee), tt.recipient,
				domain.InventoryStrategyCompact,
			)
			if tt.expectedError != nil {
				require.EqualError(t, err, tt.expectedError.Error())
				require.Nil(t, pool)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "0", pool.TokenBalance)
			require.Zero(t, pool.Inventory.Len())
		})
	}
}

func TestPoolSellNFTs(t *testing.T) {
	t.Run("pays_seller_and_protocol", func(t *testing.T) {
		pool := newTestPool(t, domain.PoolTypeTrade, "1", "0.5", "0", "")
		pool.DepositTokens(wad(t, "10"))

		res, err := pool.SellNFTs([]string{"nft1"}, nil, wad(t, "0.005"))
		require.NoError(t, err)
		require.Equal(t, "0.995", fixedpoint.Format(res.Output))
		require.Equal(t, "0.005", fixedpoint.Format(res.ProtocolFee))
		require.Equal(t, uint64(1), res.NumItemsPriced)
		require.Equal(t, "9", pool.TokenBalance)
		require.Equal(t, "0.5", pool.StartPrice)
		require.True(t, pool.Inventory.Contains("nft1"))
	})

	t.Run("clamped_count_still_absorbs_all_ids", func(t *testing.T) {
		pool := newTestPool(t, domain.PoolTypeTrade, "1", "0.5", "0", "")
		pool.DepositTokens(wad(t, "10"))

		ids := []string{
			"n1", "n2", "n3", "n4", "n5", "n6", "n7", "n8", "n9", "n10",
		}
		res, err := pool.SellNFTs(ids, nil, uint256.NewInt(0))
		require.NoError(t, err)
		require.Equal(t, uint64(2), res.NumItemsPriced)
		require.Equal(t, "1.5", fixedpoint.Format(res.Output))
		require.Equal(t, 10, pool.Inventory.Len())
		require.Equal(t, "0", pool.StartPrice)
		require.Equal(t, "8.5", pool.TokenBalance)
	})

	t.Run("rejected_on_buy_pool", func(t *testing.T) {
		pool := newTestPool(t, domain.PoolTypeBuy, "1", "0.5", "0", "operator")

		res, err := pool.SellNFTs([]string{"nft1"}, nil, uint256.NewInt(0))
		require.EqualError(t, err, domain.ErrPoolWrongDirection.Error())
		require.Nil(t, res)
	})

	t.Run("rejected_without_ids", func(t *testing.T) {
		pool := newTestPool(t, domain.PoolTypeTrade, "1", "0.5", "0", "")

		_, err := pool.SellNFTs(nil, nil, uint256.NewInt(0))
		require.EqualError(t, err, domain.ErrPoolZeroItems.Error())
	})

	t.Run("rejected_below_min_output", func(t *testing.T) {
		pool := newTestPool(t, domain.PoolTypeTrade, "1", "0.5", "0", "")
		pool.DepositTokens(wad(t, "10"))

		_, err := pool.SellNFTs([]string{"nft1"}, wad(t, "2"), uint256.NewInt(0))
		require.EqualError(t, err, domain.ErrPoolInsufficientOutput.Error())
		require.Equal(t, "1", pool.StartPrice)
		require.Zero(t, pool.Inventory.Len())
	})

	t.Run("rejected_on_empty_custody", func(t *testing.T) {
		pool := newTestPool(t, domain.PoolTypeTrade, "1", "0.5", "0", "")

		_, err := pool.SellNFTs([]string{"nft1"}, nil, uint256.NewInt(0))
		require.EqualError(t, err, domain.ErrPoolInsufficientBalance.Error())
	})

	t.Run("unpriceable_trade_surfaces_curve_error", func(t *testing.T) {
		pool := newTestPool(t, domain.PoolTypeTrade, "1", "2", "0", "")
		pool.DepositTokens(wad(t, "10"))

		_, err := pool.SellNFTs([]string{"nft1"}, nil, uint256.NewInt(0))
		require.ErrorIs(t, err, curve.ErrInsufficientLiquidity)
	})
}

func TestPoolBuySpecificNFTs(t *testing.T) {
	t.Run("routes_proceeds_to_recipient", func(t *testing.T) {
		pool := newTestPool(t, domain.PoolTypeBuy, "1", "0.5", "0", "operator")
		require.NoError(t, pool.DepositNFTs([]string{"nft1", "nft2"}))

		res, err := pool.BuySpecificNFTs(
			[]string{"nft1"}, nil, wad(t, "10"), wad(t, "0.005"),
		)
		require.NoError(t, err)
		require.Equal(t, []string{"nft1"}, res.Ids)
		require.Equal(t, "1.5075", fixedpoint.Format(res.Input))
		require.Equal(t, "0.0075", fixedpoint.Format(res.ProtocolFee))
		require.Equal(t, "1.5", fixedpoint.Format(res.Proceeds))
		require.Equal(t, "8.4925", fixedpoint.Format(res.Refund))
		require.Equal(t, "1.5", pool.StartPrice)
		require.Equal(t, "0", pool.TokenBalance)
		require.False(t, pool.Inventory.Contains("nft1"))
		require.True(t, pool.Inventory.Contains("nft2"))
	})

	t.Run("trade_pool_keeps_proceeds_in_custody", func(t *testing.T) {
		pool := newTestPool(t, domain.PoolTypeTrade, "1", "0.5", "0.1", "")
		require.NoError(t, pool.DepositNFTs([]string{"nft1"}))

		res, err := pool.BuySpecificNFTs(
			[]string{"nft1"}, nil, wad(t, "2"), wad(t, "0.005"),
		)
		require.NoError(t, err)
		require.Equal(t, "1.6575", fixedpoint.Format(res.Input))
		require.Equal(t, "0.0075", fixedpoint.Format(res.ProtocolFee))
		require.Equal(t, "0.15", fixedpoint.Format(res.PoolFee))
		require.Equal(t, "0", fixedpoint.Format(res.Proceeds))
		require.Equal(t, "0.3425", fixedpoint.Format(res.Refund))
		require.Equal(t, "1.65", pool.TokenBalance)
	})

	t.Run("rejected_on_sell_pool", func(t *testing.T) {
		pool := newTestPool(t, domain.PoolTypeSell, "1", "0.5", "0", "operator")

		_, err := pool.BuySpecificNFTs(
			[]string{"nft1"}, nil, wad(t, "10"), uint256.NewInt(0),
		)
		require.EqualError(t, err, domain.ErrPoolWrongDirection.Error())
	})

	t.Run("rejected_on_missing_id", func(t *testing.T) {
		pool := newTestPool(t, domain.PoolTypeBuy, "1", "0.5", "0", "operator")
		require.NoError(t, pool.DepositNFTs([]string{"nft1"}))

		_, err := pool.BuySpecificNFTs(
			[]string{"nft2"}, nil, wad(t, "10"), uint256.NewInt(0),
		)
		require.EqualError(t, err, domain.ErrPoolInsufficientInventory.Error())
	})

	t.Run("rejected_on_duplicate_ids", func(t *testing.T) {
		pool := newTestPool(t, domain.PoolTypeBuy, "1", "0.5", "0", "operator")
		require.NoError(t, pool.DepositNFTs([]string{"nft1"}))

		_, err := pool.BuySpecificNFTs(
			[]string{"nft1", "nft1"}, nil, wad(t, "10"), uint256.NewInt(0),
		)
		require.EqualError(t, err, domain.ErrPoolInsufficientInventory.Error())
		require.True(t, pool.Inventory.Contains("nft1"))
	})

	t.Run("rejected_above_max_input", func(t *testing.T) {
		pool := newTestPool(t, domain.PoolTypeBuy, "1", "0.5", "0", "operator")
		require.NoError(t, pool.DepositNFTs([]string{"nft1"}))

		_, err := pool.BuySpecificNFTs(
			[]string{"nft1"}, wad(t, "1"), wad(t, "10"), uint256.NewInt(0),
		)
		require.EqualError(t, err, domain.ErrPoolExceedsMaxInput.Error())
		require.True(t, pool.Inventory.Contains("nft1"))
	})

	t.Run("rejected_on_underpayment", func(t *testing.T) {
		pool := newTestPool(t, domain.PoolTypeBuy, "1", "0.5", "0", "operator")
		require.NoError(t, pool.DepositNFTs([]string{"nft1"}))

		_, err := pool.BuySpecificNFTs(
			[]string{"nft1"}, nil, wad(t, "1"), uint256.NewInt(0),
		)
		require.EqualError(t, err, domain.ErrPoolInsufficientPayment.Error())
	})
}

func TestPoolBuyAnyNFTs(t *testing.T) {
	t.Run("picks_from_inventory", func(t *testing.T) {
		pool := newTestPool(t, domain.PoolTypeBuy, "1", "0.5", "0", "operator")
		require.NoError(t, pool.DepositNFTs([]string{"nft1", "nft2"}))

		res, err := pool.BuyAnyNFTs(2, nil, wad(t, "10"), uint256.NewInt(0))
		require.NoError(t, err)
		require.Len(t, res.Ids, 2)
		require.Equal(t, "3.5", fixedpoint.Format(res.Input))
		require.Zero(t, pool.Inventory.Len())
	})

	t.Run("rejected_beyond_inventory", func(t *testing.T) {
		pool := newTestPool(t, domain.PoolTypeBuy, "1", "0.5", "0", "operator")
		require.NoError(t, pool.DepositNFTs([]string{"nft1"}))

		_, err := pool.BuyAnyNFTs(2, nil, wad(t, "10"), uint256.NewInt(0))
		require.EqualError(t, err, domain.ErrPoolInsufficientInventory.Error())
	})
}

func TestPoolAdminUpdates(t *testing.T) {
	t.Run("start_price", func(t *testing.T) {
		pool := newTestPool(t, domain.PoolTypeTrade, "1", "0.5", "0", "")

		require.NoError(t, pool.SetStartPrice(wad(t, "2")))
		require.Equal(t, "2", pool.StartPrice)

		err := pool.SetStartPrice(wad(t, "2"))
		require.EqualError(t, err, domain.ErrPoolNoOp.Error())
	})

	t.Run("delta", func(t *testing.T) {
		pool := newTestPool(t, domain.PoolTypeTrade, "1", "0.5", "0", "")

		require.NoError(t, pool.SetDelta(wad(t, "0.25")))
		require.Equal(t, "0.25", pool.Delta)

		err := pool.SetDelta(wad(t, "0.25"))
		require.EqualError(t, err, domain.ErrPoolNoOp.Error())
	})

	t.Run("delta_rejected_by_curve", func(t *testing.T) {
		pool, err := domain.NewPool(
			"p", domain.PoolTypeTrade, domain.CurveTypeExponential,
			wad(t, "1"), wad(t, "1.1"), decimal.Zero, "",
			domain.InventoryStrategyCompact,
		)
		require.NoError(t, err)

		err = pool.SetDelta(wad(t, "1"))
		require.EqualError(t, err, domain.ErrPoolInvalidDelta.Error())
	})

	t.Run("trade_fee", func(t *testing.T) {
		pool := newTestPool(t, domain.PoolTypeTrade, "1", "0.5", "0", "")

		require.NoError(t, pool.SetTradeFee(fee(t, "0.9")))
		require.Equal(t, "0.9", pool.TradeFee)

		err := pool.SetTradeFee(fee(t, "0.90"))
		require.EqualError(t, err, domain.ErrPoolNoOp.Error())

		err = pool.SetTradeFee(fee(t, "0.91"))
		require.EqualError(t, err, domain.ErrPoolFeeTooHigh.Error())
	})

	t.Run("trade_fee_on_sell_pool", func(t *testing.T) {
		pool := newTestPool(t, domain.PoolTypeSell, "1", "0.5", "0", "operator")

		err := pool.SetTradeFee(fee(t, "0.01"))
		require.EqualError(t, err, domain.ErrPoolFeeNotApplicable.Error())
	})

	t.Run("assets_recipient", func(t *testing.T) {
		pool := newTestPool(t, domain.PoolTypeSell, "1", "0.5", "0", "operator")

		require.NoError(t, pool.SetAssetsRecipient("treasury"))
		require.Equal(t, "treasury", pool.AssetsRecipient)

		err := pool.SetAssetsRecipient("treasury")
		require.EqualError(t, err, domain.ErrPoolNoOp.Error())

		err = pool.SetAssetsRecipient("")
		require.EqualError(t, err, domain.ErrPoolInvalidRecipient.Error())
	})

	t.Run("assets_recipient_on_trade_pool", func(t *testing.T) {
		pool := newTestPool(t, domain.PoolTypeTrade, "1", "0.5", "0", "")

		err := pool.SetAssetsRecipient("treasury")
		require.EqualError(t, err, domain.ErrPoolRecipientNotApplicable.Error())
	})
}

func TestPoolDepositsAndWithdrawals(t *testing.T) {
	pool := newTestPool(t, domain.PoolTypeTrade, "1", "0.5", "0", "")

	pool.DepositTokens(wad(t, "2.5"))
	pool.DepositTokens(wad(t, "0.5"))
	require.Equal(t, "3", pool.TokenBalance)

	require.NoError(t, pool.WithdrawTokens(wad(t, "1")))
	require.Equal(t, "2", pool.TokenBalance)

	err := pool.WithdrawTokens(wad(t, "5"))
	require.EqualError(t, err, domain.ErrPoolInsufficientBalance.Error())
	require.Equal(t, "2", pool.TokenBalance)

	require.NoError(t, pool.DepositNFTs([]string{"nft1", "nft2"}))
	err = pool.DepositNFTs([]string{"nft2"})
	require.EqualError(t, err, domain.ErrPoolDuplicateNFT.Error())

	// All-or-nothing: one missing id fails the whole withdrawal.
	err = pool.WithdrawNFTs([]string{"nft1", "nft3"})
	require.EqualError(t, err, domain.ErrPoolInsufficientInventory.Error())
	require.Equal(t, 2, pool.Inventory.Len())

	// Listing the same id twice would claim two transfers against one
	// custodied NFT.
	err = pool.WithdrawNFTs([]string{"nft1", "nft1"})
	require.EqualError(t, err, domain.ErrPoolInsufficientInventory.Error())
	require.Equal(t, 2, pool.Inventory.Len())
	require.True(t, pool.Inventory.Contains("nft1"))

	require.NoError(t, pool.WithdrawNFTs([]string{"nft1", "nft2"}))
	require.Zero(t, pool.Inventory.Len())
}
