package curve

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/nftswap-network/nftswap-daemon/pkg/fixedpoint"
)

func TestLinearValidate(t *testing.T) {
	c := NewLinear()
	require.Equal(t, LinearCurveName, c.Name())
	require.True(t, c.ValidateStartPrice(uint256.NewInt(0)))
	require.True(t, c.ValidateDelta(uint256.NewInt(0)))
}

func TestLinearBuyQuote(t *testing.T) {
	tests := []struct {
		name          string
		startPrice    string
		delta         string
		numItems      uint64
		wantAmount    string
		wantNewStart  string
		wantItems     uint64
		expectedError error
	}{
		{
			name:       "single_item",
			startPrice: "1", delta: "0.1", numItems: 1,
			wantAmount: "1.1", wantNewStart: "1.1", wantItems: 1,
		},
		{
			name:       "multiple_items",
			startPrice: "1", delta: "0.1", numItems: 5,
			wantAmount: "6.5", wantNewStart: "1.5", wantItems: 5,
		},
		{
			name:       "flat_curve",
			startPrice: "2", delta: "0", numItems: 3,
			wantAmount: "6", wantNewStart: "2", wantItems: 3,
		},
		{
			name:       "zero_items",
			startPrice: "1", delta: "0.1", numItems: 0,
			expectedError: ErrZeroItems,
		},
	}

	c := NewLinear()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := c.BuyQuote(quoteOpts(t, tt.startPrice, tt.delta, tt.numItems))
			if tt.expectedError != nil {
				require.EqualError(t, err, tt.expectedError.Error())
				require.Nil(t, q)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantAmount, fixedpoint.Format(q.Amount))
			require.Equal(t, tt.wantNewStart, fixedpoint.Format(q.NewStartPrice))
			require.Equal(t, tt.delta, fixedpoint.Format(q.NewDelta))
			require.Equal(t, tt.wantItems, q.NumItems)
		})
	}
}

func TestLinearBuyQuoteWithFees(t *testing.T) {
	opts := quoteOpts(t, "1", "0.1", 5)
	opts.ProtocolFeeFraction = wad(t, "0.005")
	opts.PoolFeeFraction = wad(t, "0.01")

	q, err := NewLinear().BuyQuote(opts)
	require.NoError(t, err)
	require.Equal(t, "0.0325", fixedpoint.Format(q.ProtocolFee))
	require.Equal(t, "0.065", fixedpoint.Format(q.PoolFee))
	require.Equal(t, "6.5975", fixedpoint.Format(q.Amount))
}

func TestLinearBuyQuoteOverflow(t *testing.T) {
	opts := QuoteOpts{
		StartPrice:          new(uint256.Int).Set(fixedpoint.MaxCurveValue),
		Delta:               fixedpoint.One,
		NumItems:            1,
		ProtocolFeeFraction: uint256.NewInt(0),
		PoolFeeFraction:     uint256.NewInt(0),
	}
	q, err := NewLinear().BuyQuote(opts)
	require.EqualError(t, err, ErrPriceOverflow.Error())
	require.Nil(t, q)
}

// A start price large enough that base*feeFraction no longer fits 256 bits
// must fail the quote instead of crashing the fee math.
func TestLinearSellQuoteFeeOverflow(t *testing.T) {
	opts := quoteOpts(t, "100000000000000000000000000000000000000000000000000000000000", "1", 1)
	opts.ProtocolFeeFraction = wad(t, "0.005")

	q, err := NewLinear().SellQuote(opts)
	require.EqualError(t, err, ErrPriceOverflow.Error())
	require.Nil(t, q)
}

func TestLinearSellQuote(t *testing.T) {
	tests := []struct {
		name          string
		startPrice    string
		delta         string
		numItems      uint64
		wantAmount    string
		wantNewStart  string
		wantItems     uint64
		expectedError error
	}{
		{
			name:       "single_item",
			startPrice: "3", delta: "0.5", numItems: 1,
			wantAmount: "3", wantNewStart: "2.5", wantItems: 1,
		},
		{
			name:       "multiple_items",
			startPrice: "3", delta: "0.5", numItems: 2,
			wantAmount: "5.5", wantNewStart: "2", wantItems: 2,
		},
		{
			name:       "clamped_to_feasible_count",
			startPrice: "1", delta: "0.5", numItems: 10,
			wantAmount: "1.5", wantNewStart: "0", wantItems: 2,
		},
		{
			name:       "flat_curve_never_clamps",
			startPrice: "1", delta: "0", numItems: 100,
			wantAmount: "100", wantNewStart: "1", wantItems: 100,
		},
		{
			name:       "zero_items",
			startPrice: "1", delta: "0.5", numItems: 0,
			expectedError: ErrZeroItems,
		},
		{
			name:       "delta_above_start_price",
			startPrice: "1", delta: "2", numItems: 1,
			expectedError: ErrInsufficientLiquidity,
		},
	}

	c := NewLinear()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := c.SellQuote(quoteOpts(t, tt.startPrice, tt.delta, tt.numItems))
			if tt.expectedError != nil {
				require.EqualError(t, err, tt.expectedError.Error())
				require.Nil(t, q)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantAmount, fixedpoint.Format(q.Amount))
			require.Equal(t, tt.wantNewStart, fixedpoint.Format(q.NewStartPrice))
			require.Equal(t, tt.wantItems, q.NumItems)
		})
	}
}
