package curve

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nftswap-network/nftswap-daemon/pkg/fixedpoint"
)

func TestConstantProductBuyQuote(t *testing.T) {
	tests := []struct {
		name          string
		tokenReserve  string
		nftReserve    string
		numItems      uint64
		wantAmount    string
		wantNewStart  string
		wantNewDelta  string
		expectedError error
	}{
		{
			name:         "near_depletion",
			tokenReserve: "50", nftReserve: "11", numItems: 10,
			wantAmount: "500", wantNewStart: "550", wantNewDelta: "1",
		},
		{
			name:         "single_item",
			tokenReserve: "100", nftReserve: "10", numItems: 1,
			wantAmount:   "11.111111111111111111",
			wantNewStart: "111.111111111111111111", wantNewDelta: "9",
		},
		{
			name:         "zero_items",
			tokenReserve: "50", nftReserve: "11", numItems: 0,
			expectedError: ErrZeroItems,
		},
		{
			name:         "whole_reserve",
			tokenReserve: "50", nftReserve: "11", numItems: 11,
			expectedError: ErrInsufficientLiquidity,
		},
		{
			name:         "beyond_reserve",
			tokenReserve: "50", nftReserve: "11", numItems: 12,
			expectedError: ErrInsufficientLiquidity,
		},
	}

	c := NewConstantProduct()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := c.BuyQuote(quoteOpts(t, tt.tokenReserve, tt.nftReserve, tt.numItems))
			if tt.expectedError != nil {
				require.EqualError(t, err, tt.expectedError.Error())
				require.Nil(t, q)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantAmount, fixedpoint.Format(q.Amount))
			require.Equal(t, tt.wantNewStart, fixedpoint.Format(q.NewStartPrice))
			require.Equal(t, tt.wantNewDelta, fixedpoint.Format(q.NewDelta))
		})
	}
}

func TestConstantProductSellQuote(t *testing.T) {
	tests := []struct {
		name          string
		tokenReserve  string
		nftReserve    string
		numItems      uint64
		wantAmount    string
		wantNewStart  string
		wantNewDelta  string
		expectedError error
	}{
		{
			name:         "single_item",
			tokenReserve: "100", nftReserve: "10", numItems: 1,
			wantAmount:   "9.090909090909090909",
			wantNewStart: "90.909090909090909091", wantNewDelta: "11",
		},
		{
			name:         "zero_items",
			tokenReserve: "100", nftReserve: "10", numItems: 0,
			expectedError: ErrZeroItems,
		},
		{
			name:         "block_matching_reserve",
			tokenReserve: "100", nftReserve: "10", numItems: 10,
			expectedError: ErrInsufficientLiquidity,
		},
	}

	c := NewConstantProduct()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := c.SellQuote(quoteOpts(t, tt.tokenReserve, tt.nftReserve, tt.numItems))
			if tt.expectedError != nil {
				require.EqualError(t, err, tt.expectedError.Error())
				require.Nil(t, q)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantAmount, fixedpoint.Format(q.Amount))
			require.Equal(t, tt.wantNewStart, fixedpoint.Format(q.NewStartPrice))
			require.Equal(t, tt.wantNewDelta, fixedpoint.Format(q.NewDelta))
		})
	}
}

// Buying a block and selling it back against the resulting reserves must
// return the reserves to their original values, up to truncation.
func TestConstantProductRoundTrip(t *testing.T) {
	c := NewConstantProduct()

	buyQuote, err := c.BuyQuote(quoteOpts(t, "100", "10", 3))
	require.NoError(t, err)
	require.Equal(t, "42.857142857142857142", fixedpoint.Format(buyQuote.Amount))
	require.Equal(t, "7", fixedpoint.Format(buyQuote.NewDelta))

	sellOpts := quoteOpts(t, "0", "0", 3)
	sellOpts.StartPrice = buyQuote.NewStartPrice
	sellOpts.Delta = buyQuote.NewDelta

	sellQuote, err := c.SellQuote(sellOpts)
	require.NoError(t, err)
	require.Equal(t, "100", fixedpoint.Format(sellQuote.NewStartPrice))
	require.Equal(t, "10", fixedpoint.Format(sellQuote.NewDelta))
	require.Equal(t, fixedpoint.Format(buyQuote.Amount), fixedpoint.Format(sellQuote.Amount))
}
