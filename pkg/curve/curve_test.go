package curve

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/nftswap-network/nftswap-daemon/pkg/fixedpoint"
)

func wad(t *testing.T, s string) *uint256.Int {
	t.Helper()
	v, err := fixedpoint.FromDecimalString(s)
	require.NoError(t, err)
	return v
}

func quoteOpts(t *testing.T, startPrice, delta string, n uint64) QuoteOpts {
	t.Helper()
	return QuoteOpts{
		StartPrice:          wad(t, startPrice),
		Delta:               wad(t, delta),
		NumItems:            n,
		ProtocolFeeFraction: uint256.NewInt(0),
		PoolFeeFraction:     uint256.NewInt(0),
	}
}

func TestComposeFees(t *testing.T) {
	opts := quoteOpts(t, "1", "0", 1)
	opts.ProtocolFeeFraction = wad(t, "0.005")
	opts.PoolFeeFraction = wad(t, "0.01")
	base := wad(t, "100")

	buy, err := composeBuyFees(&Quote{}, base, opts)
	require.NoError(t, err)
	require.Equal(t, "0.5", fixedpoint.Format(buy.ProtocolFee))
	require.Equal(t, "1", fixedpoint.Format(buy.PoolFee))
	require.Equal(t, "101.5", fixedpoint.Format(buy.Amount))

	sell, err := composeSellFees(&Quote{}, base, opts)
	require.NoError(t, err)
	require.Equal(t, "0.5", fixedpoint.Format(sell.ProtocolFee))
	require.Equal(t, "1", fixedpoint.Format(sell.PoolFee))
	require.Equal(t, "98.5", fixedpoint.Format(sell.Amount))
}

func TestComposeFeesOverflow(t *testing.T) {
	opts := quoteOpts(t, "1", "0", 1)
	opts.ProtocolFeeFraction = wad(t, "0.005")
	base := new(uint256.Int).Not(uint256.NewInt(0))

	buy, err := composeBuyFees(&Quote{}, base, opts)
	require.EqualError(t, err, ErrPriceOverflow.Error())
	require.Nil(t, buy)

	sell, err := composeSellFees(&Quote{}, base, opts)
	require.EqualError(t, err, ErrPriceOverflow.Error())
	require.Nil(t, sell)
}
