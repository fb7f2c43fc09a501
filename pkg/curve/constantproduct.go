package curve

import (
	"github.com/holiman/uint256"

	"github.com/nftswap-network/nftswap-daemon/pkg/fixedpoint"
)

const ConstantProductCurveName = "constant-product"

// ConstantProduct prices trades against the invariant
// tokenReserve*nftReserve = k. The curve reuses the start price slot for
// the token reserve and the delta slot for the NFT reserve (a fixed-point
// item count); the names are kept for interface compatibility.
type ConstantProduct struct{}

// NewConstantProduct returns the constant-product pricing curve.
func NewConstantProduct() Curve {
	return ConstantProduct{}
}

func (ConstantProduct) Name() string {
	return ConstantProductCurveName
}

// ValidateStartPrice accepts any token reserve.
func (ConstantProduct) ValidateStartPrice(_ *uint256.Int) bool {
	return true
}

// ValidateDelta accepts any NFT reserve.
func (ConstantProduct) ValidateDelta(_ *uint256.Int) bool {
	return true
}

func (ConstantProduct) BuyQuote(opts QuoteOpts) (*Quote, error) {
	if opts.NumItems == 0 {
		return nil, ErrZeroItems
	}
	tokenReserve, nftReserve := opts.StartPrice, opts.Delta

	numItems := fixedpoint.FromCount(opts.NumItems)
	if !numItems.Lt(nftReserve) {
		return nil, ErrInsufficientLiquidity
	}

	// base = tokenReserve*n/(nftReserve - n); the fixed-point scale of the
	// two counts cancels, so this is a plain mul-div.
	base, overflow := new(uint256.Int).MulOverflow(tokenReserve, numItems)
	if overflow {
		return nil, ErrPriceOverflow
	}
	base.Div(base, new(uint256.Int).Sub(nftReserve, numItems))

	newStartPrice, overflow := new(uint256.Int).AddOverflow(tokenReserve, base)
	if overflow || !fixedpoint.FitsCurve(newStartPrice) {
		return nil, ErrPriceOverflow
	}

	q := &Quote{
		NewStartPrice: newStartPrice,
		NewDelta:      new(uint256.Int).Sub(nftReserve, numItems),
		NumItems:      opts.NumItems,
	}
	return composeBuyFees(q, base, opts)
}

func (ConstantProduct) SellQuote(opts QuoteOpts) (*Quote, error) {
	if opts.NumItems == 0 {
		return nil, ErrZeroItems
	}
	tokenReserve, nftReserve := opts.StartPrice, opts.Delta

	// The guard mirrors the buy side even though the denominator below
	// cannot reach zero. Selling a block at least as large as the whole
	// NFT reserve is not priceable.
	numItems := fixedpoint.FromCount(opts.NumItems)
	if !numItems.Lt(nftReserve) {
		return nil, ErrInsufficientLiquidity
	}

	// base = tokenReserve*n/(nftReserve + n)
	base, overflow := new(uint256.Int).MulOverflow(tokenReserve, numItems)
	if overflow {
		return nil, ErrPriceOverflow
	}
	denom, overflow := new(uint256.Int).AddOverflow(nftReserve, numItems)
	if overflow {
		return nil, ErrPriceOverflow
	}
	base.Div(base, denom)

	q := &Quote{
		NewStartPrice: new(uint256.Int).Sub(tokenReserve, base),
		NewDelta:      denom,
		NumItems:      opts.NumItems,
	}
	return composeSellFees(q, base, opts)
}
