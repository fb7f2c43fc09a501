package curve

import (
	"github.com/holiman/uint256"

	"github.com/nftswap-network/nftswap-daemon/pkg/fixedpoint"
)

const LinearCurveName = "linear"

// Linear is the arithmetic-progression curve: every purchase raises the
// unit price by delta, every sale lowers it by delta.
type Linear struct{}

// NewLinear returns the linear pricing curve.
func NewLinear() Curve {
	return Linear{}
}

func (Linear) Name() string {
	return LinearCurveName
}

// ValidateStartPrice accepts any non-negative fixed-point value.
func (Linear) ValidateStartPrice(_ *uint256.Int) bool {
	return true
}

// ValidateDelta accepts any non-negative fixed-point value.
func (Linear) ValidateDelta(_ *uint256.Int) bool {
	return true
}

func (Linear) BuyQuote(opts QuoteOpts) (*Quote, error) {
	n := opts.NumItems
	if n == 0 {
		return nil, ErrZeroItems
	}

	deltaTimesN, ok := fixedpoint.MulUint(opts.Delta, n)
	if !ok {
		return nil, ErrPriceOverflow
	}
	newStartPrice, overflow := new(uint256.Int).AddOverflow(
		opts.StartPrice, deltaTimesN,
	)
	if overflow || !fixedpoint.FitsCurve(newStartPrice) {
		return nil, ErrPriceOverflow
	}

	// base = n*(startPrice+delta) + delta*n*(n-1)/2
	unitPrice := new(uint256.Int).Add(opts.StartPrice, opts.Delta)
	base, ok := fixedpoint.MulUint(unitPrice, n)
	if !ok {
		return nil, ErrPriceOverflow
	}
	ramp, ok := fixedpoint.MulUint(deltaTimesN, n-1)
	if !ok {
		return nil, ErrPriceOverflow
	}
	ramp.Div(ramp, uint256.NewInt(2))
	base, overflow = base.AddOverflow(base, ramp)
	if overflow {
		return nil, ErrPriceOverflow
	}

	q := &Quote{
		NewStartPrice: newStartPrice,
		NewDelta:      new(uint256.Int).Set(opts.Delta),
		NumItems:      n,
	}
	return composeBuyFees(q, base, opts)
}

func (Linear) SellQuote(opts QuoteOpts) (*Quote, error) {
	n := opts.NumItems
	if n == 0 {
		return nil, ErrZeroItems
	}

	// Clamp to the largest count that keeps the new start price at or
	// above zero: delta*n <= startPrice.
	if !opts.Delta.IsZero() {
		maxItems := new(uint256.Int).Div(opts.StartPrice, opts.Delta)
		if maxItems.IsZero() {
			return nil, ErrInsufficientLiquidity
		}
		if maxItems.IsUint64() && maxItems.Uint64() < n {
			n = maxItems.Uint64()
		}
	}

	deltaTimesN, _ := fixedpoint.MulUint(opts.Delta, n)
	newStartPrice := new(uint256.Int).Sub(opts.StartPrice, deltaTimesN)

	// base = n*startPrice - delta*n*(n-1)/2
	base, ok := fixedpoint.MulUint(opts.StartPrice, n)
	if !ok {
		return nil, ErrPriceOverflow
	}
	ramp, ok := fixedpoint.MulUint(deltaTimesN, n-1)
	if !ok {
		return nil, ErrPriceOverflow
	}
	ramp.Div(ramp, uint256.NewInt(2))
	base.Sub(base, ramp)

	q := &Quote{
		NewStartPrice: newStartPrice,
		NewDelta:      new(uint256.Int).Set(opts.Delta),
		NumItems:      n,
	}
	return composeSellFees(q, base, opts)
}
