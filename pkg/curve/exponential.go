package curve

import (
	"github.com/holiman/uint256"

	"github.com/nftswap-network/nftswap-daemon/pkg/fixedpoint"
)

const ExponentialCurveName = "exponential"

// MinExponentialStartPrice is the floor on the start price of the
// exponential curve, one billionth of the unit scale. Below it repeated
// multiplication by an inverse delta collapses into zero too quickly for
// prices to stay meaningful.
var MinExponentialStartPrice = uint256.NewInt(1_000_000_000)

// Exponential is the geometric-progression curve: every purchase
// multiplies the unit price by delta, every sale divides it by delta.
type Exponential struct{}

// NewExponential returns the exponential pricing curve.
func NewExponential() Curve {
	return Exponential{}
}

func (Exponential) Name() string {
	return ExponentialCurveName
}

// ValidateStartPrice accepts any value at or above the minimum price floor.
func (Exponential) ValidateStartPrice(p *uint256.Int) bool {
	return !p.Lt(MinExponentialStartPrice)
}

// ValidateDelta accepts multipliers strictly greater than 1.0. A delta of
// exactly 1.0 would degenerate into a flat curve with a zero denominator
// in the geometric sum, so it is rejected.
func (Exponential) ValidateDelta(d *uint256.Int) bool {
	return d.Gt(fixedpoint.One)
}

func (e Exponential) BuyQuote(opts QuoteOpts) (*Quote, error) {
	if opts.NumItems == 0 {
		return nil, ErrZeroItems
	}
	if !e.ValidateDelta(opts.Delta) {
		return nil, ErrInvalidDelta
	}

	deltaPowN, ok := fixedpoint.WPow(opts.Delta, opts.NumItems)
	if !ok {
		return nil, ErrPriceOverflow
	}
	newStartPrice, ok := fixedpoint.WMul(opts.StartPrice, deltaPowN)
	if !ok || !fixedpoint.FitsCurve(newStartPrice) {
		return nil, ErrPriceOverflow
	}

	// base = startPrice*delta*(delta^n - 1)/(delta - 1)
	startTimesDelta, ok := fixedpoint.WMul(opts.StartPrice, opts.Delta)
	if !ok {
		return nil, ErrPriceOverflow
	}
	num := new(uint256.Int).Sub(deltaPowN, fixedpoint.One)
	denom := new(uint256.Int).Sub(opts.Delta, fixedpoint.One)
	ratio, ok := fixedpoint.WDiv(num, denom)
	if !ok {
		return nil, ErrPriceOverflow
	}
	base, ok := fixedpoint.WMul(startTimesDelta, ratio)
	if !ok {
		return nil, ErrPriceOverflow
	}

	q := &Quote{
		NewStartPrice: newStartPrice,
		NewDelta:      new(uint256.Int).Set(opts.Delta),
		NumItems:      opts.NumItems,
	}
	return composeBuyFees(q, base, opts)
}

func (e Exponential) SellQuote(opts QuoteOpts) (*Quote, error) {
	if opts.NumItems == 0 {
		return nil, ErrZeroItems
	}
	if !e.ValidateDelta(opts.Delta) {
		return nil, ErrInvalidDelta
	}

	invDelta, _ := fixedpoint.WDiv(fixedpoint.One, opts.Delta)
	invDeltaPowN, _ := fixedpoint.WPow(invDelta, opts.NumItems)

	// invDelta < One, no overflow possible from here on.
	newStartPrice, _ := fixedpoint.WMul(opts.StartPrice, invDeltaPowN)

	// base = startPrice*(1 - invDelta^n)/(1 - invDelta)
	num := new(uint256.Int).Sub(fixedpoint.One, invDeltaPowN)
	denom := new(uint256.Int).Sub(fixedpoint.One, invDelta)
	ratio, ok := fixedpoint.WDiv(num, denom)
	if !ok {
		return nil, ErrInvalidDelta
	}
	base, ok := fixedpoint.WMul(opts.StartPrice, ratio)
	if !ok {
		return nil, ErrPriceOverflow
	}

	q := &Quote{
		NewStartPrice: newStartPrice,
		NewDelta:      new(uint256.Int).Set(opts.Delta),
		NumItems:      opts.NumItems,
	}
	return composeSellFees(q, base, opts)
}
