// Package curve defines the pricing curves that map the current pool state
// and a trade size to a quote and the resulting curve-state transition.
// All math is 18-decimal fixed point via pkg/fixedpoint.
package curve

import (
	"errors"

	"github.com/holiman/uint256"

	"github.com/nftswap-network/nftswap-daemon/pkg/fixedpoint"
)

var (
	// ErrZeroItems is returned when a quote is requested for zero items.
	ErrZeroItems = errors.New("number of items must be positive")
	// ErrPriceOverflow is returned when the new start price or delta would
	// exceed the committed-value ceiling.
	ErrPriceOverflow = errors.New("new curve state exceeds the price ceiling")
	// ErrInsufficientLiquidity is returned when the curve cannot price the
	// requested number of items against its current state.
	ErrInsufficientLiquidity = errors.New("not enough liquidity on the curve")
	// ErrInvalidDelta is returned when the delta breaks an arithmetic
	// precondition of the curve (eg. an exponential multiplier of exactly 1).
	ErrInvalidDelta = errors.New("delta is invalid for this curve")
)

// QuoteOpts carries the curve state and trade parameters for a quote.
// ProtocolFeeFraction and PoolFeeFraction are fixed-point fractions below
// One; PoolFeeFraction is zero unless the pool charges its own fee.
type QuoteOpts struct {
	StartPrice          *uint256.Int
	Delta               *uint256.Int
	NumItems            uint64
	ProtocolFeeFraction *uint256.Int
	PoolFeeFraction     *uint256.Int
}

// Quote is the priced outcome of a hypothetical trade. Amount is the total
// input the buyer pays (buy side) or the net output the seller receives
// (sell side), fees already composed. NumItems is the effective number of
// items priced, which on sells may be lower than requested (see
// Curve.SellQuote).
type Quote struct {
	NewStartPrice *uint256.Int
	NewDelta      *uint256.Int
	NumItems      uint64
	Amount        *uint256.Int
	ProtocolFee   *uint256.Int
	PoolFee       *uint256.Int
}

// Curve is the pricing strategy interface implemented by the linear,
// exponential and constant-product curves. Implementations are stateless
// and safe for concurrent use.
//
// A nil error with a quote means the trade is priceable; the sentinel
// errors above signal "this trade cannot be priced" and are ordinary
// outcomes, not failures of the curve itself. When an error is returned
// the quote is nil.
type Curve interface {
	// Name returns the curve identifier.
	Name() string
	// ValidateStartPrice reports whether p is an acceptable start price.
	ValidateStartPrice(p *uint256.Int) bool
	// ValidateDelta reports whether d is an acceptable delta.
	ValidateDelta(d *uint256.Int) bool
	// BuyQuote prices the purchase of opts.NumItems items from the pool.
	BuyQuote(opts QuoteOpts) (*Quote, error)
	// SellQuote prices the sale of opts.NumItems items to the pool.
	//
	// Linear and exponential curves never let the price go negative: when
	// the requested size would underflow the start price, the effective
	// number of items sold is silently clamped to the largest feasible
	// count and the quote is computed for that count. Callers must read
	// Quote.NumItems to learn how many items were actually priced.
	SellQuote(opts QuoteOpts) (*Quote, error)
}

// composeBuyFees finalizes a buy quote: total input is the base amount
// plus both fees. Overflow in the fee math or the sum surfaces as
// ErrPriceOverflow.
func composeBuyFees(q *Quote, base *uint256.Int, opts QuoteOpts) (*Quote, error) {
	var ok bool
	q.ProtocolFee, q.PoolFee, ok = fixedpoint.TradeFees(
		base, opts.ProtocolFeeFraction, opts.PoolFeeFraction,
	)
	if !ok {
		return nil, ErrPriceOverflow
	}
	amount, overflow := new(uint256.Int).AddOverflow(base, q.ProtocolFee)
	if overflow {
		return nil, ErrPriceOverflow
	}
	if q.Amount, overflow = amount.AddOverflow(amount, q.PoolFee); overflow {
		return nil, ErrPriceOverflow
	}
	return q, nil
}

// composeSellFees finalizes a sell quote: net output is the base amount
// minus both fees. Truncation guarantees the fees never exceed the base
// for fractions summing to at most One; overflow in the fee math surfaces
// as ErrPriceOverflow.
func composeSellFees(q *Quote, base *uint256.Int, opts QuoteOpts) (*Quote, error) {
	var ok bool
	q.ProtocolFee, q.PoolFee, ok = fixedpoint.TradeFees(
		base, opts.ProtocolFeeFraction, opts.PoolFeeFraction,
	)
	if !ok {
		return nil, ErrPriceOverflow
	}
	amount := new(uint256.Int).Sub(base, q.ProtocolFee)
	q.Amount = amount.Sub(amount, q.PoolFee)
	return q, nil
}
