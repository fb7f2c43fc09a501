// Package fixedpoint implements the 18-decimal fixed-point ("WAD")
// arithmetic shared by all pricing curves. Every operation is integer-only
// and truncates toward zero, so results are reproducible bit-for-bit.
package fixedpoint

import (
	"errors"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// Decimals is the number of fractional digits of the fixed-point scale.
const Decimals = 18

var (
	// One is the fixed-point representation of 1.0 (10^18).
	One = uint256.NewInt(1_000_000_000_000_000_000)

	// MaxCurveValue is the hard ceiling for any committed start price or
	// delta (2^128 - 1). A quote that would push the curve state above it
	// is invalid rather than wrapped.
	MaxCurveValue = maxUint128()

	// ErrInvalidAmount ...
	ErrInvalidAmount = errors.New("amount is not a valid fixed-point number")
	// ErrAmountTooBig ...
	ErrAmountTooBig = errors.New("amount exceeds the fixed-point range")
)

func maxUint128() *uint256.Int {
	max := new(uint256.Int).Lsh(uint256.NewInt(1), 128)
	return max.SubUint64(max, 1)
}

// WMul returns floor(x*y / 10^18). The second return value is false if the
// intermediate product overflows 256 bits.
func WMul(x, y *uint256.Int) (*uint256.Int, bool) {
	z, overflow := new(uint256.Int).MulOverflow(x, y)
	if overflow {
		return nil, false
	}
	return z.Div(z, One), true
}

// WDiv returns floor(x*10^18 / y), truncating toward zero. The second
// return value is false if y is zero or the scaled numerator overflows.
func WDiv(x, y *uint256.Int) (*uint256.Int, bool) {
	if y.IsZero() {
		return nil, false
	}
	z, overflow := new(uint256.Int).MulOverflow(x, One)
	if overflow {
		return nil, false
	}
	return z.Div(z, y), true
}

// WPow raises a fixed-point base to an integer exponent by iterative
// squaring, never touching floating point. base^0 is One. The second
// return value is false on overflow.
func WPow(base *uint256.Int, n uint64) (*uint256.Int, bool) {
	result := new(uint256.Int).Set(One)
	b := new(uint256.Int).Set(base)
	var ok bool
	for n > 0 {
		if n&1 == 1 {
			if result, ok = WMul(result, b); !ok {
				return nil, false
			}
		}
		n >>= 1
		if n > 0 {
			if b, ok = WMul(b, b); !ok {
				return nil, false
			}
		}
	}
	return result, true
}

// FromCount converts a plain item count to its fixed-point representation.
func FromCount(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(n), One)
}

// MulUint returns x*n with an overflow flag.
func MulUint(x *uint256.Int, n uint64) (*uint256.Int, bool) {
	z, overflow := new(uint256.Int).MulOverflow(x, uint256.NewInt(n))
	if overflow {
		return nil, false
	}
	return z, true
}

// FitsCurve reports whether x is within the committed-value ceiling.
func FitsCurve(x *uint256.Int) bool {
	return !x.Gt(MaxCurveValue)
}

// FromDecimal converts a decimal value (eg. a parsed "0.25") to fixed
// point, truncating anything beyond 18 fractional digits.
func FromDecimal(d decimal.Decimal) (*uint256.Int, error) {
	if d.IsNegative() {
		return nil, ErrInvalidAmount
	}
	scaled := d.Shift(Decimals).BigInt()
	v, overflow := uint256.FromBig(scaled)
	if overflow {
		return nil, ErrAmountTooBig
	}
	return v, nil
}

// FromDecimalString converts a decimal string to fixed point.
func FromDecimalString(s string) (*uint256.Int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, ErrInvalidAmount
	}
	return FromDecimal(d)
}

// ToDecimal converts a fixed-point value back to a decimal.
func ToDecimal(x *uint256.Int) decimal.Decimal {
	return decimal.NewFromBigInt(x.ToBig(), -Decimals)
}

// Format renders a fixed-point value as a decimal string.
func Format(x *uint256.Int) string {
	return ToDecimal(x).String()
}
