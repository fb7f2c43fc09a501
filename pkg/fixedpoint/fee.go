package fixedpoint

import "github.com/holiman/uint256"

// TradeFees computes the protocol and pool fee amounts for a base trade
// amount. Each fee is base*fraction with truncating fixed-point
// multiplication. The pool fraction is zero for pools that don't charge
// their own fee. The third return value is false when a scaled product
// overflows 256 bits.
func TradeFees(
	base, protocolFeeFraction, poolFeeFraction *uint256.Int,
) (protocolFee, poolFee *uint256.Int, ok bool) {
	if protocolFee, ok = WMul(base, protocolFeeFraction); !ok {
		return nil, nil, false
	}
	if poolFee, ok = WMul(base, poolFeeFraction); !ok {
		return nil, nil, false
	}
	return protocolFee, poolFee, true
}
