package domain

const (
	// PoolTypeSell only accepts NFTs in exchange for the native asset:
	// traders sell NFTs to it.
	PoolTypeSell = iota
	// PoolTypeBuy only releases NFTs in exchange for the native asset:
	// traders buy NFTs from it.
	PoolTypeBuy
	// PoolTypeTrade enables both directions, charges its own trade fee and
	// accumulates proceeds in pool custody.
	PoolTypeTrade
)

const (
	CurveTypeLinear = iota
	CurveTypeExponential
	CurveTypeConstantProduct
)

const (
	TradeTypeBuy = iota
	TradeTypeSell
)

// MaxTradeFee is the inclusive cap on a Trade pool's own fee fraction.
const MaxTradeFee = "0.90"
