package domain

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"

	"github.com/nftswap-network/nftswap-daemon/pkg/curve"
	"github.com/nftswap-network/nftswap-daemon/pkg/fixedpoint"
)

// Pool is the entity holding one bonding-curve market: curve parameters,
// pool type, fee configuration, native-asset custody balance and NFT
// inventory. The pool type is fixed at creation and never changes.
//
// All mutating methods work on the receiver only; repositories hand a
// working copy to their update closure and commit it when no error is
// returned, so a failed operation never leaves partial state behind.
type Pool struct {
	// Name is the unique pool identifier.
	Name string
	// Type is one of PoolTypeSell, PoolTypeBuy, PoolTypeTrade.
	Type int
	// CurveType selects the pricing curve.
	CurveType int
	// StartPrice is the curve start price as a decimal string. For the
	// constant-product curve it is the token reserve.
	StartPrice string
	// Delta is the curve delta as a decimal string. For the
	// constant-product curve it is the NFT reserve.
	Delta string
	// TradeFee is the pool's own fee fraction, meaningful only for Trade
	// pools.
	TradeFee string
	// AssetsRecipient receives swap proceeds of Sell/Buy pools. Trade
	// pools custody their own proceeds and keep this empty.
	AssetsRecipient string
	// TokenBalance is the native-asset amount in pool custody.
	TokenBalance string
	// Inventory is the set of NFT ids in pool custody.
	Inventory Inventory
}

// SellResult reports the outcome of a sell swap: the transfers the custody
// collaborator must perform and how many items were actually priced.
type SellResult struct {
	// Output is the net amount owed to the seller.
	Output *uint256.Int
	// ProtocolFee is owed to the protocol fee recipient.
	ProtocolFee *uint256.Int
	// PoolFee is retained in pool custody (zero for non-Trade pools).
	PoolFee *uint256.Int
	// NumItemsPriced is the effective trade size after curve clamping.
	NumItemsPriced uint64
}

// BuyResult reports the outcome of a buy swap.
type BuyResult struct {
	// Ids are the NFTs to transfer to the buyer.
	Ids []string
	// Input is the total amount charged to the buyer.
	Input *uint256.Int
	// ProtocolFee is owed to the protocol fee recipient.
	ProtocolFee *uint256.Int
	// PoolFee is the pool's own share (zero for non-Trade pools).
	PoolFee *uint256.Int
	// Proceeds is the amount owed to the assets recipient; zero for Trade
	// pools, which keep the proceeds in custody.
	Proceeds *uint256.Int
	// Refund is the buyer overpayment to return.
	Refund *uint256.Int
}

var maxTradeFee, _ = decimal.NewFromString(MaxTradeFee)

// NewPool returns a validated, initialized pool. The curve validators
// gate start price and delta; fee and recipient rules depend on the pool
// type. Guarding against double initialization of the same name is the
// repository's concern.
func NewPool(
	name string, poolType, curveType int,
	startPrice, delta *uint256.Int,
	tradeFee decimal.Decimal, assetsRecipient string,
	inventoryStrategy int,
) (*Pool, error) {
	if name == "" {
		return nil, ErrPoolInvalidName
	}
	if !isValidPoolType(poolType) {
		return nil, ErrPoolInvalidType
	}
	crv, err := curveFromType(curveType)
	if err != nil {
		return nil, err
	}
	if !crv.ValidateStartPrice(startPrice) {
		return nil, ErrPoolInvalidStartPrice
	}
	if !crv.ValidateDelta(delta) {
		return nil, ErrPoolInvalidDelta
	}

	if poolType == PoolTypeTrade {
		if assetsRecipient != "" {
			return nil, ErrPoolRecipientNotApplicable
		}
		if !isValidTradeFee(tradeFee) {
			return nil, ErrPoolFeeTooHigh
		}
	} else {
		if !tradeFee.IsZero() {
			return nil, ErrPoolFeeNotApplicable
		}
		if assetsRecipient == "" {
			return nil, ErrPoolInvalidRecipient
		}
	}

	return &Pool{
		Name:            name,
		Type:            poolType,
		CurveType:       curveType,
		StartPrice:      fixedpoint.Format(startPrice),
		Delta:           fixedpoint.Format(delta),
		TradeFee:        tradeFee.String(),
		AssetsRecipient: assetsRecipient,
		TokenBalance:    "0",
		Inventory:       NewInventory(inventoryStrategy),
	}, nil
}

// Curve returns the pool's pricing curve instance.
func (p *Pool) Curve() curve.Curve {
	crv, _ := curveFromType(p.CurveType)
	return crv
}

// IsTrade returns true for two-directional pools.
func (p *Pool) IsTrade() bool {
	return p.Type == PoolTypeTrade
}

// StartPriceAmount returns the current start price in fixed point.
func (p *Pool) StartPriceAmount() *uint256.Int {
	return amountFromString(p.StartPrice)
}

// DeltaAmount returns the current delta in fixed point.
func (p *Pool) DeltaAmount() *uint256.Int {
	return amountFromString(p.Delta)
}

// TokenBalanceAmount returns the custodied native-asset amount.
func (p *Pool) TokenBalanceAmount() *uint256.Int {
	return amountFromString(p.TokenBalance)
}

// TradeFeeFraction returns the pool fee fraction charged on swaps: the
// configured trade fee for Trade pools, zero otherwise.
func (p *Pool) TradeFeeFraction() *uint256.Int {
	if !p.IsTrade() {
		return uint256.NewInt(0)
	}
	fee, _ := decimal.NewFromString(p.TradeFee)
	frac, err := fixedpoint.FromDecimal(fee)
	if err != nil {
		return uint256.NewInt(0)
	}
	return frac
}

// SellNFTs trades the given NFTs into the pool against the native asset.
// The ids all enter the inventory even when the curve clamps the priced
// count; minOutput is the seller's slippage guard on the net output.
//
// The custody balance must cover the seller output plus the protocol fee,
// not the output alone: both amounts leave the pool on settlement, and a
// balance covering only the output would commit an underfunded transfer.
func (p *Pool) SellNFTs(
	ids []string, minOutput, protocolFeeFraction *uint256.Int,
) (*SellResult, error) {
	if p.Type == PoolTypeBuy {
		return nil, ErrPoolWrongDirection
	}
	if len(ids) == 0 {
		return nil, ErrPoolZeroItems
	}

	quote, err := p.Curve().SellQuote(curve.QuoteOpts{
		StartPrice:          p.StartPriceAmount(),
		Delta:               p.DeltaAmount(),
		NumItems:            uint64(len(ids)),
		ProtocolFeeFraction: protocolFeeFraction,
		PoolFeeFraction:     p.TradeFeeFraction(),
	})
	if err != nil {
		return nil, fmt.Errorf("sell quote: %w", err)
	}

	if minOutput != nil && quote.Amount.Lt(minOutput) {
		return nil, ErrPoolInsufficientOutput
	}

	// The pool pays the seller and the protocol; its own fee share never
	// leaves custody.
	outflow := new(uint256.Int).Add(quote.Amount, quote.ProtocolFee)
	balance := p.TokenBalanceAmount()
	if balance.Lt(outflow) {
		return nil, ErrPoolInsufficientBalance
	}

	for _, id := range ids {
		if err := p.Inventory.Add(id); err != nil {
			return nil, err
		}
	}
	p.StartPrice = fixedpoint.Format(quote.NewStartPrice)
	p.Delta = fixedpoint.Format(quote.NewDelta)
	p.TokenBalance = fixedpoint.Format(balance.Sub(balance, outflow))

	return &SellResult{
		Output:         quote.Amount,
		ProtocolFee:    quote.ProtocolFee,
		PoolFee:        quote.PoolFee,
		NumItemsPriced: quote.NumItems,
	}, nil
}

// BuySpecificNFTs trades the native asset for the caller-chosen NFTs.
// maxInput is the buyer's slippage guard, offeredAmount the funds the
// buyer put up.
func (p *Pool) BuySpecificNFTs(
	ids []string, maxInput, offeredAmount, protocolFeeFraction *uint256.Int,
) (*BuyResult, error) {
	if p.Type == PoolTypeSell {
		return nil, ErrPoolWrongDirection
	}
	if len(ids) == 0 {
		return nil, ErrPoolZeroItems
	}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return nil, ErrPoolInsufficientInventory
		}
		seen[id] = struct{}{}
		if !p.Inventory.Contains(id) {
			return nil, ErrPoolInsufficientInventory
		}
	}
	return p.buy(ids, maxInput, offeredAmount, protocolFeeFraction)
}

// BuyAnyNFTs is BuySpecificNFTs with the pool picking the ids: the first
// count in inventory order.
func (p *Pool) BuyAnyNFTs(
	count uint64, maxInput, offeredAmount, protocolFeeFraction *uint256.Int,
) (*BuyResult, error) {
	if p.Type == PoolTypeSell {
		return nil, ErrPoolWrongDirection
	}
	if count == 0 {
		return nil, ErrPoolZeroItems
	}
	if count > uint64(p.Inventory.Len()) {
		return nil, ErrPoolInsufficientInventory
	}
	return p.buy(
		p.Inventory.All()[:count], maxInput, offeredAmount, protocolFeeFraction,
	)
}

func (p *Pool) buy(
	ids []string, maxInput, offeredAmount, protocolFeeFraction *uint256.Int,
) (*BuyResult, error) {
	quote, err := p.Curve().BuyQuote(curve.QuoteOpts{
		StartPrice:          p.StartPriceAmount(),
		Delta:               p.DeltaAmount(),
		NumItems:            uint64(len(ids)),
		ProtocolFeeFraction: protocolFeeFraction,
		PoolFeeFraction:     p.TradeFeeFraction(),
	})
	if err != nil {
		return nil, fmt.Errorf("buy quote: %w", err)
	}

	if maxInput != nil && quote.Amount.Gt(maxInput) {
		return nil, ErrPoolExceedsMaxInput
	}
	if offeredAmount == nil || offeredAmount.Lt(quote.Amount) {
		return nil, ErrPoolInsufficientPayment
	}

	for _, id := range ids {
		p.Inventory.Remove(id)
	}
	p.StartPrice = fixedpoint.Format(quote.NewStartPrice)
	p.Delta = fixedpoint.Format(quote.NewDelta)

	// Everything but the protocol fee belongs to the pool side: Trade
	// pools keep it in custody, the others forward it to their recipient.
	proceeds := new(uint256.Int).Sub(quote.Amount, quote.ProtocolFee)
	routed := uint256.NewInt(0)
	if p.IsTrade() {
		balance := p.TokenBalanceAmount()
		p.TokenBalance = fixedpoint.Format(balance.Add(balance, proceeds))
	} else {
		routed = proceeds
	}

	return &BuyResult{
		Ids:         ids,
		Input:       quote.Amount,
		ProtocolFee: quote.ProtocolFee,
		PoolFee:     quote.PoolFee,
		Proceeds:    routed,
		Refund:      new(uint256.Int).Sub(offeredAmount, quote.Amount),
	}, nil
}

// PreviewBuy quotes a buy of numItems without touching state.
func (p *Pool) PreviewBuy(
	numItems uint64, protocolFeeFraction *uint256.Int,
) (*curve.Quote, error) {
	return p.Curve().BuyQuote(curve.QuoteOpts{
		StartPrice:          p.StartPriceAmount(),
		Delta:               p.DeltaAmount(),
		NumItems:            numItems,
		ProtocolFeeFraction: protocolFeeFraction,
		PoolFeeFraction:     p.TradeFeeFraction(),
	})
}

// PreviewSell quotes a sell of numItems without touching state.
func (p *Pool) PreviewSell(
	numItems uint64, protocolFeeFraction *uint256.Int,
) (*curve.Quote, error) {
	return p.Curve().SellQuote(curve.QuoteOpts{
		StartPrice:          p.StartPriceAmount(),
		Delta:               p.DeltaAmount(),
		NumItems:            numItems,
		ProtocolFeeFraction: protocolFeeFraction,
		PoolFeeFraction:     p.TradeFeeFraction(),
	})
}

// SetStartPrice updates the curve start price.
func (p *Pool) SetStartPrice(v *uint256.Int) error {
	if fixedpoint.Format(v) == p.StartPrice {
		return ErrPoolNoOp
	}
	if !p.Curve().ValidateStartPrice(v) {
		return ErrPoolInvalidStartPrice
	}
	p.StartPrice = fixedpoint.Format(v)
	return nil
}

// SetDelta updates the curve delta.
func (p *Pool) SetDelta(v *uint256.Int) error {
	if fixedpoint.Format(v) == p.Delta {
		return ErrPoolNoOp
	}
	if !p.Curve().ValidateDelta(v) {
		return ErrPoolInvalidDelta
	}
	p.Delta = fixedpoint.Format(v)
	return nil
}

// SetTradeFee updates the pool's own fee fraction, Trade pools only.
func (p *Pool) SetTradeFee(fee decimal.Decimal) error {
	if !p.IsTrade() {
		return ErrPoolFeeNotApplicable
	}
	if !isValidTradeFee(fee) {
		return ErrPoolFeeTooHigh
	}
	current, _ := decimal.NewFromString(p.TradeFee)
	if fee.Equal(current) {
		return ErrPoolNoOp
	}
	p.TradeFee = fee.String()
	return nil
}

// SetAssetsRecipient redirects swap proceeds, non-Trade pools only.
func (p *Pool) SetAssetsRecipient(recipient string) error {
	if p.IsTrade() {
		return ErrPoolRecipientNotApplicable
	}
	if recipient == "" {
		return ErrPoolInvalidRecipient
	}
	if recipient == p.AssetsRecipient {
		return ErrPoolNoOp
	}
	p.AssetsRecipient = recipient
	return nil
}

// DepositTokens credits the pool custody balance.
func (p *Pool) DepositTokens(amount *uint256.Int) {
	balance := p.TokenBalanceAmount()
	p.TokenBalance = fixedpoint.Format(balance.Add(balance, amount))
}

// DepositNFTs adds the given ids to the pool inventory.
func (p *Pool) DepositNFTs(ids []string) error {
	for _, id := range ids {
		if err := p.Inventory.Add(id); err != nil {
			return err
		}
	}
	return nil
}

// WithdrawTokens debits the pool custody balance.
func (p *Pool) WithdrawTokens(amount *uint256.Int) error {
	balance := p.TokenBalanceAmount()
	if balance.Lt(amount) {
		return ErrPoolInsufficientBalance
	}
	p.TokenBalance = fixedpoint.Format(balance.Sub(balance, amount))
	return nil
}

// WithdrawNFTs removes the given ids from the pool inventory. The request
// is all-or-nothing: a missing or repeated id fails it without touching
// the inventory.
func (p *Pool) WithdrawNFTs(ids []string) error {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return ErrPoolInsufficientInventory
		}
		seen[id] = struct{}{}
		if !p.Inventory.Contains(id) {
			return ErrPoolInsufficientInventory
		}
	}
	for _, id := range ids {
		p.Inventory.Remove(id)
	}
	return nil
}

func curveFromType(curveType int) (curve.Curve, error) {
	switch curveType {
	case CurveTypeLinear:
		return curve.NewLinear(), nil
	case CurveTypeExponential:
		return curve.NewExponential(), nil
	case CurveTypeConstantProduct:
		return curve.NewConstantProduct(), nil
	default:
		return nil, ErrPoolInvalidCurveType
	}
}

func isValidPoolType(poolType int) bool {
	switch poolType {
	case PoolTypeSell, PoolTypeBuy, PoolTypeTrade:
		return true
	default:
		return false
	}
}

func isValidTradeFee(fee decimal.Decimal) bool {
	return !fee.IsNegative() && fee.LessThanOrEqual(maxTradeFee)
}

func amountFromString(s string) *uint256.Int {
	v, err := fixedpoint.FromDecimalString(s)
	if err != nil {
		return uint256.NewInt(0)
	}
	return v
}
