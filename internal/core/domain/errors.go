package domain

import "errors"

var (
	// ErrPoolAlreadyInitialized is thrown when initializing a pool twice.
	ErrPoolAlreadyInitialized = errors.New("pool is already initialized")
	// ErrPoolNotFound ...
	ErrPoolNotFound = errors.New("pool not found")
	// ErrPoolInvalidName ...
	ErrPoolInvalidName = errors.New("pool name must not be empty")
	// ErrPoolInvalidType ...
	ErrPoolInvalidType = errors.New("pool type is unknown")
	// ErrPoolInvalidCurveType ...
	ErrPoolInvalidCurveType = errors.New("curve type is unknown")
	// ErrPoolInvalidStartPrice is thrown when the curve rejects a start price.
	ErrPoolInvalidStartPrice = errors.New("start price rejected by the curve")
	// ErrPoolInvalidDelta is thrown when the curve rejects a delta.
	ErrPoolInvalidDelta = errors.New("delta rejected by the curve")
	// ErrPoolInvalidRecipient ...
	ErrPoolInvalidRecipient = errors.New("assets recipient must not be empty")
	// ErrPoolWrongDirection is thrown when the pool type forbids the
	// requested trade direction.
	ErrPoolWrongDirection = errors.New("pool does not support this trade direction")
	// ErrPoolZeroItems ...
	ErrPoolZeroItems = errors.New("trade must include at least one NFT")
	// ErrPoolInsufficientOutput is thrown when the quoted output is below
	// the seller's minimum.
	ErrPoolInsufficientOutput = errors.New("quoted output below the required minimum")
	// ErrPoolExceedsMaxInput is thrown when the quoted input is above the
	// buyer's maximum.
	ErrPoolExceedsMaxInput = errors.New("quoted input exceeds the allowed maximum")
	// ErrPoolInsufficientBalance is thrown when the pool custody cannot
	// cover the requested amount.
	ErrPoolInsufficientBalance = errors.New("pool token balance is too low")
	// ErrPoolInsufficientPayment is thrown when the offered funds don't
	// cover the quoted input.
	ErrPoolInsufficientPayment = errors.New("offered amount does not cover the quoted input")
	// ErrPoolInsufficientInventory is thrown when requested NFTs are not in
	// the pool inventory.
	ErrPoolInsufficientInventory = errors.New("pool inventory does not contain the requested NFTs")
	// ErrPoolDuplicateNFT ...
	ErrPoolDuplicateNFT = errors.New("NFT is already in the pool inventory")
	// ErrPoolNoOp is thrown when an admin update would not change anything.
	ErrPoolNoOp = errors.New("update matches the current value")
	// ErrPoolFeeTooHigh ...
	ErrPoolFeeTooHigh = errors.New("trade fee exceeds the maximum allowed")
	// ErrPoolFeeNotApplicable is thrown when setting a trade fee on a pool
	// that is not of type Trade.
	ErrPoolFeeNotApplicable = errors.New("trade fee only applies to trade pools")
	// ErrPoolRecipientNotApplicable is thrown when redirecting proceeds of
	// a Trade pool, which always self-custodies them.
	ErrPoolRecipientNotApplicable = errors.New("trade pools custody their own proceeds")
)
