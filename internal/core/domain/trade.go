package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trade is the audit record of an executed swap.
type Trade struct {
	Id          string
	PoolName    string
	Type        int
	Ids         []string
	NumItems    uint64
	Amount      string
	ProtocolFee string
	PoolFee     string
	Timestamp   int64
}

// NewTrade returns a trade record with a fresh id and the current time.
func NewTrade(
	poolName string, tradeType int, ids []string, numItems uint64,
	amount, protocolFee, poolFee string,
) *Trade {
	return &Trade{
		Id:          uuid.New().String(),
		PoolName:    poolName,
		Type:        tradeType,
		Ids:         ids,
		NumItems:    numItems,
		Amount:      amount,
		ProtocolFee: protocolFee,
		PoolFee:     poolFee,
		Timestamp:   time.Now().Unix(),
	}
}

// IsBuy returns whether the trade bought NFTs out of the pool.
func (t *Trade) IsBuy() bool {
	return t.Type == TradeTypeBuy
}
