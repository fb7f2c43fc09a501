package application

import (
	"github.com/nftswap-network/nftswap-daemon/internal/core/domain"
)

// PoolInfo is the read model of a pool returned by the services.
type PoolInfo struct {
	Name            string   `json:"name"`
	Type            int      `json:"type"`
	CurveName       string   `json:"curveName"`
	StartPrice      string   `json:"startPrice"`
	Delta           string   `json:"delta"`
	TradeFee        string   `json:"tradeFee"`
	AssetsRecipient string   `json:"assetsRecipient,omitempty"`
	TokenBalance    string   `json:"tokenBalance"`
	Inventory       []string `json:"inventory"`
}

func poolInfo(p *domain.Pool) *PoolInfo {
	return &PoolInfo{
		Name:            p.Name,
		Type:            p.Type,
		CurveName:       p.Curve().Name(),
		StartPrice:      p.StartPrice,
		Delta:           p.Delta,
		TradeFee:        p.TradeFee,
		AssetsRecipient: p.AssetsRecipient,
		TokenBalance:    p.TokenBalance,
		Inventory:       p.Inventory.All(),
	}
}

// QuoteInfo is the read model of a price preview.
type QuoteInfo struct {
	NumItems      uint64 `json:"numItems"`
	Amount        string `json:"amount"`
	ProtocolFee   string `json:"protocolFee"`
	PoolFee       string `json:"poolFee"`
	NewStartPrice string `json:"newStartPrice"`
	NewDelta      string `json:"newDelta"`
}

// SellSwapInfo reports an executed sell swap: every transfer the custody
// collaborator must settle is named here.
type SellSwapInfo struct {
	TradeId              string `json:"tradeId"`
	PoolName             string `json:"poolName"`
	NumItemsPriced       uint64 `json:"numItemsPriced"`
	Output               string `json:"output"`
	Recipient            string `json:"recipient"`
	ProtocolFee          string `json:"protocolFee"`
	ProtocolFeeRecipient string `json:"protocolFeeRecipient"`
	PoolFee              string `json:"poolFee"`
}

// BuySwapInfo reports an executed buy swap.
type BuySwapInfo struct {
	TradeId              string   `json:"tradeId"`
	PoolName             string   `json:"poolName"`
	Ids                  []string `json:"ids"`
	Recipient            string   `json:"recipient"`
	Input                string   `json:"input"`
	ProtocolFee          string   `json:"protocolFee"`
	ProtocolFeeRecipient string   `json:"protocolFeeRecipient"`
	PoolFee              string   `json:"poolFee"`
	Proceeds             string   `json:"proceeds"`
	ProceedsRecipient    string   `json:"proceedsRecipient,omitempty"`
	Refund               string   `json:"refund"`
}
