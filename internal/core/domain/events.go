package domain

// Event payloads published after a successful state change, one per
// change. They carry decimal-string amounts so they serialize to JSON
// without precision loss.

type StartPriceUpdatedEvent struct {
	PoolName   string `json:"poolName"`
	StartPrice string `json:"startPrice"`
}

type DeltaUpdatedEvent struct {
	PoolName string `json:"poolName"`
	Delta    string `json:"delta"`
}

type TradeFeeUpdatedEvent struct {
	PoolName string `json:"poolName"`
	TradeFee string `json:"tradeFee"`
}

type AssetsRecipientUpdatedEvent struct {
	PoolName        string `json:"poolName"`
	AssetsRecipient string `json:"assetsRecipient"`
}

type SellExecutedEvent struct {
	PoolName    string `json:"poolName"`
	Seller      string `json:"seller"`
	NumItems    uint64 `json:"numItems"`
	Output      string `json:"output"`
	ProtocolFee string `json:"protocolFee"`
}

type BuyExecutedEvent struct {
	PoolName    string `json:"poolName"`
	Buyer       string `json:"buyer"`
	NumItems    uint64 `json:"numItems"`
	Input       string `json:"input"`
	ProtocolFee string `json:"protocolFee"`
}

type TokenWithdrawalEvent struct {
	PoolName string `json:"poolName"`
	To       string `json:"to"`
	Amount   string `json:"amount"`
}

type NFTWithdrawalEvent struct {
	PoolName string `json:"poolName"`
	To       string `json:"to"`
	Count    int    `json:"count"`
}

type TokenDepositEvent struct {
	PoolName string `json:"poolName"`
	Amount   string `json:"amount"`
}

type NFTDepositEvent struct {
	PoolName string   `json:"poolName"`
	Ids      []string `json:"ids"`
}
