package relay

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusPartial    Status = "partial"
	StatusFailed     Status = "failed"
	StatusExpired    Status = "expired"
)

// Final reports whether the relay will not change the bundle anymore.
func (s Status) Final() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusExpired
}

type TxStatus string

const (
	TxPending   TxStatus = "pending"
	TxSubmitted TxStatus = "submitted"
	TxConfirmed TxStatus = "confirmed"
	TxFailed    TxStatus = "failed"
)

// Transaction is a single call the relay executes on one chain.
type Transaction struct {
	ChainID uint64         `json:"chain"`
	Target  common.Address `json:"target"`
	Data    hexutil.Bytes  `json:"data"`
	Value   string         `json:"value"`
}

func NewTransaction(chainID uint64, target common.Address, data []byte, value *big.Int) Transaction {
	if value == nil {
		value = big.NewInt(0)
	}

	return Transaction{
		ChainID: chainID,
		Target:  target,
		Data:    data,
		Value:   value.String(),
	}
}

type PaymentOption struct {
	ChainID     uint64 `json:"chain_id"`
	Token       string `json:"token"`
	Symbol      string `json:"symbol"`
	Decimals    uint8  `json:"decimals"`
	Amount      string `json:"amount"`
	GasEstimate string `json:"gas_estimate"`
}

type PrepaidBundle struct {
	BundleID       string          `json:"bundle_uuid"`
	PaymentOptions []PaymentOption `json:"payment_options"`
	ExpiresAt      int64           `json:"expires_at"`
}

type ChainTxStatus struct {
	ChainID uint64   `json:"chain_id"`
	Status  TxStatus `json:"status"`
	TxHash  string   `json:"tx_hash"`
	Error   string   `json:"error"`
	GasUsed string   `json:"gas_used"`
}

type BundleStatus struct {
	Status          Status          `json:"status"`
	Transactions    []ChainTxStatus `json:"transactions"`
	PaymentReceived bool            `json:"payment_received"`
	Error           string          `json:"error"`
}

type sponsoredRequest struct {
	Transactions []Transaction `json:"transactions"`
}

type sponsoredResponse struct {
	BundleID string `json:"bundle_uuid"`
}

type prepaidRequest struct {
	Signer       common.Address `json:"signer"`
	Transactions []Transaction  `json:"transactions"`
}

type paymentRequest struct {
	ChainID  uint64        `json:"chain_id"`
	SignedTx hexutil.Bytes `json:"signed_tx"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
