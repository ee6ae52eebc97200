package bundle

import (
	"github.com/sprintertech/sprinter-omnichain/relay"
)

type Status string

const (
	StatusIdle            Status = "idle"
	StatusCreating        Status = "creating"
	StatusAwaitingPayment Status = "awaiting_payment"
	StatusProcessing      Status = "processing"
	StatusCompleted       Status = "completed"
	StatusPartial         Status = "partial"
	StatusFailed          Status = "failed"
	StatusExpired         Status = "expired"
)

// Terminal statuses only change through Reset.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusExpired
}

type ChainStatus string

const (
	ChainPending   ChainStatus = "pending"
	ChainSubmitted ChainStatus = "submitted"
	ChainConfirmed ChainStatus = "confirmed"
	ChainFailed    ChainStatus = "failed"
)

func (s ChainStatus) Terminal() bool {
	return s == ChainConfirmed || s == ChainFailed
}

func (s ChainStatus) rank() int {
	switch s {
	case ChainPending:
		return 0
	case ChainSubmitted:
		return 1
	case ChainConfirmed, ChainFailed:
		return 2
	default:
		return -1
	}
}

type ChainState struct {
	ChainID   uint64      `json:"chainId"`
	ProjectID uint64      `json:"projectId"`
	Status    ChainStatus `json:"status"`
	TxHash    string      `json:"txHash,omitempty"`
	Error     string      `json:"error,omitempty"`
	GasUsed   string      `json:"gasUsed,omitempty"`
}

type Bundle struct {
	ID                   string                `json:"bundleId,omitempty"`
	Status               Status                `json:"status"`
	Chains               []ChainState          `json:"chainStates"`
	PaymentOptions       []relay.PaymentOption `json:"paymentOptions"`
	SelectedPaymentChain uint64                `json:"selectedPaymentChain,omitempty"`
	ExpiresAt            int64                 `json:"expiresAt,omitempty"`
	Error                string                `json:"error,omitempty"`
}

// TxHashes maps every confirmed chain to its transaction hash.
func (b Bundle) TxHashes() map[uint64]string {
	hashes := make(map[uint64]string)
	for _, c := range b.Chains {
		if c.Status == ChainConfirmed {
			hashes[c.ChainID] = c.TxHash
		}
	}
	return hashes
}

func (b Bundle) copy() Bundle {
	out := b
	out.Chains = make([]ChainState, len(b.Chains))
	copy(out.Chains, b.Chains)
	out.PaymentOptions = make([]relay.PaymentOption, len(b.PaymentOptions))
	copy(out.PaymentOptions, b.PaymentOptions)
	return out
}
