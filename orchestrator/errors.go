package orchestrator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sprintertech/sprinter-omnichain/bundle"
	"github.com/sprintertech/sprinter-omnichain/verifier"
)

var (
	ErrExpired     = errors.New("the payment quote expired, start a new bundle to get a fresh quote")
	ErrNoSigner    = errors.New("prepaid bundles need a signer")
	ErrUnknownMode = errors.New("unknown execution mode")
	// ErrLatePayment means the relay accepted a payment after the quote
	// expired locally. The bundle is not tracked any further.
	ErrLatePayment = errors.New("payment accepted by the relay after the quote expired")
)

// VerificationError is returned when arguments fail verification. Nothing
// was sent to any chain or to the relay.
type VerificationError struct {
	Result *verifier.Result
}

func (e *VerificationError) Error() string {
	criticals := e.Result.Criticals()
	msgs := make([]string, len(criticals))
	for i, d := range criticals {
		msgs[i] = fmt.Sprintf("%s: %s", d.Field, d.Message)
	}
	return fmt.Sprintf("invalid arguments: %s", strings.Join(msgs, "; "))
}

// PartialFailureError reports a bundle where at least one chain failed.
// Failed maps each failed chain to its own error and Confirmed keeps the
// transactions that did land. Nothing is retried.
type PartialFailureError struct {
	Status    bundle.Status
	Message   string
	Failed    map[uint64]string
	Confirmed map[uint64]string
}

func newPartialFailureError(b bundle.Bundle) *PartialFailureError {
	failed := make(map[uint64]string)
	for _, c := range b.Chains {
		if c.Status == bundle.ChainFailed {
			failed[c.ChainID] = c.Error
		}
	}

	return &PartialFailureError{
		Status:    b.Status,
		Message:   b.Error,
		Failed:    failed,
		Confirmed: b.TxHashes(),
	}
}

func (e *PartialFailureError) Error() string {
	if e.Message != "" && len(e.Confirmed) == 0 {
		return e.Message
	}

	chains := make([]uint64, 0, len(e.Failed))
	for c := range e.Failed {
		chains = append(chains, c)
	}
	sort.Slice(chains, func(i, j int) bool { return chains[i] < chains[j] })

	msgs := make([]string, len(chains))
	for i, c := range chains {
		msgs[i] = fmt.Sprintf("chain %d: %s", c, e.Failed[c])
	}
	return fmt.Sprintf("bundle %s, %d chain(s) confirmed: %s", e.Status, len(e.Confirmed), strings.Join(msgs, "; "))
}
