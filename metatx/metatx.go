package metatx

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"
	"github.com/sprintertech/sprinter-omnichain/chains/evm/calls/contracts"
	"github.com/sprintertech/sprinter-omnichain/chains/evm/signature"
	"github.com/sprintertech/sprinter-omnichain/relay"
	"github.com/sprintertech/sprinter-omnichain/signer"
)

const (
	DEADLINE_WINDOW        = 48 * time.Hour
	DEADLINE_SAFETY_MARGIN = 10 * time.Minute
	DEFAULT_GAS            = 2_000_000
)

type Forwarder interface {
	Address() common.Address
	Nonce(ctx context.Context, owner common.Address) (*big.Int, error)
	EncodeExecute(req contracts.ForwardRequestData) ([]byte, error)
}

// SigningError aborts a wrap sequence. ChainID is the chain whose envelope
// could not be produced.
type SigningError struct {
	ChainID uint64
	Err     error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("signing for chain %d failed: %s", e.ChainID, e.Err)
}

func (e *SigningError) Unwrap() error {
	return e.Err
}

type Call struct {
	ChainID uint64
	Target  common.Address
	Data    []byte
	Value   *big.Int
}

// Envelope is a signed forward request together with the execute calldata
// that submits it through the chain's forwarder.
type Envelope struct {
	ChainID   uint64
	Forwarder common.Address
	Request   signature.ForwardRequest
	Signature []byte
	Calldata  []byte
}

// Transaction is the relay call that executes the envelope.
func (e *Envelope) Transaction() relay.Transaction {
	return relay.NewTransaction(e.ChainID, e.Forwarder, e.Calldata, e.Request.Value)
}

type Option func(*Signer)

func WithClock(now func() time.Time) Option {
	return func(s *Signer) {
		s.now = now
	}
}

func WithGas(gas uint64) Option {
	return func(s *Signer) {
		s.gas = gas
	}
}

type Signer struct {
	forwarders map[uint64]Forwarder
	domain     signature.Domain
	gas        uint64
	now        func() time.Time
}

func NewSigner(forwarders map[uint64]Forwarder, domain signature.Domain, opts ...Option) *Signer {
	s := &Signer{
		forwarders: forwarders,
		domain:     domain,
		gas:        DEFAULT_GAS,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Wrap signs call as a forward request of the backend's account.
func (s *Signer) Wrap(ctx context.Context, call Call, backend signer.TypedDataSigner) (*Envelope, error) {
	forwarder, ok := s.forwarders[call.ChainID]
	if !ok {
		return nil, fmt.Errorf("no forwarder configured for chain %d", call.ChainID)
	}

	value := call.Value
	if value == nil {
		value = big.NewInt(0)
	}

	from := backend.Address()
	nonce, err := forwarder.Nonce(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("failed reading forwarder nonce: %w", err)
	}

	deadline := s.now().Add(DEADLINE_WINDOW)
	req := signature.ForwardRequest{
		From:     from,
		To:       call.Target,
		Value:    value,
		Gas:      new(big.Int).SetUint64(s.gas),
		Nonce:    nonce,
		Deadline: uint64(deadline.Unix()),
		Data:     call.Data,
	}

	typedData := signature.ForwardRequestTypedData(req, new(big.Int).SetUint64(call.ChainID), forwarder.Address(), s.domain)
	sig, err := backend.SignTypedData(ctx, typedData)
	if err != nil {
		return nil, err
	}

	// interactive backends can hold the prompt open for a long time
	if deadline.Sub(s.now()) < DEADLINE_SAFETY_MARGIN {
		return nil, fmt.Errorf("forward request deadline %d too close", req.Deadline)
	}

	calldata, err := forwarder.EncodeExecute(contracts.ForwardRequestData{
		From:      req.From,
		To:        req.To,
		Value:     req.Value,
		Gas:       req.Gas,
		Deadline:  new(big.Int).SetUint64(req.Deadline),
		Data:      req.Data,
		Signature: sig,
	})
	if err != nil {
		return nil, err
	}

	log.Debug().Uint64("chainID", call.ChainID).Msgf("Signed forward request from %s with nonce %s", from.Hex(), nonce)
	return &Envelope{
		ChainID:   call.ChainID,
		Forwarder: forwarder.Address(),
		Request:   req,
		Signature: sig,
		Calldata:  calldata,
	}, nil
}

// WrapAll signs calls one after another in the given order. Signing prompts
// must not overlap, so chains are never signed concurrently. Any failure
// discards every envelope produced so far.
func (s *Signer) WrapAll(ctx context.Context, calls []Call, backend signer.TypedDataSigner) ([]*Envelope, error) {
	envelopes := make([]*Envelope, 0, len(calls))
	for _, call := range calls {
		envelope, err := s.Wrap(ctx, call, backend)
		if err != nil {
			log.Warn().Uint64("chainID", call.ChainID).Msgf("Discarding %d signed envelopes: %s", len(envelopes), err)
			return nil, &SigningError{
				ChainID: call.ChainID,
				Err:     err,
			}
		}

		envelopes = append(envelopes, envelope)
	}

	return envelopes, nil
}
