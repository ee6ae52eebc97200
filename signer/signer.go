package signer

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/sprintertech/sprinter-omnichain/chains/evm/signature"
)

// ErrUserRejected is returned by interactive backends when the user declines
// a signature prompt.
var ErrUserRejected = errors.New("user rejected signature request")

// TypedDataSigner is the uniform capability shared by passkey and EOA backends.
type TypedDataSigner interface {
	Address() common.Address
	SignTypedData(ctx context.Context, typedData apitypes.TypedData) ([]byte, error)
}

// KeySigner signs typed data with a local externally owned account key.
type KeySigner struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

func NewKeySigner(key *ecdsa.PrivateKey) *KeySigner {
	return &KeySigner{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}
}

// NewKeySignerFromHex parses a hex encoded secp256k1 private key.
func NewKeySignerFromHex(hexKey string) (*KeySigner, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid signer key: %w", err)
	}
	return NewKeySigner(key), nil
}

func (s *KeySigner) Address() common.Address {
	return s.address
}

// SignTypedData returns a [R || S || V] signature with V of 27 or 28, as
// expected by on-chain ECDSA recovery.
func (s *KeySigner) SignTypedData(ctx context.Context, typedData apitypes.TypedData) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hash, err := signature.TypedDataHash(typedData)
	if err != nil {
		return nil, err
	}

	sig, err := crypto.Sign(hash, s.key)
	if err != nil {
		return nil, err
	}
	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}
