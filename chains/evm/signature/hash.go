package signature

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

const (
	DOMAIN_NAME = "Juicebox"
	VERSION     = "1"
)

// ForwardRequest is the message an end user signs so a relay can execute
// a call through the ERC-2771 forwarder on their behalf.
type ForwardRequest struct {
	From     common.Address
	To       common.Address
	Value    *big.Int
	Gas      *big.Int
	Nonce    *big.Int
	Deadline uint64
	Data     []byte
}

type Domain struct {
	Name    string
	Version string
}

func DefaultDomain() Domain {
	return Domain{
		Name:    DOMAIN_NAME,
		Version: VERSION,
	}
}

// ForwardRequestTypedData builds the typed data matching the forwarder's
// ForwardRequest type schema.
func ForwardRequestTypedData(
	req ForwardRequest,
	chainID *big.Int,
	forwarder common.Address,
	domain Domain,
) apitypes.TypedData {
	msg := apitypes.TypedDataMessage{
		"from":     req.From.Hex(),
		"to":       req.To.Hex(),
		"value":    req.Value,
		"gas":      req.Gas,
		"nonce":    req.Nonce,
		"deadline": new(big.Int).SetUint64(req.Deadline),
		"data":     req.Data,
	}

	chainId := math.HexOrDecimal256(*chainID)
	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": []apitypes.Type{
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
			"ForwardRequest": []apitypes.Type{
				{Name: "from", Type: "address"},
				{Name: "to", Type: "address"},
				{Name: "value", Type: "uint256"},
				{Name: "gas", Type: "uint256"},
				{Name: "nonce", Type: "uint256"},
				{Name: "deadline", Type: "uint48"},
				{Name: "data", Type: "bytes"},
			},
		},
		PrimaryType: "ForwardRequest",
		Domain: apitypes.TypedDataDomain{
			Name:              domain.Name,
			ChainId:           &chainId,
			Version:           domain.Version,
			VerifyingContract: forwarder.Hex(),
		},
		Message: msg,
	}
}

// TypedDataHash calculates the EIP-712 digest that has to be signed.
func TypedDataHash(typedData apitypes.TypedData) ([]byte, error) {
	domainSeparator, err := typedData.HashStruct("EIP712Domain", typedData.Domain.Map())
	if err != nil {
		return []byte{}, err
	}

	messageHash, err := typedData.HashStruct(typedData.PrimaryType, typedData.Message)
	if err != nil {
		return []byte{}, err
	}

	rawData := []byte(fmt.Sprintf("\x19\x01%s%s", string(domainSeparator), string(messageHash)))
	return crypto.Keccak256(rawData), nil
}

// ForwardRequestHash calculates the digest of a forward request for the forwarder
// deployed at the given address.
func ForwardRequestHash(
	req ForwardRequest,
	chainID *big.Int,
	forwarder common.Address,
	domain Domain,
) ([]byte, error) {
	return TypedDataHash(ForwardRequestTypedData(req, chainID, forwarder, domain))
}

// RecoverSigner returns the address that produced signature over hash. The
// signature is expected in [R || S || V] form with V of 27 or 28.
func RecoverSigner(hash []byte, sig []byte) (common.Address, error) {
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("invalid signature length %d", len(sig))
	}

	normalized := make([]byte, len(sig))
	copy(normalized, sig)
	if normalized[crypto.RecoveryIDOffset] >= 27 {
		normalized[crypto.RecoveryIDOffset] -= 27
	}

	pub, err := crypto.SigToPub(hash, normalized)
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(*pub), nil
}
