package salt

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	SUCKER_NAMESPACE = "JB_SUCKER_LINK_V1"
	TOKEN_NAMESPACE  = "JB_ERC20_V1"
	REVNET_NAMESPACE = "REVNET_V1"
)

var ErrEmptyInput = errors.New("empty salt input")

// ChainProject identifies a project on one chain.
type ChainProject struct {
	ChainID   uint64 `json:"chainId"`
	ProjectID uint64 `json:"projectId"`
}

// SuckerSalt derives the salt used to deploy linked suckers. Links are sorted by
// chain id first so every chain computes the same salt regardless of input order.
func SuckerSalt(links []ChainProject) (common.Hash, error) {
	if len(links) == 0 {
		return common.Hash{}, ErrEmptyInput
	}

	sorted := make([]ChainProject, len(links))
	copy(sorted, links)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].ChainID == sorted[j].ChainID {
			return sorted[i].ProjectID < sorted[j].ProjectID
		}
		return sorted[i].ChainID < sorted[j].ChainID
	})

	parts := make([]string, len(sorted))
	for i, l := range sorted {
		if l.ChainID == 0 || l.ProjectID == 0 {
			return common.Hash{}, fmt.Errorf("%w: chain %d project %d", ErrEmptyInput, l.ChainID, l.ProjectID)
		}
		parts[i] = fmt.Sprintf("%d:%d", l.ChainID, l.ProjectID)
	}

	return hash(SUCKER_NAMESPACE, strings.Join(parts, ",")), nil
}

// TokenSalt derives the ERC-20 deployment salt for a project token. It has no
// time component so the token lands on the same address on every chain.
func TokenSalt(projectID uint64, symbol string) (common.Hash, error) {
	symbol = strings.TrimSpace(symbol)
	if projectID == 0 || symbol == "" {
		return common.Hash{}, ErrEmptyInput
	}

	return hash(TOKEN_NAMESPACE, fmt.Sprintf("%d", projectID), strings.ToUpper(symbol)), nil
}

// RevnetSalt derives the salt for a brand new revnet. The timestamp must be taken once
// per deployment and passed unchanged for every chain of that deployment.
func RevnetSalt(name string, timestamp int64) (common.Hash, error) {
	name = strings.TrimSpace(name)
	if name == "" || timestamp <= 0 {
		return common.Hash{}, ErrEmptyInput
	}

	return hash(REVNET_NAMESPACE, name, fmt.Sprintf("%d", timestamp)), nil
}

// Create2Address computes the address a CREATE2 deployment from deployer lands on.
func Create2Address(deployer common.Address, salt common.Hash, initCodeHash common.Hash) common.Address {
	return crypto.CreateAddress2(deployer, salt, initCodeHash.Bytes())
}

func hash(parts ...string) common.Hash {
	return crypto.Keccak256Hash([]byte(strings.Join(parts, "|")))
}
