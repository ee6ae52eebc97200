package verifier

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/ethereum/go-ethereum/common"
)

const (
	MAX_EDIT_DISTANCE = 3
)

type Correction struct {
	OriginalAddress  string `json:"originalAddress"`
	CorrectedAddress string `json:"correctedAddress"`
	MatchedContract  string `json:"matchedContract"`
}

type registryEntry struct {
	names   []string
	address common.Address
	key     string
}

// Registry holds canonical contract addresses that near-miss addresses are
// corrected to.
type Registry struct {
	entries []registryEntry
}

// NewRegistry builds a registry from contract name to address. Names sharing an
// address collapse into one entry.
func NewRegistry(contracts map[string]string) (*Registry, error) {
	names := make([]string, 0, len(contracts))
	for name := range contracts {
		names = append(names, name)
	}
	sort.Strings(names)

	byKey := make(map[string]int)
	r := &Registry{entries: make([]registryEntry, 0)}
	for _, name := range names {
		raw := contracts[name]
		if !common.IsHexAddress(raw) {
			return nil, fmt.Errorf("registry contract %s has invalid address %s", name, raw)
		}

		address := common.HexToAddress(raw)
		key := addressKey(address.Hex())
		if i, ok := byKey[key]; ok {
			r.entries[i].names = append(r.entries[i].names, name)
			continue
		}

		byKey[key] = len(r.entries)
		r.entries = append(r.entries, registryEntry{
			names:   []string{name},
			address: address,
			key:     key,
		})
	}

	return r, nil
}

// Contains reports whether the address is a canonical registry entry.
func (r *Registry) Contains(address string) bool {
	key := addressKey(address)
	for _, e := range r.entries {
		if e.key == key {
			return true
		}
	}
	return false
}

// Correct returns the canonical address the candidate was most likely copied from.
// Only a unique closest entry within MAX_EDIT_DISTANCE is accepted; canonical
// addresses are never altered.
func (r *Registry) Correct(candidate string) (Correction, bool) {
	if r == nil || len(r.entries) == 0 {
		return Correction{}, false
	}

	key := addressKey(candidate)
	best := -1
	bestDistance := MAX_EDIT_DISTANCE + 1
	tie := false
	for i, e := range r.entries {
		if e.key == key {
			return Correction{}, false
		}

		d := levenshtein.ComputeDistance(key, e.key)
		switch {
		case d < bestDistance:
			best = i
			bestDistance = d
			tie = false
		case d == bestDistance:
			tie = true
		}
	}

	if best == -1 || tie {
		return Correction{}, false
	}

	e := r.entries[best]
	return Correction{
		OriginalAddress:  candidate,
		CorrectedAddress: e.address.Hex(),
		MatchedContract:  strings.Join(e.names, "/"),
	}, true
}

func addressKey(address string) string {
	address = strings.ToLower(strings.TrimSpace(address))
	return strings.TrimPrefix(address, "0x")
}
