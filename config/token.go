package config

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

type TokenConfig struct {
	Address  common.Address
	Decimals uint8
	// symbol quoted by the price API, defaults to the token symbol
	PriceSymbol string
}

// TokenStore holds the known tokens of every chain keyed by symbol.
type TokenStore struct {
	Tokens map[uint64]map[string]TokenConfig
}

func NewTokenStore() *TokenStore {
	return &TokenStore{
		Tokens: make(map[uint64]map[string]TokenConfig),
	}
}

func (s *TokenStore) Add(chainID uint64, symbol string, c TokenConfig) {
	tokens, ok := s.Tokens[chainID]
	if !ok {
		tokens = make(map[string]TokenConfig)
		s.Tokens[chainID] = tokens
	}
	if c.PriceSymbol == "" {
		c.PriceSymbol = symbol
	}
	tokens[symbol] = c
}

func (s *TokenStore) ConfigByAddress(chainID uint64, address common.Address) (string, TokenConfig, error) {
	tokens, ok := s.Tokens[chainID]
	if !ok {
		return "", TokenConfig{}, fmt.Errorf("no tokens for chain %d", chainID)
	}

	for symbol, c := range tokens {
		if c.Address == address {
			return symbol, c, nil
		}
	}

	return "", TokenConfig{}, fmt.Errorf("no symbol for address %s", address.Hex())
}

func (s *TokenStore) ConfigBySymbol(chainID uint64, symbol string) (TokenConfig, error) {
	tokens, ok := s.Tokens[chainID]
	if !ok {
		return TokenConfig{}, fmt.Errorf("no tokens for chain %d", chainID)
	}

	for known, c := range tokens {
		if strings.EqualFold(known, symbol) {
			return c, nil
		}
	}

	return TokenConfig{}, fmt.Errorf("no config for token %s", symbol)
}

// RegistryEntries names every token address for address correction.
func (s *TokenStore) RegistryEntries() map[string]string {
	entries := make(map[string]string)
	for chainID, tokens := range s.Tokens {
		for symbol, c := range tokens {
			entries[fmt.Sprintf("%s (chain %d)", symbol, chainID)] = c.Address.Hex()
		}
	}
	return entries
}
