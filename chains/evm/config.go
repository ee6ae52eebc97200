// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package evm

import (
	"fmt"
	"strconv"
	"time"

	"github.com/creasty/defaults"
	"github.com/ethereum/go-ethereum/common"
	"github.com/mitchellh/mapstructure"

	"github.com/sprintertech/sprinter-omnichain/config"
	"github.com/sprintertech/sprinter-omnichain/config/chain"
)

type EVMConfig struct {
	GeneralChainConfig chain.GeneralChainConfig

	Forwarder      common.Address
	Directory      common.Address
	Controller     common.Address
	Terminal       common.Address
	SuckerRegistry common.Address
	RevDeployer    common.Address
	// remote chain id -> sucker deployer on this chain
	SuckerDeployers map[uint64]common.Address

	Tokens     map[string]config.TokenConfig
	RPCTimeout time.Duration
}

type RawTokenConfig struct {
	Address     string `mapstructure:"address"`
	Decimals    uint8  `mapstructure:"decimals"`
	PriceSymbol string `mapstructure:"priceSymbol"`
}

type RawEVMConfig struct {
	chain.GeneralChainConfig `mapstructure:",squash"`

	Forwarder       string                    `mapstructure:"forwarder"`
	Directory       string                    `mapstructure:"directory"`
	Controller      string                    `mapstructure:"controller"`
	Terminal        string                    `mapstructure:"terminal"`
	SuckerRegistry  string                    `mapstructure:"suckerRegistry"`
	RevDeployer     string                    `mapstructure:"revDeployer"`
	SuckerDeployers map[string]string         `mapstructure:"suckerDeployers"`
	Tokens          map[string]RawTokenConfig `mapstructure:"tokens"`

	RPCTimeout uint64 `mapstructure:"rpcTimeout" default:"5"`
}

func (c *RawEVMConfig) Validate() error {
	if err := c.GeneralChainConfig.Validate(); err != nil {
		return err
	}

	required := map[string]string{
		"forwarder":  c.Forwarder,
		"directory":  c.Directory,
		"controller": c.Controller,
		"terminal":   c.Terminal,
	}
	for name, address := range required {
		if !common.IsHexAddress(address) {
			return fmt.Errorf("invalid %s address '%s' for chain %d", name, address, *c.Id)
		}
	}

	optional := map[string]string{
		"suckerRegistry": c.SuckerRegistry,
		"revDeployer":    c.RevDeployer,
	}
	for remote, address := range c.SuckerDeployers {
		optional["suckerDeployers."+remote] = address
	}
	for name, address := range optional {
		if address != "" && !common.IsHexAddress(address) {
			return fmt.Errorf("invalid %s address '%s' for chain %d", name, address, *c.Id)
		}
	}

	for symbol, token := range c.Tokens {
		if !common.IsHexAddress(token.Address) {
			return fmt.Errorf("invalid address of token %s for chain %d", symbol, *c.Id)
		}
	}
	return nil
}

// NewEVMConfig decodes and validates an instance of an EVMConfig from
// raw chain config
func NewEVMConfig(chainConfig map[string]interface{}) (*EVMConfig, error) {
	var c RawEVMConfig
	err := mapstructure.Decode(chainConfig, &c)
	if err != nil {
		return nil, err
	}

	err = defaults.Set(&c)
	if err != nil {
		return nil, err
	}

	err = c.Validate()
	if err != nil {
		return nil, err
	}

	deployers := make(map[uint64]common.Address)
	for remote, address := range c.SuckerDeployers {
		remoteID, err := strconv.ParseUint(remote, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid sucker deployer chain %s: %w", remote, err)
		}
		deployers[remoteID] = common.HexToAddress(address)
	}

	tokens := make(map[string]config.TokenConfig)
	for symbol, t := range c.Tokens {
		tokens[symbol] = config.TokenConfig{
			Address:     common.HexToAddress(t.Address),
			Decimals:    t.Decimals,
			PriceSymbol: t.PriceSymbol,
		}
	}

	config := &EVMConfig{
		GeneralChainConfig: c.GeneralChainConfig,

		Forwarder:       common.HexToAddress(c.Forwarder),
		Directory:       common.HexToAddress(c.Directory),
		Controller:      common.HexToAddress(c.Controller),
		Terminal:        common.HexToAddress(c.Terminal),
		SuckerRegistry:  common.HexToAddress(c.SuckerRegistry),
		RevDeployer:     common.HexToAddress(c.RevDeployer),
		SuckerDeployers: deployers,

		Tokens: tokens,
		// nolint:gosec
		RPCTimeout: time.Duration(c.RPCTimeout) * time.Second,
	}

	return config, nil
}
