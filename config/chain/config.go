// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package chain

import (
	"fmt"
	"net/url"
)

type GeneralChainConfig struct {
	Name string  `mapstructure:"name"`
	Id   *uint64 `mapstructure:"id"`
	// RPC endpoints in fallback order
	Endpoints []string `mapstructure:"endpoints"`
	Type      string   `mapstructure:"type"`
}

func (c *GeneralChainConfig) Validate() error {
	// viper defaults to 0 for not specified ints
	if c.Id == nil {
		return fmt.Errorf("required field chain.Id empty for chain %v", c.Name)
	}
	if len(c.Endpoints) == 0 {
		return fmt.Errorf("required field chain.Endpoints empty for chain %v", *c.Id)
	}
	for _, endpoint := range c.Endpoints {
		if _, err := url.ParseRequestURI(endpoint); err != nil {
			return fmt.Errorf("invalid endpoint %s for chain %v: %w", endpoint, *c.Id, err)
		}
	}
	if c.Name == "" {
		return fmt.Errorf("required field chain.Name empty for chain %v", *c.Id)
	}
	return nil
}
