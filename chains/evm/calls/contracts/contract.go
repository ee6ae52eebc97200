// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package contracts

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Contract is a read-only binding of an ABI to a deployed address.
type Contract struct {
	ABI     abi.ABI
	address common.Address
	caller  ethereum.ContractCaller
}

func NewContract(address common.Address, contractABI abi.ABI, caller ethereum.ContractCaller) Contract {
	return Contract{
		ABI:     contractABI,
		address: address,
		caller:  caller,
	}
}

func (c *Contract) Address() common.Address {
	return c.address
}

// CallContract executes a view method against the latest block and unpacks its outputs.
func (c *Contract) CallContract(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	input, err := c.ABI.Pack(method, args...)
	if err != nil {
		return nil, err
	}

	msg := ethereum.CallMsg{
		To:   &c.address,
		Data: input,
	}
	out, err := c.caller.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty response calling %s on %s", method, c.address.Hex())
	}

	return c.ABI.Unpack(method, out)
}
