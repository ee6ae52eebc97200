// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package contracts

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/sprintertech/sprinter-omnichain/chains/evm/calls/consts"
)

type ForwardRequestData struct {
	From      common.Address
	To        common.Address
	Value     *big.Int
	Gas       *big.Int
	Deadline  *big.Int
	Data      []byte
	Signature []byte
}

type ForwarderContract struct {
	Contract
}

func NewForwarderContract(caller ethereum.ContractCaller, address common.Address) *ForwarderContract {
	return &ForwarderContract{
		Contract: NewContract(address, consts.ForwarderABI, caller),
	}
}

// Nonce reads the current forwarder nonce of the owner.
func (c *ForwarderContract) Nonce(ctx context.Context, owner common.Address) (*big.Int, error) {
	res, err := c.CallContract(ctx, "nonces", owner)
	if err != nil {
		return nil, err
	}

	out := *abi.ConvertType(res[0], new(*big.Int)).(**big.Int)
	return out, nil
}

// EncodeExecute encodes the execute call that carries a signed request.
func (c *ForwarderContract) EncodeExecute(req ForwardRequestData) ([]byte, error) {
	return c.ABI.Pack("execute", req)
}

// DecodeExecute decodes calldata of an execute call.
func (c *ForwarderContract) DecodeExecute(calldata []byte) (*ForwardRequestData, error) {
	if len(calldata) < 4 {
		return nil, fmt.Errorf("calldata too short")
	}

	method := c.ABI.Methods["execute"]
	res, err := method.Inputs.Unpack(calldata[4:])
	if err != nil {
		return nil, err
	}

	req := *abi.ConvertType(res[0], new(ForwardRequestData)).(*ForwardRequestData)
	return &req, nil
}
