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

type DirectoryContract struct {
	Contract
}

func NewDirectoryContract(caller ethereum.ContractCaller, address common.Address) *DirectoryContract {
	return &DirectoryContract{
		Contract: NewContract(address, consts.DirectoryABI, caller),
	}
}

// ControllerOf returns the controller currently managing the project.
func (c *DirectoryContract) ControllerOf(ctx context.Context, projectID uint64) (common.Address, error) {
	res, err := c.CallContract(ctx, "controllerOf", new(big.Int).SetUint64(projectID))
	if err != nil {
		return common.Address{}, err
	}

	out := *abi.ConvertType(res[0], new(common.Address)).(*common.Address)
	if out == (common.Address{}) {
		return common.Address{}, fmt.Errorf("no controller set for project %d", projectID)
	}

	return out, nil
}
