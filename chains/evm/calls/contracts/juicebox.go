// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sprintertech/sprinter-omnichain/chains/evm/calls/consts"
)

type JBRulesetMetadata struct {
	ReservedPercent   uint16
	CashOutTaxRate    uint16
	BaseCurrency      uint32
	PausePay          bool
	AllowOwnerMinting bool
	HoldFees          bool
	DataHook          common.Address
}

type JBRulesetConfig struct {
	MustStartAtOrAfter *big.Int
	Duration           uint32
	Weight             *big.Int
	WeightCutPercent   uint32
	ApprovalHook       common.Address
	Metadata           JBRulesetMetadata
}

type JBAccountingContext struct {
	Token    common.Address
	Decimals uint8
	Currency uint32
}

type JBTerminalConfig struct {
	Terminal                   common.Address
	AccountingContextsToAccept []JBAccountingContext
}

type JBTokenMapping struct {
	LocalToken      common.Address
	MinGas          uint32
	RemoteToken     common.Address
	MinBridgeAmount *big.Int
}

type JBSuckerDeployerConfig struct {
	Deployer common.Address
	Mappings []JBTokenMapping
}

type REVDescription struct {
	Name   string
	Ticker string
	Uri    string
	Salt   [32]byte
}

type REVStageConfig struct {
	StartsAtOrAfter      *big.Int
	SplitPercent         uint16
	InitialIssuance      *big.Int
	IssuanceCutFrequency uint32
	IssuanceCutPercent   uint32
	CashOutTaxRate       uint16
}

type REVConfig struct {
	Description         REVDescription
	BaseCurrency        uint32
	SplitOperator       common.Address
	StageConfigurations []REVStageConfig
}

type REVSuckerDeploymentConfig struct {
	DeployerConfigurations []JBSuckerDeployerConfig
	Salt                   [32]byte
}

func EncodeLaunchProjectFor(
	owner common.Address,
	projectUri string,
	rulesets []JBRulesetConfig,
	terminals []JBTerminalConfig,
	memo string,
) ([]byte, error) {
	return consts.ControllerABI.Pack("launchProjectFor", owner, projectUri, rulesets, terminals, memo)
}

func EncodeQueueRulesetsOf(projectID uint64, rulesets []JBRulesetConfig, memo string) ([]byte, error) {
	return consts.ControllerABI.Pack("queueRulesetsOf", new(big.Int).SetUint64(projectID), rulesets, memo)
}

func EncodeDeployERC20For(projectID uint64, name string, symbol string, salt common.Hash) ([]byte, error) {
	return consts.ControllerABI.Pack("deployERC20For", new(big.Int).SetUint64(projectID), name, symbol, [32]byte(salt))
}

func EncodeSendPayoutsOf(
	projectID uint64,
	token common.Address,
	amount *big.Int,
	currency uint32,
	minTokensPaidOut *big.Int,
) ([]byte, error) {
	return consts.MultiTerminalABI.Pack(
		"sendPayoutsOf",
		new(big.Int).SetUint64(projectID),
		token,
		amount,
		new(big.Int).SetUint64(uint64(currency)),
		minTokensPaidOut,
	)
}

func EncodeDeploySuckersFor(projectID uint64, salt common.Hash, configs []JBSuckerDeployerConfig) ([]byte, error) {
	return consts.SuckerRegistryABI.Pack("deploySuckersFor", new(big.Int).SetUint64(projectID), [32]byte(salt), configs)
}

func EncodeDeployRevnet(
	config REVConfig,
	terminals []JBTerminalConfig,
	suckers REVSuckerDeploymentConfig,
) ([]byte, error) {
	// revnet id 0 deploys a new project
	return consts.RevDeployerABI.Pack("deployFor", big.NewInt(0), config, terminals, suckers)
}
