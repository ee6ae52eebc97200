package contracts_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/sprintertech/sprinter-omnichain/chains/evm/calls/consts"
	"github.com/sprintertech/sprinter-omnichain/chains/evm/calls/contracts"
	"github.com/stretchr/testify/suite"
)

type fakeCaller struct {
	msg ethereum.CallMsg
	out []byte
	err error
}

func (c *fakeCaller) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	c.msg = msg
	return c.out, c.err
}

type ForwarderContractTestSuite struct {
	suite.Suite

	caller    *fakeCaller
	forwarder *contracts.ForwarderContract
}

func TestRunForwarderContractTestSuite(t *testing.T) {
	suite.Run(t, new(ForwarderContractTestSuite))
}

func (s *ForwarderContractTestSuite) SetupTest() {
	s.caller = &fakeCaller{}
	s.forwarder = contracts.NewForwarderContract(s.caller, common.HexToAddress("0xc29d6995ab3b0df4650ad643adeac55e7acbb566"))
}

func (s *ForwarderContractTestSuite) Test_Nonce() {
	out, _ := consts.ForwarderABI.Methods["nonces"].Outputs.Pack(big.NewInt(7))
	s.caller.out = out
	owner := common.HexToAddress("0x6Dc7354cEA1b225B299Fe06b97aC12ac5066B899")

	nonce, err := s.forwarder.Nonce(context.Background(), owner)

	s.Nil(err)
	s.Equal(big.NewInt(7), nonce)
	s.Equal(s.forwarder.Address(), *s.caller.msg.To)
	expectedInput, _ := consts.ForwarderABI.Pack("nonces", owner)
	s.Equal(expectedInput, s.caller.msg.Data)
}

func (s *ForwarderContractTestSuite) Test_Nonce_CallFails() {
	s.caller.err = errors.New("rpc down")

	_, err := s.forwarder.Nonce(context.Background(), common.Address{})

	s.NotNil(err)
}

func (s *ForwarderContractTestSuite) Test_Nonce_EmptyResponse() {
	s.caller.out = []byte{}

	_, err := s.forwarder.Nonce(context.Background(), common.Address{})

	s.NotNil(err)
}

func (s *ForwarderContractTestSuite) Test_EncodeDecodeExecute() {
	req := contracts.ForwardRequestData{
		From:      common.HexToAddress("0x6Dc7354cEA1b225B299Fe06b97aC12ac5066B899"),
		To:        common.HexToAddress("0xdb9644369c79c3633cde70d2df50d827d7dc7dbc"),
		Value:     big.NewInt(1),
		Gas:       big.NewInt(2_000_000),
		Deadline:  big.NewInt(1750757273),
		Data:      []byte{0xde, 0xad, 0xbe, 0xef},
		Signature: []byte{0x01, 0x02},
	}

	calldata, err := s.forwarder.EncodeExecute(req)
	s.Nil(err)
	s.Equal(consts.ForwarderABI.Methods["execute"].ID, calldata[:4])

	decoded, err := s.forwarder.DecodeExecute(calldata)
	s.Nil(err)
	s.Equal(req, *decoded)
}

func (s *ForwarderContractTestSuite) Test_DecodeExecute_ShortCalldata() {
	_, err := s.forwarder.DecodeExecute([]byte{0x01})

	s.NotNil(err)
}

type DirectoryContractTestSuite struct {
	suite.Suite

	caller    *fakeCaller
	directory *contracts.DirectoryContract
}

func TestRunDirectoryContractTestSuite(t *testing.T) {
	suite.Run(t, new(DirectoryContractTestSuite))
}

func (s *DirectoryContractTestSuite) SetupTest() {
	s.caller = &fakeCaller{}
	s.directory = contracts.NewDirectoryContract(s.caller, common.HexToAddress("0x0061e516886a0540f63157f112c0588ee0651dcf"))
}

func (s *DirectoryContractTestSuite) Test_ControllerOf() {
	controller := common.HexToAddress("0xdb9644369c79c3633cde70d2df50d827d7dc7dbc")
	out, _ := consts.DirectoryABI.Methods["controllerOf"].Outputs.Pack(controller)
	s.caller.out = out

	res, err := s.directory.ControllerOf(context.Background(), 12)

	s.Nil(err)
	s.Equal(controller, res)
	expectedInput, _ := consts.DirectoryABI.Pack("controllerOf", big.NewInt(12))
	s.Equal(expectedInput, s.caller.msg.Data)
}

func (s *DirectoryContractTestSuite) Test_ControllerOf_NotSet() {
	out, _ := consts.DirectoryABI.Methods["controllerOf"].Outputs.Pack(common.Address{})
	s.caller.out = out

	_, err := s.directory.ControllerOf(context.Background(), 12)

	s.NotNil(err)
}

type CalldataEncodersTestSuite struct {
	suite.Suite
}

func TestRunCalldataEncodersTestSuite(t *testing.T) {
	suite.Run(t, new(CalldataEncodersTestSuite))
}

func (s *CalldataEncodersTestSuite) ruleset() contracts.JBRulesetConfig {
	return contracts.JBRulesetConfig{
		MustStartAtOrAfter: big.NewInt(0),
		Duration:           604800,
		Weight:             big.NewInt(1_000_000_000_000_000_000),
		WeightCutPercent:   50_000_000,
		Metadata: contracts.JBRulesetMetadata{
			ReservedPercent: 1000,
			CashOutTaxRate:  2000,
			BaseCurrency:    1,
		},
	}
}

func (s *CalldataEncodersTestSuite) Test_EncodeLaunchProjectFor() {
	terminals := []contracts.JBTerminalConfig{
		{
			Terminal: common.HexToAddress("0xdb9644369c79c3633cde70d2df50d827d7dc7dbc"),
			AccountingContextsToAccept: []contracts.JBAccountingContext{
				{Token: common.HexToAddress("0x000000000000000000000000000000000000EEEe"), Decimals: 18, Currency: 61166},
			},
		},
	}

	calldata, err := contracts.EncodeLaunchProjectFor(
		common.HexToAddress("0x6Dc7354cEA1b225B299Fe06b97aC12ac5066B899"),
		"ipfs://project",
		[]contracts.JBRulesetConfig{s.ruleset()},
		terminals,
		"launch",
	)

	s.Nil(err)
	s.Equal(consts.ControllerABI.Methods["launchProjectFor"].ID, calldata[:4])
}

func (s *CalldataEncodersTestSuite) Test_EncodeQueueRulesetsOf() {
	calldata, err := contracts.EncodeQueueRulesetsOf(4, []contracts.JBRulesetConfig{s.ruleset()}, "")

	s.Nil(err)
	s.Equal(consts.ControllerABI.Methods["queueRulesetsOf"].ID, calldata[:4])
}

func (s *CalldataEncodersTestSuite) Test_EncodeDeployERC20For() {
	calldata, err := contracts.EncodeDeployERC20For(4, "Token", "TKN", common.HexToHash("0x01"))

	s.Nil(err)
	s.Equal(consts.ControllerABI.Methods["deployERC20For"].ID, calldata[:4])
}

func (s *CalldataEncodersTestSuite) Test_EncodeSendPayoutsOf() {
	calldata, err := contracts.EncodeSendPayoutsOf(4, common.HexToAddress("0x000000000000000000000000000000000000EEEe"), big.NewInt(100), 61166, big.NewInt(0))

	s.Nil(err)
	s.Equal(consts.MultiTerminalABI.Methods["sendPayoutsOf"].ID, calldata[:4])
}

func (s *CalldataEncodersTestSuite) Test_EncodeDeploySuckersFor() {
	configs := []contracts.JBSuckerDeployerConfig{
		{
			Deployer: common.HexToAddress("0xdb9644369c79c3633cde70d2df50d827d7dc7dbc"),
			Mappings: []contracts.JBTokenMapping{
				{
					LocalToken:      common.HexToAddress("0x000000000000000000000000000000000000EEEe"),
					MinGas:          200_000,
					RemoteToken:     common.HexToAddress("0x000000000000000000000000000000000000EEEe"),
					MinBridgeAmount: big.NewInt(10_000_000_000_000_000),
				},
			},
		},
	}

	calldata, err := contracts.EncodeDeploySuckersFor(4, common.HexToHash("0x02"), configs)

	s.Nil(err)
	s.Equal(consts.SuckerRegistryABI.Methods["deploySuckersFor"].ID, calldata[:4])
}

func (s *CalldataEncodersTestSuite) Test_EncodeDeployRevnet() {
	config := contracts.REVConfig{
		Description: contracts.REVDescription{
			Name:   "Revnet",
			Ticker: "REV",
			Uri:    "ipfs://revnet",
		},
		BaseCurrency:  1,
		SplitOperator: common.HexToAddress("0x6Dc7354cEA1b225B299Fe06b97aC12ac5066B899"),
		StageConfigurations: []contracts.REVStageConfig{
			{
				StartsAtOrAfter:      big.NewInt(0),
				SplitPercent:         2000,
				InitialIssuance:      big.NewInt(1_000_000_000_000_000_000),
				IssuanceCutFrequency: 86400,
				IssuanceCutPercent:   10_000_000,
				CashOutTaxRate:       5000,
			},
		},
	}

	calldata, err := contracts.EncodeDeployRevnet(config, []contracts.JBTerminalConfig{}, contracts.REVSuckerDeploymentConfig{
		DeployerConfigurations: []contracts.JBSuckerDeployerConfig{},
	})

	s.Nil(err)
	s.Equal(consts.RevDeployerABI.Methods["deployFor"].ID, calldata[:4])
}
