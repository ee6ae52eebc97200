package metatx_test

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/sprintertech/sprinter-omnichain/chains/evm/calls/contracts"
	"github.com/sprintertech/sprinter-omnichain/chains/evm/signature"
	"github.com/sprintertech/sprinter-omnichain/metatx"
	mock_metatx "github.com/sprintertech/sprinter-omnichain/metatx/mock"
	"github.com/sprintertech/sprinter-omnichain/signer"
	mock_signer "github.com/sprintertech/sprinter-omnichain/signer/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SignerTestSuite struct {
	suite.Suite

	mainnetForwarder  *mock_metatx.MockForwarder
	optimismForwarder *mock_metatx.MockForwarder
	mockBackend       *mock_signer.MockTypedDataSigner
	keySigner         *signer.KeySigner

	now    time.Time
	signer *metatx.Signer
}

func TestRunSignerTestSuite(t *testing.T) {
	suite.Run(t, new(SignerTestSuite))
}

func (s *SignerTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.mainnetForwarder = mock_metatx.NewMockForwarder(ctrl)
	s.mainnetForwarder.EXPECT().Address().Return(common.HexToAddress("0xc29d6995ab3b0df4650ad643adeac55e7acbb566")).AnyTimes()
	s.optimismForwarder = mock_metatx.NewMockForwarder(ctrl)
	s.optimismForwarder.EXPECT().Address().Return(common.HexToAddress("0x0000000000000000000000000000000000000a4d")).AnyTimes()
	s.mockBackend = mock_signer.NewMockTypedDataSigner(ctrl)

	key, _ := crypto.GenerateKey()
	s.keySigner = signer.NewKeySigner(key)

	s.now = time.Unix(1750000000, 0)
	s.signer = metatx.NewSigner(
		map[uint64]metatx.Forwarder{
			1:  s.mainnetForwarder,
			10: s.optimismForwarder,
		},
		signature.DefaultDomain(),
		metatx.WithClock(func() time.Time { return s.now }),
		metatx.WithGas(500_000),
	)
}

func (s *SignerTestSuite) call(chainID uint64) metatx.Call {
	return metatx.Call{
		ChainID: chainID,
		Target:  common.HexToAddress("0xdb9644369c79c3633cde70d2df50d827d7dc7dbc"),
		Data:    []byte{0xde, 0xad},
	}
}

func (s *SignerTestSuite) Test_Wrap_UnknownChain() {
	_, err := s.signer.Wrap(context.Background(), s.call(8453), s.keySigner)

	s.NotNil(err)
}

func (s *SignerTestSuite) Test_Wrap_NonceReadFails() {
	s.mainnetForwarder.EXPECT().Nonce(gomock.Any(), s.keySigner.Address()).Return(nil, errors.New("all rpc endpoints failed"))

	_, err := s.signer.Wrap(context.Background(), s.call(1), s.keySigner)

	s.NotNil(err)
}

func (s *SignerTestSuite) Test_Wrap_ValidEnvelope() {
	s.mainnetForwarder.EXPECT().Nonce(gomock.Any(), s.keySigner.Address()).Return(big.NewInt(3), nil)
	var encoded contracts.ForwardRequestData
	s.mainnetForwarder.EXPECT().EncodeExecute(gomock.Any()).DoAndReturn(func(req contracts.ForwardRequestData) ([]byte, error) {
		encoded = req
		return []byte{0x01, 0x02}, nil
	})

	envelope, err := s.signer.Wrap(context.Background(), s.call(1), s.keySigner)

	s.Nil(err)
	s.Equal(uint64(1), envelope.ChainID)
	s.Equal(big.NewInt(3), envelope.Request.Nonce)
	s.Equal(big.NewInt(0), envelope.Request.Value)
	s.Equal(big.NewInt(500_000), envelope.Request.Gas)
	s.Equal(uint64(s.now.Add(48*time.Hour).Unix()), envelope.Request.Deadline)
	s.Equal([]byte{0x01, 0x02}, envelope.Calldata)
	s.Equal(envelope.Signature, encoded.Signature)
	s.Equal(new(big.Int).SetUint64(envelope.Request.Deadline), encoded.Deadline)

	hash, _ := signature.ForwardRequestHash(envelope.Request, big.NewInt(1), envelope.Forwarder, signature.DefaultDomain())
	recovered, err := signature.RecoverSigner(hash, envelope.Signature)
	s.Nil(err)
	s.Equal(s.keySigner.Address(), recovered)

	tx := envelope.Transaction()
	s.Equal(envelope.Forwarder, tx.Target)
	s.Equal("0", tx.Value)
}

func (s *SignerTestSuite) Test_Wrap_NonceReadBeforeSigning() {
	from := common.HexToAddress("0x6Dc7354cEA1b225B299Fe06b97aC12ac5066B899")
	s.mockBackend.EXPECT().Address().Return(from).AnyTimes()
	gomock.InOrder(
		s.mainnetForwarder.EXPECT().Nonce(gomock.Any(), from).Return(big.NewInt(9), nil),
		s.mockBackend.EXPECT().SignTypedData(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, typedData apitypes.TypedData) ([]byte, error) {
			s.Equal(big.NewInt(9), typedData.Message["nonce"])
			s.Equal("ForwardRequest", typedData.PrimaryType)
			return make([]byte, 65), nil
		}),
		s.mainnetForwarder.EXPECT().EncodeExecute(gomock.Any()).Return([]byte{0x01}, nil),
	)

	_, err := s.signer.Wrap(context.Background(), s.call(1), s.mockBackend)

	s.Nil(err)
}

func (s *SignerTestSuite) Test_Wrap_DeadlineTooCloseAfterSigning() {
	from := common.HexToAddress("0x6Dc7354cEA1b225B299Fe06b97aC12ac5066B899")
	s.mockBackend.EXPECT().Address().Return(from).AnyTimes()
	s.mainnetForwarder.EXPECT().Nonce(gomock.Any(), from).Return(big.NewInt(9), nil)
	s.mockBackend.EXPECT().SignTypedData(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, typedData apitypes.TypedData) ([]byte, error) {
		s.now = s.now.Add(48 * time.Hour)
		return make([]byte, 65), nil
	})

	_, err := s.signer.Wrap(context.Background(), s.call(1), s.mockBackend)

	s.NotNil(err)
}

func (s *SignerTestSuite) Test_WrapAll_SignsSequentiallyInOrder() {
	s.mainnetForwarder.EXPECT().Nonce(gomock.Any(), gomock.Any()).Return(big.NewInt(0), nil)
	s.mainnetForwarder.EXPECT().EncodeExecute(gomock.Any()).Return([]byte{0x01}, nil)
	s.optimismForwarder.EXPECT().Nonce(gomock.Any(), gomock.Any()).Return(big.NewInt(5), nil)
	s.optimismForwarder.EXPECT().EncodeExecute(gomock.Any()).Return([]byte{0x0a}, nil)

	envelopes, err := s.signer.WrapAll(context.Background(), []metatx.Call{s.call(10), s.call(1)}, s.keySigner)

	s.Nil(err)
	s.Len(envelopes, 2)
	s.Equal(uint64(10), envelopes[0].ChainID)
	s.Equal(uint64(1), envelopes[1].ChainID)
	s.Equal(big.NewInt(5), envelopes[0].Request.Nonce)
}

func (s *SignerTestSuite) Test_WrapAll_RejectedSecondPromptDiscardsFirst() {
	from := common.HexToAddress("0x6Dc7354cEA1b225B299Fe06b97aC12ac5066B899")
	s.mockBackend.EXPECT().Address().Return(from).AnyTimes()
	s.mainnetForwarder.EXPECT().Nonce(gomock.Any(), from).Return(big.NewInt(0), nil)
	s.mainnetForwarder.EXPECT().EncodeExecute(gomock.Any()).Return([]byte{0x01}, nil)
	s.optimismForwarder.EXPECT().Nonce(gomock.Any(), from).Return(big.NewInt(0), nil)
	gomock.InOrder(
		s.mockBackend.EXPECT().SignTypedData(gomock.Any(), gomock.Any()).Return(make([]byte, 65), nil),
		s.mockBackend.EXPECT().SignTypedData(gomock.Any(), gomock.Any()).Return(nil, signer.ErrUserRejected),
	)

	envelopes, err := s.signer.WrapAll(context.Background(), []metatx.Call{s.call(1), s.call(10)}, s.mockBackend)

	s.Nil(envelopes)
	var signingErr *metatx.SigningError
	s.True(errors.As(err, &signingErr))
	s.Equal(uint64(10), signingErr.ChainID)
	s.ErrorIs(err, signer.ErrUserRejected)
}
