package verifier_test

import (
	"fmt"
	"math/big"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sprintertech/sprinter-omnichain/verifier"
	"github.com/stretchr/testify/suite"
)

const (
	user = "0x6Dc7354cEA1b225B299Fe06b97aC12ac5066B899"
	usdc = "0x833589fcd6edb6e08f4c7c32d4f71b54bda02913"
)

type VerifierTestSuite struct {
	suite.Suite

	verifier *verifier.Verifier
}

func TestRunVerifierTestSuite(t *testing.T) {
	suite.Run(t, new(VerifierTestSuite))
}

func (s *VerifierTestSuite) SetupTest() {
	r, _ := verifier.NewRegistry(map[string]string{
		"JBMultiTerminal": terminalAddress,
		"JBController":    controllerAddress,
	})
	s.verifier = verifier.NewVerifier(r, []uint64{1, 10, 8453, 42161})
}

func (s *VerifierTestSuite) validPay() verifier.Params {
	return verifier.Params{
		"projectId":   "12",
		"token":       usdc,
		"amount":      "1000000",
		"beneficiary": user,
	}
}

func (s *VerifierTestSuite) hasDoubt(res *verifier.Result, severity verifier.Severity, field string, contains string) bool {
	for _, d := range res.Doubts {
		if d.Severity == severity && d.Field == field && strings.Contains(d.Message, contains) {
			return true
		}
	}
	return false
}

func (s *VerifierTestSuite) Test_Verify_ValidPay() {
	res := s.verifier.Verify(verifier.Pay, s.validPay())

	s.True(res.IsValid)
	s.Empty(res.Doubts)
	s.Equal("12", res.VerifiedParams["projectId"])
	s.Equal(common.HexToAddress(usdc).Hex(), res.VerifiedParams["token"])
}

func (s *VerifierTestSuite) Test_Verify_UnknownOperation() {
	res := s.verifier.Verify(verifier.Kind("swap"), s.validPay())

	s.False(res.IsValid)
	s.True(s.hasDoubt(res, verifier.Critical, "operation", "unknown"))
}

func (s *VerifierTestSuite) Test_Verify_InvalidProjectID() {
	for _, id := range []any{"0", "-3", 0, "abc"} {
		p := s.validPay()
		p["projectId"] = id

		res := s.verifier.Verify(verifier.Pay, p)

		s.False(res.IsValid, "project id %v", id)
	}
}

func (s *VerifierTestSuite) Test_Verify_MissingRequired() {
	p := s.validPay()
	delete(p, "beneficiary")

	res := s.verifier.Verify(verifier.Pay, p)

	s.False(res.IsValid)
	s.True(s.hasDoubt(res, verifier.Critical, "beneficiary", "missing"))
}

func (s *VerifierTestSuite) Test_Verify_ZeroBeneficiaryIsCritical() {
	p := s.validPay()
	p["beneficiary"] = "0x0000000000000000000000000000000000000000"

	res := s.verifier.Verify(verifier.Pay, p)

	s.False(res.IsValid)
	s.True(s.hasDoubt(res, verifier.Critical, "beneficiary", "zero address"))
}

func (s *VerifierTestSuite) Test_Verify_MalformedAddress() {
	p := s.validPay()
	p["beneficiary"] = "0x6Dc7354cEA1b225B299Fe06b97aC12ac5066B89"

	res := s.verifier.Verify(verifier.Pay, p)

	s.False(res.IsValid)
	s.True(s.hasDoubt(res, verifier.Critical, "beneficiary", "invalid address"))
}

func (s *VerifierTestSuite) Test_Verify_ZeroAmountIsWarning() {
	p := s.validPay()
	p["amount"] = "0"
	p["minReturnedTokens"] = "0"

	res := s.verifier.Verify(verifier.Pay, p)

	s.True(res.IsValid)
	s.True(s.hasDoubt(res, verifier.Warning, "amount", "zero"))
	s.Len(res.Warnings, 1)
}

func (s *VerifierTestSuite) Test_Verify_LargeAmountIsWarning() {
	p := s.validPay()
	p["amount"] = new(big.Int).Exp(big.NewInt(10), big.NewInt(40), nil)

	res := s.verifier.Verify(verifier.Pay, p)

	s.True(res.IsValid)
	s.True(s.hasDoubt(res, verifier.Warning, "amount", "unusually large"))
}

func (s *VerifierTestSuite) Test_Verify_AmountBoundary() {
	max := new(big.Int).Lsh(big.NewInt(1), 256)
	r := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		offset := new(big.Int).Rand(r, max)
		above := new(big.Int).Add(max, offset)
		below := new(big.Int).Sub(max, new(big.Int).Add(offset, big.NewInt(1)))

		p := s.validPay()
		p["amount"] = above.String()
		res := s.verifier.Verify(verifier.Pay, p)
		s.True(s.hasDoubt(res, verifier.Critical, "amount", "exceeds maximum"))

		p["amount"] = below.String()
		res = s.verifier.Verify(verifier.Pay, p)
		s.False(s.hasDoubt(res, verifier.Critical, "amount", "exceeds maximum"))
	}
}

func (s *VerifierTestSuite) Test_Verify_CorrectsNearMissTerminal() {
	p := s.validPay()
	p["terminal"] = terminalAddress[:12] + "f" + terminalAddress[13:]

	res := s.verifier.Verify(verifier.Pay, p)

	s.True(res.IsValid)
	s.Len(res.Corrections, 1)
	s.Equal("JBMultiTerminal", res.Corrections[0].MatchedContract)
	s.Equal(common.HexToAddress(terminalAddress).Hex(), res.VerifiedParams["terminal"])
}

func (s *VerifierTestSuite) Test_Verify_UserAddressNeverCorrected() {
	p := s.validPay()
	p["beneficiary"] = terminalAddress[:12] + "f" + terminalAddress[13:]

	res := s.verifier.Verify(verifier.Pay, p)

	s.Empty(res.Corrections)
}

func (s *VerifierTestSuite) Test_Verify_QueueRules() {
	res := s.verifier.Verify(verifier.QueueRules, verifier.Params{
		"projectId":          uint64(4),
		"mustStartAtOrAfter": "1",
		"weight":             new(big.Int).Lsh(big.NewInt(1), 112),
		"weightCutPercent":   "1000000000",
		"reservedPercent":    "6000",
		"cashOutTaxRate":     "10000",
		"chainIds":           []uint64{1, 10, 10, 999},
	})

	s.False(res.IsValid)
	s.True(s.hasDoubt(res, verifier.Critical, "weight", "uint112"))
	s.True(s.hasDoubt(res, verifier.Warning, "mustStartAtOrAfter", "past"))
	s.True(s.hasDoubt(res, verifier.Warning, "weightCutPercent", "stops issuance"))
	s.True(s.hasDoubt(res, verifier.Warning, "reservedPercent", "50%"))
	s.True(s.hasDoubt(res, verifier.Warning, "cashOutTaxRate", "disables cash outs"))
	s.True(s.hasDoubt(res, verifier.Warning, "chainIds", "duplicate chain 10"))
	s.True(s.hasDoubt(res, verifier.Warning, "chainIds", "chain 999 not supported"))
	s.Len(res.Criticals(), 1)
}

func (s *VerifierTestSuite) Test_Verify_PercentAboveScaleIsCritical() {
	res := s.verifier.Verify(verifier.QueueRules, verifier.Params{
		"projectId":      "4",
		"weight":         "1000000000000000000000",
		"cashOutTaxRate": "10001",
	})

	s.False(res.IsValid)
	s.True(s.hasDoubt(res, verifier.Critical, "cashOutTaxRate", "exceeds maximum"))
}

func (s *VerifierTestSuite) Test_Verify_FutureTimestamp() {
	res := s.verifier.Verify(verifier.LaunchProject, verifier.Params{
		"owner":              user,
		"weight":             "1000000000000000000000",
		"mustStartAtOrAfter": fmt.Sprintf("%d", time.Now().Add(time.Hour).Unix()),
		"chainIds":           "1,10",
	})

	s.True(res.IsValid)
	s.Empty(res.Doubts)
	s.Equal("1,10", res.VerifiedParams["chainIds"])
}

func (s *VerifierTestSuite) Test_Verify_DeployTokenMissingSymbol() {
	res := s.verifier.Verify(verifier.DeployToken, verifier.Params{
		"projectId": "3",
		"name":      "Banny",
		"symbol":    " ",
	})

	s.False(res.IsValid)
	s.True(s.hasDoubt(res, verifier.Critical, "symbol", "missing"))
}

func (s *VerifierTestSuite) Test_Verify_IsValidMatchesCriticalDoubts() {
	r := rand.New(rand.NewSource(42))
	addresses := []any{user, "0x0000000000000000000000000000000000000000", "0x12", "", usdc, 42}
	amounts := []any{"0", "1", "-1", "abc", new(big.Int).Lsh(big.NewInt(1), 256).String(), "1000000000000000000000000000000", 1.5}
	ids := []any{"0", "1", "12", "-4", "x", uint64(99), nil}

	for i := 0; i < 500; i++ {
		p := verifier.Params{
			"projectId":         ids[r.Intn(len(ids))],
			"token":             addresses[r.Intn(len(addresses))],
			"amount":            amounts[r.Intn(len(amounts))],
			"beneficiary":       addresses[r.Intn(len(addresses))],
			"minReturnedTokens": amounts[r.Intn(len(amounts))],
		}

		res := s.verifier.Verify(verifier.Pay, p)

		critical := false
		for _, d := range res.Doubts {
			if d.Severity == verifier.Critical {
				critical = true
			}
		}
		s.Equal(!critical, res.IsValid, "params %v", p)
	}
}

func (s *VerifierTestSuite) Test_SortedChains() {
	s.Equal([]uint64{1, 10, 8453}, verifier.SortedChains([]uint64{8453, 1, 10, 1}))
}
