package verifier_test

import (
	"strings"
	"testing"

	"github.com/sprintertech/sprinter-omnichain/verifier"
	"github.com/stretchr/testify/suite"
)

const (
	terminalAddress   = "0xdb9644369c79c3633cde70d2df50d827d7dc7dbc"
	controllerAddress = "0xb291844f213047eb9e1621ae555b1eae6700d553"
	registryAddress   = "0x696f2c5bcb5a5b4f1b0a2f3d3a6f3c8e1f0e9f5a"
)

type RegistryTestSuite struct {
	suite.Suite

	registry *verifier.Registry
}

func TestRunRegistryTestSuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func (s *RegistryTestSuite) SetupTest() {
	r, err := verifier.NewRegistry(map[string]string{
		"JBMultiTerminal":  terminalAddress,
		"JBController":     controllerAddress,
		"JBSuckerRegistry": registryAddress,
	})
	s.Nil(err)
	s.registry = r
}

func (s *RegistryTestSuite) Test_NewRegistry_InvalidAddress() {
	_, err := verifier.NewRegistry(map[string]string{"JBController": "0x1234"})

	s.NotNil(err)
}

func (s *RegistryTestSuite) Test_Correct_CanonicalAddressUntouched() {
	for _, a := range []string{terminalAddress, controllerAddress, registryAddress} {
		_, ok := s.registry.Correct(a)
		s.False(ok)

		_, ok = s.registry.Correct(strings.ToUpper(a[2:]))
		s.False(ok)
	}
}

func (s *RegistryTestSuite) Test_Correct_SingleSubstitution() {
	corrupted := terminalAddress[:10] + "0" + terminalAddress[11:]

	c, ok := s.registry.Correct(corrupted)

	s.True(ok)
	s.Equal(corrupted, c.OriginalAddress)
	s.Equal(strings.ToLower(c.CorrectedAddress), terminalAddress)
	s.Equal("JBMultiTerminal", c.MatchedContract)
}

func (s *RegistryTestSuite) Test_Correct_MissingCharacter() {
	corrupted := controllerAddress[:20] + controllerAddress[21:]

	c, ok := s.registry.Correct(corrupted)

	s.True(ok)
	s.Equal("JBController", c.MatchedContract)
}

func (s *RegistryTestSuite) Test_Correct_TooDistant() {
	corrupted := "0xffff" + terminalAddress[6:]

	_, ok := s.registry.Correct(corrupted)

	s.False(ok)
}

func (s *RegistryTestSuite) Test_Correct_TieIsNotCorrected() {
	a := "0x1111111111111111111111111111111111111111"
	b := "0x1111111111111111111111111111111111111133"
	r, err := verifier.NewRegistry(map[string]string{"A": a, "B": b})
	s.Nil(err)

	// one substitution away from each entry
	_, ok := r.Correct("0x1111111111111111111111111111111111111131")

	s.False(ok)
}

func (s *RegistryTestSuite) Test_Correct_SharedAddressIsNotAmbiguous() {
	r, err := verifier.NewRegistry(map[string]string{
		"JBMultiTerminal":   terminalAddress,
		"JBMultiTerminal5_1": terminalAddress,
	})
	s.Nil(err)

	c, ok := r.Correct(terminalAddress[:41] + "0")

	s.True(ok)
	s.Equal("JBMultiTerminal/JBMultiTerminal5_1", c.MatchedContract)
}

func (s *RegistryTestSuite) Test_Correct_NeverMapsEntriesOntoEachOther() {
	near := "0xdb9644369c79c3633cde70d2df50d827d7dc7dbd"
	r, err := verifier.NewRegistry(map[string]string{
		"JBMultiTerminal": terminalAddress,
		"Other":           near,
	})
	s.Nil(err)

	_, ok := r.Correct(terminalAddress)
	s.False(ok)
	_, ok = r.Correct(near)
	s.False(ok)
	s.True(r.Contains(near))
}
