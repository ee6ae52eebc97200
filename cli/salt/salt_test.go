package salt_test

import (
	"testing"

	cliSalt "github.com/sprintertech/sprinter-omnichain/cli/salt"
	"github.com/sprintertech/sprinter-omnichain/salt"
	"github.com/stretchr/testify/suite"
)

type ParseProjectsTestSuite struct {
	suite.Suite
}

func TestRunParseProjectsTestSuite(t *testing.T) {
	suite.Run(t, new(ParseProjectsTestSuite))
}

func (s *ParseProjectsTestSuite) Test_ParseProjects() {
	projects, err := cliSalt.ParseProjects([]string{"1:5", "10:7"})

	s.Nil(err)
	s.Equal([]salt.ChainProject{{ChainID: 1, ProjectID: 5}, {ChainID: 10, ProjectID: 7}}, projects)
}

func (s *ParseProjectsTestSuite) Test_ParseProjects_MissingSeparator() {
	_, err := cliSalt.ParseProjects([]string{"15"})

	s.NotNil(err)
}

func (s *ParseProjectsTestSuite) Test_ParseProjects_InvalidNumber() {
	_, err := cliSalt.ParseProjects([]string{"1:x"})

	s.NotNil(err)
}
