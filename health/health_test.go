package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sprintertech/sprinter-omnichain/health"
	"github.com/stretchr/testify/suite"
)

type blockReader struct {
	block uint64
	err   error
}

func (b blockReader) BlockNumber(ctx context.Context) (uint64, error) {
	return b.block, b.err
}

type HealthTestSuite struct {
	suite.Suite
}

func TestRunHealthTestSuite(t *testing.T) {
	suite.Run(t, new(HealthTestSuite))
}

func (s *HealthTestSuite) Test_Check_AllHealthy() {
	report := health.Check(context.Background(), map[uint64]health.BlockNumberReader{
		10: blockReader{block: 200},
		1:  blockReader{block: 100},
	})

	s.True(report.Healthy)
	s.Equal([]health.ChainHealth{
		{ChainID: 1, BlockNumber: 100},
		{ChainID: 10, BlockNumber: 200},
	}, report.Chains)
}

func (s *HealthTestSuite) Test_Handler_UnhealthyChain() {
	handler := health.Handler(map[uint64]health.BlockNumberReader{
		1:  blockReader{block: 100},
		10: blockReader{err: errors.New("all endpoints failed")},
	}, time.Second)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	recorder := httptest.NewRecorder()
	handler(recorder, req)

	s.Equal(http.StatusServiceUnavailable, recorder.Code)
	report := health.Report{}
	err := json.Unmarshal(recorder.Body.Bytes(), &report)
	s.Nil(err)
	s.False(report.Healthy)
	s.Equal("all endpoints failed", report.Chains[1].Error)
}

func (s *HealthTestSuite) Test_Handler_NoChains() {
	handler := health.Handler(map[uint64]health.BlockNumberReader{}, time.Second)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	recorder := httptest.NewRecorder()
	handler(recorder, req)

	s.Equal(http.StatusOK, recorder.Code)
}
