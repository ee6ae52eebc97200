package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sprintertech/sprinter-omnichain/api/handlers"
	"github.com/sprintertech/sprinter-omnichain/orchestrator"
	"github.com/sprintertech/sprinter-omnichain/verifier"
	"github.com/stretchr/testify/suite"
)

type VerifyHandlerTestSuite struct {
	suite.Suite

	handler *handlers.VerifyHandler
}

func TestRunVerifyHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(VerifyHandlerTestSuite))
}

func (s *VerifyHandlerTestSuite) SetupTest() {
	v := verifier.NewVerifier(nil, []uint64{1, 10})
	orch := orchestrator.NewOrchestrator(v, nil, nil, nil, nil)
	s.handler = handlers.NewVerifyHandler(v, orch)
}

func (s *VerifyHandlerTestSuite) verify(kind string, body string) (*httptest.ResponseRecorder, verifier.Result) {
	req := httptest.NewRequest(http.MethodPost, "/v1/verify/"+kind, strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{
		"kind": kind,
	})
	recorder := httptest.NewRecorder()

	s.handler.HandleRequest(recorder, req)

	result := verifier.Result{}
	if recorder.Code == http.StatusOK {
		err := json.Unmarshal(recorder.Body.Bytes(), &result)
		s.Nil(err)
	}
	return recorder, result
}

func (s *VerifyHandlerTestSuite) Test_HandleRequest_PayParams() {
	recorder, result := s.verify("pay", `{
		"projectId": 5,
		"token": "0x000000000000000000000000000000000000EEEe",
		"amount": "1000000000000000000",
		"beneficiary": "0x6Dc7354cEA1b225B299Fe06b97aC12ac5066B899"
	}`)

	s.Equal(http.StatusOK, recorder.Code)
	s.True(result.IsValid)
	s.Equal("5", result.VerifiedParams["projectId"])
}

func (s *VerifyHandlerTestSuite) Test_HandleRequest_InvalidPayParams() {
	recorder, result := s.verify("cash-out", `{"projectId": 0}`)

	s.Equal(http.StatusOK, recorder.Code)
	s.False(result.IsValid)
	s.NotEmpty(result.Doubts)
}

func (s *VerifyHandlerTestSuite) Test_HandleRequest_Intent() {
	recorder, result := s.verify("deploy-token", `{
		"projects": [{"chainId": 1, "projectId": 5}, {"chainId": 10, "projectId": 0}],
		"name": "Bananas",
		"symbol": "BAN"
	}`)

	s.Equal(http.StatusOK, recorder.Code)
	s.False(result.IsValid)
}

func (s *VerifyHandlerTestSuite) Test_HandleRequest_UnknownKind() {
	recorder, _ := s.verify("mint", `{}`)

	s.Equal(http.StatusBadRequest, recorder.Code)
}

func (s *VerifyHandlerTestSuite) Test_HandleRequest_InvalidBody() {
	recorder, _ := s.verify("pay", `[`)

	s.Equal(http.StatusBadRequest, recorder.Code)
}
