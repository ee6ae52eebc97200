package price_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/sprintertech/sprinter-omnichain/price"
	"github.com/stretchr/testify/suite"
)

type CoinmarketcapAPITestSuite struct {
	suite.Suite
	api        *price.CoinmarketcapAPI
	testServer *httptest.Server
	requests   atomic.Int32
}

func TestRunCoinmarketcapAPITestSuite(t *testing.T) {
	suite.Run(t, new(CoinmarketcapAPITestSuite))
}

func (s *CoinmarketcapAPITestSuite) SetupTest() {
	s.requests.Store(0)
	s.testServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		if r.URL.Path == "/v1/cryptocurrency/quotes/latest" && r.URL.Query().Get("symbol") == "ETH" {
			var response price.CoinmarketcapResponse
			_ = json.Unmarshal([]byte(`{"status": {"error_code": 0}, "data": {"ETH": {"quote": {"USD": {"price": 2500.5}}}}}`), &response)
			respBytes, _ := json.Marshal(response)
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(respBytes)
			return
		}

		w.WriteHeader(http.StatusBadRequest)
	}))

	s.api = price.NewCoinmarketcapAPI(s.testServer.URL, "test-api-key")
}

func (s *CoinmarketcapAPITestSuite) TearDownTest() {
	s.testServer.Close()
}

func (s *CoinmarketcapAPITestSuite) TestTokenPrice_Success() {
	price, err := s.api.TokenPrice(context.Background(), "ETH")

	s.Nil(err)
	s.Equal(2500.5, price)
}

func (s *CoinmarketcapAPITestSuite) TestTokenPrice_Cached() {
	_, err := s.api.TokenPrice(context.Background(), "ETH")
	s.Nil(err)
	_, err = s.api.TokenPrice(context.Background(), "eth")
	s.Nil(err)

	s.Equal(int32(1), s.requests.Load())
}

func (s *CoinmarketcapAPITestSuite) TestTokenPrice_InvalidSymbol() {
	price, err := s.api.TokenPrice(context.Background(), "INVALID")
	s.NotNil(err)
	s.Equal(float64(0), price)
}

func (s *CoinmarketcapAPITestSuite) TestTokenPrice_APIError() {
	s.testServer.Config.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"status": {"error_code": 500, "error_message": "Internal Server Error"}}`)
	})

	price, err := s.api.TokenPrice(context.Background(), "ETH")
	s.NotNil(err)
	s.Contains(err.Error(), "HTTP request failed with status code 500")
	s.Equal(float64(0), price)
}

func (s *CoinmarketcapAPITestSuite) TestUsdValue() {
	usd, err := s.api.UsdValue(context.Background(), "ETH", "2000000000000000000", 18)

	s.Nil(err)
	s.InDelta(5001.0, usd, 0.0001)
}

func (s *CoinmarketcapAPITestSuite) TestUsdValue_InvalidAmount() {
	_, err := s.api.UsdValue(context.Background(), "ETH", "two", 18)

	s.NotNil(err)
}
