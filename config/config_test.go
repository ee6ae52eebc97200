package config_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sprintertech/sprinter-omnichain/config"
	"github.com/stretchr/testify/suite"
)

type GetConfigTestSuite struct {
	suite.Suite
}

func TestRunGetConfigTestSuite(t *testing.T) {
	suite.Run(t, new(GetConfigTestSuite))
}

func (s *GetConfigTestSuite) writeConfig(content string) string {
	f, err := os.CreateTemp(s.T().TempDir(), "config*.json")
	s.Nil(err)
	_, err = f.WriteString(content)
	s.Nil(err)
	s.Nil(f.Close())
	return f.Name()
}

func (s *GetConfigTestSuite) Test_FromFile_AppliesDefaults() {
	path := s.writeConfig(`{
		"service": {
			"relay": {"url": "https://relay.example", "apiKey": "key"},
			"registry": {"JBController": "0x0000000000000000000000000000000000000c01"}
		},
		"chains": [
			{"id": 1, "name": "mainnet", "type": "evm", "endpoints": ["https://rpc.example"]}
		]
	}`)

	c, err := config.GetConfigFromFile(path, nil)

	s.Nil(err)
	s.Equal("https://relay.example", c.ServiceConfig.Relay.Url)
	s.Equal("key", c.ServiceConfig.Relay.ApiKey)
	s.Equal(10*time.Second, c.ServiceConfig.Relay.Timeout)
	s.Equal(2*time.Second, c.ServiceConfig.PollInterval)
	s.Equal(time.Hour, c.ServiceConfig.BundleTTL)
	s.Equal(config.MODE_SPONSORED, c.ServiceConfig.Mode)
	s.Equal(zerolog.InfoLevel, c.ServiceConfig.LogLevel)
	s.Equal(":3000", c.ServiceConfig.ApiAddr)
	s.Equal("Juicebox", c.ServiceConfig.ForwarderDomain.Name)
	s.Equal(uint64(2_000_000), c.ServiceConfig.MetaTxGas)
	s.Len(c.ServiceConfig.Registry, 1)
	s.Len(c.ChainConfigs, 1)
}

func (s *GetConfigTestSuite) Test_FromFile_MissingFile() {
	_, err := config.GetConfigFromFile("/does/not/exist.json", nil)

	s.NotNil(err)
}

func (s *GetConfigTestSuite) Test_FromFile_MissingRelay() {
	path := s.writeConfig(`{"service": {}}`)

	_, err := config.GetConfigFromFile(path, nil)

	s.NotNil(err)
}

func (s *GetConfigTestSuite) Test_FromFile_PrepaidRequiresSignerKey() {
	path := s.writeConfig(`{"service": {"mode": "prepaid", "relay": {"url": "https://relay.example"}}}`)

	_, err := config.GetConfigFromFile(path, nil)

	s.NotNil(err)
}

func (s *GetConfigTestSuite) Test_FromFile_UnknownMode() {
	path := s.writeConfig(`{"service": {"mode": "free", "relay": {"url": "https://relay.example"}}}`)

	_, err := config.GetConfigFromFile(path, nil)

	s.NotNil(err)
}

func (s *GetConfigTestSuite) Test_FromFile_MergesSharedConfig() {
	shared := &config.Config{
		ServiceConfig: config.ServiceConfig{
			Relay:           config.RelayConfig{Url: "https://shared.example"},
			ForwarderDomain: config.DomainConfig{Name: "Shared", Version: "2"},
			Registry:        map[string]string{"JBDirectory": "0x0000000000000000000000000000000000000d01"},
		},
		ChainConfigs: []map[string]interface{}{
			{"id": 1, "name": "mainnet", "endpoints": []string{"https://shared-rpc.example"}},
			{"id": 10, "name": "optimism"},
		},
	}
	path := s.writeConfig(`{
		"service": {
			"forwarderDomain": {"version": "3"},
			"registry": {"JBController": "0x0000000000000000000000000000000000000c01"}
		},
		"chains": [{"id": 1, "endpoints": ["https://local-rpc.example"]}]
	}`)

	c, err := config.GetConfigFromFile(path, shared)

	s.Nil(err)
	s.Equal("https://shared.example", c.ServiceConfig.Relay.Url)
	s.Equal(config.DomainConfig{Name: "Shared", Version: "3"}, c.ServiceConfig.ForwarderDomain)
	s.Len(c.ServiceConfig.Registry, 2)
	s.Len(c.ChainConfigs, 2)
	s.Equal("mainnet", c.ChainConfigs[0]["name"])
	s.Equal([]interface{}{"https://local-rpc.example"}, c.ChainConfigs[0]["endpoints"])
}

func (s *GetConfigTestSuite) Test_FromENV() {
	s.T().Setenv("OMNICHAIN_RELAY_URL", "https://relay.example")
	s.T().Setenv("OMNICHAIN_POLLINTERVAL", "5")
	s.T().Setenv("OMNICHAIN_LOGLEVEL", "debug")
	s.T().Setenv("OMNICHAIN_CHAINS", `[{"id": 10, "name": "optimism", "endpoints": ["https://rpc.example"]}]`)
	s.T().Setenv("OMNICHAIN_REGISTRY", `{"JBController": "0x0000000000000000000000000000000000000c01"}`)

	c, err := config.GetConfigFromENV(nil)

	s.Nil(err)
	s.Equal("https://relay.example", c.ServiceConfig.Relay.Url)
	s.Equal(5*time.Second, c.ServiceConfig.PollInterval)
	s.Equal(zerolog.DebugLevel, c.ServiceConfig.LogLevel)
	s.Len(c.ChainConfigs, 1)
	s.Equal("0x0000000000000000000000000000000000000c01", c.ServiceConfig.Registry["JBController"])
}

func (s *GetConfigTestSuite) Test_FromENV_InvalidChains() {
	s.T().Setenv("OMNICHAIN_RELAY_URL", "https://relay.example")
	s.T().Setenv("OMNICHAIN_CHAINS", `{`)

	_, err := config.GetConfigFromENV(nil)

	s.NotNil(err)
}

func (s *GetConfigTestSuite) Test_SharedConfigFromNetwork() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service": {"relay": {"url": "https://shared.example"}}, "chains": [{"id": 1}]}`))
	}))
	defer server.Close()

	c, err := config.GetSharedConfigFromNetwork(context.Background(), server.URL)

	s.Nil(err)
	s.Equal("https://shared.example", c.ServiceConfig.Relay.Url)
	s.Len(c.ChainConfigs, 1)
}

func (s *GetConfigTestSuite) Test_SharedConfigFromNetwork_ErrorStatus() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := config.GetSharedConfigFromNetwork(context.Background(), server.URL)

	s.NotNil(err)
}
