// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"github.com/sprintertech/sprinter-omnichain/api"
	"github.com/sprintertech/sprinter-omnichain/api/handlers"
	"github.com/sprintertech/sprinter-omnichain/cache"
	"github.com/sprintertech/sprinter-omnichain/chains/evm"
	"github.com/sprintertech/sprinter-omnichain/chains/evm/calls/contracts"
	evmClient "github.com/sprintertech/sprinter-omnichain/chains/evm/client"
	"github.com/sprintertech/sprinter-omnichain/chains/evm/signature"
	"github.com/sprintertech/sprinter-omnichain/config"
	"github.com/sprintertech/sprinter-omnichain/health"
	"github.com/sprintertech/sprinter-omnichain/metatx"
	"github.com/sprintertech/sprinter-omnichain/metrics"
	"github.com/sprintertech/sprinter-omnichain/orchestrator"
	"github.com/sprintertech/sprinter-omnichain/price"
	"github.com/sprintertech/sprinter-omnichain/relay"
	"github.com/sprintertech/sprinter-omnichain/signer"
	"github.com/sprintertech/sprinter-omnichain/verifier"
	"go.opentelemetry.io/otel"
)

var Version string

// Chains holds everything the service derives from the chain configs.
type Chains struct {
	IDs         []uint64
	Contracts   map[uint64]orchestrator.ChainContracts
	Directories map[uint64]orchestrator.ControllerResolver
	Forwarders  map[uint64]metatx.Forwarder
	Health      map[uint64]health.BlockNumberReader
	Tokens      *config.TokenStore
	Registry    map[string]string

	clients []*evmClient.FallbackClient
}

func (c *Chains) Close() {
	for _, client := range c.clients {
		client.Close()
	}
}

// LoadConfig reads the configuration from the shared config url, then the
// environment or a file, depending on the flags.
func LoadConfig(ctx context.Context) (*config.Config, error) {
	var err error

	configFlag := viper.GetString(config.ConfigFlagName)
	configURL := viper.GetString(config.ConfigURLFlagName)

	var configuration *config.Config
	if configURL != "" {
		configuration, err = config.GetSharedConfigFromNetwork(ctx, configURL)
		if err != nil {
			return nil, err
		}
	}

	if strings.ToLower(configFlag) == "env" {
		return config.GetConfigFromENV(configuration)
	}
	return config.GetConfigFromFile(configFlag, configuration)
}

// NewChains parses every chain config and connects read clients. Nothing is
// dialed until the first read.
func NewChains(chainConfigs []map[string]interface{}) (*Chains, error) {
	c := &Chains{
		Contracts:   make(map[uint64]orchestrator.ChainContracts),
		Directories: make(map[uint64]orchestrator.ControllerResolver),
		Forwarders:  make(map[uint64]metatx.Forwarder),
		Health:      make(map[uint64]health.BlockNumberReader),
		Tokens:      config.NewTokenStore(),
		Registry:    make(map[string]string),
	}

	for _, chainConfig := range chainConfigs {
		switch chainConfig["type"] {
		case "evm":
			{
				config, err := evm.NewEVMConfig(chainConfig)
				if err != nil {
					return nil, err
				}
				chainID := *config.GeneralChainConfig.Id

				client, err := evmClient.NewFallbackClient(chainID, config.GeneralChainConfig.Endpoints, config.RPCTimeout, evmClient.DialEthClient)
				if err != nil {
					return nil, err
				}
				c.clients = append(c.clients, client)

				log.Info().Uint64("chain", chainID).Msgf("Registering EVM chain %s", config.GeneralChainConfig.Name)

				c.IDs = append(c.IDs, chainID)
				c.Health[chainID] = client
				c.Forwarders[chainID] = contracts.NewForwarderContract(client, config.Forwarder)
				c.Directories[chainID] = contracts.NewDirectoryContract(client, config.Directory)
				c.Contracts[chainID] = orchestrator.ChainContracts{
					Controller:      config.Controller,
					Terminal:        config.Terminal,
					SuckerRegistry:  config.SuckerRegistry,
					RevDeployer:     config.RevDeployer,
					SuckerDeployers: config.SuckerDeployers,
				}
				for symbol, token := range config.Tokens {
					c.Tokens.Add(chainID, symbol, token)
				}

				name := config.GeneralChainConfig.Name
				c.Registry[fmt.Sprintf("JBController (%s)", name)] = config.Controller.Hex()
				c.Registry[fmt.Sprintf("JBMultiTerminal (%s)", name)] = config.Terminal.Hex()
				c.Registry[fmt.Sprintf("JBDirectory (%s)", name)] = config.Directory.Hex()
				c.Registry[fmt.Sprintf("ERC2771Forwarder (%s)", name)] = config.Forwarder.Hex()
			}
		default:
			return nil, fmt.Errorf("type '%s' not recognized", chainConfig["type"])
		}
	}

	for name, address := range c.Tokens.RegistryEntries() {
		c.Registry[name] = address
	}
	return c, nil
}

// NewVerifier builds a verifier correcting addresses against the configured
// contracts, tokens and the additional registry entries.
func NewVerifier(chains *Chains, extra map[string]string) (*verifier.Verifier, error) {
	entries := make(map[string]string)
	for name, address := range chains.Registry {
		entries[name] = address
	}
	for name, address := range extra {
		entries[name] = address
	}

	registry, err := verifier.NewRegistry(entries)
	if err != nil {
		return nil, err
	}
	return verifier.NewVerifier(registry, chains.IDs), nil
}

func Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	configuration, err := LoadConfig(ctx)
	panicOnError(err)

	config.ConfigureLogger(configuration.ServiceConfig.LogLevel, os.Stdout)

	log.Info().Msg("Successfully loaded configuration")

	chains, err := NewChains(configuration.ChainConfigs)
	panicOnError(err)
	defer chains.Close()

	v, err := NewVerifier(chains, configuration.ServiceConfig.Registry)
	panicOnError(err)

	executions := cache.NewExecutionCache(ctx, configuration.ServiceConfig.BundleTTL)
	omnichainMetrics, err := metrics.NewOmnichainMetrics(
		ctx,
		otel.GetMeterProvider().Meter("omnichain-metric-provider"),
		configuration.ServiceConfig.Env,
		configuration.ServiceConfig.Id,
		Version,
		executions.Len)
	panicOnError(err)

	relayConfig := configuration.ServiceConfig.Relay
	relayClient := relay.NewClient(relayConfig.Url, relayConfig.ApiKey, relayConfig.Timeout)

	domain := signature.Domain{
		Name:    configuration.ServiceConfig.ForwarderDomain.Name,
		Version: configuration.ServiceConfig.ForwarderDomain.Version,
	}
	wrapper := metatx.NewSigner(chains.Forwarders, domain, metatx.WithGas(configuration.ServiceConfig.MetaTxGas))

	var prepaidSigner signer.TypedDataSigner
	if configuration.ServiceConfig.SignerKey != "" {
		keySigner, err := signer.NewKeySignerFromHex(configuration.ServiceConfig.SignerKey)
		panicOnError(err)
		prepaidSigner = keySigner
		log.Info().Msgf("Prepaid bundles are signed by %s", keySigner.Address().Hex())
	}

	orch := orchestrator.NewOrchestrator(
		v,
		relayClient,
		wrapper,
		chains.Directories,
		chains.Contracts,
		orchestrator.WithMode(orchestrator.Mode(configuration.ServiceConfig.Mode)),
		orchestrator.WithPollInterval(configuration.ServiceConfig.PollInterval),
		orchestrator.WithMetrics(omnichainMetrics),
	)

	priceAPI := price.NewCoinmarketcapAPI(
		configuration.ServiceConfig.CoinmarketcapConfig.Url,
		configuration.ServiceConfig.CoinmarketcapConfig.ApiKey)
	estimator := price.NewPaymentEstimator(priceAPI, chains.Tokens)

	go health.StartHealthEndpoint(configuration.ServiceConfig.HealthPort, chains.Health)

	bundleHandler := handlers.NewBundleHandler(orch, executions, prepaidSigner, estimator)
	verifyHandler := handlers.NewVerifyHandler(v, orch)
	go api.Serve(ctx, configuration.ServiceConfig.ApiAddr, bundleHandler, verifyHandler)

	sysErr := make(chan os.Signal, 1)
	signal.Notify(sysErr,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGHUP,
		syscall.SIGQUIT)

	name := viper.GetString("name")
	log.Info().Msgf("Started omnichain service: %s in %s mode. Version: v%s", name, configuration.ServiceConfig.Mode, Version)

	sig := <-sysErr
	log.Info().Msgf("terminating got ` [%v] signal", sig)
	return nil
}

func panicOnError(err error) {
	if err != nil {
		panic(err)
	}
}
