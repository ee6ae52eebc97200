package config

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/imdario/mergo"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	ConfigFlagName    = "config"
	ConfigURLFlagName = "config-url"
	ENV_PREFIX        = "OMNICHAIN"
	MODE_SPONSORED    = "sponsored"
	MODE_PREPAID      = "prepaid"
)

var envKeys = []string{
	"id", "env", "logLevel", "apiAddr", "healthPort", "mode", "signerKey",
	"pollInterval", "bundleTTL", "metaTxGas",
	"relay.url", "relay.apiKey", "relay.timeout",
	"forwarderDomain.name", "forwarderDomain.version",
	"coinmarketcap.url", "coinmarketcap.apiKey",
}

// BindFlags binds the flags every command reads through viper.
func BindFlags(rootCMD *cobra.Command) {
	rootCMD.PersistentFlags().String(ConfigFlagName, ".", "Path to JSON configuration file or `env` to read it from the environment")
	_ = viper.BindPFlag(ConfigFlagName, rootCMD.PersistentFlags().Lookup(ConfigFlagName))

	rootCMD.PersistentFlags().String(ConfigURLFlagName, "", "URL of shared configuration")
	_ = viper.BindPFlag(ConfigURLFlagName, rootCMD.PersistentFlags().Lookup(ConfigURLFlagName))
}

type Config struct {
	ServiceConfig ServiceConfig
	ChainConfigs  []map[string]interface{}
}

type RawConfig struct {
	ServiceConfig RawServiceConfig         `mapstructure:"service" json:"service"`
	ChainConfigs  []map[string]interface{} `mapstructure:"chains" json:"chains"`
}

type ServiceConfig struct {
	Id                  string
	Env                 string
	LogLevel            zerolog.Level
	ApiAddr             string
	HealthPort          uint16
	Mode                string
	SignerKey           string
	PollInterval        time.Duration
	BundleTTL           time.Duration
	MetaTxGas           uint64
	Relay               RelayConfig
	ForwarderDomain     DomainConfig
	CoinmarketcapConfig CoinmarketcapConfig
	// contract name -> canonical address
	Registry map[string]string
}

type RelayConfig struct {
	Url     string
	ApiKey  string
	Timeout time.Duration
}

type DomainConfig struct {
	Name    string `mapstructure:"name" json:"name" default:"Juicebox"`
	Version string `mapstructure:"version" json:"version" default:"1"`
}

type CoinmarketcapConfig struct {
	Url    string `mapstructure:"url" json:"url" default:"https://pro-api.coinmarketcap.com"`
	ApiKey string `mapstructure:"apiKey" json:"apiKey"`
}

type RawRelayConfig struct {
	Url     string `mapstructure:"url" json:"url"`
	ApiKey  string `mapstructure:"apiKey" json:"apiKey"`
	Timeout uint64 `mapstructure:"timeout" json:"timeout" default:"10"`
}

type RawServiceConfig struct {
	Id                  string              `mapstructure:"id" json:"id"`
	Env                 string              `mapstructure:"env" json:"env" default:"local"`
	LogLevel            string              `mapstructure:"logLevel" json:"logLevel" default:"info"`
	ApiAddr             string              `mapstructure:"apiAddr" json:"apiAddr" default:":3000"`
	HealthPort          uint16              `mapstructure:"healthPort" json:"healthPort" default:"9001"`
	Mode                string              `mapstructure:"mode" json:"mode" default:"sponsored"`
	SignerKey           string              `mapstructure:"signerKey" json:"signerKey"`
	PollInterval        uint64              `mapstructure:"pollInterval" json:"pollInterval" default:"2"`
	BundleTTL           uint64              `mapstructure:"bundleTTL" json:"bundleTTL" default:"3600"`
	MetaTxGas           uint64              `mapstructure:"metaTxGas" json:"metaTxGas" default:"2000000"`
	Relay               RawRelayConfig      `mapstructure:"relay" json:"relay"`
	ForwarderDomain     DomainConfig        `mapstructure:"forwarderDomain" json:"forwarderDomain"`
	CoinmarketcapConfig CoinmarketcapConfig `mapstructure:"coinmarketcap" json:"coinmarketcap"`
	Registry            map[string]string   `mapstructure:"registry" json:"registry"`
}

func (c *RawServiceConfig) Validate() error {
	if c.Relay.Url == "" {
		return fmt.Errorf("required field service.relay.url empty")
	}
	switch c.Mode {
	case MODE_SPONSORED:
	case MODE_PREPAID:
		if c.SignerKey == "" {
			return fmt.Errorf("prepaid mode requires service.signerKey")
		}
	default:
		return fmt.Errorf("unknown mode %s", c.Mode)
	}
	return nil
}

// GetConfigFromFile reads a JSON or YAML configuration file. Fields missing
// from the file are taken from config, usually the shared configuration.
func GetConfigFromFile(path string, config *Config) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(strings.TrimPrefix(filepath.Ext(path), "."))
	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	var rawConfig RawConfig
	err = v.Unmarshal(&rawConfig)
	if err != nil {
		return nil, err
	}

	return processRawConfig(rawConfig, config)
}

// GetConfigFromENV reads the service configuration from OMNICHAIN_ prefixed
// environment variables, e.g. OMNICHAIN_RELAY_URL. Chains and the registry are
// JSON encoded in OMNICHAIN_CHAINS and OMNICHAIN_REGISTRY.
func GetConfigFromENV(config *Config) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(ENV_PREFIX)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}

	var rawConfig RawConfig
	err := v.Unmarshal(&rawConfig.ServiceConfig)
	if err != nil {
		return nil, err
	}

	if chains := os.Getenv(ENV_PREFIX + "_CHAINS"); chains != "" {
		err = json.Unmarshal([]byte(chains), &rawConfig.ChainConfigs)
		if err != nil {
			return nil, fmt.Errorf("failed decoding %s_CHAINS: %w", ENV_PREFIX, err)
		}
	}
	if registry := os.Getenv(ENV_PREFIX + "_REGISTRY"); registry != "" {
		err = json.Unmarshal([]byte(registry), &rawConfig.ServiceConfig.Registry)
		if err != nil {
			return nil, fmt.Errorf("failed decoding %s_REGISTRY: %w", ENV_PREFIX, err)
		}
	}

	return processRawConfig(rawConfig, config)
}

// GetSharedConfigFromNetwork fetches configuration shared between deployments.
// It is not validated since local configuration completes it.
func GetSharedConfigFromNetwork(ctx context.Context, url string) (*Config, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("shared config request failed with status code %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var rawConfig RawConfig
	err = json.Unmarshal(body, &rawConfig)
	if err != nil {
		return nil, err
	}

	return &Config{
		ServiceConfig: ServiceConfig{
			Relay: RelayConfig{
				Url: rawConfig.ServiceConfig.Relay.Url,
			},
			ForwarderDomain: rawConfig.ServiceConfig.ForwarderDomain,
			Registry:        rawConfig.ServiceConfig.Registry,
		},
		ChainConfigs: rawConfig.ChainConfigs,
	}, nil
}

func processRawConfig(rawConfig RawConfig, config *Config) (*Config, error) {
	if config == nil {
		config = &Config{}
	}

	if config.ServiceConfig.Relay.Url != "" && rawConfig.ServiceConfig.Relay.Url == "" {
		rawConfig.ServiceConfig.Relay.Url = config.ServiceConfig.Relay.Url
	}
	if err := mergo.Merge(&rawConfig.ServiceConfig.ForwarderDomain, config.ServiceConfig.ForwarderDomain); err != nil {
		return nil, err
	}
	for name, address := range config.ServiceConfig.Registry {
		if rawConfig.ServiceConfig.Registry == nil {
			rawConfig.ServiceConfig.Registry = make(map[string]string)
		}
		if _, ok := rawConfig.ServiceConfig.Registry[name]; !ok {
			rawConfig.ServiceConfig.Registry[name] = address
		}
	}

	if err := defaults.Set(&rawConfig.ServiceConfig); err != nil {
		return nil, err
	}
	if err := rawConfig.ServiceConfig.Validate(); err != nil {
		return nil, err
	}

	chains := mergeChainConfigs(config.ChainConfigs, rawConfig.ChainConfigs)

	logLevel, err := zerolog.ParseLevel(rawConfig.ServiceConfig.LogLevel)
	if err != nil {
		log.Warn().Msgf("Invalid log level %s, defaulting to info", rawConfig.ServiceConfig.LogLevel)
		logLevel = zerolog.InfoLevel
	}

	raw := rawConfig.ServiceConfig
	// nolint:gosec
	return &Config{
		ServiceConfig: ServiceConfig{
			Id:           raw.Id,
			Env:          raw.Env,
			LogLevel:     logLevel,
			ApiAddr:      raw.ApiAddr,
			HealthPort:   raw.HealthPort,
			Mode:         raw.Mode,
			SignerKey:    raw.SignerKey,
			PollInterval: time.Duration(raw.PollInterval) * time.Second,
			BundleTTL:    time.Duration(raw.BundleTTL) * time.Second,
			MetaTxGas:    raw.MetaTxGas,
			Relay: RelayConfig{
				Url:     raw.Relay.Url,
				ApiKey:  raw.Relay.ApiKey,
				Timeout: time.Duration(raw.Relay.Timeout) * time.Second,
			},
			ForwarderDomain:     raw.ForwarderDomain,
			CoinmarketcapConfig: raw.CoinmarketcapConfig,
			Registry:            raw.Registry,
		},
		ChainConfigs: chains,
	}, nil
}

// mergeChainConfigs overrides shared chain configs with local ones of the same id.
func mergeChainConfigs(shared []map[string]interface{}, local []map[string]interface{}) []map[string]interface{} {
	merged := make([]map[string]interface{}, 0, len(shared)+len(local))
	byID := make(map[string]int)
	for _, c := range shared {
		copied := make(map[string]interface{})
		for k, v := range c {
			copied[k] = v
		}
		byID[fmt.Sprint(c["id"])] = len(merged)
		merged = append(merged, copied)
	}

	for _, c := range local {
		i, ok := byID[fmt.Sprint(c["id"])]
		if !ok {
			merged = append(merged, c)
			continue
		}

		for k, v := range c {
			merged[i][k] = v
		}
	}

	return merged
}

// ConfigureLogger sets the global log level and writes timestamped logs to out.
func ConfigureLogger(level zerolog.Level, out io.Writer) {
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}
