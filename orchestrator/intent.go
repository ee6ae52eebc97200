package orchestrator

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sprintertech/sprinter-omnichain/bundle"
	"github.com/sprintertech/sprinter-omnichain/chains/evm/calls/contracts"
	"github.com/sprintertech/sprinter-omnichain/metatx"
	"github.com/sprintertech/sprinter-omnichain/salt"
	"github.com/sprintertech/sprinter-omnichain/verifier"
)

const (
	NATIVE_DECIMALS = 18
	// currency id of the native token, uint32(uint160(NATIVE_TOKEN))
	NATIVE_CURRENCY   = 61166
	DEFAULT_MIN_GAS   = 200_000
	DEFAULT_RULE_TIME = 0
)

var DEFAULT_MIN_BRIDGE_AMOUNT = big.NewInt(10_000_000_000_000_000)

// Intent is a high level operation executed as one call per chain.
type Intent interface {
	Kind() verifier.Kind
	// Params returns the argument sets checked before anything is built.
	// Intents touching several projects return one set per project.
	Params() []verifier.Params
	// Targets lists the participating chains in caller order.
	Targets() []bundle.ChainState
	build(ctx context.Context, env *buildEnv) ([]metatx.Call, error)
}

type ChainContracts struct {
	Controller     common.Address
	Terminal       common.Address
	SuckerRegistry common.Address
	RevDeployer    common.Address
	// remote chain id -> sucker deployer on this chain
	SuckerDeployers map[uint64]common.Address
}

type buildEnv struct {
	contracts    map[uint64]ChainContracts
	verified     map[string]string
	now          func() time.Time
	controllerOf func(ctx context.Context, projects []salt.ChainProject) (map[uint64]common.Address, error)
}

func (e *buildEnv) chain(chainID uint64) (ChainContracts, error) {
	c, ok := e.contracts[chainID]
	if !ok {
		return ChainContracts{}, fmt.Errorf("chain %d not configured", chainID)
	}
	return c, nil
}

// address returns the verified (and possibly corrected) address for field,
// or fallback when the caller did not set it.
func (e *buildEnv) address(field string, fallback common.Address) common.Address {
	v, ok := e.verified[field]
	if !ok || !common.IsHexAddress(v) {
		return fallback
	}
	return common.HexToAddress(v)
}

type Ruleset struct {
	MustStartAtOrAfter uint64   `json:"mustStartAtOrAfter"`
	Duration           uint32   `json:"duration"`
	Weight             *big.Int `json:"weight"`
	WeightCutPercent   uint32   `json:"weightCutPercent"`
	ReservedPercent    uint16   `json:"reservedPercent"`
	CashOutTaxRate     uint16   `json:"cashOutTaxRate"`
	BaseCurrency       uint32   `json:"baseCurrency"`
}

func (r Ruleset) params(p verifier.Params) verifier.Params {
	p["mustStartAtOrAfter"] = r.MustStartAtOrAfter
	p["weight"] = r.Weight
	p["weightCutPercent"] = r.WeightCutPercent
	p["reservedPercent"] = r.ReservedPercent
	p["cashOutTaxRate"] = r.CashOutTaxRate
	return p
}

func (r Ruleset) config() contracts.JBRulesetConfig {
	currency := r.BaseCurrency
	if currency == 0 {
		currency = NATIVE_CURRENCY
	}

	return contracts.JBRulesetConfig{
		MustStartAtOrAfter: new(big.Int).SetUint64(r.MustStartAtOrAfter),
		Duration:           r.Duration,
		Weight:             r.Weight,
		WeightCutPercent:   r.WeightCutPercent,
		Metadata: contracts.JBRulesetMetadata{
			ReservedPercent: r.ReservedPercent,
			CashOutTaxRate:  r.CashOutTaxRate,
			BaseCurrency:    currency,
		},
	}
}

type TokenMapping struct {
	LocalToken      string   `json:"localToken"`
	RemoteToken     string   `json:"remoteToken"`
	MinGas          uint32   `json:"minGas"`
	MinBridgeAmount *big.Int `json:"minBridgeAmount"`
}

func tokenMappings(mappings []TokenMapping) ([]contracts.JBTokenMapping, error) {
	if len(mappings) == 0 {
		return []contracts.JBTokenMapping{
			{
				LocalToken:      verifier.NATIVE_TOKEN,
				MinGas:          DEFAULT_MIN_GAS,
				RemoteToken:     verifier.NATIVE_TOKEN,
				MinBridgeAmount: DEFAULT_MIN_BRIDGE_AMOUNT,
			},
		}, nil
	}

	out := make([]contracts.JBTokenMapping, len(mappings))
	for i, m := range mappings {
		if !common.IsHexAddress(m.LocalToken) || !common.IsHexAddress(m.RemoteToken) {
			return nil, fmt.Errorf("invalid token mapping %s -> %s", m.LocalToken, m.RemoteToken)
		}

		minGas := m.MinGas
		if minGas == 0 {
			minGas = DEFAULT_MIN_GAS
		}
		minBridge := m.MinBridgeAmount
		if minBridge == nil {
			minBridge = DEFAULT_MIN_BRIDGE_AMOUNT
		}
		out[i] = contracts.JBTokenMapping{
			LocalToken:      common.HexToAddress(m.LocalToken),
			MinGas:          minGas,
			RemoteToken:     common.HexToAddress(m.RemoteToken),
			MinBridgeAmount: minBridge,
		}
	}
	return out, nil
}

// suckerConfigs links chainID to every other participating chain.
func suckerConfigs(c ChainContracts, chainID uint64, chains []uint64, mappings []contracts.JBTokenMapping) ([]contracts.JBSuckerDeployerConfig, error) {
	configs := make([]contracts.JBSuckerDeployerConfig, 0, len(chains)-1)
	for _, remote := range chains {
		if remote == chainID {
			continue
		}

		deployer, ok := c.SuckerDeployers[remote]
		if !ok {
			return nil, fmt.Errorf("no sucker deployer from chain %d to chain %d", chainID, remote)
		}
		configs = append(configs, contracts.JBSuckerDeployerConfig{
			Deployer: deployer,
			Mappings: mappings,
		})
	}
	return configs, nil
}

func nativeTerminal(terminal common.Address) []contracts.JBTerminalConfig {
	return []contracts.JBTerminalConfig{
		{
			Terminal: terminal,
			AccountingContextsToAccept: []contracts.JBAccountingContext{
				{
					Token:    verifier.NATIVE_TOKEN,
					Decimals: NATIVE_DECIMALS,
					Currency: NATIVE_CURRENCY,
				},
			},
		},
	}
}

// uniqueChains keeps the first occurrence of every chain id.
func uniqueChains(chains []uint64) []uint64 {
	seen := make(map[uint64]struct{})
	out := make([]uint64, 0, len(chains))
	for _, c := range chains {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// multiProject is implemented by intents that address an existing project
// on every chain.
type multiProject interface {
	chainProjects() []salt.ChainProject
}

// conflictingProjects reports chains listed with more than one project id.
// Only the first project of a chain would be built.
func conflictingProjects(projects []salt.ChainProject) []verifier.Doubt {
	first := make(map[uint64]uint64)
	doubts := make([]verifier.Doubt, 0)
	for _, p := range projects {
		id, ok := first[p.ChainID]
		if !ok {
			first[p.ChainID] = p.ProjectID
			continue
		}
		if id == p.ProjectID {
			continue
		}
		doubts = append(doubts, verifier.Doubt{
			Severity: verifier.Critical,
			Field:    "projects",
			Message:  fmt.Sprintf("chain %d lists project %d and project %d, project %d would be skipped", p.ChainID, id, p.ProjectID, p.ProjectID),
		})
	}
	return doubts
}

func uniqueProjects(projects []salt.ChainProject) []salt.ChainProject {
	seen := make(map[uint64]struct{})
	out := make([]salt.ChainProject, 0, len(projects))
	for _, p := range projects {
		if _, ok := seen[p.ChainID]; ok {
			continue
		}
		seen[p.ChainID] = struct{}{}
		out = append(out, p)
	}
	return out
}

func projectChains(projects []salt.ChainProject) []uint64 {
	chains := make([]uint64, len(projects))
	for i, p := range projects {
		chains[i] = p.ChainID
	}
	return chains
}

func chainTargets(chains []uint64) []bundle.ChainState {
	targets := make([]bundle.ChainState, 0, len(chains))
	for _, c := range uniqueChains(chains) {
		targets = append(targets, bundle.ChainState{ChainID: c})
	}
	return targets
}

func projectTargets(projects []salt.ChainProject) []bundle.ChainState {
	targets := make([]bundle.ChainState, 0, len(projects))
	for _, p := range uniqueProjects(projects) {
		targets = append(targets, bundle.ChainState{ChainID: p.ChainID, ProjectID: p.ProjectID})
	}
	return targets
}

// perProject returns one parameter set per project, each carrying the full
// chain list.
func perProject(projects []salt.ChainProject, base func() verifier.Params) []verifier.Params {
	if len(projects) == 0 {
		p := base()
		p["chainIds"] = []uint64{}
		return []verifier.Params{p}
	}

	out := make([]verifier.Params, 0, len(projects))
	for _, project := range projects {
		p := base()
		p["projectId"] = project.ProjectID
		p["chainIds"] = projectChains(projects)
		out = append(out, p)
	}
	return out
}

func (e *buildEnv) controllers(ctx context.Context, projects []salt.ChainProject, override string) (map[uint64]common.Address, error) {
	if override != "" {
		controller := e.address("controller", common.HexToAddress(override))
		out := make(map[uint64]common.Address)
		for _, p := range projects {
			out[p.ChainID] = controller
		}
		return out, nil
	}

	return e.controllerOf(ctx, projects)
}

// LaunchProject creates a new project on every chain.
type LaunchProject struct {
	Owner      string   `json:"owner"`
	ProjectURI string   `json:"projectUri"`
	Chains     []uint64 `json:"chainIds"`
	Controller string   `json:"controller,omitempty"`
	Terminal   string   `json:"terminal,omitempty"`
	Ruleset    Ruleset  `json:"ruleset"`
	Memo       string   `json:"memo"`
}

func (i *LaunchProject) Kind() verifier.Kind { return verifier.LaunchProject }

func (i *LaunchProject) Params() []verifier.Params {
	p := verifier.Params{
		"owner":      i.Owner,
		"projectUri": i.ProjectURI,
		"controller": i.Controller,
		"terminal":   i.Terminal,
		"chainIds":   i.Chains,
	}
	return []verifier.Params{i.Ruleset.params(p)}
}

func (i *LaunchProject) Targets() []bundle.ChainState { return chainTargets(i.Chains) }

func (i *LaunchProject) build(ctx context.Context, env *buildEnv) ([]metatx.Call, error) {
	owner := env.address("owner", common.Address{})
	calls := make([]metatx.Call, 0, len(i.Chains))
	for _, chainID := range uniqueChains(i.Chains) {
		c, err := env.chain(chainID)
		if err != nil {
			return nil, err
		}

		controller := env.address("controller", c.Controller)
		data, err := contracts.EncodeLaunchProjectFor(
			owner,
			i.ProjectURI,
			[]contracts.JBRulesetConfig{i.Ruleset.config()},
			nativeTerminal(env.address("terminal", c.Terminal)),
			i.Memo,
		)
		if err != nil {
			return nil, err
		}
		calls = append(calls, metatx.Call{ChainID: chainID, Target: controller, Data: data})
	}
	return calls, nil
}

// QueueRules queues a new ruleset for an existing project on every chain.
type QueueRules struct {
	Projects   []salt.ChainProject `json:"projects"`
	Controller string              `json:"controller,omitempty"`
	Ruleset    Ruleset             `json:"ruleset"`
	Memo       string              `json:"memo"`
}

func (i *QueueRules) Kind() verifier.Kind { return verifier.QueueRules }

func (i *QueueRules) Params() []verifier.Params {
	return perProject(i.Projects, func() verifier.Params {
		return i.Ruleset.params(verifier.Params{"controller": i.Controller})
	})
}

func (i *QueueRules) Targets() []bundle.ChainState { return projectTargets(i.Projects) }

func (i *QueueRules) chainProjects() []salt.ChainProject { return i.Projects }

func (i *QueueRules) build(ctx context.Context, env *buildEnv) ([]metatx.Call, error) {
	projects := uniqueProjects(i.Projects)
	controllers, err := env.controllers(ctx, projects, i.Controller)
	if err != nil {
		return nil, err
	}

	calls := make([]metatx.Call, 0, len(projects))
	for _, p := range projects {
		data, err := contracts.EncodeQueueRulesetsOf(p.ProjectID, []contracts.JBRulesetConfig{i.Ruleset.config()}, i.Memo)
		if err != nil {
			return nil, err
		}
		calls = append(calls, metatx.Call{ChainID: p.ChainID, Target: controllers[p.ChainID], Data: data})
	}
	return calls, nil
}

// SendPayouts distributes a project's payouts on every chain.
type SendPayouts struct {
	Projects         []salt.ChainProject `json:"projects"`
	Terminal         string              `json:"terminal,omitempty"`
	Token            string              `json:"token"`
	Amount           *big.Int            `json:"amount"`
	Currency         uint32              `json:"currency"`
	MinTokensPaidOut *big.Int            `json:"minTokensPaidOut"`
}

func (i *SendPayouts) Kind() verifier.Kind { return verifier.SendPayouts }

func (i *SendPayouts) Params() []verifier.Params {
	return perProject(i.Projects, func() verifier.Params {
		p := verifier.Params{
			"terminal": i.Terminal,
			"token":    i.Token,
			"amount":   i.Amount,
			"currency": i.Currency,
		}
		if i.MinTokensPaidOut != nil {
			p["minTokensPaidOut"] = i.MinTokensPaidOut
		}
		return p
	})
}

func (i *SendPayouts) Targets() []bundle.ChainState { return projectTargets(i.Projects) }

func (i *SendPayouts) chainProjects() []salt.ChainProject { return i.Projects }

func (i *SendPayouts) build(ctx context.Context, env *buildEnv) ([]metatx.Call, error) {
	minPaidOut := i.MinTokensPaidOut
	if minPaidOut == nil {
		minPaidOut = big.NewInt(0)
	}
	token := env.address("token", common.HexToAddress(i.Token))

	projects := uniqueProjects(i.Projects)
	calls := make([]metatx.Call, 0, len(projects))
	for _, p := range projects {
		c, err := env.chain(p.ChainID)
		if err != nil {
			return nil, err
		}

		data, err := contracts.EncodeSendPayoutsOf(p.ProjectID, token, i.Amount, i.Currency, minPaidOut)
		if err != nil {
			return nil, err
		}
		calls = append(calls, metatx.Call{ChainID: p.ChainID, Target: env.address("terminal", c.Terminal), Data: data})
	}
	return calls, nil
}

// DeployToken deploys the project's ERC-20 at the same address on every chain.
type DeployToken struct {
	Projects []salt.ChainProject `json:"projects"`
	Name     string              `json:"name"`
	Symbol   string              `json:"symbol"`
}

func (i *DeployToken) Kind() verifier.Kind { return verifier.DeployToken }

func (i *DeployToken) Params() []verifier.Params {
	return perProject(i.Projects, func() verifier.Params {
		return verifier.Params{
			"name":   i.Name,
			"symbol": i.Symbol,
		}
	})
}

func (i *DeployToken) Targets() []bundle.ChainState { return projectTargets(i.Projects) }

func (i *DeployToken) chainProjects() []salt.ChainProject { return i.Projects }

func (i *DeployToken) build(ctx context.Context, env *buildEnv) ([]metatx.Call, error) {
	projects := uniqueProjects(i.Projects)
	if len(projects) == 0 {
		return nil, salt.ErrEmptyInput
	}

	// every chain uses the salt of the lowest chain id
	canonical := projects[0]
	for _, p := range projects {
		if p.ChainID < canonical.ChainID {
			canonical = p
		}
	}
	tokenSalt, err := salt.TokenSalt(canonical.ProjectID, i.Symbol)
	if err != nil {
		return nil, err
	}

	controllers, err := env.controllers(ctx, projects, "")
	if err != nil {
		return nil, err
	}

	calls := make([]metatx.Call, 0, len(projects))
	for _, p := range projects {
		data, err := contracts.EncodeDeployERC20For(p.ProjectID, i.Name, i.Symbol, tokenSalt)
		if err != nil {
			return nil, err
		}
		calls = append(calls, metatx.Call{ChainID: p.ChainID, Target: controllers[p.ChainID], Data: data})
	}
	return calls, nil
}

// DeploySuckers links a project's deployments on every chain for bridging.
type DeploySuckers struct {
	Projects []salt.ChainProject `json:"projects"`
	Mappings []TokenMapping      `json:"mappings"`
}

func (i *DeploySuckers) Kind() verifier.Kind { return verifier.DeploySuckers }

func (i *DeploySuckers) Params() []verifier.Params {
	return perProject(i.Projects, func() verifier.Params { return verifier.Params{} })
}

func (i *DeploySuckers) Targets() []bundle.ChainState { return projectTargets(i.Projects) }

func (i *DeploySuckers) chainProjects() []salt.ChainProject { return i.Projects }

func (i *DeploySuckers) build(ctx context.Context, env *buildEnv) ([]metatx.Call, error) {
	projects := uniqueProjects(i.Projects)
	if len(projects) < 2 {
		return nil, fmt.Errorf("suckers need at least two chains")
	}

	suckerSalt, err := salt.SuckerSalt(projects)
	if err != nil {
		return nil, err
	}
	mappings, err := tokenMappings(i.Mappings)
	if err != nil {
		return nil, err
	}

	chains := projectChains(projects)
	calls := make([]metatx.Call, 0, len(projects))
	for _, p := range projects {
		c, err := env.chain(p.ChainID)
		if err != nil {
			return nil, err
		}
		configs, err := suckerConfigs(c, p.ChainID, chains, mappings)
		if err != nil {
			return nil, err
		}

		data, err := contracts.EncodeDeploySuckersFor(p.ProjectID, suckerSalt, configs)
		if err != nil {
			return nil, err
		}
		calls = append(calls, metatx.Call{ChainID: p.ChainID, Target: c.SuckerRegistry, Data: data})
	}
	return calls, nil
}

type Stage struct {
	StartsAtOrAfter      uint64   `json:"startsAtOrAfter"`
	SplitPercent         uint16   `json:"splitPercent"`
	InitialIssuance      *big.Int `json:"initialIssuance"`
	IssuanceCutFrequency uint32   `json:"issuanceCutFrequency"`
	IssuanceCutPercent   uint32   `json:"issuanceCutPercent"`
	CashOutTaxRate       uint16   `json:"cashOutTaxRate"`
}

// DeployRevnet deploys a new revnet on every chain, linked by suckers.
type DeployRevnet struct {
	Name          string         `json:"name"`
	Ticker        string         `json:"symbol"`
	URI           string         `json:"uri"`
	SplitOperator string         `json:"splitOperator"`
	Chains        []uint64       `json:"chainIds"`
	BaseCurrency  uint32         `json:"baseCurrency"`
	Stage         Stage          `json:"stage"`
	Mappings      []TokenMapping `json:"mappings"`
}

func (i *DeployRevnet) Kind() verifier.Kind { return verifier.DeployRevnet }

func (i *DeployRevnet) Params() []verifier.Params {
	return []verifier.Params{
		{
			"name":               i.Name,
			"symbol":             i.Ticker,
			"splitOperator":      i.SplitOperator,
			"startsAtOrAfter":    i.Stage.StartsAtOrAfter,
			"initialIssuance":    i.Stage.InitialIssuance,
			"issuanceCutPercent": i.Stage.IssuanceCutPercent,
			"splitPercent":       i.Stage.SplitPercent,
			"cashOutTaxRate":     i.Stage.CashOutTaxRate,
			"chainIds":           i.Chains,
		},
	}
}

func (i *DeployRevnet) Targets() []bundle.ChainState { return chainTargets(i.Chains) }

func (i *DeployRevnet) build(ctx context.Context, env *buildEnv) ([]metatx.Call, error) {
	// one timestamp for the whole deployment
	revnetSalt, err := salt.RevnetSalt(i.Name, env.now().Unix())
	if err != nil {
		return nil, err
	}
	mappings, err := tokenMappings(i.Mappings)
	if err != nil {
		return nil, err
	}

	currency := i.BaseCurrency
	if currency == 0 {
		currency = NATIVE_CURRENCY
	}
	config := contracts.REVConfig{
		Description: contracts.REVDescription{
			Name:   i.Name,
			Ticker: i.Ticker,
			Uri:    i.URI,
			Salt:   revnetSalt,
		},
		BaseCurrency:  currency,
		SplitOperator: env.address("splitOperator", common.Address{}),
		StageConfigurations: []contracts.REVStageConfig{
			{
				StartsAtOrAfter:      new(big.Int).SetUint64(i.Stage.StartsAtOrAfter),
				SplitPercent:         i.Stage.SplitPercent,
				InitialIssuance:      i.Stage.InitialIssuance,
				IssuanceCutFrequency: i.Stage.IssuanceCutFrequency,
				IssuanceCutPercent:   i.Stage.IssuanceCutPercent,
				CashOutTaxRate:       i.Stage.CashOutTaxRate,
			},
		},
	}

	chains := uniqueChains(i.Chains)
	sorted := append([]uint64(nil), chains...)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a] < sorted[b] })

	calls := make([]metatx.Call, 0, len(chains))
	for _, chainID := range chains {
		c, err := env.chain(chainID)
		if err != nil {
			return nil, err
		}

		suckers := contracts.REVSuckerDeploymentConfig{
			DeployerConfigurations: []contracts.JBSuckerDeployerConfig{},
			Salt:                   revnetSalt,
		}
		if len(sorted) > 1 {
			suckers.DeployerConfigurations, err = suckerConfigs(c, chainID, sorted, mappings)
			if err != nil {
				return nil, err
			}
		}

		data, err := contracts.EncodeDeployRevnet(config, nativeTerminal(c.Terminal), suckers)
		if err != nil {
			return nil, err
		}
		calls = append(calls, metatx.Call{ChainID: chainID, Target: c.RevDeployer, Data: data})
	}
	return calls, nil
}
