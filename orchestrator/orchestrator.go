package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/sprintertech/sprinter-omnichain/bundle"
	"github.com/sprintertech/sprinter-omnichain/metatx"
	"github.com/sprintertech/sprinter-omnichain/relay"
	"github.com/sprintertech/sprinter-omnichain/salt"
	"github.com/sprintertech/sprinter-omnichain/signer"
	"github.com/sprintertech/sprinter-omnichain/verifier"
)

type Mode string

const (
	// ModeSponsored pays gas from the relay account balance.
	ModeSponsored Mode = "sponsored"
	// ModePrepaid wraps every call in a signed forward request and lets the
	// user pay the relay on a chain of their choice.
	ModePrepaid Mode = "prepaid"
)

type Relay interface {
	CreateSponsoredBundle(ctx context.Context, txs []relay.Transaction) (string, error)
	CreatePrepaidBundle(ctx context.Context, signer common.Address, txs []relay.Transaction) (*relay.PrepaidBundle, error)
	SubmitPayment(ctx context.Context, bundleID string, chainID uint64, signedTx []byte) error
	GetBundleStatus(ctx context.Context, bundleID string) (*relay.BundleStatus, error)
}

type ControllerResolver interface {
	ControllerOf(ctx context.Context, projectID uint64) (common.Address, error)
}

type Wrapper interface {
	WrapAll(ctx context.Context, calls []metatx.Call, backend signer.TypedDataSigner) ([]*metatx.Envelope, error)
}

type Metrics interface {
	StartBundle(id string)
	EndBundle(id string, status bundle.Status)
}

type Request struct {
	Intent Intent
	Mode   Mode
	// Signer signs forward requests in prepaid mode.
	Signer signer.TypedDataSigner
}

// Callbacks fire at most once per execution. Neither fires after a reset.
type Callbacks struct {
	OnSuccess func(txHashes map[uint64]string)
	OnError   func(err error)
}

type Option func(*Orchestrator)

func WithPollInterval(interval time.Duration) Option {
	return func(o *Orchestrator) {
		o.pollInterval = interval
	}
}

func WithMetrics(metrics Metrics) Option {
	return func(o *Orchestrator) {
		o.metrics = metrics
	}
}

func WithMode(mode Mode) Option {
	return func(o *Orchestrator) {
		o.mode = mode
	}
}

// WithClock replaces the clock used for revnet salts and quote expiry.
func WithClock(now func() time.Time, expiryCheck time.Duration) Option {
	return func(o *Orchestrator) {
		o.now = now
		o.expiryCheck = expiryCheck
	}
}

type Orchestrator struct {
	verifier    *verifier.Verifier
	relay       Relay
	wrapper     Wrapper
	directories map[uint64]ControllerResolver
	contracts   map[uint64]ChainContracts

	mode         Mode
	pollInterval time.Duration
	metrics      Metrics
	now          func() time.Time
	expiryCheck  time.Duration
}

func NewOrchestrator(
	verifier *verifier.Verifier,
	relay Relay,
	wrapper Wrapper,
	directories map[uint64]ControllerResolver,
	contracts map[uint64]ChainContracts,
	opts ...Option,
) *Orchestrator {
	o := &Orchestrator{
		verifier:     verifier,
		relay:        relay,
		wrapper:      wrapper,
		directories:  directories,
		contracts:    contracts,
		mode:         ModeSponsored,
		pollInterval: bundle.POLL_INTERVAL,
		now:          time.Now,
		expiryCheck:  bundle.EXPIRY_CHECK_INTERVAL,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Verify checks every parameter set of the intent and merges the results.
func (o *Orchestrator) Verify(intent Intent) *verifier.Result {
	merged := &verifier.Result{
		IsValid:        true,
		Doubts:         make([]verifier.Doubt, 0),
		Warnings:       make([]string, 0),
		VerifiedParams: make(map[string]string),
	}

	seenDoubts := make(map[verifier.Doubt]struct{})
	seenWarnings := make(map[string]struct{})
	seenCorrections := make(map[string]struct{})
	for _, params := range intent.Params() {
		r := o.verifier.Verify(intent.Kind(), params)
		merged.IsValid = merged.IsValid && r.IsValid

		for _, d := range r.Doubts {
			if _, ok := seenDoubts[d]; ok {
				continue
			}
			seenDoubts[d] = struct{}{}
			merged.Doubts = append(merged.Doubts, d)
		}
		for _, w := range r.Warnings {
			if _, ok := seenWarnings[w]; ok {
				continue
			}
			seenWarnings[w] = struct{}{}
			merged.Warnings = append(merged.Warnings, w)
		}
		for _, c := range r.Corrections {
			if _, ok := seenCorrections[c.OriginalAddress]; ok {
				continue
			}
			seenCorrections[c.OriginalAddress] = struct{}{}
			merged.Corrections = append(merged.Corrections, c)
		}
		for k, v := range r.VerifiedParams {
			if _, ok := merged.VerifiedParams[k]; !ok {
				merged.VerifiedParams[k] = v
			}
		}
	}

	if p, ok := intent.(multiProject); ok {
		for _, d := range conflictingProjects(p.chainProjects()) {
			merged.Doubts = append(merged.Doubts, d)
			merged.IsValid = false
		}
	}

	return merged
}

// Execute verifies the intent and, when it is valid, builds, optionally
// signs and submits the bundle in the background. Progress is observed
// through the returned execution and the callbacks.
func (o *Orchestrator) Execute(ctx context.Context, req Request, callbacks Callbacks) *Execution {
	if req.Mode == "" {
		req.Mode = o.mode
	}

	machine := bundle.NewMachine().WithClock(o.now, o.expiryCheck)
	e := &Execution{
		ID:           uuid.New().String(),
		Mode:         req.Mode,
		orchestrator: o,
		machine:      machine,
		callbacks:    callbacks,
		done:         make(chan struct{}),
	}

	result := o.Verify(req.Intent)
	e.verification = result
	if !result.IsValid {
		log.Info().Str("executionID", e.ID).Msgf("Rejected %s: %d critical doubts", req.Intent.Kind(), len(result.Criticals()))
		e.complete(nil, &VerificationError{Result: result}, true)
		return e
	}

	switch req.Mode {
	case ModeSponsored:
	case ModePrepaid:
		if req.Signer == nil {
			e.complete(nil, ErrNoSigner, true)
			return e
		}
	default:
		e.complete(nil, fmt.Errorf("%w: %s", ErrUnknownMode, req.Mode), true)
		return e
	}

	e.unsubscribe = machine.Subscribe(e.watch)
	run, epoch, err := machine.Begin(req.Intent.Targets())
	if err != nil {
		e.complete(nil, err, true)
		return e
	}
	e.run = run
	e.epoch = epoch

	if o.metrics != nil {
		o.metrics.StartBundle(e.ID)
	}

	// signing and bundle creation outlive the caller's request
	go e.start(context.WithoutCancel(ctx), req, result.VerifiedParams)
	return e
}

func (o *Orchestrator) build(ctx context.Context, intent Intent, verified map[string]string) ([]metatx.Call, error) {
	env := &buildEnv{
		contracts:    o.contracts,
		verified:     verified,
		now:          o.now,
		controllerOf: o.controllersOf,
	}
	return intent.build(ctx, env)
}

type resolvedController struct {
	chainID    uint64
	controller common.Address
}

// controllersOf reads the controller of every project from its chain's
// directory. Chains are queried concurrently.
func (o *Orchestrator) controllersOf(ctx context.Context, projects []salt.ChainProject) (map[uint64]common.Address, error) {
	p := pool.NewWithResults[resolvedController]().WithContext(ctx).WithCancelOnError()
	for _, project := range projects {
		project := project
		p.Go(func(ctx context.Context) (resolvedController, error) {
			directory, ok := o.directories[project.ChainID]
			if !ok {
				return resolvedController{}, fmt.Errorf("no directory for chain %d", project.ChainID)
			}

			controller, err := directory.ControllerOf(ctx, project.ProjectID)
			if err != nil {
				return resolvedController{}, fmt.Errorf("resolving controller of project %d on chain %d: %w", project.ProjectID, project.ChainID, err)
			}
			return resolvedController{chainID: project.ChainID, controller: controller}, nil
		})
	}

	results, err := p.Wait()
	if err != nil {
		return nil, err
	}

	controllers := make(map[uint64]common.Address)
	for _, r := range results {
		controllers[r.chainID] = r.controller
	}
	return controllers, nil
}
