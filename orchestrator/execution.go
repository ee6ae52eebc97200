package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/sprintertech/sprinter-omnichain/bundle"
	"github.com/sprintertech/sprinter-omnichain/relay"
	"github.com/sprintertech/sprinter-omnichain/verifier"
)

// Execution is one attempt at executing an intent. It owns the bundle
// state machine and the background poller.
type Execution struct {
	ID   string
	Mode Mode

	orchestrator *Orchestrator
	machine      *bundle.Machine
	callbacks    Callbacks
	verification *verifier.Result
	unsubscribe  func()

	run   context.Context
	epoch uint64

	once sync.Once
	lock sync.Mutex
	err  error
	done chan struct{}
}

func (e *Execution) start(ctx context.Context, req Request, verified map[string]string) {
	calls, err := e.orchestrator.build(ctx, req.Intent, verified)
	if err != nil {
		e.fail(fmt.Errorf("building calls: %w", err))
		return
	}

	switch req.Mode {
	case ModeSponsored:
		{
			txs := make([]relay.Transaction, len(calls))
			for i, call := range calls {
				txs[i] = relay.NewTransaction(call.ChainID, call.Target, call.Data, call.Value)
			}

			bundleID, err := e.orchestrator.relay.CreateSponsoredBundle(ctx, txs)
			if err != nil {
				e.fail(err)
				return
			}

			err = e.machine.Accept(e.epoch, bundleID)
			if err != nil {
				e.discard(bundleID, err)
				return
			}
			log.Info().Str("executionID", e.ID).Str("bundleID", bundleID).Msgf("Sponsored bundle accepted for %d chains", len(txs))
			e.poll(bundleID)
		}
	case ModePrepaid:
		{
			envelopes, err := e.orchestrator.wrapper.WrapAll(ctx, calls, req.Signer)
			if err != nil {
				e.fail(err)
				return
			}

			txs := make([]relay.Transaction, len(envelopes))
			for i, envelope := range envelopes {
				txs[i] = envelope.Transaction()
			}
			prepaid, err := e.orchestrator.relay.CreatePrepaidBundle(ctx, req.Signer.Address(), txs)
			if err != nil {
				e.fail(err)
				return
			}

			err = e.machine.AwaitPayment(e.epoch, prepaid.BundleID, prepaid.PaymentOptions, prepaid.ExpiresAt)
			if err != nil {
				e.discard(prepaid.BundleID, err)
				return
			}
			log.Info().Str("executionID", e.ID).Str("bundleID", prepaid.BundleID).Msgf("Prepaid bundle awaiting payment, %d options", len(prepaid.PaymentOptions))
		}
	}
}

// SubmitPayment forwards the user's signed payment transaction for the
// selected payment option and starts polling.
func (e *Execution) SubmitPayment(ctx context.Context, signedTx []byte) error {
	snapshot := e.machine.Snapshot()
	if snapshot.Status != bundle.StatusAwaitingPayment {
		return fmt.Errorf("%w: payment in %s", bundle.ErrInvalidTransition, snapshot.Status)
	}
	option, err := e.machine.PaymentOption()
	if err != nil {
		return err
	}

	err = e.orchestrator.relay.SubmitPayment(ctx, snapshot.ID, option.ChainID, signedTx)
	if err != nil {
		e.fail(err)
		return err
	}

	err = e.machine.PaymentSubmitted(e.epoch)
	if err != nil {
		log.Warn().Str("executionID", e.ID).Str("bundleID", snapshot.ID).Uint64("chainID", option.ChainID).Msgf("Relay accepted payment but bundle is no longer awaiting it: %s", err)
		return fmt.Errorf("%w (bundle %s): %w", ErrLatePayment, snapshot.ID, err)
	}
	log.Info().Str("bundleID", snapshot.ID).Uint64("chainID", option.ChainID).Msg("Payment submitted")
	e.poll(snapshot.ID)
	return nil
}

func (e *Execution) SelectPaymentChain(chainID uint64) error {
	return e.machine.SelectPaymentChain(chainID)
}

// Reset stops polling and quote expiry and discards the bundle. Work still
// in flight is dropped when it returns.
func (e *Execution) Reset() {
	e.machine.Reset()
	e.complete(nil, bundle.ErrStaleEpoch, false)
}

func (e *Execution) Snapshot() bundle.Bundle {
	return e.machine.Snapshot()
}

func (e *Execution) Subscribe(fn bundle.Listener) func() {
	return e.machine.Subscribe(fn)
}

// Verification is the merged verifier result of the intent.
func (e *Execution) Verification() *verifier.Result {
	return e.verification
}

// Done is closed once the execution succeeded, failed or was reset.
func (e *Execution) Done() <-chan struct{} {
	return e.done
}

func (e *Execution) Err() error {
	e.lock.Lock()
	defer e.lock.Unlock()

	return e.err
}

func (e *Execution) poll(bundleID string) {
	poller := bundle.NewPoller(e.orchestrator.relay, e.orchestrator.pollInterval)
	go poller.Poll(e.run, bundleID, e.onStatus)
}

func (e *Execution) onStatus(status *relay.BundleStatus) bool {
	current, err := e.machine.Apply(e.epoch, status)
	if errors.Is(err, bundle.ErrStaleEpoch) {
		return true
	}
	if err != nil {
		log.Warn().Str("executionID", e.ID).Msgf("Ignoring status update: %s", err)
		return false
	}

	snapshot := e.machine.Snapshot()
	switch current {
	case bundle.StatusCompleted:
		{
			e.complete(snapshot.TxHashes(), nil, true)
			return true
		}
	case bundle.StatusFailed:
		{
			e.complete(nil, newPartialFailureError(snapshot), true)
			return true
		}
	case bundle.StatusPartial:
		{
			if !status.Status.Final() {
				return false
			}
			e.complete(nil, newPartialFailureError(snapshot), true)
			return true
		}
	default:
		{
			if !status.Status.Final() {
				return false
			}
			e.fail(fmt.Errorf("relay reported %s before every chain finished", status.Status))
			return true
		}
	}
}

// watch reports expiry. It runs under the machine lock.
func (e *Execution) watch(b bundle.Bundle) {
	if b.Status == bundle.StatusExpired {
		go e.complete(nil, ErrExpired, true)
	}
}

func (e *Execution) fail(err error) {
	log.Error().Str("executionID", e.ID).Msgf("Execution failed: %s", err)

	mErr := e.machine.Fail(e.epoch, err)
	if errors.Is(mErr, bundle.ErrStaleEpoch) {
		log.Debug().Str("executionID", e.ID).Msg("Discarding failure of reset execution")
		return
	}
	e.complete(nil, err, true)
}

func (e *Execution) discard(bundleID string, err error) {
	log.Warn().Str("executionID", e.ID).Str("bundleID", bundleID).Msgf("Discarding relay result: %s", err)
}

func (e *Execution) complete(txHashes map[uint64]string, err error, notify bool) {
	e.once.Do(func() {
		e.lock.Lock()
		e.err = err
		e.lock.Unlock()

		if e.unsubscribe != nil {
			e.unsubscribe()
		}
		// a reset execution ends as idle
		if m := e.orchestrator.metrics; m != nil && e.epoch != 0 {
			m.EndBundle(e.ID, e.machine.Snapshot().Status)
		}
		defer close(e.done)

		if !notify {
			return
		}
		if err != nil {
			if e.callbacks.OnError != nil {
				e.callbacks.OnError(err)
			}
			return
		}
		if e.callbacks.OnSuccess != nil {
			e.callbacks.OnSuccess(txHashes)
		}
	})
}
