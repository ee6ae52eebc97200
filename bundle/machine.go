package bundle

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sprintertech/sprinter-omnichain/relay"
)

const (
	EXPIRY_CHECK_INTERVAL = time.Second
	EXPIRED_MESSAGE       = "payment quote expired before payment was submitted"
)

var (
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrStaleEpoch        = errors.New("bundle was reset")
)

type Listener func(Bundle)

// Machine owns the lifecycle of a single bundle. Results of work started
// before a Reset carry an old epoch and are rejected with ErrStaleEpoch.
type Machine struct {
	lock   sync.Mutex
	bundle Bundle
	epoch  uint64

	run         context.Context
	cancelRun   context.CancelFunc
	stopExpiry  context.CancelFunc
	listeners   map[int]Listener
	nextID      int
	now         func() time.Time
	expiryCheck time.Duration
}

func NewMachine() *Machine {
	return &Machine{
		bundle:      Bundle{Status: StatusIdle},
		listeners:   make(map[int]Listener),
		now:         time.Now,
		expiryCheck: EXPIRY_CHECK_INTERVAL,
	}
}

// WithClock replaces the clock and expiry check interval.
func (m *Machine) WithClock(now func() time.Time, expiryCheck time.Duration) *Machine {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.now = now
	m.expiryCheck = expiryCheck
	return m
}

// Subscribe registers fn to receive a snapshot after every change. fn is
// called with the machine locked and must not call back into it.
func (m *Machine) Subscribe(fn Listener) func() {
	m.lock.Lock()
	defer m.lock.Unlock()

	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	return func() {
		m.lock.Lock()
		defer m.lock.Unlock()
		delete(m.listeners, id)
	}
}

func (m *Machine) Snapshot() Bundle {
	m.lock.Lock()
	defer m.lock.Unlock()

	return m.bundle.copy()
}

func (m *Machine) Epoch() uint64 {
	m.lock.Lock()
	defer m.lock.Unlock()

	return m.epoch
}

// Begin moves an idle machine to creating with one pending sub-record per
// chain, in the given order. The returned context lives until the bundle
// reaches a terminal status or is reset.
func (m *Machine) Begin(chains []ChainState) (context.Context, uint64, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if err := m.transition(StatusCreating); err != nil {
		return nil, 0, err
	}
	if len(chains) == 0 {
		return nil, 0, fmt.Errorf("bundle needs at least one chain")
	}

	states := make([]ChainState, len(chains))
	for i, c := range chains {
		states[i] = ChainState{
			ChainID:   c.ChainID,
			ProjectID: c.ProjectID,
			Status:    ChainPending,
		}
	}

	m.epoch++
	m.run, m.cancelRun = context.WithCancel(context.Background())
	m.bundle = Bundle{
		Status: StatusCreating,
		Chains: states,
	}
	m.notify()
	return m.run, m.epoch, nil
}

// Accept records a sponsored bundle accepted by the relay.
func (m *Machine) Accept(epoch uint64, bundleID string) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if err := m.checkEpoch(epoch); err != nil {
		return err
	}
	if err := m.transition(StatusProcessing); err != nil {
		return err
	}

	m.bundle.ID = bundleID
	m.bundle.Status = StatusProcessing
	m.markSubmitted()
	m.notify()
	return nil
}

// AwaitPayment records a prepaid bundle and starts the quote expiry timer
// when expiresAt is set.
func (m *Machine) AwaitPayment(epoch uint64, bundleID string, options []relay.PaymentOption, expiresAt int64) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if err := m.checkEpoch(epoch); err != nil {
		return err
	}
	if err := m.transition(StatusAwaitingPayment); err != nil {
		return err
	}

	m.bundle.ID = bundleID
	m.bundle.Status = StatusAwaitingPayment
	m.bundle.PaymentOptions = append([]relay.PaymentOption(nil), options...)
	m.bundle.ExpiresAt = expiresAt
	if len(options) > 0 {
		m.bundle.SelectedPaymentChain = options[0].ChainID
	}

	if expiresAt > 0 {
		ctx, cancel := context.WithCancel(m.run)
		m.stopExpiry = cancel
		go m.watchExpiry(ctx, epoch, expiresAt, m.expiryCheck)
	}
	m.notify()
	return nil
}

func (m *Machine) SelectPaymentChain(chainID uint64) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.bundle.Status != StatusAwaitingPayment {
		return fmt.Errorf("%w: cannot select payment in %s", ErrInvalidTransition, m.bundle.Status)
	}
	for _, o := range m.bundle.PaymentOptions {
		if o.ChainID == chainID {
			m.bundle.SelectedPaymentChain = chainID
			m.notify()
			return nil
		}
	}

	return fmt.Errorf("no payment option for chain %d", chainID)
}

// PaymentOption returns the currently selected payment option.
func (m *Machine) PaymentOption() (relay.PaymentOption, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	for _, o := range m.bundle.PaymentOptions {
		if o.ChainID == m.bundle.SelectedPaymentChain {
			return o, nil
		}
	}
	return relay.PaymentOption{}, fmt.Errorf("no payment option selected")
}

// PaymentSubmitted moves a bundle whose payment the relay accepted to processing.
func (m *Machine) PaymentSubmitted(epoch uint64) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if err := m.checkEpoch(epoch); err != nil {
		return err
	}
	if m.bundle.Status != StatusAwaitingPayment {
		return fmt.Errorf("%w: from %s to %s", ErrInvalidTransition, m.bundle.Status, StatusProcessing)
	}

	if m.stopExpiry != nil {
		m.stopExpiry()
		m.stopExpiry = nil
	}
	m.bundle.Status = StatusProcessing
	m.markSubmitted()
	m.notify()
	return nil
}

// Apply merges a relay status report into the chain sub-records and
// recomputes the bundle status. Sub-records only move forward.
func (m *Machine) Apply(epoch uint64, status *relay.BundleStatus) (Status, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if err := m.checkEpoch(epoch); err != nil {
		return m.bundle.Status, err
	}
	if m.bundle.Status.Terminal() {
		return m.bundle.Status, nil
	}
	if m.bundle.Status != StatusProcessing && m.bundle.Status != StatusPartial {
		return m.bundle.Status, fmt.Errorf("%w: status update in %s", ErrInvalidTransition, m.bundle.Status)
	}

	for _, tx := range status.Transactions {
		m.advanceChain(tx.ChainID, ChainStatus(tx.Status), tx.TxHash, tx.Error, tx.GasUsed)
	}

	if status.Status == relay.StatusFailed {
		msg := status.Error
		if msg == "" {
			msg = "relay reported bundle failure"
		}
		for i := range m.bundle.Chains {
			if !m.bundle.Chains[i].Status.Terminal() {
				m.bundle.Chains[i].Status = ChainFailed
				m.bundle.Chains[i].Error = msg
			}
		}
		m.bundle.Error = msg
	}

	next := m.aggregate()
	if next != m.bundle.Status {
		if err := m.transition(next); err != nil {
			return m.bundle.Status, err
		}
		m.bundle.Status = next
		if next.Terminal() {
			m.finish()
		}
	}

	m.notify()
	return m.bundle.Status, nil
}

// Fail moves a live bundle to failed. Chains that have not finished are
// marked failed with the same error.
func (m *Machine) Fail(epoch uint64, err error) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if e := m.checkEpoch(epoch); e != nil {
		return e
	}
	if e := m.transition(StatusFailed); e != nil {
		return e
	}

	for i := range m.bundle.Chains {
		if !m.bundle.Chains[i].Status.Terminal() {
			m.bundle.Chains[i].Status = ChainFailed
			m.bundle.Chains[i].Error = err.Error()
		}
	}
	m.bundle.Status = StatusFailed
	m.bundle.Error = err.Error()
	m.finish()
	m.notify()
	return nil
}

// Expire moves an unpaid bundle to expired.
func (m *Machine) Expire(epoch uint64) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if err := m.checkEpoch(epoch); err != nil {
		return err
	}
	if err := m.transition(StatusExpired); err != nil {
		return err
	}

	log.Info().Str("bundleID", m.bundle.ID).Msgf("Payment quote expired at %d", m.bundle.ExpiresAt)
	m.bundle.Status = StatusExpired
	m.bundle.Error = EXPIRED_MESSAGE
	m.finish()
	m.notify()
	return nil
}

// Reset stops the poller and expiry timer and returns the machine to idle.
// The previous bundle is discarded.
func (m *Machine) Reset() {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.finish()
	m.epoch++
	m.bundle = Bundle{Status: StatusIdle}
	m.notify()
}

func (m *Machine) watchExpiry(ctx context.Context, epoch uint64, expiresAt int64, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			{
				m.lock.Lock()
				now := m.now().Unix()
				m.lock.Unlock()
				if now < expiresAt {
					continue
				}

				err := m.Expire(epoch)
				if err != nil {
					log.Debug().Msgf("Expiry skipped: %s", err)
				}
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func (m *Machine) advanceChain(chainID uint64, status ChainStatus, txHash string, errMsg string, gasUsed string) {
	for i := range m.bundle.Chains {
		c := &m.bundle.Chains[i]
		if c.ChainID != chainID {
			continue
		}
		if status.rank() < 0 || c.Status.Terminal() {
			return
		}
		if status.rank() < c.Status.rank() {
			return
		}

		c.Status = status
		if txHash != "" {
			c.TxHash = txHash
		}
		if errMsg != "" {
			c.Error = errMsg
		}
		if gasUsed != "" {
			c.GasUsed = gasUsed
		}
		return
	}

	log.Warn().Str("bundleID", m.bundle.ID).Uint64("chainID", chainID).Msg("Status update for unknown chain")
}

func (m *Machine) aggregate() Status {
	confirmed, failed := 0, 0
	for _, c := range m.bundle.Chains {
		switch c.Status {
		case ChainConfirmed:
			confirmed++
		case ChainFailed:
			failed++
		}
	}

	switch {
	case confirmed == len(m.bundle.Chains):
		return StatusCompleted
	case failed == len(m.bundle.Chains):
		return StatusFailed
	case failed > 0:
		return StatusPartial
	default:
		return m.bundle.Status
	}
}

func (m *Machine) markSubmitted() {
	for i := range m.bundle.Chains {
		if m.bundle.Chains[i].Status == ChainPending {
			m.bundle.Chains[i].Status = ChainSubmitted
		}
	}
}

func (m *Machine) finish() {
	if m.cancelRun != nil {
		m.cancelRun()
	}
	m.stopExpiry = nil
}

func (m *Machine) checkEpoch(epoch uint64) error {
	if epoch != m.epoch {
		return fmt.Errorf("%w: epoch %d, current %d", ErrStaleEpoch, epoch, m.epoch)
	}
	return nil
}

func (m *Machine) transition(next Status) error {
	if !canTransition(m.bundle.Status, next) {
		return fmt.Errorf("%w: from %s to %s", ErrInvalidTransition, m.bundle.Status, next)
	}
	return nil
}

func (m *Machine) notify() {
	snapshot := m.bundle.copy()
	for _, l := range m.listeners {
		l(snapshot)
	}
}

func canTransition(current, next Status) bool {
	switch current {
	case StatusIdle:
		return next == StatusCreating
	case StatusCreating:
		return next == StatusProcessing || next == StatusAwaitingPayment || next == StatusFailed
	case StatusAwaitingPayment:
		return next == StatusProcessing || next == StatusExpired || next == StatusFailed
	case StatusProcessing:
		return next == StatusCompleted || next == StatusPartial || next == StatusFailed
	case StatusPartial:
		return next == StatusFailed
	default:
		return false
	}
}
