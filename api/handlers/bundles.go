package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/sprintertech/sprinter-omnichain/bundle"
	"github.com/sprintertech/sprinter-omnichain/orchestrator"
	"github.com/sprintertech/sprinter-omnichain/relay"
	"github.com/sprintertech/sprinter-omnichain/signer"
	"github.com/sprintertech/sprinter-omnichain/verifier"
)

type Executor interface {
	Execute(ctx context.Context, req orchestrator.Request, callbacks orchestrator.Callbacks) *orchestrator.Execution
	Verify(intent orchestrator.Intent) *verifier.Result
}

type ExecutionStore interface {
	Add(e *orchestrator.Execution)
	Execution(id string) (*orchestrator.Execution, error)
}

type PriceEstimator interface {
	Estimate(ctx context.Context, option relay.PaymentOption) (float64, error)
}

// BundleBody starts an execution. Prepaid bundles are signed by the
// service's own signer account, so the forwarded calls originate from the
// operator and not from the API caller.
type BundleBody struct {
	Kind   verifier.Kind     `json:"kind"`
	Mode   orchestrator.Mode `json:"mode"`
	Intent json.RawMessage   `json:"intent"`
}

type PaymentBody struct {
	ChainId  uint64 `json:"chainId"`
	SignedTx string `json:"signedTx"`
}

type BundleResponse struct {
	bundle.Bundle
	ExecutionID  string             `json:"executionId"`
	Mode         orchestrator.Mode  `json:"mode"`
	Verification *verifier.Result   `json:"verification,omitempty"`
	PaymentUSD   map[uint64]float64 `json:"paymentValuesUsd,omitempty"`
	// Signer is the account the prepaid calls are executed for.
	Signer string `json:"signer,omitempty"`
	Reason string `json:"reason,omitempty"`
}

type BundleHandler struct {
	executor Executor
	store    ExecutionStore
	signer   signer.TypedDataSigner
	prices   PriceEstimator

	eventBuffer int
}

// NewBundleHandler creates the bundle endpoints. signer is only used for
// prepaid bundles and prices may be nil.
func NewBundleHandler(executor Executor, store ExecutionStore, signer signer.TypedDataSigner, prices PriceEstimator) *BundleHandler {
	return &BundleHandler{
		executor: executor,
		store:    store,
		signer:   signer,
		prices:   prices,

		eventBuffer: EVENT_BUFFER,
	}
}

// WithEventBuffer sets how many snapshots an event stream queues before
// dropping intermediate ones.
func (h *BundleHandler) WithEventBuffer(size int) *BundleHandler {
	h.eventBuffer = size
	return h
}

// HandleCreate verifies the intent and starts its execution. It returns
// status code 202 once the execution is running.
func (h *BundleHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	b := &BundleBody{}
	d := json.NewDecoder(r.Body)
	err := d.Decode(b)
	if err != nil {
		JSONError(w, fmt.Errorf("invalid request body: %s", err), http.StatusBadRequest)
		return
	}

	intent, err := orchestrator.DecodeIntent(b.Kind, b.Intent)
	if err != nil {
		JSONError(w, fmt.Errorf("invalid request body: %s", err), http.StatusBadRequest)
		return
	}

	req := orchestrator.Request{
		Intent: intent,
		Mode:   b.Mode,
		Signer: h.signer,
	}
	e := h.executor.Execute(context.Background(), req, orchestrator.Callbacks{
		OnSuccess: func(txHashes map[uint64]string) {
			log.Info().Str("kind", string(b.Kind)).Msgf("Bundle executed on %d chains", len(txHashes))
		},
		OnError: func(err error) {
			log.Warn().Str("kind", string(b.Kind)).Msgf("Bundle execution failed: %s", err)
		},
	})

	var verificationErr *orchestrator.VerificationError
	err = e.Err()
	switch {
	case errors.As(err, &verificationErr):
		JSONResponse(w, h.response(r.Context(), e), http.StatusUnprocessableEntity)
		return
	case errors.Is(err, orchestrator.ErrNoSigner), errors.Is(err, orchestrator.ErrUnknownMode):
		JSONError(w, err, http.StatusBadRequest)
		return
	}

	h.store.Add(e)
	JSONResponse(w, h.response(r.Context(), e), http.StatusAccepted)
}

// HandleGet returns the current bundle state of an execution
func (h *BundleHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	e, ok := h.execution(w, r)
	if !ok {
		return
	}

	JSONResponse(w, h.response(r.Context(), e), http.StatusOK)
}

// HandlePayment selects the payment chain if requested and submits the
// signed payment transaction to the relay.
func (h *BundleHandler) HandlePayment(w http.ResponseWriter, r *http.Request) {
	e, ok := h.execution(w, r)
	if !ok {
		return
	}

	b := &PaymentBody{}
	d := json.NewDecoder(r.Body)
	err := d.Decode(b)
	if err != nil {
		JSONError(w, fmt.Errorf("invalid request body: %s", err), http.StatusBadRequest)
		return
	}
	signedTx, err := hexutil.Decode(b.SignedTx)
	if err != nil || len(signedTx) == 0 {
		JSONError(w, fmt.Errorf("invalid signed transaction"), http.StatusBadRequest)
		return
	}

	if b.ChainId != 0 {
		err = e.SelectPaymentChain(b.ChainId)
		if err != nil {
			JSONError(w, err, statusCode(err, http.StatusBadRequest))
			return
		}
	}

	err = e.SubmitPayment(r.Context(), signedTx)
	if err != nil {
		JSONError(w, err, statusCode(err, http.StatusBadGateway))
		return
	}

	JSONResponse(w, h.response(r.Context(), e), http.StatusAccepted)
}

// HandleReset discards the execution. Results still in flight are dropped.
func (h *BundleHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	e, ok := h.execution(w, r)
	if !ok {
		return
	}

	e.Reset()
	w.WriteHeader(http.StatusNoContent)
}

func (h *BundleHandler) execution(w http.ResponseWriter, r *http.Request) (*orchestrator.Execution, bool) {
	vars := mux.Vars(r)
	e, err := h.store.Execution(vars["id"])
	if err != nil {
		JSONError(w, err, http.StatusNotFound)
		return nil, false
	}
	return e, true
}

func (h *BundleHandler) response(ctx context.Context, e *orchestrator.Execution) BundleResponse {
	resp := BundleResponse{
		Bundle:       e.Snapshot(),
		ExecutionID:  e.ID,
		Mode:         e.Mode,
		Verification: e.Verification(),
	}
	if err := e.Err(); err != nil && !errors.Is(err, bundle.ErrStaleEpoch) {
		resp.Reason = err.Error()
	}
	if e.Mode == orchestrator.ModePrepaid && h.signer != nil {
		resp.Signer = h.signer.Address().Hex()
	}

	if h.prices == nil || resp.Status != bundle.StatusAwaitingPayment {
		return resp
	}
	resp.PaymentUSD = make(map[uint64]float64)
	for _, option := range resp.PaymentOptions {
		usd, err := h.prices.Estimate(ctx, option)
		if err != nil {
			log.Debug().Uint64("chainID", option.ChainID).Msgf("No USD estimate for %s: %s", option.Symbol, err)
			continue
		}
		resp.PaymentUSD[option.ChainID] = usd
	}
	return resp
}

func statusCode(err error, fallback int) int {
	if errors.Is(err, bundle.ErrInvalidTransition) || errors.Is(err, bundle.ErrStaleEpoch) {
		return http.StatusConflict
	}
	return fallback
}
