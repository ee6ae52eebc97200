package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sprintertech/sprinter-omnichain/orchestrator"
	"github.com/sprintertech/sprinter-omnichain/verifier"
)

type VerifyHandler struct {
	verifier *verifier.Verifier
	executor Executor
}

func NewVerifyHandler(verifier *verifier.Verifier, executor Executor) *VerifyHandler {
	return &VerifyHandler{
		verifier: verifier,
		executor: executor,
	}
}

// HandleRequest verifies the arguments of a single operation without
// executing anything. Intents are verified per chain and merged, pay and
// cash out take raw parameters.
func (h *VerifyHandler) HandleRequest(w http.ResponseWriter, r *http.Request) {
	kind := verifier.Kind(mux.Vars(r)["kind"])

	var result *verifier.Result
	switch kind {
	case verifier.Pay, verifier.CashOut:
		{
			params := verifier.Params{}
			d := json.NewDecoder(r.Body)
			d.UseNumber()
			err := d.Decode(&params)
			if err != nil {
				JSONError(w, fmt.Errorf("invalid request body: %s", err), http.StatusBadRequest)
				return
			}
			result = h.verifier.Verify(kind, params)
		}
	default:
		{
			var raw json.RawMessage
			err := json.NewDecoder(r.Body).Decode(&raw)
			if err != nil {
				JSONError(w, fmt.Errorf("invalid request body: %s", err), http.StatusBadRequest)
				return
			}
			intent, err := orchestrator.DecodeIntent(kind, raw)
			if err != nil {
				JSONError(w, err, http.StatusBadRequest)
				return
			}
			result = h.executor.Verify(intent)
		}
	}

	JSONResponse(w, result, http.StatusOK)
}
