package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sprintertech/sprinter-omnichain/bundle"
)

const (
	EVENT_BUFFER = 32
)

// HandleEvents streams bundle snapshots as server-sent events until the
// bundle reaches a terminal status, the execution ends or the client leaves.
func (h *BundleHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	e, ok := h.execution(w, r)
	if !ok {
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		JSONError(w, fmt.Errorf("streaming not supported"), http.StatusInternalServerError)
		return
	}

	updates := make(chan bundle.Bundle, h.eventBuffer)
	unsubscribe := e.Subscribe(func(b bundle.Bundle) {
		// listeners run under the machine lock
		select {
		case updates <- b:
		default:
		}
	})
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	last := e.Snapshot()
	if !writeEvent(w, flusher, last) || last.Status.Terminal() {
		return
	}

	for {
		select {
		case b := <-updates:
			if !writeEvent(w, flusher, b) || b.Status.Terminal() {
				return
			}
			last = b
		case <-e.Done():
			// drain what was published before the execution ended
			for {
				select {
				case b := <-updates:
					if !writeEvent(w, flusher, b) || b.Status.Terminal() {
						return
					}
					last = b
				default:
					// the final update may have been dropped on a full buffer
					if final := e.Snapshot(); final.Status != last.Status {
						writeEvent(w, flusher, final)
					}
					return
				}
			}
		case <-r.Context().Done():
			return
		}
	}
}

func writeEvent(w http.ResponseWriter, flusher http.Flusher, b bundle.Bundle) bool {
	data, err := json.Marshal(b)
	if err != nil {
		return false
	}

	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", b.Status, data)
	if err != nil {
		return false
	}
	flusher.Flush()
	return true
}
