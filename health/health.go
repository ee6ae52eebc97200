// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
)

const (
	CHECK_TIMEOUT = 5 * time.Second
)

type BlockNumberReader interface {
	BlockNumber(ctx context.Context) (uint64, error)
}

type ChainHealth struct {
	ChainID     uint64 `json:"chainId"`
	BlockNumber uint64 `json:"blockNumber,omitempty"`
	Error       string `json:"error,omitempty"`
}

type Report struct {
	Healthy bool          `json:"healthy"`
	Chains  []ChainHealth `json:"chains"`
}

// Check queries the latest block of every chain concurrently.
func Check(ctx context.Context, chains map[uint64]BlockNumberReader) Report {
	p := pool.NewWithResults[ChainHealth]()
	for chainID, reader := range chains {
		p.Go(func() ChainHealth {
			h := ChainHealth{ChainID: chainID}
			block, err := reader.BlockNumber(ctx)
			if err != nil {
				h.Error = err.Error()
				return h
			}
			h.BlockNumber = block
			return h
		})
	}

	results := p.Wait()
	sort.Slice(results, func(i, j int) bool { return results[i].ChainID < results[j].ChainID })

	report := Report{Healthy: true, Chains: results}
	for _, r := range results {
		if r.Error != "" {
			report.Healthy = false
		}
	}
	return report
}

// Handler reports per chain RPC health and returns 503 if any chain is unreachable.
func Handler(chains map[uint64]BlockNumberReader, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		report := Check(ctx, chains)
		code := http.StatusOK
		if !report.Healthy {
			code = http.StatusServiceUnavailable
		}

		data, _ := json.Marshal(report)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_, _ = w.Write(data)
	}
}

// StartHealthEndpoint starts /health endpoint on provided port that reports chain health on invocation
func StartHealthEndpoint(port uint16, chains map[uint64]BlockNumberReader) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", Handler(chains, CHECK_TIMEOUT))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       30 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	log.Info().Msgf("started /health endpoint on port %d", port)
	err := srv.ListenAndServe()
	if err != nil {
		log.Err(err).Msgf("Failed starting health server")
		return
	}
}
