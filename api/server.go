package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/sprintertech/sprinter-omnichain/api/handlers"
)

func NewRouter(bundleHandler *handlers.BundleHandler, verifyHandler *handlers.VerifyHandler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/v1/bundles", bundleHandler.HandleCreate).Methods("POST")
	r.HandleFunc("/v1/bundles/{id}", bundleHandler.HandleGet).Methods("GET")
	r.HandleFunc("/v1/bundles/{id}", bundleHandler.HandleReset).Methods("DELETE")
	r.HandleFunc("/v1/bundles/{id}/events", bundleHandler.HandleEvents).Methods("GET")
	r.HandleFunc("/v1/bundles/{id}/payment", bundleHandler.HandlePayment).Methods("POST")
	r.HandleFunc("/v1/verify/{kind}", verifyHandler.HandleRequest).Methods("POST")
	return r
}

func Serve(
	ctx context.Context,
	addr string,
	bundleHandler *handlers.BundleHandler,
	verifyHandler *handlers.VerifyHandler,
) {
	server := &http.Server{
		Addr:        addr,
		Handler:     NewRouter(bundleHandler, verifyHandler),
		ReadTimeout: time.Second * 10,
	}
	go func() {
		log.Info().Msgf("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := server.Shutdown(shutdownCtx)
	if err != nil {
		log.Err(err).Msgf("Error shutting down server")
	} else {
		log.Info().Msgf("Server shut down gracefully.")
	}
}
