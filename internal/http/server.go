package http

import (
	"net/http"
	"time"
)

// Start levanta el listener HTTP y bloquea hasta que el server termine.
func Start(addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return srv.ListenAndServe()
}
