package httpserver

import (
	"net/http"
	"time"
)

// New returns an *http.Server with conservative timeouts. Proof generation is
// slow, so the write timeout is generous; the read header timeout still guards
// against slowloris-style clients.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      10 * time.Minute,
		IdleTimeout:       120 * time.Second,
	}
}
