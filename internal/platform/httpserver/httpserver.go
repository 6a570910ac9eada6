package httpserver

import (
	"net/http"
	"time"
)

// New builds the API server. The header timeout bounds slow-client reads;
// request deadlines belong to the handlers.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
