package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/MKhiriev/planner-sync/internal/config"
)

// readHeaderTimeout protects against slowloris-style clients.
const readHeaderTimeout = 10 * time.Second

type httpServer struct {
	server *http.Server
}

func newHTTPServer(handler http.Handler, cfg config.Server) *httpServer {
	return &httpServer{
		server: &http.Server{
			Addr:              cfg.HTTPAddress,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}
}

// listen binds the configured address so that bind errors surface before
// the server is reported as running.
func (h *httpServer) listen() (net.Listener, error) {
	return net.Listen("tcp", h.server.Addr)
}

func (h *httpServer) serve(ln net.Listener) error {
	if err := h.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (h *httpServer) shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}
