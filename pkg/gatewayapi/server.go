// Package gatewayapi implements the HTTP surface of §4.6, grounded on
// the teacher's pkg/pdp/apiv2/server shape: an *echo.Echo built once in
// NewServer, routes registered in a dedicated function, a custom error
// handler, and a thin Start/Shutdown wrapper.
package gatewayapi

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	logging "github.com/ipfs/go-log/v2"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/cidgate/cidgate/internal/httperr"
	"github.com/cidgate/cidgate/pkg/gwcontext"
	"github.com/cidgate/cidgate/pkg/health"
)

var log = logging.Logger("gatewayapi")

// Server wraps the configured *echo.Echo for this gateway's HTTP API.
type Server struct {
	e   *echo.Echo
	ctx *gwcontext.Context
}

// NewServer builds the gateway API server over the given shared
// context. checker may be nil, in which case no /healthz, /livez, or
// /readyz routes are registered (useful for tests that only exercise
// the route/data surface).
func NewServer(ctx *gwcontext.Context, checker *health.Checker) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(otelecho.Middleware("cidgate-gatewayapi"))
	e.Use(echomiddleware.LoggerWithConfig(echomiddleware.LoggerConfig{
		Skipper: echomiddleware.DefaultSkipper,
	}))
	e.HTTPErrorHandler = httperr.Handle

	s := &Server{e: e, ctx: ctx}
	s.registerRoutes()
	if checker != nil {
		health.NewHandler(checker).Register(e)
	}
	return s
}

func (s *Server) registerRoutes() {
	s.e.GET("/v1/routes", s.listRoutes)
	s.e.GET("/v1/routes/:cid", s.routesForCid)
	s.e.GET("/v1/routes/stubs", s.listStubs)
	s.e.GET("/v1/providers", s.listProviders)
	s.e.GET("/v1/data/:cid", s.getData)
	s.e.POST("/v1/data", s.postData)
}

// Start binds and serves, returning once the listener is up or startup
// fails; it does not block past that point.
func (s *Server) Start(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.e.Start(addr)
	}()
	return waitForStart(ctx, s.e, errCh, 2*time.Second)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

// Handler returns the server's http.Handler, for embedding in an
// httptest.Server or another outer mux without binding a real listener.
func (s *Server) Handler() http.Handler {
	return s.e
}

func waitForStart(ctx context.Context, e *echo.Echo, errCh <-chan error, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			var addr net.Addr = e.ListenerAddr()
			if addr != nil && strings.Contains(addr.String(), ":") {
				return nil
			}
		case err := <-errCh:
			return err
		}
	}
}
