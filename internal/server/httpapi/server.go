// Package httpapi exposes the public HTTP surface: login, account and
// product CRUD, and product image URLs. Every request passes through the
// identity middleware, which resolves the Authorization header into an
// identity (or anonymous) before handlers run.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/mkropacheva/storefront/internal/logging"
	"github.com/mkropacheva/storefront/internal/server/services"
)

type Server struct {
	address   string
	logger    logging.Logger
	accounts  *services.AccountService
	products  *services.ProductService
	jwtSecret []byte
}

func NewServer(address string, l logging.Logger, as *services.AccountService, ps *services.ProductService, secretKey string) *Server {
	return &Server{
		address:   address,
		logger:    l.With("module", "http_server"),
		accounts:  as,
		products:  ps,
		jwtSecret: []byte(secretKey),
	}
}

func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
