package server

/**
 * Created by GoLand.
 * Project: golang-walletauth
 * User: PETER DANIEL KILIMBA
 * Date: 22/12/2025
 * Time: 14:20
 */

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/vrecan/death/v3"
)

const (
	protocol          = "tcp"
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// ListenAndServe serves srv on addr until the process receives SIGINT or
// SIGTERM. The HTTP server and every closer (typically the store) are then
// closed. The closers are closed as well when addr cannot be listened on.
func (srv *Server) ListenAndServe(addr string, closers ...io.Closer) error {
	ln, err := net.Listen(protocol, addr)
	if err != nil {
		closeAll(closers)
		return fmt.Errorf("server: listen: %w", err)
	}
	return srv.Serve(ln, death.NewDeath(syscall.SIGINT, syscall.SIGTERM, os.Interrupt), closers...)
}

// Serve serves srv on ln until d fires.
func (srv *Server) Serve(ln net.Listener, d *death.Death, closers ...io.Closer) error {
	httpSrv := &http.Server{
		Handler:           srv,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ln.Addr().String()).Msg("server: listening")
		err := httpSrv.Serve(ln)
		if !errors.Is(err, http.ErrServerClosed) {
			// unblock WaitForDeathWithFunc below
			d.FallOnSword()
		}
		errc <- err
	}()

	// Graceful shutdown: the HTTP server goes first so no request touches a
	// closed store.
	d.WaitForDeathWithFunc(func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("server: shutdown")
		}
		closeAll(closers)
	})

	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info().Msg("server: stopped")
	return nil
}

func closeAll(closers []io.Closer) {
	for _, c := range closers {
		if err := c.Close(); err != nil {
			log.Error().Err(err).Msg("server: close")
		}
	}
}
