package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/subcommands"
)

type serveCmd struct {
	addr    string
	handler http.Handler
	log     *slog.Logger
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run the HTTP API and web app" }
func (*serveCmd) Usage() string {
	return `slimtrack serve [-addr <host:port>]

  Serves the JSON API under /api and the single-page app from
  SLIMTRACK_WEB_DIR until interrupted.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", c.addr, "Listen address (overrides SLIMTRACK_ADDR).")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	srv := &http.Server{
		Addr:              c.addr,
		Handler:           c.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		c.log.Info("listening", "addr", c.addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			c.log.Error("server stopped", "error", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		c.log.Error("shutdown", "error", err)
		return subcommands.ExitFailure
	}
	c.log.Info("server stopped")
	return subcommands.ExitSuccess
}
