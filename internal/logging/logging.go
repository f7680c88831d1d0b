// Package logging builds the structured logger shared by the adapters and
// services.
package logging

import (
	"io"
	"log/slog"
)

// New returns a logger writing to w. Format "json" selects the JSON
// handler; anything else writes logfmt-style text.
func New(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if format == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h)
}
