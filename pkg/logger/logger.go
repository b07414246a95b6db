// Package logger configures the process-wide slog logger and tags records
// with request scoped values carried in the context.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

type ctxKey uint8

const (
	ctxKeyRequestID ctxKey = iota
	ctxKeyUserID
	ctxKeySessionID
)

var ctxAttrs = []struct {
	key  ctxKey
	name string
}{
	{ctxKeyRequestID, "request_id"},
	{ctxKeyUserID, "user_id"},
	{ctxKeySessionID, "session_id"},
}

// Handler adds request_id, user_id and session_id to every record whose
// context carries them.
type Handler struct {
	slog.Handler
}

func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	for _, a := range ctxAttrs {
		if v, ok := ctx.Value(a.key).(string); ok && v != "" {
			record.AddAttrs(slog.String(a.name, v))
		}
	}

	return h.Handler.Handle(ctx, record)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{h.Handler.WithAttrs(attrs)}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{h.Handler.WithGroup(name)}
}

// New installs a JSON logger writing to stdout as the default one.
func New(level string) (*slog.Logger, error) {
	return NewWithWriter(os.Stdout, level)
}

func NewWithWriter(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level

	err := lvl.UnmarshalText([]byte(level))
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}

	l := slog.New(&Handler{slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})})

	slog.SetDefault(l)

	return l, nil
}

func SetRequestID(ctx context.Context, reqID string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, reqID)
}

func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKeyUserID, userID)
}

func SetSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, ctxKeySessionID, sessionID)
}

func RequestIDFromCtx(ctx context.Context) string {
	reqID, _ := ctx.Value(ctxKeyRequestID).(string)
	return reqID
}
