package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/samandr77/microservices/compliance/pkg/logger"
)

func TestHandler_Handle(t *testing.T) { //nolint:paralleltest // replaces the default logger
	buf := new(bytes.Buffer)

	l, err := logger.NewWithWriter(buf, "debug")
	require.NoError(t, err)

	ctx := logger.SetRequestID(context.Background(), "req-1")
	ctx = logger.SetUserID(ctx, "user-1")
	ctx = logger.SetSessionID(ctx, "")

	l.With("component", "test").InfoContext(ctx, "hello")

	var record map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	require.Equal(t, "req-1", record["request_id"])
	require.Equal(t, "user-1", record["user_id"])
	require.Equal(t, "test", record["component"])
	require.NotContains(t, record, "session_id")

	require.Equal(t, "req-1", logger.RequestIDFromCtx(ctx))
	require.Empty(t, logger.RequestIDFromCtx(context.Background()))
}

func TestNew_BadLevel(t *testing.T) {
	t.Parallel()

	_, err := logger.NewWithWriter(new(bytes.Buffer), "loud")
	require.Error(t, err)
}
