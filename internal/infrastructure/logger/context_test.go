package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestWithContext(t *testing.T) {
	logger, err := New(DefaultConfig())
	require.NoError(t, err)

	ctx := context.Background()
	ctxWithLogger := WithContext(ctx, logger)

	retrievedLogger := FromContext(ctxWithLogger)
	assert.NotNil(t, retrievedLogger)
}

func TestFromContext_NotFound(t *testing.T) {
	ctx := context.Background()
	logger := FromContext(ctx)

	// Should return a no-op logger
	assert.NotNil(t, logger)
}

func TestWithRequestID(t *testing.T) {
	logger, err := New(DefaultConfig())
	require.NoError(t, err)

	ctx := context.Background()
	requestID := "req-123"

	newCtx, newLogger := WithRequestID(ctx, logger, requestID)

	assert.NotNil(t, newCtx)
	assert.NotNil(t, newLogger)
	assert.Equal(t, requestID, GetRequestID(newCtx))
}

func TestWithActorID(t *testing.T) {
	logger, err := New(DefaultConfig())
	require.NoError(t, err)

	ctx := context.Background()
	actorID := "actor-456"

	newCtx, newLogger := WithActorID(ctx, logger, actorID)

	assert.NotNil(t, newCtx)
	assert.NotNil(t, newLogger)
	assert.Equal(t, actorID, GetActorID(newCtx))
}

func TestGetRequestID_NotFound(t *testing.T) {
	ctx := context.Background()
	requestID := GetRequestID(ctx)

	assert.Empty(t, requestID)
}

func TestGetActorID_NotFound(t *testing.T) {
	ctx := context.Background()
	actorID := GetActorID(ctx)

	assert.Empty(t, actorID)
}

// newObservedLogger returns a logger writing JSON to the given buffer
func newObservedLogger(buf *bytes.Buffer) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(buf),
		zapcore.DebugLevel,
	)
	return zap.New(core)
}

func TestContextLogger_InjectsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	logger := newObservedLogger(&buf)

	ctx := WithContext(context.Background(), logger)
	ctx, _ = WithRequestID(ctx, logger, "req-abc")
	ctx = context.WithValue(ctx, ActorIDKey, "actor-xyz")

	L(ctx).Info("hello")

	output := buf.String()
	assert.Contains(t, output, "req-abc")
	assert.Contains(t, output, "actor-xyz")
	assert.Contains(t, output, "hello")
}

func TestContextLogger_NilLoggerIsSafe(t *testing.T) {
	cl := &ContextLogger{ctx: context.Background()}

	assert.NotPanics(t, func() {
		cl.Info("no logger attached")
	})
}

func TestContextLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := newObservedLogger(&buf)

	ctx := WithContext(context.Background(), logger)
	L(ctx).With(zap.String("component", "test")).Info("message")

	assert.Contains(t, buf.String(), "component")
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newObservedLogger(&buf)

	cl := WithLogger(context.Background(), logger)
	cl.Info("direct logger")

	assert.Contains(t, buf.String(), "direct logger")
}
