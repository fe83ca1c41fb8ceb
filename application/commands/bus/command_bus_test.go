package bus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type pingCommand struct {
	invalid bool
}

func (c pingCommand) Validate() error {
	if c.invalid {
		return errors.New("invalid ping")
	}
	return nil
}

type otherCommand struct{}

func (otherCommand) Validate() error { return nil }

type dispatch struct {
	kind, name string
	err        error
}

type recorderStub struct {
	calls []dispatch
}

func (r *recorderStub) RecordDispatch(kind, name string, _ time.Duration, err error) {
	r.calls = append(r.calls, dispatch{kind: kind, name: name, err: err})
}

func TestCommandBus_Send(t *testing.T) {
	b := NewCommandBus()
	require.NoError(t, b.Register(pingCommand{}, CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) {
		return "pong", nil
	})))

	result, err := b.Send(context.Background(), pingCommand{})

	require.NoError(t, err)
	assert.Equal(t, "pong", result)
}

func TestCommandBus_RegisterTwice(t *testing.T) {
	b := NewCommandBus()
	h := CommandHandlerFunc(func(context.Context, Command) (interface{}, error) { return nil, nil })

	require.NoError(t, b.Register(pingCommand{}, h))
	assert.ErrorContains(t, b.Register(pingCommand{}, h), "already registered")
}

func TestCommandBus_NoHandler(t *testing.T) {
	b := NewCommandBus()

	_, err := b.Send(context.Background(), otherCommand{})

	assert.ErrorContains(t, err, "no handler registered")
}

func TestCommandBus_ValidationStopsDispatch(t *testing.T) {
	called := false
	b := NewCommandBus()
	require.NoError(t, b.Register(pingCommand{}, CommandHandlerFunc(func(context.Context, Command) (interface{}, error) {
		called = true
		return nil, nil
	})))

	_, err := b.Send(context.Background(), pingCommand{invalid: true})

	assert.EqualError(t, err, "invalid ping")
	assert.False(t, called)
}

func TestCommandBus_HandlerErrorUnwrapped(t *testing.T) {
	sentinel := errors.New("boom")
	b := NewCommandBus()
	require.NoError(t, b.Register(pingCommand{}, CommandHandlerFunc(func(context.Context, Command) (interface{}, error) {
		return nil, sentinel
	})))

	_, err := b.Send(context.Background(), pingCommand{})

	assert.Same(t, sentinel, err)
}

func TestCommandBus_MiddlewareOrder(t *testing.T) {
	var order []string
	trace := func(name string) Middleware {
		return func(next CommandHandler) CommandHandler {
			return CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) {
				order = append(order, name)
				return next.Handle(ctx, cmd)
			})
		}
	}

	b := NewCommandBus(trace("outer"), trace("inner"))
	require.NoError(t, b.Register(pingCommand{}, CommandHandlerFunc(func(context.Context, Command) (interface{}, error) {
		order = append(order, "handler")
		return nil, nil
	})))

	_, err := b.Send(context.Background(), pingCommand{})

	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestCommandBus_LoggingAndMetrics(t *testing.T) {
	rec := &recorderStub{}
	sentinel := errors.New("boom")
	b := NewCommandBus(LoggingMiddleware(zap.NewNop()), MetricsMiddleware(rec))
	require.NoError(t, b.Register(pingCommand{}, CommandHandlerFunc(func(context.Context, Command) (interface{}, error) {
		return nil, nil
	})))
	require.NoError(t, b.Register(otherCommand{}, CommandHandlerFunc(func(context.Context, Command) (interface{}, error) {
		return nil, sentinel
	})))

	_, err := b.Send(context.Background(), pingCommand{})
	require.NoError(t, err)
	_, err = b.Send(context.Background(), otherCommand{})
	require.ErrorIs(t, err, sentinel)

	assert.Equal(t, []dispatch{
		{kind: "command", name: "pingCommand"},
		{kind: "command", name: "otherCommand", err: sentinel},
	}, rec.calls)
}
