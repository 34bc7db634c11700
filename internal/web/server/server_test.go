package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidation(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = New(&Config{Address: ":0"})
	assert.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig(http.NotFoundHandler())
	assert.Equal(t, ":8080", cfg.Address)
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 1<<20, cfg.MaxHeaderBytes)
}

func TestRunServesAndShutsDown(t *testing.T) {
	cfg := DefaultConfig(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "hello")
	}))
	cfg.Address = "127.0.0.1:0"
	cfg.ShutdownTimeout = time.Second

	srv, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, srv.Listen())

	hookCalled := make(chan struct{})
	srv.OnShutdown(func(context.Context) error {
		close(hookCalled)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	resp, err := http.Get("http://" + srv.Addr() + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	select {
	case <-hookCalled:
	default:
		t.Fatal("shutdown hook not called")
	}
}

func TestRunReportsHookErrors(t *testing.T) {
	cfg := DefaultConfig(http.NotFoundHandler())
	cfg.Address = "127.0.0.1:0"

	srv, err := New(cfg)
	require.NoError(t, err)

	hookErr := errors.New("flush failed")
	srv.OnShutdown(func(context.Context) error { return hookErr })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, srv.Run(ctx), hookErr)
}

func TestListenFailure(t *testing.T) {
	first, err := New(&Config{Address: "127.0.0.1:0", Handler: http.NotFoundHandler()})
	require.NoError(t, err)
	require.NoError(t, first.Listen())

	second, err := New(&Config{Address: first.Addr(), Handler: http.NotFoundHandler()})
	require.NoError(t, err)
	assert.Error(t, second.Listen())
}
