package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestServer(t *testing.T) {
	t.Run("should serve until the context is cancelled", func(t *testing.T) {
		addr := freeAddr(t)
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		})
		srv := New(addr, handler)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- srv.Run(ctx) }()

		var resp *http.Response
		require.Eventually(t, func() bool {
			r, err := http.Get(fmt.Sprintf("http://%s/", addr))
			if err != nil {
				return false
			}
			resp = r
			return true
		}, 2*time.Second, 20*time.Millisecond)
		resp.Body.Close()
		assert.Equal(t, http.StatusTeapot, resp.StatusCode)

		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("server did not stop")
		}
	})

	t.Run("should return listen errors", func(t *testing.T) {
		l, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer l.Close()

		err = New(l.Addr().String(), http.NotFoundHandler()).Run(context.Background())
		assert.Error(t, err)
	})
}
