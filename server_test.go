package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"yatube/config"
	"yatube/service"
)

func TestServerGracefulShutdown(t *testing.T) {
	// Find an available port.
	listener, err := net.Listen("tcp", "localhost:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	dir := t.TempDir()
	t.Setenv("YATUBE_SERVER_ADDR", fmt.Sprintf("localhost:%d", port))
	t.Setenv("YATUBE_DATABASE_PATH", filepath.Join(dir, "yatube.db"))
	t.Setenv("YATUBE_MEDIA_ROOT", filepath.Join(dir, "media"))
	t.Setenv("YATUBE_AUTH_SECRET", "test-secret")
	t.Setenv("YATUBE_LOGGING_LEVEL", "error")

	cfg, err := config.Load("")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- service.RunAppServer(ctx, cfg) }()

	// Wait for the server to answer.
	url := fmt.Sprintf("http://localhost:%d/", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	// Initiate graceful shutdown.
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServerRequiresSecret(t *testing.T) {
	t.Setenv("YATUBE_AUTH_SECRET", "")
	t.Setenv("YATUBE_DATABASE_PATH", filepath.Join(t.TempDir(), "yatube.db"))

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Error(t, service.RunAppServer(context.Background(), cfg))
}
