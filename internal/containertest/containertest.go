// Package containertest starts throwaway Docker containers for the
// integration tests of the store, cache and event packages.
package containertest

import (
	"context"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
)

const startAttempts = 3

// SkipIfShort skips t under go test -short.
func SkipIfShort(t testing.TB) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}

// FreePort returns a TCP port that was free a moment ago.
func FreePort(t testing.TB) int {
	t.Helper()
	l, err := net.Listen("tcp", "localhost:0")
	require.NoError(t, err)
	defer func() { _ = l.Close() }()
	return l.Addr().(*net.TCPAddr).Port
}

// PinHostPort binds containerPort (e.g. "9092/tcp") to hostPort. Use it for
// services that advertise their own address to clients.
func PinHostPort(containerPort string, hostPort int) func(*container.HostConfig) {
	return func(hc *container.HostConfig) {
		hc.PortBindings = nat.PortMap{
			nat.Port(containerPort): []nat.PortBinding{{HostPort: strconv.Itoa(hostPort)}},
		}
	}
}

// Start runs req and terminates the container when t finishes. Errors
// talking to the Docker socket are retried with a growing pause.
func Start(t testing.TB, req testcontainers.ContainerRequest) testcontainers.Container {
	t.Helper()
	ctx := context.Background()

	var (
		c   testcontainers.Container
		err error
	)
	for attempt := 1; attempt <= startAttempts; attempt++ {
		c, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
		if err == nil || !strings.Contains(err.Error(), "docker.sock") {
			break
		}
		time.Sleep(time.Duration(attempt) * time.Second)
	}
	require.NoError(t, err, "starting %s", req.Image)

	t.Cleanup(func() {
		if err := c.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate %s: %v", req.Image, err)
		}
	})
	return c
}

// Endpoint returns the host and mapped host port of port (e.g. "6379").
func Endpoint(t testing.TB, c testcontainers.Container, port string) (string, int) {
	t.Helper()
	ctx := context.Background()

	host, err := c.Host(ctx)
	require.NoError(t, err)
	mapped, err := c.MappedPort(ctx, nat.Port(port))
	require.NoError(t, err)
	return host, mapped.Int()
}

// WaitDial blocks until addr accepts TCP connections.
func WaitDial(t testing.TB, addr string, timeout time.Duration) {
	t.Helper()
	require.Eventually(t, func() bool {
		conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	}, timeout, 500*time.Millisecond, "%s not accepting connections", addr)
}
