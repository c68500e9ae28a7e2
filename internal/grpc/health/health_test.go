package health

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"

	"github.com/magabrotheeeer/greencontrol/internal/lib/sl"
)

type checkFunc func(ctx context.Context) error

func (f checkFunc) Ping(ctx context.Context) error { return f(ctx) }

func startBufServer(t *testing.T, s *Server) *Client {
	t.Helper()

	lis := bufconn.Listen(1024 * 1024)
	gs := grpc.NewServer()
	s.Register(gs)
	go func() { _ = gs.Serve(lis) }()
	t.Cleanup(gs.Stop)

	c, err := NewClient("passthrough:///bufnet", grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestServer_NotServingBeforeFirstCheck(t *testing.T) {
	s := NewServer(sl.Discard(), time.Minute, map[string]Checker{
		"postgres": checkFunc(func(context.Context) error { return nil }),
	})
	c := startBufServer(t, s)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ok, err := c.Serving(ctx, ServiceName)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestServer_Check(t *testing.T) {
	redisDown := errors.New("redis down")
	var redisErr error

	s := NewServer(sl.Discard(), time.Minute, map[string]Checker{
		"postgres": checkFunc(func(context.Context) error { return nil }),
		"redis":    checkFunc(func(context.Context) error { return redisErr }),
	})
	c := startBufServer(t, s)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	failed := s.Check(ctx)
	assert.Empty(t, failed)
	ok, err := c.Serving(ctx, "")
	require.NoError(t, err)
	assert.True(t, ok)

	redisErr = redisDown
	failed = s.Check(ctx)
	assert.ErrorIs(t, failed["redis"], redisDown)

	ok, err = c.Serving(ctx, ServiceName)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = c.Serving(ctx, "postgres")
	require.NoError(t, err)
	assert.True(t, ok, "отдельная проверка postgres не зависит от redis")
}

func TestClient_UnknownService(t *testing.T) {
	s := NewServer(sl.Discard(), time.Minute, nil)
	c := startBufServer(t, s)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := c.Serving(ctx, "payments")
	assert.Error(t, err)
}
