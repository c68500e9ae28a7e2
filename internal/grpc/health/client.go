package health

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Client опрашивает health-сервис по сети.
type Client struct {
	conn   *grpc.ClientConn
	client healthpb.HealthClient
}

// NewClient создает клиента для addr. Соединение устанавливается лениво.
func NewClient(addr string, opts ...grpc.DialOption) (*Client, error) {
	const op = "health.NewClient"
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Client{conn: conn, client: healthpb.NewHealthClient(conn)}, nil
}

// Close закрывает соединение.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Serving сообщает, обслуживает ли сервер service.
func (c *Client) Serving(ctx context.Context, service string) (bool, error) {
	const op = "health.Client.Serving"
	resp, err := c.client.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return resp.GetStatus() == healthpb.HealthCheckResponse_SERVING, nil
}
