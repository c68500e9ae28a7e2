// Команда healthcheck опрашивает gRPC health-сервис и завершается с кодом 1,
// если сервис не в состоянии SERVING. Используется в HEALTHCHECK контейнера.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/magabrotheeeer/greencontrol/internal/grpc/health"
)

func main() {
	addr := flag.String("addr", "localhost:50051", "адрес gRPC health-сервера")
	service := flag.String("service", health.ServiceName, "имя проверяемого сервиса")
	timeout := flag.Duration("timeout", 3*time.Second, "таймаут запроса")
	flag.Parse()

	c, err := health.NewClient(*addr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = c.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	ok, err := c.Serving(ctx, *service)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if !ok {
		fmt.Fprintln(os.Stderr, "not serving")
		os.Exit(1)
	}
	fmt.Println("serving")
}
