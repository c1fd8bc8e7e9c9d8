// Command server runs the Kitchen Rush game server.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"kitchen-rush/server/internal/app"
)

func main() {
	addr := flag.String("addr", "", "listen address (defaults to :8080 or $PORT)")
	clientDir := flag.String("client-dir", "", "directory of static client assets to serve at /")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, app.Config{Addr: *addr, ClientDir: *clientDir}); err != nil {
		log.Fatalf("%v", err)
	}
}
