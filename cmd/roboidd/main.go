// Command roboidd is the Roboid runtime's composition root: it loads
// configuration, discovers and connects every Hamster bridge on the
// ports named in ROBOID_PORTS (or on every enumerated port, if that is
// unset), starts the
// scheduler, and optionally serves the MongoDB event logger and the
// HTTP monitoring dashboard, shutting everything down gracefully on
// SIGINT/SIGTERM.
//
// Configuration, loaded from a .env file and the environment:
//   - DEBUG: enable verbose logging (shared.InitConfig)
//   - ROBOID_PORTS: comma-separated serial port names to try, in order;
//     empty means try every port ListPorts reports
//   - ROBOID_MONGO_URI / ROBOID_MONGO_DATABASE: enable the telemetry
//     logger when set
//   - ROBOID_HTTP_ADDR: enable the monitoring dashboard when set (e.g.
//     ":8080")
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"roboid/httpapi"
	"roboid/roboid"
	"roboid/shared"
	"roboid/telemetry"

	"github.com/joho/godotenv"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := godotenv.Load(".env"); err != nil {
		shared.DebugPrint("no .env file loaded: %v", err)
	}
	shared.InitConfig()

	shared.DebugPrint("roboidd starting on:")
	for _, ip := range shared.GetLocalIPs() {
		shared.DebugPrint("  %s", ip)
	}

	mgr := roboid.NewManager()

	ports, err := candidatePorts()
	if err != nil {
		shared.DebugPanic("failed to enumerate serial ports: %v", err)
	}
	if len(ports) == 0 {
		shared.DebugPanic("no serial ports available to connect a Hamster")
	}

	remaining := ports
	for len(remaining) > 0 {
		h, err := roboid.Connect(mgr, remaining)
		if err != nil {
			break
		}
		shared.DebugPrint("connected %s", h)
		remaining = withoutPort(remaining, h.PortName())
	}
	if len(mgr.Robots()) == 0 {
		shared.DebugPanic("failed to connect any Hamster")
	}

	mgr.Start()
	mgr.WaitUntilReady()
	shared.DebugPrint("%d robot(s) ready", len(mgr.Robots()))

	var wg sync.WaitGroup

	var logger *telemetry.Logger
	if uri := os.Getenv("ROBOID_MONGO_URI"); uri != "" {
		dbName := os.Getenv("ROBOID_MONGO_DATABASE")
		logger, err = telemetry.NewLogger(ctx, mgr.Bus(), uri, dbName)
		if err != nil {
			shared.DebugError(err)
		} else {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-ctx.Done()
				logger.Close()
			}()
		}
	}

	if addr := os.Getenv("ROBOID_HTTP_ADDR"); addr != "" {
		srv := httpapi.NewServer(mgr)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := srv.Serve(ctx, addr); err != nil {
				shared.DebugError(err)
				cancel()
			}
		}()
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-ctx.Done():
		shared.DebugPrint("context cancelled, shutting down...")
	case <-sigs:
		shared.DebugPrint("received termination signal, shutting down...")
	}

	cancel()
	mgr.DisposeAll()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		shared.DebugPrint("shut down gracefully.")
	case <-time.After(10 * time.Second):
		shared.DebugPrint("timeout waiting for shutdown, forcing exit.")
	}
}

// candidatePorts returns the ports to try, honoring ROBOID_PORTS when
// set and otherwise falling back to every enumerated serial port.
func candidatePorts() ([]string, error) {
	if raw := os.Getenv("ROBOID_PORTS"); raw != "" {
		names := strings.Split(raw, ",")
		for i := range names {
			names[i] = strings.TrimSpace(names[i])
		}
		return names, nil
	}

	infos, err := roboid.ListPorts()
	if err != nil {
		return nil, fmt.Errorf("roboidd: %w", err)
	}
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}
	return names, nil
}

// withoutPort drops the named port from the candidate list so the next
// Connect call doesn't retry an already-claimed bridge.
func withoutPort(ports []string, name string) []string {
	out := make([]string, 0, len(ports))
	for _, p := range ports {
		if p != name {
			out = append(out, p)
		}
	}
	return out
}
