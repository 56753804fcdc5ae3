package nats

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/mark3labs/taskr/internal/logger"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	startTimeout    = 4 * time.Second
	connectTimeout  = 2 * time.Second
	drainTimeout    = 2 * time.Second
	shutdownTimeout = 5 * time.Second
)

// StartEmbeddedNATS starts an embedded NATS server with JetStream enabled
// using the specified data directory for file-based storage. The server
// listens on a random loopback port guarded by token so other taskr
// processes sharing the data dir can attach to it.
// Returns the server instance and its port, or an error if startup fails.
func StartEmbeddedNATS(dataDir, token string) (*server.Server, int, error) {
	logger.Debug("Starting embedded NATS server with data dir: %s", dataDir)

	opts := &server.Options{
		ServerName:    "taskr",
		JetStream:     true,
		StoreDir:      dataDir,
		Host:          "127.0.0.1",
		Port:          server.RANDOM_PORT,
		Authorization: token,
		NoSigs:        true,
		NoLog:         true,
	}

	ns, err := server.NewServer(opts)
	if err != nil {
		logger.Error("Failed to create NATS server: %v", err)
		return nil, 0, err
	}

	// Start server in background goroutine
	logger.Debug("Starting NATS server in background")
	go ns.Start()

	// Wait for server to be ready with timeout
	logger.Debug("Waiting for NATS server to be ready...")
	if !ns.ReadyForConnections(startTimeout) {
		logger.Error("NATS server failed to start within %s", startTimeout)
		ns.Shutdown()
		return nil, 0, errors.New("nats server failed to start within timeout")
	}

	addr, ok := ns.Addr().(*net.TCPAddr)
	if !ok {
		ns.Shutdown()
		return nil, 0, errors.New("nats server has no tcp listener")
	}

	logger.Debug("NATS server ready for connections on port %d", addr.Port)
	return ns, addr.Port, nil
}

// connOptions are shared by every taskr connection. Async errors go to the
// debug log, never to stderr.
func connOptions(token string) []nats.Option {
	return []nats.Option{
		nats.Name("taskr"),
		nats.Token(token),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			if sub != nil {
				logger.Debug("NATS async error on %s: %v", sub.Subject, err)
				return
			}
			logger.Debug("NATS async error: %v", err)
		}),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Debug("NATS disconnected: %v", err)
			}
		}),
	}
}

// ConnectInProcess creates an in-process connection to the embedded NATS server.
// This connection does not use network ports and communicates directly with the server.
func ConnectInProcess(ns *server.Server, token string) (*nats.Conn, error) {
	logger.Debug("Connecting to NATS server in-process")
	conn, err := nats.Connect("", append(connOptions(token), nats.InProcessServer(ns))...)
	if err != nil {
		logger.Error("Failed to connect to NATS in-process: %v", err)
		return nil, err
	}
	logger.Debug("Connected to NATS successfully")
	return conn, nil
}

// ConnectToPort connects to a server started by another taskr process.
// The connection does not reconnect: once the primary exits, writes fail
// and are logged by the store.
func ConnectToPort(port int, token string) (*nats.Conn, error) {
	url := fmt.Sprintf("nats://127.0.0.1:%d", port)
	logger.Debug("Connecting to NATS server at %s", url)
	opts := append(connOptions(token), nats.NoReconnect(), nats.Timeout(connectTimeout))
	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// CreateJetStream creates a JetStream context from a NATS connection.
func CreateJetStream(nc *nats.Conn) (jetstream.JetStream, error) {
	return jetstream.New(nc)
}

// Shutdown drains and closes the connection, then stops the server.
// Each phase is bounded so a wedged server cannot hang process exit.
func Shutdown(nc *nats.Conn, ns *server.Server) error {
	logger.Debug("Starting NATS shutdown")

	if nc != nil {
		drainDone := make(chan error, 1)
		go func() {
			drainDone <- nc.Drain()
		}()

		select {
		case err := <-drainDone:
			if err != nil {
				logger.Warn("NATS drain failed, forcing close: %v", err)
				nc.Close()
			}
		case <-time.After(drainTimeout):
			logger.Warn("NATS drain timed out after %s, forcing close", drainTimeout)
			nc.Close()
		}
	}

	if ns != nil {
		ns.Shutdown()

		shutdownDone := make(chan struct{})
		go func() {
			ns.WaitForShutdown()
			close(shutdownDone)
		}()

		select {
		case <-shutdownDone:
			logger.Debug("NATS server shut down cleanly")
		case <-time.After(shutdownTimeout):
			logger.Error("NATS server shutdown timed out after %s", shutdownTimeout)
			return errors.New("nats server shutdown timed out")
		}
	}

	return nil
}
