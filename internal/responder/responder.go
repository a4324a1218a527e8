package responder

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	units "github.com/docker/go-units"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// Responder owns the listening socket and serves one connection at a time.
// A client that never finishes its request blocks every client behind it.
type Responder struct {
	listener net.Listener
	logger   *slog.Logger
	now      func() time.Time
}

type Opt func(*Responder)

func WithLogger(logger *slog.Logger) Opt {
	return func(r *Responder) {
		r.logger = logger
	}
}

func WithClock(now func() time.Time) Opt {
	return func(r *Responder) {
		r.now = now
	}
}

// Listen binds a TCP socket on addr. Failing here means the server never
// started.
func Listen(addr string, opts ...Opt) (*Responder, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	return New(listener, opts...), nil
}

func New(listener net.Listener, opts ...Opt) *Responder {
	r := &Responder{
		listener: listener,
		logger:   slog.Default(),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *Responder) Addr() net.Addr {
	return r.listener.Addr()
}

func (r *Responder) Close() error {
	return r.listener.Close()
}

// Serve accepts and services connections until the listener is closed,
// either through Close or by cancelling ctx. Failures on a single
// connection are logged and never stop the loop.
func (r *Responder) Serve(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			r.listener.Close()
		case <-done:
		}
	}()

	r.logger.Info("Server is ready to handle requests", "addr", r.listener.Addr().String())

	for {
		conn, err := r.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				r.logger.Info("Server stopped")
				return nil
			}
			r.logger.Error("Failed to accept connection", "err", err)
			continue
		}

		id := uuid.NewString()
		remote := conn.RemoteAddr().String()

		ex, err := r.handle(conn)
		switch {
		case errors.Is(err, errNoRequest):
			r.logger.Debug("Client closed without sending a request", "conn", id, "remote", remote)

		case err != nil:
			r.logger.Error("Error handling request", "conn", id, "remote", remote, "err", err)

		default:
			r.logger.Debug("Served connection",
				"conn", id,
				"remote", remote,
				"get", ex.get,
				"read", units.HumanSize(float64(ex.read)),
				"written", units.HumanSize(float64(ex.written)),
			)
		}
	}
}

type exchange struct {
	get     bool
	read    int
	written int
}

func (r *Responder) handle(conn net.Conn) (ex exchange, err error) {
	defer func() {
		if cerr := conn.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close connection: %w", cerr)
		}
	}()

	raw, err := readRequest(bufio.NewReader(conn))
	if err != nil {
		return ex, err
	}
	ex.read = len(raw)
	ex.get = isGet(raw)

	response := badRequest
	if ex.get {
		response = okResponse(r.now())
	}

	ex.written, err = conn.Write(response)
	if err != nil {
		return ex, fmt.Errorf("failed to write response: %w", err)
	}

	return ex, nil
}
