package probe

import (
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/homeport/responder/internal/responder"
	"golang.org/x/exp/slog"
)

func setupResponder(t *testing.T) (string, func()) {
	t.Helper()

	r, err := responder.Listen("127.0.0.1:0", responder.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		t.Fatalf("Failed to start responder: %v", err)
	}

	done := make(chan struct{})
	go func() {
		r.Serve(context.Background())
		close(done)
	}()

	cleanup := func() {
		r.Close()
		<-done
	}

	return r.Addr().String(), cleanup
}

// setupCannedServer answers every connection with response, whatever was sent.
func setupCannedServer(t *testing.T, response string) (string, func()) {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to create test server: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			buf := make([]byte, 1024)
			conn.Read(buf)
			io.WriteString(conn, response)
			conn.Close()
		}
	}()

	cleanup := func() {
		listener.Close()
		<-done
	}

	return listener.Addr().String(), cleanup
}

func TestRun_AgainstResponder(t *testing.T) {
	addr, cleanup := setupResponder(t)
	defer cleanup()

	results, err := Run(context.Background(), addr)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}

	for _, result := range results {
		if !result.Passed {
			t.Errorf("Check %s failed: %s", result.Check, result.Detail)
		}
	}

	for i, want := range []Check{CheckGet, CheckBadRequest, CheckEmpty} {
		if results[i].Check != want {
			t.Errorf("Expected result %d to be %s, got %s", i, want, results[i].Check)
		}
	}
}

func TestRun_WrongAnswers(t *testing.T) {
	addr, cleanup := setupCannedServer(t, "HTTP/1.1 500 Internal Server Error\r\n\r\n")
	defer cleanup()

	results, err := Run(context.Background(), addr)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for _, result := range results {
		if result.Passed {
			t.Errorf("Expected check %s to fail", result.Check)
		}
		if result.Detail == "" {
			t.Errorf("Expected a detail for failed check %s", result.Check)
		}
	}
}

func TestRun_ConnectionRefused(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to reserve a port: %v", err)
	}
	addr := listener.Addr().String()
	listener.Close()

	if _, err := Run(context.Background(), addr, WithTimeout(time.Second)); err == nil {
		t.Fatal("Expected error when nothing listens")
	}
}

func TestVerifyGreeting(t *testing.T) {
	tests := map[string]struct {
		response string
		passed   bool
	}{
		"valid": {
			"HTTP/1.0 200 OK\r\nContent-Type: text/plain\r\nDate: Fri Oct 16 09:30:00 UTC 2026\r\nContent-length: 16\r\n\r\nHello, Homeport!",
			true,
		},
		"wrong status": {
			"HTTP/1.0 404 Not Found\r\nContent-length: 16\r\n\r\nHello, Homeport!",
			false,
		},
		"missing length": {
			"HTTP/1.0 200 OK\r\nContent-Type: text/plain\r\n\r\nHello, Homeport!",
			false,
		},
		"wrong body": {
			"HTTP/1.0 200 OK\r\nContent-length: 16\r\n\r\nHello, Homeport?",
			false,
		},
		"trailing newline": {
			"HTTP/1.0 200 OK\r\nContent-length: 16\r\n\r\nHello, Homeport!\r\n",
			false,
		},
		"no terminator": {
			"HTTP/1.0 200 OK\r\n",
			false,
		},
		"empty": {"", false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			result := verifyGreeting(CheckGet, tc.response)
			if result.Passed != tc.passed {
				t.Errorf("Expected passed=%v, got %v (%s)", tc.passed, result.Passed, result.Detail)
			}
		})
	}
}
