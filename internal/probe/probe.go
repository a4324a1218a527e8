package probe

import (
	"context"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"github.com/homeport/responder/internal/config"
	"golang.org/x/sync/errgroup"
)

const DefaultTimeout = 5 * time.Second

type Check string

const (
	CheckGet        Check = "get"
	CheckBadRequest Check = "bad-request"
	CheckEmpty      Check = "empty"
)

const (
	getRequest          = "GET / HTTP/1.0\r\n\r\n"
	badRequest          = "DELETE /x HTTP/1.0\r\n\r\n"
	badRequestResponse  = "HTTP/1.0 400 Bad Request\r\n\r\n"
	okStatusLine        = "HTTP/1.0 200 OK"
	contentLengthHeader = "Content-length: 16"
)

// Result is the outcome of one check. A mismatching answer is a failed
// Result, not an error.
type Result struct {
	Check  Check
	Passed bool
	Detail string
}

type options struct {
	timeout time.Duration
}

type Opt func(*options)

func WithTimeout(timeout time.Duration) Opt {
	return func(o *options) {
		o.timeout = timeout
	}
}

type checkFunc func(ctx context.Context, addr string, o options) (Result, error)

// Run executes every check against the responder at addr. The responder
// serves them in accept order. Connection failures abort the run.
func Run(ctx context.Context, addr string, opts ...Opt) ([]Result, error) {
	o := options{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	checks := []struct {
		name Check
		run  checkFunc
	}{
		{CheckGet, checkGet},
		{CheckBadRequest, checkBadRequest},
		{CheckEmpty, checkEmpty},
	}

	results := make([]Result, len(checks))
	eg, ctx := errgroup.WithContext(ctx)

	for i, c := range checks {
		i, c := i, c
		eg.Go(func() error {
			result, err := c.run(ctx, addr, o)
			if err != nil {
				return fmt.Errorf("check %s against %s failed: %w", c.name, addr, err)
			}

			results[i] = result
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func checkGet(ctx context.Context, addr string, o options) (Result, error) {
	response, err := exchange(ctx, addr, getRequest, o.timeout)
	if err != nil {
		return Result{}, err
	}

	return verifyGreeting(CheckGet, response), nil
}

func checkBadRequest(ctx context.Context, addr string, o options) (Result, error) {
	response, err := exchange(ctx, addr, badRequest, o.timeout)
	if err != nil {
		return Result{}, err
	}

	if response != badRequestResponse {
		return Result{Check: CheckBadRequest, Detail: fmt.Sprintf("expected %q, got %q", badRequestResponse, response)}, nil
	}

	return Result{Check: CheckBadRequest, Passed: true, Detail: "rejected with 400"}, nil
}

// checkEmpty connects without sending anything and then makes sure the
// server still answers.
func checkEmpty(ctx context.Context, addr string, o options) (Result, error) {
	conn, err := dial(ctx, addr, o.timeout)
	if err != nil {
		return Result{}, err
	}
	conn.Close()

	response, err := exchange(ctx, addr, getRequest, o.timeout)
	if err != nil {
		return Result{}, err
	}

	result := verifyGreeting(CheckEmpty, response)
	if result.Passed {
		result.Detail = "still serving after an empty connection"
	}

	return result, nil
}

func verifyGreeting(check Check, response string) Result {
	head, body, found := strings.Cut(response, "\r\n\r\n")
	if !found {
		return Result{Check: check, Detail: fmt.Sprintf("no header terminator in %q", response)}
	}

	lines := strings.Split(head, "\r\n")
	if lines[0] != okStatusLine {
		return Result{Check: check, Detail: fmt.Sprintf("unexpected status line %q", lines[0])}
	}

	if !contains(lines[1:], contentLengthHeader) {
		return Result{Check: check, Detail: fmt.Sprintf("missing %q header", contentLengthHeader)}
	}

	if body != config.Greeting {
		return Result{Check: check, Detail: fmt.Sprintf("unexpected body %q", body)}
	}

	return Result{Check: check, Passed: true, Detail: "greeted with " + config.Greeting}
}

func contains(lines []string, want string) bool {
	for _, line := range lines {
		if line == want {
			return true
		}
	}

	return false
}

func dial(ctx context.Context, addr string, timeout time.Duration) (net.Conn, error) {
	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}

	return conn, nil
}

// exchange writes request and reads until the server closes the connection.
func exchange(ctx context.Context, addr string, request string, timeout time.Duration) (string, error) {
	conn, err := dial(ctx, addr, timeout)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		return "", err
	}

	if _, err := io.WriteString(conn, request); err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}

	response, err := io.ReadAll(conn)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	return string(response), nil
}
