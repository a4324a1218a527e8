package responder

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

var delimiter = []byte("\r\n\r\n")

// errNoRequest means the client closed the connection before sending a
// single byte. Nothing is written back in that case.
var errNoRequest = errors.New("client sent no request")

// readRequest returns everything up to, but excluding, the first
// delimiter. If the stream ends first, whatever arrived is the request.
func readRequest(r *bufio.Reader) ([]byte, error) {
	var buf []byte
	for {
		chunk, err := r.ReadBytes('\n')
		buf = append(buf, chunk...)

		if bytes.HasSuffix(buf, delimiter) {
			return buf[:len(buf)-len(delimiter)], nil
		}

		if err != nil {
			if !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("failed to read request: %w", err)
			}
			if len(buf) == 0 {
				return nil, errNoRequest
			}
			return buf, nil
		}
	}
}

func isGet(raw []byte) bool {
	return strings.HasPrefix(string(raw), "GET")
}
