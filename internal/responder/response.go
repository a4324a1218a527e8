package responder

import (
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/homeport/responder/internal/config"
)

// e.g. "Fri Oct 16 09:30:00 UTC 2026"
const dateLayout = "Mon Jan 02 15:04:05 MST 2006"

var badRequest = []byte("HTTP/1.0 400 Bad Request\r\n\r\n")

func okResponse(now time.Time) []byte {
	return []byte("HTTP/1.0 200 OK\r\n" +
		"Content-Type: text/plain\r\n" +
		"Date: " + now.Format(dateLayout) + "\r\n" +
		"Content-length: " + strconv.Itoa(utf8.RuneCountInString(config.Greeting)) + "\r\n" +
		"\r\n" +
		config.Greeting)
}
