package web

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

// statusWriter records the status code and the size of a response.
type statusWriter struct {
	http.ResponseWriter
	code  int
	bytes int
}

var _ http.Flusher = (*statusWriter)(nil)

func (w *statusWriter) Write(p []byte) (int, error) {
	n, err := w.ResponseWriter.Write(p)
	w.bytes += n
	return n, err
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Flush implements http.Flusher.
func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// NewLoggingMiddleware logs every response. Health probes are logged at
// debug level and other server errors at error level.
func NewLoggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(sw, r)

		level := log.InfoLevel
		switch {
		case isProbe(r.URL.Path):
			level = log.DebugLevel
		case sw.code >= http.StatusInternalServerError:
			level = log.ErrorLevel
		}

		logger.Log(level, "response",
			"method", r.Method,
			"path", r.URL.Path,
			"addr", r.RemoteAddr,
			"status", sw.code,
			"bytes", humanize.Bytes(uint64(sw.bytes)), //nolint:gosec
			"time", time.Since(start))
	})
}

func isProbe(path string) bool {
	return path == "/livez" || path == "/readyz"
}
