package http

import "net/http"

// statusRecorder remembers what a handler answered so the access log can
// report it after the handler returns.
type statusRecorder struct {
	http.ResponseWriter

	status  int
	written int
	sent    bool
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	// a second WriteHeader is a handler bug; keep the first status
	if w.sent {
		return
	}
	w.sent = true
	w.status = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	if !w.sent {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.written += n
	return n, err
}

// Unwrap lets [http.ResponseController] reach the underlying writer.
func (w *statusRecorder) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
