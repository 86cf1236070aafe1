package api

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// loggingTransport logs every round trip at debug level.
type loggingTransport struct {
	next   http.RoundTripper
	logger *zap.SugaredLogger
}

func (t *loggingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(r)
	dur := time.Since(start)
	if err != nil {
		t.logger.Debugw("http request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", r.Header.Get(headerRequestID),
			"duration_ms", float64(dur.Microseconds())/1000.0,
			"err", err,
		)
		return nil, err
	}
	t.logger.Debugw("http request",
		"method", r.Method,
		"path", r.URL.Path,
		"status", resp.StatusCode,
		"request_id", r.Header.Get(headerRequestID),
		"duration_ms", float64(dur.Microseconds())/1000.0,
		"size", resp.ContentLength,
	)
	return resp, nil
}
