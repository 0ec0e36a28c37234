package sse

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrStreamingUnsupported is returned for response writers that cannot flush.
var ErrStreamingUnsupported = errors.New("sse: streaming not supported")

// EncodingError is returned by Send when data cannot be encoded as JSON.
// Nothing has been written to the client when it is returned.
type EncodingError struct {
	Event string
	Err   error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("sse: encoding %s event: %v", e.Event, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// Writer writes events to one client.
type Writer struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewWriter prepares w for an event stream: it sets the SSE headers and
// lifts the server write deadline, which would otherwise cut long streams.
func NewWriter(w http.ResponseWriter) (*Writer, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, ErrStreamingUnsupported
	}
	// not every writer supports deadlines; the stream still works without
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no") // disable nginx buffering
	w.WriteHeader(http.StatusOK)
	return &Writer{w: w, flusher: flusher}, nil
}

// Send writes one event with data encoded as JSON and flushes it.
func (sw *Writer) Send(event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return &EncodingError{Event: event, Err: err}
	}
	if _, err := fmt.Fprintf(sw.w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return err
	}
	sw.flusher.Flush()
	return nil
}

// Comment writes an SSE comment line, which clients ignore.
func (sw *Writer) Comment(text string) error {
	if _, err := fmt.Fprintf(sw.w, ": %s\n\n", text); err != nil {
		return err
	}
	sw.flusher.Flush()
	return nil
}
