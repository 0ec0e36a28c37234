package sse

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/kbukum/infiniter/errors"
	"github.com/kbukum/infiniter/seq"
)

func newRecorderWriter(t *testing.T) (*httptest.ResponseRecorder, *Writer) {
	t.Helper()
	rr := httptest.NewRecorder()
	w, err := NewWriter(rr)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	return rr, w
}

func TestNewWriter_Headers(t *testing.T) {
	rr, _ := newRecorderWriter(t)
	if rr.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("unexpected content type %q", ct)
	}
	if cc := rr.Header().Get("Cache-Control"); cc != "no-cache" {
		t.Errorf("unexpected cache control %q", cc)
	}
}

// plainWriter is a ResponseWriter without Flush.
type plainWriter struct{ http.ResponseWriter }

func TestNewWriter_RequiresFlusher(t *testing.T) {
	_, err := NewWriter(plainWriter{httptest.NewRecorder()})
	if !errors.Is(err, ErrStreamingUnsupported) {
		t.Errorf("expected ErrStreamingUnsupported, got %v", err)
	}
}

func TestWriter_SendAndComment(t *testing.T) {
	rr, w := newRecorderWriter(t)
	if err := w.Send(EventValue, ValueEvent[int]{Index: 0, Value: 7}); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if err := w.Comment("keepalive"); err != nil {
		t.Fatalf("Comment failed: %v", err)
	}
	want := "event: value\ndata: {\"index\":0,\"value\":7}\n\n: keepalive\n\n"
	if rr.Body.String() != want {
		t.Errorf("expected %q, got %q", want, rr.Body.String())
	}
	if !rr.Flushed {
		t.Error("expected the writer to flush")
	}
}

func TestWriter_SendEncodingError(t *testing.T) {
	_, w := newRecorderWriter(t)
	err := w.Send(EventValue, make(chan int))
	var encErr *EncodingError
	if !errors.As(err, &encErr) || encErr.Event != EventValue {
		t.Errorf("expected an EncodingError for the value event, got %v", err)
	}
}

func TestStream_Finite(t *testing.T) {
	rr, w := newRecorderWriter(t)
	n, err := Stream(context.Background(), w, "items", seq.Of(4, 5))
	if err != nil {
		t.Fatalf("Stream failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 values, got %d", n)
	}
	want := strings.Join([]string{
		"event: start\ndata: {\"generator\":\"items\",\"finiteness\":\"finite\"}\n\n",
		"event: value\ndata: {\"index\":0,\"value\":4}\n\n",
		"event: value\ndata: {\"index\":1,\"value\":5}\n\n",
		"event: done\ndata: {\"count\":2}\n\n",
	}, "")
	if rr.Body.String() != want {
		t.Errorf("expected\n%s\ngot\n%s", want, rr.Body.String())
	}
}

func TestStream_Empty(t *testing.T) {
	rr, w := newRecorderWriter(t)
	n, err := Stream(context.Background(), w, "empty", seq.Empty[int]())
	if err != nil || n != 0 {
		t.Fatalf("expected 0 values and no error, got %d, %v", n, err)
	}
	if !strings.HasSuffix(rr.Body.String(), "event: done\ndata: {\"count\":0}\n\n") {
		t.Errorf("expected a done event, got %q", rr.Body.String())
	}
}

func TestStream_PullError(t *testing.T) {
	rr, w := newRecorderWriter(t)
	s := seq.Div(seq.Of(6, 3), seq.Elements(seq.Of(2, 0)))

	n, err := Stream(context.Background(), w, "div", s)
	if !errors.Is(err, apperrors.ErrDivisionByZero) {
		t.Fatalf("expected DIVISION_BY_ZERO, got %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 value before the failure, got %d", n)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "event: value\ndata: {\"index\":0,\"value\":3}") {
		t.Errorf("expected the first quotient, got %q", body)
	}
	if !strings.Contains(body, "event: error\ndata: {\"error\":{\"code\":\"DIVISION_BY_ZERO\"") || !strings.Contains(body, "\"count\":1}") {
		t.Errorf("expected an error event, got %q", body)
	}
	if strings.Contains(body, "event: done") {
		t.Error("failed stream must not send done")
	}
}

func TestStream_UnencodableValue(t *testing.T) {
	rr, w := newRecorderWriter(t)

	n, err := Stream(context.Background(), w, "inf", seq.Of(1.0, math.Inf(1), 3.0))
	var encErr *EncodingError
	if !errors.As(err, &encErr) {
		t.Fatalf("expected an EncodingError, got %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 value before the failure, got %d", n)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "event: error\ndata: {\"error\":{\"code\":\"INTERNAL_ERROR\"") || !strings.Contains(body, "\"count\":1}") {
		t.Errorf("expected an error event, got %q", body)
	}
	if strings.Contains(body, "event: done") || strings.Contains(body, "\"index\":1") {
		t.Errorf("stream must stop at the unencodable value, got %q", body)
	}
}

func TestStream_InfiniteCanceled(t *testing.T) {
	rr, w := newRecorderWriter(t)
	ctx, cancel := context.WithCancel(context.Background())

	// cancel after the third value has been pulled
	s := seq.Tap(seq.Count(0, 1), func(_ context.Context, v int) error {
		if v == 2 {
			cancel()
		}
		return nil
	})
	n, err := Stream(ctx, w, "count", s)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 values sent before cancellation, got %d", n)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "\"finiteness\":\"infinite\"") {
		t.Errorf("expected infinite start event, got %q", body)
	}
	if strings.Contains(body, "event: done") || strings.Contains(body, "event: error") {
		t.Errorf("canceled stream must not send a final event, got %q", body)
	}
}
