package resilience

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/kbukum/infiniter/errors"
	"github.com/kbukum/infiniter/observability"
)

// hold occupies one slot of b until the returned release func is called.
func hold(t *testing.T, b *Bulkhead) (release func()) {
	t.Helper()
	started := make(chan struct{})
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		_ = b.Execute(context.Background(), func(context.Context) error {
			close(started)
			<-done
			return nil
		})
	}()
	<-started
	return func() {
		close(done)
		<-finished
	}
}

func TestBulkhead_AllowsWithinLimit(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{Name: "test", MaxConcurrent: 3})

	var calls, peak, current int32
	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := b.Execute(context.Background(), func(context.Context) error {
				n := atomic.AddInt32(&current, 1)
				for {
					p := atomic.LoadInt32(&peak)
					if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
						break
					}
				}
				atomic.AddInt32(&calls, 1)
				time.Sleep(10 * time.Millisecond)
				atomic.AddInt32(&current, -1)
				return nil
			})
			if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		}()
	}
	wg.Wait()

	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
	if peak > 3 {
		t.Errorf("expected at most 3 concurrent calls, got %d", peak)
	}
	if b.InUse() != 0 {
		t.Errorf("expected all slots released, got %d in use", b.InUse())
	}
}

func TestBulkhead_RejectsWhenFull(t *testing.T) {
	var rejected []string
	b := NewBulkhead(BulkheadConfig{
		Name:          "evaluations",
		MaxConcurrent: 1,
		OnReject:      func(name string) { rejected = append(rejected, name) },
	})
	release := hold(t, b)
	defer release()

	ran := false
	err := b.Execute(context.Background(), func(context.Context) error {
		ran = true
		return nil
	})

	if !apperrors.HasCode(err, apperrors.ErrCodeServiceBusy) {
		t.Fatalf("expected SERVICE_BUSY, got %v", err)
	}
	appErr, _ := apperrors.AsAppError(err)
	if !appErr.Retryable {
		t.Error("expected a retryable error")
	}
	if appErr.Details["resource"] != "evaluations" || appErr.Details["max_concurrent"] != 1 {
		t.Errorf("unexpected details: %v", appErr.Details)
	}
	if ran {
		t.Error("rejected work must not run")
	}
	if len(rejected) != 1 || rejected[0] != "evaluations" {
		t.Errorf("expected one reject callback, got %v", rejected)
	}
}

func TestBulkhead_WaitsForSlot(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{Name: "test", MaxConcurrent: 1, MaxWait: time.Second})
	release := hold(t, b)

	go func() {
		time.Sleep(20 * time.Millisecond)
		release()
	}()

	start := time.Now()
	err := b.Execute(context.Background(), func(context.Context) error { return nil })
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Errorf("expected to wait for the slot, got %v", elapsed)
	}
}

func TestBulkhead_TimesOutWaiting(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{Name: "test", MaxConcurrent: 1, MaxWait: 10 * time.Millisecond})
	release := hold(t, b)
	defer release()

	err := b.Execute(context.Background(), func(context.Context) error { return nil })
	if !apperrors.HasCode(err, apperrors.ErrCodeServiceBusy) {
		t.Fatalf("expected SERVICE_BUSY, got %v", err)
	}
	appErr, _ := apperrors.AsAppError(err)
	if appErr.Details["waited"] != "10ms" {
		t.Errorf("expected waited detail, got %v", appErr.Details)
	}
}

func TestBulkhead_RespectsContext(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{Name: "test", MaxConcurrent: 1, MaxWait: time.Second})
	release := hold(t, b)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := b.Execute(ctx, func(context.Context) error { return nil })
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}
}

func TestBulkhead_ReleasesOnError(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{MaxConcurrent: 1})
	boom := errors.New("boom")

	if err := b.Execute(context.Background(), func(context.Context) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected fn error, got %v", err)
	}
	if b.Available() != 1 {
		t.Errorf("expected slot released after error, got %d available", b.Available())
	}
}

func TestExecuteWithResult(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{MaxConcurrent: 2})
	got, err := ExecuteWithResult(context.Background(), b, func(context.Context) (int, error) {
		return b.InUse(), nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1 {
		t.Errorf("expected 1 slot in use inside fn, got %d", got)
	}
}

func TestNewBulkhead_Defaults(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{})
	if b.MaxConcurrent() != 1 {
		t.Errorf("expected MaxConcurrent raised to 1, got %d", b.MaxConcurrent())
	}
	if (BulkheadConfig{}).Enabled() {
		t.Error("zero config should not be enabled")
	}
	if !(BulkheadConfig{MaxConcurrent: 4}).Enabled() {
		t.Error("positive MaxConcurrent should be enabled")
	}
}

func TestBulkhead_CheckHealth(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{Name: "evaluations", MaxConcurrent: 1})

	h := b.CheckHealth(context.Background())
	if h.Name != "evaluations" || h.Status != observability.HealthStatusUp {
		t.Errorf("expected evaluations up, got %+v", h)
	}
	if h.Details["in_use"] != "0" || h.Details["max_concurrent"] != "1" {
		t.Errorf("unexpected details: %v", h.Details)
	}

	release := hold(t, b)
	defer release()
	h = b.CheckHealth(context.Background())
	if h.Status != observability.HealthStatusDegraded {
		t.Errorf("expected degraded when full, got %s", h.Status)
	}
}
