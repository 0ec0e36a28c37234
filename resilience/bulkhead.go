package resilience

import (
	"context"
	"strconv"
	"time"

	apperrors "github.com/kbukum/infiniter/errors"
	"github.com/kbukum/infiniter/observability"
)

// BulkheadConfig configures a bulkhead.
type BulkheadConfig struct {
	// Name identifies the bulkhead in errors and health reports.
	Name string `yaml:"name" mapstructure:"name"`
	// MaxConcurrent is the number of slots. Zero or less disables the limit
	// in callers that check Enabled.
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent"`
	// MaxWait is how long to wait for a slot. Zero means fail immediately.
	MaxWait time.Duration `yaml:"max_wait" mapstructure:"max_wait"`
	// OnReject is called when work is turned away.
	OnReject func(name string) `yaml:"-" mapstructure:"-"`
}

// Enabled reports whether the config asks for a limit.
func (c BulkheadConfig) Enabled() bool { return c.MaxConcurrent > 0 }

// Bulkhead limits concurrent work to a fixed number of slots.
type Bulkhead struct {
	config BulkheadConfig
	sem    chan struct{}
}

// NewBulkhead creates a bulkhead. A non-positive MaxConcurrent is raised to 1.
func NewBulkhead(config BulkheadConfig) *Bulkhead {
	if config.MaxConcurrent <= 0 {
		config.MaxConcurrent = 1
	}
	if config.Name == "" {
		config.Name = "bulkhead"
	}
	return &Bulkhead{
		config: config,
		sem:    make(chan struct{}, config.MaxConcurrent),
	}
}

// Execute runs fn in a slot. It returns SERVICE_BUSY when no slot frees up in
// time, or the context error if ctx ends while waiting.
func (b *Bulkhead) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := b.acquire(ctx); err != nil {
		if b.config.OnReject != nil {
			b.config.OnReject(b.config.Name)
		}
		return err
	}
	defer b.release()
	return fn(ctx)
}

// ExecuteWithResult is Execute for functions that return a value.
func ExecuteWithResult[T any](ctx context.Context, b *Bulkhead, fn func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := b.Execute(ctx, func(ctx context.Context) error {
		var fnErr error
		result, fnErr = fn(ctx)
		return fnErr
	})
	return result, err
}

func (b *Bulkhead) acquire(ctx context.Context) error {
	select {
	case b.sem <- struct{}{}:
		return nil
	default:
	}

	if b.config.MaxWait <= 0 {
		return b.busy()
	}

	timer := time.NewTimer(b.config.MaxWait)
	defer timer.Stop()

	select {
	case b.sem <- struct{}{}:
		return nil
	case <-timer.C:
		return b.busy().WithDetail("waited", b.config.MaxWait.String())
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Bulkhead) busy() *apperrors.AppError {
	return apperrors.ServiceBusy(b.config.Name).
		WithDetail("max_concurrent", b.config.MaxConcurrent)
}

func (b *Bulkhead) release() {
	<-b.sem
}

// Available returns the number of free slots.
func (b *Bulkhead) Available() int {
	return b.config.MaxConcurrent - len(b.sem)
}

// InUse returns the number of slots currently taken.
func (b *Bulkhead) InUse() int {
	return len(b.sem)
}

// MaxConcurrent returns the number of slots.
func (b *Bulkhead) MaxConcurrent() int {
	return b.config.MaxConcurrent
}

// CheckHealth reports slot usage. A bulkhead with no free slot is degraded:
// the service still answers but turns new work away.
func (b *Bulkhead) CheckHealth(_ context.Context) observability.Health {
	inUse := b.InUse()
	h := observability.Health{
		Name:   b.config.Name,
		Status: observability.HealthStatusUp,
		Details: map[string]string{
			"in_use":         strconv.Itoa(inUse),
			"max_concurrent": strconv.Itoa(b.config.MaxConcurrent),
		},
	}
	if inUse >= b.config.MaxConcurrent {
		h.Status = observability.HealthStatusDegraded
		h.Message = "all slots in use"
	}
	return h
}
