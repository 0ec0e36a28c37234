package bootstrap

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/infiniter/config"
	"github.com/kbukum/infiniter/logger"
)

type testConfig struct {
	config.ServiceConfig
}

func newTestConfig(name, version string) *testConfig {
	return &testConfig{
		ServiceConfig: config.ServiceConfig{
			Name:        name,
			Version:     version,
			Environment: "development",
		},
	}
}

func newTestApp(t *testing.T, opts ...Option) *App[*testConfig] {
	t.Helper()
	opts = append([]Option{WithLogger(logger.Nop())}, opts...)
	app, err := NewApp(newTestConfig("test-svc", "1.0.0"), opts...)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	return app
}

// recorder collects hook names in call order.
type recorder struct {
	calls []string
}

func (r *recorder) hook(name string, err error) Hook {
	return func(context.Context) error {
		r.calls = append(r.calls, name)
		return err
	}
}

func TestNewApp(t *testing.T) {
	app, err := NewApp(newTestConfig("test-svc", "1.0.0"))
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	if app.Name != "test-svc" {
		t.Errorf("expected name 'test-svc', got %q", app.Name)
	}
	if app.Version != "1.0.0" {
		t.Errorf("expected version '1.0.0', got %q", app.Version)
	}
	if app.Logger == nil {
		t.Fatal("expected non-nil logger")
	}
	if app.Cfg.Logging.Level != "debug" {
		t.Errorf("expected defaults applied (debug level in development), got %q", app.Cfg.Logging.Level)
	}
	if app.GracefulTimeout() != DefaultGracefulTimeout {
		t.Errorf("expected default graceful timeout, got %s", app.GracefulTimeout())
	}
}

func TestNewApp_ValidationError(t *testing.T) {
	_, err := NewApp(newTestConfig("", "1.0.0"))
	if err == nil {
		t.Fatal("expected validation error for missing name")
	}
	if !strings.Contains(err.Error(), "config validation") {
		t.Errorf("expected wrapped validation error, got %v", err)
	}
}

func TestNewApp_Options(t *testing.T) {
	log := logger.Nop()
	app := newTestApp(t, WithLogger(log), WithGracefulTimeout(2*time.Second))
	if app.Logger != log {
		t.Error("expected custom logger")
	}
	if app.GracefulTimeout() != 2*time.Second {
		t.Errorf("expected 2s graceful timeout, got %s", app.GracefulTimeout())
	}
}

func TestRunTask_Lifecycle(t *testing.T) {
	app := newTestApp(t)
	rec := &recorder{}
	app.OnStart(rec.hook("start-1", nil), rec.hook("start-2", nil))
	app.OnReady(rec.hook("ready", nil))
	app.OnStop(rec.hook("stop-1", nil), rec.hook("stop-2", nil))

	err := app.RunTask(context.Background(), func(ctx context.Context) error {
		rec.calls = append(rec.calls, "task")
		return nil
	})
	if err != nil {
		t.Fatalf("RunTask failed: %v", err)
	}

	want := []string{"start-1", "start-2", "ready", "task", "stop-2", "stop-1"}
	if !slices.Equal(rec.calls, want) {
		t.Errorf("expected calls %v, got %v", want, rec.calls)
	}
}

func TestRunTask_TaskErrorWins(t *testing.T) {
	app := newTestApp(t)
	taskErr := errors.New("task failed")
	app.OnStop(func(context.Context) error { return errors.New("stop failed") })

	err := app.RunTask(context.Background(), func(context.Context) error { return taskErr })
	if !errors.Is(err, taskErr) {
		t.Errorf("expected task error, got %v", err)
	}
}

func TestRunTask_StopError(t *testing.T) {
	app := newTestApp(t)
	stopErr := errors.New("stop failed")
	app.OnStop(func(context.Context) error { return stopErr })

	err := app.RunTask(context.Background(), func(context.Context) error { return nil })
	if !errors.Is(err, stopErr) {
		t.Errorf("expected stop error, got %v", err)
	}
}

func TestRunTask_StartFailure(t *testing.T) {
	app := newTestApp(t)
	rec := &recorder{}
	startErr := errors.New("boom")
	app.OnStart(rec.hook("start", startErr))
	app.OnReady(rec.hook("ready", nil))
	app.OnStop(rec.hook("stop", nil))

	ran := false
	err := app.RunTask(context.Background(), func(context.Context) error {
		ran = true
		return nil
	})
	if !errors.Is(err, startErr) {
		t.Fatalf("expected start error, got %v", err)
	}
	if ran {
		t.Error("task should not run after a failed start hook")
	}
	want := []string{"start", "stop"}
	if !slices.Equal(rec.calls, want) {
		t.Errorf("expected calls %v, got %v", want, rec.calls)
	}
}

func TestRunTask_ContextCanceled(t *testing.T) {
	app := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := app.RunTask(ctx, func(ctx context.Context) error {
		return ctx.Err()
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	app := newTestApp(t)
	rec := &recorder{}
	app.OnStart(rec.hook("start", nil))
	app.OnStop(rec.hook("stop", nil))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}

	want := []string{"start", "stop"}
	if !slices.Equal(rec.calls, want) {
		t.Errorf("expected calls %v, got %v", want, rec.calls)
	}
}

func TestStopHooks_AllRunAndJoinErrors(t *testing.T) {
	app := newTestApp(t)
	rec := &recorder{}
	errA := errors.New("a failed")
	errB := errors.New("b failed")
	app.OnStop(rec.hook("a", errA), rec.hook("b", errB), rec.hook("c", nil))

	err := app.Shutdown()
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("expected both stop errors joined, got %v", err)
	}
	want := []string{"c", "b", "a"}
	if !slices.Equal(rec.calls, want) {
		t.Errorf("expected calls %v, got %v", want, rec.calls)
	}
}

func TestStopHooks_Deadline(t *testing.T) {
	app := newTestApp(t, WithGracefulTimeout(time.Second))
	var deadline time.Time
	var hasDeadline bool
	app.OnStop(func(ctx context.Context) error {
		deadline, hasDeadline = ctx.Deadline()
		return nil
	})

	if err := app.Shutdown(); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
	if !hasDeadline {
		t.Fatal("expected stop context to carry a deadline")
	}
	if time.Until(deadline) > time.Second {
		t.Errorf("deadline exceeds graceful timeout: %s", time.Until(deadline))
	}
}

func TestShutdown_RunsOnce(t *testing.T) {
	app := newTestApp(t)
	count := 0
	app.OnStop(func(context.Context) error {
		count++
		return nil
	})

	_ = app.Shutdown()
	_ = app.Shutdown()
	if count != 1 {
		t.Errorf("expected stop hooks to run once, got %d", count)
	}
}

func TestRunHooks_WrapsIndex(t *testing.T) {
	err := runHooks(context.Background(), []Hook{
		func(context.Context) error { return nil },
		func(context.Context) error { return errors.New("second") },
	})
	if err == nil || !strings.Contains(err.Error(), "hook 1 failed") {
		t.Errorf("expected indexed hook error, got %v", err)
	}
}
