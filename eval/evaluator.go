package eval

import (
	"context"
	"fmt"
	"math"
	"time"

	apperrors "github.com/kbukum/infiniter/errors"
	"github.com/kbukum/infiniter/logger"
	"github.com/kbukum/infiniter/observability"
	"github.com/kbukum/infiniter/seq"
)

// Result is a collected evaluation.
type Result struct {
	Generator  string         `json:"generator"`
	Values     []float64      `json:"values"`
	Finiteness seq.Finiteness `json:"finiteness"`
	Count      int            `json:"count"`
}

// Evaluator builds and collects queries against a registry.
type Evaluator struct {
	registry *Registry
	config   Config
	log      *logger.Logger
	metrics  *observability.SequenceMetrics
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithSequenceMetrics records pulls of every evaluated pipeline.
func WithSequenceMetrics(m *observability.SequenceMetrics) Option {
	return func(e *Evaluator) { e.metrics = m }
}

// NewEvaluator creates an evaluator. A nil log discards output.
func NewEvaluator(registry *Registry, cfg Config, log *logger.Logger, opts ...Option) *Evaluator {
	if log == nil {
		log = logger.Nop()
	}
	e := &Evaluator{
		registry: registry,
		config:   cfg,
		log:      log.WithComponent("eval"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the registry queries are resolved against.
func (e *Evaluator) Registry() *Registry { return e.registry }

// Build resolves q into a pipeline without pulling from it.
func (e *Evaluator) Build(q Query) (*seq.Sequence[float64], error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if e.config.MaxSkip > 0 && q.Skip > e.config.MaxSkip {
		return nil, apperrors.InvalidInput("skip", fmt.Sprintf("must be %d or less", e.config.MaxSkip))
	}
	gen, err := e.registry.Get(q.Generator)
	if err != nil {
		return nil, err
	}
	s, err := gen.Build(q.Args)
	if err != nil {
		return nil, err
	}

	if pred := filterFor(q.Filter); pred != nil {
		s = seq.Filter(s, pred)
	}
	if q.Op != "" {
		if s, err = e.applyOp(s, q.Op, q.Operand); err != nil {
			return nil, err
		}
	}
	if q.Skip > 0 {
		s = seq.Skip(s, q.Skip)
	}

	switch {
	case q.Take != nil:
		if e.config.MaxTake > 0 && *q.Take > e.config.MaxTake {
			_ = s.Close()
			return nil, apperrors.InvalidInput("take", fmt.Sprintf("must be %d or less", e.config.MaxTake))
		}
		s = seq.Take(s, *q.Take)
	case s.Finiteness() != seq.Finite && e.config.DefaultTake > 0:
		s = seq.Take(s, e.config.DefaultTake)
	}

	s = finiteValues(s)
	if e.config.MaxTake > 0 && s.Finiteness() == seq.Finite {
		s = limit(s, e.config.MaxTake)
	}
	s = observability.Instrument(s, e.metrics, q.Generator)
	if e.config.Trace {
		s = seq.Trace(s, e.log, q.Generator)
	}
	return s, nil
}

// Open builds q and applies its sort, returning a sequence ready to be
// consumed. Sorting drains the pipeline, so a sorted query is subject to the
// same finiteness guard as Collect.
func (e *Evaluator) Open(ctx context.Context, q Query) (*seq.Sequence[float64], error) {
	s, err := e.Build(q)
	if err != nil {
		return nil, err
	}
	if !q.Sort {
		return s, nil
	}
	sorted, err := seq.Sort(ctx, s, q.Reverse)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	return sorted, nil
}

// Evaluate builds q and collects it. Terminal guards run before any pull, so
// an unbounded query fails with INFINITE_ITERATOR without evaluating anything.
func (e *Evaluator) Evaluate(ctx context.Context, q Query) (*Result, error) {
	start := time.Now()
	s, err := e.Open(ctx, q)
	if err != nil {
		return nil, err
	}
	finiteness := s.Finiteness()

	values, err := seq.Collect(ctx, s)
	if err != nil {
		// a refused Collect leaves s open
		_ = s.Close()
		return nil, err
	}
	if values == nil {
		values = []float64{}
	}

	e.log.WithContext(ctx).Debug("sequence evaluated", logger.Fields(
		logger.FieldGenerator, q.Generator,
		logger.FieldFiniteness, finiteness.String(),
		logger.FieldPulls, len(values),
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
	return &Result{
		Generator:  q.Generator,
		Values:     values,
		Finiteness: finiteness,
		Count:      len(values),
	}, nil
}

func (e *Evaluator) applyOp(s *seq.Sequence[float64], name, raw string) (*seq.Sequence[float64], error) {
	op, err := seq.ParseOp(name)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	operand, err := ParseOperand(raw)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	if operand.Zip == "" {
		return seq.Apply(s, op, seq.Scalar(operand.Scalar)), nil
	}
	gen, err := e.registry.Get(operand.Zip)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	other, err := gen.Build(Args{})
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	return seq.Apply(s, op, seq.Elements(other)), nil
}

// finiteValues fails with NUMERIC_OVERFLOW at the first value that is an
// infinity or NaN, such as fibonacci past its 1476th term.
func finiteValues(s *seq.Sequence[float64]) *seq.Sequence[float64] {
	return seq.TryMap(seq.Enumerate(s, 0), func(_ context.Context, v seq.Indexed[float64]) (float64, error) {
		if math.IsInf(v.Value, 0) || math.IsNaN(v.Value) {
			return 0, apperrors.NumericOverflow(v.Index, v.Value)
		}
		return v.Value, nil
	})
}

// limit fails a finite pipeline once it produces more than maxValues values.
func limit(s *seq.Sequence[float64], maxValues int) *seq.Sequence[float64] {
	n := 0
	return seq.Tap(s, func(context.Context, float64) error {
		n++
		if n > maxValues {
			return apperrors.InvalidInput("take", fmt.Sprintf("result exceeds %d values; add or lower take", maxValues))
		}
		return nil
	})
}
