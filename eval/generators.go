package eval

import (
	"github.com/kbukum/infiniter/seq"
	"github.com/kbukum/infiniter/validation"
)

// Args are the optional generator arguments of a query. A nil field means
// "not given"; each generator documents its defaults.
type Args struct {
	Start *float64  `json:"start,omitempty" form:"start"`
	Step  *float64  `json:"step,omitempty" form:"step"`
	Stop  *float64  `json:"stop,omitempty" form:"stop"`
	A     *float64  `json:"a,omitempty" form:"a"`
	B     *float64  `json:"b,omitempty" form:"b"`
	Value *float64  `json:"value,omitempty" form:"value"`
	Times *int      `json:"times,omitempty" form:"times"`
	Items []float64 `json:"items,omitempty" form:"items"`
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// DefaultRegistry returns a registry holding the built-in generators.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, g := range builtins() {
		// names are unique and builders set
		_ = r.Register(g)
	}
	return r
}

func builtins() []Generator {
	return []Generator{
		{
			Name:        "range",
			Description: "whole numbers from start (0) up to but excluding stop, by step (1)",
			Finiteness:  seq.Finite,
			Build:       buildRange,
		},
		{
			Name:        "count",
			Description: "start (0), start+step, ... with step (1)",
			Finiteness:  seq.Infinite,
			Build: func(a Args) (*seq.Sequence[float64], error) {
				start, step := valueOr(a.Start, 0), valueOr(a.Step, 1)
				if err := validation.New().Finite("start", start).Finite("step", step).Validate(); err != nil {
					return nil, err
				}
				return seq.Count(start, step), nil
			},
		},
		{
			Name:        "cycle",
			Description: "items repeated forever",
			Finiteness:  seq.Infinite,
			Build: func(a Args) (*seq.Sequence[float64], error) {
				return seq.CycleSlice(a.Items)
			},
		},
		{
			Name:        "repeat",
			Description: "value forever, or times times when times is given",
			Finiteness:  seq.Infinite,
			Build: func(a Args) (*seq.Sequence[float64], error) {
				v := validation.New().Present("value", a.Value)
				if a.Times != nil {
					v.Min("times", *a.Times, 0)
				}
				if err := v.Validate(); err != nil {
					return nil, err
				}
				if a.Times != nil {
					return seq.RepeatN(*a.Value, *a.Times), nil
				}
				return seq.Repeat(*a.Value), nil
			},
		},
		{
			Name:        "fibonacci",
			Description: "a (1), b (1), a+b, ...",
			Finiteness:  seq.Infinite,
			Build: func(args Args) (*seq.Sequence[float64], error) {
				a, b := valueOr(args.A, 1), valueOr(args.B, 1)
				if err := validation.New().Finite("a", a).Finite("b", b).Validate(); err != nil {
					return nil, err
				}
				return seq.Fibonacci(a, b), nil
			},
		},
		{
			Name:        "primes",
			Description: "2, 3, 5, 7, ...",
			Finiteness:  seq.Infinite,
			Build: func(Args) (*seq.Sequence[float64], error) {
				return seq.Map(seq.Primes(), toFloat), nil
			},
		},
		{
			Name:        "triangle",
			Description: "1, 3, 6, 10, ...",
			Finiteness:  seq.Infinite,
			Build: func(Args) (*seq.Sequence[float64], error) {
				return seq.Map(seq.TriangleNumbers(), toFloat), nil
			},
		},
		{
			Name:        "square",
			Description: "start² (0), (start+1)², ...",
			Finiteness:  seq.Infinite,
			Build: func(a Args) (*seq.Sequence[float64], error) {
				start := valueOr(a.Start, 0)
				if err := validation.New().Finite("start", start).Validate(); err != nil {
					return nil, err
				}
				return seq.Square(start), nil
			},
		},
	}
}

func buildRange(a Args) (*seq.Sequence[float64], error) {
	v := validation.New().Present("stop", a.Stop)
	start, step := valueOr(a.Start, 0), valueOr(a.Step, 1)
	v.Integral("start", start).Integral("step", step).NonZero("step", step)
	if a.Stop != nil {
		v.Integral("stop", *a.Stop)
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	s, err := seq.RangeStep(int64(start), int64(*a.Stop), int64(step))
	if err != nil {
		return nil, err
	}
	return seq.Map(s, func(n int64) float64 { return float64(n) }), nil
}

func toFloat(n int) float64 { return float64(n) }
