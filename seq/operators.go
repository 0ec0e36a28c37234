package seq

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/kbukum/infiniter/errors"
)

// Op is an arithmetic operator applied by Apply.
type Op uint8

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
)

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpDiv:
		return "div"
	default:
		return fmt.Sprintf("op(%d)", uint8(o))
	}
}

// ParseOp accepts an operator name (add, sub, mul, div) or symbol (+ - * /).
func ParseOp(s string) (Op, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "add", "+":
		return OpAdd, nil
	case "sub", "-":
		return OpSub, nil
	case "mul", "*":
		return OpMul, nil
	case "div", "/":
		return OpDiv, nil
	default:
		return 0, apperrors.InvalidArgument("op", fmt.Sprintf("unknown operator %q", s))
	}
}

type operandKind uint8

const (
	operandScalar operandKind = iota
	operandElements
)

// Operand is the right-hand side of an arithmetic operator: either a scalar
// broadcast to every element, or the elements of another sequence. The zero
// Operand is the scalar zero.
type Operand[T Number] struct {
	kind     operandKind
	scalar   T
	elements *Sequence[T]
}

// Scalar builds a broadcast operand.
func Scalar[T Number](v T) Operand[T] {
	return Operand[T]{kind: operandScalar, scalar: v}
}

// Elements builds an element-wise operand. The sequence is consumed by Apply.
// It panics if s is nil.
func Elements[T Number](s *Sequence[T]) Operand[T] {
	if s == nil {
		panic("seq: Elements called with a nil sequence")
	}
	return Operand[T]{kind: operandElements, elements: s}
}

// IsScalar reports whether the operand is broadcast.
func (o Operand[T]) IsScalar() bool { return o.kind == operandScalar }

// Apply builds s <op> r lazily.
//
// A scalar operand maps every element and keeps the finiteness of s. A
// sequence operand is zipped with s, so the result ends with the shorter side
// and its finiteness follows the zip rule. A zero divisor fails with
// DIVISION_BY_ZERO at the pull that meets it.
func Apply[T Number](s *Sequence[T], op Op, r Operand[T]) *Sequence[T] {
	if r.IsScalar() {
		rv := r.scalar
		return TryMap(Enumerate(s, 0), func(_ context.Context, v Indexed[T]) (T, error) {
			return combine(op, v.Value, rv, v.Index)
		})
	}
	return TryMap(Enumerate(Zip(s, r.elements), 0), func(_ context.Context, v Indexed[Pair[T, T]]) (T, error) {
		return combine(op, v.Value.First, v.Value.Second, v.Index)
	})
}

// Add is shorthand for Apply(s, OpAdd, r).
func Add[T Number](s *Sequence[T], r Operand[T]) *Sequence[T] { return Apply(s, OpAdd, r) }

// Sub is shorthand for Apply(s, OpSub, r).
func Sub[T Number](s *Sequence[T], r Operand[T]) *Sequence[T] { return Apply(s, OpSub, r) }

// Mul is shorthand for Apply(s, OpMul, r).
func Mul[T Number](s *Sequence[T], r Operand[T]) *Sequence[T] { return Apply(s, OpMul, r) }

// Div is shorthand for Apply(s, OpDiv, r). Integer element types truncate.
func Div[T Number](s *Sequence[T], r Operand[T]) *Sequence[T] { return Apply(s, OpDiv, r) }

func combine[T Number](op Op, a, b T, index int) (T, error) {
	switch op {
	case OpAdd:
		return a + b, nil
	case OpSub:
		return a - b, nil
	case OpMul:
		return a * b, nil
	case OpDiv:
		if b == 0 {
			var zero T
			return zero, apperrors.DivisionByZero(index)
		}
		return a / b, nil
	default:
		var zero T
		return zero, apperrors.InvalidArgument("op", op.String())
	}
}
