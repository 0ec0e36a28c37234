package eval

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/kbukum/infiniter/errors"
	"github.com/kbukum/infiniter/validation"
)

const zipPrefix = "zip:"

func init() {
	if err := validation.RegisterValidation("operand", validOperand); err != nil {
		panic(err)
	}
}

// Query describes one evaluation: a generator with its arguments, then an
// optional filter, operator, skip, take and sort, applied in that order.
type Query struct {
	Generator string `json:"generator" validate:"required"`
	Args

	// Filter keeps only even, odd or positive values.
	Filter string `json:"filter,omitempty" form:"filter" validate:"omitempty,oneof=even odd positive"`
	// Op combines each value with Operand.
	Op string `json:"op,omitempty" form:"op" validate:"omitempty,oneof=add sub mul div"`
	// Operand is a number broadcast to every value, or zip:<generator> to
	// combine element-wise with another generator built from default arguments.
	Operand string `json:"operand,omitempty" form:"operand" validate:"omitempty,operand"`
	Skip    int    `json:"skip,omitempty" form:"skip" validate:"gte=0"`
	// Take bounds the result. Nil means the configured default take applies
	// to sequences that are not already finite.
	Take    *int `json:"take,omitempty" form:"take" validate:"omitempty,gte=0"`
	Sort    bool `json:"sort,omitempty" form:"sort"`
	Reverse bool `json:"reverse,omitempty" form:"reverse"`
}

// Validate checks struct tags and the cross-field rules.
func (q *Query) Validate() error {
	if err := validation.Validate(q); err != nil {
		return err
	}
	return validation.New().
		Custom(q.Op == "" || q.Operand != "", "operand", "is required when op is set").
		Custom(q.Operand == "" || q.Op != "", "op", "is required when operand is set").
		Custom(!q.Reverse || q.Sort, "reverse", "requires sort").
		Validate()
}

// Operand is a parsed query operand: a scalar, or the name of a generator to
// zip with.
type Operand struct {
	Scalar float64
	Zip    string
}

// ParseOperand parses a number or zip:<generator>.
func ParseOperand(s string) (Operand, error) {
	if name, ok := strings.CutPrefix(s, zipPrefix); ok {
		if name == "" {
			return Operand{}, apperrors.InvalidInput("operand", "zip operand needs a generator name")
		}
		return Operand{Zip: name}, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Operand{}, apperrors.InvalidInput("operand", "must be a finite number or zip:<generator>")
	}
	return Operand{Scalar: v}, nil
}

func validOperand(fl validator.FieldLevel) bool {
	_, err := ParseOperand(fl.Field().String())
	return err == nil
}

func filterFor(name string) func(float64) bool {
	switch name {
	case "even":
		return func(v float64) bool { return math.Mod(v, 2) == 0 }
	case "odd":
		return func(v float64) bool { return math.Abs(math.Mod(v, 2)) == 1 }
	case "positive":
		return func(v float64) bool { return v > 0 }
	default:
		return nil
	}
}
