// Package validation provides input validation for evaluation queries and
// service configuration.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Both report failures as a
// single VALIDATION error carrying per-field details.
//
// # Struct Tag Validation
//
//	type Query struct {
//	    Generator string `json:"generator" validate:"required"`
//	    Take      *int   `json:"take" validate:"omitempty,gte=0"`
//	}
//	err := validation.Validate(q)
//
// # Programmatic Validation
//
//	err := validation.New().
//	    Integral("stop", stop).
//	    NonZero("step", step).
//	    Validate()
package validation
