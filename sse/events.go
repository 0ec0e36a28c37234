package sse

import (
	apperrors "github.com/kbukum/infiniter/errors"
	"github.com/kbukum/infiniter/seq"
)

// Event names.
const (
	// EventStart opens every stream.
	EventStart = "start"
	// EventValue carries one pulled value.
	EventValue = "value"
	// EventDone is sent once the sequence is exhausted.
	EventDone = "done"
	// EventError is sent when a pull fails.
	EventError = "error"
)

// StartEvent describes the stream before any value is pulled.
type StartEvent struct {
	Generator  string         `json:"generator"`
	Finiteness seq.Finiteness `json:"finiteness"`
}

// ValueEvent is one value and its zero-based position in the stream.
type ValueEvent[T any] struct {
	Index int `json:"index"`
	Value T   `json:"value"`
}

// DoneEvent reports how many values were sent.
type DoneEvent struct {
	Count int `json:"count"`
}

// ErrorEvent is the error envelope plus the number of values sent before it.
type ErrorEvent struct {
	apperrors.ErrorResponse
	Count int `json:"count"`
}
