// Package sse streams sequences to HTTP clients as Server-Sent Events.
//
// Streaming pulls values one at a time and writes each as it is produced, so
// it works for infinite sequences that could never be collected. The stream
// ends when the sequence is exhausted, a pull fails, or the request context
// is done.
//
// Every stream has the same shape:
//
//	event: start
//	data: {"generator":"primes","finiteness":"infinite"}
//
//	event: value
//	data: {"index":0,"value":2}
//
//	event: done
//	data: {"count":1}
//
// A failed pull sends an error event carrying the usual error envelope in
// place of done. A client that disconnects gets no final event.
package sse
