// Package server exposes sequence evaluation over HTTP using Gin, served over
// HTTP/1.1 and h2c.
//
// # Middleware
//
// Server-level (server/middleware, wrapping the whole engine):
//
//   - RequestLogger: request logging with status and duration
//   - CORS: cross-origin headers and preflight answers
//
// Engine-level:
//
//   - Recovery: panic recovery with structured logging
//   - RequestID: request ID generation and propagation
//   - RateLimit: per-client sliding-window limit
//   - Timeout: per-request evaluation deadline
//
// # Endpoints
//
// Registered by RegisterRoutes (server/endpoint):
//
//   - GET /v1/generators: registered generators and their finiteness
//   - GET /v1/sequences/:name: evaluate a query against a generator
//   - /health, /ready, /alive: probes
//   - /version: build version information
package server
